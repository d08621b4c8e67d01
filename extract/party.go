package extract

import (
	"regexp"
)

// Party is a canonical party as found in the lookup table.
type Party struct {
	Name         string
	Abbreviation string
}

// PartyRule maps a case-insensitive pattern onto a party.
type PartyRule struct {
	pattern *regexp.Regexp
	party   Party
}

// PartyRules is an ordered lookup table, first match wins.
type PartyRules []PartyRule

// PartyPattern compiles a party rule anchored on the whole (trimmed) value.
func PartyPattern(pattern string, p Party) PartyRule {
	return PartyRule{pattern: regexp.MustCompile(`(?i)^(?:` + pattern + `)$`), party: p}
}

// Unaffiliated is what candidates running without a party are filed under.
var Unaffiliated = Party{Name: "Unaffiliated", Abbreviation: "UAF"}

// unaffiliatedRule comes first: "No Party Affiliation (formerly Democratic)"
// names a party but means the opposite.
var unaffiliatedRule = PartyRule{
	pattern: regexp.MustCompile(`(?i)\b(?:unaffiliated|no party(?: affiliation| preference)?|independent|uaf|una|npa)\b`),
	party:   Unaffiliated,
}

// Parties are the parties recognized in every jurisdiction.
var Parties = PartyRules{
	unaffiliatedRule,
	PartyPattern(`dfl|democratic[- ]farmer[- ]labor(?: party)?`, Party{Name: "Democratic-Farmer-Labor", Abbreviation: "DFL"}),
	PartyPattern(`d|dem|democrat|democratic(?: party)?`, Party{Name: "Democratic", Abbreviation: "DEM"}),
	PartyPattern(`r|rep|gop|republican(?: party)?`, Party{Name: "Republican", Abbreviation: "REP"}),
	PartyPattern(`l|lib|libertarian(?: party)?`, Party{Name: "Libertarian", Abbreviation: "LIB"}),
	PartyPattern(`g|gp|grn|green(?: party)?`, Party{Name: "Green", Abbreviation: "GRN"}),
	PartyPattern(`lmn|legal marijuana now(?: party)?`, Party{Name: "Legal Marijuana Now", Abbreviation: "LMN"}),
	PartyPattern(`glc|grassroots(?:[- ]legalize cannabis)?(?: party)?`, Party{Name: "Grassroots-Legalize Cannabis", Abbreviation: "GLC"}),
	PartyPattern(`ia|ip|independence(?:[- ]alliance)?(?: party)?`, Party{Name: "Independence-Alliance", Abbreviation: "IA"}),
	PartyPattern(`swp|socialist workers(?: party)?`, Party{Name: "Socialist Workers", Abbreviation: "SWP"}),
	PartyPattern(`fwd|forward(?: party)?`, Party{Name: "Forward", Abbreviation: "FWD"}),
}

// Normalize maps a raw party name or abbreviation onto a canonical party.
// The boolean is false for anything the table does not recognize, which is
// not an error: nonpartisan candidates carry no party at all.
func (rs PartyRules) Normalize(raw string) (Party, bool) {
	raw = Clean(raw)
	if raw == "" {
		return Party{}, false
	}
	for _, r := range rs {
		if r.pattern.MatchString(raw) {
			return r.party, true
		}
	}
	return Party{}, false
}

// With returns a new table with extra rules tried after the receiver's.
func (rs PartyRules) With(extra ...PartyRule) PartyRules {
	out := make(PartyRules, 0, len(rs)+len(extra))
	out = append(out, rs...)
	return append(out, extra...)
}
