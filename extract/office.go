// Package extract holds the building blocks jurisdictions use to turn free
// text filing fields into typed attributes. Nothing in here fails: input that
// cannot be mapped leaves the attribute empty and records an ambiguity.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/candidatos-info/civic-enrichers/civic"
)

// Context is the typed data a filing row carries next to the office title.
type Context struct {
	State            string
	County           string
	Municipality     string
	SchoolDistrict   string
	HospitalDistrict string
}

// Attributes is the result of decomposing an office title. Title and the
// subtitles of the embedded fields are left to the generators.
type Attributes struct {
	civic.OfficeFields
	Ambiguities []string
}

// Known reports whether an office name was resolved.
func (a Attributes) Known() bool {
	return a.Name != ""
}

func (a *Attributes) ambiguous(format string, args ...interface{}) {
	a.Ambiguities = append(a.Ambiguities, fmt.Sprintf(format, args...))
}

// OfficeRule maps a title pattern onto an office template. Named groups
// "district", "seat", "school", "hospital" and "municipality" copy the captured
// text into the matching attribute.
type OfficeRule struct {
	pattern  *regexp.Regexp
	template civic.OfficeFields
}

// Rule compiles a case-insensitive office rule. It panics on a bad pattern,
// rule tables are package level values.
func Rule(pattern string, template civic.OfficeFields) OfficeRule {
	return OfficeRule{pattern: regexp.MustCompile(`(?i)` + pattern), template: template}
}

// OfficeRules is an ordered rule list, first match wins.
type OfficeRules []OfficeRule

// Decompose matches a cleaned title against the rules and fills the office
// attributes, taking county, municipality and special districts from ctx
// when the title does not carry them.
func (rs OfficeRules) Decompose(title string, ctx Context) Attributes {
	var a Attributes
	a.State = strings.ToUpper(strings.TrimSpace(ctx.State))
	a.County = NormalizeCounty(ctx.County)
	a.Municipality = Clean(ctx.Municipality)
	a.SchoolDistrict = SchoolDistrictNumber(ctx.SchoolDistrict)
	a.HospitalDistrict = Clean(ctx.HospitalDistrict)

	title = Clean(title)
	if title == "" {
		a.ambiguous("empty office title")
		return a
	}
	for _, r := range rs {
		m := r.pattern.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		t := r.template
		a.Name = t.Name
		a.OfficeType = t.OfficeType
		a.Chamber = t.Chamber
		a.PoliticalScope = t.PoliticalScope
		a.ElectionScope = t.ElectionScope
		a.DistrictType = t.DistrictType
		a.Seat = t.Seat
		a.District = t.District
		for i, group := range r.pattern.SubexpNames() {
			value := Clean(m[i])
			if i == 0 || value == "" {
				continue
			}
			switch group {
			case "district":
				a.District = strings.ToUpper(value)
			case "seat":
				a.Seat = seatLabel(value)
			case "school":
				a.SchoolDistrict = SchoolDistrictNumber(value)
			case "hospital":
				a.HospitalDistrict = value
			case "municipality":
				a.Municipality = value
			}
		}
		a.checkScope()
		return a
	}
	a.ambiguous("no office rule matches %q", title)
	return a
}

// Qualified reports whether the office carries the county, municipality or
// special district its scope is told apart by. Without it the office slug
// is shared by every county or city.
func (a Attributes) Qualified() bool {
	_, missing := a.missingQualifier()
	return missing == ""
}

func (a Attributes) missingQualifier() (kind, missing string) {
	switch {
	case a.ElectionScope == civic.ElectionScopeCounty && a.County == "":
		return "county", "county"
	case a.ElectionScope == civic.ElectionScopeCity && a.Municipality == "":
		return "city", "municipality"
	case a.DistrictType == civic.DistrictTypeSchool && a.SchoolDistrict == "":
		return "school", "school district"
	case a.DistrictType == civic.DistrictTypeHospital && a.HospitalDistrict == "":
		return "hospital", "hospital district"
	}
	return "", ""
}

// checkScope records attributes an office's scope needs but the row lacks.
func (a *Attributes) checkScope() {
	if kind, missing := a.missingQualifier(); missing != "" {
		a.ambiguous("%s office %q without %s", kind, a.Name, missing)
	}
}

var atLarge = regexp.MustCompile(`(?i)^at[- ]large$`)

func seatLabel(s string) string {
	if atLarge.MatchString(s) {
		return "At Large"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var (
	countySuffix   = regexp.MustCompile(`(?i)\s+county$`)
	schoolPrefix   = regexp.MustCompile(`(?i)^(?:independent school district|special school district|isd|ssd|ind|cs)\b\s*(?:no\.?|#)?\s*`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// Clean trims s and collapses repeated whitespace.
func Clean(s string) string {
	return strings.TrimSpace(repeatedSpaces.ReplaceAllString(s, " "))
}

// NormalizeCounty strips a trailing " County" and fixes single-case names, so
// "ADAMS COUNTY", "adams county", "Adams County" and "Adams" all become "Adams".
func NormalizeCounty(county string) string {
	county = countySuffix.ReplaceAllString(Clean(county), "")
	if county != "" && (county == strings.ToUpper(county) || county == strings.ToLower(county)) {
		county = titleCase(county)
	}
	return county
}

// SchoolDistrictNumber strips prefixes such as "ISD #" or "SSD #" from a
// school district code: "ISD #0011" becomes "11".
func SchoolDistrictNumber(code string) string {
	code = schoolPrefix.ReplaceAllString(Clean(code), "")
	trimmed := strings.TrimLeft(code, "0")
	if trimmed == "" && code != "" {
		return "0"
	}
	return trimmed
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
