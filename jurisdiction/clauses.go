package jurisdiction

import (
	"regexp"
	"strings"

	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/candidatos-info/civic-enrichers/extract"
	p "github.com/candidatos-info/civic-enrichers/predicate"
)

// National matches offices every voter votes for.
func National() p.Condition {
	return p.Eq(p.ElectionScope, string(civic.ElectionScopeNational))
}

// Statewide matches offices elected by the whole state.
func Statewide(state string) p.Condition {
	return p.All(p.Eq(p.State, state), p.Eq(p.ElectionScope, string(civic.ElectionScopeState)))
}

// District matches district scoped offices of one district type and number.
func District(state string, t civic.DistrictType, district string) p.Condition {
	return p.All(
		p.Eq(p.State, state),
		p.Eq(p.ElectionScope, string(civic.ElectionScopeDistrict)),
		p.Eq(p.DistrictType, string(t)),
		p.Eq(p.District, strings.ToUpper(district)),
	)
}

// CountyWide matches offices elected by the whole county.
func CountyWide(state, county string) p.Condition {
	return p.All(
		p.Eq(p.State, state),
		p.Eq(p.ElectionScope, string(civic.ElectionScopeCounty)),
		p.Eq(p.DistrictType, string(civic.DistrictTypeCounty)),
		p.Eq(p.County, county),
		p.Eq(p.District, ""),
	)
}

// CountyDistrict matches the offices of one commissioner district of a county.
func CountyDistrict(state, county, district string) p.Condition {
	return p.All(
		p.Eq(p.State, state),
		p.Eq(p.ElectionScope, string(civic.ElectionScopeCounty)),
		p.Eq(p.DistrictType, string(civic.DistrictTypeCounty)),
		p.Eq(p.County, county),
		p.Eq(p.District, district),
	)
}

// City matches the at large offices of a municipality and, when ward is
// known, the offices of that ward.
func City(state string, municipality p.Condition, ward string) p.Condition {
	district := p.Eq(p.District, "")
	if ward != "" {
		district = p.Any(district, p.Eq(p.District, ward))
	}
	return p.All(
		p.Eq(p.State, state),
		p.Eq(p.ElectionScope, string(civic.ElectionScopeCity)),
		municipality,
		district,
	)
}

var (
	wardPattern = regexp.MustCompile(`(?i)^(.*?)\s+ward\s+(\d+)$`)
	bareWard    = regexp.MustCompile(`(?i)^(?:ward\s+)?(\d+)$`)
	digits      = regexp.MustCompile(`\d+`)
)

// SplitWard splits a combined "{municipality} Ward {n}" value. A bare ward
// number comes back with an empty municipality; anything else is taken as a
// municipality without ward.
func SplitWard(ward string) (municipality, number string) {
	ward = extract.Clean(ward)
	if m := wardPattern.FindStringSubmatch(ward); m != nil {
		return m[1], Number(m[2])
	}
	if m := bareWard.FindStringSubmatch(ward); m != nil {
		return "", Number(m[1])
	}
	return ward, ""
}

// Number extracts the first number of a district value, so "4th" and
// "District 04" both become "4". Values without digits are upper-cased as is.
func Number(s string) string {
	s = extract.Clean(s)
	if n := digits.FindString(s); n != "" {
		if trimmed := strings.TrimLeft(n, "0"); trimmed != "" {
			return trimmed
		}
		return "0"
	}
	return strings.ToUpper(s)
}

// StateCode returns d.State upper-cased or fallback when d carries none.
func StateCode(d VoterDistricts, fallback string) string {
	if s := strings.ToUpper(strings.TrimSpace(d.State)); s != "" {
		return s
	}
	return fallback
}
