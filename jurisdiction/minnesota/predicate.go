package minnesota

import (
	"regexp"
	"strings"

	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/candidatos-info/civic-enrichers/extract"
	"github.com/candidatos-info/civic-enrichers/jurisdiction"
	p "github.com/candidatos-info/civic-enrichers/predicate"
)

// hospital district names that recur across counties
var countyQualifiedHospitals = map[string]bool{
	"hospital district 1":           true,
	"hospital district 2":           true,
	"north shore hospital district": true,
}

var unorganized = regexp.MustCompile(`(?i)^unorg(?:anized|\.)?\s+terr(?:itory|\.)?(?:\s+of)?\s+(.+)$`)

// BuildPredicate ors national offices with one clause per known district.
func (Minnesota) BuildPredicate(d jurisdiction.VoterDistricts) p.Condition {
	state := jurisdiction.StateCode(d, code)
	county := extract.NormalizeCounty(d.County)
	conds := []p.Condition{jurisdiction.National()}
	if d.Congressional != "" {
		conds = append(conds, jurisdiction.District(state, civic.DistrictTypeUsCongressional, jurisdiction.Number(d.Congressional)))
	}
	if d.StateSenate != "" {
		conds = append(conds, jurisdiction.District(state, civic.DistrictTypeStateSenate, jurisdiction.Number(d.StateSenate)))
	}
	if house := houseDistrict(d.StateHouse); house != "" {
		conds = append(conds, jurisdiction.District(state, civic.DistrictTypeStateHouse, house))
	}
	if county != "" {
		conds = append(conds, jurisdiction.CountyWide(state, county))
		if d.CountyCommissioner != "" {
			conds = append(conds, jurisdiction.CountyDistrict(state, county, jurisdiction.Number(d.CountyCommissioner)))
		}
		if d.SoilAndWater != "" {
			conds = append(conds, p.All(
				p.Eq(p.State, state),
				p.Eq(p.ElectionScope, string(civic.ElectionScopeDistrict)),
				p.Eq(p.DistrictType, string(civic.DistrictTypeSoilAndWater)),
				p.Eq(p.County, county),
				p.Eq(p.District, jurisdiction.Number(d.SoilAndWater)),
			))
		}
	}
	if d.Judicial != "" {
		conds = append(conds, jurisdiction.District(state, civic.DistrictTypeJudicial, jurisdiction.Number(d.Judicial)))
	}
	if school := extract.SchoolDistrictNumber(d.SchoolDistrict); school != "" {
		conds = append(conds, schoolClause(state, school, d.SchoolSubdistrict))
	}
	if hospital := extract.Clean(d.Hospital); hospital != "" {
		conds = append(conds, hospitalClause(state, hospital, county))
	}
	municipality, ward := jurisdiction.SplitWard(d.Ward)
	if municipality == "" {
		municipality = extract.Clean(d.Municipality)
	}
	if municipality != "" {
		conds = append(conds, jurisdiction.City(state, municipalityMatch(municipality), ward))
	}
	return p.Any(conds...)
}

// "52B", "052b" and "District 52B" all become "52B"
func houseDistrict(s string) string {
	s = strings.ToUpper(extract.Clean(s))
	s = strings.TrimPrefix(s, "DISTRICT ")
	return strings.TrimLeft(s, "0")
}

// Subdistrict offices are on the ballot next to the at large seats of the
// same school district.
func schoolClause(state, school, subdistrict string) p.Condition {
	district := p.Eq(p.District, "")
	if subdistrict != "" {
		district = p.Any(district, p.Eq(p.District, jurisdiction.Number(subdistrict)))
	}
	return p.All(
		p.Eq(p.State, state),
		p.Eq(p.DistrictType, string(civic.DistrictTypeSchool)),
		p.Eq(p.SchoolDistrict, school),
		district,
	)
}

func hospitalClause(state, hospital, county string) p.Condition {
	conds := []p.Condition{
		p.Eq(p.State, state),
		p.Eq(p.DistrictType, string(civic.DistrictTypeHospital)),
		p.Eq(p.HospitalDistrict, hospital),
	}
	if countyQualifiedHospitals[strings.ToLower(hospital)] {
		conds = append(conds, p.Eq(p.County, county))
	}
	return p.All(conds...)
}

// Unorganized territories are published under several spellings, so only
// the place name is compared.
func municipalityMatch(municipality string) p.Condition {
	if m := unorganized.FindStringSubmatch(municipality); m != nil {
		return p.Contains(p.Municipality, m[1])
	}
	return p.Eq(p.Municipality, municipality)
}
