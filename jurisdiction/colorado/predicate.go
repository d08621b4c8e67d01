package colorado

import (
	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/candidatos-info/civic-enrichers/extract"
	"github.com/candidatos-info/civic-enrichers/jurisdiction"
	p "github.com/candidatos-info/civic-enrichers/predicate"
)

// BuildPredicate ors national offices with one clause per known district.
// Colorado has no school subdistricts, soil and water or hospital districts:
// every director of a school district is elected by the whole district.
func (Colorado) BuildPredicate(d jurisdiction.VoterDistricts) p.Condition {
	state := jurisdiction.StateCode(d, code)
	conds := []p.Condition{jurisdiction.National()}
	if d.Congressional != "" {
		conds = append(conds, jurisdiction.District(state, civic.DistrictTypeUsCongressional, jurisdiction.Number(d.Congressional)))
	}
	if d.StateSenate != "" {
		conds = append(conds, jurisdiction.District(state, civic.DistrictTypeStateSenate, jurisdiction.Number(d.StateSenate)))
	}
	if d.StateHouse != "" {
		conds = append(conds, jurisdiction.District(state, civic.DistrictTypeStateHouse, jurisdiction.Number(d.StateHouse)))
	}
	if county := extract.NormalizeCounty(d.County); county != "" {
		conds = append(conds, jurisdiction.CountyWide(state, county))
		if d.CountyCommissioner != "" {
			conds = append(conds, jurisdiction.CountyDistrict(state, county, jurisdiction.Number(d.CountyCommissioner)))
		}
	}
	if d.Judicial != "" {
		conds = append(conds, jurisdiction.District(state, civic.DistrictTypeJudicial, jurisdiction.Number(d.Judicial)))
	}
	if school := extract.SchoolDistrictNumber(d.SchoolDistrict); school != "" {
		conds = append(conds, p.All(
			p.Eq(p.State, state),
			p.Eq(p.DistrictType, string(civic.DistrictTypeSchool)),
			p.Eq(p.SchoolDistrict, school),
		))
	}
	municipality, ward := jurisdiction.SplitWard(d.Ward)
	if municipality == "" {
		municipality = extract.Clean(d.Municipality)
	}
	if municipality != "" {
		conds = append(conds, jurisdiction.City(state, p.Eq(p.Municipality, municipality), ward))
	}
	return p.Any(conds...)
}
