package minnesota

import (
	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/candidatos-info/civic-enrichers/extract"
)

func federal(name string, election civic.ElectionScope, t civic.DistrictType, chamber civic.Chamber) civic.OfficeFields {
	return civic.OfficeFields{Name: name, OfficeType: "Legislative", Chamber: chamber, PoliticalScope: civic.PoliticalScopeFederal, ElectionScope: election, DistrictType: t}
}

func statewide(name, officeType string) civic.OfficeFields {
	return civic.OfficeFields{Name: name, OfficeType: officeType, PoliticalScope: civic.PoliticalScopeState, ElectionScope: civic.ElectionScopeState}
}

func county(name string) civic.OfficeFields {
	return civic.OfficeFields{Name: name, OfficeType: "County", PoliticalScope: civic.PoliticalScopeLocal, ElectionScope: civic.ElectionScopeCounty, DistrictType: civic.DistrictTypeCounty}
}

func city(name string) civic.OfficeFields {
	return civic.OfficeFields{Name: name, OfficeType: "Municipal", PoliticalScope: civic.PoliticalScopeLocal, ElectionScope: civic.ElectionScopeCity, DistrictType: civic.DistrictTypeCity}
}

// special district offices: school, hospital and soil and water boards
func special(name, officeType string, t civic.DistrictType) civic.OfficeFields {
	return civic.OfficeFields{Name: name, OfficeType: officeType, PoliticalScope: civic.PoliticalScopeLocal, ElectionScope: civic.ElectionScopeDistrict, DistrictType: t}
}

// officeRules maps the office titles of the filing file, with race
// qualifiers already stripped, onto offices.
var officeRules = extract.OfficeRules{
	extract.Rule(`^president(?: (?:and|&) vice[- ]president)?(?: of the united states)?$`, civic.OfficeFields{
		Name: "President", OfficeType: "Executive", PoliticalScope: civic.PoliticalScopeFederal, ElectionScope: civic.ElectionScopeNational,
	}),
	extract.Rule(`^u\.? ?s\.? senator$`, federal("U.S. Senate", civic.ElectionScopeState, "", civic.ChamberSenate)),
	extract.Rule(`^u\.? ?s\.? representative district (?P<district>\d+)$`, federal("U.S. House", civic.ElectionScopeDistrict, civic.DistrictTypeUsCongressional, civic.ChamberHouse)),
	extract.Rule(`^state senator district (?P<district>\d+)$`, civic.OfficeFields{
		Name: "State Senate", OfficeType: "Legislative", Chamber: civic.ChamberSenate, PoliticalScope: civic.PoliticalScopeState, ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeStateSenate,
	}),
	extract.Rule(`^state representative district (?P<district>\d+[ab])$`, civic.OfficeFields{
		Name: "State House", OfficeType: "Legislative", Chamber: civic.ChamberHouse, PoliticalScope: civic.PoliticalScopeState, ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeStateHouse,
	}),
	extract.Rule(`^governor(?: (?:and|&) lieutenant governor)?$`, statewide("Governor", "Executive")),
	extract.Rule(`^secretary of state$`, statewide("Secretary of State", "Executive")),
	extract.Rule(`^state auditor$`, statewide("State Auditor", "Executive")),
	extract.Rule(`^attorney general$`, statewide("Attorney General", "Executive")),
	extract.Rule(`^chief justice - supreme court$`, statewide("Supreme Court Chief Justice", "Judicial")),
	extract.Rule(`^associate justice - supreme court (?P<seat>\d+)$`, statewide("Supreme Court Associate Justice", "Judicial")),
	extract.Rule(`^judge - court of appeals (?P<seat>\d+)$`, statewide("Court of Appeals Judge", "Judicial")),
	extract.Rule(`^judge - (?P<district>\d+)(?:st|nd|rd|th) district court (?P<seat>\d+)$`, civic.OfficeFields{
		Name: "District Court Judge", OfficeType: "Judicial", PoliticalScope: civic.PoliticalScopeState, ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeJudicial,
	}),
	extract.Rule(`^county commissioner district (?P<district>\d+)$`, county("County Commissioner")),
	extract.Rule(`^county sheriff$`, county("County Sheriff")),
	extract.Rule(`^county attorney$`, county("County Attorney")),
	extract.Rule(`^county auditor(?:[- /]treasurer)?$`, county("County Auditor-Treasurer")),
	extract.Rule(`^county recorder$`, county("County Recorder")),
	extract.Rule(`^county park commissioner district (?P<district>\d+)$`, county("County Park Commissioner")),
	extract.Rule(`^soil and water (?:conservation )?(?:district )?supervisor district (?P<district>\d+)$`, special("Soil and Water Supervisor", "Conservation", civic.DistrictTypeSoilAndWater)),
	extract.Rule(`^hospital district board member(?: (?:district|seat) (?P<district>\d+)| (?P<seat>at[- ]large))?(?: \((?P<hospital>[^)]+)\))?$`, special("Hospital District Board Member", "Health", civic.DistrictTypeHospital)),
	extract.Rule(`^school board member(?: (?P<seat>at[- ]large)| (?:district|position) (?P<district>\d+))?(?: \((?P<school>[^)]*\d[^)]*)\))?$`, special("School Board Member", "Education", civic.DistrictTypeSchool)),
	extract.Rule(`^mayor$`, city("Mayor")),
	extract.Rule(`^council member(?: (?:ward|district) (?P<district>\d+)| (?P<seat>at[- ]large))?$`, city("City Council Member")),
	extract.Rule(`^(?:town|township) supervisor(?: seat (?P<seat>[a-z0-9]+))?$`, city("Town Supervisor")),
	extract.Rule(`^(?:town|township) clerk$`, city("Town Clerk")),
	extract.Rule(`^(?:town|township) treasurer$`, city("Town Treasurer")),
}
