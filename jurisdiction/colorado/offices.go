package colorado

import (
	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/candidatos-info/civic-enrichers/extract"
)

func office(name, officeType string, political civic.PoliticalScope, election civic.ElectionScope, t civic.DistrictType) civic.OfficeFields {
	return civic.OfficeFields{Name: name, OfficeType: officeType, PoliticalScope: political, ElectionScope: election, DistrictType: t}
}

func legislature(name string, chamber civic.Chamber, political civic.PoliticalScope, t civic.DistrictType) civic.OfficeFields {
	f := office(name, "Legislative", political, civic.ElectionScopeDistrict, t)
	f.Chamber = chamber
	return f
}

// officeRules follow the "{office} - {district}" titles of the candidate list.
var officeRules = extract.OfficeRules{
	extract.Rule(`^president(?: of the united states)?$`, office("President", "Executive", civic.PoliticalScopeFederal, civic.ElectionScopeNational, "")),
	extract.Rule(`^(?:united states|u\.? ?s\.?) senat(?:e|or)(?: - (?:seat|class) (?P<seat>\d+))?$`, civic.OfficeFields{
		Name: "U.S. Senate", OfficeType: "Legislative", Chamber: civic.ChamberSenate, PoliticalScope: civic.PoliticalScopeFederal, ElectionScope: civic.ElectionScopeState,
	}),
	extract.Rule(`^(?:united states|u\.? ?s\.?) representative - district (?P<district>\d+)$`, legislature("U.S. House", civic.ChamberHouse, civic.PoliticalScopeFederal, civic.DistrictTypeUsCongressional)),
	extract.Rule(`^state senat(?:e|or) - district (?P<district>\d+)$`, legislature("State Senate", civic.ChamberSenate, civic.PoliticalScopeState, civic.DistrictTypeStateSenate)),
	extract.Rule(`^state representative - district (?P<district>\d+)$`, legislature("State House", civic.ChamberHouse, civic.PoliticalScopeState, civic.DistrictTypeStateHouse)),
	extract.Rule(`^governor(?:\s*(?:/|and|&)\s*lieutenant governor)?$`, office("Governor", "Executive", civic.PoliticalScopeState, civic.ElectionScopeState, "")),
	extract.Rule(`^secretary of state$`, office("Secretary of State", "Executive", civic.PoliticalScopeState, civic.ElectionScopeState, "")),
	extract.Rule(`^state treasurer$`, office("State Treasurer", "Executive", civic.PoliticalScopeState, civic.ElectionScopeState, "")),
	extract.Rule(`^attorney general$`, office("Attorney General", "Executive", civic.PoliticalScopeState, civic.ElectionScopeState, "")),
	extract.Rule(`^state board of education(?: member)? - congressional district (?P<district>\d+)$`, office("State Board of Education", "Education", civic.PoliticalScopeState, civic.ElectionScopeDistrict, civic.DistrictTypeUsCongressional)),
	extract.Rule(`^state board of education(?: member)? - (?P<seat>at[- ]large)$`, office("State Board of Education", "Education", civic.PoliticalScopeState, civic.ElectionScopeState, "")),
	extract.Rule(`^regent of the university of colorado - congressional district (?P<district>\d+)$`, office("CU Regent", "Education", civic.PoliticalScopeState, civic.ElectionScopeDistrict, civic.DistrictTypeUsCongressional)),
	extract.Rule(`^regent of the university of colorado - (?P<seat>at[- ]large)$`, office("CU Regent", "Education", civic.PoliticalScopeState, civic.ElectionScopeState, "")),
	extract.Rule(`^(?:colorado )?supreme court justice$`, office("Supreme Court Justice", "Judicial", civic.PoliticalScopeState, civic.ElectionScopeState, "")),
	extract.Rule(`^(?:colorado )?court of appeals judge$`, office("Court of Appeals Judge", "Judicial", civic.PoliticalScopeState, civic.ElectionScopeState, "")),
	extract.Rule(`^district attorney - (?P<district>\d+)(?:st|nd|rd|th) judicial district$`, office("District Attorney", "Judicial", civic.PoliticalScopeLocal, civic.ElectionScopeDistrict, civic.DistrictTypeJudicial)),
	extract.Rule(`^district court judge - (?P<district>\d+)(?:st|nd|rd|th) judicial district$`, office("District Court Judge", "Judicial", civic.PoliticalScopeState, civic.ElectionScopeDistrict, civic.DistrictTypeJudicial)),
	extract.Rule(`^(?:board of )?county commissioner - district (?P<district>\d+)$`, office("County Commissioner", "County", civic.PoliticalScopeLocal, civic.ElectionScopeCounty, civic.DistrictTypeCounty)),
	extract.Rule(`^county clerk(?: (?:and|&) recorder)?$`, office("County Clerk and Recorder", "County", civic.PoliticalScopeLocal, civic.ElectionScopeCounty, civic.DistrictTypeCounty)),
	extract.Rule(`^county treasurer$`, office("County Treasurer", "County", civic.PoliticalScopeLocal, civic.ElectionScopeCounty, civic.DistrictTypeCounty)),
	extract.Rule(`^county assessor$`, office("County Assessor", "County", civic.PoliticalScopeLocal, civic.ElectionScopeCounty, civic.DistrictTypeCounty)),
	extract.Rule(`^county sheriff$`, office("County Sheriff", "County", civic.PoliticalScopeLocal, civic.ElectionScopeCounty, civic.DistrictTypeCounty)),
	extract.Rule(`^county surveyor$`, office("County Surveyor", "County", civic.PoliticalScopeLocal, civic.ElectionScopeCounty, civic.DistrictTypeCounty)),
	extract.Rule(`^county coroner$`, office("County Coroner", "County", civic.PoliticalScopeLocal, civic.ElectionScopeCounty, civic.DistrictTypeCounty)),
	extract.Rule(`^county (?:court )?judge$`, office("County Judge", "Judicial", civic.PoliticalScopeLocal, civic.ElectionScopeCounty, civic.DistrictTypeCounty)),
	extract.Rule(`^mayor$`, office("Mayor", "Municipal", civic.PoliticalScopeLocal, civic.ElectionScopeCity, civic.DistrictTypeCity)),
	extract.Rule(`^city council(?: member)?(?: - (?:district|ward) (?P<district>\d+)| - (?P<seat>at[- ]large))?$`, office("City Council Member", "Municipal", civic.PoliticalScopeLocal, civic.ElectionScopeCity, civic.DistrictTypeCity)),
	extract.Rule(`^(?:board of education|school board) director(?: - district (?P<district>[a-z0-9]+)| - (?P<seat>at[- ]large))?$`, office("School Board Director", "Education", civic.PoliticalScopeLocal, civic.ElectionScopeDistrict, civic.DistrictTypeSchool)),
}
