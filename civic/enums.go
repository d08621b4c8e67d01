package civic

// PoliticalScope is the level of government an office belongs to.
type PoliticalScope string

const (
	// PoliticalScopeFederal is used for offices of the federal government
	PoliticalScopeFederal PoliticalScope = "Federal"

	// PoliticalScopeState is used for offices of a state government
	PoliticalScopeState PoliticalScope = "State"

	// PoliticalScopeLocal is used for county, city, school and special district offices
	PoliticalScopeLocal PoliticalScope = "Local"
)

// ElectionScope is the geographic breadth of the electorate that votes for an office.
type ElectionScope string

const (
	ElectionScopeNational ElectionScope = "National"
	ElectionScopeState    ElectionScope = "State"
	ElectionScopeDistrict ElectionScope = "District"
	ElectionScopeCounty   ElectionScope = "County"
	ElectionScopeCity     ElectionScope = "City"
)

// DistrictType is the category of sub-state district an office is elected from.
type DistrictType string

const (
	DistrictTypeUsCongressional DistrictType = "UsCongressional"
	DistrictTypeStateSenate     DistrictType = "StateSenate"
	DistrictTypeStateHouse      DistrictType = "StateHouse"
	DistrictTypeCounty          DistrictType = "County"
	DistrictTypeCity            DistrictType = "City"
	DistrictTypeSchool          DistrictType = "School"
	DistrictTypeHospital        DistrictType = "Hospital"
	DistrictTypeJudicial        DistrictType = "Judicial"
	DistrictTypeSoilAndWater    DistrictType = "SoilAndWater"
)

// Chamber is the legislative chamber of an office, when it has one.
type Chamber string

const (
	ChamberHouse  Chamber = "House"
	ChamberSenate Chamber = "Senate"
)

// RaceType tells general contests apart from primaries.
type RaceType string

const (
	RaceTypeGeneral RaceType = "General"
	RaceTypePrimary RaceType = "Primary"
)

// ParseRaceType maps user input ("general", "PRIMARY") to a RaceType. The
// boolean is false for anything else.
func ParseRaceType(s string) (RaceType, bool) {
	switch s {
	case "general", "General", "GENERAL":
		return RaceTypeGeneral, true
	case "primary", "Primary", "PRIMARY":
		return RaceTypePrimary, true
	}
	return "", false
}
