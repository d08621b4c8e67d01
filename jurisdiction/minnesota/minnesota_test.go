package minnesota

import (
	"strings"
	"testing"
	"time"

	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/candidatos-info/civic-enrichers/filings"
	"github.com/candidatos-info/civic-enrichers/jurisdiction"
	"github.com/candidatos-info/civic-enrichers/predicate"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestExtractOffice(t *testing.T) {
	testCases := []struct {
		name   string
		filing filings.RawFiling
		want   civic.OfficeFields
	}{
		{
			"congressional district",
			filings.RawFiling{OfficeTitle: "U.S. Representative District 3"},
			civic.OfficeFields{Name: "U.S. House", OfficeType: "Legislative", Chamber: civic.ChamberHouse, PoliticalScope: civic.PoliticalScopeFederal, ElectionScope: civic.ElectionScopeDistrict, State: "MN", DistrictType: civic.DistrictTypeUsCongressional, District: "3"},
		},
		{
			"state house district keeps its letter",
			filings.RawFiling{OfficeTitle: "State Representative District 52b"},
			civic.OfficeFields{Name: "State House", OfficeType: "Legislative", Chamber: civic.ChamberHouse, PoliticalScope: civic.PoliticalScopeState, ElectionScope: civic.ElectionScopeDistrict, State: "MN", DistrictType: civic.DistrictTypeStateHouse, District: "52B"},
		},
		{
			"special election qualifier stripped",
			filings.RawFiling{OfficeTitle: "Special Election for State Senator District 45"},
			civic.OfficeFields{Name: "State Senate", OfficeType: "Legislative", Chamber: civic.ChamberSenate, PoliticalScope: civic.PoliticalScopeState, ElectionScope: civic.ElectionScopeDistrict, State: "MN", DistrictType: civic.DistrictTypeStateSenate, District: "45"},
		},
		{
			"school district code in parentheses",
			filings.RawFiling{OfficeTitle: "School Board Member (Elect 3) (ISD #11)", County: "Anoka"},
			civic.OfficeFields{Name: "School Board Member", OfficeType: "Education", PoliticalScope: civic.PoliticalScopeLocal, ElectionScope: civic.ElectionScopeDistrict, State: "MN", County: "Anoka", DistrictType: civic.DistrictTypeSchool, SchoolDistrict: "11"},
		},
		{
			"school subdistrict",
			filings.RawFiling{OfficeTitle: "School Board Member District 2 (SSD #1)"},
			civic.OfficeFields{Name: "School Board Member", OfficeType: "Education", PoliticalScope: civic.PoliticalScopeLocal, ElectionScope: civic.ElectionScopeDistrict, State: "MN", DistrictType: civic.DistrictTypeSchool, SchoolDistrict: "1", District: "2"},
		},
		{
			"district court judge",
			filings.RawFiling{OfficeTitle: "Judge - 4th District Court 12"},
			civic.OfficeFields{Name: "District Court Judge", OfficeType: "Judicial", PoliticalScope: civic.PoliticalScopeState, ElectionScope: civic.ElectionScopeDistrict, State: "MN", DistrictType: civic.DistrictTypeJudicial, District: "4", Seat: "12"},
		},
		{
			"supreme court seat",
			filings.RawFiling{OfficeTitle: "Associate Justice - Supreme Court 2"},
			civic.OfficeFields{Name: "Supreme Court Associate Justice", OfficeType: "Judicial", PoliticalScope: civic.PoliticalScopeState, ElectionScope: civic.ElectionScopeState, State: "MN", Seat: "2"},
		},
		{
			"city ward",
			filings.RawFiling{OfficeTitle: "Council Member Ward 3", Municipality: "Minneapolis"},
			civic.OfficeFields{Name: "City Council Member", OfficeType: "Municipal", PoliticalScope: civic.PoliticalScopeLocal, ElectionScope: civic.ElectionScopeCity, State: "MN", DistrictType: civic.DistrictTypeCity, Municipality: "Minneapolis", District: "3"},
		},
		{
			"soil and water county from row",
			filings.RawFiling{OfficeTitle: "Soil and Water Supervisor District 2", County: "Cook County"},
			civic.OfficeFields{Name: "Soil and Water Supervisor", OfficeType: "Conservation", PoliticalScope: civic.PoliticalScopeLocal, ElectionScope: civic.ElectionScopeDistrict, State: "MN", County: "Cook", DistrictType: civic.DistrictTypeSoilAndWater, District: "2"},
		},
		{
			"hospital named in title",
			filings.RawFiling{OfficeTitle: "Hospital District Board Member At Large (Cook County Hospital District)", County: "Cook"},
			civic.OfficeFields{Name: "Hospital District Board Member", OfficeType: "Health", PoliticalScope: civic.PoliticalScopeLocal, ElectionScope: civic.ElectionScopeDistrict, State: "MN", County: "Cook", DistrictType: civic.DistrictTypeHospital, HospitalDistrict: "Cook County Hospital District", Seat: "At Large"},
		},
		{
			"county wide office",
			filings.RawFiling{OfficeTitle: "County Auditor-Treasurer", County: "ANOKA COUNTY"},
			civic.OfficeFields{Name: "County Auditor-Treasurer", OfficeType: "County", PoliticalScope: civic.PoliticalScopeLocal, ElectionScope: civic.ElectionScopeCounty, State: "MN", County: "Anoka", DistrictType: civic.DistrictTypeCounty},
		},
	}
	mn := New()
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := mn.ExtractOffice(tt.filing)
			if diff := cmp.Diff(tt.want, got.OfficeFields); diff != "" {
				t.Errorf("unexpected office (-want +got):\n%s", diff)
			}
			assert.Empty(t, got.Ambiguities)
		})
	}
}

func TestExtractOfficeUnknownTitle(t *testing.T) {
	got := New().ExtractOffice(filings.RawFiling{OfficeTitle: "Dog Catcher"})
	assert.False(t, got.Known())
	assert.Equal(t, "MN", got.State)
	assert.NotEmpty(t, got.Ambiguities)
}

func TestQualifiersAndParties(t *testing.T) {
	mn := New()
	q := mn.Qualifiers(filings.RawFiling{OfficeTitle: "School Board Member (Elect 3) (ISD #11)"})
	assert.Equal(t, 3, q.NumElected)
	assert.False(t, q.Special())

	p, ok := mn.ExtractParty("DFL")
	assert.True(t, ok)
	assert.Equal(t, "Democratic-Farmer-Labor", p.Name)
	p, ok = mn.ExtractParty("CP")
	assert.True(t, ok)
	assert.Equal(t, "Constitution", p.Name)
	_, ok = mn.ExtractParty("NP")
	assert.False(t, ok)

	assert.Equal(t, "Democratic", mn.PrimaryPartyLabel("DFL"))
	assert.Equal(t, "Nonpartisan", mn.PrimaryPartyLabel("NP"))
	assert.Equal(t, time.Date(2024, time.August, 13, 0, 0, 0, 0, time.UTC), mn.PrimaryDate(2024))
	assert.Equal(t, time.Date(2026, time.August, 11, 0, 0, 0, 0, time.UTC), mn.PrimaryDate(2026))
}

func TestReadFilings(t *testing.T) {
	content := strings.Join([]string{
		"Candidate Name;Office ID;Office Title;County Name;Municipality Name;School District Number;Hospital District;Party Abbreviation;Residence Street Address;Residence City;Residence State;Residence Zip;Campaign Phone;Campaign Website;Campaign Email;Filing Date;Withdrawn;Withdrawal Date",
		"Amy Klobuchar;0102;U.S. Senator;;;;;DFL;1 Main St;Minneapolis;MN;55401;612-555-0100;amyklobuchar.com;amy@example.com;05/21/2024;;",
		"José Núñez;2011;School Board Member (ISD #11);Anoka;;0011;;NP;;Anoka;MN;55303;;;;05/28/2024;Y;06/06/2024",
	}, "\n")
	encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
	require.NoError(t, err)

	rows, err := New().ReadFilings(strings.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].SourceRow)
	assert.Equal(t, "Amy Klobuchar", rows[0].CandidateName)
	assert.Equal(t, "U.S. Senator", rows[0].OfficeTitle)
	assert.Equal(t, "amy@example.com", rows[0].Email)
	assert.Equal(t, "55401", rows[0].PostalCode)
	assert.False(t, rows[0].Withdrawn)
	require.NotNil(t, rows[0].FilingDate)
	assert.Equal(t, time.Date(2024, time.May, 21, 0, 0, 0, 0, time.UTC), *rows[0].FilingDate)

	assert.Equal(t, 3, rows[1].SourceRow)
	assert.Equal(t, "José Núñez", rows[1].CandidateName)
	assert.Equal(t, "0011", rows[1].SchoolDistrict)
	assert.True(t, rows[1].Withdrawn)
	require.NotNil(t, rows[1].DropDate)
	assert.Equal(t, "11", New().ExtractOffice(rows[1]).SchoolDistrict)
}

func office(slug string, f civic.OfficeFields) civic.Office {
	f.State = "MN"
	return civic.Office{Slug: slug, OfficeFields: f}
}

func district(t civic.DistrictType, n string) civic.OfficeFields {
	return civic.OfficeFields{ElectionScope: civic.ElectionScopeDistrict, DistrictType: t, District: n}
}

var ballot = []civic.Office{
	{Slug: "president", OfficeFields: civic.OfficeFields{ElectionScope: civic.ElectionScopeNational}},
	office("mn-us-senate", civic.OfficeFields{ElectionScope: civic.ElectionScopeState}),
	office("mn-us-house-1", district(civic.DistrictTypeUsCongressional, "1")),
	office("mn-us-house-2", district(civic.DistrictTypeUsCongressional, "2")),
	office("mn-state-senate-52", district(civic.DistrictTypeStateSenate, "52")),
	office("mn-state-house-52a", district(civic.DistrictTypeStateHouse, "52A")),
	office("mn-state-house-52b", district(civic.DistrictTypeStateHouse, "52B")),
	office("mn-district-court-judge-10-3", civic.OfficeFields{ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeJudicial, District: "10", Seat: "3"}),
	office("mn-county-sheriff-anoka-county", civic.OfficeFields{ElectionScope: civic.ElectionScopeCounty, DistrictType: civic.DistrictTypeCounty, County: "Anoka"}),
	office("mn-county-commissioner-anoka-county-2", civic.OfficeFields{ElectionScope: civic.ElectionScopeCounty, DistrictType: civic.DistrictTypeCounty, County: "Anoka", District: "2"}),
	office("mn-county-commissioner-anoka-county-3", civic.OfficeFields{ElectionScope: civic.ElectionScopeCounty, DistrictType: civic.DistrictTypeCounty, County: "Anoka", District: "3"}),
	office("mn-county-sheriff-cook-county", civic.OfficeFields{ElectionScope: civic.ElectionScopeCounty, DistrictType: civic.DistrictTypeCounty, County: "Cook"}),
	office("mn-school-board-member-11", civic.OfficeFields{ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeSchool, SchoolDistrict: "11"}),
	office("mn-school-board-member-11-2", civic.OfficeFields{ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeSchool, SchoolDistrict: "11", District: "2"}),
	office("mn-school-board-member-11-3", civic.OfficeFields{ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeSchool, SchoolDistrict: "11", District: "3"}),
	office("mn-school-board-member-709", civic.OfficeFields{ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeSchool, SchoolDistrict: "709"}),
	office("mn-soil-and-water-supervisor-anoka-county-2", civic.OfficeFields{ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeSoilAndWater, County: "Anoka", District: "2"}),
	office("mn-soil-and-water-supervisor-cook-county-2", civic.OfficeFields{ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeSoilAndWater, County: "Cook", District: "2"}),
	office("mn-hospital-cook", civic.OfficeFields{ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeHospital, HospitalDistrict: "Hospital District 1", County: "Cook"}),
	office("mn-hospital-lake", civic.OfficeFields{ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeHospital, HospitalDistrict: "Hospital District 1", County: "Lake"}),
	office("mn-mayor-minneapolis", civic.OfficeFields{ElectionScope: civic.ElectionScopeCity, DistrictType: civic.DistrictTypeCity, Municipality: "Minneapolis"}),
	office("mn-city-council-member-minneapolis-3", civic.OfficeFields{ElectionScope: civic.ElectionScopeCity, DistrictType: civic.DistrictTypeCity, Municipality: "Minneapolis", District: "3"}),
	office("mn-city-council-member-minneapolis-4", civic.OfficeFields{ElectionScope: civic.ElectionScopeCity, DistrictType: civic.DistrictTypeCity, Municipality: "Minneapolis", District: "4"}),
	office("mn-town-supervisor-unorg", civic.OfficeFields{ElectionScope: civic.ElectionScopeCity, DistrictType: civic.DistrictTypeCity, Municipality: "Unorg. Terr. of Northeast Lake"}),
}

func onBallot(d jurisdiction.VoterDistricts) []string {
	var out []string
	for _, o := range predicate.Filter(ballot, New().BuildPredicate(d)) {
		out = append(out, o.Slug)
	}
	return out
}

func TestBuildPredicate(t *testing.T) {
	testCases := []struct {
		name      string
		districts jurisdiction.VoterDistricts
		want      []string
	}{
		{
			"congressional district only",
			jurisdiction.VoterDistricts{Congressional: "1"},
			[]string{"president", "mn-us-house-1"},
		},
		{
			"no districts",
			jurisdiction.VoterDistricts{},
			[]string{"president"},
		},
		{
			"full district set",
			jurisdiction.VoterDistricts{
				Congressional:      "01",
				StateSenate:        "52",
				StateHouse:         "52b",
				County:             "Anoka County",
				CountyCommissioner: "2",
				Judicial:           "10th",
				SchoolDistrict:     "ISD #11",
				SchoolSubdistrict:  "2",
				SoilAndWater:       "2",
				Ward:               "Minneapolis Ward 3",
			},
			[]string{
				"president",
				"mn-us-house-1",
				"mn-state-senate-52",
				"mn-state-house-52b",
				"mn-district-court-judge-10-3",
				"mn-county-sheriff-anoka-county",
				"mn-county-commissioner-anoka-county-2",
				"mn-school-board-member-11",
				"mn-school-board-member-11-2",
				"mn-soil-and-water-supervisor-anoka-county-2",
				"mn-mayor-minneapolis",
				"mn-city-council-member-minneapolis-3",
			},
		},
		{
			"school district without subdistrict",
			jurisdiction.VoterDistricts{SchoolDistrict: "0709", SchoolDistrictType: "ISD"},
			[]string{"president", "mn-school-board-member-709"},
		},
		{
			"hospital name recurring across counties",
			jurisdiction.VoterDistricts{County: "Cook", Hospital: "Hospital District 1"},
			[]string{"president", "mn-county-sheriff-cook-county", "mn-hospital-cook"},
		},
		{
			"municipality without ward",
			jurisdiction.VoterDistricts{Municipality: "Minneapolis"},
			[]string{"president", "mn-mayor-minneapolis"},
		},
		{
			"unorganized territory matched partially",
			jurisdiction.VoterDistricts{Municipality: "Unorganized Territory of Northeast Lake"},
			[]string{"president", "mn-town-supervisor-unorg"},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, onBallot(tt.districts))
		})
	}
}
