package extract

import (
	"testing"

	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var testRules = OfficeRules{
	Rule(`^u\.?s\.? representative district (?P<district>\d+)$`, civic.OfficeFields{
		Name: "U.S. House", PoliticalScope: civic.PoliticalScopeFederal, ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeUsCongressional,
	}),
	Rule(`^county commissioner(?: district (?P<district>\d+))?$`, civic.OfficeFields{
		Name: "County Commissioner", PoliticalScope: civic.PoliticalScopeLocal, ElectionScope: civic.ElectionScopeCounty, DistrictType: civic.DistrictTypeCounty,
	}),
	Rule(`^council member(?: (?P<seat>at[- ]large))?$`, civic.OfficeFields{
		Name: "City Council Member", PoliticalScope: civic.PoliticalScopeLocal, ElectionScope: civic.ElectionScopeCity, DistrictType: civic.DistrictTypeCity,
	}),
}

func TestDecompose(t *testing.T) {
	testCases := []struct {
		name  string
		title string
		ctx   Context
		want  civic.OfficeFields
	}{
		{
			"district captured from title",
			"U.S. Representative District 3",
			Context{State: "mn"},
			civic.OfficeFields{Name: "U.S. House", State: "MN", District: "3", PoliticalScope: civic.PoliticalScopeFederal, ElectionScope: civic.ElectionScopeDistrict, DistrictType: civic.DistrictTypeUsCongressional},
		},
		{
			"county taken from context",
			"county   commissioner district 2",
			Context{State: "MN", County: "Anoka County"},
			civic.OfficeFields{Name: "County Commissioner", State: "MN", County: "Anoka", District: "2", PoliticalScope: civic.PoliticalScopeLocal, ElectionScope: civic.ElectionScopeCounty, DistrictType: civic.DistrictTypeCounty},
		},
		{
			"at large seat label",
			"Council Member AT-LARGE",
			Context{State: "MN", Municipality: "Duluth"},
			civic.OfficeFields{Name: "City Council Member", State: "MN", Municipality: "Duluth", Seat: "At Large", PoliticalScope: civic.PoliticalScopeLocal, ElectionScope: civic.ElectionScopeCity, DistrictType: civic.DistrictTypeCity},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := testRules.Decompose(tt.title, tt.ctx)
			if diff := cmp.Diff(tt.want, got.OfficeFields); diff != "" {
				t.Errorf("unexpected attributes (-want +got):\n%s", diff)
			}
			assert.Empty(t, got.Ambiguities)
		})
	}
}

func TestDecomposeIsTotal(t *testing.T) {
	garbage := []string{"", "   ", "???", "\x00\xff", "(((", "District", "Elect 3)", "🗳️"}
	for _, title := range garbage {
		got := testRules.Decompose(title, Context{})
		assert.False(t, got.Known(), "title %q", title)
		assert.NotEmpty(t, got.Ambiguities, "title %q", title)
	}
}

func TestDecomposeRecordsMissingCounty(t *testing.T) {
	got := testRules.Decompose("County Commissioner", Context{State: "MN"})
	assert.True(t, got.Known())
	assert.False(t, got.Qualified())
	assert.Equal(t, []string{`county office "County Commissioner" without county`}, got.Ambiguities)

	got = testRules.Decompose("Council Member", Context{State: "MN"})
	assert.False(t, got.Qualified())
	assert.Equal(t, []string{`city office "City Council Member" without municipality`}, got.Ambiguities)

	assert.True(t, testRules.Decompose("County Commissioner", Context{State: "MN", County: "Anoka"}).Qualified())
	assert.True(t, testRules.Decompose("U.S. Representative District 3", Context{State: "MN"}).Qualified())
}

func TestNormalizeCounty(t *testing.T) {
	testCases := []struct {
		in  string
		out string
	}{
		{"Adams County", "Adams"},
		{"Adams", "Adams"},
		{"ADAMS COUNTY", "Adams"},
		{"  St. Louis   county ", "St. Louis"},
		{"adams county", "Adams"},
		{"st. louis", "St. Louis"},
		{"McLeod", "McLeod"},
		{"", ""},
	}
	for _, tt := range testCases {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.out, NormalizeCounty(tt.in))
		})
	}
	assert.Equal(t, NormalizeCounty("Adams County"), NormalizeCounty("Adams"))
}

func TestSchoolDistrictNumber(t *testing.T) {
	testCases := []struct {
		in  string
		out string
	}{
		{"ISD #11", "11"},
		{"SSD #1", "1"},
		{"isd 0709", "709"},
		{"Independent School District No. 281", "281"},
		{"2142", "2142"},
		{"", ""},
	}
	for _, tt := range testCases {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.out, SchoolDistrictNumber(tt.in))
		})
	}
}

func TestPartyNormalize(t *testing.T) {
	testCases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"DFL", "Democratic-Farmer-Labor", true},
		{"Democratic-Farmer-Labor", "Democratic-Farmer-Labor", true},
		{"DEM", "Democratic", true},
		{"Democratic Party", "Democratic", true},
		{"r", "Republican", true},
		{"Unaffiliated", "Unaffiliated", true},
		{"No Party Affiliation", "Unaffiliated", true},
		{"No Party Affiliation (formerly Democratic)", "Unaffiliated", true},
		{"Independence-Alliance", "Independence-Alliance", true},
		{"LMN", "Legal Marijuana Now", true},
		{"Nonpartisan", "", false},
		{"Whig", "", false},
		{"", "", false},
	}
	for _, tt := range testCases {
		t.Run(tt.in, func(t *testing.T) {
			p, ok := Parties.Normalize(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, p.Name)
		})
	}
}

func TestPartyWith(t *testing.T) {
	rules := Parties.With(PartyPattern(`acn|american constitution`, Party{Name: "American Constitution", Abbreviation: "ACN"}))
	p, ok := rules.Normalize("ACN")
	assert.True(t, ok)
	assert.Equal(t, "American Constitution", p.Name)
	_, ok = Parties.Normalize("ACN")
	assert.False(t, ok)
}

func TestQualifiers(t *testing.T) {
	testCases := []struct {
		title    string
		want     RaceQualifiers
		stripped string
	}{
		{"School Board Member (Elect 3)", RaceQualifiers{NumElected: 3}, "School Board Member"},
		{"Special Election for State Representative District 52B", RaceQualifiers{IsSpecial: true, NumElected: 1}, "State Representative District 52B"},
		{"County Commissioner District 2 - Unexpired Term", RaceQualifiers{IsUnexpired: true, NumElected: 1}, "County Commissioner District 2"},
		{"Council Member (Elect 2) (Special Election)", RaceQualifiers{IsSpecial: true, NumElected: 2}, "Council Member"},
		{"Mayor", RaceQualifiers{NumElected: 1}, "Mayor"},
		{"(Elect 0)", RaceQualifiers{NumElected: 1}, ""},
		{"", RaceQualifiers{NumElected: 1}, ""},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Qualifiers(tt.title))
			assert.Equal(t, tt.stripped, StripQualifiers(tt.title))
		})
	}
	assert.True(t, Qualifiers("Judge - Unexpired Term").Special())
}

func TestParseName(t *testing.T) {
	testCases := []struct {
		in   string
		want Name
	}{
		{"Amy Klobuchar", Name{First: "Amy", Last: "Klobuchar"}},
		{"Jennifer Lynn  Carnahan", Name{First: "Jennifer", Middle: "Lynn", Last: "Carnahan"}},
		{"Robert \"Bob\" Smith Jr.", Name{First: "Robert", Last: "Smith", Suffix: "Jr.", Preferred: "Bob"}},
		{"Neguse, Joe", Name{First: "Joe", Last: "Neguse"}},
		{"Smith, Jr.", Name{Last: "Smith", Suffix: "Jr."}},
		{"Smith, John Jr.", Name{First: "John", Last: "Smith", Suffix: "Jr."}},
		{"Carnahan, Jennifer Lynn III", Name{First: "Jennifer", Middle: "Lynn", Last: "Carnahan", Suffix: "III"}},
		{"Cher", Name{Last: "Cher"}},
		{"", Name{}},
	}
	for _, tt := range testCases {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseName(tt.in)); diff != "" {
				t.Errorf("unexpected name (-want +got):\n%s", diff)
			}
		})
	}
	assert.Equal(t, "Robert Smith Jr.", ParseName(`Robert "Bob" Smith Jr.`).Full())
	assert.Equal(t, ParseName("John Smith Jr.").Full(), ParseName("Smith, John Jr.").Full())
}
