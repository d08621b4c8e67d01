// Package jurisdiction defines what a state election authority has to
// provide to be ingested: how its filing files are read, how its office
// vocabulary maps onto offices and how its districts select offices.
package jurisdiction

import (
	"io"
	"time"

	"github.com/candidatos-info/civic-enrichers/extract"
	"github.com/candidatos-info/civic-enrichers/filings"
	"github.com/candidatos-info/civic-enrichers/predicate"
)

// Jurisdiction is implemented once per state.
type Jurisdiction interface {
	// Code is the two letter state code, such as "MN".
	Code() string

	// Source namespaces politician slugs, so same-named candidates coming
	// from different sources never collide.
	Source() string

	// ReadFilings decodes a raw filing file.
	ReadFilings(r io.Reader) ([]filings.RawFiling, error)

	// ExtractOffice decomposes the office of a filing. It never fails; an
	// unknown office has an empty name.
	ExtractOffice(f filings.RawFiling) extract.Attributes

	// ExtractParty maps the party column onto a canonical party. The boolean
	// is false for nonpartisan candidates and unrecognized input.
	ExtractParty(raw string) (extract.Party, bool)

	// Qualifiers returns the special election and seat count facts of a filing.
	Qualifiers(f filings.RawFiling) extract.RaceQualifiers

	// PrimaryPartyLabel is the party segment of a primary race title, or ""
	// when primaries are not split by party.
	PrimaryPartyLabel(partyCode string) string

	// PrimaryDate is the primary election day of a year.
	PrimaryDate(year int) time.Time

	// BuildPredicate selects the district offices on a voter's ballot.
	BuildPredicate(d VoterDistricts) predicate.Condition
}

// VoterDistricts are the districts a geocoder resolved for one voter. Empty
// fields are unknown.
type VoterDistricts struct {
	State              string `json:"state"`
	Congressional      string `json:"congressional"`
	StateSenate        string `json:"state_senate"`
	StateHouse         string `json:"state_house"`
	County             string `json:"county"`
	CountyCommissioner string `json:"county_commissioner"`
	Judicial           string `json:"judicial"`
	SchoolDistrict     string `json:"school_district"`
	SchoolDistrictType string `json:"school_district_type"`
	SchoolSubdistrict  string `json:"school_subdistrict"`
	SoilAndWater       string `json:"soil_and_water"`
	Hospital           string `json:"hospital"`
	Ward               string `json:"ward"`
	Municipality       string `json:"municipality"`
}
