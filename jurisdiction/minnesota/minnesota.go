// Package minnesota ingests the candidate filing file published by the
// Minnesota Secretary of State.
package minnesota

import (
	"fmt"
	"io"
	"time"

	"github.com/candidatos-info/civic-enrichers/extract"
	"github.com/candidatos-info/civic-enrichers/filings"
	"github.com/candidatos-info/civic-enrichers/jurisdiction"
	"github.com/candidatos-info/civic-enrichers/slugs"
)

const (
	code   = "MN"
	source = "mn-sos"
)

// Minnesota implements jurisdiction.Jurisdiction.
type Minnesota struct{}

// New returns the Minnesota jurisdiction.
func New() jurisdiction.Jurisdiction {
	return Minnesota{}
}

func (Minnesota) Code() string   { return code }
func (Minnesota) Source() string { return source }

// Row is one line of the filing file. The file is ';' delimited and
// encoded as ISO 8859-1.
type Row struct {
	CandidateName    string `csv:"Candidate Name" json:"candidate_name"`
	OfficeID         string `csv:"Office ID" json:"office_id"`
	OfficeTitle      string `csv:"Office Title" json:"office_title"`
	County           string `csv:"County Name" json:"county"`
	Municipality     string `csv:"Municipality Name" json:"municipality"`
	SchoolDistrict   string `csv:"School District Number" json:"school_district"`
	HospitalDistrict string `csv:"Hospital District" json:"hospital_district"`
	Party            string `csv:"Party Abbreviation" json:"party"`
	Address          string `csv:"Residence Street Address" json:"-"`
	City             string `csv:"Residence City" json:"city"`
	State            string `csv:"Residence State" json:"state"`
	Zip              string `csv:"Residence Zip" json:"zip"`
	Phone            string `csv:"Campaign Phone" json:"-"`
	Website          string `csv:"Campaign Website" json:"website"`
	Email            string `csv:"Campaign Email" json:"-"`
	FilingDate       string `csv:"Filing Date" json:"filing_date"`
	Withdrawn        string `csv:"Withdrawn" json:"withdrawn"`
	WithdrawalDate   string `csv:"Withdrawal Date" json:"withdrawal_date"`
}

var dateLayouts = []string{"01/02/2006", "1/2/2006", "2006-01-02"}

// ReadFilings decodes the filing file.
func (Minnesota) ReadFilings(r io.Reader) ([]filings.RawFiling, error) {
	var rows []*Row
	if err := filings.Decode(r, filings.Format{Comma: ';', Latin1: true}, &rows); err != nil {
		return nil, fmt.Errorf("failed to read minnesota filings, error %w", err)
	}
	out := make([]filings.RawFiling, 0, len(rows))
	for i, row := range rows {
		out = append(out, row.filing(filings.RowNumber(i)))
	}
	return out, nil
}

func (row *Row) filing(n int) filings.RawFiling {
	dropDate := filings.ParseDate(row.WithdrawalDate, dateLayouts...)
	return filings.RawFiling{
		SourceRow:        n,
		OfficeTitle:      row.OfficeTitle,
		County:           row.County,
		Municipality:     row.Municipality,
		SchoolDistrict:   row.SchoolDistrict,
		HospitalDistrict: row.HospitalDistrict,
		CandidateName:    row.CandidateName,
		PartyCode:        row.Party,
		Email:            extract.Clean(row.Email),
		Phone:            extract.Clean(row.Phone),
		Website:          extract.Clean(row.Website),
		AddressLine1:     extract.Clean(row.Address),
		City:             extract.Clean(row.City),
		State:            extract.Clean(row.State),
		PostalCode:       extract.Clean(row.Zip),
		Withdrawn:        filings.Flag(row.Withdrawn) || dropDate != nil,
		FilingDate:       filings.ParseDate(row.FilingDate, dateLayouts...),
		DropDate:         dropDate,
		Raw:              row,
	}
}

// ExtractOffice strips the race qualifiers from the title before matching
// it against the office rules.
func (Minnesota) ExtractOffice(f filings.RawFiling) extract.Attributes {
	return officeRules.Decompose(extract.StripQualifiers(f.OfficeTitle), extract.Context{
		State:            code,
		County:           f.County,
		Municipality:     f.Municipality,
		SchoolDistrict:   f.SchoolDistrict,
		HospitalDistrict: f.HospitalDistrict,
	})
}

var parties = extract.Parties.With(
	extract.PartyPattern(`cp|constitution(?: party)?`, extract.Party{Name: "Constitution", Abbreviation: "CP"}),
	extract.PartyPattern(`slp|socialist(?: party)?`, extract.Party{Name: "Socialist", Abbreviation: "SLP"}),
)

func (Minnesota) ExtractParty(raw string) (extract.Party, bool) {
	return parties.Normalize(raw)
}

// Qualifiers reads "(Elect N)", "Special Election" and "Unexpired Term"
// from the office title.
func (Minnesota) Qualifiers(f filings.RawFiling) extract.RaceQualifiers {
	return extract.Qualifiers(f.OfficeTitle)
}

// PrimaryPartyLabel expands the party abbreviation. Minnesota holds
// partisan primaries per party and a nonpartisan primary ("NP").
func (Minnesota) PrimaryPartyLabel(partyCode string) string {
	return slugs.PrimaryPartyLabel(partyCode)
}

// PrimaryDate is the second Tuesday of August.
func (Minnesota) PrimaryDate(year int) time.Time {
	return slugs.NthWeekday(year, time.August, time.Tuesday, 2)
}
