// Package colorado ingests the candidate list published by the Colorado
// Secretary of State.
package colorado

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/candidatos-info/civic-enrichers/extract"
	"github.com/candidatos-info/civic-enrichers/filings"
	"github.com/candidatos-info/civic-enrichers/jurisdiction"
	"github.com/candidatos-info/civic-enrichers/slugs"
)

const (
	code   = "CO"
	source = "co-sos"
)

// Colorado implements jurisdiction.Jurisdiction.
type Colorado struct{}

// New returns the Colorado jurisdiction.
func New() jurisdiction.Jurisdiction {
	return Colorado{}
}

func (Colorado) Code() string   { return code }
func (Colorado) Source() string { return source }

// Row is one line of the candidate list, a plain comma separated file.
type Row struct {
	ElectionYear   string `csv:"Election Year" json:"election_year"`
	Office         string `csv:"Office" json:"office"`
	County         string `csv:"County" json:"county"`
	Municipality   string `csv:"Municipality" json:"municipality"`
	SchoolDistrict string `csv:"School District" json:"school_district"`
	Name           string `csv:"Candidate Name" json:"candidate_name"`
	Party          string `csv:"Party" json:"party"`
	Address        string `csv:"Mailing Address" json:"-"`
	City           string `csv:"City" json:"city"`
	State          string `csv:"State" json:"state"`
	Zip            string `csv:"Zip" json:"zip"`
	Phone          string `csv:"Phone" json:"-"`
	Email          string `csv:"Email" json:"-"`
	Website        string `csv:"Website" json:"website"`
	Status         string `csv:"Status" json:"status"`
	DateFiled      string `csv:"Date Filed" json:"date_filed"`
	DateQualified  string `csv:"Date Qualified" json:"date_qualified"`
	DateWithdrawn  string `csv:"Date Withdrawn" json:"date_withdrawn"`
}

var dateLayouts = []string{"2006-01-02", "1/2/2006", "01/02/2006"}

// ReadFilings decodes the candidate list.
func (Colorado) ReadFilings(r io.Reader) ([]filings.RawFiling, error) {
	var rows []*Row
	if err := filings.Decode(r, filings.Format{}, &rows); err != nil {
		return nil, fmt.Errorf("failed to read colorado filings, error %w", err)
	}
	out := make([]filings.RawFiling, 0, len(rows))
	for i, row := range rows {
		out = append(out, row.filing(filings.RowNumber(i)))
	}
	return out, nil
}

func (row *Row) filing(n int) filings.RawFiling {
	dropDate := filings.ParseDate(row.DateWithdrawn, dateLayouts...)
	return filings.RawFiling{
		SourceRow:      n,
		OfficeTitle:    row.Office,
		County:         row.County,
		Municipality:   row.Municipality,
		SchoolDistrict: row.SchoolDistrict,
		CandidateName:  row.Name,
		PartyCode:      row.Party,
		Email:          extract.Clean(row.Email),
		Phone:          extract.Clean(row.Phone),
		Website:        extract.Clean(row.Website),
		AddressLine1:   extract.Clean(row.Address),
		City:           extract.Clean(row.City),
		State:          extract.Clean(row.State),
		PostalCode:     extract.Clean(row.Zip),
		Withdrawn:      strings.EqualFold(strings.TrimSpace(row.Status), "withdrawn") || dropDate != nil,
		FilingDate:     filings.ParseDate(row.DateFiled, dateLayouts...),
		QualifyDate:    filings.ParseDate(row.DateQualified, dateLayouts...),
		DropDate:       dropDate,
		Raw:            row,
	}
}

// Colorado marks races filling a vacancy with a trailing "- Vacancy" or
// "(Vacancy)" instead of the usual qualifiers.
var vacancy = regexp.MustCompile(`(?i)\s*[-(]\s*vacancy\s*\)?\s*$`)

func (Colorado) ExtractOffice(f filings.RawFiling) extract.Attributes {
	title := extract.StripQualifiers(vacancy.ReplaceAllString(f.OfficeTitle, ""))
	return officeRules.Decompose(title, extract.Context{
		State:          code,
		County:         f.County,
		Municipality:   f.Municipality,
		SchoolDistrict: f.SchoolDistrict,
	})
}

var parties = extract.Parties.With(
	extract.PartyPattern(`acn|american constitution(?: party)?`, extract.Party{Name: "American Constitution", Abbreviation: "ACN"}),
	extract.PartyPattern(`apv|approval voting(?: party)?`, extract.Party{Name: "Approval Voting", Abbreviation: "APV"}),
	extract.PartyPattern(`uni|unity(?: party)?`, extract.Party{Name: "Unity", Abbreviation: "UNI"}),
)

func (Colorado) ExtractParty(raw string) (extract.Party, bool) {
	return parties.Normalize(raw)
}

func (Colorado) Qualifiers(f filings.RawFiling) extract.RaceQualifiers {
	q := extract.Qualifiers(f.OfficeTitle)
	if vacancy.MatchString(f.OfficeTitle) {
		q.IsSpecial = true
	}
	return q
}

// PrimaryPartyLabel names the party of a primary. Colorado party columns
// carry either a name or an abbreviation.
func (Colorado) PrimaryPartyLabel(partyCode string) string {
	if p, ok := parties.Normalize(partyCode); ok {
		return p.Name
	}
	return slugs.PrimaryPartyLabel(partyCode)
}

// PrimaryDate is the last Tuesday of June.
func (Colorado) PrimaryDate(year int) time.Time {
	return slugs.LastWeekday(year, time.June, time.Tuesday)
}
