// Package filings holds the jurisdiction independent shape of a candidate
// filing row and the CSV decoding every jurisdiction reader shares.
package filings

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/charmap"
)

// RawFiling is one candidate filing as published by a state election
// authority, already split into columns but otherwise untouched.
type RawFiling struct {
	SourceRow        int // line in the source file, the header is line 1
	OfficeTitle      string
	County           string
	Municipality     string
	SchoolDistrict   string
	HospitalDistrict string
	CandidateName    string
	PartyCode        string
	Email            string
	Phone            string
	Website          string
	AddressLine1     string
	City             string
	State            string
	PostalCode       string
	Withdrawn        bool
	FilingDate       *time.Time
	QualifyDate      *time.Time
	DropDate         *time.Time
	Raw              interface{} // the decoded source row, kept for staging
}

// Format describes the CSV dialect of a source file.
type Format struct {
	Comma  rune // defaults to ','
	Latin1 bool // file is ISO 8859-1 encoded
}

// Decode reads every row of r into out, a pointer to a slice of structs
// tagged with `csv:"Column Name"`.
func Decode(r io.Reader, f Format, out interface{}) error {
	if f.Latin1 {
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	if f.Comma != 0 {
		cr.Comma = f.Comma
	}
	if err := gocsv.UnmarshalCSV(cr, out); err != nil {
		return fmt.Errorf("failed to decode filing rows, error %w", err)
	}
	return nil
}

// RowNumber maps a zero based decoded row index to its line in the file.
func RowNumber(i int) int {
	return i + 2
}

// ParseDate parses a date in any of the given layouts. Empty input and
// input no layout accepts both yield nil, filing dates are informational.
func ParseDate(s string, layouts ...string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// Flag reads the usual spellings of a yes/no column.
func Flag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "x", "withdrawn":
		return true
	}
	return false
}
