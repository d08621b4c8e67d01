package slugs

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/candidatos-info/civic-enrichers/civic"
)

// CountyLabel appends " County" to a normalized county name.
func CountyLabel(county string) string {
	if county == "" {
		return ""
	}
	return county + " County"
}

// OfficeQualifiers returns the parts that tell offices with the same name
// apart. The election scope decides which attributes qualify the name.
func OfficeQualifiers(f civic.OfficeFields) []string {
	switch f.ElectionScope {
	case civic.ElectionScopeNational:
		return nil
	case civic.ElectionScopeState:
		return nonEmpty(f.Seat)
	case civic.ElectionScopeCounty:
		return nonEmpty(CountyLabel(f.County), f.District, f.Seat)
	case civic.ElectionScopeCity:
		return nonEmpty(f.Municipality, f.District, f.Seat)
	}
	switch f.DistrictType {
	case civic.DistrictTypeSchool:
		return nonEmpty(f.SchoolDistrict, f.District, f.Seat)
	case civic.DistrictTypeHospital:
		return nonEmpty(f.HospitalDistrict, CountyLabel(f.County), f.District, f.Seat)
	case civic.DistrictTypeSoilAndWater:
		return nonEmpty(CountyLabel(f.County), f.District, f.Seat)
	case civic.DistrictTypeCity:
		return nonEmpty(f.Municipality, f.District, f.Seat)
	}
	return nonEmpty(f.District, f.Seat)
}

// Office returns the title and slug of an office: "{state} {name} {qualifiers}".
func Office(f civic.OfficeFields) (title, slug string) {
	parts := append([]string{f.State, f.Name}, OfficeQualifiers(f)...)
	title = Title(parts...)
	return title, Slugify(title)
}

// OfficeSubtitle returns the display subtitle, such as
// "Adams County, CO - District 3 - Seat B", and its short form "Adams County, CO - 3 - B".
func OfficeSubtitle(f civic.OfficeFields) (subtitle, short string) {
	place := CountyLabel(f.County)
	if f.ElectionScope == civic.ElectionScopeCity && f.Municipality != "" {
		place = f.Municipality
	}
	head := f.State
	if place != "" {
		head = place + ", " + f.State
	}
	subtitle, short = head, head
	if f.District != "" {
		subtitle += " - District " + f.District
		short += " - " + f.District
	}
	if f.Seat != "" {
		subtitle += " - Seat " + f.Seat
		short += " - " + f.Seat
	}
	return subtitle, short
}

// RaceInput is what a race title is composed from.
type RaceInput struct {
	State      string
	OfficeName string
	Qualifiers []string
	RaceType   civic.RaceType
	PartyLabel string // e.g. "Democratic"; set only for primaries split by party
	IsSpecial  bool
	Year       int
}

// Race returns "{state} {office} {qualifiers} {Special} {race type} {year}" and its slug.
func Race(in RaceInput) (title, slug string) {
	raceType := string(in.RaceType)
	if in.RaceType == civic.RaceTypePrimary && in.PartyLabel != "" {
		raceType = fmt.Sprintf("%s - %s", in.RaceType, in.PartyLabel)
	}
	special := ""
	if in.IsSpecial {
		special = "Special"
	}
	parts := []string{in.State, in.OfficeName}
	parts = append(parts, in.Qualifiers...)
	parts = append(parts, special, raceType, strconv.Itoa(in.Year))
	title = Title(parts...)
	return title, Slugify(title)
}

var primaryPartyLabels = map[string]string{
	"N":   "Nonpartisan",
	"NP":  "Nonpartisan",
	"DEM": "Democratic",
	"DFL": "Democratic",
	"D":   "Democratic",
	"REP": "Republican",
	"R":   "Republican",
	"LIB": "Libertarian",
	"GP":  "Green",
}

// PrimaryPartyLabel expands a party code for a partisan primary race title.
// Unknown codes are returned as given.
func PrimaryPartyLabel(code string) string {
	code = strings.TrimSpace(code)
	if label, ok := primaryPartyLabels[strings.ToUpper(code)]; ok {
		return label
	}
	return code
}

// GeneralElection returns the title and slug of the general election of a year.
func GeneralElection(year int) (title, slug string) {
	title = fmt.Sprintf("General Election %d", year)
	return title, Slugify(title)
}

// PrimaryElection returns the title and slug of a state's primary election.
func PrimaryElection(state string, year int) (title, slug string) {
	title = Title(state, "Primary Election", strconv.Itoa(year))
	return title, Slugify(title)
}

// GeneralElectionDate is the Tuesday after the first Monday of November.
func GeneralElectionDate(year int) time.Time {
	return NthWeekday(year, time.November, time.Monday, 1).AddDate(0, 0, 1)
}

// NthWeekday returns the n-th given weekday of a month, in UTC.
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+7*(n-1))
}

// LastWeekday returns the last given weekday of a month, in UTC.
func LastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -offset)
}

// Politician returns the slug "{source} {full name}" and the ref key
// "{source}:{name slug}". Namespacing by source keeps same-named people from
// different sources apart.
func Politician(source, fullName string) (slug, refKey string) {
	return Slugify(Title(source, fullName)), source + ":" + Slugify(fullName)
}

// Party returns the slug of a canonical party name.
func Party(name string) string {
	return Slugify(name)
}
