package civic

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the surrogate key and timestamps shared by every production table.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a new UUID unless the caller already picked one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// OfficeFields are the descriptive attributes of an office. Everything but the
// display subtitles takes part in building the office slug.
type OfficeFields struct {
	Title            string         `gorm:"not null" json:"title"`
	Name             string         `gorm:"not null" json:"name"`
	Subtitle         string         `json:"subtitle"`       // e.g. "Adams County, CO - District 3"
	SubtitleShort    string         `json:"subtitle_short"` // e.g. "Adams County, CO - 3"
	OfficeType       string         `json:"office_type"`    // coarse grouping, such as "Judicial" or "Legislative"
	Chamber          Chamber        `json:"chamber"`
	PoliticalScope   PoliticalScope `gorm:"index" json:"political_scope"`
	ElectionScope    ElectionScope  `gorm:"index" json:"election_scope"`
	State            string         `gorm:"size:2;index" json:"state"`
	County           string         `gorm:"index" json:"county"` // without the " County" suffix
	DistrictType     DistrictType   `gorm:"index" json:"district_type"`
	District         string         `json:"district"`
	Seat             string         `json:"seat"`
	SchoolDistrict   string         `json:"school_district"` // bare number, prefixes such as "ISD #" removed
	HospitalDistrict string         `json:"hospital_district"`
	Municipality     string         `json:"municipality"`
}

// Office is an elected position.
type Office struct {
	Base
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
	OfficeFields
}

// TableName explicitly sets the table name for gorm.
func (Office) TableName() string { return "offices" }

// PartyFields are the descriptive attributes of a party.
type PartyFields struct {
	Name         string `gorm:"not null" json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Party is a political party recognized by the party lookup table.
type Party struct {
	Base
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
	PartyFields
}

func (Party) TableName() string { return "parties" }

// PoliticianFields are the descriptive attributes of a candidate or office holder.
type PoliticianFields struct {
	RefKey        string `gorm:"index" json:"ref_key"` // "{source}:{name slug}", tells same-named people from different sources apart
	FirstName     string `json:"first_name"`
	MiddleName    string `json:"middle_name"`
	LastName      string `json:"last_name"`
	Suffix        string `json:"suffix"`
	PreferredName string `json:"preferred_name"`
	FullName      string `gorm:"not null" json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Website       string `json:"website"`
	AddressLine1  string `json:"address_line_1"`
	City          string `json:"city"`
	HomeState     string `json:"home_state"`
	PostalCode    string `json:"postal_code"`
}

// Politician is created on first sighting and only updated afterwards.
type Politician struct {
	Base
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
	PoliticianFields
	PartyID *uuid.UUID `gorm:"type:uuid;index" json:"party_id,omitempty"`
	Party   *Party     `gorm:"constraint:OnDelete:SET NULL;foreignKey:PartyID;references:ID" json:"party,omitempty"`
}

func (Politician) TableName() string { return "politicians" }

// ElectionFields are the descriptive attributes of an election.
type ElectionFields struct {
	Title string    `gorm:"not null" json:"title"`
	State string    `gorm:"size:2" json:"state"` // empty for the nationwide general election
	Date  time.Time `gorm:"not null" json:"date"`
}

// Election is one election day for a jurisdiction, cycle and race type.
type Election struct {
	Base
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
	ElectionFields
}

func (Election) TableName() string { return "elections" }

// RaceFields are the descriptive attributes of a race.
type RaceFields struct {
	Title      string   `gorm:"not null" json:"title"`
	RaceType   RaceType `json:"race_type"`
	State      string   `gorm:"size:2;index" json:"state"`
	IsSpecial  bool     `json:"is_special"`
	NumElected int      `gorm:"not null;default:1" json:"num_elected"`
}

// Race is one contest for one office in one election.
type Race struct {
	Base
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
	RaceFields
	OfficeID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"office_id"`
	Office     *Office    `gorm:"constraint:OnDelete:CASCADE;foreignKey:OfficeID;references:ID" json:"office,omitempty"`
	ElectionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"election_id"`
	Election   *Election  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ElectionID;references:ID" json:"election,omitempty"`
	PartyID    *uuid.UUID `gorm:"type:uuid;index" json:"party_id,omitempty"`
}

func (Race) TableName() string { return "races" }

// RaceCandidateFields are the per-contest facts a filing carries.
type RaceCandidateFields struct {
	IsRunning   bool       `gorm:"not null" json:"is_running"`
	FilingDate  *time.Time `json:"filing_date,omitempty"`
	QualifyDate *time.Time `json:"qualify_date,omitempty"`
	DropDate    *time.Time `json:"drop_date,omitempty"`
}

// RaceCandidate joins a race and a politician. Votes and IsWinner belong to the
// results import and are never written by the merge.
type RaceCandidate struct {
	RaceID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"race_id"`
	CandidateID uuid.UUID `gorm:"type:uuid;primaryKey" json:"candidate_id"`
	RaceCandidateFields
	Votes     *int      `json:"votes,omitempty"`
	IsWinner  *bool     `json:"is_winner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RaceCandidate) TableName() string { return "race_candidates" }

// Equal reports whether both field sets carry the same dates and running flag.
func (f RaceCandidateFields) Equal(o RaceCandidateFields) bool {
	return f.IsRunning == o.IsRunning &&
		sameDay(f.FilingDate, o.FilingDate) &&
		sameDay(f.QualifyDate, o.QualifyDate) &&
		sameDay(f.DropDate, o.DropDate)
}

// Equal compares elections by calendar day, since drivers hand dates back in
// different locations.
func (f ElectionFields) Equal(o ElectionFields) bool {
	return f.Title == o.Title && f.State == o.State && f.Date.UTC().Format(dayLayout) == o.Date.UTC().Format(dayLayout)
}

const dayLayout = "2006-01-02"

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.UTC().Format(dayLayout) == b.UTC().Format(dayLayout)
}

// ProductionModels lists the production tables in merge order.
func ProductionModels() []interface{} {
	return []interface{}{&Party{}, &Office{}, &Politician{}, &Election{}, &Race{}, &RaceCandidate{}}
}
