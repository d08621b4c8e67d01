package civic

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BatchKey identifies the staged contents of one jurisdiction and election cycle.
type BatchKey struct {
	Jurisdiction string `gorm:"size:8;index;not null" json:"jurisdiction"`
	Cycle        int    `gorm:"index;not null" json:"cycle"`
}

func (k BatchKey) String() string {
	return fmt.Sprintf("%s-%d", strings.ToLower(k.Jurisdiction), k.Cycle)
}

// Staged carries the columns every staging table shares.
type Staged struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BatchKey
	SourceRow int       `json:"source_row"` // row id in the raw filing file, 0 when derived
	CreatedAt time.Time `json:"created_at"`
}

func (s *Staged) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// StagedOffice is a freshly normalized office waiting for the merge.
type StagedOffice struct {
	Staged
	Slug string `gorm:"index;not null" json:"slug"`
	OfficeFields
	Raw datatypes.JSON `json:"raw,omitempty"` // raw filing row the office was extracted from
}

func (StagedOffice) TableName() string { return "staged_offices" }

type StagedParty struct {
	Staged
	Slug string `gorm:"index;not null" json:"slug"`
	PartyFields
}

func (StagedParty) TableName() string { return "staged_parties" }

type StagedPolitician struct {
	Staged
	Slug string `gorm:"index;not null" json:"slug"`
	PoliticianFields
	PartySlug string         `json:"party_slug"`
	Raw       datatypes.JSON `json:"raw,omitempty"`
}

func (StagedPolitician) TableName() string { return "staged_politicians" }

type StagedElection struct {
	Staged
	Slug string `gorm:"index;not null" json:"slug"`
	ElectionFields
}

func (StagedElection) TableName() string { return "staged_elections" }

// StagedRace references its parents by slug; the merge resolves them to ids.
type StagedRace struct {
	Staged
	Slug string `gorm:"index;not null" json:"slug"`
	RaceFields
	OfficeSlug   string `gorm:"not null" json:"office_slug"`
	ElectionSlug string `gorm:"not null" json:"election_slug"`
	PartySlug    string `json:"party_slug"`
}

func (StagedRace) TableName() string { return "staged_races" }

type StagedRaceCandidate struct {
	Staged
	RaceSlug       string `gorm:"index;not null" json:"race_slug"`
	PoliticianSlug string `gorm:"index;not null" json:"politician_slug"`
	RaceCandidateFields
}

func (StagedRaceCandidate) TableName() string { return "staged_race_candidates" }

// StagingModels lists the staging tables in merge order.
func StagingModels() []interface{} {
	return []interface{}{
		&StagedParty{},
		&StagedOffice{},
		&StagedPolitician{},
		&StagedElection{},
		&StagedRace{},
		&StagedRaceCandidate{},
	}
}

// Batch is everything one filing file stages for a jurisdiction and cycle.
type Batch struct {
	Key            BatchKey
	Parties        []StagedParty
	Offices        []StagedOffice
	Politicians    []StagedPolitician
	Elections      []StagedElection
	Races          []StagedRace
	RaceCandidates []StagedRaceCandidate
}

// Len is the number of staged rows in the batch.
func (b *Batch) Len() int {
	return len(b.Parties) + len(b.Offices) + len(b.Politicians) + len(b.Elections) + len(b.Races) + len(b.RaceCandidates)
}
