package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Counts are the merge outcomes of one entity type.
type Counts struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Conflicts int `json:"conflicts"`
}

func (c Counts) add(o Counts) Counts {
	return Counts{
		Created:   c.Created + o.Created,
		Updated:   c.Updated + o.Updated,
		Unchanged: c.Unchanged + o.Unchanged,
		Conflicts: c.Conflicts + o.Conflicts,
	}
}

// Summary reports what a merge did to production.
type Summary struct {
	Batch          civic.BatchKey   `json:"batch"`
	StartedAt      time.Time        `json:"started_at"`
	FinishedAt     time.Time        `json:"finished_at"`
	Parties        Counts           `json:"parties"`
	Offices        Counts           `json:"offices"`
	Politicians    Counts           `json:"politicians"`
	Elections      Counts           `json:"elections"`
	Races          Counts           `json:"races"`
	RaceCandidates Counts           `json:"race_candidates"`
	Conflicts      []*ConflictError `json:"conflicts,omitempty"`
}

// Each calls fn for every entity type in merge order.
func (s *Summary) Each(fn func(entity string, c Counts)) {
	fn("party", s.Parties)
	fn("office", s.Offices)
	fn("politician", s.Politicians)
	fn("election", s.Elections)
	fn("race", s.Races)
	fn("race_candidate", s.RaceCandidates)
}

// Total sums the counts of every entity type.
func (s *Summary) Total() Counts {
	var total Counts
	s.Each(func(_ string, c Counts) { total = total.add(c) })
	return total
}

// Merge upserts the staged rows of key into production, parents first, in a
// single transaction. Rows are matched by slug, race candidates by race and
// politician. Descriptive fields take the staged value; ids and creation
// times are kept, and results written by RecordResult are never touched.
// A staged reference to an unknown slug fails with ErrUnresolved; every other
// failure is a TransactionError.
func (s *Store) Merge(ctx context.Context, key civic.BatchKey) (*Summary, error) {
	sum := &Summary{Batch: key, StartedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := &merger{tx: tx, store: s, key: key, sum: sum}
		staged := &civic.Batch{Key: key}
		if err := load(tx, key, &staged.Parties); err != nil {
			return err
		}
		parties, err := mergeBySlug(m, staged.Parties, partySpec, &sum.Parties)
		if err != nil {
			return err
		}
		if err := load(tx, key, &staged.Offices); err != nil {
			return err
		}
		offices, err := mergeBySlug(m, staged.Offices, officeSpec, &sum.Offices)
		if err != nil {
			return err
		}
		if err := load(tx, key, &staged.Politicians); err != nil {
			return err
		}
		politicians, err := mergeBySlug(m, staged.Politicians, politicianSpec(parties), &sum.Politicians)
		if err != nil {
			return err
		}
		if err := load(tx, key, &staged.Elections); err != nil {
			return err
		}
		elections, err := mergeBySlug(m, staged.Elections, electionSpec, &sum.Elections)
		if err != nil {
			return err
		}
		if err := load(tx, key, &staged.Races); err != nil {
			return err
		}
		races, err := mergeBySlug(m, staged.Races, raceSpec(offices, elections, parties), &sum.Races)
		if err != nil {
			return err
		}
		if err := load(tx, key, &staged.RaceCandidates); err != nil {
			return err
		}
		return m.raceCandidates(staged.RaceCandidates, races, politicians)
	})
	if errors.Is(err, ErrUnresolved) {
		return nil, fmt.Errorf("failed to merge [%s], error %w", key, err)
	}
	if err != nil {
		return nil, &TransactionError{Step: "merge", Key: key, Err: err}
	}
	sum.FinishedAt = time.Now().UTC()
	total := sum.Total()
	s.log.Info("merged staging into production",
		"batch", key.String(),
		"created", total.Created,
		"updated", total.Updated,
		"unchanged", total.Unchanged,
		"conflicts", total.Conflicts,
		"elapsed", sum.FinishedAt.Sub(sum.StartedAt).String(),
	)
	return sum, nil
}

type merger struct {
	tx    *gorm.DB
	store *Store
	key   civic.BatchKey
	sum   *Summary
}

func (m *merger) conflict(c *ConflictError, counts *Counts) {
	counts.Conflicts++
	m.sum.Conflicts = append(m.sum.Conflicts, c)
	m.store.log.Warn("merge conflict", "batch", m.key.String(), "entity", c.Entity, "slug", c.Slug, "field", c.Field, "production", c.Production, "staged", c.Staged)
}

// entitySpec tells mergeBySlug how a staged type S maps onto its production
// type P.
type entitySpec[S, P any] struct {
	entity   string
	columns  []string // updated on existing rows, besides UpdatedAt
	slug     func(*S) string
	prodSlug func(*P) string
	build    func(*S) (P, error)
	base     func(*P) *civic.Base
	same     func(prod, next *P) bool
	conflict func(prod, next *P) *ConflictError // nil when identity fields agree
}

// mergeBySlug writes the staged rows of one type and returns the production
// id of every staged slug.
func mergeBySlug[S, P any](m *merger, staged []S, spec entitySpec[S, P], counts *Counts) (map[string]uuid.UUID, error) {
	order, latest := lastBySlug(staged, spec.slug)
	existing := make(map[string]*P, len(order))
	for _, chunk := range chunks(order, chunkSize) {
		var rows []P
		if err := m.tx.Where("slug IN ?", chunk).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to read production %s rows, error %w", spec.entity, err)
		}
		for i := range rows {
			existing[spec.prodSlug(&rows[i])] = &rows[i]
		}
	}

	ids := make(map[string]uuid.UUID, len(order))
	var created []P
	for _, slug := range order {
		next, err := spec.build(latest[slug])
		if err != nil {
			return nil, fmt.Errorf("failed to merge %s [%s], error %w", spec.entity, slug, err)
		}
		prod, ok := existing[slug]
		if !ok {
			created = append(created, next)
			continue
		}
		id := spec.base(prod).ID
		ids[slug] = id
		if spec.conflict != nil {
			if c := spec.conflict(prod, &next); c != nil {
				c.Entity, c.Slug = spec.entity, slug
				m.conflict(c, counts)
			}
		}
		if spec.same(prod, &next) {
			counts.Unchanged++
			continue
		}
		spec.base(&next).ID = id
		columns := append(append([]string(nil), spec.columns...), "UpdatedAt")
		if err := m.tx.Model(&next).Select(columns).Updates(&next).Error; err != nil {
			return nil, fmt.Errorf("failed to update %s [%s], error %w", spec.entity, slug, err)
		}
		counts.Updated++
	}
	if len(created) > 0 {
		if err := m.tx.CreateInBatches(&created, batchSize).Error; err != nil {
			return nil, fmt.Errorf("failed to create %d %s rows, error %w", len(created), spec.entity, err)
		}
		for i := range created {
			ids[spec.prodSlug(&created[i])] = spec.base(&created[i]).ID
		}
		counts.Created += len(created)
	}
	return ids, nil
}

// lastBySlug dedupes staged rows by slug. Slugs keep the position they were
// first seen at; the row is the last one staged.
func lastBySlug[S any](staged []S, slug func(*S) string) ([]string, map[string]*S) {
	var order []string
	latest := make(map[string]*S, len(staged))
	for i := range staged {
		s := slug(&staged[i])
		if _, ok := latest[s]; !ok {
			order = append(order, s)
		}
		latest[s] = &staged[i]
	}
	return order, latest
}

func chunks[T any](items []T, size int) [][]T {
	var out [][]T
	for len(items) > size {
		out = append(out, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}

var raceCandidateColumns = []string{"is_running", "filing_date", "qualify_date", "drop_date", "updated_at"}

type candidacy struct {
	race, candidate uuid.UUID
}

// raceCandidates links politicians to races. Only the filing facts are
// written; votes and winners stay as RecordResult left them.
func (m *merger) raceCandidates(staged []civic.StagedRaceCandidate, races, politicians map[string]uuid.UUID) error {
	counts := &m.sum.RaceCandidates
	var order []candidacy
	latest := make(map[candidacy]civic.RaceCandidate, len(staged))
	raceIDs := make(map[uuid.UUID]bool)
	for _, s := range staged {
		raceID, ok := races[s.RaceSlug]
		if !ok {
			return fmt.Errorf("failed to merge candidacy of [%s], error unknown race [%s]: %w", s.PoliticianSlug, s.RaceSlug, ErrUnresolved)
		}
		candidateID, ok := politicians[s.PoliticianSlug]
		if !ok {
			return fmt.Errorf("failed to merge candidacy in [%s], error unknown politician [%s]: %w", s.RaceSlug, s.PoliticianSlug, ErrUnresolved)
		}
		k := candidacy{race: raceID, candidate: candidateID}
		if _, ok := latest[k]; !ok {
			order = append(order, k)
		}
		latest[k] = civic.RaceCandidate{RaceID: raceID, CandidateID: candidateID, RaceCandidateFields: s.RaceCandidateFields}
		raceIDs[raceID] = true
	}

	ids := make([]uuid.UUID, 0, len(raceIDs))
	for _, k := range order {
		if raceIDs[k.race] {
			ids = append(ids, k.race)
			delete(raceIDs, k.race)
		}
	}
	existing := make(map[candidacy]civic.RaceCandidate)
	for _, chunk := range chunks(ids, chunkSize) {
		var rows []civic.RaceCandidate
		if err := m.tx.Where("race_id IN ?", chunk).Find(&rows).Error; err != nil {
			return fmt.Errorf("failed to read production race candidates, error %w", err)
		}
		for _, r := range rows {
			existing[candidacy{race: r.RaceID, candidate: r.CandidateID}] = r
		}
	}

	var created []civic.RaceCandidate
	for _, k := range order {
		next := latest[k]
		prod, ok := existing[k]
		if !ok {
			created = append(created, next)
			continue
		}
		if prod.RaceCandidateFields.Equal(next.RaceCandidateFields) {
			counts.Unchanged++
			continue
		}
		err := m.tx.Model(&next).
			Select("IsRunning", "FilingDate", "QualifyDate", "DropDate", "UpdatedAt").
			Updates(&next).Error
		if err != nil {
			return fmt.Errorf("failed to update race candidate [%s/%s], error %w", k.race, k.candidate, err)
		}
		counts.Updated++
	}
	if len(created) > 0 {
		err := m.tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "race_id"}, {Name: "candidate_id"}},
			DoUpdates: clause.AssignmentColumns(raceCandidateColumns),
		}).CreateInBatches(&created, batchSize).Error
		if err != nil {
			return fmt.Errorf("failed to create %d race candidates, error %w", len(created), err)
		}
		counts.Created += len(created)
	}
	return nil
}
