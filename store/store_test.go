package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/candidatos-info/civic-enrichers/filings"
	"github.com/candidatos-info/civic-enrichers/jurisdiction"
	"github.com/candidatos-info/civic-enrichers/jurisdiction/colorado"
	"github.com/candidatos-info/civic-enrichers/logger"
	"github.com/candidatos-info/civic-enrichers/predicate"
	"github.com/candidatos-info/civic-enrichers/processor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = civic.BatchKey{Jurisdiction: "CO", Cycle: 2024}

func filingRows() []filings.RawFiling {
	return []filings.RawFiling{
		{SourceRow: 2, OfficeTitle: "U.S. Representative - District 1", CandidateName: "Diana DeGette", PartyCode: "DEM", Email: "diana@example.com"},
		{SourceRow: 3, OfficeTitle: "U.S. Representative - District 1", CandidateName: "Valdamar Archuleta", PartyCode: "REP"},
		{SourceRow: 4, OfficeTitle: "State Senate - District 5 - Vacancy", CandidateName: "Pat Doe", PartyCode: "REP"},
		{SourceRow: 5, OfficeTitle: "County Commissioner - District 2", County: "Adams County", CandidateName: "Smith, John", PartyCode: "UNA", Withdrawn: true},
		{SourceRow: 6, OfficeTitle: "Supreme Court Justice", CandidateName: "Maria Berkenkotter"},
		{SourceRow: 7, OfficeTitle: "Dog Catcher", CandidateName: "Rex"},
	}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func stage(t *testing.T, s *Store, rows []filings.RawFiling) *civic.Batch {
	t.Helper()
	rc := processor.RaceContext{Cycle: 2024, RaceType: civic.RaceTypeGeneral}
	batch, _, err := processor.New(logger.NewNop(), 2).Process(context.Background(), colorado.New(), rc, rows)
	require.NoError(t, err)
	require.NoError(t, s.ReplaceStaging(context.Background(), batch.Key, batch))
	return batch
}

func count(t *testing.T, s *Store, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB().Model(model).Count(&n).Error)
	return n
}

func officeSlugs(offices []civic.Office) []string {
	var out []string
	for _, o := range offices {
		out = append(out, o.Slug)
	}
	return out
}

func TestMergeIsIdempotent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	stage(t, s, filingRows())
	first, err := s.Merge(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, Counts{Created: 3}, first.Parties)
	assert.Equal(t, Counts{Created: 4}, first.Offices)
	assert.Equal(t, Counts{Created: 5}, first.Politicians)
	assert.Equal(t, Counts{Created: 1}, first.Elections)
	assert.Equal(t, Counts{Created: 4}, first.Races)
	assert.Equal(t, Counts{Created: 5}, first.RaceCandidates)
	assert.Empty(t, first.Conflicts)

	stage(t, s, filingRows())
	second, err := s.Merge(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, Counts{Unchanged: 22}, second.Total())

	testCases := []struct {
		model interface{}
		want  int64
	}{
		{&civic.Party{}, 3},
		{&civic.Office{}, 4},
		{&civic.Politician{}, 5},
		{&civic.Election{}, 1},
		{&civic.Race{}, 4},
		{&civic.RaceCandidate{}, 5},
	}
	for _, tt := range testCases {
		t.Run(fmt.Sprintf("%T", tt.model), func(t *testing.T) {
			assert.Equal(t, tt.want, count(t, s, tt.model))
		})
	}

	var election civic.Election
	require.NoError(t, s.DB().First(&election).Error)
	assert.Equal(t, "general-election-2024", election.Slug)
	assert.Equal(t, "2024-11-05", election.Date.UTC().Format("2006-01-02"))
}

func TestMergeUpdatesDescriptiveFields(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	stage(t, s, filingRows())
	_, err := s.Merge(ctx, key)
	require.NoError(t, err)

	var before civic.Politician
	require.NoError(t, s.DB().Where("full_name = ?", "Diana DeGette").First(&before).Error)

	rows := filingRows()
	rows[0].Email = "office@example.com"
	rows[3].Withdrawn = false
	stage(t, s, rows)
	sum, err := s.Merge(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, Counts{Updated: 1, Unchanged: 4}, sum.Politicians)
	assert.Equal(t, Counts{Updated: 1, Unchanged: 4}, sum.RaceCandidates)
	assert.Equal(t, Counts{Unchanged: 4}, sum.Offices)

	var after civic.Politician
	require.NoError(t, s.DB().Where("full_name = ?", "Diana DeGette").First(&after).Error)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, "office@example.com", after.Email)
	require.NotNil(t, after.PartyID)

	var running int64
	require.NoError(t, s.DB().Model(&civic.RaceCandidate{}).Where("is_running = ?", true).Count(&running).Error)
	assert.Equal(t, int64(5), running)
}

func TestMergeKeepsResults(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	batch := stage(t, s, filingRows())
	_, err := s.Merge(ctx, key)
	require.NoError(t, err)

	c := batch.RaceCandidates[0]
	require.NoError(t, s.RecordResult(ctx, c.RaceSlug, c.PoliticianSlug, 1000, true))

	rows := filingRows()
	rows[0].Withdrawn = true
	stage(t, s, rows)
	sum, err := s.Merge(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.RaceCandidates.Updated)

	var politician civic.Politician
	require.NoError(t, s.DB().Where("slug = ?", c.PoliticianSlug).First(&politician).Error)
	var got civic.RaceCandidate
	require.NoError(t, s.DB().Where("candidate_id = ?", politician.ID).First(&got).Error)
	assert.False(t, got.IsRunning)
	require.NotNil(t, got.Votes)
	assert.Equal(t, 1000, *got.Votes)
	require.NotNil(t, got.IsWinner)
	assert.True(t, *got.IsWinner)
}

func TestRecordResultNotFound(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	batch := stage(t, s, filingRows())
	_, err := s.Merge(ctx, key)
	require.NoError(t, err)

	err = s.RecordResult(ctx, "no-such-race", batch.Politicians[0].Slug, 1, false)
	assert.True(t, errors.Is(err, ErrNotFound))

	// a real race and a real politician that did not run in it
	err = s.RecordResult(ctx, batch.Races[0].Slug, batch.Politicians[2].Slug, 1, false)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMergeReportsConflicts(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	batch := stage(t, s, filingRows())
	_, err := s.Merge(ctx, key)
	require.NoError(t, err)

	slug := batch.Offices[0].Slug
	require.NoError(t, s.DB().Model(&civic.Office{}).Where("slug = ?", slug).Update("name", "U.S. Congress").Error)

	stage(t, s, filingRows())
	sum, err := s.Merge(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, Counts{Updated: 1, Unchanged: 3, Conflicts: 1}, sum.Offices)
	require.Len(t, sum.Conflicts, 1)
	assert.Equal(t, ConflictError{Entity: "office", Slug: slug, Field: "name", Production: "U.S. Congress", Staged: "U.S. House"}, *sum.Conflicts[0])

	var office civic.Office
	require.NoError(t, s.DB().Where("slug = ?", slug).First(&office).Error)
	assert.Equal(t, "U.S. House", office.Name)
}

func TestMergeRollsBack(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	broken := &civic.Batch{
		Key:     key,
		Parties: []civic.StagedParty{{Staged: civic.Staged{BatchKey: key}, Slug: "green", PartyFields: civic.PartyFields{Name: "Green"}}},
		Races: []civic.StagedRace{{
			Staged:       civic.Staged{BatchKey: key},
			Slug:         "co-orphan-general-2024",
			RaceFields:   civic.RaceFields{Title: "CO Orphan General 2024", NumElected: 1},
			OfficeSlug:   "co-orphan",
			ElectionSlug: "general-election-2024",
		}},
	}
	require.NoError(t, s.ReplaceStaging(ctx, key, broken))

	_, err := s.Merge(ctx, key)
	assert.ErrorIs(t, err, ErrUnresolved)
	assert.Contains(t, err.Error(), "unknown office [co-orphan]")
	var txErr *TransactionError
	assert.False(t, errors.As(err, &txErr), "an unknown slug fails the same way on every attempt")
	assert.Equal(t, int64(0), count(t, s, &civic.Party{}))
}

func TestMergeUnknownCandidacyReferences(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	b := &civic.Batch{
		Key: key,
		RaceCandidates: []civic.StagedRaceCandidate{{
			Staged:              civic.Staged{BatchKey: key},
			RaceSlug:            "co-missing-general-2024",
			PoliticianSlug:      "co-jane-doe",
			RaceCandidateFields: civic.RaceCandidateFields{IsRunning: true},
		}},
	}
	require.NoError(t, s.ReplaceStaging(ctx, key, b))

	_, err := s.Merge(ctx, key)
	assert.ErrorIs(t, err, ErrUnresolved)
	assert.Equal(t, int64(0), count(t, s, &civic.RaceCandidate{}))
}

func TestReplaceStaging(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	stage(t, s, filingRows())
	stage(t, s, filingRows()[:1])

	staged, err := s.Staged(ctx, key)
	require.NoError(t, err)
	assert.Len(t, staged.Offices, 1)
	assert.Len(t, staged.Politicians, 1)
	assert.Len(t, staged.RaceCandidates, 1)

	other := &civic.Batch{Key: civic.BatchKey{Jurisdiction: "MN", Cycle: 2024}}
	assert.Error(t, s.ReplaceStaging(ctx, key, other))
}

func TestBallotOffices(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	stage(t, s, filingRows())
	_, err := s.Merge(ctx, key)
	require.NoError(t, err)

	co := colorado.New()
	testCases := []struct {
		name      string
		districts jurisdiction.VoterDistricts
		want      []string
	}{
		{"congressional district", jurisdiction.VoterDistricts{State: "CO", Congressional: "1"}, []string{"Supreme Court Justice", "U.S. House"}},
		{"other congressional district", jurisdiction.VoterDistricts{State: "CO", Congressional: "2"}, []string{"Supreme Court Justice"}},
		{"county commissioner", jurisdiction.VoterDistricts{County: "Adams", CountyCommissioner: "2", StateSenate: "5"}, []string{"County Commissioner", "State Senate", "Supreme Court Justice"}},
		{"other state", jurisdiction.VoterDistricts{State: "MN", Congressional: "1"}, nil},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			offices, err := s.BallotOffices(ctx, co, tt.districts)
			require.NoError(t, err)
			var names []string
			for _, o := range offices {
				names = append(names, o.Name)
			}
			assert.ElementsMatch(t, tt.want, names)
		})
	}
}

func TestOfficesMatchesInMemoryFilter(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	stage(t, s, filingRows())
	_, err := s.Merge(ctx, key)
	require.NoError(t, err)

	all, err := s.Offices(ctx, predicate.All())
	require.NoError(t, err)
	require.Len(t, all, 4)

	conditions := []predicate.Condition{
		jurisdiction.District("CO", civic.DistrictTypeUsCongressional, "1"),
		jurisdiction.CountyDistrict("CO", "Adams", "2"),
		predicate.Contains(predicate.County, "dam"),
		predicate.Any(),
		colorado.New().BuildPredicate(jurisdiction.VoterDistricts{State: "CO", StateSenate: "5", County: "Adams"}),
	}
	for _, c := range conditions {
		t.Run(c.String(), func(t *testing.T) {
			got, err := s.Offices(ctx, c)
			require.NoError(t, err)
			assert.Equal(t, officeSlugs(predicate.Filter(all, c)), officeSlugs(got))
		})
	}
}
