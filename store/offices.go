package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/candidatos-info/civic-enrichers/jurisdiction"
	"github.com/candidatos-info/civic-enrichers/predicate"
	"gorm.io/gorm"
)

// Offices lists the production offices matching c, ordered by slug.
func (s *Store) Offices(ctx context.Context, c predicate.Condition) ([]civic.Office, error) {
	var offices []civic.Office
	if err := s.db.WithContext(ctx).Where(c.Expression()).Order("slug").Find(&offices).Error; err != nil {
		return nil, fmt.Errorf("failed to list offices matching [%s], error %w", c, err)
	}
	return offices, nil
}

// BallotOffices lists the offices on a voter's ballot: the statewide offices
// of the voter's state plus whatever the jurisdiction's district predicate
// matches.
func (s *Store) BallotOffices(ctx context.Context, j jurisdiction.Jurisdiction, d jurisdiction.VoterDistricts) ([]civic.Office, error) {
	state := jurisdiction.StateCode(d, j.Code())
	return s.Offices(ctx, predicate.Any(jurisdiction.Statewide(state), j.BuildPredicate(d)))
}

// RecordResult stores the outcome of a race for one candidate. The merge
// never writes these fields, so results survive later filing imports.
func (s *Store) RecordResult(ctx context.Context, raceSlug, politicianSlug string, votes int, winner bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var race civic.Race
		if err := tx.Where("slug = ?", raceSlug).First(&race).Error; err != nil {
			return notFound("race", raceSlug, err)
		}
		var politician civic.Politician
		if err := tx.Where("slug = ?", politicianSlug).First(&politician).Error; err != nil {
			return notFound("politician", politicianSlug, err)
		}
		res := tx.Model(&civic.RaceCandidate{}).
			Where("race_id = ? AND candidate_id = ?", race.ID, politician.ID).
			Updates(map[string]interface{}{"votes": votes, "is_winner": winner})
		if res.Error != nil {
			return fmt.Errorf("failed to record result of [%s] in [%s], error %w", politicianSlug, raceSlug, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("candidacy of [%s] in [%s]: %w", politicianSlug, raceSlug, ErrNotFound)
		}
		return nil
	})
}

func notFound(entity, slug string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s [%s]: %w", entity, slug, ErrNotFound)
	}
	return fmt.Errorf("failed to read %s [%s], error %w", entity, slug, err)
}
