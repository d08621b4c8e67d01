package store

import (
	"context"
	"fmt"

	"github.com/candidatos-info/civic-enrichers/civic"
	"gorm.io/gorm"
)

// ReplaceStaging swaps the staged rows of key for the batch in one
// transaction: a failed write leaves the previous staging untouched.
func (s *Store) ReplaceStaging(ctx context.Context, key civic.BatchKey, b *civic.Batch) error {
	if b.Key != key {
		return fmt.Errorf("batch [%s] does not belong to [%s]", b.Key, key)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range civic.StagingModels() {
			if err := tx.Where("jurisdiction = ? AND cycle = ?", key.Jurisdiction, key.Cycle).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear staging table of %T, error %w", model, err)
			}
		}
		if err := insert(tx, b.Parties); err != nil {
			return err
		}
		if err := insert(tx, b.Offices); err != nil {
			return err
		}
		if err := insert(tx, b.Politicians); err != nil {
			return err
		}
		if err := insert(tx, b.Elections); err != nil {
			return err
		}
		if err := insert(tx, b.Races); err != nil {
			return err
		}
		return insert(tx, b.RaceCandidates)
	})
	if err != nil {
		return &TransactionError{Step: "staging", Key: key, Err: err}
	}
	s.log.Info("replaced staging", "batch", key.String(), "rows", b.Len())
	return nil
}

// insert writes a copy of rows, so ids assigned on create stay out of the
// caller's batch.
func insert[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	rows = append([]T(nil), rows...)
	if err := tx.CreateInBatches(&rows, batchSize).Error; err != nil {
		return fmt.Errorf("failed to stage %d rows of %T, error %w", len(rows), rows[0], err)
	}
	return nil
}

// Staged loads the staged rows of key in merge order.
func (s *Store) Staged(ctx context.Context, key civic.BatchKey) (*civic.Batch, error) {
	b := &civic.Batch{Key: key}
	db := s.db.WithContext(ctx)
	if err := load(db, key, &b.Parties); err != nil {
		return nil, err
	}
	if err := load(db, key, &b.Offices); err != nil {
		return nil, err
	}
	if err := load(db, key, &b.Politicians); err != nil {
		return nil, err
	}
	if err := load(db, key, &b.Elections); err != nil {
		return nil, err
	}
	if err := load(db, key, &b.Races); err != nil {
		return nil, err
	}
	if err := load(db, key, &b.RaceCandidates); err != nil {
		return nil, err
	}
	return b, nil
}

func load[T any](db *gorm.DB, key civic.BatchKey, out *[]T) error {
	err := db.Where("jurisdiction = ? AND cycle = ?", key.Jurisdiction, key.Cycle).
		Order("source_row").
		Order("created_at").
		Find(out).Error
	if err != nil {
		return fmt.Errorf("failed to read staged %T of [%s], error %w", *out, key, err)
	}
	return nil
}
