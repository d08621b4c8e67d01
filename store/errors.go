package store

import (
	"fmt"

	"github.com/candidatos-info/civic-enrichers/civic"
)

// ConflictError describes a staged row whose slug matches a production row
// with different identity fields. The merge logs and counts it, then applies
// the staged value anyway.
type ConflictError struct {
	Entity     string `json:"entity"`
	Slug       string `json:"slug"`
	Field      string `json:"field"`
	Production string `json:"production"`
	Staged     string `json:"staged"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s [%s] changes %s from %q to %q", e.Entity, e.Slug, e.Field, e.Production, e.Staged)
}

// TransactionError is a staging or merge transaction that was rolled back.
// Nothing of the step was written, so the whole step can be retried.
type TransactionError struct {
	Step string
	Key  civic.BatchKey
	Err  error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s transaction of [%s] rolled back: %v", e.Step, e.Key, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }
