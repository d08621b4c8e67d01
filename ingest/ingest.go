// Package ingest runs a filing file through the whole pipeline: download,
// decode, process, stage, merge and archive.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/candidatos-info/civic-enrichers/filestorage"
	"github.com/candidatos-info/civic-enrichers/jurisdiction/registry"
	"github.com/candidatos-info/civic-enrichers/logger"
	"github.com/candidatos-info/civic-enrichers/metrics"
	"github.com/candidatos-info/civic-enrichers/processor"
	"github.com/candidatos-info/civic-enrichers/status"
	"github.com/candidatos-info/civic-enrichers/store"
	"github.com/matryer/try"
)

const maxAttempts = 5 // archive uploads

// Job is one filing file of one jurisdiction and cycle.
type Job struct {
	Jurisdiction string         `json:"jurisdiction"` // registry key, such as "mn"
	Cycle        int            `json:"cycle"`
	RaceType     civic.RaceType `json:"race_type"`
	Source       string         `json:"source"`                  // local path, gs:// or s3:// location
	ElectionDate time.Time      `json:"election_date,omitempty"` // computed from the calendar rules when zero
}

// Store is the part of the store a job writes to.
type Store interface {
	ReplaceStaging(ctx context.Context, key civic.BatchKey, b *civic.Batch) error
	Merge(ctx context.Context, key civic.BatchKey) (*store.Summary, error)
}

// StorageOpener returns the file storage of a location scheme.
type StorageOpener interface {
	Open(ctx context.Context, scheme string) (filestorage.FileStorage, error)
}

// SkippedRow is a filing row the processor could not stage.
type SkippedRow struct {
	Row    int    `json:"row"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// Result is what a job did. It is also what gets archived.
type Result struct {
	Job     Job            `json:"job"`
	Rows    int            `json:"rows"`
	Skipped []SkippedRow   `json:"skipped,omitempty"`
	Summary *store.Summary `json:"summary"`
	Archive string         `json:"-"`
}

// Options tune a Runner.
type Options struct {
	Archive  string // directory location for results, nothing is archived when empty
	Attempts int    // tries per staging or merge transaction
	Backoff  time.Duration
	OnStatus func(status.Status)
}

// Runner executes jobs. It is not safe to run two jobs of the same
// jurisdiction and cycle at once.
type Runner struct {
	store     Store
	processor *processor.Processor
	storage   StorageOpener
	metrics   *metrics.Metrics
	log       *logger.Logger
	opts      Options
}

// New returns a Runner. metrics may be nil.
func New(s Store, p *processor.Processor, storage StorageOpener, m *metrics.Metrics, log *logger.Logger, opts Options) *Runner {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.Backoff == 0 {
		opts.Backoff = time.Second
	}
	return &Runner{store: s, processor: p, storage: storage, metrics: m, log: log.With("service", "Runner"), opts: opts}
}

// Run executes job and returns what it did. Row failures do not fail the job;
// they are listed in the result.
func (r *Runner) Run(ctx context.Context, job Job) (*Result, error) {
	start := time.Now()
	defer r.setStatus(status.Idle)
	res, err := r.run(ctx, job)
	r.metrics.ObserveJob(strings.ToUpper(job.Jurisdiction), err, time.Since(start))
	if err != nil {
		r.log.Error("ingestion failed", "jurisdiction", job.Jurisdiction, "cycle", job.Cycle, "source", job.Source, "error", err.Error())
		return nil, err
	}
	return res, nil
}

func (r *Runner) run(ctx context.Context, job Job) (*Result, error) {
	j, err := registry.Lookup(job.Jurisdiction)
	if err != nil {
		return nil, err
	}
	rc := processor.RaceContext{Cycle: job.Cycle, RaceType: job.RaceType, ElectionDate: job.ElectionDate}

	r.setStatus(status.Loading)
	b, err := r.download(ctx, job.Source)
	if err != nil {
		return nil, err
	}
	rows, err := j.ReadFilings(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to decode filings [%s], error %w", job.Source, err)
	}
	r.log.Info("loaded filings", "jurisdiction", j.Code(), "source", job.Source, "rows", len(rows))

	r.setStatus(status.Processing)
	batch, rowErrs, err := r.processor.Process(ctx, j, rc, rows)
	if err != nil {
		return nil, err
	}
	r.metrics.ObserveRows(j.Code(), len(rows), rowErrs)

	r.setStatus(status.Merging)
	err = r.retry(ctx, "staging", func() error {
		return r.store.ReplaceStaging(ctx, batch.Key, batch)
	})
	if err != nil {
		return nil, err
	}
	var sum *store.Summary
	err = r.retry(ctx, "merge", func() error {
		var err error
		sum, err = r.store.Merge(ctx, batch.Key)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.metrics.ObserveMerge(sum)

	res := &Result{Job: job, Rows: len(rows), Summary: sum}
	for _, e := range rowErrs {
		res.Skipped = append(res.Skipped, SkippedRow{Row: e.SourceRow, Title: e.OfficeTitle, Reason: e.Err.Error()})
	}
	// the merge is committed at this point, a failed archive only costs the record
	if location, err := r.archive(ctx, batch.Key, res); err != nil {
		r.log.Warn("failed to archive result", "batch", batch.Key.String(), "error", err.Error())
	} else {
		res.Archive = location
	}
	return res, nil
}

func (r *Runner) download(ctx context.Context, source string) ([]byte, error) {
	l, err := filestorage.ParseLocation(source)
	if err != nil {
		return nil, err
	}
	fs, err := r.storage.Open(ctx, l.Scheme)
	if err != nil {
		return nil, err
	}
	b, err := fs.Download(ctx, l.Bucket, l.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to download filings [%s], error %w", source, err)
	}
	return b, nil
}

// retry runs fn again while it fails with a rolled back transaction. Other
// errors are returned at once.
func (r *Runner) retry(ctx context.Context, step string, fn func() error) error {
	return try.Do(func(attempt int) (bool, error) {
		err := fn()
		var txErr *store.TransactionError
		if err == nil || !errors.As(err, &txErr) || attempt >= r.opts.Attempts {
			return false, err
		}
		r.log.Warn("retrying transaction", "step", step, "attempt", attempt, "error", err.Error())
		select {
		case <-ctx.Done():
			return false, err
		case <-time.After(r.opts.Backoff * time.Duration(attempt)):
		}
		return true, err
	})
}

func (r *Runner) archive(ctx context.Context, key civic.BatchKey, res *Result) (string, error) {
	if r.opts.Archive == "" {
		return "", nil
	}
	dir, err := filestorage.ParseLocation(r.opts.Archive)
	if err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result of [%s], error %w", key, err)
	}
	name := fmt.Sprintf("%s-%s-%s.json", key, strings.ToLower(string(res.Job.RaceType)), res.Summary.FinishedAt.Format("20060102T150405Z"))
	l := dir.Join(name)
	fs, err := r.storage.Open(ctx, l.Scheme)
	if err != nil {
		return "", err
	}
	var location string
	err = try.Do(func(attempt int) (bool, error) {
		var err error
		location, err = fs.Upload(ctx, b, l.Bucket, l.Name)
		return attempt < maxAttempts && ctx.Err() == nil, err
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload result [%s], error %w", l, err)
	}
	r.log.Info("archived result", "batch", key.String(), "location", location)
	return location, nil
}

func (r *Runner) setStatus(s status.Status) {
	if r.opts.OnStatus != nil {
		r.opts.OnStatus(s)
	}
}
