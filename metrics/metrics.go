// Package metrics exports filing ingestion counters to Prometheus.
package metrics

import (
	"errors"
	"time"

	"github.com/candidatos-info/civic-enrichers/processor"
	"github.com/candidatos-info/civic-enrichers/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for ingestion jobs.
type Metrics struct {
	// Filing rows read, by jurisdiction
	RowsProcessed *prometheus.CounterVec

	// Filing rows skipped, by jurisdiction and reason
	RowsSkipped *prometheus.CounterVec

	// Merge outcomes by jurisdiction, entity and outcome
	MergeOutcomes *prometheus.CounterVec

	// Jobs by jurisdiction and result
	Jobs *prometheus.CounterVec

	JobDuration *prometheus.HistogramVec
}

// New creates the ingestion metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RowsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civic_filing_rows_processed_total",
			Help: "Total filing rows read by jurisdiction",
		}, []string{"jurisdiction"}),

		RowsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civic_filing_rows_skipped_total",
			Help: "Total filing rows skipped by jurisdiction and reason",
		}, []string{"jurisdiction", "reason"}), // reason: "missing_office", "missing_candidate", "missing_qualifier", "other"

		MergeOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civic_merge_rows_total",
			Help: "Total merged rows by jurisdiction, entity and outcome",
		}, []string{"jurisdiction", "entity", "outcome"}),

		Jobs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civic_ingest_jobs_total",
			Help: "Total ingestion jobs by jurisdiction and result",
		}, []string{"jurisdiction", "result"}),

		JobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "civic_ingest_job_duration_seconds",
			Help:    "Duration of ingestion jobs from download to archive",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"jurisdiction"}),
	}
}

// ObserveRows records the rows of one filing file.
func (m *Metrics) ObserveRows(jurisdiction string, rows int, skipped []*processor.RowError) {
	if m == nil {
		return
	}
	m.RowsProcessed.WithLabelValues(jurisdiction).Add(float64(rows))
	for _, e := range skipped {
		m.RowsSkipped.WithLabelValues(jurisdiction, reason(e)).Inc()
	}
}

func reason(e *processor.RowError) string {
	switch {
	case errors.Is(e, processor.ErrMissingOfficeName):
		return "missing_office"
	case errors.Is(e, processor.ErrMissingCandidate):
		return "missing_candidate"
	case errors.Is(e, processor.ErrMissingQualifier):
		return "missing_qualifier"
	default:
		return "other"
	}
}

// ObserveMerge records the outcome counts of a merge summary.
func (m *Metrics) ObserveMerge(s *store.Summary) {
	if m == nil || s == nil {
		return
	}
	jurisdiction := s.Batch.Jurisdiction
	s.Each(func(entity string, c store.Counts) {
		m.MergeOutcomes.WithLabelValues(jurisdiction, entity, "created").Add(float64(c.Created))
		m.MergeOutcomes.WithLabelValues(jurisdiction, entity, "updated").Add(float64(c.Updated))
		m.MergeOutcomes.WithLabelValues(jurisdiction, entity, "unchanged").Add(float64(c.Unchanged))
		m.MergeOutcomes.WithLabelValues(jurisdiction, entity, "conflict").Add(float64(c.Conflicts))
	})
}

// ObserveJob records a finished job.
func (m *Metrics) ObserveJob(jurisdiction string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.Jobs.WithLabelValues(jurisdiction, result).Inc()
	m.JobDuration.WithLabelValues(jurisdiction).Observe(d.Seconds())
}
