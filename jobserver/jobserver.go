// Package jobserver exposes ingestion jobs over HTTP. It runs one job at a
// time and reports the status of the current or last one.
package jobserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/candidatos-info/civic-enrichers/ingest"
	"github.com/candidatos-info/civic-enrichers/jurisdiction/registry"
	"github.com/candidatos-info/civic-enrichers/logger"
	"github.com/candidatos-info/civic-enrichers/status"
	"github.com/labstack/echo"
)

// Runner executes a job.
type Runner interface {
	Run(ctx context.Context, job ingest.Job) (*ingest.Result, error)
}

// Handler is a struct to hold important data for this package
type Handler struct {
	ctx    context.Context // jobs outlive the request that started them
	runner Runner
	log    *logger.Logger

	mu     sync.Mutex
	status status.Status  // job status
	err    string         // last error message
	last   *ingest.Result // last successful result
}

// used on Post
type postRequest struct {
	Jurisdiction string `json:"jurisdiction"`
	Cycle        int    `json:"cycle"`
	RaceType     string `json:"race_type"`
	Source       string `json:"source"`
	ElectionDate string `json:"election_date"` // YYYY-MM-DD, optional
}

func (in postRequest) job() (ingest.Job, error) {
	if _, err := registry.Lookup(in.Jurisdiction); err != nil {
		return ingest.Job{}, err
	}
	if in.Cycle < 1900 {
		return ingest.Job{}, fmt.Errorf("invalid cycle [%d]", in.Cycle)
	}
	if in.RaceType == "" {
		in.RaceType = string(civic.RaceTypeGeneral)
	}
	raceType, ok := civic.ParseRaceType(in.RaceType)
	if !ok {
		return ingest.Job{}, fmt.Errorf("invalid race type [%s]", in.RaceType)
	}
	if in.Source == "" {
		return ingest.Job{}, fmt.Errorf("missing source")
	}
	job := ingest.Job{Jurisdiction: in.Jurisdiction, Cycle: in.Cycle, RaceType: raceType, Source: in.Source}
	if in.ElectionDate != "" {
		d, err := time.Parse("2006-01-02", in.ElectionDate)
		if err != nil {
			return ingest.Job{}, fmt.Errorf("invalid election date [%s]", in.ElectionDate)
		}
		job.ElectionDate = d
	}
	return job, nil
}

// New returns a new ingestion handler. Jobs run under ctx.
func New(ctx context.Context, runner Runner, log *logger.Logger) *Handler {
	return &Handler{
		ctx:    ctx,
		runner: runner,
		log:    log.With("service", "JobServer"),
		status: status.Idle,
	}
}

// SetStatus records the stage of the running job. Idle is ignored: the
// handler goes idle only after it stored the job's result.
func (h *Handler) SetStatus(s status.Status) {
	if s == status.Idle {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = s
}

// Status returns the stage of the running job, Idle when there is none.
func (h *Handler) Status() status.Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Get returns current state, last error and last result
func (h *Handler) Get(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"errorMessage": h.err,
		"status":       h.status,
		"statusText":   status.Text(h.status),
		"result":       h.last,
	})
}

// Post starts a job unless one is already running
func (h *Handler) Post(c echo.Context) error {
	in := postRequest{}
	if err := c.Bind(&in); err != nil {
		return c.String(http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}
	job, err := in.job()
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	h.mu.Lock()
	if h.status != status.Idle {
		h.mu.Unlock()
		return c.String(http.StatusServiceUnavailable, "system is processing data")
	}
	h.status = status.Loading
	h.mu.Unlock()
	go h.run(job)
	return c.String(http.StatusOK, "request is being processed")
}

func (h *Handler) run(job ingest.Job) {
	res, err := h.runner.Run(h.ctx, job)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = status.Idle
	if err != nil {
		h.err = err.Error()
		h.log.Error("job failed", "jurisdiction", job.Jurisdiction, "cycle", job.Cycle, "error", err.Error())
		return
	}
	h.err = ""
	h.last = res
}
