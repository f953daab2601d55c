// Package jobs tracks in-flight analysis jobs per ticker. The store is
// advisory: a durable analysis row always wins over what is recorded here.
package jobs

import (
	"context"
	"strings"
	"time"

	"hera_backend/internal/models"
)

// Job is the last known state of an analysis run for one ticker.
type Job struct {
	ID        string           `json:"id"`
	Ticker    string           `json:"ticker"`
	Status    models.JobStatus `json:"status"`
	Error     string           `json:"error,omitempty"`
	StartedAt time.Time        `json:"started_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Store records job state. Get returns (nil, nil) when nothing is known.
type Store interface {
	// Start records a processing job, superseding any previous one.
	Start(ctx context.Context, ticker, jobID string, at time.Time) error
	// Finish moves the job to complete or error. It is a no-op when jobID is
	// no longer the current job for ticker.
	Finish(ctx context.Context, ticker, jobID string, status models.JobStatus, message string) error
	Get(ctx context.Context, ticker string) (*Job, error)
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
