package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hera_backend/internal/jobs"
	"hera_backend/internal/logger"
	"hera_backend/internal/models"

	"github.com/nats-io/nats.go"
)

// AnalysisRequest is published for a remote pipeline worker to pick up.
type AnalysisRequest struct {
	Ticker string `json:"ticker"`
	JobID  string `json:"job_id"`
}

// AnalysisStatus is what the pipeline publishes back when a job ends.
type AnalysisStatus struct {
	Ticker string           `json:"ticker"`
	JobID  string           `json:"job_id"`
	Status models.JobStatus `json:"status"`
	Error  string           `json:"error,omitempty"`
}

type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSRunner hands analysis jobs to a pipeline running elsewhere.
type NATSRunner struct {
	pub     publisher
	subject string
	store   jobs.Store
	sub     *nats.Subscription
}

// NewNATSRunner subscribes to statusSubject and publishes requests on
// requestSubject.
func NewNATSRunner(conn *nats.Conn, requestSubject, statusSubject string, store jobs.Store) (*NATSRunner, error) {
	r := &NATSRunner{pub: conn, subject: requestSubject, store: store}

	sub, err := conn.Subscribe(statusSubject, func(msg *nats.Msg) {
		r.handleStatus(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", statusSubject, err)
	}
	r.sub = sub
	return r, nil
}

func (r *NATSRunner) Start(_ context.Context, ticker, jobID string) error {
	payload, err := json.Marshal(AnalysisRequest{Ticker: ticker, JobID: jobID})
	if err != nil {
		return err
	}
	if err := r.pub.Publish(r.subject, payload); err != nil {
		return fmt.Errorf("publish analysis request: %w", err)
	}
	logger.WorkerLog("nats-runner", "publish", nil, "ticker", ticker, "job_id", jobID, "subject", r.subject)
	return nil
}

func (r *NATSRunner) Close() error {
	if r.sub == nil {
		return nil
	}
	return r.sub.Unsubscribe()
}

func (r *NATSRunner) handleStatus(data []byte) {
	var status AnalysisStatus
	if err := json.Unmarshal(data, &status); err != nil {
		logger.WorkerLog("nats-runner", "decode status", err)
		return
	}
	if status.Ticker == "" || status.JobID == "" {
		logger.Warn("nats status message without ticker or job id")
		return
	}
	switch status.Status {
	case models.JobStatusComplete, models.JobStatusError:
	default:
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := r.store.Finish(ctx, status.Ticker, status.JobID, status.Status, status.Error)
	logger.WorkerLog("nats-runner", "status", err, "ticker", status.Ticker, "job_id", status.JobID, "status", status.Status)
}
