package jobs

import (
	"context"
	"sync"
	"time"

	"hera_backend/internal/models"
)

// MemoryStore keeps jobs in process memory. Entries older than ttl are
// dropped lazily on access.
type MemoryStore struct {
	mu   sync.Mutex
	jobs map[string]Job
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		jobs: make(map[string]Job),
		ttl:  ttl,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Start(_ context.Context, ticker, jobID string, at time.Time) error {
	ticker = normalizeTicker(ticker)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[ticker] = Job{
		ID:        jobID,
		Ticker:    ticker,
		Status:    models.JobStatusProcessing,
		StartedAt: at.UTC(),
		UpdatedAt: at.UTC(),
	}
	return nil
}

func (s *MemoryStore) Finish(_ context.Context, ticker, jobID string, status models.JobStatus, message string) error {
	ticker = normalizeTicker(ticker)

	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[ticker]
	if !ok || job.ID != jobID {
		return nil
	}
	job.Status = status
	job.Error = message
	job.UpdatedAt = s.now()
	s.jobs[ticker] = job
	return nil
}

func (s *MemoryStore) Get(_ context.Context, ticker string) (*Job, error) {
	ticker = normalizeTicker(ticker)

	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[ticker]
	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && s.now().Sub(job.UpdatedAt) > s.ttl {
		delete(s.jobs, ticker)
		return nil, nil
	}
	return &job, nil
}
