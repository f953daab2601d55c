package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hera_backend/internal/models"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "hera:jobs:"

// RedisStore shares job state between instances. Each ticker is one JSON
// value with the store TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func redisKey(ticker string) string {
	return redisKeyPrefix + normalizeTicker(ticker)
}

func (s *RedisStore) Start(ctx context.Context, ticker, jobID string, at time.Time) error {
	job := Job{
		ID:        jobID,
		Ticker:    normalizeTicker(ticker),
		Status:    models.JobStatusProcessing,
		StartedAt: at.UTC(),
		UpdatedAt: at.UTC(),
	}
	return s.put(ctx, redisKey(ticker), &job)
}

// Finish uses WATCH so a concurrent Start for a newer job is not overwritten.
func (s *RedisStore) Finish(ctx context.Context, ticker, jobID string, status models.JobStatus, message string) error {
	key := redisKey(ticker)
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		job, err := s.read(ctx, tx, key)
		if err != nil || job == nil || job.ID != jobID {
			return err
		}
		job.Status = status
		job.Error = message
		job.UpdatedAt = s.now()

		payload, err := json.Marshal(job)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (s *RedisStore) Get(ctx context.Context, ticker string) (*Job, error) {
	return s.read(ctx, s.client, redisKey(ticker))
}

func (s *RedisStore) put(ctx context.Context, key string, job *Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	return s.client.Set(ctx, key, payload, s.ttl).Err()
}

func (s *RedisStore) read(ctx context.Context, client getter, key string) (*Job, error) {
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", key, err)
	}
	return &job, nil
}
