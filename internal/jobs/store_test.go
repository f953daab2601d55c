package jobs

import (
	"context"
	"testing"
	"time"

	"hera_backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func storeContract(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	job, err := store.Get(ctx, "AAPL")
	require.NoError(t, err)
	assert.Nil(t, job)

	require.NoError(t, store.Start(ctx, "aapl ", "AAPL-1", now))
	job, err = store.Get(ctx, "AAPL")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, models.JobStatusProcessing, job.Status)
	assert.Equal(t, "AAPL-1", job.ID)

	require.NoError(t, store.Start(ctx, "AAPL", "AAPL-2", now.Add(time.Second)))
	require.NoError(t, store.Finish(ctx, "AAPL", "AAPL-1", models.JobStatusError, "stale run"))
	job, err = store.Get(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusProcessing, job.Status, "a superseded job must not overwrite the newer one")

	require.NoError(t, store.Finish(ctx, "AAPL", "AAPL-2", models.JobStatusError, "exit status 1"))
	job, err = store.Get(ctx, "aapl")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusError, job.Status)
	assert.Equal(t, "exit status 1", job.Error)

	require.NoError(t, store.Finish(ctx, "MSFT", "MSFT-1", models.JobStatusComplete, ""))
	job, err = store.Get(ctx, "MSFT")
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore(time.Hour))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return start.Add(2 * time.Hour) }

	require.NoError(t, store.Start(ctx, "TSLA", "TSLA-1", start))
	job, err := store.Get(ctx, "TSLA")
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestRedisStore(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	storeContract(t, store)
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, time.Minute)

	require.NoError(t, store.Start(ctx, "NVDA", "NVDA-1", time.Now()))
	assert.True(t, mr.Exists(redisKeyPrefix+"NVDA"))

	mr.FastForward(2 * time.Minute)
	job, err := store.Get(ctx, "NVDA")
	require.NoError(t, err)
	assert.Nil(t, job)
}
