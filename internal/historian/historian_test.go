package historian

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomoku-live/server/internal/cache"
)

type capturedResult struct {
	blackID, whiteID, winnerID int64
	ts                         time.Time
}

type captureSink struct {
	mu      sync.Mutex
	results []capturedResult
}

func (c *captureSink) sink(_ context.Context, blackID, whiteID, winnerID int64, ts time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, capturedResult{blackID, whiteID, winnerID, ts})
	return nil
}

func (c *captureSink) all() []capturedResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]capturedResult(nil), c.results...)
}

func newTestService(t *testing.T) (*Service, *cache.ResultPublisher, *captureSink) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sink := &captureSink{}
	svc := New(client, "gomoku_results_test", sink.sink)
	pub := &cache.ResultPublisher{Client: client, Queue: "gomoku_results_test"}
	return svc, pub, sink
}

func TestPublishAndDrainResult(t *testing.T) {
	svc, pub, sink := newTestService(t)
	ctx := context.Background()

	require.NoError(t, pub.RecordResult(ctx, 1, 2, 1))

	processed, err := svc.DrainOnce(ctx)
	require.NoError(t, err)
	assert.True(t, processed)

	results := sink.all()
	require.Len(t, results, 1)
	assert.Equal(t, int64(1), results[0].blackID)
	assert.Equal(t, int64(2), results[0].whiteID)
	assert.Equal(t, int64(1), results[0].winnerID)
	assert.WithinDuration(t, time.Now(), results[0].ts, time.Minute)
}

func TestDrainOnceEmptyQueue(t *testing.T) {
	svc, _, sink := newTestService(t)

	processed, err := svc.DrainOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, processed)
	assert.Empty(t, sink.all())
}

func TestMalformedRecordIsSkipped(t *testing.T) {
	svc, pub, sink := newTestService(t)
	ctx := context.Background()

	require.NoError(t, pub.Client.RPush(ctx, pub.Queue, "not json").Err())
	require.NoError(t, pub.RecordResult(ctx, 3, 4, 4))

	processed, err := svc.DrainOnce(ctx)
	require.NoError(t, err)
	assert.True(t, processed, "malformed record is consumed")
	assert.Empty(t, sink.all())

	_, err = svc.DrainOnce(ctx)
	require.NoError(t, err)
	results := sink.all()
	require.Len(t, results, 1)
	assert.Equal(t, int64(4), results[0].winnerID)
}

func TestRunDrainsInBackground(t *testing.T) {
	svc, pub, sink := newTestService(t)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		svc.Run()
		close(done)
	}()

	require.NoError(t, pub.RecordResult(ctx, 5, 6, 6))

	assert.Eventually(t, func() bool {
		return len(sink.all()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	svc.Stop()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("historian did not stop")
	}
}
