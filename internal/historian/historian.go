// Package historian drains finished-game records from the Redis queue and
// persists them to PostgreSQL. It runs as its own process (cmd/historian) so
// a slow or unavailable database never backs up into gameplay.
package historian

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/gomoku-live/server/internal/cache"
)

// Sink is where drained results land. Production wiring points this at
// database.InsertResult.
type Sink func(ctx context.Context, blackID, whiteID, winnerID int64, ts time.Time) error

// Service consumes the result queue.
type Service struct {
	client *redis.Client
	queue  string
	sink   Sink

	ctx      context.Context
	cancelFn context.CancelFunc
}

// New builds a historian reading from client's queue and writing through sink.
func New(client *redis.Client, queue string, sink Sink) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		client:   client,
		queue:    queue,
		sink:     sink,
		ctx:      ctx,
		cancelFn: cancel,
	}
}

// Run blocks, popping records until Stop is called. Malformed payloads are
// logged and skipped; sink failures are logged and the record dropped, since
// history is best effort by contract.
func (s *Service) Run() {
	log.Infof("historian draining queue %q", s.queue)
	for {
		select {
		case <-s.ctx.Done():
			log.Info("historian shutting down")
			return
		default:
		}

		res, err := s.client.BLPop(s.ctx, 3*time.Second, s.queue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			log.Errorf("BLPop: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if len(res) < 2 {
			continue
		}
		s.handle(res[1])
	}
}

// DrainOnce pops at most one record without blocking, for tests and manual
// catch-up. Reports whether a record was processed.
func (s *Service) DrainOnce(ctx context.Context) (bool, error) {
	data, err := s.client.LPop(ctx, s.queue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	s.handle(data)
	return true, nil
}

func (s *Service) handle(payload string) {
	var record cache.ResultRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		log.Warnf("invalid result record: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ts := time.UnixMilli(record.Timestamp)
	if err := s.sink(ctx, record.BlackID, record.WhiteID, record.WinnerID, ts); err != nil {
		log.Errorf("failed to persist result (black=%d white=%d winner=%d): %v",
			record.BlackID, record.WhiteID, record.WinnerID, err)
	}
}

// Stop signals Run to exit.
func (s *Service) Stop() {
	s.cancelFn()
}
