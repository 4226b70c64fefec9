package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Connect it once at application startup.
var Rdb *redis.Client

// DefaultQueueName is the Redis list the server pushes finished games onto
// and the historian drains.
var DefaultQueueName = "gomoku_results"

// ResultRecord is one finished game as carried on the queue.
type ResultRecord struct {
	BlackID   int64 `json:"black_id"`
	WhiteID   int64 `json:"white_id"`
	WinnerID  int64 `json:"winner_id"`
	Timestamp int64 `json:"timestamp"`
}

// ConnectRedis initializes the global client from REDIS_ADDR and REDIS_DB and
// verifies connectivity.
func ConnectRedis() error {
	addr := GetEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := GetEnvInt("REDIS_DB", 0)

	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// ResultPublisher pushes finished games onto the queue. It satisfies the
// hub's ResultRecorder interface; the write is quick and best effort, the
// historian does the durable insert.
type ResultPublisher struct {
	Client *redis.Client
	Queue  string
}

// NewResultPublisher wires a publisher to the global client and the
// configured queue name.
func NewResultPublisher() *ResultPublisher {
	return &ResultPublisher{
		Client: Rdb,
		Queue:  GetEnv("RESULT_QUEUE_NAME", DefaultQueueName),
	}
}

// RecordResult serializes the result and RPUSHes it onto the queue.
func (p *ResultPublisher) RecordResult(ctx context.Context, blackID, whiteID, winnerID int64) error {
	record := ResultRecord{
		BlackID:   blackID,
		WhiteID:   whiteID,
		WinnerID:  winnerID,
		Timestamp: time.Now().UnixMilli(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal result record: %w", err)
	}
	if err := p.Client.RPush(ctx, p.Queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", p.Queue, err)
	}
	return nil
}

// GetEnv reads an environment variable or returns a default value.
func GetEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// GetEnvInt parses an environment variable as an integer, else a default.
func GetEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
