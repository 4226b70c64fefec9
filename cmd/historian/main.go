// cmd/historian/main.go runs the result historian: it pops finished-game
// records from the Redis queue and persists them to PostgreSQL, decoupled
// from the game server process.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gomoku-live/server/internal/cache"
	"github.com/gomoku-live/server/internal/database"
	"github.com/gomoku-live/server/internal/historian"
)

func main() {
	database.ConnectDB()
	if err := cache.ConnectRedis(); err != nil {
		log.Fatalf("redis connect failed: %v", err)
	}

	queue := cache.GetEnv("RESULT_QUEUE_NAME", cache.DefaultQueueName)
	svc := historian.New(cache.Rdb, queue, database.InsertResult)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		svc.Stop()
	}()

	svc.Run()
}
