// cmd/server/main.go
package main

import (
	"crypto/rand"
	"encoding/binary"
	"log"
	mathrand "math/rand"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/gomoku-live/server/internal/auth"
	"github.com/gomoku-live/server/internal/cache"
	"github.com/gomoku-live/server/internal/database"
	"github.com/gomoku-live/server/internal/handlers"
	"github.com/gomoku-live/server/internal/hub"
	"github.com/gomoku-live/server/internal/middleware"
)

func main() {
	if err := auth.Init(); err != nil {
		log.Fatalf("auth init failed: %v", err)
	}
	database.ConnectDB()
	if err := cache.ConnectRedis(); err != nil {
		log.Fatalf("redis connect failed: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	users := database.UserStore{}
	results := cache.NewResultPublisher()
	h := hub.New(users, results, mathrand.New(mathrand.NewSource(seed())), logger)

	mux := http.NewServeMux()

	// user endpoints
	mux.HandleFunc("/user/create", handlers.CreateUserHandler)
	mux.HandleFunc("/user/login", handlers.LoginHandler)
	mux.HandleFunc("/user/logout", handlers.LogoutHandler)

	// history endpoint
	mux.Handle("/api/history", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.HistoryHandler,
	)))

	// realtime channel
	mux.Handle("/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.GameWSHandler(logger, h, users),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// seed draws the matchmaking rng seed from crypto-quality entropy so color
// assignment is unpredictable across restarts.
func seed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		log.Fatalf("failed to seed rng: %v", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
