package models

import "time"

// User is an account row. IDs are BIGSERIAL so the derived game room
// identifiers ("game_{min}_{max}") stay stable and human-readable.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Nickname string `json:"nickname"`
}

// GameResult is one completed match, append-only.
type GameResult struct {
	ID        int64     `json:"id"`
	BlackID   int64     `json:"black_id"`
	WhiteID   int64     `json:"white_id"`
	WinnerID  int64     `json:"winner_id"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryEntry is the rendered form of a GameResult for the history API.
type HistoryEntry struct {
	Time   string `json:"time"`
	Black  string `json:"black"`
	White  string `json:"white"`
	Winner string `json:"winner"`
}
