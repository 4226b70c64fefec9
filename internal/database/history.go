package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gomoku-live/server/internal/models"
)

// InsertResult appends one completed game to game_results.
func InsertResult(ctx context.Context, blackID, whiteID, winnerID int64, ts time.Time) error {
	q := `INSERT INTO game_results (black_id, white_id, winner_id, ts)
	      VALUES ($1, $2, $3, $4)`
	if _, err := DB.Exec(ctx, q, blackID, whiteID, winnerID, ts); err != nil {
		return fmt.Errorf("failed to insert game result: %w", err)
	}
	return nil
}

// History timestamps are rendered in JST.
var jst = time.FixedZone("JST", 9*60*60)

// ListRecentResults returns the newest limit results joined with the
// participants' nicknames, rendered for the history API.
func ListRecentResults(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	q := `
	SELECT r.ts, b.nickname, w.nickname, v.nickname
	FROM game_results r
	JOIN users b ON r.black_id = b.id
	JOIN users w ON r.white_id = w.id
	JOIN users v ON r.winner_id = v.id
	ORDER BY r.ts DESC
	LIMIT $1
	`
	rows, err := DB.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game results: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var ts time.Time
		var e models.HistoryEntry
		if err := rows.Scan(&ts, &e.Black, &e.White, &e.Winner); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}
		e.Time = ts.In(jst).Format("2006-01-02 15:04")
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
