// Package hub owns all live server state: which users are connected, which
// broadcast group each connection sits in, and the directory of active game
// sessions. Every inbound event is handled under a single hub mutex, so
// presence, matchmaking, and session mutation are linearized: concurrent
// readers can never observe a user as free while their session exists, or
// vice versa.
package hub

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gomoku-live/server/internal/game"
	"github.com/gomoku-live/server/internal/models"
)

// UserLookup resolves user ids to profiles for broadcast payloads.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// ResultRecorder persists a finished game. Best effort: the hub logs failures
// and tears the session down regardless.
type ResultRecorder interface {
	RecordResult(ctx context.Context, blackID, whiteID, winnerID int64) error
}

// Hub is the owning object for all in-memory realtime state. Created once at
// startup; everything it holds is lost on process restart.
type Hub struct {
	mu    sync.Mutex
	conns map[uuid.UUID]*Conn
	seq   uint64

	sessions *game.Store
	users    UserLookup
	results  ResultRecorder
	rng      *rand.Rand
	log      *logrus.Logger
}

// New builds a hub. rng decides color assignment on challenge acceptance and
// is injected so matchmaking stays deterministic under test.
func New(users UserLookup, results ResultRecorder, rng *rand.Rand, logger *logrus.Logger) *Hub {
	return &Hub{
		conns:    make(map[uuid.UUID]*Conn),
		sessions: game.NewStore(),
		users:    users,
		results:  results,
		rng:      rng,
		log:      logger,
	}
}

// Sessions exposes the session directory, primarily for tests and handlers
// that need read access.
func (h *Hub) Sessions() *game.Store {
	return h.sessions
}

// Register adds a freshly authenticated connection. If the user has a game in
// progress the connection rejoins that room and receives a full state
// snapshot; otherwise it lands in the lobby and the presence list is
// re-broadcast. Registering the same connection twice is idempotent.
func (h *Hub) Register(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[conn.ID]; !ok {
		h.seq++
		conn.seq = h.seq
		h.conns[conn.ID] = conn
	}

	if sess, ok := h.sessions.FindByParticipant(conn.UserID); ok {
		conn.Room = sess.RoomID
		conn.Write(models.ReconnectGame{
			Type:        models.TypeReconnectGame,
			RoomID:      sess.RoomID,
			Role:        roleOf(sess, conn.UserID),
			Opponent:    h.nicknameLocked(sess.Opponent(conn.UserID)),
			Board:       sess.Board.Grid(),
			CurrentTurn: sess.Turn,
		})
		h.log.WithFields(logrus.Fields{"user": conn.UserID, "room": sess.RoomID}).Info("reconnected to game in progress")
		h.broadcastUserListLocked()
		return
	}

	conn.Room = ""
	h.broadcastUserListLocked()
}

// Unregister removes a connection when its transport signals disconnection.
// Unknown or already-superseded handles are a no-op, which makes
// double-disconnect and reconnect races safe: only the exact registered
// instance is removed.
func (h *Hub) Unregister(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	existing, ok := h.conns[conn.ID]
	if !ok || existing != conn {
		return
	}
	delete(h.conns, conn.ID)
	if conn.Cancel != nil {
		conn.Cancel()
	}
	h.broadcastUserListLocked()
}

// Challenge delivers a challenge notification to the target user's current
// connection. If the target is offline the request silently evaporates;
// challenges hold no server-side state.
func (h *Hub) Challenge(conn *Conn, targetID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	target := h.findConnLocked(targetID)
	if target == nil {
		return
	}
	target.Write(models.ReceiveChallenge{
		Type:           models.TypeReceiveChallenge,
		ChallengerID:   conn.UserID,
		ChallengerName: conn.Nickname,
	})
}

// RespondChallenge handles the target's accept/decline. On acceptance it
// assigns colors at random, creates and registers the session, notifies both
// participants with their roles, and refreshes the lobby list so both show as
// playing. Acceptance is a no-op if the challenger has since disconnected, or
// if either party already has a game in progress.
func (h *Hub) RespondChallenge(conn *Conn, challengerID int64, accepted bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	challenger := h.findConnLocked(challengerID)
	if challenger == nil {
		return
	}

	if !accepted {
		challenger.Write(models.ChallengeDeclined{
			Type: models.TypeChallengeDeclined,
			Msg:  fmt.Sprintf("%s declined.", conn.Nickname),
		})
		return
	}

	if _, busy := h.sessions.FindByParticipant(conn.UserID); busy {
		h.log.WithField("user", conn.UserID).Warn("challenge accepted while already in a game, ignoring")
		return
	}
	if _, busy := h.sessions.FindByParticipant(challengerID); busy {
		h.log.WithField("user", challengerID).Warn("challenger already in a game, ignoring acceptance")
		return
	}

	blackID, whiteID := challengerID, conn.UserID
	if h.rng.Intn(2) == 1 {
		blackID, whiteID = whiteID, blackID
	}
	sess := game.NewSession(blackID, whiteID)
	h.sessions.Register(sess)

	challenger.Write(models.GameStart{
		Type:     models.TypeGameStart,
		RoomID:   sess.RoomID,
		Opponent: conn.Nickname,
		Role:     roleOf(sess, challengerID),
	})
	conn.Write(models.GameStart{
		Type:     models.TypeGameStart,
		RoomID:   sess.RoomID,
		Opponent: challenger.Nickname,
		Role:     roleOf(sess, conn.UserID),
	})

	h.log.WithFields(logrus.Fields{"room": sess.RoomID, "black": blackID, "white": whiteID}).Info("game started")
	h.broadcastUserListLocked()
}

// JoinGameRoom moves a participant's connection from the lobby into its game
// room after a game_start.
func (h *Hub) JoinGameRoom(conn *Conn, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn.Room = roomID
}

// Spectate subscribes a connection to a room without claiming a player slot
// and pushes a one-time snapshot. Unknown rooms are ignored.
func (h *Hub) Spectate(conn *Conn, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sess, ok := h.sessions.Get(roomID)
	if !ok {
		return
	}
	conn.Room = roomID
	conn.Write(models.SpectateStart{
		Type:        models.TypeSpectateStart,
		RoomID:      roomID,
		BlackName:   h.nicknameLocked(sess.BlackID),
		WhiteName:   h.nicknameLocked(sess.WhiteID),
		Board:       sess.Board.Grid(),
		CurrentTurn: sess.Turn,
		BlackID:     sess.BlackID,
		WhiteID:     sess.WhiteID,
	})
}

// BackToLobby unsubscribes a connection from its room and rejoins the lobby,
// then refreshes the presence list.
func (h *Hub) BackToLobby(conn *Conn, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Room = ""
	h.broadcastUserListLocked()
}

// PlaceStone applies a move to the addressed session. Illegal moves (wrong
// turn, occupied cell, off-board, unknown room, spectator ids) change nothing
// and emit nothing. A legal move is broadcast to the room; a winning move
// additionally records the result, removes the session, broadcasts game_over,
// and refreshes the lobby list.
func (h *Hub) PlaceStone(conn *Conn, roomID string, row, col int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sess, ok := h.sessions.Get(roomID)
	if !ok {
		return
	}
	out := sess.ApplyMove(conn.UserID, row, col)
	if !out.Applied {
		return
	}

	h.broadcastRoomLocked(roomID, models.BoardUpdate{
		Type:     models.TypeBoardUpdate,
		Row:      out.Row,
		Col:      out.Col,
		Color:    int(out.Stone),
		NextTurn: out.NextTurn,
	})

	if !out.Won {
		return
	}

	// Best-effort history write. The session is torn down whether or not it
	// succeeds.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := h.results.RecordResult(ctx, sess.BlackID, sess.WhiteID, conn.UserID); err != nil {
		h.log.WithError(err).WithField("room", roomID).Error("failed to record game result")
	}
	cancel()

	h.sessions.Remove(roomID)
	h.broadcastRoomLocked(roomID, models.GameOver{
		Type:     models.TypeGameOver,
		WinnerID: conn.UserID,
	})
	h.log.WithFields(logrus.Fields{"room": roomID, "winner": conn.UserID}).Info("game over")
	h.broadcastUserListLocked()
}

// Snapshot returns the de-duplicated presence list, each user annotated as
// free or playing, sorted by user id.
func (h *Hub) Snapshot() []models.UserStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshotLocked()
}

func (h *Hub) snapshotLocked() []models.UserStatus {
	occupancy := h.sessions.Occupancy()

	// A user reconnecting can transiently hold two connections; the
	// latest-registered one represents them.
	latest := make(map[int64]*Conn, len(h.conns))
	for _, c := range h.conns {
		if prev, ok := latest[c.UserID]; !ok || c.seq > prev.seq {
			latest[c.UserID] = c
		}
	}

	users := make([]models.UserStatus, 0, len(latest))
	for uid, c := range latest {
		entry := models.UserStatus{ID: uid, Nickname: c.Nickname, Status: models.StatusFree}
		if rid, playing := occupancy[uid]; playing {
			entry.Status = models.StatusPlaying
			entry.RoomID = rid
		}
		users = append(users, entry)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// broadcastUserListLocked sends the presence snapshot to every lobby
// connection. Connections inside game rooms do not receive it.
func (h *Hub) broadcastUserListLocked() {
	msg := models.UserListUpdate{
		Type:  models.TypeUserListUpdate,
		Users: h.snapshotLocked(),
	}
	for _, c := range h.conns {
		if c.Room == "" {
			c.Write(msg)
		}
	}
}

// broadcastRoomLocked sends msg to every connection subscribed to roomID,
// participants and spectators alike.
func (h *Hub) broadcastRoomLocked(roomID string, msg any) {
	for _, c := range h.conns {
		if c.Room == roomID {
			c.Write(msg)
		}
	}
}

// findConnLocked returns the user's addressable connection, or nil if
// offline. Last-registered wins when duplicates exist.
func (h *Hub) findConnLocked(userID int64) *Conn {
	var best *Conn
	for _, c := range h.conns {
		if c.UserID != userID {
			continue
		}
		if best == nil || c.seq > best.seq {
			best = c
		}
	}
	return best
}

// FindConnection returns the user's addressable connection, or nil.
func (h *Hub) FindConnection(userID int64) *Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.findConnLocked(userID)
}

// nicknameLocked resolves a display name, preferring the live connection and
// falling back to the user store for offline participants.
func (h *Hub) nicknameLocked(userID int64) string {
	if c := h.findConnLocked(userID); c != nil {
		return c.Nickname
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	u, err := h.users.GetUserByID(ctx, userID)
	if err != nil {
		h.log.WithError(err).WithField("user", userID).Warn("nickname lookup failed")
		return fmt.Sprintf("player_%d", userID)
	}
	return u.Nickname
}

func roleOf(sess *game.Session, userID int64) string {
	if sess.BlackID == userID {
		return models.RoleBlack
	}
	return models.RoleWhite
}
