package hub

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Conn is one live websocket connection's presence in the hub. The handle id
// is what distinguishes a stale connection from the replacement a user opens
// when reconnecting; the user id alone is not enough during that race.
type Conn struct {
	ID       uuid.UUID
	UserID   int64
	Nickname string

	// Room is the broadcast group this connection belongs to. Empty string
	// means the lobby. Guarded by the owning hub's mutex.
	Room string

	// seq is the registration order, used to pick a deterministic winner
	// when a user briefly has two live connections. Guarded by the hub mutex.
	seq uint64

	Cancel  func()
	OutChan chan any
}

// NewConn allocates a connection handle for userID. The out channel is
// buffered; a slow client drops messages rather than stalling the hub.
func NewConn(userID int64, nickname string, cancel func()) *Conn {
	return &Conn{
		ID:       uuid.New(),
		UserID:   userID,
		Nickname: nickname,
		Cancel:   cancel,
		OutChan:  make(chan any, 16),
	}
}

// Write pushes a message onto the connection's out channel non-blockingly.
func (c *Conn) Write(msg any) {
	select {
	case c.OutChan <- msg:
	default:
		log.Warnf("conn %s (user %d): out channel full or closed, dropping message %T", c.ID, c.UserID, msg)
	}
}
