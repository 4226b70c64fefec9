package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/gomoku-live/server/internal/auth"
	"github.com/gomoku-live/server/internal/hub"
	"github.com/gomoku-live/server/internal/models"
)

// Subprotocol spoken on the realtime channel.
const Subprotocol = "gomoku"

// GameWSHandler upgrades /ws requests, authenticates the session cookie, and
// attaches the connection to the hub for the rest of its lifetime.
func GameWSHandler(logger *logrus.Logger, h *hub.Hub, users hub.UserLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteAddr := r.RemoteAddr

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{Subprotocol},
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != Subprotocol {
			c.Close(BadSubprotocolError, "client must speak the gomoku subprotocol")
			return
		}

		userID, err := auth.UserIDFromRequest(r)
		if err != nil {
			logger.Warnf("ws auth failed for %s: %v", remoteAddr, err)
			c.Close(InvalidAuthTokenError, "authentication failed")
			return
		}

		user, err := users.GetUserByID(r.Context(), userID)
		if err != nil {
			logger.Warnf("ws user lookup failed for id %d: %v", userID, err)
			c.Close(UnknownUserError, "unknown user")
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		conn := hub.NewConn(user.ID, user.Nickname, cancel)

		h.Register(conn)
		logger.WithFields(logrus.Fields{
			"user":   user.ID,
			"conn":   conn.ID,
			"remote": remoteAddr,
		}).Info("websocket connected")

		go writePump(ctx, c, conn, logger)
		readPump(ctx, c, h, conn, logger)

		h.Unregister(conn)
		logger.WithFields(logrus.Fields{"user": user.ID, "conn": conn.ID}).Info("websocket disconnected")
	}
}

// readPump decodes inbound frames and routes them to the hub until the
// connection dies.
func readPump(ctx context.Context, c *websocket.Conn, h *hub.Hub, conn *hub.Conn, logger *logrus.Logger) {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			switch {
			case closeStatus == websocket.StatusNormalClosure || closeStatus == websocket.StatusGoingAway:
				logger.Infof("websocket closed normally for user %d", conn.UserID)
			case strings.Contains(err.Error(), "context canceled"):
			default:
				logger.Warnf("read error for user %d: %v", conn.UserID, err)
			}
			return
		}
		if typ != websocket.MessageText {
			logger.Warnf("non-text message from user %d, ignoring", conn.UserID)
			continue
		}

		var env models.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			logger.Warnf("invalid json from user %d: %v", conn.UserID, err)
			continue
		}
		dispatch(h, conn, env.Type, data, logger)
	}
}

// dispatch decodes the typed variant and invokes the matching hub operation.
// Unknown types and malformed variants are dropped; the protocol has no
// user-visible errors for invalid actions.
func dispatch(h *hub.Hub, conn *hub.Conn, msgType string, data []byte, logger *logrus.Logger) {
	switch msgType {
	case models.TypeChallengeRequest:
		var m models.ChallengeRequest
		if json.Unmarshal(data, &m) == nil {
			h.Challenge(conn, m.TargetID)
		}
	case models.TypeChallengeResponse:
		var m models.ChallengeResponse
		if json.Unmarshal(data, &m) == nil {
			h.RespondChallenge(conn, m.ChallengerID, m.Accepted)
		}
	case models.TypeJoinGameRoom:
		var m models.JoinGameRoom
		if json.Unmarshal(data, &m) == nil {
			h.JoinGameRoom(conn, m.RoomID)
		}
	case models.TypeJoinSpectate:
		var m models.JoinSpectate
		if json.Unmarshal(data, &m) == nil {
			h.Spectate(conn, m.RoomID)
		}
	case models.TypeBackToLobby:
		var m models.BackToLobby
		if json.Unmarshal(data, &m) == nil {
			h.BackToLobby(conn, m.RoomID)
		}
	case models.TypePlaceStone:
		var m models.PlaceStone
		if json.Unmarshal(data, &m) == nil {
			h.PlaceStone(conn, m.RoomID, m.Row, m.Col)
		}
	default:
		logger.Warnf("unknown message type %q from user %d", msgType, conn.UserID)
	}
}

// writePump serializes queued hub messages onto the wire and pings
// periodically to keep intermediaries from dropping idle connections.
func writePump(ctx context.Context, c *websocket.Conn, conn *hub.Conn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		case msg := <-conn.OutChan:
			data, err := json.Marshal(msg)
			if err != nil {
				logger.Warnf("failed to marshal outgoing %T for user %d: %v", msg, conn.UserID, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
