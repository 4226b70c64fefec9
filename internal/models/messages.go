// internal/models/messages.go defines the tagged wire messages exchanged over
// the realtime websocket channel. Every frame is a flat JSON object carrying a
// "type" discriminator; inbound frames are decoded twice (envelope, then the
// variant matching the type).
package models

// Inbound message types (client -> server).
const (
	TypeChallengeRequest  = "challenge_request"
	TypeChallengeResponse = "challenge_response"
	TypeJoinGameRoom      = "join_game_room"
	TypeJoinSpectate      = "join_spectate"
	TypeBackToLobby       = "back_to_lobby"
	TypePlaceStone        = "place_stone"
)

// Outbound message types (server -> client).
const (
	TypeUserListUpdate    = "update_user_list"
	TypeReceiveChallenge  = "receive_challenge"
	TypeChallengeDeclined = "challenge_declined"
	TypeGameStart         = "game_start"
	TypeReconnectGame     = "reconnect_game"
	TypeSpectateStart     = "spectate_start"
	TypeBoardUpdate       = "update_board"
	TypeGameOver          = "game_over"
)

// Presence status values carried in UserListUpdate entries.
const (
	StatusFree    = "free"
	StatusPlaying = "playing"
)

// Player roles carried in GameStart and ReconnectGame.
const (
	RoleBlack = "black"
	RoleWhite = "white"
)

// Envelope is the first-pass decode of any inbound frame.
type Envelope struct {
	Type string `json:"type"`
}

// ChallengeRequest asks the server to deliver a challenge to target_id.
type ChallengeRequest struct {
	TargetID int64 `json:"target_id"`
}

// ChallengeResponse accepts or declines a previously delivered challenge.
type ChallengeResponse struct {
	ChallengerID int64 `json:"challenger_id"`
	Accepted     bool  `json:"accepted"`
}

// JoinGameRoom moves the connection from the lobby into a game room it
// participates in.
type JoinGameRoom struct {
	RoomID string `json:"room_id"`
}

// JoinSpectate subscribes the connection to a room as a spectator.
type JoinSpectate struct {
	RoomID string `json:"room_id"`
}

// BackToLobby unsubscribes from a room and rejoins the lobby group.
type BackToLobby struct {
	RoomID string `json:"room_id"`
}

// PlaceStone submits a move in an active game.
type PlaceStone struct {
	RoomID string `json:"room_id"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// UserStatus is one entry of a lobby presence snapshot.
type UserStatus struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
	Status   string `json:"status"`
	RoomID   string `json:"room_id,omitempty"`
}

// UserListUpdate is broadcast to the lobby whenever presence or session
// occupancy changes.
type UserListUpdate struct {
	Type  string       `json:"type"`
	Users []UserStatus `json:"users"`
}

// ReceiveChallenge is delivered to the challenged user's connection.
type ReceiveChallenge struct {
	Type           string `json:"type"`
	ChallengerID   int64  `json:"challenger_id"`
	ChallengerName string `json:"challenger_name"`
}

// ChallengeDeclined notifies a challenger their offer was turned down.
type ChallengeDeclined struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

// GameStart is sent to each participant with their own assigned role.
type GameStart struct {
	Type     string `json:"type"`
	RoomID   string `json:"room_id"`
	Opponent string `json:"opponent"`
	Role     string `json:"role"`
}

// ReconnectGame pushes the full current state of an in-progress game to a
// participant who re-established their connection.
type ReconnectGame struct {
	Type        string  `json:"type"`
	RoomID      string  `json:"room_id"`
	Role        string  `json:"role"`
	Opponent    string  `json:"opponent"`
	Board       [][]int `json:"board"`
	CurrentTurn int64   `json:"current_turn"`
}

// SpectateStart pushes a one-time snapshot to a newly subscribed spectator.
type SpectateStart struct {
	Type        string  `json:"type"`
	RoomID      string  `json:"room_id"`
	BlackName   string  `json:"black_name"`
	WhiteName   string  `json:"white_name"`
	Board       [][]int `json:"board"`
	CurrentTurn int64   `json:"current_turn"`
	BlackID     int64   `json:"black_id"`
	WhiteID     int64   `json:"white_id"`
}

// BoardUpdate is broadcast to a room after every accepted move.
type BoardUpdate struct {
	Type     string `json:"type"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Color    int    `json:"color"`
	NextTurn int64  `json:"next_turn"`
}

// GameOver is broadcast to a room when a move completes five in a row.
type GameOver struct {
	Type     string `json:"type"`
	WinnerID int64  `json:"winner_id"`
}
