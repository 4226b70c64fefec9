package game

import "fmt"

// Session is one active match: the board, the two participants, and whose
// turn it is. Black always moves first. Sessions carry no lock of their own;
// all mutation is linearized by the hub that owns them.
type Session struct {
	RoomID  string
	BlackID int64
	WhiteID int64
	Board   Board
	Turn    int64
}

// MoveOutcome is the result of a single ApplyMove call. Rejected moves
// (out of turn, out of bounds, occupied cell) leave the session untouched
// and come back with Applied == false.
type MoveOutcome struct {
	Applied  bool
	Row      int
	Col      int
	Stone    Stone
	NextTurn int64
	Won      bool
}

// RoomID derives the session identifier for an unordered pair of user ids.
// The smaller id always comes first, so a given pair can only ever address a
// single room at a time.
func RoomID(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("game_%d_%d", a, b)
}

// NewSession creates a session with an empty board. blackID opens.
func NewSession(blackID, whiteID int64) *Session {
	return &Session{
		RoomID:  RoomID(blackID, whiteID),
		BlackID: blackID,
		WhiteID: whiteID,
		Turn:    blackID,
	}
}

// Opponent returns the other participant's id, or 0 if userID is not a
// participant.
func (s *Session) Opponent(userID int64) int64 {
	switch userID {
	case s.BlackID:
		return s.WhiteID
	case s.WhiteID:
		return s.BlackID
	}
	return 0
}

// HasParticipant reports whether userID plays in this session.
func (s *Session) HasParticipant(userID int64) bool {
	return userID == s.BlackID || userID == s.WhiteID
}

// StoneOf returns the color userID plays, or Empty for non-participants.
func (s *Session) StoneOf(userID int64) Stone {
	switch userID {
	case s.BlackID:
		return Black
	case s.WhiteID:
		return White
	}
	return Empty
}

// ApplyMove places userID's stone at (row, col). Illegal moves, including
// any submitted by a user who is not the current turn holder (spectators
// included), are rejected without mutating board or turn. On a legal move
// the cell is marked, the win scan runs, and the turn flips to the opponent
// whether or not the move won.
func (s *Session) ApplyMove(userID int64, row, col int) MoveOutcome {
	if userID != s.Turn {
		return MoveOutcome{}
	}
	if !inBounds(row, col) {
		return MoveOutcome{}
	}
	if s.Board[row][col] != Empty {
		return MoveOutcome{}
	}

	stone := s.StoneOf(userID)
	s.Board[row][col] = stone
	won := s.Board.HasWin(stone, row, col)
	s.Turn = s.Opponent(userID)

	return MoveOutcome{
		Applied:  true,
		Row:      row,
		Col:      col,
		Stone:    stone,
		NextTurn: s.Turn,
		Won:      won,
	}
}
