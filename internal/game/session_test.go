package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomIDOrdering(t *testing.T) {
	assert.Equal(t, "game_1_2", RoomID(1, 2))
	assert.Equal(t, "game_1_2", RoomID(2, 1))
	assert.Equal(t, "game_17_2048", RoomID(2048, 17))
}

func TestNewSessionBlackOpens(t *testing.T) {
	s := NewSession(2, 1)
	assert.Equal(t, "game_1_2", s.RoomID)
	assert.Equal(t, int64(2), s.BlackID)
	assert.Equal(t, int64(1), s.WhiteID)
	assert.Equal(t, s.BlackID, s.Turn)
}

func TestApplyMoveAlternatesTurns(t *testing.T) {
	s := NewSession(1, 2)

	out := s.ApplyMove(1, 7, 7)
	require.True(t, out.Applied)
	assert.Equal(t, Black, out.Stone)
	assert.Equal(t, Black, s.Board[7][7])
	assert.Equal(t, int64(2), s.Turn)
	assert.Equal(t, int64(2), out.NextTurn)
	assert.False(t, out.Won)

	out = s.ApplyMove(2, 8, 8)
	require.True(t, out.Applied)
	assert.Equal(t, White, out.Stone)
	assert.Equal(t, int64(1), s.Turn)
}

func TestApplyMoveOutOfTurnIsIgnored(t *testing.T) {
	s := NewSession(1, 2)

	// White trying to open, and a spectator id, both leave the session alone.
	for _, uid := range []int64{2, 99} {
		out := s.ApplyMove(uid, 7, 7)
		assert.False(t, out.Applied)
		assert.Equal(t, Empty, s.Board[7][7])
		assert.Equal(t, int64(1), s.Turn)
	}
}

func TestApplyMoveOccupiedCellIsIgnored(t *testing.T) {
	s := NewSession(1, 2)
	require.True(t, s.ApplyMove(1, 7, 7).Applied)

	out := s.ApplyMove(2, 7, 7)
	assert.False(t, out.Applied)
	assert.Equal(t, Black, s.Board[7][7], "occupied cell never reverts")
	assert.Equal(t, int64(2), s.Turn, "rejected move must not flip the turn")
}

func TestApplyMoveOutOfBoundsIsIgnored(t *testing.T) {
	s := NewSession(1, 2)
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {15, 0}, {0, 15}, {100, 100}} {
		out := s.ApplyMove(1, rc[0], rc[1])
		assert.False(t, out.Applied)
		assert.Equal(t, int64(1), s.Turn)
	}
}

func TestApplyMoveWin(t *testing.T) {
	s := NewSession(1, 2)

	// Black builds (7,3)..(7,7); white plays elsewhere in between.
	for i := 0; i < 4; i++ {
		require.True(t, s.ApplyMove(1, 7, 3+i).Applied)
		require.True(t, s.ApplyMove(2, 0, i).Applied)
	}
	out := s.ApplyMove(1, 7, 7)
	require.True(t, out.Applied)
	assert.True(t, out.Won)
	assert.Equal(t, int64(2), out.NextTurn, "turn flips even on the winning move")
}

func TestOpponentAndStoneOf(t *testing.T) {
	s := NewSession(3, 9)
	assert.Equal(t, int64(9), s.Opponent(3))
	assert.Equal(t, int64(3), s.Opponent(9))
	assert.Equal(t, int64(0), s.Opponent(42))
	assert.Equal(t, Black, s.StoneOf(3))
	assert.Equal(t, White, s.StoneOf(9))
	assert.Equal(t, Empty, s.StoneOf(42))
	assert.True(t, s.HasParticipant(3))
	assert.False(t, s.HasParticipant(42))
}
