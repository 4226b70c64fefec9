package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// place drops a line of stones starting at (row, col) stepping by (dr, dc).
func place(b *Board, stone Stone, row, col, dr, dc, n int) {
	for i := 0; i < n; i++ {
		b[row+dr*i][col+dc*i] = stone
	}
}

func TestHasWinHorizontal(t *testing.T) {
	var b Board
	place(&b, Black, 7, 3, 0, 1, 5)
	assert.True(t, b.HasWin(Black, 7, 7), "fifth stone at the end of the run")
	assert.True(t, b.HasWin(Black, 7, 5), "stone in the middle of the run")
	assert.True(t, b.HasWin(Black, 7, 3), "stone at the start of the run")
}

func TestHasWinVerticalAndDiagonals(t *testing.T) {
	cases := []struct {
		name   string
		dr, dc int
	}{
		{"vertical", 1, 0},
		{"diag down-right", 1, 1},
		{"diag down-left", 1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var b Board
			place(&b, White, 5, 7, tc.dr, tc.dc, 5)
			assert.True(t, b.HasWin(White, 5+tc.dr*2, 7+tc.dc*2))
		})
	}
}

func TestHasWinExactlyFourIsNotAWin(t *testing.T) {
	var b Board
	place(&b, Black, 7, 3, 0, 1, 4)
	for c := 3; c <= 6; c++ {
		assert.False(t, b.HasWin(Black, 7, c), "four in a row must not win")
	}
}

func TestHasWinMoreThanFive(t *testing.T) {
	var b Board
	place(&b, Black, 7, 3, 0, 1, 6)
	assert.True(t, b.HasWin(Black, 7, 5))
}

func TestHasWinStopsAtOpponentStone(t *testing.T) {
	var b Board
	// Black run of four split from a fifth by a white stone.
	place(&b, Black, 7, 3, 0, 1, 4)
	b[7][7] = White
	b[7][8] = Black
	assert.False(t, b.HasWin(Black, 7, 6))
	assert.False(t, b.HasWin(Black, 7, 8))
}

func TestHasWinNoWraparound(t *testing.T) {
	var b Board
	// Three stones at the right edge, two at the left edge of the same row.
	place(&b, Black, 7, 12, 0, 1, 3)
	place(&b, Black, 7, 0, 0, 1, 2)
	assert.False(t, b.HasWin(Black, 7, 14))
	assert.False(t, b.HasWin(Black, 7, 0))
}

func TestHasWinAtBoardEdges(t *testing.T) {
	var b Board
	place(&b, White, 0, 10, 0, 1, 5)
	assert.True(t, b.HasWin(White, 0, 14))

	var b2 Board
	place(&b2, Black, 10, 0, 1, 0, 5)
	assert.True(t, b2.HasWin(Black, 14, 0))
}

func TestGridSerialization(t *testing.T) {
	var b Board
	b[0][0] = Black
	b[14][14] = White
	grid := b.Grid()
	assert.Len(t, grid, BoardSize)
	assert.Len(t, grid[0], BoardSize)
	assert.Equal(t, 1, grid[0][0])
	assert.Equal(t, 2, grid[14][14])
	assert.Equal(t, 0, grid[7][7])
}
