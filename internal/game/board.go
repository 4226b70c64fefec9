package game

// BoardSize is the side length of the gomoku board.
const BoardSize = 15

// WinningCount is the number of contiguous same-colored stones needed to win.
const WinningCount = 5

// Stone is the state of a single board cell.
type Stone uint8

const (
	Empty Stone = 0
	Black Stone = 1
	White Stone = 2
)

// Board is the 15x15 grid. Cells transition Empty -> {Black, White} exactly
// once; nothing ever clears a cell while a session is live.
type Board [BoardSize][BoardSize]Stone

// inBounds reports whether (row, col) is on the board.
func inBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// HasWin reports whether the stone just placed at (row, col) completes a line
// of five or more. It scans the four axes (horizontal, vertical, both
// diagonals), counting contiguous matching stones outward in both directions
// from the placed stone, stopping at the board edge or the first
// non-matching cell.
func (b *Board) HasWin(stone Stone, row, col int) bool {
	dirs := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for _, d := range dirs {
		count := 1
		for i := 1; i < WinningCount; i++ {
			r, c := row+d[0]*i, col+d[1]*i
			if !inBounds(r, c) || b[r][c] != stone {
				break
			}
			count++
		}
		for i := 1; i < WinningCount; i++ {
			r, c := row-d[0]*i, col-d[1]*i
			if !inBounds(r, c) || b[r][c] != stone {
				break
			}
			count++
		}
		if count >= WinningCount {
			return true
		}
	}
	return false
}

// Grid returns the board as a plain [][]int for wire serialization
// (0 = empty, 1 = black, 2 = white).
func (b *Board) Grid() [][]int {
	grid := make([][]int, BoardSize)
	for r := 0; r < BoardSize; r++ {
		grid[r] = make([]int, BoardSize)
		for c := 0; c < BoardSize; c++ {
			grid[r][c] = int(b[r][c])
		}
	}
	return grid
}
