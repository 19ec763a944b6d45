package board

import (
	"math/rand"
	"time"
)

// Board is a square minefield. Mines are placed lazily on the first reveal so
// the opening move and its neighbours are always safe.
type Board struct {
	size       int
	totalMines int
	grid       [][]Cell
	rng        *rand.Rand

	gameOver         bool
	firstMovePending bool
}

// New creates a size x size board with every cell hidden and no mines.
// totalMines must not exceed MaxFeasibleMines(size); the board does not check.
// A nil rng is replaced by a time-seeded source.
func New(size, totalMines int, rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	grid := make([][]Cell, size)
	for r := range grid {
		grid[r] = make([]Cell, size)
	}

	return &Board{
		size:             size,
		totalMines:       totalMines,
		grid:             grid,
		rng:              rng,
		firstMovePending: true,
	}
}

// MaxFeasibleMines returns the largest mine count that fits outside the safe zone.
func MaxFeasibleMines(size int) int {
	return max(size*size-SafeZoneCells, 0)
}

// Size returns the board's width and height.
func (b *Board) Size() int { return b.size }

// TotalMines returns the mine count requested at construction.
func (b *Board) TotalMines() int { return b.totalMines }

// MinesPlaced reports whether the first reveal has happened.
func (b *Board) MinesPlaced() bool { return !b.firstMovePending }

// InBounds checks if coordinates are within board boundaries.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// Cell returns a copy of the cell at (row, col), or false when out of bounds.
func (b *Board) Cell(row, col int) (Cell, bool) {
	if !b.InBounds(row, col) {
		return Cell{}, false
	}
	return b.grid[row][col], true
}

// Symbol returns the display symbol at (row, col). With revealAll set the
// hidden state is bypassed and mines and counts are shown directly.
func (b *Board) Symbol(row, col int, revealAll bool) string {
	cell, ok := b.Cell(row, col)
	if !ok {
		return ""
	}
	if revealAll {
		return cell.RawSymbol()
	}
	return cell.Symbol()
}

// Reveal opens the cell at (row, col) and returns false only if that cell was
// a hidden mine. Out-of-bounds and already-revealed cells are a safe no-op.
// The first call places mines around (row, col). Opening a cell with no
// adjacent mines opens its neighbours, transitively.
func (b *Board) Reveal(row, col int) bool {
	if !b.InBounds(row, col) || b.grid[row][col].IsRevealed() {
		return true
	}

	if b.firstMovePending {
		b.placeMines(row, col)
		b.firstMovePending = false
	}

	cell := &b.grid[row][col]
	cell.Reveal()

	if cell.IsMine() {
		b.gameOver = true
		return false
	}

	if cell.AdjacentMines() == 0 {
		b.cascade(row, col)
	}

	return true
}

// cascade opens the neighbourhood of a blank cell using an explicit stack.
// A cell with zero adjacent mines is never next to a mine, so every cell
// pushed here is safe.
func (b *Board) cascade(row, col int) {
	stack := []Coord{{Row: row, Col: col}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, off := range neighborOffsets {
			r, c := cur.Row+off.Row, cur.Col+off.Col
			if !b.InBounds(r, c) || b.grid[r][c].IsRevealed() {
				continue
			}
			next := &b.grid[r][c]
			next.Reveal()
			if next.AdjacentMines() == 0 {
				stack = append(stack, Coord{Row: r, Col: c})
			}
		}
	}
}

// IsGameOver reports whether a mine has been revealed. Once true it stays true.
func (b *Board) IsGameOver() bool { return b.gameOver }

// IsGameWon reports whether every non-mine cell is revealed.
func (b *Board) IsGameWon() bool {
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if !b.grid[r][c].IsMine() && !b.grid[r][c].IsRevealed() {
				return false
			}
		}
	}
	return true
}

// RevealedCount returns the number of open cells.
func (b *Board) RevealedCount() int {
	n := 0
	for r := range b.grid {
		for c := range b.grid[r] {
			if b.grid[r][c].IsRevealed() {
				n++
			}
		}
	}
	return n
}

// RemainingSafe returns the number of hidden non-mine cells.
func (b *Board) RemainingSafe() int {
	n := 0
	for r := range b.grid {
		for c := range b.grid[r] {
			if !b.grid[r][c].IsMine() && !b.grid[r][c].IsRevealed() {
				n++
			}
		}
	}
	return n
}

// MineCount returns the number of mines currently on the grid.
func (b *Board) MineCount() int {
	n := 0
	for r := range b.grid {
		for c := range b.grid[r] {
			if b.grid[r][c].IsMine() {
				n++
			}
		}
	}
	return n
}
