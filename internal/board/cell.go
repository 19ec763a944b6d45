// Package board provides the minefield engine: mine placement, adjacency
// counting, cascade reveal and win/loss queries.
package board

import "strconv"

const (
	// SymbolHidden is displayed for a cell that has not been revealed.
	SymbolHidden = "_"
	// SymbolMine is displayed for a revealed mine.
	SymbolMine = "*"
)

// Cell holds the state of a single grid position.
type Cell struct {
	mine          bool
	revealed      bool
	adjacentMines int
}

// IsMine reports whether the cell holds a mine.
func (c Cell) IsMine() bool { return c.mine }

// IsRevealed reports whether the cell has been opened.
func (c Cell) IsRevealed() bool { return c.revealed }

// AdjacentMines returns the number of mines among the cell's neighbours.
// Only meaningful for non-mine cells once mines have been placed.
func (c Cell) AdjacentMines() int { return c.adjacentMines }

// SetMine marks the cell as a mine.
func (c *Cell) SetMine() { c.mine = true }

// Reveal opens the cell. Revealing an open cell is a no-op.
func (c *Cell) Reveal() { c.revealed = true }

// SetAdjacentMines stores the neighbouring mine count.
func (c *Cell) SetAdjacentMines(n int) { c.adjacentMines = n }

// Symbol returns the player-facing symbol: "_" while hidden, "*" for a
// revealed mine and the adjacent count otherwise.
func (c Cell) Symbol() string {
	if !c.revealed {
		return SymbolHidden
	}
	return c.RawSymbol()
}

// RawSymbol returns the end-of-game symbol, ignoring the revealed flag.
func (c Cell) RawSymbol() string {
	if c.mine {
		return SymbolMine
	}
	return strconv.Itoa(c.adjacentMines)
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return c.Symbol()
}
