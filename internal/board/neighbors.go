package board

import "fmt"

// SafeZoneCells is the size of the 3x3 block kept clear around the first reveal.
const SafeZoneCells = 9

// Coord is a 0-based (row, col) grid position.
type Coord struct {
	Row, Col int
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// neighborOffsets lists the eight surrounding positions.
var neighborOffsets = [8]Coord{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// safeZone is the set of in-bounds cells within one step of an anchor.
type safeZone struct {
	cells [SafeZoneCells]Coord
	n     int
}

// newSafeZone collects the anchor and its in-bounds neighbours.
func (b *Board) newSafeZone(row, col int) safeZone {
	var z safeZone
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := row+dr, col+dc
			if b.InBounds(r, c) {
				z.cells[z.n] = Coord{Row: r, Col: c}
				z.n++
			}
		}
	}
	return z
}

// contains reports whether (row, col) is in the zone.
func (z *safeZone) contains(row, col int) bool {
	for i := 0; i < z.n; i++ {
		if z.cells[i].Row == row && z.cells[i].Col == col {
			return true
		}
	}
	return false
}

// Len returns the number of cells in the zone.
func (z *safeZone) Len() int { return z.n }

// countAdjacentMines counts mines among the in-bounds neighbours of (row, col).
func (b *Board) countAdjacentMines(row, col int) int {
	count := 0
	for _, off := range neighborOffsets {
		r, c := row+off.Row, col+off.Col
		if b.InBounds(r, c) && b.grid[r][c].IsMine() {
			count++
		}
	}
	return count
}
