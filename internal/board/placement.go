package board

// placeMines scatters totalMines mines outside the safe zone around
// (firstRow, firstCol) and then computes adjacency counts.
func (b *Board) placeMines(firstRow, firstCol int) {
	zone := b.newSafeZone(firstRow, firstCol)

	if b.totalMines > b.size*b.size-zone.Len() {
		b.fillEligible(&zone)
	} else {
		placed := 0
		for placed < b.totalMines {
			r := b.rng.Intn(b.size)
			c := b.rng.Intn(b.size)
			if zone.contains(r, c) || b.grid[r][c].IsMine() {
				continue
			}
			b.grid[r][c].SetMine()
			placed++
		}
	}

	b.calculateAdjacents()
}

// fillEligible turns every cell outside the safe zone into a mine. Rejection
// sampling cannot finish when more mines are requested than fit, so the
// board caps the count at the number of eligible cells.
func (b *Board) fillEligible(zone *safeZone) {
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if !zone.contains(r, c) {
				b.grid[r][c].SetMine()
			}
		}
	}
}

// calculateAdjacents stores the neighbouring mine count on every non-mine cell.
func (b *Board) calculateAdjacents() {
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if !b.grid[r][c].IsMine() {
				b.grid[r][c].SetAdjacentMines(b.countAdjacentMines(r, c))
			}
		}
	}
}
