package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/samdwyer/minesweeper/internal/board"
)

const (
	// MinSize is the smallest playable board.
	MinSize = 4
	// MaxSize is bounded by the row letters A-Z.
	MaxSize = 26

	// maxMineDensity caps mines at this share of all cells.
	maxMineDensity = 0.35
)

// Config holds game configuration options.
type Config struct {
	// Size is the board width and height.
	Size int
	// Mines is the number of mines to place.
	Mines int
	// Seed for random number generation. Used for reproducible mine layouts.
	// A seed of 0 means a random seed will be generated.
	Seed int64
}

// DefaultConfig returns a 9x9 board with 10 mines.
func DefaultConfig() Config {
	return Config{Size: 9, Mines: 10}
}

// MaxMines returns the largest mine count allowed on a size x size board:
// 35% of the cells, and never more than fit outside the first-move safe zone.
func MaxMines(size int) int {
	byDensity := int(float64(size*size) * maxMineDensity)
	return min(byDensity, board.MaxFeasibleMines(size))
}

// Validate checks that the board can be built and mines placed.
func (c Config) Validate() error {
	if c.Size < MinSize {
		return fmt.Errorf("%w: %d (minimum %d)", ErrSizeTooSmall, c.Size, MinSize)
	}
	if c.Size > MaxSize {
		return fmt.Errorf("%w: %d (maximum %d)", ErrSizeTooLarge, c.Size, MaxSize)
	}
	if c.Mines < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeMines, c.Mines)
	}
	if limit := MaxMines(c.Size); c.Mines > limit {
		return fmt.Errorf("%w: %d (maximum %d for %dx%d)", ErrTooManyMines, c.Mines, limit, c.Size, c.Size)
	}
	return nil
}

// NewRand returns a random source seeded from Seed, or from the clock when Seed is 0.
func (c Config) NewRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
