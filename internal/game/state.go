// Package game drives minesweeper sessions and the interactive terminal loop.
package game

// State represents where a game is in its lifecycle.
type State int

const (
	// StatePlaying means the player can still reveal cells.
	StatePlaying State = iota
	// StateWon means every safe cell has been revealed.
	StateWon
	// StateLost means a mine was revealed.
	StateLost
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Finished reports whether the game has ended either way.
func (s State) Finished() bool {
	return s == StateWon || s == StateLost
}
