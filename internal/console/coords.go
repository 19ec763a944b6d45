// Package console implements line-oriented play: prompts on a writer, answers
// from a reader, moves typed as a row letter and a 1-based column ("B3").
package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidMove is returned for input that does not name a cell on the board.
var ErrInvalidMove = errors.New("invalid move")

// ParseMove converts input such as "a1" or " C12 " into 0-based (row, col).
func ParseMove(input string, size int) (row, col int, err error) {
	move := strings.ToUpper(strings.TrimSpace(input))
	if len(move) < 2 {
		return 0, 0, fmt.Errorf("%w: %q is too short", ErrInvalidMove, input)
	}

	letter := move[0]
	if letter < 'A' || int(letter-'A') >= size {
		return 0, 0, fmt.Errorf("%w: row %q outside A-%c", ErrInvalidMove, letter, 'A'+size-1)
	}

	n, err := strconv.Atoi(move[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: column %q is not a number", ErrInvalidMove, move[1:])
	}
	if n < 1 || n > size {
		return 0, 0, fmt.Errorf("%w: column %d outside 1-%d", ErrInvalidMove, n, size)
	}

	return int(letter - 'A'), n - 1, nil
}

// FormatCoord renders a 0-based (row, col) the way ParseMove reads it.
func FormatCoord(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+row, col+1)
}
