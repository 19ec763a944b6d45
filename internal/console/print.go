package console

import (
	"bufio"
	"io"
	"strconv"

	"github.com/samdwyer/minesweeper/internal/board"
)

// PrintBoard writes the board with a column header and a letter per row.
// With revealAll set mines and counts are shown for every cell.
func PrintBoard(w io.Writer, b *board.Board, revealAll bool) error {
	bw := bufio.NewWriter(w)
	size := b.Size()

	bw.WriteString("  ")
	for c := 1; c <= size; c++ {
		bw.WriteString(strconv.Itoa(c))
		bw.WriteByte(' ')
	}
	bw.WriteByte('\n')

	for r := 0; r < size; r++ {
		bw.WriteByte(byte('A' + r))
		bw.WriteByte(' ')
		for c := 0; c < size; c++ {
			bw.WriteString(b.Symbol(r, c, revealAll))
			bw.WriteByte(' ')
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
