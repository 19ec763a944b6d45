package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/gamedata"
)

const (
	labelWidth = 3 // Row letter plus padding
	cellWidth  = 3 // Each cell is drawn centred in three columns
	gridTop    = 1 // Row 0 holds the column numbers
)

// View is everything the renderer needs for one frame.
type View struct {
	Board     *board.Board
	Cursor    board.Coord
	RevealAll bool
	Status    string
	Help      string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	theme  *gamedata.ThemeDef
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, theme *gamedata.ThemeDef) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Render draws the minefield, cursor and status lines.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	size := v.Board.Size()
	labelStyle := tcell.StyleDefault.Foreground(r.theme.LabelColor())

	for c := 0; c < size; c++ {
		r.screen.DrawText(labelWidth+c*cellWidth, 0, padLeft(strconv.Itoa(c+1), cellWidth-1), labelStyle)
	}

	for row := 0; row < size; row++ {
		y := gridTop + row
		r.screen.SetContent(0, y, rune('A'+row), labelStyle)

		for col := 0; col < size; col++ {
			x := labelWidth + col*cellWidth
			style := r.cellStyle(v.Board, row, col, v.RevealAll)
			if v.Cursor.Row == row && v.Cursor.Col == col {
				style = style.Background(r.theme.CursorColor()).Foreground(tcell.ColorBlack)
				r.screen.SetContent(x, y, ' ', style)
				r.screen.SetContent(x+2, y, ' ', style)
			}
			r.screen.SetContent(x+1, y, SymbolRune(v.Board.Symbol(row, col, v.RevealAll)), style)
		}
	}

	textStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.screen.DrawText(0, gridTop+size+1, v.Status, textStyle)
	r.screen.DrawText(0, gridTop+size+2, v.Help, textStyle.Dim(true))

	r.screen.Show()
}

// cellStyle picks the theme colour for the cell's visible symbol.
func (r *Renderer) cellStyle(b *board.Board, row, col int, revealAll bool) tcell.Style {
	cell, _ := b.Cell(row, col)
	base := tcell.StyleDefault

	if !cell.IsRevealed() && !revealAll {
		return base.Foreground(r.theme.HiddenColor())
	}
	if cell.IsMine() {
		return base.Foreground(r.theme.MineColor()).Bold(true)
	}
	if cell.AdjacentMines() == 0 {
		return base.Foreground(r.theme.BlankColor())
	}
	return base.Foreground(r.theme.DigitColor(cell.AdjacentMines())).Bold(true)
}

// SymbolRune returns the first rune of a board symbol, or a space when empty.
func SymbolRune(sym string) rune {
	for _, ch := range sym {
		return ch
	}
	return ' '
}

func padLeft(s string, width int) string {
	for len(s) < width {
		s = " " + s
	}
	return s
}
