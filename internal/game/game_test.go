package game

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/ui"
)

func newTestGame(t *testing.T, cfg Config) *Game {
	t.Helper()

	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim)
	require.NoError(t, err)
	sim.SetSize(80, 40)

	g, err := NewWithScreen(screen, func() Config { return cfg })
	require.NoError(t, err)
	t.Cleanup(g.Close)

	require.NoError(t, g.newGame(context.Background()))
	return g
}

// newOpenedGame reveals under the starting cursor, trying seeds until the
// opening cascade leaves the game undecided.
func newOpenedGame(t *testing.T, size, mines int) *Game {
	t.Helper()

	for seed := int64(1); ; seed++ {
		g := newTestGame(t, Config{Size: size, Mines: mines, Seed: seed})
		g.apply(context.Background(), actionReveal)
		if g.session.State == StatePlaying {
			return g
		}
	}
}

func TestActionForKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		ch   rune
		want action
	}{
		{"escape", tcell.KeyEscape, 0, actionQuit},
		{"ctrl-c", tcell.KeyCtrlC, 0, actionQuit},
		{"q", tcell.KeyRune, 'q', actionQuit},
		{"arrow up", tcell.KeyUp, 0, actionUp},
		{"k", tcell.KeyRune, 'k', actionUp},
		{"arrow down", tcell.KeyDown, 0, actionDown},
		{"j", tcell.KeyRune, 'j', actionDown},
		{"arrow left", tcell.KeyLeft, 0, actionLeft},
		{"h", tcell.KeyRune, 'h', actionLeft},
		{"arrow right", tcell.KeyRight, 0, actionRight},
		{"l", tcell.KeyRune, 'l', actionRight},
		{"enter", tcell.KeyEnter, 0, actionReveal},
		{"space", tcell.KeyRune, ' ', actionReveal},
		{"n", tcell.KeyRune, 'N', actionNewGame},
		{"unbound rune", tcell.KeyRune, 'x', actionNone},
		{"unbound key", tcell.KeyTab, 0, actionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, actionForKey(tt.key, tt.ch))
		})
	}
}

func TestCursorStartsCentredAndClamps(t *testing.T) {
	g := newTestGame(t, Config{Size: 5, Mines: 3, Seed: 1})
	ctx := context.Background()

	assert.Equal(t, board.Coord{Row: 2, Col: 2}, g.cursor)

	for i := 0; i < 10; i++ {
		g.apply(ctx, actionUp)
		g.apply(ctx, actionLeft)
	}
	assert.Equal(t, board.Coord{Row: 0, Col: 0}, g.cursor)

	for i := 0; i < 10; i++ {
		g.apply(ctx, actionDown)
		g.apply(ctx, actionRight)
	}
	assert.Equal(t, board.Coord{Row: 4, Col: 4}, g.cursor)
}

func TestRevealUnderCursor(t *testing.T) {
	g := newOpenedGame(t, 6, 4)

	cell, ok := g.session.Board.Cell(3, 3)
	require.True(t, ok)
	assert.True(t, cell.IsRevealed())
	assert.False(t, cell.IsMine())
	assert.Equal(t, StatePlaying, g.session.State)
	assert.Equal(t, 1, g.session.Moves)
	assert.Contains(t, g.status(), "Mines: 4")
}

func TestLossMessageAndNewGame(t *testing.T) {
	g := newOpenedGame(t, 5, 5)
	ctx := context.Background()
	b := g.session.Board

	// Walk the cursor onto a mine and reveal it.
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			if cell, _ := b.Cell(r, c); cell.IsMine() {
				g.cursor = board.Coord{Row: r, Col: c}
			}
		}
	}
	g.apply(ctx, actionReveal)

	assert.Equal(t, StateLost, g.session.State)
	assert.True(t, g.session.RevealAll())
	assert.Contains(t, g.status(), msgLost)

	movesBefore := g.session.Moves
	g.apply(ctx, actionReveal)
	assert.Equal(t, movesBefore, g.session.Moves, "moves after a loss are ignored")

	first := g.session
	g.apply(ctx, actionNewGame)
	assert.NotSame(t, first, g.session)
	assert.NotEqual(t, first.ID, g.session.ID)
	assert.Equal(t, StatePlaying, g.session.State)
	assert.False(t, g.session.Board.MinesPlaced())
	assert.Empty(t, g.message)
}

func TestWinMessage(t *testing.T) {
	g := newTestGame(t, Config{Size: 4, Mines: 0, Seed: 1})

	g.apply(context.Background(), actionReveal)

	assert.Equal(t, StateWon, g.session.State)
	assert.Contains(t, g.status(), msgWon)
}

func TestNewGameRejectsInvalidSettings(t *testing.T) {
	cfg := Config{Size: 5, Mines: 3, Seed: 1}
	g := newTestGame(t, cfg)
	first := g.session

	cfg.Size = 2
	g.settings = func() Config { return cfg }
	g.apply(context.Background(), actionNewGame)

	assert.Same(t, first, g.session)
	assert.Contains(t, g.message, ErrSizeTooSmall.Error())
}

func TestQuit(t *testing.T) {
	g := newTestGame(t, Config{Size: 4, Mines: 1, Seed: 1})
	g.apply(context.Background(), actionQuit)
	assert.False(t, g.running)
}

func TestRenderDoesNotPanic(t *testing.T) {
	g := newTestGame(t, Config{Size: 9, Mines: 10, Seed: 5})
	g.apply(context.Background(), actionReveal)
	assert.NotPanics(t, g.render)
}
