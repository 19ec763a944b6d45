package game

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/gamedata"
	"github.com/samdwyer/minesweeper/internal/telemetry"
	"github.com/samdwyer/minesweeper/internal/ui"
)

const (
	helpLine = "arrows/hjkl move  enter/space reveal  n new game  q quit"

	msgLost = "Oh no, you detonated a mine! Game over."
	msgWon  = "Congratulations, you have won the game!"
)

// action is a player intent decoded from a key press.
type action int

const (
	actionNone action = iota
	actionUp
	actionDown
	actionLeft
	actionRight
	actionReveal
	actionNewGame
	actionQuit
)

// Game holds the interactive terminal game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	settings func() Config
	session  *Session
	cursor   board.Coord
	message  string
	running  bool
}

// New creates a game on the real terminal. settings is consulted at the
// start of every game so configuration reloads apply to the next board.
func New(settings func() Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, settings)
}

// NewWithScreen creates a game that draws on an already initialized screen.
func NewWithScreen(screen *ui.Screen, settings func() Config) (*Game, error) {
	theme, err := gamedata.LoadTheme()
	if err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, theme),
		settings: settings,
		running:  true,
	}, nil
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	defer g.Close()

	if err := g.newGame(ctx); err != nil {
		return err
	}

	for g.running {
		g.render()
		g.handleInput(ctx)
	}

	g.session.End()
	return nil
}

// newGame starts a fresh session from the current settings.
func (g *Game) newGame(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	cfg := g.settings()
	session, err := NewSession(ctx, cfg)
	if err != nil {
		span.SetAttributes(attribute.String("error", err.Error()))
		return fmt.Errorf("starting game: %w", err)
	}

	if g.session != nil {
		g.session.End()
	}
	g.session = session
	g.cursor = board.Coord{Row: cfg.Size / 2, Col: cfg.Size / 2}
	g.message = ""

	span.SetAttributes(
		attribute.String("game.id", session.ID),
		attribute.Int("board.size", cfg.Size),
		attribute.Int("board.mines", cfg.Mines),
	)
	return nil
}

func (g *Game) render() {
	g.renderer.Render(ui.View{
		Board:     g.session.Board,
		Cursor:    g.cursor,
		RevealAll: g.session.RevealAll(),
		Status:    g.status(),
		Help:      helpLine,
	})
}

// status summarises the current game for the line under the board.
func (g *Game) status() string {
	if g.message != "" {
		return g.message
	}
	b := g.session.Board
	return fmt.Sprintf("Mines: %d  Safe cells left: %d  Moves: %d",
		b.TotalMines(), b.RemainingSafe(), g.session.Moves)
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.apply(ctx, actionForKey(ev.Key(), ev.Rune()))
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized
		g.running = false
	}
}

// actionForKey maps keyboard input to a player action.
func actionForKey(key tcell.Key, ch rune) action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyUp:
		return actionUp
	case tcell.KeyDown:
		return actionDown
	case tcell.KeyLeft:
		return actionLeft
	case tcell.KeyRight:
		return actionRight
	case tcell.KeyEnter:
		return actionReveal
	case tcell.KeyRune:
		switch ch {
		case 'k', 'K':
			return actionUp
		case 'j', 'J':
			return actionDown
		case 'h', 'H':
			return actionLeft
		case 'l', 'L':
			return actionRight
		case ' ':
			return actionReveal
		case 'n', 'N':
			return actionNewGame
		case 'q', 'Q':
			return actionQuit
		}
	}
	return actionNone
}

// apply performs a decoded action.
func (g *Game) apply(ctx context.Context, a action) {
	switch a {
	case actionUp:
		g.moveCursor(-1, 0)
	case actionDown:
		g.moveCursor(1, 0)
	case actionLeft:
		g.moveCursor(0, -1)
	case actionRight:
		g.moveCursor(0, 1)
	case actionReveal:
		g.reveal(ctx)
	case actionNewGame:
		if err := g.newGame(ctx); err != nil {
			log.Warn().Err(err).Msg("New game rejected")
			g.message = err.Error()
		}
	case actionQuit:
		g.running = false
	}
}

// moveCursor shifts the cursor, clamped to the board.
func (g *Game) moveCursor(dRow, dCol int) {
	size := g.session.Board.Size()
	g.cursor.Row = min(max(g.cursor.Row+dRow, 0), size-1)
	g.cursor.Col = min(max(g.cursor.Col+dCol, 0), size-1)
}

// reveal opens the cell under the cursor.
func (g *Game) reveal(ctx context.Context) {
	if g.session.State.Finished() {
		return
	}

	g.session.Reveal(ctx, g.cursor.Row, g.cursor.Col)

	switch g.session.State {
	case StateLost:
		g.message = msgLost + "  Press n to play again."
	case StateWon:
		g.message = msgWon + "  Press n to play again."
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
