package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/telemetry"
)

// Session is one game from the first prompt to a win, a loss or abandonment.
// Front-ends drive the board through it so every move is traced and logged.
type Session struct {
	ID        string
	Config    Config
	Board     *board.Board
	State     State
	Moves     int
	StartedAt time.Time
	EndedAt   time.Time

	span   trace.Span
	ended  bool
	logger zerolog.Logger
}

// NewSession validates cfg and creates a fresh hidden board.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	_, span := telemetry.Tracer("game").Start(ctx, "game.session",
		trace.WithAttributes(
			attribute.String("game.id", id),
			attribute.Int("board.size", cfg.Size),
			attribute.Int("board.mines", cfg.Mines),
			attribute.Int64("board.seed", cfg.Seed),
		),
	)

	s := &Session{
		ID:        id,
		Config:    cfg,
		Board:     board.New(cfg.Size, cfg.Mines, cfg.NewRand()),
		State:     StatePlaying,
		StartedAt: time.Now(),
		span:      span,
		logger:    log.With().Str("game_id", id).Logger(),
	}

	s.logger.Info().
		Int("size", cfg.Size).
		Int("mines", cfg.Mines).
		Msg("Game started")

	return s, nil
}

// Reveal opens (row, col) and returns false if it detonated a mine.
// Moves after the game has finished are ignored and report safe.
func (s *Session) Reveal(ctx context.Context, row, col int) bool {
	if s.State.Finished() {
		return true
	}

	ctx = trace.ContextWithSpan(ctx, s.span)
	_, span := telemetry.Tracer("game").Start(ctx, "board.reveal",
		trace.WithAttributes(
			attribute.Int("cell.row", row),
			attribute.Int("cell.col", col),
		),
	)
	defer span.End()

	if s.Board.InBounds(row, col) {
		s.Moves++
	}

	before := s.Board.RevealedCount()
	safe := s.Board.Reveal(row, col)
	opened := s.Board.RevealedCount() - before

	switch {
	case !safe:
		s.State = StateLost
	case s.Board.IsGameWon():
		s.State = StateWon
	}

	span.SetAttributes(
		attribute.Int("cells.opened", opened),
		attribute.Bool("reveal.safe", safe),
		attribute.String("game.state", s.State.String()),
	)

	s.logger.Debug().
		Int("row", row).
		Int("col", col).
		Int("opened", opened).
		Bool("safe", safe).
		Msg("Cell revealed")

	if s.State.Finished() {
		s.finish()
	}

	return safe
}

// RevealAll reports whether front-ends should show mines and counts directly.
func (s *Session) RevealAll() bool {
	return s.State.Finished()
}

// End closes the session span. It is safe to call more than once and after
// the game has already finished.
func (s *Session) End() {
	if s.ended {
		return
	}
	if s.EndedAt.IsZero() {
		s.EndedAt = time.Now()
	}
	s.ended = true

	s.span.SetAttributes(
		attribute.String("game.outcome", s.State.String()),
		attribute.Int("game.moves", s.Moves),
	)
	s.span.End()

	if !s.State.Finished() {
		s.logger.Info().Int("moves", s.Moves).Msg("Game abandoned")
	}
}

func (s *Session) finish() {
	s.EndedAt = time.Now()
	if s.State == StateLost {
		s.span.SetStatus(codes.Error, "mine detonated")
	}

	s.logger.Info().
		Str("outcome", s.State.String()).
		Int("moves", s.Moves).
		Dur("duration", s.EndedAt.Sub(s.StartedAt)).
		Msg("Game finished")

	s.End()
}
