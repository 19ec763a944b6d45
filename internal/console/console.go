package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/samdwyer/minesweeper/internal/game"
)

const (
	msgWelcome   = "Welcome to Minesweeper!"
	msgInvalid   = "Invalid input. Try again."
	msgTooMany   = "Too many mines!"
	msgLost      = "Oh no, you detonated a mine! Game over."
	msgWon       = "Congratulations, you have won the game!"
	msgPlayAgain = "Press e for exit or Press any key to play again..."
	msgExiting   = "Exiting..."
)

// Console plays games over a line-oriented reader and writer.
type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	settings func() game.Config
}

// New creates a console. settings supplies the defaults offered at the size
// and mine prompts and the seed for each game.
func New(in io.Reader, out io.Writer, settings func() game.Config) *Console {
	return &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		settings: settings,
	}
}

// Run plays games until the player exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	c.println(msgWelcome)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := c.playOnce(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		c.println(msgPlayAgain)
		answer, err := c.readLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.EqualFold(strings.TrimSpace(answer), "e") {
			c.println(msgExiting)
			return nil
		}
	}
}

// playOnce runs a single game from the setup prompts to a win or loss.
func (c *Console) playOnce(ctx context.Context) error {
	defaults := c.settings()

	size, err := c.askSize(defaults.Size)
	if err != nil {
		return err
	}
	mines, err := c.askMines(size, defaults.Mines)
	if err != nil {
		return err
	}

	session, err := game.NewSession(ctx, game.Config{Size: size, Mines: mines, Seed: defaults.Seed})
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}
	defer session.End()

	for !session.State.Finished() {
		if err := PrintBoard(c.out, session.Board, false); err != nil {
			return err
		}

		row, col, err := c.askMove(size)
		if err != nil {
			return err
		}
		session.Reveal(ctx, row, col)
	}

	if err := PrintBoard(c.out, session.Board, true); err != nil {
		return err
	}
	if session.State == game.StateLost {
		c.println(msgLost)
	} else {
		c.println(msgWon)
	}
	return nil
}

// askSize prompts until a board size in range is entered. An empty answer
// takes def when def is itself valid.
func (c *Console) askSize(def int) (int, error) {
	prompt := fmt.Sprintf("Enter the size of the grid (e.g. 4 for a 4x4 grid, minimum %d, maximum %d)", game.MinSize, game.MaxSize)
	for {
		n, err := c.askInt(prompt, def, def >= game.MinSize && def <= game.MaxSize)
		if err != nil {
			return 0, err
		}
		if n >= game.MinSize && n <= game.MaxSize {
			return n, nil
		}
	}
}

// askMines prompts until a mine count the board can hold is entered.
func (c *Console) askMines(size, def int) (int, error) {
	limit := game.MaxMines(size)
	prompt := fmt.Sprintf("Enter the number of mines (max %d)", limit)
	for {
		n, err := c.askInt(prompt, def, def >= 0 && def <= limit)
		if err != nil {
			return 0, err
		}
		switch {
		case n < 0:
			c.println(msgInvalid)
		case n > limit:
			c.println(msgTooMany)
		default:
			return n, nil
		}
	}
}

// askInt prompts until an integer is entered, offering def on empty input
// when useDefault is set.
func (c *Console) askInt(prompt string, def int, useDefault bool) (int, error) {
	if useDefault {
		prompt = fmt.Sprintf("%s [%d]", prompt, def)
	}

	for {
		fmt.Fprintf(c.out, "%s: ", prompt)
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}

		line = strings.TrimSpace(line)
		if line == "" && useDefault {
			return def, nil
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			log.Debug().Str("input", line).Msg("Rejected non-numeric input")
			c.println(msgInvalid)
			continue
		}
		return n, nil
	}
}

// askMove prompts until a coordinate on the board is entered.
func (c *Console) askMove(size int) (int, int, error) {
	for {
		fmt.Fprint(c.out, "Select a square to reveal (e.g. A1): ")
		line, err := c.readLine()
		if err != nil {
			return 0, 0, err
		}

		row, col, err := ParseMove(line, size)
		if err != nil {
			log.Debug().Err(err).Msg("Rejected move")
			c.println(msgInvalid)
			continue
		}
		return row, col, nil
	}
}

// readLine returns the next input line, or io.EOF when input is exhausted.
func (c *Console) readLine() (string, error) {
	if c.in.Scan() {
		return c.in.Text(), nil
	}
	if err := c.in.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (c *Console) println(msg string) {
	fmt.Fprintln(c.out, msg)
}
