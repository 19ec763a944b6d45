package game

import "errors"

var (
	ErrSizeTooSmall  = errors.New("board size too small")
	ErrSizeTooLarge  = errors.New("board size too large")
	ErrNegativeMines = errors.New("mine count must not be negative")
	ErrTooManyMines  = errors.New("too many mines for board size")
)
