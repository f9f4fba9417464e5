package apperror

import "errors"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrNoLegalMove     = errors.New("no legal move")
	ErrInvalidBoard    = errors.New("invalid board")
	ErrGameNotFound    = errors.New("game not found")
	ErrUnknownStrategy = errors.New("unknown bot strategy")
)
