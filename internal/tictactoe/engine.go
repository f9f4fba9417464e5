package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// Engine owns the board and result of a single game. It is not safe for concurrent use;
// every game gets its own instance.
type Engine struct {
	board    entity.Board
	result   entity.Result
	strategy Strategy
}

// NewEngine returns an engine with an empty board.
func NewEngine(strategy Strategy) *Engine {
	return &Engine{
		result:   entity.InProgress(),
		strategy: strategy,
	}
}

// Restore returns an engine continuing from the given board.
func Restore(board entity.Board, strategy Strategy) (*Engine, error) {
	if err := board.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		board:    board,
		result:   entity.CheckResult(board),
		strategy: strategy,
	}, nil
}

func (that *Engine) Board() entity.Board {
	return that.board
}

func (that *Engine) Result() entity.Result {
	return that.result
}

// ApplyMove places the player's mark. On error the engine state is left unchanged.
func (that *Engine) ApplyMove(cell int, player entity.Mark) (entity.Result, error) {
	if err := that.validateMove(cell, player); err != nil {
		return that.result, err
	}

	that.board[cell] = player
	that.result = entity.CheckResult(that.board)

	return that.result, nil
}

// SelectOpponentMove asks the strategy for a move of the player without applying it.
func (that *Engine) SelectOpponentMove(player entity.Mark) (int, error) {
	if !that.result.IsInProgress() {
		return 0, fmt.Errorf("%w: game is over", apperror.ErrNoLegalMove)
	}

	if that.board.IsFull() {
		return 0, fmt.Errorf("%w: board is full", apperror.ErrNoLegalMove)
	}

	cell, err := that.strategy.SelectMove(that.board, player)
	if err != nil {
		return 0, fmt.Errorf("failed to select move: %w", err)
	}

	if cell < 0 || cell >= entity.BoardSize || that.board[cell] != entity.EmptyCell {
		return 0, fmt.Errorf("%w: strategy chose unavailable cell %d", apperror.ErrNoLegalMove, cell)
	}

	return cell, nil
}

// Reset clears the board for a new game.
func (that *Engine) Reset() {
	that.board = entity.Board{}
	that.result = entity.InProgress()
}

// validateMove - checks if the move is valid.
func (that *Engine) validateMove(cell int, player entity.Mark) error {
	if !that.result.IsInProgress() {
		return fmt.Errorf("%w: game is over", apperror.ErrInvalidMove)
	}

	if cell < 0 || cell >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d is out of range", apperror.ErrInvalidMove, cell)
	}

	if !player.IsPlayer() {
		return fmt.Errorf("%w: unknown player %q", apperror.ErrInvalidMove, player)
	}

	if that.board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrInvalidMove, cell)
	}

	return nil
}
