package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var (
	errGameIDRequired = errors.New("game_id is required")
	errCellRequired   = errors.New("cell is required")

	// clientErrors are reported by their own text; the most specific comes first.
	clientErrors = []error{
		errGameIDRequired,
		errCellRequired,
		apperror.ErrInvalidMove,
		apperror.ErrGameNotFound,
		apperror.ErrNoLegalMove,
	}
)

func (that *Server) handleNewGame(ctx context.Context, _ RequestPayload) (*entity.Game, error) {
	game, err := that.games.NewGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (that *Server) handleGetGame(ctx context.Context, req RequestPayload) (*entity.Game, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	game, err := that.games.GetGame(ctx, req.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *Server) handleGameTurn(ctx context.Context, req RequestPayload) (*entity.Game, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	if req.Cell == nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, errCellRequired)
	}

	game, err := that.games.MakeMove(ctx, req.GameID, *req.Cell)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	return game, nil
}

func (that *Server) handleResetGame(ctx context.Context, req RequestPayload) (*entity.Game, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	game, err := that.games.ResetGame(ctx, req.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	return game, nil
}

// clientError keeps the text of the matching domain error and hides everything else.
func clientError(err error) string {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return "internal error"
}
