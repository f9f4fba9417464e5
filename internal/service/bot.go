package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

const (
	HumanMark = entity.PlayerX
	BotMark   = entity.PlayerO
)

type BotService interface {
	// Engine returns a fresh engine continuing from board, driven by the bot's strategy.
	Engine(board entity.Board) (*tictactoe.Engine, error)
	// MakeTurn selects and applies the bot's move, returning the chosen cell.
	MakeTurn(engine *tictactoe.Engine) (int, error)
}

type botService struct {
	strategy tictactoe.Strategy
}

func NewBotService(strategyName string, seed uint64) (BotService, error) {
	strategy, err := tictactoe.NewStrategy(strategyName, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot strategy: %w", err)
	}

	return &botService{
		strategy: strategy,
	}, nil
}

func (that *botService) Engine(board entity.Board) (*tictactoe.Engine, error) {
	engine, err := tictactoe.Restore(board, that.strategy)
	if err != nil {
		return nil, fmt.Errorf("failed to restore engine: %w", err)
	}

	return engine, nil
}

func (that *botService) MakeTurn(engine *tictactoe.Engine) (int, error) {
	cell, err := engine.SelectOpponentMove(BotMark)
	if err != nil {
		return 0, fmt.Errorf("bot failed to select move: %w", err)
	}

	if _, err = engine.ApplyMove(cell, BotMark); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}
