package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
)

type statsRepo interface {
	Record(ctx context.Context, result entity.Result) error
	Get(ctx context.Context) (*entity.Stats, error)
}

// Evaluation is the answer to a stateless board submission.
type Evaluation struct {
	Board  entity.Board
	Move   *int
	Result entity.Result
}

type GameManager struct {
	logger *slog.Logger

	gameService service.GameService
	botService  service.BotService
	statsRepo   statsRepo
}

func NewGameManager(logger *slog.Logger, gameService service.GameService, botService service.BotService, statsRepo statsRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameService: gameService,
		botService:  botService,
		statsRepo:   statsRepo,
	}
}

// Evaluate answers a board sent by a client that already placed its X: the bot
// replies with an O unless the board is finished.
func (that *GameManager) Evaluate(ctx context.Context, board entity.Board) (*Evaluation, error) {
	if err := validateTurnOrder(board); err != nil {
		return nil, err
	}

	engine, err := that.botService.Engine(board)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate board: %w", err)
	}

	if engine.Result().IsFinished() {
		that.recordResult(ctx, engine.Result())

		return &Evaluation{Board: engine.Board(), Result: engine.Result()}, nil
	}

	if board.Count(service.HumanMark) == board.Count(service.BotMark) {
		return nil, fmt.Errorf("%w: waiting for %s to move", apperror.ErrInvalidBoard, service.HumanMark)
	}

	move, err := that.botService.MakeTurn(engine)
	if err != nil {
		return nil, fmt.Errorf("failed to make bot turn: %w", err)
	}

	that.recordResult(ctx, engine.Result())

	return &Evaluation{Board: engine.Board(), Move: &move, Result: engine.Result()}, nil
}

func (that *GameManager) NewGame(ctx context.Context) (*entity.Game, error) {
	game, err := that.gameService.CreateGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeMove plays the human's X on the stored board and lets the bot answer.
// A rejected move leaves the stored game untouched.
func (that *GameManager) MakeMove(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove", "gameID", gameID)

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	engine, err := that.botService.Engine(game.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	result, err := engine.ApplyMove(cell, service.HumanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	game.LastMove = nil
	if result.IsInProgress() {
		move, turnErr := that.botService.MakeTurn(engine)
		if turnErr != nil {
			return nil, fmt.Errorf("failed to make bot turn: %w", turnErr)
		}

		game.LastMove = &move
	}

	game.Board = engine.Board()
	game.ApplyResult(engine.Result())

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
		that.recordResult(ctx, engine.Result())
	}

	return game, nil
}

// ResetGame clears the board of an existing game.
func (that *GameManager) ResetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	engine, err := that.botService.Engine(game.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	engine.Reset()

	game.Board = engine.Board()
	game.LastMove = nil
	game.ApplyResult(engine.Result())

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

func (that *GameManager) Stats(ctx context.Context) (*entity.Stats, error) {
	stats, err := that.statsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

// recordResult counts a finished game. Failing to count never fails the move.
func (that *GameManager) recordResult(ctx context.Context, result entity.Result) {
	if !result.IsFinished() {
		return
	}

	if err := that.statsRepo.Record(ctx, result); err != nil {
		that.logger.Error("failed to record game result", "outcome", result.Outcome, "error", err)
	}
}

// validateTurnOrder rejects boards that alternating play from an empty board, X first, cannot reach.
func validateTurnOrder(board entity.Board) error {
	if err := board.Validate(); err != nil {
		return err
	}

	xCount, oCount := board.Count(entity.PlayerX), board.Count(entity.PlayerO)
	if xCount < oCount || xCount > oCount+1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrInvalidBoard, xCount, oCount)
	}

	xWins, oWins := ownsLine(board, entity.PlayerX), ownsLine(board, entity.PlayerO)
	switch {
	case xWins && oWins:
		return fmt.Errorf("%w: both players hold a line", apperror.ErrInvalidBoard)
	case xWins && xCount != oCount+1:
		return fmt.Errorf("%w: O moved after X won", apperror.ErrInvalidBoard)
	case oWins && xCount != oCount:
		return fmt.Errorf("%w: X moved after O won", apperror.ErrInvalidBoard)
	}

	return nil
}

func ownsLine(board entity.Board, mark entity.Mark) bool {
	for _, line := range entity.WinCombos {
		if board[line[0]] == mark && board[line[1]] == mark && board[line[2]] == mark {
			return true
		}
	}

	return false
}
