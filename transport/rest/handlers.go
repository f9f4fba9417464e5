package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

const maxBodyBytes = 1 << 12

var (
	errMalformedBody = errors.New("malformed request body")
	errMissingCell   = errors.New("cell is required")

	// clientErrors are reported by their own text; the most specific comes first.
	clientErrors = []error{
		errMissingCell,
		errMalformedBody,
		apperror.ErrInvalidBoard,
		apperror.ErrInvalidMove,
		apperror.ErrGameNotFound,
		apperror.ErrNoLegalMove,
	}
)

type gameUseCase interface {
	Evaluate(ctx context.Context, board entity.Board) (*usecase.Evaluation, error)

	NewGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	Stats(ctx context.Context) (*entity.Stats, error)
}

type makeMoveRequest struct {
	Board []entity.Mark `json:"board"`
}

type makeMoveResponse struct {
	Status       string `json:"status"`
	Move         *int   `json:"move,omitempty"`
	Winner       string `json:"winner,omitempty"`
	WinningCombo []int  `json:"winning_combo,omitempty"`
}

type gameMoveRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
	games  gameUseCase
}

func newHandlers(logger *slog.Logger, games gameUseCase) *handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

// makeMove is the stateless endpoint: the client sends its board after placing X.
func (that *handlers) makeMove(w http.ResponseWriter, r *http.Request) {
	var req makeMoveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	if len(req.Board) != entity.BoardSize {
		that.writeError(w, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrInvalidBoard, entity.BoardSize, len(req.Board)))
		return
	}

	var board entity.Board
	copy(board[:], req.Board)

	evaluation, err := that.games.Evaluate(r.Context(), board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	status, winner, combo := entity.DescribeResult(evaluation.Result)
	writeJSON(w, http.StatusOK, makeMoveResponse{
		Status:       status,
		Move:         evaluation.Move,
		Winner:       winner,
		WinningCombo: combo,
	})
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.NewGame(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) makeGameMove(w http.ResponseWriter, r *http.Request) {
	var req gameMoveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	if req.Cell == nil {
		that.writeError(w, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, errMissingCell))
		return
	}

	game, err := that.games.MakeMove(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) resetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.ResetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.games.Stats(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// writeError maps domain errors to status codes. Unexpected errors are logged and hidden.
func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.logger.Debug("request rejected", "status", status, "error", err)
	writeJSON(w, status, errorResponse{Error: clientMessage(err)})
}

// clientMessage drops the wrap chain and keeps the text of the matching domain error.
func clientMessage(err error) string {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return http.StatusText(http.StatusInternalServerError)
}

// StatusFromError returns the HTTP status matching a domain error.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidBoard), errors.Is(err, apperror.ErrInvalidMove), errors.Is(err, errMalformedBody):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrNoLegalMove):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errMalformedBody, err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
