package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func TestNewStrategy(t *testing.T) {
	for _, name := range []string{StrategyMinimax, StrategyHeuristic, StrategyRandom} {
		strategy, err := NewStrategy(name, 1)
		require.NoError(t, err)
		assert.NotNil(t, strategy)
	}

	_, err := NewStrategy("oracle", 1)
	require.ErrorIs(t, err, apperror.ErrUnknownStrategy)
}

func TestMinimax_SelectMove(t *testing.T) {
	minimax := NewMinimax()

	t.Run("Takes an immediate win", func(t *testing.T) {
		// Given: O can complete the top row while X threatens the middle row
		board := entity.Board{
			o, o, e,
			x, x, e,
			x, e, e,
		}

		// When: O selects a move
		cell, err := minimax.SelectMove(board, o)

		// Then: O wins instead of blocking
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Blocks an immediate loss", func(t *testing.T) {
		// Given: X threatens the top row
		board := entity.Board{
			x, x, e,
			e, o, e,
			e, e, e,
		}

		// When: O selects a move
		cell, err := minimax.SelectMove(board, o)

		// Then: O blocks at 2
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Breaks ties on the lowest index", func(t *testing.T) {
		// Given: an empty board, where every opening draws
		// When: X selects a move
		cell, err := minimax.SelectMove(entity.Board{}, x)

		// Then: the first cell is chosen
		require.NoError(t, err)
		assert.Equal(t, 0, cell)
	})

	t.Run("Fails on a full board", func(t *testing.T) {
		board := entity.Board{
			x, o, x,
			o, x, o,
			o, x, o,
		}

		_, err := minimax.SelectMove(board, o)

		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
	})

	t.Run("Never loses as O", func(t *testing.T) {
		// Given: every possible sequence of X moves against the minimax bot
		var play func(engine *Engine)
		play = func(engine *Engine) {
			for _, cell := range engine.board.EmptyCells() {
				branch := *engine

				result, err := branch.ApplyMove(cell, x)
				require.NoError(t, err)

				// Then: X never wins
				require.NotEqual(t, x, result.Winner, "board %v", branch.Board())
				if !result.IsInProgress() {
					continue
				}

				// When: the bot answers
				answer, err := branch.SelectOpponentMove(o)
				require.NoError(t, err)

				result, err = branch.ApplyMove(answer, o)
				require.NoError(t, err)
				if result.IsInProgress() {
					play(&branch)
				}
			}
		}

		play(NewEngine(minimax))
	})
}

func TestHeuristic_SelectMove(t *testing.T) {
	heuristic := NewHeuristic()

	testCases := []struct {
		name  string
		board entity.Board
		want  int
	}{
		{
			name:  "Takes the center of an empty board",
			board: entity.Board{},
			want:  4,
		},
		{
			name: "Takes the first corner when the center is taken",
			board: entity.Board{
				e, e, e,
				e, x, e,
				e, e, e,
			},
			want: 0,
		},
		{
			name: "Wins before blocking",
			board: entity.Board{
				x, x, e,
				o, o, e,
				x, e, e,
			},
			want: 5,
		},
		{
			name: "Blocks the opponent",
			board: entity.Board{
				x, e, e,
				e, o, e,
				x, e, e,
			},
			want: 3,
		},
		{
			name: "Falls back to an edge",
			board: entity.Board{
				x, o, x,
				e, x, e,
				o, x, o,
			},
			want: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cell, err := heuristic.SelectMove(tc.board, o)

			require.NoError(t, err)
			assert.Equal(t, tc.want, cell)
		})
	}
}

func TestRandom_SelectMove(t *testing.T) {
	t.Run("Same seed yields the same picks", func(t *testing.T) {
		first, second := NewRandom(42), NewRandom(42)

		for i := 0; i < 20; i++ {
			a, err := first.SelectMove(entity.Board{}, o)
			require.NoError(t, err)
			b, err := second.SelectMove(entity.Board{}, o)
			require.NoError(t, err)

			assert.Equal(t, a, b)
		}
	})

	t.Run("Only picks empty cells", func(t *testing.T) {
		random := NewRandom(3)
		board := entity.Board{
			x, o, x,
			o, e, o,
			x, e, o,
		}

		for i := 0; i < 50; i++ {
			cell, err := random.SelectMove(board, o)
			require.NoError(t, err)
			assert.Contains(t, []int{4, 7}, cell)
		}
	})

	t.Run("Fails on a full board", func(t *testing.T) {
		_, err := NewRandom(1).SelectMove(entity.Board{x, o, x, o, x, o, o, x, o}, o)

		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
	})
}
