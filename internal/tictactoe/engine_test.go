package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStrategy always answers with the same cell.
type stubStrategy struct {
	cell int
}

func (that stubStrategy) SelectMove(entity.Board, entity.Mark) (int, error) {
	return that.cell, nil
}

func TestEngine_ApplyMove(t *testing.T) {
	t.Run("Places the mark and keeps the game going", func(t *testing.T) {
		// Given: a new engine
		engine := NewEngine(NewMinimax())

		// When: X plays the top-left cell
		result, err := engine.ApplyMove(0, entity.PlayerX)

		// Then: the board holds X and the game continues
		require.NoError(t, err)
		assert.Equal(t, entity.InProgress(), result)
		assert.Equal(t, entity.PlayerX, engine.Board()[0])
	})

	t.Run("Rejects an occupied cell and leaves the board unchanged", func(t *testing.T) {
		// Given: X already holds cell 0
		engine := NewEngine(NewMinimax())
		_, err := engine.ApplyMove(0, entity.PlayerX)
		require.NoError(t, err)
		before := engine.Board()

		// When: O tries the same cell
		_, err = engine.ApplyMove(0, entity.PlayerO)

		// Then: the move is invalid and nothing changed
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, before, engine.Board())
		assert.Equal(t, entity.InProgress(), engine.Result())
	})

	t.Run("Rejects cells out of range", func(t *testing.T) {
		engine := NewEngine(NewMinimax())

		for _, cell := range []int{-1, 9, 20} {
			_, err := engine.ApplyMove(cell, entity.PlayerX)
			assert.ErrorIs(t, err, apperror.ErrInvalidMove)
		}
		assert.Equal(t, entity.Board{}, engine.Board())
	})

	t.Run("Rejects an empty mark", func(t *testing.T) {
		engine := NewEngine(NewMinimax())

		_, err := engine.ApplyMove(4, entity.EmptyCell)

		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})

	t.Run("Detects a win and rejects further moves", func(t *testing.T) {
		// Given: X is one move away from the left column
		engine, err := Restore(entity.Board{
			entity.PlayerX, entity.PlayerO, entity.PlayerO,
			entity.PlayerX, entity.EmptyCell, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}, NewMinimax())
		require.NoError(t, err)

		// When: X completes the column
		result, err := engine.ApplyMove(6, entity.PlayerX)

		// Then: X wins on 0,3,6
		require.NoError(t, err)
		assert.Equal(t, entity.Result{Outcome: entity.OutcomeWin, Winner: entity.PlayerX, Line: entity.WinLine{0, 3, 6}}, result)

		// And: no further move is accepted
		before := engine.Board()
		_, err = engine.ApplyMove(4, entity.PlayerO)
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, before, engine.Board())
	})

	t.Run("Detects a tie on the last cell", func(t *testing.T) {
		// Given: one empty cell and no line possible
		engine, err := Restore(entity.Board{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.EmptyCell,
		}, NewMinimax())
		require.NoError(t, err)

		// When: O fills the last cell
		result, err := engine.ApplyMove(8, entity.PlayerO)

		// Then: the game is a tie
		require.NoError(t, err)
		assert.Equal(t, entity.Result{Outcome: entity.OutcomeTie}, result)

		_, err = engine.ApplyMove(8, entity.PlayerX)
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})
}

func TestEngine_Restore(t *testing.T) {
	t.Run("Computes the result of a finished board", func(t *testing.T) {
		engine, err := Restore(entity.Board{
			entity.PlayerX, entity.PlayerX, entity.PlayerX,
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}, NewMinimax())

		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeWin, engine.Result().Outcome)
		assert.Equal(t, entity.PlayerX, engine.Result().Winner)
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		_, err := Restore(entity.Board{"Q"}, NewMinimax())

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})
}

func TestEngine_SelectOpponentMove(t *testing.T) {
	t.Run("Never selects an occupied cell", func(t *testing.T) {
		for _, name := range []string{StrategyMinimax, StrategyHeuristic, StrategyRandom} {
			strategy, err := NewStrategy(name, 7)
			require.NoError(t, err)

			// Given: a game played out by the strategy on both sides
			engine := NewEngine(strategy)
			mark := entity.PlayerX
			for engine.Result().IsInProgress() {
				// When: selecting a move
				cell, err := engine.SelectOpponentMove(mark)
				require.NoError(t, err)

				// Then: the cell is free
				require.Equal(t, entity.EmptyCell, engine.Board()[cell], "strategy %s", name)

				_, err = engine.ApplyMove(cell, mark)
				require.NoError(t, err)
				mark = mark.Opponent()
			}
		}
	})

	t.Run("Fails when the game is over", func(t *testing.T) {
		engine, err := Restore(entity.Board{
			entity.PlayerO, entity.PlayerO, entity.PlayerO,
			entity.PlayerX, entity.PlayerX, entity.EmptyCell,
			entity.PlayerX, entity.EmptyCell, entity.EmptyCell,
		}, NewMinimax())
		require.NoError(t, err)

		_, err = engine.SelectOpponentMove(entity.PlayerX)

		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
	})

	t.Run("Fails on a full board", func(t *testing.T) {
		engine, err := Restore(entity.Board{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
		}, NewMinimax())
		require.NoError(t, err)

		_, err = engine.SelectOpponentMove(entity.PlayerO)

		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
	})

	t.Run("Rejects a strategy answer on an occupied cell", func(t *testing.T) {
		// Given: a strategy that insists on cell 0 which X holds
		engine := NewEngine(stubStrategy{cell: 0})
		_, err := engine.ApplyMove(0, entity.PlayerX)
		require.NoError(t, err)

		// When: selecting the opponent move
		_, err = engine.SelectOpponentMove(entity.PlayerO)

		// Then: the answer is refused
		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
	})
}

func TestEngine_Reset(t *testing.T) {
	// Given: a finished game
	engine, err := Restore(entity.Board{
		entity.PlayerX, entity.PlayerX, entity.PlayerX,
		entity.PlayerO, entity.PlayerO, entity.EmptyCell,
		entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
	}, NewMinimax())
	require.NoError(t, err)

	// When: resetting
	engine.Reset()

	// Then: the board is empty and the game is in progress again
	assert.Equal(t, entity.Board{}, engine.Board())
	assert.Equal(t, entity.InProgress(), engine.Result())
	assert.Equal(t, entity.InProgress(), entity.CheckResult(engine.Board()))

	_, err = engine.ApplyMove(4, entity.PlayerX)
	require.NoError(t, err)
}
