package tictactoe

import (
	"fmt"
	"sync"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	StrategyMinimax   = "minimax"
	StrategyHeuristic = "heuristic"
	StrategyRandom    = "random"
)

const (
	winScore   = 10
	infinity   = 100
	centerCell = 4
)

var (
	cornerCells = [4]int{0, 2, 6, 8}
	edgeCells   = [4]int{1, 3, 5, 7}
)

// Strategy picks the next move of mark on board. It must return an empty cell
// or an error wrapping apperror.ErrNoLegalMove when there is none.
type Strategy interface {
	SelectMove(board entity.Board, mark entity.Mark) (int, error)
}

// NewStrategy builds a strategy by name. The seed is used by the random strategy only.
func NewStrategy(name string, seed uint64) (Strategy, error) {
	switch name {
	case StrategyMinimax:
		return NewMinimax(), nil
	case StrategyHeuristic:
		return NewHeuristic(), nil
	case StrategyRandom:
		return NewRandom(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStrategy, name)
	}
}

// Minimax plays perfectly. Quicker wins and slower losses score higher,
// equally scored moves resolve to the lowest index.
type Minimax struct{}

func NewMinimax() *Minimax {
	return &Minimax{}
}

func (that *Minimax) SelectMove(board entity.Board, mark entity.Mark) (int, error) {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return 0, apperror.ErrNoLegalMove
	}

	best, bestScore := cells[0], -infinity
	alpha := -infinity

	for _, cell := range cells {
		board[cell] = mark
		score := that.score(&board, mark, mark.Opponent(), 1, alpha, infinity)
		board[cell] = entity.EmptyCell

		if score > bestScore {
			best, bestScore = cell, score
		}
		if score > alpha {
			alpha = score
		}
	}

	return best, nil
}

// score evaluates board for me with toMove about to play, using alpha-beta pruning.
func (that *Minimax) score(board *entity.Board, me, toMove entity.Mark, depth, alpha, beta int) int {
	result := entity.CheckResult(*board)
	switch result.Outcome {
	case entity.OutcomeWin:
		if result.Winner == me {
			return winScore - depth
		}
		return depth - winScore
	case entity.OutcomeTie:
		return 0
	}

	maximizing := toMove == me
	best := infinity
	if maximizing {
		best = -infinity
	}

	for _, cell := range board.EmptyCells() {
		board[cell] = toMove
		score := that.score(board, me, toMove.Opponent(), depth+1, alpha, beta)
		board[cell] = entity.EmptyCell

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}

		if beta <= alpha {
			break
		}
	}

	return best
}

// Heuristic wins when it can, blocks when it must, then prefers center, corners and edges.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (that *Heuristic) SelectMove(board entity.Board, mark entity.Mark) (int, error) {
	if board.IsFull() {
		return 0, apperror.ErrNoLegalMove
	}

	if cell, ok := winningMove(board, mark); ok {
		return cell, nil
	}

	if cell, ok := winningMove(board, mark.Opponent()); ok {
		return cell, nil
	}

	if board[centerCell] == entity.EmptyCell {
		return centerCell, nil
	}

	for _, cell := range cornerCells {
		if board[cell] == entity.EmptyCell {
			return cell, nil
		}
	}

	for _, cell := range edgeCells {
		if board[cell] == entity.EmptyCell {
			return cell, nil
		}
	}

	return 0, apperror.ErrNoLegalMove
}

// winningMove returns the lowest empty cell that completes a line for mark.
func winningMove(board entity.Board, mark entity.Mark) (int, bool) {
	for _, cell := range board.EmptyCells() {
		board[cell] = mark
		result := entity.CheckResult(board)
		board[cell] = entity.EmptyCell

		if result.Outcome == entity.OutcomeWin && result.Winner == mark {
			return cell, true
		}
	}

	return 0, false
}

// Random picks uniformly among empty cells. The same seed yields the same sequence of picks.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

func (that *Random) SelectMove(board entity.Board, _ entity.Mark) (int, error) {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return 0, apperror.ErrNoLegalMove
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return cells[that.rnd.Intn(len(cells))], nil
}
