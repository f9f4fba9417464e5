package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Mark is the content of a single board cell.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

const BoardSize = 9

// Board is a 3x3 grid stored row-major: 0,1,2 is the top row, 6,7,8 the bottom one.
type Board [BoardSize]Mark

// WinLine is one of the eight index triples that win the game.
type WinLine [3]int

// WinCombos is scanned in this order: rows, columns, main diagonal, anti-diagonal.
var WinCombos = [8]WinLine{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Mark) IsValid() bool {
	return that == EmptyCell || that.IsPlayer()
}

// EmptyCells returns the indexes of all empty cells in ascending order.
func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that *Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

func (that *Board) IsFull() bool {
	return that.Count(EmptyCell) == 0
}

// Validate checks that every cell holds a known mark.
func (that *Board) Validate() error {
	for i, cell := range that {
		if !cell.IsValid() {
			return fmt.Errorf("%w: cell %d holds unknown mark %q", apperror.ErrInvalidBoard, i, cell)
		}
	}

	return nil
}

// Outcome is the kind of a game result.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWin        Outcome = "win"
	OutcomeTie        Outcome = "tie"
)

// Result describes the state of a board. Winner and Line are set only for OutcomeWin.
type Result struct {
	Outcome Outcome
	Winner  Mark
	Line    WinLine
}

func InProgress() Result {
	return Result{Outcome: OutcomeInProgress}
}

func (that Result) IsInProgress() bool {
	return that.Outcome == OutcomeInProgress
}

func (that Result) IsFinished() bool {
	return that.Outcome == OutcomeWin || that.Outcome == OutcomeTie
}

// CheckResult scans the winning lines of the board, then looks for empty cells.
// The first complete line in WinCombos order decides the winner.
func CheckResult(board Board) Result {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Result{Outcome: OutcomeWin, Winner: a, Line: combo}
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return InProgress()
	}

	return Result{Outcome: OutcomeTie}
}

const (
	StatusInProgress = "in_progress"
	StatusGameOver   = "game_over"

	WinnerTie = "tie"
)

// Game is a stored session: the authoritative board of one human-vs-bot game.
type Game struct {
	ID           string    `json:"id"`
	Board        Board     `json:"board"`
	Status       string    `json:"status"`
	Winner       string    `json:"winner,omitempty"`
	WinningCombo []int     `json:"winning_combo"`
	LastMove     *int      `json:"last_move"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewGame(id string, now time.Time) *Game {
	return &Game{
		ID:        id,
		Status:    StatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyResult copies a board result into the session's wire fields.
func (that *Game) ApplyResult(result Result) {
	that.Status, that.Winner, that.WinningCombo = DescribeResult(result)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusGameOver
}

// DescribeResult converts a result into status, winner and winning combo as sent to clients.
func DescribeResult(result Result) (string, string, []int) {
	switch result.Outcome {
	case OutcomeWin:
		return StatusGameOver, string(result.Winner), result.Line[:]
	case OutcomeTie:
		return StatusGameOver, WinnerTie, nil
	default:
		return StatusInProgress, "", nil
	}
}
