package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// winLines holds the three rows, three columns and two diagonals.
var winLines = [8][3]entity.Move{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 2}},
}

// InitialState returns the empty starting board.
func InitialState() entity.Board {
	return entity.Board{}
}

// CurrentPlayer returns the side to move. X moves whenever the mark counts are equal.
func CurrentPlayer(board entity.Board) entity.Player {
	if board.Count(entity.MarkX) > board.Count(entity.MarkO) {
		return entity.PlayerO
	}
	return entity.PlayerX
}

// Actions returns every empty square. Callers must not rely on the order.
func Actions(board entity.Board) []entity.Move {
	moves := make([]entity.Move, 0, entity.BoardSize*entity.BoardSize)
	for r, row := range board {
		for c, cell := range row {
			if cell == entity.Empty {
				moves = append(moves, entity.Move{Row: r, Col: c})
			}
		}
	}

	return moves
}

// Result returns a new board with the current player's mark placed at move.
// The given board is left untouched.
func Result(board entity.Board, move entity.Move) (entity.Board, error) {
	if !move.InBounds() {
		return board, fmt.Errorf("%w: cell %s is out of range", apperror.ErrInvalidMove, move)
	}

	if board[move.Row][move.Col] != entity.Empty {
		return board, fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidMove, move)
	}

	return place(board, move), nil
}

// place puts the current player's mark on a square already known to be empty.
// board is received by value, so the caller's copy is not modified.
func place(board entity.Board, move entity.Move) entity.Board {
	board[move.Row][move.Col] = CurrentPlayer(board).Mark()
	return board
}

// Winner reports the player holding three in a row, if any.
func Winner(board entity.Board) (entity.Player, bool) {
	for _, line := range winLines {
		a := board[line[0].Row][line[0].Col]
		b := board[line[1].Row][line[1].Col]
		c := board[line[2].Row][line[2].Col]

		if a != entity.Empty && a == b && b == c {
			if a == entity.MarkX {
				return entity.PlayerX, true
			}
			return entity.PlayerO, true
		}
	}

	return entity.PlayerX, false
}

// Terminal reports whether the game on board is over.
func Terminal(board entity.Board) bool {
	if _, ok := Winner(board); ok {
		return true
	}

	return board.Count(entity.Empty) == 0
}

// Utility is +1 when X has won, -1 when O has won and 0 otherwise.
func Utility(board entity.Board) int {
	winner, ok := Winner(board)
	switch {
	case !ok:
		return 0
	case winner == entity.PlayerX:
		return 1
	default:
		return -1
	}
}

// GameOutcome classifies board as in progress, won by either side, or drawn.
func GameOutcome(board entity.Board) entity.Outcome {
	if winner, ok := Winner(board); ok {
		if winner == entity.PlayerX {
			return entity.XWins
		}
		return entity.OWins
	}

	if board.Count(entity.Empty) == 0 {
		return entity.Draw
	}

	return entity.InProgress
}

// Validate checks that board can be reached from the initial state by legal
// play. Boards arriving from outside the process go through it before search.
func Validate(board entity.Board) error {
	countX, countO := board.Count(entity.MarkX), board.Count(entity.MarkO)
	if countX != countO && countX != countO+1 {
		return fmt.Errorf("%w: %d X marks and %d O marks", apperror.ErrInvalidBoard, countX, countO)
	}

	var xLines, oLines int
	for _, line := range winLines {
		a := board[line[0].Row][line[0].Col]
		if a == entity.Empty || a != board[line[1].Row][line[1].Col] || a != board[line[2].Row][line[2].Col] {
			continue
		}
		if a == entity.MarkX {
			xLines++
		} else {
			oLines++
		}
	}

	switch {
	case xLines > 0 && oLines > 0:
		return fmt.Errorf("%w: both players have three in a row", apperror.ErrInvalidBoard)
	case xLines > 0 && countX != countO+1:
		return fmt.Errorf("%w: O moved after X had already won", apperror.ErrInvalidBoard)
	case oLines > 0 && countX != countO:
		return fmt.Errorf("%w: X moved after O had already won", apperror.ErrInvalidBoard)
	}

	return nil
}
