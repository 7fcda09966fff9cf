package tictactoe

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const (
	negInf = math.MinInt
	posInf = math.MaxInt
)

// Minimax returns the optimal move for the side to move. It reports false on
// a terminal board. Among equally good moves the first one found wins.
func Minimax(board entity.Board) (entity.Move, bool) {
	solution, ok := Solve(board)
	return solution.Move, ok
}

// Solve is Minimax that also reports the value of the chosen move.
func Solve(board entity.Board) (entity.Solution, bool) {
	if Terminal(board) {
		return entity.Solution{}, false
	}

	player := CurrentPlayer(board)
	solution := entity.Solution{Board: board, Player: player}

	if player == entity.PlayerX {
		best := negInf
		for _, move := range Actions(board) {
			value := minValue(place(board, move), best)
			if value > best {
				best = value
				solution.Move = move
			}
		}
		solution.Value = best

		return solution, true
	}

	best := posInf
	for _, move := range Actions(board) {
		value := maxValue(place(board, move), best)
		if value < best {
			best = value
			solution.Move = move
		}
	}
	solution.Value = best

	return solution, true
}

// Evaluate returns the minimax value of board from X's point of view.
func Evaluate(board entity.Board) int {
	if CurrentPlayer(board) == entity.PlayerX {
		return maxValue(board, posInf)
	}
	return minValue(board, negInf)
}

// maxValue stops as soon as its running maximum exceeds bound: the minimizing
// parent already has something at most bound and will not pick this branch.
func maxValue(board entity.Board, bound int) int {
	if Terminal(board) {
		return Utility(board)
	}

	v := negInf
	for _, move := range Actions(board) {
		v = max(v, minValue(place(board, move), v))
		if v > bound {
			return v
		}
	}

	return v
}

func minValue(board entity.Board, bound int) int {
	if Terminal(board) {
		return Utility(board)
	}

	v := posInf
	for _, move := range Actions(board) {
		v = min(v, maxValue(place(board, move), v))
		if v < bound {
			return v
		}
	}

	return v
}
