package game

import (
	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

// Game is a single match between a human and the bot.
type Game struct {
	Board   entity.Board
	Human   entity.Player
	Outcome entity.Outcome
	Moves   []entity.Move
}

func NewGame(human entity.Player) *Game {
	return &Game{
		Board:   tictactoe.InitialState(),
		Human:   human,
		Outcome: entity.InProgress,
	}
}

func (that *Game) Turn() entity.Player {
	return tictactoe.CurrentPlayer(that.Board)
}

func (that *Game) IsHumanTurn() bool {
	return that.Turn() == that.Human
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsFinished()
}

// MakeMove plays move for player. The board is left unchanged on error.
func (that *Game) MakeMove(player entity.Player, move entity.Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn() != player {
		return apperror.ErrNotYourTurn
	}

	board, err := tictactoe.Result(that.Board, move)
	if err != nil {
		return err
	}

	that.Board = board
	that.Moves = append(that.Moves, move)
	that.Outcome = tictactoe.GameOutcome(board)

	return nil
}
