package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type GamePlayService interface {
	MakeTurn(ctx context.Context, board entity.Board, move entity.Move) (*entity.Turn, error)
}

type gamePlayService struct {
	logger     *slog.Logger
	botService BotService
}

func NewGamePlayService(logger *slog.Logger, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:     logger.With("component", "gameplay"),
		botService: botService,
	}
}

// MakeTurn plays move for the side to move on board and, unless that ends
// the game, answers with the bot's optimal reply.
func (that *gamePlayService) MakeTurn(ctx context.Context, board entity.Board, move entity.Move) (*entity.Turn, error) {
	if err := tictactoe.Validate(board); err != nil {
		return nil, fmt.Errorf("can't play on board: %w", err)
	}

	if tictactoe.Terminal(board) {
		return nil, apperror.ErrGameFinished
	}

	board, err := tictactoe.Result(board, move)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if tictactoe.Terminal(board) {
		return &entity.Turn{Board: board, Outcome: tictactoe.GameOutcome(board)}, nil
	}

	solution, err := that.botService.BestMove(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	board, err = tictactoe.Result(board, solution.Move)
	if err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("turn played", "move", move.String(), "bot_move", solution.Move.String(), "board", board.Key())

	return &entity.Turn{
		Board:   board,
		BotMove: &solution.Move,
		Outcome: tictactoe.GameOutcome(board),
	}, nil
}
