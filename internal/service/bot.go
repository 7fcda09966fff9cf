package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type BotService interface {
	BestMove(ctx context.Context, board entity.Board) (*entity.Solution, error)
}

type solutionRepo interface {
	Save(ctx context.Context, solution *entity.Solution) error
	GetByBoard(ctx context.Context, board entity.Board) (*entity.Solution, error)
}

type botService struct {
	logger       *slog.Logger
	solutionRepo solutionRepo
}

// NewBotService - solutionRepo may be nil, in which case every position is searched.
func NewBotService(logger *slog.Logger, solutionRepo solutionRepo) BotService {
	return &botService{
		logger:       logger.With("component", "bot"),
		solutionRepo: solutionRepo,
	}
}

func (that *botService) BestMove(ctx context.Context, board entity.Board) (*entity.Solution, error) {
	log := that.logger.With("method", "BestMove", "board", board.Key())

	if err := tictactoe.Validate(board); err != nil {
		return nil, fmt.Errorf("can't solve board: %w", err)
	}

	if tictactoe.Terminal(board) {
		return nil, apperror.ErrGameFinished
	}

	if that.solutionRepo != nil {
		solution, err := that.solutionRepo.GetByBoard(ctx, board)
		switch {
		case err == nil:
			log.Debug("solution found in cache", "move", solution.Move.String())
			return solution, nil
		case !errors.Is(err, repository.ErrSolutionNotFound):
			log.Warn("failed to read solution cache", "error", err)
		}
	}

	solution, ok := tictactoe.Solve(board)
	if !ok {
		return nil, apperror.ErrGameFinished
	}

	log.Debug("position solved", "move", solution.Move.String(), "value", solution.Value)

	if that.solutionRepo != nil {
		if err := that.solutionRepo.Save(ctx, &solution); err != nil {
			log.Warn("failed to save solution", "error", err)
		}
	}

	return &solution, nil
}

// isSolutionFor reports whether a cached solution still describes a legal move on board.
func isSolutionFor(solution *entity.Solution, board entity.Board) bool {
	if solution == nil || solution.Board != board || solution.Player != tictactoe.CurrentPlayer(board) {
		return false
	}

	_, err := tictactoe.Result(board, solution.Move)
	return err == nil
}
