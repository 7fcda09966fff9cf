package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
)

var errRedisDown = errors.New("redis down")

type mockSolutionRepo struct {
	mock.Mock
}

func (that *mockSolutionRepo) Save(ctx context.Context, solution *entity.Solution) error {
	args := that.Called(ctx, solution)
	return args.Error(0)
}

func (that *mockSolutionRepo) GetByBoard(ctx context.Context, board entity.Board) (*entity.Solution, error) {
	args := that.Called(ctx, board)

	solution, _ := args.Get(0).(*entity.Solution)
	return solution, args.Error(1)
}

func newMockSolutionRepo(t *testing.T) *mockSolutionRepo {
	t.Helper()

	repo := &mockSolutionRepo{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	return repo
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var winOrBlockBoard = entity.Board{
	{entity.MarkX, entity.MarkX, entity.Empty},
	{entity.MarkO, entity.MarkO, entity.Empty},
	{entity.Empty, entity.Empty, entity.Empty},
}

func TestBotService_BestMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns cached solution", func(t *testing.T) {
		// Given: a cache that already knows the position
		repo := newMockSolutionRepo(t)
		cached := &entity.Solution{Board: winOrBlockBoard, Player: entity.PlayerX, Move: entity.Move{Row: 0, Col: 2}, Value: 1}
		repo.On("GetByBoard", mock.Anything, winOrBlockBoard).Return(cached, nil).Once()

		bot := NewBotService(discardLogger(), repo)

		// When: the best move is requested
		solution, err := bot.BestMove(ctx, winOrBlockBoard)

		// Then: the cached solution is returned without saving anything
		require.NoError(t, err)
		assert.Equal(t, cached, solution)
	})

	t.Run("Solves and stores on cache miss", func(t *testing.T) {
		// Given: an empty cache
		repo := newMockSolutionRepo(t)
		repo.On("GetByBoard", mock.Anything, winOrBlockBoard).Return(nil, repository.ErrSolutionNotFound).Once()
		repo.On("Save", mock.Anything, mock.MatchedBy(func(s *entity.Solution) bool {
			return s.Board == winOrBlockBoard && s.Move == entity.Move{Row: 0, Col: 2} && s.Value == 1
		})).Return(nil).Once()

		bot := NewBotService(discardLogger(), repo)

		// When: the best move is requested
		solution, err := bot.BestMove(ctx, winOrBlockBoard)

		// Then: the winning move is found and saved
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, solution.Move)
		assert.Equal(t, entity.PlayerX, solution.Player)
	})

	t.Run("Ignores a cached solution that no longer fits the board", func(t *testing.T) {
		tests := []struct {
			name   string
			cached *entity.Solution
		}{
			{
				name:   "occupied square",
				cached: &entity.Solution{Board: winOrBlockBoard, Player: entity.PlayerX, Move: entity.Move{Row: 0, Col: 0}, Value: 1},
			},
			{
				name:   "out of range square",
				cached: &entity.Solution{Board: winOrBlockBoard, Player: entity.PlayerX, Move: entity.Move{Row: 3, Col: 3}, Value: 1},
			},
			{
				name:   "different board",
				cached: &entity.Solution{Board: entity.Board{}, Player: entity.PlayerX, Move: entity.Move{Row: 0, Col: 2}, Value: 0},
			},
			{
				name:   "wrong side to move",
				cached: &entity.Solution{Board: winOrBlockBoard, Player: entity.PlayerO, Move: entity.Move{Row: 1, Col: 2}, Value: -1},
			},
			{
				name:   "nil entry",
				cached: nil,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				// Given: a cache entry that is not a legal answer for the board
				repo := newMockSolutionRepo(t)
				repo.On("GetByBoard", mock.Anything, winOrBlockBoard).Return(tt.cached, nil).Once()
				repo.On("Save", mock.Anything, mock.MatchedBy(func(s *entity.Solution) bool {
					return s.Board == winOrBlockBoard && s.Move == entity.Move{Row: 0, Col: 2}
				})).Return(nil).Once()

				bot := NewBotService(discardLogger(), repo)

				// When: the best move is requested
				solution, err := bot.BestMove(ctx, winOrBlockBoard)

				// Then: the position is searched again and the fresh solution replaces the entry
				require.NoError(t, err)
				assert.Equal(t, entity.Move{Row: 0, Col: 2}, solution.Move)
				assert.Equal(t, 1, solution.Value)
			})
		}
	})

	t.Run("Falls back to search when the cache fails", func(t *testing.T) {
		// Given: a cache that errors on every call
		repo := newMockSolutionRepo(t)
		repo.On("GetByBoard", mock.Anything, winOrBlockBoard).Return(nil, errRedisDown).Once()
		repo.On("Save", mock.Anything, mock.AnythingOfType("*entity.Solution")).Return(errRedisDown).Once()

		bot := NewBotService(discardLogger(), repo)

		// When: the best move is requested
		solution, err := bot.BestMove(ctx, winOrBlockBoard)

		// Then: the search result is still returned
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, solution.Move)
	})

	t.Run("Works without a cache", func(t *testing.T) {
		bot := NewBotService(discardLogger(), nil)

		solution, err := bot.BestMove(ctx, entity.Board{})

		require.NoError(t, err)
		assert.Equal(t, 0, solution.Value)
	})

	t.Run("Returns ErrGameFinished on a terminal board", func(t *testing.T) {
		// Given: a board X has already won
		board := entity.Board{
			{entity.MarkX, entity.MarkX, entity.MarkX},
			{entity.MarkO, entity.MarkO, entity.Empty},
			{entity.Empty, entity.Empty, entity.Empty},
		}
		bot := NewBotService(discardLogger(), newMockSolutionRepo(t))

		// When: the best move is requested
		solution, err := bot.BestMove(ctx, board)

		// Then: ErrGameFinished is returned and the cache is not touched
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Nil(t, solution)
	})

	t.Run("Rejects unreachable boards", func(t *testing.T) {
		board := entity.Board{
			{entity.MarkO, entity.Empty, entity.Empty},
			{entity.Empty, entity.Empty, entity.Empty},
			{entity.Empty, entity.Empty, entity.Empty},
		}
		bot := NewBotService(discardLogger(), newMockSolutionRepo(t))

		_, err := bot.BestMove(ctx, board)

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})
}
