package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type botService interface {
	BestMove(ctx context.Context, board entity.Board) (*entity.Solution, error)
}

type gamePlayService interface {
	MakeTurn(ctx context.Context, board entity.Board, move entity.Move) (*entity.Turn, error)
}

type Server struct {
	logger *slog.Logger

	bot      botService
	gamePlay gamePlayService
}

func New(logger *slog.Logger, bot botService, gamePlay gamePlayService) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		bot:      bot,
		gamePlay: gamePlay,
	}
}

// Handler - builds the router with all routes and middleware.
func (that *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(that.logRequests)
	router.Use(middleware.Recoverer)

	router.Get("/ping", that.handlePing)
	router.Route("/api", func(r chi.Router) {
		r.Post("/solve", that.handleSolve)
		r.Post("/turn", that.handleTurn)
	})

	return router
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

func (that *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r)

		that.logger.Info("request served",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(started),
		)
	})
}
