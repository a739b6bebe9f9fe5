package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/repository"
)

type matchReader interface {
	GetMatch(ctx context.Context, id string) (*entity.Match, error)
}

type Server struct {
	logger *slog.Logger
	games  matchReader
}

func New(logger *slog.Logger, games matchReader) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

func (that *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Get("/ping", that.handlePing)
	router.Get("/matches/{id}", that.handleMatchState)

	return router
}

// Start - starts the HTTP server with the health and match snapshot routes.
func (that *Server) Start(port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) handlePing(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write([]byte("pong"))
}

// handleMatchState - serves a read-only snapshot of a match for presentation.
func (that *Server) handleMatchState(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleMatchState")

	matchID := chi.URLParam(req, "id")

	currentMatch, err := that.games.GetMatch(req.Context(), matchID)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			http.Error(writer, "match not found", http.StatusNotFound)
			return
		}

		log.Error("failed to get match", "matchID", matchID, "error", err)
		http.Error(writer, "internal error", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(writer).Encode(currentMatch); err != nil {
		log.Error("failed to encode match", "matchID", matchID, "error", err)
	}
}
