// Package rest serves the HTTP API for creating, joining and inspecting games.
package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/kittens-backend/internal/entity"
	"github.com/rocketscienceinc/kittens-backend/internal/repository"
	"github.com/rocketscienceinc/kittens-backend/pkg/handlers"
)

type gameUseCase interface {
	CreateGame(ctx context.Context, host, mode string, maxPlayers int) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, username string) (*entity.Game, error)
	StartGame(ctx context.Context, gameID string) (*entity.Game, error)
	TerminateGame(ctx context.Context, gameID string) error
	RemoveUser(ctx context.Context, gameID, username string) error
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
}

type userResolver interface {
	ResolveUser(token string) (*entity.User, error)
}

type statsReader interface {
	GetByUser(ctx context.Context, username string) (*repository.Stats, error)
}

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func New(
	logger *slog.Logger,
	port string,
	games gameUseCase,
	users userResolver,
	stats statsReader,
	checks ...handlers.ReadinessCheck,
) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      NewRouter(logger, games, users, stats, checks...),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

// NewRouter builds the routes. Everything but /ping needs a bearer token.
func NewRouter(
	logger *slog.Logger,
	games gameUseCase,
	users userResolver,
	stats statsReader,
	checks ...handlers.ReadinessCheck,
) http.Handler {
	h := &gameHandlers{
		logger: logger.With("component", "rest"),
		games:  games,
		stats:  stats,
	}

	router := mux.NewRouter()
	router.HandleFunc("/ping", handlers.Ping(checks...)).Methods(http.MethodGet)

	api := router.NewRoute().Subrouter()
	api.Use(authenticate(h.logger, users))

	api.HandleFunc("/games", h.createGame).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", h.getGame).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", h.terminateGame).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/join", h.joinGame).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/start", h.startGame).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/leave", h.leaveGame).Methods(http.MethodPost)
	api.HandleFunc("/stats/{username}", h.getStats).Methods(http.MethodGet)

	return router
}

// Start serves until Shutdown is called.
func (that *Server) Start() error {
	that.logger.Info("listening", "addr", that.srv.Addr)

	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	return that.srv.Shutdown(ctx)
}
