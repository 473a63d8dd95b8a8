// Package websocket accepts realtime game actions and pushes game events to players.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
	"github.com/rocketscienceinc/kittens-backend/internal/pkg"
	"github.com/rocketscienceinc/kittens-backend/pkg/handlers"
)

type gameUseCase interface {
	StartGame(ctx context.Context, gameID string) (*entity.Game, error)
	PlayCards(ctx context.Context, action entity.PlayAction) error
	DrawCard(ctx context.Context, gameID, username string) error
	RemoveUser(ctx context.Context, gameID, username string) error
	ReloadGameState(ctx context.Context, gameID, username string) error
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
}

type userResolver interface {
	ResolveUser(token string) (*entity.User, error)
}

// workerPool runs action handlers, satisfied by *ants.Pool.
type workerPool interface {
	Submit(task func()) error
}

type handlerFunc func(ctx context.Context, conn *connection, msg *Message) error

type Server struct {
	logger *slog.Logger

	games gameUseCase
	users userResolver
	hub   subscriberHub
	pool  workerPool

	upgrader websocket.Upgrader
	conf     connConfig
	srv      *http.Server

	handlers map[string]handlerFunc
}

func New(
	logger *slog.Logger,
	port string,
	games gameUseCase,
	users userResolver,
	hub subscriberHub,
	pool workerPool,
	checks ...handlers.ReadinessCheck,
) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),

		games: games,
		users: users,
		hub:   hub,
		pool:  pool,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conf: defaultConnConfig,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionPlay] = server.handlePlay
	server.handlers[actionDraw] = server.handleDraw
	server.handlers[actionReload] = server.handleReload
	server.handlers[actionStart] = server.handleStart
	server.handlers[actionLeave] = server.handleLeave

	router := mux.NewRouter()
	router.HandleFunc("/ping", handlers.Ping(checks...)).Methods(http.MethodGet)
	router.HandleFunc("/ws", server.serveWS).Methods(http.MethodGet)

	server.srv = &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server
}

func (that *Server) Handler() http.Handler {
	return that.srv.Handler
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

// serveWS upgrades an authenticated request. A game_id query parameter subscribes the
// connection to that game right away.
func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	user, err := that.users.ResolveUser(pkg.BearerToken(r))
	if err != nil {
		log.Debug("rejected connection", "error", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(that.logger, ws, user.Username, that.hub, that.conf)
	defer conn.unsubscribeAll()
	defer conn.stop()

	if gameID := r.URL.Query().Get("game_id"); gameID != "" {
		conn.subscribe(gameID)
	}

	conn.logger.Info("connection established")

	go conn.writePump()

	that.readPump(r.Context(), conn)

	conn.logger.Info("connection closed")
}

func (that *Server) readPump(ctx context.Context, conn *connection) {
	conn.conn.SetReadLimit(conn.conf.ReadLimit)

	extend := func(string) error {
		return conn.conn.SetReadDeadline(time.Now().Add(conn.conf.PongWait))
	}

	if err := extend(""); err != nil {
		return
	}
	conn.conn.SetPongHandler(extend)

	for {
		_, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				conn.logger.Warn("unexpected close", "error", err)
			}
			return
		}

		var msg Message
		if err = json.Unmarshal(data, &msg); err != nil {
			conn.reply(errorResponse("", fmt.Errorf("%w: %w", apperror.ErrMalformedRequest, err)))
			continue
		}

		that.dispatch(ctx, conn, &msg)
	}
}

// dispatch runs the handler on the worker pool and waits for it, so the actions of one
// connection are applied in the order they were sent.
func (that *Server) dispatch(ctx context.Context, conn *connection, msg *Message) {
	handler, ok := that.handlers[msg.Action]
	if !ok {
		conn.reply(errorResponse(msg.Action, fmt.Errorf("%w: unknown action %q", apperror.ErrMalformedRequest, msg.Action)))
		return
	}

	done := make(chan struct{})

	err := that.pool.Submit(func() {
		defer close(done)

		if err := handler(ctx, conn, msg); err != nil {
			if apperror.CodeOf(err) == apperror.CodeInternal {
				conn.logger.Error("failed to handle action", "action", msg.Action, "error", err)
			}
			conn.reply(errorResponse(msg.Action, err))
			return
		}

		conn.reply(Response{Action: msg.Action, Status: statusOK})
	})
	if err != nil {
		conn.logger.Error("failed to submit action", "action", msg.Action, "error", err)
		conn.reply(errorResponse(msg.Action, fmt.Errorf("%w: %w", apperror.ErrServerBusy, err)))
		return
	}

	<-done
}

func errorResponse(action string, err error) Response {
	code := apperror.CodeOf(err)

	message := err.Error()
	if code == apperror.CodeInternal {
		message = "internal error"
	}

	return Response{
		Action: action,
		Status: statusError,
		Error:  &ErrorResponse{Code: code, Message: message},
	}
}
