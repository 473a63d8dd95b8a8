package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
)

type gameHandlers struct {
	logger *slog.Logger
	games  gameUseCase
	stats  statsReader
}

type createGameRequest struct {
	Mode       string `json:"mode"`
	MaxPlayers int    `json:"max_players"`
}

type errorResponse struct {
	Code    apperror.Code `json:"code"`
	Message string        `json:"message"`
}

func (that *gameHandlers) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, that.logger, fmt.Errorf("%w: %w", apperror.ErrMalformedRequest, err))
		return
	}

	game, err := that.games.CreateGame(r.Context(), userFrom(r.Context()).Username, req.Mode, req.MaxPlayers)
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, that.logger, http.StatusCreated, game.Summary())
}

func (that *gameHandlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, game.Summary())
}

func (that *gameHandlers) joinGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.JoinGame(r.Context(), mux.Vars(r)["id"], userFrom(r.Context()).Username)
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, game.Summary())
}

// startGame is reserved to seated players.
func (that *gameHandlers) startGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	if err := that.confirmSeated(r, gameID); err != nil {
		writeError(w, that.logger, err)
		return
	}

	game, err := that.games.StartGame(r.Context(), gameID)
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, game.Summary())
}

func (that *gameHandlers) leaveGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.RemoveUser(r.Context(), mux.Vars(r)["id"], userFrom(r.Context()).Username); err != nil {
		writeError(w, that.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) terminateGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	if err := that.confirmSeated(r, gameID); err != nil {
		writeError(w, that.logger, err)
		return
	}

	if err := that.games.TerminateGame(r.Context(), gameID); err != nil {
		writeError(w, that.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.stats.GetByUser(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, stats)
}

func (that *gameHandlers) confirmSeated(r *http.Request, gameID string) error {
	game, err := that.games.GetGame(r.Context(), gameID)
	if err != nil {
		return err
	}

	if username := userFrom(r.Context()).Username; !game.IsSeated(username) {
		return fmt.Errorf("%w: %s", apperror.ErrUserNotInGame, username)
	}

	return nil
}

var statusByCode = map[apperror.Code]int{
	apperror.CodeUnauthorized: http.StatusUnauthorized,
	apperror.CodeNotFound:     http.StatusNotFound,
	apperror.CodeForbidden:    http.StatusForbidden,
	apperror.CodeConflict:     http.StatusConflict,
	apperror.CodeInvalidMove:  http.StatusUnprocessableEntity,
	apperror.CodeBadRequest:   http.StatusBadRequest,
	apperror.CodeUnavailable:  http.StatusServiceUnavailable,
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	code := apperror.CodeOf(err)

	status, ok := statusByCode[code]
	if !ok {
		logger.Error("request failed", "error", err)
		writeJSON(w, logger, http.StatusInternalServerError, errorResponse{Code: code, Message: "Internal Server Error"})
		return
	}

	writeJSON(w, logger, status, errorResponse{Code: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to write response", "error", err)
	}
}
