package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

func (that *Server) handlePlay(ctx context.Context, conn *connection, msg *Message) error {
	var req playRequest
	if err := decode(msg, &req); err != nil {
		return err
	}

	if err := requireGameID(req.GameID); err != nil {
		return err
	}

	added := conn.subscribe(req.GameID)

	err := that.games.PlayCards(ctx, entity.PlayAction{
		GameID:         req.GameID,
		UserID:         conn.username,
		CardCodes:      req.Cards,
		TargetUsername: req.TargetUsername,
		RequestedCard:  req.RequestedCard,
		Position:       req.Position,
	})

	return keepOnSuccess(conn, req.GameID, added, err)
}

func (that *Server) handleDraw(ctx context.Context, conn *connection, msg *Message) error {
	gameID, err := decodeGameID(msg)
	if err != nil {
		return err
	}

	added := conn.subscribe(gameID)

	err = that.games.DrawCard(ctx, gameID, conn.username)

	return keepOnSuccess(conn, gameID, added, err)
}

// handleReload subscribes the connection and sends it a fresh snapshot, used after
// connecting or reconnecting.
func (that *Server) handleReload(ctx context.Context, conn *connection, msg *Message) error {
	gameID, err := decodeGameID(msg)
	if err != nil {
		return err
	}

	added := conn.subscribe(gameID)

	err = that.games.ReloadGameState(ctx, gameID, conn.username)

	return keepOnSuccess(conn, gameID, added, err)
}

func (that *Server) handleStart(ctx context.Context, conn *connection, msg *Message) error {
	gameID, err := decodeGameID(msg)
	if err != nil {
		return err
	}

	game, err := that.games.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if !game.IsSeated(conn.username) {
		return fmt.Errorf("%w: %s", apperror.ErrUserNotInGame, conn.username)
	}

	conn.subscribe(gameID)

	if _, err = that.games.StartGame(ctx, gameID); err != nil {
		return err
	}

	conn.logger.Info("game started", "gameID", gameID)

	return nil
}

func (that *Server) handleLeave(ctx context.Context, conn *connection, msg *Message) error {
	gameID, err := decodeGameID(msg)
	if err != nil {
		return err
	}

	if err = that.games.RemoveUser(ctx, gameID, conn.username); err != nil {
		return err
	}

	conn.unsubscribe(gameID)

	return nil
}

// keepOnSuccess undoes a subscription the failed request took, and passes err through.
func keepOnSuccess(conn *connection, gameID string, added bool, err error) error {
	if err != nil && added {
		conn.unsubscribe(gameID)
	}

	return err
}

func decode(msg *Message, v any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%w: payload is required", apperror.ErrMalformedRequest)
	}

	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrMalformedRequest, err)
	}

	return nil
}

func decodeGameID(msg *Message) (string, error) {
	var req gameRequest
	if err := decode(msg, &req); err != nil {
		return "", err
	}

	return req.GameID, requireGameID(req.GameID)
}

func requireGameID(gameID string) error {
	if gameID == "" {
		return fmt.Errorf("%w: game_id is required", apperror.ErrMalformedRequest)
	}
	return nil
}
