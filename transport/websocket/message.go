package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
)

const (
	actionPlay   = "game:play"
	actionDraw   = "game:draw"
	actionReload = "game:reload"
	actionStart  = "game:start"
	actionLeave  = "game:leave"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// Message is an inbound action of a client.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response acknowledges one inbound action. Game events are sent separately as
// broadcast messages.
type Response struct {
	Action string         `json:"action"`
	Status string         `json:"status"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    apperror.Code `json:"code"`
	Message string        `json:"message"`
}

type gameRequest struct {
	GameID string `json:"game_id"`
}

type playRequest struct {
	GameID         string   `json:"game_id"`
	Cards          []string `json:"cards"`
	TargetUsername string   `json:"target_username,omitempty"`
	RequestedCard  string   `json:"requested_card,omitempty"`
	Position       *int     `json:"position,omitempty"`
}
