package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/broadcast"
	"github.com/rocketscienceinc/kittens-backend/internal/cardsource"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
	"github.com/rocketscienceinc/kittens-backend/internal/kittens"
	"github.com/rocketscienceinc/kittens-backend/internal/repository"
	"github.com/rocketscienceinc/kittens-backend/internal/service"
	"github.com/rocketscienceinc/kittens-backend/internal/usecase"
	"github.com/rocketscienceinc/kittens-backend/testing/suite"
)

const readTimeout = 5 * time.Second

// frame is either an action response or a broadcast event.
type frame struct {
	Action string         `json:"action"`
	Status string         `json:"status"`
	Error  *ErrorResponse `json:"error"`
	Event  *struct {
		Type      entity.EventType `json:"type"`
		Recipient string           `json:"recipient"`
		Payload   json.RawMessage  `json:"payload"`
	} `json:"event"`
}

type testServer struct {
	t       *testing.T
	server  *httptest.Server
	auth    service.AuthService
	manager *usecase.GameManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := suite.DiscardLogger()

	auth, err := service.NewAuthService("test-secret")
	require.NoError(t, err)

	pool, err := ants.NewPool(4)
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	hub := broadcast.NewHub(logger)
	manager := usecase.NewGameManager(
		logger,
		kittens.DefaultRules,
		repository.NewMemoryGameRepository(),
		cardsource.NewLocalSource(nil),
		broadcast.NewLocalPublisher(logger, hub),
		repository.NewMemoryStatsRepository(),
	)

	wsServer := New(logger, "0", manager, auth, hub, pool)
	server := httptest.NewServer(wsServer.Handler())
	t.Cleanup(server.Close)

	return &testServer{t: t, server: server, auth: auth, manager: manager}
}

func (that *testServer) dial(username string) *websocket.Conn {
	that.t.Helper()

	token, err := that.auth.GenerateToken(username)
	require.NoError(that.t, err)

	url := "ws" + strings.TrimPrefix(that.server.URL, "http") + "/ws?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(that.t, err)
	resp.Body.Close()
	that.t.Cleanup(func() { conn.Close() })

	return conn
}

// newGame creates a preparing game hosted by the first player with the others seated.
func (that *testServer) newGame(players ...string) string {
	that.t.Helper()

	ctx := context.Background()

	game, err := that.manager.CreateGame(ctx, players[0], "", 0)
	require.NoError(that.t, err)

	for _, player := range players[1:] {
		_, err = that.manager.JoinGame(ctx, game.ID, player)
		require.NoError(that.t, err)
	}

	return game.ID
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: data}))
}

// readUntilResponse collects every frame up to and including the response to action.
func readUntilResponse(t *testing.T, conn *websocket.Conn, action string) (Response, []frame) {
	t.Helper()

	var events []frame
	for {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(readTimeout)))

		var f frame
		require.NoError(t, conn.ReadJSON(&f))

		if f.Event != nil {
			events = append(events, f)
			continue
		}

		if f.Action == action {
			return Response{Action: f.Action, Status: f.Status, Error: f.Error}, events
		}
	}
}

func TestServer_Connect(t *testing.T) {
	t.Run("Rejects a connection without a valid token", func(t *testing.T) {
		ts := newTestServer(t)

		url := "ws" + strings.TrimPrefix(ts.server.URL, "http") + "/ws?token=forged"
		_, resp, err := websocket.DefaultDialer.Dial(url, nil)

		require.ErrorIs(t, err, websocket.ErrBadHandshake)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Answers unknown actions with an error", func(t *testing.T) {
		ts := newTestServer(t)
		conn := ts.dial("alice")

		send(t, conn, "game:dance", map[string]string{"game_id": "123456"})
		resp, _ := readUntilResponse(t, conn, "game:dance")

		assert.Equal(t, statusError, resp.Status)
		assert.Equal(t, apperror.CodeBadRequest, resp.Error.Code)
	})

	t.Run("Requires a game id", func(t *testing.T) {
		ts := newTestServer(t)
		conn := ts.dial("alice")

		send(t, conn, actionDraw, map[string]string{})
		resp, _ := readUntilResponse(t, conn, actionDraw)

		assert.Equal(t, apperror.CodeBadRequest, resp.Error.Code)
	})
}

func TestServer_Reload(t *testing.T) {
	t.Run("Sends the snapshot privately", func(t *testing.T) {
		// Given: alice is seated in a preparing game
		ts := newTestServer(t)
		gameID := ts.newGame("alice", "bob")
		conn := ts.dial("alice")

		// When: alice reloads
		send(t, conn, actionReload, gameRequest{GameID: gameID})
		resp, events := readUntilResponse(t, conn, actionReload)

		// Then: she receives a state sync addressed to her
		assert.Equal(t, statusOK, resp.Status)
		require.Len(t, events, 1)
		assert.Equal(t, entity.EventStateSync, events[0].Event.Type)
		assert.Equal(t, "alice", events[0].Event.Recipient)

		var payload entity.StateSyncPayload
		require.NoError(t, json.Unmarshal(events[0].Event.Payload, &payload))
		assert.Equal(t, []string{"alice", "bob"}, payload.Players)
	})

	t.Run("Rejects a user who is not seated", func(t *testing.T) {
		ts := newTestServer(t)
		gameID := ts.newGame("alice", "bob")
		conn := ts.dial("mallory")

		send(t, conn, actionReload, gameRequest{GameID: gameID})
		resp, events := readUntilResponse(t, conn, actionReload)

		assert.Equal(t, apperror.CodeForbidden, resp.Error.Code)
		assert.Empty(t, events)
	})
}

func TestServer_GameFlow(t *testing.T) {
	t.Run("Starting deals each player a private hand", func(t *testing.T) {
		// Given: alice and bob are connected to the same game
		ts := newTestServer(t)
		gameID := ts.newGame("alice", "bob")
		alice := ts.dial("alice")
		bob := ts.dial("bob")

		send(t, bob, actionReload, gameRequest{GameID: gameID})
		_, _ = readUntilResponse(t, bob, actionReload)

		// When: alice starts the game
		send(t, alice, actionStart, gameRequest{GameID: gameID})
		resp, aliceEvents := readUntilResponse(t, alice, actionStart)

		// Then: both receive their own hand and the first turn
		require.Equal(t, statusOK, resp.Status, resp.Error)
		require.Len(t, aliceEvents, 2)
		assert.Equal(t, entity.EventGameStarted, aliceEvents[0].Event.Type)
		assert.Equal(t, "alice", aliceEvents[0].Event.Recipient)
		assert.Equal(t, entity.EventTurnChanged, aliceEvents[1].Event.Type)

		var started entity.GameStartedPayload
		require.NoError(t, json.Unmarshal(aliceEvents[0].Event.Payload, &started))
		assert.Len(t, started.Hand, kittens.DefaultRules.HandSize+1)

		var bobEvents []frame
		for len(bobEvents) < 2 {
			require.NoError(t, bob.SetReadDeadline(time.Now().Add(readTimeout)))
			var f frame
			require.NoError(t, bob.ReadJSON(&f))
			if f.Event != nil {
				bobEvents = append(bobEvents, f)
			}
		}
		assert.Equal(t, entity.EventGameStarted, bobEvents[0].Event.Type)
		assert.Equal(t, "bob", bobEvents[0].Event.Recipient)
		assert.Equal(t, entity.EventTurnChanged, bobEvents[1].Event.Type)

		// And: bob may not draw out of turn
		send(t, bob, actionDraw, gameRequest{GameID: gameID})
		resp, _ = readUntilResponse(t, bob, actionDraw)
		assert.Equal(t, apperror.CodeInvalidMove, resp.Error.Code)
	})

	t.Run("Only seated players may start", func(t *testing.T) {
		ts := newTestServer(t)
		gameID := ts.newGame("alice", "bob")
		conn := ts.dial("mallory")

		send(t, conn, actionStart, gameRequest{GameID: gameID})
		resp, _ := readUntilResponse(t, conn, actionStart)

		assert.Equal(t, apperror.CodeForbidden, resp.Error.Code)
	})

	t.Run("Rejected moves from outsiders leave no subscription behind", func(t *testing.T) {
		// Given: a running game of alice and bob, and mallory who is not seated
		ts := newTestServer(t)
		ctx := context.Background()
		gameID := ts.newGame("alice", "bob")
		_, err := ts.manager.StartGame(ctx, gameID)
		require.NoError(t, err)
		conn := ts.dial("mallory")

		// When: mallory tries to draw and to play in it
		send(t, conn, actionDraw, gameRequest{GameID: gameID})
		resp, _ := readUntilResponse(t, conn, actionDraw)
		require.Equal(t, apperror.CodeForbidden, resp.Error.Code)

		send(t, conn, actionPlay, playRequest{GameID: gameID, Cards: []string{"2H"}})
		resp, _ = readUntilResponse(t, conn, actionPlay)
		require.Equal(t, apperror.CodeForbidden, resp.Error.Code)

		// Then: the game's public events no longer reach her
		require.NoError(t, ts.manager.DrawCard(ctx, gameID, "alice"))

		send(t, conn, "game:dance", gameRequest{GameID: gameID})
		_, events := readUntilResponse(t, conn, "game:dance")
		assert.Empty(t, events)
	})

	t.Run("Playing a card nobody holds is an invalid move", func(t *testing.T) {
		ts := newTestServer(t)
		gameID := ts.newGame("alice", "bob")
		_, err := ts.manager.StartGame(context.Background(), gameID)
		require.NoError(t, err)
		conn := ts.dial("alice")

		send(t, conn, actionPlay, playRequest{GameID: gameID, Cards: []string{"ZZ"}})
		resp, _ := readUntilResponse(t, conn, actionPlay)

		assert.Equal(t, apperror.CodeInvalidMove, resp.Error.Code)
	})

	t.Run("Leaving before the start frees the seat", func(t *testing.T) {
		ts := newTestServer(t)
		gameID := ts.newGame("alice", "bob")
		conn := ts.dial("bob")

		send(t, conn, actionLeave, gameRequest{GameID: gameID})
		resp, _ := readUntilResponse(t, conn, actionLeave)

		require.Equal(t, statusOK, resp.Status)
		game, err := ts.manager.GetGame(context.Background(), gameID)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice"}, game.Players)
	})
}
