package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/kittens-backend/internal/broadcast"
)

type connConfig struct {
	WriteWait    time.Duration
	PongWait     time.Duration
	PingInterval time.Duration
	SendBuffer   int
	ReadLimit    int64
}

var defaultConnConfig = connConfig{
	WriteWait:    10 * time.Second,
	PongWait:     60 * time.Second,
	PingInterval: 50 * time.Second,
	SendBuffer:   64,
	ReadLimit:    4096,
}

type subscriberHub interface {
	Register(gameID, username string, subscriber broadcast.Subscriber) func()
}

// connection is one authenticated client. Only writePump writes to the socket.
type connection struct {
	id       string
	username string
	logger   *slog.Logger

	conn *websocket.Conn
	conf connConfig
	hub  subscriberHub

	send     chan []byte
	done     chan struct{}
	stopOnce sync.Once

	mu            sync.Mutex
	subscriptions map[string]func()
}

func newConnection(logger *slog.Logger, conn *websocket.Conn, username string, hub subscriberHub, conf connConfig) *connection {
	id := uuid.NewString()

	return &connection{
		id:       id,
		username: username,
		logger:   logger.With("connectionID", id, "username", username),

		conn: conn,
		conf: conf,
		hub:  hub,

		send:          make(chan []byte, conf.SendBuffer),
		done:          make(chan struct{}),
		subscriptions: make(map[string]func()),
	}
}

// Deliver queues a message without blocking. A client that cannot keep up is dropped.
// The hub calls Deliver under its lock, so nothing here may touch the hub.
func (that *connection) Deliver(data []byte) {
	select {
	case <-that.done:
		return
	default:
	}

	select {
	case that.send <- data:
	case <-that.done:
	default:
		that.logger.Warn("send buffer full, dropping connection")
		that.stop()
	}
}

func (that *connection) reply(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		that.logger.Error("failed to encode response", "error", err)
		return
	}

	that.Deliver(data)
}

// subscribe reports whether the subscription is new.
func (that *connection) subscribe(gameID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.subscriptions[gameID]; ok {
		return false
	}

	that.subscriptions[gameID] = that.hub.Register(gameID, that.username, that)

	return true
}

func (that *connection) unsubscribe(gameID string) {
	that.mu.Lock()
	unregister, ok := that.subscriptions[gameID]
	delete(that.subscriptions, gameID)
	that.mu.Unlock()

	if ok {
		unregister()
	}
}

func (that *connection) unsubscribeAll() {
	that.mu.Lock()
	subscriptions := that.subscriptions
	that.subscriptions = make(map[string]func())
	that.mu.Unlock()

	for _, unregister := range subscriptions {
		unregister()
	}
}

func (that *connection) stop() {
	that.stopOnce.Do(func() {
		close(that.done)

		if err := that.conn.Close(); err != nil {
			that.logger.Debug("failed to close connection", "error", err)
		}
	})
}

func (that *connection) writePump() {
	ticker := time.NewTicker(that.conf.PingInterval)
	defer ticker.Stop()
	defer that.stop()

	for {
		select {
		case <-that.done:
			return

		case data := <-that.send:
			if err := that.conn.SetWriteDeadline(time.Now().Add(that.conf.WriteWait)); err != nil {
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				that.logger.Debug("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			if err := that.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(that.conf.WriteWait)); err != nil {
				return
			}
		}
	}
}
