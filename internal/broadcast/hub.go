package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Subscriber receives encoded messages. Deliver must not block.
type Subscriber interface {
	Deliver(data []byte)
}

type subscription struct {
	username   string
	subscriber Subscriber
}

// Hub fans published messages out to the subscribers of a game.
type Hub struct {
	logger *slog.Logger

	mu    sync.RWMutex
	games map[string]map[*subscription]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "hub"),
		games:  make(map[string]map[*subscription]struct{}),
	}
}

// Register subscribes a player connection to a game and returns the unsubscribe function.
func (that *Hub) Register(gameID, username string, subscriber Subscriber) func() {
	sub := &subscription{username: username, subscriber: subscriber}

	that.mu.Lock()
	if that.games[gameID] == nil {
		that.games[gameID] = make(map[*subscription]struct{})
	}
	that.games[gameID][sub] = struct{}{}
	that.mu.Unlock()

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		delete(that.games[gameID], sub)
		if len(that.games[gameID]) == 0 {
			delete(that.games, gameID)
		}
	}
}

// Dispatch routes a message by its channel: game channels reach every subscriber of the
// game, player channels only that player's connections.
func (that *Hub) Dispatch(channel string, data []byte) {
	gameID, username, ok := ParseChannel(channel)
	if !ok {
		that.logger.Warn("ignoring message on unknown channel", "channel", channel)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for sub := range that.games[gameID] {
		if username == "" || sub.username == username {
			sub.subscriber.Deliver(data)
		}
	}
}

// Listen dispatches messages from every game channel until ctx is done.
func (that *Hub) Listen(ctx context.Context, client *redis.Client) error {
	log := that.logger.With("method", "Listen")

	pubsub := client.PSubscribe(ctx, Pattern)
	defer func() {
		if err := pubsub.Close(); err != nil {
			log.Error("failed to close subscription", "error", err)
		}
	}()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	messages := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			that.Dispatch(msg.Channel, []byte(msg.Payload))
		}
	}
}
