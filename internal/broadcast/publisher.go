package broadcast

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

// Message is the wire form of a published event.
type Message struct {
	ID    string       `json:"id"`
	Event entity.Event `json:"event"`
}

func encode(event entity.Event) ([]byte, error) {
	return json.Marshal(Message{ID: uuid.NewString(), Event: event})
}

// RedisPublisher publishes events with redis PUBLISH. Failures are logged only.
type RedisPublisher struct {
	logger *slog.Logger
	client *redis.Client
}

func NewRedisPublisher(logger *slog.Logger, client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		logger: logger.With("component", "publisher"),
		client: client,
	}
}

func (that *RedisPublisher) Publish(ctx context.Context, channel string, event entity.Event) {
	log := that.logger.With("method", "Publish", "channel", channel, "type", event.Type)

	data, err := encode(event)
	if err != nil {
		log.Error("failed to encode event", "error", err)
		return
	}

	if err = that.client.Publish(ctx, channel, data).Err(); err != nil {
		log.Error("failed to publish event", "error", err)
	}
}

// LocalPublisher hands events straight to an in-process hub.
type LocalPublisher struct {
	logger *slog.Logger
	hub    *Hub
}

func NewLocalPublisher(logger *slog.Logger, hub *Hub) *LocalPublisher {
	return &LocalPublisher{
		logger: logger.With("component", "publisher"),
		hub:    hub,
	}
}

func (that *LocalPublisher) Publish(_ context.Context, channel string, event entity.Event) {
	data, err := encode(event)
	if err != nil {
		that.logger.Error("failed to encode event", "method", "Publish", "error", err)
		return
	}

	that.hub.Dispatch(channel, data)
}
