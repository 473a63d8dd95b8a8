package broadcast

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/kittens-backend/internal/entity"
	"github.com/rocketscienceinc/kittens-backend/testing/suite"
)

type recorder struct {
	mu       sync.Mutex
	messages []Message
	received chan struct{}
}

func newRecorder() *recorder {
	return &recorder{received: make(chan struct{}, 16)}
}

func (that *recorder) Deliver(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}

	that.mu.Lock()
	that.messages = append(that.messages, msg)
	that.mu.Unlock()

	that.received <- struct{}{}
}

func (that *recorder) types() []entity.EventType {
	that.mu.Lock()
	defer that.mu.Unlock()

	types := make([]entity.EventType, 0, len(that.messages))
	for _, msg := range that.messages {
		types = append(types, msg.Event.Type)
	}
	return types
}

func TestParseChannel(t *testing.T) {
	t.Run("Splits game and player channels", func(t *testing.T) {
		gameID, user, ok := ParseChannel(GameChannel("123456"))
		assert.True(t, ok)
		assert.Equal(t, "123456", gameID)
		assert.Empty(t, user)

		gameID, user, ok = ParseChannel(UserChannel("123456", "alice"))
		assert.True(t, ok)
		assert.Equal(t, "123456", gameID)
		assert.Equal(t, "alice", user)
	})

	t.Run("Rejects foreign channels", func(t *testing.T) {
		for _, channel := range []string{"", "game:", "stats:alice", "game:1:user:"} {
			_, _, ok := ParseChannel(channel)
			assert.False(t, ok, channel)
		}
	})
}

func TestChannelFor(t *testing.T) {
	public := entity.NewEvent("123456", entity.EventTurnChanged, nil)
	private := entity.NewPrivateEvent("123456", "alice", entity.EventFutureRevealed, nil)

	assert.Equal(t, "game:123456", ChannelFor(public))
	assert.Equal(t, "game:123456:user:alice", ChannelFor(private))
}

func TestHub_Dispatch(t *testing.T) {
	t.Run("Private events reach only the recipient", func(t *testing.T) {
		// Given: alice and bob watch the same game
		hub := NewHub(suite.DiscardLogger())
		alice, bob := newRecorder(), newRecorder()
		hub.Register("123456", "alice", alice)
		hub.Register("123456", "bob", bob)
		publisher := NewLocalPublisher(suite.DiscardLogger(), hub)

		// When: a public and a private event are published
		public := entity.NewEvent("123456", entity.EventTurnChanged, entity.TurnChangedPayload{Player: "bob"})
		private := entity.NewPrivateEvent("123456", "alice", entity.EventFutureRevealed, nil)
		publisher.Publish(context.Background(), ChannelFor(public), public)
		publisher.Publish(context.Background(), ChannelFor(private), private)

		// Then: alice gets both and bob only the public one
		assert.Equal(t, []entity.EventType{entity.EventTurnChanged, entity.EventFutureRevealed}, alice.types())
		assert.Equal(t, []entity.EventType{entity.EventTurnChanged}, bob.types())
	})

	t.Run("Unregistered connections stop receiving", func(t *testing.T) {
		hub := NewHub(suite.DiscardLogger())
		alice := newRecorder()
		unregister := hub.Register("123456", "alice", alice)

		unregister()
		hub.Dispatch(GameChannel("123456"), []byte(`{}`))

		assert.Empty(t, alice.types())
	})

	t.Run("Other games are not affected", func(t *testing.T) {
		hub := NewHub(suite.DiscardLogger())
		alice := newRecorder()
		hub.Register("111111", "alice", alice)

		hub.Dispatch(GameChannel("222222"), []byte(`{}`))

		assert.Empty(t, alice.types())
	})
}

func TestRedisPublisher(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a hub listening on redis
	hub := NewHub(st.Logger)
	alice := newRecorder()
	hub.Register("123456", "alice", alice)

	listenCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ready := make(chan struct{})
	go func() {
		close(ready)
		_ = hub.Listen(listenCtx, st.Storage)
	}()
	<-ready

	publisher := NewRedisPublisher(st.Logger, st.Storage)
	event := entity.NewPrivateEvent("123456", "alice", entity.EventCardsDrawn, entity.CardsDrawnPayload{Player: "alice", Count: 1})

	// When: publishing until the subscription is live
	require.Eventually(t, func() bool {
		publisher.Publish(ctx, ChannelFor(event), event)
		select {
		case <-alice.received:
			return true
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	// Then: the event arrived with its id
	alice.mu.Lock()
	defer alice.mu.Unlock()
	require.NotEmpty(t, alice.messages)
	assert.NotEmpty(t, alice.messages[0].ID)
	assert.Equal(t, entity.EventCardsDrawn, alice.messages[0].Event.Type)
	assert.Equal(t, "alice", alice.messages[0].Event.Recipient)
}
