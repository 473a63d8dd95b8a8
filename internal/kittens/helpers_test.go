package kittens

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

// firstPick never reorders and always picks index 0.
type firstPick struct{}

func (firstPick) Shuffle(int, func(i, j int)) {}

func (firstPick) IntN(int) int { return 0 }

// reversing reverses on Shuffle and always picks the last index.
type reversing struct{}

func (reversing) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func (reversing) IntN(n int) int { return n - 1 }

func cards(codes ...string) []entity.Card {
	result := make([]entity.Card, 0, len(codes))
	for _, code := range codes {
		result = append(result, NewCard(code, ""))
	}
	return result
}

type table struct {
	hands map[string][]string
	draw  []string
}

// ongoingGame seats the players in order and gives each the listed hand.
func ongoingGame(t *testing.T, players []string, setup table) *entity.Game {
	t.Helper()

	game := entity.NewGame("123456", entity.ModeNormal, 5)
	for _, player := range players {
		require.NoError(t, game.Seat(player))
	}

	game.Status = entity.StatusOngoing
	StartTurns(game)

	game.Deck = entity.NewDeck("deck")
	game.Deck.DrawPile = cards(setup.draw...)
	for _, player := range players {
		game.Deck.Hands[player] = cards(setup.hands[player]...)
	}

	return game
}

func snapshot(t *testing.T, game *entity.Game) string {
	t.Helper()

	data, err := json.Marshal(game)
	require.NoError(t, err)

	return string(data)
}

func eventTypes(events []entity.Event) []entity.EventType {
	types := make([]entity.EventType, 0, len(events))
	for _, event := range events {
		types = append(types, event.Type)
	}
	return types
}

func intPtr(v int) *int {
	return &v
}
