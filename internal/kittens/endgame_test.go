package kittens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

func TestDepartPlayer(t *testing.T) {
	fourPlayers := []string{"alice", "bob", "carol", "dave"}

	t.Run("A non-active player leaving keeps the current turn", func(t *testing.T) {
		// Given: four players with carol on turn
		game := ongoingGame(t, fourPlayers, table{hands: map[string][]string{"bob": {"KS", "2H"}}})
		game.Turn.Active = 2

		// When: bob leaves
		outcome, err := DepartPlayer(game, "bob", firstPick{})

		// Then: three remain, carol keeps the turn and the game goes on
		require.NoError(t, err)
		assert.Len(t, game.Turn.Ring, 3)
		assert.Equal(t, "carol", game.CurrentTurn())
		assert.True(t, game.IsOngoing())
		assert.False(t, outcome.Finished)
		assert.Equal(t, []string{"KS", "2H"}, entity.CardCodes(game.Deck.PlayPile))
		assert.Equal(t, []entity.Elimination{{Player: "bob", Departed: true}}, game.Eliminations)
	})

	t.Run("An active player leaving passes the turn", func(t *testing.T) {
		game := ongoingGame(t, fourPlayers, table{})
		game.Turn.Pending = 2

		_, err := DepartPlayer(game, "alice", firstPick{})

		require.NoError(t, err)
		assert.Equal(t, "bob", game.CurrentTurn())
		assert.Zero(t, game.Turn.Pending)
	})

	t.Run("A pending explosion goes back into the draw pile", func(t *testing.T) {
		// Given: alice is holding an explosion she has not defused yet
		game := ongoingGame(t, fourPlayers, table{
			hands: map[string][]string{"alice": {"AS", "X1"}},
			draw:  []string{"KS"},
		})
		game.PendingExplosion = "alice"

		// When: alice leaves
		_, err := DepartPlayer(game, "alice", firstPick{})

		// Then: the explosion is back in play
		require.NoError(t, err)
		assert.Empty(t, game.PendingExplosion)
		assert.Equal(t, []string{"X1", "KS"}, entity.CardCodes(game.Deck.DrawPile))
		assert.Equal(t, []string{"AS"}, entity.CardCodes(game.Deck.PlayPile))
	})

	t.Run("The last one left wins", func(t *testing.T) {
		game := ongoingGame(t, []string{"alice", "bob"}, table{})

		outcome, err := DepartPlayer(game, "alice", firstPick{})

		require.NoError(t, err)
		assert.True(t, outcome.Finished)
		assert.Equal(t, "bob", game.Winner)
		assert.Equal(t, []entity.LeaderboardEntry{
			{Rank: 1, Player: "bob"},
			{Rank: 2, Player: "alice", Eliminated: true, Departed: true},
		}, Leaderboard(game))
	})

	t.Run("Rejects a player who is not in the ring", func(t *testing.T) {
		game := ongoingGame(t, fourPlayers, table{})

		_, err := DepartPlayer(game, "mallory", firstPick{})

		require.ErrorIs(t, err, apperror.ErrUserNotInGame)
	})
}

func TestLeaderboard(t *testing.T) {
	t.Run("Lists the most recent elimination first", func(t *testing.T) {
		// Given: carol went out first, then alice
		game := ongoingGame(t, threePlayers, table{})
		RemoveFromRing(&game.Turn, "carol")
		RemoveFromRing(&game.Turn, "alice")
		game.Eliminations = []entity.Elimination{{Player: "carol"}, {Player: "alice"}}

		// When: finishing the game
		event := FinishGame(game)

		// Then: bob wins, alice is second and carol third
		assert.Equal(t, entity.GameEndedPayload{
			Winner: "bob",
			Leaderboard: []entity.LeaderboardEntry{
				{Rank: 1, Player: "bob"},
				{Rank: 2, Player: "alice", Eliminated: true},
				{Rank: 3, Player: "carol", Eliminated: true},
			},
		}, event.Payload)
		assert.True(t, game.IsFinished())
	})

	t.Run("A game stopped early has no winner", func(t *testing.T) {
		game := ongoingGame(t, threePlayers, table{})

		FinishGame(game)

		assert.Empty(t, game.Winner)
		assert.Len(t, Leaderboard(game), 3)
	})
}
