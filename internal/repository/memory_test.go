package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns a copy of the stored game", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository()
		game := runningGame()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the caller changes the loaded game
		loaded, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		loaded.Deck.Hands["alice"] = nil

		// Then: the stored game is not affected
		again, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, game, again)
	})

	t.Run("Reports missing games", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		_, err := gameRepo.GetByID(ctx, "999999")
		require.ErrorIs(t, err, ErrGameNotFound)

		err = gameRepo.DeleteByID(ctx, "999999")
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestMemoryStatsRepository(t *testing.T) {
	t.Run("Counts wins, losses and departures", func(t *testing.T) {
		ctx := context.Background()
		statsRepo := NewMemoryStatsRepository()

		// When: one game is recorded
		err := statsRepo.RecordResult(ctx, []entity.LeaderboardEntry{
			{Rank: 1, Player: "bob"},
			{Rank: 2, Player: "alice"},
			{Rank: 3, Player: "carol", Departed: true},
		}, "bob")
		require.NoError(t, err)

		// Then: each player has one game with the right result
		bob, _ := statsRepo.GetByUser(ctx, "bob")
		alice, _ := statsRepo.GetByUser(ctx, "alice")
		carol, _ := statsRepo.GetByUser(ctx, "carol")

		assert.Equal(t, &Stats{Games: 1, Wins: 1}, bob)
		assert.Equal(t, &Stats{Games: 1, Losses: 1}, alice)
		assert.Equal(t, &Stats{Games: 1, Departures: 1}, carol)
	})

	t.Run("Survivors of a game without a winner count a termination", func(t *testing.T) {
		ctx := context.Background()
		statsRepo := NewMemoryStatsRepository()

		err := statsRepo.RecordResult(ctx, []entity.LeaderboardEntry{
			{Rank: 1, Player: "alice"},
			{Rank: 2, Player: "bob"},
			{Rank: 3, Player: "carol", Eliminated: true},
			{Rank: 4, Player: "dave", Eliminated: true, Departed: true},
		}, "")
		require.NoError(t, err)

		alice, _ := statsRepo.GetByUser(ctx, "alice")
		carol, _ := statsRepo.GetByUser(ctx, "carol")
		dave, _ := statsRepo.GetByUser(ctx, "dave")

		assert.Equal(t, &Stats{Games: 1, Terminated: 1}, alice)
		assert.Equal(t, &Stats{Games: 1, Losses: 1}, carol)
		assert.Equal(t, &Stats{Games: 1, Departures: 1}, dave)
	})
}
