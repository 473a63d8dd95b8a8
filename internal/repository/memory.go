package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

// memGame keeps games as JSON so callers never share state with the store.
type memGame struct {
	mu    sync.RWMutex
	games map[string][]byte
}

func NewMemoryGameRepository() GameRepository {
	return &memGame{
		games: make(map[string][]byte),
	}
}

func (that *memGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = gameJSON

	return nil
}

func (that *memGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	gameJSON, ok := that.games[id]
	that.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	var game entity.Game
	if err := json.Unmarshal(gameJSON, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

func (that *memGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	delete(that.games, id)

	return nil
}

type memStats struct {
	mu    sync.Mutex
	stats map[string]Stats
}

func NewMemoryStatsRepository() StatsRepository {
	return &memStats{
		stats: make(map[string]Stats),
	}
}

func (that *memStats) RecordResult(_ context.Context, leaderboard []entity.LeaderboardEntry, winner string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, entry := range leaderboard {
		stats := that.stats[entry.Player]
		stats.Games++

		switch resultField(entry, winner) {
		case fieldDepartures:
			stats.Departures++
		case fieldWins:
			stats.Wins++
		case fieldTerminated:
			stats.Terminated++
		default:
			stats.Losses++
		}

		that.stats[entry.Player] = stats
	}

	return nil
}

func (that *memStats) GetByUser(_ context.Context, username string) (*Stats, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	stats := that.stats[username]

	return &stats, nil
}
