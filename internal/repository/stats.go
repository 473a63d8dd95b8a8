package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

const (
	fieldWins       = "wins"
	fieldLosses     = "losses"
	fieldDepartures = "departures"
	fieldTerminated = "terminated"
	fieldGames      = "games"
)

// Stats are the lifetime results of one user.
type Stats struct {
	Games      int `json:"games"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Departures int `json:"departures"`
	Terminated int `json:"terminated"`
}

type StatsRepository interface {
	RecordResult(ctx context.Context, leaderboard []entity.LeaderboardEntry, winner string) error
	GetByUser(ctx context.Context, username string) (*Stats, error)
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func statsKey(username string) string {
	return "stats:" + username
}

// RecordResult counts one game for every leaderboard entry in a single transaction.
func (that *dbStats) RecordResult(ctx context.Context, leaderboard []entity.LeaderboardEntry, winner string) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, entry := range leaderboard {
			key := statsKey(entry.Player)

			pipe.HIncrBy(ctx, key, fieldGames, 1)
			pipe.HIncrBy(ctx, key, resultField(entry, winner), 1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

func (that *dbStats) GetByUser(ctx context.Context, username string) (*Stats, error) {
	fields, err := that.client.HGetAll(ctx, statsKey(username)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return statsFromFields(fields), nil
}

// resultField picks the counter of one entry. Players still alive when a game is
// stopped without a winner neither win nor lose.
func resultField(entry entity.LeaderboardEntry, winner string) string {
	switch {
	case entry.Departed:
		return fieldDepartures
	case entry.Player == winner:
		return fieldWins
	case winner == "" && !entry.Eliminated:
		return fieldTerminated
	default:
		return fieldLosses
	}
}

func statsFromFields(fields map[string]string) *Stats {
	atoi := func(key string) int {
		v, _ := strconv.Atoi(fields[key])
		return v
	}

	return &Stats{
		Games:      atoi(fieldGames),
		Wins:       atoi(fieldWins),
		Losses:     atoi(fieldLosses),
		Departures: atoi(fieldDepartures),
		Terminated: atoi(fieldTerminated),
	}
}
