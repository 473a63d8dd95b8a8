package usecase

import (
	"context"

	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

// GameUseCase is the lifecycle API served to the transports.
type GameUseCase interface {
	CreateGame(ctx context.Context, host, mode string, maxPlayers int) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, username string) (*entity.Game, error)
	StartGame(ctx context.Context, gameID string) (*entity.Game, error)

	PlayCards(ctx context.Context, action entity.PlayAction) error
	DrawCard(ctx context.Context, gameID, username string) error

	TerminateGame(ctx context.Context, gameID string) error
	RemoveUser(ctx context.Context, gameID, username string) error

	ReloadGameState(ctx context.Context, gameID, username string) error
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
}

type gameRepoDep interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type deckSourceDep interface {
	FetchShuffledDeck(ctx context.Context, deckCount int) (string, []entity.Card, error)
}

type publisherDep interface {
	Publish(ctx context.Context, channel string, event entity.Event)
}

type statsRepoDep interface {
	RecordResult(ctx context.Context, leaderboard []entity.LeaderboardEntry, winner string) error
}

var _ GameUseCase = (*GameManager)(nil)
