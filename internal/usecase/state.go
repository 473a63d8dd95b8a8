package usecase

import (
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
	"github.com/rocketscienceinc/kittens-backend/internal/kittens"
)

// snapshot is what a reconnecting player needs to redraw the table.
func snapshot(game *entity.Game, username string) entity.StateSyncPayload {
	payload := entity.StateSyncPayload{
		Status:           game.Status,
		Players:          game.Players,
		Ring:             game.Turn.Ring,
		CurrentTurn:      game.CurrentTurn(),
		Pending:          game.Turn.Pending,
		Hand:             game.Hand(username),
		PendingExplosion: game.PendingExplosion,
		Winner:           game.Winner,
	}

	if game.Deck != nil {
		payload.Stats = kittens.PileStats(game.Deck)

		if top, ok := kittens.TopOfPlayPile(game.Deck); ok {
			payload.TopCard = &top
		}
	}

	return payload
}
