package kittens

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

// DepartPlayer takes a leaving player out of a running game. A pending explosion held by
// the player goes back into the draw pile at a random position, the rest of the hand is
// discarded.
func DepartPlayer(game *entity.Game, player string, rng Randomizer) (*Outcome, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if !game.IsAlive(player) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUserNotInGame, player)
	}

	hand := game.Hand(player)
	for _, card := range hand {
		if card.IsExplosion() {
			if err := PlaceExplosionAtPosition(game.Deck, card, rng.IntN(len(game.Deck.DrawPile)+1)); err != nil {
				return nil, err
			}
			continue
		}
		game.Deck.PlayPile = append(game.Deck.PlayPile, card)
	}
	game.Deck.Hands[player] = []entity.Card{}

	outcome := &Outcome{}
	eliminate(game, player, true, outcome)

	return outcome, nil
}

// FinishGame moves the game to finished. A single player left in the ring is the winner.
func FinishGame(game *entity.Game) entity.Event {
	game.Status = entity.StatusFinished
	game.PendingExplosion = ""
	game.LastAction = nil

	if len(game.Turn.Ring) == 1 {
		game.Winner = game.Turn.Ring[0]
	}

	return entity.NewEvent(game.ID, entity.EventGameEnded, entity.GameEndedPayload{
		Winner:      game.Winner,
		Leaderboard: Leaderboard(game),
	})
}

// Leaderboard ranks the players still in the ring first, then the eliminated ones,
// most recently eliminated first.
func Leaderboard(game *entity.Game) []entity.LeaderboardEntry {
	entries := make([]entity.LeaderboardEntry, 0, len(game.Players))

	for _, player := range game.Turn.Ring {
		entries = append(entries, entity.LeaderboardEntry{Player: player})
	}

	for _, elimination := range slices.Backward(game.Eliminations) {
		entries = append(entries, entity.LeaderboardEntry{
			Player:     elimination.Player,
			Eliminated: true,
			Departed:   elimination.Departed,
		})
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}

func eliminate(game *entity.Game, player string, departed bool, outcome *Outcome) {
	RemoveFromRing(&game.Turn, player)

	if game.PendingExplosion == player {
		game.PendingExplosion = ""
	}
	game.LastAction = nil
	game.Eliminations = append(game.Eliminations, entity.Elimination{Player: player, Departed: departed})

	outcome.Eliminated = append(outcome.Eliminated, player)
	outcome.add(entity.NewEvent(game.ID, entity.EventPlayerEliminated, entity.PlayerEliminatedPayload{
		Player:   player,
		Departed: departed,
	}))

	if len(game.Turn.Ring) <= 1 {
		outcome.Finished = true
		outcome.add(FinishGame(game))
		return
	}

	outcome.add(turnChanged(game))
}
