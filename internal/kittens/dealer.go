package kittens

import (
	"fmt"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

// Rules are the dealing parameters of a game.
type Rules struct {
	HandSize      int
	DefuseReserve int
	MaxPlayers    int
}

var DefaultRules = Rules{
	HandSize:      7,
	DefuseReserve: 2,
	MaxPlayers:    5,
}

// DeckCountFor returns the number of standard decks needed to deal a game for players.
func DeckCountFor(players int, rules Rules) int {
	decks := 1
	for !deckSuffices(decks, players, rules) {
		decks++
	}
	return decks
}

func deckSuffices(decks, players int, rules Rules) bool {
	explosions := decks * len(JokerCodes)
	defuses := decks * len(Suits)
	regular := decks * (len(Ranks) - 1) * len(Suits)

	return explosions >= players-1 &&
		defuses >= players+rules.DefuseReserve &&
		regular-players*rules.HandSize >= players
}

// CreateDealerPile deals the fetched cards to the seated players and builds the draw pile.
// The draw pile ends up with exactly players-1 explosions.
func CreateDealerPile(game *entity.Game, deckID string, cards []entity.Card, rng Randomizer, rules Rules) error {
	players := game.Players
	if len(players) < entity.MinPlayers {
		return fmt.Errorf("%w: %d seated", apperror.ErrNotEnoughPlayers, len(players))
	}

	var explosions, defuses, regular []entity.Card
	for _, card := range cards {
		card = NewCard(card.Code, card.Image)

		switch card.Kind {
		case entity.KindExplosion:
			explosions = append(explosions, card)
		case entity.KindDefuse:
			defuses = append(defuses, card)
		case entity.KindUnknown:
			continue
		default:
			regular = append(regular, card)
		}
	}

	need := len(players) - 1
	if len(explosions) < need || len(defuses) < len(players) || len(regular) < len(players)*rules.HandSize {
		return fmt.Errorf("%w: %d cards fetched for %d players", apperror.ErrEmptyPile, len(cards), len(players))
	}

	deck := entity.NewDeck(deckID)
	deck.DrawPile = regular

	for i, player := range players {
		hand, err := DrawCards(deck, rules.HandSize)
		if err != nil {
			return fmt.Errorf("failed to deal hand: %w", err)
		}

		deck.Hands[player] = append(hand, defuses[i])
	}

	reserve := min(rules.DefuseReserve, len(defuses)-len(players))
	deck.DrawPile = append(deck.DrawPile, defuses[len(players):len(players)+reserve]...)

	ShuffleDrawPile(deck, rng)

	for _, explosion := range explosions[:need] {
		if err := PlaceExplosionAtPosition(deck, explosion, rng.IntN(len(deck.DrawPile)+1)); err != nil {
			return fmt.Errorf("failed to seed explosion: %w", err)
		}
	}

	ShuffleDrawPile(deck, rng)

	game.Deck = deck

	return nil
}
