package kittens

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

// DrawCards removes and returns the top n cards of the draw pile.
func DrawCards(deck *entity.Deck, n int) ([]entity.Card, error) {
	if n < 0 || n > len(deck.DrawPile) {
		return nil, fmt.Errorf("%w: want %d, have %d", apperror.ErrEmptyPile, n, len(deck.DrawPile))
	}

	drawn := slices.Clone(deck.DrawPile[:n])
	deck.DrawPile = slices.Clone(deck.DrawPile[n:])

	return drawn, nil
}

// PeekDrawPile returns up to n top cards without removing them.
func PeekDrawPile(deck *entity.Deck, n int) []entity.Card {
	n = min(max(n, 0), len(deck.DrawPile))
	return slices.Clone(deck.DrawPile[:n])
}

// ShuffleDrawPile re-randomizes the draw pile. Hands and the play pile are untouched.
func ShuffleDrawPile(deck *entity.Deck, rng Randomizer) {
	pile := deck.DrawPile
	rng.Shuffle(len(pile), func(i, j int) {
		pile[i], pile[j] = pile[j], pile[i]
	})
}

func AddCardsToHand(deck *entity.Deck, player string, cards ...entity.Card) {
	if deck.Hands == nil {
		deck.Hands = make(map[string][]entity.Card)
	}
	deck.Hands[player] = append(deck.Hands[player], cards...)
}

// HoldsCards reports whether the hand contains every code, counting duplicates.
func HoldsCards(deck *entity.Deck, player string, codes []string) bool {
	_, _, ok := takeByCode(deck.Hands[player], codes)
	return ok
}

// CardsInHand returns the hand cards matching codes, in the order of codes.
func CardsInHand(deck *entity.Deck, player string, codes []string) ([]entity.Card, error) {
	_, taken, ok := takeByCode(deck.Hands[player], codes)
	if !ok {
		return nil, fmt.Errorf("%w: player %s, cards %v", apperror.ErrCardNotInHand, player, codes)
	}
	return taken, nil
}

// RemoveCardsFromHand takes the cards out of the hand. On error the hand is unchanged.
func RemoveCardsFromHand(deck *entity.Deck, player string, codes []string) ([]entity.Card, error) {
	remaining, taken, ok := takeByCode(deck.Hands[player], codes)
	if !ok {
		return nil, fmt.Errorf("%w: player %s, cards %v", apperror.ErrCardNotInHand, player, codes)
	}

	deck.Hands[player] = remaining

	return taken, nil
}

// PlaceCardsToPlayPile moves cards from the hand onto the top of the play pile.
func PlaceCardsToPlayPile(deck *entity.Deck, player string, codes []string) ([]entity.Card, error) {
	cards, err := RemoveCardsFromHand(deck, player, codes)
	if err != nil {
		return nil, err
	}

	deck.PlayPile = append(deck.PlayPile, cards...)

	return cards, nil
}

// TopOfPlayPile returns the most recently played card.
func TopOfPlayPile(deck *entity.Deck) (entity.Card, bool) {
	if len(deck.PlayPile) == 0 {
		return entity.Card{}, false
	}
	return deck.PlayPile[len(deck.PlayPile)-1], true
}

func PileStats(deck *entity.Deck) entity.PileStats {
	hands := make(map[string]int, len(deck.Hands))
	for player, hand := range deck.Hands {
		hands[player] = len(hand)
	}

	return entity.PileStats{
		DrawPile: len(deck.DrawPile),
		PlayPile: len(deck.PlayPile),
		Hands:    hands,
	}
}

// PlaceExplosionAtPosition inserts the card into the draw pile, 0 being the next draw.
func PlaceExplosionAtPosition(deck *entity.Deck, card entity.Card, index int) error {
	if err := validatePlacement(deck, index); err != nil {
		return err
	}

	deck.DrawPile = slices.Insert(deck.DrawPile, index, card)

	return nil
}

func validatePlacement(deck *entity.Deck, index int) error {
	if index < 0 || index > len(deck.DrawPile) {
		return fmt.Errorf("%w: position %d outside [0, %d]", apperror.ErrInvalidPlacement, index, len(deck.DrawPile))
	}
	return nil
}

// CountKind counts the cards of the given kind.
func CountKind(cards []entity.Card, kind entity.CardKind) int {
	return lo.CountBy(cards, func(card entity.Card) bool { return card.Kind == kind })
}

// takeByCode removes one card per code from hand, leaving hand itself untouched.
func takeByCode(hand []entity.Card, codes []string) ([]entity.Card, []entity.Card, bool) {
	used := make([]bool, len(hand))
	taken := make([]entity.Card, 0, len(codes))

	for _, code := range codes {
		idx := -1
		for i, card := range hand {
			if !used[i] && card.Code == code {
				idx = i
				break
			}
		}

		if idx < 0 {
			return nil, nil, false
		}

		used[idx] = true
		taken = append(taken, hand[idx])
	}

	remaining := make([]entity.Card, 0, len(hand)-len(taken))
	for i, card := range hand {
		if !used[i] {
			remaining = append(remaining, card)
		}
	}

	return remaining, taken, true
}

// transferCard moves a specific card between hands.
func transferCard(deck *entity.Deck, from, to string, card entity.Card) error {
	if _, err := RemoveCardsFromHand(deck, from, []string{card.Code}); err != nil {
		return err
	}

	AddCardsToHand(deck, to, card)

	return nil
}
