package kittens

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

func newDeck(draw ...string) *entity.Deck {
	deck := entity.NewDeck("deck")
	deck.DrawPile = cards(draw...)
	return deck
}

func TestDrawCards(t *testing.T) {
	t.Run("Removes cards from the top", func(t *testing.T) {
		// Given: a draw pile of three cards
		deck := newDeck("KS", "X1", "2H")

		// When: drawing two
		drawn, err := DrawCards(deck, 2)

		// Then: the top two are returned, an explosion being a normal draw
		require.NoError(t, err)
		assert.Equal(t, []string{"KS", "X1"}, entity.CardCodes(drawn))
		assert.Equal(t, []string{"2H"}, entity.CardCodes(deck.DrawPile))
	})

	t.Run("Fails when the pile is too small", func(t *testing.T) {
		// Given: a draw pile of one card
		deck := newDeck("KS")

		// When: drawing two
		drawn, err := DrawCards(deck, 2)

		// Then: nothing is drawn
		require.ErrorIs(t, err, apperror.ErrEmptyPile)
		assert.Nil(t, drawn)
		assert.Len(t, deck.DrawPile, 1)
	})
}

func TestPeekDrawPile(t *testing.T) {
	t.Run("Returns at most the remaining cards without removing them", func(t *testing.T) {
		deck := newDeck("KS", "2H")

		assert.Equal(t, []string{"KS", "2H"}, entity.CardCodes(PeekDrawPile(deck, 3)))
		assert.Len(t, deck.DrawPile, 2)
	})
}

func TestShuffleDrawPile(t *testing.T) {
	t.Run("Keeps the same cards", func(t *testing.T) {
		// Given: a draw pile and a seeded source
		deck := newDeck(StandardDeckCodes()...)
		deck.Hands["alice"] = cards("AS")
		rng := rand.New(rand.NewPCG(1, 2))

		// When: shuffling
		ShuffleDrawPile(deck, rng)

		// Then: only the order changes
		assert.ElementsMatch(t, StandardDeckCodes(), entity.CardCodes(deck.DrawPile))
		assert.Equal(t, []string{"AS"}, entity.CardCodes(deck.Hands["alice"]))
	})
}

func TestRemoveCardsFromHand(t *testing.T) {
	t.Run("Honors duplicate codes", func(t *testing.T) {
		// Given: a hand with two copies of the same code
		deck := newDeck()
		deck.Hands["alice"] = cards("2H", "KS", "2H")

		// When: removing both copies
		removed, err := RemoveCardsFromHand(deck, "alice", []string{"2H", "2H"})

		// Then: both leave the hand
		require.NoError(t, err)
		assert.Equal(t, []string{"2H", "2H"}, entity.CardCodes(removed))
		assert.Equal(t, []string{"KS"}, entity.CardCodes(deck.Hands["alice"]))
	})

	t.Run("Leaves the hand untouched when one card is missing", func(t *testing.T) {
		// Given: a hand with a single copy
		deck := newDeck()
		deck.Hands["alice"] = cards("2H", "KS")

		// When: removing two copies
		_, err := RemoveCardsFromHand(deck, "alice", []string{"2H", "2H"})

		// Then: the hand is unchanged
		require.ErrorIs(t, err, apperror.ErrCardNotInHand)
		assert.Equal(t, []string{"2H", "KS"}, entity.CardCodes(deck.Hands["alice"]))
	})
}

func TestPlaceCardsToPlayPile(t *testing.T) {
	t.Run("Puts played cards on top of the play pile", func(t *testing.T) {
		deck := newDeck()
		deck.PlayPile = cards("9S")
		deck.Hands["alice"] = cards("KS", "6H")

		_, err := PlaceCardsToPlayPile(deck, "alice", []string{"6H"})
		require.NoError(t, err)

		top, ok := TopOfPlayPile(deck)
		require.True(t, ok)
		assert.Equal(t, "6H", top.Code)
		assert.Equal(t, entity.PileStats{
			DrawPile: 0,
			PlayPile: 2,
			Hands:    map[string]int{"alice": 1},
		}, PileStats(deck))
	})

	t.Run("Reports an empty play pile", func(t *testing.T) {
		_, ok := TopOfPlayPile(newDeck())

		assert.False(t, ok)
	})
}

func TestPlaceExplosionAtPosition(t *testing.T) {
	explosion := NewCard("X1", "")

	t.Run("Accepts every position from top to bottom", func(t *testing.T) {
		for position := 0; position <= 2; position++ {
			// Given: a draw pile of two cards
			deck := newDeck("KS", "2H")

			// When: inserting the explosion
			err := PlaceExplosionAtPosition(deck, explosion, position)

			// Then: it sits at the requested index
			require.NoError(t, err)
			assert.Equal(t, "X1", deck.DrawPile[position].Code)
			assert.Len(t, deck.DrawPile, 3)
		}
	})

	t.Run("Rejects positions outside the pile", func(t *testing.T) {
		for _, position := range []int{-1, 3} {
			deck := newDeck("KS", "2H")

			err := PlaceExplosionAtPosition(deck, explosion, position)

			require.ErrorIs(t, err, apperror.ErrInvalidPlacement)
			assert.Len(t, deck.DrawPile, 2)
		}
	})
}
