package cardsource

import (
	"context"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/kittens-backend/internal/entity"
	"github.com/rocketscienceinc/kittens-backend/internal/kittens"
)

// LocalSource builds decks in process, for offline runs and tests.
type LocalSource struct {
	rng kittens.Randomizer
}

func NewLocalSource(rng kittens.Randomizer) *LocalSource {
	if rng == nil {
		rng = kittens.DefaultRandomizer
	}
	return &LocalSource{rng: rng}
}

func (that *LocalSource) FetchShuffledDeck(ctx context.Context, deckCount int) (string, []entity.Card, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	codes := kittens.StandardDeckCodes()
	cards := make([]entity.Card, 0, deckCount*len(codes))
	for range deckCount {
		for _, code := range codes {
			cards = append(cards, kittens.NewCard(code, ""))
		}
	}

	that.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return "local-" + uuid.NewString(), cards, nil
}
