// Package kittens implements the rules of the game: the card catalog, pile bookkeeping,
// turn order and card effects. Functions here operate on entity values only and never
// perform I/O.
package kittens

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

const imageURLFormat = "https://deckofcardsapi.com/static/img/%s.png"

var rankKinds = map[byte]entity.CardKind{
	'A': entity.KindDefuse,
	'2': entity.KindTacoCat,
	'3': entity.KindCattermelon,
	'4': entity.KindHairyPotatoCat,
	'5': entity.KindBeardCat,
	'6': entity.KindShuffle,
	'7': entity.KindSeeTheFuture,
	'8': entity.KindFavor,
	'9': entity.KindSkip,
	'0': entity.KindNope,
	'J': entity.KindNope,
	'Q': entity.KindSkip,
	'K': entity.KindAttack,
}

var rankValues = map[byte]int{
	'A': 1, '2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7,
	'8': 8, '9': 9, '0': 10, 'J': 11, 'Q': 12, 'K': 13,
}

var (
	Suits = []byte{'S', 'H', 'D', 'C'}
	Ranks = []byte{'A', '2', '3', '4', '5', '6', '7', '8', '9', '0', 'J', 'Q', 'K'}

	JokerCodes = []string{"X1", "X2"}
)

// Classify maps a card code to its kind. Unknown codes map to KindUnknown.
func Classify(code string) entity.CardKind {
	if isJoker(code) {
		return entity.KindExplosion
	}

	if len(code) != 2 || !isSuit(code[1]) {
		return entity.KindUnknown
	}

	kind, ok := rankKinds[code[0]]
	if !ok {
		return entity.KindUnknown
	}

	return kind
}

// CardValue returns the point value of a card code, 0 for jokers and unknown codes.
func CardValue(code string) int {
	if len(code) != 2 || !isSuit(code[1]) {
		return 0
	}
	return rankValues[code[0]]
}

// NewCard builds a card from its code. An empty image gets the public card image.
func NewCard(code, image string) entity.Card {
	if image == "" {
		image = imageURL(code)
	}

	return entity.Card{
		Code:  code,
		Kind:  Classify(code),
		Value: CardValue(code),
		Image: image,
	}
}

// StandardDeckCodes returns the 54 codes of one deck, jokers included.
func StandardDeckCodes() []string {
	codes := make([]string, 0, len(Ranks)*len(Suits)+len(JokerCodes))
	for _, suit := range Suits {
		for _, rank := range Ranks {
			codes = append(codes, string([]byte{rank, suit}))
		}
	}
	return append(codes, JokerCodes...)
}

func isJoker(code string) bool {
	return lo.Contains(JokerCodes, code)
}

func isSuit(b byte) bool {
	return lo.Contains(Suits, b)
}

func imageURL(code string) string {
	return fmt.Sprintf(imageURLFormat, code)
}
