package entity

// CardKind is the semantic family of a card, derived from its code.
type CardKind string

const (
	KindUnknown        CardKind = "unknown"
	KindDefuse         CardKind = "defuse"
	KindExplosion      CardKind = "explosion"
	KindAttack         CardKind = "attack"
	KindSkip           CardKind = "skip"
	KindFavor          CardKind = "favor"
	KindShuffle        CardKind = "shuffle"
	KindSeeTheFuture   CardKind = "see_the_future"
	KindNope           CardKind = "nope"
	KindTacoCat        CardKind = "taco_cat"
	KindCattermelon    CardKind = "cattermelon"
	KindHairyPotatoCat CardKind = "hairy_potato_cat"
	KindBeardCat       CardKind = "beard_cat"
)

// IsCat reports whether the kind is one of the pairable cat kinds.
func (that CardKind) IsCat() bool {
	switch that {
	case KindTacoCat, KindCattermelon, KindHairyPotatoCat, KindBeardCat:
		return true
	default:
		return false
	}
}

// Card is an immutable playing card. Kind is always derived from Code.
type Card struct {
	Code  string   `json:"code"`
	Kind  CardKind `json:"kind"`
	Value int      `json:"value"`
	Image string   `json:"image,omitempty"`
}

func (that Card) IsExplosion() bool {
	return that.Kind == KindExplosion
}

func (that Card) IsDefuse() bool {
	return that.Kind == KindDefuse
}

// CardCodes returns the codes of cards, keeping order.
func CardCodes(cards []Card) []string {
	codes := make([]string, 0, len(cards))
	for _, card := range cards {
		codes = append(codes, card.Code)
	}
	return codes
}
