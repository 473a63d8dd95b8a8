package entity

// Deck holds every pile of a running game.
type Deck struct {
	ID string `json:"id"`

	// DrawPile is the dealer pile, index 0 is the next card to be drawn.
	DrawPile []Card `json:"draw_pile"`

	// PlayPile is the discard pile, the last element is the top card.
	PlayPile []Card `json:"play_pile"`

	Hands map[string][]Card `json:"hands"`
}

func NewDeck(id string) *Deck {
	return &Deck{
		ID:       id,
		DrawPile: []Card{},
		PlayPile: []Card{},
		Hands:    make(map[string][]Card),
	}
}

// PileStats is a snapshot of remaining card counts per pile.
type PileStats struct {
	DrawPile int            `json:"draw_pile"`
	PlayPile int            `json:"play_pile"`
	Hands    map[string]int `json:"hands"`
}
