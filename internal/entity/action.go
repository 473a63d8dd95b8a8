package entity

// PlayAction is the inbound card-move request of a player.
type PlayAction struct {
	GameID         string   `json:"game_id"`
	UserID         string   `json:"user_id"`
	CardCodes      []string `json:"cards"`
	TargetUsername string   `json:"target_username,omitempty"`
	RequestedCard  string   `json:"requested_card,omitempty"`
	Position       *int     `json:"position,omitempty"`
}

// Play returns the resolver input of the action.
func (that PlayAction) Play() Play {
	return Play{
		Cards:         that.CardCodes,
		Target:        that.TargetUsername,
		RequestedCard: that.RequestedCard,
		Position:      that.Position,
	}
}

// Play is one or more cards played together with optional parameters.
type Play struct {
	Cards         []string
	Target        string
	RequestedCard string

	// Position is where a defused explosion goes back into the draw pile, 0 is the top.
	Position *int
}

// Action is a resolved play a Nope can still revert.
type Action struct {
	Player string   `json:"player"`
	Kind   CardKind `json:"kind"`
	Cards  []string `json:"cards"`
	Revert Reversal `json:"revert"`
}

// Reversal holds the state an action replaced. Applying it swaps the values back.
type Reversal struct {
	Turn     *TurnState `json:"turn,omitempty"`
	DrawPile []Card     `json:"draw_pile,omitempty"`
	Transfer *Transfer  `json:"transfer,omitempty"`
}

// Transfer is a card that moved between two hands.
type Transfer struct {
	From string `json:"from"`
	To   string `json:"to"`
	Card Card   `json:"card"`
}

type User struct {
	Username string `json:"username"`
}
