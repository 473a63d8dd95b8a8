package entity

// TurnState is the seating ring of players still in the game.
type TurnState struct {
	Ring   []string `json:"ring"`
	Active int      `json:"active"`

	// Pending is the number of extra turns the active player still owes.
	Pending int `json:"pending"`

	// Granted is queued for the successor and becomes its Pending when the ring advances.
	Granted int `json:"granted,omitempty"`
}

// Current returns the active player, or "" when the ring is empty.
func (that *TurnState) Current() string {
	if that.Active < 0 || that.Active >= len(that.Ring) {
		return ""
	}
	return that.Ring[that.Active]
}

func (that *TurnState) Contains(player string) bool {
	return that.IndexOf(player) >= 0
}

func (that *TurnState) IndexOf(player string) int {
	for i, p := range that.Ring {
		if p == player {
			return i
		}
	}
	return -1
}

func (that *TurnState) Clone() TurnState {
	ring := make([]string, len(that.Ring))
	copy(ring, that.Ring)
	return TurnState{
		Ring:    ring,
		Active:  that.Active,
		Pending: that.Pending,
		Granted: that.Granted,
	}
}
