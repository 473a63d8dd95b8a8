package kittens

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

// AttackTurns is the number of turns an Attack adds for the next player.
const AttackTurns = 2

// NextPlayer returns the player seated after current, wrapping around.
// It is false when current is the last one left or is not in the ring.
func NextPlayer(ring []string, current string) (string, bool) {
	idx := slices.Index(ring, current)
	if idx < 0 || len(ring) < 2 {
		return "", false
	}
	return ring[(idx+1)%len(ring)], true
}

// StartTurns seats every player in the ring, the first seated player moves first.
func StartTurns(game *entity.Game) {
	game.Turn = entity.TurnState{
		Ring: slices.Clone(game.Players),
	}
}

// EndTurn finishes one turn of the requester.
func EndTurn(game *entity.Game, requester string) (entity.Event, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return entity.Event{}, err
	}

	if current := game.CurrentTurn(); current != requester {
		return entity.Event{}, fmt.Errorf("%w: turn of %s", apperror.ErrNotYourTurn, current)
	}

	if game.PendingExplosion != "" {
		return entity.Event{}, apperror.ErrDefuseRequired
	}

	endTurn(&game.Turn)

	return turnChanged(game), nil
}

// GrantExtraTurns queues n turns for the successor of the active player.
func GrantExtraTurns(turn *entity.TurnState, n int) {
	if n > 0 {
		turn.Granted += n
	}
}

// AdvanceTurn passes the turn to the successor regardless of owed turns.
func AdvanceTurn(turn *entity.TurnState) {
	if len(turn.Ring) == 0 {
		return
	}

	if next, ok := NextPlayer(turn.Ring, turn.Current()); ok {
		turn.Active = turn.IndexOf(next)
	}
	turn.Pending = turn.Granted
	turn.Granted = 0
}

// RemoveFromRing takes the player out of the ring. When the player was active the
// successor takes the turn with nothing owed.
func RemoveFromRing(turn *entity.TurnState, player string) bool {
	idx := turn.IndexOf(player)
	if idx < 0 {
		return false
	}

	turn.Ring = slices.Delete(slices.Clone(turn.Ring), idx, idx+1)

	switch {
	case len(turn.Ring) == 0:
		turn.Active, turn.Pending, turn.Granted = 0, 0, 0
	case idx == turn.Active:
		turn.Active = idx % len(turn.Ring)
		turn.Pending, turn.Granted = 0, 0
	case idx < turn.Active:
		turn.Active--
	}

	return true
}

func endTurn(turn *entity.TurnState) {
	if turn.Pending > 0 {
		turn.Pending--
		return
	}
	AdvanceTurn(turn)
}

func turnChanged(game *entity.Game) entity.Event {
	return entity.NewEvent(game.ID, entity.EventTurnChanged, entity.TurnChangedPayload{
		Player:  game.CurrentTurn(),
		Pending: game.Turn.Pending,
	})
}
