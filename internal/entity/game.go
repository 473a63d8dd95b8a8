package entity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
)

const (
	StatusPreparing = "preparing"
	StatusOngoing   = "ongoing"
	StatusFinished  = "finished"
)

const (
	ModeNormal = "normal"
	ModeTeam   = "team"
)

const MinPlayers = 2

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID         string   `json:"id"`
	Mode       string   `json:"mode"`
	MaxPlayers int      `json:"max_players"`
	Players    []string `json:"players"`
	Status     string   `json:"status"`
	Winner     string   `json:"winner,omitempty"`

	Turn TurnState `json:"turn"`
	Deck *Deck     `json:"deck,omitempty"`

	// PendingExplosion names the player holding a drawn, not yet defused explosion.
	PendingExplosion string `json:"pending_explosion,omitempty"`

	// LastAction is the most recent play that a Nope can still revert.
	LastAction *Action `json:"last_action,omitempty"`

	Eliminations []Elimination `json:"eliminations,omitempty"`
}

// Elimination records a player leaving the ring, in order.
type Elimination struct {
	Player   string `json:"player"`
	Departed bool   `json:"departed,omitempty"`
}

func NewGame(id, mode string, maxPlayers int) *Game {
	return &Game{
		ID:         id,
		Mode:       mode,
		MaxPlayers: maxPlayers,
		Players:    []string{},
		Status:     StatusPreparing,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsPreparing() bool {
	return that.Status == StatusPreparing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsOngoing():
		return nil
	case that.IsPreparing(), that.IsFinished():
		return fmt.Errorf("%w: game %s is %s", apperror.ErrInvalidTransition, that.ID, that.Status)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// CurrentTurn returns the active player while the game is ongoing.
func (that *Game) CurrentTurn() string {
	if !that.IsOngoing() {
		return ""
	}
	return that.Turn.Current()
}

func (that *Game) IsSeated(player string) bool {
	return slices.Contains(that.Players, player)
}

// IsAlive reports whether the player is still in the turn ring.
func (that *Game) IsAlive(player string) bool {
	return that.Turn.Contains(player)
}

func (that *Game) IsFull() bool {
	return len(that.Players) >= that.MaxPlayers
}

// Seat appends the player to the seating order.
func (that *Game) Seat(player string) error {
	if that.IsSeated(player) {
		return nil
	}

	if that.IsFull() {
		return fmt.Errorf("%w: %d of %d seats taken", apperror.ErrGameFull, len(that.Players), that.MaxPlayers)
	}

	that.Players = append(that.Players, player)

	return nil
}

// Unseat removes a player from the seating order before the game starts.
func (that *Game) Unseat(player string) {
	that.Players = slices.DeleteFunc(that.Players, func(p string) bool { return p == player })
}

// Hand returns the cards held by the player.
func (that *Game) Hand(player string) []Card {
	if that.Deck == nil {
		return nil
	}
	return that.Deck.Hands[player]
}

// Summary is the public view of a game, without any hidden cards.
type Summary struct {
	ID          string   `json:"id"`
	Mode        string   `json:"mode"`
	MaxPlayers  int      `json:"max_players"`
	Players     []string `json:"players"`
	Status      string   `json:"status"`
	Ring        []string `json:"ring,omitempty"`
	CurrentTurn string   `json:"current_turn,omitempty"`
	Winner      string   `json:"winner,omitempty"`
}

func (that *Game) Summary() Summary {
	return Summary{
		ID:          that.ID,
		Mode:        that.Mode,
		MaxPlayers:  that.MaxPlayers,
		Players:     that.Players,
		Status:      that.Status,
		Ring:        that.Turn.Ring,
		CurrentTurn: that.CurrentTurn(),
		Winner:      that.Winner,
	}
}
