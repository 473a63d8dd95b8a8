package apperror

import "errors"

var (
	ErrInvalidTransition         = errors.New("invalid game state transition")
	ErrNotYourTurn               = errors.New("it's not your turn")
	ErrCardNotInHand             = errors.New("card is not in hand")
	ErrInvalidPlacement          = errors.New("invalid explosion placement")
	ErrNothingToNope             = errors.New("nothing to nope")
	ErrNoExplosionPending        = errors.New("no explosion pending")
	ErrUserNotInGame             = errors.New("user is not in game")
	ErrEmptyPile                 = errors.New("not enough cards in pile")
	ErrExternalSourceUnavailable = errors.New("external card source unavailable")

	ErrGameNotFound        = errors.New("game not found")
	ErrGameFull            = errors.New("game is full")
	ErrInvalidCombination  = errors.New("invalid card combination")
	ErrInvalidTarget       = errors.New("invalid target player")
	ErrDefuseRequired      = errors.New("explosion must be defused first")
	ErrPlayerEliminated    = errors.New("player is eliminated")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotEnoughPlayers    = errors.New("not enough players to start")
	ErrInvalidGameSettings = errors.New("invalid game settings")
	ErrMalformedRequest    = errors.New("malformed request")
	ErrServerBusy          = errors.New("server is busy")
)
