package apperror

import "errors"

// Code is the stable, client facing name of an error.
type Code string

const (
	CodeInternal     Code = "internal"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeForbidden    Code = "forbidden"
	CodeInvalidMove  Code = "invalid_move"
	CodeBadRequest   Code = "bad_request"
	CodeUnavailable  Code = "unavailable"
)

var codes = []struct {
	err  error
	code Code
}{
	{ErrUnauthorized, CodeUnauthorized},
	{ErrGameNotFound, CodeNotFound},
	{ErrUserNotInGame, CodeForbidden},
	{ErrPlayerEliminated, CodeForbidden},
	{ErrGameFull, CodeConflict},
	{ErrInvalidTransition, CodeConflict},
	{ErrNotEnoughPlayers, CodeConflict},
	{ErrNotYourTurn, CodeInvalidMove},
	{ErrCardNotInHand, CodeInvalidMove},
	{ErrInvalidPlacement, CodeInvalidMove},
	{ErrNothingToNope, CodeInvalidMove},
	{ErrNoExplosionPending, CodeInvalidMove},
	{ErrInvalidCombination, CodeInvalidMove},
	{ErrInvalidTarget, CodeInvalidMove},
	{ErrDefuseRequired, CodeInvalidMove},
	{ErrEmptyPile, CodeInvalidMove},
	{ErrInvalidGameSettings, CodeBadRequest},
	{ErrMalformedRequest, CodeBadRequest},
	{ErrExternalSourceUnavailable, CodeUnavailable},
	{ErrServerBusy, CodeUnavailable},
}

// CodeOf returns the code of the first known error in the chain of err.
func CodeOf(err error) Code {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}
