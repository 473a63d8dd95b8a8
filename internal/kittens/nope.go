package kittens

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

func resolveNope(game *entity.Game, player string, cards []entity.Card) (*Outcome, error) {
	last := game.LastAction
	if last == nil {
		return nil, apperror.ErrNothingToNope
	}

	codes := entity.CardCodes(cards)

	if transfer := last.Revert.Transfer; transfer != nil {
		if err := checkTransferReversible(game.Deck, player, codes, transfer); err != nil {
			return nil, err
		}
	}

	played, err := PlaceCardsToPlayPile(game.Deck, player, codes)
	if err != nil {
		return nil, err
	}

	inverse := applyReversal(game, last.Revert)

	game.LastAction = &entity.Action{
		Player: player,
		Kind:   entity.KindNope,
		Cards:  codes,
		Revert: inverse,
	}

	outcome := &Outcome{Kind: entity.KindNope}
	outcome.add(cardPlayed(game, player, played, ""))
	outcome.add(entity.NewEvent(game.ID, entity.EventPlayNoped, entity.PlayNopedPayload{
		Player: player,
		Noped:  last.Player,
		Kind:   last.Kind,
	}))

	if inverse.Transfer != nil {
		outcome.add(cardStolen(game.ID, *inverse.Transfer)...)
	}

	if inverse.Turn != nil {
		outcome.add(turnChanged(game))
	}

	return outcome, nil
}

// checkTransferReversible makes sure the transferred card can go back once the Nope
// card has left the noper's hand.
func checkTransferReversible(deck *entity.Deck, player string, codes []string, transfer *entity.Transfer) error {
	hand := deck.Hands[transfer.To]
	if player == transfer.To {
		remaining, _, ok := takeByCode(hand, codes)
		if !ok {
			return fmt.Errorf("%w: player %s, cards %v", apperror.ErrCardNotInHand, player, codes)
		}
		hand = remaining
	}

	if _, _, ok := takeByCode(hand, []string{transfer.Card.Code}); !ok {
		return fmt.Errorf("%w: %s no longer holds %s", apperror.ErrNothingToNope, transfer.To, transfer.Card.Code)
	}

	return nil
}

// applyReversal restores the values held by rev and returns the values it replaced.
func applyReversal(game *entity.Game, rev entity.Reversal) entity.Reversal {
	var inverse entity.Reversal

	if rev.Turn != nil {
		current := game.Turn.Clone()
		game.Turn = rev.Turn.Clone()
		inverse.Turn = &current
	}

	if rev.DrawPile != nil {
		inverse.DrawPile = slices.Clone(game.Deck.DrawPile)
		game.Deck.DrawPile = slices.Clone(rev.DrawPile)
	}

	if t := rev.Transfer; t != nil {
		// checked by the caller
		_ = transferCard(game.Deck, t.To, t.From, t.Card)
		inverse.Transfer = &entity.Transfer{From: t.To, To: t.From, Card: t.Card}
	}

	return inverse
}
