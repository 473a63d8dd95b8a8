package kittens

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

// FutureSize is the number of cards revealed by See the Future.
const FutureSize = 3

// Outcome is the result of a resolved play or draw.
type Outcome struct {
	Kind       entity.CardKind
	Events     []entity.Event
	Eliminated []string
	Finished   bool
}

func (that *Outcome) add(events ...entity.Event) {
	that.Events = append(that.Events, events...)
}

// ResolvePlay validates and applies a play of one to three cards. On error the game is
// left untouched.
func ResolvePlay(game *entity.Game, player string, play entity.Play, rng Randomizer) (*Outcome, error) {
	cards, err := validatePlay(game, player, play)
	if err != nil {
		return nil, err
	}

	kind := cards[0].Kind

	if len(cards) == 1 && kind == entity.KindNope {
		return resolveNope(game, player, cards)
	}

	if current := game.CurrentTurn(); current != player {
		return nil, fmt.Errorf("%w: turn of %s", apperror.ErrNotYourTurn, current)
	}

	if game.PendingExplosion == player {
		if kind != entity.KindDefuse || len(cards) != 1 {
			return nil, apperror.ErrDefuseRequired
		}
		return resolveDefuse(game, player, cards, play.Position)
	}

	if len(cards) > 1 {
		return resolveCombo(game, player, cards, play, rng)
	}

	switch kind {
	case entity.KindAttack:
		return resolveAttack(game, player, cards)
	case entity.KindSkip:
		return resolveSkip(game, player, cards)
	case entity.KindFavor:
		return resolveFavor(game, player, cards, play, rng)
	case entity.KindShuffle:
		return resolveShuffle(game, player, cards, rng)
	case entity.KindSeeTheFuture:
		return resolveSeeTheFuture(game, player, cards)
	case entity.KindDefuse:
		return nil, apperror.ErrNoExplosionPending
	default:
		return nil, fmt.Errorf("%w: %s cannot be played alone", apperror.ErrInvalidCombination, kind)
	}
}

func validatePlay(game *entity.Game, player string, play entity.Play) ([]entity.Card, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if !game.IsSeated(player) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUserNotInGame, player)
	}

	if !game.IsAlive(player) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrPlayerEliminated, player)
	}

	if len(play.Cards) == 0 || len(play.Cards) > 3 {
		return nil, fmt.Errorf("%w: %d cards", apperror.ErrInvalidCombination, len(play.Cards))
	}

	cards, err := CardsInHand(game.Deck, player, play.Cards)
	if err != nil {
		return nil, err
	}

	for _, card := range cards[1:] {
		if card.Kind != cards[0].Kind {
			return nil, fmt.Errorf("%w: mixed %s and %s", apperror.ErrInvalidCombination, cards[0].Kind, card.Kind)
		}
	}

	return cards, nil
}

func validateTarget(game *entity.Game, player, target string) error {
	switch {
	case target == "" || target == player:
		return fmt.Errorf("%w: %q", apperror.ErrInvalidTarget, target)
	case !game.IsAlive(target):
		return fmt.Errorf("%w: %s is not in the game", apperror.ErrInvalidTarget, target)
	case len(game.Hand(target)) == 0:
		return fmt.Errorf("%w: %s has no cards", apperror.ErrInvalidTarget, target)
	}
	return nil
}

func resolveAttack(game *entity.Game, player string, cards []entity.Card) (*Outcome, error) {
	before := game.Turn.Clone()

	played, err := PlaceCardsToPlayPile(game.Deck, player, entity.CardCodes(cards))
	if err != nil {
		return nil, err
	}

	GrantExtraTurns(&game.Turn, game.Turn.Pending+AttackTurns)
	AdvanceTurn(&game.Turn)

	remember(game, player, entity.KindAttack, played, entity.Reversal{Turn: &before})

	outcome := &Outcome{Kind: entity.KindAttack}
	outcome.add(cardPlayed(game, player, played, ""), turnChanged(game))

	return outcome, nil
}

func resolveSkip(game *entity.Game, player string, cards []entity.Card) (*Outcome, error) {
	before := game.Turn.Clone()

	played, err := PlaceCardsToPlayPile(game.Deck, player, entity.CardCodes(cards))
	if err != nil {
		return nil, err
	}

	endTurn(&game.Turn)

	remember(game, player, entity.KindSkip, played, entity.Reversal{Turn: &before})

	outcome := &Outcome{Kind: entity.KindSkip}
	outcome.add(cardPlayed(game, player, played, ""), turnChanged(game))

	return outcome, nil
}

func resolveFavor(game *entity.Game, player string, cards []entity.Card, play entity.Play, rng Randomizer) (*Outcome, error) {
	if err := validateTarget(game, player, play.Target); err != nil {
		return nil, err
	}

	played, err := PlaceCardsToPlayPile(game.Deck, player, entity.CardCodes(cards))
	if err != nil {
		return nil, err
	}

	transfer, err := steal(game.Deck, play.Target, player, play.RequestedCard, rng)
	if err != nil {
		return nil, err
	}

	remember(game, player, entity.KindFavor, played, entity.Reversal{Transfer: &transfer})

	outcome := &Outcome{Kind: entity.KindFavor}
	outcome.add(cardPlayed(game, player, played, play.Target))
	outcome.add(cardStolen(game.ID, transfer)...)

	return outcome, nil
}

func resolveShuffle(game *entity.Game, player string, cards []entity.Card, rng Randomizer) (*Outcome, error) {
	before := slices.Clone(game.Deck.DrawPile)

	played, err := PlaceCardsToPlayPile(game.Deck, player, entity.CardCodes(cards))
	if err != nil {
		return nil, err
	}

	ShuffleDrawPile(game.Deck, rng)

	remember(game, player, entity.KindShuffle, played, entity.Reversal{DrawPile: before})

	outcome := &Outcome{Kind: entity.KindShuffle}
	outcome.add(cardPlayed(game, player, played, ""))

	return outcome, nil
}

func resolveSeeTheFuture(game *entity.Game, player string, cards []entity.Card) (*Outcome, error) {
	played, err := PlaceCardsToPlayPile(game.Deck, player, entity.CardCodes(cards))
	if err != nil {
		return nil, err
	}

	remember(game, player, entity.KindSeeTheFuture, played, entity.Reversal{})

	outcome := &Outcome{Kind: entity.KindSeeTheFuture}
	outcome.add(
		cardPlayed(game, player, played, ""),
		entity.NewPrivateEvent(game.ID, player, entity.EventFutureRevealed, entity.FutureRevealedPayload{
			Cards: PeekDrawPile(game.Deck, FutureSize),
		}),
	)

	return outcome, nil
}

func resolveCombo(game *entity.Game, player string, cards []entity.Card, play entity.Play, rng Randomizer) (*Outcome, error) {
	kind := cards[0].Kind
	if !kind.IsCat() {
		return nil, fmt.Errorf("%w: %d x %s", apperror.ErrInvalidCombination, len(cards), kind)
	}

	if err := validateTarget(game, player, play.Target); err != nil {
		return nil, err
	}

	requested := ""
	if len(cards) == 3 {
		if play.RequestedCard == "" {
			return nil, fmt.Errorf("%w: three of a kind needs a requested card", apperror.ErrInvalidCombination)
		}
		requested = play.RequestedCard
	}

	played, err := PlaceCardsToPlayPile(game.Deck, player, entity.CardCodes(cards))
	if err != nil {
		return nil, err
	}

	transfer, err := steal(game.Deck, play.Target, player, requested, rng)
	if err != nil {
		return nil, err
	}

	remember(game, player, kind, played, entity.Reversal{Transfer: &transfer})

	outcome := &Outcome{Kind: kind}
	outcome.add(cardPlayed(game, player, played, play.Target))
	outcome.add(cardStolen(game.ID, transfer)...)

	return outcome, nil
}

func resolveDefuse(game *entity.Game, player string, cards []entity.Card, position *int) (*Outcome, error) {
	if position == nil {
		return nil, fmt.Errorf("%w: position is required", apperror.ErrInvalidPlacement)
	}

	if err := validatePlacement(game.Deck, *position); err != nil {
		return nil, err
	}

	explosion, ok := explosionInHand(game.Deck, player)
	if !ok {
		return nil, apperror.ErrNoExplosionPending
	}

	played, err := PlaceCardsToPlayPile(game.Deck, player, entity.CardCodes(cards))
	if err != nil {
		return nil, err
	}

	if _, err = RemoveCardsFromHand(game.Deck, player, []string{explosion.Code}); err != nil {
		return nil, err
	}

	if err = PlaceExplosionAtPosition(game.Deck, explosion, *position); err != nil {
		return nil, err
	}

	game.PendingExplosion = ""
	game.LastAction = nil
	endTurn(&game.Turn)

	outcome := &Outcome{Kind: entity.KindDefuse}
	outcome.add(
		cardPlayed(game, player, played, ""),
		entity.NewEvent(game.ID, entity.EventExplosionDefused, entity.ExplosionDefusedPayload{Player: player}),
		turnChanged(game),
	)

	return outcome, nil
}

// ResolveDraw draws the top card for the active player, which ends the turn unless the
// card is an explosion.
func ResolveDraw(game *entity.Game, player string, rng Randomizer) (*Outcome, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if !game.IsSeated(player) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUserNotInGame, player)
	}

	if current := game.CurrentTurn(); current != player {
		return nil, fmt.Errorf("%w: turn of %s", apperror.ErrNotYourTurn, current)
	}

	if game.PendingExplosion != "" {
		return nil, apperror.ErrDefuseRequired
	}

	drawn, err := DrawCards(game.Deck, 1)
	if err != nil {
		return nil, err
	}

	card := drawn[0]
	game.LastAction = nil

	outcome := &Outcome{Kind: card.Kind}
	outcome.add(
		entity.NewEvent(game.ID, entity.EventCardsDrawn, entity.CardsDrawnPayload{Player: player, Count: 1}),
		entity.NewPrivateEvent(game.ID, player, entity.EventCardsDrawn, entity.CardsDrawnPayload{
			Player: player,
			Count:  1,
			Cards:  drawn,
		}),
	)

	if !card.IsExplosion() {
		AddCardsToHand(game.Deck, player, card)

		changed, err := EndTurn(game, player)
		if err != nil {
			return nil, err
		}
		outcome.add(changed)

		return outcome, nil
	}

	if CountKind(game.Hand(player), entity.KindDefuse) > 0 {
		AddCardsToHand(game.Deck, player, card)
		game.PendingExplosion = player
		outcome.add(entity.NewEvent(game.ID, entity.EventExplosionPending, entity.ExplosionPendingPayload{Player: player}))

		return outcome, nil
	}

	game.Deck.PlayPile = append(game.Deck.PlayPile, game.Hand(player)...)
	game.Deck.PlayPile = append(game.Deck.PlayPile, card)
	game.Deck.Hands[player] = []entity.Card{}

	eliminate(game, player, false, outcome)

	return outcome, nil
}

func explosionInHand(deck *entity.Deck, player string) (entity.Card, bool) {
	for _, card := range deck.Hands[player] {
		if card.IsExplosion() {
			return card, true
		}
	}
	return entity.Card{}, false
}

// steal moves the requested card from victim to thief, or a random one when the victim
// does not hold it.
func steal(deck *entity.Deck, victim, thief, requested string, rng Randomizer) (entity.Transfer, error) {
	hand := deck.Hands[victim]
	if len(hand) == 0 {
		return entity.Transfer{}, fmt.Errorf("%w: %s has no cards", apperror.ErrInvalidTarget, victim)
	}

	idx := slices.IndexFunc(hand, func(card entity.Card) bool { return card.Code == requested })
	if requested == "" || idx < 0 {
		idx = rng.IntN(len(hand))
	}

	card := hand[idx]
	if err := transferCard(deck, victim, thief, card); err != nil {
		return entity.Transfer{}, err
	}

	return entity.Transfer{From: victim, To: thief, Card: card}, nil
}

func remember(game *entity.Game, player string, kind entity.CardKind, played []entity.Card, revert entity.Reversal) {
	game.LastAction = &entity.Action{
		Player: player,
		Kind:   kind,
		Cards:  entity.CardCodes(played),
		Revert: revert,
	}
}

func cardPlayed(game *entity.Game, player string, cards []entity.Card, target string) entity.Event {
	kind := entity.KindUnknown
	if len(cards) > 0 {
		kind = cards[0].Kind
	}

	return entity.NewEvent(game.ID, entity.EventCardPlayed, entity.CardPlayedPayload{
		Player: player,
		Cards:  cards,
		Kind:   kind,
		Target: target,
	})
}

// cardStolen addresses both hands involved in the transfer.
func cardStolen(gameID string, transfer entity.Transfer) []entity.Event {
	payload := entity.CardStolenPayload{From: transfer.From, To: transfer.To, Card: transfer.Card}

	return []entity.Event{
		entity.NewPrivateEvent(gameID, transfer.To, entity.EventCardStolen, payload),
		entity.NewPrivateEvent(gameID, transfer.From, entity.EventCardStolen, payload),
	}
}
