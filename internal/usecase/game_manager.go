package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/broadcast"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
	"github.com/rocketscienceinc/kittens-backend/internal/kittens"
	"github.com/rocketscienceinc/kittens-backend/internal/pkg"
)

const maxIDAttempts = 10

var ErrGameIDExhausted = errors.New("could not allocate a free game id")

// GameManager owns every state transition of a game. Mutations of one game are
// serialized by a per-game lock, different games proceed in parallel.
type GameManager struct {
	logger *slog.Logger

	gameRepo   gameRepoDep
	deckSource deckSourceDep
	publisher  publisherDep
	statsRepo  statsRepoDep

	locks *pkg.KeyedMutex
	rules kittens.Rules
	rng   kittens.Randomizer
	newID func() (string, error)
}

type Option func(*GameManager)

func WithRandomizer(rng kittens.Randomizer) Option {
	return func(m *GameManager) { m.rng = rng }
}

func WithIDGenerator(newID func() (string, error)) Option {
	return func(m *GameManager) { m.newID = newID }
}

func NewGameManager(
	logger *slog.Logger,
	rules kittens.Rules,
	gameRepo gameRepoDep,
	deckSource deckSourceDep,
	publisher publisherDep,
	statsRepo statsRepoDep,
	opts ...Option,
) *GameManager {
	manager := &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		deckSource: deckSource,
		publisher:  publisher,
		statsRepo:  statsRepo,

		locks: pkg.NewKeyedMutex(),
		rules: rules,
		rng:   kittens.DefaultRandomizer,
		newID: pkg.GenerateGameID,
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

func (that *GameManager) CreateGame(ctx context.Context, host, mode string, maxPlayers int) (*entity.Game, error) {
	log := that.logger.With("method", "CreateGame", "host", host)

	if mode == "" {
		mode = entity.ModeNormal
	}

	if maxPlayers == 0 {
		maxPlayers = that.rules.MaxPlayers
	}

	if err := that.validateSettings(mode, maxPlayers); err != nil {
		return nil, err
	}

	for range maxIDAttempts {
		gameID, err := that.newID()
		if err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}

		game, err := that.createWithID(ctx, gameID, host, mode, maxPlayers)
		if errors.Is(err, errIDTaken) {
			log.Debug("game id taken, retrying", "gameID", gameID)
			continue
		}

		if err != nil {
			return nil, err
		}

		log.Info("game created", "gameID", game.ID, "mode", mode, "maxPlayers", maxPlayers)

		return game, nil
	}

	return nil, ErrGameIDExhausted
}

var errIDTaken = errors.New("game id taken")

func (that *GameManager) createWithID(ctx context.Context, gameID, host, mode string, maxPlayers int) (*entity.Game, error) {
	unlock := that.locks.Lock(gameID)
	defer unlock()

	_, err := that.gameRepo.GetByID(ctx, gameID)
	if err == nil {
		return nil, errIDTaken
	}

	if !errors.Is(err, apperror.ErrGameNotFound) {
		return nil, fmt.Errorf("failed to check game id: %w", err)
	}

	game := entity.NewGame(gameID, mode, maxPlayers)
	if err = game.Seat(host); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) validateSettings(mode string, maxPlayers int) error {
	if mode != entity.ModeNormal && mode != entity.ModeTeam {
		return fmt.Errorf("%w: unknown mode %q", apperror.ErrInvalidGameSettings, mode)
	}

	if maxPlayers < entity.MinPlayers || maxPlayers > that.rules.MaxPlayers {
		return fmt.Errorf("%w: max players must be between %d and %d",
			apperror.ErrInvalidGameSettings, entity.MinPlayers, that.rules.MaxPlayers)
	}

	return nil
}

func (that *GameManager) JoinGame(ctx context.Context, gameID, username string) (*entity.Game, error) {
	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.IsSeated(username) {
		return game, nil
	}

	if !game.IsPreparing() {
		return nil, fmt.Errorf("%w: game %s is %s", apperror.ErrInvalidTransition, gameID, game.Status)
	}

	if err = game.Seat(username); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("player joined", "method", "JoinGame", "gameID", gameID, "username", username)

	return game, nil
}

// StartGame fetches a deck without holding the game lock, then deals under the lock
// after checking the game is still preparing.
func (that *GameManager) StartGame(ctx context.Context, gameID string) (*entity.Game, error) {
	log := that.logger.With("method", "StartGame", "gameID", gameID)

	game, err := that.readGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = confirmStartable(game); err != nil {
		return nil, err
	}

	deckCount := kittens.DeckCountFor(len(game.Players), that.rules)

	deckID, cards, err := that.deckSource.FetchShuffledDeck(ctx, deckCount)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deck: %w", err)
	}

	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err = that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = confirmStartable(game); err != nil {
		return nil, err
	}

	if kittens.DeckCountFor(len(game.Players), that.rules) > deckCount {
		return nil, fmt.Errorf("%w: players joined while the deck was fetched", apperror.ErrInvalidTransition)
	}

	if err = kittens.CreateDealerPile(game, deckID, cards, that.rng, that.rules); err != nil {
		return nil, fmt.Errorf("failed to deal: %w", err)
	}

	kittens.StartTurns(game)
	game.Status = entity.StatusOngoing

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	stats := kittens.PileStats(game.Deck)
	events := make([]entity.Event, 0, len(game.Players)+1)
	for _, player := range game.Players {
		events = append(events, entity.NewPrivateEvent(game.ID, player, entity.EventGameStarted, entity.GameStartedPayload{
			Players: game.Players,
			Hand:    game.Hand(player),
			Stats:   stats,
		}))
	}
	events = append(events, entity.NewEvent(game.ID, entity.EventTurnChanged, entity.TurnChangedPayload{
		Player: game.CurrentTurn(),
	}))

	that.publish(ctx, events)

	log.Info("game started", "players", len(game.Players), "deckID", deckID)

	return game, nil
}

func confirmStartable(game *entity.Game) error {
	if !game.IsPreparing() {
		return fmt.Errorf("%w: game %s is %s", apperror.ErrInvalidTransition, game.ID, game.Status)
	}

	if len(game.Players) < entity.MinPlayers {
		return fmt.Errorf("%w: %d seated", apperror.ErrNotEnoughPlayers, len(game.Players))
	}

	return nil
}

// PlayCards resolves an inbound card move. Nothing is saved when the move is rejected.
func (that *GameManager) PlayCards(ctx context.Context, action entity.PlayAction) error {
	return that.mutate(ctx, action.GameID, func(game *entity.Game) (*kittens.Outcome, error) {
		return kittens.ResolvePlay(game, action.UserID, action.Play(), that.rng)
	})
}

// DrawCard draws the top card for the active player, ending the turn.
func (that *GameManager) DrawCard(ctx context.Context, gameID, username string) error {
	return that.mutate(ctx, gameID, func(game *entity.Game) (*kittens.Outcome, error) {
		return kittens.ResolveDraw(game, username, that.rng)
	})
}

func (that *GameManager) TerminateGame(ctx context.Context, gameID string) error {
	return that.mutate(ctx, gameID, func(game *entity.Game) (*kittens.Outcome, error) {
		if game.IsFinished() {
			return nil, fmt.Errorf("%w: game %s is already finished", apperror.ErrInvalidTransition, gameID)
		}

		return &kittens.Outcome{
			Events:   []entity.Event{kittens.FinishGame(game)},
			Finished: true,
		}, nil
	})
}

// RemoveUser handles a player leaving. Before the start the seat is freed, during play
// the player departs the ring.
func (that *GameManager) RemoveUser(ctx context.Context, gameID, username string) error {
	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return err
	}

	if !game.IsSeated(username) {
		return fmt.Errorf("%w: %s", apperror.ErrUserNotInGame, username)
	}

	switch {
	case game.IsPreparing():
		return that.unseat(ctx, game, username)
	case game.IsOngoing() && !game.IsAlive(username):
		return nil
	}

	outcome, err := kittens.DepartPlayer(game, username, that.rng)
	if err != nil {
		return err
	}

	return that.commit(ctx, game, outcome)
}

func (that *GameManager) unseat(ctx context.Context, game *entity.Game, username string) error {
	game.Unseat(username)

	if len(game.Players) == 0 {
		if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
			return fmt.Errorf("failed to delete game: %w", err)
		}

		that.logger.Info("empty game deleted", "method", "RemoveUser", "gameID", game.ID)

		return nil
	}

	return that.updateGame(ctx, game)
}

// ReloadGameState sends the user a private snapshot of the game.
func (that *GameManager) ReloadGameState(ctx context.Context, gameID, username string) error {
	unlock := that.locks.RLock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return err
	}

	if !game.IsSeated(username) {
		return fmt.Errorf("%w: %s", apperror.ErrUserNotInGame, username)
	}

	that.publish(ctx, []entity.Event{
		entity.NewPrivateEvent(game.ID, username, entity.EventStateSync, snapshot(game, username)),
	})

	return nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.readGame(ctx, gameID)
}

func (that *GameManager) readGame(ctx context.Context, gameID string) (*entity.Game, error) {
	unlock := that.locks.RLock(gameID)
	defer unlock()

	return that.getGameByID(ctx, gameID)
}

// mutate runs apply on a fresh copy of the game under its lock and commits the outcome.
func (that *GameManager) mutate(
	ctx context.Context,
	gameID string,
	apply func(game *entity.Game) (*kittens.Outcome, error),
) error {
	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return err
	}

	outcome, err := apply(game)
	if err != nil {
		return err
	}

	return that.commit(ctx, game, outcome)
}

func (that *GameManager) commit(ctx context.Context, game *entity.Game, outcome *kittens.Outcome) error {
	if err := that.updateGame(ctx, game); err != nil {
		return err
	}

	if outcome.Finished {
		that.recordResult(ctx, game)
	}

	that.publish(ctx, outcome.Events)

	return nil
}

func (that *GameManager) recordResult(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "recordResult", "gameID", game.ID)

	if err := that.statsRepo.RecordResult(ctx, kittens.Leaderboard(game), game.Winner); err != nil {
		log.Error("failed to record result", "error", err)
		return
	}

	log.Info("game finished", "winner", game.Winner)
}

func (that *GameManager) publish(ctx context.Context, events []entity.Event) {
	for _, event := range events {
		that.publisher.Publish(ctx, broadcast.ChannelFor(event), event)
	}
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
