package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/kittens-backend/internal/broadcast"
	"github.com/rocketscienceinc/kittens-backend/internal/cardsource"
	"github.com/rocketscienceinc/kittens-backend/internal/config"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
	"github.com/rocketscienceinc/kittens-backend/internal/kittens"
	"github.com/rocketscienceinc/kittens-backend/internal/repository"
	"github.com/rocketscienceinc/kittens-backend/internal/repository/storage"
	"github.com/rocketscienceinc/kittens-backend/internal/service"
	"github.com/rocketscienceinc/kittens-backend/internal/usecase"
	"github.com/rocketscienceinc/kittens-backend/pkg/handlers"
	"github.com/rocketscienceinc/kittens-backend/transport/rest"
	"github.com/rocketscienceinc/kittens-backend/transport/websocket"
)

const shutdownTimeout = 10 * time.Second

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrUnknownStorage = errors.New("unknown storage")
)

type eventPublisher interface {
	Publish(ctx context.Context, channel string, event entity.Event)
}

type deckSource interface {
	FetchShuffledDeck(ctx context.Context, deckCount int) (string, []entity.Card, error)
}

// backend is the storage side of the application: persistence, stats and the event bus.
type backend struct {
	games     repository.GameRepository
	stats     repository.StatsRepository
	publisher eventPublisher
	checks    []handlers.ReadinessCheck

	// client is nil for the in-memory backend.
	client *redis.Client
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	hub := broadcast.NewHub(logger)

	store, err := newBackend(ctx, logger, conf, hub)
	if err != nil {
		return err
	}

	if store.client != nil {
		defer func() {
			if err = store.client.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()
	}

	auth, err := service.NewAuthService(conf.JWTSecretKey)
	if err != nil {
		return fmt.Errorf("could not create auth service: %w", err)
	}

	pool, err := ants.NewPool(conf.WorkerPoolSize)
	if err != nil {
		return fmt.Errorf("could not create worker pool: %w", err)
	}
	defer pool.Release()

	gameManager := usecase.NewGameManager(
		logger,
		kittens.Rules{
			HandSize:      conf.Game.HandSize,
			DefuseReserve: conf.Game.DefuseReserve,
			MaxPlayers:    conf.Game.MaxPlayers,
		},
		store.games,
		newDeckSource(logger, conf.CardSource),
		store.publisher,
		store.stats,
	)

	restServer := rest.New(logger, conf.HTTPPort, gameManager, auth, store.stats, store.checks...)
	wsServer := websocket.New(logger, conf.SocketPort, gameManager, auth, hub, pool, store.checks...)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := restServer.Start(); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}
		return nil
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := wsServer.Start(); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}
		return nil
	})

	if store.client != nil {
		group.Go(func() error {
			if listenErr := hub.Listen(groupCtx, store.client); listenErr != nil {
				return fmt.Errorf("event listener error: %w", listenErr)
			}
			return nil
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Application context canceled, shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		return errors.Join(restServer.Shutdown(shutdownCtx), wsServer.Shutdown(shutdownCtx))
	})

	return group.Wait()
}

func newBackend(ctx context.Context, logger *slog.Logger, conf *config.Config, hub *broadcast.Hub) (*backend, error) {
	switch conf.Storage {
	case config.StorageMemory:
		return &backend{
			games:     repository.NewMemoryGameRepository(),
			stats:     repository.NewMemoryStatsRepository(),
			publisher: broadcast.NewLocalPublisher(logger, hub),
		}, nil

	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return &backend{
			games:     repository.NewGameRepository(redisStorage),
			stats:     repository.NewStatsRepository(redisStorage),
			publisher: broadcast.NewRedisPublisher(logger, redisStorage),
			checks: []handlers.ReadinessCheck{func(ctx context.Context) error {
				return redisStorage.Ping(ctx).Err()
			}},
			client: redisStorage,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, conf.Storage)
	}
}

func newDeckSource(logger *slog.Logger, conf config.CardSource) deckSource {
	if conf.Local {
		return cardsource.NewLocalSource(nil)
	}

	return cardsource.NewHTTPSource(logger, conf.URL,
		cardsource.WithTimeout(conf.Timeout),
		cardsource.WithMaxAttempts(conf.MaxAttempts),
	)
}
