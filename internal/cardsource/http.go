// Package cardsource fetches shuffled decks for new games.
package cardsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
	"github.com/rocketscienceinc/kittens-backend/internal/kittens"
)

const (
	defaultTimeout       = 5 * time.Second
	defaultMaxAttempts   = 3
	defaultRetryInterval = 200 * time.Millisecond
)

var (
	errUnexpectedStatus = errors.New("unexpected response status")
	errDeckNotCreated   = errors.New("deck was not created")
	errShortDraw        = errors.New("fewer cards drawn than requested")
)

type newDeckResponse struct {
	Success   bool   `json:"success"`
	DeckID    string `json:"deck_id"`
	Shuffled  bool   `json:"shuffled"`
	Remaining int    `json:"remaining"`
}

type drawResponse struct {
	Success   bool       `json:"success"`
	DeckID    string     `json:"deck_id"`
	Cards     []cardJSON `json:"cards"`
	Remaining int        `json:"remaining"`
}

type cardJSON struct {
	Code  string `json:"code"`
	Image string `json:"image"`
	Value string `json:"value"`
	Suit  string `json:"suit"`
}

// HTTPSource talks to a deckofcardsapi compatible service.
type HTTPSource struct {
	logger        *slog.Logger
	client        *http.Client
	baseURL       string
	timeout       time.Duration
	maxAttempts   int
	retryInterval time.Duration
}

type Option func(*HTTPSource)

func WithHTTPClient(client *http.Client) Option {
	return func(s *HTTPSource) { s.client = client }
}

func WithTimeout(timeout time.Duration) Option {
	return func(s *HTTPSource) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

func WithMaxAttempts(attempts int) Option {
	return func(s *HTTPSource) {
		if attempts > 0 {
			s.maxAttempts = attempts
		}
	}
}

func WithRetryInterval(interval time.Duration) Option {
	return func(s *HTTPSource) { s.retryInterval = interval }
}

func NewHTTPSource(logger *slog.Logger, baseURL string, opts ...Option) *HTTPSource {
	source := &HTTPSource{
		logger:        logger.With("component", "cardsource"),
		client:        http.DefaultClient,
		baseURL:       baseURL,
		timeout:       defaultTimeout,
		maxAttempts:   defaultMaxAttempts,
		retryInterval: defaultRetryInterval,
	}

	for _, opt := range opts {
		opt(source)
	}

	return source
}

// FetchShuffledDeck creates a shuffled pile of deckCount decks with jokers and draws all of it.
// Transient failures are retried with exponential backoff.
func (that *HTTPSource) FetchShuffledDeck(ctx context.Context, deckCount int) (string, []entity.Card, error) {
	log := that.logger.With("method", "FetchShuffledDeck", "deckCount", deckCount)

	var (
		deckID string
		cards  []entity.Card
	)

	operation := func() error {
		var err error
		deckID, cards, err = that.fetchOnce(ctx, deckCount)
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = that.retryInterval

	retry := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(that.maxAttempts-1)), ctx)

	err := backoff.RetryNotify(operation, retry, func(err error, wait time.Duration) {
		log.Warn("card source attempt failed", "error", err, "retryIn", wait)
	})
	if err != nil {
		log.Error("card source unavailable", "error", err)
		return "", nil, fmt.Errorf("%w: %w", apperror.ErrExternalSourceUnavailable, err)
	}

	return deckID, cards, nil
}

func (that *HTTPSource) fetchOnce(ctx context.Context, deckCount int) (string, []entity.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, that.timeout)
	defer cancel()

	query := url.Values{}
	query.Set("deck_count", strconv.Itoa(deckCount))
	query.Set("jokers_enabled", "true")

	var created newDeckResponse
	if err := that.getJSON(ctx, "/api/deck/new/shuffle/?"+query.Encode(), &created); err != nil {
		return "", nil, err
	}

	if !created.Success || created.DeckID == "" {
		return "", nil, errDeckNotCreated
	}

	var drawn drawResponse
	path := fmt.Sprintf("/api/deck/%s/draw/?count=%d", url.PathEscape(created.DeckID), created.Remaining)
	if err := that.getJSON(ctx, path, &drawn); err != nil {
		return "", nil, err
	}

	if len(drawn.Cards) < created.Remaining {
		return "", nil, fmt.Errorf("%w: got %d of %d", errShortDraw, len(drawn.Cards), created.Remaining)
	}

	cards := make([]entity.Card, 0, len(drawn.Cards))
	for _, card := range drawn.Cards {
		cards = append(cards, kittens.NewCard(card.Code, card.Image))
	}

	return created.DeckID, cards, nil
}

func (that *HTTPSource) getJSON(ctx context.Context, path string, target any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, that.baseURL+path, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}

	response, err := that.client.Do(request)
	if err != nil {
		return fmt.Errorf("failed to call card source: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		err = fmt.Errorf("%w: %d", errUnexpectedStatus, response.StatusCode)
		if response.StatusCode >= http.StatusBadRequest && response.StatusCode < http.StatusInternalServerError &&
			response.StatusCode != http.StatusTooManyRequests {
			return backoff.Permanent(err)
		}
		return err
	}

	if err = json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode card source response: %w", err)
	}

	return nil
}
