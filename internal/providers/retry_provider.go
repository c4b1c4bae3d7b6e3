package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
)

const (
	defaultRetryAttempts   = 3
	defaultInitialInterval = 200 * time.Millisecond
)

// retryingProvider wraps a GameProvider with exponential backoff retries.
type retryingProvider struct {
	inner           GameProvider
	logger          *slog.Logger
	maxAttempts     uint64
	initialInterval time.Duration
}

// NewRetryingProvider wraps the given provider with retries. If
// maxAttempts/initialInterval are <= 0, defaults are used.
func NewRetryingProvider(inner GameProvider, logger *slog.Logger, maxAttempts int, initialInterval time.Duration) GameProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initialInterval <= 0 {
		initialInterval = defaultInitialInterval
	}
	return &retryingProvider{
		inner:           inner,
		logger:          logger,
		maxAttempts:     uint64(maxAttempts),
		initialInterval: initialInterval,
	}
}

func (r *retryingProvider) FetchGames(ctx context.Context, league domain.League) ([]domain.Game, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.initialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, r.maxAttempts-1), ctx)

	attempt := 0
	games, err := backoff.RetryWithData(func() ([]domain.Game, error) {
		attempt++
		games, fetchErr := r.inner.FetchGames(ctx, league)
		if fetchErr != nil && attempt < int(r.maxAttempts) {
			r.logWarn("provider fetch retry",
				slog.String("league", string(league)),
				slog.Int("attempt", attempt),
				"err", fetchErr,
			)
		}
		return games, fetchErr
	}, policy)
	if err != nil {
		r.logWarn("provider fetch failed",
			slog.String("league", string(league)),
			slog.Int("attempts", attempt),
			"err", err,
		)
		return nil, err
	}
	return games, nil
}

func (r *retryingProvider) logWarn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
