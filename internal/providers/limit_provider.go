package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
)

// rateLimitedProvider wraps a GameProvider and enforces a minimum interval
// between calls. The ESPN scoreboard endpoint is unauthenticated, so the
// plugin spaces its requests rather than relying on upstream quota headers.
type rateLimitedProvider struct {
	next     GameProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a GameProvider that limits calls to the
// given interval. Calls block until the interval elapses.
func NewRateLimitedProvider(next GameProvider, interval time.Duration, logger *slog.Logger) GameProvider {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchGames(ctx context.Context, league domain.League) ([]domain.Game, error) {
	if p == nil || p.next == nil {
		return nil, ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		if p.logger != nil {
			p.logger.Warn("rate-limited fetch canceled", slog.String("league", string(league)))
		}
		return nil, ctx.Err()
	case <-p.ticker.C:
	}
	return p.next.FetchGames(ctx, league)
}
