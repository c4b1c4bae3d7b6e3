package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/logging"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/metrics"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/providers"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/store"
)

const defaultInterval = 2 * time.Minute

// Poller fetches games for the enabled leagues on an interval and
// replaces the store snapshot each cycle. Leagues are fetched
// sequentially; a failed league is skipped for that cycle and the others
// still refresh.
type Poller struct {
	provider providers.GameProvider
	store    *store.MemoryStore
	leagues  []domain.League
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poll loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(provider providers.GameProvider, st *store.MemoryStore, leagues []domain.League, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		provider: provider,
		store:    st,
		leagues:  leagues,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started",
			slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()),
			slog.Int(logging.FieldCount, len(p.leagues)),
		)
		// Initial fetch to warm data on boot.
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
}

func (p *Poller) fetchOnce(ctx context.Context) {
	cycleStart := p.now()
	p.recordAttempt(cycleStart)

	var (
		lastErr   error
		succeeded int
		total     int
	)
	for _, league := range p.leagues {
		start := p.now()
		games, err := p.provider.FetchGames(ctx, league)
		if p.metrics != nil {
			p.metrics.RecordFetch(string(league), p.now().Sub(start), err)
		}
		if err != nil {
			lastErr = err
			logging.Error(p.logger, "league fetch failed", err,
				slog.String(logging.FieldLeague, string(league)),
			)
			continue
		}
		p.store.SetLeague(league, games)
		succeeded++
		total += len(games)
	}

	if p.metrics != nil {
		p.metrics.RecordPollCycle(p.now().Sub(cycleStart), lastErr)
	}

	if succeeded == 0 && len(p.leagues) > 0 {
		p.recordFailure(lastErr, cycleStart)
		return
	}
	p.recordSuccess(cycleStart)
	logging.Info(p.logger, "poller refreshed games",
		slog.Int(logging.FieldCount, total),
		slog.Int64(logging.FieldDurationMS, p.now().Sub(cycleStart).Milliseconds()),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
