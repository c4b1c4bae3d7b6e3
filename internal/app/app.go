package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/assets"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/config"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/display"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/filter"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/logging"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/metrics"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/poller"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/providers"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/providers/espn"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/providers/fixture"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/render"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/store"
)

const espnMinRequestGap = 250 * time.Millisecond

// App owns the poll loop, the render rotation, and the optional metrics
// endpoint. Construct it with New and drive it with Run, or embed it in a
// host display loop and call RenderNext per frame.
type App struct {
	cfg      config.Config
	logger   *slog.Logger
	recorder *metrics.Recorder

	provider providers.GameProvider
	store    *store.MemoryStore
	poller   *poller.Poller
	renderer *render.Renderer
	sink     display.Sink

	metricsHandler  http.Handler
	metricsShutdown func(context.Context) error

	rotMu    sync.Mutex
	rotIndex int
}

// Option customizes App construction. Used by hosts that own the physical
// surface and by tests.
type Option func(*App)

// WithSink replaces the default frame sink.
func WithSink(s display.Sink) Option {
	return func(a *App) { a.sink = s }
}

// WithProvider replaces the configured game provider.
func WithProvider(p providers.GameProvider) Option {
	return func(a *App) { a.provider = p }
}

// New assembles the application from config.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		store:  store.NewMemoryStore(),
	}

	recorder, handler, shutdown, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		return nil, fmt.Errorf("setup metrics: %w", err)
	}
	a.recorder = recorder
	a.metricsHandler = handler
	a.metricsShutdown = shutdown

	for _, opt := range opts {
		opt(a)
	}

	if a.provider == nil {
		a.provider, err = a.buildProvider()
		if err != nil {
			return nil, err
		}
	}

	fonts := assets.LoadFonts(assets.FontSpec{Path: cfg.Fonts.ScorePath, Size: cfg.Fonts.ScoreSize},
		assets.FontSpec{Path: cfg.Fonts.TimePath, Size: cfg.Fonts.TimeSize}, logger)

	logoDirs := make(map[domain.League]string, len(cfg.Leagues))
	for league, lc := range cfg.Leagues {
		if lc.LogoDir != "" {
			logoDirs[league] = lc.LogoDir
		}
	}
	logos := assets.NewLogoCache(cfg.Display.Width*3/2, cfg.Display.Height*3/2, logoDirs, logger)

	a.renderer = render.New(fonts, logos)

	if a.sink == nil {
		if cfg.Display.FramesDir != "" {
			sink, err := display.NewPNGSink(cfg.Display.Width, cfg.Display.Height, cfg.Display.FramesDir)
			if err != nil {
				return nil, fmt.Errorf("frames dir: %w", err)
			}
			a.sink = sink
		} else {
			a.sink = display.NewMemSink(cfg.Display.Width, cfg.Display.Height)
		}
	}

	a.poller = poller.New(a.provider, a.store, cfg.EnabledLeagues(), logger, recorder, cfg.PollInterval)
	return a, nil
}

func (a *App) buildProvider() (providers.GameProvider, error) {
	switch a.cfg.Provider {
	case "fixture":
		return fixture.New(), nil
	case "", "espn":
		var httpClient *http.Client
		if a.cfg.ESPN.Timeout > 0 {
			httpClient = &http.Client{Timeout: a.cfg.ESPN.Timeout}
		}
		client := espn.NewClient(espn.Config{
			BaseURL:    a.cfg.ESPN.BaseURL,
			HTTPClient: httpClient,
			Timezone:   a.cfg.Timezone,
			ScoreKeys:  a.cfg.ScoreKeys,
			Logger:     a.logger,
			Recorder:   a.recorder,
		})
		limited := providers.NewRateLimitedProvider(client, espnMinRequestGap, a.logger)
		return providers.NewRetryingProvider(limited, a.logger, 0, 0), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", a.cfg.Provider)
	}
}

// Run starts polling, rendering, and (if enabled) the metrics endpoint,
// and blocks until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	if !a.cfg.Enabled {
		logging.Info(a.logger, "scoreboard disabled, nothing to do")
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)

	a.poller.Start(ctx)
	g.Go(func() error {
		<-ctx.Done()
		a.poller.Stop()
		return nil
	})

	g.Go(func() error {
		return a.renderLoop(ctx)
	})

	if a.cfg.Metrics.Enabled && a.metricsHandler != nil {
		srv := &http.Server{
			Addr:    ":" + a.cfg.Metrics.Port,
			Handler: a.metricsMux(),
		}
		g.Go(func() error {
			logging.Info(a.logger, "metrics listening", slog.String(logging.FieldPath, srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err := g.Wait()

	if a.metricsShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := a.metricsShutdown(shutdownCtx); serr != nil {
			logging.Warn(a.logger, "metrics shutdown", slog.String("error", serr.Error()))
		}
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metricsHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if a.poller.Status().IsReady() {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	return mux
}

func (a *App) renderLoop(ctx context.Context) error {
	ticker := time.NewTicker(a.cfg.GameRotation)
	defer ticker.Stop()

	a.renderFrame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			a.renderFrame()
		}
	}
}

func (a *App) renderFrame() {
	bounds := a.sink.Bounds()
	frame := image.NewRGBA(bounds)
	start := time.Now()
	a.RenderNext(frame)
	if a.recorder != nil {
		a.recorder.RecordFrame(time.Since(start))
	}
	if err := a.sink.Push(frame); err != nil {
		logging.Warn(a.logger, "frame push failed", slog.String("error", err.Error()))
	}
}

// RenderNext draws the next game in the rotation onto dst. Live games take
// priority over recent and upcoming ones. It reports whether a game was
// drawn; with no displayable games it draws the idle screen and returns
// false.
func (a *App) RenderNext(dst draw.Image) bool {
	games := a.displayable()
	if len(games) == 0 {
		a.renderer.DrawNoGames(dst)
		return false
	}

	a.rotMu.Lock()
	idx := a.rotIndex % len(games)
	a.rotIndex = (a.rotIndex + 1) % len(games)
	a.rotMu.Unlock()

	a.renderer.Draw(dst, games[idx])
	return true
}

// displayable applies the per-league filters and orders live games first,
// preserving fetch order within each mode.
func (a *App) displayable() []domain.Game {
	selected := filter.Select(a.store.All(), a.cfg.Leagues)
	if len(selected) == 0 {
		return nil
	}
	ordered := make([]domain.Game, 0, len(selected))
	for _, g := range selected {
		if filter.ModeOf(g) == filter.ModeLive {
			ordered = append(ordered, g)
		}
	}
	for _, g := range selected {
		if filter.ModeOf(g) != filter.ModeLive {
			ordered = append(ordered, g)
		}
	}
	return ordered
}

// Store exposes the game store for hosts that render on their own schedule.
func (a *App) Store() *store.MemoryStore { return a.store }

// PollerStatus reports the health of the poll loop.
func (a *App) PollerStatus() poller.Status { return a.poller.Status() }
