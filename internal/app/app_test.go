package app

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/config"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/display"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/providers/fixture"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/testutil"
)

func testConfig() config.Config {
	return config.Config{
		Enabled:      true,
		Provider:     "fixture",
		PollInterval: time.Minute,
		GameRotation: 10 * time.Second,
		Display:      config.DisplayConfig{Width: 128, Height: 32},
		Leagues: map[domain.League]config.LeagueConfig{
			domain.LeagueNBA: {
				Enabled: true,
				Modes:   config.DisplayModes{Live: true, Recent: true, Upcoming: true},
			},
		},
	}
}

func newTestApp(t *testing.T, cfg config.Config, opts ...Option) *App {
	t.Helper()
	logger, _ := testutil.NewBufferLogger()
	a, err := New(context.Background(), cfg, logger, opts...)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func TestNewBuildsFixtureProvider(t *testing.T) {
	a := newTestApp(t, testConfig())
	if _, ok := a.provider.(*fixture.Provider); !ok {
		t.Fatalf("expected fixture provider, got %T", a.provider)
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	cfg := testConfig()
	cfg.Provider = "carrier-pigeon"
	logger, _ := testutil.NewBufferLogger()
	if _, err := New(context.Background(), cfg, logger); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestRenderNextRotatesThroughGames(t *testing.T) {
	sink := display.NewMemSink(128, 32)
	a := newTestApp(t, testConfig(), WithSink(sink))

	a.Store().SetLeague(domain.LeagueNBA, []domain.Game{
		testutil.FinalGame(domain.LeagueNBA, "GSW", "MIA"),
		testutil.LiveGame(domain.LeagueNBA, "BOS", "LAL"),
	})

	frame := image.NewRGBA(sink.Bounds())

	// The live game renders first even though it was stored second.
	if !a.RenderNext(frame) {
		t.Fatal("expected a game to render")
	}
	// Rotation then reaches the final game, then wraps.
	for i := 0; i < 2; i++ {
		if !a.RenderNext(frame) {
			t.Fatalf("expected rotation step %d to render", i)
		}
	}

	ordered := a.displayable()
	if len(ordered) != 2 {
		t.Fatalf("expected 2 displayable games, got %d", len(ordered))
	}
	if ordered[0].Status != domain.StatusLive {
		t.Fatalf("expected live game first, got %s", ordered[0].Status)
	}
}

func TestRenderNextNoGames(t *testing.T) {
	sink := display.NewMemSink(128, 32)
	a := newTestApp(t, testConfig(), WithSink(sink))

	frame := image.NewRGBA(sink.Bounds())
	if a.RenderNext(frame) {
		t.Fatal("expected no game with an empty store")
	}
}

func TestRenderNextHonorsFilters(t *testing.T) {
	cfg := testConfig()
	nba := cfg.Leagues[domain.LeagueNBA]
	nba.Modes = config.DisplayModes{Live: true}
	cfg.Leagues[domain.LeagueNBA] = nba

	sink := display.NewMemSink(128, 32)
	a := newTestApp(t, cfg, WithSink(sink))
	a.Store().SetLeague(domain.LeagueNBA, []domain.Game{
		testutil.FinalGame(domain.LeagueNBA, "GSW", "MIA"),
	})

	frame := image.NewRGBA(sink.Bounds())
	if a.RenderNext(frame) {
		t.Fatal("expected recent game to be filtered out")
	}
}

func TestRunDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	a := newTestApp(t, cfg)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("expected disabled run to return nil, got %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.GameRotation = 10 * time.Millisecond
	sink := display.NewMemSink(128, 32)
	a := newTestApp(t, cfg, WithSink(sink))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for sink.Pushes() < 2 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for frames")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}
