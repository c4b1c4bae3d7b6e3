package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Enabled {
		t.Fatal("expected scoreboard enabled by default")
	}
	if cfg.Provider != "espn" {
		t.Fatalf("expected espn provider, got %q", cfg.Provider)
	}
	if cfg.PollInterval != 2*time.Minute {
		t.Fatalf("expected 2m poll interval, got %s", cfg.PollInterval)
	}
	if cfg.Display.Width != 128 || cfg.Display.Height != 32 {
		t.Fatalf("expected 128x32 display, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if got := cfg.ScoreKeys; len(got) != 2 || got[0] != "value" || got[1] != "displayValue" {
		t.Fatalf("unexpected score keys %v", got)
	}

	if !cfg.League(domain.LeagueNBA).Enabled {
		t.Fatal("expected NBA enabled by default")
	}
	for _, l := range []domain.League{domain.LeagueWNBA, domain.LeagueNCAAM, domain.LeagueNCAAW} {
		if cfg.League(l).Enabled {
			t.Fatalf("expected %s disabled by default", l)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
enabled: true
provider: fixture
poll_interval: 30s
game_rotation: 5s
display:
  width: 64
  height: 32
leagues:
  nba:
    enabled: true
    display_modes:
      live: true
      recent: false
      upcoming: false
    favorite_teams: [BOS, LAL]
  wnba:
    enabled: true
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != "fixture" {
		t.Fatalf("expected fixture provider, got %q", cfg.Provider)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Fatalf("expected 30s poll interval, got %s", cfg.PollInterval)
	}
	if cfg.Display.Width != 64 {
		t.Fatalf("expected width 64, got %d", cfg.Display.Width)
	}

	nba := cfg.League(domain.LeagueNBA)
	if !nba.Modes.Live || nba.Modes.Recent || nba.Modes.Upcoming {
		t.Fatalf("unexpected NBA display modes %+v", nba.Modes)
	}
	if len(nba.FavoriteTeams) != 2 || nba.FavoriteTeams[0] != "BOS" {
		t.Fatalf("unexpected favorite teams %v", nba.FavoriteTeams)
	}

	wnba := cfg.League(domain.LeagueWNBA)
	if !wnba.Enabled {
		t.Fatal("expected WNBA enabled from file")
	}
	// Modes not mentioned in the file keep their defaults.
	if !wnba.Modes.Live || !wnba.Modes.Recent || !wnba.Modes.Upcoming {
		t.Fatalf("expected default modes for WNBA, got %+v", wnba.Modes)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SCOREBOARD_PROVIDER", "fixture")
	t.Setenv("SCOREBOARD_LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "fixture" {
		t.Fatalf("expected env override to win, got %q", cfg.Provider)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug log level, got %q", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "zero width", yaml: "display:\n  width: 0\n"},
		{name: "bad provider", yaml: "provider: sportsradar\n"},
		{name: "zero poll interval", yaml: "poll_interval: 0s\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tc.yaml), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(dir); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestEnabledLeagues(t *testing.T) {
	cfg := Config{Leagues: map[domain.League]LeagueConfig{
		domain.LeagueNBA:   {Enabled: true, Modes: DisplayModes{Live: true}},
		domain.LeagueWNBA:  {Enabled: true},
		domain.LeagueNCAAM: {Enabled: false, Modes: DisplayModes{Live: true}},
		domain.LeagueNCAAW: {Enabled: true, Modes: DisplayModes{Upcoming: true}},
	}}

	got := cfg.EnabledLeagues()
	if len(got) != 2 {
		t.Fatalf("expected 2 leagues, got %v", got)
	}
	// Canonical order: NBA before NCAAW; WNBA dropped for having no modes.
	if got[0] != domain.LeagueNBA || got[1] != domain.LeagueNCAAW {
		t.Fatalf("unexpected leagues %v", got)
	}
}
