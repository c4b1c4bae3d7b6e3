package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
)

// DisplayModes selects which game categories a league shows.
type DisplayModes struct {
	Live     bool
	Recent   bool
	Upcoming bool
}

// Any reports whether at least one mode is enabled.
func (m DisplayModes) Any() bool {
	return m.Live || m.Recent || m.Upcoming
}

// LeagueConfig holds per-league display settings.
type LeagueConfig struct {
	Enabled       bool
	Modes         DisplayModes
	FavoriteTeams []string
	LogoDir       string
}

// DisplayConfig describes the target pixel surface.
type DisplayConfig struct {
	Width     int
	Height    int
	FramesDir string
}

// FontConfig points at the two bitmap font assets.
type FontConfig struct {
	ScorePath string
	ScoreSize float64
	TimePath  string
	TimeSize  float64
}

// MetricsConfig controls the telemetry endpoint.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	OtlpInsecure bool
}

// ESPNConfig holds upstream API settings.
type ESPNConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Config holds runtime configuration for the scoreboard.
type Config struct {
	Enabled      bool
	LogLevel     string
	Timezone     string
	Provider     string
	PollInterval time.Duration
	GameRotation time.Duration
	ScoreKeys    []string
	Display      DisplayConfig
	Fonts        FontConfig
	Metrics      MetricsConfig
	ESPN         ESPNConfig
	Leagues      map[domain.League]LeagueConfig
}

// League returns the config for a league, zero-valued when absent.
func (c Config) League(l domain.League) LeagueConfig {
	return c.Leagues[l]
}

// EnabledLeagues returns the leagues that are both enabled and have at
// least one display mode switched on, in canonical display order.
func (c Config) EnabledLeagues() []domain.League {
	var out []domain.League
	for _, l := range domain.Leagues {
		lc := c.Leagues[l]
		if lc.Enabled && lc.Modes.Any() {
			out = append(out, l)
		}
	}
	return out
}

const defaultConfigName = "config"

// Load reads configuration from an optional YAML file plus SCOREBOARD_*
// environment overrides, applying defaults for everything unset.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	v.SetConfigName(defaultConfigName)
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("SCOREBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env-only is fine.
	_ = v.ReadInConfig()

	cfg := Config{
		Enabled:      v.GetBool("enabled"),
		LogLevel:     v.GetString("log_level"),
		Timezone:     v.GetString("timezone"),
		Provider:     strings.TrimSpace(v.GetString("provider")),
		PollInterval: v.GetDuration("poll_interval"),
		GameRotation: v.GetDuration("game_rotation"),
		ScoreKeys:    v.GetStringSlice("score_keys"),
		Display: DisplayConfig{
			Width:     v.GetInt("display.width"),
			Height:    v.GetInt("display.height"),
			FramesDir: v.GetString("display.frames_dir"),
		},
		Fonts: FontConfig{
			ScorePath: v.GetString("fonts.score.path"),
			ScoreSize: v.GetFloat64("fonts.score.size"),
			TimePath:  v.GetString("fonts.time.path"),
			TimeSize:  v.GetFloat64("fonts.time.size"),
		},
		Metrics: MetricsConfig{
			Enabled:      v.GetBool("metrics.enabled"),
			Port:         v.GetString("metrics.port"),
			OtlpEndpoint: v.GetString("metrics.otlp_endpoint"),
			OtlpInsecure: v.GetBool("metrics.otlp_insecure"),
		},
		ESPN: ESPNConfig{
			BaseURL: v.GetString("espn.base_url"),
			Timeout: v.GetDuration("espn.timeout"),
		},
		Leagues: loadLeagues(v),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadLeagues(v *viper.Viper) map[domain.League]LeagueConfig {
	out := make(map[domain.League]LeagueConfig, len(domain.Leagues))
	for _, l := range domain.Leagues {
		prefix := "leagues." + string(l) + "."
		out[l] = LeagueConfig{
			Enabled: v.GetBool(prefix + "enabled"),
			Modes: DisplayModes{
				Live:     v.GetBool(prefix + "display_modes.live"),
				Recent:   v.GetBool(prefix + "display_modes.recent"),
				Upcoming: v.GetBool(prefix + "display_modes.upcoming"),
			},
			FavoriteTeams: v.GetStringSlice(prefix + "favorite_teams"),
			LogoDir:       v.GetString(prefix + "logo_dir"),
		}
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("enabled", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("timezone", "America/New_York")
	v.SetDefault("provider", "espn")
	// Conservative default poll interval to be polite to the unauthenticated
	// ESPN scoreboard endpoint.
	v.SetDefault("poll_interval", "2m")
	v.SetDefault("game_rotation", "15s")
	v.SetDefault("score_keys", []string{"value", "displayValue"})

	v.SetDefault("display.width", 128)
	v.SetDefault("display.height", 32)
	v.SetDefault("display.frames_dir", "")

	v.SetDefault("fonts.score.path", "assets/fonts/PressStart2P-Regular.ttf")
	v.SetDefault("fonts.score.size", 10)
	v.SetDefault("fonts.time.path", "assets/fonts/PressStart2P-Regular.ttf")
	v.SetDefault("fonts.time.size", 8)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", "9090")
	v.SetDefault("metrics.otlp_endpoint", "")
	v.SetDefault("metrics.otlp_insecure", false)

	v.SetDefault("espn.base_url", "https://site.api.espn.com/apis/site/v2/sports/basketball")
	v.SetDefault("espn.timeout", "10s")

	for _, l := range domain.Leagues {
		prefix := "leagues." + string(l) + "."
		v.SetDefault(prefix+"enabled", l == domain.LeagueNBA)
		v.SetDefault(prefix+"display_modes.live", true)
		v.SetDefault(prefix+"display_modes.recent", true)
		v.SetDefault(prefix+"display_modes.upcoming", true)
		v.SetDefault(prefix+"favorite_teams", []string{})
		v.SetDefault(prefix+"logo_dir", defaultLogoDir(l))
	}
}

func defaultLogoDir(l domain.League) string {
	switch l {
	case domain.LeagueNCAAM, domain.LeagueNCAAW:
		return "assets/logos/ncaa"
	default:
		return "assets/logos/" + string(l)
	}
}

func (c Config) validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("invalid display size %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.GameRotation <= 0 {
		return fmt.Errorf("game_rotation must be positive, got %s", c.GameRotation)
	}
	switch c.Provider {
	case "espn", "fixture":
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	return nil
}
