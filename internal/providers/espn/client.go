package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/logging"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/metrics"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/providers"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/score"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/timeutil"
)

// Config controls how the ESPN client reaches the upstream scoreboard API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timezone   string
	ScoreKeys  []string
	Logger     *slog.Logger
	Recorder   *metrics.Recorder
}

// Client fetches basketball games from the ESPN scoreboard API and maps
// them to domain models.
type Client struct {
	baseURL    string
	httpClient httpDoer
	now        func() time.Time
	loc        *time.Location
	logger     *slog.Logger
	recorder   *metrics.Recorder
	normalizer *score.Normalizer
}

// NewClient constructs an ESPN client with the provided configuration.
func NewClient(cfg Config) *Client {
	tz := cfg.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
		loc:        timeutil.ResolveLocation(tz),
		logger:     cfg.Logger,
		recorder:   cfg.Recorder,
		normalizer: score.NewNormalizer(cfg.Logger, cfg.ScoreKeys...),
	}
}

// FetchGames retrieves the current scoreboard for one league. A record
// that cannot be mapped is logged and skipped; it never aborts extraction
// of its siblings.
func (c *Client) FetchGames(ctx context.Context, league domain.League) ([]domain.Game, error) {
	req, err := c.buildRequest(ctx, league)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &providers.UpstreamError{
			League:     string(league),
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var payload scoreboardResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return nil, decodeErr
	}

	games := make([]domain.Game, 0, len(payload.Events))
	for _, event := range payload.Events {
		game, mapErr := c.mapEvent(league, event)
		if mapErr != nil {
			logging.Warn(c.logger, "skipping malformed game record",
				slog.String(logging.FieldLeague, string(league)),
				slog.String(logging.FieldGameID, event.ID),
				"error", mapErr,
			)
			if c.recorder != nil {
				c.recorder.RecordDroppedRecord(string(league))
			}
			continue
		}
		games = append(games, game)
	}
	return games, nil
}

func (c *Client) buildRequest(ctx context.Context, league domain.League) (*http.Request, error) {
	url := fmt.Sprintf("%s/%s/scoreboard", c.baseURL, league.ScoreboardPath())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
