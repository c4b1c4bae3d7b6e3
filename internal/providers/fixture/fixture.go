package fixture

import (
	"context"
	"time"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/score"
)

// Provider returns a static set of games useful for local testing and for
// exercising the renderer without network access.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{now: time.Now}
}

// FetchGames returns a deterministic scoreboard for the league.
func (p *Provider) FetchGames(ctx context.Context, league domain.League) ([]domain.Game, error) {
	_ = ctx
	start := p.now().UTC().Truncate(time.Hour)

	return []domain.Game{
		{
			ID:        "fixture-" + string(league) + "-1",
			League:    league,
			HomeTeam:  domain.Team{ID: "2", Abbreviation: "BOS", Name: "Boston Celtics"},
			AwayTeam:  domain.Team{ID: "13", Abbreviation: "LAL", Name: "Los Angeles Lakers"},
			HomeScore: score.Of(62),
			AwayScore: score.Of(58),
			Status:    domain.StatusLive,
			Period:    3,
			Clock:     "7:42",
			StartTime: start.Add(-90 * time.Minute),
		},
		{
			ID:        "fixture-" + string(league) + "-2",
			League:    league,
			HomeTeam:  domain.Team{ID: "9", Abbreviation: "GSW", Name: "Golden State Warriors"},
			AwayTeam:  domain.Team{ID: "14", Abbreviation: "MIA", Name: "Miami Heat"},
			HomeScore: score.Of(101),
			AwayScore: score.Of(96),
			Status:    domain.StatusFinal,
			Period:    4,
			StartTime: start.Add(-4 * time.Hour),
		},
		{
			ID:        "fixture-" + string(league) + "-3",
			League:    league,
			HomeTeam:  domain.Team{ID: "18", Abbreviation: "NYK", Name: "New York Knicks"},
			AwayTeam:  domain.Team{ID: "4", Abbreviation: "CHI", Name: "Chicago Bulls"},
			HomeScore: score.Unavailable(),
			AwayScore: score.Unavailable(),
			Status:    domain.StatusScheduled,
			StartTime: start.Add(3 * time.Hour),
		},
	}, nil
}
