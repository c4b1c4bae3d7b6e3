package testutil

import (
	"time"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/score"
)

// LiveGame returns a live game fixture for the provided league and teams.
func LiveGame(league domain.League, away, home string) domain.Game {
	return domain.Game{
		ID:        "test-" + string(league) + "-" + away + "-" + home,
		League:    league,
		AwayTeam:  domain.Team{ID: "1", Abbreviation: away, Name: away},
		HomeTeam:  domain.Team{ID: "2", Abbreviation: home, Name: home},
		AwayScore: score.Of(54),
		HomeScore: score.Of(60),
		Status:    domain.StatusLive,
		Period:    3,
		Clock:     "5:12",
	}
}

// FinalGame returns a completed game fixture.
func FinalGame(league domain.League, away, home string) domain.Game {
	g := LiveGame(league, away, home)
	g.Status = domain.StatusFinal
	g.Period = 4
	g.Clock = ""
	return g
}

// ScheduledGame returns an upcoming game fixture starting at the given time.
func ScheduledGame(league domain.League, away, home string, start time.Time) domain.Game {
	g := LiveGame(league, away, home)
	g.Status = domain.StatusScheduled
	g.Period = 0
	g.Clock = ""
	g.AwayScore = score.Unavailable()
	g.HomeScore = score.Unavailable()
	g.StartTime = start
	return g
}
