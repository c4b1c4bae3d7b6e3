package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/score"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/timeutil"
)

// League identifies a supported basketball league.
type League string

const (
	LeagueNBA   League = "nba"
	LeagueWNBA  League = "wnba"
	LeagueNCAAM League = "ncaam"
	LeagueNCAAW League = "ncaaw"
)

// Leagues lists every supported league in display order.
var Leagues = []League{LeagueNBA, LeagueWNBA, LeagueNCAAM, LeagueNCAAW}

// ScoreboardPath returns the ESPN scoreboard path segment for the league.
func (l League) ScoreboardPath() string {
	switch l {
	case LeagueNBA:
		return "nba"
	case LeagueWNBA:
		return "wnba"
	case LeagueNCAAM:
		return "mens-college-basketball"
	case LeagueNCAAW:
		return "womens-college-basketball"
	default:
		return string(l)
	}
}

// Valid reports whether l is one of the supported leagues.
func (l League) Valid() bool {
	switch l {
	case LeagueNBA, LeagueWNBA, LeagueNCAAM, LeagueNCAAW:
		return true
	}
	return false
}

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled GameStatus = "SCHEDULED"
	StatusLive      GameStatus = "LIVE"
	StatusFinal     GameStatus = "FINAL"
)

// Team is the minimal team shape needed for the scorebug.
type Team struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
}

// Game is the canonical shape for one contest, built fresh each fetch
// cycle and immutable for the duration of a render pass.
type Game struct {
	ID        string       `json:"id"`
	League    League       `json:"league"`
	HomeTeam  Team         `json:"homeTeam"`
	AwayTeam  Team         `json:"awayTeam"`
	HomeScore score.Result `json:"-"`
	AwayScore score.Result `json:"-"`
	Status    GameStatus   `json:"status"`
	Period    int          `json:"period"`
	Halftime  bool         `json:"halftime,omitempty"`
	Clock     string       `json:"clock,omitempty"`
	StartTime time.Time    `json:"startTime"`
}

// FormatPeriod maps a basketball period number to its scorebug label.
// The first overtime is plain "OT"; later overtimes are numbered.
func FormatPeriod(period int, halftime bool) string {
	switch {
	case halftime:
		return "Half"
	case period <= 0:
		return ""
	case period <= 4:
		return fmt.Sprintf("Q%d", period)
	case period == 5:
		return "OT"
	default:
		return fmt.Sprintf("OT%d", period-4)
	}
}

// StatusLine returns the text shown at the top of the scorebug.
func (g Game) StatusLine() string {
	switch g.Status {
	case StatusLive:
		if g.Halftime {
			return "Halftime"
		}
		label := FormatPeriod(g.Period, false)
		if g.Period == 0 {
			label = "Start"
		}
		return strings.TrimSpace(label + " " + g.Clock)
	case StatusFinal:
		if g.Period > 4 {
			return "Final/OT"
		}
		return "Final"
	default:
		if g.StartTime.IsZero() {
			return "TBD"
		}
		return timeutil.FormatDate(g.StartTime)
	}
}

// Involves reports whether either team matches one of the given
// abbreviations. Matching is case-insensitive.
func (g Game) Involves(abbrs []string) bool {
	for _, a := range abbrs {
		if strings.EqualFold(a, g.HomeTeam.Abbreviation) || strings.EqualFold(a, g.AwayTeam.Abbreviation) {
			return true
		}
	}
	return false
}
