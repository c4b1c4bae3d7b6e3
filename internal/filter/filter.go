// Package filter selects which fetched games are eligible for display
// under the host's per-league configuration. Filtering is pure and
// order-preserving.
package filter

import (
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/config"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
)

// Mode is a category of game to show.
type Mode string

const (
	ModeLive     Mode = "live"
	ModeRecent   Mode = "recent"
	ModeUpcoming Mode = "upcoming"
)

// ModeOf maps a game's status to its display mode.
func ModeOf(g domain.Game) Mode {
	switch g.Status {
	case domain.StatusLive:
		return ModeLive
	case domain.StatusFinal:
		return ModeRecent
	default:
		return ModeUpcoming
	}
}

// Select returns the games eligible for display: the league must be
// enabled, the game's mode must be switched on for that league, and when
// the league has a favorite-team list, one of the two teams must be on it.
func Select(games []domain.Game, leagues map[domain.League]config.LeagueConfig) []domain.Game {
	out := make([]domain.Game, 0, len(games))
	for _, g := range games {
		lc, ok := leagues[g.League]
		if !ok || !lc.Enabled {
			continue
		}
		if !modeEnabled(lc.Modes, ModeOf(g)) {
			continue
		}
		if len(lc.FavoriteTeams) > 0 && !g.Involves(lc.FavoriteTeams) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// SelectMode narrows Select's result to a single display mode.
func SelectMode(games []domain.Game, leagues map[domain.League]config.LeagueConfig, mode Mode) []domain.Game {
	eligible := Select(games, leagues)
	out := make([]domain.Game, 0, len(eligible))
	for _, g := range eligible {
		if ModeOf(g) == mode {
			out = append(out, g)
		}
	}
	return out
}

func modeEnabled(m config.DisplayModes, mode Mode) bool {
	switch mode {
	case ModeLive:
		return m.Live
	case ModeRecent:
		return m.Recent
	case ModeUpcoming:
		return m.Upcoming
	}
	return false
}
