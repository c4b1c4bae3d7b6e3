package espn

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
)

// mapEvent converts one scoreboard event into a domain Game. It returns an
// error only when the record is unusable (no competitors or missing team
// identifiers); degraded fields like period or clock map to zero values.
func (c *Client) mapEvent(league domain.League, event eventResponse) (domain.Game, error) {
	if len(event.Competitions) == 0 {
		return domain.Game{}, fmt.Errorf("event %s has no competitions", event.ID)
	}
	comp := event.Competitions[0]
	if len(comp.Competitors) < 2 {
		return domain.Game{}, fmt.Errorf("event %s has %d competitors", event.ID, len(comp.Competitors))
	}

	var home, away *competitorResponse
	for i := range comp.Competitors {
		switch comp.Competitors[i].HomeAway {
		case "home":
			home = &comp.Competitors[i]
		case "away":
			away = &comp.Competitors[i]
		}
	}
	if home == nil || away == nil {
		return domain.Game{}, fmt.Errorf("event %s missing home/away competitor", event.ID)
	}
	if home.Team.Abbreviation == "" || away.Team.Abbreviation == "" {
		return domain.Game{}, fmt.Errorf("event %s missing team abbreviation", event.ID)
	}

	// Competition status carries the live detail; the event-level status is
	// the fallback for feeds that omit it.
	status := comp.Status
	if status.Type.State == "" {
		status = event.Status
	}

	game := domain.Game{
		ID:        fmt.Sprintf("%s-%s-%s", providerName, league, event.ID),
		League:    league,
		HomeTeam:  mapTeam(home.Team),
		AwayTeam:  mapTeam(away.Team),
		HomeScore: c.normalizer.Parse(home.Score),
		AwayScore: c.normalizer.Parse(away.Score),
		Status:    mapStatus(status.Type),
		Halftime:  isHalftime(status.Type),
		StartTime: localizeEventDate(event.Date, c.loc),
	}

	if game.Status == domain.StatusLive || game.Status == domain.StatusFinal {
		game.Period = status.Period
	}
	if game.Status == domain.StatusLive {
		game.Clock = status.DisplayClock
	}
	return game, nil
}

func mapTeam(t teamResponse) domain.Team {
	return domain.Team{
		ID:           t.ID,
		Abbreviation: t.Abbreviation,
		Name:         t.DisplayName,
	}
}

func mapStatus(t statusTypeResponse) domain.GameStatus {
	switch strings.ToLower(t.State) {
	case "in", "halftime":
		return domain.StatusLive
	case "post":
		return domain.StatusFinal
	default:
		return domain.StatusScheduled
	}
}

func isHalftime(t statusTypeResponse) bool {
	return strings.EqualFold(t.State, "halftime") || t.Name == "STATUS_HALFTIME"
}

// localizeEventDate shifts a parsed event date into the display timezone
// so the scheduled-game date line matches the viewer's evening, not UTC.
func localizeEventDate(raw string, loc *time.Location) time.Time {
	t := parseEventDate(raw)
	if t.IsZero() || loc == nil {
		return t
	}
	return t.In(loc)
}

// parseEventDate tolerates the two timestamp shapes ESPN emits; a
// malformed date degrades to the zero time rather than failing the record.
func parseEventDate(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
