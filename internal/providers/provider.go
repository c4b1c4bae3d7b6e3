package providers

import (
	"context"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
)

// GameProvider defines how upstream game data is fetched and normalized.
// Implementations return the current scoreboard for one league; a failed
// fetch surfaces as an error for that league only.
type GameProvider interface {
	FetchGames(ctx context.Context, league domain.League) ([]domain.Game, error)
}
