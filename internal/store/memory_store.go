package store

import (
	"sync"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
)

// MemoryStore keeps a thread-safe snapshot of the latest fetched games per
// league. Each poll cycle replaces a league's snapshot wholesale; games are
// never persisted across cycles.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[domain.League][]domain.Game
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[domain.League][]domain.Game),
	}
}

// SetLeague replaces the snapshot for one league.
func (s *MemoryStore) SetLeague(league domain.League, games []domain.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]domain.Game, len(games))
	copy(snapshot, games)
	s.games[league] = snapshot
}

// League returns a copy of the snapshot for one league.
func (s *MemoryStore) League(league domain.League) []domain.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyGames(s.games[league])
}

// All returns every stored game in canonical league order, preserving the
// order within each league's snapshot.
func (s *MemoryStore) All() []domain.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Game
	for _, l := range domain.Leagues {
		out = append(out, s.games[l]...)
	}
	return out
}

func copyGames(games []domain.Game) []domain.Game {
	out := make([]domain.Game, len(games))
	copy(out, games)
	return out
}
