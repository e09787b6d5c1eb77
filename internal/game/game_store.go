package game

import (
	"sync"

	"github.com/google/uuid"

	"github.com/uno-arcade/uno-service/internal/models"
)

// GameStore is the directory of active games. The store mutex guards only
// the map; per-game mutation serializes on each game's own lock, so
// commands against unrelated games never contend.
type GameStore struct {
	mu    sync.RWMutex
	games map[uuid.UUID]*Game
}

// NewGameStore returns an empty in-memory store.
func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[uuid.UUID]*Game),
	}
}

// Add registers a game under its ID.
func (s *GameStore) Add(g *Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g
}

// Get looks up a game by ID.
func (s *GameStore) Get(id uuid.UUID) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// Delete removes a game from the directory.
func (s *GameStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// Join resolves the game and delegates to its password-gated Join.
func (s *GameStore) Join(id uuid.UUID, player *models.Player, password string) (*Game, error) {
	g, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := g.Join(player, password); err != nil {
		return nil, err
	}
	return g, nil
}

// Len reports the number of active games.
func (s *GameStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
