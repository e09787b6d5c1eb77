package handlers

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/uno-arcade/uno-service/internal/game"
	"github.com/uno-arcade/uno-service/internal/identity"
)

// GameServer is the command gateway: it translates authenticated HTTP
// requests into engine commands, enforcing identity and membership before
// any mutation reaches a game.
type GameServer struct {
	Log      *logrus.Logger
	Store    *game.GameStore
	Registry *identity.Registry

	// seenKeys tracks Idempotency-Key values already applied per game so a
	// replayed command is rejected instead of silently re-applied.
	mu       sync.Mutex
	seenKeys map[uuid.UUID]map[string]struct{}
}

// NewGameServer wires an empty store and registry.
func NewGameServer(logger *logrus.Logger) *GameServer {
	return &GameServer{
		Log:      logger,
		Store:    game.NewGameStore(),
		Registry: identity.NewRegistry(),
		seenKeys: make(map[uuid.UUID]map[string]struct{}),
	}
}

// Routes registers the HTTP surface on a fresh mux. Trailing-slash
// variants are registered alongside so clients posting to /login/ and
// /games/ resolve without a redirect.
func (s *GameServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", s.LoginHandler)
	mux.HandleFunc("POST /login/{$}", s.LoginHandler)

	mux.HandleFunc("POST /games", s.CreateGameHandler)
	mux.HandleFunc("POST /games/{$}", s.CreateGameHandler)
	mux.HandleFunc("GET /games/{id}", s.FetchGameHandler)
	mux.HandleFunc("POST /games/{id}/start", s.StartGameHandler)
	mux.HandleFunc("POST /games/{id}/play", s.PlayCardHandler)
	mux.HandleFunc("POST /games/{id}/draw", s.DrawCardHandler)
	mux.HandleFunc("POST /games/{id}/join", s.JoinGameHandler)

	return mux
}

// isDuplicate reports whether the key was already applied against the
// game. Empty keys are never duplicates; clients opt in per request.
func (s *GameServer) isDuplicate(gameID uuid.UUID, key string) bool {
	if key == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := s.seenKeys[gameID]
	if !ok {
		return false
	}
	_, seen := keys[key]
	return seen
}

// markApplied records the key after its command succeeded.
func (s *GameServer) markApplied(gameID uuid.UUID, key string) {
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := s.seenKeys[gameID]
	if !ok {
		keys = make(map[string]struct{})
		s.seenKeys[gameID] = keys
	}
	keys[key] = struct{}{}
}
