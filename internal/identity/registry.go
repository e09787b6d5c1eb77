// Package identity maps authenticated tokens to player identities. Login
// is upstream of the game core: it mints a fresh identity for a username
// and hands back a token whose subject resolves here.
package identity

import (
	"sync"

	"github.com/google/uuid"

	"github.com/uno-arcade/uno-service/internal/models"
)

// Registry is an in-memory identity store, safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*models.User
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		users: make(map[uuid.UUID]*models.User),
	}
}

// Create mints a new identity for the username. Usernames are not unique;
// every login produces a distinct player, matching the ephemeral-login
// model.
func (r *Registry) Create(username string) *models.User {
	u := &models.User{
		ID:       uuid.New(),
		Username: username,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return u
}

// Get resolves an identity by ID.
func (r *Registry) Get(id uuid.UUID) (*models.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	return u, ok
}
