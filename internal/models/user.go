package models

import "github.com/google/uuid"

// User is a logged-in identity. Login is username-only; users are ephemeral
// unless a database is configured, in which case they are persisted for
// result history.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}
