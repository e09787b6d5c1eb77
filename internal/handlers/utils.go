package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/uno-arcade/uno-service/internal/game"
)

// bearerToken extracts the token from an "Authorization: Bearer ..." header,
// or returns empty if absent.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeGameError maps a typed engine rejection onto an HTTP status. Every
// rejection surfaces its reason; nothing collapses into a generic failure.
func writeGameError(w http.ResponseWriter, err error) {
	writeJSON(w, gameErrorStatus(err), map[string]string{"error": err.Error()})
}

func gameErrorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotAMember):
		return http.StatusForbidden
	case errors.Is(err, game.ErrWrongPassword):
		return http.StatusForbidden
	case errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrCardNotInHand),
		errors.Is(err, game.ErrIllegalPlay),
		errors.Is(err, game.ErrGameFull),
		errors.Is(err, game.ErrAlreadyJoined),
		errors.Is(err, game.ErrNotEnoughPlayers),
		errors.Is(err, game.ErrGameAlreadyStarted),
		errors.Is(err, game.ErrGameNotJoinable),
		errors.Is(err, game.ErrGameFinished),
		errors.Is(err, game.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, game.ErrDeckExhausted):
		// Deck too small for the table: a configuration bug, not
		// something the caller can retry around.
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
