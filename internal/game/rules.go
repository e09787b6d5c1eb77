package game

import (
	"os"
	"strconv"

	"github.com/uno-arcade/uno-service/internal/models"
)

// Rules holds the configurable constants of a game. The defaults follow
// common UNO conventions; none of them are hard requirements of the engine.
type Rules struct {
	HandSize   int   `json:"handSize"`   // cards dealt to each player at start
	MinPlayers int   `json:"minPlayers"` // minimum players required to start
	MaxPlayers int   `json:"maxPlayers"` // join capacity
	ForcedDraw int   `json:"forcedDraw"` // cards drawn for D2; W4 draws double
	Seed       int64 `json:"-"`          // non-zero => deterministic shuffles

	// DrawAdvancesTurn selects the post-draw policy: when true, drawing a
	// card ends the player's turn whether or not the card is playable.
	// This mirrors the reference behavior; flipping it requires players to
	// follow a draw with an explicit play.
	DrawAdvancesTurn bool `json:"drawAdvancesTurn"`
}

// DefaultRules builds the standard rule set, with hand size and capacity
// overridable through UNO_HAND_SIZE and UNO_MAX_PLAYERS.
func DefaultRules() Rules {
	return Rules{
		HandSize:         getEnvInt("UNO_HAND_SIZE", 7),
		MinPlayers:       2,
		MaxPlayers:       getEnvInt("UNO_MAX_PLAYERS", 10),
		ForcedDraw:       2,
		DrawAdvancesTurn: true,
	}
}

// Matches is the single source of truth for play legality. A candidate is
// playable iff it is a wild-family card, shares the color currently in
// effect (the top card's color, or the chosen color after a wild), or
// shares the top card's value. It is pure: the same function backs both
// validation and the legal-move hints in snapshots.
func Matches(top models.Card, activeColor string, candidate models.Card) bool {
	if candidate.IsWild() {
		return true
	}
	if candidate.Color == activeColor {
		return true
	}
	return candidate.Value == top.Value
}

func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
