package game

import (
	"github.com/google/uuid"

	"github.com/uno-arcade/uno-service/internal/models"
)

// PlayerView is one player's seat from the perspective of a requesting
// user. Hands are revealed only to their owner; everyone else sees counts.
type PlayerView struct {
	ID            uuid.UUID     `json:"id"`
	Username      string        `json:"username"`
	HandSize      int           `json:"hand_size"`
	IsCurrentTurn bool          `json:"is_current_turn"`
	Hand          []models.Card `json:"hand,omitempty"`
}

// Snapshot is the redacted state of a game for one viewer. It is what
// every endpoint returns after a command is applied.
type Snapshot struct {
	GameID           uuid.UUID     `json:"game_id"`
	Name             string        `json:"name"`
	Host             uuid.UUID     `json:"host"`
	Status           Status        `json:"status"`
	GameOver         bool          `json:"game_over"`
	Direction        string        `json:"direction"`
	CurrentPlayer    uuid.UUID     `json:"current_player,omitempty"`
	ActiveColor      string        `json:"active_color,omitempty"`
	DiscardTop       *models.Card  `json:"discard_top,omitempty"`
	DrawPileCount    int           `json:"draw_pile_count"`
	DiscardPileCount int           `json:"discard_pile_count"`
	Players          []PlayerView  `json:"players"`
	Winner           uuid.UUID     `json:"winner,omitempty"`
	LegalMoves       []models.Card `json:"legal_moves,omitempty"`
}

// Snapshot builds a view of the game for the given user. LegalMoves is
// populated only for the viewer and only on their turn, straight from the
// same Matches predicate that validates plays.
func (g *Game) Snapshot(forUser uuid.UUID) Snapshot {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	snap := Snapshot{
		GameID:      g.ID,
		Name:        g.Name,
		Host:        g.HostID,
		Status:      g.Status,
		GameOver:    g.Status == StatusFinished,
		Direction:   directionLabel(g.Clockwise),
		ActiveColor: g.ActiveColor,
		Winner:      g.WinnerID,
		Players:     make([]PlayerView, 0, len(g.Players)),
	}

	if g.Deck != nil {
		snap.DrawPileCount = g.Deck.DrawCount()
		snap.DiscardPileCount = g.Deck.DiscardCount()
		if top, ok := g.Deck.Top(); ok {
			snap.DiscardTop = &top
		}
	}

	if g.Status == StatusStarted {
		snap.CurrentPlayer = g.Players[g.CurrentPlayerIndex].ID
	}

	for i, p := range g.Players {
		pv := PlayerView{
			ID:            p.ID,
			Username:      p.Username,
			HandSize:      len(p.Hand),
			IsCurrentTurn: g.Status == StatusStarted && i == g.CurrentPlayerIndex,
		}
		if p.ID == forUser {
			pv.Hand = append([]models.Card(nil), p.Hand...)
			if pv.IsCurrentTurn && snap.DiscardTop != nil {
				snap.LegalMoves = legalMoves(*snap.DiscardTop, g.ActiveColor, p.Hand)
			}
		}
		snap.Players = append(snap.Players, pv)
	}

	return snap
}

func legalMoves(top models.Card, activeColor string, hand []models.Card) []models.Card {
	var moves []models.Card
	for _, c := range hand {
		if Matches(top, activeColor, c) {
			moves = append(moves, c)
		}
	}
	return moves
}

func directionLabel(clockwise bool) string {
	if clockwise {
		return "clockwise"
	}
	return "counterclockwise"
}
