package models

import "github.com/google/uuid"

// Player is a seat in a single game: the identity that joined plus the hand
// they hold. Hands are owned exclusively by the game that dealt them.
type Player struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Hand     []Card    `json:"-"`
}

// HasCard reports whether the player's hand contains a card matching the
// given value identity. Wild cards match on value alone since the card in
// hand carries ColorWild while the played card carries the chosen color.
func (p *Player) HasCard(card Card) bool {
	return p.cardIndex(card) >= 0
}

// RemoveCard removes one instance of the card from the hand and reports
// whether it was present.
func (p *Player) RemoveCard(card Card) bool {
	idx := p.cardIndex(card)
	if idx < 0 {
		return false
	}
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	return true
}

func (p *Player) cardIndex(card Card) int {
	for i, c := range p.Hand {
		if c.Value != card.Value {
			continue
		}
		if c.Color == card.Color || c.IsWild() {
			return i
		}
	}
	return -1
}
