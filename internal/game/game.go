package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/uno-arcade/uno-service/internal/auth"
	"github.com/uno-arcade/uno-service/internal/models"
)

// Status is the lifecycle state of a game. The transition graph is linear:
// Open -> Started -> Finished, with no re-entry.
type Status string

const (
	StatusOpen     Status = "Open"
	StatusStarted  Status = "Started"
	StatusFinished Status = "Finished"
)

// OnActionFunc receives every successfully applied mutating command, for
// the action historian. Called while the game lock is held; implementations
// must not call back into the game.
type OnActionFunc func(index int, actorID uuid.UUID, action string, payload map[string]interface{})

// OnFinishFunc is invoked once when the game transitions to Finished.
type OnFinishFunc func(g *Game, winnerID uuid.UUID)

// Game holds the entire state of one game instance in memory. Mu is the
// unit of mutual exclusion: every mutating command on the same game
// serializes through it, while distinct games proceed independently.
type Game struct {
	ID     uuid.UUID
	Name   string
	HostID uuid.UUID
	Rules  Rules

	// Players in join order; join order is turn order, fixed at start.
	Players []*models.Player
	Deck    *Deck

	Status             Status
	CurrentPlayerIndex int
	Clockwise          bool
	// ActiveColor is the color currently in effect: the top card's color,
	// or the chosen color after a wild.
	ActiveColor string
	WinnerID    uuid.UUID

	passwordHash string
	actionIndex  int

	Mu sync.Mutex

	OnAction OnActionFunc
	OnFinish OnFinishFunc
}

// NewGame creates an empty game in the Open state. A non-empty password is
// hashed immediately; the plaintext is never retained.
func NewGame(name, password string, rules Rules) (*Game, error) {
	g := &Game{
		ID:        uuid.New(),
		Name:      name,
		Rules:     rules,
		Status:    StatusOpen,
		Clockwise: true,
	}
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash game password: %w", err)
		}
		g.passwordHash = hash
	}
	return g, nil
}

// Join adds a player to an Open game after the password gate. The first
// joined player becomes the host.
func (g *Game) Join(player *models.Player, password string) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	switch g.Status {
	case StatusOpen:
	case StatusStarted:
		return ErrGameAlreadyStarted
	default:
		return ErrGameNotJoinable
	}

	if g.passwordHash != "" {
		ok, err := auth.ComparePassword(password, g.passwordHash)
		if err != nil {
			return fmt.Errorf("failed to compare game password: %w", err)
		}
		if !ok {
			return ErrWrongPassword
		}
	}

	for _, p := range g.Players {
		if p.ID == player.ID {
			return ErrAlreadyJoined
		}
	}
	if len(g.Players) >= g.Rules.MaxPlayers {
		return ErrGameFull
	}

	player.Hand = nil
	g.Players = append(g.Players, player)
	if len(g.Players) == 1 {
		g.HostID = player.ID
	}

	g.logAction(player.ID, "game_join", map[string]interface{}{
		"username": player.Username,
	})
	return nil
}

// Leave removes a player. Permitted only while the game is Open; once turn
// order is fixed at start, seats cannot be vacated. If the host leaves, the
// next joined player inherits the game.
func (g *Game) Leave(playerID uuid.UUID) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Status != StatusOpen {
		return ErrInvalidState
	}
	for i, p := range g.Players {
		if p.ID != playerID {
			continue
		}
		g.Players = append(g.Players[:i], g.Players[i+1:]...)
		if g.HostID == playerID && len(g.Players) > 0 {
			g.HostID = g.Players[0].ID
		}
		g.logAction(playerID, "game_leave", nil)
		return nil
	}
	return ErrNotAMember
}

// HasPlayer reports membership. Used by the gateway before it forwards any
// mutating command.
func (g *Game) HasPlayer(playerID uuid.UUID) bool {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.playerByID(playerID) != nil
}

// Start deals each player a hand, flips the initial discard, and hands the
// turn to the first joined player. Valid exactly once, from Open.
func (g *Game) Start() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Status != StatusOpen {
		return ErrInvalidState
	}
	if len(g.Players) < g.Rules.MinPlayers {
		return ErrNotEnoughPlayers
	}

	g.Deck = NewDeck(deckSets(len(g.Players)), g.Rules.Seed)

	for _, p := range g.Players {
		hand, err := g.Deck.Draw(g.Rules.HandSize)
		if err != nil {
			return fmt.Errorf("dealing %d cards to %s: %w", g.Rules.HandSize, p.ID, err)
		}
		p.Hand = hand
	}

	top, err := g.flipInitialDiscard()
	if err != nil {
		return err
	}

	g.ActiveColor = top.Color
	g.CurrentPlayerIndex = 0
	g.Clockwise = true
	g.Status = StatusStarted

	g.logAction(g.HostID, "game_start", map[string]interface{}{
		"players": len(g.Players),
	})
	return nil
}

// flipInitialDiscard draws until a number card turns up, burying any action
// or wild card back into the draw pile. The standard deck composition makes
// the loop terminate; the attempt cap only guards degenerate custom decks,
// falling back to accepting whatever came up last.
func (g *Game) flipInitialDiscard() (models.Card, error) {
	var card models.Card
	for attempts := 0; ; attempts++ {
		drawn, err := g.Deck.Draw(1)
		if err != nil {
			return models.Card{}, err
		}
		card = drawn[0]
		if !card.IsAction() || attempts >= g.Deck.Size() {
			break
		}
		g.Deck.Bury(card)
	}
	if card.Color == models.ColorWild {
		card.Color = models.PaletteColors[0]
	}
	g.Deck.Play(card)
	return card, nil
}

// deckSets scales the deck to the table: one 108-card set per five players.
func deckSets(players int) int {
	return (players-1)/5 + 1
}

// Play validates and applies a card play for the given player. On any
// rejection the game state is untouched. Wild-family cards must carry a
// chosen palette color. Action effects are applied before the turn
// advances: S skips the next player, R flips direction (acting as a skip
// with exactly two players), D2 and W4 make the next player force-draw and
// lose their turn. Emptying the hand finishes the game.
func (g *Game) Play(playerID uuid.UUID, card models.Card, chosenColor string) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if err := g.checkTurn(playerID); err != nil {
		return err
	}
	player := g.playerByID(playerID)

	if !player.HasCard(card) {
		return ErrCardNotInHand
	}

	if card.IsWild() {
		if !validPaletteColor(chosenColor) {
			return ErrIllegalPlay
		}
	} else {
		chosenColor = card.Color
	}

	top, _ := g.Deck.Top()
	if !Matches(top, g.ActiveColor, card) {
		return ErrIllegalPlay
	}

	// Forced draws must be coverable before any mutation happens, so a
	// pathological small-deck setup rejects cleanly instead of corrupting
	// hands halfway through.
	forced := forcedDrawCount(card, g.Rules)
	if forced > g.Deck.Available() {
		return ErrDeckExhausted
	}

	player.RemoveCard(card)
	played := models.Card{Color: chosenColor, Value: card.Value}
	g.Deck.Play(played)
	g.ActiveColor = chosenColor

	skip := false
	switch card.Value {
	case models.ValueSkip:
		skip = true
	case models.ValueReverse:
		if len(g.Players) == 2 {
			skip = true
		} else {
			g.Clockwise = !g.Clockwise
		}
	case models.ValueDrawTwo, models.ValueWildDrawFour:
		victim := g.Players[g.nextIndex(g.CurrentPlayerIndex)]
		cards, err := g.Deck.Draw(forced)
		if err != nil {
			// Unreachable after the pre-check above.
			return err
		}
		victim.Hand = append(victim.Hand, cards...)
		skip = true
	}

	g.logAction(playerID, "game_play", map[string]interface{}{
		"color": played.Color,
		"value": played.Value,
	})

	if len(player.Hand) == 0 {
		g.finish(playerID)
		return nil
	}

	g.CurrentPlayerIndex = g.nextIndex(g.CurrentPlayerIndex)
	if skip {
		g.CurrentPlayerIndex = g.nextIndex(g.CurrentPlayerIndex)
	}
	return nil
}

// Draw gives the current player exactly one card from the deck. Under the
// DrawAdvancesTurn policy the turn then passes whether or not the card is
// playable; forced draws from D2/W4 never route through here, they are
// applied by Play directly.
func (g *Game) Draw(playerID uuid.UUID) (models.Card, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if err := g.checkTurn(playerID); err != nil {
		return models.Card{}, err
	}
	player := g.playerByID(playerID)

	cards, err := g.Deck.Draw(1)
	if err != nil {
		return models.Card{}, err
	}
	player.Hand = append(player.Hand, cards...)

	g.logAction(playerID, "game_draw", map[string]interface{}{
		"handSize": len(player.Hand),
	})

	if g.Rules.DrawAdvancesTurn {
		g.CurrentPlayerIndex = g.nextIndex(g.CurrentPlayerIndex)
	}
	return cards[0], nil
}

// checkTurn validates state and turn ownership for a mutating command.
// Callers must hold the lock.
func (g *Game) checkTurn(playerID uuid.UUID) error {
	switch g.Status {
	case StatusStarted:
	case StatusFinished:
		return ErrGameFinished
	default:
		return ErrInvalidState
	}
	if g.playerByID(playerID) == nil {
		return ErrNotAMember
	}
	if g.Players[g.CurrentPlayerIndex].ID != playerID {
		return ErrNotYourTurn
	}
	return nil
}

func (g *Game) playerByID(playerID uuid.UUID) *models.Player {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (g *Game) nextIndex(from int) int {
	if g.Clockwise {
		return (from + 1) % len(g.Players)
	}
	if from == 0 {
		return len(g.Players) - 1
	}
	return from - 1
}

func (g *Game) finish(winnerID uuid.UUID) {
	g.Status = StatusFinished
	g.WinnerID = winnerID
	g.logAction(winnerID, "game_end", map[string]interface{}{
		"winner": winnerID.String(),
	})
	if g.OnFinish != nil {
		g.OnFinish(g, winnerID)
	}
}

func (g *Game) logAction(actorID uuid.UUID, action string, payload map[string]interface{}) {
	g.actionIndex++
	if g.OnAction != nil {
		g.OnAction(g.actionIndex, actorID, action, payload)
	}
}

func forcedDrawCount(card models.Card, rules Rules) int {
	switch card.Value {
	case models.ValueDrawTwo:
		return rules.ForcedDraw
	case models.ValueWildDrawFour:
		return rules.ForcedDraw * 2
	}
	return 0
}

func validPaletteColor(color string) bool {
	for _, c := range models.PaletteColors {
		if c == color {
			return true
		}
	}
	return false
}
