package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/uno-arcade/uno-service/internal/cache"
	"github.com/uno-arcade/uno-service/internal/database"
	"github.com/uno-arcade/uno-service/internal/game"
	"github.com/uno-arcade/uno-service/internal/models"
)

type createGameRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type joinGameRequest struct {
	Password string `json:"password"`
}

// playCardRequest carries the card to play. "value" is the canonical field;
// "number" is accepted for number cards for client compatibility. Wild
// plays must set chosenColor.
type playCardRequest struct {
	Color       string `json:"color"`
	Value       string `json:"value"`
	Number      *int   `json:"number"`
	ChosenColor string `json:"chosenColor"`
}

// CreateGameHandler creates a new Open game and joins the creator to it.
// The creator becomes the host.
func (s *GameServer) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		req.Name = user.Username + "'s Game"
	}

	g, err := game.NewGame(req.Name, req.Password, game.DefaultRules())
	if err != nil {
		s.Log.WithError(err).Error("failed to create game")
		http.Error(w, "failed to create game", http.StatusInternalServerError)
		return
	}
	s.attachHooks(g)

	if err := g.Join(seatFor(user), req.Password); err != nil {
		writeGameError(w, err)
		return
	}
	s.Store.Add(g)

	s.Log.WithFields(logrus.Fields{
		"game": g.ID,
		"host": user.ID,
		"name": g.Name,
	}).Info("game created")

	w.Header().Set("Location", "/games/"+g.ID.String())
	writeJSON(w, http.StatusCreated, g.Snapshot(user.ID))
}

// FetchGameHandler returns the caller's view of a game. Read-only: only
// token validity and game existence are required.
func (s *GameServer) FetchGameHandler(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	g, err := s.resolveGame(w, r)
	if err != nil {
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot(user.ID))
}

// StartGameHandler transitions an Open game to Started.
func (s *GameServer) StartGameHandler(w http.ResponseWriter, r *http.Request) {
	user, g, ok := s.admitCommand(w, r)
	if !ok {
		return
	}
	if err := g.Start(); err != nil {
		writeGameError(w, err)
		return
	}
	s.commandApplied(r, g)
	writeJSON(w, http.StatusOK, g.Snapshot(user.ID))
}

// PlayCardHandler applies a card play for the caller.
func (s *GameServer) PlayCardHandler(w http.ResponseWriter, r *http.Request) {
	user, g, ok := s.admitCommand(w, r)
	if !ok {
		return
	}

	var req playCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Value == "" && req.Number != nil {
		req.Value = strconv.Itoa(*req.Number)
	}
	if req.Value == "" {
		http.Error(w, "missing card value", http.StatusBadRequest)
		return
	}

	card := models.Card{Color: req.Color, Value: req.Value}
	if err := g.Play(user.ID, card, req.ChosenColor); err != nil {
		writeGameError(w, err)
		return
	}
	s.commandApplied(r, g)
	writeJSON(w, http.StatusOK, g.Snapshot(user.ID))
}

// DrawCardHandler draws one card for the caller. The drawn card shows up
// only in the caller's own snapshot hand.
func (s *GameServer) DrawCardHandler(w http.ResponseWriter, r *http.Request) {
	user, g, ok := s.admitCommand(w, r)
	if !ok {
		return
	}
	if _, err := g.Draw(user.ID); err != nil {
		writeGameError(w, err)
		return
	}
	s.commandApplied(r, g)
	writeJSON(w, http.StatusOK, g.Snapshot(user.ID))
}

// JoinGameHandler adds the caller to an Open game, past the password gate.
// Join has no membership precondition; the caller is becoming a member.
func (s *GameServer) JoinGameHandler(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	gameID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid game id", http.StatusBadRequest)
		return
	}

	var req joinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	if key := r.Header.Get("Idempotency-Key"); s.isDuplicate(gameID, key) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "duplicate command"})
		return
	}

	g, err := s.Store.Join(gameID, seatFor(user), req.Password)
	if err != nil {
		writeGameError(w, err)
		return
	}
	s.commandApplied(r, g)
	writeJSON(w, http.StatusOK, g.Snapshot(user.ID))
}

// admitCommand runs the gateway checks shared by every mutating command:
// identity, game resolution, membership, and idempotency. Identity
// resolution happens outside the game's critical section.
func (s *GameServer) admitCommand(w http.ResponseWriter, r *http.Request) (*models.User, *game.Game, bool) {
	user := s.requireUser(w, r)
	if user == nil {
		return nil, nil, false
	}
	g, err := s.resolveGame(w, r)
	if err != nil {
		return nil, nil, false
	}
	if !g.HasPlayer(user.ID) {
		writeGameError(w, game.ErrNotAMember)
		return nil, nil, false
	}
	if key := r.Header.Get("Idempotency-Key"); s.isDuplicate(g.ID, key) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "duplicate command"})
		return nil, nil, false
	}
	return user, g, true
}

func (s *GameServer) resolveGame(w http.ResponseWriter, r *http.Request) (*game.Game, error) {
	gameID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid game id", http.StatusBadRequest)
		return nil, err
	}
	g, err := s.Store.Get(gameID)
	if err != nil {
		writeGameError(w, err)
		return nil, err
	}
	return g, nil
}

// commandApplied records the idempotency key once its command succeeded.
func (s *GameServer) commandApplied(r *http.Request, g *game.Game) {
	s.markApplied(g.ID, r.Header.Get("Idempotency-Key"))
}

// attachHooks wires a new game into the historian queue and the result
// store.
func (s *GameServer) attachHooks(g *game.Game) {
	gameID := g.ID
	g.OnAction = func(index int, actorID uuid.UUID, action string, payload map[string]interface{}) {
		record := cache.GameActionRecord{
			GameID:        gameID,
			ActionIndex:   index,
			ActorID:       actorID,
			ActionType:    action,
			ActionPayload: payload,
			Timestamp:     time.Now().UnixMilli(),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := cache.PublishGameAction(ctx, record); err != nil {
				s.Log.WithError(err).Warn("failed to publish game action")
			}
		}()
	}
	g.OnFinish = func(g *game.Game, winnerID uuid.UUID) {
		result := database.GameResult{
			GameID:      g.ID,
			Name:        g.Name,
			WinnerID:    winnerID,
			PlayerCount: len(g.Players),
			FinishedAt:  time.Now().UTC(),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := database.SaveGameResult(ctx, result); err != nil {
				s.Log.WithError(err).Warn("failed to persist game result")
			}
		}()
	}
}

func seatFor(user *models.User) *models.Player {
	return &models.Player{
		ID:       user.ID,
		Username: user.Username,
	}
}
