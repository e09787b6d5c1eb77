package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/uno-arcade/uno-service/internal/auth"
	"github.com/uno-arcade/uno-service/internal/database"
	"github.com/uno-arcade/uno-service/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// LoginHandler mints a player identity for a username and returns a bearer
// token for it. Every subsequent request carries the token in the
// Authorization header; there is no process-wide default credential.
//
// Request payload:
//
//	{
//	  "username": "somebody"
//	}
//
// Response payload:
//
//	{
//	  "token": "{jwt}"
//	}
func (s *GameServer) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		http.Error(w, "empty username", http.StatusBadRequest)
		return
	}

	user := s.Registry.Create(req.Username)

	if err := database.SavePlayer(r.Context(), user); err != nil {
		s.Log.WithError(err).Warn("failed to persist player record")
	}

	token, err := auth.CreateToken(user.ID.String())
	if err != nil {
		s.Log.WithError(err).Error("failed to create token")
		http.Error(w, "failed to create token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// requireUser resolves the bearer token to an active identity. Returns nil
// after writing a 401 when the token is missing, invalid, or unknown.
func (s *GameServer) requireUser(w http.ResponseWriter, r *http.Request) *models.User {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return nil
	}

	subject, err := auth.VerifyToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return nil
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		http.Error(w, "invalid user id in token", http.StatusUnauthorized)
		return nil
	}

	user, ok := s.Registry.Get(userID)
	if !ok {
		http.Error(w, "unknown identity", http.StatusUnauthorized)
		return nil
	}
	return user
}
