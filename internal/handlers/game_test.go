package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uno-arcade/uno-service/internal/auth"
	"github.com/uno-arcade/uno-service/internal/game"
	"github.com/uno-arcade/uno-service/internal/models"
)

func newTestServer(t *testing.T) (*GameServer, *http.ServeMux) {
	t.Helper()
	auth.Init() // ephemeral signing keys, no external services needed

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s := NewGameServer(logger)
	return s, s.Routes()
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, token string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, mux *http.ServeMux, username string) string {
	t.Helper()
	w := doJSON(t, mux, "POST", "/login/", "", map[string]string{"username": username}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeSnapshot(t *testing.T, w *httptest.ResponseRecorder) game.Snapshot {
	t.Helper()
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	return snap
}

func TestLoginRejectsEmptyUsername(t *testing.T) {
	_, mux := newTestServer(t)
	w := doJSON(t, mux, "POST", "/login/", "", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGameRequiresAuth(t *testing.T) {
	_, mux := newTestServer(t)
	w := doJSON(t, mux, "POST", "/games/", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateGameJoinsCreatorAsHost(t *testing.T) {
	_, mux := newTestServer(t)
	token := login(t, mux, "alice")

	w := doJSON(t, mux, "POST", "/games/", token, nil, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Location"), "/games/")

	snap := decodeSnapshot(t, w)
	assert.Equal(t, game.StatusOpen, snap.Status)
	assert.Equal(t, "alice's Game", snap.Name)
	require.Len(t, snap.Players, 1)
	assert.Equal(t, snap.Players[0].ID, snap.Host)
}

func TestFetchUnknownGame(t *testing.T) {
	_, mux := newTestServer(t)
	token := login(t, mux, "alice")

	w := doJSON(t, mux, "GET", "/games/"+uuid.NewString(), token, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartRejectsNonMember(t *testing.T) {
	_, mux := newTestServer(t)
	host := login(t, mux, "alice")
	outsider := login(t, mux, "mallory")

	created := decodeSnapshot(t, doJSON(t, mux, "POST", "/games/", host, nil, nil))

	w := doJSON(t, mux, "POST", "/games/"+created.GameID.String()+"/start", outsider, nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJoinWrongPassword(t *testing.T) {
	_, mux := newTestServer(t)
	host := login(t, mux, "alice")
	guest := login(t, mux, "bob")

	created := decodeSnapshot(t, doJSON(t, mux, "POST", "/games/", host,
		map[string]string{"password": "sekrit"}, nil))
	gameURL := "/games/" + created.GameID.String()

	w := doJSON(t, mux, "POST", gameURL+"/join", guest, map[string]string{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The rejected player was not added.
	snap := decodeSnapshot(t, doJSON(t, mux, "GET", gameURL, host, nil, nil))
	assert.Len(t, snap.Players, 1)

	w = doJSON(t, mux, "POST", gameURL+"/join", guest, map[string]string{"password": "sekrit"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decodeSnapshot(t, w).Players, 2)
}

func TestStartNeedsTwoPlayers(t *testing.T) {
	_, mux := newTestServer(t)
	host := login(t, mux, "alice")

	created := decodeSnapshot(t, doJSON(t, mux, "POST", "/games/", host, nil, nil))
	w := doJSON(t, mux, "POST", "/games/"+created.GameID.String()+"/start", host, nil, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestIdempotencyKeyRejectsReplay(t *testing.T) {
	_, mux := newTestServer(t)
	host := login(t, mux, "alice")
	guest := login(t, mux, "bob")

	created := decodeSnapshot(t, doJSON(t, mux, "POST", "/games/", host, nil, nil))
	joinURL := "/games/" + created.GameID.String() + "/join"
	key := map[string]string{"Idempotency-Key": "join-attempt-1"}

	w := doJSON(t, mux, "POST", joinURL, guest, nil, key)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, mux, "POST", joinURL, guest, nil, key)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate")
}

// viewOf returns the viewer's own seat from a snapshot (the one whose hand
// is revealed).
func viewOf(t *testing.T, snap game.Snapshot, id uuid.UUID) game.PlayerView {
	t.Helper()
	for _, p := range snap.Players {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("player %s not in snapshot", id)
	return game.PlayerView{}
}

func isNumberCard(c models.Card) bool {
	return len(c.Value) == 1 && c.Value[0] >= '0' && c.Value[0] <= '9'
}

// TestEndToEndFlow walks the full surface: two logins, create, join,
// start, then alternating turns. Shuffles are random at this layer, so
// each turn plays a legal number card when one is held and draws
// otherwise; either way the hand sizes and the turn pointer must stay
// consistent.
func TestEndToEndFlow(t *testing.T) {
	_, mux := newTestServer(t)
	tokens := map[uuid.UUID]string{}

	aliceToken := login(t, mux, "alice")
	bobToken := login(t, mux, "bob")

	created := decodeSnapshot(t, doJSON(t, mux, "POST", "/games/", aliceToken, nil, nil))
	gameURL := "/games/" + created.GameID.String()
	aliceID := created.Players[0].ID
	tokens[aliceID] = aliceToken

	joined := decodeSnapshot(t, doJSON(t, mux, "POST", gameURL+"/join", bobToken, nil, nil))
	require.Len(t, joined.Players, 2)
	bobID := joined.Players[1].ID
	tokens[bobID] = bobToken

	w := doJSON(t, mux, "POST", gameURL+"/start", aliceToken, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap := decodeSnapshot(t, w)

	require.Equal(t, game.StatusStarted, snap.Status)
	require.Equal(t, aliceID, snap.CurrentPlayer, "first joined player acts first")
	for _, p := range snap.Players {
		assert.Equal(t, 7, p.HandSize)
	}
	require.NotNil(t, snap.DiscardTop)

	other := map[uuid.UUID]uuid.UUID{aliceID: bobID, bobID: aliceID}

	for turn := 0; turn < 4; turn++ {
		current := snap.CurrentPlayer
		view := decodeSnapshot(t, doJSON(t, mux, "GET", gameURL, tokens[current], nil, nil))
		mine := viewOf(t, view, current)
		require.Equal(t, mine.HandSize, len(mine.Hand), "own hand is fully revealed")

		var play *models.Card
		for _, c := range view.LegalMoves {
			if isNumberCard(c) {
				play = &c
				break
			}
		}

		if play != nil {
			w = doJSON(t, mux, "POST", gameURL+"/play", tokens[current],
				map[string]string{"color": play.Color, "value": play.Value}, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			snap = decodeSnapshot(t, w)
			assert.Equal(t, mine.HandSize-1, viewOf(t, snap, current).HandSize)
		} else {
			w = doJSON(t, mux, "POST", gameURL+"/draw", tokens[current], nil, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			snap = decodeSnapshot(t, w)
			assert.Equal(t, mine.HandSize+1, viewOf(t, snap, current).HandSize)
		}

		if snap.GameOver {
			break
		}
		assert.Equal(t, other[current], snap.CurrentPlayer, "number plays and draws pass the turn")

		// Opponents never see the player's cards.
		theirView := decodeSnapshot(t, doJSON(t, mux, "GET", gameURL, tokens[other[current]], nil, nil))
		assert.Empty(t, viewOf(t, theirView, current).Hand)
	}
}
