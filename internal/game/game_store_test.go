package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetUnknownGame(t *testing.T) {
	s := NewGameStore()
	_, err := s.Get(uuid.New())
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestStoreAddGetDelete(t *testing.T) {
	s := NewGameStore()
	g, err := NewGame("test", "", testRules())
	require.NoError(t, err)

	s.Add(g)
	got, err := s.Get(g.ID)
	require.NoError(t, err)
	assert.Same(t, g, got)
	assert.Equal(t, 1, s.Len())

	s.Delete(g.ID)
	_, err = s.Get(g.ID)
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestStoreJoinDelegatesPasswordGate(t *testing.T) {
	s := NewGameStore()
	g, err := NewGame("locked", "secret", testRules())
	require.NoError(t, err)
	s.Add(g)

	_, err = s.Join(g.ID, newSeat("guess"), "nope")
	require.ErrorIs(t, err, ErrWrongPassword)

	joined, err := s.Join(g.ID, newSeat("member"), "secret")
	require.NoError(t, err)
	assert.Len(t, joined.Players, 1)

	_, err = s.Join(uuid.New(), newSeat("lost"), "")
	require.ErrorIs(t, err, ErrGameNotFound)
}
