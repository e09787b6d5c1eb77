package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateAndGet(t *testing.T) {
	r := NewRegistry()

	u := r.Create("alice")
	require.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "alice", u.Username)

	got, ok := r.Get(u.ID)
	require.True(t, ok)
	assert.Same(t, u, got)

	_, ok = r.Get(uuid.New())
	assert.False(t, ok)
}

func TestRegistryEachLoginIsDistinct(t *testing.T) {
	r := NewRegistry()
	a := r.Create("dup")
	b := r.Create("dup")
	assert.NotEqual(t, a.ID, b.ID)
}
