package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRegisterGetRemove(t *testing.T) {
	store := NewStore()

	_, ok := store.Get("game_1_2")
	assert.False(t, ok)

	sess := NewSession(1, 2)
	store.Register(sess)

	got, ok := store.Get("game_1_2")
	require.True(t, ok)
	assert.Same(t, sess, got)

	store.Remove("game_1_2")
	_, ok = store.Get("game_1_2")
	assert.False(t, ok)

	// Removing an absent room is a no-op.
	store.Remove("game_1_2")
}

func TestStoreFindByParticipant(t *testing.T) {
	store := NewStore()
	store.Register(NewSession(1, 2))
	store.Register(NewSession(3, 4))

	for uid, want := range map[int64]string{1: "game_1_2", 2: "game_1_2", 3: "game_3_4", 4: "game_3_4"} {
		sess, ok := store.FindByParticipant(uid)
		require.True(t, ok, "user %d", uid)
		assert.Equal(t, want, sess.RoomID)
	}

	_, ok := store.FindByParticipant(99)
	assert.False(t, ok)
}

func TestStoreOccupancy(t *testing.T) {
	store := NewStore()
	assert.Empty(t, store.Occupancy())

	store.Register(NewSession(1, 2))
	store.Register(NewSession(3, 4))

	occ := store.Occupancy()
	assert.Equal(t, map[int64]string{
		1: "game_1_2",
		2: "game_1_2",
		3: "game_3_4",
		4: "game_3_4",
	}, occ)
}
