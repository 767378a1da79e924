package threads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/textsense/textsense-client/internal/models"
)

func seedStore(t *testing.T) *Store {
	store, err := NewStore([]models.Thread{
		{ID: "post-1", Title: "Demo post", Surface: models.SurfaceComment},
		{ID: "chat-1", Title: "Alex", Surface: models.SurfaceChat},
	})
	require.NoError(t, err)
	return store
}

func TestNewStore_RejectsBadSeeds(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)

	_, err = NewStore([]models.Thread{
		{ID: "dup"},
		{ID: "dup"},
	})
	assert.Error(t, err)
}

func TestStore_AppendOrderAndIDs(t *testing.T) {
	store := seedStore(t)

	first, err := store.Append("post-1", "You", "first", models.StatusConfirmed)
	require.NoError(t, err)
	second, err := store.Append("post-1", "You", "second", models.StatusConfirmed)
	require.NoError(t, err)

	// IDs are unique and increase in append order
	assert.Greater(t, second.ID, first.ID)

	entries, err := store.Entries("post-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Text)
	assert.Equal(t, "second", entries[1].Text)
}

func TestStore_AppendDoesNotMutatePriorSnapshot(t *testing.T) {
	store := seedStore(t)

	_, err := store.Append("post-1", "You", "first", models.StatusConfirmed)
	require.NoError(t, err)

	before, err := store.Entries("post-1")
	require.NoError(t, err)
	require.Len(t, before, 1)

	_, err = store.Append("post-1", "You", "second", models.StatusConfirmed)
	require.NoError(t, err)

	// The earlier snapshot is unchanged by the later append
	assert.Len(t, before, 1)
	assert.Equal(t, "first", before[0].Text)

	after, err := store.Entries("post-1")
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestStore_AppendUnknownThread(t *testing.T) {
	store := seedStore(t)

	_, err := store.Append("missing", "You", "text", models.StatusConfirmed)
	assert.Error(t, err)
}

func TestStore_ThreadsAreIndependent(t *testing.T) {
	store := seedStore(t)

	_, err := store.Append("post-1", "You", "comment", models.StatusConfirmed)
	require.NoError(t, err)

	chatEntries, err := store.Entries("chat-1")
	require.NoError(t, err)
	assert.Empty(t, chatEntries)
}

func TestStore_Select(t *testing.T) {
	store := seedStore(t)

	// First seeded thread starts selected
	assert.Equal(t, "post-1", store.Selected().ID)

	require.NoError(t, store.Select("chat-1"))
	assert.Equal(t, "chat-1", store.Selected().ID)

	// Unknown threads are an error, never a silent fallback
	err := store.Select("missing")
	assert.Error(t, err)
	assert.Equal(t, "chat-1", store.Selected().ID)
}

func TestStore_Confirm(t *testing.T) {
	store := seedStore(t)

	entry, err := store.Append("post-1", "You", "held", models.StatusPendingReview)
	require.NoError(t, err)

	require.NoError(t, store.Confirm("post-1", entry.ID))

	entries, err := store.Entries("post-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, entries[0].Status)

	// Confirming again is a no-op, never a regression
	require.NoError(t, store.Confirm("post-1", entry.ID))
	entries, err = store.Entries("post-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, entries[0].Status)

	assert.Error(t, store.Confirm("post-1", entry.ID+1))
	assert.Error(t, store.Confirm("missing", entry.ID))
}
