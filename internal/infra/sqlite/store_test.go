package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTripAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, "quiz_id")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "quiz_id", "QUIZ_1"))
	require.NoError(t, store.Set(ctx, "quiz_id", "QUIZ_2"))
	require.NoError(t, store.Set(ctx, "collected_results", `[{"studentName":"Alice"}]`))
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "quiz_id")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "QUIZ_2", value)

	require.NoError(t, reopened.Delete(ctx, "quiz_id"))
	_, ok, err = reopened.Get(ctx, "quiz_id")
	require.NoError(t, err)
	assert.False(t, ok)

	value, _, _ = reopened.Get(ctx, "collected_results")
	assert.JSONEq(t, `[{"studentName":"Alice"}]`, value)
}

func TestDeleteMissingKeyIsNotAnError(t *testing.T) {
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Delete(context.Background(), "quiz_questions"))
}
