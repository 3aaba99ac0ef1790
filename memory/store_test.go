package memory_test

import (
	"testing"

	"github.com/soartravel/soar/errors"
	"github.com/soartravel/soar/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_Search(t *testing.T) {
	store := memory.NewInMemoryStore()
	ctx := t.Context()

	require.NoError(t, store.Add(ctx, "Trip to Tokyo from November 1, 2026 to November 8, 2026.", "u1"))
	require.NoError(t, store.Add(ctx, "My passport number is 123456", "u1"))
	require.NoError(t, store.Add(ctx, "Trip to Tokyo with my sister", "u2"))

	records, err := store.Search(ctx, "Tokyo trip dates", "u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "u1", records[0].OwnerUserID)
	assert.Contains(t, records[0].Text, "Tokyo")
	require.NotNil(t, records[0].Score)
	assert.Greater(t, *records[0].Score, 0.0)
	assert.LessOrEqual(t, *records[0].Score, 1.0+1e-9)
	assert.NotEmpty(t, records[0].ID)
	assert.NotEmpty(t, records[0].CreatedAt)
}

func TestInMemoryStore_SearchScopesByUser(t *testing.T) {
	store := memory.NewInMemoryStore()
	ctx := t.Context()

	require.NoError(t, store.Add(ctx, "My passport number is 123456", "u1"))

	records, err := store.Search(ctx, "passport number", "u2")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestInMemoryStore_SearchRanksCloserTextHigher(t *testing.T) {
	store := memory.NewInMemoryStore()
	ctx := t.Context()

	require.NoError(t, store.Add(ctx, "Flight KE123 from Seoul to Tokyo", "u1"))
	require.NoError(t, store.Add(ctx, "Flight KE123 delayed, hotel in Osaka booked, dinner reservation at eight", "u1"))

	records, err := store.Search(ctx, "flight KE123 Tokyo", "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	top := memory.TopN(records, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "Flight KE123 from Seoul to Tokyo", top[0].Text)
}

func TestInMemoryStore_AddValidation(t *testing.T) {
	store := memory.NewInMemoryStore()

	err := store.Add(t.Context(), "text", "")
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	err = store.Add(t.Context(), "   ", "u1")
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}
