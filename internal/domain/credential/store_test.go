package credential_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-web3/hrdesk-console/internal/domain/credential"
)

func TestMemory_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemory()

	_, ok := store.Get(ctx)
	assert.False(t, ok, "new store is empty")

	require.NoError(t, store.Set(ctx, "abc"))
	token, ok := store.Get(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	require.NoError(t, store.Clear(ctx))
	token, ok = store.Get(ctx)
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestMemory_DoesNotValidateShape(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemory()

	require.NoError(t, store.Set(ctx, "not a jwt at all"))
	token, ok := store.Get(ctx)
	assert.True(t, ok)
	assert.Equal(t, "not a jwt at all", token)
}

func TestNone_NeverHoldsToken(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, credential.None.Set(ctx, "abc"))
	_, ok := credential.None.Get(ctx)
	assert.False(t, ok)
}
