package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanthreads/cartservice/internal/domain/session"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
)

func TestInMemoryStore_IdentityLifecycle(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_, err := store.Identity(ctx, "v1")
	require.ErrorIs(t, err, shared.ErrNotFound)

	identity, err := session.NewIdentity("Jamie Rivera", "jamie@example.com")
	require.NoError(t, err)
	require.NoError(t, store.SetIdentity(ctx, "v1", identity))

	got, err := store.Identity(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "Jamie Rivera", got.Name)
	assert.Equal(t, "jamie@example.com", got.Email)

	require.NoError(t, store.ClearIdentity(ctx, "v1"))
	_, err = store.Identity(ctx, "v1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInMemoryStore_IdentitiesAreIsolatedPerVisitor(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	identity, err := session.NewIdentity("Jamie Rivera", "jamie@example.com")
	require.NoError(t, err)
	require.NoError(t, store.SetIdentity(ctx, "v1", identity))

	_, err = store.Identity(ctx, "v2")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInMemoryStore_ConsentDefaultsToUnknown(t *testing.T) {
	store := NewInMemoryStore()

	decision, err := store.Consent(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, session.ConsentUnknown, decision)
}

func TestInMemoryStore_ConsentRoundTrip(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetConsent(ctx, "v1", session.ConsentGranted))
	decision, err := store.Consent(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, session.ConsentGranted, decision)

	require.NoError(t, store.SetConsent(ctx, "v1", session.ConsentDeclined))
	decision, err = store.Consent(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, session.ConsentDeclined, decision)
}

func TestNewIdentity_Validation(t *testing.T) {
	_, err := session.NewIdentity("", "jamie@example.com")
	assert.Error(t, err)

	_, err = session.NewIdentity("Jamie", "not-an-email")
	assert.Error(t, err)

	identity, err := session.NewIdentity("  Jamie  ", " jamie@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Jamie", identity.Name)
	assert.Equal(t, "jamie@example.com", identity.Email)
}
