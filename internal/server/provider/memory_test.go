package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_FullFlow(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	out, err := m.Register(ctx, "Ann", "ann@x.com", "longenough1")
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccountID)
	assert.True(t, out.PendingConfirmation)
	assert.Equal(t, "a***@x.com", out.Delivery.Destination)

	_, err = m.Register(ctx, "Ann", "ann@x.com", "longenough1")
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	err = m.Confirm(ctx, "ann@x.com", "000000")
	assert.ErrorIs(t, err, ErrCodeMismatch)

	require.NoError(t, m.Confirm(ctx, "ann@x.com", MemoryConfirmationCode))

	err = m.Confirm(ctx, "ann@x.com", MemoryConfirmationCode)
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)

	snapshot, err := m.Lookup(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, out.AccountID, snapshot.AccountID)
	assert.True(t, snapshot.Confirmed)
}

func TestMemory_WeakPassword(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	_, err := m.Register(context.Background(), "Ann", "ann@x.com", "short")
	assert.ErrorIs(t, err, ErrWeakCredential)
}

func TestMemory_ResendAndLookupUnknown(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	_, err := m.ResendCode(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrIdentityNotFound)

	_, err = m.Lookup(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrIdentityNotFound)
}
