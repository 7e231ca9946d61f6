package accounts

import (
	"context"
	"errors"
)

var (
	// ErrDuplicateAccount is returned by Create when a record with the
	// same account id already exists. Create never overwrites silently.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrStoreUnavailable wraps underlying storage faults. Callers must
	// surface it, not swallow it; the operation may be retried by the
	// caller.
	ErrStoreUnavailable = errors.New("account store unavailable")
)

// Repository is the persistence boundary for accounts. Counter mutations
// must be atomic at the storage layer: concurrent calls for the same
// account id must not lose updates.
type Repository interface {
	// Create stores a new account with status pending and a zero
	// attempts counter. Fails with ErrDuplicateAccount if the id is
	// already present.
	Create(ctx context.Context, accountID, email, displayName string) (*Account, error)

	// FindByID returns common.ErrorNotFound when no record exists.
	FindByID(ctx context.Context, accountID string) (*Account, error)

	// SetStatus updates the lifecycle status and refreshes updated_at.
	SetStatus(ctx context.Context, accountID string, status Status) (*Account, error)

	// IncrementAttempts atomically adds 1 to the verification-attempts
	// counter and returns the record carrying the new value.
	IncrementAttempts(ctx context.Context, accountID string) (*Account, error)

	// ResetAttempts atomically sets the counter back to 0.
	ResetAttempts(ctx context.Context, accountID string) (*Account, error)
}
