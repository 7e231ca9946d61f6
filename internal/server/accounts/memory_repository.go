package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/umeduck/quack-note/internal/common"
)

// MemoryRepository is a map-backed Repository used in tests and local
// development. Mutations hold the repository mutex for their whole
// read-modify-write, giving the same lost-update-free counter semantics as
// the DynamoDB implementation.
type MemoryRepository struct {
	mu       sync.Mutex
	accounts map[string]*Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[string]*Account)}
}

func (r *MemoryRepository) Create(ctx context.Context, accountID, email, displayName string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[accountID]; ok {
		return nil, ErrDuplicateAccount
	}

	now := time.Now().UTC()
	account := &Account{
		AccountID:   accountID,
		Email:       email,
		DisplayName: displayName,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.accounts[accountID] = account

	copied := *account
	return &copied, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, accountID string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *MemoryRepository) SetStatus(ctx context.Context, accountID string, status Status) (*Account, error) {
	return r.mutate(accountID, func(a *Account) {
		a.Status = status
	})
}

func (r *MemoryRepository) IncrementAttempts(ctx context.Context, accountID string) (*Account, error) {
	return r.mutate(accountID, func(a *Account) {
		a.VerificationAttempts++
	})
}

func (r *MemoryRepository) ResetAttempts(ctx context.Context, accountID string) (*Account, error) {
	return r.mutate(accountID, func(a *Account) {
		a.VerificationAttempts = 0
	})
}

func (r *MemoryRepository) mutate(accountID string, fn func(*Account)) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	fn(account)
	account.UpdatedAt = time.Now().UTC()

	copied := *account
	return &copied, nil
}
