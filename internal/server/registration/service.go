// Package registration orchestrates the account-confirmation workflow: it
// coordinates the identity provider and the account store, deciding every
// account's next lifecycle status and whether to lock it after repeated
// confirmation failures.
package registration

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/umeduck/quack-note/internal/common"
	"github.com/umeduck/quack-note/internal/logging"
	"github.com/umeduck/quack-note/internal/server/accounts"
	"github.com/umeduck/quack-note/internal/server/provider"
)

// MaxVerificationAttempts is the inclusive lock threshold: the 5th failed
// confirmation locks the account.
const MaxVerificationAttempts = 5

// ErrAccountLocked is returned for any confirmation attempt against a
// locked account. Unlocking is an out-of-band operation.
var ErrAccountLocked = errors.New("account locked")

// MaxDisplayNameLength bounds the display name set at registration.
const MaxDisplayNameLength = 50

const minPasswordLength = 8

var emailRx = regexp.MustCompile(`(?i)^[\w+\-.]+@[a-z\d\-]+(\.[a-z\d\-]+)*\.[a-z]+$`)

// SignUpResult mirrors the provider's registration output; the local record
// is a side effect, not part of the caller-visible result.
type SignUpResult struct {
	AccountID           string
	PendingConfirmation bool
	Delivery            *provider.Delivery
}

type Service struct {
	provider provider.Provider
	store    accounts.Repository
	logger   logging.Logger
}

func NewService(p provider.Provider, store accounts.Repository, logger logging.Logger) *Service {
	return &Service{
		provider: p,
		store:    store,
		logger:   logger.With("module", "registration"),
	}
}

// SignUp validates input, registers the identity with the provider and
// creates the local account record with status pending.
//
// A local store failure after the remote identity exists is logged and not
// surfaced: the remote identity is the source of truth for future
// confirmation, so sign-up is still reported as successful.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (*SignUpResult, error) {

	if err := validateSignUp(name, email, password); err != nil {
		return nil, err
	}

	out, err := s.provider.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Create(ctx, out.AccountID, email, name); err != nil {
		s.logger.Error(ctx, "local account record not created; remote identity left as source of truth",
			"account_id", out.AccountID, "error", err)
	}

	return &SignUpResult{
		AccountID:           out.AccountID,
		PendingConfirmation: out.PendingConfirmation,
		Delivery:            out.Delivery,
	}, nil
}

// Confirm verifies the code with the provider and applies the resulting
// lifecycle transition to the local account.
//
// Resolving the username to a local record is best-effort: when it fails,
// the provider outcome is still returned and no local mutation happens.
// A locked account is denied before the provider is called.
func (s *Service) Confirm(ctx context.Context, username, code string) error {

	account := s.resolve(ctx, username)

	if account != nil && account.Status == accounts.StatusLocked {
		return ErrAccountLocked
	}

	outcome := s.provider.Confirm(ctx, username, code)

	if account == nil {
		return outcome
	}
	return s.applyOutcome(ctx, account, outcome)
}

// applyOutcome runs the status transition table for one confirmation event.
func (s *Service) applyOutcome(ctx context.Context, account *accounts.Account, outcome error) error {

	switch {
	case outcome == nil, errors.Is(outcome, provider.ErrAlreadyConfirmed):
		// Both land on active. The counter is reset so that an active
		// account always carries zero attempts.
		switch account.Status {
		case accounts.StatusPending, accounts.StatusVerificationExpired, accounts.StatusActive:
			if _, err := s.store.ResetAttempts(ctx, account.AccountID); err != nil {
				return s.storeFailure(ctx, account.AccountID, err)
			}
			if _, err := s.store.SetStatus(ctx, account.AccountID, accounts.StatusActive); err != nil {
				return s.storeFailure(ctx, account.AccountID, err)
			}
		}
		return outcome

	case errors.Is(outcome, provider.ErrCodeMismatch):
		// The counter is only meaningful while confirmation is still
		// possible; an active account stays untouched.
		switch account.Status {
		case accounts.StatusPending, accounts.StatusVerificationExpired:
			updated, err := s.store.IncrementAttempts(ctx, account.AccountID)
			if err != nil {
				return s.storeFailure(ctx, account.AccountID, err)
			}
			if updated.VerificationAttempts >= MaxVerificationAttempts {
				if _, err := s.store.SetStatus(ctx, account.AccountID, accounts.StatusLocked); err != nil {
					return s.storeFailure(ctx, account.AccountID, err)
				}
				s.logger.Warn(ctx, "account locked after repeated confirmation failures",
					"account_id", account.AccountID, "attempts", updated.VerificationAttempts)
				return ErrAccountLocked
			}
		}
		return outcome

	case errors.Is(outcome, provider.ErrCodeExpired):
		if account.Status == accounts.StatusPending {
			if _, err := s.store.SetStatus(ctx, account.AccountID, accounts.StatusVerificationExpired); err != nil {
				return s.storeFailure(ctx, account.AccountID, err)
			}
		}
		return outcome

	default:
		return outcome
	}
}

// ResendCode asks the provider to resend the confirmation code.
func (s *Service) ResendCode(ctx context.Context, username string) (*provider.Delivery, error) {
	return s.provider.ResendCode(ctx, username)
}

// resolve maps an incoming username onto the local account record. Any
// failure is a non-fatal inconsistency: it is logged and nil is returned,
// which suppresses local mutations for this attempt.
func (s *Service) resolve(ctx context.Context, username string) *accounts.Account {

	snapshot, err := s.provider.Lookup(ctx, username)
	if err != nil {
		s.logger.Warn(ctx, "identity lookup failed, skipping local account update",
			"username", username, "error", err)
		return nil
	}

	account, err := s.store.FindByID(ctx, snapshot.AccountID)
	if err != nil {
		s.logger.Warn(ctx, "no local record for confirmed identity",
			"account_id", snapshot.AccountID, "error", err)
		return nil
	}
	return account
}

func (s *Service) storeFailure(ctx context.Context, accountID string, err error) error {
	s.logger.Error(ctx, "account store update failed", "account_id", accountID, "error", err)
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}

func validateSignUp(name, email, password string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name must not be blank", common.ErrorValidation)
	case utf8.RuneCountInString(name) > MaxDisplayNameLength:
		return fmt.Errorf("%w: name must be at most %d characters", common.ErrorValidation, MaxDisplayNameLength)
	case !emailRx.MatchString(email):
		return fmt.Errorf("%w: invalid email format", common.ErrorValidation)
	case len(password) < minPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}
	return nil
}
