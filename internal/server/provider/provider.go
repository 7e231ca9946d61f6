// Package provider wraps the hosted identity provider's sign-up, confirm
// and resend operations behind a provider-neutral interface. Implementations
// translate provider-specific failures into the sentinel errors below;
// nothing provider-specific crosses this boundary.
package provider

import (
	"context"
	"errors"
)

var (
	// registration failures
	ErrDuplicateIdentity = errors.New("identity already registered")
	ErrWeakCredential    = errors.New("credential does not meet provider policy")
	ErrInvalidParameter  = errors.New("invalid provider parameter")

	// confirmation failures
	ErrCodeMismatch     = errors.New("confirmation code mismatch")
	ErrCodeExpired      = errors.New("confirmation code expired")
	ErrAlreadyConfirmed = errors.New("identity already confirmed")

	// resend failures
	ErrRateLimited      = errors.New("resend rate limit exceeded")
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrUnavailable covers every unrecognized provider failure. It is
	// always returned as a value, never thrown past this boundary.
	ErrUnavailable = errors.New("identity provider unavailable")
)

// Delivery describes where the provider sent a confirmation code.
type Delivery struct {
	Destination   string `json:"destination,omitempty"`
	Medium        string `json:"delivery_medium,omitempty"`
	AttributeName string `json:"attribute_name,omitempty"`
}

// RegisterOutput is the normalized result of a successful registration.
type RegisterOutput struct {
	// AccountID is the opaque stable identifier assigned by the provider.
	AccountID           string
	PendingConfirmation bool
	Delivery            *Delivery
}

// Snapshot is the provider's view of a registered identity.
type Snapshot struct {
	AccountID string
	Email     string
	Confirmed bool
}

// Provider is the identity-provider boundary. All operations call out to
// the external provider; no local state is mutated here.
type Provider interface {
	Register(ctx context.Context, name, email, password string) (*RegisterOutput, error)
	Confirm(ctx context.Context, username, code string) error
	ResendCode(ctx context.Context, username string) (*Delivery, error)
	Lookup(ctx context.Context, username string) (*Snapshot, error)
}
