// Package accounts persists one denormalized record per registered identity:
// profile fields, lifecycle status and the confirmation-failure counter.
package accounts

import "time"

// Status is the account lifecycle state. Locked is terminal for the
// confirmation workflow; leaving it requires manual intervention.
type Status string

const (
	StatusPending             Status = "pending"
	StatusActive              Status = "active"
	StatusLocked              Status = "locked"
	StatusVerificationExpired Status = "verification_expired"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusLocked, StatusVerificationExpired:
		return true
	}
	return false
}

// Terminal reports whether the confirmation workflow may still move the
// account to another state.
func (s Status) Terminal() bool {
	return s == StatusLocked
}

// Account is stored in the users table keyed by the provider-assigned
// account id (the Cognito sub). Settings attributes live on the same item
// and are managed by the settings package.
type Account struct {
	AccountID            string    `dynamodbav:"user_id"`
	Email                string    `dynamodbav:"email"`
	DisplayName          string    `dynamodbav:"name"`
	Status               Status    `dynamodbav:"status"`
	VerificationAttempts int       `dynamodbav:"verification_attempts"`
	CreatedAt            time.Time `dynamodbav:"created_at"`
	UpdatedAt            time.Time `dynamodbav:"updated_at"`
}
