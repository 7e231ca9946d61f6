// Package settings manages per-user settings stored on the same table item
// as the account record: meeting title, note auto-delete period and the
// Slack webhook URL for notifications.
package settings

import (
	"context"
	"errors"
	"time"
)

// Settings is the per-user settings view of a users-table item. Fields are
// pointers so absent values render as JSON null, like the original API.
type Settings struct {
	UserID          string     `dynamodbav:"user_id" json:"user_id"`
	MeetingTitle    *string    `dynamodbav:"meeting_title" json:"meeting_title"`
	AutoDeleteDays  *int       `dynamodbav:"auto_delete_days" json:"auto_delete_days"`
	SlackWebhookURL *string    `dynamodbav:"slack_webhook_url" json:"slack_webhook_url"`
	CreatedAt       *time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

// Update carries the writable settings fields. A nil field clears the
// stored value, mirroring the original full-replace semantics.
type Update struct {
	MeetingTitle    *string `json:"meeting_title"`
	AutoDeleteDays  *int    `json:"auto_delete_days"`
	SlackWebhookURL *string `json:"slack_webhook_url"`
}

var (
	// ErrStoreUnavailable wraps underlying storage faults.
	ErrStoreUnavailable = errors.New("settings store unavailable")

	// ErrWebhookNotConfigured is returned by the Slack test action when
	// no webhook URL is stored for the user.
	ErrWebhookNotConfigured = errors.New("slack webhook url is not configured")
)

// Repository persists settings. Find returns common.ErrorNotFound when the
// user has no item at all; Upsert creates the item when missing and never
// touches the account attributes sharing it.
type Repository interface {
	Find(ctx context.Context, userID string) (*Settings, error)
	Upsert(ctx context.Context, userID string, update Update) (*Settings, error)
}
