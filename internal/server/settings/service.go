package settings

import (
	"context"
	"errors"

	"github.com/umeduck/quack-note/internal/common"
	"github.com/umeduck/quack-note/internal/logging"
)

// testNotificationText is what the Slack test action posts.
const testNotificationText = "🦆 QuackNote test notification\n\nSlack notifications are configured correctly."

// Notifier is the delivery boundary for the Slack test action.
type Notifier interface {
	Send(ctx context.Context, webhookURL, text string) error
}

type Service struct {
	repo     Repository
	notifier Notifier
	logger   logging.Logger
}

func NewService(repo Repository, notifier Notifier, logger logging.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger.With("module", "settings"),
	}
}

// Get returns the user's settings, or zero-value defaults when nothing has
// been saved yet.
func (s *Service) Get(ctx context.Context, userID string) (*Settings, error) {
	found, err := s.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &Settings{UserID: userID}, nil
		}
		return nil, err
	}
	return found, nil
}

// Save upserts the user's settings.
func (s *Service) Save(ctx context.Context, userID string, update Update) (*Settings, error) {
	saved, err := s.repo.Upsert(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "settings saved", "user_id", userID)
	return saved, nil
}

// TestSlack posts a test notification to the user's stored webhook.
// Returns ErrWebhookNotConfigured when no webhook URL is saved.
func (s *Service) TestSlack(ctx context.Context, userID string) (string, error) {
	found, err := s.repo.Find(ctx, userID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return "", err
	}
	if found == nil || found.SlackWebhookURL == nil || *found.SlackWebhookURL == "" {
		return "", ErrWebhookNotConfigured
	}

	url := *found.SlackWebhookURL
	if err := s.notifier.Send(ctx, url, testNotificationText); err != nil {
		s.logger.Error(ctx, "slack test notification failed", "user_id", userID, "error", err)
		return "", err
	}
	return url, nil
}
