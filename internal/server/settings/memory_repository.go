package settings

import (
	"context"
	"sync"
	"time"

	"github.com/umeduck/quack-note/internal/common"
)

// MemoryRepository is a map-backed Repository for tests and local
// development.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[string]*Settings
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*Settings)}
}

func (r *MemoryRepository) Find(ctx context.Context, userID string) (*Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *MemoryRepository) Upsert(ctx context.Context, userID string, update Update) (*Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	s, ok := r.items[userID]
	if !ok {
		s = &Settings{UserID: userID, CreatedAt: &now}
		r.items[userID] = s
	}
	s.MeetingTitle = update.MeetingTitle
	s.AutoDeleteDays = update.AutoDeleteDays
	s.SlackWebhookURL = update.SlackWebhookURL
	s.UpdatedAt = &now

	copied := *s
	return &copied, nil
}
