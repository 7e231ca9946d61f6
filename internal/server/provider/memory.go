package provider

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Memory is a self-contained Provider for tests and local development.
// Every registration gets a fixed confirmation code delivered nowhere;
// the code is exported so local clients can complete the flow.
type Memory struct {
	mu         sync.Mutex
	identities map[string]*memoryIdentity
}

// MemoryConfirmationCode is accepted by every Memory identity.
const MemoryConfirmationCode = "123456"

type memoryIdentity struct {
	sub       string
	email     string
	confirmed bool
}

func NewMemory() *Memory {
	return &Memory{identities: make(map[string]*memoryIdentity)}
}

func (m *Memory) Register(ctx context.Context, name, email, password string) (*RegisterOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.identities[email]; ok {
		return nil, ErrDuplicateIdentity
	}
	if len(password) < 8 {
		return nil, ErrWeakCredential
	}

	id := &memoryIdentity{sub: uuid.NewString(), email: email}
	m.identities[email] = id

	return &RegisterOutput{
		AccountID:           id.sub,
		PendingConfirmation: true,
		Delivery: &Delivery{
			Destination:   maskEmail(email),
			Medium:        "EMAIL",
			AttributeName: "email",
		},
	}, nil
}

func (m *Memory) Confirm(ctx context.Context, username, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.identities[username]
	if !ok {
		return ErrUnavailable
	}
	if id.confirmed {
		return ErrAlreadyConfirmed
	}
	if code != MemoryConfirmationCode {
		return ErrCodeMismatch
	}
	id.confirmed = true
	return nil
}

func (m *Memory) ResendCode(ctx context.Context, username string) (*Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.identities[username]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	return &Delivery{
		Destination:   maskEmail(id.email),
		Medium:        "EMAIL",
		AttributeName: "email",
	}, nil
}

func (m *Memory) Lookup(ctx context.Context, username string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.identities[username]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	return &Snapshot{AccountID: id.sub, Email: id.email, Confirmed: id.confirmed}, nil
}

// maskEmail renders destinations the way hosted providers do: a***@x.com.
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return email
	}
	return email[:1] + "***" + email[at:]
}
