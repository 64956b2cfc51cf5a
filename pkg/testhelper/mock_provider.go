package testhelper

import (
	"context"
	"fmt"
	"sync"

	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/actions"
)

// MockProvider records every action the engine fires and optionally fails
// notifications or generation on demand.
type MockProvider struct {
	mu sync.Mutex

	Generated []string // "kind:slug"
	Notified  []string // "audience:slug"

	FailGenerate bool
	FailNotify   bool
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) GenerateText(ctx context.Context, kind actions.TextKind, ev actions.EventContext) (string, error) {
	m.mu.Lock()
	m.Generated = append(m.Generated, fmt.Sprintf("%s:%s", kind, ev.Slug))
	m.mu.Unlock()

	if m.FailGenerate {
		return "", fmt.Errorf("generation unavailable")
	}
	return fmt.Sprintf("Join us for %s on %s in %s.", ev.Name, ev.Date, ev.City), nil
}

func (m *MockProvider) Notify(ctx context.Context, audience actions.Audience, ev actions.EventContext) error {
	m.mu.Lock()
	m.Notified = append(m.Notified, fmt.Sprintf("%s:%s", audience, ev.Slug))
	m.mu.Unlock()

	if m.FailNotify {
		return fmt.Errorf("notification provider down")
	}
	return nil
}
