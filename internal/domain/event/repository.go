package event

import (
	"context"
	"time"
)

// Repository defines the store operations the lifecycle engine needs.
// Anything richer (full CRUD, search) belongs to the surrounding platform.
type Repository interface {
	// ListByStatus retrieves events whose status matches any of the provided
	// statuses, oldest-updated first.
	ListByStatus(ctx context.Context, statuses []Status, limit int) ([]*Event, error)

	// UpdateStatus moves an event to the given status, guarded so that only
	// the expected current status is overwritten. Returns ErrInvalidTransition
	// when the row was concurrently moved elsewhere.
	UpdateStatus(ctx context.Context, id string, from, to Status) error

	// HasTickets reports whether any ticket record exists for the event.
	// A missing tickets table reads as false rather than an error.
	HasTickets(ctx context.Context, id string) (bool, error)
}

// LogEntry is one append-only lifecycle audit row. At most one entry ever
// exists per (EventID, ActionKey) pair; that uniqueness is the idempotency
// fence preventing duplicate automations.
type LogEntry struct {
	ID         int64
	EventID    string
	FromStatus Status
	ToStatus   Status
	ActionKey  string
	CreatedAt  time.Time
}

// LifecycleLog persists transition records.
type LifecycleLog interface {
	// Exists reports whether a transition was already recorded.
	Exists(ctx context.Context, eventID, actionKey string) (bool, error)

	// Append records a transition exactly once. Returns ErrDuplicateAction
	// when a concurrent run won the race for the same (event, action key).
	Append(ctx context.Context, entry *LogEntry) error
}
