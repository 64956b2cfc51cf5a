package testhelper

import (
	"context"
	"fmt"
	"sync"

	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/domain/event"
)

// MemoryStore is an in-memory event.Repository and event.LifecycleLog for
// engine tests. The log check-and-append is guarded by one mutex, matching
// the atomic per-(event, action key) fence the real store provides.
type MemoryStore struct {
	mu sync.Mutex

	events  map[string]*event.Event
	order   []string
	log     map[string]event.LogEntry
	tickets map[string]int

	// Error injection
	ListErr    error
	UpdateErr  error
	TicketsErr error
	ExistsErr  error
	AppendErr  error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events:  make(map[string]*event.Event),
		log:     make(map[string]event.LogEntry),
		tickets: make(map[string]int),
	}
}

func (m *MemoryStore) Put(ev *event.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[ev.ID]; !ok {
		m.order = append(m.order, ev.ID)
	}
	m.events[ev.ID] = ev
}

func (m *MemoryStore) Get(id string) *event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events[id]
}

func (m *MemoryStore) AddTicket(eventID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[eventID]++
}

// LogEntries returns the recorded entries for an event, in no particular
// order.
func (m *MemoryStore) LogEntries(eventID string) []event.LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []event.LogEntry
	for _, e := range m.log {
		if e.EventID == eventID {
			out = append(out, e)
		}
	}
	return out
}

func (m *MemoryStore) ListByStatus(ctx context.Context, statuses []event.Status, limit int) ([]*event.Event, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*event.Event
	for _, id := range m.order {
		ev := m.events[id]
		for _, status := range statuses {
			if ev.Status == status {
				snapshot := *ev
				result = append(result, &snapshot)
				break
			}
		}
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (m *MemoryStore) UpdateStatus(ctx context.Context, id string, from, to event.Status) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ev, ok := m.events[id]
	if !ok {
		return fmt.Errorf("event %s not found", id)
	}
	if ev.Status != from {
		if ev.Status == to {
			return nil
		}
		return fmt.Errorf("%w: %s is %s, wanted %s", event.ErrInvalidTransition, id, ev.Status, from)
	}
	ev.Status = to
	return nil
}

func (m *MemoryStore) HasTickets(ctx context.Context, id string) (bool, error) {
	if m.TicketsErr != nil {
		return false, m.TicketsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tickets[id] > 0, nil
}

func (m *MemoryStore) Exists(ctx context.Context, eventID, actionKey string) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.log[eventID+"|"+actionKey]
	return ok, nil
}

func (m *MemoryStore) Append(ctx context.Context, entry *event.LogEntry) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := entry.EventID + "|" + entry.ActionKey
	if _, ok := m.log[key]; ok {
		return event.ErrDuplicateAction
	}
	m.log[key] = *entry
	return nil
}
