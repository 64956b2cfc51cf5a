package lifecycle

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/config"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/domain/event"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/pkg/snowflake"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/pkg/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, store *testhelper.MemoryStore, provider *testhelper.MockProvider) *Engine {
	t.Helper()

	ids, err := snowflake.NewNode()
	require.NoError(t, err)

	return NewEngine(store, store, provider, ids, &config.Config{LifecycleBatchSize: 50}, zap.NewNop())
}

func at(e *Engine, instant time.Time) {
	e.now = func() time.Time { return instant }
}

// devcon is the reference fixture: an event with every gate satisfiable.
func devcon() *event.Event {
	return &event.Event{
		ID:     "01JC0000000000000000000000",
		Slug:   "devcon-austin",
		Name:   "DevCon",
		Date:   "2026-06-15",
		City:   "Austin",
		Venue:  event.Venue{Name: "Hall A"},
		Status: event.StatusDraft,
		Speakers: []event.Speaker{
			{Name: "Sasha Rivera"},
			{Name: "Mina Okafor"},
		},
		Pricing: event.Pricing{Regular: "$399"},
	}
}

func TestEngine_FullHappyPath(t *testing.T) {
	store := testhelper.NewMemoryStore()
	provider := testhelper.NewMockProvider()
	engine := newTestEngine(t, store, provider)

	ev := devcon()
	store.Put(ev)

	beforeStart := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	afterStart := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	afterCutoff := time.Date(2026, 6, 18, 0, 0, 0, 0, time.UTC)

	passes := []struct {
		now  time.Time
		want event.Status
	}{
		{beforeStart, event.StatusPlanning},
		{beforeStart, event.StatusAnnouncing},
		{beforeStart, event.StatusTicketSales},
		{afterStart, event.StatusLive},
		{afterCutoff, event.StatusCompleted},
	}

	prevRank := event.StatusRank[event.StatusDraft]
	for i, pass := range passes {
		at(engine, pass.now)

		summary, err := engine.RunOnce(context.Background())
		require.NoError(t, err, "pass %d", i+1)
		assert.Equal(t, 1, summary.Processed, "pass %d", i+1)
		assert.Equal(t, 1, summary.Transitions, "pass %d", i+1)

		got := store.Get(ev.ID).Status
		assert.Equal(t, pass.want, got, "pass %d", i+1)

		// Monotonicity: rank strictly increases, never revisits.
		assert.Greater(t, event.StatusRank[got], prevRank, "pass %d", i+1)
		prevRank = event.StatusRank[got]
	}

	entries := store.LogEntries(ev.ID)
	assert.Len(t, entries, 5)

	keys := make(map[string]bool, len(entries))
	for _, e := range entries {
		keys[e.ActionKey] = true
	}
	for _, want := range []string{
		"draft-to-planning",
		"planning-to-announcing",
		"announcing-to-ticket_sales",
		"ticket_sales-to-live",
		"live-to-completed",
	} {
		assert.True(t, keys[want], "missing log entry %s", want)
	}

	// Automations fired once per edge that defines them.
	assert.Equal(t, []string{"description:devcon-austin", "announcement:devcon-austin"}, provider.Generated)
	assert.Equal(t, []string{"speakers:devcon-austin", "attendees:devcon-austin", "summary:devcon-austin"}, provider.Notified)

	// Completed events leave the candidate set entirely.
	summary, err := engine.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Processed)
	assert.Equal(t, 0, summary.Transitions)
}

func TestEngine_SecondRunIsIdempotent(t *testing.T) {
	store := testhelper.NewMemoryStore()
	provider := testhelper.NewMockProvider()
	engine := newTestEngine(t, store, provider)

	ev := devcon()
	ev.Status = event.StatusPlanning
	ev.Pricing = event.Pricing{} // keep it parked at announcing
	store.Put(ev)

	first, err := engine.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Transitions)
	assert.Len(t, store.LogEntries(ev.ID), 1)
	assert.Len(t, provider.Notified, 1)

	second, err := engine.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Transitions)
	assert.Equal(t, event.StatusAnnouncing, store.Get(ev.ID).Status)

	// No duplicate log entries, no re-run automations.
	assert.Len(t, store.LogEntries(ev.ID), 1)
	assert.Len(t, provider.Notified, 1)
	assert.Len(t, provider.Generated, 2)
}

func TestEngine_SingleStepCap(t *testing.T) {
	store := testhelper.NewMemoryStore()
	provider := testhelper.NewMockProvider()
	engine := newTestEngine(t, store, provider)

	// Every later gate already holds, including the time-based ones.
	ev := devcon()
	store.Put(ev)
	at(engine, time.Date(2026, 6, 18, 0, 0, 0, 0, time.UTC))

	summary, err := engine.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Transitions)
	assert.Equal(t, event.StatusPlanning, store.Get(ev.ID).Status)
	assert.Len(t, store.LogEntries(ev.ID), 1)
}

func TestEngine_StuckDraftWithoutVenue(t *testing.T) {
	store := testhelper.NewMemoryStore()
	provider := testhelper.NewMockProvider()
	engine := newTestEngine(t, store, provider)

	ev := devcon()
	ev.Venue = event.Venue{}
	store.Put(ev)

	summary, err := engine.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 0, summary.Transitions)
	assert.Equal(t, event.StatusDraft, store.Get(ev.ID).Status)
	assert.Empty(t, store.LogEntries(ev.ID))
}

func TestEngine_TicketRecordUnlocksSales(t *testing.T) {
	store := testhelper.NewMemoryStore()
	provider := testhelper.NewMockProvider()
	engine := newTestEngine(t, store, provider)

	ev := devcon()
	ev.Status = event.StatusAnnouncing
	ev.Pricing = event.Pricing{}
	store.Put(ev)
	store.AddTicket(ev.ID)

	summary, err := engine.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Transitions)
	assert.Equal(t, event.StatusTicketSales, store.Get(ev.ID).Status)
}

func TestEngine_AutomationFailureDoesNotRollBack(t *testing.T) {
	store := testhelper.NewMemoryStore()
	provider := testhelper.NewMockProvider()
	provider.FailNotify = true
	engine := newTestEngine(t, store, provider)

	ev := devcon()
	ev.Status = event.StatusPlanning
	store.Put(ev)

	summary, err := engine.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Transitions)

	// Transition committed despite the failed speaker outreach.
	assert.Equal(t, event.StatusAnnouncing, store.Get(ev.ID).Status)
	assert.Len(t, store.LogEntries(ev.ID), 1)
	assert.Len(t, provider.Notified, 1)
}

func TestEngine_EventFailureIsIsolated(t *testing.T) {
	store := testhelper.NewMemoryStore()
	provider := testhelper.NewMockProvider()
	engine := newTestEngine(t, store, provider)

	// A's ticket check will fail at query time; B is ready to announce.
	a := devcon()
	a.ID = "01JC0000000000000000000001"
	a.Slug = "confa"
	a.Status = event.StatusAnnouncing
	store.Put(a)

	b := devcon()
	b.ID = "01JC0000000000000000000002"
	b.Slug = "confb"
	b.Status = event.StatusPlanning
	store.Put(b)

	store.TicketsErr = fmt.Errorf("connection refused")

	summary, err := engine.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Transitions)
	assert.Equal(t, event.StatusAnnouncing, store.Get(a.ID).Status)
	assert.Equal(t, event.StatusAnnouncing, store.Get(b.ID).Status)
}

func TestEngine_LogStoreTransportErrorBlocksTransition(t *testing.T) {
	store := testhelper.NewMemoryStore()
	provider := testhelper.NewMockProvider()
	engine := newTestEngine(t, store, provider)

	ev := devcon()
	ev.Status = event.StatusPlanning
	store.Put(ev)
	store.ExistsErr = fmt.Errorf("timeout")

	summary, err := engine.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Transitions)
	assert.Equal(t, event.StatusPlanning, store.Get(ev.ID).Status)
	assert.Empty(t, provider.Notified)
}

func TestEngine_LostAppendRaceSkipsAutomations(t *testing.T) {
	store := testhelper.NewMemoryStore()
	provider := testhelper.NewMockProvider()
	engine := newTestEngine(t, store, provider)

	ev := devcon()
	ev.Status = event.StatusPlanning
	store.Put(ev)
	store.AppendErr = event.ErrDuplicateAction

	summary, err := engine.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Transitions)
	assert.Empty(t, provider.Notified)
	assert.Empty(t, provider.Generated)
}

func TestEngine_ListFailureFailsTheRun(t *testing.T) {
	store := testhelper.NewMemoryStore()
	provider := testhelper.NewMockProvider()
	engine := newTestEngine(t, store, provider)

	store.ListErr = fmt.Errorf("store unreachable")

	_, err := engine.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "list candidate events")
}

func TestEngine_CancelledContextStopsPass(t *testing.T) {
	store := testhelper.NewMemoryStore()
	provider := testhelper.NewMockProvider()
	engine := newTestEngine(t, store, provider)

	for i := 0; i < 3; i++ {
		ev := devcon()
		ev.ID = fmt.Sprintf("01JC000000000000000000000%d", i)
		ev.Slug = fmt.Sprintf("conf-%d", i)
		store.Put(ev)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := engine.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 0, summary.Transitions)

	// Nothing moved; the next scheduled pass picks everything up.
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("01JC000000000000000000000%d", i)
		assert.Equal(t, event.StatusDraft, store.Get(id).Status)
	}
}
