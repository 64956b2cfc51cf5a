package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadyToPlan(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want bool
	}{
		{
			name: "all core details present",
			ev:   Event{Name: "DevCon", Date: "2026-06-15", City: "Austin", Venue: Venue{Name: "Hall A"}},
			want: true,
		},
		{
			name: "missing venue",
			ev:   Event{Name: "DevCon", Date: "2026-06-15", City: "Austin"},
			want: false,
		},
		{
			name: "missing city",
			ev:   Event{Name: "DevCon", Date: "2026-06-15", Venue: Venue{Name: "Hall A"}},
			want: false,
		},
		{
			name: "missing name",
			ev:   Event{Date: "2026-06-15", City: "Austin", Venue: Venue{Name: "Hall A"}},
			want: false,
		},
		{
			name: "empty event",
			ev:   Event{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadyToPlan(&tt.ev))
		})
	}
}

func TestReadyToAnnounce(t *testing.T) {
	// Bootstrap rule: a pre-populated speakers list counts as confirmed.
	three := Event{Speakers: []Speaker{{Name: "a"}, {Name: "b"}, {Name: "c"}}}
	assert.True(t, ReadyToAnnounce(&three))

	one := Event{Speakers: []Speaker{{Name: "a"}}}
	assert.False(t, ReadyToAnnounce(&one))

	explicit := Event{SpeakersConfirmedCount: 2}
	assert.True(t, ReadyToAnnounce(&explicit))

	none := Event{}
	assert.False(t, ReadyToAnnounce(&none))
}

func TestReadyForTicketSales(t *testing.T) {
	plain := Event{}
	assert.False(t, ReadyForTicketSales(&plain, false))
	assert.True(t, ReadyForTicketSales(&plain, true))

	priced := Event{Pricing: Pricing{Regular: "$399"}}
	assert.True(t, ReadyForTicketSales(&priced, false))
}

func TestReadyToGoLive(t *testing.T) {
	ev := Event{Date: "2026-06-15"}

	before := time.Date(2026, 6, 15, 8, 59, 0, 0, time.UTC)
	atStart := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	after := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.False(t, ReadyToGoLive(&ev, before))
	assert.True(t, ReadyToGoLive(&ev, atStart))
	assert.True(t, ReadyToGoLive(&ev, after))
}

func TestReadyToGoLive_MissingDate(t *testing.T) {
	ev := Event{}
	assert.False(t, ReadyToGoLive(&ev, time.Now()))
}

func TestReadyToComplete(t *testing.T) {
	// Default end: 2026-06-16 18:00 UTC; completion at end + 24h.
	ev := Event{Date: "2026-06-15"}

	justEnded := time.Date(2026, 6, 16, 18, 0, 0, 0, time.UTC)
	cutoff := time.Date(2026, 6, 17, 18, 0, 0, 0, time.UTC)

	assert.False(t, ReadyToComplete(&ev, justEnded))
	assert.False(t, ReadyToComplete(&ev, cutoff.Add(-time.Minute)))
	assert.True(t, ReadyToComplete(&ev, cutoff))
	assert.True(t, ReadyToComplete(&ev, cutoff.Add(time.Hour)))
}

func TestReadyToComplete_ExplicitEnd(t *testing.T) {
	end := time.Date(2026, 6, 20, 22, 0, 0, 0, time.UTC)
	ev := Event{Date: "2026-06-15", EndDate: &end}

	assert.False(t, ReadyToComplete(&ev, end.Add(23*time.Hour)))
	assert.True(t, ReadyToComplete(&ev, end.Add(24*time.Hour)))
}
