package postgres

import (
	"fmt"
	"testing"

	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/domain/event"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestIsUndefinedTable(t *testing.T) {
	missing := &pgconn.PgError{Code: "42P01", Message: `relation "lifecycle_log" does not exist`}
	assert.True(t, isUndefinedTable(missing))
	assert.True(t, isUndefinedTable(fmt.Errorf("query: %w", missing)))

	dup := &pgconn.PgError{Code: "23505"}
	assert.False(t, isUndefinedTable(dup))
	assert.False(t, isUndefinedTable(fmt.Errorf("connection refused")))
	assert.False(t, isUndefinedTable(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_lifecycle_event_action"}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup)))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "42P01"}))
	assert.False(t, isUniqueViolation(fmt.Errorf("timeout")))
}

func TestEventModelRoundTrip(t *testing.T) {
	src := &event.Event{
		ID:   "01JC0000000000000000000000",
		Slug: "devcon-austin",
		Name: "DevCon",
		Date: "2026-06-15",
		City: "Austin",
		Venue: event.Venue{
			Name:    "Hall A",
			Address: "500 Congress Ave",
		},
		Speakers: []event.Speaker{
			{Name: "Sasha Rivera", Role: "keynote"},
			{Name: "Mina Okafor"},
		},
		Pricing:        event.Pricing{Regular: "$399", Currency: "USD"},
		Status:         event.StatusAnnouncing,
		OrganizerEmail: "organizer@devcon.example",
	}

	model := toModel(src)
	assert.Equal(t, "announcing", model.Status)
	assert.NotEmpty(t, model.Venue)

	got := toDomain(model)
	assert.Equal(t, src.ID, got.ID)
	assert.Equal(t, src.Venue, got.Venue)
	assert.Equal(t, src.Speakers, got.Speakers)
	assert.Equal(t, src.Pricing, got.Pricing)
	assert.Equal(t, event.StatusAnnouncing, got.Status)
}

func TestToDomain_MalformedJSONDegradesToZero(t *testing.T) {
	model := EventModel{
		ID:       "01JC0000000000000000000000",
		Status:   "draft",
		Venue:    datatypes.JSON(`{broken`),
		Speakers: datatypes.JSON(`not json`),
	}

	got := toDomain(model)
	assert.True(t, got.Venue.IsZero())
	assert.Empty(t, got.Speakers)
	assert.Equal(t, event.StatusDraft, got.Status)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "events", EventModel{}.TableName())
	assert.Equal(t, "lifecycle_log", LogEntryModel{}.TableName())
	assert.Equal(t, "tickets", TicketModel{}.TableName())
}
