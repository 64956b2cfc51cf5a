package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/domain/event"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventModel is the database DTO with Gorm tags. Venue, speakers and pricing
// live in jsonb columns, matching how the upstream generator writes them.
type EventModel struct {
	ID   string `gorm:"primaryKey;type:varchar(26)"`
	Slug string `gorm:"uniqueIndex;type:varchar(255)"`
	Name string `gorm:"type:varchar(255)"`

	Date      string `gorm:"type:varchar(10)"`
	StartDate *time.Time
	EndDate   *time.Time

	City     string         `gorm:"type:varchar(255)"`
	Venue    datatypes.JSON `gorm:"type:jsonb"`
	Speakers datatypes.JSON `gorm:"type:jsonb"`
	Pricing  datatypes.JSON `gorm:"type:jsonb"`

	Status         string `gorm:"type:varchar(50);index"`
	Description    string `gorm:"type:text"`
	Tagline        string `gorm:"type:text"`
	OrganizerEmail string `gorm:"type:varchar(255)"`

	SpeakersConfirmedCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EventModel) TableName() string {
	return "events"
}

// LogEntryModel is one lifecycle_log row. The composite unique index is the
// idempotency fence: at most one row per (event_id, action_key) can ever
// exist.
type LogEntryModel struct {
	ID         int64  `gorm:"primaryKey"`
	EventID    string `gorm:"type:varchar(26);uniqueIndex:idx_lifecycle_event_action"`
	FromStatus string `gorm:"type:varchar(50)"`
	ToStatus   string `gorm:"type:varchar(50)"`
	ActionKey  string `gorm:"type:varchar(100);uniqueIndex:idx_lifecycle_event_action"`
	CreatedAt  time.Time
}

func (LogEntryModel) TableName() string {
	return "lifecycle_log"
}

// TicketModel is read-only here; checkout owns the rows.
type TicketModel struct {
	ID      int64  `gorm:"primaryKey"`
	EventID string `gorm:"type:varchar(26);index"`
}

func (TicketModel) TableName() string {
	return "tickets"
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListByStatus(ctx context.Context, statuses []event.Status, limit int) ([]*event.Event, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}

	query := r.db.WithContext(ctx).Where("status IN ?", values).Order("updated_at asc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []EventModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	items := make([]*event.Event, 0, len(models))
	for _, model := range models {
		items = append(items, toDomain(model))
	}
	return items, nil
}

// Save persists an event (create or update). Used by seeding and tests; the
// engine itself only ever writes status.
func (r *Repository) Save(ctx context.Context, entity *event.Event) error {
	model := toModel(entity)
	return r.db.WithContext(ctx).Save(&model).Error
}

// UpdateStatus moves an event forward, guarded on the expected current status
// so a concurrent run cannot apply the same edge twice or move a row
// backwards.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to event.Status) error {
	result := r.db.WithContext(ctx).Model(&EventModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var current string
	if err := r.db.WithContext(ctx).Model(&EventModel{}).
		Select("status").
		Where("id = ?", id).
		Scan(&current).Error; err != nil {
		return err
	}
	if event.Status(current) == to {
		return nil
	}
	return fmt.Errorf("%w: %s is %s, wanted %s", event.ErrInvalidTransition, id, current, from)
}

// HasTickets reports whether a ticket row exists. A not-yet-provisioned
// tickets table reads as "no tickets" so pricing remains the only signal.
func (r *Repository) HasTickets(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&TicketModel{}).
		Where("event_id = ?", id).
		Count(&count).Error
	if err != nil {
		if isUndefinedTable(err) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}

// LifecycleLogStore persists transition records in the append-only
// lifecycle_log table.
type LifecycleLogStore struct {
	db *gorm.DB
}

func NewLifecycleLogStore(db *gorm.DB) *LifecycleLogStore {
	return &LifecycleLogStore{db: db}
}

// Exists reports whether the (event, action key) pair was already recorded.
// A missing lifecycle_log table reads as "no entry": the fail-open trade-off
// that keeps legitimate transitions moving while infrastructure is
// incomplete.
func (s *LifecycleLogStore) Exists(ctx context.Context, eventID, actionKey string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&LogEntryModel{}).
		Where("event_id = ? AND action_key = ?", eventID, actionKey).
		Count(&count).Error
	if err != nil {
		if isUndefinedTable(err) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}

// Append inserts exactly one row per (event, action key). A unique violation
// means a concurrent run won the race; a missing table is swallowed so the
// transition itself is not blocked.
func (s *LifecycleLogStore) Append(ctx context.Context, entry *event.LogEntry) error {
	model := LogEntryModel{
		ID:         entry.ID,
		EventID:    entry.EventID,
		FromStatus: string(entry.FromStatus),
		ToStatus:   string(entry.ToStatus),
		ActionKey:  entry.ActionKey,
		CreatedAt:  entry.CreatedAt,
	}
	err := s.db.WithContext(ctx).Create(&model).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return event.ErrDuplicateAction
	}
	if isUndefinedTable(err) {
		return nil
	}
	return err
}

// SQLSTATE classification per the error taxonomy: 42P01 undefined_table marks
// auxiliary infrastructure as missing, 23505 unique_violation marks a lost
// idempotency race.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Mappers

func toDomain(m EventModel) *event.Event {
	ev := &event.Event{
		ID:                     m.ID,
		Slug:                   m.Slug,
		Name:                   m.Name,
		Date:                   m.Date,
		StartDate:              m.StartDate,
		EndDate:                m.EndDate,
		City:                   m.City,
		Status:                 event.Status(m.Status),
		Description:            m.Description,
		Tagline:                m.Tagline,
		OrganizerEmail:         m.OrganizerEmail,
		SpeakersConfirmedCount: m.SpeakersConfirmedCount,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}

	// Malformed jsonb degrades to zero values; conditions treat those as
	// "not ready" rather than erroring.
	if len(m.Venue) > 0 {
		_ = json.Unmarshal(m.Venue, &ev.Venue)
	}
	if len(m.Speakers) > 0 {
		_ = json.Unmarshal(m.Speakers, &ev.Speakers)
	}
	if len(m.Pricing) > 0 {
		_ = json.Unmarshal(m.Pricing, &ev.Pricing)
	}
	return ev
}

func toModel(d *event.Event) EventModel {
	venue, _ := json.Marshal(d.Venue)
	speakers, _ := json.Marshal(d.Speakers)
	pricing, _ := json.Marshal(d.Pricing)

	return EventModel{
		ID:                     d.ID,
		Slug:                   d.Slug,
		Name:                   d.Name,
		Date:                   d.Date,
		StartDate:              d.StartDate,
		EndDate:                d.EndDate,
		City:                   d.City,
		Venue:                  venue,
		Speakers:               speakers,
		Pricing:                pricing,
		Status:                 string(d.Status),
		Description:            d.Description,
		Tagline:                d.Tagline,
		OrganizerEmail:         d.OrganizerEmail,
		SpeakersConfirmedCount: d.SpeakersConfirmedCount,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
}
