package event

import (
	"errors"
	"fmt"
	"time"
)

// Status represents the lifecycle state of an event. Progression is strictly
// forward: draft → planning → announcing → ticket_sales → live → completed.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusPlanning    Status = "planning"
	StatusAnnouncing  Status = "announcing"
	StatusTicketSales Status = "ticket_sales"
	StatusLive        Status = "live"
	StatusCompleted   Status = "completed"
)

// StatusRank orders statuses for monotonicity checks. Higher never moves to lower.
var StatusRank = map[Status]int{
	StatusDraft:       0,
	StatusPlanning:    1,
	StatusAnnouncing:  2,
	StatusTicketSales: 3,
	StatusLive:        4,
	StatusCompleted:   5,
}

var (
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	ErrDuplicateAction   = errors.New("lifecycle action already recorded")
)

// NonTerminalStatuses returns the candidate set queried by the engine.
// Completed events are never revisited.
func NonTerminalStatuses() []Status {
	return []Status{StatusDraft, StatusPlanning, StatusAnnouncing, StatusTicketSales, StatusLive}
}

// NextStatus returns the single outbound edge for a status. An event can never
// advance more than one step per pass, even if later gates already hold.
func NextStatus(s Status) (Status, bool) {
	switch s {
	case StatusDraft:
		return StatusPlanning, true
	case StatusPlanning:
		return StatusAnnouncing, true
	case StatusAnnouncing:
		return StatusTicketSales, true
	case StatusTicketSales:
		return StatusLive, true
	case StatusLive:
		return StatusCompleted, true
	default:
		return "", false
	}
}

// CanTransition reports whether from → to is a defined forward edge.
func CanTransition(from, to Status) bool {
	next, ok := NextStatus(from)
	return ok && next == to
}

// ActionKey is the stable idempotency key for a transition edge,
// e.g. "planning-to-announcing".
func ActionKey(from, to Status) string {
	return fmt.Sprintf("%s-to-%s", from, to)
}

// IsTerminal reports whether a status has no outbound edge.
func IsTerminal(s Status) bool {
	_, ok := NextStatus(s)
	return !ok
}

// Venue is the structured venue value. An empty venue blocks draft → planning.
type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

func (v Venue) IsZero() bool {
	return v.Name == "" && v.Address == ""
}

// Speaker is one entry of the ordered speakers list.
type Speaker struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
	Bio  string `json:"bio,omitempty"`
}

// Pricing maps ticket tiers to display prices. Any of the three tier fields
// being set counts as "pricing configured".
type Pricing struct {
	EarlyBird string `json:"early_bird,omitempty"`
	Regular   string `json:"regular,omitempty"`
	VIP       string `json:"vip,omitempty"`
	Currency  string `json:"currency,omitempty"`
}

func (p Pricing) Configured() bool {
	return p.EarlyBird != "" || p.Regular != "" || p.VIP != ""
}

// Event is the core domain entity the engine operates on. The engine owns
// Status; every other attribute is written by upstream creation/editing flows
// and read-only here.
type Event struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`

	// Date is the event start day, YYYY-MM-DD.
	Date      string     `json:"date"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	City     string    `json:"city"`
	Venue    Venue     `json:"venue"`
	Speakers []Speaker `json:"speakers"`
	Pricing  Pricing   `json:"pricing"`

	Status         Status `json:"status"`
	Description    string `json:"description,omitempty"`
	Tagline        string `json:"tagline,omitempty"`
	OrganizerEmail string `json:"organizer_email,omitempty"`

	// SpeakersConfirmedCount falls back to len(Speakers) when zero.
	SpeakersConfirmedCount int `json:"speakers_confirmed_count,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	defaultStartHourUTC = 9
	defaultEndHourUTC   = 18
)

// dateLayout is the storage format for Event.Date.
const dateLayout = "2006-01-02"

// StartsAt resolves the event start instant: the explicit start timestamp if
// present, otherwise the event date at 09:00 UTC. ok is false when the date
// is missing or unparseable.
func (e *Event) StartsAt() (time.Time, bool) {
	if e.StartDate != nil {
		return e.StartDate.UTC(), true
	}
	day, err := time.Parse(dateLayout, e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), defaultStartHourUTC, 0, 0, 0, time.UTC), true
}

// EndsAt resolves the event end instant: the explicit end timestamp if
// present, otherwise 18:00 UTC on the day after the event date.
func (e *Event) EndsAt() (time.Time, bool) {
	if e.EndDate != nil {
		return e.EndDate.UTC(), true
	}
	day, err := time.Parse(dateLayout, e.Date)
	if err != nil {
		return time.Time{}, false
	}
	next := day.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), defaultEndHourUTC, 0, 0, 0, time.UTC), true
}

// ConfirmedSpeakers returns the confirmed-speaker count, treating a
// pre-populated speakers list as confirmed when no explicit count exists.
// Bootstrap rule for generated events.
func (e *Event) ConfirmedSpeakers() int {
	if e.SpeakersConfirmedCount > 0 {
		return e.SpeakersConfirmedCount
	}
	return len(e.Speakers)
}
