package event

import "time"

// Readiness conditions for lifecycle transitions. All predicates are pure:
// missing optional fields evaluate to "not ready", never to an error.

// ReadyToPlan gates draft → planning: the minimum viable event shell exists
// (name, date, city and a non-empty structured venue).
func ReadyToPlan(e *Event) bool {
	return e.Name != "" && e.Date != "" && e.City != "" && !e.Venue.IsZero()
}

// ReadyToAnnounce gates planning → announcing: at least two confirmed
// speakers, counting a pre-populated speakers list as confirmed.
func ReadyToAnnounce(e *Event) bool {
	return e.ConfirmedSpeakers() >= 2
}

// ReadyForTicketSales gates announcing → ticket_sales: a ticket record exists
// for the event or any pricing tier is configured. Either signal suffices.
func ReadyForTicketSales(e *Event, ticketsExist bool) bool {
	return ticketsExist || e.Pricing.Configured()
}

// ReadyToGoLive gates ticket_sales → live: the start instant has passed.
func ReadyToGoLive(e *Event, now time.Time) bool {
	start, ok := e.StartsAt()
	if !ok {
		return false
	}
	return !now.Before(start)
}

// completionGrace keeps an event live for a day after it ends so late
// attendee activity still lands on a live page.
const completionGrace = 24 * time.Hour

// ReadyToComplete gates live → completed: 24 hours past the end instant.
func ReadyToComplete(e *Event, now time.Time) bool {
	end, ok := e.EndsAt()
	if !ok {
		return false
	}
	return !now.Before(end.Add(completionGrace))
}
