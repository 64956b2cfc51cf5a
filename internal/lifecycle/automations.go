package lifecycle

import (
	"context"

	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/actions"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/domain/event"
)

// automation is one named side effect attached to a transition edge.
type automation struct {
	name string
	run  func(ctx context.Context, p actions.Provider, ev actions.EventContext) error
}

// automationsFor returns the automation set for the edge leaving the given
// status. Edges without side effects (draft → planning, announcing →
// ticket_sales) return nil: those transitions purely reflect readiness.
func automationsFor(from event.Status) []automation {
	switch from {
	case event.StatusPlanning:
		// planning → announcing: publish copy and start speaker outreach.
		return []automation{
			{
				name: "generate_description",
				run: func(ctx context.Context, p actions.Provider, ev actions.EventContext) error {
					_, err := p.GenerateText(ctx, actions.KindDescription, ev)
					return err
				},
			},
			{
				name: "generate_announcement",
				run: func(ctx context.Context, p actions.Provider, ev actions.EventContext) error {
					_, err := p.GenerateText(ctx, actions.KindAnnouncement, ev)
					return err
				},
			},
			{
				name: "invite_speakers",
				run: func(ctx context.Context, p actions.Provider, ev actions.EventContext) error {
					return p.Notify(ctx, actions.AudienceSpeakers, ev)
				},
			},
		}
	case event.StatusTicketSales:
		// ticket_sales → live: remind attendees the doors are open.
		return []automation{
			{
				name: "attendee_reminder",
				run: func(ctx context.Context, p actions.Provider, ev actions.EventContext) error {
					return p.Notify(ctx, actions.AudienceAttendees, ev)
				},
			},
		}
	case event.StatusLive:
		// live → completed: close out with the post-event summary.
		return []automation{
			{
				name: "post_event_summary",
				run: func(ctx context.Context, p actions.Provider, ev actions.EventContext) error {
					return p.Notify(ctx, actions.AudienceSummary, ev)
				},
			},
		}
	default:
		return nil
	}
}
