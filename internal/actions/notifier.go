package actions

import (
	"context"
	"fmt"

	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/pkg/mailclient"
	"go.uber.org/zap"
)

// Sender is the primary delivery strategy behind the notifier.
type Sender interface {
	Send(ctx context.Context, msg mailclient.Message) error
}

// Notifier sends lifecycle notifications. When no mail provider is
// configured, the intended message is logged and the call reports success,
// which keeps demo environments progressing without external infrastructure.
type Notifier struct {
	sender Sender
	logger *zap.Logger
}

func NewNotifier(client *mailclient.Client, logger *zap.Logger) *Notifier {
	n := &Notifier{logger: named(logger, "notifier")}
	if client != nil && client.Enabled() {
		n.sender = client
	} else {
		n.logger.Info("mail_delivery_disabled_logging_only")
	}
	return n
}

// Notify composes and delivers the message for the audience. Provider errors
// are returned, never panicked; the logging fallback always succeeds.
func (n *Notifier) Notify(ctx context.Context, audience Audience, ev EventContext) error {
	msg := messageFor(audience, ev)

	if n.sender == nil {
		n.logger.Info("notification_logged",
			zap.String("audience", string(audience)),
			zap.String("event", ev.Slug),
			zap.String("subject", msg.Subject),
			zap.Strings("to", msg.To),
		)
		return nil
	}

	if err := n.sender.Send(ctx, msg); err != nil {
		n.logger.Warn("notification_send_failed",
			zap.String("audience", string(audience)),
			zap.String("event", ev.Slug),
			zap.Error(err),
		)
		return fmt.Errorf("send %s notification: %w", audience, err)
	}

	n.logger.Info("notification_sent",
		zap.String("audience", string(audience)),
		zap.String("event", ev.Slug),
	)
	return nil
}

// defaultRecipient receives lifecycle mail when the event has no organizer
// contact on file.
const defaultRecipient = "events@launchpad.events"

func messageFor(audience Audience, ev EventContext) mailclient.Message {
	to := ev.OrganizerEmail
	if to == "" {
		to = defaultRecipient
	}

	switch audience {
	case AudienceSpeakers:
		return mailclient.Message{
			To:      []string{to},
			Subject: fmt.Sprintf("Speaker invitations ready: %s", ev.Name),
			Text: fmt.Sprintf(
				"%s is announcing. Speaker invitations are ready to go out for %s in %s on %s.",
				ev.Name, ev.Name, ev.City, ev.Date,
			),
		}
	case AudienceAttendees:
		return mailclient.Message{
			To:      []string{to},
			Subject: fmt.Sprintf("Reminder: %s is starting", ev.Name),
			Text: fmt.Sprintf(
				"Don't forget — %s starts today in %s.",
				ev.Name, ev.City,
			),
		}
	default:
		return mailclient.Message{
			To:      []string{to},
			Subject: fmt.Sprintf("Wrap-up: %s", ev.Name),
			Text: fmt.Sprintf(
				"%s has wrapped. Thanks for being part of it — the post-event summary is on its way.",
				ev.Name,
			),
		}
	}
}
