package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/actions"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/config"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/domain/event"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/pkg/snowflake"
	"go.uber.org/zap"
)

// Summary is the result of one engine pass.
type Summary struct {
	Processed   int `json:"processed"`
	Transitions int `json:"transitions"`
}

// Engine advances events through the lifecycle state machine. One pass
// evaluates every non-terminal event, applies at most one transition per
// event, and fires that edge's automations at most once ever, fenced by the
// lifecycle log. Safe to invoke repeatedly and concurrently under
// at-least-once scheduling.
type Engine struct {
	repo     event.Repository
	log      event.LifecycleLog
	provider actions.Provider
	ids      *snowflake.Node
	logger   *zap.Logger

	now       func() time.Time
	batchSize int
}

func NewEngine(repo event.Repository, log event.LifecycleLog, provider actions.Provider, ids *snowflake.Node, cfg *config.Config, logger *zap.Logger) *Engine {
	batch := cfg.LifecycleBatchSize
	if batch <= 0 {
		batch = 200
	}
	return &Engine{
		repo:      repo,
		log:       log,
		provider:  provider,
		ids:       ids,
		logger:    logger.Named("lifecycle.engine"),
		now:       time.Now,
		batchSize: batch,
	}
}

// RunOnce performs a single evaluation pass. Only a failure to list
// candidates is returned as an error; per-event and per-automation failures
// are contained, logged, and leave the rest of the pass untouched.
func (e *Engine) RunOnce(ctx context.Context) (Summary, error) {
	runsTotal.Inc()
	started := e.now()

	events, err := e.repo.ListByStatus(ctx, event.NonTerminalStatuses(), e.batchSize)
	if err != nil {
		return Summary{}, fmt.Errorf("list candidate events: %w", err)
	}

	summary := Summary{Processed: len(events)}
	for _, ev := range events {
		if ctx.Err() != nil {
			// Wall-clock budget exhausted. Transitions already applied stay
			// valid; the next scheduled pass picks up the remainder.
			e.logger.Warn("pass_interrupted",
				zap.Int("processed", summary.Processed),
				zap.Int("transitions", summary.Transitions),
			)
			break
		}

		transitioned, err := e.processEvent(ctx, ev)
		if err != nil {
			e.logger.Warn("event_transition_failed",
				zap.String("event", ev.Slug),
				zap.String("status", string(ev.Status)),
				zap.Error(err),
			)
			continue
		}
		if transitioned {
			summary.Transitions++
		}
	}

	runDuration.Observe(e.now().Sub(started).Seconds())
	return summary, nil
}

// processEvent evaluates the single outbound edge for the event's current
// status. Events never jump two states in one pass, even when data already
// satisfies a later gate; that caps the blast radius of any one run and keeps
// automations ordered.
func (e *Engine) processEvent(ctx context.Context, ev *event.Event) (bool, error) {
	to, ok := event.NextStatus(ev.Status)
	if !ok {
		return false, nil
	}

	ready, err := e.conditionHolds(ctx, ev)
	if err != nil {
		return false, err
	}
	if !ready {
		return false, nil
	}

	return e.transitionAndRun(ctx, ev, to)
}

func (e *Engine) conditionHolds(ctx context.Context, ev *event.Event) (bool, error) {
	switch ev.Status {
	case event.StatusDraft:
		return event.ReadyToPlan(ev), nil
	case event.StatusPlanning:
		return event.ReadyToAnnounce(ev), nil
	case event.StatusAnnouncing:
		ticketsExist, err := e.repo.HasTickets(ctx, ev.ID)
		if err != nil {
			return false, fmt.Errorf("check tickets: %w", err)
		}
		return event.ReadyForTicketSales(ev, ticketsExist), nil
	case event.StatusTicketSales:
		return event.ReadyToGoLive(ev, e.now()), nil
	case event.StatusLive:
		return event.ReadyToComplete(ev, e.now()), nil
	default:
		return false, nil
	}
}

// transitionAndRun commits the status change and log entry, then fires the
// edge's automations. The transition is considered committed once persisted;
// automation failures never roll it back.
func (e *Engine) transitionAndRun(ctx context.Context, ev *event.Event, to event.Status) (bool, error) {
	from := ev.Status
	key := event.ActionKey(from, to)

	recorded, err := e.log.Exists(ctx, ev.ID, key)
	if err != nil {
		return false, fmt.Errorf("idempotency check %s: %w", key, err)
	}
	if recorded {
		// A previous or concurrent run already took this edge.
		return false, nil
	}

	if err := e.repo.UpdateStatus(ctx, ev.ID, from, to); err != nil {
		if errors.Is(err, event.ErrInvalidTransition) {
			// Row moved under us; the winning run owns the automations.
			return false, nil
		}
		return false, fmt.Errorf("update status to %s: %w", to, err)
	}

	entry := &event.LogEntry{
		ID:         e.ids.GenerateID(),
		EventID:    ev.ID,
		FromStatus: from,
		ToStatus:   to,
		ActionKey:  key,
		CreatedAt:  e.now().UTC(),
	}
	if err := e.log.Append(ctx, entry); err != nil {
		if errors.Is(err, event.ErrDuplicateAction) {
			return false, nil
		}
		// Status is already durable; losing the audit row is survivable but
		// widens the re-processing window, so make it loud.
		e.logger.Error("lifecycle_log_append_failed",
			zap.String("event", ev.Slug),
			zap.String("action_key", key),
			zap.Error(err),
		)
	}

	ev.Status = to
	e.runAutomations(ctx, from, ev)

	transitionsTotal.WithLabelValues(key).Inc()
	e.logger.Info("lifecycle_transition",
		zap.String("event", ev.Slug),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return true, nil
}

func (e *Engine) runAutomations(ctx context.Context, from event.Status, ev *event.Event) {
	ectx := toActionContext(ev)
	for _, a := range automationsFor(from) {
		if err := a.run(ctx, e.provider, ectx); err != nil {
			automationFailures.WithLabelValues(a.name).Inc()
			e.logger.Warn("automation_failed",
				zap.String("automation", a.name),
				zap.String("event", ev.Slug),
				zap.Error(err),
			)
		}
	}
}

func toActionContext(ev *event.Event) actions.EventContext {
	return actions.EventContext{
		ID:             ev.ID,
		Slug:           ev.Slug,
		Name:           ev.Name,
		Date:           ev.Date,
		City:           ev.City,
		Description:    ev.Description,
		OrganizerEmail: ev.OrganizerEmail,
	}
}
