package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/pkg/aiclient"
	"go.uber.org/zap"
)

// Length bounds per kind. AI output over the bound is discarded in favor of
// the deterministic template; an announcement has to fit a social post.
const (
	descriptionMaxChars  = 600
	announcementMaxChars = 280

	descriptionMaxTokens  = 120
	announcementMaxTokens = 60
)

// TextGenerator is the primary strategy behind the composer.
type TextGenerator interface {
	Generate(ctx context.Context, kind TextKind, ev EventContext) (string, error)
}

// Composer produces event copy. The AI primary is selected by a single
// capability check at construction; without it every call goes straight to
// the templated fallback.
type Composer struct {
	primary TextGenerator
	logger  *zap.Logger
}

func NewComposer(client *aiclient.Client, logger *zap.Logger) *Composer {
	c := &Composer{logger: named(logger, "composer")}
	if client != nil && client.Enabled() {
		c.primary = &aiGenerator{client: client}
	} else {
		c.logger.Info("ai_generation_disabled_using_templates")
	}
	return c
}

// GenerateText returns copy for the event. It never returns an empty string:
// primary failures, empty output, and oversized output all fall back to a
// deterministic template built from the event name, date and city.
func (c *Composer) GenerateText(ctx context.Context, kind TextKind, ev EventContext) (string, error) {
	limit := lengthBudget(kind)

	if c.primary != nil {
		text, err := c.primary.Generate(ctx, kind, ev)
		switch {
		case err != nil:
			c.logger.Warn("ai_generation_failed",
				zap.String("kind", string(kind)),
				zap.String("event", ev.Slug),
				zap.Error(err),
			)
		case strings.TrimSpace(text) == "":
			c.logger.Warn("ai_generation_empty",
				zap.String("kind", string(kind)),
				zap.String("event", ev.Slug),
			)
		case len(text) > limit:
			c.logger.Warn("ai_generation_oversized",
				zap.String("kind", string(kind)),
				zap.String("event", ev.Slug),
				zap.Int("length", len(text)),
				zap.Int("limit", limit),
			)
		default:
			return strings.TrimSpace(text), nil
		}
	}

	return fallbackText(kind, ev), nil
}

func lengthBudget(kind TextKind) int {
	if kind == KindAnnouncement {
		return announcementMaxChars
	}
	return descriptionMaxChars
}

func fallbackText(kind TextKind, ev EventContext) string {
	switch kind {
	case KindAnnouncement:
		return fmt.Sprintf("%s — %s in %s. Get your ticket!", ev.Name, ev.Date, ev.City)
	default:
		if ev.Description != "" {
			return ev.Description
		}
		return fmt.Sprintf("Join us for %s on %s in %s.", ev.Name, ev.Date, ev.City)
	}
}

type aiGenerator struct {
	client *aiclient.Client
}

func (g *aiGenerator) Generate(ctx context.Context, kind TextKind, ev EventContext) (string, error) {
	system := "You are a marketing copywriter for tech conferences. Respond with the copy only, no preamble, no quotes."

	var user string
	var maxTokens int
	switch kind {
	case KindAnnouncement:
		user = fmt.Sprintf(
			"Write one short social announcement (under 200 characters) for %q, happening %s in %s. End with a call to action to get tickets.",
			ev.Name, ev.Date, ev.City,
		)
		maxTokens = announcementMaxTokens
	default:
		user = fmt.Sprintf(
			"Write a two-sentence event description for %q, happening %s in %s.",
			ev.Name, ev.Date, ev.City,
		)
		maxTokens = descriptionMaxTokens
	}

	return g.client.Complete(ctx, system, user, maxTokens)
}
