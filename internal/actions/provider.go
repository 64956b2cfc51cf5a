// Package actions supplies the side-effecting operations the lifecycle engine
// fires on transitions: content generation and outbound notifications. Each
// operation has an AI- or email-backed primary strategy and a deterministic
// fallback, selected once at construction, so the engine behaves identically
// in constrained environments.
package actions

import (
	"context"

	"go.uber.org/zap"
)

// TextKind selects the flavor of generated copy.
type TextKind string

const (
	KindDescription  TextKind = "description"
	KindAnnouncement TextKind = "announcement"
)

// Audience selects who an outbound notification targets.
type Audience string

const (
	AudienceSpeakers  Audience = "speakers"
	AudienceAttendees Audience = "attendees"
	AudienceSummary   Audience = "summary"
)

// EventContext is the read-only slice of an event the provider needs.
type EventContext struct {
	ID             string
	Slug           string
	Name           string
	Date           string
	City           string
	Description    string
	OrganizerEmail string
}

// Provider is consumed by the lifecycle engine. GenerateText always returns a
// non-empty string (falling back to templated copy on provider failure);
// Notify reports failure through its error but never panics.
type Provider interface {
	GenerateText(ctx context.Context, kind TextKind, ev EventContext) (string, error)
	Notify(ctx context.Context, audience Audience, ev EventContext) error
}

type provider struct {
	composer *Composer
	notifier *Notifier
}

// NewProvider bundles the composer and notifier behind the Provider interface.
func NewProvider(composer *Composer, notifier *Notifier) Provider {
	return &provider{composer: composer, notifier: notifier}
}

func (p *provider) GenerateText(ctx context.Context, kind TextKind, ev EventContext) (string, error) {
	return p.composer.GenerateText(ctx, kind, ev)
}

func (p *provider) Notify(ctx context.Context, audience Audience, ev EventContext) error {
	return p.notifier.Notify(ctx, audience, ev)
}

// Module-level logger naming, shared by composer and notifier constructors.
func named(logger *zap.Logger, child string) *zap.Logger {
	return logger.Named("actions." + child)
}
