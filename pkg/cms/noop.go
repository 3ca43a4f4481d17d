package cms

import (
	"context"

	"github.com/google/uuid"
)

// NoopEventSink is an event sink that does nothing. Useful as a default when
// no event handling is configured.
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-op event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

func (s *NoopEventSink) ArticlePublished(ctx context.Context, article *Article) error { return nil }

func (s *NoopEventSink) RecipePublished(ctx context.Context, recipe *Recipe) error { return nil }

func (s *NoopEventSink) ContentArchived(ctx context.Context, contentType ContentType, id uuid.UUID) error {
	return nil
}

func (s *NoopEventSink) CardAssigned(ctx context.Context, contentType ContentType, id uuid.UUID, slot Slot) error {
	return nil
}

func (s *NoopEventSink) CardUnassigned(ctx context.Context, contentType ContentType, id uuid.UUID) error {
	return nil
}
