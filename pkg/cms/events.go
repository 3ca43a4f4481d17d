package cms

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LoggingEventSink records content events with structured logging.
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates an event sink that logs every event. A nil
// logger falls back to slog.Default().
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

func (s *LoggingEventSink) ArticlePublished(ctx context.Context, article *Article) error {
	s.logger.InfoContext(ctx, "article published",
		"article_id", article.ID, "slug", article.Slug, "category", article.Category)
	return nil
}

func (s *LoggingEventSink) RecipePublished(ctx context.Context, recipe *Recipe) error {
	s.logger.InfoContext(ctx, "recipe published",
		"recipe_id", recipe.ID, "slug", recipe.Slug, "category", recipe.Category,
		"is_featured", recipe.IsFeatured)
	return nil
}

func (s *LoggingEventSink) ContentArchived(ctx context.Context, contentType ContentType, id uuid.UUID) error {
	s.logger.InfoContext(ctx, "content archived", "content_type", contentType, "content_id", id)
	return nil
}

func (s *LoggingEventSink) CardAssigned(ctx context.Context, contentType ContentType, id uuid.UUID, slot Slot) error {
	s.logger.InfoContext(ctx, "card assigned",
		"content_type", contentType, "content_id", id, "position", slot)
	return nil
}

func (s *LoggingEventSink) CardUnassigned(ctx context.Context, contentType ContentType, id uuid.UUID) error {
	s.logger.InfoContext(ctx, "card unassigned", "content_type", contentType, "content_id", id)
	return nil
}
