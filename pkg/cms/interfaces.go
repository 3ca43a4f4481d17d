package cms

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for article and recipe persistence.
type Repository interface {
	// Article operations
	CreateArticle(ctx context.Context, article *Article) error
	GetArticle(ctx context.Context, id uuid.UUID) (*Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*Article, error)
	UpdateArticle(ctx context.Context, article *Article) error
	DeleteArticle(ctx context.Context, id uuid.UUID) error
	ListArticles(ctx context.Context, filters ArticleListFilters) ([]*Article, error)

	// Recipe operations
	CreateRecipe(ctx context.Context, recipe *Recipe) error
	GetRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error)
	GetRecipeBySlug(ctx context.Context, slug string) (*Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *Recipe) error
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	ListRecipes(ctx context.Context, filters RecipeListFilters) ([]*Recipe, error)

	// Card position operations.
	//
	// FindPublishedHoldingSlot returns the published articles and recipes
	// currently holding slot, across both tables. excludeID, when non-nil, is
	// omitted from both result lists so an update does not conflict with the
	// record being updated.
	FindPublishedHoldingSlot(ctx context.Context, slot Slot, excludeID *uuid.UUID) (SlotOccupancy, error)

	// ListPublishedWithSlotsForPage returns all published content that carries
	// a non-nil card position and lists page among its display pages.
	ListPublishedWithSlotsForPage(ctx context.Context, page Page) (PageContent, error)

	// SetCardPosition writes the card position (nil to unassign) for the
	// identified content, updating its display pages when displayPages is
	// non-nil. Implementations must enforce slot uniqueness among published
	// content at the storage level and report a conflict as
	// ErrPositionOccupied; the service's validation pass is only an optimistic
	// pre-check.
	SetCardPosition(ctx context.Context, contentType ContentType, id uuid.UUID, slot *Slot, displayPages []Page) error
}

// EventSink defines the interface for content event handling.
type EventSink interface {
	// ArticlePublished is fired when an article transitions to published
	ArticlePublished(ctx context.Context, article *Article) error

	// RecipePublished is fired when a recipe transitions to published
	RecipePublished(ctx context.Context, recipe *Recipe) error

	// ContentArchived is fired when an article or recipe is archived
	ContentArchived(ctx context.Context, contentType ContentType, id uuid.UUID) error

	// CardAssigned is fired when content is assigned to a card position
	CardAssigned(ctx context.Context, contentType ContentType, id uuid.UUID, slot Slot) error

	// CardUnassigned is fired when a card position is cleared
	CardUnassigned(ctx context.Context, contentType ContentType, id uuid.UUID) error
}
