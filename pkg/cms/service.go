package cms

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the CMS library.
type Service interface {
	// Article operations
	CreateArticle(ctx context.Context, req CreateArticleRequest) (*Article, error)
	GetArticle(ctx context.Context, id uuid.UUID) (*Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*Article, error)
	UpdateArticle(ctx context.Context, req UpdateArticleRequest) (*Article, error)
	DeleteArticle(ctx context.Context, id uuid.UUID) error
	ListArticles(ctx context.Context, filters ArticleListFilters) ([]*Article, error)

	// Recipe operations
	CreateRecipe(ctx context.Context, req CreateRecipeRequest) (*Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error)
	GetRecipeBySlug(ctx context.Context, slug string) (*Recipe, error)
	UpdateRecipe(ctx context.Context, req UpdateRecipeRequest) (*Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	ListRecipes(ctx context.Context, filters RecipeListFilters) ([]*Recipe, error)

	// Lifecycle operations
	PublishArticle(ctx context.Context, id uuid.UUID) (*Article, error)
	ArchiveArticle(ctx context.Context, id uuid.UUID) (*Article, error)
	PublishRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error)
	ArchiveRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error)

	// Card operations
	AssignCard(ctx context.Context, req AssignCardRequest) error
	UnassignCard(ctx context.Context, contentType ContentType, id uuid.UUID) error
	ResolvePage(ctx context.Context, page Page) (*PageView, error)
}
