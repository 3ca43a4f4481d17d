package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lentilsandmillets/cms/pkg/cms"
)

// Repository implements cms.Repository using in-memory storage. Slot
// uniqueness among published content is enforced under the write lock, so
// SetCardPosition is an atomic check-and-set and remains the authoritative
// guard even when two validated assignments race.
type Repository struct {
	mu             sync.RWMutex
	articles       map[uuid.UUID]*cms.Article
	recipes        map[uuid.UUID]*cms.Recipe
	articlesBySlug map[string]uuid.UUID
	recipesBySlug  map[string]uuid.UUID
}

// New creates a new in-memory repository
func New() cms.Repository {
	return &Repository{
		articles:       make(map[uuid.UUID]*cms.Article),
		recipes:        make(map[uuid.UUID]*cms.Recipe),
		articlesBySlug: make(map[string]uuid.UUID),
		recipesBySlug:  make(map[string]uuid.UUID),
	}
}

// Article operations

func (r *Repository) CreateArticle(ctx context.Context, article *cms.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Create a copy to avoid external modifications
	articleCopy := *article
	r.articles[article.ID] = &articleCopy
	r.articlesBySlug[article.Slug] = article.ID

	return nil
}

func (r *Repository) GetArticle(ctx context.Context, id uuid.UUID) (*cms.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	article, exists := r.articles[id]
	if !exists {
		return nil, cms.ErrArticleNotFound
	}

	articleCopy := *article
	return &articleCopy, nil
}

func (r *Repository) GetArticleBySlug(ctx context.Context, slug string) (*cms.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.articlesBySlug[slug]
	if !exists {
		return nil, cms.ErrArticleNotFound
	}
	articleCopy := *r.articles[id]
	return &articleCopy, nil
}

func (r *Repository) UpdateArticle(ctx context.Context, article *cms.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.articles[article.ID]
	if !exists {
		return cms.ErrArticleNotFound
	}
	if existing.Slug != article.Slug {
		delete(r.articlesBySlug, existing.Slug)
		r.articlesBySlug[article.Slug] = article.ID
	}

	articleCopy := *article
	r.articles[article.ID] = &articleCopy

	return nil
}

func (r *Repository) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	article, exists := r.articles[id]
	if !exists {
		return cms.ErrArticleNotFound
	}
	delete(r.articlesBySlug, article.Slug)
	delete(r.articles, id)
	return nil
}

func (r *Repository) ListArticles(ctx context.Context, filters cms.ArticleListFilters) ([]*cms.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*cms.Article
	for _, article := range r.articles {
		if filters.Category != nil && article.Category != *filters.Category {
			continue
		}
		if filters.Status != nil && article.Status != *filters.Status {
			continue
		}
		articleCopy := *article
		result = append(result, &articleCopy)
	}

	// Sort by created_at descending
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return paginate(result, filters.Limit, filters.Offset), nil
}

// Recipe operations

func (r *Repository) CreateRecipe(ctx context.Context, recipe *cms.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipeCopy := *recipe
	r.recipes[recipe.ID] = &recipeCopy
	r.recipesBySlug[recipe.Slug] = recipe.ID

	return nil
}

func (r *Repository) GetRecipe(ctx context.Context, id uuid.UUID) (*cms.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipe, exists := r.recipes[id]
	if !exists {
		return nil, cms.ErrRecipeNotFound
	}

	recipeCopy := *recipe
	return &recipeCopy, nil
}

func (r *Repository) GetRecipeBySlug(ctx context.Context, slug string) (*cms.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.recipesBySlug[slug]
	if !exists {
		return nil, cms.ErrRecipeNotFound
	}
	recipeCopy := *r.recipes[id]
	return &recipeCopy, nil
}

func (r *Repository) UpdateRecipe(ctx context.Context, recipe *cms.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.recipes[recipe.ID]
	if !exists {
		return cms.ErrRecipeNotFound
	}
	if existing.Slug != recipe.Slug {
		delete(r.recipesBySlug, existing.Slug)
		r.recipesBySlug[recipe.Slug] = recipe.ID
	}

	recipeCopy := *recipe
	r.recipes[recipe.ID] = &recipeCopy

	return nil
}

func (r *Repository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipe, exists := r.recipes[id]
	if !exists {
		return cms.ErrRecipeNotFound
	}
	delete(r.recipesBySlug, recipe.Slug)
	delete(r.recipes, id)
	return nil
}

func (r *Repository) ListRecipes(ctx context.Context, filters cms.RecipeListFilters) ([]*cms.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*cms.Recipe
	for _, recipe := range r.recipes {
		if filters.Category != nil && recipe.Category != *filters.Category {
			continue
		}
		if filters.Status != nil && recipe.Status != *filters.Status {
			continue
		}
		if filters.IsFeatured != nil && recipe.IsFeatured != *filters.IsFeatured {
			continue
		}
		if filters.MealType != nil && recipe.MealType != *filters.MealType {
			continue
		}
		recipeCopy := *recipe
		result = append(result, &recipeCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return paginate(result, filters.Limit, filters.Offset), nil
}

// Card position operations

func (r *Repository) FindPublishedHoldingSlot(ctx context.Context, slot cms.Slot, excludeID *uuid.UUID) (cms.SlotOccupancy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.occupancyLocked(slot, excludeID), nil
}

// occupancyLocked requires at least a read lock.
func (r *Repository) occupancyLocked(slot cms.Slot, excludeID *uuid.UUID) cms.SlotOccupancy {
	var occupancy cms.SlotOccupancy
	for _, article := range r.articles {
		if article.Status != cms.ContentStatusPublished || article.CardPosition == nil || *article.CardPosition != slot {
			continue
		}
		if excludeID != nil && article.ID == *excludeID {
			continue
		}
		occupancy.ArticleIDs = append(occupancy.ArticleIDs, article.ID)
	}
	for _, recipe := range r.recipes {
		if recipe.Status != cms.ContentStatusPublished || recipe.CardPosition == nil || *recipe.CardPosition != slot {
			continue
		}
		if excludeID != nil && recipe.ID == *excludeID {
			continue
		}
		occupancy.RecipeIDs = append(occupancy.RecipeIDs, recipe.ID)
	}
	return occupancy
}

func (r *Repository) ListPublishedWithSlotsForPage(ctx context.Context, page cms.Page) (cms.PageContent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var content cms.PageContent
	for _, article := range r.articles {
		if article.Status != cms.ContentStatusPublished || article.CardPosition == nil {
			continue
		}
		if !containsPage(article.DisplayPages, page) {
			continue
		}
		articleCopy := *article
		content.Articles = append(content.Articles, &articleCopy)
	}
	for _, recipe := range r.recipes {
		if recipe.Status != cms.ContentStatusPublished || recipe.CardPosition == nil {
			continue
		}
		if !containsPage(recipe.DisplayPages, page) {
			continue
		}
		recipeCopy := *recipe
		content.Recipes = append(content.Recipes, &recipeCopy)
	}

	return content, nil
}

func (r *Repository) SetCardPosition(ctx context.Context, contentType cms.ContentType, id uuid.UUID, slot *cms.Slot, displayPages []cms.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Storage-level backstop: re-check occupancy under the write lock so a
	// racing assignment that passed validation still fails here.
	if slot != nil {
		occupancy := r.occupancyLocked(*slot, &id)
		if occupancy.Occupied() {
			return &cms.PositionOccupiedError{Slot: *slot}
		}
	}

	now := time.Now().UTC()
	switch contentType {
	case cms.ContentTypeArticle:
		article, exists := r.articles[id]
		if !exists {
			return cms.ErrArticleNotFound
		}
		article.CardPosition = slot
		if displayPages != nil {
			article.DisplayPages = displayPages
		}
		article.UpdatedAt = now
	case cms.ContentTypeRecipe:
		recipe, exists := r.recipes[id]
		if !exists {
			return cms.ErrRecipeNotFound
		}
		recipe.CardPosition = slot
		if displayPages != nil {
			recipe.DisplayPages = displayPages
		}
		recipe.UpdatedAt = now
	default:
		return cms.ErrInvalidContentType
	}

	return nil
}

func containsPage(pages []cms.Page, page cms.Page) bool {
	for _, p := range pages {
		if p == page {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, limit, offset *int) []T {
	start := 0
	if offset != nil && *offset > 0 {
		start = *offset
	}
	if start >= len(items) {
		return nil
	}
	end := len(items)
	if limit != nil && *limit >= 0 && start+*limit < end {
		end = start + *limit
	}
	return items[start:end]
}
