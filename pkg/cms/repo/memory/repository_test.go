package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lentilsandmillets/cms/pkg/cms"
)

func newArticle(title, slug string, category cms.Category, status cms.ContentStatus, slot *cms.Slot, pages ...cms.Page) *cms.Article {
	now := time.Now().UTC()
	a := &cms.Article{
		ID:           uuid.New(),
		Title:        title,
		Slug:         slug,
		Category:     category,
		CardPosition: slot,
		DisplayPages: pages,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status == cms.ContentStatusPublished {
		a.PublishedAt = &now
	}
	return a
}

func newRecipe(title, slug string, category cms.Category, status cms.ContentStatus, slot *cms.Slot, pages ...cms.Page) *cms.Recipe {
	now := time.Now().UTC()
	r := &cms.Recipe{
		ID:           uuid.New(),
		Title:        title,
		Slug:         slug,
		Category:     category,
		Ingredients:  []string{"one"},
		Instructions: []string{"cook"},
		CardPosition: slot,
		DisplayPages: pages,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status == cms.ContentStatusPublished {
		r.PublishedAt = &now
	}
	return r
}

func slotPtr(s cms.Slot) *cms.Slot { return &s }

func TestArticleCRUD(t *testing.T) {
	repo := New()
	ctx := context.Background()

	article := newArticle("Lentil Basics", "lentil-basics", cms.CategoryLentils, cms.ContentStatusDraft, nil)
	require.NoError(t, repo.CreateArticle(ctx, article))

	got, err := repo.GetArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, article.Title, got.Title)

	bySlug, err := repo.GetArticleBySlug(ctx, "lentil-basics")
	require.NoError(t, err)
	assert.Equal(t, article.ID, bySlug.ID)

	got.Title = "Lentil Fundamentals"
	got.Slug = "lentil-fundamentals"
	require.NoError(t, repo.UpdateArticle(ctx, got))

	// Old slug is evicted, new slug resolves
	_, err = repo.GetArticleBySlug(ctx, "lentil-basics")
	assert.ErrorIs(t, err, cms.ErrArticleNotFound)
	renamed, err := repo.GetArticleBySlug(ctx, "lentil-fundamentals")
	require.NoError(t, err)
	assert.Equal(t, article.ID, renamed.ID)

	require.NoError(t, repo.DeleteArticle(ctx, article.ID))
	_, err = repo.GetArticle(ctx, article.ID)
	assert.ErrorIs(t, err, cms.ErrArticleNotFound)
	_, err = repo.GetArticleBySlug(ctx, "lentil-fundamentals")
	assert.ErrorIs(t, err, cms.ErrArticleNotFound)
}

func TestArticleNotFound(t *testing.T) {
	repo := New()
	ctx := context.Background()

	_, err := repo.GetArticle(ctx, uuid.New())
	assert.ErrorIs(t, err, cms.ErrArticleNotFound)

	err = repo.UpdateArticle(ctx, newArticle("Ghost", "ghost", cms.CategoryLentils, cms.ContentStatusDraft, nil))
	assert.ErrorIs(t, err, cms.ErrArticleNotFound)

	err = repo.DeleteArticle(ctx, uuid.New())
	assert.ErrorIs(t, err, cms.ErrArticleNotFound)
}

func TestRecipeCRUD(t *testing.T) {
	repo := New()
	ctx := context.Background()

	recipe := newRecipe("Millet Porridge", "millet-porridge", cms.CategoryMillets, cms.ContentStatusDraft, nil)
	require.NoError(t, repo.CreateRecipe(ctx, recipe))

	got, err := repo.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.Title, got.Title)

	bySlug, err := repo.GetRecipeBySlug(ctx, "millet-porridge")
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, bySlug.ID)

	require.NoError(t, repo.DeleteRecipe(ctx, recipe.ID))
	_, err = repo.GetRecipe(ctx, recipe.ID)
	assert.ErrorIs(t, err, cms.ErrRecipeNotFound)
}

func TestCopySemantics(t *testing.T) {
	repo := New()
	ctx := context.Background()

	article := newArticle("Immutable", "immutable", cms.CategoryLentils, cms.ContentStatusDraft, nil)
	require.NoError(t, repo.CreateArticle(ctx, article))

	// Mutating the returned copy must not leak into the store
	got, err := repo.GetArticle(ctx, article.ID)
	require.NoError(t, err)
	got.Title = "Mutated"

	fresh, err := repo.GetArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "Immutable", fresh.Title)
}

func TestFindPublishedHoldingSlot(t *testing.T) {
	repo := New()
	ctx := context.Background()

	published := newArticle("Published Holder", "published-holder", cms.CategoryLentils, cms.ContentStatusPublished, slotPtr("H5"), cms.PageHome)
	draft := newArticle("Draft Holder", "draft-holder", cms.CategoryLentils, cms.ContentStatusDraft, slotPtr("H5"), cms.PageHome)
	archived := newArticle("Archived Holder", "archived-holder", cms.CategoryLentils, cms.ContentStatusArchived, slotPtr("H5"), cms.PageHome)
	elsewhere := newArticle("Elsewhere", "elsewhere", cms.CategoryLentils, cms.ContentStatusPublished, slotPtr("H6"), cms.PageHome)
	for _, a := range []*cms.Article{published, draft, archived, elsewhere} {
		require.NoError(t, repo.CreateArticle(ctx, a))
	}

	occupancy, err := repo.FindPublishedHoldingSlot(ctx, "H5", nil)
	require.NoError(t, err)
	assert.True(t, occupancy.Occupied())
	assert.Equal(t, []uuid.UUID{published.ID}, occupancy.ArticleIDs)
	assert.Empty(t, occupancy.RecipeIDs)

	// Excluding the only occupant reports the slot as free
	occupancy, err = repo.FindPublishedHoldingSlot(ctx, "H5", &published.ID)
	require.NoError(t, err)
	assert.False(t, occupancy.Occupied())
}

func TestFindPublishedHoldingSlotBothTables(t *testing.T) {
	repo := New()
	ctx := context.Background()

	article := newArticle("Article Holder", "article-holder", cms.CategoryLentils, cms.ContentStatusPublished, slotPtr("H3"), cms.PageHome)
	recipe := newRecipe("Recipe Holder", "recipe-holder", cms.CategoryMillets, cms.ContentStatusPublished, slotPtr("H3"), cms.PageHome)
	require.NoError(t, repo.CreateArticle(ctx, article))
	require.NoError(t, repo.CreateRecipe(ctx, recipe))

	occupancy, err := repo.FindPublishedHoldingSlot(ctx, "H3", nil)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{article.ID}, occupancy.ArticleIDs)
	assert.Equal(t, []uuid.UUID{recipe.ID}, occupancy.RecipeIDs)

	// excludeID applies to both tables
	occupancy, err = repo.FindPublishedHoldingSlot(ctx, "H3", &recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{article.ID}, occupancy.ArticleIDs)
	assert.Empty(t, occupancy.RecipeIDs)
}

func TestSetCardPosition(t *testing.T) {
	repo := New()
	ctx := context.Background()

	article := newArticle("Movable", "movable", cms.CategoryLentils, cms.ContentStatusPublished, nil)
	require.NoError(t, repo.CreateArticle(ctx, article))

	err := repo.SetCardPosition(ctx, cms.ContentTypeArticle, article.ID, slotPtr("L2"), []cms.Page{cms.PageLentils})
	require.NoError(t, err)

	got, err := repo.GetArticle(ctx, article.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CardPosition)
	assert.Equal(t, cms.Slot("L2"), *got.CardPosition)
	assert.Equal(t, []cms.Page{cms.PageLentils}, got.DisplayPages)

	// nil displayPages leaves pages untouched
	require.NoError(t, repo.SetCardPosition(ctx, cms.ContentTypeArticle, article.ID, slotPtr("L3"), nil))
	got, err = repo.GetArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, cms.Slot("L3"), *got.CardPosition)
	assert.Equal(t, []cms.Page{cms.PageLentils}, got.DisplayPages)

	// nil slot clears the position
	require.NoError(t, repo.SetCardPosition(ctx, cms.ContentTypeArticle, article.ID, nil, nil))
	got, err = repo.GetArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CardPosition)
}

func TestSetCardPositionConflict(t *testing.T) {
	repo := New()
	ctx := context.Background()

	holder := newArticle("Holder", "holder", cms.CategoryLentils, cms.ContentStatusPublished, slotPtr("L5"), cms.PageLentils)
	mover := newArticle("Mover", "mover", cms.CategoryLentils, cms.ContentStatusPublished, nil)
	require.NoError(t, repo.CreateArticle(ctx, holder))
	require.NoError(t, repo.CreateArticle(ctx, mover))

	err := repo.SetCardPosition(ctx, cms.ContentTypeArticle, mover.ID, slotPtr("L5"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, cms.ErrPositionOccupied)

	// The conflicting write must not have gone through
	got, err := repo.GetArticle(ctx, mover.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CardPosition)
}

func TestSetCardPositionSelfMoveAllowed(t *testing.T) {
	repo := New()
	ctx := context.Background()

	holder := newArticle("Self Holder", "self-holder", cms.CategoryLentils, cms.ContentStatusPublished, slotPtr("L6"), cms.PageLentils)
	require.NoError(t, repo.CreateArticle(ctx, holder))

	// Re-setting its own slot is not a conflict
	require.NoError(t, repo.SetCardPosition(ctx, cms.ContentTypeArticle, holder.ID, slotPtr("L6"), nil))
}

func TestSetCardPositionNotFound(t *testing.T) {
	repo := New()
	ctx := context.Background()

	err := repo.SetCardPosition(ctx, cms.ContentTypeArticle, uuid.New(), slotPtr("L1"), nil)
	assert.ErrorIs(t, err, cms.ErrArticleNotFound)

	err = repo.SetCardPosition(ctx, cms.ContentTypeRecipe, uuid.New(), slotPtr("M4"), nil)
	assert.ErrorIs(t, err, cms.ErrRecipeNotFound)

	err = repo.SetCardPosition(ctx, cms.ContentType("video"), uuid.New(), nil, nil)
	assert.ErrorIs(t, err, cms.ErrInvalidContentType)
}

func TestListPublishedWithSlotsForPage(t *testing.T) {
	repo := New()
	ctx := context.Background()

	onHome := newArticle("On Home", "on-home", cms.CategoryLentils, cms.ContentStatusPublished, slotPtr("H1"), cms.PageHome, cms.PageLentils)
	lentilsOnly := newArticle("Lentils Only", "lentils-only", cms.CategoryLentils, cms.ContentStatusPublished, slotPtr("L1"), cms.PageLentils)
	noSlot := newArticle("No Slot", "no-slot", cms.CategoryLentils, cms.ContentStatusPublished, nil, cms.PageHome)
	draft := newArticle("Draft", "draft", cms.CategoryLentils, cms.ContentStatusDraft, slotPtr("H2"), cms.PageHome)
	for _, a := range []*cms.Article{onHome, lentilsOnly, noSlot, draft} {
		require.NoError(t, repo.CreateArticle(ctx, a))
	}

	homeRecipe := newRecipe("Home Recipe", "home-recipe", cms.CategoryMillets, cms.ContentStatusPublished, slotPtr("H16"), cms.PageHome)
	require.NoError(t, repo.CreateRecipe(ctx, homeRecipe))

	content, err := repo.ListPublishedWithSlotsForPage(ctx, cms.PageHome)
	require.NoError(t, err)
	require.Len(t, content.Articles, 1)
	assert.Equal(t, onHome.ID, content.Articles[0].ID)
	require.Len(t, content.Recipes, 1)
	assert.Equal(t, homeRecipe.ID, content.Recipes[0].ID)

	content, err = repo.ListPublishedWithSlotsForPage(ctx, cms.PageLentils)
	require.NoError(t, err)
	assert.Len(t, content.Articles, 2)
	assert.Empty(t, content.Recipes)
}

func TestListArticlesPagination(t *testing.T) {
	repo := New()
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		a := newArticle("Paged", "", cms.CategoryLentils, cms.ContentStatusDraft, nil)
		a.Slug = a.ID.String()
		a.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.CreateArticle(ctx, a))
	}

	limit, offset := 2, 1
	got, err := repo.ListArticles(ctx, cms.ArticleListFilters{Limit: &limit, Offset: &offset})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Newest first
	all, err := repo.ListArticles(ctx, cms.ArticleListFilters{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].CreatedAt.After(all[i].CreatedAt))
	}

	// Offset past the end yields nothing
	offset = 10
	got, err = repo.ListArticles(ctx, cms.ArticleListFilters{Offset: &offset})
	require.NoError(t, err)
	assert.Empty(t, got)
}
