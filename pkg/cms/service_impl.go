package cms

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository Repository
	eventSink  EventSink
	logger     *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithLogger sets the structured logger for the service
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.eventSink == nil {
		s.eventSink = NewNoopEventSink()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s, nil
}

// Article operations

func (s *service) CreateArticle(ctx context.Context, req CreateArticleRequest) (*Article, error) {
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, req.Category)
	}
	status := req.Status
	if status == "" {
		status = ContentStatusDraft
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentStatus, status)
	}

	if err := s.validateAssignment(ctx, ContentTypeArticle, req.Category, req.CardPosition, false, nil); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	article := &Article{
		ID:              uuid.New(),
		Title:           req.Title,
		Slug:            Slugify(req.Title),
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		HeroImageURL:    req.HeroImageURL,
		Author:          req.Author,
		Category:        req.Category,
		CardPosition:    req.CardPosition,
		DisplayPages:    req.DisplayPages,
		FactoidData:     req.FactoidData,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Tags:            req.Tags,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if status == ContentStatusPublished {
		article.PublishedAt = &now
	}

	if err := s.repository.CreateArticle(ctx, article); err != nil {
		return nil, &ContentError{ContentType: ContentTypeArticle, ContentID: article.ID, Op: "create", Err: err}
	}

	return article, nil
}

func (s *service) GetArticle(ctx context.Context, id uuid.UUID) (*Article, error) {
	return s.repository.GetArticle(ctx, id)
}

func (s *service) GetArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	return s.repository.GetArticleBySlug(ctx, slug)
}

func (s *service) UpdateArticle(ctx context.Context, req UpdateArticleRequest) (*Article, error) {
	article := req.Article
	if article == nil {
		return nil, fmt.Errorf("article is required")
	}
	if !article.Category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, article.Category)
	}
	if !article.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentStatus, article.Status)
	}

	excludeID := article.ID
	if err := s.validateAssignment(ctx, ContentTypeArticle, article.Category, article.CardPosition, false, &excludeID); err != nil {
		return nil, err
	}

	updated := *article
	updated.Slug = Slugify(updated.Title)
	updated.UpdatedAt = time.Now().UTC()
	if updated.Status == ContentStatusPublished && updated.PublishedAt == nil {
		now := updated.UpdatedAt
		updated.PublishedAt = &now
	}

	if err := s.repository.UpdateArticle(ctx, &updated); err != nil {
		return nil, &ContentError{ContentType: ContentTypeArticle, ContentID: updated.ID, Op: "update", Err: err}
	}

	return &updated, nil
}

func (s *service) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	return s.repository.DeleteArticle(ctx, id)
}

func (s *service) ListArticles(ctx context.Context, filters ArticleListFilters) ([]*Article, error) {
	return s.repository.ListArticles(ctx, filters)
}

// Recipe operations

func (s *service) CreateRecipe(ctx context.Context, req CreateRecipeRequest) (*Recipe, error) {
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, req.Category)
	}
	status := req.Status
	if status == "" {
		status = ContentStatusDraft
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentStatus, status)
	}

	if err := s.validateAssignment(ctx, ContentTypeRecipe, req.Category, req.CardPosition, req.IsFeatured, nil); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recipe := &Recipe{
		ID:                    uuid.New(),
		Title:                 req.Title,
		Slug:                  Slugify(req.Title),
		Description:           req.Description,
		HeroImageURL:          req.HeroImageURL,
		PrepTime:              req.PrepTime,
		CookTime:              req.CookTime,
		Servings:              req.Servings,
		Difficulty:            req.Difficulty,
		Ingredients:           req.Ingredients,
		Instructions:          req.Instructions,
		CaloriesPerServing:    req.CaloriesPerServing,
		ProteinGrams:          req.ProteinGrams,
		FiberGrams:            req.FiberGrams,
		NutritionalHighlights: req.NutritionalHighlights,
		HealthBenefits:        req.HealthBenefits,
		Category:              req.Category,
		MealType:              req.MealType,
		DietaryTags:           req.DietaryTags,
		CardPosition:          req.CardPosition,
		DisplayPages:          req.DisplayPages,
		IsFeatured:            req.IsFeatured,
		MetaTitle:             req.MetaTitle,
		MetaDescription:       req.MetaDescription,
		Status:                status,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if status == ContentStatusPublished {
		recipe.PublishedAt = &now
	}

	if err := s.repository.CreateRecipe(ctx, recipe); err != nil {
		return nil, &ContentError{ContentType: ContentTypeRecipe, ContentID: recipe.ID, Op: "create", Err: err}
	}

	return recipe, nil
}

func (s *service) GetRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error) {
	return s.repository.GetRecipe(ctx, id)
}

func (s *service) GetRecipeBySlug(ctx context.Context, slug string) (*Recipe, error) {
	return s.repository.GetRecipeBySlug(ctx, slug)
}

func (s *service) UpdateRecipe(ctx context.Context, req UpdateRecipeRequest) (*Recipe, error) {
	recipe := req.Recipe
	if recipe == nil {
		return nil, fmt.Errorf("recipe is required")
	}
	if !recipe.Category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, recipe.Category)
	}
	if !recipe.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentStatus, recipe.Status)
	}

	excludeID := recipe.ID
	if err := s.validateAssignment(ctx, ContentTypeRecipe, recipe.Category, recipe.CardPosition, recipe.IsFeatured, &excludeID); err != nil {
		return nil, err
	}

	updated := *recipe
	updated.Slug = Slugify(updated.Title)
	updated.UpdatedAt = time.Now().UTC()
	if updated.Status == ContentStatusPublished && updated.PublishedAt == nil {
		now := updated.UpdatedAt
		updated.PublishedAt = &now
	}

	if err := s.repository.UpdateRecipe(ctx, &updated); err != nil {
		return nil, &ContentError{ContentType: ContentTypeRecipe, ContentID: updated.ID, Op: "update", Err: err}
	}

	return &updated, nil
}

func (s *service) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return s.repository.DeleteRecipe(ctx, id)
}

func (s *service) ListRecipes(ctx context.Context, filters RecipeListFilters) ([]*Recipe, error) {
	return s.repository.ListRecipes(ctx, filters)
}

// Lifecycle operations

func (s *service) PublishArticle(ctx context.Context, id uuid.UUID) (*Article, error) {
	article, err := s.repository.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := canPublish(article.Status); err != nil {
		return nil, err
	}

	// The article starts occupying its slot on publish, so the slot must be
	// free of other published occupants.
	if err := s.validateAssignment(ctx, ContentTypeArticle, article.Category, article.CardPosition, false, &article.ID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	article.Status = ContentStatusPublished
	article.PublishedAt = &now
	article.UpdatedAt = now

	if err := s.repository.UpdateArticle(ctx, article); err != nil {
		return nil, &ContentError{ContentType: ContentTypeArticle, ContentID: id, Op: "publish", Err: err}
	}

	if err := s.eventSink.ArticlePublished(ctx, article); err != nil {
		s.logger.Warn("article published event failed", "article_id", id, "error", err)
	}

	return article, nil
}

func (s *service) ArchiveArticle(ctx context.Context, id uuid.UUID) (*Article, error) {
	article, err := s.repository.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := canArchive(article.Status); err != nil {
		return nil, err
	}

	article.Status = ContentStatusArchived
	article.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateArticle(ctx, article); err != nil {
		return nil, &ContentError{ContentType: ContentTypeArticle, ContentID: id, Op: "archive", Err: err}
	}

	if err := s.eventSink.ContentArchived(ctx, ContentTypeArticle, id); err != nil {
		s.logger.Warn("content archived event failed", "article_id", id, "error", err)
	}

	return article, nil
}

func (s *service) PublishRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error) {
	recipe, err := s.repository.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := canPublish(recipe.Status); err != nil {
		return nil, err
	}

	if err := s.validateAssignment(ctx, ContentTypeRecipe, recipe.Category, recipe.CardPosition, recipe.IsFeatured, &recipe.ID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recipe.Status = ContentStatusPublished
	recipe.PublishedAt = &now
	recipe.UpdatedAt = now

	if err := s.repository.UpdateRecipe(ctx, recipe); err != nil {
		return nil, &ContentError{ContentType: ContentTypeRecipe, ContentID: id, Op: "publish", Err: err}
	}

	if err := s.eventSink.RecipePublished(ctx, recipe); err != nil {
		s.logger.Warn("recipe published event failed", "recipe_id", id, "error", err)
	}

	return recipe, nil
}

func (s *service) ArchiveRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error) {
	recipe, err := s.repository.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := canArchive(recipe.Status); err != nil {
		return nil, err
	}

	recipe.Status = ContentStatusArchived
	recipe.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateRecipe(ctx, recipe); err != nil {
		return nil, &ContentError{ContentType: ContentTypeRecipe, ContentID: id, Op: "archive", Err: err}
	}

	if err := s.eventSink.ContentArchived(ctx, ContentTypeRecipe, id); err != nil {
		s.logger.Warn("content archived event failed", "recipe_id", id, "error", err)
	}

	return recipe, nil
}

// Card operations

func (s *service) AssignCard(ctx context.Context, req AssignCardRequest) error {
	if !req.ContentType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidContentType, req.ContentType)
	}

	var (
		category   Category
		isFeatured bool
	)
	switch req.ContentType {
	case ContentTypeArticle:
		article, err := s.repository.GetArticle(ctx, req.ContentID)
		if err != nil {
			return err
		}
		category = article.Category
	case ContentTypeRecipe:
		recipe, err := s.repository.GetRecipe(ctx, req.ContentID)
		if err != nil {
			return err
		}
		category = recipe.Category
		isFeatured = recipe.IsFeatured
	}

	excludeID := req.ContentID
	if err := s.validateAssignment(ctx, req.ContentType, category, req.Position, isFeatured, &excludeID); err != nil {
		return err
	}

	// SetCardPosition is the authoritative guard: a concurrent assignment that
	// slipped past the pre-check above still fails there with
	// ErrPositionOccupied.
	if err := s.repository.SetCardPosition(ctx, req.ContentType, req.ContentID, req.Position, req.DisplayPages); err != nil {
		return &ContentError{ContentType: req.ContentType, ContentID: req.ContentID, Op: "assign_card", Err: err}
	}

	if req.Position != nil {
		if err := s.eventSink.CardAssigned(ctx, req.ContentType, req.ContentID, *req.Position); err != nil {
			s.logger.Warn("card assigned event failed", "content_id", req.ContentID, "error", err)
		}
	} else {
		if err := s.eventSink.CardUnassigned(ctx, req.ContentType, req.ContentID); err != nil {
			s.logger.Warn("card unassigned event failed", "content_id", req.ContentID, "error", err)
		}
	}

	return nil
}

func (s *service) UnassignCard(ctx context.Context, contentType ContentType, id uuid.UUID) error {
	return s.AssignCard(ctx, AssignCardRequest{ContentType: contentType, ContentID: id, Position: nil})
}
