package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lentilsandmillets/cms/pkg/cms"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// beginner is satisfied by *pgxpool.Pool and *pgx.Conn; SetCardPosition uses
// it to run its check-and-set in a transaction when the underlying DBTX
// supports one.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository implements cms.Repository using PostgreSQL. The schema carries
// partial unique indexes on (card_position) WHERE status = 'published' for
// both content tables (migrations/postgres/0001_cms.sql); a unique violation
// on either index surfaces as cms.ErrPositionOccupied so the error taxonomy
// is uniform across the validation and storage layers.
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) cms.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) cms.Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "card_position") {
				return cms.ErrPositionOccupied
			}
			if strings.Contains(pgErr.ConstraintName, "slug") {
				return fmt.Errorf("slug already exists")
			}
			return fmt.Errorf("duplicate entry")
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("record not found")
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

const articleColumns = `id, title, slug, content, excerpt, hero_image_url, author, category,
	card_position, display_pages, factoid_data, meta_title, meta_description,
	tags, status, published_at, created_at, updated_at`

const recipeColumns = `id, title, slug, description, hero_image_url, prep_time, cook_time,
	servings, difficulty, ingredients, instructions, calories_per_serving,
	protein_grams, fiber_grams, nutritional_highlights, health_benefits,
	category, meal_type, dietary_tags, card_position, display_pages,
	is_featured, meta_title, meta_description, status, published_at,
	created_at, updated_at`

// Article operations

func (r *Repository) CreateArticle(ctx context.Context, article *cms.Article) error {
	query := `
		INSERT INTO cms_articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.Exec(ctx, query,
		article.ID, article.Title, article.Slug, article.Content, article.Excerpt,
		article.HeroImageURL, article.Author, string(article.Category),
		slotParam(article.CardPosition), pagesParam(article.DisplayPages), article.FactoidData,
		article.MetaTitle, article.MetaDescription, article.Tags,
		string(article.Status), article.PublishedAt, article.CreatedAt, article.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create article", err)
	}

	return nil
}

func (r *Repository) GetArticle(ctx context.Context, id uuid.UUID) (*cms.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM cms_articles WHERE id = $1`
	return r.scanArticle(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) GetArticleBySlug(ctx context.Context, slug string) (*cms.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM cms_articles WHERE slug = $1`
	return r.scanArticle(r.db.QueryRow(ctx, query, slug))
}

func (r *Repository) UpdateArticle(ctx context.Context, article *cms.Article) error {
	query := `
		UPDATE cms_articles SET
			title = $2, slug = $3, content = $4, excerpt = $5, hero_image_url = $6,
			author = $7, category = $8, card_position = $9, display_pages = $10,
			factoid_data = $11, meta_title = $12, meta_description = $13, tags = $14,
			status = $15, published_at = $16, updated_at = $17
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		article.ID, article.Title, article.Slug, article.Content, article.Excerpt,
		article.HeroImageURL, article.Author, string(article.Category),
		slotParam(article.CardPosition), pagesParam(article.DisplayPages), article.FactoidData,
		article.MetaTitle, article.MetaDescription, article.Tags,
		string(article.Status), article.PublishedAt, article.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("update article", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrArticleNotFound
	}

	return nil
}

func (r *Repository) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cms_articles WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete article", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrArticleNotFound
	}
	return nil
}

func (r *Repository) ListArticles(ctx context.Context, filters cms.ArticleListFilters) ([]*cms.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM cms_articles WHERE 1=1`
	var args []interface{}

	if filters.Category != nil {
		args = append(args, string(*filters.Category))
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filters.Status != nil {
		args = append(args, string(*filters.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if filters.Limit != nil {
		args = append(args, *filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset != nil {
		args = append(args, *filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list articles", err)
	}
	defer rows.Close()

	var articles []*cms.Article
	for rows.Next() {
		article, err := r.scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// Recipe operations

func (r *Repository) CreateRecipe(ctx context.Context, recipe *cms.Recipe) error {
	query := `
		INSERT INTO cms_recipes (` + recipeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`

	_, err := r.db.Exec(ctx, query,
		recipe.ID, recipe.Title, recipe.Slug, recipe.Description, recipe.HeroImageURL,
		recipe.PrepTime, recipe.CookTime, recipe.Servings, recipe.Difficulty,
		recipe.Ingredients, recipe.Instructions, recipe.CaloriesPerServing,
		recipe.ProteinGrams, recipe.FiberGrams, recipe.NutritionalHighlights,
		recipe.HealthBenefits, string(recipe.Category), recipe.MealType, recipe.DietaryTags,
		slotParam(recipe.CardPosition), pagesParam(recipe.DisplayPages), recipe.IsFeatured,
		recipe.MetaTitle, recipe.MetaDescription, string(recipe.Status),
		recipe.PublishedAt, recipe.CreatedAt, recipe.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create recipe", err)
	}

	return nil
}

func (r *Repository) GetRecipe(ctx context.Context, id uuid.UUID) (*cms.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM cms_recipes WHERE id = $1`
	return r.scanRecipe(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) GetRecipeBySlug(ctx context.Context, slug string) (*cms.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM cms_recipes WHERE slug = $1`
	return r.scanRecipe(r.db.QueryRow(ctx, query, slug))
}

func (r *Repository) UpdateRecipe(ctx context.Context, recipe *cms.Recipe) error {
	query := `
		UPDATE cms_recipes SET
			title = $2, slug = $3, description = $4, hero_image_url = $5,
			prep_time = $6, cook_time = $7, servings = $8, difficulty = $9,
			ingredients = $10, instructions = $11, calories_per_serving = $12,
			protein_grams = $13, fiber_grams = $14, nutritional_highlights = $15,
			health_benefits = $16, category = $17, meal_type = $18, dietary_tags = $19,
			card_position = $20, display_pages = $21, is_featured = $22,
			meta_title = $23, meta_description = $24, status = $25,
			published_at = $26, updated_at = $27
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		recipe.ID, recipe.Title, recipe.Slug, recipe.Description, recipe.HeroImageURL,
		recipe.PrepTime, recipe.CookTime, recipe.Servings, recipe.Difficulty,
		recipe.Ingredients, recipe.Instructions, recipe.CaloriesPerServing,
		recipe.ProteinGrams, recipe.FiberGrams, recipe.NutritionalHighlights,
		recipe.HealthBenefits, string(recipe.Category), recipe.MealType, recipe.DietaryTags,
		slotParam(recipe.CardPosition), pagesParam(recipe.DisplayPages), recipe.IsFeatured,
		recipe.MetaTitle, recipe.MetaDescription, string(recipe.Status),
		recipe.PublishedAt, recipe.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("update recipe", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrRecipeNotFound
	}

	return nil
}

func (r *Repository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cms_recipes WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete recipe", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrRecipeNotFound
	}
	return nil
}

func (r *Repository) ListRecipes(ctx context.Context, filters cms.RecipeListFilters) ([]*cms.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM cms_recipes WHERE 1=1`
	var args []interface{}

	if filters.Category != nil {
		args = append(args, string(*filters.Category))
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filters.Status != nil {
		args = append(args, string(*filters.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.IsFeatured != nil {
		args = append(args, *filters.IsFeatured)
		query += fmt.Sprintf(" AND is_featured = $%d", len(args))
	}
	if filters.MealType != nil {
		args = append(args, *filters.MealType)
		query += fmt.Sprintf(" AND meal_type = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if filters.Limit != nil {
		args = append(args, *filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset != nil {
		args = append(args, *filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list recipes", err)
	}
	defer rows.Close()

	var recipes []*cms.Recipe
	for rows.Next() {
		recipe, err := r.scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

// Card position operations

func (r *Repository) FindPublishedHoldingSlot(ctx context.Context, slot cms.Slot, excludeID *uuid.UUID) (cms.SlotOccupancy, error) {
	return r.findOccupancy(ctx, r.db, slot, excludeID, false)
}

func (r *Repository) findOccupancy(ctx context.Context, db DBTX, slot cms.Slot, excludeID *uuid.UUID, forUpdate bool) (cms.SlotOccupancy, error) {
	var occupancy cms.SlotOccupancy

	lock := ""
	if forUpdate {
		lock = " FOR UPDATE"
	}

	for _, q := range []struct {
		table string
		out   *[]uuid.UUID
	}{
		{"cms_articles", &occupancy.ArticleIDs},
		{"cms_recipes", &occupancy.RecipeIDs},
	} {
		query := `SELECT id FROM ` + q.table + ` WHERE card_position = $1 AND status = 'published'`
		args := []interface{}{string(slot)}
		if excludeID != nil {
			args = append(args, *excludeID)
			query += fmt.Sprintf(" AND id != $%d", len(args))
		}
		query += lock

		rows, err := db.Query(ctx, query, args...)
		if err != nil {
			return cms.SlotOccupancy{}, r.handlePostgresError("find slot occupancy", err)
		}
		for rows.Next() {
			var id uuid.UUID
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return cms.SlotOccupancy{}, err
			}
			*q.out = append(*q.out, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return cms.SlotOccupancy{}, err
		}
	}

	return occupancy, nil
}

func (r *Repository) ListPublishedWithSlotsForPage(ctx context.Context, page cms.Page) (cms.PageContent, error) {
	var content cms.PageContent

	articleQuery := `
		SELECT ` + articleColumns + ` FROM cms_articles
		WHERE $1 = ANY(display_pages) AND status = 'published' AND card_position IS NOT NULL`
	rows, err := r.db.Query(ctx, articleQuery, string(page))
	if err != nil {
		return cms.PageContent{}, r.handlePostgresError("list page articles", err)
	}
	for rows.Next() {
		article, err := r.scanArticle(rows)
		if err != nil {
			rows.Close()
			return cms.PageContent{}, err
		}
		content.Articles = append(content.Articles, article)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return cms.PageContent{}, err
	}

	recipeQuery := `
		SELECT ` + recipeColumns + ` FROM cms_recipes
		WHERE $1 = ANY(display_pages) AND status = 'published' AND card_position IS NOT NULL`
	rows, err = r.db.Query(ctx, recipeQuery, string(page))
	if err != nil {
		return cms.PageContent{}, r.handlePostgresError("list page recipes", err)
	}
	for rows.Next() {
		recipe, err := r.scanRecipe(rows)
		if err != nil {
			rows.Close()
			return cms.PageContent{}, err
		}
		content.Recipes = append(content.Recipes, recipe)
	}
	rows.Close()

	return content, rows.Err()
}

// SetCardPosition assigns or clears a card position. When the underlying DBTX
// can open a transaction the occupancy re-check and the update run atomically
// with the occupant rows locked; either way the partial unique indexes reject
// a conflicting published assignment and the violation maps to
// cms.ErrPositionOccupied.
func (r *Repository) SetCardPosition(ctx context.Context, contentType cms.ContentType, id uuid.UUID, slot *cms.Slot, displayPages []cms.Page) error {
	if b, ok := r.db.(beginner); ok {
		tx, err := b.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin set card position: %w", err)
		}
		defer tx.Rollback(ctx)

		if err := r.setCardPosition(ctx, tx, contentType, id, slot, displayPages, true); err != nil {
			return err
		}
		return tx.Commit(ctx)
	}

	return r.setCardPosition(ctx, r.db, contentType, id, slot, displayPages, false)
}

func (r *Repository) setCardPosition(ctx context.Context, db DBTX, contentType cms.ContentType, id uuid.UUID, slot *cms.Slot, displayPages []cms.Page, forUpdate bool) error {
	if slot != nil {
		occupancy, err := r.findOccupancy(ctx, db, *slot, &id, forUpdate)
		if err != nil {
			return err
		}
		if occupancy.Occupied() {
			return &cms.PositionOccupiedError{Slot: *slot}
		}
	}

	var table string
	switch contentType {
	case cms.ContentTypeArticle:
		table = "cms_articles"
	case cms.ContentTypeRecipe:
		table = "cms_recipes"
	default:
		return cms.ErrInvalidContentType
	}

	query := `UPDATE ` + table + ` SET card_position = $2, updated_at = $3`
	args := []interface{}{id, slotParam(slot), time.Now().UTC()}
	if displayPages != nil {
		args = append(args, pagesParam(displayPages))
		query += fmt.Sprintf(", display_pages = $%d", len(args))
	}
	query += " WHERE id = $1"

	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return r.handlePostgresError("set card position", err)
	}
	if tag.RowsAffected() == 0 {
		if contentType == cms.ContentTypeArticle {
			return cms.ErrArticleNotFound
		}
		return cms.ErrRecipeNotFound
	}

	return nil
}

// Scan helpers

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanArticle(row rowScanner) (*cms.Article, error) {
	var (
		article      cms.Article
		category     string
		status       string
		cardPosition *string
		displayPages []string
	)

	err := row.Scan(
		&article.ID, &article.Title, &article.Slug, &article.Content, &article.Excerpt,
		&article.HeroImageURL, &article.Author, &category, &cardPosition, &displayPages,
		&article.FactoidData, &article.MetaTitle, &article.MetaDescription, &article.Tags,
		&status, &article.PublishedAt, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrArticleNotFound
		}
		return nil, err
	}

	article.Category = cms.Category(category)
	article.Status = cms.ContentStatus(status)
	article.CardPosition = slotFromParam(cardPosition)
	article.DisplayPages = pagesFromParam(displayPages)

	return &article, nil
}

func (r *Repository) scanRecipe(row rowScanner) (*cms.Recipe, error) {
	var (
		recipe       cms.Recipe
		category     string
		status       string
		cardPosition *string
		displayPages []string
	)

	err := row.Scan(
		&recipe.ID, &recipe.Title, &recipe.Slug, &recipe.Description, &recipe.HeroImageURL,
		&recipe.PrepTime, &recipe.CookTime, &recipe.Servings, &recipe.Difficulty,
		&recipe.Ingredients, &recipe.Instructions, &recipe.CaloriesPerServing,
		&recipe.ProteinGrams, &recipe.FiberGrams, &recipe.NutritionalHighlights,
		&recipe.HealthBenefits, &category, &recipe.MealType, &recipe.DietaryTags,
		&cardPosition, &displayPages, &recipe.IsFeatured,
		&recipe.MetaTitle, &recipe.MetaDescription, &status,
		&recipe.PublishedAt, &recipe.CreatedAt, &recipe.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrRecipeNotFound
		}
		return nil, err
	}

	recipe.Category = cms.Category(category)
	recipe.Status = cms.ContentStatus(status)
	recipe.CardPosition = slotFromParam(cardPosition)
	recipe.DisplayPages = pagesFromParam(displayPages)

	return &recipe, nil
}

// Param helpers: named string types are passed as plain strings so pgx maps
// them onto text / text[] columns.

func slotParam(slot *cms.Slot) *string {
	if slot == nil {
		return nil
	}
	s := string(*slot)
	return &s
}

func slotFromParam(s *string) *cms.Slot {
	if s == nil {
		return nil
	}
	slot := cms.Slot(*s)
	return &slot
}

func pagesParam(pages []cms.Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = string(p)
	}
	return out
}

func pagesFromParam(pages []string) []cms.Page {
	if len(pages) == 0 {
		return nil
	}
	out := make([]cms.Page, len(pages))
	for i, p := range pages {
		out[i] = cms.Page(p)
	}
	return out
}
