package cms

import (
	"time"

	"github.com/google/uuid"
)

// ContentStatus is the domain type for content lifecycle states.
type ContentStatus string

// Content status constants (typed).
const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusArchived  ContentStatus = "archived"
)

// IsValid returns true if the status is one of the known lifecycle states.
func (s ContentStatus) IsValid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusPublished, ContentStatusArchived:
		return true
	}
	return false
}

// ContentType distinguishes the two content tables.
type ContentType string

// Content type constants (typed).
const (
	ContentTypeArticle ContentType = "article"
	ContentTypeRecipe  ContentType = "recipe"
)

// IsValid returns true if the content type is article or recipe.
func (t ContentType) IsValid() bool {
	return t == ContentTypeArticle || t == ContentTypeRecipe
}

// Category is the product line a piece of content belongs to. It restricts
// which card positions the content may occupy.
type Category string

// Category constants (typed).
const (
	CategoryLentils Category = "lentils"
	CategoryMillets Category = "millets"
)

// IsValid returns true if the category is lentils or millets.
func (c Category) IsValid() bool {
	return c == CategoryLentils || c == CategoryMillets
}

// Page names one of the three public pages that render card layouts.
type Page string

// Page constants (typed).
const (
	PageHome    Page = "home"
	PageLentils Page = "lentils"
	PageMillets Page = "millets"
)

// IsValid returns true if the page is one of the fixed set of three.
func (p Page) IsValid() bool {
	switch p {
	case PageHome, PageLentils, PageMillets:
		return true
	}
	return false
}

// Slot is a named, page-scoped card position (e.g. "H3", "L7", "M2").
// Slot ids are globally distinct by prefix: H* home, L* lentils, M* millets.
type Slot string

// Article represents an editorial article.
type Article struct {
	ID              uuid.UUID              `json:"id"`
	Title           string                 `json:"title"`
	Slug            string                 `json:"slug"`
	Content         string                 `json:"content,omitempty"`
	Excerpt         string                 `json:"excerpt,omitempty"`
	HeroImageURL    string                 `json:"hero_image_url,omitempty"`
	Author          string                 `json:"author,omitempty"`
	Category        Category               `json:"category"`
	CardPosition    *Slot                  `json:"card_position,omitempty"`
	DisplayPages    []Page                 `json:"display_pages,omitempty"`
	FactoidData     map[string]interface{} `json:"factoid_data,omitempty"`
	MetaTitle       string                 `json:"meta_title,omitempty"`
	MetaDescription string                 `json:"meta_description,omitempty"`
	Tags            []string               `json:"tags,omitempty"`
	Status          ContentStatus          `json:"status"`
	PublishedAt     *time.Time             `json:"published_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// Recipe represents a recipe with preparation and nutrition details.
type Recipe struct {
	ID                    uuid.UUID     `json:"id"`
	Title                 string        `json:"title"`
	Slug                  string        `json:"slug"`
	Description           string        `json:"description,omitempty"`
	HeroImageURL          string        `json:"hero_image_url,omitempty"`
	PrepTime              int           `json:"prep_time,omitempty"`
	CookTime              int           `json:"cook_time,omitempty"`
	Servings              int           `json:"servings,omitempty"`
	Difficulty            string        `json:"difficulty,omitempty"`
	Ingredients           []string      `json:"ingredients"`
	Instructions          []string      `json:"instructions"`
	CaloriesPerServing    int           `json:"calories_per_serving,omitempty"`
	ProteinGrams          float64       `json:"protein_grams,omitempty"`
	FiberGrams            float64       `json:"fiber_grams,omitempty"`
	NutritionalHighlights []string      `json:"nutritional_highlights,omitempty"`
	HealthBenefits        []string      `json:"health_benefits,omitempty"`
	Category              Category      `json:"category"`
	MealType              string        `json:"meal_type,omitempty"`
	DietaryTags           []string      `json:"dietary_tags,omitempty"`
	CardPosition          *Slot         `json:"card_position,omitempty"`
	DisplayPages          []Page        `json:"display_pages,omitempty"`
	IsFeatured            bool          `json:"is_featured"`
	MetaTitle             string        `json:"meta_title,omitempty"`
	MetaDescription       string        `json:"meta_description,omitempty"`
	Status                ContentStatus `json:"status"`
	PublishedAt           *time.Time    `json:"published_at,omitempty"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

// ArticleCard is the projection of an article rendered on a card.
type ArticleCard struct {
	ID           uuid.UUID              `json:"id"`
	Title        string                 `json:"title"`
	Slug         string                 `json:"slug"`
	HeroImageURL string                 `json:"hero_image_url,omitempty"`
	Category     Category               `json:"category"`
	FactoidData  map[string]interface{} `json:"factoid_data,omitempty"`
}

// RecipeCard is the projection of a recipe rendered on a card.
type RecipeCard struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	HeroImageURL string    `json:"hero_image_url,omitempty"`
	Category     Category  `json:"category"`
	PrepTime     int       `json:"prep_time,omitempty"`
	CookTime     int       `json:"cook_time,omitempty"`
	Servings     int       `json:"servings,omitempty"`
	Difficulty   string    `json:"difficulty,omitempty"`
	IsFeatured   bool      `json:"is_featured"`
}

// CardView is one resolved position on a page: an article, a recipe, or empty.
// ContentType is nil for an empty position.
type CardView struct {
	Position    Slot         `json:"position"`
	ContentType *ContentType `json:"content_type"`
	Article     *ArticleCard `json:"article,omitempty"`
	Recipe      *RecipeCard  `json:"recipe,omitempty"`
}

// Empty reports whether the position has no content assigned.
func (c CardView) Empty() bool {
	return c.ContentType == nil
}

// PageView is the fully resolved card layout for one page.
type PageView struct {
	Page           Page       `json:"page"`
	Cards          []CardView `json:"cards"`
	EmptyPositions []Slot     `json:"empty_positions"`
}

// SlotOccupancy reports which published content currently holds a slot.
type SlotOccupancy struct {
	ArticleIDs []uuid.UUID
	RecipeIDs  []uuid.UUID
}

// Occupied reports whether any published content holds the slot.
func (o SlotOccupancy) Occupied() bool {
	return len(o.ArticleIDs) > 0 || len(o.RecipeIDs) > 0
}

// PageContent is the published, slot-carrying content for one page, as
// returned by the repository for page resolution.
type PageContent struct {
	Articles []*Article
	Recipes  []*Recipe
}

// ArticleListFilters defines filtering options for listing articles.
type ArticleListFilters struct {
	Category *Category
	Status   *ContentStatus
	Limit    *int
	Offset   *int
}

// RecipeListFilters defines filtering options for listing recipes.
type RecipeListFilters struct {
	Category   *Category
	Status     *ContentStatus
	IsFeatured *bool
	MealType   *string
	Limit      *int
	Offset     *int
}
