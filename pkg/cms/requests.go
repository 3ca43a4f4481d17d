package cms

import (
	"github.com/google/uuid"
)

// Request DTOs

// CreateArticleRequest contains parameters for creating a new article.
// Slug is derived from Title. Status defaults to draft when empty.
type CreateArticleRequest struct {
	Title           string
	Content         string
	Excerpt         string
	HeroImageURL    string
	Author          string
	Category        Category
	CardPosition    *Slot
	DisplayPages    []Page
	FactoidData     map[string]interface{}
	MetaTitle       string
	MetaDescription string
	Tags            []string
	Status          ContentStatus
}

// UpdateArticleRequest contains parameters for updating an article. The
// article's card position is re-validated with the article itself excluded
// from the occupancy check.
type UpdateArticleRequest struct {
	Article *Article
}

// CreateRecipeRequest contains parameters for creating a new recipe.
type CreateRecipeRequest struct {
	Title                 string
	Description           string
	HeroImageURL          string
	PrepTime              int
	CookTime              int
	Servings              int
	Difficulty            string
	Ingredients           []string
	Instructions          []string
	CaloriesPerServing    int
	ProteinGrams          float64
	FiberGrams            float64
	NutritionalHighlights []string
	HealthBenefits        []string
	Category              Category
	MealType              string
	DietaryTags           []string
	CardPosition          *Slot
	DisplayPages          []Page
	IsFeatured            bool
	MetaTitle             string
	MetaDescription       string
	Status                ContentStatus
}

// UpdateRecipeRequest contains parameters for updating a recipe.
type UpdateRecipeRequest struct {
	Recipe *Recipe
}

// AssignCardRequest contains parameters for assigning content to a card
// position. A nil Position clears the assignment.
type AssignCardRequest struct {
	ContentType  ContentType
	ContentID    uuid.UUID
	Position     *Slot
	DisplayPages []Page
}
