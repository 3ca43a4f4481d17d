package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lentilsandmillets/cms/pkg/cms"
)

// RecipesHandler handles HTTP requests for recipes
type RecipesHandler struct {
	service cms.Service
}

// NewRecipesHandler creates a new recipes handler
func NewRecipesHandler(service cms.Service) *RecipesHandler {
	return &RecipesHandler{service: service}
}

// Routes returns the routes for recipes
func (h *RecipesHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateRecipe)
	r.Get("/", h.ListRecipes)
	r.Get("/{id}", h.GetRecipe)
	r.Put("/{id}", h.UpdateRecipe)
	r.Delete("/{id}", h.DeleteRecipe)
	r.Get("/slug/{slug}", h.GetRecipeBySlug)
	r.Post("/{id}/publish", h.PublishRecipe)
	r.Post("/{id}/archive", h.ArchiveRecipe)

	return r
}

// RecipeRequest is the request body for creating or updating a recipe
type RecipeRequest struct {
	Title                 string   `json:"title"`
	Description           string   `json:"description,omitempty"`
	HeroImageURL          string   `json:"hero_image_url,omitempty"`
	PrepTime              int      `json:"prep_time,omitempty"`
	CookTime              int      `json:"cook_time,omitempty"`
	Servings              int      `json:"servings,omitempty"`
	Difficulty            string   `json:"difficulty,omitempty"`
	Ingredients           []string `json:"ingredients"`
	Instructions          []string `json:"instructions"`
	CaloriesPerServing    int      `json:"calories_per_serving,omitempty"`
	ProteinGrams          float64  `json:"protein_grams,omitempty"`
	FiberGrams            float64  `json:"fiber_grams,omitempty"`
	NutritionalHighlights []string `json:"nutritional_highlights,omitempty"`
	HealthBenefits        []string `json:"health_benefits,omitempty"`
	Category              string   `json:"category"`
	MealType              string   `json:"meal_type,omitempty"`
	DietaryTags           []string `json:"dietary_tags,omitempty"`
	CardPosition          *string  `json:"card_position,omitempty"`
	DisplayPages          []string `json:"display_pages,omitempty"`
	IsFeatured            bool     `json:"is_featured"`
	MetaTitle             string   `json:"meta_title,omitempty"`
	MetaDescription       string   `json:"meta_description,omitempty"`
	Status                string   `json:"status,omitempty"`
}

// CreateRecipe creates a new recipe
func (h *RecipesHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}

	if req.Title == "" || req.Category == "" || len(req.Ingredients) == 0 || len(req.Instructions) == 0 {
		respondBadRequest(w, r, "Title, category, ingredients, and instructions are required")
		return
	}

	recipe, err := h.service.CreateRecipe(r.Context(), cms.CreateRecipeRequest{
		Title:                 req.Title,
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
		Category:              cms.Category(req.Category),
		MealType:              req.MealType,
		DietaryTags:           req.DietaryTags,
		CardPosition:          slotFromRequest(req.CardPosition),
		DisplayPages:          pagesFromRequest(req.DisplayPages),
		IsFeatured:            req.IsFeatured,
		MetaTitle:             req.MetaTitle,
		MetaDescription:       req.MetaDescription,
		Status:                cms.ContentStatus(req.Status),
	})
	if err != nil {
		slog.Error("Failed to create recipe", "error", err)
		respondError(w, r, err)
		return
	}

	slog.Info("Recipe created", "recipe_id", recipe.ID, "slug", recipe.Slug)
	respondCreated(w, r, recipe)
}

// GetRecipe retrieves a recipe by ID
func (h *RecipesHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, r, "Invalid recipe ID")
		return
	}

	recipe, err := h.service.GetRecipe(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondOK(w, r, recipe)
}

// GetRecipeBySlug retrieves a recipe by slug
func (h *RecipesHandler) GetRecipeBySlug(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.service.GetRecipeBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondOK(w, r, recipe)
}

// UpdateRecipe updates an existing recipe
func (h *RecipesHandler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, r, "Invalid recipe ID")
		return
	}

	var req RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}

	recipe, err := h.service.GetRecipe(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	recipe.Title = req.Title
	recipe.Description = req.Description
	recipe.HeroImageURL = req.HeroImageURL
	recipe.PrepTime = req.PrepTime
	recipe.CookTime = req.CookTime
	recipe.Servings = req.Servings
	recipe.Difficulty = req.Difficulty
	recipe.Ingredients = req.Ingredients
	recipe.Instructions = req.Instructions
	recipe.CaloriesPerServing = req.CaloriesPerServing
	recipe.ProteinGrams = req.ProteinGrams
	recipe.FiberGrams = req.FiberGrams
	recipe.NutritionalHighlights = req.NutritionalHighlights
	recipe.HealthBenefits = req.HealthBenefits
	recipe.Category = cms.Category(req.Category)
	recipe.MealType = req.MealType
	recipe.DietaryTags = req.DietaryTags
	recipe.CardPosition = slotFromRequest(req.CardPosition)
	recipe.DisplayPages = pagesFromRequest(req.DisplayPages)
	recipe.IsFeatured = req.IsFeatured
	recipe.MetaTitle = req.MetaTitle
	recipe.MetaDescription = req.MetaDescription
	if req.Status != "" {
		recipe.Status = cms.ContentStatus(req.Status)
	}

	updated, err := h.service.UpdateRecipe(r.Context(), cms.UpdateRecipeRequest{Recipe: recipe})
	if err != nil {
		slog.Error("Failed to update recipe", "recipe_id", id, "error", err)
		respondError(w, r, err)
		return
	}

	respondOK(w, r, updated)
}

// DeleteRecipe deletes a recipe
func (h *RecipesHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, r, "Invalid recipe ID")
		return
	}

	if err := h.service.DeleteRecipe(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	respondOK(w, r, map[string]interface{}{"message": "Recipe deleted"})
}

// ListRecipes lists recipes with optional filters
func (h *RecipesHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	var filters cms.RecipeListFilters
	if v := r.URL.Query().Get("category"); v != "" {
		category := cms.Category(v)
		filters.Category = &category
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := cms.ContentStatus(v)
		filters.Status = &status
	}
	if v := r.URL.Query().Get("is_featured"); v != "" {
		featured := v == "true"
		filters.IsFeatured = &featured
	}
	if v := r.URL.Query().Get("meal_type"); v != "" {
		filters.MealType = &v
	}

	recipes, err := h.service.ListRecipes(r.Context(), filters)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondOK(w, r, recipes)
}

// PublishRecipe transitions a recipe to published
func (h *RecipesHandler) PublishRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, r, "Invalid recipe ID")
		return
	}

	recipe, err := h.service.PublishRecipe(r.Context(), id)
	if err != nil {
		slog.Error("Failed to publish recipe", "recipe_id", id, "error", err)
		respondError(w, r, err)
		return
	}

	respondOK(w, r, recipe)
}

// ArchiveRecipe transitions a recipe to archived
func (h *RecipesHandler) ArchiveRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, r, "Invalid recipe ID")
		return
	}

	recipe, err := h.service.ArchiveRecipe(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondOK(w, r, recipe)
}
