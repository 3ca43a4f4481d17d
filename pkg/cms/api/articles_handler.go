package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lentilsandmillets/cms/pkg/cms"
)

// ArticlesHandler handles HTTP requests for articles
type ArticlesHandler struct {
	service cms.Service
}

// NewArticlesHandler creates a new articles handler
func NewArticlesHandler(service cms.Service) *ArticlesHandler {
	return &ArticlesHandler{service: service}
}

// Routes returns the routes for articles
func (h *ArticlesHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateArticle)
	r.Get("/", h.ListArticles)
	r.Get("/{id}", h.GetArticle)
	r.Put("/{id}", h.UpdateArticle)
	r.Delete("/{id}", h.DeleteArticle)
	r.Get("/slug/{slug}", h.GetArticleBySlug)
	r.Post("/{id}/publish", h.PublishArticle)
	r.Post("/{id}/archive", h.ArchiveArticle)

	return r
}

// ArticleRequest is the request body for creating or updating an article
type ArticleRequest struct {
	Title           string                 `json:"title"`
	Content         string                 `json:"content,omitempty"`
	Excerpt         string                 `json:"excerpt,omitempty"`
	HeroImageURL    string                 `json:"hero_image_url,omitempty"`
	Author          string                 `json:"author,omitempty"`
	Category        string                 `json:"category"`
	CardPosition    *string                `json:"card_position,omitempty"`
	DisplayPages    []string               `json:"display_pages,omitempty"`
	FactoidData     map[string]interface{} `json:"factoid_data,omitempty"`
	MetaTitle       string                 `json:"meta_title,omitempty"`
	MetaDescription string                 `json:"meta_description,omitempty"`
	Tags            []string               `json:"tags,omitempty"`
	Status          string                 `json:"status,omitempty"`
}

// CreateArticle creates a new article
func (h *ArticlesHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}

	if req.Title == "" || req.Category == "" {
		respondBadRequest(w, r, "Title and category are required")
		return
	}

	article, err := h.service.CreateArticle(r.Context(), cms.CreateArticleRequest{
		Title:           req.Title,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		HeroImageURL:    req.HeroImageURL,
		Author:          req.Author,
		Category:        cms.Category(req.Category),
		CardPosition:    slotFromRequest(req.CardPosition),
		DisplayPages:    pagesFromRequest(req.DisplayPages),
		FactoidData:     req.FactoidData,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Tags:            req.Tags,
		Status:          cms.ContentStatus(req.Status),
	})
	if err != nil {
		slog.Error("Failed to create article", "error", err)
		respondError(w, r, err)
		return
	}

	slog.Info("Article created", "article_id", article.ID, "slug", article.Slug)
	respondCreated(w, r, article)
}

// GetArticle retrieves an article by ID
func (h *ArticlesHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, r, "Invalid article ID")
		return
	}

	article, err := h.service.GetArticle(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondOK(w, r, article)
}

// GetArticleBySlug retrieves an article by slug
func (h *ArticlesHandler) GetArticleBySlug(w http.ResponseWriter, r *http.Request) {
	article, err := h.service.GetArticleBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondOK(w, r, article)
}

// UpdateArticle updates an existing article
func (h *ArticlesHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, r, "Invalid article ID")
		return
	}

	var req ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}

	article, err := h.service.GetArticle(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	article.Title = req.Title
	article.Content = req.Content
	article.Excerpt = req.Excerpt
	article.HeroImageURL = req.HeroImageURL
	article.Author = req.Author
	article.Category = cms.Category(req.Category)
	article.CardPosition = slotFromRequest(req.CardPosition)
	article.DisplayPages = pagesFromRequest(req.DisplayPages)
	article.FactoidData = req.FactoidData
	article.MetaTitle = req.MetaTitle
	article.MetaDescription = req.MetaDescription
	article.Tags = req.Tags
	if req.Status != "" {
		article.Status = cms.ContentStatus(req.Status)
	}

	updated, err := h.service.UpdateArticle(r.Context(), cms.UpdateArticleRequest{Article: article})
	if err != nil {
		slog.Error("Failed to update article", "article_id", id, "error", err)
		respondError(w, r, err)
		return
	}

	respondOK(w, r, updated)
}

// DeleteArticle deletes an article
func (h *ArticlesHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, r, "Invalid article ID")
		return
	}

	if err := h.service.DeleteArticle(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	respondOK(w, r, map[string]interface{}{"message": "Article deleted"})
}

// ListArticles lists articles with optional category/status filters
func (h *ArticlesHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	var filters cms.ArticleListFilters
	if v := r.URL.Query().Get("category"); v != "" {
		category := cms.Category(v)
		filters.Category = &category
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := cms.ContentStatus(v)
		filters.Status = &status
	}

	articles, err := h.service.ListArticles(r.Context(), filters)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondOK(w, r, articles)
}

// PublishArticle transitions an article to published
func (h *ArticlesHandler) PublishArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, r, "Invalid article ID")
		return
	}

	article, err := h.service.PublishArticle(r.Context(), id)
	if err != nil {
		slog.Error("Failed to publish article", "article_id", id, "error", err)
		respondError(w, r, err)
		return
	}

	respondOK(w, r, article)
}

// ArchiveArticle transitions an article to archived
func (h *ArticlesHandler) ArchiveArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, r, "Invalid article ID")
		return
	}

	article, err := h.service.ArchiveArticle(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondOK(w, r, article)
}

func slotFromRequest(s *string) *cms.Slot {
	if s == nil || *s == "" {
		return nil
	}
	slot := cms.Slot(*s)
	return &slot
}

func pagesFromRequest(pages []string) []cms.Page {
	if len(pages) == 0 {
		return nil
	}
	out := make([]cms.Page, len(pages))
	for i, p := range pages {
		out[i] = cms.Page(p)
	}
	return out
}
