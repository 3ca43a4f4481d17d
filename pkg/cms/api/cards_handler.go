package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lentilsandmillets/cms/pkg/cms"
)

// CardsHandler handles HTTP requests for card layouts
type CardsHandler struct {
	service cms.Service
}

// NewCardsHandler creates a new cards handler
func NewCardsHandler(service cms.Service) *CardsHandler {
	return &CardsHandler{service: service}
}

// Routes returns the routes for cards
func (h *CardsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetCards)
	r.Post("/", h.AssignCard)
	r.Delete("/", h.UnassignCard)

	return r
}

// AssignCardRequest is the request body for assigning a card position
type AssignCardRequest struct {
	ContentType  string   `json:"content_type"`
	ContentID    string   `json:"content_id"`
	CardPosition *string  `json:"card_position"`
	DisplayPages []string `json:"display_pages,omitempty"`
}

// UnassignCardRequest is the request body for clearing a card position
type UnassignCardRequest struct {
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
}

// GetCards resolves a page's card layout
func (h *CardsHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	page := cms.Page(r.URL.Query().Get("page"))

	view, err := h.service.ResolvePage(r.Context(), page)
	if err != nil {
		slog.Error("Failed to resolve page", "page", page, "error", err)
		respondError(w, r, err)
		return
	}

	respondOK(w, r, view)
}

// AssignCard assigns content to a card position
func (h *CardsHandler) AssignCard(w http.ResponseWriter, r *http.Request) {
	var req AssignCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}

	if req.ContentType == "" || req.ContentID == "" {
		respondBadRequest(w, r, "content_type and content_id are required")
		return
	}

	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		slog.Error("Invalid content ID", "content_id", req.ContentID, "error", err)
		respondBadRequest(w, r, "Invalid content ID")
		return
	}

	assignReq := cms.AssignCardRequest{
		ContentType: cms.ContentType(req.ContentType),
		ContentID:   contentID,
	}
	if req.CardPosition != nil {
		slot := cms.Slot(*req.CardPosition)
		assignReq.Position = &slot
	}
	for _, p := range req.DisplayPages {
		assignReq.DisplayPages = append(assignReq.DisplayPages, cms.Page(p))
	}

	if err := h.service.AssignCard(r.Context(), assignReq); err != nil {
		slog.Error("Failed to assign card", "content_id", contentID, "error", err)
		respondError(w, r, err)
		return
	}

	slog.Info("Card assigned", "content_type", req.ContentType, "content_id", contentID)
	respondOK(w, r, map[string]interface{}{
		"message":    "Card assigned successfully",
		"assignment": req,
	})
}

// UnassignCard clears a card position
func (h *CardsHandler) UnassignCard(w http.ResponseWriter, r *http.Request) {
	var req UnassignCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}

	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		respondBadRequest(w, r, "Invalid content ID")
		return
	}

	if err := h.service.UnassignCard(r.Context(), cms.ContentType(req.ContentType), contentID); err != nil {
		slog.Error("Failed to unassign card", "content_id", contentID, "error", err)
		respondError(w, r, err)
		return
	}

	respondOK(w, r, map[string]interface{}{"message": "Card unassigned successfully"})
}
