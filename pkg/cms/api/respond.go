package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/lentilsandmillets/cms/pkg/cms"
)

// Envelope is the JSON envelope shared by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

func respondOK(w http.ResponseWriter, r *http.Request, data interface{}) {
	render.JSON(w, r, Envelope{Success: true, Data: data})
}

func respondCreated(w http.ResponseWriter, r *http.Request, data interface{}) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Envelope{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, statusForError(err))
	render.JSON(w, r, Envelope{Success: false, Error: err.Error(), Kind: cms.ErrorKind(err)})
}

func respondBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Envelope{Success: false, Error: message, Kind: "bad_request"})
}

// statusForError maps the card/content error taxonomy onto HTTP status codes.
// Occupancy conflicts are 409 regardless of whether the validation pre-check
// or the storage layer detected them.
func statusForError(err error) int {
	switch {
	case errors.Is(err, cms.ErrPositionOccupied):
		return http.StatusConflict
	case errors.Is(err, cms.ErrArticleNotFound), errors.Is(err, cms.ErrRecipeNotFound):
		return http.StatusNotFound
	case errors.Is(err, cms.ErrInvalidPosition),
		errors.Is(err, cms.ErrFeaturedRequired),
		errors.Is(err, cms.ErrFeaturedSlotMismatch),
		errors.Is(err, cms.ErrUnknownPage),
		errors.Is(err, cms.ErrInvalidContentType),
		errors.Is(err, cms.ErrInvalidCategory),
		errors.Is(err, cms.ErrInvalidContentStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
