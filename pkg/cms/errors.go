package cms

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrArticleNotFound indicates an article was not found
	ErrArticleNotFound = errors.New("article not found")

	// ErrRecipeNotFound indicates a recipe was not found
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrInvalidContentStatus indicates an invalid content status
	ErrInvalidContentStatus = errors.New("invalid content status")

	// ErrInvalidContentType indicates a content type other than article or recipe
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrInvalidCategory indicates a category other than lentils or millets
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidPosition indicates a card position outside the catalog for the
	// given content type and category
	ErrInvalidPosition = errors.New("invalid card position")

	// ErrFeaturedRequired indicates a featured-only position was requested for
	// a recipe not flagged as featured
	ErrFeaturedRequired = errors.New("position requires a featured recipe")

	// ErrFeaturedSlotMismatch indicates a featured recipe was pointed at a
	// non-featured position
	ErrFeaturedSlotMismatch = errors.New("featured recipe requires a featured position")

	// ErrPositionOccupied indicates another published item already holds the
	// position. Both the in-core pre-check and the repository's storage-level
	// guard report conflicts with this error.
	ErrPositionOccupied = errors.New("card position already occupied")

	// ErrUnknownPage indicates page resolution was requested for a page outside
	// the fixed set of three
	ErrUnknownPage = errors.New("unknown page")
)

// InvalidPositionError reports a card position outside the catalog.
type InvalidPositionError struct {
	ContentType ContentType
	Category    Category
	Slot        Slot
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("%s with category %s cannot be assigned to position %s", e.ContentType, e.Category, e.Slot)
}

func (e *InvalidPositionError) Unwrap() error { return ErrInvalidPosition }

// FeaturedRequiredError reports a featured-only position requested without
// the featured flag.
type FeaturedRequiredError struct {
	Slot Slot
}

func (e *FeaturedRequiredError) Error() string {
	return fmt.Sprintf("position %s requires recipe to be marked as featured", e.Slot)
}

func (e *FeaturedRequiredError) Unwrap() error { return ErrFeaturedRequired }

// FeaturedSlotMismatchError reports a featured recipe pointed at a
// non-featured position. Allowed lists the positions the recipe may use.
type FeaturedSlotMismatchError struct {
	Slot    Slot
	Allowed []Slot
}

func (e *FeaturedSlotMismatchError) Error() string {
	return fmt.Sprintf("featured recipes can only be assigned to featured positions %v, not %s", e.Allowed, e.Slot)
}

func (e *FeaturedSlotMismatchError) Unwrap() error { return ErrFeaturedSlotMismatch }

// PositionOccupiedError reports a slot already held by published content.
type PositionOccupiedError struct {
	Slot Slot
}

func (e *PositionOccupiedError) Error() string {
	return fmt.Sprintf("card position %s is already occupied", e.Slot)
}

func (e *PositionOccupiedError) Unwrap() error { return ErrPositionOccupied }

// UnknownPageError reports a page name outside home, lentils, millets.
type UnknownPageError struct {
	Page Page
}

func (e *UnknownPageError) Error() string {
	return fmt.Sprintf("unknown page %q (expected home, lentils, or millets)", e.Page)
}

func (e *UnknownPageError) Unwrap() error { return ErrUnknownPage }

// ContentError represents an error related to a content operation.
type ContentError struct {
	ContentType ContentType
	ContentID   uuid.UUID
	Op          string
	Err         error
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("%s operation %s failed for %s: %v", e.ContentType, e.Op, e.ContentID, e.Err)
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

// ErrorKind returns the wire-level kind string for an error from the card
// taxonomy, or "internal" when the error is outside it. Clients match on the
// kind instead of parsing message text.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPosition):
		return "invalid_position"
	case errors.Is(err, ErrFeaturedRequired):
		return "featured_required"
	case errors.Is(err, ErrFeaturedSlotMismatch):
		return "featured_slot_mismatch"
	case errors.Is(err, ErrPositionOccupied):
		return "position_occupied"
	case errors.Is(err, ErrUnknownPage):
		return "unknown_page"
	case errors.Is(err, ErrArticleNotFound):
		return "article_not_found"
	case errors.Is(err, ErrRecipeNotFound):
		return "recipe_not_found"
	case errors.Is(err, ErrInvalidContentType):
		return "invalid_content_type"
	case errors.Is(err, ErrInvalidCategory):
		return "invalid_category"
	case errors.Is(err, ErrInvalidContentStatus):
		return "invalid_status"
	default:
		return "internal"
	}
}
