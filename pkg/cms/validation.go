package cms

import (
	"context"

	"github.com/google/uuid"
)

// validateAssignment decides whether the proposed card assignment is legal.
//
// Checks run in a fixed order: catalog membership, then featured-slot
// symmetry, then occupancy. The first two are pure; the repository is only
// queried once the request is structurally valid. A nil slot (unassignment)
// is always legal and skips every check.
//
// excludeID carries the id of the record being updated so it does not
// conflict with itself. It is applied to both tables.
func (s *service) validateAssignment(ctx context.Context, contentType ContentType, category Category, slot *Slot, isFeatured bool, excludeID *uuid.UUID) error {
	if slot == nil {
		return nil
	}

	if !IsValidSlot(contentType, category, *slot) {
		return &InvalidPositionError{ContentType: contentType, Category: category, Slot: *slot}
	}

	if contentType == ContentTypeRecipe {
		featuredSlot := IsFeaturedSlot(category, *slot)
		if featuredSlot && !isFeatured {
			return &FeaturedRequiredError{Slot: *slot}
		}
		if !featuredSlot && isFeatured {
			return &FeaturedSlotMismatchError{Slot: *slot, Allowed: FeaturedSlots(category)}
		}
	}

	occupancy, err := s.repository.FindPublishedHoldingSlot(ctx, *slot, excludeID)
	if err != nil {
		return err
	}
	if occupancy.Occupied() {
		return &PositionOccupiedError{Slot: *slot}
	}

	return nil
}
