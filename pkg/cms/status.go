package cms

import "fmt"

// canPublish checks if content can transition to published from its current
// status. Returns true if the transition is allowed, false with an error
// otherwise.
func canPublish(status ContentStatus) (bool, error) {
	switch status {
	case ContentStatusDraft, ContentStatusArchived:
		return true, nil
	case ContentStatusPublished:
		return false, fmt.Errorf("%w: content is already published", ErrInvalidContentStatus)
	default:
		return false, fmt.Errorf("%w: unknown status %s", ErrInvalidContentStatus, status)
	}
}

// canArchive checks if content can transition to archived from its current
// status. Returns true if the transition is allowed, false with an error
// otherwise.
func canArchive(status ContentStatus) (bool, error) {
	switch status {
	case ContentStatusDraft, ContentStatusPublished:
		return true, nil
	case ContentStatusArchived:
		return false, fmt.Errorf("%w: content is already archived", ErrInvalidContentStatus)
	default:
		return false, fmt.Errorf("%w: unknown status %s", ErrInvalidContentStatus, status)
	}
}

// occupiesSlot reports whether content in the given status counts as holding
// its card position. Drafts and archived content keep their position value but
// never block an assignment or appear on a page.
func occupiesSlot(status ContentStatus) bool {
	return status == ContentStatusPublished
}
