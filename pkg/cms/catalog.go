package cms

import "fmt"

// The slot catalog is fixed at build time. Positions H0-H19 belong to the
// home page, L1-L8 to the lentils page, and M1-M8 to the millets page.
// H0-H3 are shared between articles and recipes in both categories; the
// occupancy check, not the catalog, prevents double-booking them.
var validPositions = map[ContentType]map[Category][]Slot{
	ContentTypeArticle: {
		CategoryLentils: {"H0", "H1", "H2", "H3", "H4", "H5", "H6", "H7", "H8", "H9", "L1", "L2", "L3", "L4", "L5", "L6"},
		CategoryMillets: {"H0", "H1", "H2", "H3", "H12", "H13", "H14", "H15", "H16", "H17", "M1", "M2", "M3", "M4", "M5", "M6"},
	},
	ContentTypeRecipe: {
		CategoryLentils: {"H0", "H1", "H2", "H3", "H7", "H8", "H9", "H10", "H11", "L4", "L5", "L6", "L7", "L8"},
		CategoryMillets: {"H0", "H1", "H2", "H3", "H15", "H16", "H17", "H18", "H19", "M4", "M5", "M6", "M7", "M8"},
	},
}

// featuredPositions are the recipe-only slots that require is_featured=true.
// Articles have no featured concept.
var featuredPositions = map[Category][]Slot{
	CategoryLentils: {"H10", "H11", "L7", "L8"},
	CategoryMillets: {"H18", "H19", "M7", "M8"},
}

var pageSlots = map[Page][]Slot{
	PageHome:    makeSlots("H", 0, 19),
	PageLentils: makeSlots("L", 1, 8),
	PageMillets: makeSlots("M", 1, 8),
}

func makeSlots(prefix string, from, to int) []Slot {
	slots := make([]Slot, 0, to-from+1)
	for i := from; i <= to; i++ {
		slots = append(slots, Slot(fmt.Sprintf("%s%d", prefix, i)))
	}
	return slots
}

// ValidSlots returns the slots an item of the given content type and category
// may occupy. The returned slice is a copy; callers may not mutate the catalog.
func ValidSlots(contentType ContentType, category Category) []Slot {
	slots := validPositions[contentType][category]
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// IsValidSlot reports whether slot is in the catalog for the given content
// type and category.
func IsValidSlot(contentType ContentType, category Category, slot Slot) bool {
	for _, s := range validPositions[contentType][category] {
		if s == slot {
			return true
		}
	}
	return false
}

// IsFeaturedSlot reports whether slot is a featured-recipe position for the
// category. It returns false for every slot outside the category's featured
// set, including all article slots.
func IsFeaturedSlot(category Category, slot Slot) bool {
	for _, s := range featuredPositions[category] {
		if s == slot {
			return true
		}
	}
	return false
}

// FeaturedSlots returns the featured-recipe positions for the category.
func FeaturedSlots(category Category) []Slot {
	slots := featuredPositions[category]
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// SlotsForPage returns the page's full slot list in ascending numeric order
// (H0, H1, ..., H19). Unknown pages yield an empty list; callers that need an
// error use ResolvePage.
func SlotsForPage(page Page) []Slot {
	slots := pageSlots[page]
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}
