package cms

import (
	"fmt"
	"testing"
)

// TestValidSlotsTables verifies the catalog tables are exactly the fixed sets
// the pages render from.
func TestValidSlotsTables(t *testing.T) {
	tests := []struct {
		contentType ContentType
		category    Category
		want        []Slot
	}{
		{
			contentType: ContentTypeArticle,
			category:    CategoryLentils,
			want:        []Slot{"H0", "H1", "H2", "H3", "H4", "H5", "H6", "H7", "H8", "H9", "L1", "L2", "L3", "L4", "L5", "L6"},
		},
		{
			contentType: ContentTypeArticle,
			category:    CategoryMillets,
			want:        []Slot{"H0", "H1", "H2", "H3", "H12", "H13", "H14", "H15", "H16", "H17", "M1", "M2", "M3", "M4", "M5", "M6"},
		},
		{
			contentType: ContentTypeRecipe,
			category:    CategoryLentils,
			want:        []Slot{"H0", "H1", "H2", "H3", "H7", "H8", "H9", "H10", "H11", "L4", "L5", "L6", "L7", "L8"},
		},
		{
			contentType: ContentTypeRecipe,
			category:    CategoryMillets,
			want:        []Slot{"H0", "H1", "H2", "H3", "H15", "H16", "H17", "H18", "H19", "M4", "M5", "M6", "M7", "M8"},
		},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.contentType, tt.category), func(t *testing.T) {
			got := ValidSlots(tt.contentType, tt.category)
			if len(got) != len(tt.want) {
				t.Fatalf("ValidSlots(%s, %s) returned %d slots, want %d", tt.contentType, tt.category, len(got), len(tt.want))
			}
			for i, slot := range tt.want {
				if got[i] != slot {
					t.Errorf("ValidSlots(%s, %s)[%d] = %s, want %s", tt.contentType, tt.category, i, got[i], slot)
				}
			}
		})
	}
}

// TestSharedCoreSlots verifies H0-H3 appear in every catalog and no other slot
// is shared across more than one (contentType, category) pair beyond the
// expected overlaps within its page.
func TestSharedCoreSlots(t *testing.T) {
	shared := []Slot{"H0", "H1", "H2", "H3"}

	for _, ct := range []ContentType{ContentTypeArticle, ContentTypeRecipe} {
		for _, cat := range []Category{CategoryLentils, CategoryMillets} {
			for _, slot := range shared {
				if !IsValidSlot(ct, cat, slot) {
					t.Errorf("shared slot %s missing from catalog for %s/%s", slot, ct, cat)
				}
			}
		}
	}
}

func TestIsFeaturedSlot(t *testing.T) {
	tests := []struct {
		category Category
		slot     Slot
		want     bool
	}{
		{CategoryLentils, "H10", true},
		{CategoryLentils, "H11", true},
		{CategoryLentils, "L7", true},
		{CategoryLentils, "L8", true},
		{CategoryMillets, "H18", true},
		{CategoryMillets, "H19", true},
		{CategoryMillets, "M7", true},
		{CategoryMillets, "M8", true},
		// Featured sets are category-scoped
		{CategoryLentils, "H18", false},
		{CategoryMillets, "H10", false},
		// Non-featured recipe and article slots
		{CategoryLentils, "H0", false},
		{CategoryLentils, "L4", false},
		{CategoryMillets, "M4", false},
		// Slots outside any catalog
		{CategoryLentils, "Z9", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.category, tt.slot), func(t *testing.T) {
			if got := IsFeaturedSlot(tt.category, tt.slot); got != tt.want {
				t.Errorf("IsFeaturedSlot(%s, %s) = %v, want %v", tt.category, tt.slot, got, tt.want)
			}
		})
	}
}

// TestFeaturedSlotsAreRecipeSlots verifies every featured position is a valid
// recipe slot for its category, so the featured rule never names an
// unassignable position.
func TestFeaturedSlotsAreRecipeSlots(t *testing.T) {
	for _, cat := range []Category{CategoryLentils, CategoryMillets} {
		for _, slot := range FeaturedSlots(cat) {
			if !IsValidSlot(ContentTypeRecipe, cat, slot) {
				t.Errorf("featured slot %s is not a valid recipe slot for %s", slot, cat)
			}
		}
	}
}

// TestFeaturedSlotsNotArticleSlots verifies featured positions never overlap
// the article catalogs; articles have no featured concept.
func TestFeaturedSlotsNotArticleSlots(t *testing.T) {
	for _, cat := range []Category{CategoryLentils, CategoryMillets} {
		for _, slot := range FeaturedSlots(cat) {
			if IsValidSlot(ContentTypeArticle, cat, slot) {
				t.Errorf("featured slot %s unexpectedly valid for articles in %s", slot, cat)
			}
		}
	}
}

func TestSlotsForPage(t *testing.T) {
	tests := []struct {
		page  Page
		count int
		first Slot
		last  Slot
	}{
		{PageHome, 20, "H0", "H19"},
		{PageLentils, 8, "L1", "L8"},
		{PageMillets, 8, "M1", "M8"},
	}

	for _, tt := range tests {
		t.Run(string(tt.page), func(t *testing.T) {
			slots := SlotsForPage(tt.page)
			if len(slots) != tt.count {
				t.Fatalf("SlotsForPage(%s) returned %d slots, want %d", tt.page, len(slots), tt.count)
			}
			if slots[0] != tt.first {
				t.Errorf("SlotsForPage(%s)[0] = %s, want %s", tt.page, slots[0], tt.first)
			}
			if slots[len(slots)-1] != tt.last {
				t.Errorf("SlotsForPage(%s) last = %s, want %s", tt.page, slots[len(slots)-1], tt.last)
			}
		})
	}
}

func TestSlotsForPageUnknown(t *testing.T) {
	if slots := SlotsForPage(Page("about")); len(slots) != 0 {
		t.Errorf("SlotsForPage(about) = %v, want empty", slots)
	}
}

// TestCatalogSlotsBelongToPages verifies every catalog slot resolves to a page
// by prefix, so page resolution can always place an assigned item.
func TestCatalogSlotsBelongToPages(t *testing.T) {
	pageByPrefix := map[byte]Page{'H': PageHome, 'L': PageLentils, 'M': PageMillets}

	for _, ct := range []ContentType{ContentTypeArticle, ContentTypeRecipe} {
		for _, cat := range []Category{CategoryLentils, CategoryMillets} {
			for _, slot := range ValidSlots(ct, cat) {
				page, ok := pageByPrefix[slot[0]]
				if !ok {
					t.Fatalf("slot %s has unknown page prefix", slot)
				}
				found := false
				for _, s := range SlotsForPage(page) {
					if s == slot {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("catalog slot %s missing from page %s slot list", slot, page)
				}
			}
		}
	}
}
