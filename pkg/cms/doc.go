// Package cms provides the content-management core for the Lentils & Millets
// site: articles, recipes, and the fixed-slot card layout that places
// published content on the home, lentils, and millets pages.
//
// It exposes a single Service interface that orchestrates content CRUD,
// publish/archive lifecycle, card-position assignment, and page resolution.
// Repository implementations (memory, Postgres) live under subpackages.
//
// Card positions are validated in two phases: the in-core assignment check is
// an optimistic pre-check, and the repository's SetCardPosition is the
// authoritative guard against concurrent assignments to the same slot. Both
// layers report a conflict as ErrPositionOccupied.
package cms
