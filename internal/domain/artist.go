// Package domain contains the core data types for the guitarchords API.
// This package depends only on uuid and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ArtistNameMaxLength is the longest artist name accepted, in runes.
const ArtistNameMaxLength = 80

// Artist is a performer songs are filed under.
// Names are stored in "Surname Name" form. Slug is generated once when the
// artist is created and never changes, so links keep working after a rename.
type Artist struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
