package domain

import (
	"time"

	"github.com/google/uuid"
)

// SongTitleMaxLength is the longest song title accepted, in runes.
const SongTitleMaxLength = 100

// Song is a set of lyrics with chord annotations.
// ArtistName and ArtistSlug are read-only, filled from a join on artists.
// PubDate is set when the song becomes published and cleared when it is
// withdrawn. Popularity is only populated by popularity-ordered queries.
type Song struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	ArtistID   *uuid.UUID `json:"artist_id,omitempty"`
	ArtistName string     `json:"artist_name,omitempty"`
	ArtistSlug string     `json:"artist_slug,omitempty"`
	Content    string     `json:"content"`
	Genre      Genre      `json:"genre"`
	Video      string     `json:"video,omitempty"`
	Tabs       bool       `json:"tabs"`
	Sender     string     `json:"sender,omitempty"`
	Published  bool       `json:"published"`
	PubDate    *time.Time `json:"pub_date,omitempty"`
	Slug       string     `json:"slug"`
	Popularity int64      `json:"popularity,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// FullTitle returns "Artist - Title", or just the title for songs without an artist.
func (s Song) FullTitle() string {
	if s.ArtistName == "" {
		return s.Title
	}
	return s.ArtistName + " - " + s.Title
}

// SongSubmission is what a user sends when proposing a new song.
// The artist is given by name and resolved (or created) by the service.
type SongSubmission struct {
	Title      string
	ArtistName string
	Genre      Genre
	Video      string
	Tabs       bool
	Content    string
	Sender     string
}

// SongUpdate carries the mutable fields of a song. Nil fields are left as they are.
// The slug is deliberately absent: it never changes after creation.
type SongUpdate struct {
	Title     *string
	Genre     *Genre
	Video     *string
	Tabs      *bool
	Content   *string
	Published *bool
}

// RenderedSong is a published song together with its chord-annotated HTML.
type RenderedSong struct {
	Song
	ContentHTML string   `json:"content_html"`
	Chords      []string `json:"chords"`
}
