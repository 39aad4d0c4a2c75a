package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentBodyMaxLength is the longest comment accepted, in runes.
const CommentBodyMaxLength = 2000

// Comment is a user's remark on a published song.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	SongID    uuid.UUID `json:"song_id"`
	Username  string    `json:"username"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Bookmark links a user to a song they saved.
// Each bookmark counts twice as much as a view towards popularity.
type Bookmark struct {
	SongID    uuid.UUID `json:"song_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMessage is a message sent through the contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Body    string
}
