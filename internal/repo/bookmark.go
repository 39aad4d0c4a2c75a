package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ilstam/guitarchords/internal/domain"
)

// BookmarkRepo defines the persistence operations for the bookmarks join table.
type BookmarkRepo interface {
	// Add bookmarks a song for a user. Idempotent: no error if already bookmarked.
	Add(ctx context.Context, songID uuid.UUID, username string) error

	// Remove deletes a bookmark.
	// Returns domain.ErrNotFound if the user had not bookmarked the song.
	Remove(ctx context.Context, songID uuid.UUID, username string) error

	// ListByUser returns the published songs a user bookmarked, newest bookmark first.
	ListByUser(ctx context.Context, username string) ([]domain.Song, error)
}

type pgBookmarkRepo struct {
	db db
}

// NewBookmarkRepo constructs a BookmarkRepo backed by the provided db connection.
func NewBookmarkRepo(db db) BookmarkRepo {
	return &pgBookmarkRepo{db: db}
}

// Add links a song to a user. Idempotent via ON CONFLICT DO NOTHING.
func (r *pgBookmarkRepo) Add(ctx context.Context, songID uuid.UUID, username string) error {
	const q = `
		INSERT INTO bookmarks (song_id, username)
		VALUES (@song_id, @username)
		ON CONFLICT (song_id, username) DO NOTHING`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"song_id": songID, "username": username}); err != nil {
		return fmt.Errorf("repo.BookmarkRepo.Add: %w", err)
	}
	return nil
}

func (r *pgBookmarkRepo) Remove(ctx context.Context, songID uuid.UUID, username string) error {
	const q = `DELETE FROM bookmarks WHERE song_id = @song_id AND username = @username`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"song_id": songID, "username": username})
	if err != nil {
		return fmt.Errorf("repo.BookmarkRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BookmarkRepo.Remove: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgBookmarkRepo) ListByUser(ctx context.Context, username string) ([]domain.Song, error) {
	const q = `
		SELECT ` + songColumns + `
		FROM bookmarks b
		JOIN songs s ON s.id = b.song_id
		LEFT JOIN artists a ON a.id = s.artist_id
		WHERE b.username = @username AND s.published
		ORDER BY b.created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"username": username})
	if err != nil {
		return nil, fmt.Errorf("repo.BookmarkRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	songs := []domain.Song{}
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BookmarkRepo.ListByUser: scan: %w", err)
		}
		songs = append(songs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookmarkRepo.ListByUser: rows: %w", err)
	}
	return songs, nil
}
