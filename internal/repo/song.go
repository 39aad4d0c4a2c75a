package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ilstam/guitarchords/internal/domain"
)

// SongRepo defines the persistence operations for Songs and their views.
type SongRepo interface {
	// Create inserts a new song and returns the persisted record.
	// Returns domain.ErrConflict if the slug is already taken.
	Create(ctx context.Context, song domain.Song) (domain.Song, error)

	// GetBySlug retrieves a song by slug, published or not.
	// Returns domain.ErrNotFound if no song has that slug.
	GetBySlug(ctx context.Context, slug string) (domain.Song, error)

	// Update overwrites the mutable fields of a song, including its
	// publication state. The slug is never touched.
	// Returns domain.ErrNotFound if the song does not exist.
	Update(ctx context.Context, song domain.Song) (domain.Song, error)

	// Delete removes a song by slug. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, slug string) error

	// ListByArtist returns the published songs of an artist ordered by title.
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]domain.Song, error)

	// Search returns one page of published songs matching params, and the total count.
	Search(ctx context.Context, params domain.SearchParams) ([]domain.Song, int64, error)

	// Popular returns the top published songs by views + 2 × bookmarks.
	Popular(ctx context.Context, limit int) ([]domain.Song, error)

	// Recent returns the most recently published songs.
	Recent(ctx context.Context, limit int) ([]domain.Song, error)

	// CountPublished returns the number of published songs.
	CountPublished(ctx context.Context) (int64, error)

	// CountContributors returns the number of distinct users who submitted songs.
	CountContributors(ctx context.Context) (int64, error)

	// RecordView marks the song as viewed by username. Idempotent.
	RecordView(ctx context.Context, songID uuid.UUID, username string) error

	// SlugExists reports whether any song already uses slug.
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// pgSongRepo is the Postgres implementation of SongRepo.
type pgSongRepo struct {
	db db
}

// NewSongRepo constructs a SongRepo backed by the provided db connection.
func NewSongRepo(db db) SongRepo {
	return &pgSongRepo{db: db}
}

// songColumns selects a song joined with its artist, aliased s and a.
const songColumns = `
	s.id, s.title, s.artist_id, COALESCE(a.name, ''), COALESCE(a.slug, ''),
	s.content, s.genre, s.video, s.tabs, s.sender, s.published, s.pub_date,
	s.slug, s.created_at, s.updated_at`

// popularity weighs a bookmark as two views.
const popularity = `(
	(SELECT count(*) FROM song_views v WHERE v.song_id = s.id) +
	2 * (SELECT count(*) FROM bookmarks b WHERE b.song_id = s.id))`

// Create inserts a song and re-reads it joined with its artist in one round trip.
func (r *pgSongRepo) Create(ctx context.Context, song domain.Song) (domain.Song, error) {
	const q = `
		WITH s AS (
			INSERT INTO songs (title, artist_id, content, genre, video, tabs, sender, published, pub_date, slug)
			VALUES (@title, @artist_id, @content, @genre, @video, @tabs, @sender, @published, @pub_date, @slug)
			RETURNING *
		)
		SELECT ` + songColumns + `
		FROM s LEFT JOIN artists a ON a.id = s.artist_id`

	args := songArgs(song)
	args["slug"] = song.Slug

	result, err := scanSong(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Song{}, fmt.Errorf("repo.SongRepo.Create: slug %q: %w", song.Slug, domain.ErrConflict)
		}
		return domain.Song{}, fmt.Errorf("repo.SongRepo.Create: %w", err)
	}
	return result, nil
}

// GetBySlug retrieves a song by slug.
func (r *pgSongRepo) GetBySlug(ctx context.Context, slug string) (domain.Song, error) {
	const q = `
		SELECT ` + songColumns + `
		FROM songs s LEFT JOIN artists a ON a.id = s.artist_id
		WHERE s.slug = @slug`

	result, err := scanSong(r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}))
	if err != nil {
		return domain.Song{}, fmt.Errorf("repo.SongRepo.GetBySlug: %w", err)
	}
	return result, nil
}

// Update overwrites the mutable fields of a song and returns the updated record.
func (r *pgSongRepo) Update(ctx context.Context, song domain.Song) (domain.Song, error) {
	const q = `
		WITH s AS (
			UPDATE songs
			SET title      = @title,
			    artist_id  = @artist_id,
			    content    = @content,
			    genre      = @genre,
			    video      = @video,
			    tabs       = @tabs,
			    sender     = @sender,
			    published  = @published,
			    pub_date   = @pub_date,
			    updated_at = now()
			WHERE id = @id
			RETURNING *
		)
		SELECT ` + songColumns + `
		FROM s LEFT JOIN artists a ON a.id = s.artist_id`

	args := songArgs(song)
	args["id"] = song.ID

	result, err := scanSong(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Song{}, fmt.Errorf("repo.SongRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a song by slug.
func (r *pgSongRepo) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM songs WHERE slug = @slug`, pgx.NamedArgs{"slug": slug})
	if err != nil {
		return fmt.Errorf("repo.SongRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SongRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ListByArtist returns an artist's published songs ordered by title.
func (r *pgSongRepo) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]domain.Song, error) {
	const q = `
		SELECT ` + songColumns + `
		FROM songs s LEFT JOIN artists a ON a.id = s.artist_id
		WHERE s.artist_id = @artist_id AND s.published
		ORDER BY s.title`

	songs, err := r.querySongs(ctx, q, pgx.NamedArgs{"artist_id": artistID})
	if err != nil {
		return nil, fmt.Errorf("repo.SongRepo.ListByArtist: %w", err)
	}
	return songs, nil
}

// Search builds the WHERE clause from params. Keywords always go through
// named args; only fixed column names are concatenated into the query.
func (r *pgSongRepo) Search(ctx context.Context, params domain.SearchParams) ([]domain.Song, int64, error) {
	where := []string{"s.published"}
	args := pgx.NamedArgs{
		"limit":  params.Page.Limit,
		"offset": params.Page.Offset(),
	}

	if kw := strings.TrimSpace(params.Keywords); kw != "" {
		args["keywords"] = containsPattern(kw)
		switch params.By {
		case domain.SearchByArtist:
			where = append(where, "a.name ILIKE @keywords")
		case domain.SearchByUser:
			where = append(where, "s.sender ILIKE @keywords")
		default:
			where = append(where, "s.title ILIKE @keywords")
		}
	}
	if params.Genre != "" {
		args["genre"] = string(params.Genre)
		where = append(where, "s.genre = @genre")
	}
	if params.Tabs == domain.TabsChordsOnly {
		where = append(where, "NOT s.tabs")
	}

	order := "s.title, s.created_at"
	switch params.Sort {
	case domain.SortByPopularity:
		order = "popularity DESC, s.title"
	case domain.SortByAge:
		order = "s.pub_date DESC NULLS LAST, s.title"
	}

	from := `FROM songs s LEFT JOIN artists a ON a.id = s.artist_id WHERE ` + strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) `+from, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.SongRepo.Search: count: %w", err)
	}

	q := `SELECT ` + songColumns + `, ` + popularity + ` AS popularity ` + from +
		` ORDER BY ` + order + ` LIMIT @limit OFFSET @offset`

	songs, err := r.querySongs(ctx, q, args, withPopularity)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.SongRepo.Search: %w", err)
	}
	return songs, total, nil
}

// Popular returns the most viewed and bookmarked published songs.
func (r *pgSongRepo) Popular(ctx context.Context, limit int) ([]domain.Song, error) {
	const q = `
		SELECT ` + songColumns + `, ` + popularity + ` AS popularity
		FROM songs s LEFT JOIN artists a ON a.id = s.artist_id
		WHERE s.published
		ORDER BY popularity DESC, s.pub_date DESC NULLS LAST
		LIMIT @limit`

	songs, err := r.querySongs(ctx, q, pgx.NamedArgs{"limit": limit}, withPopularity)
	if err != nil {
		return nil, fmt.Errorf("repo.SongRepo.Popular: %w", err)
	}
	return songs, nil
}

// Recent returns the latest published songs, newest first.
func (r *pgSongRepo) Recent(ctx context.Context, limit int) ([]domain.Song, error) {
	const q = `
		SELECT ` + songColumns + `
		FROM songs s LEFT JOIN artists a ON a.id = s.artist_id
		WHERE s.published
		ORDER BY s.pub_date DESC NULLS LAST
		LIMIT @limit`

	songs, err := r.querySongs(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.SongRepo.Recent: %w", err)
	}
	return songs, nil
}

// CountPublished returns the number of published songs.
func (r *pgSongRepo) CountPublished(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM songs WHERE published`).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.SongRepo.CountPublished: %w", err)
	}
	return n, nil
}

// CountContributors returns the number of distinct song senders.
func (r *pgSongRepo) CountContributors(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(DISTINCT sender) FROM songs WHERE sender <> ''`).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.SongRepo.CountContributors: %w", err)
	}
	return n, nil
}

// RecordView inserts a view row, ignoring repeat views by the same user.
func (r *pgSongRepo) RecordView(ctx context.Context, songID uuid.UUID, username string) error {
	const q = `
		INSERT INTO song_views (song_id, username)
		VALUES (@song_id, @username)
		ON CONFLICT (song_id, username) DO NOTHING`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"song_id": songID, "username": username}); err != nil {
		return fmt.Errorf("repo.SongRepo.RecordView: %w", err)
	}
	return nil
}

// SlugExists reports whether slug is taken by a song.
func (r *pgSongRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	exists, err := slugExists(ctx, r.db, "songs", slug)
	if err != nil {
		return false, fmt.Errorf("repo.SongRepo.SlugExists: %w", err)
	}
	return exists, nil
}

// songArgs returns the named args shared by Create and Update.
func songArgs(song domain.Song) pgx.NamedArgs {
	return pgx.NamedArgs{
		"title":     song.Title,
		"artist_id": song.ArtistID, // nil becomes NULL
		"content":   song.Content,
		"genre":     string(song.Genre),
		"video":     song.Video,
		"tabs":      song.Tabs,
		"sender":    song.Sender,
		"published": song.Published,
		"pub_date":  song.PubDate,
	}
}

// scanOption tells querySongs about extra trailing columns.
type scanOption int

const withPopularity scanOption = iota + 1

func (r *pgSongRepo) querySongs(ctx context.Context, q string, args pgx.NamedArgs, opts ...scanOption) ([]domain.Song, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := []domain.Song{}
	for rows.Next() {
		var (
			s   domain.Song
			err error
		)
		if len(opts) > 0 && opts[0] == withPopularity {
			var pop int64
			s, err = scanSong(rows, &pop)
			s.Popularity = pop
		} else {
			s, err = scanSong(rows)
		}
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		songs = append(songs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return songs, nil
}

// scanSong maps a row selected with songColumns into a domain.Song.
// extra receives any columns selected after songColumns.
func scanSong(s scanner, extra ...any) (domain.Song, error) {
	var (
		song     domain.Song
		id       pgtype.UUID
		artistID pgtype.UUID
		genre    string
		pubDate  pgtype.Timestamptz
	)

	dest := []any{
		&id, &song.Title, &artistID, &song.ArtistName, &song.ArtistSlug,
		&song.Content, &genre, &song.Video, &song.Tabs, &song.Sender, &song.Published, &pubDate,
		&song.Slug, &song.CreatedAt, &song.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Song{}, domain.ErrNotFound
		}
		return domain.Song{}, err
	}

	song.ID = uuid.UUID(id.Bytes)
	song.Genre = domain.Genre(strings.TrimSpace(genre))
	if artistID.Valid {
		aid := uuid.UUID(artistID.Bytes)
		song.ArtistID = &aid
	}
	if pubDate.Valid {
		pd := pubDate.Time.In(time.UTC)
		song.PubDate = &pd
	}
	return song, nil
}
