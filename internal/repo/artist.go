package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ilstam/guitarchords/internal/domain"
)

// ArtistRepo defines the persistence operations for Artists.
// The service layer depends on this interface, not the Postgres implementation.
type ArtistRepo interface {
	// Create inserts a new artist and returns the persisted record.
	// Returns domain.ErrConflict if the slug is already taken.
	Create(ctx context.Context, artist domain.Artist) (domain.Artist, error)

	// GetBySlug retrieves a single artist by slug.
	// Returns domain.ErrNotFound if no artist has that slug.
	GetBySlug(ctx context.Context, slug string) (domain.Artist, error)

	// FindByName returns the oldest artist whose name matches case-insensitively.
	// Returns domain.ErrNotFound if there is none.
	FindByName(ctx context.Context, name string) (domain.Artist, error)

	// List returns one page of artists ordered by name, and the total count.
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Artist, int64, error)

	// Update overwrites the name of an existing artist. The slug is never touched.
	// Returns domain.ErrNotFound if the artist does not exist.
	Update(ctx context.Context, artist domain.Artist) (domain.Artist, error)

	// SlugExists reports whether any artist already uses slug.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Count returns the number of artists.
	Count(ctx context.Context) (int64, error)
}

// pgArtistRepo is the Postgres implementation of ArtistRepo.
type pgArtistRepo struct {
	db db
}

// NewArtistRepo constructs an ArtistRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewArtistRepo(db db) ArtistRepo {
	return &pgArtistRepo{db: db}
}

const artistColumns = `id, name, slug, created_at, updated_at`

// Create inserts a new artist row and returns the full persisted record.
func (r *pgArtistRepo) Create(ctx context.Context, artist domain.Artist) (domain.Artist, error) {
	const q = `
		INSERT INTO artists (name, slug)
		VALUES (@name, @slug)
		RETURNING ` + artistColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": artist.Name, "slug": artist.Slug})
	result, err := scanArtist(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Artist{}, fmt.Errorf("repo.ArtistRepo.Create: slug %q: %w", artist.Slug, domain.ErrConflict)
		}
		return domain.Artist{}, fmt.Errorf("repo.ArtistRepo.Create: %w", err)
	}
	return result, nil
}

// GetBySlug retrieves an artist by its slug.
func (r *pgArtistRepo) GetBySlug(ctx context.Context, slug string) (domain.Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM artists WHERE slug = @slug`

	result, err := scanArtist(r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}))
	if err != nil {
		return domain.Artist{}, fmt.Errorf("repo.ArtistRepo.GetBySlug: %w", err)
	}
	return result, nil
}

// FindByName looks an artist up by case-insensitive name.
func (r *pgArtistRepo) FindByName(ctx context.Context, name string) (domain.Artist, error) {
	const q = `
		SELECT ` + artistColumns + `
		FROM artists
		WHERE lower(name) = lower(@name)
		ORDER BY created_at
		LIMIT 1`

	result, err := scanArtist(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.Artist{}, fmt.Errorf("repo.ArtistRepo.FindByName: %w", err)
	}
	return result, nil
}

// List returns one page of artists ordered by name.
func (r *pgArtistRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Artist, int64, error) {
	const q = `
		SELECT ` + artistColumns + `
		FROM artists
		ORDER BY name, created_at
		LIMIT @limit OFFSET @offset`

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ArtistRepo.List: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ArtistRepo.List: %w", err)
	}
	defer rows.Close()

	artists := []domain.Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ArtistRepo.List: scan: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ArtistRepo.List: rows: %w", err)
	}
	return artists, total, nil
}

// Update renames an artist and returns the updated record.
func (r *pgArtistRepo) Update(ctx context.Context, artist domain.Artist) (domain.Artist, error) {
	const q = `
		UPDATE artists
		SET name       = @name,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + artistColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": artist.ID, "name": artist.Name})
	result, err := scanArtist(row)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("repo.ArtistRepo.Update: %w", err)
	}
	return result, nil
}

// SlugExists reports whether slug is taken by an artist.
func (r *pgArtistRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	exists, err := slugExists(ctx, r.db, "artists", slug)
	if err != nil {
		return false, fmt.Errorf("repo.ArtistRepo.SlugExists: %w", err)
	}
	return exists, nil
}

// Count returns the number of artists.
func (r *pgArtistRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM artists`).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.ArtistRepo.Count: %w", err)
	}
	return n, nil
}

// scanArtist maps a single database row into a domain.Artist.
func scanArtist(s scanner) (domain.Artist, error) {
	var (
		a  domain.Artist
		id pgtype.UUID
	)
	err := s.Scan(&id, &a.Name, &a.Slug, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Artist{}, domain.ErrNotFound
		}
		return domain.Artist{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	return a, nil
}
