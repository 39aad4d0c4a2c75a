package service

import (
	"context"
	"fmt"

	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/repo"
)

// ArtistService implements business logic for Artist operations.
type ArtistService struct {
	repo  repo.ArtistRepo
	songs repo.SongRepo
	opts  options
}

// NewArtistService constructs an ArtistService backed by the provided repos.
func NewArtistService(artists repo.ArtistRepo, songs repo.SongRepo, opts ...Option) *ArtistService {
	return &ArtistService{repo: artists, songs: songs, opts: newOptions(opts)}
}

// Create stores a new artist under a freshly generated slug. Only moderators
// add artists directly; submissions go through FindOrCreate.
func (s *ArtistService) Create(ctx context.Context, username, name string) (domain.Artist, error) {
	if err := s.opts.requireModerator(username); err != nil {
		return domain.Artist{}, fmt.Errorf("service.ArtistService.Create: %w", err)
	}
	name, err := requireText("name", name, domain.ArtistNameMaxLength)
	if err != nil {
		return domain.Artist{}, err
	}
	return s.create(ctx, name)
}

func (s *ArtistService) create(ctx context.Context, name string) (domain.Artist, error) {
	artist, err := createWithSlug(ctx, s.repo.SlugExists, name, s.opts.slugMaxLength, func(sl string) (domain.Artist, error) {
		return s.repo.Create(ctx, domain.Artist{Name: name, Slug: sl})
	})
	if err != nil {
		return domain.Artist{}, fmt.Errorf("service.ArtistService.Create: %w", err)
	}
	return artist, nil
}

// FindOrCreate returns the artist called name, creating it if none exists.
func (s *ArtistService) FindOrCreate(ctx context.Context, name string) (domain.Artist, error) {
	name, err := requireText("artist", name, domain.ArtistNameMaxLength)
	if err != nil {
		return domain.Artist{}, err
	}

	artist, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return artist, nil
	}
	if !isNotFound(err) {
		return domain.Artist{}, fmt.Errorf("service.ArtistService.FindOrCreate: %w", err)
	}
	return s.create(ctx, name)
}

// Rename changes an artist's display name. The slug stays as it was.
// Only moderators may rename.
func (s *ArtistService) Rename(ctx context.Context, slug, username, name string) (domain.Artist, error) {
	if err := s.opts.requireModerator(username); err != nil {
		return domain.Artist{}, fmt.Errorf("service.ArtistService.Rename: %w", err)
	}
	name, err := requireText("name", name, domain.ArtistNameMaxLength)
	if err != nil {
		return domain.Artist{}, err
	}

	artist, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("service.ArtistService.Rename: %w", err)
	}
	artist.Name = name

	updated, err := s.repo.Update(ctx, artist)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("service.ArtistService.Rename: %w", err)
	}
	return updated, nil
}

// GetBySlug returns a single artist.
func (s *ArtistService) GetBySlug(ctx context.Context, slug string) (domain.Artist, error) {
	artist, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("service.ArtistService.GetBySlug: %w", err)
	}
	return artist, nil
}

// List returns one page of artists ordered by name, and the total count.
func (s *ArtistService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Artist, int64, error) {
	artists, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ArtistService.List: %w", err)
	}
	return artists, total, nil
}

// Songs returns the published songs of the artist with the given slug.
func (s *ArtistService) Songs(ctx context.Context, slug string) ([]domain.Song, error) {
	artist, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("service.ArtistService.Songs: %w", err)
	}

	songs, err := s.songs.ListByArtist(ctx, artist.ID)
	if err != nil {
		return nil, fmt.Errorf("service.ArtistService.Songs: %w", err)
	}
	return songs, nil
}

// Count returns the number of artists.
func (s *ArtistService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("service.ArtistService.Count: %w", err)
	}
	return n, nil
}
