package service

import (
	"context"
	"fmt"

	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/repo"
)

// BookmarkService manages the songs users save for later.
type BookmarkService struct {
	repo  repo.BookmarkRepo
	songs repo.SongRepo
}

// NewBookmarkService constructs a BookmarkService backed by the provided repos.
func NewBookmarkService(bookmarks repo.BookmarkRepo, songs repo.SongRepo) *BookmarkService {
	return &BookmarkService{repo: bookmarks, songs: songs}
}

// Add bookmarks a published song for username. Bookmarking twice is a no-op.
func (s *BookmarkService) Add(ctx context.Context, songSlug, username string) error {
	if err := requireUser(username); err != nil {
		return err
	}

	song, err := publishedSong(ctx, s.songs, songSlug)
	if err != nil {
		return fmt.Errorf("service.BookmarkService.Add: %w", err)
	}
	if err := s.repo.Add(ctx, song.ID, username); err != nil {
		return fmt.Errorf("service.BookmarkService.Add: %w", err)
	}
	return nil
}

// Remove deletes a bookmark. It returns domain.ErrNotFound if the song is
// unknown or was not bookmarked by username.
func (s *BookmarkService) Remove(ctx context.Context, songSlug, username string) error {
	if err := requireUser(username); err != nil {
		return err
	}

	song, err := s.songs.GetBySlug(ctx, songSlug)
	if err != nil {
		return fmt.Errorf("service.BookmarkService.Remove: %w", err)
	}
	if err := s.repo.Remove(ctx, song.ID, username); err != nil {
		return fmt.Errorf("service.BookmarkService.Remove: %w", err)
	}
	return nil
}

// List returns the published songs username has bookmarked.
func (s *BookmarkService) List(ctx context.Context, username string) ([]domain.Song, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}

	songs, err := s.repo.ListByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("service.BookmarkService.List: %w", err)
	}
	return songs, nil
}
