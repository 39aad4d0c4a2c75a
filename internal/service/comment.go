package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/repo"
)

// CommentService implements business logic for comments on songs.
type CommentService struct {
	repo   repo.CommentRepo
	songs  repo.SongRepo
	policy *bluemonday.Policy
}

// NewCommentService constructs a CommentService backed by the provided repos.
func NewCommentService(comments repo.CommentRepo, songs repo.SongRepo) *CommentService {
	return &CommentService{repo: comments, songs: songs, policy: bluemonday.StrictPolicy()}
}

// Add stores a comment by username on a published song. Markup is stripped
// from body and the remaining text is kept unescaped.
func (s *CommentService) Add(ctx context.Context, songSlug, username, body string) (domain.Comment, error) {
	if err := requireUser(username); err != nil {
		return domain.Comment{}, err
	}

	body = html.UnescapeString(s.policy.Sanitize(body))
	body, err := requireText("comment", body, domain.CommentBodyMaxLength)
	if err != nil {
		return domain.Comment{}, err
	}

	song, err := publishedSong(ctx, s.songs, songSlug)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.Add: %w", err)
	}

	comment, err := s.repo.Create(ctx, domain.Comment{
		SongID:   song.ID,
		Username: strings.TrimSpace(username),
		Body:     body,
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.Add: %w", err)
	}
	return comment, nil
}

// List returns the comments on a published song, oldest first.
func (s *CommentService) List(ctx context.Context, songSlug string) ([]domain.Comment, error) {
	song, err := publishedSong(ctx, s.songs, songSlug)
	if err != nil {
		return nil, fmt.Errorf("service.CommentService.List: %w", err)
	}

	comments, err := s.repo.ListBySong(ctx, song.ID)
	if err != nil {
		return nil, fmt.Errorf("service.CommentService.List: %w", err)
	}
	return comments, nil
}
