// Package service contains the business logic for the guitarchords API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/repo"
	"github.com/ilstam/guitarchords/internal/slug"
)

// maxSlugAttempts bounds how often a create is retried after another writer
// claimed the same slug between the uniqueness check and the insert.
const maxSlugAttempts = 3

// Option configures the services that generate slugs or stamp times.
type Option func(*options)

type options struct {
	slugMaxLength int
	now           func() time.Time
	moderators    map[string]struct{}
}

func newOptions(opts []Option) options {
	o := options{slugMaxLength: slug.DefaultMaxLength, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSlugMaxLength sets the longest slug generated. Non-positive values keep the default.
func WithSlugMaxLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.slugMaxLength = n
		}
	}
}

// WithModerators names the users allowed to publish, edit and delete songs
// and to create or rename artists. Without it nobody is.
func WithModerators(names ...string) Option {
	return func(o *options) {
		if o.moderators == nil {
			o.moderators = make(map[string]struct{}, len(names))
		}
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				o.moderators[n] = struct{}{}
			}
		}
	}
}

// requireModerator returns domain.ErrUnauthorized for anonymous callers and
// domain.ErrForbidden for users who are not moderators.
func (o options) requireModerator(username string) error {
	if err := requireUser(username); err != nil {
		return err
	}
	if _, ok := o.moderators[strings.TrimSpace(username)]; !ok {
		return domain.ErrForbidden
	}
	return nil
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// createWithSlug picks a free slug for name and hands it to create. If create
// reports domain.ErrConflict the slug is regenerated, up to maxSlugAttempts.
func createWithSlug[T any](ctx context.Context, exists slug.ExistsFunc, name string, maxLength int, create func(slug string) (T, error)) (T, error) {
	var (
		zero T
		err  error
	)
	for range maxSlugAttempts {
		var s string
		s, err = slug.Unique(ctx, exists, name, maxLength)
		if err != nil {
			if errors.Is(err, slug.ErrEmpty) {
				return zero, fmt.Errorf("%w: name must contain at least one letter or digit", domain.ErrValidation)
			}
			if errors.Is(err, slug.ErrExhausted) {
				return zero, fmt.Errorf("%w: %w", domain.ErrConflict, err)
			}
			return zero, err
		}

		var v T
		v, err = create(s)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return zero, err
		}
	}
	return zero, err
}

// requireText trims s and checks it is non-empty and at most max runes long.
func requireText(field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	if utf8.RuneCountInString(s) > max {
		return "", fmt.Errorf("%w: %s must be at most %d characters", domain.ErrValidation, field, max)
	}
	return s, nil
}

func requireUser(username string) error {
	if strings.TrimSpace(username) == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// publishedSong loads a song by slug, treating unpublished songs as missing.
func publishedSong(ctx context.Context, songs repo.SongRepo, slug string) (domain.Song, error) {
	song, err := songs.GetBySlug(ctx, slug)
	if err != nil {
		return domain.Song{}, err
	}
	if !song.Published {
		return domain.Song{}, domain.ErrNotFound
	}
	return song, nil
}
