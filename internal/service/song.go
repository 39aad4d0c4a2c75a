package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilstam/guitarchords/internal/cache"
	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/repo"
	"github.com/ilstam/guitarchords/internal/songtext"
)

// Cache keys and lifetimes for the front page listings.
const (
	KeyPopular = "songs:popular"
	KeyRecent  = "songs:recent"
	KeyStats   = "stats"

	PopularTTL = 24 * time.Hour
	RecentTTL  = time.Hour
	StatsTTL   = time.Hour

	// ListingLimit is the length of the popular and recent lists.
	ListingLimit = 10
)

// SongService implements business logic for Song operations.
type SongService struct {
	repo    repo.SongRepo
	artists *ArtistService
	lists   cache.Cache[[]domain.Song]
	stats   cache.Cache[domain.Stats]
	opts    options
}

// NewSongService constructs a SongService. Listings are memoized in lists
// and the site counters in stats.
func NewSongService(songs repo.SongRepo, artists *ArtistService, lists cache.Cache[[]domain.Song], stats cache.Cache[domain.Stats], opts ...Option) *SongService {
	return &SongService{
		repo:    songs,
		artists: artists,
		lists:   lists,
		stats:   stats,
		opts:    newOptions(opts),
	}
}

// Submit stores a user-proposed song. The artist is looked up by name and
// created if unknown. Submissions start unpublished until a moderator
// publishes them.
func (s *SongService) Submit(ctx context.Context, sub domain.SongSubmission) (domain.Song, error) {
	if err := requireUser(sub.Sender); err != nil {
		return domain.Song{}, fmt.Errorf("service.SongService.Submit: %w", err)
	}
	song, err := validateSubmission(sub)
	if err != nil {
		return domain.Song{}, err
	}

	artist, err := s.artists.FindOrCreate(ctx, sub.ArtistName)
	if err != nil {
		return domain.Song{}, fmt.Errorf("service.SongService.Submit: %w", err)
	}
	song.ArtistID = &artist.ID

	created, err := createWithSlug(ctx, s.repo.SlugExists, song.Title, s.opts.slugMaxLength, func(sl string) (domain.Song, error) {
		song.Slug = sl
		return s.repo.Create(ctx, song)
	})
	if err != nil {
		return domain.Song{}, fmt.Errorf("service.SongService.Submit: %w", err)
	}
	return created, nil
}

// Update applies the non-nil fields of u to the song with the given slug on
// behalf of a moderator. Publishing stamps the publication date;
// unpublishing clears it.
func (s *SongService) Update(ctx context.Context, slug, username string, u domain.SongUpdate) (domain.Song, error) {
	if err := s.opts.requireModerator(username); err != nil {
		return domain.Song{}, fmt.Errorf("service.SongService.Update: %w", err)
	}
	song, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.Song{}, fmt.Errorf("service.SongService.Update: %w", err)
	}
	wasPublished := song.Published

	if err := applyUpdate(&song, u); err != nil {
		return domain.Song{}, err
	}

	switch {
	case song.Published && !wasPublished:
		now := s.opts.now().UTC()
		song.PubDate = &now
	case !song.Published && wasPublished:
		song.PubDate = nil
	}

	updated, err := s.repo.Update(ctx, song)
	if err != nil {
		return domain.Song{}, fmt.Errorf("service.SongService.Update: %w", err)
	}

	if updated.Published != wasPublished {
		s.invalidate(ctx)
	}
	return updated, nil
}

// Get returns a published song rendered for display and counts a view by
// username. Anonymous reads are not counted.
func (s *SongService) Get(ctx context.Context, slug, username string) (domain.RenderedSong, error) {
	song, err := publishedSong(ctx, s.repo, slug)
	if err != nil {
		return domain.RenderedSong{}, fmt.Errorf("service.SongService.Get: %w", err)
	}

	if username != "" {
		if err := s.repo.RecordView(ctx, song.ID, username); err != nil {
			return domain.RenderedSong{}, fmt.Errorf("service.SongService.Get: %w", err)
		}
	}

	return domain.RenderedSong{
		Song:        song,
		ContentHTML: songtext.AnnotateChords(song.Content),
		Chords:      songtext.Chords(song.Content),
	}, nil
}

// Delete removes a song on behalf of a moderator.
func (s *SongService) Delete(ctx context.Context, slug, username string) error {
	if err := s.opts.requireModerator(username); err != nil {
		return fmt.Errorf("service.SongService.Delete: %w", err)
	}
	if err := s.repo.Delete(ctx, slug); err != nil {
		return fmt.Errorf("service.SongService.Delete: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// Search returns a page of published songs matching params, and the total count.
func (s *SongService) Search(ctx context.Context, params domain.SearchParams) ([]domain.Song, int64, error) {
	if err := validateSearch(&params); err != nil {
		return nil, 0, err
	}

	songs, total, err := s.repo.Search(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("service.SongService.Search: %w", err)
	}
	return songs, total, nil
}

// Popular returns the most popular published songs. The list is recomputed
// at most once a day.
func (s *SongService) Popular(ctx context.Context) ([]domain.Song, error) {
	songs, err := cache.GetOrSet(ctx, s.lists, KeyPopular, func(ctx context.Context) ([]domain.Song, time.Duration, error) {
		songs, err := s.repo.Popular(ctx, ListingLimit)
		return songs, PopularTTL, err
	})
	if err != nil {
		return nil, fmt.Errorf("service.SongService.Popular: %w", err)
	}
	return songs, nil
}

// RefreshPopular drops the cached popular list and computes it again.
func (s *SongService) RefreshPopular(ctx context.Context) ([]domain.Song, error) {
	if err := s.lists.Delete(ctx, KeyPopular); err != nil {
		return nil, fmt.Errorf("service.SongService.RefreshPopular: %w", err)
	}
	return s.Popular(ctx)
}

// Recent returns the latest published songs.
func (s *SongService) Recent(ctx context.Context) ([]domain.Song, error) {
	songs, err := cache.GetOrSet(ctx, s.lists, KeyRecent, func(ctx context.Context) ([]domain.Song, time.Duration, error) {
		songs, err := s.repo.Recent(ctx, ListingLimit)
		return songs, RecentTTL, err
	})
	if err != nil {
		return nil, fmt.Errorf("service.SongService.Recent: %w", err)
	}
	return songs, nil
}

// Stats returns the site-wide counters.
func (s *SongService) Stats(ctx context.Context) (domain.Stats, error) {
	stats, err := cache.GetOrSet(ctx, s.stats, KeyStats, func(ctx context.Context) (domain.Stats, time.Duration, error) {
		var (
			st  domain.Stats
			err error
		)
		if st.PublishedSongs, err = s.repo.CountPublished(ctx); err != nil {
			return st, 0, err
		}
		if st.Artists, err = s.artists.Count(ctx); err != nil {
			return st, 0, err
		}
		if st.Contributors, err = s.repo.CountContributors(ctx); err != nil {
			return st, 0, err
		}
		return st, StatsTTL, nil
	})
	if err != nil {
		return domain.Stats{}, fmt.Errorf("service.SongService.Stats: %w", err)
	}
	return stats, nil
}

// invalidate drops listings that depend on the set of published songs.
// Cache failures only delay freshness until the entries expire.
func (s *SongService) invalidate(ctx context.Context) {
	_ = s.lists.Delete(ctx, KeyPopular)
	_ = s.lists.Delete(ctx, KeyRecent)
	_ = s.stats.Delete(ctx, KeyStats)
}

func validateSubmission(sub domain.SongSubmission) (domain.Song, error) {
	title, err := requireText("title", sub.Title, domain.SongTitleMaxLength)
	if err != nil {
		return domain.Song{}, err
	}

	genre := sub.Genre
	if genre == "" {
		genre = domain.DefaultGenre
	}
	if !genre.Valid() {
		return domain.Song{}, fmt.Errorf("%w: unknown genre %q", domain.ErrValidation, genre)
	}

	video := strings.TrimSpace(sub.Video)
	if err := validateVideo(video); err != nil {
		return domain.Song{}, err
	}

	content := songtext.NormalizeBlankLines(sub.Content)
	if content == "" {
		return domain.Song{}, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}

	return domain.Song{
		Title:   title,
		Content: content,
		Genre:   genre,
		Video:   video,
		Tabs:    sub.Tabs,
		Sender:  strings.TrimSpace(sub.Sender),
	}, nil
}

func applyUpdate(song *domain.Song, u domain.SongUpdate) error {
	if u.Title != nil {
		title, err := requireText("title", *u.Title, domain.SongTitleMaxLength)
		if err != nil {
			return err
		}
		song.Title = title
	}
	if u.Genre != nil {
		if !u.Genre.Valid() {
			return fmt.Errorf("%w: unknown genre %q", domain.ErrValidation, *u.Genre)
		}
		song.Genre = *u.Genre
	}
	if u.Video != nil {
		video := strings.TrimSpace(*u.Video)
		if err := validateVideo(video); err != nil {
			return err
		}
		song.Video = video
	}
	if u.Tabs != nil {
		song.Tabs = *u.Tabs
	}
	if u.Content != nil {
		content := songtext.NormalizeBlankLines(*u.Content)
		if content == "" {
			return fmt.Errorf("%w: content is required", domain.ErrValidation)
		}
		song.Content = content
	}
	if u.Published != nil {
		song.Published = *u.Published
	}
	return nil
}

// validateVideo accepts an empty string or an absolute http(s) URL.
func validateVideo(video string) error {
	if video == "" {
		return nil
	}
	u, err := url.Parse(video)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: video must be an http or https URL", domain.ErrValidation)
	}
	return nil
}

// validateSearch fills defaults and rejects unknown filter values.
func validateSearch(p *domain.SearchParams) error {
	if p.By == "" {
		p.By = domain.SearchBySong
	}
	switch p.By {
	case domain.SearchByArtist, domain.SearchBySong, domain.SearchByUser:
	default:
		return fmt.Errorf("%w: unknown search field %q", domain.ErrValidation, p.By)
	}

	if p.Genre != "" && !p.Genre.Valid() {
		return fmt.Errorf("%w: unknown genre %q", domain.ErrValidation, p.Genre)
	}

	if p.Tabs == "" {
		p.Tabs = domain.TabsInclude
	}
	switch p.Tabs {
	case domain.TabsInclude, domain.TabsChordsOnly:
	default:
		return fmt.Errorf("%w: unknown tabs filter %q", domain.ErrValidation, p.Tabs)
	}

	if p.Sort == "" {
		p.Sort = domain.SortByName
	}
	switch p.Sort {
	case domain.SortByName, domain.SortByPopularity, domain.SortByAge:
	default:
		return fmt.Errorf("%w: unknown sort order %q", domain.ErrValidation, p.Sort)
	}

	if p.Page.Limit == 0 {
		p.Page = domain.NewPaginationParams(nil, nil)
	}
	return nil
}
