package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/mailer"
	"github.com/ilstam/guitarchords/internal/repo"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs.

type mockArtistRepo struct {
	create     func(ctx context.Context, a domain.Artist) (domain.Artist, error)
	getBySlug  func(ctx context.Context, slug string) (domain.Artist, error)
	findByName func(ctx context.Context, name string) (domain.Artist, error)
	list       func(ctx context.Context, p domain.PaginationParams) ([]domain.Artist, int64, error)
	update     func(ctx context.Context, a domain.Artist) (domain.Artist, error)
	slugExists func(ctx context.Context, slug string) (bool, error)
	count      func(ctx context.Context) (int64, error)
}

func (m *mockArtistRepo) Create(ctx context.Context, a domain.Artist) (domain.Artist, error) {
	return m.create(ctx, a)
}
func (m *mockArtistRepo) GetBySlug(ctx context.Context, slug string) (domain.Artist, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockArtistRepo) FindByName(ctx context.Context, name string) (domain.Artist, error) {
	return m.findByName(ctx, name)
}
func (m *mockArtistRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Artist, int64, error) {
	return m.list(ctx, p)
}
func (m *mockArtistRepo) Update(ctx context.Context, a domain.Artist) (domain.Artist, error) {
	return m.update(ctx, a)
}
func (m *mockArtistRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return m.slugExists(ctx, slug)
}
func (m *mockArtistRepo) Count(ctx context.Context) (int64, error) {
	return m.count(ctx)
}

var _ repo.ArtistRepo = (*mockArtistRepo)(nil)

type mockSongRepo struct {
	create            func(ctx context.Context, s domain.Song) (domain.Song, error)
	getBySlug         func(ctx context.Context, slug string) (domain.Song, error)
	update            func(ctx context.Context, s domain.Song) (domain.Song, error)
	delete            func(ctx context.Context, slug string) error
	listByArtist      func(ctx context.Context, artistID uuid.UUID) ([]domain.Song, error)
	search            func(ctx context.Context, p domain.SearchParams) ([]domain.Song, int64, error)
	popular           func(ctx context.Context, limit int) ([]domain.Song, error)
	recent            func(ctx context.Context, limit int) ([]domain.Song, error)
	countPublished    func(ctx context.Context) (int64, error)
	countContributors func(ctx context.Context) (int64, error)
	recordView        func(ctx context.Context, songID uuid.UUID, username string) error
	slugExists        func(ctx context.Context, slug string) (bool, error)
}

func (m *mockSongRepo) Create(ctx context.Context, s domain.Song) (domain.Song, error) {
	return m.create(ctx, s)
}
func (m *mockSongRepo) GetBySlug(ctx context.Context, slug string) (domain.Song, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockSongRepo) Update(ctx context.Context, s domain.Song) (domain.Song, error) {
	return m.update(ctx, s)
}
func (m *mockSongRepo) Delete(ctx context.Context, slug string) error {
	return m.delete(ctx, slug)
}
func (m *mockSongRepo) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]domain.Song, error) {
	return m.listByArtist(ctx, artistID)
}
func (m *mockSongRepo) Search(ctx context.Context, p domain.SearchParams) ([]domain.Song, int64, error) {
	return m.search(ctx, p)
}
func (m *mockSongRepo) Popular(ctx context.Context, limit int) ([]domain.Song, error) {
	return m.popular(ctx, limit)
}
func (m *mockSongRepo) Recent(ctx context.Context, limit int) ([]domain.Song, error) {
	return m.recent(ctx, limit)
}
func (m *mockSongRepo) CountPublished(ctx context.Context) (int64, error) {
	return m.countPublished(ctx)
}
func (m *mockSongRepo) CountContributors(ctx context.Context) (int64, error) {
	return m.countContributors(ctx)
}
func (m *mockSongRepo) RecordView(ctx context.Context, songID uuid.UUID, username string) error {
	return m.recordView(ctx, songID, username)
}
func (m *mockSongRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return m.slugExists(ctx, slug)
}

var _ repo.SongRepo = (*mockSongRepo)(nil)

type mockCommentRepo struct {
	create     func(ctx context.Context, c domain.Comment) (domain.Comment, error)
	listBySong func(ctx context.Context, songID uuid.UUID) ([]domain.Comment, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	return m.create(ctx, c)
}
func (m *mockCommentRepo) ListBySong(ctx context.Context, songID uuid.UUID) ([]domain.Comment, error) {
	return m.listBySong(ctx, songID)
}

var _ repo.CommentRepo = (*mockCommentRepo)(nil)

type mockBookmarkRepo struct {
	add        func(ctx context.Context, songID uuid.UUID, username string) error
	remove     func(ctx context.Context, songID uuid.UUID, username string) error
	listByUser func(ctx context.Context, username string) ([]domain.Song, error)
}

func (m *mockBookmarkRepo) Add(ctx context.Context, songID uuid.UUID, username string) error {
	return m.add(ctx, songID, username)
}
func (m *mockBookmarkRepo) Remove(ctx context.Context, songID uuid.UUID, username string) error {
	return m.remove(ctx, songID, username)
}
func (m *mockBookmarkRepo) ListByUser(ctx context.Context, username string) ([]domain.Song, error) {
	return m.listByUser(ctx, username)
}

var _ repo.BookmarkRepo = (*mockBookmarkRepo)(nil)

type mockSender struct {
	send func(ctx context.Context, e mailer.Email) error
}

func (m *mockSender) Send(ctx context.Context, e mailer.Email) error {
	return m.send(ctx, e)
}

var _ mailer.Sender = (*mockSender)(nil)

// ---- helpers ---------------------------------------------------------------

// takenSlugs returns a slugExists func backed by a fixed set.
func takenSlugs(slugs ...string) func(context.Context, string) (bool, error) {
	set := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		set[s] = true
	}
	return func(_ context.Context, s string) (bool, error) { return set[s], nil }
}

func publishedSongFixture(slug string) domain.Song {
	return domain.Song{
		ID:        uuid.New(),
		Title:     "Random Song",
		Slug:      slug,
		Content:   "@Am@ Lorem",
		Genre:     domain.GenreRock,
		Published: true,
	}
}

// songsBySlug serves GetBySlug from a fixed set of songs.
func songsBySlug(songs ...domain.Song) func(context.Context, string) (domain.Song, error) {
	return func(_ context.Context, slug string) (domain.Song, error) {
		for _, s := range songs {
			if s.Slug == slug {
				return s, nil
			}
		}
		return domain.Song{}, domain.ErrNotFound
	}
}
