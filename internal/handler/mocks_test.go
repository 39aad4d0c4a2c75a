package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/handler"
	"github.com/ilstam/guitarchords/internal/middleware"
)

// Test doubles for the servicer interfaces. Set only the fields a test needs.

type mockArtistServicer struct {
	create    func(ctx context.Context, username, name string) (domain.Artist, error)
	rename    func(ctx context.Context, slug, username, name string) (domain.Artist, error)
	getBySlug func(ctx context.Context, slug string) (domain.Artist, error)
	list      func(ctx context.Context, p domain.PaginationParams) ([]domain.Artist, int64, error)
	songs     func(ctx context.Context, slug string) ([]domain.Song, error)
}

func (m *mockArtistServicer) Create(ctx context.Context, username, name string) (domain.Artist, error) {
	return m.create(ctx, username, name)
}
func (m *mockArtistServicer) Rename(ctx context.Context, slug, username, name string) (domain.Artist, error) {
	return m.rename(ctx, slug, username, name)
}
func (m *mockArtistServicer) GetBySlug(ctx context.Context, slug string) (domain.Artist, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockArtistServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.Artist, int64, error) {
	return m.list(ctx, p)
}
func (m *mockArtistServicer) Songs(ctx context.Context, slug string) ([]domain.Song, error) {
	return m.songs(ctx, slug)
}

var _ handler.ArtistServicer = (*mockArtistServicer)(nil)

type mockSongServicer struct {
	submit  func(ctx context.Context, sub domain.SongSubmission) (domain.Song, error)
	update  func(ctx context.Context, slug, username string, u domain.SongUpdate) (domain.Song, error)
	get     func(ctx context.Context, slug, username string) (domain.RenderedSong, error)
	delete  func(ctx context.Context, slug, username string) error
	search  func(ctx context.Context, p domain.SearchParams) ([]domain.Song, int64, error)
	popular func(ctx context.Context) ([]domain.Song, error)
	recent  func(ctx context.Context) ([]domain.Song, error)
	stats   func(ctx context.Context) (domain.Stats, error)
}

func (m *mockSongServicer) Submit(ctx context.Context, sub domain.SongSubmission) (domain.Song, error) {
	return m.submit(ctx, sub)
}
func (m *mockSongServicer) Update(ctx context.Context, slug, username string, u domain.SongUpdate) (domain.Song, error) {
	return m.update(ctx, slug, username, u)
}
func (m *mockSongServicer) Get(ctx context.Context, slug, username string) (domain.RenderedSong, error) {
	return m.get(ctx, slug, username)
}
func (m *mockSongServicer) Delete(ctx context.Context, slug, username string) error {
	return m.delete(ctx, slug, username)
}
func (m *mockSongServicer) Search(ctx context.Context, p domain.SearchParams) ([]domain.Song, int64, error) {
	return m.search(ctx, p)
}
func (m *mockSongServicer) Popular(ctx context.Context) ([]domain.Song, error) {
	return m.popular(ctx)
}
func (m *mockSongServicer) Recent(ctx context.Context) ([]domain.Song, error) {
	return m.recent(ctx)
}
func (m *mockSongServicer) Stats(ctx context.Context) (domain.Stats, error) {
	return m.stats(ctx)
}

var _ handler.SongServicer = (*mockSongServicer)(nil)

type mockCommentServicer struct {
	add  func(ctx context.Context, slug, username, body string) (domain.Comment, error)
	list func(ctx context.Context, slug string) ([]domain.Comment, error)
}

func (m *mockCommentServicer) Add(ctx context.Context, slug, username, body string) (domain.Comment, error) {
	return m.add(ctx, slug, username, body)
}
func (m *mockCommentServicer) List(ctx context.Context, slug string) ([]domain.Comment, error) {
	return m.list(ctx, slug)
}

var _ handler.CommentServicer = (*mockCommentServicer)(nil)

type mockBookmarkServicer struct {
	add    func(ctx context.Context, slug, username string) error
	remove func(ctx context.Context, slug, username string) error
	list   func(ctx context.Context, username string) ([]domain.Song, error)
}

func (m *mockBookmarkServicer) Add(ctx context.Context, slug, username string) error {
	return m.add(ctx, slug, username)
}
func (m *mockBookmarkServicer) Remove(ctx context.Context, slug, username string) error {
	return m.remove(ctx, slug, username)
}
func (m *mockBookmarkServicer) List(ctx context.Context, username string) ([]domain.Song, error) {
	return m.list(ctx, username)
}

var _ handler.BookmarkServicer = (*mockBookmarkServicer)(nil)

type mockContactServicer struct {
	send func(ctx context.Context, msg domain.ContactMessage) error
}

func (m *mockContactServicer) Send(ctx context.Context, msg domain.ContactMessage) error {
	return m.send(ctx, msg)
}

var _ handler.ContactServicer = (*mockContactServicer)(nil)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server the way main.go does, minus logging and CORS.
func newHTTPHandler(svc handler.Services) http.Handler {
	srv := handler.NewServer(svc, slog.New(slog.DiscardHandler))
	return middleware.Username(srv.Routes())
}

// do sends a request through h. A non-nil body is JSON-encoded; a non-empty
// user is sent as the identity header.
func do(t *testing.T, h http.Handler, method, target, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(middleware.UsernameHeader, user)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}
