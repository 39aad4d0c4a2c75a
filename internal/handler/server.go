// Package handler implements the HTTP handlers for the guitarchords API.
// All handlers are methods on Server; they are split into files by resource
// but share the same dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/middleware"
)

// ArtistServicer defines the artist operations the handlers depend on.
// Interfaces live here, in the consumer package, so handler tests can
// inject mocks without a database.
type ArtistServicer interface {
	Create(ctx context.Context, username, name string) (domain.Artist, error)
	Rename(ctx context.Context, slug, username, name string) (domain.Artist, error)
	GetBySlug(ctx context.Context, slug string) (domain.Artist, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Artist, int64, error)
	Songs(ctx context.Context, slug string) ([]domain.Song, error)
}

// SongServicer defines the song operations the handlers depend on.
type SongServicer interface {
	Submit(ctx context.Context, sub domain.SongSubmission) (domain.Song, error)
	Update(ctx context.Context, slug, username string, u domain.SongUpdate) (domain.Song, error)
	Get(ctx context.Context, slug, username string) (domain.RenderedSong, error)
	Delete(ctx context.Context, slug, username string) error
	Search(ctx context.Context, params domain.SearchParams) ([]domain.Song, int64, error)
	Popular(ctx context.Context) ([]domain.Song, error)
	Recent(ctx context.Context) ([]domain.Song, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// CommentServicer defines the comment operations the handlers depend on.
type CommentServicer interface {
	Add(ctx context.Context, songSlug, username, body string) (domain.Comment, error)
	List(ctx context.Context, songSlug string) ([]domain.Comment, error)
}

// BookmarkServicer defines the bookmark operations the handlers depend on.
type BookmarkServicer interface {
	Add(ctx context.Context, songSlug, username string) error
	Remove(ctx context.Context, songSlug, username string) error
	List(ctx context.Context, username string) ([]domain.Song, error)
}

// ContactServicer delivers contact-form messages.
type ContactServicer interface {
	Send(ctx context.Context, msg domain.ContactMessage) error
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services groups the dependencies of Server. Nil services leave their
// routes unmounted.
type Services struct {
	Artists   ArtistServicer
	Songs     SongServicer
	Comments  CommentServicer
	Bookmarks BookmarkServicer
	Contact   ContactServicer
	DB        Pinger
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	Services
	logger *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, logger *slog.Logger) *Server {
	return &Server{Services: svc, logger: logger}
}

// Routes returns a router serving every API endpoint. Cross-cutting
// middleware is applied by the caller, including middleware.Username; routes
// that change state answer 401 without it.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	if s.Artists != nil {
		r.Route("/artists", func(r chi.Router) {
			r.Get("/", s.ListArtists)
			r.Get("/{slug}", s.GetArtist)
			r.Get("/{slug}/songs", s.ListArtistSongs)

			r.With(middleware.RequireUsername).Post("/", s.CreateArtist)
			r.With(middleware.RequireUsername).Put("/{slug}", s.RenameArtist)
		})
	}

	if s.Songs != nil {
		r.Get("/stats", s.GetStats)
		r.Route("/songs", func(r chi.Router) {
			r.Get("/", s.SearchSongs)
			r.Get("/popular", s.PopularSongs)
			r.Get("/recent", s.RecentSongs)
			r.Get("/{slug}", s.GetSong)

			authed := r.With(middleware.RequireUsername)
			authed.Post("/", s.SubmitSong)
			authed.Put("/{slug}", s.UpdateSong)
			authed.Delete("/{slug}", s.DeleteSong)

			if s.Comments != nil {
				r.Get("/{slug}/comments", s.ListComments)
				authed.Post("/{slug}/comments", s.AddComment)
			}
			if s.Bookmarks != nil {
				authed.Put("/{slug}/bookmark", s.AddBookmark)
				authed.Delete("/{slug}/bookmark", s.RemoveBookmark)
			}
		})
	}

	if s.Bookmarks != nil {
		r.With(middleware.RequireUsername).Get("/bookmarks", s.ListBookmarks)
	}
	if s.Contact != nil {
		r.Post("/contact", s.SendContact)
	}
	return r
}
