package handler

import (
	"net/http"

	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/middleware"
)

// ArtistRequest is the body of POST /artists and PUT /artists/{slug}.
type ArtistRequest struct {
	Name string `json:"name"`
}

// CreateArtist handles POST /artists.
func (s *Server) CreateArtist(w http.ResponseWriter, r *http.Request) {
	var body ArtistRequest
	if !decodeBody(w, r, &body) {
		return
	}

	artist, err := s.Artists.Create(r.Context(), middleware.UsernameFrom(r.Context()), body.Name)
	if err != nil {
		s.serviceError(w, r, "artist", err)
		return
	}
	w.Header().Set("Location", "/artists/"+artist.Slug)
	writeJSON(w, http.StatusCreated, artist)
}

// ListArtists handles GET /artists.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListArtists(w http.ResponseWriter, r *http.Request) {
	p, err := pagination(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	artists, total, err := s.Artists.List(r.Context(), p)
	if err != nil {
		s.serviceError(w, r, "artist", err)
		return
	}
	writePage(w, artists, p, total)
}

// GetArtist handles GET /artists/{slug}.
func (s *Server) GetArtist(w http.ResponseWriter, r *http.Request) {
	sl, ok := slugParam(w, r, "artist")
	if !ok {
		return
	}
	artist, err := s.Artists.GetBySlug(r.Context(), sl)
	if err != nil {
		s.serviceError(w, r, "artist", err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

// RenameArtist handles PUT /artists/{slug}. The slug in the URL stays valid.
func (s *Server) RenameArtist(w http.ResponseWriter, r *http.Request) {
	sl, ok := slugParam(w, r, "artist")
	if !ok {
		return
	}
	var body ArtistRequest
	if !decodeBody(w, r, &body) {
		return
	}

	artist, err := s.Artists.Rename(r.Context(), sl, middleware.UsernameFrom(r.Context()), body.Name)
	if err != nil {
		s.serviceError(w, r, "artist", err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

// ListArtistSongs handles GET /artists/{slug}/songs.
func (s *Server) ListArtistSongs(w http.ResponseWriter, r *http.Request) {
	sl, ok := slugParam(w, r, "artist")
	if !ok {
		return
	}
	songs, err := s.Artists.Songs(r.Context(), sl)
	if err != nil {
		s.serviceError(w, r, "artist", err)
		return
	}
	writeJSON(w, http.StatusOK, List[domain.Song]{Data: songs})
}
