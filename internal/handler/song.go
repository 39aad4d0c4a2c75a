package handler

import (
	"net/http"

	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/middleware"
)

// SubmitSongRequest is the body of POST /songs.
type SubmitSongRequest struct {
	Title   string       `json:"title"`
	Artist  string       `json:"artist"`
	Genre   domain.Genre `json:"genre"`
	Video   string       `json:"video"`
	Tabs    bool         `json:"tabs"`
	Content string       `json:"content"`
}

// UpdateSongRequest is the body of PUT /songs/{slug}. Absent fields are left
// unchanged; the slug cannot be changed.
type UpdateSongRequest struct {
	Title     *string       `json:"title"`
	Genre     *domain.Genre `json:"genre"`
	Video     *string       `json:"video"`
	Tabs      *bool         `json:"tabs"`
	Content   *string       `json:"content"`
	Published *bool         `json:"published"`
}

// SubmitSong handles POST /songs. The submitting user becomes the sender.
func (s *Server) SubmitSong(w http.ResponseWriter, r *http.Request) {
	var body SubmitSongRequest
	if !decodeBody(w, r, &body) {
		return
	}

	song, err := s.Songs.Submit(r.Context(), domain.SongSubmission{
		Title:      body.Title,
		ArtistName: body.Artist,
		Genre:      body.Genre,
		Video:      body.Video,
		Tabs:       body.Tabs,
		Content:    body.Content,
		Sender:     middleware.UsernameFrom(r.Context()),
	})
	if err != nil {
		s.serviceError(w, r, "song", err)
		return
	}
	w.Header().Set("Location", "/songs/"+song.Slug)
	writeJSON(w, http.StatusCreated, song)
}

// SearchSongs handles GET /songs.
// Supports ?q=, ?by=artist|song|user, ?genre=, ?tabs=include|chords_only,
// ?sort=name|popularity|age, ?page= and ?limit=.
func (s *Server) SearchSongs(w http.ResponseWriter, r *http.Request) {
	var q, by, genre, tabs, sort *string
	for name, dest := range map[string]**string{"q": &q, "by": &by, "genre": &genre, "tabs": &tabs, "sort": &sort} {
		if err := queryParam(r, name, dest); err != nil {
			requestError(w, err.Error())
			return
		}
	}
	p, err := pagination(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	params := domain.SearchParams{
		Keywords: deref(q),
		By:       domain.SearchBy(deref(by)),
		Genre:    domain.Genre(deref(genre)),
		Tabs:     domain.TabsFilter(deref(tabs)),
		Sort:     domain.SortBy(deref(sort)),
		Page:     p,
	}
	songs, total, err := s.Songs.Search(r.Context(), params)
	if err != nil {
		s.serviceError(w, r, "song", err)
		return
	}
	writePage(w, songs, p, total)
}

// PopularSongs handles GET /songs/popular.
func (s *Server) PopularSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.Songs.Popular(r.Context())
	if err != nil {
		s.serviceError(w, r, "song", err)
		return
	}
	writeJSON(w, http.StatusOK, List[domain.Song]{Data: songs})
}

// RecentSongs handles GET /songs/recent.
func (s *Server) RecentSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.Songs.Recent(r.Context())
	if err != nil {
		s.serviceError(w, r, "song", err)
		return
	}
	writeJSON(w, http.StatusOK, List[domain.Song]{Data: songs})
}

// GetSong handles GET /songs/{slug}. Signed-in reads count as views.
func (s *Server) GetSong(w http.ResponseWriter, r *http.Request) {
	sl, ok := slugParam(w, r, "song")
	if !ok {
		return
	}
	song, err := s.Songs.Get(r.Context(), sl, middleware.UsernameFrom(r.Context()))
	if err != nil {
		s.serviceError(w, r, "song", err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

// UpdateSong handles PUT /songs/{slug}. Moderators only.
func (s *Server) UpdateSong(w http.ResponseWriter, r *http.Request) {
	sl, ok := slugParam(w, r, "song")
	if !ok {
		return
	}
	var body UpdateSongRequest
	if !decodeBody(w, r, &body) {
		return
	}

	song, err := s.Songs.Update(r.Context(), sl, middleware.UsernameFrom(r.Context()), domain.SongUpdate{
		Title:     body.Title,
		Genre:     body.Genre,
		Video:     body.Video,
		Tabs:      body.Tabs,
		Content:   body.Content,
		Published: body.Published,
	})
	if err != nil {
		s.serviceError(w, r, "song", err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

// DeleteSong handles DELETE /songs/{slug}. Moderators only.
func (s *Server) DeleteSong(w http.ResponseWriter, r *http.Request) {
	sl, ok := slugParam(w, r, "song")
	if !ok {
		return
	}
	if err := s.Songs.Delete(r.Context(), sl, middleware.UsernameFrom(r.Context())); err != nil {
		s.serviceError(w, r, "song", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
