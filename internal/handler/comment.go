package handler

import (
	"net/http"

	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/middleware"
)

// CommentRequest is the body of POST /songs/{slug}/comments.
type CommentRequest struct {
	Body string `json:"body"`
}

// ListComments handles GET /songs/{slug}/comments.
func (s *Server) ListComments(w http.ResponseWriter, r *http.Request) {
	sl, ok := slugParam(w, r, "song")
	if !ok {
		return
	}
	comments, err := s.Comments.List(r.Context(), sl)
	if err != nil {
		s.serviceError(w, r, "song", err)
		return
	}
	writeJSON(w, http.StatusOK, List[domain.Comment]{Data: comments})
}

// AddComment handles POST /songs/{slug}/comments.
func (s *Server) AddComment(w http.ResponseWriter, r *http.Request) {
	sl, ok := slugParam(w, r, "song")
	if !ok {
		return
	}
	var body CommentRequest
	if !decodeBody(w, r, &body) {
		return
	}

	user := middleware.UsernameFrom(r.Context())
	comment, err := s.Comments.Add(r.Context(), sl, user, body.Body)
	if err != nil {
		s.serviceError(w, r, "song", err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// AddBookmark handles PUT /songs/{slug}/bookmark.
func (s *Server) AddBookmark(w http.ResponseWriter, r *http.Request) {
	sl, ok := slugParam(w, r, "song")
	if !ok {
		return
	}
	user := middleware.UsernameFrom(r.Context())
	if err := s.Bookmarks.Add(r.Context(), sl, user); err != nil {
		s.serviceError(w, r, "song", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveBookmark handles DELETE /songs/{slug}/bookmark.
func (s *Server) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	sl, ok := slugParam(w, r, "bookmark")
	if !ok {
		return
	}
	user := middleware.UsernameFrom(r.Context())
	if err := s.Bookmarks.Remove(r.Context(), sl, user); err != nil {
		s.serviceError(w, r, "bookmark", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBookmarks handles GET /bookmarks for the signed-in user.
func (s *Server) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	songs, err := s.Bookmarks.List(r.Context(), middleware.UsernameFrom(r.Context()))
	if err != nil {
		s.serviceError(w, r, "bookmark", err)
		return
	}
	writeJSON(w, http.StatusOK, List[domain.Song]{Data: songs})
}
