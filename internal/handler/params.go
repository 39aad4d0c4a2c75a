package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/slug"
)

// Page is the envelope of paginated list responses.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination describes the position of a Page in the full result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// List is the envelope of unpaginated list responses.
type List[T any] struct {
	Data []T `json:"data"`
}

func writePage[T any](w http.ResponseWriter, items []T, p domain.PaginationParams, total int64) {
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	writeJSON(w, http.StatusOK, Page[T]{
		Data: items,
		Pagination: Pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      total,
			TotalPages: p.TotalPages(total),
		},
	})
}

// queryParam binds an optional form-style query parameter into dest, which
// must be a pointer to a pointer.
func queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid %s parameter", name)
	}
	return nil
}

// pagination reads ?page= and ?limit=.
func pagination(r *http.Request) (domain.PaginationParams, error) {
	var page, limit *int
	if err := queryParam(r, "page", &page); err != nil {
		return domain.PaginationParams{}, err
	}
	if err := queryParam(r, "limit", &limit); err != nil {
		return domain.PaginationParams{}, err
	}
	return domain.NewPaginationParams(page, limit), nil
}

// decodeBody reads a JSON object into dst. It answers the request itself and
// returns false when the body is unusable.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
			return false
		}
		requestError(w, "request body must be a valid JSON object")
		return false
	}
	return true
}

// slugParam returns the {slug} path parameter. Malformed slugs cannot name
// any stored row, so they are answered 404 here without a database lookup.
func slugParam(w http.ResponseWriter, r *http.Request, what string) (string, bool) {
	sl := chi.URLParam(r, "slug")
	if !slug.Valid(sl) {
		writeError(w, http.StatusNotFound, "not_found", what+" not found")
		return "", false
	}
	return sl, true
}
