package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ilstam/guitarchords/internal/domain"
)

func intPtr(i int) *int { return &i }

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name        string
		page, limit *int
		want        domain.PaginationParams
	}{
		{name: "defaults", want: domain.PaginationParams{Page: 1, Limit: 20}},
		{name: "explicit", page: intPtr(3), limit: intPtr(10), want: domain.PaginationParams{Page: 3, Limit: 10}},
		{name: "limit capped", limit: intPtr(500), want: domain.PaginationParams{Page: 1, Limit: 100}},
		{name: "non-positive ignored", page: intPtr(0), limit: intPtr(-4), want: domain.PaginationParams{Page: 1, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NewPaginationParams(tt.page, tt.limit))
		})
	}
}

func TestPaginationParams_OffsetAndTotalPages(t *testing.T) {
	p := domain.PaginationParams{Page: 3, Limit: 20}

	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(20))
	assert.Equal(t, 2, p.TotalPages(21))
}

func TestGenre(t *testing.T) {
	assert.True(t, domain.GenreRock.Valid())
	assert.Equal(t, "Rock", domain.GenreRock.Label())
	assert.False(t, domain.Genre("XYZ").Valid())
	assert.Equal(t, "XYZ", domain.Genre("XYZ").Label())
	assert.Equal(t, domain.GenreEntexno, domain.DefaultGenre)
}

func TestSong_FullTitle(t *testing.T) {
	assert.Equal(t, "Some Artist - Random Song", domain.Song{Title: "Random Song", ArtistName: "Some Artist"}.FullTitle())
	assert.Equal(t, "Random Song", domain.Song{Title: "Random Song"}.FullTitle())
}
