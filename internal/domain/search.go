package domain

// SearchBy selects which field the keywords of a song search match.
type SearchBy string

// Search targets.
const (
	SearchByArtist SearchBy = "artist"
	SearchBySong   SearchBy = "song"
	SearchByUser   SearchBy = "user"
)

// TabsFilter restricts searches by whether a song includes tablatures.
type TabsFilter string

// Tabs filters.
const (
	TabsInclude    TabsFilter = "include"
	TabsChordsOnly TabsFilter = "chords_only"
)

// SortBy orders search results.
type SortBy string

// Sort orders.
const (
	SortByName       SortBy = "name"
	SortByPopularity SortBy = "popularity"
	SortByAge        SortBy = "age"
)

// SearchParams carries a song search from the HTTP layer to the repo layer.
// Zero values mean "no filter": empty Genre matches every genre and empty
// Keywords matches every song. Only published songs are ever returned.
type SearchParams struct {
	Keywords string
	By       SearchBy
	Genre    Genre
	Tabs     TabsFilter
	Sort     SortBy
	Page     PaginationParams
}

// Stats are the site-wide counters shown on the front page.
type Stats struct {
	PublishedSongs int64 `json:"published_songs"`
	Artists        int64 `json:"artists"`
	Contributors   int64 `json:"contributors"`
}
