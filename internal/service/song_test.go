package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilstam/guitarchords/internal/cache"
	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/service"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type songHarness struct {
	songs   *mockSongRepo
	artists *mockArtistRepo
	lists   *cache.Memory[[]domain.Song]
	stats   *cache.Memory[domain.Stats]
	svc     *service.SongService
}

func newSongHarness(songs *mockSongRepo, artists *mockArtistRepo) *songHarness {
	if artists == nil {
		artists = echoArtistRepo()
	}
	h := &songHarness{
		songs:   songs,
		artists: artists,
		lists:   cache.NewMemory[[]domain.Song](time.Hour),
		stats:   cache.NewMemory[domain.Stats](time.Hour),
	}
	clock := service.WithClock(func() time.Time { return fixedNow })
	h.svc = service.NewSongService(songs, service.NewArtistService(artists, songs), h.lists, h.stats, clock, asModerator)
	return h
}

func validSubmission() domain.SongSubmission {
	return domain.SongSubmission{
		Title:      "Random Song",
		ArtistName: "Some Artist",
		Genre:      domain.GenrePop,
		Content:    "\n\n@Am@ Lorem\n\n\n\nipsum\n\n",
		Sender:     "alice",
	}
}

func echoSongRepo(taken ...string) *mockSongRepo {
	return &mockSongRepo{
		slugExists: takenSlugs(taken...),
		create: func(_ context.Context, s domain.Song) (domain.Song, error) {
			s.ID = uuid.New()
			return s, nil
		},
		update: func(_ context.Context, s domain.Song) (domain.Song, error) { return s, nil },
	}
}

// ---- Submit ----------------------------------------------------------------

func TestSongService_Submit_Valid(t *testing.T) {
	artists := echoArtistRepo()
	artists.findByName = func(context.Context, string) (domain.Artist, error) {
		return domain.Artist{}, domain.ErrNotFound
	}
	h := newSongHarness(echoSongRepo("random-song"), artists)

	got, err := h.svc.Submit(context.Background(), validSubmission())

	require.NoError(t, err)
	assert.Equal(t, "random-song-1", got.Slug)
	assert.Equal(t, "@Am@ Lorem\n\nipsum", got.Content)
	assert.Equal(t, "alice", got.Sender)
	assert.False(t, got.Published)
	assert.Nil(t, got.PubDate)
	require.NotNil(t, got.ArtistID)
}

func TestSongService_Submit_ExistingArtist(t *testing.T) {
	artistID := uuid.New()
	artists := &mockArtistRepo{
		findByName: func(_ context.Context, name string) (domain.Artist, error) {
			return domain.Artist{ID: artistID, Name: name, Slug: "some-artist"}, nil
		},
	}
	h := newSongHarness(echoSongRepo(), artists)

	got, err := h.svc.Submit(context.Background(), validSubmission())

	require.NoError(t, err)
	require.NotNil(t, got.ArtistID)
	assert.Equal(t, artistID, *got.ArtistID)
}

func TestSongService_Submit_DefaultGenre(t *testing.T) {
	artists := echoArtistRepo()
	artists.findByName = func(context.Context, string) (domain.Artist, error) { return domain.Artist{ID: uuid.New()}, nil }
	h := newSongHarness(echoSongRepo(), artists)
	sub := validSubmission()
	sub.Genre = ""

	got, err := h.svc.Submit(context.Background(), sub)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGenre, got.Genre)
}

func TestSongService_Submit_RequiresSender(t *testing.T) {
	h := newSongHarness(&mockSongRepo{}, &mockArtistRepo{})
	sub := validSubmission()
	sub.Sender = "  "

	_, err := h.svc.Submit(context.Background(), sub)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSongService_Submit_Validation(t *testing.T) {
	tests := map[string]func(*domain.SongSubmission){
		"missing title":  func(s *domain.SongSubmission) { s.Title = " " },
		"missing artist": func(s *domain.SongSubmission) { s.ArtistName = "" },
		"unknown genre":  func(s *domain.SongSubmission) { s.Genre = "XXX" },
		"bad video":      func(s *domain.SongSubmission) { s.Video = "invalid_url" },
		"ftp video":      func(s *domain.SongSubmission) { s.Video = "ftp://example.com/a" },
		"blank content":  func(s *domain.SongSubmission) { s.Content = "\n \n\t\n" },
		"unsluggable":    func(s *domain.SongSubmission) { s.Title = "???" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			artists := echoArtistRepo()
			artists.findByName = func(context.Context, string) (domain.Artist, error) { return domain.Artist{ID: uuid.New()}, nil }
			h := newSongHarness(echoSongRepo(), artists)
			sub := validSubmission()
			mutate(&sub)

			_, err := h.svc.Submit(context.Background(), sub)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

// ---- Update ----------------------------------------------------------------

func TestSongService_Update_PublishStampsDate(t *testing.T) {
	draft := publishedSongFixture("random-song")
	draft.Published = false
	songs := echoSongRepo()
	songs.getBySlug = songsBySlug(draft)
	h := newSongHarness(songs, nil)
	require.NoError(t, h.lists.Set(context.Background(), service.KeyRecent, []domain.Song{}, 0))

	published := true
	got, err := h.svc.Update(context.Background(), "random-song", moderator, domain.SongUpdate{Published: &published})

	require.NoError(t, err)
	assert.True(t, got.Published)
	require.NotNil(t, got.PubDate)
	assert.Equal(t, fixedNow, *got.PubDate)

	_, err = h.lists.Get(context.Background(), service.KeyRecent)
	assert.ErrorIs(t, err, cache.ErrNotFound, "recent list must be invalidated on publish")
}

func TestSongService_Update_UnpublishClearsDate(t *testing.T) {
	song := publishedSongFixture("random-song")
	pd := fixedNow.Add(-time.Hour)
	song.PubDate = &pd
	songs := echoSongRepo()
	songs.getBySlug = songsBySlug(song)
	h := newSongHarness(songs, nil)

	unpublished := false
	got, err := h.svc.Update(context.Background(), "random-song", moderator, domain.SongUpdate{Published: &unpublished})

	require.NoError(t, err)
	assert.False(t, got.Published)
	assert.Nil(t, got.PubDate)
}

func TestSongService_Update_KeepsSlugAndNormalizesContent(t *testing.T) {
	song := publishedSongFixture("random-song")
	pd := fixedNow.Add(-time.Hour)
	song.PubDate = &pd
	songs := echoSongRepo()
	songs.getBySlug = songsBySlug(song)
	h := newSongHarness(songs, nil)

	title := "Another Title"
	content := "  \n\n\tindented\n\n\n\nlorem\n\n"
	got, err := h.svc.Update(context.Background(), "random-song", moderator, domain.SongUpdate{Title: &title, Content: &content})

	require.NoError(t, err)
	assert.Equal(t, "random-song", got.Slug)
	assert.Equal(t, "Another Title", got.Title)
	assert.Equal(t, "\tindented\n\nlorem", got.Content)
	assert.Equal(t, &pd, got.PubDate, "pub date is untouched when already published")
}

func TestSongService_Update_InvalidGenre(t *testing.T) {
	songs := echoSongRepo()
	songs.getBySlug = songsBySlug(publishedSongFixture("random-song"))
	h := newSongHarness(songs, nil)

	g := domain.Genre("NOPE")
	_, err := h.svc.Update(context.Background(), "random-song", moderator, domain.SongUpdate{Genre: &g})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSongService_Update_ModeratorOnly(t *testing.T) {
	tests := map[string]struct {
		user string
		want error
	}{
		"anonymous":     {"", domain.ErrUnauthorized},
		"not moderator": {"alice", domain.ErrForbidden},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newSongHarness(&mockSongRepo{}, nil)
			published := true

			_, err := h.svc.Update(context.Background(), "random-song", tt.user, domain.SongUpdate{Published: &published})
			assert.ErrorIs(t, err, tt.want)

			assert.ErrorIs(t, h.svc.Delete(context.Background(), "random-song", tt.user), tt.want)
		})
	}
}

func TestSongService_Update_UnpublishDropsPopular(t *testing.T) {
	song := publishedSongFixture("random-song")
	songs := echoSongRepo()
	songs.getBySlug = songsBySlug(song)
	h := newSongHarness(songs, nil)
	require.NoError(t, h.lists.Set(context.Background(), service.KeyPopular, []domain.Song{song}, 0))

	unpublished := false
	_, err := h.svc.Update(context.Background(), "random-song", moderator, domain.SongUpdate{Published: &unpublished})

	require.NoError(t, err)
	_, err = h.lists.Get(context.Background(), service.KeyPopular)
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

// ---- Get -------------------------------------------------------------------

func TestSongService_Get_RendersAndRecordsView(t *testing.T) {
	song := publishedSongFixture("random-song")
	song.Content = "@Am@ @G#@\n<b>Lorem</b>"
	var viewed []string
	songs := &mockSongRepo{
		getBySlug: songsBySlug(song),
		recordView: func(_ context.Context, id uuid.UUID, user string) error {
			assert.Equal(t, song.ID, id)
			viewed = append(viewed, user)
			return nil
		},
	}
	h := newSongHarness(songs, nil)

	got, err := h.svc.Get(context.Background(), "random-song", "bob")

	require.NoError(t, err)
	assert.Equal(t,
		`<span class="chord">Am</span> <span class="chord">G#</span>`+"\n&lt;b&gt;Lorem&lt;/b&gt;",
		got.ContentHTML)
	assert.Equal(t, []string{"Am", "G#"}, got.Chords)
	assert.Equal(t, []string{"bob"}, viewed)
}

func TestSongService_Get_AnonymousNotCounted(t *testing.T) {
	songs := &mockSongRepo{getBySlug: songsBySlug(publishedSongFixture("random-song"))}
	h := newSongHarness(songs, nil)

	_, err := h.svc.Get(context.Background(), "random-song", "")

	require.NoError(t, err)
}

func TestSongService_Get_UnpublishedIsNotFound(t *testing.T) {
	draft := publishedSongFixture("draft")
	draft.Published = false
	h := newSongHarness(&mockSongRepo{getBySlug: songsBySlug(draft)}, nil)

	_, err := h.svc.Get(context.Background(), "draft", "bob")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete ----------------------------------------------------------------

func TestSongService_Delete(t *testing.T) {
	var deleted string
	h := newSongHarness(&mockSongRepo{
		delete: func(_ context.Context, slug string) error { deleted = slug; return nil },
	}, nil)
	require.NoError(t, h.stats.Set(context.Background(), service.KeyStats, domain.Stats{PublishedSongs: 1}, 0))

	require.NoError(t, h.svc.Delete(context.Background(), "random-song", moderator))

	assert.Equal(t, "random-song", deleted)
	_, err := h.stats.Get(context.Background(), service.KeyStats)
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestSongService_Delete_DropsPopular(t *testing.T) {
	gone := publishedSongFixture("gone")
	stored := map[string]domain.Song{"gone": gone}
	var popularCalls int
	h := newSongHarness(&mockSongRepo{
		delete: func(_ context.Context, slug string) error { delete(stored, slug); return nil },
		popular: func(context.Context, int) ([]domain.Song, error) {
			popularCalls++
			out := []domain.Song{}
			for _, s := range stored {
				out = append(out, s)
			}
			return out, nil
		},
	}, nil)

	before, err := h.svc.Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, before, 1)

	require.NoError(t, h.svc.Delete(context.Background(), "gone", moderator))

	after, err := h.svc.Popular(context.Background())
	require.NoError(t, err)
	assert.Empty(t, after)
	assert.Equal(t, 2, popularCalls)
}

// ---- Search ----------------------------------------------------------------

func TestSongService_Search_FillsDefaults(t *testing.T) {
	var got domain.SearchParams
	h := newSongHarness(&mockSongRepo{
		search: func(_ context.Context, p domain.SearchParams) ([]domain.Song, int64, error) {
			got = p
			return []domain.Song{}, 0, nil
		},
	}, nil)

	_, _, err := h.svc.Search(context.Background(), domain.SearchParams{Keywords: "lorem"})

	require.NoError(t, err)
	assert.Equal(t, domain.SearchBySong, got.By)
	assert.Equal(t, domain.TabsInclude, got.Tabs)
	assert.Equal(t, domain.SortByName, got.Sort)
	assert.Equal(t, domain.DefaultPageLimit, got.Page.Limit)
}

func TestSongService_Search_RejectsUnknownValues(t *testing.T) {
	tests := map[string]domain.SearchParams{
		"by":    {By: "lyrics"},
		"genre": {Genre: "XXX"},
		"tabs":  {Tabs: "only"},
		"sort":  {Sort: "random"},
	}
	for name, p := range tests {
		t.Run(name, func(t *testing.T) {
			h := newSongHarness(&mockSongRepo{}, nil)

			_, _, err := h.svc.Search(context.Background(), p)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

// ---- Popular / Recent / Stats ----------------------------------------------

func TestSongService_Popular_Cached(t *testing.T) {
	var calls int
	h := newSongHarness(&mockSongRepo{
		popular: func(_ context.Context, limit int) ([]domain.Song, error) {
			calls++
			assert.Equal(t, service.ListingLimit, limit)
			return []domain.Song{publishedSongFixture("a")}, nil
		},
	}, nil)

	for range 2 {
		got, err := h.svc.Popular(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	assert.Equal(t, 1, calls)

	_, err := h.svc.RefreshPopular(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestSongService_Recent_Error(t *testing.T) {
	boom := errors.New("db down")
	h := newSongHarness(&mockSongRepo{
		recent: func(context.Context, int) ([]domain.Song, error) { return nil, boom },
	}, nil)

	_, err := h.svc.Recent(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestSongService_Stats(t *testing.T) {
	artists := &mockArtistRepo{count: func(context.Context) (int64, error) { return 4, nil }}
	h := newSongHarness(&mockSongRepo{
		countPublished:    func(context.Context) (int64, error) { return 10, nil },
		countContributors: func(context.Context) (int64, error) { return 3, nil },
	}, artists)

	got, err := h.svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.Stats{PublishedSongs: 10, Artists: 4, Contributors: 3}, got)
}
