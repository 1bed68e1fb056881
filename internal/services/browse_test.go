package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"ibraflix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discoverHandler(t *testing.T, totalPages int, prefix string, check func(url.Values)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if check != nil {
			check(q)
		}
		p, err := strconv.Atoi(q.Get("page"))
		assert.NoError(t, err)
		writeJSON(w, models.MediaResponse{
			Page: p,
			Results: []models.MediaItem{
				{ID: p*100 + 1, Title: prefix + strconv.Itoa(p)},
			},
			TotalPages: totalPages,
		})
	}
}

func TestBrowseAllConcatenatesMoviesThenShows(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/discover/movie", discoverHandler(t, 2, "movie-", func(q url.Values) {
		assert.Equal(t, "18", q.Get("with_genres"))
		assert.Equal(t, "7", q.Get("vote_average.gte"))
		assert.Equal(t, "2020", q.Get("primary_release_year"))
	}))
	mux.HandleFunc("/discover/tv", discoverHandler(t, 4, "tv-", func(q url.Values) {
		assert.Equal(t, "2020", q.Get("first_air_date_year"))
		assert.False(t, q.Has("primary_release_year"))
	}))
	svc, _ := newTestMediaService(t, mux)

	got, err := svc.Browse(context.Background(), BrowseFilters{Type: models.KindAll, Genre: "18", Rating: 7, Year: 2020}, 1)
	require.NoError(t, err)

	require.Len(t, got.Results, 2)
	assert.Equal(t, "movie-1", got.Results[0].Title)
	assert.Equal(t, models.KindMovie, got.Results[0].MediaType)
	assert.Equal(t, "tv-1", got.Results[1].Title)
	assert.Equal(t, models.KindTV, got.Results[1].MediaType)
	assert.Equal(t, 4, got.TotalPages)
	assert.True(t, got.HasMore())
}

func TestBrowseSingleKind(t *testing.T) {
	fake := newFakeTMDb()
	fake.mux.HandleFunc("/discover/tv", discoverHandler(t, 1, "tv-", nil))
	svc, _ := newTestMediaService(t, fake)

	got, err := svc.Browse(context.Background(), BrowseFilters{Type: models.KindTV}, 1)
	require.NoError(t, err)
	assert.Len(t, got.Results, 1)
	assert.Zero(t, fake.Hits("/discover/movie"))
	assert.False(t, got.HasMore())
}

func TestBrowseSkipsFailedLeg(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/discover/movie", discoverHandler(t, 3, "movie-", nil))
	mux.HandleFunc("/discover/tv", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	svc, _ := newTestMediaService(t, mux)

	got, err := svc.Browse(context.Background(), BrowseFilters{}, 1)
	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	assert.Equal(t, 3, got.TotalPages)
}

func TestBrowseFailsWhenEveryLegFails(t *testing.T) {
	fake := newFakeTMDb()
	fake.Status("/discover/movie", http.StatusBadRequest)
	svc, _ := newTestMediaService(t, fake)

	_, err := svc.Browse(context.Background(), BrowseFilters{Type: models.KindMovie}, 1)
	assert.Error(t, err)
}

func TestBrowseSessionLoadsMorePages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/discover/movie", discoverHandler(t, 2, "movie-", nil))
	mux.HandleFunc("/discover/tv", discoverHandler(t, 1, "tv-", nil))
	svc, _ := newTestMediaService(t, mux)
	ctx := context.Background()

	session := svc.NewBrowseSession()
	require.NoError(t, session.Apply(ctx, BrowseFilters{Type: models.KindAll}))
	assert.Len(t, session.Results(), 2)
	assert.True(t, session.HasMore())

	require.NoError(t, session.LoadMore(ctx))
	assert.Equal(t, 2, session.Page())
	assert.Len(t, session.Results(), 4)
	assert.False(t, session.HasMore())

	require.NoError(t, session.Apply(ctx, BrowseFilters{Type: models.KindMovie}))
	assert.Equal(t, 1, session.Page())
	assert.Len(t, session.Results(), 1)
}

func TestParseBrowseFilters(t *testing.T) {
	values := url.Values{"type": {"tv"}, "genre": {"16"}, "rating": {"6.5"}, "year": {"2001"}, "page": {"3"}}
	f, p, err := ParseBrowseFilters(values.Get)
	require.NoError(t, err)
	assert.Equal(t, BrowseFilters{Type: models.KindTV, Genre: "16", Rating: 6.5, Year: 2001}, f)
	assert.Equal(t, 3, p)

	f, p, err = ParseBrowseFilters(url.Values{}.Get)
	require.NoError(t, err)
	assert.Equal(t, models.KindAll, f.Type)
	assert.Equal(t, 1, p)

	for _, bad := range []url.Values{
		{"type": {"book"}},
		{"rating": {"11"}},
		{"year": {"abc"}},
		{"page": {"0"}},
	} {
		_, _, err := ParseBrowseFilters(bad.Get)
		assert.Error(t, err, bad.Encode())
	}
}
