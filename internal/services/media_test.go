package services

import (
	"context"
	"net/http"
	"testing"

	"ibraflix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchBlankQueryMakesNoRequest(t *testing.T) {
	fake := newFakeTMDb()
	svc, _ := newTestMediaService(t, fake)

	got := svc.Search(context.Background(), "  ")
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, fake.Hits("/search/multi"))
}

func TestSearchErrorReadsAsNoResults(t *testing.T) {
	fake := newFakeTMDb()
	fake.Status("/search/multi", http.StatusUnauthorized)
	svc, _ := newTestMediaService(t, fake)

	assert.Empty(t, svc.Search(context.Background(), "dune"))
}

func TestSearchReturnsMixedResults(t *testing.T) {
	fake := newFakeTMDb()
	fake.JSON("/search/multi", page(1,
		models.MediaItem{ID: 438631, Title: "Dune", MediaType: models.KindMovie},
		models.MediaItem{ID: 90228, Name: "Dune: Prophecy", MediaType: models.KindTV},
	))
	svc, _ := newTestMediaService(t, fake)

	got := svc.Search(context.Background(), " dune ")
	require.Len(t, got, 2)
	assert.Equal(t, models.KindTV, got[1].Kind())
}

func TestDashboardLoadsRowsAndPicksFeatured(t *testing.T) {
	fake := newFakeTMDb()
	fake.JSON("/trending/all/day", page(1,
		models.MediaItem{ID: 1, Title: "No backdrop"},
		models.MediaItem{ID: 2, Title: "Backdrop", BackdropPath: "/b.jpg"},
	))
	fake.JSON("/movie/popular", page(1, models.MediaItem{ID: 3, Title: "Popular"}))
	fake.JSON("/movie/top_rated", page(1, models.MediaItem{ID: 4, Title: "Top"}))
	fake.Status("/movie/upcoming", http.StatusNotFound)
	fake.JSON("/tv/popular", page(1, models.MediaItem{ID: 5, Name: "Show"}))
	svc, _ := newTestMediaService(t, fake)

	d := svc.Dashboard(context.Background())

	require.NotNil(t, d.Featured)
	assert.Equal(t, 2, d.Featured.ID)
	assert.Len(t, d.Trending, 2)
	assert.Len(t, d.PopularMovies, 1)
	assert.Len(t, d.TopRatedMovies, 1)
	assert.NotNil(t, d.UpcomingMovies)
	assert.Empty(t, d.UpcomingMovies)
	assert.Equal(t, "Show", d.PopularTV[0].Name)
}

func TestDetailsForMovie(t *testing.T) {
	cast := make([]models.CastMember, 15)
	for i := range cast {
		cast[i] = models.CastMember{ID: i, Name: "Actor", Order: i}
	}

	fake := newFakeTMDb()
	fake.JSON("/movie/550", models.Movie{MediaItem: models.MediaItem{ID: 550, Title: "Fight Club"}, Runtime: 139})
	fake.JSON("/movie/550/credits", models.Credits{Cast: cast})
	fake.JSON("/movie/550/videos", models.VideosResponse{Results: []models.Video{
		{Key: "teaser", Site: "YouTube", Type: "Teaser"},
		{Key: "vimeo", Site: "Vimeo", Type: "Trailer"},
		{Key: "yt", Site: "YouTube", Type: "Trailer"},
	}})
	fake.JSON("/movie/550/similar", page(1, models.MediaItem{ID: 807, Title: "Se7en"}))
	svc, store := newTestMediaService(t, fake)
	ctx := context.Background()

	store.Insert(ctx, models.MediaItem{ID: 550, Title: "Fight Club"})

	d, err := svc.Details(ctx, models.KindMovie, 550)
	require.NoError(t, err)

	assert.Equal(t, "Fight Club", d.Item.Title)
	assert.Equal(t, models.KindMovie, d.Item.MediaType)
	assert.Equal(t, 139, d.Movie.Runtime)
	assert.Nil(t, d.TV)
	assert.Len(t, d.Cast, maxCast)
	require.NotNil(t, d.Trailer)
	assert.Equal(t, "yt", d.Trailer.Key)
	assert.Equal(t, "Se7en", d.Similar[0].Title)
	assert.True(t, d.InWatchlist)
}

func TestDetailsSideRequestsAreBestEffort(t *testing.T) {
	fake := newFakeTMDb()
	fake.JSON("/tv/1396", models.TVShow{MediaItem: models.MediaItem{ID: 1396, Name: "Breaking Bad"}, NumberOfSeasons: 5})
	svc, _ := newTestMediaService(t, fake)

	d, err := svc.Details(context.Background(), models.KindTV, 1396)
	require.NoError(t, err)

	assert.Equal(t, 5, d.TV.NumberOfSeasons)
	assert.Empty(t, d.Cast)
	assert.Nil(t, d.Trailer)
	assert.Empty(t, d.Similar)
	assert.False(t, d.InWatchlist)
}

func TestDetailsFailsWithoutRecord(t *testing.T) {
	fake := newFakeTMDb()
	fake.Status("/movie/1", http.StatusNotFound)
	svc, _ := newTestMediaService(t, fake)

	_, err := svc.Details(context.Background(), models.KindMovie, 1)
	assert.Error(t, err)

	_, err = svc.Details(context.Background(), models.KindMovie, 0)
	assert.Error(t, err)
}

func TestToggleWatchlist(t *testing.T) {
	svc, store := newTestMediaService(t, newFakeTMDb())
	ctx := context.Background()
	item := models.MediaItem{ID: 9, Title: "Nine"}

	assert.True(t, svc.ToggleWatchlist(ctx, item))
	assert.Equal(t, 1, store.Count())

	assert.False(t, svc.ToggleWatchlist(ctx, item))
	assert.Equal(t, 0, store.Count())
}

func TestProfileTracksWatchlist(t *testing.T) {
	svc, store := newTestMediaService(t, newFakeTMDb())
	assert.Equal(t, 0, svc.Profile().WatchlistCount)

	store.Insert(context.Background(), models.MediaItem{ID: 1, Title: "One"})
	profile := svc.Profile()
	assert.Equal(t, 1, profile.WatchlistCount)
	assert.Equal(t, "1.0.0", profile.Version)
}
