package watchlist

import (
	"testing"

	"ibraflix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePreservesOrder(t *testing.T) {
	lists := [][]models.WatchlistEntry{
		{},
		{{MediaItem: models.MediaItem{ID: 1, Title: "A", PosterPath: "/a.jpg", VoteAverage: 8.2, Popularity: 12.5, MediaType: models.KindMovie}, AddedAt: 1}},
		{
			{MediaItem: models.MediaItem{ID: 3, Name: "C", FirstAirDate: "2020-01-01", GenreIDs: []int{18, 80}, MediaType: models.KindTV}, AddedAt: 30},
			{MediaItem: models.MediaItem{ID: 1, Title: "A", ReleaseDate: "1999-03-31"}, AddedAt: 10},
			{MediaItem: models.MediaItem{ID: 2, Title: "B", BackdropPath: "/b.jpg"}, AddedAt: 20},
		},
	}

	for _, list := range lists {
		data, err := Encode(list)
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, list, got)
	}
}

func TestEncodeNil(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestDecodeToleratesMissingFields(t *testing.T) {
	got, err := Decode([]byte(`[{"id": 5, "title": "Old"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].ID)
	assert.Zero(t, got[0].AddedAt)
	assert.Empty(t, got[0].MediaType)
}

func TestDecodeStoredShape(t *testing.T) {
	raw := `[{"id":1,"title":"A","overview":"","poster_path":null,"backdrop_path":"/b.jpg","vote_average":7,"vote_count":10,"popularity":3.5,"media_type":"movie","added_at":1700000000000}]`
	got, err := Decode([]byte(raw))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1700000000000), got[0].AddedAt)
	assert.Equal(t, "", got[0].PosterPath)
	assert.Equal(t, models.KindMovie, got[0].MediaType)
}
