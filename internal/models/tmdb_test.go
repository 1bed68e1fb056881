package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaItemDisplayHelpers(t *testing.T) {
	tests := []struct {
		name  string
		item  MediaItem
		title string
		kind  MediaKind
		year  string
	}{
		{"movie", MediaItem{Title: "Dune", ReleaseDate: "2021-09-15"}, "Dune", KindMovie, "2021"},
		{"show", MediaItem{Name: "Dark", FirstAirDate: "2017-12-01"}, "Dark", KindTV, "2017"},
		{"tagged", MediaItem{Title: "Odd", MediaType: KindTV}, "Odd", KindTV, ""},
		{"empty", MediaItem{}, "Unknown", KindTV, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.title, tt.item.DisplayTitle())
			assert.Equal(t, tt.kind, tt.item.Kind())
			assert.Equal(t, tt.year, tt.item.Year())
		})
	}
}

func TestFormattedRuntime(t *testing.T) {
	assert.Equal(t, "2h 5m", Movie{Runtime: 125}.FormattedRuntime())
	assert.Equal(t, "45m", Movie{Runtime: 45}.FormattedRuntime())
	assert.Equal(t, "", Movie{}.FormattedRuntime())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("show")
	assert.NoError(t, err)
	assert.Equal(t, KindTV, k)

	_, err = ParseKind("book")
	assert.Error(t, err)
}

func TestDiscoverFiltersOmitZeroValues(t *testing.T) {
	v := DiscoverFilters{WithGenres: "28", VoteAverageGTE: 7.5, Page: 2}.Values()
	assert.Equal(t, "28", v.Get("with_genres"))
	assert.Equal(t, "7.5", v.Get("vote_average.gte"))
	assert.Equal(t, "2", v.Get("page"))
	assert.False(t, v.Has("primary_release_year"))
	assert.False(t, v.Has("sort_by"))

	tv := TVDiscoverFilters{FirstAirDateYear: 2019}.Values()
	assert.Equal(t, "2019", tv.Get("first_air_date_year"))
	assert.Len(t, tv, 1)
}
