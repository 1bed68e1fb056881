package models

import (
	"net/url"
	"strconv"
)

// DiscoverFilters are the /discover/movie query parameters. Zero values are
// left out of the request.
type DiscoverFilters struct {
	WithGenres            string
	PrimaryReleaseYear    int
	PrimaryReleaseDateGTE string
	PrimaryReleaseDateLTE string
	VoteAverageGTE        float64
	VoteAverageLTE        float64
	SortBy                string
	Page                  int
}

func (f DiscoverFilters) Values() url.Values {
	v := url.Values{}
	setString(v, "with_genres", f.WithGenres)
	setInt(v, "primary_release_year", f.PrimaryReleaseYear)
	setString(v, "primary_release_date.gte", f.PrimaryReleaseDateGTE)
	setString(v, "primary_release_date.lte", f.PrimaryReleaseDateLTE)
	setFloat(v, "vote_average.gte", f.VoteAverageGTE)
	setFloat(v, "vote_average.lte", f.VoteAverageLTE)
	setString(v, "sort_by", f.SortBy)
	setInt(v, "page", f.Page)
	return v
}

// TVDiscoverFilters are the /discover/tv query parameters.
type TVDiscoverFilters struct {
	WithGenres       string
	FirstAirDateYear int
	FirstAirDateGTE  string
	FirstAirDateLTE  string
	VoteAverageGTE   float64
	VoteAverageLTE   float64
	SortBy           string
	Page             int
}

func (f TVDiscoverFilters) Values() url.Values {
	v := url.Values{}
	setString(v, "with_genres", f.WithGenres)
	setInt(v, "first_air_date_year", f.FirstAirDateYear)
	setString(v, "first_air_date.gte", f.FirstAirDateGTE)
	setString(v, "first_air_date.lte", f.FirstAirDateLTE)
	setFloat(v, "vote_average.gte", f.VoteAverageGTE)
	setFloat(v, "vote_average.lte", f.VoteAverageLTE)
	setString(v, "sort_by", f.SortBy)
	setInt(v, "page", f.Page)
	return v
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setInt(v url.Values, key string, value int) {
	if value != 0 {
		v.Set(key, strconv.Itoa(value))
	}
}

func setFloat(v url.Values, key string, value float64) {
	if value != 0 {
		v.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
	}
}
