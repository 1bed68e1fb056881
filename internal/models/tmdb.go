package models

import "fmt"

type MediaKind string

const (
	KindMovie MediaKind = "movie"
	KindTV    MediaKind = "tv"
	KindAll   MediaKind = "all"
)

// ParseKind accepts "movie" and "tv"; "show" is an alias for tv.
func ParseKind(s string) (MediaKind, error) {
	switch s {
	case "movie":
		return KindMovie, nil
	case "tv", "show":
		return KindTV, nil
	}
	return "", fmt.Errorf("unknown media kind %q", s)
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MediaItem is the common shape of movies and shows in list responses.
type MediaItem struct {
	ID           int       `json:"id"`
	Title        string    `json:"title,omitempty"`
	Name         string    `json:"name,omitempty"`
	Overview     string    `json:"overview"`
	PosterPath   string    `json:"poster_path"`
	BackdropPath string    `json:"backdrop_path"`
	VoteAverage  float64   `json:"vote_average"`
	VoteCount    int       `json:"vote_count"`
	Popularity   float64   `json:"popularity"`
	GenreIDs     []int     `json:"genre_ids,omitempty"`
	Genres       []Genre   `json:"genres,omitempty"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	FirstAirDate string    `json:"first_air_date,omitempty"`
	MediaType    MediaKind `json:"media_type,omitempty"`
}

func (m MediaItem) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	if m.Name != "" {
		return m.Name
	}
	return "Unknown"
}

// Kind falls back to guessing from the title field when the response did not
// carry media_type.
func (m MediaItem) Kind() MediaKind {
	if m.MediaType != "" {
		return m.MediaType
	}
	if m.Title != "" {
		return KindMovie
	}
	return KindTV
}

func (m MediaItem) Year() string {
	date := m.ReleaseDate
	if date == "" {
		date = m.FirstAirDate
	}
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

type ProductionCompany struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path"`
	OriginCountry string `json:"origin_country"`
}

type ProductionCountry struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

type SpokenLanguage struct {
	EnglishName string `json:"english_name"`
	ISO6391     string `json:"iso_639_1"`
	Name        string `json:"name"`
}

type Collection struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

type Movie struct {
	MediaItem
	Runtime             int                 `json:"runtime,omitempty"`
	Budget              int64               `json:"budget,omitempty"`
	Revenue             int64               `json:"revenue,omitempty"`
	ProductionCompanies []ProductionCompany `json:"production_companies,omitempty"`
	ProductionCountries []ProductionCountry `json:"production_countries,omitempty"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages,omitempty"`
	Status              string              `json:"status,omitempty"`
	Tagline             string              `json:"tagline,omitempty"`
	BelongsToCollection *Collection         `json:"belongs_to_collection,omitempty"`
}

// FormattedRuntime renders the runtime as "2h 5m" or "45m".
func (m Movie) FormattedRuntime() string {
	if m.Runtime <= 0 {
		return ""
	}
	hours, minutes := m.Runtime/60, m.Runtime%60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

type TVSeason struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	SeasonNumber int    `json:"season_number"`
	AirDate      string `json:"air_date"`
	EpisodeCount int    `json:"episode_count"`
}

type Creator struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path"`
}

type TVShow struct {
	MediaItem
	EpisodeRunTime   []int               `json:"episode_run_time,omitempty"`
	NumberOfSeasons  int                 `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int                 `json:"number_of_episodes,omitempty"`
	Seasons          []TVSeason          `json:"seasons,omitempty"`
	Networks         []ProductionCompany `json:"networks,omitempty"`
	CreatedBy        []Creator           `json:"created_by,omitempty"`
	Status           string              `json:"status,omitempty"`
	Tagline          string              `json:"tagline,omitempty"`
}

type CastMember struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Character          string `json:"character"`
	ProfilePath        string `json:"profile_path"`
	Order              int    `json:"order"`
	KnownForDepartment string `json:"known_for_department"`
}

type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

type Video struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Size        int    `json:"size"`
	Type        string `json:"type"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"published_at"`
}

type VideosResponse struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

type PaginatedResponse[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

type (
	MovieResponse = PaginatedResponse[MediaItem]
	TVResponse    = PaginatedResponse[MediaItem]
	MediaResponse = PaginatedResponse[MediaItem]
)

type GenreResponse struct {
	Genres []Genre `json:"genres"`
}
