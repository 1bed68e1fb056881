package services

const (
	appVersion = "1.0.0"
	dataSource = "The Movie Database (TMDb)"
)

type Profile struct {
	WatchlistCount int    `json:"watchlist_count"`
	Version        string `json:"version"`
	DataSource     string `json:"data_source"`
}

// Profile reports watchlist statistics and build information.
func (s *MediaService) Profile() Profile {
	return Profile{
		WatchlistCount: s.watchlist.Count(),
		Version:        appVersion,
		DataSource:     dataSource,
	}
}
