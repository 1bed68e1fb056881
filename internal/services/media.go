package services

import (
	"ibraflix/internal/watchlist"

	"github.com/sirupsen/logrus"
)

// MediaService backs the browse, search, dashboard and details views.
type MediaService struct {
	client    *Client
	genres    *GenreService
	watchlist *watchlist.Store
	logger    *logrus.Logger
}

func NewMediaService(client *Client, genres *GenreService, store *watchlist.Store, logger *logrus.Logger) *MediaService {
	return &MediaService{
		client:    client,
		genres:    genres,
		watchlist: store,
		logger:    logger,
	}
}

func (s *MediaService) Client() *Client {
	return s.client
}

func (s *MediaService) Genres() *GenreService {
	return s.genres
}

func (s *MediaService) Watchlist() *watchlist.Store {
	return s.watchlist
}
