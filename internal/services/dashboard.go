package services

import (
	"context"
	"math/rand/v2"

	"ibraflix/internal/models"

	"golang.org/x/sync/errgroup"
)

type Dashboard struct {
	Featured       *models.MediaItem  `json:"featured,omitempty"`
	Trending       []models.MediaItem `json:"trending"`
	PopularMovies  []models.MediaItem `json:"popular_movies"`
	TopRatedMovies []models.MediaItem `json:"top_rated_movies"`
	UpcomingMovies []models.MediaItem `json:"upcoming_movies"`
	PopularTV      []models.MediaItem `json:"popular_tv"`
}

// Dashboard loads every home-page row concurrently. A row that fails is left
// empty. Featured is a random trending item that has a backdrop.
func (s *MediaService) Dashboard(ctx context.Context) *Dashboard {
	d := &Dashboard{}

	rows := []struct {
		name string
		dst  *[]models.MediaItem
		load func(context.Context) (*models.MediaResponse, error)
	}{
		{"trending", &d.Trending, func(ctx context.Context) (*models.MediaResponse, error) {
			return s.client.Trending(ctx, models.KindAll, "day")
		}},
		{"popular_movies", &d.PopularMovies, func(ctx context.Context) (*models.MediaResponse, error) {
			return s.client.PopularMovies(ctx, 1)
		}},
		{"top_rated_movies", &d.TopRatedMovies, func(ctx context.Context) (*models.MediaResponse, error) {
			return s.client.TopRatedMovies(ctx, 1)
		}},
		{"upcoming_movies", &d.UpcomingMovies, func(ctx context.Context) (*models.MediaResponse, error) {
			return s.client.UpcomingMovies(ctx, 1)
		}},
		{"popular_tv", &d.PopularTV, func(ctx context.Context) (*models.MediaResponse, error) {
			return s.client.PopularTV(ctx, 1)
		}},
	}

	var g errgroup.Group
	for _, row := range rows {
		g.Go(func() error {
			*row.dst = []models.MediaItem{}
			resp, err := row.load(ctx)
			if err != nil {
				s.logger.WithError(err).WithField("row", row.name).Warn("Failed to load dashboard row")
				return nil
			}
			if resp.Results != nil {
				*row.dst = resp.Results
			}
			return nil
		})
	}
	_ = g.Wait()

	var withBackdrop []models.MediaItem
	for _, item := range d.Trending {
		if item.BackdropPath != "" {
			withBackdrop = append(withBackdrop, item)
		}
	}
	if len(withBackdrop) > 0 {
		featured := withBackdrop[rand.IntN(len(withBackdrop))]
		d.Featured = &featured
	}

	return d
}
