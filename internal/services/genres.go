package services

import (
	"context"
	"sync"

	"ibraflix/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// GenreService fetches each genre list once per process and keeps it. A
// failed fetch is remembered as an empty list.
type GenreService struct {
	client *Client
	logger *logrus.Logger

	movieOnce sync.Once
	tvOnce    sync.Once
	movie     []models.Genre
	tv        []models.Genre
}

type AllGenres struct {
	Movies []models.Genre `json:"movies"`
	TV     []models.Genre `json:"tv"`
}

func NewGenreService(client *Client, logger *logrus.Logger) *GenreService {
	return &GenreService{client: client, logger: logger}
}

func (s *GenreService) MovieGenres(ctx context.Context) []models.Genre {
	s.movieOnce.Do(func() {
		s.movie = s.fetch(ctx, models.KindMovie, s.client.MovieGenres)
	})
	return s.movie
}

func (s *GenreService) TVGenres(ctx context.Context) []models.Genre {
	s.tvOnce.Do(func() {
		s.tv = s.fetch(ctx, models.KindTV, s.client.TVGenres)
	})
	return s.tv
}

// All loads both lists concurrently.
func (s *GenreService) All(ctx context.Context) AllGenres {
	var out AllGenres
	var g errgroup.Group
	g.Go(func() error {
		out.Movies = s.MovieGenres(ctx)
		return nil
	})
	g.Go(func() error {
		out.TV = s.TVGenres(ctx)
		return nil
	})
	_ = g.Wait()
	return out
}

// fetch detaches from the caller's cancellation; the result is kept for every
// later caller, so only upstream failures may be remembered.
func (s *GenreService) fetch(ctx context.Context, kind models.MediaKind, call func(context.Context) (*models.GenreResponse, error)) []models.Genre {
	resp, err := call(context.WithoutCancel(ctx))
	if err != nil {
		s.logger.WithError(err).WithField("kind", kind).Warn("Failed to load genres")
		return []models.Genre{}
	}
	if resp.Genres == nil {
		return []models.Genre{}
	}
	return resp.Genres
}
