package services

import (
	"context"
	"fmt"

	"ibraflix/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const maxCast = 10

type Details struct {
	Item        models.MediaItem    `json:"item"`
	Movie       *models.Movie       `json:"movie,omitempty"`
	TV          *models.TVShow      `json:"tv,omitempty"`
	Cast        []models.CastMember `json:"cast"`
	Trailer     *models.Video       `json:"trailer,omitempty"`
	Similar     []models.MediaItem  `json:"similar"`
	InWatchlist bool                `json:"in_watchlist"`
}

// Details loads a title. Only the detail record itself is required; cast,
// trailer and similar titles are best-effort.
func (s *MediaService) Details(ctx context.Context, kind models.MediaKind, id int) (*Details, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid media id %d", id)
	}

	d := &Details{Cast: []models.CastMember{}, Similar: []models.MediaItem{}}
	switch kind {
	case models.KindMovie:
		movie, err := s.client.MovieDetails(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load movie %d: %w", id, err)
		}
		d.Movie = movie
		d.Item = movie.MediaItem
	case models.KindTV:
		show, err := s.client.TVDetails(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load show %d: %w", id, err)
		}
		d.TV = show
		d.Item = show.MediaItem
	default:
		return nil, fmt.Errorf("unknown media kind %q", kind)
	}
	d.Item.MediaType = kind
	d.InWatchlist = s.watchlist.Contains(id)

	log := s.logger.WithFields(logrus.Fields{"kind": kind, "id": id})

	var g errgroup.Group
	g.Go(func() error {
		credits, err := s.credits(ctx, kind, id)
		if err != nil {
			log.WithError(err).Warn("Failed to load cast")
			return nil
		}
		cast := credits.Cast
		if len(cast) > maxCast {
			cast = cast[:maxCast]
		}
		if cast != nil {
			d.Cast = cast
		}
		return nil
	})
	g.Go(func() error {
		videos, err := s.videos(ctx, kind, id)
		if err != nil {
			log.WithError(err).Warn("Failed to load videos")
			return nil
		}
		d.Trailer = pickTrailer(videos.Results)
		return nil
	})
	g.Go(func() error {
		similar, err := s.similar(ctx, kind, id)
		if err != nil {
			log.WithError(err).Warn("Failed to load similar titles")
			return nil
		}
		if similar.Results != nil {
			d.Similar = similar.Results
		}
		return nil
	})
	_ = g.Wait()

	return d, nil
}

// ToggleWatchlist removes item when present and adds it otherwise. It
// reports whether item is in the watchlist afterwards.
func (s *MediaService) ToggleWatchlist(ctx context.Context, item models.MediaItem) bool {
	if s.watchlist.Contains(item.ID) {
		s.watchlist.Remove(ctx, item.ID)
	} else {
		s.watchlist.Insert(ctx, item)
	}
	return s.watchlist.Contains(item.ID)
}

func (s *MediaService) credits(ctx context.Context, kind models.MediaKind, id int) (*models.Credits, error) {
	if kind == models.KindMovie {
		return s.client.MovieCredits(ctx, id)
	}
	return s.client.TVCredits(ctx, id)
}

func (s *MediaService) videos(ctx context.Context, kind models.MediaKind, id int) (*models.VideosResponse, error) {
	if kind == models.KindMovie {
		return s.client.MovieVideos(ctx, id)
	}
	return s.client.TVVideos(ctx, id)
}

func (s *MediaService) similar(ctx context.Context, kind models.MediaKind, id int) (*models.MediaResponse, error) {
	if kind == models.KindMovie {
		return s.client.SimilarMovies(ctx, id, 1)
	}
	return s.client.SimilarTV(ctx, id, 1)
}

// pickTrailer returns the first YouTube trailer, if any.
func pickTrailer(videos []models.Video) *models.Video {
	for i := range videos {
		if videos[i].Type == "Trailer" && videos[i].Site == "YouTube" {
			v := videos[i]
			return &v
		}
	}
	return nil
}
