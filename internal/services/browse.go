package services

import (
	"context"
	"fmt"
	"strconv"

	"ibraflix/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// BrowseFilters mirror the browse sidebar. Type is all, movie or tv; Genre is
// a TMDb genre id; Rating is a minimum vote average; Year zero means any.
type BrowseFilters struct {
	Type   models.MediaKind `json:"type"`
	Genre  string           `json:"genre"`
	Rating float64          `json:"rating"`
	Year   int              `json:"year"`
}

type BrowsePage struct {
	Results    []models.MediaItem `json:"results"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}

func (p BrowsePage) HasMore() bool {
	return p.Page < p.TotalPages
}

// Browse runs discover for each requested kind and concatenates movies before
// shows. TotalPages is the largest of the legs. A failing leg is dropped
// unless every leg fails.
func (s *MediaService) Browse(ctx context.Context, filters BrowseFilters, page int) (*BrowsePage, error) {
	if page < 1 {
		page = 1
	}
	wantMovies := filters.Type == "" || filters.Type == models.KindAll || filters.Type == models.KindMovie
	wantTV := filters.Type == "" || filters.Type == models.KindAll || filters.Type == models.KindTV
	if !wantMovies && !wantTV {
		return nil, fmt.Errorf("unknown browse type %q", filters.Type)
	}

	var movies, shows *models.MediaResponse
	var movieErr, tvErr error

	g, gctx := errgroup.WithContext(ctx)
	if wantMovies {
		g.Go(func() error {
			movies, movieErr = s.client.DiscoverMovies(gctx, models.DiscoverFilters{
				WithGenres:         filters.Genre,
				PrimaryReleaseYear: filters.Year,
				VoteAverageGTE:     filters.Rating,
				Page:               page,
			})
			return nil
		})
	}
	if wantTV {
		g.Go(func() error {
			shows, tvErr = s.client.DiscoverTV(gctx, models.TVDiscoverFilters{
				WithGenres:       filters.Genre,
				FirstAirDateYear: filters.Year,
				VoteAverageGTE:   filters.Rating,
				Page:             page,
			})
			return nil
		})
	}
	_ = g.Wait()

	out := &BrowsePage{Results: []models.MediaItem{}, Page: page}
	legs := []struct {
		kind models.MediaKind
		resp *models.MediaResponse
		err  error
		want bool
	}{
		{models.KindMovie, movies, movieErr, wantMovies},
		{models.KindTV, shows, tvErr, wantTV},
	}

	failed := 0
	requested := 0
	for _, leg := range legs {
		if !leg.want {
			continue
		}
		requested++
		if leg.err != nil {
			failed++
			s.logger.WithError(leg.err).WithField("kind", leg.kind).Warn("Discover request failed")
			continue
		}
		for _, item := range leg.resp.Results {
			item.MediaType = leg.kind
			out.Results = append(out.Results, item)
		}
		out.TotalPages = max(out.TotalPages, leg.resp.TotalPages)
	}

	if failed == requested {
		return nil, fmt.Errorf("browse failed: %w", firstErr(movieErr, tvErr))
	}

	s.logger.WithFields(logrus.Fields{
		"type":    filters.Type,
		"page":    page,
		"results": len(out.Results),
	}).Debug("Browse page loaded")
	return out, nil
}

// BrowseSession accumulates pages for one filter set, like the browse view's
// "Load More". It is not safe for concurrent use.
type BrowseSession struct {
	service    *MediaService
	filters    BrowseFilters
	results    []models.MediaItem
	page       int
	totalPages int
}

func (s *MediaService) NewBrowseSession() *BrowseSession {
	return &BrowseSession{service: s, filters: BrowseFilters{Type: models.KindAll}, totalPages: 1}
}

// Apply resets the session to page 1 of filters.
func (b *BrowseSession) Apply(ctx context.Context, filters BrowseFilters) error {
	b.filters = filters
	b.results = nil
	b.page = 0
	b.totalPages = 1
	return b.load(ctx, 1)
}

// LoadMore appends the next page.
func (b *BrowseSession) LoadMore(ctx context.Context) error {
	return b.load(ctx, b.page+1)
}

func (b *BrowseSession) HasMore() bool {
	return b.page < b.totalPages
}

func (b *BrowseSession) Results() []models.MediaItem {
	return b.results
}

func (b *BrowseSession) Page() int {
	return b.page
}

func (b *BrowseSession) load(ctx context.Context, page int) error {
	resp, err := b.service.Browse(ctx, b.filters, page)
	if err != nil {
		return err
	}
	b.results = append(b.results, resp.Results...)
	b.totalPages = max(b.totalPages, resp.TotalPages)
	b.page = page
	return nil
}

// ParseBrowseFilters reads filters from query-string style values.
func ParseBrowseFilters(get func(string) string) (BrowseFilters, int, error) {
	f := BrowseFilters{Type: models.KindAll, Genre: get("genre")}
	if t := get("type"); t != "" && t != string(models.KindAll) {
		kind, err := models.ParseKind(t)
		if err != nil {
			return f, 0, err
		}
		f.Type = kind
	}
	if r := get("rating"); r != "" {
		v, err := strconv.ParseFloat(r, 64)
		if err != nil || v < 0 || v > 10 {
			return f, 0, fmt.Errorf("invalid rating %q", r)
		}
		f.Rating = v
	}
	if y := get("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil || v < 1900 {
			return f, 0, fmt.Errorf("invalid year %q", y)
		}
		f.Year = v
	}
	page := 1
	if p := get("page"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil || v < 1 {
			return f, 0, fmt.Errorf("invalid page %q", p)
		}
		page = v
	}
	return f, page, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
