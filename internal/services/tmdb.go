package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ibraflix/internal/metrics"
	"ibraflix/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	tmdbAPIURL         = "https://api.themoviedb.org/3"
	tmdbImageURL       = "https://image.tmdb.org/t/p"
	defaultTimeout     = 30 * time.Second
	defaultRateLimit   = 20
	maxRetries         = 3
	retryDelay         = 2 * time.Second
	userAgent          = "Ibraflix/1.0"
	maxResponseSize    = 5 * 1024 * 1024
	catalogCachePrefix = "tmdb:"
	listCacheTTL       = 4 * time.Hour
	detailsCacheTTL    = 24 * time.Hour
)

// ErrEmptyQuery is returned by the search calls for a blank query.
var ErrEmptyQuery = errors.New("search query cannot be empty")

// APIError is a non-200 answer from TMDb.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("TMDb API returned status code %d for %s", e.StatusCode, e.URL)
}

func (e *APIError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client talks to the TMDb v3 API.
type Client struct {
	baseURL     string
	imageURL    string
	accessToken string
	userAgent   string
	maxRetries  int
	retryDelay  time.Duration
	httpClient  *http.Client
	logger      *logrus.Logger
	limiter     *rate.Limiter
	redis       *redis.Client
}

type ClientConfig struct {
	BaseURL     string
	ImageURL    string
	AccessToken string
	Timeout     time.Duration
	// RateLimit is requests per second; zero or less disables limiting.
	RateLimit  float64
	MaxRetries int
	RetryDelay time.Duration
	UserAgent  string
	Logger     *logrus.Logger
	Redis      *redis.Client
}

func NewClient(accessToken string) *Client {
	return NewClientWithConfig(&ClientConfig{
		BaseURL:     tmdbAPIURL,
		ImageURL:    tmdbImageURL,
		AccessToken: accessToken,
		Timeout:     defaultTimeout,
		RateLimit:   defaultRateLimit,
		MaxRetries:  maxRetries,
		RetryDelay:  retryDelay,
		UserAgent:   userAgent,
		Logger:      logrus.New(),
	})
}

func NewClientWithConfig(config *ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.BaseURL == "" {
		config.BaseURL = tmdbAPIURL
	}
	if config.ImageURL == "" {
		config.ImageURL = tmdbImageURL
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 1
	}
	if config.UserAgent == "" {
		config.UserAgent = userAgent
	}

	limit := rate.Inf
	if config.RateLimit > 0 {
		limit = rate.Limit(config.RateLimit)
	}

	return &Client{
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		imageURL:    strings.TrimRight(config.ImageURL, "/"),
		accessToken: config.AccessToken,
		userAgent:   config.UserAgent,
		maxRetries:  config.MaxRetries,
		retryDelay:  config.RetryDelay,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger:  config.Logger,
		limiter: rate.NewLimiter(limit, 1),
		redis:   config.Redis,
	}
}

// Trending

func (c *Client) Trending(ctx context.Context, kind models.MediaKind, window string) (*models.MediaResponse, error) {
	if kind == "" {
		kind = models.KindAll
	}
	if window != "week" {
		window = "day"
	}
	var out models.MediaResponse
	path := fmt.Sprintf("/trending/%s/%s", kind, window)
	return &out, c.get(ctx, "trending", path, nil, listCacheTTL, &out)
}

// Movies

func (c *Client) PopularMovies(ctx context.Context, page int) (*models.MovieResponse, error) {
	return c.list(ctx, "movie_popular", "/movie/popular", page)
}

func (c *Client) TopRatedMovies(ctx context.Context, page int) (*models.MovieResponse, error) {
	return c.list(ctx, "movie_top_rated", "/movie/top_rated", page)
}

func (c *Client) UpcomingMovies(ctx context.Context, page int) (*models.MovieResponse, error) {
	return c.list(ctx, "movie_upcoming", "/movie/upcoming", page)
}

func (c *Client) MovieDetails(ctx context.Context, id int) (*models.Movie, error) {
	var out models.Movie
	return &out, c.get(ctx, "movie_details", fmt.Sprintf("/movie/%d", id), nil, detailsCacheTTL, &out)
}

func (c *Client) MovieCredits(ctx context.Context, id int) (*models.Credits, error) {
	return c.credits(ctx, models.KindMovie, id)
}

func (c *Client) MovieVideos(ctx context.Context, id int) (*models.VideosResponse, error) {
	return c.videos(ctx, models.KindMovie, id)
}

func (c *Client) SimilarMovies(ctx context.Context, id, page int) (*models.MovieResponse, error) {
	return c.list(ctx, "movie_similar", fmt.Sprintf("/movie/%d/similar", id), page)
}

func (c *Client) MovieRecommendations(ctx context.Context, id, page int) (*models.MovieResponse, error) {
	return c.list(ctx, "movie_recommendations", fmt.Sprintf("/movie/%d/recommendations", id), page)
}

// TV

func (c *Client) PopularTV(ctx context.Context, page int) (*models.TVResponse, error) {
	return c.list(ctx, "tv_popular", "/tv/popular", page)
}

func (c *Client) TopRatedTV(ctx context.Context, page int) (*models.TVResponse, error) {
	return c.list(ctx, "tv_top_rated", "/tv/top_rated", page)
}

func (c *Client) TVDetails(ctx context.Context, id int) (*models.TVShow, error) {
	var out models.TVShow
	return &out, c.get(ctx, "tv_details", fmt.Sprintf("/tv/%d", id), nil, detailsCacheTTL, &out)
}

func (c *Client) TVCredits(ctx context.Context, id int) (*models.Credits, error) {
	return c.credits(ctx, models.KindTV, id)
}

func (c *Client) TVVideos(ctx context.Context, id int) (*models.VideosResponse, error) {
	return c.videos(ctx, models.KindTV, id)
}

func (c *Client) SimilarTV(ctx context.Context, id, page int) (*models.TVResponse, error) {
	return c.list(ctx, "tv_similar", fmt.Sprintf("/tv/%d/similar", id), page)
}

func (c *Client) TVRecommendations(ctx context.Context, id, page int) (*models.TVResponse, error) {
	return c.list(ctx, "tv_recommendations", fmt.Sprintf("/tv/%d/recommendations", id), page)
}

// Search

func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*models.MovieResponse, error) {
	return c.search(ctx, "search_movie", "/search/movie", query, page)
}

func (c *Client) SearchTV(ctx context.Context, query string, page int) (*models.TVResponse, error) {
	return c.search(ctx, "search_tv", "/search/tv", query, page)
}

func (c *Client) SearchMulti(ctx context.Context, query string, page int) (*models.MediaResponse, error) {
	return c.search(ctx, "search_multi", "/search/multi", query, page)
}

// Genres

func (c *Client) MovieGenres(ctx context.Context) (*models.GenreResponse, error) {
	var out models.GenreResponse
	return &out, c.get(ctx, "genre_movie", "/genre/movie/list", nil, detailsCacheTTL, &out)
}

func (c *Client) TVGenres(ctx context.Context) (*models.GenreResponse, error) {
	var out models.GenreResponse
	return &out, c.get(ctx, "genre_tv", "/genre/tv/list", nil, detailsCacheTTL, &out)
}

// Discover

func (c *Client) DiscoverMovies(ctx context.Context, filters models.DiscoverFilters) (*models.MovieResponse, error) {
	var out models.MovieResponse
	return &out, c.get(ctx, "discover_movie", "/discover/movie", filters.Values(), listCacheTTL, &out)
}

func (c *Client) DiscoverTV(ctx context.Context, filters models.TVDiscoverFilters) (*models.TVResponse, error) {
	var out models.TVResponse
	return &out, c.get(ctx, "discover_tv", "/discover/tv", filters.Values(), listCacheTTL, &out)
}

func (c *Client) list(ctx context.Context, endpoint, path string, page int) (*models.MediaResponse, error) {
	var out models.MediaResponse
	return &out, c.get(ctx, endpoint, path, pageParams(page), listCacheTTL, &out)
}

func (c *Client) search(ctx context.Context, endpoint, path, query string, page int) (*models.MediaResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	c.logger.WithField("query", query).Info("Searching catalog...")

	params := pageParams(page)
	params.Set("query", query)

	var out models.MediaResponse
	return &out, c.get(ctx, endpoint, path, params, listCacheTTL, &out)
}

func (c *Client) credits(ctx context.Context, kind models.MediaKind, id int) (*models.Credits, error) {
	var out models.Credits
	return &out, c.get(ctx, string(kind)+"_credits", fmt.Sprintf("/%s/%d/credits", kind, id), nil, detailsCacheTTL, &out)
}

func (c *Client) videos(ctx context.Context, kind models.MediaKind, id int) (*models.VideosResponse, error) {
	var out models.VideosResponse
	return &out, c.get(ctx, string(kind)+"_videos", fmt.Sprintf("/%s/%d/videos", kind, id), nil, detailsCacheTTL, &out)
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return params
}

// get fetches path, going through the Redis cache when one is configured,
// and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, ttl time.Duration, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	cacheKey := catalogCachePrefix + strings.TrimPrefix(reqURL, c.baseURL)
	if body, ok := c.cached(ctx, cacheKey); ok {
		if err := json.Unmarshal(body, out); err == nil {
			return nil
		} else {
			c.logger.WithError(err).Warn("Failed to unmarshal cached catalog response")
		}
	}

	start := time.Now()
	body, err := c.makeRequest(ctx, reqURL)
	metrics.CatalogRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CatalogRequests.WithLabelValues(endpoint, "error").Inc()
		return err
	}
	metrics.CatalogRequests.WithLabelValues(endpoint, "ok").Inc()

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	c.store(ctx, cacheKey, body, ttl)
	return nil
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	if c.redis == nil {
		return nil, false
	}

	body, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		metrics.CatalogCache.WithLabelValues("hit").Inc()
		c.logger.WithField("key", key).Debug("Retrieved catalog response from cache")
		return body, true
	}
	if !errors.Is(err, redis.Nil) {
		c.logger.WithError(err).Warn("Failed to read from Redis")
	}
	metrics.CatalogCache.WithLabelValues("miss").Inc()
	return nil, false
}

func (c *Client) store(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Set(ctx, key, body, ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("Failed to write catalog response to cache")
		return
	}
	c.logger.WithField("key", key).Debug("Catalog response cached successfully")
}

func (c *Client) makeRequest(ctx context.Context, url string) ([]byte, error) {
	var rErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")
		if c.accessToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.accessToken)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			rErr = fmt.Errorf("failed to make HTTP request: %w", err)
			c.retryLogger(attempt, url, rErr)
			if werr := c.waitForRetry(ctx, attempt); werr != nil {
				return nil, werr
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			apiErr := &APIError{StatusCode: resp.StatusCode, URL: url}
			if !apiErr.retryable() {
				return nil, apiErr
			}
			rErr = apiErr
			c.retryLogger(attempt, url, rErr)
			if werr := c.waitForRetry(ctx, attempt); werr != nil {
				return nil, werr
			}
			continue
		}

		body, err := readRespBody(resp)
		resp.Body.Close()
		if err != nil {
			rErr = fmt.Errorf("failed to read response body: %w", err)
			c.retryLogger(attempt, url, rErr)
			if werr := c.waitForRetry(ctx, attempt); werr != nil {
				return nil, werr
			}
			continue
		}

		c.logger.WithFields(logrus.Fields{
			"url":           url,
			"attempt":       attempt,
			"status":        resp.StatusCode,
			"response_size": len(body),
		}).Debug("API request successful")

		return body, nil
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", c.maxRetries, rErr)
}

func (c *Client) retryLogger(attempt int, url string, err error) {
	c.logger.WithFields(logrus.Fields{
		"attempt": attempt + 1,
		"url":     url,
		"error":   err.Error(),
	}).Warn("API request failed, retrying...")
}

// readRespBody caps responses at maxResponseSize.
func readRespBody(resp *http.Response) ([]byte, error) {
	if resp.ContentLength > maxResponseSize {
		return nil, fmt.Errorf("response too large: %d bytes", resp.ContentLength)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxResponseSize {
		return nil, fmt.Errorf("response too large: exceeded %d bytes", maxResponseSize)
	}
	return body, nil
}

func (c *Client) waitForRetry(ctx context.Context, attempt int) error {
	if attempt >= c.maxRetries-1 {
		return nil
	}

	delay := time.Duration(attempt+1) * c.retryDelay
	c.logger.WithField("delay", delay).Debug("waiting before retry")

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
