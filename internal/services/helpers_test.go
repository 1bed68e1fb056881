package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ibraflix/internal/models"
	"ibraflix/internal/storage"
	"ibraflix/internal/watchlist"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// fakeTMDb records hits per path and serves canned handlers.
type fakeTMDb struct {
	mu   sync.Mutex
	hits map[string]int
	mux  *http.ServeMux
}

func newFakeTMDb() *fakeTMDb {
	return &fakeTMDb{hits: make(map[string]int), mux: http.NewServeMux()}
}

func (f *fakeTMDb) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.mu.Unlock()
	f.mux.ServeHTTP(w, r)
}

func (f *fakeTMDb) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeTMDb) JSON(path string, body any) {
	f.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, body)
	})
}

func (f *fakeTMDb) Status(path string, code int) {
	f.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	})
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func nullLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	return newTestClientWithCache(t, h, nil)
}

// newCachedTestClient backs the client's response cache with miniredis.
func newCachedTestClient(t *testing.T, h http.Handler) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return newTestClientWithCache(t, h, rdb), mr
}

func newTestClientWithCache(t *testing.T, h http.Handler, rdb *redis.Client) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return NewClientWithConfig(&ClientConfig{
		BaseURL:     srv.URL,
		ImageURL:    "https://img.test/t/p",
		AccessToken: "token-123",
		Timeout:     5 * time.Second,
		MaxRetries:  3,
		RetryDelay:  time.Millisecond,
		Logger:      nullLogger(),
		Redis:       rdb,
	})
}

func newTestMediaService(t *testing.T, h http.Handler) (*MediaService, *watchlist.Store) {
	t.Helper()
	client := newTestClient(t, h)
	store := watchlist.New(context.Background(), storage.NewMemory(), watchlist.WithLogger(nullLogger()))
	return NewMediaService(client, NewGenreService(client, nullLogger()), store, nullLogger()), store
}

func page(total int, items ...models.MediaItem) models.MediaResponse {
	return models.MediaResponse{Page: 1, Results: items, TotalPages: total, TotalResults: len(items)}
}
