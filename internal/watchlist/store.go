// Package watchlist keeps the saved media list and mirrors it to a
// storage.Adapter.
//
// The in-memory list is authoritative after the first load. Every mutation
// builds a new slice, writes it through the adapter and only then swaps it in
// and notifies subscribers, so a snapshot handed out earlier never changes.
// Storage failures are logged and swallowed; callers observe only whether the
// list changed.
package watchlist

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"ibraflix/internal/models"
	"ibraflix/internal/storage"

	"github.com/sirupsen/logrus"
)

// StorageKey is the single key holding the serialized list.
const StorageKey = "ibraflix_watchlist"

// Listener receives the new list after each successful mutation. It runs on
// the mutating goroutine and must not call Insert, Remove or Clear.
type Listener func(entries []models.WatchlistEntry)

type subscription struct {
	id int
	fn Listener
}

type Store struct {
	adapter storage.Adapter
	logger  *logrus.Logger
	now     func() time.Time

	// writeMu serializes mutations end to end, notification included.
	writeMu sync.Mutex

	mu        sync.RWMutex
	entries   []models.WatchlistEntry
	listeners []subscription
	nextSubID int
}

type Option func(*Store)

func WithLogger(logger *logrus.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock replaces time.Now for added_at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New loads the list from adapter. A missing key or unreadable data yields
// an empty list; the condition is logged, never returned.
func New(ctx context.Context, adapter storage.Adapter, opts ...Option) *Store {
	s := &Store{
		adapter: adapter,
		logger:  logrus.New(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.entries = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []models.WatchlistEntry {
	data, err := s.adapter.Read(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug("No stored watchlist, starting empty")
		return []models.WatchlistEntry{}
	}
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read watchlist, starting empty")
		return []models.WatchlistEntry{}
	}

	entries, err := Decode(data)
	if err != nil {
		s.logger.WithError(err).Warn("Stored watchlist is unreadable, starting empty")
		return []models.WatchlistEntry{}
	}

	s.logger.WithField("count", len(entries)).Info("Watchlist loaded")
	return entries
}

// Items returns a copy of the current list in insertion order.
func (s *Store) Items() []models.WatchlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) Contains(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.entries, id) >= 0
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Insert appends item stamped with the current time. It does nothing when an
// entry with the same id is already present, whatever its media type.
func (s *Store) Insert(ctx context.Context, item models.MediaItem) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := s.snapshot()
	if indexOf(current, item.ID) >= 0 {
		s.logger.WithField("id", item.ID).Debug("Already in watchlist")
		return
	}

	next := make([]models.WatchlistEntry, len(current), len(current)+1)
	copy(next, current)
	next = append(next, models.WatchlistEntry{
		MediaItem: item,
		AddedAt:   s.now().UnixMilli(),
	})

	if s.commit(ctx, next) {
		s.logger.WithFields(logrus.Fields{
			"id":    item.ID,
			"title": item.DisplayTitle(),
		}).Info("Added to watchlist")
	}
}

// Remove drops every entry with id. The list is written back even when
// nothing matched.
func (s *Store) Remove(ctx context.Context, id int) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := s.snapshot()
	next := make([]models.WatchlistEntry, 0, len(current))
	for _, e := range current {
		if e.ID != id {
			next = append(next, e)
		}
	}

	if s.commit(ctx, next) {
		s.logger.WithField("id", id).Info("Removed from watchlist")
	}
}

// Clear empties the list with a single write.
func (s *Store) Clear(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.commit(ctx, []models.WatchlistEntry{}) {
		s.logger.Info("Watchlist cleared")
	}
}

func (s *Store) snapshot() []models.WatchlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

// commit persists next, then swaps it in and notifies. Must hold writeMu.
func (s *Store) commit(ctx context.Context, next []models.WatchlistEntry) bool {
	data, err := Encode(next)
	if err != nil {
		s.logger.WithError(err).Error("Error saving watchlist to storage")
		return false
	}
	if err := s.adapter.Write(ctx, StorageKey, data); err != nil {
		s.logger.WithError(err).Error("Error saving watchlist to storage")
		return false
	}

	s.mu.Lock()
	s.entries = next
	listeners := append([]subscription(nil), s.listeners...)
	s.mu.Unlock()

	for _, sub := range listeners {
		sub.fn(slices.Clone(next))
	}
	return true
}

func indexOf(entries []models.WatchlistEntry, id int) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
