package models

// WatchlistEntry is a saved media item. AddedAt is milliseconds since epoch,
// stamped once on insert.
type WatchlistEntry struct {
	MediaItem
	AddedAt int64 `json:"added_at"`
}
