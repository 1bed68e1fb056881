package watchlist

import (
	"encoding/json"
	"fmt"

	"ibraflix/internal/models"
)

// Encode serializes entries as a JSON array. A nil list encodes as [].
func Encode(entries []models.WatchlistEntry) ([]byte, error) {
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode watchlist: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array of entries. Fields missing from older records
// decode as zero values; JSON null decodes as an empty list.
func Decode(data []byte) ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode watchlist: %w", err)
	}
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}
	return entries, nil
}
