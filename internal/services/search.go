package services

import (
	"context"
	"strings"

	"ibraflix/internal/models"
)

// Search runs a multi search. A blank query returns nothing without a
// request, and upstream failures are logged and read as no results.
func (s *MediaService) Search(ctx context.Context, query string) []models.MediaItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.MediaItem{}
	}

	resp, err := s.client.SearchMulti(ctx, query, 1)
	if err != nil {
		s.logger.WithError(err).WithField("query", query).Error("Failed to search catalog")
		return []models.MediaItem{}
	}
	if resp.Results == nil {
		return []models.MediaItem{}
	}
	return resp.Results
}
