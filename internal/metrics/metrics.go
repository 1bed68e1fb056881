// Package metrics registers the service's Prometheus collectors against the
// default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CatalogRequests counts upstream TMDb calls by endpoint and outcome.
	CatalogRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ibraflix_catalog_requests_total",
		Help: "Total TMDb API requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	CatalogCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ibraflix_catalog_cache_total",
		Help: "Catalog response cache lookups by result (hit, miss).",
	}, []string{"result"})

	CatalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ibraflix_catalog_request_duration_seconds",
		Help:    "Duration of TMDb API requests in seconds, retries included.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	WatchlistEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ibraflix_watchlist_entries",
		Help: "Number of entries in the watchlist.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ibraflix_http_requests_total",
		Help: "HTTP API requests by route and status code.",
	}, []string{"route", "status"})
)
