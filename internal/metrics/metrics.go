// Package metrics exposes Prometheus collectors for the scoring service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks API latency per route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tubebenders_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// FinderRequests counts finder invocations per strategy
	FinderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubebenders_finder_requests_total",
			Help: "Total number of finder recommendations served",
		},
		[]string{"strategy"},
	)

	// FinderEliminations counts products eliminated by hard requirements
	FinderEliminations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubebenders_finder_eliminations_total",
			Help: "Total number of candidate products eliminated by finder requirements",
		},
		[]string{"strategy"},
	)

	// DegradedScores counts products scored from their rating estimate
	DegradedScores = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tubebenders_degraded_scores_total",
			Help: "Total number of scores served from the rating estimate",
		},
	)

	// CatalogCacheLookups counts catalog cache hits and misses
	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubebenders_catalog_cache_lookups_total",
			Help: "Catalog cache lookups by result",
		},
		[]string{"result"},
	)

	// CatalogFetchErrors counts failed catalog loads per source
	CatalogFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubebenders_catalog_fetch_errors_total",
			Help: "Total number of failed catalog loads",
		},
		[]string{"source"},
	)
)

// RecordHTTPRequest observes one request
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordFinder counts one finder run and its eliminations
func RecordFinder(strategy string, eliminated int) {
	FinderRequests.WithLabelValues(strategy).Inc()
	if eliminated > 0 {
		FinderEliminations.WithLabelValues(strategy).Add(float64(eliminated))
	}
}

// RecordCacheLookup counts a catalog cache hit or miss
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CatalogCacheLookups.WithLabelValues(result).Inc()
}
