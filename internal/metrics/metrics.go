// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

// Package metrics provides Prometheus instrumentation for the service:
// artwork recognition outcomes, vision and museum API calls, cache
// efficiency, WebSocket connections, and API endpoint latency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recognition Metrics
	RecognitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recognitions_total",
			Help: "Total number of artwork recognition attempts",
		},
		[]string{"outcome"}, // "recognized", "rejected", "cached"
	)

	RecognitionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recognition_duration_seconds",
			Help:    "End-to-end artwork recognition duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
	)

	RecognitionConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recognition_confidence",
			Help:    "Confidence scores reported for recognized artworks",
			Buckets: []float64{0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 1},
		},
	)

	// Vision API Metrics
	VisionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vision_requests_total",
			Help: "Total number of vision API requests",
		},
		[]string{"operation", "status"}, // operation: "recognize", "describe", "quiz", ...
	)

	VisionRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vision_request_duration_seconds",
			Help:    "Vision API request duration in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"operation"},
	)

	// Museum API Metrics
	MuseumRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museum_requests_total",
			Help: "Total number of museum API requests",
		},
		[]string{"operation", "status"}, // operation: "search", "object"
	)

	MuseumRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "museum_request_duration_seconds",
			Help:    "Museum API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	MuseumMatchScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "museum_match_score",
			Help:    "Match scores computed for museum search candidates",
			Buckets: []float64{1, 3, 5, 8, 10, 15, 20, 30},
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"}, // "related", "museum_lookup", "image_hash"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Upload Metrics
	UploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "upload_bytes",
			Help:    "Size of uploaded images in bytes",
			Buckets: prometheus.ExponentialBuckets(64*1024, 2, 9), // 64KB..16MB
		},
	)

	UploadsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uploads_rejected_total",
			Help: "Total number of rejected uploads",
		},
		[]string{"reason"}, // "too_large", "bad_extension", "missing_file"
	)

	// WebSocket Metrics
	WSConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSBroadcastsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_broadcasts_dropped_total",
			Help: "Total number of broadcasts dropped due to slow clients",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"service"}, // "vision", "museum"
	)

	CircuitBreakerTrips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_trips_total",
			Help: "Total number of circuit breaker trips",
		},
		[]string{"service"},
	)

	// Gamification Metrics
	XPAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xp_awarded_total",
			Help: "Total XP awarded to users",
		},
		[]string{"source"}, // "discovery", "quiz"
	)

	BadgesEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badges_earned_total",
			Help: "Total badges earned by users",
		},
		[]string{"badge"},
	)
)

// RecordRecognition records one recognition attempt with its outcome.
func RecordRecognition(outcome string, duration time.Duration) {
	RecognitionsTotal.WithLabelValues(outcome).Inc()
	RecognitionDuration.Observe(duration.Seconds())
}

// RecordVisionRequest records a vision API call.
func RecordVisionRequest(operation, status string, duration time.Duration) {
	VisionRequestsTotal.WithLabelValues(operation, status).Inc()
	VisionRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordMuseumRequest records a museum API call.
func RecordMuseumRequest(operation, status string, duration time.Duration) {
	MuseumRequestsTotal.WithLabelValues(operation, status).Inc()
	MuseumRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordCacheAccess records one cache lookup.
func RecordCacheAccess(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
	} else {
		CacheMisses.WithLabelValues(cache).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCircuitBreakerState updates the state gauge for a service breaker.
func RecordCircuitBreakerState(service string, state int) {
	CircuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordXPAwarded records XP granted from a discovery or quiz.
func RecordXPAwarded(source string, amount int) {
	XPAwarded.WithLabelValues(source).Add(float64(amount))
}

// RecordBadgeEarned records a newly earned badge.
func RecordBadgeEarned(badgeID string) {
	BadgesEarned.WithLabelValues(badgeID).Inc()
}
