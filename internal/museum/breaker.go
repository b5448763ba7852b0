// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package museum

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/atelierhq/atelier/internal/logging"
	"github.com/atelierhq/atelier/internal/metrics"
)

// collectionAPI is the surface the lookup service needs from the collection
// client. Satisfied by Client and by BreakerClient.
type collectionAPI interface {
	Search(ctx context.Context, query string, artistOrCulture, related bool) ([]int, error)
	Object(ctx context.Context, objectID int) (*metObject, error)
}

// BreakerClient wraps a collection client with a circuit breaker so a
// degraded upstream fails fast instead of stalling every lookup on timeouts.
type BreakerClient struct {
	inner collectionAPI
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

// NewBreakerClient wraps client with a circuit breaker. The breaker opens
// when at least 10 requests in the rolling window have a failure ratio of
// 60% or more, stays open for 2 minutes, then admits up to 3 trial requests.
func NewBreakerClient(client collectionAPI) *BreakerClient {
	name := "museum"
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
		OnStateChange: func(cbName string, from, to gobreaker.State) {
			metrics.RecordCircuitBreakerState(cbName, stateToFloat(to))
			if to == gobreaker.StateOpen {
				metrics.CircuitBreakerTrips.WithLabelValues(cbName).Inc()
			}
			logging.Warn().
				Str("circuit_breaker", cbName).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("Circuit breaker state changed")
		},
	}
	return &BreakerClient{
		inner: client,
		cb:    gobreaker.NewCircuitBreaker[any](settings),
		name:  name,
	}
}

// Search implements collectionAPI through the breaker.
func (b *BreakerClient) Search(ctx context.Context, query string, artistOrCulture, related bool) ([]int, error) {
	return execute(b.cb, func() (any, error) {
		return b.inner.Search(ctx, query, artistOrCulture, related)
	}, []int(nil))
}

// Object implements collectionAPI through the breaker.
func (b *BreakerClient) Object(ctx context.Context, objectID int) (*metObject, error) {
	return execute(b.cb, func() (any, error) {
		return b.inner.Object(ctx, objectID)
	}, (*metObject)(nil))
}

// execute runs fn through the breaker and casts the result back to T.
func execute[T any](cb *gobreaker.CircuitBreaker[any], fn func() (any, error), zero T) (T, error) {
	v, err := cb.Execute(fn)
	if err != nil {
		return zero, err
	}
	result, ok := v.(T)
	if !ok {
		return zero, nil
	}
	return result, nil
}

func stateToFloat(state gobreaker.State) int {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
