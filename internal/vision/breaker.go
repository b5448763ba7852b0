// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package vision

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/atelierhq/atelier/internal/logging"
	"github.com/atelierhq/atelier/internal/metrics"
)

// CircuitBreakerCompleter wraps a Completer with a circuit breaker so a
// degraded vision API fails fast instead of holding request goroutines for
// the full timeout. Callers see an error and take their fallback path.
type CircuitBreakerCompleter struct {
	inner Completer
	cb    *gobreaker.CircuitBreaker[string]
	name  string
}

// NewCircuitBreakerCompleter wraps the given completer.
// The breaker opens after a 60% failure rate over at least 10 requests,
// resets counts every minute while closed, and probes again after 2 minutes.
func NewCircuitBreakerCompleter(inner Completer) *CircuitBreakerCompleter {
	cbName := "vision"

	metrics.RecordCircuitBreakerState(cbName, 0) // closed

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Str("breaker", cbName).
					Msg("Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("Circuit breaker state transition")

			metrics.RecordCircuitBreakerState(name, int(stateToFloat(to)))
			if to == gobreaker.StateOpen {
				metrics.CircuitBreakerTrips.WithLabelValues(name).Inc()
			}
		},
	})

	return &CircuitBreakerCompleter{
		inner: inner,
		cb:    cb,
		name:  cbName,
	}
}

// Complete executes the completion call through the circuit breaker.
func (c *CircuitBreakerCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	result, err := c.cb.Execute(func() (string, error) {
		return c.inner.Complete(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logging.Warn().Err(err).Str("breaker", c.name).Msg("Request rejected by circuit breaker")
		}
		return "", err
	}
	return result, nil
}

// Enabled reports whether the wrapped completer is enabled.
func (c *CircuitBreakerCompleter) Enabled() bool {
	return c.inner.Enabled()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
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
