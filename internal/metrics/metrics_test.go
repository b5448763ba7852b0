// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRecognition(t *testing.T) {
	before := testutil.ToFloat64(RecognitionsTotal.WithLabelValues("recognized"))
	RecordRecognition("recognized", 2*time.Second)
	after := testutil.ToFloat64(RecognitionsTotal.WithLabelValues("recognized"))

	if after != before+1 {
		t.Errorf("recognitions_total = %v, want %v", after, before+1)
	}
}

func TestRecordVisionRequest(t *testing.T) {
	before := testutil.ToFloat64(VisionRequestsTotal.WithLabelValues("recognize", "success"))
	RecordVisionRequest("recognize", "success", 500*time.Millisecond)
	after := testutil.ToFloat64(VisionRequestsTotal.WithLabelValues("recognize", "success"))

	if after != before+1 {
		t.Errorf("vision_requests_total = %v, want %v", after, before+1)
	}
}

func TestRecordDBQueryTruncatesLongErrors(t *testing.T) {
	longErr := errors.New("this is a very long error message that exceeds fifty characters and should be truncated")
	RecordDBQuery("SELECT", "artworks", 10*time.Millisecond, longErr)

	truncated := longErr.Error()[:50]
	count := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "artworks", truncated))
	if count < 1 {
		t.Errorf("expected truncated error label to be recorded, got %v", count)
	}
}

func TestRecordCacheAccess(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits.WithLabelValues("related"))
	missesBefore := testutil.ToFloat64(CacheMisses.WithLabelValues("related"))

	RecordCacheAccess("related", true)
	RecordCacheAccess("related", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("related")); got != hitsBefore+1 {
		t.Errorf("cache_hits_total = %v, want %v", got, hitsBefore+1)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("related")); got != missesBefore+1 {
		t.Errorf("cache_misses_total = %v, want %v", got, missesBefore+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v", got, before)
	}
}

func TestRecordXPAwarded(t *testing.T) {
	before := testutil.ToFloat64(XPAwarded.WithLabelValues("discovery"))
	RecordXPAwarded("discovery", 10)
	after := testutil.ToFloat64(XPAwarded.WithLabelValues("discovery"))

	if after != before+10 {
		t.Errorf("xp_awarded_total = %v, want %v", after, before+10)
	}
}

func TestRecordCircuitBreakerState(t *testing.T) {
	RecordCircuitBreakerState("vision", 2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("vision")); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2", got)
	}
}
