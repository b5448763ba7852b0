// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter rate limits login attempts per client IP. It exists in
// addition to route-level rate limiting so that failed logins are throttled
// even when requests arrive from well-behaved clients.
type LoginLimiter struct {
	limiters  map[string]*loginLimiterEntry
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	stopClean chan struct{}
}

type loginLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLoginLimiter allows up to attempts per window for each IP.
func NewLoginLimiter(attempts int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		limiters:  make(map[string]*loginLimiterEntry),
		rate:      rate.Every(window / time.Duration(attempts)),
		burst:     attempts,
		stopClean: make(chan struct{}),
	}
	go l.startCleanup(10 * time.Minute)
	return l
}

// Allow reports whether a login attempt from the given IP may proceed.
func (l *LoginLimiter) Allow(ip string) bool {
	l.mu.Lock()
	entry, exists := l.limiters[ip]
	if !exists {
		entry = &loginLimiterEntry{
			limiter:    rate.NewLimiter(l.rate, l.burst),
			lastAccess: time.Now(),
		}
		l.limiters[ip] = entry
	} else {
		entry.lastAccess = time.Now()
	}
	limiter := entry.limiter
	l.mu.Unlock()

	return limiter.Allow()
}

func (l *LoginLimiter) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopClean:
			return
		}
	}
}

// cleanup removes entries that have been idle for over an hour.
func (l *LoginLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	threshold := time.Now().Add(-1 * time.Hour)
	for ip, entry := range l.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(l.limiters, ip)
		}
	}
}

// Stop terminates the cleanup goroutine.
func (l *LoginLimiter) Stop() {
	close(l.stopClean)
}
