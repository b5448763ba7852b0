// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestCacheBasicOperations(t *testing.T) {
	c := New(1*time.Minute, time.Minute)
	defer c.Stop()

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	_, exists = c.Get("key2")
	if exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	c := New(50*time.Millisecond, time.Minute)
	defer c.Stop()

	c.Set("key1", "value1")

	if _, exists := c.Get("key1"); !exists {
		t.Error("Expected key1 to exist before expiration")
	}

	time.Sleep(80 * time.Millisecond)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
}

func TestCacheSetWithTTL(t *testing.T) {
	c := New(50*time.Millisecond, time.Minute)
	defer c.Stop()

	c.SetWithTTL("long", "value", time.Hour)

	time.Sleep(80 * time.Millisecond)

	if _, exists := c.Get("long"); !exists {
		t.Error("Expected entry with custom TTL to survive default TTL")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New(time.Minute, time.Minute)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, exists := c.Get("a"); exists {
		t.Error("Expected a to be deleted")
	}

	c.Clear()
	if _, exists := c.Get("b"); exists {
		t.Error("Expected b to be cleared")
	}

	stats := c.GetStats()
	if stats.TotalKeys != 0 {
		t.Errorf("TotalKeys = %d after Clear, want 0", stats.TotalKeys)
	}
}

func TestCacheStats(t *testing.T) {
	c := New(time.Minute, time.Minute)
	defer c.Stop()

	c.Set("key", "value")
	c.Get("key")    // hit
	c.Get("absent") // miss

	stats := c.GetStats()
	if stats.Hits != 1 {
		t.Errorf("Hits = %d, want 1", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if rate := c.HitRate(); rate != 50.0 {
		t.Errorf("HitRate = %v, want 50.0", rate)
	}
}

func TestGenerateKeyStable(t *testing.T) {
	type params struct {
		ArtworkID string
		UserID    string
	}

	k1 := GenerateKey("related", params{ArtworkID: "a1", UserID: "u1"})
	k2 := GenerateKey("related", params{ArtworkID: "a1", UserID: "u1"})
	k3 := GenerateKey("related", params{ArtworkID: "a1", UserID: "u2"})

	if k1 != k2 {
		t.Errorf("identical params produced different keys: %q vs %q", k1, k2)
	}
	if k1 == k3 {
		t.Error("different params produced the same key")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New(time.Minute, time.Minute)
	defer c.Stop()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", n, j)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
