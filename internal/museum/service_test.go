// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package museum

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/atelierhq/atelier/internal/config"
)

// newMetServer serves a canned collection: a search response plus object
// details keyed by ID. It counts requests so tests can assert memoization.
func newMetServer(t *testing.T, objectIDs []int, objects map[int]metObject, requests *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/search"):
			_ = json.NewEncoder(w).Encode(searchResponse{Total: len(objectIDs), ObjectIDs: objectIDs})
		case strings.HasPrefix(r.URL.Path, "/objects/"):
			var id int
			_, _ = fmt.Sscanf(r.URL.Path, "/objects/%d", &id)
			obj, ok := objects[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message":"not found"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(obj)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestService(serverURL string) *Service {
	client := NewClient(&config.MuseumConfig{
		BaseURL:        serverURL,
		ObjectTimeout:  5 * time.Second,
		SearchTimeout:  5 * time.Second,
		RelatedTimeout: 10 * time.Second,
	})
	return NewService(client, &config.CacheConfig{LookupLRUSize: 100, RelatedLRUSize: 50})
}

func TestFindArtworkVerifiedMatch(t *testing.T) {
	objects := map[int]metObject{
		1: {
			ObjectID:          1,
			Title:             "Water Lilies",
			ArtistDisplayName: "Claude Monet",
			ObjectDate:        "1916",
			PrimaryImage:      "https://images.example/lilies.jpg",
			PrimaryImageSmall: "https://images.example/lilies-small.jpg",
			ObjectURL:         "https://collection.example/1",
			Department:        "European Paintings",
		},
		2: {
			ObjectID:          2,
			Title:             "Water Lilies",
			ArtistDisplayName: "Copyist Unknown",
			PrimaryImage:      "https://images.example/copy.jpg",
		},
	}
	server := newMetServer(t, []int{2, 1}, objects, nil)
	defer server.Close()

	svc := newTestService(server.URL)
	match := svc.FindArtwork(context.Background(), "Water Lilies", "Claude Monet")
	if match == nil {
		t.Fatal("FindArtwork() = nil, want a verified match")
	}
	if match.ObjectID != 1 {
		t.Errorf("ObjectID = %d, want 1 (best-scoring candidate)", match.ObjectID)
	}
	if match.Museum != "Metropolitan Museum of Art" {
		t.Errorf("Museum = %q", match.Museum)
	}
	if match.ImageURL != "https://images.example/lilies-small.jpg" {
		t.Errorf("ImageURL = %q, want small rendition", match.ImageURL)
	}
	if match.Movement != "Early Modernism" {
		t.Errorf("Movement = %q, want Early Modernism", match.Movement)
	}
}

func TestFindArtworkRejectsImagelessCandidates(t *testing.T) {
	objects := map[int]metObject{
		1: {ObjectID: 1, Title: "Water Lilies", ArtistDisplayName: "Claude Monet"},
	}
	server := newMetServer(t, []int{1}, objects, nil)
	defer server.Close()

	svc := newTestService(server.URL)
	if match := svc.FindArtwork(context.Background(), "Water Lilies", "Claude Monet"); match != nil {
		t.Errorf("FindArtwork() = %+v, want nil for imageless candidate", match)
	}
}

func TestFindArtworkBelowThreshold(t *testing.T) {
	objects := map[int]metObject{
		1: {
			ObjectID:          1,
			Title:             "Completely Different Title",
			ArtistDisplayName: "Claude Monet",
			PrimaryImage:      "https://images.example/other.jpg",
		},
	}
	server := newMetServer(t, []int{1}, objects, nil)
	defer server.Close()

	svc := newTestService(server.URL)
	if match := svc.FindArtwork(context.Background(), "Water Lilies", "Someone Else"); match != nil {
		t.Errorf("FindArtwork() = %+v, want nil below match threshold", match)
	}
}

func TestFindArtworkMemoizesMisses(t *testing.T) {
	var requests atomic.Int64
	server := newMetServer(t, []int{}, nil, &requests)
	defer server.Close()

	svc := newTestService(server.URL)
	ctx := context.Background()
	svc.FindArtwork(ctx, "Nonexistent", "Nobody")
	after := requests.Load()
	svc.FindArtwork(ctx, "Nonexistent", "Nobody")
	if requests.Load() != after {
		t.Errorf("second lookup hit upstream: %d requests, want %d", requests.Load(), after)
	}
}

func TestRelatedByArtistExcludesCurrentTitle(t *testing.T) {
	objects := map[int]metObject{
		1: {
			ObjectID: 1, Title: "Water Lilies", ArtistDisplayName: "Claude Monet",
			PrimaryImage: "https://images.example/1.jpg",
		},
		2: {
			ObjectID: 2, Title: "Impression, Sunrise", ArtistDisplayName: "Claude Monet",
			PrimaryImage: "https://images.example/2.jpg",
		},
		3: {
			ObjectID: 3, Title: "Haystacks", ArtistDisplayName: "Claude Monet",
			PrimaryImage: "https://images.example/3.jpg",
		},
		4: {
			ObjectID: 4, Title: "Forged Lilies", ArtistDisplayName: "Unknown Copyist",
			PrimaryImage: "https://images.example/4.jpg",
		},
	}
	server := newMetServer(t, []int{1, 2, 3, 4}, objects, nil)
	defer server.Close()

	svc := newTestService(server.URL)
	results := svc.RelatedByArtist(context.Background(), "Claude Monet", "Water Lilies", 3)
	if len(results) != 2 {
		t.Fatalf("RelatedByArtist() returned %d artworks, want 2", len(results))
	}
	for _, art := range results {
		if art.Title == "Water Lilies" {
			t.Error("RelatedByArtist() included the excluded title")
		}
		if art.Artist != "Claude Monet" {
			t.Errorf("RelatedByArtist() included wrong artist %q", art.Artist)
		}
		if art.Source != "museum" {
			t.Errorf("Source = %q, want museum", art.Source)
		}
	}
}

func TestRelatedByArtistCachesHarvest(t *testing.T) {
	var requests atomic.Int64
	objects := map[int]metObject{
		1: {
			ObjectID: 1, Title: "Haystacks", ArtistDisplayName: "Claude Monet",
			PrimaryImage: "https://images.example/1.jpg",
		},
	}
	server := newMetServer(t, []int{1}, objects, &requests)
	defer server.Close()

	svc := newTestService(server.URL)
	ctx := context.Background()
	svc.RelatedByArtist(ctx, "Claude Monet", "", 3)
	after := requests.Load()

	// Different exclusion, same artist: served from the cached harvest.
	results := svc.RelatedByArtist(ctx, "claude monet", "Haystacks", 3)
	if requests.Load() != after {
		t.Errorf("second call hit upstream: %d requests, want %d", requests.Load(), after)
	}
	if len(results) != 0 {
		t.Errorf("got %d artworks after exclusion, want 0", len(results))
	}
}

func TestRelatedByMovementLimit(t *testing.T) {
	objects := map[int]metObject{}
	ids := make([]int, 0, 6)
	for i := 1; i <= 6; i++ {
		ids = append(ids, i)
		objects[i] = metObject{
			ObjectID:          i,
			Title:             fmt.Sprintf("Impressionist Work %d", i),
			ArtistDisplayName: "Various",
			PrimaryImage:      fmt.Sprintf("https://images.example/%d.jpg", i),
		}
	}
	server := newMetServer(t, ids, objects, nil)
	defer server.Close()

	svc := newTestService(server.URL)
	results := svc.RelatedByMovement(context.Background(), "Impressionism", 3)
	if len(results) != 3 {
		t.Errorf("RelatedByMovement() returned %d artworks, want 3", len(results))
	}
}

func TestImageURLChain(t *testing.T) {
	objects := map[int]metObject{
		1: {
			ObjectID: 1, Title: "Water Lilies", ArtistDisplayName: "Claude Monet",
			PrimaryImage:      "https://images.example/full.jpg",
			PrimaryImageSmall: "https://images.example/small.jpg",
		},
	}
	server := newMetServer(t, []int{1}, objects, nil)
	defer server.Close()

	svc := newTestService(server.URL)
	ctx := context.Background()

	if got := svc.ImageURL(ctx, "Water Lilies", "Claude Monet", "https://stored.example/img.jpg"); got != "https://stored.example/img.jpg" {
		t.Errorf("stored URL not preferred: %q", got)
	}
	if got := svc.ImageURL(ctx, "Water Lilies", "Claude Monet", ""); got != "https://images.example/small.jpg" {
		t.Errorf("museum image not used: %q", got)
	}
	// Stored placeholders are replaced by real museum images.
	if got := svc.ImageURL(ctx, "Water Lilies", "Claude Monet", PlaceholderURL("Water Lilies")); got != "https://images.example/small.jpg" {
		t.Errorf("placeholder not replaced: %q", got)
	}
}

func TestImageURLPlaceholderFallback(t *testing.T) {
	server := newMetServer(t, []int{}, nil, nil)
	defer server.Close()

	svc := newTestService(server.URL)
	got := svc.ImageURL(context.Background(), "Café at Night", "Nobody", "")
	want := "https://via.placeholder.com/400x300/7c3aed/ffffff?text=Caf%C3%A9+at+Night"
	if got != want {
		t.Errorf("ImageURL() = %q, want %q", got, want)
	}
}

func TestClientErrorIncludesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream maintenance"))
	}))
	defer server.Close()

	client := NewClient(&config.MuseumConfig{
		BaseURL:        server.URL,
		ObjectTimeout:  time.Second,
		SearchTimeout:  time.Second,
		RelatedTimeout: time.Second,
	})
	_, err := client.Search(context.Background(), "anything", false, false)
	if err == nil {
		t.Fatal("Search() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "upstream maintenance") {
		t.Errorf("error %q missing status or body", err)
	}
}

func TestBreakerClientPassesThrough(t *testing.T) {
	objects := map[int]metObject{
		1: {ObjectID: 1, Title: "Haystacks", ArtistDisplayName: "Claude Monet", PrimaryImage: "https://images.example/1.jpg"},
	}
	server := newMetServer(t, []int{1}, objects, nil)
	defer server.Close()

	breaker := NewBreakerClient(NewClient(&config.MuseumConfig{
		BaseURL:        server.URL,
		ObjectTimeout:  time.Second,
		SearchTimeout:  time.Second,
		RelatedTimeout: time.Second,
	}))

	ids, err := breaker.Search(context.Background(), "Haystacks Monet", false, false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("Search() = %v, want [1]", ids)
	}
	obj, err := breaker.Object(context.Background(), 1)
	if err != nil {
		t.Fatalf("Object() error = %v", err)
	}
	if obj.Title != "Haystacks" {
		t.Errorf("Object().Title = %q", obj.Title)
	}
}
