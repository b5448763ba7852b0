// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package related

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/atelierhq/atelier/internal/cache"
	"github.com/atelierhq/atelier/internal/database"
	"github.com/atelierhq/atelier/internal/models"
	"github.com/atelierhq/atelier/internal/museum"
	"github.com/atelierhq/atelier/internal/vision"
)

type stubFinder struct {
	known map[string]*models.Artwork
}

func (s *stubFinder) GetArtworkByTitleArtist(_ context.Context, title, _ string) (*models.Artwork, error) {
	if art, ok := s.known[title]; ok {
		return art, nil
	}
	return nil, database.ErrNotFound
}

type stubMuseum struct {
	byArtist    []models.RelatedArtwork
	byMovement  []models.RelatedArtwork
	images      map[string]string
	artistCalls int
}

func (s *stubMuseum) RelatedByArtist(_ context.Context, _, excludeTitle string, limit int) []models.RelatedArtwork {
	s.artistCalls++
	results := make([]models.RelatedArtwork, 0, limit)
	for _, art := range s.byArtist {
		if art.Title == excludeTitle {
			continue
		}
		results = append(results, art)
		if len(results) >= limit {
			break
		}
	}
	return results
}

func (s *stubMuseum) RelatedByMovement(_ context.Context, _ string, limit int) []models.RelatedArtwork {
	if len(s.byMovement) > limit {
		return s.byMovement[:limit]
	}
	return s.byMovement
}

func (s *stubMuseum) ImageURL(_ context.Context, title, _, stored string) string {
	if stored != "" && !museum.IsPlaceholder(stored) {
		return stored
	}
	if url, ok := s.images[title]; ok {
		return url
	}
	return museum.PlaceholderURL(title)
}

type stubGenerator struct {
	content      *vision.RelatedContext
	contentCalls int
}

func (s *stubGenerator) RelatedContent(_ context.Context, _ *models.Artwork) *vision.RelatedContext {
	s.contentCalls++
	return s.content
}

func (s *stubGenerator) SimilarityExplanations(_ context.Context, _ *models.Artwork, related []models.RelatedArtwork) []models.RelatedArtwork {
	for i := range related {
		if related[i].Explanation == "" {
			related[i].Explanation = fmt.Sprintf("Created by %s in a similar style", related[i].Artist)
		}
	}
	return related
}

func museumEntry(title, artist string) models.RelatedArtwork {
	return models.RelatedArtwork{
		Title:    title,
		Artist:   artist,
		Museum:   "Metropolitan Museum of Art",
		ImageURL: "https://images.example/" + title + ".jpg",
		Source:   "museum",
	}
}

func newTestAssembler(finder ArtworkFinder, src MuseumSource, gen Generator) (*Assembler, *cache.Cache) {
	bundles := cache.New(30*time.Minute, time.Minute)
	return NewAssembler(finder, src, gen, bundles), bundles
}

func currentArtwork() *models.Artwork {
	return &models.Artwork{
		ID:       "art-0",
		Title:    "Water Lilies",
		Artist:   "Claude Monet",
		Movement: "Impressionism",
	}
}

func TestAssembleSameArtistFillsQuota(t *testing.T) {
	src := &stubMuseum{byArtist: []models.RelatedArtwork{
		museumEntry("Water Lilies", "Claude Monet"), // current title, excluded
		museumEntry("Haystacks", "Claude Monet"),
		museumEntry("Impression, Sunrise", "Claude Monet"),
		museumEntry("Rouen Cathedral", "Claude Monet"),
	}}
	gen := &stubGenerator{content: &vision.RelatedContext{
		SimilarArtworks: []models.RelatedArtwork{
			{Title: "Poppies", Artist: "Claude Monet", Source: "ai"},
		},
		ContemporaryArtists: []string{"Pierre-Auguste Renoir (1841-1919), Impressionism."},
		HistoricalContext:   "Painted during the height of Impressionism.",
	}}
	assembler, bundles := newTestAssembler(&stubFinder{}, src, gen)
	defer bundles.Stop()

	bundle := assembler.Assemble(context.Background(), currentArtwork(), "user-1")

	if len(bundle.SimilarArtworks) != quota {
		t.Fatalf("got %d similar artworks, want %d", len(bundle.SimilarArtworks), quota)
	}
	for _, art := range bundle.SimilarArtworks {
		if art.Source == "ai" {
			t.Errorf("AI suggestion %q used although museum works filled the quota", art.Title)
		}
	}
	for _, art := range bundle.SimilarArtworks {
		if art.Title == "Water Lilies" {
			t.Error("current title included in related list")
		}
		if art.Explanation == "" {
			t.Errorf("artwork %q has no explanation", art.Title)
		}
		if art.ImageURL == "" {
			t.Errorf("artwork %q has no image", art.Title)
		}
	}
}

func TestAssembleNarrativeAttachedWhenQuotaFilled(t *testing.T) {
	src := &stubMuseum{byArtist: []models.RelatedArtwork{
		museumEntry("Haystacks", "Claude Monet"),
		museumEntry("Impression, Sunrise", "Claude Monet"),
		museumEntry("Rouen Cathedral", "Claude Monet"),
	}}
	gen := &stubGenerator{content: &vision.RelatedContext{
		ContemporaryArtists: []string{"Berthe Morisot (1841-1895), Impressionism."},
		HistoricalContext:   "The Impressionists exhibited independently from 1874.",
	}}
	assembler, bundles := newTestAssembler(&stubFinder{}, src, gen)
	defer bundles.Stop()

	bundle := assembler.Assemble(context.Background(), currentArtwork(), "user-1")

	if gen.contentCalls != 1 {
		t.Errorf("generator consulted %d times, want 1", gen.contentCalls)
	}
	if bundle.HistoricalContext == "" {
		t.Error("bundle has no historical context although the generator supplied one")
	}
	if len(bundle.ContemporaryArtists) != 1 {
		t.Errorf("ContemporaryArtists = %v, want the generator's list", bundle.ContemporaryArtists)
	}
}

func TestAssembleMovementTopUpDeduplicates(t *testing.T) {
	src := &stubMuseum{
		byArtist: []models.RelatedArtwork{
			museumEntry("Haystacks", "Claude Monet"),
		},
		byMovement: []models.RelatedArtwork{
			museumEntry("Haystacks", "Claude Monet"), // duplicate of same-artist result
			museumEntry("Dance at Le Moulin", "Pierre-Auguste Renoir"),
		},
	}
	assembler, bundles := newTestAssembler(&stubFinder{}, src, &stubGenerator{})
	defer bundles.Stop()

	bundle := assembler.Assemble(context.Background(), currentArtwork(), "user-1")

	if len(bundle.SimilarArtworks) != 2 {
		t.Fatalf("got %d similar artworks, want 2", len(bundle.SimilarArtworks))
	}
	titles := map[string]int{}
	for _, art := range bundle.SimilarArtworks {
		titles[art.Title]++
	}
	if titles["Haystacks"] != 1 {
		t.Errorf("Haystacks appeared %d times, want 1", titles["Haystacks"])
	}
}

func TestAssembleSkipsUnknownMovement(t *testing.T) {
	src := &stubMuseum{byMovement: []models.RelatedArtwork{
		museumEntry("Something", "Somebody"),
	}}
	assembler, bundles := newTestAssembler(&stubFinder{}, src, &stubGenerator{})
	defer bundles.Stop()

	artwork := currentArtwork()
	artwork.Movement = "Unknown"
	bundle := assembler.Assemble(context.Background(), artwork, "user-1")

	for _, art := range bundle.SimilarArtworks {
		if art.Title == "Something" {
			t.Error("movement results used despite Unknown movement")
		}
	}
}

func TestAssembleSuggestionsDropPlaceholderOnly(t *testing.T) {
	gen := &stubGenerator{content: &vision.RelatedContext{
		SimilarArtworks: []models.RelatedArtwork{
			{Title: "Invented Artwork", Artist: "Nobody", Source: "ai"},
			{Title: "The Japanese Footbridge", Artist: "Claude Monet", Source: "ai", Explanation: "Shares the garden motif"},
		},
		ContemporaryArtists: []string{"Pierre-Auguste Renoir (1841-1919), Impressionism."},
		HistoricalContext:   "Painted during the height of Impressionism.",
	}}
	src := &stubMuseum{images: map[string]string{
		"The Japanese Footbridge": "https://images.example/bridge.jpg",
	}}
	assembler, bundles := newTestAssembler(&stubFinder{}, src, gen)
	defer bundles.Stop()

	bundle := assembler.Assemble(context.Background(), currentArtwork(), "user-1")

	if len(bundle.SimilarArtworks) != 1 {
		t.Fatalf("got %d similar artworks, want 1", len(bundle.SimilarArtworks))
	}
	got := bundle.SimilarArtworks[0]
	if got.Title != "The Japanese Footbridge" {
		t.Errorf("kept %q, want the suggestion with a real image", got.Title)
	}
	if got.ImageURL != "https://images.example/bridge.jpg" {
		t.Errorf("ImageURL = %q", got.ImageURL)
	}
	if got.Explanation != "Shares the garden motif" {
		t.Errorf("Explanation = %q, want the AI similarity kept", got.Explanation)
	}
	if len(bundle.ContemporaryArtists) != 1 || bundle.HistoricalContext == "" {
		t.Errorf("narrative missing: %+v", bundle)
	}
}

func TestAssembleSuggestionUsesStoredImage(t *testing.T) {
	gen := &stubGenerator{content: &vision.RelatedContext{
		SimilarArtworks: []models.RelatedArtwork{
			{Title: "Poppies", Artist: "Claude Monet", Source: "ai"},
		},
	}}
	finder := &stubFinder{known: map[string]*models.Artwork{
		"Poppies": {ID: "art-9", Title: "Poppies", Artist: "Claude Monet", ImageURL: "https://stored.example/poppies.jpg"},
	}}
	assembler, bundles := newTestAssembler(finder, &stubMuseum{}, gen)
	defer bundles.Stop()

	bundle := assembler.Assemble(context.Background(), currentArtwork(), "user-1")

	if len(bundle.SimilarArtworks) != 1 {
		t.Fatalf("got %d similar artworks, want 1", len(bundle.SimilarArtworks))
	}
	if got := bundle.SimilarArtworks[0].ImageURL; got != "https://stored.example/poppies.jpg" {
		t.Errorf("ImageURL = %q, want the stored image", got)
	}
}

func TestAssembleCachesPerArtworkAndUser(t *testing.T) {
	src := &stubMuseum{byArtist: []models.RelatedArtwork{
		museumEntry("Haystacks", "Claude Monet"),
		museumEntry("Impression, Sunrise", "Claude Monet"),
		museumEntry("Rouen Cathedral", "Claude Monet"),
	}}
	assembler, bundles := newTestAssembler(&stubFinder{}, src, &stubGenerator{})
	defer bundles.Stop()

	ctx := context.Background()
	artwork := currentArtwork()

	assembler.Assemble(ctx, artwork, "user-1")
	assembler.Assemble(ctx, artwork, "user-1")
	if src.artistCalls != 1 {
		t.Errorf("museum queried %d times for the same (artwork, user), want 1", src.artistCalls)
	}

	assembler.Assemble(ctx, artwork, "user-2")
	if src.artistCalls != 2 {
		t.Errorf("museum queried %d times across users, want 2", src.artistCalls)
	}
}

func TestAssembleEmptyBundleIsValid(t *testing.T) {
	assembler, bundles := newTestAssembler(&stubFinder{}, &stubMuseum{}, &stubGenerator{})
	defer bundles.Stop()

	artwork := &models.Artwork{ID: "art-0", Title: "Obscure Piece", Artist: "Nobody"}
	bundle := assembler.Assemble(context.Background(), artwork, "user-1")
	if bundle == nil {
		t.Fatal("Assemble() = nil, want empty bundle")
	}
	if bundle.SimilarArtworks == nil || len(bundle.SimilarArtworks) != 0 {
		t.Errorf("SimilarArtworks = %v, want empty non-nil slice", bundle.SimilarArtworks)
	}
}
