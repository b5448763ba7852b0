// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

// Package related assembles the related-content bundle for an artwork: up
// to three similar artworks drawn from museum works by the same artist,
// then museum works in the same movement, then AI suggestions kept only
// when the image chain finds a real image, plus contemporary-artist and
// historical-context narrative on every bundle. Bundles are cached per
// (artwork, user) for a bounded TTL.
package related

import (
	"context"
	"strings"

	"github.com/atelierhq/atelier/internal/cache"
	"github.com/atelierhq/atelier/internal/metrics"
	"github.com/atelierhq/atelier/internal/models"
	"github.com/atelierhq/atelier/internal/museum"
	"github.com/atelierhq/atelier/internal/vision"
)

// quota is the number of similar artworks a bundle carries. Sources are
// consulted in strict priority order until it is met.
const quota = 3

// ArtworkFinder looks up a stored artwork for the image chain's
// database-first step.
type ArtworkFinder interface {
	GetArtworkByTitleArtist(ctx context.Context, title, artist string) (*models.Artwork, error)
}

// MuseumSource serves verified related artworks. Every entry it returns
// carries a real image.
type MuseumSource interface {
	RelatedByArtist(ctx context.Context, artist, excludeTitle string, limit int) []models.RelatedArtwork
	RelatedByMovement(ctx context.Context, movement string, limit int) []models.RelatedArtwork
	ImageURL(ctx context.Context, title, artist, stored string) string
}

// Generator produces AI suggestions and similarity explanations.
type Generator interface {
	RelatedContent(ctx context.Context, artwork *models.Artwork) *vision.RelatedContext
	SimilarityExplanations(ctx context.Context, artwork *models.Artwork, related []models.RelatedArtwork) []models.RelatedArtwork
}

// Assembler builds related-content bundles.
type Assembler struct {
	finder    ArtworkFinder
	museum    MuseumSource
	generator Generator
	bundles   *cache.Cache
}

// NewAssembler creates an assembler. The bundle cache's TTL bounds how
// long a user sees the same related content for an artwork.
func NewAssembler(finder ArtworkFinder, museumSource MuseumSource, generator Generator, bundles *cache.Cache) *Assembler {
	return &Assembler{
		finder:    finder,
		museum:    museumSource,
		generator: generator,
		bundles:   bundles,
	}
}

type bundleKey struct {
	ArtworkID string `json:"artwork_id"`
	UserID    string `json:"user_id"`
}

// Assemble returns the related-content bundle for an artwork as seen by a
// user. Every included artwork carries an image URL and a similarity
// explanation. Assembly never fails; an empty bundle is valid.
func (a *Assembler) Assemble(ctx context.Context, artwork *models.Artwork, userID string) *models.RelatedContentBundle {
	key := cache.GenerateKey("related_content", bundleKey{ArtworkID: artwork.ID, UserID: userID})
	if cached, ok := a.bundles.Get(key); ok {
		metrics.RecordCacheAccess("related_bundle", true)
		if bundle, ok := cached.(*models.RelatedContentBundle); ok {
			return bundle
		}
	}
	metrics.RecordCacheAccess("related_bundle", false)

	similar := a.museum.RelatedByArtist(ctx, artwork.Artist, artwork.Title, quota)
	similar = a.fromSameMovement(ctx, artwork, similar)

	// The narrative (contemporary artists, historical context) is part of
	// every bundle, even when museum sources already fill the quota.
	bundle := &models.RelatedContentBundle{}
	suggested := a.generator.RelatedContent(ctx, artwork)
	if suggested != nil {
		bundle.ContemporaryArtists = suggested.ContemporaryArtists
		bundle.HistoricalContext = suggested.HistoricalContext
		if len(similar) < quota {
			similar = a.fromSuggestions(ctx, artwork, similar, suggested)
		}
	}

	bundle.SimilarArtworks = a.generator.SimilarityExplanations(ctx, artwork, similar)
	if bundle.SimilarArtworks == nil {
		bundle.SimilarArtworks = []models.RelatedArtwork{}
	}

	a.bundles.Set(key, bundle)
	return bundle
}

// fromSameMovement tops up from museum works in the same movement. Skipped
// when the movement is empty or was never resolved.
func (a *Assembler) fromSameMovement(ctx context.Context, artwork *models.Artwork, similar []models.RelatedArtwork) []models.RelatedArtwork {
	if len(similar) >= quota {
		return similar
	}
	movement := strings.TrimSpace(artwork.Movement)
	if movement == "" || strings.EqualFold(movement, "Unknown") {
		return similar
	}

	seen := seenKeys(similar, artwork)
	for _, art := range a.museum.RelatedByMovement(ctx, movement, quota-len(similar)) {
		if _, dup := seen[entryKey(art.Title, art.Artist)]; dup {
			continue
		}
		similar = append(similar, art)
		seen[entryKey(art.Title, art.Artist)] = struct{}{}
		if len(similar) >= quota {
			break
		}
	}
	return similar
}

// fromSuggestions tops up from AI suggestions, keeping only those for
// which the image chain finds a real image: the suggestion's stored
// artwork first, then a museum lookup, never the placeholder.
func (a *Assembler) fromSuggestions(ctx context.Context, artwork *models.Artwork, similar []models.RelatedArtwork, suggested *vision.RelatedContext) []models.RelatedArtwork {
	seen := seenKeys(similar, artwork)
	for _, art := range suggested.SimilarArtworks {
		if len(similar) >= quota {
			break
		}
		if _, dup := seen[entryKey(art.Title, art.Artist)]; dup {
			continue
		}

		stored := ""
		if known, err := a.finder.GetArtworkByTitleArtist(ctx, art.Title, art.Artist); err == nil {
			stored = known.ImageURL
		}
		imageURL := a.museum.ImageURL(ctx, art.Title, art.Artist, stored)
		if museum.IsPlaceholder(imageURL) {
			continue
		}
		art.ImageURL = imageURL
		similar = append(similar, art)
		seen[entryKey(art.Title, art.Artist)] = struct{}{}
	}
	return similar
}

// seenKeys seeds the dedup set with the current artwork and everything
// already selected.
func seenKeys(similar []models.RelatedArtwork, artwork *models.Artwork) map[string]struct{} {
	seen := make(map[string]struct{}, len(similar)+1)
	seen[entryKey(artwork.Title, artwork.Artist)] = struct{}{}
	for _, art := range similar {
		seen[entryKey(art.Title, art.Artist)] = struct{}{}
	}
	return seen
}

func entryKey(title, artist string) string {
	return strings.ToLower(title) + "|" + strings.ToLower(artist)
}
