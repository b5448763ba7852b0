// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package museum

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/atelierhq/atelier/internal/cache"
	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/logging"
	"github.com/atelierhq/atelier/internal/metrics"
	"github.com/atelierhq/atelier/internal/models"
)

const (
	museumName = "Metropolitan Museum of Art"

	// Candidate fan-out per search. Related searches inspect more objects
	// because most candidates fail the image or artist checks.
	singleCandidateLimit  = 10
	relatedCandidateLimit = 20

	// Harvested related lists are capped before caching; callers trim
	// further with their own limits.
	relatedHarvestLimit = 10

	memoTTL = time.Hour
)

const placeholderPrefix = "https://via.placeholder.com/"

// Service verifies artworks against the museum collection and serves
// related-artwork searches, memoizing results in bounded LRU caches.
type Service struct {
	api collectionAPI

	lookups         *cache.LRUCache[*models.MuseumArtwork]
	relatedArtist   *cache.LRUCache[[]models.RelatedArtwork]
	relatedMovement *cache.LRUCache[[]models.RelatedArtwork]
}

// NewService creates a lookup service over api. LRU capacities come from
// cache configuration.
func NewService(api collectionAPI, cacheCfg *config.CacheConfig) *Service {
	return &Service{
		api:             api,
		lookups:         cache.NewLRUCache[*models.MuseumArtwork](cacheCfg.LookupLRUSize, memoTTL),
		relatedArtist:   cache.NewLRUCache[[]models.RelatedArtwork](cacheCfg.RelatedLRUSize, memoTTL),
		relatedMovement: cache.NewLRUCache[[]models.RelatedArtwork](cacheCfg.RelatedLRUSize, memoTTL),
	}
}

// FindArtwork searches the collection for the given title and artist and
// returns the best-scoring verified match, or nil when no candidate clears
// the match threshold with a primary image. Misses are memoized alongside
// hits so repeated lookups for unverifiable artworks stay cheap.
func (s *Service) FindArtwork(ctx context.Context, title, artist string) *models.MuseumArtwork {
	key := strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(artist))
	if match, ok := s.lookups.Get(key); ok {
		metrics.RecordCacheAccess("museum_lookup", true)
		return match
	}
	metrics.RecordCacheAccess("museum_lookup", false)

	query := strings.TrimSpace(title + " " + artist)
	ids, err := s.api.Search(ctx, query, false, false)
	if err != nil {
		logging.Warn().Err(err).Str("title", title).Msg("Museum search failed")
		return nil
	}
	if len(ids) > singleCandidateLimit {
		ids = ids[:singleCandidateLimit]
	}

	var (
		best      *metObject
		bestScore int
	)
	for _, id := range ids {
		obj, err := s.api.Object(ctx, id)
		if err != nil {
			continue
		}
		if obj.PrimaryImage == "" {
			continue
		}
		score := matchScore(obj.Title, obj.ArtistDisplayName, title, artist)
		if score >= matchThreshold && score > bestScore {
			best = obj
			bestScore = score
		}
	}

	var match *models.MuseumArtwork
	if best != nil {
		metrics.MuseumMatchScore.Observe(float64(bestScore))
		match = toMuseumArtwork(best)
	}
	s.lookups.Add(key, match)
	return match
}

// RelatedByArtist returns other collection works by the named artist,
// excluding any whose title matches excludeTitle. The harvested list is
// cached per artist; exclusion and limit apply per call.
func (s *Service) RelatedByArtist(ctx context.Context, artist, excludeTitle string, limit int) []models.RelatedArtwork {
	key := strings.ToLower(strings.TrimSpace(artist))
	harvested, ok := s.relatedArtist.Get(key)
	metrics.RecordCacheAccess("museum_related_artist", ok)
	if !ok {
		harvested = s.harvestByArtist(ctx, artist)
		s.relatedArtist.Add(key, harvested)
	}

	excludeLower := strings.ToLower(strings.TrimSpace(excludeTitle))
	results := make([]models.RelatedArtwork, 0, limit)
	for _, art := range harvested {
		if excludeLower != "" && strings.ToLower(art.Title) == excludeLower {
			continue
		}
		results = append(results, art)
		if len(results) >= limit {
			break
		}
	}
	return results
}

// RelatedByMovement returns collection works tagged or classified under the
// named movement. Cached per movement; limit applies per call.
func (s *Service) RelatedByMovement(ctx context.Context, movement string, limit int) []models.RelatedArtwork {
	key := strings.ToLower(strings.TrimSpace(movement))
	harvested, ok := s.relatedMovement.Get(key)
	metrics.RecordCacheAccess("museum_related_movement", ok)
	if !ok {
		harvested = s.harvestByMovement(ctx, movement)
		s.relatedMovement.Add(key, harvested)
	}

	if len(harvested) > limit {
		harvested = harvested[:limit]
	}
	return harvested
}

// ImageURL resolves a display image for an artwork: a stored URL wins, then
// a verified museum image, then a generated placeholder. Stored placeholder
// URLs are treated as missing so a museum image can replace them.
func (s *Service) ImageURL(ctx context.Context, title, artist, stored string) string {
	if stored != "" && !strings.HasPrefix(stored, placeholderPrefix) {
		return stored
	}
	if match := s.FindArtwork(ctx, title, artist); match != nil {
		return match.ImageURL
	}
	return PlaceholderURL(title)
}

// PlaceholderURL builds a placeholder image URL carrying the artwork title.
func PlaceholderURL(title string) string {
	return placeholderPrefix + "400x300/7c3aed/ffffff?text=" + url.QueryEscape(title)
}

// IsPlaceholder reports whether a URL is a generated placeholder rather
// than a real artwork image.
func IsPlaceholder(imageURL string) bool {
	return strings.HasPrefix(imageURL, placeholderPrefix)
}

// harvestByArtist fans out a related search for an artist and keeps objects
// that actually belong to them and carry an image.
func (s *Service) harvestByArtist(ctx context.Context, artist string) []models.RelatedArtwork {
	ids, err := s.api.Search(ctx, artist, true, true)
	if err != nil {
		logging.Warn().Err(err).Str("artist", artist).Msg("Related artist search failed")
		return nil
	}
	if len(ids) > relatedCandidateLimit {
		ids = ids[:relatedCandidateLimit]
	}

	artistLower := strings.ToLower(strings.TrimSpace(artist))
	results := make([]models.RelatedArtwork, 0, relatedHarvestLimit)
	for _, id := range ids {
		obj, err := s.api.Object(ctx, id)
		if err != nil {
			continue
		}
		if obj.PrimaryImage == "" {
			continue
		}
		objArtist := strings.ToLower(obj.ArtistDisplayName)
		if objArtist == "" ||
			(!strings.Contains(objArtist, artistLower) && !strings.Contains(artistLower, objArtist)) {
			continue
		}
		results = append(results, toRelatedArtwork(obj))
		if len(results) >= relatedHarvestLimit {
			break
		}
	}
	return results
}

// harvestByMovement fans out a related search for a movement keyword.
func (s *Service) harvestByMovement(ctx context.Context, movement string) []models.RelatedArtwork {
	ids, err := s.api.Search(ctx, movement+" painting", false, true)
	if err != nil {
		logging.Warn().Err(err).Str("movement", movement).Msg("Related movement search failed")
		return nil
	}
	if len(ids) > relatedCandidateLimit {
		ids = ids[:relatedCandidateLimit]
	}

	results := make([]models.RelatedArtwork, 0, relatedHarvestLimit)
	for _, id := range ids {
		obj, err := s.api.Object(ctx, id)
		if err != nil {
			continue
		}
		if obj.PrimaryImage == "" {
			continue
		}
		results = append(results, toRelatedArtwork(obj))
		if len(results) >= relatedHarvestLimit {
			break
		}
	}
	return results
}

func toMuseumArtwork(obj *metObject) *models.MuseumArtwork {
	return &models.MuseumArtwork{
		ObjectID:   obj.ObjectID,
		Title:      obj.Title,
		Artist:     obj.ArtistDisplayName,
		Year:       obj.ObjectDate,
		Movement:   inferMovement(obj),
		Museum:     museumName,
		ImageURL:   displayImage(obj),
		ObjectURL:  obj.ObjectURL,
		Department: obj.Department,
	}
}

func toRelatedArtwork(obj *metObject) models.RelatedArtwork {
	return models.RelatedArtwork{
		Title:    obj.Title,
		Artist:   obj.ArtistDisplayName,
		Year:     obj.ObjectDate,
		Movement: inferMovement(obj),
		Museum:   museumName,
		ImageURL: displayImage(obj),
		Source:   "museum",
	}
}

// displayImage prefers the smaller rendition when the museum provides one.
func displayImage(obj *metObject) string {
	if obj.PrimaryImageSmall != "" {
		return obj.PrimaryImageSmall
	}
	return obj.PrimaryImage
}
