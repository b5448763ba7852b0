// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atelierhq/atelier/internal/auth"
	"github.com/atelierhq/atelier/internal/database"
	"github.com/atelierhq/atelier/internal/gamification"
	"github.com/atelierhq/atelier/internal/logging"
	"github.com/atelierhq/atelier/internal/models"
)

// museumSourceConfidence is recorded for artworks created from a
// museum-sourced related suggestion; AI-sourced suggestions get a lower
// baseline.
const (
	museumSourceConfidence = 0.9
	aiSourceConfidence     = 0.7
)

// ListArtworks handles GET /api/v1/artworks.
//
//	@Summary		List discovered artworks
//	@Tags			artworks
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			offset	query		int	false	"Offset"
//	@Success		200		{object}	models.APIResponse
//	@Router			/api/v1/artworks [get]
func (h *Handler) ListArtworks(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.pagination(r)

	artworks, total, err := h.store.ListArtworks(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to list artworks", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"artworks": artworks,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// SearchArtwork handles GET /api/v1/artworks/search, an existence lookup by
// exact (title, artist) pair. Clients probe it before offering the "add to
// collection" action on a related suggestion.
//
//	@Summary		Look up an artwork by title and artist
//	@Tags			artworks
//	@Produce		json
//	@Param			title	query		string	true	"Artwork title"
//	@Param			artist	query		string	true	"Artist name"
//	@Success		200		{object}	models.APIResponse
//	@Router			/api/v1/artworks/search [get]
func (h *Handler) SearchArtwork(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	artist := r.URL.Query().Get("artist")
	if title == "" || artist == "" {
		respondSuccess(w, http.StatusOK, map[string]interface{}{"exists": false})
		return
	}

	artwork, err := h.store.GetArtworkByTitleArtist(r.Context(), title, artist)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondSuccess(w, http.StatusOK, map[string]interface{}{"exists": false})
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternal, "Artwork lookup failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"exists":     true,
		"artwork_id": artwork.ID,
	})
}

// GetArtwork handles GET /api/v1/artworks/{id}.
//
//	@Summary		Artwork detail
//	@Tags			artworks
//	@Produce		json
//	@Param			id	path		string	true	"Artwork ID"
//	@Success		200	{object}	models.APIResponse
//	@Failure		404	{object}	models.APIResponse
//	@Router			/api/v1/artworks/{id} [get]
func (h *Handler) GetArtwork(w http.ResponseWriter, r *http.Request) {
	artwork, ok := h.artworkFromPath(w, r)
	if !ok {
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"artwork": artwork})
}

// Learn handles GET /api/v1/artworks/{id}/learn. The detailed description
// is generated once and persisted on the artwork; later requests serve the
// stored text.
//
//	@Summary		Detailed artwork description
//	@Tags			artworks
//	@Produce		json
//	@Param			id	path		string	true	"Artwork ID"
//	@Success		200	{object}	models.APIResponse
//	@Failure		404	{object}	models.APIResponse
//	@Router			/api/v1/artworks/{id}/learn [get]
func (h *Handler) Learn(w http.ResponseWriter, r *http.Request) {
	artwork, ok := h.artworkFromPath(w, r)
	if !ok {
		return
	}

	if artwork.DetailedDescription != "" {
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status: "success",
			Data: map[string]interface{}{
				"artwork":     artwork,
				"description": artwork.DetailedDescription,
			},
			Metadata: models.Metadata{Timestamp: time.Now(), Cached: true},
		})
		return
	}

	description := h.generator.GenerateDescription(r.Context(), artwork)
	if err := h.store.UpdateDetailedDescription(r.Context(), artwork.ID, description); err != nil {
		// Serve the generated text anyway; the next request regenerates.
		logging.Error().Err(err).Str("artwork_id", artwork.ID).Msg("Failed to persist detailed description")
	}
	artwork.DetailedDescription = description

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"artwork":     artwork,
		"description": description,
	})
}

// Artist handles GET /api/v1/artworks/{id}/artist.
//
//	@Summary		Artist biography
//	@Tags			artworks
//	@Produce		json
//	@Param			id	path		string	true	"Artwork ID"
//	@Success		200	{object}	models.APIResponse
//	@Failure		404	{object}	models.APIResponse
//	@Router			/api/v1/artworks/{id}/artist [get]
func (h *Handler) Artist(w http.ResponseWriter, r *http.Request) {
	artwork, ok := h.artworkFromPath(w, r)
	if !ok {
		return
	}

	info := h.generator.GenerateArtistInfo(r.Context(), artwork)
	respondSuccess(w, http.StatusOK, map[string]interface{}{"artist": info})
}

// Related handles GET /api/v1/artworks/{id}/related.
//
//	@Summary		Related-content bundle
//	@Tags			artworks
//	@Produce		json
//	@Param			id	path		string	true	"Artwork ID"
//	@Success		200	{object}	models.APIResponse
//	@Failure		404	{object}	models.APIResponse
//	@Router			/api/v1/artworks/{id}/related [get]
func (h *Handler) Related(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Authentication required", nil)
		return
	}

	artwork, ok := h.artworkFromPath(w, r)
	if !ok {
		return
	}

	bundle := h.related.Assemble(r.Context(), artwork, claims.UserID)
	respondSuccess(w, http.StatusOK, bundle)
}

// CreateArtwork handles POST /api/v1/artworks/create, persisting an artwork
// from a related-content suggestion. Duplicate (title, artist) pairs return
// the existing artwork with already_exists set; XP is awarded either way.
//
//	@Summary		Create artwork from a suggestion
//	@Tags			artworks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.CreateArtworkRequest	true	"Artwork details"
//	@Success		201		{object}	models.APIResponse
//	@Failure		400		{object}	models.APIResponse
//	@Router			/api/v1/artworks/create [post]
func (h *Handler) CreateArtwork(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Authentication required", nil)
		return
	}

	var req models.CreateArtworkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	confidence := aiSourceConfidence
	if req.Source == "museum" {
		confidence = museumSourceConfidence
	}

	artwork, alreadyExists, err := h.store.CreateArtworkFromSuggestion(r.Context(), &req, confidence)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to create artwork", err)
		return
	}

	_, newBadges, err := h.progress.RecordDiscovery(r.Context(), claims.UserID)
	if err != nil {
		logging.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to record discovery XP")
	}

	if h.hub != nil && !alreadyExists {
		h.hub.BroadcastDiscovery(claims.Username, artwork, true)
	}
	if h.hub != nil {
		for _, badgeID := range newBadges {
			h.hub.BroadcastBadgeEarned(claims.Username, badgeID)
		}
	}

	xpAwarded := gamification.XPPerDiscovery
	if err != nil {
		xpAwarded = 0
	}

	status := http.StatusCreated
	if alreadyExists {
		status = http.StatusOK
	}

	respondSuccess(w, status, map[string]interface{}{
		"artwork":        artwork,
		"already_exists": alreadyExists,
		"xp_awarded":     xpAwarded,
	})
}

// artworkFromPath loads the artwork named by the {id} URL parameter,
// responding 404 when it does not exist.
func (h *Handler) artworkFromPath(w http.ResponseWriter, r *http.Request) (*models.Artwork, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, codeValidation, "Missing artwork ID", nil)
		return nil, false
	}

	artwork, err := h.store.GetArtworkByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "Artwork not found", nil)
			return nil, false
		}
		respondError(w, http.StatusInternalServerError, codeInternal, "Artwork lookup failed", err)
		return nil, false
	}

	return artwork, true
}
