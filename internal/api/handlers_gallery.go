// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelierhq/atelier/internal/auth"
	"github.com/atelierhq/atelier/internal/database"
	"github.com/atelierhq/atelier/internal/models"
)

// galleryAddRequest is the body of POST /api/v1/gallery.
type galleryAddRequest struct {
	ArtworkID string `json:"artwork_id" validate:"required,uuid4"`
}

// ListGallery handles GET /api/v1/gallery.
//
//	@Summary		List the user's gallery
//	@Tags			gallery
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Router			/api/v1/gallery [get]
func (h *Handler) ListGallery(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Authentication required", nil)
		return
	}

	items, err := h.store.ListGallery(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to list gallery", err)
		return
	}
	if items == nil {
		items = []*models.GalleryItem{}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"gallery": items})
}

// AddGalleryItem handles POST /api/v1/gallery. Adding the same artwork
// twice is a conflict.
//
//	@Summary		Save an artwork to the gallery
//	@Tags			gallery
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	models.APIResponse
//	@Failure		404	{object}	models.APIResponse
//	@Failure		409	{object}	models.APIResponse
//	@Router			/api/v1/gallery [post]
func (h *Handler) AddGalleryItem(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Authentication required", nil)
		return
	}

	var req galleryAddRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	item, err := h.store.AddGalleryItem(r.Context(), claims.UserID, req.ArtworkID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicateGalleryItem):
			respondError(w, http.StatusConflict, codeConflict, "Artwork already in gallery", nil)
		case errors.Is(err, database.ErrNotFound):
			respondError(w, http.StatusNotFound, codeNotFound, "Artwork not found", nil)
		default:
			respondError(w, http.StatusInternalServerError, codeInternal, "Failed to save to gallery", err)
		}
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]interface{}{"item": item})
}

// RemoveGalleryItem handles DELETE /api/v1/gallery/{id}. Removing another
// user's item is forbidden.
//
//	@Summary		Remove a gallery item
//	@Tags			gallery
//	@Produce		json
//	@Param			id	path		string	true	"Gallery item ID"
//	@Success		200	{object}	models.APIResponse
//	@Failure		403	{object}	models.APIResponse
//	@Failure		404	{object}	models.APIResponse
//	@Router			/api/v1/gallery/{id} [delete]
func (h *Handler) RemoveGalleryItem(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Authentication required", nil)
		return
	}

	itemID := chi.URLParam(r, "id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, codeValidation, "Missing gallery item ID", nil)
		return
	}

	if err := h.store.RemoveGalleryItem(r.Context(), claims.UserID, itemID); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondError(w, http.StatusNotFound, codeNotFound, "Gallery item not found", nil)
		case errors.Is(err, database.ErrNotOwner):
			respondError(w, http.StatusForbidden, codeForbidden, "Gallery item belongs to another user", nil)
		default:
			respondError(w, http.StatusInternalServerError, codeInternal, "Failed to remove gallery item", err)
		}
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"removed": itemID})
}
