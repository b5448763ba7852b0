// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"net/http"

	"github.com/atelierhq/atelier/internal/auth"
	"github.com/atelierhq/atelier/internal/models"
)

// Chat handles POST /api/v1/artworks/{id}/chat: a conversational reply in
// the artist's voice, with history persisted per (user, artwork).
//
//	@Summary		Chat with the artist
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Artwork ID"
//	@Param			request	body		models.ChatRequest	true	"Message"
//	@Success		200		{object}	models.APIResponse
//	@Failure		404		{object}	models.APIResponse
//	@Router			/api/v1/artworks/{id}/chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Authentication required", nil)
		return
	}

	artwork, ok := h.artworkFromPath(w, r)
	if !ok {
		return
	}

	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	reply, history, err := h.chat.Converse(r.Context(), claims.UserID, artwork, req.Message)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Chat failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"reply":   reply,
		"history": history,
		"artist":  artwork.Artist,
	})
}
