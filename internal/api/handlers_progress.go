// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"net/http"

	"github.com/atelierhq/atelier/internal/auth"
)

// Progress handles GET /api/v1/progress.
//
//	@Summary		User XP, level, badges and counters
//	@Tags			progress
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Router			/api/v1/progress [get]
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Authentication required", nil)
		return
	}

	progress, badges, err := h.progress.Progress(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to load progress", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"progress": progress,
		"badges":   badges,
	})
}

// Leaderboard handles GET /api/v1/leaderboard.
//
//	@Summary		Top users by XP
//	@Tags			progress
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Router			/api/v1/leaderboard [get]
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.progress.Leaderboard(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to load leaderboard", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"leaderboard": entries})
}
