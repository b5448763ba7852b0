// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"net/http"
	"time"
)

// Health handles GET /api/v1/health (liveness).
//
//	@Summary		Liveness check
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Router			/api/v1/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready handles GET /api/v1/ready (readiness). The service is ready when
// the database answers a ping.
//
//	@Summary		Readiness check
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Failure		503	{object}	models.APIResponse
//	@Router			/api/v1/ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, codeNotReady, "Database is not reachable", err)
		return
	}

	payload := map[string]interface{}{"status": "ready"}
	if h.hub != nil {
		payload["websocket_clients"] = h.hub.GetClientCount()
	}

	respondSuccess(w, http.StatusOK, payload)
}
