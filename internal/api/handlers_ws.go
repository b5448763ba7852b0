// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"net/http"

	"github.com/atelierhq/atelier/internal/logging"
	"github.com/atelierhq/atelier/internal/websocket"
)

// checkWebSocketOrigin validates the Origin header against the configured
// CORS origins. The upgrade request carries the auth cookie, so a page on an
// unlisted origin must not be allowed to open a socket.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	for _, allowed := range h.corsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// WebSocket handles GET /api/v1/ws, upgrading the connection and attaching
// it to the hub for discovery and badge broadcasts.
//
//	@Summary		Live discovery event stream
//	@Tags			websocket
//	@Success		101
//	@Router			/api/v1/ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, http.StatusServiceUnavailable, codeNotReady, "WebSocket hub is not running", nil)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		logging.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := websocket.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}
