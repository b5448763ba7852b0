// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/auth"
	"github.com/atelierhq/atelier/internal/database"
	"github.com/atelierhq/atelier/internal/gamification"
	"github.com/atelierhq/atelier/internal/logging"
	"github.com/atelierhq/atelier/internal/metrics"
	"github.com/atelierhq/atelier/internal/models"
)

// allowedImageExtensions are the accepted upload extensions. An upload
// without an extension is stored as .jpg.
var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Recognize handles POST /api/v1/recognize: multipart image upload, content
// hash short-circuit, recognition gate, artwork upsert, XP award, and
// discovery broadcast.
//
// A hash match returns the stored artwork with cached:true and never calls
// the vision model. XP is awarded only for fresh successful recognitions.
//
//	@Summary		Recognize an artwork photo
//	@Tags			recognition
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file	true	"Artwork image (png/jpg/jpeg/gif, max 16MB)"
//	@Success		200		{object}	models.APIResponse
//	@Failure		400		{object}	models.APIResponse
//	@Failure		413		{object}	models.APIResponse
//	@Router			/api/v1/recognize [post]
func (h *Handler) Recognize(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Authentication required", nil)
		return
	}

	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			metrics.UploadsRejected.WithLabelValues("too_large").Inc()
			respondError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge,
				fmt.Sprintf("Image exceeds the %dMB upload limit", h.maxUploadBytes>>20), nil)
			return
		}
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid multipart upload", err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		metrics.UploadsRejected.WithLabelValues("missing_file").Inc()
		respondError(w, http.StatusBadRequest, codeValidation, "Missing image file", err)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	if !allowedImageExtensions[ext] {
		metrics.UploadsRejected.WithLabelValues("bad_extension").Inc()
		respondError(w, http.StatusBadRequest, codeValidation,
			"Unsupported image type, use png, jpg, jpeg or gif", nil)
		return
	}

	imageData, imageHash, err := readAndHash(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Failed to read image", err)
		return
	}
	metrics.UploadBytes.Observe(float64(len(imageData)))

	// Hash short-circuit: a previously seen image skips the model entirely.
	if cached, err := h.store.GetArtworkByImageHash(r.Context(), imageHash); err == nil {
		metrics.RecordRecognition("cached", time.Since(start))
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status: "success",
			Data: &models.RecognizeResponse{
				Recognition: recognitionFromArtwork(cached),
				Artwork:     cached,
				Cached:      true,
			},
			Metadata: models.Metadata{Timestamp: time.Now(), Cached: true},
		})
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusInternalServerError, codeInternal, "Artwork lookup failed", err)
		return
	}

	imageURL, err := h.saveUpload(imageData, ext)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to store upload", err)
		return
	}

	recognition := h.recognizer.Recognize(r.Context(), imageData)
	if !recognition.Success {
		metrics.RecordRecognition("rejected", time.Since(start))
		respondSuccess(w, http.StatusOK, &models.RecognizeResponse{
			Recognition: recognition,
		})
		return
	}

	artwork, created, err := h.store.UpsertRecognizedArtwork(r.Context(), recognition, imageHash, imageURL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to save artwork", err)
		return
	}

	_, newBadges, err := h.progress.RecordDiscovery(r.Context(), claims.UserID)
	if err != nil {
		// Recognition already succeeded; report it even if XP bookkeeping
		// failed.
		logging.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to record discovery XP")
	}

	if h.hub != nil {
		h.hub.BroadcastDiscovery(claims.Username, artwork, created)
		for _, badgeID := range newBadges {
			h.hub.BroadcastBadgeEarned(claims.Username, badgeID)
		}
	}

	xpAwarded := gamification.XPPerDiscovery
	if err != nil {
		xpAwarded = 0
	}

	metrics.RecordRecognition("success", time.Since(start))
	respondSuccess(w, http.StatusOK, &models.RecognizeResponse{
		Recognition: recognition,
		Artwork:     artwork,
		XPAwarded:   xpAwarded,
	})
}

// readAndHash consumes the upload, returning the bytes and the SHA-256 hex
// digest. Hashing streams through the same pass as the read.
func readAndHash(file io.Reader) ([]byte, string, error) {
	hasher := sha256.New()
	data, err := io.ReadAll(io.TeeReader(file, hasher))
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", errors.New("empty upload")
	}
	return data, hex.EncodeToString(hasher.Sum(nil)), nil
}

// saveUpload writes the image under a UUID filename and returns its serving
// path.
func (h *Handler) saveUpload(data []byte, ext string) (string, error) {
	if err := os.MkdirAll(h.uploadsDir, 0o750); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(h.uploadsDir, name)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return "/uploads/" + name, nil
}

// recognitionFromArtwork rebuilds a success result from a stored artwork
// for cache-hit responses.
func recognitionFromArtwork(artwork *models.Artwork) *models.RecognitionResult {
	return &models.RecognitionResult{
		Success:     true,
		IsArtwork:   true,
		Title:       artwork.Title,
		Artist:      artwork.Artist,
		Year:        artwork.Year,
		Movement:    artwork.Movement,
		Museum:      artwork.Museum,
		Description: artwork.Description,
		Confidence:  artwork.Confidence,
	}
}

