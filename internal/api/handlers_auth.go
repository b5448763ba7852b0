// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/auth"
	"github.com/atelierhq/atelier/internal/database"
	"github.com/atelierhq/atelier/internal/logging"
	"github.com/atelierhq/atelier/internal/models"
)

const tokenCookie = "token"

// Register handles POST /api/v1/auth/register.
//
//	@Summary		Register a new user
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	models.APIResponse
//	@Failure		400		{object}	models.APIResponse
//	@Failure		409		{object}	models.APIResponse
//	@Router			/api/v1/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to process password", err)
		return
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicateUser) {
			respondError(w, http.StatusConflict, codeConflict, "Username or email already exists", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to create user", err)
		return
	}

	logging.Info().Str("username", sanitizeLogValue(user.Username)).Msg("User registered")
	respondSuccess(w, http.StatusCreated, map[string]interface{}{"user": user})
}

// Login handles POST /api/v1/auth/login. The JWT is returned in the body
// and as an HTTP-only cookie so browser clients need no token storage.
//
//	@Summary		Log in
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.LoginRequest	true	"Credentials"
//	@Success		200		{object}	models.APIResponse
//	@Failure		401		{object}	models.APIResponse
//	@Router			/api/v1/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if h.loginLimiter != nil && !h.loginLimiter.Allow(clientIP(r)) {
		respondError(w, http.StatusTooManyRequests, codeRateLimited, "Too many login attempts, try again later", nil)
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			logging.Error().Err(err).Msg("Login lookup failed")
		}
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Invalid username or password", nil)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		logging.Warn().Str("username", sanitizeLogValue(req.Username)).Msg("Failed login attempt")
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Invalid username or password", nil)
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to issue token", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.jwt.SessionTimeout().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
	})

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/v1/auth/logout by expiring the token cookie.
//
//	@Summary		Log out
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Router			/api/v1/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondSuccess(w, http.StatusOK, map[string]interface{}{"message": "Logged out"})
}

// Me handles GET /api/v1/auth/me, returning the current user with progress.
//
//	@Summary		Current user
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Failure		401	{object}	models.APIResponse
//	@Router			/api/v1/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Authentication required", nil)
		return
	}

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, codeAuthentication, "Account no longer exists", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to load user", err)
		return
	}

	progress, badges, err := h.progress.Progress(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to load progress", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"user":     user,
		"progress": progress,
		"badges":   badges,
	})
}

// clientIP extracts the remote IP without the port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
