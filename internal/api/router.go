// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/atelierhq/atelier/internal/auth"
	"github.com/atelierhq/atelier/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to chi's
// func(http.Handler) http.Handler so the custom middleware package works
// with r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router assembles the HTTP routes.
type Router struct {
	handler *Handler
	authMW  *auth.Middleware
	chiMW   *ChiMiddleware
}

// NewRouter creates a router over the given handler set.
func NewRouter(handler *Handler, authMW *auth.Middleware, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler: handler,
		authMW:  authMW,
		chiMW:   chiMW,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMW.CORS()) // global so OPTIONS preflight always resolves
	r.Use(chiMiddleware(middleware.Compression))

	// Health endpoints: permissive limits for monitoring pollers.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMW.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
	})
	r.With(router.chiMW.RateLimitHealth(), APISecurityHeaders()).
		Get("/api/v1/ready", router.handler.Ready)

	// Authentication endpoints: strict limits against brute force. Login
	// gets the strictest tier (5 attempts per 5 minutes).
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.chiMW.RateLimitAuth())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.With(router.chiMW.RateLimitLogin()).Post("/login", router.handler.Login)
		r.Post("/register", router.handler.Register)
		r.Post("/logout", router.handler.Logout)

		r.With(router.authMW.Authenticate).Get("/me", router.handler.Me)
	})

	// Core API endpoints: all require authentication.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMW.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(router.authMW.Authenticate)

		// Uploads are heavier; write tier.
		r.With(router.chiMW.RateLimitWrite()).Post("/recognize", router.handler.Recognize)

		r.Route("/artworks", func(r chi.Router) {
			r.Get("/", router.handler.ListArtworks)
			r.Get("/search", router.handler.SearchArtwork)
			r.With(router.chiMW.RateLimitWrite()).Post("/create", router.handler.CreateArtwork)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", router.handler.GetArtwork)
				r.Get("/learn", router.handler.Learn)
				r.Get("/artist", router.handler.Artist)
				r.Get("/related", router.handler.Related)
				r.Post("/chat", router.handler.Chat)
				r.Get("/quiz", router.handler.GetQuiz)
				r.Post("/quiz", router.handler.SubmitQuiz)
			})
		})

		r.Route("/gallery", func(r chi.Router) {
			r.Get("/", router.handler.ListGallery)
			r.Post("/", router.handler.AddGalleryItem)
			r.Delete("/{id}", router.handler.RemoveGalleryItem)
		})

		r.Get("/progress", router.handler.Progress)
		r.Get("/leaderboard", router.handler.Leaderboard)

		r.Get("/ws", router.handler.WebSocket)
	})

	// Observability and docs.
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	))

	// Uploaded images are served back under /uploads/.
	if router.handler.uploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(router.handler.uploadsDir)))
		r.With(router.chiMW.RateLimit()).Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}
