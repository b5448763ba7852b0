// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

// Package main is the entry point for the Atelier server.
//
// Atelier is an educational web application: photograph an artwork, have it
// recognized by a vision AI model, then explore it through generated
// descriptions, conversational chat in the artist's voice, quizzes, and
// related-artwork discovery backed by the Metropolitan Museum of Art
// Collection API.
//
// # Application Architecture
//
// The server initializes components in this order:
//
//  1. Configuration: Koanf v2 layered sources (defaults, YAML, ATELIER_* env)
//  2. Logging: zerolog, json or console output
//  3. DuckDB: artworks, users, progress, gallery, quiz attempts
//  4. Badger: per-(user, artwork) chat history
//  5. Vision client: recognition gate and content generators behind a
//     circuit breaker; static fallbacks when no API key is configured
//  6. Museum client: Met Collection API with match scoring, movement
//     inference and LRU memoization, behind a circuit breaker
//  7. WebSocket hub: live discovery and badge broadcasts
//  8. HTTP server: chi routes with JWT auth and Swagger documentation
//
// Long-running pieces (hub, Badger GC, DuckDB checkpointing, HTTP server)
// run under a suture supervisor tree.
//
// # Configuration
//
// All settings have defaults; the interesting ones:
//
//	export ATELIER_JWT_SECRET=$(openssl rand -base64 32)
//	export ATELIER_VISION_API_KEY=sk-...        # empty = static fallbacks
//	export ATELIER_DUCKDB_PATH=data/atelier.db
//	export ATELIER_BADGER_PATH=data/chat
//	export ATELIER_CORS_ORIGINS=https://atelier.example.com
//	./atelier
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger a graceful shutdown: the server stops
// accepting connections, in-flight requests get 10 seconds to finish, and
// the stores are closed.
//
// @title Atelier API
// @version 1.0
// @description AI-powered artwork discovery and learning service.
// @description
// @description Photograph artwork, have it recognized, then explore it through
// @description generated descriptions, chat with the artist, quizzes, and
// @description verified related artworks from the Met Collection API.
// @description
// @description ## Authentication
// @description
// @description Most endpoints require JWT authentication via HTTP-only cookie or
// @description Bearer token. Use /api/v1/auth/login to obtain a token.
// @description
// @description ## Rate Limiting
// @description
// @description Default limit: 100 requests per minute per IP. Login attempts are
// @description limited to 5 per 5 minutes.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/atelierhq/atelier/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8000
// @BasePath /
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in cookie
// @name token
// @description JWT token stored in an HTTP-only cookie. Obtain via /api/v1/auth/login.
package main
