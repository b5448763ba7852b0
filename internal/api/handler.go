// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"context"
	"time"

	gorillaws "github.com/gorilla/websocket"

	"github.com/atelierhq/atelier/internal/auth"
	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/gamification"
	"github.com/atelierhq/atelier/internal/models"
	"github.com/atelierhq/atelier/internal/websocket"
)

// Store is the persistence surface the handlers depend on. *database.DB
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	UpsertRecognizedArtwork(ctx context.Context, rec *models.RecognitionResult, imageHash, imageURL string) (*models.Artwork, bool, error)
	CreateArtworkFromSuggestion(ctx context.Context, req *models.CreateArtworkRequest, confidence float64) (*models.Artwork, bool, error)
	GetArtworkByID(ctx context.Context, id string) (*models.Artwork, error)
	GetArtworkByImageHash(ctx context.Context, imageHash string) (*models.Artwork, error)
	GetArtworkByTitleArtist(ctx context.Context, title, artist string) (*models.Artwork, error)
	ListArtworks(ctx context.Context, limit, offset int) ([]*models.Artwork, int, error)
	UpdateDetailedDescription(ctx context.Context, artworkID, description string) error

	ListGallery(ctx context.Context, userID string) ([]*models.GalleryItem, error)
	AddGalleryItem(ctx context.Context, userID, artworkID string) (*models.GalleryItem, error)
	RemoveGalleryItem(ctx context.Context, userID, itemID string) error

	GetLatestQuizAttempt(ctx context.Context, userID, artworkID string) (*models.QuizAttempt, error)
	CreateQuizAttempt(ctx context.Context, userID, artworkID string, questions []models.QuizQuestion) (*models.QuizAttempt, error)
	CompleteQuizAttempt(ctx context.Context, attemptID string, score int) error
	BestQuizScore(ctx context.Context, userID, artworkID string) (int, error)

	Ping(ctx context.Context) error
}

// Recognizer is the artwork recognition gate.
type Recognizer interface {
	Recognize(ctx context.Context, imageData []byte) *models.RecognitionResult
}

// ContentGenerator produces learning content with static fallbacks.
type ContentGenerator interface {
	GenerateDescription(ctx context.Context, artwork *models.Artwork) string
	GenerateArtistInfo(ctx context.Context, artwork *models.Artwork) *models.ArtistInfo
	GenerateQuiz(ctx context.Context, artwork *models.Artwork) []models.QuizQuestion
}

// RelatedAssembler builds the related-content bundle for an artwork.
type RelatedAssembler interface {
	Assemble(ctx context.Context, artwork *models.Artwork, userID string) *models.RelatedContentBundle
}

// Conversationalist runs the as-the-artist chat with persisted history.
type Conversationalist interface {
	Converse(ctx context.Context, userID string, artwork *models.Artwork, message string) (string, []models.ChatMessage, error)
	History(userID, artworkID string) ([]models.ChatMessage, error)
}

// Handler holds all HTTP handler dependencies.
type Handler struct {
	store      Store
	recognizer Recognizer
	generator  ContentGenerator
	related    RelatedAssembler
	chat       Conversationalist
	progress   *gamification.Service
	hub        *websocket.Hub
	jwt        *auth.JWTManager

	loginLimiter *auth.LoginLimiter

	uploadsDir     string
	maxUploadBytes int64

	defaultPageSize int
	maxPageSize     int

	corsOrigins []string

	upgrader  gorillaws.Upgrader
	startedAt time.Time
}

// HandlerDeps bundles the dependencies for NewHandler.
type HandlerDeps struct {
	Store      Store
	Recognizer Recognizer
	Generator  ContentGenerator
	Related    RelatedAssembler
	Chat       Conversationalist
	Progress   *gamification.Service
	Hub        *websocket.Hub
	JWT        *auth.JWTManager

	// LoginLimiter is optional; when nil, only the router-level httprate
	// limit applies to login attempts.
	LoginLimiter *auth.LoginLimiter

	Uploads config.UploadsConfig
	API     config.APIConfig

	// CORSOrigins doubles as the websocket origin allowlist; the browser
	// sends the auth cookie on cross-site upgrade requests, so unlisted
	// origins must be rejected before the upgrade.
	CORSOrigins []string
}

// NewHandler creates the handler set.
func NewHandler(deps HandlerDeps) *Handler {
	defaultPageSize := deps.API.DefaultPageSize
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	maxPageSize := deps.API.MaxPageSize
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	maxUpload := deps.Uploads.MaxBytes
	if maxUpload <= 0 {
		maxUpload = 16 << 20
	}

	h := &Handler{
		store:           deps.Store,
		recognizer:      deps.Recognizer,
		generator:       deps.Generator,
		related:         deps.Related,
		chat:            deps.Chat,
		progress:        deps.Progress,
		hub:             deps.Hub,
		jwt:             deps.JWT,
		loginLimiter:    deps.LoginLimiter,
		uploadsDir:      deps.Uploads.Dir,
		maxUploadBytes:  maxUpload,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		corsOrigins:     deps.CORSOrigins,
		startedAt:       time.Now(),
	}
	h.upgrader = gorillaws.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
	return h
}
