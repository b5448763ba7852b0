// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package models

import "time"

// User is a registered account. PasswordHash is bcrypt and never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserProgress tracks gamification state for one user.
// Level is always XP/100 + 1.
type UserProgress struct {
	UserID             string    `json:"user_id"`
	XP                 int       `json:"xp"`
	Level              int       `json:"level"`
	ArtworksDiscovered int       `json:"artworks_discovered"`
	QuizzesCompleted   int       `json:"quizzes_completed"`
	Badges             []string  `json:"badges"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Badge is one entry of the badge catalog, with the earned flag resolved
// for a specific user on the progress endpoint.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// LeaderboardEntry is one row of the XP leaderboard.
type LeaderboardEntry struct {
	Rank               int    `json:"rank"`
	Username           string `json:"username"`
	XP                 int    `json:"xp"`
	Level              int    `json:"level"`
	ArtworksDiscovered int    `json:"artworks_discovered"`
}

// RegisterRequest is the body of POST /api/v1/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
