// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := db.getTableCreationQueries()

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements
func (db *DB) getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// image_hash is SHA-256 hex of the uploaded file; unique when
		// present so a repeated upload resolves to the same row.
		`CREATE TABLE IF NOT EXISTS artworks (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			year TEXT,
			movement TEXT,
			museum TEXT,
			description TEXT,
			detailed_description TEXT,
			image_url TEXT,
			image_hash TEXT UNIQUE,
			confidence DOUBLE NOT NULL DEFAULT 0,
			recognized_count INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (title, artist)
		)`,

		// badges is a JSON array of badge IDs.
		`CREATE TABLE IF NOT EXISTS user_progress (
			user_id UUID PRIMARY KEY,
			xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			artworks_discovered INTEGER NOT NULL DEFAULT 0,
			quizzes_completed INTEGER NOT NULL DEFAULT 0,
			badges TEXT NOT NULL DEFAULT '[]',
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS gallery_items (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			artwork_id UUID NOT NULL,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, artwork_id)
		)`,

		// questions is the JSON-encoded question set, generated once per
		// (user, artwork) and reused verbatim.
		`CREATE TABLE IF NOT EXISTS quiz_attempts (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			artwork_id UUID NOT NULL,
			questions TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			completed_at TIMESTAMP
		)`,
	}
}

// createIndexes creates indexes for frequent query patterns
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_artworks_title_artist ON artworks (title, artist)`,
		`CREATE INDEX IF NOT EXISTS idx_artworks_created_at ON artworks (created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_gallery_user ON gallery_items (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_user_artwork ON quiz_attempts (user_id, artwork_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_progress_xp ON user_progress (xp)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}

	return nil
}
