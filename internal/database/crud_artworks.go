// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/models"
)

const artworkColumns = `id, title, artist, year, movement, museum,
	description, detailed_description, image_url, image_hash,
	confidence, recognized_count, created_at, updated_at`

// UpsertRecognizedArtwork reconciles a successful recognition into the
// artworks table. Deduplication is by image_hash first, then (title, artist).
// Confidence never decreases; a missing image_hash on an existing row is
// backfilled by the next hash-bearing recognition of the same piece.
//
// Returns the stored artwork and whether it was newly created.
func (db *DB) UpsertRecognizedArtwork(ctx context.Context, rec *models.RecognitionResult, imageHash, imageURL string) (*models.Artwork, bool, error) {
	if imageHash != "" {
		artwork, err := db.GetArtworkByImageHash(ctx, imageHash)
		if err == nil {
			return db.recordRecognition(ctx, artwork, rec, imageHash, imageURL)
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
	}

	artwork, err := db.GetArtworkByTitleArtist(ctx, rec.Title, rec.Artist)
	if err == nil {
		return db.recordRecognition(ctx, artwork, rec, imageHash, imageURL)
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	now := time.Now().UTC()
	artwork = &models.Artwork{
		ID:              uuid.NewString(),
		Title:           rec.Title,
		Artist:          rec.Artist,
		Year:            rec.Year,
		Movement:        rec.Movement,
		Museum:          rec.Museum,
		Description:     rec.Description,
		ImageURL:        imageURL,
		ImageHash:       imageHash,
		Confidence:      rec.Confidence,
		RecognizedCount: 1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO artworks (id, title, artist, year, movement, museum,
			description, image_url, image_hash, confidence, recognized_count,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		artwork.ID, artwork.Title, artwork.Artist, nullable(artwork.Year),
		nullable(artwork.Movement), nullable(artwork.Museum),
		nullable(artwork.Description), nullable(artwork.ImageURL),
		nullable(artwork.ImageHash), artwork.Confidence,
		artwork.RecognizedCount, artwork.CreatedAt, artwork.UpdatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert artwork: %w", err)
	}

	return artwork, true, nil
}

// recordRecognition updates an existing artwork for a repeat recognition:
// increments recognized_count, keeps the highest confidence seen, and
// backfills image_hash and image_url when the stored row lacks them.
func (db *DB) recordRecognition(ctx context.Context, artwork *models.Artwork, rec *models.RecognitionResult, imageHash, imageURL string) (*models.Artwork, bool, error) {
	artwork.RecognizedCount++
	if rec.Confidence > artwork.Confidence {
		artwork.Confidence = rec.Confidence
	}
	if artwork.ImageHash == "" && imageHash != "" {
		artwork.ImageHash = imageHash
	}
	if artwork.ImageURL == "" && imageURL != "" {
		artwork.ImageURL = imageURL
	}
	artwork.UpdatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`UPDATE artworks
		 SET recognized_count = ?, confidence = ?, image_hash = ?,
		     image_url = ?, updated_at = ?
		 WHERE id = ?`,
		artwork.RecognizedCount, artwork.Confidence,
		nullable(artwork.ImageHash), nullable(artwork.ImageURL),
		artwork.UpdatedAt, artwork.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update artwork: %w", err)
	}

	return artwork, false, nil
}

// CreateArtworkFromSuggestion persists an artwork from a related-content
// suggestion, deduplicated by (title, artist). Returns the artwork and
// whether it already existed.
func (db *DB) CreateArtworkFromSuggestion(ctx context.Context, req *models.CreateArtworkRequest, confidence float64) (*models.Artwork, bool, error) {
	existing, err := db.GetArtworkByTitleArtist(ctx, req.Title, req.Artist)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	now := time.Now().UTC()
	artwork := &models.Artwork{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Artist:          req.Artist,
		Year:            req.Year,
		Movement:        req.Movement,
		Museum:          req.Museum,
		ImageURL:        req.ImageURL,
		Confidence:      confidence,
		RecognizedCount: 1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO artworks (id, title, artist, year, movement, museum,
			image_url, confidence, recognized_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		artwork.ID, artwork.Title, artwork.Artist, nullable(artwork.Year),
		nullable(artwork.Movement), nullable(artwork.Museum),
		nullable(artwork.ImageURL), artwork.Confidence,
		artwork.RecognizedCount, artwork.CreatedAt, artwork.UpdatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert artwork: %w", err)
	}

	return artwork, false, nil
}

// GetArtworkByID returns the artwork with the given ID, or ErrNotFound.
func (db *DB) GetArtworkByID(ctx context.Context, id string) (*models.Artwork, error) {
	return scanArtwork(db.conn.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM artworks WHERE id = ?`, artworkColumns), id))
}

// GetArtworkByImageHash returns the artwork with the given content hash,
// or ErrNotFound. Used by the recognition short-circuit.
func (db *DB) GetArtworkByImageHash(ctx context.Context, imageHash string) (*models.Artwork, error) {
	return scanArtwork(db.conn.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM artworks WHERE image_hash = ?`, artworkColumns), imageHash))
}

// GetArtworkByTitleArtist returns the artwork matching title and artist
// exactly, or ErrNotFound.
func (db *DB) GetArtworkByTitleArtist(ctx context.Context, title, artist string) (*models.Artwork, error) {
	return scanArtwork(db.conn.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM artworks WHERE title = ? AND artist = ?`, artworkColumns),
		title, artist))
}

// ListArtworks returns artworks ordered by most recently created, with the
// total count for pagination metadata.
func (db *DB) ListArtworks(ctx context.Context, limit, offset int) ([]*models.Artwork, int, error) {
	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM artworks`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count artworks: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM artworks ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, artworkColumns),
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list artworks: %w", err)
	}
	defer closeWithLog(rows, "artwork rows")

	var artworks []*models.Artwork
	for rows.Next() {
		artwork, err := scanArtwork(rows)
		if err != nil {
			return nil, 0, err
		}
		artworks = append(artworks, artwork)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("artwork row iteration failed: %w", err)
	}

	return artworks, total, nil
}

// UpdateDetailedDescription persists a generated long-form description so it
// is generated at most once per artwork.
func (db *DB) UpdateDetailedDescription(ctx context.Context, artworkID, description string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE artworks SET detailed_description = ?, updated_at = ? WHERE id = ?`,
		description, time.Now().UTC(), artworkID)
	if err != nil {
		return fmt.Errorf("failed to update detailed description: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtwork(row rowScanner) (*models.Artwork, error) {
	var a models.Artwork
	var year, movement, museum, description, detailed, imageURL, imageHash sql.NullString
	err := row.Scan(&a.ID, &a.Title, &a.Artist, &year, &movement, &museum,
		&description, &detailed, &imageURL, &imageHash,
		&a.Confidence, &a.RecognizedCount, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan artwork: %w", err)
	}

	a.Year = year.String
	a.Movement = movement.String
	a.Museum = museum.String
	a.Description = description.String
	a.DetailedDescription = detailed.String
	a.ImageURL = imageURL.String
	a.ImageHash = imageHash.String
	return &a, nil
}

// nullable converts an empty string to a SQL NULL so unique constraints on
// optional columns (image_hash) ignore absent values.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
