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

// ListGallery returns a user's saved artworks, most recently added first,
// with the artwork populated on each item.
func (db *DB) ListGallery(ctx context.Context, userID string) ([]*models.GalleryItem, error) {
	rows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT g.id, g.user_id, g.artwork_id, g.added_at, %s
		 FROM gallery_items g
		 JOIN artworks a ON a.id = g.artwork_id
		 WHERE g.user_id = ?
		 ORDER BY g.added_at DESC, g.id`, prefixedArtworkColumns("a")),
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query gallery: %w", err)
	}
	defer closeWithLog(rows, "gallery rows")

	var items []*models.GalleryItem
	for rows.Next() {
		item := &models.GalleryItem{}
		var a models.Artwork
		var year, movement, museum, description, detailed, imageURL, imageHash sql.NullString
		err := rows.Scan(&item.ID, &item.UserID, &item.ArtworkID, &item.AddedAt,
			&a.ID, &a.Title, &a.Artist, &year, &movement, &museum,
			&description, &detailed, &imageURL, &imageHash,
			&a.Confidence, &a.RecognizedCount, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gallery item: %w", err)
		}
		a.Year = year.String
		a.Movement = movement.String
		a.Museum = museum.String
		a.Description = description.String
		a.DetailedDescription = detailed.String
		a.ImageURL = imageURL.String
		a.ImageHash = imageHash.String
		item.Artwork = &a
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("gallery row iteration failed: %w", err)
	}

	return items, nil
}

// AddGalleryItem saves an artwork to a user's gallery. Returns
// ErrDuplicateGalleryItem when the pair already exists and ErrNotFound when
// the artwork does not exist.
func (db *DB) AddGalleryItem(ctx context.Context, userID, artworkID string) (*models.GalleryItem, error) {
	if _, err := db.GetArtworkByID(ctx, artworkID); err != nil {
		return nil, err
	}

	var existing int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM gallery_items WHERE user_id = ? AND artwork_id = ?`,
		userID, artworkID).Scan(&existing)
	if err != nil {
		return nil, fmt.Errorf("failed to check gallery: %w", err)
	}
	if existing > 0 {
		return nil, ErrDuplicateGalleryItem
	}

	item := &models.GalleryItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ArtworkID: artworkID,
		AddedAt:   time.Now().UTC(),
	}
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO gallery_items (id, user_id, artwork_id, added_at)
		 VALUES (?, ?, ?, ?)`,
		item.ID, item.UserID, item.ArtworkID, item.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert gallery item: %w", err)
	}

	return item, nil
}

// RemoveGalleryItem deletes a gallery item. Returns ErrNotFound when the
// item does not exist and ErrNotOwner when it belongs to another user.
func (db *DB) RemoveGalleryItem(ctx context.Context, userID, itemID string) error {
	var ownerID string
	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id FROM gallery_items WHERE id = ?`, itemID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up gallery item: %w", err)
	}
	if ownerID != userID {
		return ErrNotOwner
	}

	_, err = db.conn.ExecContext(ctx,
		`DELETE FROM gallery_items WHERE id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete gallery item: %w", err)
	}
	return nil
}

// prefixedArtworkColumns qualifies the artwork column list with a table
// alias for join queries.
func prefixedArtworkColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.title, %[1]s.artist, %[1]s.year,
		%[1]s.movement, %[1]s.museum, %[1]s.description,
		%[1]s.detailed_description, %[1]s.image_url, %[1]s.image_hash,
		%[1]s.confidence, %[1]s.recognized_count, %[1]s.created_at,
		%[1]s.updated_at`, alias)
}
