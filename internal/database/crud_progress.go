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

	json "github.com/goccy/go-json"

	"github.com/atelierhq/atelier/internal/models"
)

// GetProgress returns the progress row for a user, creating a zeroed row on
// first access.
func (db *DB) GetProgress(ctx context.Context, userID string) (*models.UserProgress, error) {
	progress, err := db.getProgress(ctx, userID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO user_progress (user_id, xp, level, artworks_discovered,
			quizzes_completed, badges, updated_at)
		 VALUES (?, 0, 1, 0, 0, '[]', ?)`,
		userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress row: %w", err)
	}

	return &models.UserProgress{
		UserID:    userID,
		XP:        0,
		Level:     1,
		Badges:    []string{},
		UpdatedAt: now,
	}, nil
}

func (db *DB) getProgress(ctx context.Context, userID string) (*models.UserProgress, error) {
	var p models.UserProgress
	var badgesJSON string
	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, xp, level, artworks_discovered, quizzes_completed,
			badges, updated_at
		 FROM user_progress WHERE user_id = ?`, userID).
		Scan(&p.UserID, &p.XP, &p.Level, &p.ArtworksDiscovered,
			&p.QuizzesCompleted, &badgesJSON, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan progress: %w", err)
	}

	if err := json.Unmarshal([]byte(badgesJSON), &p.Badges); err != nil {
		return nil, fmt.Errorf("failed to decode badges: %w", err)
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
	return &p, nil
}

// SaveProgress writes an updated progress row. Level is recomputed by the
// gamification package before saving; this method persists verbatim.
func (db *DB) SaveProgress(ctx context.Context, progress *models.UserProgress) error {
	badgesJSON, err := json.Marshal(progress.Badges)
	if err != nil {
		return fmt.Errorf("failed to encode badges: %w", err)
	}
	progress.UpdatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE user_progress
		 SET xp = ?, level = ?, artworks_discovered = ?, quizzes_completed = ?,
		     badges = ?, updated_at = ?
		 WHERE user_id = ?`,
		progress.XP, progress.Level, progress.ArtworksDiscovered,
		progress.QuizzesCompleted, string(badgesJSON), progress.UpdatedAt,
		progress.UserID)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Leaderboard returns the top users by XP.
func (db *DB) Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT u.username, p.xp, p.level, p.artworks_discovered
		 FROM user_progress p
		 JOIN users u ON u.id = p.user_id
		 ORDER BY p.xp DESC, u.username
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer closeWithLog(rows, "leaderboard rows")

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		entry := &models.LeaderboardEntry{}
		if err := rows.Scan(&entry.Username, &entry.XP, &entry.Level, &entry.ArtworksDiscovered); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entry.Rank = len(entries) + 1
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard row iteration failed: %w", err)
	}

	return entries, nil
}
