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
	json "github.com/goccy/go-json"

	"github.com/atelierhq/atelier/internal/models"
)

// GetLatestQuizAttempt returns the most recent quiz attempt for a
// (user, artwork) pair, or ErrNotFound.
func (db *DB) GetLatestQuizAttempt(ctx context.Context, userID, artworkID string) (*models.QuizAttempt, error) {
	return db.scanQuizAttempt(db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, artwork_id, questions, score, completed,
			created_at, completed_at
		 FROM quiz_attempts
		 WHERE user_id = ? AND artwork_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`, userID, artworkID))
}

// GetQuizAttemptByID returns a single attempt, or ErrNotFound.
func (db *DB) GetQuizAttemptByID(ctx context.Context, id string) (*models.QuizAttempt, error) {
	return db.scanQuizAttempt(db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, artwork_id, questions, score, completed,
			created_at, completed_at
		 FROM quiz_attempts WHERE id = ?`, id))
}

// CreateQuizAttempt inserts a new attempt with the given question set.
// Questions are stored as JSON and returned verbatim on every subsequent
// read: they are generated at most once per (user, artwork) pair. Cloning a
// completed attempt for a retake reuses the same questions slice.
func (db *DB) CreateQuizAttempt(ctx context.Context, userID, artworkID string, questions []models.QuizQuestion) (*models.QuizAttempt, error) {
	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode questions: %w", err)
	}

	attempt := &models.QuizAttempt{
		ID:        uuid.NewString(),
		UserID:    userID,
		ArtworkID: artworkID,
		Questions: questions,
		CreatedAt: time.Now().UTC(),
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO quiz_attempts (id, user_id, artwork_id, questions,
			score, completed, created_at)
		 VALUES (?, ?, ?, ?, 0, FALSE, ?)`,
		attempt.ID, attempt.UserID, attempt.ArtworkID, string(questionsJSON),
		attempt.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert quiz attempt: %w", err)
	}

	return attempt, nil
}

// BestQuizScore returns the highest score among a user's completed
// attempts for an artwork, or 0 when none are completed.
func (db *DB) BestQuizScore(ctx context.Context, userID, artworkID string) (int, error) {
	var best int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(score), 0)
		 FROM quiz_attempts
		 WHERE user_id = ? AND artwork_id = ? AND completed`,
		userID, artworkID).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("failed to query best quiz score: %w", err)
	}
	return best, nil
}

// CompleteQuizAttempt marks an attempt as completed with its score.
func (db *DB) CompleteQuizAttempt(ctx context.Context, attemptID string, score int) error {
	now := time.Now().UTC()
	res, err := db.conn.ExecContext(ctx,
		`UPDATE quiz_attempts
		 SET score = ?, completed = TRUE, completed_at = ?
		 WHERE id = ?`, score, now, attemptID)
	if err != nil {
		return fmt.Errorf("failed to complete quiz attempt: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) scanQuizAttempt(row *sql.Row) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	var questionsJSON string
	var completedAt sql.NullTime

	err := row.Scan(&attempt.ID, &attempt.UserID, &attempt.ArtworkID,
		&questionsJSON, &attempt.Score, &attempt.Completed,
		&attempt.CreatedAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan quiz attempt: %w", err)
	}

	if err := json.Unmarshal([]byte(questionsJSON), &attempt.Questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	if completedAt.Valid {
		attempt.CompletedAt = &completedAt.Time
	}
	return &attempt, nil
}
