// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package models

import "time"

// QuizQuestion is a single generated question. CorrectAnswer indexes into
// Options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// QuizAttempt is a persisted quiz for one (user, artwork) pair. Questions
// are generated once and reused verbatim; retaking a completed attempt
// clones the same questions into a new attempt row. Score is a 0-100
// percentage of correct answers.
type QuizAttempt struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	ArtworkID   string         `json:"artwork_id"`
	Questions   []QuizQuestion `json:"questions"`
	Score       int            `json:"score"`
	Completed   bool           `json:"completed"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// QuizSubmission is the body of POST /api/v1/artworks/{id}/quiz.
// Answers are option indexes, one per question in order.
type QuizSubmission struct {
	Answers []int `json:"answers" validate:"required,min=1,max=20"`
}

// QuizResult is the payload returned after scoring a submission. Score is
// a 0-100 percentage; BestScore is the user's highest percentage for the
// artwork including this submission, PreviousBest the highest before it.
type QuizResult struct {
	Attempt      *QuizAttempt `json:"attempt"`
	Score        int          `json:"score"`
	Correct      int          `json:"correct"`
	Total        int          `json:"total"`
	XPAwarded    int          `json:"xp_awarded"`
	EarnedBadges []string     `json:"earned_badges,omitempty"`
	BestScore    int          `json:"best_score"`
	IsBestScore  bool         `json:"is_best_score"`
	PreviousBest int          `json:"previous_best"`
}
