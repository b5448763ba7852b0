// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"errors"
	"net/http"

	"github.com/atelierhq/atelier/internal/auth"
	"github.com/atelierhq/atelier/internal/database"
	"github.com/atelierhq/atelier/internal/gamification"
	"github.com/atelierhq/atelier/internal/logging"
	"github.com/atelierhq/atelier/internal/models"
)

// GetQuiz handles GET /api/v1/artworks/{id}/quiz with create-or-reuse
// semantics: an open attempt is returned as-is, a completed attempt is
// retaken by cloning its questions into a new attempt row, and a first
// request generates the questions once.
//
//	@Summary		Get or create a quiz attempt
//	@Tags			quiz
//	@Produce		json
//	@Param			id	path		string	true	"Artwork ID"
//	@Success		200	{object}	models.APIResponse
//	@Failure		404	{object}	models.APIResponse
//	@Router			/api/v1/artworks/{id}/quiz [get]
func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Authentication required", nil)
		return
	}

	artwork, ok := h.artworkFromPath(w, r)
	if !ok {
		return
	}

	attempt, err := h.store.GetLatestQuizAttempt(r.Context(), claims.UserID, artwork.ID)
	switch {
	case err == nil && !attempt.Completed:
		// Open attempt: same questions, same row.
		respondSuccess(w, http.StatusOK, map[string]interface{}{"quiz": attempt})
		return

	case err == nil && attempt.Completed:
		// Retake: the same questions go into a fresh attempt row.
		retake, createErr := h.store.CreateQuizAttempt(r.Context(), claims.UserID, artwork.ID, attempt.Questions)
		if createErr != nil {
			respondError(w, http.StatusInternalServerError, codeInternal, "Failed to create quiz attempt", createErr)
			return
		}
		respondSuccess(w, http.StatusOK, map[string]interface{}{"quiz": retake})
		return

	case !errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusInternalServerError, codeInternal, "Quiz lookup failed", err)
		return
	}

	questions := h.generator.GenerateQuiz(r.Context(), artwork)
	if len(questions) == 0 {
		respondError(w, http.StatusServiceUnavailable, codeNotReady, "Quiz generation is unavailable", nil)
		return
	}

	attempt, err = h.store.CreateQuizAttempt(r.Context(), claims.UserID, artwork.ID, questions)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to create quiz attempt", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"quiz": attempt})
}

// SubmitQuiz handles POST /api/v1/artworks/{id}/quiz: scores the open
// attempt as a 0-100 percentage, awards XP per correct answer, evaluates
// badges, and reports the user's best score for the artwork.
//
//	@Summary		Submit quiz answers
//	@Tags			quiz
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Artwork ID"
//	@Param			request	body		models.QuizSubmission	true	"Answer indexes"
//	@Success		200		{object}	models.APIResponse
//	@Failure		404		{object}	models.APIResponse
//	@Failure		409		{object}	models.APIResponse
//	@Router			/api/v1/artworks/{id}/quiz [post]
func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Authentication required", nil)
		return
	}

	artwork, ok := h.artworkFromPath(w, r)
	if !ok {
		return
	}

	var req models.QuizSubmission
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	attempt, err := h.store.GetLatestQuizAttempt(r.Context(), claims.UserID, artwork.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "No quiz attempt for this artwork", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternal, "Quiz lookup failed", err)
		return
	}
	if attempt.Completed {
		respondError(w, http.StatusConflict, codeConflict, "Quiz attempt already completed", nil)
		return
	}

	correct := scoreAnswers(attempt.Questions, req.Answers)
	score := 0
	if len(attempt.Questions) > 0 {
		score = correct * 100 / len(attempt.Questions)
	}

	// Read the previous best before completing the attempt so the current
	// submission is excluded from it.
	previousBest, err := h.store.BestQuizScore(r.Context(), claims.UserID, artwork.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Quiz lookup failed", err)
		return
	}

	if err := h.store.CompleteQuizAttempt(r.Context(), attempt.ID, score); err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to save quiz result", err)
		return
	}
	attempt.Score = score
	attempt.Completed = true

	bestScore := previousBest
	if score > bestScore {
		bestScore = score
	}

	_, newBadges, err := h.progress.RecordQuizCompletion(r.Context(), claims.UserID, correct)
	if err != nil {
		logging.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to record quiz XP")
	}

	if h.hub != nil {
		for _, badgeID := range newBadges {
			h.hub.BroadcastBadgeEarned(claims.Username, badgeID)
		}
	}

	xpAwarded := correct * gamification.XPPerCorrectAnswer
	if err != nil {
		xpAwarded = 0
	}

	respondSuccess(w, http.StatusOK, &models.QuizResult{
		Attempt:      attempt,
		Score:        score,
		Correct:      correct,
		Total:        len(attempt.Questions),
		XPAwarded:    xpAwarded,
		EarnedBadges: newBadges,
		BestScore:    bestScore,
		IsBestScore:  score >= previousBest,
		PreviousBest: previousBest,
	})
}

// scoreAnswers counts answers matching the correct option index. Extra
// answers beyond the question count are ignored.
func scoreAnswers(questions []models.QuizQuestion, answers []int) int {
	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	return correct
}
