// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package database

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/atelierhq/atelier/internal/models"
)

func testQuestions() []models.QuizQuestion {
	return []models.QuizQuestion{
		{
			Question:      "Who painted this?",
			Options:       []string{"Monet", "Manet", "Degas", "Renoir"},
			CorrectAnswer: 0,
			Explanation:   "Claude Monet painted it in 1872.",
		},
		{
			Question:      "Which movement does it belong to?",
			Options:       []string{"Cubism", "Impressionism", "Baroque", "Dada"},
			CorrectAnswer: 1,
			Explanation:   "It gave Impressionism its name.",
		},
	}
}

func TestQuizAttemptQuestionsReusedVerbatim(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "helen")
	artwork, _, err := db.UpsertRecognizedArtwork(ctx,
		recognition("Impression, Sunrise", "Claude Monet", 0.9), "hash-i", "")
	if err != nil {
		t.Fatalf("UpsertRecognizedArtwork() error = %v", err)
	}

	created, err := db.CreateQuizAttempt(ctx, user.ID, artwork.ID, testQuestions())
	if err != nil {
		t.Fatalf("CreateQuizAttempt() error = %v", err)
	}

	reread, err := db.GetLatestQuizAttempt(ctx, user.ID, artwork.ID)
	if err != nil {
		t.Fatalf("GetLatestQuizAttempt() error = %v", err)
	}
	if reread.ID != created.ID {
		t.Errorf("attempt ID = %q, want %q", reread.ID, created.ID)
	}
	if !reflect.DeepEqual(reread.Questions, created.Questions) {
		t.Errorf("questions changed across reads:\ngot  %+v\nwant %+v", reread.Questions, created.Questions)
	}
}

func TestQuizRetakeClonesQuestions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "ivan")
	artwork, _, err := db.UpsertRecognizedArtwork(ctx,
		recognition("Las Meninas", "Diego Velázquez", 0.92), "hash-m", "")
	if err != nil {
		t.Fatalf("UpsertRecognizedArtwork() error = %v", err)
	}

	first, err := db.CreateQuizAttempt(ctx, user.ID, artwork.ID, testQuestions())
	if err != nil {
		t.Fatalf("CreateQuizAttempt() error = %v", err)
	}
	if err := db.CompleteQuizAttempt(ctx, first.ID, 2); err != nil {
		t.Fatalf("CompleteQuizAttempt() error = %v", err)
	}

	// A retake clones the SAME questions into a new attempt row.
	completed, err := db.GetLatestQuizAttempt(ctx, user.ID, artwork.ID)
	if err != nil {
		t.Fatalf("GetLatestQuizAttempt() error = %v", err)
	}
	if !completed.Completed {
		t.Fatal("attempt should be completed")
	}

	retake, err := db.CreateQuizAttempt(ctx, user.ID, artwork.ID, completed.Questions)
	if err != nil {
		t.Fatalf("CreateQuizAttempt(retake) error = %v", err)
	}
	if retake.ID == first.ID {
		t.Error("retake should create a new attempt row")
	}
	if !reflect.DeepEqual(retake.Questions, first.Questions) {
		t.Errorf("retake questions differ:\ngot  %+v\nwant %+v", retake.Questions, first.Questions)
	}

	latest, err := db.GetLatestQuizAttempt(ctx, user.ID, artwork.ID)
	if err != nil {
		t.Fatalf("GetLatestQuizAttempt() error = %v", err)
	}
	if latest.ID != retake.ID {
		t.Errorf("latest attempt = %q, want %q", latest.ID, retake.ID)
	}
	if latest.Completed {
		t.Error("retake should start uncompleted")
	}
}

func TestCompleteQuizAttemptNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := db.CompleteQuizAttempt(context.Background(), "00000000-0000-0000-0000-000000000000", 3)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("CompleteQuizAttempt(missing) error = %v, want ErrNotFound", err)
	}
}
