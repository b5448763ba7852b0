// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/atelierhq/atelier/internal/gamification"
	"github.com/atelierhq/atelier/internal/models"
)

func getQuiz(t *testing.T, env *testEnv, artworkID string) (*httptest.ResponseRecorder, *models.QuizAttempt) {
	t.Helper()
	rec := httptest.NewRecorder()
	r := withURLParam(authed(httptest.NewRequest(http.MethodGet, "/api/v1/artworks/"+artworkID+"/quiz", nil)), "id", artworkID)
	env.handler.GetQuiz(rec, r)
	if rec.Code != http.StatusOK {
		return rec, nil
	}
	e := decodeEnvelope(t, rec)
	var data struct {
		Quiz *models.QuizAttempt `json:"quiz"`
	}
	if err := json.Unmarshal(e.Data, &data); err != nil {
		t.Fatalf("decode quiz: %v", err)
	}
	return rec, data.Quiz
}

func submitQuiz(t *testing.T, env *testEnv, artworkID string, answers []int) *httptest.ResponseRecorder {
	t.Helper()
	r := jsonRequest(http.MethodPost, "/api/v1/artworks/"+artworkID+"/quiz", models.QuizSubmission{Answers: answers})
	rec := httptest.NewRecorder()
	env.handler.SubmitQuiz(rec, withURLParam(authed(r), "id", artworkID))
	return rec
}

func TestGetQuizGeneratesOnce(t *testing.T) {
	env := newTestEnv(t)
	artwork := seedArtwork(env.store)

	rec, attempt := getQuiz(t, env, artwork.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	if len(attempt.Questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(attempt.Questions))
	}
	if attempt.Completed {
		t.Error("fresh attempt marked completed")
	}

	// An open attempt is reused, not regenerated.
	_, again := getQuiz(t, env, artwork.ID)
	if again.ID != attempt.ID {
		t.Errorf("open attempt not reused: %q vs %q", again.ID, attempt.ID)
	}
}

func TestGetQuizRetakeClonesQuestions(t *testing.T) {
	env := newTestEnv(t)
	artwork := seedArtwork(env.store)

	_, first := getQuiz(t, env, artwork.ID)
	if rec := submitQuiz(t, env, artwork.ID, []int{1, 1, 2}); rec.Code != http.StatusOK {
		t.Fatalf("submit = %d", rec.Code)
	}

	_, retake := getQuiz(t, env, artwork.ID)
	if retake.ID == first.ID {
		t.Error("retake reused the completed attempt row")
	}
	if retake.Completed {
		t.Error("retake marked completed")
	}
	if len(retake.Questions) != len(first.Questions) {
		t.Fatalf("retake questions = %d, want %d", len(retake.Questions), len(first.Questions))
	}
	for i := range first.Questions {
		if retake.Questions[i].Question != first.Questions[i].Question {
			t.Errorf("question %d differs on retake", i)
		}
	}
}

func TestGetQuizGenerationUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.gen.questions = nil
	artwork := seedArtwork(env.store)

	rec, _ := getQuiz(t, env, artwork.ID)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if e := decodeEnvelope(t, rec); e.Error == nil || e.Error.Code != codeNotReady {
		t.Errorf("error = %+v, want code %s", e.Error, codeNotReady)
	}
}

func TestSubmitQuizScoring(t *testing.T) {
	tests := []struct {
		name        string
		answers     []int
		wantCorrect int
		wantScore   int
	}{
		{"all correct", []int{1, 1, 2}, 3, 100},
		{"partially correct", []int{1, 0, 0}, 1, 33},
		{"all wrong", []int{0, 0, 0}, 0, 0},
		{"short answers score what they cover", []int{1}, 1, 33},
		{"extra answers are ignored", []int{1, 1, 2, 3, 0}, 3, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			artwork := seedArtwork(env.store)
			if rec, _ := getQuiz(t, env, artwork.ID); rec.Code != http.StatusOK {
				t.Fatalf("get quiz = %d", rec.Code)
			}

			rec := submitQuiz(t, env, artwork.ID, tt.answers)
			if rec.Code != http.StatusOK {
				t.Fatalf("submit = %d (body %s)", rec.Code, rec.Body.String())
			}
			e := decodeEnvelope(t, rec)
			var result models.QuizResult
			if err := json.Unmarshal(e.Data, &result); err != nil {
				t.Fatalf("decode result: %v", err)
			}
			if result.Correct != tt.wantCorrect {
				t.Errorf("correct = %d, want %d", result.Correct, tt.wantCorrect)
			}
			if result.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", result.Score, tt.wantScore)
			}
			if result.Attempt.Score != tt.wantScore {
				t.Errorf("attempt score = %d, want the percentage %d", result.Attempt.Score, tt.wantScore)
			}
			if result.Total != 3 {
				t.Errorf("total = %d, want 3", result.Total)
			}
			if result.XPAwarded != tt.wantCorrect*gamification.XPPerCorrectAnswer {
				t.Errorf("xp = %d, want %d", result.XPAwarded, tt.wantCorrect*gamification.XPPerCorrectAnswer)
			}
			if !result.Attempt.Completed {
				t.Error("attempt not marked completed")
			}
		})
	}
}

func TestSubmitQuizTracksBestScore(t *testing.T) {
	env := newTestEnv(t)
	artwork := seedArtwork(env.store)

	submitResult := func(answers []int) models.QuizResult {
		t.Helper()
		if rec, _ := getQuiz(t, env, artwork.ID); rec.Code != http.StatusOK {
			t.Fatalf("get quiz = %d", rec.Code)
		}
		rec := submitQuiz(t, env, artwork.ID, answers)
		if rec.Code != http.StatusOK {
			t.Fatalf("submit = %d (body %s)", rec.Code, rec.Body.String())
		}
		var result models.QuizResult
		if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &result); err != nil {
			t.Fatalf("decode result: %v", err)
		}
		return result
	}

	first := submitResult([]int{1, 0, 0}) // 33%
	if first.PreviousBest != 0 || first.BestScore != 33 || !first.IsBestScore {
		t.Errorf("first submission: previous=%d best=%d isBest=%v, want 0/33/true",
			first.PreviousBest, first.BestScore, first.IsBestScore)
	}

	second := submitResult([]int{1, 1, 2}) // 100%
	if second.PreviousBest != 33 || second.BestScore != 100 || !second.IsBestScore {
		t.Errorf("second submission: previous=%d best=%d isBest=%v, want 33/100/true",
			second.PreviousBest, second.BestScore, second.IsBestScore)
	}

	third := submitResult([]int{0, 0, 0}) // 0%
	if third.PreviousBest != 100 || third.BestScore != 100 || third.IsBestScore {
		t.Errorf("third submission: previous=%d best=%d isBest=%v, want 100/100/false",
			third.PreviousBest, third.BestScore, third.IsBestScore)
	}
}

func TestSubmitQuizWithoutAttempt(t *testing.T) {
	env := newTestEnv(t)
	artwork := seedArtwork(env.store)

	rec := submitQuiz(t, env, artwork.ID, []int{0})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSubmitQuizTwice(t *testing.T) {
	env := newTestEnv(t)
	artwork := seedArtwork(env.store)

	if rec, _ := getQuiz(t, env, artwork.ID); rec.Code != http.StatusOK {
		t.Fatalf("get quiz = %d", rec.Code)
	}
	if rec := submitQuiz(t, env, artwork.ID, []int{1, 1, 2}); rec.Code != http.StatusOK {
		t.Fatalf("first submit = %d", rec.Code)
	}

	rec := submitQuiz(t, env, artwork.ID, []int{1, 1, 2})
	if rec.Code != http.StatusConflict {
		t.Fatalf("second submit = %d, want 409", rec.Code)
	}
	if e := decodeEnvelope(t, rec); e.Error == nil || e.Error.Code != codeConflict {
		t.Errorf("error = %+v, want code %s", e.Error, codeConflict)
	}
}

func TestSubmitQuizValidation(t *testing.T) {
	env := newTestEnv(t)
	artwork := seedArtwork(env.store)

	rec := submitQuiz(t, env, artwork.ID, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty answers = %d, want 400", rec.Code)
	}
}

func TestQuizMissingArtwork(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := getQuiz(t, env, "missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get = %d, want 404", rec.Code)
	}
	rec = submitQuiz(t, env, "missing", []int{0})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("submit = %d, want 404", rec.Code)
	}
}
