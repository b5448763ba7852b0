// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/atelierhq/atelier/internal/gamification"
	"github.com/atelierhq/atelier/internal/models"
)

// uploadRequest builds an authenticated multipart recognize request.
func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return authed(r)
}

func decodeRecognizeResponse(t *testing.T, rec *httptest.ResponseRecorder) *models.RecognizeResponse {
	t.Helper()
	e := decodeEnvelope(t, rec)
	var resp models.RecognizeResponse
	if err := json.Unmarshal(e.Data, &resp); err != nil {
		t.Fatalf("decode recognize response: %v", err)
	}
	return &resp
}

func TestRecognize(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.handler.Recognize(rec, uploadRequest(t, "starry.jpg", []byte("fake image bytes")))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}

	resp := decodeRecognizeResponse(t, rec)
	if !resp.Recognition.Success {
		t.Fatal("recognition not successful")
	}
	if resp.Cached {
		t.Error("fresh recognition reported as cached")
	}
	if resp.Artwork == nil || resp.Artwork.Title != "The Starry Night" {
		t.Errorf("artwork = %+v", resp.Artwork)
	}
	if resp.XPAwarded != gamification.XPPerDiscovery {
		t.Errorf("xp_awarded = %d, want %d", resp.XPAwarded, gamification.XPPerDiscovery)
	}
	if !strings.HasPrefix(resp.Artwork.ImageURL, "/uploads/") {
		t.Errorf("image URL = %q", resp.Artwork.ImageURL)
	}

	// The upload landed on disk under the served name.
	name := strings.TrimPrefix(resp.Artwork.ImageURL, "/uploads/")
	if _, err := os.Stat(filepath.Join(env.handler.uploadsDir, name)); err != nil {
		t.Errorf("stored upload missing: %v", err)
	}
}

func TestRecognizeCachedByHash(t *testing.T) {
	env := newTestEnv(t)
	content := []byte("same image both times")

	rec := httptest.NewRecorder()
	env.handler.Recognize(rec, uploadRequest(t, "first.png", content))
	if rec.Code != http.StatusOK {
		t.Fatalf("first = %d", rec.Code)
	}
	first := decodeRecognizeResponse(t, rec)

	// Same bytes again: stored artwork, no model call, no XP.
	env.rec.result = nil // a model call would panic
	rec = httptest.NewRecorder()
	env.handler.Recognize(rec, uploadRequest(t, "second.png", content))
	if rec.Code != http.StatusOK {
		t.Fatalf("second = %d (body %s)", rec.Code, rec.Body.String())
	}
	second := decodeRecognizeResponse(t, rec)

	if !second.Cached {
		t.Error("hash match not reported as cached")
	}
	if second.Artwork.ID != first.Artwork.ID {
		t.Errorf("cached artwork ID = %q, want %q", second.Artwork.ID, first.Artwork.ID)
	}
	if second.XPAwarded != 0 {
		t.Errorf("cached XP = %d, want 0", second.XPAwarded)
	}
	if e := decodeEnvelope(t, rec); !e.Metadata.Cached {
		t.Error("metadata cached flag not set")
	}
}

func TestRecognizeRejectsBadExtension(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.handler.Recognize(rec, uploadRequest(t, "notes.txt", []byte("plain text")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if e := decodeEnvelope(t, rec); e.Error == nil || e.Error.Code != codeValidation {
		t.Errorf("error = %+v, want code %s", e.Error, codeValidation)
	}
}

func TestRecognizeMissingFile(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("note", "no image here")
	_ = mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	env.handler.Recognize(rec, authed(r))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRecognizeOversizeUpload(t *testing.T) {
	env := newTestEnv(t)
	env.handler.maxUploadBytes = 1024

	rec := httptest.NewRecorder()
	env.handler.Recognize(rec, uploadRequest(t, "huge.jpg", bytes.Repeat([]byte("x"), 4096)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	if e := decodeEnvelope(t, rec); e.Error == nil || e.Error.Code != codePayloadTooLarge {
		t.Errorf("error = %+v, want code %s", e.Error, codePayloadTooLarge)
	}
}

func TestRecognizeFailedRecognition(t *testing.T) {
	env := newTestEnv(t)
	env.rec.result = &models.RecognitionResult{
		Success:     false,
		IsArtwork:   false,
		Message:     "That does not look like an artwork.",
		Suggestions: []string{"Try a closer photo", "Avoid glare"},
	}

	rec := httptest.NewRecorder()
	env.handler.Recognize(rec, uploadRequest(t, "cat.jpg", []byte("a cat photo")))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with failure payload", rec.Code)
	}

	resp := decodeRecognizeResponse(t, rec)
	if resp.Recognition.Success {
		t.Error("failed recognition reported as success")
	}
	if resp.Artwork != nil {
		t.Error("failed recognition carries an artwork")
	}
	if resp.XPAwarded != 0 {
		t.Errorf("xp_awarded = %d, want 0", resp.XPAwarded)
	}
	if len(resp.Recognition.Suggestions) != 2 {
		t.Errorf("suggestions = %v", resp.Recognition.Suggestions)
	}
	if len(env.store.artworks) != 0 {
		t.Error("failed recognition persisted an artwork")
	}
}

func TestRecognizeRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.Close()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	env.handler.Recognize(rec, r)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestReadAndHash(t *testing.T) {
	data, hash, err := readAndHash(strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("readAndHash: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("data = %q", data)
	}
	// SHA-256 of "hello".
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if hash != want {
		t.Errorf("hash = %s, want %s", hash, want)
	}

	if _, _, err := readAndHash(strings.NewReader("")); err == nil {
		t.Error("empty upload not rejected")
	}
}
