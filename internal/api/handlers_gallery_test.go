// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/atelierhq/atelier/internal/models"
)

// uuidArtwork seeds an artwork whose ID passes uuid4 validation.
func uuidArtwork(s *fakeStore) *models.Artwork {
	a := &models.Artwork{
		ID:        "6f9619ff-8b86-4d01-b42d-00cf4fc964ff",
		Title:     "Guernica",
		Artist:    "Pablo Picasso",
		CreatedAt: time.Now(),
	}
	s.artworks[a.ID] = a
	return a
}

func addToGallery(env *testEnv, artworkID string) *httptest.ResponseRecorder {
	r := jsonRequest(http.MethodPost, "/api/v1/gallery", map[string]string{"artwork_id": artworkID})
	rec := httptest.NewRecorder()
	env.handler.AddGalleryItem(rec, authed(r))
	return rec
}

func TestGalleryAddAndList(t *testing.T) {
	env := newTestEnv(t)
	artwork := uuidArtwork(env.store)

	rec := addToGallery(env, artwork.ID)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add = %d (body %s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	env.handler.ListGallery(rec, authed(httptest.NewRequest(http.MethodGet, "/api/v1/gallery", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("list = %d", rec.Code)
	}
	e := decodeEnvelope(t, rec)
	var data struct {
		Gallery []*models.GalleryItem `json:"gallery"`
	}
	if err := json.Unmarshal(e.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Gallery) != 1 {
		t.Fatalf("gallery length = %d, want 1", len(data.Gallery))
	}
	if data.Gallery[0].ArtworkID != artwork.ID {
		t.Errorf("artwork_id = %q", data.Gallery[0].ArtworkID)
	}
	if data.Gallery[0].Artwork == nil || data.Gallery[0].Artwork.Title != "Guernica" {
		t.Error("list does not embed the artwork")
	}
}

func TestGalleryListEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.handler.ListGallery(rec, authed(httptest.NewRequest(http.MethodGet, "/api/v1/gallery", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// Empty gallery serializes as [] rather than null.
	e := decodeEnvelope(t, rec)
	if string(e.Data) != `{"gallery":[]}` {
		t.Errorf("data = %s", e.Data)
	}
}

func TestGalleryAddDuplicate(t *testing.T) {
	env := newTestEnv(t)
	artwork := uuidArtwork(env.store)

	if rec := addToGallery(env, artwork.ID); rec.Code != http.StatusCreated {
		t.Fatalf("first add = %d", rec.Code)
	}
	rec := addToGallery(env, artwork.ID)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate add = %d, want 409", rec.Code)
	}
	if e := decodeEnvelope(t, rec); e.Error == nil || e.Error.Code != codeConflict {
		t.Errorf("error = %+v, want code %s", e.Error, codeConflict)
	}
}

func TestGalleryAddUnknownArtwork(t *testing.T) {
	env := newTestEnv(t)

	rec := addToGallery(env, "00000000-0000-4000-8000-000000000000")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGalleryAddValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := addToGallery(env, "not-a-uuid")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGalleryRemove(t *testing.T) {
	env := newTestEnv(t)
	artwork := uuidArtwork(env.store)

	rec := addToGallery(env, artwork.ID)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add = %d", rec.Code)
	}
	e := decodeEnvelope(t, rec)
	var data struct {
		Item *models.GalleryItem `json:"item"`
	}
	if err := json.Unmarshal(e.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	r := withURLParam(authed(httptest.NewRequest(http.MethodDelete, "/api/v1/gallery/"+data.Item.ID, nil)), "id", data.Item.ID)
	rec = httptest.NewRecorder()
	env.handler.RemoveGalleryItem(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove = %d", rec.Code)
	}
	if len(env.store.gallery) != 0 {
		t.Error("item not removed from store")
	}

	// Removing again is a 404.
	r = withURLParam(authed(httptest.NewRequest(http.MethodDelete, "/api/v1/gallery/"+data.Item.ID, nil)), "id", data.Item.ID)
	rec = httptest.NewRecorder()
	env.handler.RemoveGalleryItem(rec, r)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second remove = %d, want 404", rec.Code)
	}
}

func TestGalleryRemoveOtherUsersItem(t *testing.T) {
	env := newTestEnv(t)
	artwork := uuidArtwork(env.store)

	env.store.gallery = append(env.store.gallery, &models.GalleryItem{
		ID:        "item-1",
		UserID:    "someone-else",
		ArtworkID: artwork.ID,
	})

	r := withURLParam(authed(httptest.NewRequest(http.MethodDelete, "/api/v1/gallery/item-1", nil)), "id", "item-1")
	rec := httptest.NewRecorder()
	env.handler.RemoveGalleryItem(rec, r)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if e := decodeEnvelope(t, rec); e.Error == nil || e.Error.Code != codeForbidden {
		t.Errorf("error = %+v, want code %s", e.Error, codeForbidden)
	}
	if len(env.store.gallery) != 1 {
		t.Error("foreign item was removed")
	}
}
