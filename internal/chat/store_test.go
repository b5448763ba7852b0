// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package chat

import (
	"context"
	"fmt"
	"testing"

	"github.com/dgraph-io/badger/v4"

	"github.com/atelierhq/atelier/internal/models"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestHistoryEmptyWithoutConversation(t *testing.T) {
	store := NewStore(newTestDB(t))
	history, err := store.History("user-1", "art-1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("History() = %v, want empty", history)
	}
}

func TestAppendAndHistory(t *testing.T) {
	store := NewStore(newTestDB(t))

	updated, err := store.Append("user-1", "art-1",
		models.ChatMessage{Role: "user", Content: "Why water lilies?"},
		models.ChatMessage{Role: "assistant", Content: "The pond consumed me."},
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if len(updated) != 2 {
		t.Fatalf("Append() returned %d messages, want 2", len(updated))
	}

	history, err := store.History("user-1", "art-1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 || history[0].Role != "user" || history[1].Role != "assistant" {
		t.Errorf("History() = %+v", history)
	}
}

func TestHistoryIsolatedPerUserAndArtwork(t *testing.T) {
	store := NewStore(newTestDB(t))
	_, err := store.Append("user-1", "art-1", models.ChatMessage{Role: "user", Content: "hello"})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	for _, pair := range [][2]string{{"user-2", "art-1"}, {"user-1", "art-2"}} {
		history, err := store.History(pair[0], pair[1])
		if err != nil {
			t.Fatalf("History(%v) error = %v", pair, err)
		}
		if len(history) != 0 {
			t.Errorf("History(%v) = %v, want empty", pair, history)
		}
	}
}

func TestAppendTrimsToMaxHistory(t *testing.T) {
	store := NewStore(newTestDB(t))
	for i := 0; i < 8; i++ {
		_, err := store.Append("user-1", "art-1",
			models.ChatMessage{Role: "user", Content: fmt.Sprintf("question %d", i)},
			models.ChatMessage{Role: "assistant", Content: fmt.Sprintf("answer %d", i)},
		)
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	history, err := store.History("user-1", "art-1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != maxHistory {
		t.Fatalf("History() kept %d messages, want %d", len(history), maxHistory)
	}
	if history[0].Content != "question 3" {
		t.Errorf("oldest kept message = %q, want %q", history[0].Content, "question 3")
	}
	if history[len(history)-1].Content != "answer 7" {
		t.Errorf("newest message = %q, want %q", history[len(history)-1].Content, "answer 7")
	}
}

func TestClear(t *testing.T) {
	store := NewStore(newTestDB(t))
	_, err := store.Append("user-1", "art-1", models.ChatMessage{Role: "user", Content: "hello"})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Clear("user-1", "art-1"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	history, err := store.History("user-1", "art-1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("History() after Clear = %v, want empty", history)
	}
}

type echoPersona struct {
	sawHistory int
}

func (p *echoPersona) Chat(_ context.Context, artwork *models.Artwork, userMessage string, history []models.ChatMessage) string {
	p.sawHistory = len(history)
	return fmt.Sprintf("%s says: I heard %q", artwork.Artist, userMessage)
}

func TestConversePersistsExchange(t *testing.T) {
	persona := &echoPersona{}
	svc := NewService(NewStore(newTestDB(t)), persona)
	artwork := &models.Artwork{ID: "art-1", Title: "Water Lilies", Artist: "Claude Monet"}

	reply, updated, err := svc.Converse(context.Background(), "user-1", artwork, "Why the pond?")
	if err != nil {
		t.Fatalf("Converse() error = %v", err)
	}
	if reply == "" {
		t.Error("Converse() returned empty reply")
	}
	if persona.sawHistory != 0 {
		t.Errorf("persona saw %d history messages on first exchange, want 0", persona.sawHistory)
	}
	if len(updated) != 2 {
		t.Fatalf("conversation has %d messages, want 2", len(updated))
	}

	_, updated, err = svc.Converse(context.Background(), "user-1", artwork, "And the bridge?")
	if err != nil {
		t.Fatalf("Converse() error = %v", err)
	}
	if persona.sawHistory != 2 {
		t.Errorf("persona saw %d history messages on second exchange, want 2", persona.sawHistory)
	}
	if len(updated) != 4 {
		t.Errorf("conversation has %d messages, want 4", len(updated))
	}
}
