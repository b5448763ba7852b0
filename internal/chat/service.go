// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package chat

import (
	"context"

	"github.com/atelierhq/atelier/internal/models"
)

// Persona generates the artist's reply given the conversation so far.
type Persona interface {
	Chat(ctx context.Context, artwork *models.Artwork, userMessage string, history []models.ChatMessage) string
}

// Service runs artist-persona conversations, threading stored history
// through the persona and persisting each exchange.
type Service struct {
	store   *Store
	persona Persona
}

// NewService creates a chat service.
func NewService(store *Store, persona Persona) *Service {
	return &Service{store: store, persona: persona}
}

// Converse sends a user message to the artwork's artist persona and returns
// the reply plus the updated conversation. The persona sees the history as
// it stood before this message.
func (s *Service) Converse(ctx context.Context, userID string, artwork *models.Artwork, message string) (string, []models.ChatMessage, error) {
	history, err := s.store.History(userID, artwork.ID)
	if err != nil {
		return "", nil, err
	}

	reply := s.persona.Chat(ctx, artwork, message, history)

	updated, err := s.store.Append(userID, artwork.ID,
		models.ChatMessage{Role: "user", Content: message},
		models.ChatMessage{Role: "assistant", Content: reply},
	)
	if err != nil {
		return "", nil, err
	}
	return reply, updated, nil
}

// History returns the stored conversation for display.
func (s *Service) History(userID, artworkID string) ([]models.ChatMessage, error) {
	return s.store.History(userID, artworkID)
}
