// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

// Package chat persists per-(user, artwork) conversations with an artwork's
// artist persona. Histories are bounded; only the most recent exchanges
// survive.
package chat

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"

	"github.com/atelierhq/atelier/internal/models"
)

const chatKeyPrefix = "chat/"

// maxHistory bounds the stored conversation. Ten messages is five
// exchanges, more than the persona prompt ever reads back.
const maxHistory = 10

// Store persists chat histories in BadgerDB.
type Store struct {
	db *badger.DB
}

// NewStore creates a chat store over an open Badger database.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

func historyKey(userID, artworkID string) []byte {
	return []byte(chatKeyPrefix + userID + "/" + artworkID)
}

// History returns the stored conversation for a (user, artwork) pair. A
// conversation that never happened is an empty history, not an error.
func (s *Store) History(userID, artworkID string) ([]models.ChatMessage, error) {
	var history []models.ChatMessage
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(historyKey(userID, artworkID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get chat history: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &history)
		})
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

// Append adds messages to a conversation and trims it to the most recent
// maxHistory entries.
func (s *Store) Append(userID, artworkID string, messages ...models.ChatMessage) ([]models.ChatMessage, error) {
	history, err := s.History(userID, artworkID)
	if err != nil {
		return nil, err
	}

	history = append(history, messages...)
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}

	data, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("marshal chat history: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(historyKey(userID, artworkID), data)
	})
	if err != nil {
		return nil, fmt.Errorf("set chat history: %w", err)
	}
	return history, nil
}

// Clear removes a conversation.
func (s *Store) Clear(userID, artworkID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(historyKey(userID, artworkID))
	})
	if err != nil {
		return fmt.Errorf("delete chat history: %w", err)
	}
	return nil
}
