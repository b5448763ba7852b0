// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package database

import (
	"errors"
	"io"

	"github.com/atelierhq/atelier/internal/logging"
)

// Sentinel errors surfaced by the persistence layer. Handlers map these to
// HTTP status codes with errors.Is.
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUser is returned when a username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already exists")

	// ErrDuplicateGalleryItem is returned when a (user, artwork) gallery
	// pair already exists.
	ErrDuplicateGalleryItem = errors.New("artwork already in gallery")

	// ErrNotOwner is returned when a user attempts to modify a row owned by
	// someone else.
	ErrNotOwner = errors.New("not the owner of this item")
)

// closeWithLog closes a resource and logs any error.
// Use this for cleanup operations where errors should be acknowledged but not fail the operation.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup operations in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
