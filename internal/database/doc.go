// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

/*
Package database provides the DuckDB-backed persistence layer.

Tables:
  - users: registered accounts (unique username and email, bcrypt hash)
  - artworks: recognized artworks, deduplicated by image_hash then
    (title, artist), with monotonically non-decreasing confidence
  - user_progress: XP, level, badges, and discovery counters per user
  - gallery_items: saved artworks, unique per (user_id, artwork_id)
  - quiz_attempts: generated quizzes, reused verbatim per (user, artwork)

Schema Strategy:
All columns are defined in the initial CREATE TABLE statements, executed
idempotently at startup under a bounded schema context. A CHECKPOINT is
forced after initialization and before close to flush the WAL.

Error Handling:
Lookup misses and constraint conflicts surface as package sentinel errors
(ErrNotFound, ErrDuplicateUser, ErrDuplicateGalleryItem, ErrNotOwner) that
the API layer maps to HTTP status codes with errors.Is.
*/
package database
