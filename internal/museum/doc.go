// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

// Package museum verifies artworks against the Metropolitan Museum of Art
// Collection API and infers art movements for objects that lack one.
//
// Lookups search the collection, score each candidate against the requested
// title and artist, and accept only candidates that score at least the match
// threshold and carry a primary image. Results, including misses, are
// memoized in bounded LRU caches so repeated lookups for popular artworks
// never re-hit the upstream API. All upstream calls flow through a circuit
// breaker that opens after sustained failures.
package museum
