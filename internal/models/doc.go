// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

/*
Package models defines data structures shared across the Atelier application.

This package contains all domain models used throughout the application:
database entities, API request/response structures, and internal data
transfer objects. It serves as the single source of truth for data
structure definitions.

Model Categories:

1. Database Entities:
  - Artwork: Recognized artwork with metadata and recognition statistics
  - User: Registered account with bcrypt password hash
  - UserProgress: XP, level, badges, and discovery counters
  - GalleryItem: A user's saved artwork reference
  - QuizAttempt: Generated quiz questions with score and completion state

2. Recognition Models:
  - RecognitionResult: Outcome of the vision-model recognition gate
  - QuizQuestion: A single generated question with options and explanation

3. Related-Content Models:
  - RelatedArtwork: One related-artwork entry with image and explanation
  - RelatedContentBundle: Assembled related content for an artwork

4. Gamification Models:
  - Badge: Catalog entry with requirement description and earned flag
  - LeaderboardEntry: One row of the XP leaderboard

Thread Safety:

All models are plain data carriers, safe for concurrent read access.
Behavior lives in the packages that produce and consume them.
*/
package models
