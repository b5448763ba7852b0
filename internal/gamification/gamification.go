// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

// Package gamification awards experience points for discoveries and quiz
// answers, levels users, and evaluates the badge catalog after every
// progress change.
package gamification

import (
	"context"
	"time"

	"github.com/atelierhq/atelier/internal/metrics"
	"github.com/atelierhq/atelier/internal/models"
)

const (
	// XPPerDiscovery is awarded once per newly recognized artwork.
	XPPerDiscovery = 10
	// XPPerCorrectAnswer is awarded per correct quiz answer.
	XPPerCorrectAnswer = 10
	// xpPerLevel: levels are a pure function of XP, never stored drift.
	xpPerLevel = 100

	leaderboardSize = 20
)

// badgeSpec couples a catalog entry with its earning condition.
type badgeSpec struct {
	id          string
	name        string
	description string
	earned      func(p *models.UserProgress) bool
}

// badgeCatalog is evaluated in order after every progress change. Badges
// are never revoked.
var badgeCatalog = []badgeSpec{
	{"first_discovery", "First Discovery", "Recognize your first artwork",
		func(p *models.UserProgress) bool { return p.ArtworksDiscovered >= 1 }},
	{"art_explorer", "Art Explorer", "Recognize 10 artworks",
		func(p *models.UserProgress) bool { return p.ArtworksDiscovered >= 10 }},
	{"museum_master", "Museum Master", "Recognize 50 artworks",
		func(p *models.UserProgress) bool { return p.ArtworksDiscovered >= 50 }},
	{"quiz_novice", "Quiz Novice", "Complete 5 quizzes",
		func(p *models.UserProgress) bool { return p.QuizzesCompleted >= 5 }},
	{"art_historian", "Art Historian", "Complete 20 quizzes",
		func(p *models.UserProgress) bool { return p.QuizzesCompleted >= 20 }},
	{"xp_hundred", "Century Scholar", "Earn 100 XP",
		func(p *models.UserProgress) bool { return p.XP >= 100 }},
	{"xp_thousand", "Grand Collector", "Earn 1000 XP",
		func(p *models.UserProgress) bool { return p.XP >= 1000 }},
}

// LevelForXP converts accumulated XP into a level, starting at 1.
func LevelForXP(xp int) int {
	return xp/xpPerLevel + 1
}

// Store is the progress persistence surface.
type Store interface {
	GetProgress(ctx context.Context, userID string) (*models.UserProgress, error)
	SaveProgress(ctx context.Context, progress *models.UserProgress) error
	Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// Service applies XP rules and badge evaluation on top of a progress store.
type Service struct {
	store Store
}

// NewService creates a gamification service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// RecordDiscovery awards discovery XP and increments the discovery count.
// Returns the updated progress and any badges earned by this change.
func (s *Service) RecordDiscovery(ctx context.Context, userID string) (*models.UserProgress, []string, error) {
	return s.apply(ctx, userID, "discovery", XPPerDiscovery, func(p *models.UserProgress) {
		p.ArtworksDiscovered++
	})
}

// RecordQuizCompletion awards XP for correct answers and increments the
// quiz count. A zero-score quiz still counts as completed.
func (s *Service) RecordQuizCompletion(ctx context.Context, userID string, correctAnswers int) (*models.UserProgress, []string, error) {
	if correctAnswers < 0 {
		correctAnswers = 0
	}
	return s.apply(ctx, userID, "quiz", correctAnswers*XPPerCorrectAnswer, func(p *models.UserProgress) {
		p.QuizzesCompleted++
	})
}

// Progress returns a user's progress with the full badge catalog resolved.
func (s *Service) Progress(ctx context.Context, userID string) (*models.UserProgress, []models.Badge, error) {
	progress, err := s.store.GetProgress(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	earned := make(map[string]struct{}, len(progress.Badges))
	for _, id := range progress.Badges {
		earned[id] = struct{}{}
	}
	catalog := make([]models.Badge, 0, len(badgeCatalog))
	for _, spec := range badgeCatalog {
		_, has := earned[spec.id]
		catalog = append(catalog, models.Badge{
			ID:          spec.id,
			Name:        spec.name,
			Description: spec.description,
			Earned:      has,
		})
	}
	return progress, catalog, nil
}

// Leaderboard returns the top users by XP.
func (s *Service) Leaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error) {
	return s.store.Leaderboard(ctx, leaderboardSize)
}

// apply loads progress, mutates it, recomputes level, evaluates badges,
// and persists the result.
func (s *Service) apply(ctx context.Context, userID, source string, xp int, mutate func(*models.UserProgress)) (*models.UserProgress, []string, error) {
	progress, err := s.store.GetProgress(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	progress.XP += xp
	mutate(progress)
	progress.Level = LevelForXP(progress.XP)
	progress.UpdatedAt = time.Now().UTC()

	newBadges := evaluateBadges(progress)
	if err := s.store.SaveProgress(ctx, progress); err != nil {
		return nil, nil, err
	}

	if xp > 0 {
		metrics.RecordXPAwarded(source, xp)
	}
	for _, id := range newBadges {
		metrics.RecordBadgeEarned(id)
	}
	return progress, newBadges, nil
}

// evaluateBadges appends newly satisfied catalog entries to the progress
// and returns just the new ones.
func evaluateBadges(progress *models.UserProgress) []string {
	earned := make(map[string]struct{}, len(progress.Badges))
	for _, id := range progress.Badges {
		earned[id] = struct{}{}
	}

	var newBadges []string
	for _, spec := range badgeCatalog {
		if _, has := earned[spec.id]; has {
			continue
		}
		if spec.earned(progress) {
			progress.Badges = append(progress.Badges, spec.id)
			newBadges = append(newBadges, spec.id)
		}
	}
	return newBadges
}
