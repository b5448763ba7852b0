// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package gamification

import (
	"context"
	"testing"

	"github.com/atelierhq/atelier/internal/models"
)

// memStore keeps progress in memory, creating zeroed progress on first
// read like the database layer does.
type memStore struct {
	progress map[string]*models.UserProgress
}

func newMemStore() *memStore {
	return &memStore{progress: map[string]*models.UserProgress{}}
}

func (m *memStore) GetProgress(_ context.Context, userID string) (*models.UserProgress, error) {
	if p, ok := m.progress[userID]; ok {
		clone := *p
		clone.Badges = append([]string(nil), p.Badges...)
		return &clone, nil
	}
	return &models.UserProgress{UserID: userID, Level: 1, Badges: []string{}}, nil
}

func (m *memStore) SaveProgress(_ context.Context, progress *models.UserProgress) error {
	m.progress[progress.UserID] = progress
	return nil
}

func (m *memStore) Leaderboard(_ context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	entries := make([]*models.LeaderboardEntry, 0, limit)
	for _, p := range m.progress {
		entries = append(entries, &models.LeaderboardEntry{XP: p.XP, Level: p.Level})
		if len(entries) >= limit {
			break
		}
	}
	return entries, nil
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{1000, 11},
	}
	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestRecordDiscoveryAwardsXPAndFirstBadge(t *testing.T) {
	svc := NewService(newMemStore())
	progress, badges, err := svc.RecordDiscovery(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("RecordDiscovery() error = %v", err)
	}
	if progress.XP != XPPerDiscovery {
		t.Errorf("XP = %d, want %d", progress.XP, XPPerDiscovery)
	}
	if progress.ArtworksDiscovered != 1 {
		t.Errorf("ArtworksDiscovered = %d, want 1", progress.ArtworksDiscovered)
	}
	if len(badges) != 1 || badges[0] != "first_discovery" {
		t.Errorf("new badges = %v, want [first_discovery]", badges)
	}
}

func TestBadgesNotReawarded(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()
	if _, _, err := svc.RecordDiscovery(ctx, "user-1"); err != nil {
		t.Fatalf("RecordDiscovery() error = %v", err)
	}
	_, badges, err := svc.RecordDiscovery(ctx, "user-1")
	if err != nil {
		t.Fatalf("RecordDiscovery() error = %v", err)
	}
	if len(badges) != 0 {
		t.Errorf("second discovery earned %v, want none", badges)
	}
}

func TestDiscoveryThresholdBadges(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	var last []string
	for i := 0; i < 10; i++ {
		var err error
		_, last, err = svc.RecordDiscovery(ctx, "user-1")
		if err != nil {
			t.Fatalf("RecordDiscovery() error = %v", err)
		}
	}
	// The tenth discovery crosses both the discovery and the XP threshold.
	want := map[string]bool{"art_explorer": true, "xp_hundred": true}
	if len(last) != 2 || !want[last[0]] || !want[last[1]] {
		t.Errorf("tenth discovery earned %v, want art_explorer and xp_hundred", last)
	}
}

func TestRecordQuizCompletion(t *testing.T) {
	svc := NewService(newMemStore())
	progress, _, err := svc.RecordQuizCompletion(context.Background(), "user-1", 4)
	if err != nil {
		t.Fatalf("RecordQuizCompletion() error = %v", err)
	}
	if progress.XP != 4*XPPerCorrectAnswer {
		t.Errorf("XP = %d, want %d", progress.XP, 4*XPPerCorrectAnswer)
	}
	if progress.QuizzesCompleted != 1 {
		t.Errorf("QuizzesCompleted = %d, want 1", progress.QuizzesCompleted)
	}
}

func TestZeroScoreQuizStillCounts(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, _, err := svc.RecordQuizCompletion(ctx, "user-1", 0); err != nil {
			t.Fatalf("RecordQuizCompletion() error = %v", err)
		}
	}
	progress := store.progress["user-1"]
	if progress.XP != 0 {
		t.Errorf("XP = %d, want 0", progress.XP)
	}
	if progress.QuizzesCompleted != 5 {
		t.Errorf("QuizzesCompleted = %d, want 5", progress.QuizzesCompleted)
	}
	hasNovice := false
	for _, id := range progress.Badges {
		if id == "quiz_novice" {
			hasNovice = true
		}
	}
	if !hasNovice {
		t.Error("quiz_novice not earned after 5 completed quizzes")
	}
}

func TestProgressResolvesCatalog(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()
	if _, _, err := svc.RecordDiscovery(ctx, "user-1"); err != nil {
		t.Fatalf("RecordDiscovery() error = %v", err)
	}

	_, catalog, err := svc.Progress(ctx, "user-1")
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if len(catalog) != len(badgeCatalog) {
		t.Fatalf("catalog has %d badges, want %d", len(catalog), len(badgeCatalog))
	}
	earned := 0
	for _, badge := range catalog {
		if badge.Earned {
			earned++
			if badge.ID != "first_discovery" {
				t.Errorf("unexpected earned badge %q", badge.ID)
			}
		}
	}
	if earned != 1 {
		t.Errorf("%d badges earned, want 1", earned)
	}
}
