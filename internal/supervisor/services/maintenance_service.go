// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/atelierhq/atelier/internal/logging"
)

// BadgerGCService runs Badger's value-log garbage collection on a timer.
// Badger never reclaims value-log space on its own; the application owns
// the GC cadence.
type BadgerGCService struct {
	db       *badger.DB
	interval time.Duration
}

// NewBadgerGCService creates the GC loop. A non-positive interval
// defaults to 10 minutes.
func NewBadgerGCService(db *badger.DB, interval time.Duration) *BadgerGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &BadgerGCService{db: db, interval: interval}
}

// Serve implements suture.Service. ErrNoRewrite means there was nothing to
// collect and is not a failure.
func (s *BadgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Repeat until a pass finds nothing to rewrite.
			for {
				err := s.db.RunValueLogGC(0.5)
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				if err != nil {
					logging.Warn().Err(err).Msg("badger value log GC failed")
					break
				}
			}
		}
	}
}

// String implements fmt.Stringer for suture's logs.
func (s *BadgerGCService) String() string {
	return "badger-gc"
}

// Checkpointer matches the database layer's checkpoint method.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService periodically forces a database checkpoint so the WAL
// stays bounded between restarts.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
}

// NewCheckpointService creates the checkpoint loop. A non-positive
// interval defaults to 5 minutes.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CheckpointService{db: db, interval: interval}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.db.Checkpoint(ctx); err != nil {
				logging.Warn().Err(err).Msg("database checkpoint failed")
			}
		}
	}
}

// String implements fmt.Stringer for suture's logs.
func (s *CheckpointService) String() string {
	return "db-checkpoint"
}
