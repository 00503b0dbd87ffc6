// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/windows9x/deskfs/internal/vfs"
)

// Saver persists an accepted snapshot. It is implemented by [Manager].
type Saver interface {
	Save(fsys vfs.FS) error
}

// Store is the single-owner slot holding the current snapshot. All
// updates go through [Store.Commit] as pure functions from old to new
// snapshot; whichever snapshot was committed last is the canonical state,
// last write wins.
type Store struct {
	saver Saver

	mu      sync.Mutex
	current vfs.FS
	dirty   bool

	notify chan struct{}
}

// NewStore creates a store holding the given initial snapshot. The saver
// may be nil if persistence is not wanted.
func NewStore(initial vfs.FS, saver Saver) *Store {
	return &Store{
		saver:   saver,
		current: initial,
		notify:  make(chan struct{}, 1),
	}
}

// Current returns the latest committed snapshot.
func (s *Store) Current() vfs.FS {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// Commit applies the update to the current snapshot and publishes the
// result. If the update fails, nothing is published and the error is
// returned as is.
func (s *Store) Commit(update func(vfs.FS) (vfs.FS, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := update(s.current)
	if err != nil {
		return err
	}

	s.current = next
	s.dirty = true

	// Wake up a flush loop if one is running. The channel is buffered, a
	// pending signal covers any number of commits.
	select {
	case s.notify <- struct{}{}:
	default:
	}

	return nil
}

// Flush saves the current snapshot if it changed since the last save.
func (s *Store) Flush() error {
	s.mu.Lock()
	snapshot, dirty := s.current, s.dirty
	s.dirty = false
	s.mu.Unlock()

	if !dirty || s.saver == nil {
		return nil
	}

	if err := s.saver.Save(snapshot); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()

		return err
	}

	return nil
}

// Run flushes committed snapshots until the context is canceled: after
// every commit, at the given interval as a safety net, and once more on
// shutdown. Save errors are logged and retried on the next wakeup; only
// the final flush's error is returned.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.Flush()
		case <-s.notify:
		case <-ticker.C:
		}

		if err := s.Flush(); err != nil {
			slog.Error("Failed to flush state", slog.Any("error", err))
		}
	}
}
