// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

// Package state owns the "current" snapshot of the virtual filesystem and
// its persistence. The engine itself is pure; this package provides the
// single mutable slot collaborators publish new snapshots through, plus
// the JSON state file it is rehydrated from at startup.
package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/windows9x/deskfs/internal/vfs"
)

const (
	backupDirName  = ".deskfs-backups"
	defaultBackups = 5
)

// Manager loads and saves the serialized filesystem state.
type Manager struct {
	statePath   string
	backupDir   string
	backupCount int
}

// NewManager creates a state manager for the given state file path. The
// state and backup directories are created if missing.
func NewManager(statePath string) (*Manager, error) {
	absPath, err := filepath.Abs(statePath)
	if err != nil {
		return nil, fmt.Errorf("resolve state path: %w", err)
	}

	stateDir := filepath.Dir(absPath)
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	backupDir := filepath.Join(stateDir, backupDirName)
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	return &Manager{
		statePath:   absPath,
		backupDir:   backupDir,
		backupCount: defaultBackups,
	}, nil
}

// Path returns the absolute state file path.
func (m *Manager) Path() string { return m.statePath }

// Load reads the persisted snapshot. A missing or empty state file yields
// the default seeded tree.
func (m *Manager) Load() (vfs.FS, error) {
	data, err := os.ReadFile(m.statePath)
	if os.IsNotExist(err) || (err == nil && len(data) == 0) {
		slog.Info("No state file, using default tree",
			slog.String("path", m.statePath))

		return vfs.Default(), nil
	}

	if err != nil {
		return vfs.FS{}, fmt.Errorf("read state file: %w", err)
	}

	var fsys vfs.FS
	if err := json.Unmarshal(data, &fsys); err != nil {
		return vfs.FS{}, fmt.Errorf("parse state file: %w", err)
	}

	slog.Debug("Loaded state file",
		slog.String("path", m.statePath),
		slog.Int("bytes", len(data)))

	return fsys, nil
}

// Save writes the snapshot to the state file, keeping a timestamped
// backup of the previous state.
func (m *Manager) Save(fsys vfs.FS) error {
	if err := m.createBackup(); err != nil {
		// A failed backup does not block the save.
		slog.Warn("Failed to create state backup", slog.Any("error", err))
	}

	data, err := json.MarshalIndent(fsys, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := os.WriteFile(m.statePath, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	slog.Debug("Saved state file",
		slog.String("path", m.statePath),
		slog.Int("bytes", len(data)))

	return nil
}

func (m *Manager) createBackup() error {
	data, err := os.ReadFile(m.statePath)
	if os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102-150405.000000000")
	backupPath := filepath.Join(m.backupDir, "state-"+timestamp+".json")

	if err := os.WriteFile(backupPath, data, 0o600); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	return m.pruneBackups()
}

// pruneBackups removes old backups, keeping the most recent ones. Backup
// names embed their creation time, so lexical order is creation order.
func (m *Manager) pruneBackups() error {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			names = append(names, entry.Name())
		}
	}

	slices.Sort(names)

	for len(names) > m.backupCount {
		name := names[0]
		names = names[1:]

		if err := os.Remove(filepath.Join(m.backupDir, name)); err != nil {
			return fmt.Errorf("remove old backup: %w", err)
		}
	}

	return nil
}
