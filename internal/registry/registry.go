// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

// Package registry interprets a single file of the virtual filesystem as a
// flat JSON key-value store for system and user settings. The file itself
// stays the source of truth; this package only encodes and decodes the
// whole object around the engine's read and update operations.
package registry

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/windows9x/deskfs/internal/vfs"
)

// Registry projects a key-value store onto one registry file.
type Registry struct {
	path string
}

// New returns a Registry bound to the well-known registry path of the
// seeded tree.
func New() Registry {
	return NewAt(vfs.RegistryPath)
}

// NewAt returns a Registry bound to the given file path.
func NewAt(path string) Registry {
	return Registry{path: path}
}

// Path returns the registry file path.
func (r Registry) Path() string { return r.path }

// Read parses the whole registry object from the snapshot.
func (r Registry) Read(fsys vfs.FS) (map[string]any, error) {
	content, err := fsys.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	values := make(map[string]any)
	if err := json.Unmarshal([]byte(content), &values); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	return values, nil
}

// Write serializes the whole registry object back into the snapshot. The
// registry file's metadata is untouched.
func (r Registry) Write(fsys vfs.FS, values map[string]any) (vfs.FS, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return vfs.FS{}, fmt.Errorf("encode registry: %w", err)
	}

	next, err := fsys.UpdateFile(r.path, string(data))
	if err != nil {
		return vfs.FS{}, fmt.Errorf("write registry: %w", err)
	}

	return next, nil
}

// Get returns the value stored under key, and whether it is present.
func (r Registry) Get(fsys vfs.FS, key string) (any, bool, error) {
	values, err := r.Read(fsys)
	if err != nil {
		return nil, false, err
	}

	value, ok := values[key]

	return value, ok, nil
}

// Set stores value under key by rewriting the whole object.
func (r Registry) Set(fsys vfs.FS, key string, value any) (vfs.FS, error) {
	values, err := r.Read(fsys)
	if err != nil {
		return vfs.FS{}, err
	}

	updated := maps.Clone(values)
	updated[key] = value

	return r.Write(fsys, updated)
}

// Delete removes key by rewriting the whole object. Deleting an absent
// key is a no-op.
func (r Registry) Delete(fsys vfs.FS, key string) (vfs.FS, error) {
	values, err := r.Read(fsys)
	if err != nil {
		return vfs.FS{}, err
	}

	updated := maps.Clone(values)
	delete(updated, key)

	return r.Write(fsys, updated)
}
