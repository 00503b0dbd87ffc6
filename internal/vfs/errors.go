// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"errors"
	"io/fs"
)

var (
	// ErrFolderNotFound is returned if a folder segment of a path is
	// missing or names a file.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrNotFound is returned if a terminal file lookup fails, either
	// because the entry is absent or because it is a folder.
	ErrNotFound = errors.New("file not found")

	// ErrExists is returned if a create operation targets a name that is
	// already occupied, by a file or a folder.
	ErrExists = errors.New("item already exists")

	// ErrSystemProtected is returned if a delete targets an item flagged
	// as system owned.
	ErrSystemProtected = errors.New("item is system protected")

	// ErrInvalidPath is returned if a path resolves to zero segments
	// where a parent and name are required.
	ErrInvalidPath = errors.New("invalid path")
)

// PathError records an error and the operation and path that caused it.
// The path is the exact sub-path that failed to resolve, not necessarily
// the full path the operation was called with.
type PathError = fs.PathError
