// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"strings"
)

// Separator delimits path segments. Leading, trailing and duplicate
// separators are insignificant, so "a//b/", "/a/b" and "a/b" are the same
// path. The empty path names the root folder.
const Separator = "/"

// SplitPath splits a path into its non-empty segments.
func SplitPath(path string) []string {
	parts := strings.Split(path, Separator)

	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}

	return segments
}

// JoinPath is the inverse of [SplitPath] and yields the normalized form of
// a path.
func JoinPath(segments []string) string {
	return strings.Join(segments, Separator)
}

// resolveChain walks the given folder segments from root and returns the
// chain of folders visited, root first, target last. It fails with
// [ErrFolderNotFound] if any segment is missing or names a file. The error
// path is the normalized folder path that could not be resolved.
func resolveChain(op string, root *Folder, segments []string) ([]*Folder, error) {
	chain := make([]*Folder, 1, len(segments)+1)
	chain[0] = root

	current := root
	for _, segment := range segments {
		item, ok := current.Item(segment)
		next, isFolder := item.(*Folder)

		if !ok || !isFolder {
			return nil, &PathError{
				Op:   op,
				Path: JoinPath(segments),
				Err:  ErrFolderNotFound,
			}
		}

		chain = append(chain, next)
		current = next
	}

	return chain, nil
}

// resolveFolder returns the folder at the given path, the root itself for
// the empty path.
func resolveFolder(op string, root *Folder, path string) (*Folder, error) {
	chain, err := resolveChain(op, root, SplitPath(path))
	if err != nil {
		return nil, err
	}

	return chain[len(chain)-1], nil
}

// rebuild reconstructs the path from root to a mutated folder. The chain
// describes the old path as returned by [resolveChain], leaf is the
// replacement for its last element. All siblings are shared, only the
// folders on the path are copied.
func rebuild(chain []*Folder, leaf *Folder) *Folder {
	current := leaf
	for idx := len(chain) - 2; idx >= 0; idx-- {
		current = chain[idx].withReplaced(current)
	}

	return current
}
