// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

// Package vfs implements the immutable virtual filesystem backing the
// desktop. A [FS] value is one snapshot of the whole tree. Mutating
// operations never modify the receiver; they return a new snapshot that
// shares all unchanged subtrees with the old one, so previously published
// snapshots stay readable forever.
package vfs
