// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

// Package cli implements the deskfs command line interface. It wires the
// state manager, snapshot store, registry and program projections together
// and exposes them as one-shot commands plus an interactive shell.
package cli
