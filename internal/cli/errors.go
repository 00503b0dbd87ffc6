// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
)

var (
	// errUsage is returned for malformed command lines.
	errUsage = errors.New("usage error")

	// errUnknownCommand is returned for commands the CLI does not know.
	errUnknownCommand = errors.New("unknown command")
)
