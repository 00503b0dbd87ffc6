// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/windows9x/deskfs/internal/state"
)

// IO provides input and output streams for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, name string, args []string, cfg IO) int {
	flags, err := parseFlags(name, args, cfg.Stderr)
	if err != nil {
		// [flag.ErrHelp] is returned when help is requested, so exit
		// without error in this case. Other parse errors are already
		// printed by the flag set.
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	closeLog, err := setupLogging(cfg.Stderr, flags.logFile, flags.debug)
	if err != nil {
		fmt.Fprintf(cfg.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	if err := run(ctx, flags, cfg); err != nil {
		fmt.Fprintf(cfg.Stderr, "Error: %v\n", err)

		if errors.Is(err, errUsage) || errors.Is(err, errUnknownCommand) {
			return 2
		}

		return 1
	}

	return 0
}

func run(ctx context.Context, flags *flags, cfg IO) error {
	manager, err := state.NewManager(flags.statePath)
	if err != nil {
		return err
	}

	fsys, err := manager.Load()
	if err != nil {
		return err
	}

	store := state.NewStore(fsys, manager)

	slog.Debug("State loaded",
		slog.String("path", manager.Path()))

	if flags.args[0] == "shell" {
		return runShell(ctx, store, cfg)
	}

	if err := execute(store, flags.args, cfg.Stdout); err != nil {
		return err
	}

	// One-shot commands persist synchronously before exiting.
	return store.Flush()
}
