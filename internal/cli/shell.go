// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/windows9x/deskfs/internal/state"
)

const flushInterval = 5 * time.Second

// runShell runs an interactive session. Commands are read line by line
// from stdin while a background loop persists committed snapshots. The
// session ends on EOF, "exit" or context cancellation; pending changes
// are flushed on the way out.
func runShell(ctx context.Context, store *state.Store, cfg IO) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return store.Run(ctx, flushInterval)
	})

	group.Go(func() error {
		// Stopping the input loop stops the flush loop too, which then
		// does the final flush.
		defer cancel()

		return inputLoop(ctx, store, cfg)
	})

	return group.Wait()
}

func inputLoop(ctx context.Context, store *state.Store, cfg IO) error {
	scanner := bufio.NewScanner(cfg.Stdin)

	for {
		fmt.Fprint(cfg.Stdout, "deskfs> ")

		if !scanner.Scan() {
			//nolint:wrapcheck
			return scanner.Err()
		}

		if ctx.Err() != nil {
			return nil
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}

		// Shell command failures are ordinary output, not session errors.
		if err := execute(store, args, cfg.Stdout); err != nil {
			fmt.Fprintf(cfg.Stdout, "Error: %v\n", err)
		}
	}
}
