// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// setupLogging installs the default logger: a text handler on the given
// writer, fanned out to a JSON log file if one is configured. The
// returned function closes the log file.
func setupLogging(writer io.Writer, logFile string, debug bool) (func(), error) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(writer, opts),
	}

	closeFn := func() {}

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}

		handlers = append(handlers, slog.NewJSONHandler(file, opts))
		closeFn = func() { _ = file.Close() }
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))

	return closeFn, nil
}
