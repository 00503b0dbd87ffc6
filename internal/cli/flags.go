// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package cli

import (
	"flag"
	"fmt"
	"io"
)

const defaultStatePath = "deskfs-state.json"

type flags struct {
	statePath string
	logFile   string
	debug     bool

	// command and its operands, everything after the flags.
	args []string
}

func parseFlags(name string, args []string, output io.Writer) (*flags, error) {
	f := &flags{}

	fs := flag.NewFlagSet(name+" [flags...] command [args...]", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(
		&f.statePath,
		"state",
		defaultStatePath,
		"path of the persisted filesystem state",
	)

	fs.StringVar(
		&f.logFile,
		"log-file",
		"",
		"additionally write logs as JSON to this file",
	)

	fs.BoolVar(
		&f.debug,
		"debug",
		false,
		"enable debug logging",
	)

	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: %s\n\n", fs.Name())
		fmt.Fprint(output, usageCommands)
		fmt.Fprintf(output, "\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		//nolint:wrapcheck
		return nil, err
	}

	if len(fs.Args()) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("%w: missing command", errUsage)
	}

	f.args = fs.Args()

	return f, nil
}

const usageCommands = `Commands:
  init                                    write the seeded default state
  tree                                    print all items of the tree
  ls [path]                               list a folder
  cat <path>                              print a file's content
  write <path> <content>                  create or update a file
  mkdir <path>                            create a folder
  rm <path>                               delete a file or folder
  reg list|get|set|del [key] [value]      access the registry
  prog list                               list installed programs
  prog install <folder> <name> [prompt] [icon]
  prog code <folder> <content>            save a program's generated code
  prog rm <folder>                        uninstall a program
  export <file>                           write the tree as a CPIO archive
  import <file>                           replace the tree from a CPIO archive
  shell                                   interactive session
`
