// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/windows9x/deskfs/internal/archive"
	"github.com/windows9x/deskfs/internal/programs"
	"github.com/windows9x/deskfs/internal/registry"
	"github.com/windows9x/deskfs/internal/state"
	"github.com/windows9x/deskfs/internal/vfs"
)

// execute runs a single command against the store. Mutating commands
// commit a new snapshot; persistence is the caller's concern.
func execute(store *state.Store, args []string, out io.Writer) error {
	command := args[0]
	operands := args[1:]

	switch command {
	case "init":
		// Loading already seeded the tree; committing the identity marks
		// it for persistence.
		return store.Commit(func(fsys vfs.FS) (vfs.FS, error) {
			return fsys, nil
		})
	case "tree":
		return cmdTree(store, out)
	case "ls":
		return cmdList(store, operands, out)
	case "cat":
		return cmdCat(store, operands, out)
	case "write":
		return cmdWrite(store, operands)
	case "mkdir":
		return cmdMkdir(store, operands)
	case "rm":
		return cmdRemove(store, operands)
	case "reg":
		return cmdRegistry(store, operands, out)
	case "prog":
		return cmdPrograms(store, operands, out)
	case "export":
		return cmdExport(store, operands)
	case "import":
		return cmdImport(store, operands)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, command)
	}
}

func needOperands(operands []string, count int, usage string) error {
	if len(operands) != count {
		return fmt.Errorf("%w: usage: %s", errUsage, usage)
	}

	return nil
}

func cmdTree(store *state.Store, out io.Writer) error {
	for path, item := range store.Current().All() {
		if _, ok := item.(*vfs.Folder); ok {
			fmt.Fprintf(out, "%s/\n", path)
		} else {
			fmt.Fprintf(out, "%s\n", path)
		}
	}

	return nil
}

func cmdList(store *state.Store, operands []string, out io.Writer) error {
	path := ""
	if len(operands) > 0 {
		path = operands[0]
	}

	items, err := store.Current().ListItems(path)
	if err != nil {
		return err
	}

	for _, item := range items {
		if _, ok := item.(*vfs.Folder); ok {
			fmt.Fprintf(out, "%s/\n", item.Name())
		} else {
			fmt.Fprintf(out, "%s\n", item.Name())
		}
	}

	return nil
}

func cmdCat(store *state.Store, operands []string, out io.Writer) error {
	if err := needOperands(operands, 1, "cat <path>"); err != nil {
		return err
	}

	content, err := store.Current().ReadFile(operands[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(out, content)

	return nil
}

func cmdWrite(store *state.Store, operands []string) error {
	if err := needOperands(operands, 2, "write <path> <content>"); err != nil {
		return err
	}

	return store.Commit(func(fsys vfs.FS) (vfs.FS, error) {
		return fsys.CreateOrUpdateFile(operands[0], operands[1], nil)
	})
}

func cmdMkdir(store *state.Store, operands []string) error {
	if err := needOperands(operands, 1, "mkdir <path>"); err != nil {
		return err
	}

	return store.Commit(func(fsys vfs.FS) (vfs.FS, error) {
		return fsys.CreateFolder(operands[0], nil)
	})
}

func cmdRemove(store *state.Store, operands []string) error {
	if err := needOperands(operands, 1, "rm <path>"); err != nil {
		return err
	}

	return store.Commit(func(fsys vfs.FS) (vfs.FS, error) {
		return fsys.Delete(operands[0])
	})
}

func cmdRegistry(store *state.Store, operands []string, out io.Writer) error {
	if len(operands) == 0 {
		return fmt.Errorf("%w: usage: reg list|get|set|del", errUsage)
	}

	reg := registry.New()

	switch operands[0] {
	case "list":
		values, err := reg.Read(store.Current())
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(out, string(data))

		return nil
	case "get":
		if err := needOperands(operands, 2, "reg get <key>"); err != nil {
			return err
		}

		value, ok, err := reg.Get(store.Current(), operands[1])
		if err != nil {
			return err
		}

		if !ok {
			return fmt.Errorf("registry key %q not set", operands[1])
		}

		data, err := json.Marshal(value)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, string(data))

		return nil
	case "set":
		if err := needOperands(operands, 3, "reg set <key> <value>"); err != nil {
			return err
		}

		return store.Commit(func(fsys vfs.FS) (vfs.FS, error) {
			return reg.Set(fsys, operands[1], parseValue(operands[2]))
		})
	case "del":
		if err := needOperands(operands, 2, "reg del <key>"); err != nil {
			return err
		}

		return store.Commit(func(fsys vfs.FS) (vfs.FS, error) {
			return reg.Delete(fsys, operands[1])
		})
	default:
		return fmt.Errorf("%w: reg %s", errUnknownCommand, operands[0])
	}
}

// parseValue interprets a registry value operand as JSON, falling back to
// a plain string.
func parseValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}

	return value
}

func cmdPrograms(store *state.Store, operands []string, out io.Writer) error {
	if len(operands) == 0 {
		return fmt.Errorf("%w: usage: prog list|install|code|rm", errUsage)
	}

	mgr := programs.New()

	switch operands[0] {
	case "list":
		list, err := mgr.List(store.Current())
		if err != nil {
			return err
		}

		for _, program := range list {
			fmt.Fprintf(out, "%s\t%s\n", program.Folder, program.Name)
		}

		return nil
	case "install":
		if len(operands) < 3 || len(operands) > 5 {
			return fmt.Errorf(
				"%w: usage: prog install <folder> <name> [prompt] [icon]",
				errUsage,
			)
		}

		cfg := programs.Config{Name: operands[2]}
		if len(operands) > 3 {
			cfg.Prompt = operands[3]
		}

		if len(operands) > 4 {
			cfg.Icon = operands[4]
		}

		return store.Commit(func(fsys vfs.FS) (vfs.FS, error) {
			return mgr.Install(fsys, operands[1], cfg, "")
		})
	case "code":
		if err := needOperands(operands, 3, "prog code <folder> <content>"); err != nil {
			return err
		}

		return store.Commit(func(fsys vfs.FS) (vfs.FS, error) {
			return mgr.SaveCode(fsys, operands[1], operands[2])
		})
	case "rm":
		if err := needOperands(operands, 2, "prog rm <folder>"); err != nil {
			return err
		}

		return store.Commit(func(fsys vfs.FS) (vfs.FS, error) {
			return mgr.Remove(fsys, operands[1])
		})
	default:
		return fmt.Errorf("%w: prog %s", errUnknownCommand, operands[0])
	}
}

func cmdExport(store *state.Store, operands []string) error {
	if err := needOperands(operands, 1, "export <file>"); err != nil {
		return err
	}

	file, err := os.Create(operands[0])
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}

	if err := archive.Export(file, store.Current()); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}

func cmdImport(store *state.Store, operands []string) error {
	if err := needOperands(operands, 1, "import <file>"); err != nil {
		return err
	}

	file, err := os.Open(operands[0])
	if err != nil {
		return fmt.Errorf("open archive file: %w", err)
	}
	defer file.Close()

	imported, err := archive.Import(file)
	if err != nil {
		return err
	}

	return store.Commit(func(vfs.FS) (vfs.FS, error) {
		return imported, nil
	})
}
