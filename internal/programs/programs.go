// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

// Package programs interprets the children of the programs folder as
// installed applications. Each program is a folder with a main.exe file
// holding its JSON config and an optional index.html file holding
// generated code. All operations fold ordinary engine calls over one base
// snapshot, so a partially built program is only ever an intermediate
// value, never a torn write visible to other readers.
package programs

import (
	"encoding/json"
	"fmt"

	"github.com/windows9x/deskfs/internal/vfs"
)

// Well-known file names within a program folder.
const (
	ConfigFile = "main.exe"
	CodeFile   = "index.html"
)

// Config is the JSON payload of a program's main.exe file.
type Config struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt,omitempty"`
	Icon   string `json:"icon,omitempty"`
}

// Program is one installed application.
type Program struct {
	Config

	// Folder is the program's folder name under the programs directory.
	Folder string

	// Code is the content of the program's index.html file, empty if the
	// file does not exist yet.
	Code string
}

// Manager projects programs onto the children of one folder.
type Manager struct {
	dir string
}

// New returns a Manager bound to the well-known programs folder of the
// seeded tree.
func New() Manager {
	return NewAt(vfs.ProgramsDir)
}

// NewAt returns a Manager bound to the given folder path.
func NewAt(dir string) Manager {
	return Manager{dir: dir}
}

// Dir returns the programs folder path.
func (m Manager) Dir() string { return m.dir }

func (m Manager) programPath(folder string) string {
	return m.dir + vfs.Separator + folder
}

// List returns all installed programs in folder listing order. Children
// that are not folders or have no valid main.exe are skipped.
func (m Manager) List(fsys vfs.FS) ([]Program, error) {
	items, err := fsys.ListItems(m.dir)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}

	programs := make([]Program, 0, len(items))

	for _, item := range items {
		if _, ok := item.(*vfs.Folder); !ok {
			continue
		}

		program, err := m.Get(fsys, item.Name())
		if err != nil {
			continue
		}

		programs = append(programs, program)
	}

	return programs, nil
}

// Get returns the program installed in the given folder. It fails if the
// folder or its main.exe is missing or the config does not parse.
func (m Manager) Get(fsys vfs.FS, folder string) (Program, error) {
	path := m.programPath(folder)

	content, err := fsys.ReadFile(path + vfs.Separator + ConfigFile)
	if err != nil {
		return Program{}, fmt.Errorf("read program config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal([]byte(content), &cfg); err != nil {
		return Program{}, fmt.Errorf("parse program config %s: %w", folder, err)
	}

	program := Program{
		Config: cfg,
		Folder: folder,
	}

	// Generated code is optional.
	if code, err := fsys.ReadFile(path + vfs.Separator + CodeFile); err == nil {
		program.Code = code
	}

	return program, nil
}

// Install adds a program as one logical step: its folder, the config file
// and the code file, threaded over the given base snapshot. It fails with
// [vfs.ErrExists] if the folder name is taken.
func (m Manager) Install(fsys vfs.FS, folder string, cfg Config, code string) (vfs.FS, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return vfs.FS{}, fmt.Errorf("encode program config: %w", err)
	}

	path := m.programPath(folder)

	next, err := fsys.CreateFolder(path, nil)
	if err != nil {
		return vfs.FS{}, fmt.Errorf("install program: %w", err)
	}

	next, err = next.CreateFile(path+vfs.Separator+ConfigFile, string(data), nil)
	if err != nil {
		return vfs.FS{}, fmt.Errorf("install program: %w", err)
	}

	next, err = next.CreateFile(path+vfs.Separator+CodeFile, code, nil)
	if err != nil {
		return vfs.FS{}, fmt.Errorf("install program: %w", err)
	}

	return next, nil
}

// SaveCode replaces the program's generated code, creating the code file
// if it does not exist yet.
func (m Manager) SaveCode(fsys vfs.FS, folder, code string) (vfs.FS, error) {
	if !fsys.Exists(m.programPath(folder)) {
		return vfs.FS{}, &vfs.PathError{
			Op:   "savecode",
			Path: m.programPath(folder),
			Err:  vfs.ErrNotFound,
		}
	}

	next, err := fsys.CreateOrUpdateFile(
		m.programPath(folder)+vfs.Separator+CodeFile, code, nil,
	)
	if err != nil {
		return vfs.FS{}, fmt.Errorf("save program code: %w", err)
	}

	return next, nil
}

// Remove uninstalls the program by deleting its folder with everything in
// it.
func (m Manager) Remove(fsys vfs.FS, folder string) (vfs.FS, error) {
	next, err := fsys.Delete(m.programPath(folder))
	if err != nil {
		return vfs.FS{}, fmt.Errorf("remove program: %w", err)
	}

	return next, nil
}
