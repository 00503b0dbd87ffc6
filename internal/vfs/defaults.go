// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package vfs

// Well-known paths of the seeded tree.
const (
	SystemDir    = "system"
	ProgramsDir  = "programs"
	UserDir      = "user"
	RegistryPath = SystemDir + Separator + "registry.reg"
)

// emptyRegistry is the initial registry content, an empty JSON object.
const emptyRegistry = "{}"

func systemMeta() Meta {
	return Meta{MetaKeySystem: true}
}

// Default builds the canonical seed snapshot used when no persisted state
// exists: the system, programs and user folders plus an empty registry
// file, all protected from deletion.
func Default() FS {
	fsys := New()

	// Never fails on an empty tree.
	fsys, _ = fsys.CreateFolder(SystemDir, systemMeta())
	fsys, _ = fsys.CreateFolder(ProgramsDir, systemMeta())
	fsys, _ = fsys.CreateFolder(UserDir, systemMeta())
	fsys, _ = fsys.CreateFile(RegistryPath, emptyRegistry, systemMeta())

	return fsys
}
