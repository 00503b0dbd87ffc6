// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package programs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windows9x/deskfs/internal/programs"
	"github.com/windows9x/deskfs/internal/vfs"
)

func installNotepad(t *testing.T) (programs.Manager, vfs.FS) {
	t.Helper()

	mgr := programs.New()

	fsys, err := mgr.Install(vfs.Default(), "notepad", programs.Config{
		Name:   "Notepad",
		Prompt: "a simple text editor",
		Icon:   "notepad.ico",
	}, "<html></html>")
	require.NoError(t, err)

	return mgr, fsys
}

func TestManagerInstall(t *testing.T) {
	mgr, fsys := installNotepad(t)

	program, err := mgr.Get(fsys, "notepad")
	require.NoError(t, err)
	assert.Equal(t, "Notepad", program.Name)
	assert.Equal(t, "a simple text editor", program.Prompt)
	assert.Equal(t, "notepad.ico", program.Icon)
	assert.Equal(t, "<html></html>", program.Code)

	t.Run("folder name taken", func(t *testing.T) {
		_, err := mgr.Install(fsys, "notepad", programs.Config{Name: "Other"}, "")
		assert.ErrorIs(t, err, vfs.ErrExists)
	})

	t.Run("base snapshot untouched", func(t *testing.T) {
		items, err := vfs.Default().ListItems(vfs.ProgramsDir)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestManagerList(t *testing.T) {
	mgr, fsys := installNotepad(t)

	fsys, err := mgr.Install(fsys, "paint", programs.Config{Name: "Paint"}, "")
	require.NoError(t, err)

	// A folder without main.exe is not a program.
	fsys, err = fsys.CreateFolder(vfs.ProgramsDir+"/broken", nil)
	require.NoError(t, err)

	// A stray file is not a program either.
	fsys, err = fsys.CreateFile(vfs.ProgramsDir+"/readme.txt", "hi", nil)
	require.NoError(t, err)

	// Neither is a folder whose config does not parse.
	fsys, err = fsys.CreateFolder(vfs.ProgramsDir+"/garbled", nil)
	require.NoError(t, err)
	fsys, err = fsys.CreateFile(vfs.ProgramsDir+"/garbled/main.exe", "not json", nil)
	require.NoError(t, err)

	list, err := mgr.List(fsys)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "notepad", list[0].Folder)
	assert.Equal(t, "paint", list[1].Folder)
}

func TestManagerSaveCode(t *testing.T) {
	mgr, fsys := installNotepad(t)

	fsys, err := mgr.SaveCode(fsys, "notepad", "<html>v2</html>")
	require.NoError(t, err)

	program, err := mgr.Get(fsys, "notepad")
	require.NoError(t, err)
	assert.Equal(t, "<html>v2</html>", program.Code)

	t.Run("missing program", func(t *testing.T) {
		_, err := mgr.SaveCode(fsys, "missing", "x")
		assert.ErrorIs(t, err, vfs.ErrNotFound)
	})
}

func TestManagerRemove(t *testing.T) {
	mgr, fsys := installNotepad(t)

	next, err := mgr.Remove(fsys, "notepad")
	require.NoError(t, err)

	list, err := mgr.List(next)
	require.NoError(t, err)
	assert.Empty(t, list)

	// The old snapshot still lists the program.
	list, err = mgr.List(fsys)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	t.Run("missing program", func(t *testing.T) {
		_, err := mgr.Remove(next, "notepad")
		assert.ErrorIs(t, err, vfs.ErrNotFound)
	})
}
