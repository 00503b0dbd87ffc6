// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package vfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windows9x/deskfs/internal/vfs"
)

func TestFSCreateFile(t *testing.T) {
	t.Run("in root", func(t *testing.T) {
		fsys, err := vfs.New().CreateFile("a.txt", "hello", nil)
		require.NoError(t, err)

		content, err := fsys.ReadFile("a.txt")
		require.NoError(t, err)
		assert.Equal(t, "hello", content)
	})

	t.Run("nested", func(t *testing.T) {
		fsys, err := vfs.New().CreateFolder("docs", nil)
		require.NoError(t, err)
		fsys, err = fsys.CreateFile("docs/a.txt", "hello", nil)
		require.NoError(t, err)

		content, err := fsys.ReadFile("docs/a.txt")
		require.NoError(t, err)
		assert.Equal(t, "hello", content)
	})

	t.Run("duplicate name fails", func(t *testing.T) {
		fsys, err := vfs.New().CreateFile("a", "1", nil)
		require.NoError(t, err)

		_, err = fsys.CreateFile("a", "2", nil)
		assert.ErrorIs(t, err, vfs.ErrExists)
	})

	t.Run("folder and file collide", func(t *testing.T) {
		fsys, err := vfs.New().CreateFolder("a", nil)
		require.NoError(t, err)

		_, err = fsys.CreateFile("a", "x", nil)
		assert.ErrorIs(t, err, vfs.ErrExists)

		_, err = fsys.CreateFolder("a", nil)
		assert.ErrorIs(t, err, vfs.ErrExists)
	})

	t.Run("missing parent reports exact sub-path", func(t *testing.T) {
		_, err := vfs.New().CreateFile("nonexistent/folder/structure/test.txt", "x", nil)
		require.ErrorIs(t, err, vfs.ErrFolderNotFound)

		var pathErr *vfs.PathError
		require.ErrorAs(t, err, &pathErr)
		assert.Equal(t, "nonexistent/folder/structure", pathErr.Path)
		assert.Contains(t, err.Error(), "nonexistent/folder/structure")
	})

	t.Run("empty path is invalid", func(t *testing.T) {
		_, err := vfs.New().CreateFile("", "x", nil)
		assert.ErrorIs(t, err, vfs.ErrInvalidPath)

		_, err = vfs.New().CreateFile("///", "x", nil)
		assert.ErrorIs(t, err, vfs.ErrInvalidPath)
	})
}

func TestFSImmutability(t *testing.T) {
	v1 := vfs.New()

	v2, err := v1.CreateFile("a.txt", "hello", nil)
	require.NoError(t, err)

	assert.False(t, v1.Exists("a.txt"))
	assert.True(t, v2.Exists("a.txt"))

	v3, err := v2.Delete("a.txt")
	require.NoError(t, err)

	assert.True(t, v2.Exists("a.txt"))
	assert.False(t, v3.Exists("a.txt"))

	v4, err := v2.UpdateFile("a.txt", "changed")
	require.NoError(t, err)

	content, err := v2.ReadFile("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", content)

	content, err = v4.ReadFile("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "changed", content)
}

func TestFSUpdateFile(t *testing.T) {
	t.Run("keeps metadata", func(t *testing.T) {
		fsys, err := vfs.New().CreateFile("x", "A", vfs.Meta{"tag": 1})
		require.NoError(t, err)

		fsys, err = fsys.UpdateFile("x", "B")
		require.NoError(t, err)

		content, err := fsys.ReadFile("x")
		require.NoError(t, err)
		assert.Equal(t, "B", content)

		item, err := fsys.GetItem("x")
		require.NoError(t, err)
		assert.Equal(t, vfs.Meta{"tag": 1}, item.Meta())
	})

	t.Run("replaces metadata when supplied", func(t *testing.T) {
		fsys, err := vfs.New().CreateFile("x", "A", vfs.Meta{"tag": 1})
		require.NoError(t, err)

		fsys, err = fsys.UpdateFileMeta("x", "B", vfs.Meta{"other": true})
		require.NoError(t, err)

		item, err := fsys.GetItem("x")
		require.NoError(t, err)
		assert.Equal(t, vfs.Meta{"other": true}, item.Meta())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := vfs.New().UpdateFile("x", "B")
		assert.ErrorIs(t, err, vfs.ErrNotFound)
	})

	t.Run("folder is not a file", func(t *testing.T) {
		fsys, err := vfs.New().CreateFolder("x", nil)
		require.NoError(t, err)

		_, err = fsys.UpdateFile("x", "B")
		assert.ErrorIs(t, err, vfs.ErrNotFound)
	})
}

func TestFSCreateOrUpdateFile(t *testing.T) {
	t.Run("creates missing file", func(t *testing.T) {
		fsys, err := vfs.New().CreateOrUpdateFile("x", "A", nil)
		require.NoError(t, err)

		content, err := fsys.ReadFile("x")
		require.NoError(t, err)
		assert.Equal(t, "A", content)
	})

	t.Run("updates existing file", func(t *testing.T) {
		fsys, err := vfs.New().CreateFile("x", "A", nil)
		require.NoError(t, err)

		fsys, err = fsys.CreateOrUpdateFile("x", "B", nil)
		require.NoError(t, err)

		content, err := fsys.ReadFile("x")
		require.NoError(t, err)
		assert.Equal(t, "B", content)
	})

	// The update failure falls through to create unconditionally, so a
	// path occupied by a folder ends in the create's error.
	t.Run("folder occupied path fails with exists", func(t *testing.T) {
		fsys, err := vfs.New().CreateFolder("x", nil)
		require.NoError(t, err)

		_, err = fsys.CreateOrUpdateFile("x", "B", nil)
		assert.ErrorIs(t, err, vfs.ErrExists)
	})
}

func TestFSDelete(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		fsys, err := vfs.New().CreateFile("a", "1", nil)
		require.NoError(t, err)

		fsys, err = fsys.Delete("a")
		require.NoError(t, err)
		assert.False(t, fsys.Exists("a"))
	})

	t.Run("non-empty folder is discarded wholesale", func(t *testing.T) {
		fsys, err := vfs.New().CreateFolder("a", nil)
		require.NoError(t, err)
		fsys, err = fsys.CreateFile("a/b", "1", nil)
		require.NoError(t, err)

		fsys, err = fsys.Delete("a")
		require.NoError(t, err)
		assert.False(t, fsys.Exists("a"))
		assert.False(t, fsys.Exists("a/b"))
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := vfs.New().Delete("a")
		assert.ErrorIs(t, err, vfs.ErrNotFound)
	})

	t.Run("system protected", func(t *testing.T) {
		fsys, err := vfs.New().CreateFile("a", "1", vfs.Meta{vfs.MetaKeySystem: true})
		require.NoError(t, err)

		_, err = fsys.Delete("a")
		assert.ErrorIs(t, err, vfs.ErrSystemProtected)
	})

	t.Run("root is invalid", func(t *testing.T) {
		_, err := vfs.New().Delete("")
		assert.ErrorIs(t, err, vfs.ErrInvalidPath)
	})
}

func TestFSListItems(t *testing.T) {
	t.Run("insertion order", func(t *testing.T) {
		fsys, err := vfs.New().CreateFolder("folder", nil)
		require.NoError(t, err)
		fsys, err = fsys.CreateFile("folder/file1.txt", "1", nil)
		require.NoError(t, err)
		fsys, err = fsys.CreateFile("folder/file2.txt", "2", nil)
		require.NoError(t, err)

		items, err := fsys.ListItems("folder")
		require.NoError(t, err)

		names := make([]string, len(items))
		for idx, item := range items {
			names[idx] = item.Name()
		}

		assert.Equal(t, []string{"file1.txt", "file2.txt"}, names)
	})

	t.Run("order survives deletion", func(t *testing.T) {
		fsys := vfs.New()

		for _, name := range []string{"a", "b", "c"} {
			var err error
			fsys, err = fsys.CreateFile(name, "", nil)
			require.NoError(t, err)
		}

		fsys, err := fsys.Delete("b")
		require.NoError(t, err)

		items, err := fsys.ListItems("")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "a", items[0].Name())
		assert.Equal(t, "c", items[1].Name())
	})

	t.Run("empty path lists root", func(t *testing.T) {
		items, err := vfs.New().ListItems("")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("missing folder", func(t *testing.T) {
		_, err := vfs.New().ListItems("missing")
		assert.ErrorIs(t, err, vfs.ErrFolderNotFound)
	})
}

func TestFSGetItem(t *testing.T) {
	fsys, err := vfs.New().CreateFolder("a", nil)
	require.NoError(t, err)
	fsys, err = fsys.CreateFile("a/f", "x", nil)
	require.NoError(t, err)

	t.Run("present", func(t *testing.T) {
		item, err := fsys.GetItem("a/f")
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "f", item.Name())
	})

	t.Run("missing leaf is nil without error", func(t *testing.T) {
		item, err := fsys.GetItem("a/missing")
		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("missing intermediate folder fails", func(t *testing.T) {
		_, err := fsys.GetItem("missing/f")
		assert.ErrorIs(t, err, vfs.ErrFolderNotFound)
	})
}

func TestFSExists(t *testing.T) {
	fsys, err := vfs.New().CreateFile("a", "x", nil)
	require.NoError(t, err)

	assert.True(t, fsys.Exists("a"))
	assert.False(t, fsys.Exists("b"))
	assert.False(t, fsys.Exists("missing/deep/path"))
	assert.False(t, fsys.Exists(""))
}

func TestFSAll(t *testing.T) {
	fsys, err := vfs.New().CreateFolder("a", nil)
	require.NoError(t, err)
	fsys, err = fsys.CreateFile("a/f", "x", nil)
	require.NoError(t, err)
	fsys, err = fsys.CreateFile("b", "y", nil)
	require.NoError(t, err)

	var paths []string
	for path := range fsys.All() {
		paths = append(paths, path)
	}

	assert.Equal(t, []string{"a", "a/f", "b"}, paths)
}
