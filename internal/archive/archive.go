// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

// Package archive exports a snapshot of the virtual filesystem as a CPIO
// archive and rebuilds snapshots from such archives. The archive carries
// the tree structure and file contents only; item metadata has no place
// in CPIO headers and is not preserved.
package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/cavaliergopher/cpio"

	"github.com/windows9x/deskfs/internal/vfs"
)

const numLinks = 2

// Export writes all items of the snapshot into a CPIO archive, parents
// before children, in folder listing order.
func Export(w io.Writer, fsys vfs.FS) error {
	writer := cpio.NewWriter(w)

	for path, item := range fsys.All() {
		if err := writeItem(writer, path, item); err != nil {
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

func writeItem(writer *cpio.Writer, path string, item vfs.Item) error {
	switch it := item.(type) {
	case *vfs.Folder:
		header := &cpio.Header{
			Name:  path,
			Mode:  cpio.TypeDir | cpio.ModePerm,
			Links: numLinks,
		}

		if err := writer.WriteHeader(header); err != nil {
			return fmt.Errorf("write header for %s: %w", path, err)
		}
	case *vfs.File:
		content := it.Content()

		header := &cpio.Header{
			Name: path,
			Mode: cpio.TypeReg | cpio.ModePerm,
			Size: int64(len(content)),
		}

		if err := writer.WriteHeader(header); err != nil {
			return fmt.Errorf("write header for %s: %w", path, err)
		}

		if _, err := writer.Write([]byte(content)); err != nil {
			return fmt.Errorf("write content for %s: %w", path, err)
		}
	}

	return nil
}

// Import rebuilds a snapshot from a CPIO archive produced by [Export].
// Parent folders are created as needed, so archives with missing
// directory entries import fine. Entries other than directories and
// regular files are skipped.
func Import(r io.Reader) (vfs.FS, error) {
	fsys := vfs.New()
	reader := cpio.NewReader(r)

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return fsys, nil
		}

		if err != nil {
			return vfs.FS{}, fmt.Errorf("read archive: %w", err)
		}

		switch {
		case header.Mode.IsDir():
			fsys, err = mkdirAll(fsys, header.Name)
		case header.Mode.IsRegular():
			var content []byte

			content, err = io.ReadAll(reader)
			if err != nil {
				return vfs.FS{}, fmt.Errorf("read content for %s: %w", header.Name, err)
			}

			fsys, err = createFileAll(fsys, header.Name, string(content))
		default:
			continue
		}

		if err != nil {
			return vfs.FS{}, fmt.Errorf("import %s: %w", header.Name, err)
		}
	}
}

// mkdirAll creates the folder at path along with any missing parents.
// Existing folders are left alone.
func mkdirAll(fsys vfs.FS, path string) (vfs.FS, error) {
	segments := vfs.SplitPath(path)

	for idx := range segments {
		partial := vfs.JoinPath(segments[:idx+1])

		if fsys.Exists(partial) {
			continue
		}

		next, err := fsys.CreateFolder(partial, nil)
		if err != nil {
			return vfs.FS{}, err
		}

		fsys = next
	}

	return fsys, nil
}

func createFileAll(fsys vfs.FS, path, content string) (vfs.FS, error) {
	segments := vfs.SplitPath(path)
	if len(segments) > 1 {
		next, err := mkdirAll(fsys, vfs.JoinPath(segments[:len(segments)-1]))
		if err != nil {
			return vfs.FS{}, err
		}

		fsys = next
	}

	return fsys.CreateOrUpdateFile(path, content, nil)
}
