// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"iter"
)

// Operation names used in [PathError]s.
const (
	opCreateFile   = "createfile"
	opCreateFolder = "createfolder"
	opUpdateFile   = "updatefile"
	opDelete       = "delete"
	opReadFile     = "readfile"
	opListItems    = "listitems"
	opGetItem      = "getitem"
)

// FS is one immutable snapshot of the virtual filesystem. The zero value
// is an empty tree. Every operation either returns its result or fails
// with a [PathError] wrapping one of the sentinel errors of this package;
// a failed operation never affects the receiver.
type FS struct {
	root *Folder
}

// New returns an empty snapshot holding only the root folder.
func New() FS {
	return FS{}
}

// Root returns the snapshot's root folder. Its name is always empty.
func (f FS) Root() *Folder {
	if f.root == nil {
		return NewFolder("", nil)
	}

	return f.root
}

// CreateFile inserts a new file. It fails with [ErrExists] if the name is
// already taken, by a file or a folder.
func (f FS) CreateFile(path, content string, meta Meta) (FS, error) {
	return f.insert(opCreateFile, path, func(name string) Item {
		return NewFile(name, content, meta)
	})
}

// CreateFolder inserts a new empty folder. It fails with [ErrExists] if
// the name is already taken, by a file or a folder.
func (f FS) CreateFolder(path string, meta Meta) (FS, error) {
	return f.insert(opCreateFolder, path, func(name string) Item {
		return NewFolder(name, meta)
	})
}

// UpdateFile replaces the content of an existing file, keeping its
// metadata. It fails with [ErrNotFound] if the path is absent or names a
// folder.
func (f FS) UpdateFile(path, content string) (FS, error) {
	return f.update(path, func(file *File) *File {
		return file.withContent(content)
	})
}

// UpdateFileMeta replaces both content and metadata of an existing file.
func (f FS) UpdateFileMeta(path, content string, meta Meta) (FS, error) {
	return f.update(path, func(file *File) *File {
		return NewFile(file.Name(), content, meta)
	})
}

// CreateOrUpdateFile updates the file at path, or creates it if the update
// fails. Any update failure falls through to the create, so a path
// occupied by a folder surfaces the create's [ErrExists] rather than the
// update's [ErrNotFound].
func (f FS) CreateOrUpdateFile(path, content string, meta Meta) (FS, error) {
	updated, err := f.UpdateFileMeta(path, content, meta)
	if err == nil {
		return updated, nil
	}

	return f.CreateFile(path, content, meta)
}

// Delete removes the item at path, including any subtree below it. It
// fails with [ErrNotFound] if the item is absent and with
// [ErrSystemProtected] if the item is flagged as system owned.
func (f FS) Delete(path string) (FS, error) {
	chain, segments, err := f.resolveParent(opDelete, path)
	if err != nil {
		return FS{}, err
	}

	parent := chain[len(chain)-1]
	name := segments[len(segments)-1]

	item, ok := parent.Item(name)
	if !ok {
		return FS{}, &PathError{
			Op:   opDelete,
			Path: JoinPath(segments),
			Err:  ErrNotFound,
		}
	}

	if item.Meta().IsSystem() {
		return FS{}, &PathError{
			Op:   opDelete,
			Path: JoinPath(segments),
			Err:  ErrSystemProtected,
		}
	}

	return FS{root: rebuild(chain, parent.withoutItem(name))}, nil
}

// ReadFile returns the content of the file at path. It fails with
// [ErrNotFound] if the path is absent or names a folder.
func (f FS) ReadFile(path string) (string, error) {
	chain, segments, err := f.resolveParent(opReadFile, path)
	if err != nil {
		return "", err
	}

	item, _ := chain[len(chain)-1].Item(segments[len(segments)-1])

	file, ok := item.(*File)
	if !ok {
		return "", &PathError{
			Op:   opReadFile,
			Path: JoinPath(segments),
			Err:  ErrNotFound,
		}
	}

	return file.Content(), nil
}

// ListItems returns the children of the folder at path in insertion
// order. The empty path lists the root folder.
func (f FS) ListItems(path string) ([]Item, error) {
	folder, err := resolveFolder(opListItems, f.Root(), path)
	if err != nil {
		return nil, err
	}

	return folder.Items(), nil
}

// GetItem returns the item at path, or nil without error if only the
// final segment is missing. Missing intermediate folders still fail with
// [ErrFolderNotFound].
func (f FS) GetItem(path string) (Item, error) {
	chain, segments, err := f.resolveParent(opGetItem, path)
	if err != nil {
		return nil, err
	}

	item, ok := chain[len(chain)-1].Item(segments[len(segments)-1])
	if !ok {
		return nil, nil
	}

	return item, nil
}

// Exists returns true if an item is present at path. All resolution
// errors are reported as false.
func (f FS) Exists(path string) bool {
	item, err := f.GetItem(path)
	return err == nil && item != nil
}

// All returns an iterator over all items of the snapshot in depth-first
// insertion order, keyed by their normalized path.
func (f FS) All() iter.Seq2[string, Item] {
	return func(yield func(string, Item) bool) {
		f.Root().all("", yield)
	}
}

func (d *Folder) all(base string, yield func(string, Item) bool) bool {
	for _, name := range d.names {
		path := name
		if base != "" {
			path = base + Separator + name
		}

		item := d.items[name]
		if !yield(path, item) {
			return false
		}

		if sub, ok := item.(*Folder); ok {
			if !sub.all(path, yield) {
				return false
			}
		}
	}

	return true
}

// resolveParent splits path into parent folder chain and segments. It
// fails with [ErrInvalidPath] if the path has no segments, since the root
// has no parent.
func (f FS) resolveParent(op, path string) ([]*Folder, []string, error) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return nil, nil, &PathError{
			Op:   op,
			Path: path,
			Err:  ErrInvalidPath,
		}
	}

	chain, err := resolveChain(op, f.Root(), segments[:len(segments)-1])
	if err != nil {
		return nil, nil, err
	}

	return chain, segments, nil
}

func (f FS) insert(op, path string, newItem func(name string) Item) (FS, error) {
	chain, segments, err := f.resolveParent(op, path)
	if err != nil {
		return FS{}, err
	}

	parent := chain[len(chain)-1]
	name := segments[len(segments)-1]

	if _, ok := parent.Item(name); ok {
		return FS{}, &PathError{
			Op:   op,
			Path: JoinPath(segments),
			Err:  ErrExists,
		}
	}

	return FS{root: rebuild(chain, parent.withItem(newItem(name)))}, nil
}

func (f FS) update(path string, updateFile func(*File) *File) (FS, error) {
	chain, segments, err := f.resolveParent(opUpdateFile, path)
	if err != nil {
		return FS{}, err
	}

	parent := chain[len(chain)-1]
	name := segments[len(segments)-1]

	item, _ := parent.Item(name)

	file, ok := item.(*File)
	if !ok {
		return FS{}, &PathError{
			Op:   opUpdateFile,
			Path: JoinPath(segments),
			Err:  ErrNotFound,
		}
	}

	return FS{root: rebuild(chain, parent.withReplaced(updateFile(file)))}, nil
}
