// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"fmt"
	"maps"
	"slices"
)

// MetaKeySystem marks an item as owned by the system bootstrap. Items
// carrying it cannot be deleted.
const MetaKeySystem = "isSystem"

// Meta holds open-ended item attributes. Keys and values must be
// JSON-compatible.
type Meta map[string]any

// IsSystem returns true if the item is protected from deletion.
func (m Meta) IsSystem() bool {
	v, ok := m[MetaKeySystem].(bool)
	return ok && v
}

// clone returns a private copy so shared snapshots never alias a caller's
// map. A nil receiver yields an empty, non-nil map.
func (m Meta) clone() Meta {
	if m == nil {
		return Meta{}
	}

	return maps.Clone(m)
}

// Item is a single entry in the virtual tree. The only implementations are
// [*File] and [*Folder].
type Item interface {
	// Name returns the item's name within its parent folder. Empty only
	// for the tree root.
	Name() string

	// Meta returns a copy of the item's attributes.
	Meta() Meta

	item()
}

var (
	_ Item = (*File)(nil)
	_ Item = (*Folder)(nil)
)

// File is a leaf item holding a text payload.
type File struct {
	name    string
	content string
	meta    Meta
}

// NewFile creates a file item. The meta map is copied.
func NewFile(name, content string, meta Meta) *File {
	return &File{
		name:    name,
		content: content,
		meta:    meta.clone(),
	}
}

func (f *File) Name() string { return f.name }

// Content returns the file's payload.
func (f *File) Content() string { return f.content }

func (f *File) Meta() Meta { return f.meta.clone() }

func (f *File) item() {}

// String returns a string representation of the File.
func (f *File) String() string {
	return fmt.Sprintf("file %q (%d bytes)", f.name, len(f.content))
}

// withContent returns a copy with new content, keeping the metadata.
func (f *File) withContent(content string) *File {
	return &File{
		name:    f.name,
		content: content,
		meta:    f.meta,
	}
}

// Folder is an internal node holding named children in insertion order.
type Folder struct {
	name  string
	meta  Meta
	names []string
	items map[string]Item
}

// NewFolder creates an empty folder item. The meta map is copied.
func NewFolder(name string, meta Meta) *Folder {
	return &Folder{
		name: name,
		meta: meta.clone(),
	}
}

func (d *Folder) Name() string { return d.name }

func (d *Folder) Meta() Meta { return d.meta.clone() }

func (d *Folder) item() {}

// String returns a string representation of the Folder.
func (d *Folder) String() string {
	return fmt.Sprintf("folder %q (% s)", d.name, d.names)
}

// Item returns the child with the given name.
func (d *Folder) Item(name string) (Item, bool) {
	item, ok := d.items[name]
	return item, ok
}

// Items returns the children in insertion order.
func (d *Folder) Items() []Item {
	items := make([]Item, len(d.names))
	for idx, name := range d.names {
		items[idx] = d.items[name]
	}

	return items
}

// Len returns the number of children.
func (d *Folder) Len() int { return len(d.names) }

// withItem returns a copy with the given item appended as a child. The
// caller must have checked that the name is free.
func (d *Folder) withItem(item Item) *Folder {
	items := maps.Clone(d.items)
	if items == nil {
		items = make(map[string]Item, 1)
	}

	items[item.Name()] = item

	return &Folder{
		name:  d.name,
		meta:  d.meta,
		names: append(slices.Clip(d.names), item.Name()),
		items: items,
	}
}

// withReplaced returns a copy with the named child replaced in place,
// keeping its position in the listing order.
func (d *Folder) withReplaced(item Item) *Folder {
	items := maps.Clone(d.items)
	items[item.Name()] = item

	return &Folder{
		name:  d.name,
		meta:  d.meta,
		names: d.names,
		items: items,
	}
}

// withoutItem returns a copy with the named child removed. The caller must
// have checked that the child exists.
func (d *Folder) withoutItem(name string) *Folder {
	items := maps.Clone(d.items)
	delete(items, name)

	names := make([]string, 0, len(d.names)-1)
	for _, n := range d.names {
		if n != name {
			names = append(names, n)
		}
	}

	return &Folder{
		name:  d.name,
		meta:  d.meta,
		names: names,
		items: items,
	}
}
