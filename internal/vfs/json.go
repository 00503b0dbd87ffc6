// SPDX-FileCopyrightText: 2025 The deskfs authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Serialized type tags.
const (
	typeFile   = "file"
	typeFolder = "folder"
)

// fileJSON mirrors the serialized shape of a file.
type fileJSON struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	MetaData Meta   `json:"metaData"`
}

// folderJSON mirrors the serialized shape of a folder, with the items
// object kept raw so decoding can preserve the document's key order.
type folderJSON struct {
	Type     string          `json:"type"`
	Name     string          `json:"name"`
	MetaData Meta            `json:"metaData"`
	Items    json.RawMessage `json:"items"`
}

// MarshalJSON serializes the snapshot as the nested root folder object.
func (f FS) MarshalJSON() ([]byte, error) {
	return f.Root().MarshalJSON()
}

// UnmarshalJSON replaces the snapshot with the given serialized tree. The
// input is trusted to be a tree produced by [FS.MarshalJSON]; no schema
// validation is done beyond the type tags.
func (f *FS) UnmarshalJSON(data []byte) error {
	item, err := decodeItem(data)
	if err != nil {
		return err
	}

	root, ok := item.(*Folder)
	if !ok {
		return fmt.Errorf("decode root: not a folder")
	}

	f.root = root

	return nil
}

// MarshalJSON serializes the file as a flat tagged object.
func (fl *File) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileJSON{
		Type:     typeFile,
		Name:     fl.name,
		Content:  fl.content,
		MetaData: fl.meta.clone(),
	})
}

// MarshalJSON serializes the folder with its items as a nested object
// whose keys appear in insertion order.
func (d *Folder) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"type":"folder","name":`)

	if err := encodeTo(&buf, d.name); err != nil {
		return nil, err
	}

	buf.WriteString(`,"metaData":`)

	if err := encodeTo(&buf, d.meta.clone()); err != nil {
		return nil, err
	}

	buf.WriteString(`,"items":{`)

	for idx, name := range d.names {
		if idx > 0 {
			buf.WriteByte(',')
		}

		if err := encodeTo(&buf, name); err != nil {
			return nil, err
		}

		buf.WriteByte(':')

		if err := encodeTo(&buf, d.items[name]); err != nil {
			return nil, err
		}
	}

	buf.WriteString("}}")

	return buf.Bytes(), nil
}

func encodeTo(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, _ = buf.Write(data)

	return nil
}

// decodeItem decodes a serialized item, dispatching on the type tag.
func decodeItem(data []byte) (Item, error) {
	var tag struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decode type tag: %w", err)
	}

	switch tag.Type {
	case typeFile:
		return decodeFile(data)
	case typeFolder:
		return decodeFolder(data)
	default:
		return nil, fmt.Errorf("decode item: unknown type %q", tag.Type)
	}
}

func decodeFile(data []byte) (*File, error) {
	var file fileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode file: %w", err)
	}

	return NewFile(file.Name, file.Content, file.MetaData), nil
}

func decodeFolder(data []byte) (*Folder, error) {
	var folder folderJSON
	if err := json.Unmarshal(data, &folder); err != nil {
		return nil, fmt.Errorf("decode folder: %w", err)
	}

	result := NewFolder(folder.Name, folder.MetaData)

	if len(folder.Items) == 0 {
		return result, nil
	}

	// Walk the items object token by token. encoding/json keeps object
	// keys in document order only at this level, and the listing order of
	// a folder must survive a round trip.
	dec := json.NewDecoder(bytes.NewReader(folder.Items))

	if _, err := dec.Token(); err != nil { // opening brace
		return nil, fmt.Errorf("decode items: %w", err)
	}

	for dec.More() {
		if _, err := dec.Token(); err != nil { // child name, repeated in the value
			return nil, fmt.Errorf("decode items: %w", err)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}

		child, err := decodeItem(raw)
		if err != nil {
			return nil, err
		}

		result = result.withItem(child)
	}

	return result, nil
}
