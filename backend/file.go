// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package backend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/luxfi/xmsg"
)

const fileMode = 0o600

var _ Backend = (*FileBackend)(nil)

// FileBackend keeps the binding and the record in a single file, replaced
// atomically on every write.
type FileBackend struct {
	path string
}

// fileState is the persisted layout: the binding written once at deployment
// followed by the current record.
type fileState struct {
	Binding xmsg.Binding
	Record  xmsg.MessageRecord
}

// NewFileBackend creates the parent directory of [path] if needed
func NewFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FileBackend{path: path}, nil
}

// Path returns the state file location
func (b *FileBackend) Path() string {
	return b.path
}

// Load reads the record. A missing file is the pristine record.
func (b *FileBackend) Load() (xmsg.MessageRecord, error) {
	state, err := b.read()
	return state.Record, err
}

// Store replaces the record, keeping the persisted binding.
func (b *FileBackend) Store(record xmsg.MessageRecord) error {
	state, err := b.read()
	if err != nil {
		return err
	}
	state.Record = record
	return b.write(state)
}

// Binding reads the binding. A missing file is unbound.
func (b *FileBackend) Binding() (xmsg.Binding, error) {
	state, err := b.read()
	return state.Binding, err
}

// Bind writes [binding] on first use and otherwise checks it against the
// persisted one.
func (b *FileBackend) Bind(binding xmsg.Binding) error {
	state, err := b.read()
	if err != nil {
		return err
	}
	if err := xmsg.CheckBind(state.Binding, binding, state.Record); err != nil {
		return fmt.Errorf("%s: %w", b.path, err)
	}
	if state.Binding == binding {
		return nil
	}
	state.Binding = binding
	return b.write(state)
}

func (b *FileBackend) read() (fileState, error) {
	var state fileState
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("failed to read %s: %w", b.path, err)
	}
	if _, err := xmsg.Codec.Unmarshal(data, &state); err != nil {
		return fileState{}, fmt.Errorf("%w: %s: %w", xmsg.ErrCorruptRecord, b.path, err)
	}
	return state, nil
}

// write writes [state] to a temporary file, syncs it and renames it over the
// state file.
func (b *FileBackend) write(state fileState) error {
	data, err := xmsg.Codec.Marshal(xmsg.CodecVersion, &state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmp := b.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fileMode)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	// Close before rename for Windows.
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, b.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	syncDir(b.path)
	return nil
}

func syncDir(path string) {
	dir, err := os.Open(filepath.Dir(path))
	if err != nil {
		return
	}
	defer dir.Close()
	_ = dir.Sync()
}
