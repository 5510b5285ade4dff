// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package backend

import (
	"sync"

	"github.com/luxfi/xmsg"
)

var _ Backend = (*MemoryBackend)(nil)

// MemoryBackend is an in-memory implementation of Backend
type MemoryBackend struct {
	mu      sync.RWMutex
	binding xmsg.Binding
	record  xmsg.MessageRecord
	writes  int
}

// NewMemoryBackend creates a new memory backend holding the pristine record
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Load returns the stored record
func (b *MemoryBackend) Load() (xmsg.MessageRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.record, nil
}

// Store replaces the stored record
func (b *MemoryBackend) Store(record xmsg.MessageRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.record = record
	b.writes++
	return nil
}

// Binding returns the stored binding
func (b *MemoryBackend) Binding() (xmsg.Binding, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.binding, nil
}

// Bind stores [binding] if it may be recorded
func (b *MemoryBackend) Bind(binding xmsg.Binding) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := xmsg.CheckBind(b.binding, binding, b.record); err != nil {
		return err
	}
	b.binding = binding
	return nil
}

// Writes returns the number of successful Store calls
func (b *MemoryBackend) Writes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.writes
}
