// Copyright (C) 2025, Lux Industries, Inc.
// See the file LICENSE for licensing terms.

package backend

import "github.com/luxfi/xmsg"

// Backend persists the single record of a message store together with the
// binding it was deployed with.
// Implementations need not be safe for concurrent mutation; the store
// serializes calls.
type Backend interface {
	// Load returns the persisted record, or the pristine record if nothing
	// has been stored yet.
	Load() (xmsg.MessageRecord, error)

	// Store durably replaces the persisted record. If Store returns an error
	// the previously persisted record must still be the one Load returns.
	// The persisted binding is left as is.
	Store(record xmsg.MessageRecord) error

	// Binding returns the persisted binding, or the zero Binding if none has
	// been recorded.
	Binding() (xmsg.Binding, error)

	// Bind records [binding] on first use. It fails with
	// xmsg.ErrConstructionInvalid if a different binding is persisted, or if
	// the state is unbound but no longer pristine.
	Bind(binding xmsg.Binding) error
}
