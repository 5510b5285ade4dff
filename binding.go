// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package xmsg

import (
	"fmt"

	"github.com/luxfi/geth/common"
)

// Binding is the trust configuration a deployment is created with. It is
// persisted alongside the record and never changes afterwards.
type Binding struct {
	// Store is the message store's address
	Store common.Address
	// Relay is the only caller the store accepts on SetMessageFor
	Relay common.Address
	// TrustedRelayer is the only caller the relay accepts
	TrustedRelayer common.Address
}

// IsZero reports whether no binding has been recorded
func (b Binding) IsZero() bool {
	return b == Binding{}
}

// Verify checks that every address is set
func (b Binding) Verify() error {
	switch {
	case b.Store == (common.Address{}):
		return fmt.Errorf("%w: zero store address", ErrConstructionInvalid)
	case b.Relay == (common.Address{}):
		return fmt.Errorf("%w: zero relay address", ErrConstructionInvalid)
	case b.TrustedRelayer == (common.Address{}):
		return fmt.Errorf("%w: zero trusted relayer", ErrConstructionInvalid)
	}
	return nil
}

// CheckBind returns nil if [next] may be recorded over [persisted] for state
// holding [record]. A binding is written once: state that is already bound
// only accepts the identical binding, and unbound state only accepts one
// while it is still pristine.
func CheckBind(persisted Binding, next Binding, record MessageRecord) error {
	if err := next.Verify(); err != nil {
		return err
	}
	if persisted.IsZero() {
		if record.Sequence != 0 {
			return fmt.Errorf("%w: unbound state already holds sequence %d", ErrConstructionInvalid, record.Sequence)
		}
		return nil
	}
	if persisted != next {
		return fmt.Errorf(
			"%w: state is bound to store %s, relay %s, trusted relayer %s; got store %s, relay %s, trusted relayer %s",
			ErrConstructionInvalid,
			persisted.Store, persisted.Relay, persisted.TrustedRelayer,
			next.Store, next.Relay, next.TrustedRelayer,
		)
	}
	return nil
}
