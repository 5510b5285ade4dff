// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package xmsg

import (
	"context"

	"github.com/luxfi/geth/common"
)

// Handler handles inbound cross-chain deliveries
type Handler interface {
	// HandleIncoming is invoked by [caller] with the payload a remote
	// [originSender] submitted. It returns the event emitted by the store.
	HandleIncoming(ctx context.Context, caller, originSender common.Address, payload []byte) (*MessageReceived, error)
}

// Forwarder accepts messages recorded on behalf of another account
type Forwarder interface {
	// Address is the address calls to the forwarder are made against
	Address() common.Address
	SetMessageFor(ctx context.Context, caller, onBehalfOf common.Address, text string) (*MessageReceived, error)
}
