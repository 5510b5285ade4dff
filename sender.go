// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package xmsg

import (
	"context"

	"github.com/luxfi/geth/common"
)

// Deliverer delivers payloads submitted on a remote chain to this chain.
// This is the role the cross-chain messaging layer plays; retry and
// redelivery are its concern.
type Deliverer interface {
	Deliver(ctx context.Context, originSender common.Address, payload []byte) (*MessageReceived, error)
}
