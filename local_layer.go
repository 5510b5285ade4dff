// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package xmsg

import (
	"context"

	"github.com/luxfi/geth/common"
)

var _ Deliverer = (*LocalLayer)(nil)

// LocalLayer is an in-process Deliverer that calls a Handler as [Address].
// It stands in for the messaging layer in tests and the CLI.
type LocalLayer struct {
	Address common.Address
	Handler Handler
}

func (l *LocalLayer) Deliver(ctx context.Context, originSender common.Address, payload []byte) (*MessageReceived, error) {
	return l.Handler.HandleIncoming(ctx, l.Address, originSender, payload)
}
