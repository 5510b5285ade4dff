// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/luxfi/xmsg"
)

var _ Contract = (*ProxyContract)(nil)

var proxyGas = map[string]uint64{
	"handleIncoming": HandleIncomingGas,
}

// ProxyContract dispatches ProxyABI calls to a Handler
type ProxyContract struct {
	address common.Address
	handler xmsg.Handler
}

// NewProxyContract creates a new proxy contract at [address]
func NewProxyContract(address common.Address, handler xmsg.Handler) *ProxyContract {
	return &ProxyContract{
		address: address,
		handler: handler,
	}
}

// Address returns the proxy address
func (c *ProxyContract) Address() common.Address {
	return c.address
}

// RequiredGas returns the gas required to execute [input]
func (c *ProxyContract) RequiredGas(input []byte) uint64 {
	return gasFor(&proxyABI, input, proxyGas)
}

// Run executes [input] as [caller]
func (c *ProxyContract) Run(
	ctx context.Context,
	caller common.Address,
	input []byte,
	value *uint256.Int,
	readOnly bool,
) ([]byte, error) {
	method, args, err := decodeCall(&proxyABI, input, value, readOnly)
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case "handleIncoming":
		originSender, ok := args[0].(common.Address)
		if !ok {
			return nil, fmt.Errorf("%w: originSender is %T", ErrInvalidInput, args[0])
		}
		payload, ok := args[1].([]byte)
		if !ok {
			return nil, fmt.Errorf("%w: payload is %T", ErrInvalidInput, args[1])
		}
		if _, err := c.handler.HandleIncoming(ctx, caller, originSender, payload); err != nil {
			return nil, err
		}
		return method.Outputs.Pack()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSelector, method.Name)
	}
}
