// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"context"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/luxfi/xmsg"
)

var _ Contract = (*StoreContract)(nil)

var storeGas = map[string]uint64{
	"setMessage":    SetMessageGas,
	"setMessageFor": SetMessageForGas,
}

// MessageStore is the store behaviour the contract exposes
type MessageStore interface {
	xmsg.Forwarder
	SetMessage(ctx context.Context, caller common.Address, text string) (*xmsg.MessageReceived, error)
	GetMessage() (string, common.Address)
	Sequence() uint64
}

// StoreContract dispatches StoreABI calls to a MessageStore
type StoreContract struct {
	store MessageStore
}

// NewStoreContract creates a new store contract
func NewStoreContract(store MessageStore) *StoreContract {
	return &StoreContract{store: store}
}

// Address returns the store address
func (c *StoreContract) Address() common.Address {
	return c.store.Address()
}

// RequiredGas returns the gas required to execute [input]
func (c *StoreContract) RequiredGas(input []byte) uint64 {
	return gasFor(&storeABI, input, storeGas)
}

// Run executes [input] as [caller]
func (c *StoreContract) Run(
	ctx context.Context,
	caller common.Address,
	input []byte,
	value *uint256.Int,
	readOnly bool,
) ([]byte, error) {
	method, args, err := decodeCall(&storeABI, input, value, readOnly)
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case "setMessage":
		text, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: message is %T", ErrInvalidInput, args[0])
		}
		if _, err := c.store.SetMessage(ctx, caller, text); err != nil {
			return nil, err
		}
		return method.Outputs.Pack()
	case "setMessageFor":
		onBehalfOf, ok := args[0].(common.Address)
		if !ok {
			return nil, fmt.Errorf("%w: onBehalfOf is %T", ErrInvalidInput, args[0])
		}
		text, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("%w: message is %T", ErrInvalidInput, args[1])
		}
		if _, err := c.store.SetMessageFor(ctx, caller, onBehalfOf, text); err != nil {
			return nil, err
		}
		return method.Outputs.Pack()
	case "getMessage":
		text, sender := c.store.GetMessage()
		return method.Outputs.Pack(text, sender)
	case "lastMessage":
		text, _ := c.store.GetMessage()
		return method.Outputs.Pack(text)
	case "lastSender":
		_, sender := c.store.GetMessage()
		return method.Outputs.Pack(sender)
	case "sequence":
		return method.Outputs.Pack(new(big.Int).SetUint64(c.store.Sequence()))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSelector, method.Name)
	}
}
