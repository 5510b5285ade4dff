// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

// Package precompile exposes the message store and relay proxy as
// ABI-encoded contracts, dispatching on the 4-byte method selector.
package precompile

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common"
)

// Gas costs for message operations
const (
	SetMessageGas     = 50_000
	SetMessageForGas  = 55_000
	HandleIncomingGas = 80_000
	ReadGas           = 5_000

	selectorLen = 4
)

var (
	ErrInputTooShort   = errors.New("input too short")
	ErrUnknownSelector = errors.New("unknown function selector")
	ErrInvalidInput    = errors.New("invalid input")
	ErrReadOnly        = errors.New("cannot modify state in read-only mode")
	ErrNonPayable      = errors.New("function is not payable")
)

// Contract is an ABI-dispatched entry point
type Contract interface {
	Address() common.Address
	RequiredGas(input []byte) uint64
	Run(ctx context.Context, caller common.Address, input []byte, value *uint256.Int, readOnly bool) ([]byte, error)
}

// decodeCall resolves the method for [input], enforces the call-level rules
// and unpacks the arguments.
func decodeCall(
	contractABI *abi.ABI,
	input []byte,
	value *uint256.Int,
	readOnly bool,
) (*abi.Method, []interface{}, error) {
	if len(input) < selectorLen {
		return nil, nil, ErrInputTooShort
	}
	method, err := contractABI.MethodById(input[:selectorLen])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %x", ErrUnknownSelector, input[:selectorLen])
	}
	if value != nil && !value.IsZero() {
		return nil, nil, fmt.Errorf("%w: %s", ErrNonPayable, method.Name)
	}
	if readOnly && !method.IsConstant() {
		return nil, nil, fmt.Errorf("%w: %s", ErrReadOnly, method.Name)
	}
	args, err := method.Inputs.Unpack(input[selectorLen:])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, method.Name, err)
	}
	return method, args, nil
}

func gasFor(contractABI *abi.ABI, input []byte, costs map[string]uint64) uint64 {
	if len(input) < selectorLen {
		return 0
	}
	method, err := contractABI.MethodById(input[:selectorLen])
	if err != nil {
		return 0
	}
	if cost, ok := costs[method.Name]; ok {
		return cost
	}
	return ReadGas
}
