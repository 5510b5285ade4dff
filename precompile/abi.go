// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"fmt"
	"strings"

	"github.com/luxfi/geth/accounts/abi"
)

// StoreABI is the ABI of the message store contract
const StoreABI = `[
	{
		"inputs": [{"internalType": "string", "name": "message", "type": "string"}],
		"name": "setMessage",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "address", "name": "onBehalfOf", "type": "address"},
			{"internalType": "string", "name": "message", "type": "string"}
		],
		"name": "setMessageFor",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "getMessage",
		"outputs": [
			{"internalType": "string", "name": "message", "type": "string"},
			{"internalType": "address", "name": "sender", "type": "address"}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "lastMessage",
		"outputs": [{"internalType": "string", "name": "", "type": "string"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "lastSender",
		"outputs": [{"internalType": "address", "name": "", "type": "address"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "sequence",
		"outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	}
]`

// ProxyABI is the ABI of the relay proxy contract
const ProxyABI = `[
	{
		"inputs": [
			{"internalType": "address", "name": "originSender", "type": "address"},
			{"internalType": "bytes", "name": "payload", "type": "bytes"}
		],
		"name": "handleIncoming",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

var (
	storeABI = mustParseABI(StoreABI)
	proxyABI = mustParseABI(ProxyABI)
)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("invalid ABI: %v", err))
	}
	return parsed
}
