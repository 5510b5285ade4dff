// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"sort"

	"github.com/luxfi/geth/common"
)

const (
	TACMainnet = "tac-mainnet"
	TACTestnet = "tac-testnet"
)

// Network describes a chain the store and proxy are deployed to
type Network struct {
	Name    string
	ChainID uint64
	RPCURL  string
	// CrossChainLayer is the messaging layer the proxy trusts by default
	CrossChainLayer common.Address
}

var networks = map[string]Network{
	TACMainnet: {
		Name:            TACMainnet,
		ChainID:         239,
		RPCURL:          "https://rpc.tac.build",
		CrossChainLayer: common.HexToAddress("0x9fee01e948353E0897968A3ea955815aaA49f58d"),
	},
	TACTestnet: {
		Name:            TACTestnet,
		ChainID:         2391,
		RPCURL:          "https://spb.rpc.tac.build",
		CrossChainLayer: common.HexToAddress("0x4f3b05a601B7103CF8Fc0aBB56d042e04f222ceE"),
	},
}

// LookupNetwork returns the preset named [name]
func LookupNetwork(name string) (Network, bool) {
	n, ok := networks[name]
	return n, ok
}

// Networks returns every preset ordered by name
func Networks() []Network {
	out := make([]Network, 0, len(networks))
	for _, n := range networks {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
