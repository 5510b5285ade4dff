// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	// Command line option keys
	ConfigFileKey = "config-file"

	// Environment variables are the upper-cased keys with this prefix
	EnvPrefix = "XMSG"

	// Top-level configuration keys
	LogLevelKey               = "log-level"
	NetworkKey                = "network"
	CrossChainLayerAddressKey = "cross-chain-layer-address"
	StatePathKey              = "state-path"
	DeployerKey               = "deployer"
	NonceKey                  = "nonce"
)
