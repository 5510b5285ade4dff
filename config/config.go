// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package config resolves the network preset, state location and deployment
// parameters from flags, environment and an optional config file.
package config

import (
	"errors"
	"fmt"

	"github.com/luxfi/geth/common"
	"go.uber.org/zap/zapcore"

	"github.com/luxfi/xmsg/deploy"
)

const (
	defaultLogLevel  = "info"
	defaultNetwork   = TACTestnet
	defaultStatePath = "./xmsg-state/record"
	// Hardhat's default first account
	defaultDeployer = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

var (
	errUnknownNetwork = errors.New("unknown network")
	errInvalidAddress = errors.New("invalid address")
	errEmptyStatePath = errors.New("state path not set")
)

// Config is the resolved configuration
type Config struct {
	LogLevel               string `mapstructure:"log-level" json:"log-level"`
	Network                string `mapstructure:"network" json:"network"`
	CrossChainLayerAddress string `mapstructure:"cross-chain-layer-address" json:"cross-chain-layer-address"`
	StatePath              string `mapstructure:"state-path" json:"state-path"`
	Deployer               string `mapstructure:"deployer" json:"deployer"`
	Nonce                  uint64 `mapstructure:"nonce" json:"nonce"`

	// Fields derived in Validate
	network         Network
	crossChainLayer common.Address
	deployer        common.Address
	logLevel        zapcore.Level
}

// Validate checks the configuration and resolves the derived fields
func (c *Config) Validate() error {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", LogLevelKey, err)
	}
	c.logLevel = level

	network, ok := LookupNetwork(c.Network)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownNetwork, c.Network)
	}
	c.network = network

	c.crossChainLayer = network.CrossChainLayer
	if c.CrossChainLayerAddress != "" {
		layer, err := parseAddress(CrossChainLayerAddressKey, c.CrossChainLayerAddress)
		if err != nil {
			return err
		}
		c.crossChainLayer = layer
	}

	deployer, err := parseAddress(DeployerKey, c.Deployer)
	if err != nil {
		return err
	}
	c.deployer = deployer

	if c.StatePath == "" {
		return errEmptyStatePath
	}
	return nil
}

// NetworkPreset returns the selected network. Only valid after Validate.
func (c *Config) NetworkPreset() Network {
	return c.network
}

// CrossChainLayer returns the trusted layer: the override if set, otherwise
// the preset's. Only valid after Validate.
func (c *Config) CrossChainLayer() common.Address {
	return c.crossChainLayer
}

// Level returns the parsed log level. Only valid after Validate.
func (c *Config) Level() zapcore.Level {
	return c.logLevel
}

// DeployParams returns the deployment parameters. Only valid after Validate.
func (c *Config) DeployParams() deploy.Params {
	return deploy.Params{
		Deployer:        c.deployer,
		Nonce:           c.Nonce,
		CrossChainLayer: c.crossChainLayer,
	}
}

func parseAddress(key string, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %s=%q", errInvalidAddress, key, s)
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: %s is the zero address", errInvalidAddress, key)
	}
	return addr, nil
}
