// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package deploy wires a message store and its relay proxy together.
//
// The store needs the proxy address and the proxy needs the store, so both
// addresses are derived up front from the deployer and its next two nonces,
// the same way CREATE assigns them on an EVM chain.
package deploy

import (
	"fmt"

	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/luxfi/xmsg"
	"github.com/luxfi/xmsg/backend"
	"github.com/luxfi/xmsg/precompile"
	"github.com/luxfi/xmsg/proxy"
	"github.com/luxfi/xmsg/store"
)

// Params describe a deployment
type Params struct {
	// Deployer is the account creating both contracts
	Deployer common.Address
	// Nonce is the deployer nonce used for the store; the proxy uses Nonce+1
	Nonce uint64
	// CrossChainLayer is the only caller the proxy accepts
	CrossChainLayer common.Address
}

// Addresses returns the store and proxy addresses [p] deploys to
func (p Params) Addresses() (storeAddress common.Address, proxyAddress common.Address, err error) {
	if p.Deployer == (common.Address{}) {
		return common.Address{}, common.Address{}, fmt.Errorf("%w: zero deployer", xmsg.ErrConstructionInvalid)
	}
	proxyNonce, err := xmsg.AddUint64(p.Nonce, 1)
	if err != nil {
		return common.Address{}, common.Address{}, fmt.Errorf("%w: nonce %d: %w", xmsg.ErrConstructionInvalid, p.Nonce, err)
	}
	return createAddress(p.Deployer, p.Nonce), createAddress(p.Deployer, proxyNonce), nil
}

// System is a deployed store and proxy pair
type System struct {
	Store         *store.MessageStore
	Proxy         *proxy.RelayProxy
	StoreContract *precompile.StoreContract
	ProxyContract *precompile.ProxyContract
	// Layer delivers payloads to the proxy as the trusted messaging layer
	Layer *xmsg.LocalLayer
}

// Deploy opens the store on [b] and creates the proxy bound to it. The
// binding is recorded in [b] on first deployment; redeploying over the same
// state with a different deployer, nonce or layer fails with
// ErrConstructionInvalid. Proxy metrics are registered on [registerer] when
// it is non-nil.
func Deploy(
	params Params,
	b backend.Backend,
	logger *zap.Logger,
	registerer prometheus.Registerer,
) (*System, error) {
	if params.CrossChainLayer == (common.Address{}) {
		return nil, fmt.Errorf("%w: zero cross-chain layer", xmsg.ErrConstructionInvalid)
	}
	storeAddress, proxyAddress, err := params.Addresses()
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: nil backend", xmsg.ErrConstructionInvalid)
	}
	binding := xmsg.Binding{
		Store:          storeAddress,
		Relay:          proxyAddress,
		TrustedRelayer: params.CrossChainLayer,
	}
	if err := b.Bind(binding); err != nil {
		logger.Error(
			"Refusing to rebind persisted state",
			zap.Stringer("store", storeAddress),
			zap.Stringer("trustedRelayer", params.CrossChainLayer),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to bind state: %w", err)
	}

	s, err := store.New(storeAddress, proxyAddress, b, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	var metrics *proxy.Metrics
	if registerer != nil {
		metrics = proxy.NewMetrics(registerer)
	}
	p, err := proxy.New(proxyAddress, params.CrossChainLayer, s, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create proxy: %w", err)
	}

	logger.Info(
		"Deployed message system",
		zap.Stringer("deployer", params.Deployer),
		zap.Uint64("nonce", params.Nonce),
		zap.Stringer("store", storeAddress),
		zap.Stringer("proxy", proxyAddress),
	)
	return &System{
		Store:         s,
		Proxy:         p,
		StoreContract: precompile.NewStoreContract(s),
		ProxyContract: precompile.NewProxyContract(proxyAddress, p),
		Layer:         &xmsg.LocalLayer{Address: params.CrossChainLayer, Handler: p},
	}, nil
}

func createAddress(deployer common.Address, nonce uint64) common.Address {
	return common.Address(crypto.CreateAddress(crypto.Address(deployer), nonce))
}
