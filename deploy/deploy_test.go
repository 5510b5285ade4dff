// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package deploy

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/luxfi/xmsg"
	"github.com/luxfi/xmsg/backend"
	"github.com/luxfi/xmsg/payload"
)

var (
	deployer     = common.HexToAddress("0x8db97C7cEcE249c2b98bDC0226Cc4C2A57BF52FC")
	layer        = common.HexToAddress("0x4f3b05a601B7103CF8Fc0aBB56d042e04f222ceE")
	originSender = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

func TestAddresses(t *testing.T) {
	params := Params{Deployer: deployer, Nonce: 7, CrossChainLayer: layer}

	storeAddress, proxyAddress, err := params.Addresses()
	require.NoError(t, err)
	require.Equal(t, common.Address(crypto.CreateAddress(crypto.Address(deployer), 7)), storeAddress)
	require.Equal(t, common.Address(crypto.CreateAddress(crypto.Address(deployer), 8)), proxyAddress)
	require.NotEqual(t, storeAddress, proxyAddress)

	_, _, err = Params{Nonce: 7}.Addresses()
	require.ErrorIs(t, err, xmsg.ErrConstructionInvalid)

	_, _, err = Params{Deployer: deployer, Nonce: ^uint64(0)}.Addresses()
	require.ErrorIs(t, err, xmsg.ErrConstructionInvalid)
}

func TestDeployBindsStoreAndProxy(t *testing.T) {
	params := Params{Deployer: deployer, Nonce: 0, CrossChainLayer: layer}
	sys, err := Deploy(params, backend.NewMemoryBackend(), zap.NewNop(), nil)
	require.NoError(t, err)

	storeAddress, proxyAddress, err := params.Addresses()
	require.NoError(t, err)
	require.Equal(t, storeAddress, sys.Store.Address())
	require.Equal(t, proxyAddress, sys.Store.Relay())
	require.Equal(t, proxyAddress, sys.Proxy.Address())
	require.Equal(t, layer, sys.Proxy.Trust().TrustedRelayer)
	require.Equal(t, storeAddress, sys.Proxy.Trust().TargetStore)
	require.Equal(t, storeAddress, sys.StoreContract.Address())
	require.Equal(t, proxyAddress, sys.ProxyContract.Address())
	require.Equal(t, layer, sys.Layer.Address)
}

func TestDeployInvalid(t *testing.T) {
	_, err := Deploy(Params{Deployer: deployer}, backend.NewMemoryBackend(), zap.NewNop(), nil)
	require.ErrorIs(t, err, xmsg.ErrConstructionInvalid)

	_, err = Deploy(Params{CrossChainLayer: layer}, backend.NewMemoryBackend(), zap.NewNop(), nil)
	require.ErrorIs(t, err, xmsg.ErrConstructionInvalid)

	_, err = Deploy(Params{Deployer: deployer, CrossChainLayer: layer}, nil, zap.NewNop(), nil)
	require.ErrorIs(t, err, xmsg.ErrConstructionInvalid)
}

func TestDeployRelayEndToEnd(t *testing.T) {
	registry := prometheus.NewRegistry()
	path := filepath.Join(t.TempDir(), "state", "record")
	b, err := backend.NewFileBackend(path)
	require.NoError(t, err)

	params := Params{Deployer: deployer, Nonce: 3, CrossChainLayer: layer}
	sys, err := Deploy(params, b, zap.NewNop(), registry)
	require.NoError(t, err)

	msg, err := payload.NewTextMessage("Hello from TAC")
	require.NoError(t, err)
	ev, err := sys.Layer.Deliver(context.Background(), originSender, msg.Bytes())
	require.NoError(t, err)
	require.Equal(t, originSender, ev.Sender)
	require.Equal(t, uint64(1), ev.Sequence)
	require.Equal(t, 1.0, counterValue(t, registry, "forwarded_message_count"))

	// A second deployment over the same state resumes the record.
	b, err = backend.NewFileBackend(path)
	require.NoError(t, err)
	sys, err = Deploy(params, b, zap.NewNop(), prometheus.NewRegistry())
	require.NoError(t, err)

	text, sender := sys.Store.GetMessage()
	require.Equal(t, "Hello from TAC", text)
	require.Equal(t, originSender, sender)
	require.Equal(t, uint64(1), sys.Store.Sequence())
}

func counterValue(t *testing.T, g prometheus.Gatherer, name string) float64 {
	t.Helper()
	families, err := g.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		var total float64
		for _, m := range family.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestRedeployWithDifferentBindingFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record")
	params := Params{Deployer: deployer, Nonce: 0, CrossChainLayer: layer}

	open := func(p Params) (*System, error) {
		b, err := backend.NewFileBackend(path)
		require.NoError(t, err)
		return Deploy(p, b, zap.NewNop(), nil)
	}

	sys, err := open(params)
	require.NoError(t, err)
	msg, err := payload.NewTextMessage("legit")
	require.NoError(t, err)
	_, err = sys.Layer.Deliver(context.Background(), originSender, msg.Bytes())
	require.NoError(t, err)

	otherLayer := params
	otherLayer.CrossChainLayer = common.HexToAddress("0x00000000000000000000000000000000000000ee")
	otherDeployer := params
	otherDeployer.Deployer = common.HexToAddress("0x00000000000000000000000000000000000000dd")
	otherNonce := params
	otherNonce.Nonce = 1

	for _, p := range []Params{otherLayer, otherDeployer, otherNonce} {
		_, err := open(p)
		require.ErrorIs(t, err, xmsg.ErrConstructionInvalid)
	}

	// The original binding still opens and the record is untouched.
	sys, err = open(params)
	require.NoError(t, err)
	text, sender := sys.Store.GetMessage()
	require.Equal(t, "legit", text)
	require.Equal(t, originSender, sender)
	require.Equal(t, layer, sys.Proxy.Trust().TrustedRelayer)
}
