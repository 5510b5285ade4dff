// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package proxy bridges calls from a trusted cross-chain messaging layer into
// a message store, preserving the remote sender as the recorded sender.
package proxy

import (
	"context"
	"fmt"

	"github.com/luxfi/geth/common"
	"go.uber.org/zap"

	"github.com/luxfi/xmsg"
	"github.com/luxfi/xmsg/payload"
)

var _ xmsg.Handler = (*RelayProxy)(nil)

// TrustConfig is fixed at construction
type TrustConfig struct {
	// TrustedRelayer is the messaging layer allowed to call HandleIncoming
	TrustedRelayer common.Address
	// TargetStore is the store messages are forwarded to
	TargetStore common.Address
}

// RelayProxy accepts deliveries from exactly one messaging layer and forwards
// them to its target store as SetMessageFor calls made from its own address.
type RelayProxy struct {
	address common.Address
	trust   TrustConfig
	target  xmsg.Forwarder
	logger  *zap.Logger
	metrics *Metrics
}

// New creates a proxy at [address] trusting [trustedRelayer] and forwarding
// to [target]. The target store must bind [address] as its relay.
func New(
	address common.Address,
	trustedRelayer common.Address,
	target xmsg.Forwarder,
	logger *zap.Logger,
	metrics *Metrics,
) (*RelayProxy, error) {
	if address == (common.Address{}) {
		return nil, fmt.Errorf("%w: zero proxy address", xmsg.ErrConstructionInvalid)
	}
	if trustedRelayer == (common.Address{}) {
		return nil, fmt.Errorf("%w: zero trusted relayer", xmsg.ErrConstructionInvalid)
	}
	if target == nil || target.Address() == (common.Address{}) {
		return nil, fmt.Errorf("%w: zero target store", xmsg.ErrConstructionInvalid)
	}

	trust := TrustConfig{
		TrustedRelayer: trustedRelayer,
		TargetStore:    target.Address(),
	}
	logger = logger.With(zap.Stringer("proxy", address))
	logger.Info(
		"Created relay proxy",
		zap.Stringer("trustedRelayer", trust.TrustedRelayer),
		zap.Stringer("targetStore", trust.TargetStore),
	)
	return &RelayProxy{
		address: address,
		trust:   trust,
		target:  target,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Address returns the proxy's own address
func (p *RelayProxy) Address() common.Address {
	return p.address
}

// Trust returns the immutable trust configuration
func (p *RelayProxy) Trust() TrustConfig {
	return p.trust
}

// HandleIncoming authenticates [caller], decodes [data] and records its text
// in the target store on behalf of [originSender]. [caller] is only used for
// authorization and [originSender] only for attribution.
//
// A failed forward is returned as is; redelivery is up to the messaging layer.
func (p *RelayProxy) HandleIncoming(
	ctx context.Context,
	caller common.Address,
	originSender common.Address,
	data []byte,
) (*xmsg.MessageReceived, error) {
	if xmsg.Authorize(p.trust.TrustedRelayer, caller) != xmsg.Authorized {
		p.reject(reasonUntrustedCaller)
		p.logger.Warn(
			"Rejected delivery from untrusted caller",
			zap.Stringer("caller", caller),
			zap.Stringer("originSender", originSender),
		)
		return nil, fmt.Errorf("%w: %s", xmsg.ErrUntrustedCaller, caller)
	}

	msg, err := payload.ParseTextMessage(data)
	if err != nil {
		p.reject(reasonMalformedPayload)
		p.logger.Warn(
			"Rejected malformed payload",
			zap.Stringer("originSender", originSender),
			zap.Int("payloadLength", len(data)),
			zap.Error(err),
		)
		return nil, err
	}

	ev, err := p.target.SetMessageFor(ctx, p.address, originSender, msg.Message)
	if err != nil {
		p.reject(reasonForwardFailed)
		p.logger.Error(
			"Failed to forward message",
			zap.Stringer("originSender", originSender),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to forward to %s: %w", p.trust.TargetStore, err)
	}

	if p.metrics != nil {
		p.metrics.forwardedMessageCount.Inc()
	}
	p.logger.Info(
		"Forwarded message",
		zap.Stringer("eventID", ev.ID()),
		zap.Stringer("originSender", originSender),
		zap.Uint64("sequence", ev.Sequence),
	)
	return ev, nil
}

func (p *RelayProxy) reject(reason string) {
	if p.metrics == nil {
		return
	}
	p.metrics.rejectedMessageCount.WithLabelValues(reason).Inc()
}
