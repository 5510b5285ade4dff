// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proxy

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Failure reasons recorded on rejected_message_count
const (
	reasonUntrustedCaller  = "untrusted_caller"
	reasonMalformedPayload = "malformed_payload"
	reasonForwardFailed    = "forward_failed"
)

type Metrics struct {
	forwardedMessageCount prometheus.Counter
	rejectedMessageCount  *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := Metrics{
		forwardedMessageCount: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "forwarded_message_count",
				Help: "Number of cross-chain messages forwarded to the message store",
			},
		),
		rejectedMessageCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rejected_message_count",
				Help: "Number of cross-chain messages rejected by the relay proxy",
			},
			[]string{"failure_reason"},
		),
	}

	registerer.MustRegister(m.forwardedMessageCount)
	registerer.MustRegister(m.rejectedMessageCount)

	return &m
}
