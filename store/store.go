// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package store implements the durable last-message store.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/event"
	"go.uber.org/zap"

	"github.com/luxfi/xmsg"
	"github.com/luxfi/xmsg/backend"
)

var _ xmsg.Forwarder = (*MessageStore)(nil)

// MessageStore holds the latest message and the account that set it.
//
// SetMessage records its caller. SetMessageFor records the account it is
// given, and only accepts calls from the relay bound at construction.
// Mutations are serialized; each one is persisted before it becomes visible
// and is announced with exactly one MessageReceived event.
type MessageStore struct {
	address common.Address
	relay   common.Address
	backend backend.Backend
	logger  *zap.Logger

	lock   sync.RWMutex
	record xmsg.MessageRecord
	feed   event.Feed
}

// New opens a store at [address] whose privileged entry point only accepts
// [relay]. The current record is loaded from [b]. If [b] carries a binding,
// [address] and [relay] must match it.
func New(
	address common.Address,
	relay common.Address,
	b backend.Backend,
	logger *zap.Logger,
) (*MessageStore, error) {
	if address == (common.Address{}) {
		return nil, fmt.Errorf("%w: zero store address", xmsg.ErrConstructionInvalid)
	}
	if relay == (common.Address{}) {
		return nil, fmt.Errorf("%w: zero relay address", xmsg.ErrConstructionInvalid)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: nil backend", xmsg.ErrConstructionInvalid)
	}

	binding, err := b.Binding()
	if err != nil {
		return nil, fmt.Errorf("failed to load binding: %w", err)
	}
	if !binding.IsZero() && (binding.Store != address || binding.Relay != relay) {
		return nil, fmt.Errorf(
			"%w: state is bound to store %s with relay %s",
			xmsg.ErrConstructionInvalid, binding.Store, binding.Relay,
		)
	}

	record, err := b.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	if err := record.Verify(); err != nil {
		return nil, err
	}

	logger = logger.With(zap.Stringer("store", address))
	logger.Info(
		"Opened message store",
		zap.Stringer("relay", relay),
		zap.Uint64("sequence", record.Sequence),
	)
	return &MessageStore{
		address: address,
		relay:   relay,
		backend: b,
		logger:  logger,
		record:  record,
	}, nil
}

// Address returns the store's own address
func (s *MessageStore) Address() common.Address {
	return s.address
}

// Relay returns the only address allowed to call SetMessageFor
func (s *MessageStore) Relay() common.Address {
	return s.relay
}

// SetMessage stores [text] with [caller] as its sender. The text is not
// validated and any caller is accepted, with one deliberate exception: the
// zero address fails with ErrInvalidSender, since recording it would leave a
// mutated record that looks unset.
func (s *MessageStore) SetMessage(ctx context.Context, caller common.Address, text string) (*xmsg.MessageReceived, error) {
	return s.apply(ctx, caller, text)
}

// SetMessageFor stores [text] with [onBehalfOf] as its sender. It fails with
// ErrUnauthorized unless [caller] is the bound relay.
func (s *MessageStore) SetMessageFor(
	ctx context.Context,
	caller common.Address,
	onBehalfOf common.Address,
	text string,
) (*xmsg.MessageReceived, error) {
	if xmsg.Authorize(s.relay, caller) != xmsg.Authorized {
		s.logger.Warn(
			"Rejected setMessageFor from unauthorized caller",
			zap.Stringer("caller", caller),
			zap.Stringer("onBehalfOf", onBehalfOf),
		)
		return nil, fmt.Errorf("%w: caller %s is not the relay", xmsg.ErrUnauthorized, caller)
	}
	return s.apply(ctx, onBehalfOf, text)
}

func (s *MessageStore) apply(ctx context.Context, sender common.Address, text string) (*xmsg.MessageReceived, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sender == (common.Address{}) {
		return nil, fmt.Errorf("%w: zero address cannot be recorded as sender", xmsg.ErrInvalidSender)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	sequence, err := xmsg.AddUint64(s.record.Sequence, 1)
	if err != nil {
		return nil, fmt.Errorf("sequence exhausted: %w", err)
	}
	next := xmsg.MessageRecord{
		Text:     text,
		Sender:   sender,
		Sequence: sequence,
	}
	if err := s.backend.Store(next); err != nil {
		s.logger.Error(
			"Failed to persist record",
			zap.Uint64("sequence", sequence),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to persist record: %w", err)
	}
	s.record = next

	ev := &xmsg.MessageReceived{
		Sender:   sender,
		Message:  text,
		Sequence: sequence,
	}
	s.logger.Debug(
		"Message received",
		zap.Stringer("eventID", ev.ID()),
		zap.Stringer("sender", sender),
		zap.Uint64("sequence", sequence),
		zap.Int("length", len(text)),
	)
	// Sent under the lock so subscribers observe events in sequence order.
	s.feed.Send(ev)
	return ev, nil
}

// GetMessage returns the current text and sender
func (s *MessageStore) GetMessage() (string, common.Address) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.record.Text, s.record.Sender
}

// LastMessage returns the current text
func (s *MessageStore) LastMessage() string {
	text, _ := s.GetMessage()
	return text
}

// LastSender returns the current sender, or the zero address if the store
// has never been written.
func (s *MessageStore) LastSender() common.Address {
	_, sender := s.GetMessage()
	return sender
}

// Sequence returns the number of mutations applied so far
func (s *MessageStore) Sequence() uint64 {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.record.Sequence
}

// Record returns a copy of the current record
func (s *MessageStore) Record() xmsg.MessageRecord {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.record
}

// SubscribeMessageReceived delivers every subsequent event to [ch]. Delivery
// blocks the mutating call until ch accepts it, so subscribers must keep
// draining and must not call the store's mutators from the receiving
// goroutine.
func (s *MessageStore) SubscribeMessageReceived(ch chan<- *xmsg.MessageReceived) event.Subscription {
	return s.feed.Subscribe(ch)
}
