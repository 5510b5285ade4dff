// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package xmsg

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/ids"
)

// MessageReceivedEvent is the event name in EventsABI
const MessageReceivedEvent = "MessageReceived"

// EventsABI describes the events emitted by a message store
const EventsABI = `[
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "internalType": "address", "name": "sender", "type": "address"},
			{"indexed": false, "internalType": "string", "name": "message", "type": "string"},
			{"indexed": false, "internalType": "uint256", "name": "sequence", "type": "uint256"}
		],
		"name": "MessageReceived",
		"type": "event"
	}
]`

var (
	ErrInvalidLog = errors.New("invalid MessageReceived log")

	eventsABI = mustParseABI(EventsABI)
)

// MessageRecord is the single slot held by a message store
type MessageRecord struct {
	Text     string
	Sender   common.Address
	Sequence uint64
}

// Verify checks that the sender is zero exactly when the record has never
// been mutated.
func (r *MessageRecord) Verify() error {
	if r.Sequence == 0 {
		if r.Sender != (common.Address{}) || r.Text != "" {
			return fmt.Errorf("%w: pristine record has content", ErrCorruptRecord)
		}
		return nil
	}
	if r.Sender == (common.Address{}) {
		return fmt.Errorf("%w: sequence %d has zero sender", ErrCorruptRecord, r.Sequence)
	}
	return nil
}

// MessageReceived is emitted once for every applied mutation
type MessageReceived struct {
	Sender   common.Address
	Message  string
	Sequence uint64
}

// Bytes returns the canonical byte representation of the event
func (e *MessageReceived) Bytes() []byte {
	b, _ := Codec.Marshal(CodecVersion, e)
	return b
}

// ID returns the hash of the event
func (e *MessageReceived) ID() ids.ID {
	return ids.ID(ComputeHash256Array(e.Bytes()))
}

// Log renders the event as an EVM log emitted by [emitter]
func (e *MessageReceived) Log(emitter common.Address) (*types.Log, error) {
	ev := eventsABI.Events[MessageReceivedEvent]
	data, err := ev.Inputs.NonIndexed().Pack(e.Message, new(big.Int).SetUint64(e.Sequence))
	if err != nil {
		return nil, fmt.Errorf("failed to pack event data: %w", err)
	}
	return &types.Log{
		Address: emitter,
		Topics:  []common.Hash{ev.ID, common.BytesToHash(e.Sender.Bytes())},
		Data:    data,
	}, nil
}

// ParseMessageReceived is the inverse of Log
func ParseMessageReceived(log *types.Log) (*MessageReceived, error) {
	ev := eventsABI.Events[MessageReceivedEvent]
	if len(log.Topics) != 2 || log.Topics[0] != ev.ID {
		return nil, fmt.Errorf("%w: unexpected topics", ErrInvalidLog)
	}
	values, err := ev.Inputs.NonIndexed().Unpack(log.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLog, err)
	}
	if len(values) != 2 {
		return nil, fmt.Errorf("%w: expected 2 values, got %d", ErrInvalidLog, len(values))
	}
	message, ok := values[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: message is %T", ErrInvalidLog, values[0])
	}
	sequence, ok := values[1].(*big.Int)
	if !ok || !sequence.IsUint64() {
		return nil, fmt.Errorf("%w: sequence out of range", ErrInvalidLog)
	}
	return &MessageReceived{
		Sender:   common.BytesToAddress(log.Topics[1].Bytes()),
		Message:  message,
		Sequence: sequence.Uint64(),
	}, nil
}

// MessageReceivedTopic returns topic0 of MessageReceived logs
func MessageReceivedTopic() common.Hash {
	return eventsABI.Events[MessageReceivedEvent].ID
}

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("invalid ABI: %v", err))
	}
	return parsed
}
