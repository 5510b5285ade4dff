// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package xmsg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/crypto"
	"github.com/stretchr/testify/require"
)

var (
	testSender  = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	testEmitter = common.HexToAddress("0x1000000000000000000000000000000000000001")
)

func TestMessageRecordVerify(t *testing.T) {
	tests := []struct {
		name          string
		record        MessageRecord
		expectedError bool
	}{
		{name: "pristine", record: MessageRecord{}},
		{name: "mutated", record: MessageRecord{Text: "hi", Sender: testSender, Sequence: 1}},
		{name: "mutated with empty text", record: MessageRecord{Sender: testSender, Sequence: 9}},
		{name: "pristine with sender", record: MessageRecord{Sender: testSender}, expectedError: true},
		{name: "pristine with text", record: MessageRecord{Text: "hi"}, expectedError: true},
		{name: "mutated without sender", record: MessageRecord{Text: "hi", Sequence: 1}, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Verify()
			if tt.expectedError {
				require.ErrorIs(t, err, ErrCorruptRecord)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestMessageReceivedID(t *testing.T) {
	ev := &MessageReceived{Sender: testSender, Message: "hello", Sequence: 1}
	same := &MessageReceived{Sender: testSender, Message: "hello", Sequence: 1}
	next := &MessageReceived{Sender: testSender, Message: "hello", Sequence: 2}

	require.Equal(t, ev.ID(), same.ID())
	require.NotEqual(t, ev.ID(), next.ID())
	require.NotEmpty(t, ev.Bytes())

	var decoded MessageReceived
	version, err := Codec.Unmarshal(ev.Bytes(), &decoded)
	require.NoError(t, err)
	require.Equal(t, CodecVersion, version)
	require.Equal(t, *ev, decoded)
}

func TestMessageReceivedLog(t *testing.T) {
	for _, message := range []string{"", "Test event message", strings.Repeat("A", 1000)} {
		ev := &MessageReceived{Sender: testSender, Message: message, Sequence: 42}

		log, err := ev.Log(testEmitter)
		require.NoError(t, err)
		require.Equal(t, testEmitter, log.Address)
		require.Len(t, log.Topics, 2)
		require.Equal(t, common.Hash(crypto.Keccak256Hash([]byte("MessageReceived(address,string,uint256)"))), log.Topics[0])
		require.Equal(t, MessageReceivedTopic(), log.Topics[0])
		require.Equal(t, testSender, common.BytesToAddress(log.Topics[1].Bytes()))

		parsed, err := ParseMessageReceived(log)
		require.NoError(t, err)
		require.Equal(t, ev, parsed)
	}
}

func TestParseMessageReceivedErrors(t *testing.T) {
	ev := &MessageReceived{Sender: testSender, Message: "hi", Sequence: 1}
	valid, err := ev.Log(testEmitter)
	require.NoError(t, err)

	tests := []struct {
		name string
		log  *types.Log
	}{
		{name: "no topics", log: &types.Log{Data: valid.Data}},
		{name: "wrong topic", log: &types.Log{Topics: []common.Hash{{0x01}, valid.Topics[1]}, Data: valid.Data}},
		{name: "missing sender topic", log: &types.Log{Topics: valid.Topics[:1], Data: valid.Data}},
		{name: "truncated data", log: &types.Log{Topics: valid.Topics, Data: valid.Data[:40]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMessageReceived(tt.log)
			require.ErrorIs(t, err, ErrInvalidLog)
		})
	}
}

func TestAuthorize(t *testing.T) {
	principal := common.HexToAddress("0x4f3b05a601B7103CF8Fc0aBB56d042e04f222ceE")

	require.Equal(t, Authorized, Authorize(principal, principal))
	require.Equal(t, Unauthorized, Authorize(principal, testSender))
	require.Equal(t, Unauthorized, Authorize(principal, common.Address{}))
	require.Equal(t, Unauthorized, Authorize(common.Address{}, common.Address{}))
	require.Equal(t, "authorized", Authorized.String())
	require.Equal(t, "unauthorized", Unauthorized.String())
}

func TestCode(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", fmt.Errorf("%w: detail", ErrUntrustedCaller))

	require.ErrorIs(t, wrapped, ErrUntrustedCaller)
	require.NotErrorIs(t, wrapped, ErrUnauthorized)
	require.Equal(t, CodeUntrustedCaller, Code(wrapped))
	require.Equal(t, CodeUnknown, Code(errors.New("plain")))
	require.Equal(t, CodeUnknown, Code(nil))
	require.Equal(t, "untrusted caller", ErrUntrustedCaller.Error())
}

func TestCodecVersioning(t *testing.T) {
	record := &MessageRecord{Text: "hi", Sender: testSender, Sequence: 1}

	_, err := Codec.Marshal(CodecVersion+1, record)
	require.ErrorIs(t, err, errUnknownVersion)

	b, err := Codec.Marshal(CodecVersion, record)
	require.NoError(t, err)

	var decoded MessageRecord
	_, err = Codec.Unmarshal(b[:1], &decoded)
	require.ErrorIs(t, err, errShortCodecInput)

	b[1] = 0x05
	_, err = Codec.Unmarshal(b, &decoded)
	require.ErrorIs(t, err, errUnknownVersion)
}

func TestAddUint64(t *testing.T) {
	sum, err := AddUint64(1, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), sum)

	_, err = AddUint64(^uint64(0), 1)
	require.Error(t, err)
}

type recordingHandler struct {
	caller, origin common.Address
	payload        []byte
}

func (h *recordingHandler) HandleIncoming(_ context.Context, caller, origin common.Address, payload []byte) (*MessageReceived, error) {
	h.caller, h.origin, h.payload = caller, origin, payload
	return &MessageReceived{Sender: origin}, nil
}

func TestLocalLayerCallsAsItself(t *testing.T) {
	h := &recordingHandler{}
	layer := &LocalLayer{Address: testEmitter, Handler: h}

	ev, err := layer.Deliver(context.Background(), testSender, []byte{0x01})
	require.NoError(t, err)
	require.Equal(t, testSender, ev.Sender)
	require.Equal(t, testEmitter, h.caller)
	require.Equal(t, testSender, h.origin)
	require.Equal(t, []byte{0x01}, h.payload)
}
