// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package payload

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/xmsg"
)

func withVersion(version uint16, body []byte) []byte {
	b := make([]byte, versionLen, versionLen+len(body))
	binary.BigEndian.PutUint16(b, version)
	return append(b, body...)
}

func TestTextMessageRoundTrip(t *testing.T) {
	for _, message := range []string{"", "Hello, World!", "héllo 世界", strings.Repeat("A", 1000)} {
		msg, err := NewTextMessage(message)
		require.NoError(t, err)

		parsed, err := ParseTextMessage(msg.Bytes())
		require.NoError(t, err)
		require.Equal(t, message, parsed.Message)
	}
}

func TestTextMessageWireLayout(t *testing.T) {
	msg, err := NewTextMessage("hi")
	require.NoError(t, err)

	b := msg.Bytes()
	// version + offset word + length word + one padded data word
	require.Len(t, b, versionLen+3*32)
	require.Equal(t, CodecVersion, binary.BigEndian.Uint16(b))
	require.Equal(t, byte(0x20), b[versionLen+31])
	require.Equal(t, byte(2), b[versionLen+63])
	require.Equal(t, []byte("hi"), b[versionLen+64:versionLen+66])
}

func TestParseTextMessageMalformed(t *testing.T) {
	valid := (&TextMessage{Message: "hi"}).Bytes()

	trailing := append(append([]byte{}, valid...), 0x00)

	dirtyPadding := append([]byte{}, valid...)
	dirtyPadding[len(dirtyPadding)-1] = 0x01

	uintBody := make([]byte, 32)
	uintBody[31] = 5

	invalidUTF8, err := textArguments.Pack(string([]byte{0xff, 0xfe}))
	require.NoError(t, err)

	tests := []struct {
		name    string
		payload []byte
	}{
		{name: "nil", payload: nil},
		{name: "one byte", payload: []byte{0x00}},
		{name: "version only", payload: withVersion(CodecVersion, nil)},
		{name: "unknown version", payload: withVersion(1, valid[versionLen:])},
		{name: "truncated body", payload: valid[:len(valid)-1]},
		{name: "trailing bytes", payload: trailing},
		{name: "dirty padding", payload: dirtyPadding},
		{name: "not a string", payload: withVersion(CodecVersion, uintBody)},
		{name: "invalid utf8", payload: withVersion(CodecVersion, invalidUTF8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTextMessage(tt.payload)
			require.ErrorIs(t, err, xmsg.ErrMalformedPayload)
			require.Equal(t, xmsg.CodeMalformedPayload, xmsg.Code(err))
		})
	}
}

func TestNewTextMessageRejectsInvalidUTF8(t *testing.T) {
	_, err := NewTextMessage(string([]byte{0xc3, 0x28}))
	require.ErrorIs(t, err, xmsg.ErrMalformedPayload)
}
