// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

// Package payload defines the wire format of cross-chain payloads accepted by
// the relay proxy.
//
// A payload is a 2-byte big-endian codec version followed by a body. Version 0
// bodies are the Solidity ABI encoding of a single string, as produced by
// abi.encode(string) on the origin side.
package payload

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/luxfi/geth/accounts/abi"

	"github.com/luxfi/xmsg"
)

const (
	// CodecVersion is the current payload version
	CodecVersion uint16 = 0

	versionLen = 2
)

var textArguments = mustTextArguments()

// TextMessage is the only payload shape: one UTF-8 text field
type TextMessage struct {
	Message string
}

// NewTextMessage creates a new text payload
func NewTextMessage(message string) (*TextMessage, error) {
	t := &TextMessage{Message: message}
	if err := t.Verify(); err != nil {
		return nil, err
	}
	return t, nil
}

// Verify verifies the text payload
func (t *TextMessage) Verify() error {
	if !utf8.ValidString(t.Message) {
		return fmt.Errorf("%w: message is not valid UTF-8", xmsg.ErrMalformedPayload)
	}
	return nil
}

// Bytes returns the byte representation of the payload
func (t *TextMessage) Bytes() []byte {
	body, _ := textArguments.Pack(t.Message)
	b := make([]byte, versionLen, versionLen+len(body))
	binary.BigEndian.PutUint16(b, CodecVersion)
	return append(b, body...)
}

// ParseTextMessage parses a text payload. Every failure wraps
// xmsg.ErrMalformedPayload.
func ParseTextMessage(b []byte) (*TextMessage, error) {
	if len(b) < versionLen {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the version prefix", xmsg.ErrMalformedPayload, len(b))
	}
	if version := binary.BigEndian.Uint16(b); version != CodecVersion {
		return nil, fmt.Errorf("%w: unknown version %d", xmsg.ErrMalformedPayload, version)
	}
	body := b[versionLen:]

	values, err := textArguments.Unpack(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xmsg.ErrMalformedPayload, err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("%w: expected 1 field, got %d", xmsg.ErrMalformedPayload, len(values))
	}
	message, ok := values[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: field is %T", xmsg.ErrMalformedPayload, values[0])
	}

	// Unpack tolerates trailing data and dirty padding.
	canonical, err := textArguments.Pack(message)
	if err != nil || !bytes.Equal(canonical, body) {
		return nil, fmt.Errorf("%w: body is not the canonical encoding of one string", xmsg.ErrMalformedPayload)
	}

	t := &TextMessage{Message: message}
	if err := t.Verify(); err != nil {
		return nil, err
	}
	return t, nil
}

func mustTextArguments() abi.Arguments {
	stringType, err := abi.NewType("string", "", nil)
	if err != nil {
		panic(fmt.Sprintf("invalid ABI type: %v", err))
	}
	return abi.Arguments{{Name: "message", Type: stringType}}
}
