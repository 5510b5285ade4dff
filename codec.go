// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package xmsg

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/luxfi/geth/rlp"
)

// CodecVersion is the only version Codec writes and accepts.
const CodecVersion uint16 = 0

const versionLen = 2

var (
	errShortCodecInput = errors.New("input shorter than codec version")
	errUnknownVersion  = errors.New("unknown codec version")
)

// CodecImpl serializes records and events as a 2-byte big-endian version
// followed by their RLP encoding.
type CodecImpl struct{}

// Codec is the default codec instance
var Codec = &CodecImpl{}

// Marshal serializes the value
func (c *CodecImpl) Marshal(version uint16, v interface{}) ([]byte, error) {
	if version != CodecVersion {
		return nil, fmt.Errorf("%w: %d", errUnknownVersion, version)
	}
	body, err := rlp.EncodeToBytes(v)
	if err != nil {
		return nil, err
	}
	b := make([]byte, versionLen, versionLen+len(body))
	binary.BigEndian.PutUint16(b, version)
	return append(b, body...), nil
}

// Unmarshal deserializes the bytes into v and returns the version read
func (c *CodecImpl) Unmarshal(b []byte, v interface{}) (uint16, error) {
	if len(b) < versionLen {
		return 0, errShortCodecInput
	}
	version := binary.BigEndian.Uint16(b)
	if version != CodecVersion {
		return version, fmt.Errorf("%w: %d", errUnknownVersion, version)
	}
	return version, rlp.DecodeBytes(b[versionLen:], v)
}
