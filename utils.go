// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package xmsg

import (
	"crypto/sha256"
	"errors"
	"math"
)

var errOverflow = errors.New("addition would overflow")

// AddUint64 adds two uint64 values and returns an error if overflow
func AddUint64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errOverflow
	}
	return a + b, nil
}

// ComputeHash256Array computes SHA256 hash
func ComputeHash256Array(data []byte) [sha256.Size]byte {
	return sha256.Sum256(data)
}
