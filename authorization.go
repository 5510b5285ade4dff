// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package xmsg

import "github.com/luxfi/geth/common"

// Authorization is the outcome of comparing a call's verified origin against
// a configured principal.
type Authorization uint8

const (
	Unauthorized Authorization = iota
	Authorized
)

// Authorize returns Authorized iff caller is the non-zero principal.
func Authorize(principal, caller common.Address) Authorization {
	if principal == (common.Address{}) || caller != principal {
		return Unauthorized
	}
	return Authorized
}

func (a Authorization) String() string {
	switch a {
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}
