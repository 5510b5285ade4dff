// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package xmsg

import (
	"errors"
	"fmt"
)

// Error codes returned by Code.
const (
	CodeUnknown int32 = iota
	CodeUnauthorized
	CodeUntrustedCaller
	CodeMalformedPayload
	CodeConstructionInvalid
	CodeInvalidSender
	CodeCorruptRecord
)

var (
	// ErrUnauthorized is returned when a privileged store entry point is
	// called by anyone other than the bound relay.
	ErrUnauthorized = &Error{Code: CodeUnauthorized, Message: "unauthorized"}

	// ErrUntrustedCaller is returned when the proxy is invoked by anyone
	// other than the trusted messaging layer.
	ErrUntrustedCaller = &Error{Code: CodeUntrustedCaller, Message: "untrusted caller"}

	// ErrMalformedPayload is returned when a cross-chain payload does not
	// decode to exactly one text field.
	ErrMalformedPayload = &Error{Code: CodeMalformedPayload, Message: "malformed payload"}

	// ErrConstructionInvalid is returned when a required immutable address is
	// the zero address.
	ErrConstructionInvalid = &Error{Code: CodeConstructionInvalid, Message: "invalid construction"}

	ErrInvalidSender = &Error{Code: CodeInvalidSender, Message: "invalid sender"}
	ErrCorruptRecord = &Error{Code: CodeCorruptRecord, Message: "corrupt record"}
)

// Error represents an xmsg error
type Error struct {
	Code    int32
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// String includes the code, for logs
func (e *Error) String() string {
	return fmt.Sprintf("xmsg error %d: %s", e.Code, e.Message)
}

// Code returns the code of the first *Error in err's chain, or CodeUnknown.
func Code(err error) int32 {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
