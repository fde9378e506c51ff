// Copyright (c) 2026 The rpcdispatch Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package rpcerrors distinguishes the five failure kinds the dispatch core
// can surface, per the distinguished-failures taxonomy: no sender available,
// all children failed with no valid result, request timeout, connection
// closed, and compile-time unavailability.
package rpcerrors

import "fmt"

// Code classifies a dispatch failure.
type Code int

const (
	// CodeUnknown is the zero value; never produced by this package.
	CodeUnknown Code = iota

	// CodeNoSenderAvailable means no underlying sender was selectable for
	// this request, either at compile time or at dispatch time (e.g. a
	// Sharding hole).
	CodeNoSenderAvailable

	// CodeNoValidResult means FirstValidResult exhausted every child
	// without producing a response its validator accepted, and the caller
	// configured a NoValidResultError.
	CodeNoValidResult

	// CodeRequestTimeout means the underlying transport timed out the
	// request before a response arrived.
	CodeRequestTimeout

	// CodeConnectionClosed means the underlying connection closed while a
	// request was in flight.
	CodeConnectionClosed

	// CodeCompileUnavailable is returned only as the error half of
	// Strategy.Compile's return value, never passed to a request Callback.
	CodeCompileUnavailable
)

func (c Code) String() string {
	switch c {
	case CodeNoSenderAvailable:
		return "no-sender-available"
	case CodeNoValidResult:
		return "no-valid-result"
	case CodeRequestTimeout:
		return "request-timeout"
	case CodeConnectionClosed:
		return "connection-closed"
	case CodeCompileUnavailable:
		return "compile-unavailable"
	default:
		return fmt.Sprintf("unknown-code(%d)", int(c))
	}
}
