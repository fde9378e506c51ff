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

package api

import (
	"context"
	"time"
)

// Sender is a callable bound to one or more live connections. It accepts a
// request, a timeout, and a callback, and guarantees the callback fires
// exactly once.
//
// SendRequest MUST NOT block: it either enqueues synchronously on the
// underlying transport or schedules the send and returns immediately. A
// timeout of 0 means no timeout.
type Sender interface {
	SendRequest(ctx context.Context, req *Request, timeout time.Duration, cb Callback)
}

// ConnectionPool is an opaque, non-blocking provider of the currently live
// Sender for a given Address. Get may be called many times during a single
// Strategy.Compile and must not perform I/O.
type ConnectionPool interface {
	// Get returns the pool's current sender for addr, or ok=false if no
	// connection is live right now.
	Get(addr Address) (sender Sender, ok bool)
}

// Strategy is an immutable description of a routing policy. The strategy
// tree itself never changes; all mutable dispatch state (round-robin
// cursors, random sources, aggregators) lives inside the Sender a Compile
// call produces.
type Strategy interface {
	// Addresses enumerates every address this strategy may target, a
	// superset of what any one compiled Sender will actually hit. Used by
	// callers to pre-warm a ConnectionPool.
	Addresses() AddressSet

	// Compile resolves this strategy against a point-in-time pool snapshot.
	// It must not perform I/O or block. A non-nil error is always a
	// *rpcerrors.Status with code CodeCompileUnavailable; it is a sentinel,
	// never handed to a request Callback.
	Compile(pool ConnectionPool) (Sender, error)
}
