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

// Request is the core's view of an outgoing call. The payload itself is
// opaque to routing; only the fields strategies route on are named.
type Request struct {
	// Procedure being called, used by TypeDispatch's typeFn and logging.
	Procedure string

	// ShardKey is an opaque string a Sharding or RendezvousHashing strategy
	// may hash on to pick a target deterministically.
	ShardKey string

	// RoutingKey is a secondary routing key for caller-supplied shard, hash
	// or type functions. No built-in default reads it, and it does not
	// override ShardKey on its own.
	RoutingKey string

	// Headers carried alongside the request; not interpreted by the core.
	Headers map[string]string

	// Body is the opaque request payload; ownership transfers to the
	// selected Sender at submit time.
	Body any
}

// Callback is a single-shot sink for a request's outcome. A Sender must
// invoke a Callback exactly once per accepted request: either with a result
// and a nil error, or a nil result and a non-nil error. A successful result
// may itself be nil: FirstValidResult reports "no valid result" as (nil, nil)
// when no NoValidResultError is configured.
type Callback func(result any, err error)
