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

// Package roundrobin implements the roundRobin combinator: strict rotation
// over the sub-strategies that compiled successfully, with no skipping.
package roundrobin

import (
	"context"
	"time"

	"go.uber.org/atomic"

	"github.com/rpcdispatch/rpcdispatch/api"
	"github.com/rpcdispatch/rpcdispatch/rpcerrors"
)

// RoundRobin is a Strategy over an ordered list of sub-strategies.
type RoundRobin struct {
	children []api.Strategy
}

var _ api.Strategy = (*RoundRobin)(nil)

// New builds a RoundRobin strategy over children.
func New(children ...api.Strategy) *RoundRobin {
	return &RoundRobin{children: children}
}

// Addresses returns the union of every child's addresses.
func (r *RoundRobin) Addresses() api.AddressSet {
	return api.UnionAddresses(r.children)
}

// Compile compiles every child and keeps the ones that succeeded, in
// original order. Unavailable iff none compiled.
func (r *RoundRobin) Compile(pool api.ConnectionPool) (api.Sender, error) {
	compiled, aggregate := api.CompileChildren(pool, r.children)
	available := api.Available(compiled)
	if len(available) == 0 {
		if aggregate == nil {
			aggregate = rpcerrors.New(rpcerrors.CodeCompileUnavailable, "roundRobin: no children configured")
		}
		return nil, rpcerrors.Wrap(rpcerrors.CodeCompileUnavailable, aggregate)
	}

	senders := make([]api.Sender, len(available))
	for i, c := range available {
		senders[i] = c.Sender
	}
	return &rotatingSender{senders: senders}, nil
}

// rotatingSender holds the mutable cursor. Recompiling resets it to 0, per
// spec: cursor state is not required to survive a recompile.
type rotatingSender struct {
	senders []api.Sender
	cursor  atomic.Int64
}

var _ api.Sender = (*rotatingSender)(nil)

// SendRequest dispatches to child (cursor mod n), then advances the cursor.
// The advance happens exactly once per submitted request, in submission
// order, so n requests visit every child exactly once.
func (r *rotatingSender) SendRequest(ctx context.Context, req *api.Request, timeout time.Duration, cb api.Callback) {
	n := int64(len(r.senders))
	i := r.cursor.Inc() - 1
	child := r.senders[i%n]
	child.SendRequest(ctx, req, timeout, cb)
}
