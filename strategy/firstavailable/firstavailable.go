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

// Package firstavailable implements the firstAvailable combinator: route
// every request to the first child strategy that compiled successfully.
// Fallback happens between compilations, never mid-request.
package firstavailable

import (
	"context"
	"time"

	"github.com/rpcdispatch/rpcdispatch/api"
	"github.com/rpcdispatch/rpcdispatch/rpcerrors"
)

// FirstAvailable is a Strategy over an ordered list of sub-strategies.
type FirstAvailable struct {
	children []api.Strategy
}

var _ api.Strategy = (*FirstAvailable)(nil)

// New builds a FirstAvailable strategy over children, in priority order.
func New(children ...api.Strategy) *FirstAvailable {
	return &FirstAvailable{children: children}
}

// Addresses returns the union of every child's addresses.
func (f *FirstAvailable) Addresses() api.AddressSet {
	return api.UnionAddresses(f.children)
}

// Compile compiles every child in order and binds to the first that
// succeeded. Unavailable iff none compiled.
func (f *FirstAvailable) Compile(pool api.ConnectionPool) (api.Sender, error) {
	compiled, aggregate := api.CompileChildren(pool, f.children)
	for _, c := range compiled {
		if c.Err == nil {
			return &boundSender{chosen: c.Sender}, nil
		}
	}
	return nil, rpcerrors.Wrap(rpcerrors.CodeCompileUnavailable, errUnavailable(aggregate))
}

func errUnavailable(aggregate error) error {
	if aggregate == nil {
		return rpcerrors.New(rpcerrors.CodeCompileUnavailable, "firstAvailable: no children configured")
	}
	return aggregate
}

// boundSender is a trivial pass-through: the child resolved at compile time
// handles every request sent through this sender, with no retry on failure.
type boundSender struct {
	chosen api.Sender
}

var _ api.Sender = (*boundSender)(nil)

func (b *boundSender) SendRequest(ctx context.Context, req *api.Request, timeout time.Duration, cb api.Callback) {
	b.chosen.SendRequest(ctx, req, timeout, cb)
}
