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

// Package typedispatch implements the typeDispatch combinator: a request is
// classified into a TypeTag and routed to the sub-strategy registered for
// that tag, falling back to a default sub-strategy when one is configured.
package typedispatch

import (
	"context"
	"time"

	"go.uber.org/multierr"

	"github.com/rpcdispatch/rpcdispatch/api"
	"github.com/rpcdispatch/rpcdispatch/rpcerrors"
)

// TypeTag classifies a request for dispatch purposes.
type TypeTag string

// TypeFunc classifies a request into a TypeTag.
type TypeFunc func(req *api.Request) TypeTag

// Policy controls how Compile treats a mapping entry whose sub-strategy
// fails to compile.
type Policy int

const (
	// PolicyStrict requires every mapped sub-strategy to compile; any
	// single failure makes the whole dispatcher Unavailable unless a
	// default is configured to absorb requests of the failed tags.
	PolicyStrict Policy = iota
	// PolicyPartial tolerates individual mapping failures: requests for a
	// tag whose sub-strategy failed to compile fall through to the
	// default, or are rejected at dispatch time if there is no default.
	PolicyPartial
)

// TypeDispatch is a Strategy that routes by request classification.
type TypeDispatch struct {
	typeFn   TypeFunc
	mapping  map[TypeTag]api.Strategy
	defaultS api.Strategy
	policy   Policy
}

var _ api.Strategy = (*TypeDispatch)(nil)

// Option customizes a TypeDispatch strategy.
type Option func(*TypeDispatch)

// WithDefault sets the sub-strategy used when typeFn returns a tag absent
// from the mapping, or (under PolicyPartial) mapped to a tag that failed to
// compile.
func WithDefault(s api.Strategy) Option {
	return func(t *TypeDispatch) {
		t.defaultS = s
	}
}

// WithPolicy sets the partial-compile tolerance. Defaults to PolicyStrict.
func WithPolicy(p Policy) Option {
	return func(t *TypeDispatch) {
		t.policy = p
	}
}

// New builds a TypeDispatch strategy from a classifier and a tag→strategy
// mapping.
func New(typeFn TypeFunc, mapping map[TypeTag]api.Strategy, opts ...Option) *TypeDispatch {
	t := &TypeDispatch{typeFn: typeFn, mapping: mapping}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Addresses returns the union of every mapped strategy's addresses, plus the
// default's if configured.
func (t *TypeDispatch) Addresses() api.AddressSet {
	set := make(api.AddressSet)
	for _, s := range t.mapping {
		set.Union(s.Addresses())
	}
	if t.defaultS != nil {
		set.Union(t.defaultS.Addresses())
	}
	return set
}

// Compile compiles every mapped sub-strategy and the default, if any.
//
// Under PolicyStrict, any mapping entry that fails to compile makes the
// whole strategy Unavailable unless the default compiled, in which case
// requests for the failed tags go to the default. Under PolicyPartial, a failed mapping entry is
// simply absent from the compiled routing table; requests classified to its
// tag dispatch to the default, or fail at dispatch time if there is no
// default. Compile itself is Unavailable only when there is no default and
// every mapping entry failed.
func (t *TypeDispatch) Compile(pool api.ConnectionPool) (api.Sender, error) {
	var defaultSender api.Sender
	var aggregate error
	if t.defaultS != nil {
		s, err := t.defaultS.Compile(pool)
		if err != nil {
			aggregate = multierr.Append(aggregate, err)
		} else {
			defaultSender = s
		}
	}

	table := make(map[TypeTag]api.Sender, len(t.mapping))
	failed := 0
	for tag, strat := range t.mapping {
		sender, err := strat.Compile(pool)
		if err != nil {
			failed++
			aggregate = multierr.Append(aggregate, err)
			continue
		}
		table[tag] = sender
	}

	if t.policy == PolicyStrict && failed > 0 && defaultSender == nil {
		return nil, rpcerrors.Wrap(rpcerrors.CodeCompileUnavailable, aggregate)
	}
	if len(table) == 0 && defaultSender == nil {
		if aggregate == nil {
			aggregate = rpcerrors.New(rpcerrors.CodeCompileUnavailable, "typeDispatch: no mapping or default configured")
		}
		return nil, rpcerrors.Wrap(rpcerrors.CodeCompileUnavailable, aggregate)
	}

	return &dispatchSender{typeFn: t.typeFn, table: table, defaultSender: defaultSender}, nil
}

type dispatchSender struct {
	typeFn        TypeFunc
	table         map[TypeTag]api.Sender
	defaultSender api.Sender
}

var _ api.Sender = (*dispatchSender)(nil)

func (d *dispatchSender) SendRequest(ctx context.Context, req *api.Request, timeout time.Duration, cb api.Callback) {
	tag := d.typeFn(req)
	if sender, ok := d.table[tag]; ok {
		sender.SendRequest(ctx, req, timeout, cb)
		return
	}
	if d.defaultSender != nil {
		d.defaultSender.SendRequest(ctx, req, timeout, cb)
		return
	}
	cb(nil, rpcerrors.Newf(rpcerrors.CodeNoSenderAvailable, "typeDispatch: no sub-strategy for tag %q", tag))
}
