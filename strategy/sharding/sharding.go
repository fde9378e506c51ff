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

// Package sharding implements the sharding combinator: a request's shard
// index picks a fixed sub-strategy slot, with no fallback when that slot
// failed to compile.
package sharding

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rpcdispatch/rpcdispatch/api"
	"github.com/rpcdispatch/rpcdispatch/rpcerrors"
)

// ShardFunc computes a shard index in [0, n) for req.
type ShardFunc func(req *api.Request, n int) int

// FNVShardFunc is a ready-made ShardFunc: hash keyFn(req) with FNV-1a and
// reduce mod n. A convenience for the common case of sharding by an opaque
// string key; callers with bespoke routing still pass their own ShardFunc.
func FNVShardFunc(keyFn func(req *api.Request) string) ShardFunc {
	return func(req *api.Request, n int) int {
		h := fnv.New32a()
		_, _ = h.Write([]byte(keyFn(req)))
		return int(h.Sum32() % uint32(n))
	}
}

// Sharding is a Strategy that indexes into an ordered list of sub-strategies
// by a caller-supplied shard function.
type Sharding struct {
	shardFn   ShardFunc
	children  []api.Strategy
	minActive int
}

var _ api.Strategy = (*Sharding)(nil)

// Option customizes a Sharding strategy.
type Option func(*Sharding)

// WithMinActiveSubStrategies sets the compile-time gate: Compile returns
// Unavailable unless at least n children compiled successfully.
func WithMinActiveSubStrategies(n int) Option {
	return func(s *Sharding) {
		s.minActive = n
	}
}

// New builds a Sharding strategy. shardFn is invoked once per request with
// the current slot count to compute the target slot.
func New(shardFn ShardFunc, children []api.Strategy, opts ...Option) *Sharding {
	s := &Sharding{shardFn: shardFn, children: children}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Addresses returns the union of every child's addresses.
func (s *Sharding) Addresses() api.AddressSet {
	return api.UnionAddresses(s.children)
}

// Compile compiles every child, retaining holes at the index of any child
// that failed, so shard indices keep their meaning across compiles with
// partial availability.
func (s *Sharding) Compile(pool api.ConnectionPool) (api.Sender, error) {
	compiled, aggregate := api.CompileChildren(pool, s.children)

	slots := make([]api.Sender, len(compiled))
	active := 0
	for i, c := range compiled {
		if c.Err == nil {
			slots[i] = c.Sender
			active++
		}
	}
	if active == 0 || active < s.minActive {
		if aggregate == nil {
			aggregate = rpcerrors.New(rpcerrors.CodeCompileUnavailable, "sharding: no children configured")
		}
		return nil, rpcerrors.Wrap(rpcerrors.CodeCompileUnavailable, aggregate)
	}

	return &shardedSender{shardFn: s.shardFn, slots: slots}, nil
}

type shardedSender struct {
	shardFn ShardFunc
	slots   []api.Sender
}

var _ api.Sender = (*shardedSender)(nil)

func (s *shardedSender) SendRequest(ctx context.Context, req *api.Request, timeout time.Duration, cb api.Callback) {
	i := s.shardFn(req, len(s.slots))
	target := s.slots[i]
	if target == nil {
		cb(nil, rpcerrors.Newf(rpcerrors.CodeNoSenderAvailable, "sharding: slot %d has no live connection", i))
		return
	}
	target.SendRequest(ctx, req, timeout, cb)
}
