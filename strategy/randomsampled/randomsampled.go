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

// Package randomsampled implements the randomSampled combinator: each
// request goes to exactly one child, chosen with probability proportional
// to that child's configured weight.
package randomsampled

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/multierr"

	"github.com/rpcdispatch/rpcdispatch/api"
	"github.com/rpcdispatch/rpcdispatch/rpcerrors"
)

// Weighted pairs a sub-strategy with its selection weight.
type Weighted struct {
	Strategy api.Strategy
	Weight   int
}

// RandomSampled is a Strategy over weighted sub-strategies.
type RandomSampled struct {
	children []Weighted
	seed     int64
	hasSeed  bool
}

var _ api.Strategy = (*RandomSampled)(nil)

// Option customizes a RandomSampled strategy.
type Option func(*RandomSampled)

// WithSeed pins the pseudo-random source, for deterministic tests. Without
// it, each compiled sender seeds from the current time, matching
// peer/randpeer's rand.NewSource(time.Now().UnixNano()) convention.
func WithSeed(seed int64) Option {
	return func(r *RandomSampled) {
		r.seed = seed
		r.hasSeed = true
	}
}

// New builds a RandomSampled strategy over weighted children.
func New(children []Weighted, opts ...Option) *RandomSampled {
	r := &RandomSampled{children: children}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Addresses returns the union of every child's addresses.
func (r *RandomSampled) Addresses() api.AddressSet {
	set := make(api.AddressSet)
	for _, w := range r.children {
		set.Union(w.Strategy.Addresses())
	}
	return set
}

// Compile compiles every child, retaining those that succeeded along with
// their weight; children with a non-positive weight are dropped. Unavailable
// iff no child with a positive weight compiled.
func (r *RandomSampled) Compile(pool api.ConnectionPool) (api.Sender, error) {
	type weightedSender struct {
		sender api.Sender
		weight int
	}
	available := make([]weightedSender, 0, len(r.children))
	var aggregate error
	for _, w := range r.children {
		sender, err := w.Strategy.Compile(pool)
		if err != nil {
			aggregate = multierr.Append(aggregate, err)
			continue
		}
		if w.Weight > 0 {
			available = append(available, weightedSender{sender: sender, weight: w.Weight})
		}
	}
	if len(available) == 0 {
		if aggregate == nil {
			aggregate = rpcerrors.New(rpcerrors.CodeCompileUnavailable, "randomSampled: no children configured")
		}
		return nil, rpcerrors.Wrap(rpcerrors.CodeCompileUnavailable, aggregate)
	}

	cumulative := make([]int, len(available))
	total := 0
	senders := make([]api.Sender, len(available))
	for i, ws := range available {
		total += ws.weight
		cumulative[i] = total
		senders[i] = ws.sender
	}

	seed := r.seed
	if !r.hasSeed {
		seed = time.Now().UnixNano()
	}
	return &weightedPicker{
		senders:    senders,
		cumulative: cumulative,
		total:      total,
		random:     rand.New(rand.NewSource(seed)),
	}, nil
}

// weightedPicker holds the mutable random source; recompiling produces a
// fresh one, per spec's "random state need not be cross-compile-stable".
type weightedPicker struct {
	senders    []api.Sender
	cumulative []int
	total      int
	random     *rand.Rand
}

var _ api.Sender = (*weightedPicker)(nil)

func (w *weightedPicker) SendRequest(ctx context.Context, req *api.Request, timeout time.Duration, cb api.Callback) {
	pick := w.random.Intn(w.total)
	for i, c := range w.cumulative {
		if pick < c {
			w.senders[i].SendRequest(ctx, req, timeout, cb)
			return
		}
	}
	// Unreachable: cumulative[len-1] == total, so pick < total always matches.
	w.senders[len(w.senders)-1].SendRequest(ctx, req, timeout, cb)
}
