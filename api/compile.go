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

import "go.uber.org/multierr"

// CompiledChild is one sub-strategy's compile outcome, keeping the original
// slot position so combinators with positional semantics (Sharding) can
// retain holes for sub-strategies that failed to compile.
type CompiledChild struct {
	Index   int
	Sender  Sender
	Err     error
}

// CompileChildren compiles every child strategy against pool, in order,
// never short-circuiting on a single failure. It returns one CompiledChild
// per input strategy (Sender is nil and Err is non-nil on failure), plus the
// aggregated error across all failures for callers that want to report why
// a composite came up short.
func CompileChildren(pool ConnectionPool, children []Strategy) ([]CompiledChild, error) {
	out := make([]CompiledChild, len(children))
	var aggregate error
	for i, child := range children {
		sender, err := child.Compile(pool)
		out[i] = CompiledChild{Index: i, Sender: sender, Err: err}
		if err != nil {
			aggregate = multierr.Append(aggregate, err)
		}
	}
	return out, aggregate
}

// Available filters a CompiledChild slice down to the ones that compiled
// successfully, preserving order.
func Available(children []CompiledChild) []CompiledChild {
	out := make([]CompiledChild, 0, len(children))
	for _, c := range children {
		if c.Err == nil {
			out = append(out, c)
		}
	}
	return out
}

// UnionAddresses enumerates the union of every child strategy's address set.
func UnionAddresses(children []Strategy) AddressSet {
	set := make(AddressSet)
	for _, child := range children {
		set.Union(child.Addresses())
	}
	return set
}
