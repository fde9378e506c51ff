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

// Address uniquely references a backend endpoint (typically host:port).
// It is comparable and hashable by construction, so it can be used directly
// as a map key wherever a ConnectionPool or strategy needs to key off it.
type Address string

// String satisfies fmt.Stringer.
func (a Address) String() string {
	return string(a)
}

// AddressSet is an unordered collection of unique addresses, returned by
// Strategy.Addresses for pool warm-up / pre-subscription purposes.
type AddressSet map[Address]struct{}

// NewAddressSet builds an AddressSet from a list of addresses, deduplicating.
func NewAddressSet(addrs ...Address) AddressSet {
	set := make(AddressSet, len(addrs))
	for _, a := range addrs {
		set[a] = struct{}{}
	}
	return set
}

// Union merges other into set, returning set for chaining.
func (set AddressSet) Union(other AddressSet) AddressSet {
	for a := range other {
		set[a] = struct{}{}
	}
	return set
}

// Slice returns the set's members as a slice, in no particular order.
func (set AddressSet) Slice() []Address {
	out := make([]Address, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	return out
}
