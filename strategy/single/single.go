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

// Package single implements the simplest leaf Strategy: route every request
// to one fixed address.
package single

import (
	"github.com/rpcdispatch/rpcdispatch/api"
	"github.com/rpcdispatch/rpcdispatch/rpcerrors"
)

// Single is a Strategy that targets exactly one address.
type Single struct {
	addr api.Address
}

var _ api.Strategy = (*Single)(nil)

// New builds a Single strategy for addr.
func New(addr api.Address) *Single {
	return &Single{addr: addr}
}

// Addresses returns the sole address this strategy may target.
func (s *Single) Addresses() api.AddressSet {
	return api.NewAddressSet(s.addr)
}

// Compile looks up the pool's current sender for addr. There is no wrapping
// involved: the pool's sender is handed back as-is, since a single-target
// strategy adds no routing state of its own.
func (s *Single) Compile(pool api.ConnectionPool) (api.Sender, error) {
	sender, ok := pool.Get(s.addr)
	if !ok {
		return nil, rpcerrors.Newf(rpcerrors.CodeCompileUnavailable, "single: no live connection for %s", s.addr)
	}
	return sender, nil
}
