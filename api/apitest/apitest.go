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

// Package apitest provides small stand-ins for api.ConnectionPool and
// api.Sender, used across the strategy package tests the same way
// api/peer/peertest backs yarpc's peer list tests.
package apitest

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/rpcdispatch/rpcdispatch/api"
)

// FakePool is a mutable, non-blocking api.ConnectionPool backed by a map.
type FakePool struct {
	mu      sync.RWMutex
	senders map[api.Address]api.Sender
}

var _ api.ConnectionPool = (*FakePool)(nil)

// NewFakePool builds an empty pool.
func NewFakePool() *FakePool {
	return &FakePool{senders: make(map[api.Address]api.Sender)}
}

// Put registers sender as the live connection for addr.
func (p *FakePool) Put(addr api.Address, sender api.Sender) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.senders[addr] = sender
}

// Remove drops the live connection for addr, simulating a closed connection.
func (p *FakePool) Remove(addr api.Address) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.senders, addr)
}

// Get implements api.ConnectionPool.
func (p *FakePool) Get(addr api.Address) (api.Sender, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.senders[addr]
	return s, ok
}

// RecordingSender is an api.Sender stub that counts requests and replies
// with a fixed result/error pair, synchronously, from SendRequest.
type RecordingSender struct {
	requests atomic.Int64
	result   any
	err      error
	delay    time.Duration
}

var _ api.Sender = (*RecordingSender)(nil)

// NewRecordingSender builds a sender that always answers with (result, err).
func NewRecordingSender(result any, err error) *RecordingSender {
	return &RecordingSender{result: result, err: err}
}

// WithDelay makes the sender invoke its callback from a separate goroutine
// after delay, for exercising concurrent fan-out (FirstValidResult).
func (s *RecordingSender) WithDelay(delay time.Duration) *RecordingSender {
	s.delay = delay
	return s
}

// SendRequest implements api.Sender.
func (s *RecordingSender) SendRequest(ctx context.Context, req *api.Request, timeout time.Duration, cb api.Callback) {
	s.requests.Inc()
	if s.delay <= 0 {
		cb(s.result, s.err)
		return
	}
	go func() {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-t.C:
			cb(s.result, s.err)
		case <-ctx.Done():
			cb(nil, ctx.Err())
		}
	}()
}

// Requests reports how many times SendRequest has been called.
func (s *RecordingSender) Requests() int64 {
	return s.requests.Load()
}
