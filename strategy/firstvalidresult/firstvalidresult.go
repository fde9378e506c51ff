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

// Package firstvalidresult implements the firstValidResult combinator: a
// request fans out to every compiled child concurrently, and the caller's
// callback fires exactly once with the first result a validator accepts.
//
// This is the one combinator in the module that spins up real goroutines:
// "fanned out... concurrently" cannot be expressed on a single call stack,
// so the fan-out itself, not the rest of the dispatch path, is the
// exception to the otherwise synchronous, single-threaded dispatch model.
package firstvalidresult

import (
	"context"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rpcdispatch/rpcdispatch/api"
	"github.com/rpcdispatch/rpcdispatch/rpcerrors"
)

// ResultValidator reports whether a child's result should win the race. The
// default validator accepts any non-nil result.
type ResultValidator func(result any) bool

func defaultValidator(result any) bool {
	return result != nil
}

// FirstValidResult is a Strategy that fans a request out to every compiled
// child and accepts the first result the validator approves.
type FirstValidResult struct {
	children         []api.Strategy
	validator        ResultValidator
	noValidResultErr error
	minActive        int
	logger           *zap.Logger
}

var _ api.Strategy = (*FirstValidResult)(nil)

// Option customizes a FirstValidResult strategy.
type Option func(*FirstValidResult)

// WithResultValidator overrides the default "non-nil" validator.
func WithResultValidator(v ResultValidator) Option {
	return func(f *FirstValidResult) {
		f.validator = v
	}
}

// WithNoValidResultError sets the error delivered to the callback when every
// child has responded and none produced a valid result. Without it, the
// callback fires with a successful nil result.
func WithNoValidResultError(err error) Option {
	return func(f *FirstValidResult) {
		f.noValidResultErr = err
	}
}

// WithMinActiveSubStrategies sets the compile-time gate: Compile returns
// Unavailable unless at least n children compiled successfully.
func WithMinActiveSubStrategies(n int) Option {
	return func(f *FirstValidResult) {
		f.minActive = n
	}
}

// WithLogger attaches a logger used to note orphaned child responses — ones
// that arrive after the aggregator has already resolved. A nil logger (the
// default) discards these entirely.
func WithLogger(logger *zap.Logger) Option {
	return func(f *FirstValidResult) {
		f.logger = logger
	}
}

// New builds a FirstValidResult strategy over an ordered list of children.
func New(children []api.Strategy, opts ...Option) *FirstValidResult {
	f := &FirstValidResult{children: children, validator: defaultValidator}
	for _, o := range opts {
		o(f)
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f
}

// Addresses returns the union of every child's addresses.
func (f *FirstValidResult) Addresses() api.AddressSet {
	return api.UnionAddresses(f.children)
}

// Compile compiles every child; Unavailable iff fewer than minActive (or, if
// minActive is unset, zero) children compiled.
func (f *FirstValidResult) Compile(pool api.ConnectionPool) (api.Sender, error) {
	compiled, aggregate := api.CompileChildren(pool, f.children)
	available := api.Available(compiled)
	if len(available) == 0 || len(available) < f.minActive {
		if aggregate == nil {
			aggregate = rpcerrors.New(rpcerrors.CodeCompileUnavailable, "firstValidResult: no children configured")
		}
		return nil, rpcerrors.Wrap(rpcerrors.CodeCompileUnavailable, aggregate)
	}

	senders := make([]api.Sender, len(available))
	for i, c := range available {
		senders[i] = c.Sender
	}
	return &fanoutSender{
		senders:          senders,
		validator:        f.validator,
		noValidResultErr: f.noValidResultErr,
		logger:           f.logger,
	}, nil
}

type fanoutSender struct {
	senders          []api.Sender
	validator        ResultValidator
	noValidResultErr error
	logger           *zap.Logger
}

var _ api.Sender = (*fanoutSender)(nil)

// aggregator is the per-request state machine described in the request
// lifecycle: Pending(remaining, done) until either a valid result arrives or
// remaining hits zero, then Done forever.
type aggregator struct {
	remaining *atomic.Int64
	done      *atomic.Bool
}

// SendRequest fans req out to every child concurrently and resolves cb
// exactly once per the aggregator rule: first valid result wins, otherwise
// the configured no-valid-result error (or a nil success) once every child
// has answered.
func (s *fanoutSender) SendRequest(ctx context.Context, req *api.Request, timeout time.Duration, cb api.Callback) {
	agg := &aggregator{
		remaining: atomic.NewInt64(int64(len(s.senders))),
		done:      atomic.NewBool(false),
	}

	// Children receive the caller's ctx: a group-derived context would be
	// canceled as soon as Wait returns, before asynchronous children answer.
	var group errgroup.Group
	for _, child := range s.senders {
		child := child
		group.Go(func() error {
			child.SendRequest(ctx, req, timeout, func(result any, err error) {
				s.resolve(agg, cb, result, err)
			})
			return nil
		})
	}

	// The fan-out itself never fails (children report outcomes through
	// their own callbacks, not the goroutine's return value, so every
	// goroutine returns nil); Wait only blocks until every dispatch call has
	// been issued. The error branch is defensive.
	if err := group.Wait(); err != nil {
		s.logger.Debug("firstValidResult: child dispatch goroutine failed", zap.Error(err))
	}
}

func (s *fanoutSender) resolve(agg *aggregator, cb api.Callback, result any, err error) {
	if agg.done.Load() {
		s.logger.Debug("firstValidResult: discarding response after aggregator resolved")
		return
	}

	if err == nil && s.validator(result) {
		if agg.done.CompareAndSwap(false, true) {
			cb(result, nil)
		} else {
			s.logger.Debug("firstValidResult: discarding late valid response")
		}
		return
	}

	if agg.remaining.Dec() == 0 {
		if agg.done.CompareAndSwap(false, true) {
			cb(nil, s.noValidResultErr)
		}
	}
}
