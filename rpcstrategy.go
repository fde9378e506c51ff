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

// Package rpcstrategy is the module's public surface: constructors for every
// strategy in the algebra, plus the Servers and FNVShardFunc helpers. It is
// a thin re-export layer over the strategy/ subpackages, the way
// go.uber.org/yarpc's root package re-exports its peer list constructors.
package rpcstrategy

import (
	"github.com/rpcdispatch/rpcdispatch/api"
	"github.com/rpcdispatch/rpcdispatch/strategy/firstavailable"
	"github.com/rpcdispatch/rpcdispatch/strategy/firstvalidresult"
	"github.com/rpcdispatch/rpcdispatch/strategy/randomsampled"
	"github.com/rpcdispatch/rpcdispatch/strategy/rendezvous"
	"github.com/rpcdispatch/rpcdispatch/strategy/roundrobin"
	"github.com/rpcdispatch/rpcdispatch/strategy/sharding"
	"github.com/rpcdispatch/rpcdispatch/strategy/single"
	"github.com/rpcdispatch/rpcdispatch/strategy/typedispatch"
)

// Address identifies a backend connection.
type Address = api.Address

// Request is the opaque request envelope routed by a compiled Sender.
type Request = api.Request

// Callback is the single-shot completion sink supplied to SendRequest.
type Callback = api.Callback

// Sender dispatches requests; it is what Strategy.Compile produces.
type Sender = api.Sender

// ConnectionPool resolves an Address to its currently-live Sender.
type ConnectionPool = api.ConnectionPool

// Strategy is an immutable routing policy, compiled against a pool snapshot.
type Strategy = api.Strategy

// Single builds a leaf strategy targeting exactly one address.
func Single(addr Address) Strategy {
	return single.New(addr)
}

// Servers is sugar for a flat list of Single(addr) strategies, the shape
// every combinator's constructor accepts as its children.
func Servers(addrs ...Address) []Strategy {
	out := make([]Strategy, len(addrs))
	for i, addr := range addrs {
		out[i] = single.New(addr)
	}
	return out
}

// FirstAvailable routes every request to the first child that compiled.
func FirstAvailable(children ...Strategy) Strategy {
	return firstavailable.New(children...)
}

// RoundRobin routes requests to its children in strict rotation.
func RoundRobin(children ...Strategy) Strategy {
	return roundrobin.New(children...)
}

// Weighted pairs a sub-strategy with its selection weight for RandomSampled.
type Weighted = randomsampled.Weighted

// RandomSampledOption customizes a RandomSampled strategy.
type RandomSampledOption = randomsampled.Option

// WithSeed pins RandomSampled's pseudo-random source for deterministic tests.
func WithSeed(seed int64) RandomSampledOption {
	return randomsampled.WithSeed(seed)
}

// RandomSampled routes each request to one weighted child at random.
func RandomSampled(children []Weighted, opts ...RandomSampledOption) Strategy {
	return randomsampled.New(children, opts...)
}

// ShardFunc computes a shard index in [0, n) for a request.
type ShardFunc = sharding.ShardFunc

// ShardingOption customizes a Sharding strategy.
type ShardingOption = sharding.Option

// WithMinActiveSubStrategies gates Sharding's Compile on a minimum count of
// successfully-compiled children. FirstValidResult takes the same gate
// through WithFirstValidResultMinActive.
func WithMinActiveSubStrategies(n int) ShardingOption {
	return sharding.WithMinActiveSubStrategies(n)
}

// FNVShardFunc hashes keyFn(req) with FNV-1a, reduced mod n.
func FNVShardFunc(keyFn func(req *Request) string) ShardFunc {
	return sharding.FNVShardFunc(keyFn)
}

// Sharding indexes into its children by a caller-supplied shard function.
func Sharding(shardFn ShardFunc, children []Strategy, opts ...ShardingOption) Strategy {
	return sharding.New(shardFn, children, opts...)
}

// RendezvousHashFunc computes a request's hash key for HRW scoring.
type RendezvousHashFunc = rendezvous.HashFunc

// RendezvousBucketScoreFunc scores a bucket against a request's hash.
type RendezvousBucketScoreFunc = rendezvous.BucketScoreFunc

// RendezvousBucket pairs a bucket identity with its sub-strategy.
type RendezvousBucket = rendezvous.Bucket

// RendezvousHashing HRW-selects among named buckets. A nil hashFn or scoreFn
// uses the built-in blake2b-based defaults.
func RendezvousHashing(hashFn RendezvousHashFunc, scoreFn RendezvousBucketScoreFunc, buckets ...RendezvousBucket) Strategy {
	return rendezvous.New(hashFn, scoreFn, buckets...)
}

// TypeTag classifies a request for TypeDispatch.
type TypeTag = typedispatch.TypeTag

// TypeFunc classifies a request into a TypeTag.
type TypeFunc = typedispatch.TypeFunc

// TypeDispatchOption customizes a TypeDispatch strategy.
type TypeDispatchOption = typedispatch.Option

// TypeDispatchPolicy controls partial-mapping-failure tolerance.
type TypeDispatchPolicy = typedispatch.Policy

const (
	// TypeDispatchStrict requires every mapped sub-strategy to compile
	// unless a default strategy compiled.
	TypeDispatchStrict = typedispatch.PolicyStrict
	// TypeDispatchPartial tolerates individual mapping failures, falling
	// back to the default strategy.
	TypeDispatchPartial = typedispatch.PolicyPartial
)

// WithDefault sets TypeDispatch's fallback strategy for unmapped tags.
func WithDefault(s Strategy) TypeDispatchOption {
	return typedispatch.WithDefault(s)
}

// WithTypeDispatchPolicy sets TypeDispatch's partial-compile tolerance.
func WithTypeDispatchPolicy(p TypeDispatchPolicy) TypeDispatchOption {
	return typedispatch.WithPolicy(p)
}

// TypeDispatch routes by request classification into a tag→strategy mapping.
func TypeDispatch(typeFn TypeFunc, mapping map[TypeTag]Strategy, opts ...TypeDispatchOption) Strategy {
	return typedispatch.New(typeFn, mapping, opts...)
}

// ResultValidator reports whether a firstValidResult child's result wins.
type ResultValidator = firstvalidresult.ResultValidator

// FirstValidResultOption customizes a FirstValidResult strategy.
type FirstValidResultOption = firstvalidresult.Option

// WithResultValidator overrides FirstValidResult's default non-nil validator.
func WithResultValidator(v ResultValidator) FirstValidResultOption {
	return firstvalidresult.WithResultValidator(v)
}

// WithNoValidResultError sets the error FirstValidResult delivers when no
// child produces a valid result.
func WithNoValidResultError(err error) FirstValidResultOption {
	return firstvalidresult.WithNoValidResultError(err)
}

// WithFirstValidResultMinActive gates FirstValidResult's Compile on a
// minimum count of successfully-compiled children.
func WithFirstValidResultMinActive(n int) FirstValidResultOption {
	return firstvalidresult.WithMinActiveSubStrategies(n)
}

// FirstValidResult fans a request out to every compiled child concurrently
// and resolves with the first result the validator accepts.
func FirstValidResult(children []Strategy, opts ...FirstValidResultOption) Strategy {
	return firstvalidresult.New(children, opts...)
}
