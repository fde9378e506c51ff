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

// Package rendezvous implements the rendezvousHashing combinator: highest
// random weight (HRW) selection among the buckets whose sub-strategy
// compiled, so that removing one bucket reshuffles only the requests that
// were mapped to it.
package rendezvous

import (
	"context"
	"encoding/binary"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/crypto/blake2b"

	"github.com/rpcdispatch/rpcdispatch/api"
	"github.com/rpcdispatch/rpcdispatch/rpcerrors"
)

// HashFunc computes a request's hash key for scoring against buckets.
type HashFunc func(req *api.Request) uint64

// BucketScoreFunc scores a bucket against a request's hash. The bucket with
// the highest score wins; ties go to the lower BucketID.
type BucketScoreFunc func(bucketID string, requestHash uint64) uint64

// DefaultHashFunc hashes Request.ShardKey with blake2b, matching the HRW
// construction used elsewhere in the pack for consistent-hash-style
// sharding (codewandler-clstr-go's internal/hrw and core/cluster/shard.go).
func DefaultHashFunc(req *api.Request) uint64 {
	return blake2bScore([]byte(req.ShardKey), "")
}

// DefaultBucketScoreFunc scores a bucket by hashing (bucketID, requestHash)
// together with blake2b, the same construction DefaultHashFunc uses.
func DefaultBucketScoreFunc(bucketID string, requestHash uint64) uint64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], requestHash)
	return blake2bScore(buf[:], bucketID)
}

func blake2bScore(key []byte, bucketID string) uint64 {
	h, _ := blake2b.New(8, nil)
	h.Write(key)
	h.Write([]byte{0})
	h.Write([]byte(bucketID))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum)
}

// Bucket pairs a bucket identity with its sub-strategy.
type Bucket struct {
	ID       string
	Strategy api.Strategy
}

// RendezvousHashing is a Strategy that HRW-selects among named buckets.
type RendezvousHashing struct {
	hashFn  HashFunc
	scoreFn BucketScoreFunc
	buckets []Bucket
}

var _ api.Strategy = (*RendezvousHashing)(nil)

// New builds a RendezvousHashing strategy. A nil hashFn/scoreFn defaults to
// DefaultHashFunc/DefaultBucketScoreFunc.
func New(hashFn HashFunc, scoreFn BucketScoreFunc, buckets ...Bucket) *RendezvousHashing {
	if hashFn == nil {
		hashFn = DefaultHashFunc
	}
	if scoreFn == nil {
		scoreFn = DefaultBucketScoreFunc
	}
	return &RendezvousHashing{hashFn: hashFn, scoreFn: scoreFn, buckets: buckets}
}

// Addresses returns the union of every bucket's addresses.
func (r *RendezvousHashing) Addresses() api.AddressSet {
	set := make(api.AddressSet)
	for _, b := range r.buckets {
		set.Union(b.Strategy.Addresses())
	}
	return set
}

// Compile compiles every bucket's sub-strategy. Unavailable iff none
// compiled.
func (r *RendezvousHashing) Compile(pool api.ConnectionPool) (api.Sender, error) {
	type compiledBucket struct {
		id     string
		sender api.Sender
	}
	available := make([]compiledBucket, 0, len(r.buckets))
	var aggregate error
	for _, b := range r.buckets {
		sender, err := b.Strategy.Compile(pool)
		if err != nil {
			aggregate = multierr.Append(aggregate, err)
			continue
		}
		available = append(available, compiledBucket{id: b.id(), sender: sender})
	}
	if len(available) == 0 {
		if aggregate == nil {
			aggregate = rpcerrors.New(rpcerrors.CodeCompileUnavailable, "rendezvousHashing: no buckets configured")
		}
		return nil, rpcerrors.Wrap(rpcerrors.CodeCompileUnavailable, aggregate)
	}

	ids := make([]string, len(available))
	senders := make([]api.Sender, len(available))
	for i, b := range available {
		ids[i] = b.id
		senders[i] = b.sender
	}
	return &hrwSender{hashFn: r.hashFn, scoreFn: r.scoreFn, bucketIDs: ids, senders: senders}, nil
}

func (b Bucket) id() string { return b.ID }

type hrwSender struct {
	hashFn    HashFunc
	scoreFn   BucketScoreFunc
	bucketIDs []string
	senders   []api.Sender
}

var _ api.Sender = (*hrwSender)(nil)

// SendRequest scores every live bucket for this request's hash and picks
// the highest, breaking ties by the lexicographically lower bucket ID.
func (h *hrwSender) SendRequest(ctx context.Context, req *api.Request, timeout time.Duration, cb api.Callback) {
	reqHash := h.hashFn(req)

	bestIdx := 0
	bestScore := h.scoreFn(h.bucketIDs[0], reqHash)
	for i := 1; i < len(h.bucketIDs); i++ {
		score := h.scoreFn(h.bucketIDs[i], reqHash)
		if score > bestScore || (score == bestScore && h.bucketIDs[i] < h.bucketIDs[bestIdx]) {
			bestScore = score
			bestIdx = i
		}
	}
	h.senders[bestIdx].SendRequest(ctx, req, timeout, cb)
}
