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

package rendezvous

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpcdispatch/rpcdispatch/api"
	"github.com/rpcdispatch/rpcdispatch/api/apitest"
	"github.com/rpcdispatch/rpcdispatch/strategy/single"
)

func send(t *testing.T, sender api.Sender, key string) any {
	t.Helper()
	var got any
	sender.SendRequest(context.Background(), &api.Request{ShardKey: key}, 0, func(result any, err error) {
		require.NoError(t, err)
		got = result
	})
	return got
}

func TestSameKeyAlwaysPicksSameBucket(t *testing.T) {
	pool := apitest.NewFakePool()
	pool.Put("A0", apitest.NewRecordingSender("A0", nil))
	pool.Put("A1", apitest.NewRecordingSender("A1", nil))
	pool.Put("A2", apitest.NewRecordingSender("A2", nil))

	r := New(nil, nil,
		Bucket{ID: "A0", Strategy: single.New("A0")},
		Bucket{ID: "A1", Strategy: single.New("A1")},
		Bucket{ID: "A2", Strategy: single.New("A2")},
	)
	sender, err := r.Compile(pool)
	require.NoError(t, err)

	first := send(t, sender, "order-99")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, send(t, sender, "order-99"))
	}
}

func TestRemovingABucketOnlyReshufflesItsOwnRequests(t *testing.T) {
	pool := apitest.NewFakePool()
	pool.Put("A0", apitest.NewRecordingSender("A0", nil))
	pool.Put("A1", apitest.NewRecordingSender("A1", nil))
	pool.Put("A2", apitest.NewRecordingSender("A2", nil))

	buckets := []Bucket{
		{ID: "A0", Strategy: single.New("A0")},
		{ID: "A1", Strategy: single.New("A1")},
		{ID: "A2", Strategy: single.New("A2")},
	}
	full := New(nil, nil, buckets...)
	fullSender, err := full.Compile(pool)
	require.NoError(t, err)

	keys := make([]string, 200)
	before := make([]any, 200)
	for i := range keys {
		keys[i] = string(rune('a'+i%26)) + string(rune('A'+(i*7)%26)) + string(rune('0'+i%10))
		before[i] = send(t, fullSender, keys[i])
	}

	// Remove the bucket reached by the first key and recompile with only
	// the remaining two buckets.
	removed := before[0]
	survivors := make([]Bucket, 0, 2)
	for _, b := range buckets {
		if any(b.ID) == removed {
			continue
		}
		survivors = append(survivors, b)
	}
	partial := New(nil, nil, survivors...)
	partialSender, err := partial.Compile(pool)
	require.NoError(t, err)

	reshuffled, unchanged := 0, 0
	for i, k := range keys {
		if before[i] == removed {
			continue
		}
		after := send(t, partialSender, k)
		if after == before[i] {
			unchanged++
		} else {
			reshuffled++
		}
	}
	assert.Zero(t, reshuffled, "requests not mapped to the removed bucket must stay put")
	assert.NotZero(t, unchanged)
}

func TestCompileUnavailableWhenNoBucketCompiles(t *testing.T) {
	pool := apitest.NewFakePool()
	r := New(nil, nil, Bucket{ID: "A0", Strategy: single.New("A0")})
	sender, err := r.Compile(pool)
	assert.Nil(t, sender)
	require.Error(t, err)
}

func TestDefaultBucketScoreFuncDeterministic(t *testing.T) {
	a := DefaultBucketScoreFunc("bucket-1", 42)
	b := DefaultBucketScoreFunc("bucket-1", 42)
	assert.Equal(t, a, b)

	c := DefaultBucketScoreFunc("bucket-2", 42)
	assert.NotEqual(t, a, c)
}
