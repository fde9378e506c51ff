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

package rpcstrategy

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpcdispatch/rpcdispatch/api/apitest"
)

func TestServersBuildsOneSingleStrategyPerAddress(t *testing.T) {
	addrs := Servers("A1", "A2", "A3")
	require.Len(t, addrs, 3)
	for i, addr := range []Address{"A1", "A2", "A3"} {
		assert.Contains(t, addrs[i].Addresses(), addr)
	}
}

func TestRoundRobinFacadeDistributesEvenly(t *testing.T) {
	pool := apitest.NewFakePool()
	s1 := apitest.NewRecordingSender("1", nil)
	s2 := apitest.NewRecordingSender("2", nil)
	pool.Put("A1", s1)
	pool.Put("A2", s2)

	rr := RoundRobin(Servers("A1", "A2")...)
	sender, err := rr.Compile(pool)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		sender.SendRequest(context.Background(), &Request{}, 0, func(any, error) {})
	}
	assert.EqualValues(t, 5, s1.Requests())
	assert.EqualValues(t, 5, s2.Requests())
}

func TestTypeDispatchFacadeRoutesByTag(t *testing.T) {
	pool := apitest.NewFakePool()
	pool.Put("reads", apitest.NewRecordingSender("r", nil))
	pool.Put("writes", apitest.NewRecordingSender("w", nil))

	td := TypeDispatch(func(req *Request) TypeTag { return TypeTag(req.Procedure) },
		map[TypeTag]Strategy{
			"Get": Single("reads"),
			"Set": Single("writes"),
		})
	sender, err := td.Compile(pool)
	require.NoError(t, err)

	var got any
	sender.SendRequest(context.Background(), &Request{Procedure: "Get"}, 0, func(result any, err error) { got = result })
	assert.Equal(t, "r", got)
}

func TestFirstValidResultFacadeFansOutAndFiresOnce(t *testing.T) {
	pool := apitest.NewFakePool()
	pool.Put("A1", apitest.NewRecordingSender(nil, nil))
	pool.Put("A2", apitest.NewRecordingSender("ok", nil))

	f := FirstValidResult(Servers("A1", "A2"))
	sender, err := f.Compile(pool)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	var got any
	sender.SendRequest(context.Background(), &Request{}, 0, func(result any, err error) {
		got = result
		wg.Done()
	})
	wg.Wait()
	assert.Equal(t, "ok", got)
}

func TestRendezvousHashingFacadeDefaultsToBlake2b(t *testing.T) {
	pool := apitest.NewFakePool()
	pool.Put("A1", apitest.NewRecordingSender("1", nil))
	pool.Put("A2", apitest.NewRecordingSender("2", nil))

	r := RendezvousHashing(nil, nil,
		RendezvousBucket{ID: "A1", Strategy: Single("A1")},
		RendezvousBucket{ID: "A2", Strategy: Single("A2")},
	)
	sender, err := r.Compile(pool)
	require.NoError(t, err)

	var first any
	sender.SendRequest(context.Background(), &Request{ShardKey: "k"}, 0, func(result any, err error) { first = result })
	for i := 0; i < 5; i++ {
		var got any
		sender.SendRequest(context.Background(), &Request{ShardKey: "k"}, 0, func(result any, err error) { got = result })
		assert.Equal(t, first, got)
	}
}

func TestShardingFacadeWithFNVShardFunc(t *testing.T) {
	pool := apitest.NewFakePool()
	pool.Put("A1", apitest.NewRecordingSender("1", nil))
	pool.Put("A2", apitest.NewRecordingSender("2", nil))

	sh := Sharding(
		FNVShardFunc(func(req *Request) string { return req.ShardKey }),
		Servers("A1", "A2"),
	)
	sender, err := sh.Compile(pool)
	require.NoError(t, err)

	var first any
	sender.SendRequest(context.Background(), &Request{ShardKey: "order-1"}, 0, func(result any, err error) { first = result })
	for i := 0; i < 3; i++ {
		var got any
		sender.SendRequest(context.Background(), &Request{ShardKey: "order-1"}, 0, func(result any, err error) { got = result })
		assert.Equal(t, first, got)
	}
}
