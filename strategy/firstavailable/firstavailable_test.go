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

package firstavailable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpcdispatch/rpcdispatch/api"
	"github.com/rpcdispatch/rpcdispatch/api/apitest"
	"github.com/rpcdispatch/rpcdispatch/strategy/single"
)

func TestCompileSkipsUnavailableChildren(t *testing.T) {
	pool := apitest.NewFakePool()
	s2 := apitest.NewRecordingSender("from-2", nil)
	pool.Put("A2", s2)

	f := New(single.New("A1"), single.New("A2"), single.New("A3"))
	sender, err := f.Compile(pool)
	require.NoError(t, err)

	var gotResult any
	sender.SendRequest(context.Background(), &api.Request{}, 0, func(result any, err error) {
		gotResult = result
	})
	assert.Equal(t, "from-2", gotResult)
	assert.EqualValues(t, 1, s2.Requests())
}

func TestCompileUnavailableWhenNoChildCompiles(t *testing.T) {
	pool := apitest.NewFakePool()
	f := New(single.New("A1"), single.New("A2"))
	sender, err := f.Compile(pool)
	assert.Nil(t, sender)
	require.Error(t, err)
}

func TestCompileUnavailableWithNoChildren(t *testing.T) {
	pool := apitest.NewFakePool()
	f := New()
	sender, err := f.Compile(pool)
	assert.Nil(t, sender)
	require.Error(t, err)
}

func TestFailureIsNotRetried(t *testing.T) {
	pool := apitest.NewFakePool()
	failing := apitest.NewRecordingSender(nil, assert.AnError)
	pool.Put("A1", failing)
	backup := apitest.NewRecordingSender("from-backup", nil)
	pool.Put("A2", backup)

	f := New(single.New("A1"), single.New("A2"))
	sender, err := f.Compile(pool)
	require.NoError(t, err)

	var gotErr error
	sender.SendRequest(context.Background(), &api.Request{}, 0, func(result any, err error) {
		gotErr = err
	})
	assert.Equal(t, assert.AnError, gotErr)
	assert.EqualValues(t, 0, backup.Requests(), "firstAvailable must not fall back mid-request")
}
