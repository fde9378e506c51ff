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

package rpcerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndCode(t *testing.T) {
	st := New(CodeNoSenderAvailable, "no live connection")
	assert.Equal(t, CodeNoSenderAvailable, st.Code())
	assert.Contains(t, st.Error(), "no-sender-available")
	assert.Contains(t, st.Error(), "no live connection")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	st := Wrap(CodeConnectionClosed, cause)
	require.NotNil(t, st)
	assert.Same(t, cause, st.Unwrap())
	assert.True(t, errors.Is(st, cause))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(CodeConnectionClosed, nil))
}

func TestFromErrorRoundTrips(t *testing.T) {
	st := Newf(CodeRequestTimeout, "timed out after %dms", 50)
	wrapped := fmt.Errorf("sendRequest failed: %w", st)

	got, ok := FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeRequestTimeout, got.Code())
}

func TestFromErrorNotAStatus(t *testing.T) {
	_, ok := FromError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = FromError(nil)
	assert.False(t, ok)
}

func TestIs(t *testing.T) {
	st := New(CodeNoValidResult, "none of the children validated")
	assert.True(t, Is(st, CodeNoValidResult))
	assert.False(t, Is(st, CodeConnectionClosed))
}

func TestCodeStringUnknown(t *testing.T) {
	assert.Equal(t, "unknown-code(99)", Code(99).String())
}
