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
)

// Status is the error type produced by this package: a Code plus an
// underlying cause.
type Status struct {
	code Code
	err  error
}

// New returns a *Status wrapping msg under code.
func New(code Code, msg string) *Status {
	return &Status{code: code, err: errors.New(msg)}
}

// Newf returns a *Status wrapping a formatted message under code.
func Newf(code Code, format string, args ...interface{}) *Status {
	return &Status{code: code, err: fmt.Errorf(format, args...)}
}

// Wrap returns a *Status that carries code and wraps an existing error,
// preserving it for errors.Unwrap/errors.Is/errors.As.
func Wrap(code Code, err error) *Status {
	if err == nil {
		return nil
	}
	return &Status{code: code, err: err}
}

// Code reports the failure kind.
func (s *Status) Code() Code {
	if s == nil {
		return CodeUnknown
	}
	return s.code
}

// Error satisfies the error interface.
func (s *Status) Error() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", s.code, s.err)
}

// Unwrap supports errors.Unwrap/Is/As against the wrapped cause.
func (s *Status) Unwrap() error {
	if s == nil {
		return nil
	}
	return s.err
}

// statusError is implemented by any error able to describe itself as a
// *Status, the same indirection yarpcerrors uses so wrapped errors still
// resolve via FromError.
type statusError interface {
	RPCStatus() *Status
}

// RPCStatus lets *Status itself satisfy statusError.
func (s *Status) RPCStatus() *Status {
	return s
}

// FromError extracts the *Status describing err, if any. Returns ok=false
// for a nil error or one without Status information anywhere in its chain.
func FromError(err error) (st *Status, ok bool) {
	if err == nil {
		return nil, false
	}
	var se statusError
	if errors.As(err, &se) {
		return se.RPCStatus(), true
	}
	return nil, false
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	st, ok := FromError(err)
	return ok && st.Code() == code
}
