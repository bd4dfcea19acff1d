// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "runtime"

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return string(e) }

var (
	ErrCorrupt = Error("brotli: stream is corrupted")

	// ErrUnsupported is returned for streams that use block-switch commands
	// (NBLTYPES >= 2 for any of the literal, insert-copy, or distance
	// categories). This decoder rejects them with a typed error rather than
	// attempt to decode them incorrectly.
	ErrUnsupported = Error("brotli: block-switch commands are not supported")

	// ErrExpectedEndOfStream is returned when trailing bytes follow the last
	// meta-block. The format is self-framing: once the stream's last
	// meta-block and its zero-padding are consumed, nothing else may follow.
	ErrExpectedEndOfStream = Error("brotli: expected end of stream")
)

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
