// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package dictdecoder implements the sliding dictionary window shared by the
// DEFLATE and Brotli decoders. Both formats reference earlier output bytes by
// a (distance, length) pair measured from the end of the stream so far, and
// both need the same ring-buffer bookkeeping to serve those back-references
// while also handing finished bytes back to the reader in manageable chunks.
package dictdecoder

// Dict implements the LZ77 sliding dictionary as used in decompression.
// LZ77 decompresses data through sequences of two forms of commands:
//
//   - Literal insertions: Runs of one or more literals are inserted into the
//     data stream as is. This is accomplished through the WriteByte method
//     for a single literal, or combinations of WriteSlice/WriteMark for
//     repeated literals.
//
//   - Backward copies: Runs of one or more literals are copied from earlier
//     in the decompressed data stream. This is accomplished with the
//     WriteCopy method.
type Dict struct {
	hist []byte // Sliding window history
	wrPos int   // Current output position in buffer
	rdPos int   // Have emitted out[:rdPos] already
	full  bool  // Has a full window length been written yet?
}

// Init initializes Dict with a sliding window of the given size.
func (d *Dict) Init(size int) {
	*d = Dict{hist: d.hist}
	if cap(d.hist) < size {
		d.hist = make([]byte, size)
	}
	d.hist = d.hist[:size]
}

// HistSize reports the total amount of historical data in the dictionary.
func (d *Dict) HistSize() int {
	if d.full {
		return len(d.hist)
	}
	return d.wrPos
}

// AvailSize reports the available amount of output buffer space.
func (d *Dict) AvailSize() int {
	return len(d.hist) - d.wrPos
}

// WriteSlice returns a slice of the available buffer to write input into.
//
// This invariant will be kept: len(s) <= AvailSize()
func (d *Dict) WriteSlice() []byte {
	return d.hist[d.wrPos:]
}

// WriteMark advances the internal write pointer by cnt, which must be less
// than or equal to the length of the slice returned by WriteSlice.
func (d *Dict) WriteMark(cnt int) {
	d.wrPos += cnt
}

// WriteByte writes a single byte to the dictionary.
//
// This method is an alternative to WriteSlice/WriteMark for writing a single
// byte at a time.
func (d *Dict) WriteByte(b byte) {
	d.hist[d.wrPos] = b
	d.wrPos++
}

// WriteCopy copies a string at a given (dist, length) to the output and
// returns the number of bytes copied.
//
// This method is used for copying a string from output history in the
// backward direction, as dictated by the DEFLATE and Brotli formats.
func (d *Dict) WriteCopy(dist, length int) int {
	dstBase := d.wrPos
	dstEnd := dstBase + length
	srcBase := dstBase - dist
	if dstEnd > len(d.hist) {
		dstEnd = len(d.hist)
	}

	// Copy non-overlapping section before the overlap region, if any.
	if srcBase < 0 {
		srcBase += len(d.hist)
		cnt := copy(d.hist[dstBase:dstEnd], d.hist[srcBase:])
		srcBase = 0
		dstBase += cnt
		if dstBase >= dstEnd {
			d.wrPos = dstBase
			return cnt
		}
	}

	// Copy possibly overlapping section after the above.
	for dstBase < dstEnd {
		n := copy(d.hist[dstBase:dstEnd], d.hist[srcBase:dstBase])
		dstBase += n
		srcBase += n
	}

	cnt := dstEnd - d.wrPos
	d.wrPos = dstEnd
	return cnt
}

// ReadFlush returns a slice of the historical buffer that is ready to be
// emitted to the user. A call to ReadFlush is assumed to flush all data
// up to d.wrPos. When d.wrPos has reached the end of the window, it also
// wraps the write position to the start and records that the entire window
// has been written to at least once, which allows later reads to wrap all the
// way back around.
func (d *Dict) ReadFlush() []byte {
	toRead := d.hist[d.rdPos:d.wrPos]
	d.rdPos = d.wrPos
	if d.wrPos == len(d.hist) {
		d.wrPos, d.full = 0, true
		d.rdPos = 0
	}
	return toRead
}

// Byte reports the byte at the given logical distance before the current
// write position, without consuming it. Brotli uses it to read the two
// previous output bytes when deriving a literal's context ID.
func (d *Dict) Byte(dist int) byte {
	i := d.wrPos - dist
	if i < 0 {
		i += len(d.hist)
	}
	return d.hist[i]
}
