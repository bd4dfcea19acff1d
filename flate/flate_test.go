// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"bytes"
	"io"
	"io/ioutil"
	"testing"

	// The round-trip test is deliberately driven off of the standard
	// library's encoder so that this decoder is exercised against an
	// independent implementation rather than its own bit writer.
	"compress/flate"

	"github.com/streamzip/decomp/internal/testutil"
)

const (
	binary  = "../testdata/binary.bin"
	digits  = "../testdata/digits.txt"
	huffman = "../testdata/huffman.txt"
	random  = "../testdata/random.bin"
	repeats = "../testdata/repeats.bin"
	twain   = "../testdata/twain.txt"
	zeros   = "../testdata/zeros.bin"
)

func TestRoundTrip(t *testing.T) {
	var vectors = []struct {
		input []byte
	}{
		{input: testutil.MustLoadFile(binary, -1)},
		{input: testutil.MustLoadFile(digits, -1)},
		{input: testutil.MustLoadFile(huffman, -1)},
		{input: testutil.MustLoadFile(random, -1)},
		{input: testutil.MustLoadFile(repeats, -1)},
		{input: testutil.MustLoadFile(twain, -1)},
		{input: testutil.MustLoadFile(zeros, -1)},
	}

	for i, v := range vectors {
		var buf bytes.Buffer
		wr, _ := flate.NewWriter(&buf, flate.DefaultCompression)
		cnt, err := io.Copy(wr, bytes.NewReader(v.input))
		if err != nil {
			t.Errorf("test %d, write error: got %v", i, err)
		}
		if cnt != int64(len(v.input)) {
			t.Errorf("test %d, write count mismatch: got %d, want %d", i, cnt, len(v.input))
		}
		if err := wr.Close(); err != nil {
			t.Errorf("test %d, close error: got %v", i, err)
		}

		// Write a canary byte to ensure this does not get read.
		buf.WriteByte(0x7a)

		rd := NewReader(&buf)
		output, err := ioutil.ReadAll(rd)
		if err != nil {
			t.Errorf("test %d, read error: got %v", i, err)
		}
		if !bytes.Equal(output, v.input) {
			t.Errorf("test %d, output data mismatch", i)
		}

		// Read back the canary byte.
		if v, _ := buf.ReadByte(); v != 0x7a {
			t.Errorf("Read consumed more data than necessary")
		}
	}
}

func TestRawBlock(t *testing.T) {
	// "1" final bit, "00" raw block type, zero padding to the byte boundary
	// LEN = 5, NLEN = ^LEN, then 5 literal bytes
	in := testutil.MustDecodeBitGen(`<<<
		< 1 00 0*5
		X:0500faff
		X:68656c6c6f
	`)
	rd := NewReader(bytes.NewReader(in))
	out, err := ioutil.ReadAll(rd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "hello" {
		t.Errorf("output mismatch: got %q, want %q", out, "hello")
	}
}
