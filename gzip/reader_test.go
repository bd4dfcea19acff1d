// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package gzip

import (
	"bytes"
	"encoding/hex"
	"io/ioutil"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestReader(t *testing.T) {
	// Each input is a complete gzip member: a header (with or without
	// optional fields), a raw (stored) empty DEFLATE block, and an 8-byte
	// trailer.
	var vectors = []struct {
		desc    string
		input   string
		output  string
		name    string
		comment string
		extra   string // hex
		hdrErr  error
		readErr error
	}{{
		desc:   "empty payload, correct trailer",
		input:  "1f8b08000000000000ff010000ffff0000000000000000",
		output: "",
	}, {
		desc:    "empty payload, wrong CRC32",
		input:   "1f8b08000000000000ff010000ffff0100000000000000",
		output:  "",
		readErr: ErrChecksum,
	}, {
		desc:   "bad magic bytes",
		input:  "0000",
		hdrErr: ErrHeader,
	}, {
		desc:  "FNAME field",
		input: "1f8b08080000000000ff68656c6c6f2e74787400010000ffff0000000000000000",
		name:  "hello.txt",
	}, {
		desc:    "FCOMMENT field",
		input:   "1f8b08100000000000ff686900010000ffff0000000000000000",
		comment: "hi",
	}, {
		desc:  "FEXTRA field",
		input: "1f8b08040000000000ff02006162010000ffff0000000000000000",
		extra: "6162",
	}, {
		desc:  "FHCRC field, correct checksum",
		input: "1f8b08020000000000ff90c9010000ffff0000000000000000",
	}, {
		desc:   "FHCRC field, wrong checksum",
		input:  "1f8b08020000000000ff9036010000ffff0000000000000000",
		hdrErr: ErrHeader,
	}}

	for i, v := range vectors {
		input, _ := hex.DecodeString(v.input)
		zr, err := NewReader(bytes.NewReader(input))
		if err != v.hdrErr {
			t.Errorf("test %d (%q): NewReader error = %v, want %v", i, v.desc, err, v.hdrErr)
			continue
		}
		if err != nil {
			continue
		}
		if zr.Name != v.name {
			t.Errorf("test %d (%q): Name = %q, want %q", i, v.desc, zr.Name, v.name)
		}
		if zr.Comment != v.comment {
			t.Errorf("test %d (%q): Comment = %q, want %q", i, v.desc, zr.Comment, v.comment)
		}
		if gotExtra := hex.EncodeToString(zr.Extra); gotExtra != v.extra {
			t.Errorf("test %d (%q): Extra = %v, want %v", i, v.desc, gotExtra, v.extra)
		}

		data, err := ioutil.ReadAll(zr)
		output := hex.EncodeToString(data)
		if v.readErr == nil {
			if err != nil {
				t.Errorf("test %d (%q): Read error = %v, want nil", i, v.desc, err)
			}
		} else if err != v.readErr {
			t.Errorf("test %d (%q): Read error = %v, want %v", i, v.desc, err, v.readErr)
		}
		if output != v.output {
			t.Errorf("test %d (%q):\ngot  %v\nwant %v", i, v.desc, output, v.output)
		}
	}
}

// TestHeaderFields checks that every optional header field is parsed into
// the right place on a single member that sets all of them at once, using
// cmp.Diff so a mismatch in any field is reported together.
func TestHeaderFields(t *testing.T) {
	input, _ := hex.DecodeString("1f8b081ed2029649000302007879612e747874006300f9a2010000ffff0000000000000000")
	zr, err := NewReader(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("NewReader error: %v", err)
	}

	want := Header{
		Name:    "a.txt",
		Comment: "c",
		Extra:   []byte("xy"),
		ModTime: time.Unix(1234567890, 0),
		OS:      3,
	}
	if diff := cmp.Diff(want, zr.Header); diff != "" {
		t.Errorf("Header mismatch (-want +got):\n%s", diff)
	}

	if _, err := ioutil.ReadAll(zr); err != nil {
		t.Errorf("Read error: %v", err)
	}
}
