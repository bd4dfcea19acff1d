// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package gzip

import (
	"bufio"
	"hash"
	"hash/crc32"
	"io"
	"time"

	"github.com/streamzip/decomp/flate"
)

// hdrReader wraps a bufio.Reader, accumulating a running CRC-32 of every
// byte read so that an FHCRC trailer (if present) can be verified.
type hdrReader struct {
	r   *bufio.Reader
	crc hash.Hash32
}

func (hr *hdrReader) readByte() byte {
	b, err := hr.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		panic(err)
	}
	hr.crc.Write([]byte{b})
	return b
}

func (hr *hdrReader) readFull(p []byte) {
	if _, err := io.ReadFull(hr.r, p); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		panic(err)
	}
	hr.crc.Write(p)
}

func (hr *hdrReader) readUint16() uint16 {
	var buf [2]byte
	hr.readFull(buf[:])
	return uint16(buf[0]) | uint16(buf[1])<<8
}

func (hr *hdrReader) readUint32() uint32 {
	var buf [4]byte
	hr.readFull(buf[:])
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
}

// readCString reads a NUL-terminated, latin-1 string (RFC 1952 section
// 2.3.1's FNAME/FCOMMENT encoding) and returns it without the terminator.
func (hr *hdrReader) readCString() string {
	var bs []byte
	for {
		b := hr.readByte()
		if b == 0 {
			return string(bs)
		}
		bs = append(bs, b)
	}
}

// Reader decompresses a single gzip member (RFC 1952), wrapping a
// flate.Reader for the compressed payload and verifying the trailing
// CRC-32/ISIZE pair once the payload is exhausted.
type Reader struct {
	Header

	r   *bufio.Reader
	fr  *flate.Reader
	crc hash.Hash32
	n   uint32 // count of decompressed bytes so far, mod 2^32
	err error
}

// NewReader parses a gzip header from r and returns a Reader ready to
// decompress the member's payload. The parsed header fields are available
// on the returned Reader's embedded Header.
func NewReader(r io.Reader) (z *Reader, err error) {
	defer errRecover(&err)

	z = &Reader{r: bufio.NewReader(r)}
	hr := &hdrReader{r: z.r, crc: crc32.NewIEEE()}

	if hr.readByte() != idByte1 || hr.readByte() != idByte2 {
		panic(ErrHeader)
	}
	if hr.readByte() != methodDeflate {
		panic(ErrHeader)
	}

	flg := hr.readByte()
	if flg&flagReserved != 0 {
		panic(ErrHeader)
	}

	if mtime := hr.readUint32(); mtime != 0 {
		z.ModTime = time.Unix(int64(mtime), 0)
	}
	hr.readByte() // XFL: extra flags, not exposed
	os := hr.readByte()
	if os > 13 && os < 255 {
		panic(ErrHeader)
	}
	z.OS = os

	if flg&flagExtra != 0 {
		xlen := hr.readUint16()
		extra := make([]byte, xlen)
		hr.readFull(extra)
		z.Extra = extra
	}
	if flg&flagName != 0 {
		z.Name = hr.readCString()
	}
	if flg&flagComment != 0 {
		z.Comment = hr.readCString()
	}
	if flg&flagHCRC != 0 {
		// The CRC16 covers every header byte before this field, so the
		// running hash must be sampled before reading it.
		gotHCRC := uint16(hr.crc.Sum32())
		if wantHCRC := hr.readUint16(); wantHCRC != gotHCRC {
			panic(ErrHeader)
		}
	}

	z.fr = flate.NewReader(z.r)
	z.crc = crc32.NewIEEE()
	return z, nil
}

func (z *Reader) Read(buf []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}

	n, err := z.fr.Read(buf)
	if n > 0 {
		z.crc.Write(buf[:n])
		z.n += uint32(n)
	}
	if err == nil {
		return n, nil
	}
	if err != io.EOF {
		z.err = err
		return n, err
	}

	func() {
		defer errRecover(&z.err)
		z.readTrailer()
	}()
	if z.err == nil {
		z.err = io.EOF
	}
	return n, z.err
}

// readTrailer verifies the 8-byte CRC32/ISIZE trailer that RFC 1952 section
// 2.3.1 requires following the compressed payload.
func (z *Reader) readTrailer() {
	var buf [8]byte
	if _, err := io.ReadFull(z.r, buf[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		panic(err)
	}
	wantCRC := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	wantSize := uint32(buf[4]) | uint32(buf[5])<<8 | uint32(buf[6])<<16 | uint32(buf[7])<<24
	if wantCRC != z.crc.Sum32() {
		panic(ErrChecksum)
	}
	if wantSize != z.n {
		panic(ErrChecksum)
	}
}

func (z *Reader) Close() error {
	return z.fr.Close()
}
