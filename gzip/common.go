// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package gzip implements reading of gzip-compressed streams (RFC 1952),
// the container format that frames a single DEFLATE (flate) stream with a
// header and a trailing CRC32/size pair.
package gzip

import "time"

const (
	idByte1       = 0x1f
	idByte2       = 0x8b
	methodDeflate = 8

	flagText     = 1 << 0
	flagHCRC     = 1 << 1
	flagExtra    = 1 << 2
	flagName     = 1 << 3
	flagComment  = 1 << 4
	flagReserved = 0xe0
)

// Header holds the gzip member header fields, mirroring the shape of the
// standard library's compress/gzip.Header.
type Header struct {
	Comment string
	Extra   []byte
	ModTime time.Time
	Name    string
	OS      byte
}
