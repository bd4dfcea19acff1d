// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package brotli implements the Brotli compressed data format.
package brotli

var reverseLUT [256]uint8

func initLUTs() {
	initCommonLUTs()
	initContextLUTs()
	initDictLUTs()
	initPrefixLUTs()
}

func initCommonLUTs() {
	for i := range reverseLUT {
		b := uint8(i)
		b = (b&0xaa)>>1 | (b&0x55)<<1
		b = (b&0xcc)>>2 | (b&0x33)<<2
		b = (b&0xf0)>>4 | (b&0x0f)<<4
		reverseLUT[i] = b
	}
}

// reverseUint16 reverses all 16 bits of v.
func reverseUint16(v uint16) (x uint16) {
	x |= uint16(reverseLUT[byte(v>>0)]) << 8
	x |= uint16(reverseLUT[byte(v>>8)]) << 0
	return x
}

// reverseBits reverses the lower n bits of v.
func reverseBits(v uint16, n uint) uint16 {
	return reverseUint16(v << (16 - n))
}

func init() { initLUTs() }
