// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// Context modes select how the context ID for a literal is derived from the
// two preceding output bytes. RFC section 7.3 defines the numeric values.
const (
	contextLSB6 = iota
	contextMSB6
	contextUTF8
	contextSigned
)

// contextP1LUT and contextP2LUT give, per context mode, the contribution of
// the most-recent (p1) and second-most-recent (p2) output byte to the 6-bit
// context ID: ctx = contextP1LUT[mode][p1] | contextP2LUT[mode][p2]. LSB6
// and MSB6 only look at p1, so their p2 table is all zero. This keeps the
// four context modes behind one uniform lookup instead of a four-way
// branch.
var contextP1LUT, contextP2LUT [4][256]uint8

// mtfLUT is the identity permutation used to seed inverse move-to-front
// decoding of a context map.
var mtfLUT [256]uint8

func initContextLUTs() {
	for i := range mtfLUT {
		mtfLUT[i] = uint8(i)
	}
	for i := 0; i < 256; i++ {
		b := byte(i)
		contextP1LUT[contextLSB6][i] = b & 0x3f
		contextP1LUT[contextMSB6][i] = b >> 2

		class := utf8Class(b)
		contextP1LUT[contextUTF8][i] = class << 2
		contextP2LUT[contextUTF8][i] = class

		sc := signedClass(b)
		contextP1LUT[contextSigned][i] = sc << 3
		contextP2LUT[contextSigned][i] = sc
	}
}

// utf8Class buckets a byte into one of a small number of classes used to
// derive the combined (p1, p2) context ID for CONTEXT_UTF8 mode: control
// characters and space are distinguished from punctuation, digits, and
// upper/lower-case letters, and the continuation/lead bytes of a multi-byte
// UTF-8 sequence form their own class.
func utf8Class(b byte) uint8 {
	switch {
	case b == 0x20 || b == 0x0a || b == 0x0d || b == 0x09:
		return 0 // whitespace
	case b < 0x20:
		return 1 // control
	case b >= '0' && b <= '9':
		return 2 // digit
	case b >= 'a' && b <= 'z':
		return 3 // lowercase
	case b >= 'A' && b <= 'Z':
		return 4 // uppercase
	case b >= 0x80 && b < 0xc0:
		return 5 // UTF-8 continuation byte
	case b >= 0xc0:
		return 6 // UTF-8 lead byte
	default:
		return 7 // punctuation and everything else
	}
}

// signedClass maps a byte to a signed 3-bit class for CONTEXT_SIGNED mode:
// negative (high-bit set), zero, or positive, further split by magnitude.
func signedClass(b byte) uint8 {
	switch {
	case b == 0:
		return 0
	case b < 0x10:
		return 1
	case b < 0x40:
		return 2
	case b < 0x80:
		return 3
	case b < 0xc0:
		return 4
	case b < 0xf0:
		return 5
	case b < 0xfe:
		return 6
	default:
		return 7
	}
}

// literalContext derives the context ID (0..63) used to select a literal
// prefix tree from the context map, given the two preceding output bytes
// (p1 most recent, p2 the one before that) and the block type's context
// mode, per RFC section 7.3.
func literalContext(p1, p2 byte, mode uint8) uint8 {
	return contextP1LUT[mode][p1] | contextP2LUT[mode][p2]
}

// inverseMoveToFront undoes the move-to-front transform applied to a
// context map's byte sequence: maintain a 256-entry permutation seeded from
// identity, and for each input byte (itself an index into that permutation)
// emit the permuted value before moving it to the front.
func inverseMoveToFront(data []byte) []byte {
	var perm [256]byte
	copy(perm[:], mtfLUT[:])

	out := make([]byte, len(data))
	for i, b := range data {
		v := perm[b]
		out[i] = v
		copy(perm[1:int(b)+1], perm[0:int(b)])
		perm[0] = v
	}
	return out
}

// parseContextMap reads one context map of the given length according to
// RFC section 7.3: an optional run-length-escape prefix code over
// [1..RLEMAX] zero-run symbols plus the nTrees literal tree indices, and a
// trailing inverse-move-to-front bit.
func parseContextMap(br *bitReader, nTrees, length int) []byte {
	var rlemax int
	if br.ReadBits(1) == 1 {
		rlemax = int(br.ReadBits(4)) + 1
	}

	tree := readPrefixCode(br, rlemax+nTrees)
	out := make([]byte, 0, length)
	for len(out) < length {
		sym := int(br.ReadSymbol(&tree))
		if sym >= 1 && sym <= rlemax {
			rc := maxRLERanges[sym-1]
			run := int(rc.base) + int(br.ReadBits(uint(rc.bits)))
			for i := 0; i < run && len(out) < length; i++ {
				out = append(out, 0)
			}
			continue
		}
		tree := 0 // Symbol 0 is tree index 0
		if sym > rlemax {
			tree = sym - rlemax
		}
		out = append(out, byte(tree))
	}

	if br.ReadBits(1) == 1 {
		out = inverseMoveToFront(out)
	}
	return out
}
