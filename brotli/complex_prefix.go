// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// ceilLog2 returns the number of bits needed to represent values in [0, n).
func ceilLog2(n uint) uint {
	var b uint
	for (1 << b) < n {
		b++
	}
	return b
}

// readPrefixCode reads one prefix code definition for an alphabet of the
// given size, per RFC section 3.2: HSKIP selects between the simple and
// complex encodings.
func readPrefixCode(br *bitReader, numSyms int) (pd prefixDecoder) {
	hskip := br.ReadBits(2)
	if hskip == 1 {
		readSimplePrefixCode(br, numSyms, &pd)
	} else {
		readComplexPrefixCode(br, numSyms, hskip, &pd)
	}
	return pd
}

// readSimplePrefixCode reads a prefix code for up to 4 symbols, each encoded
// directly as a ceilLog2(numSyms)-bit literal value, per RFC section 3.4.
func readSimplePrefixCode(br *bitReader, numSyms int, pd *prefixDecoder) {
	nsym := int(br.ReadBits(2)) + 1
	symBits := ceilLog2(uint(numSyms))

	syms := make([]uint16, nsym)
	for i := range syms {
		syms[i] = uint16(br.ReadBits(symBits))
	}

	var lens []uint
	switch nsym {
	case 1:
		lens = simpleLens1[:]
	case 2:
		lens = simpleLens2[:]
	case 3:
		lens = simpleLens3[:]
	case 4:
		if br.ReadBits(1) == 1 {
			lens = simpleLens4b[:]
		} else {
			lens = simpleLens4a[:]
		}
	}

	codes := make(prefixCodes, nsym)
	for i, s := range syms {
		codes[i] = prefixCode{sym: s, len: uint8(lens[i])}
	}
	sortPrefixCodesBySymbol(codes)
	pd.Init(codes, true)
}

// readComplexPrefixCode reads a prefix code whose own code lengths are
// themselves prefix-coded, per RFC section 3.5: first the lengths of the
// 18-symbol code-length alphabet (skipping the first hskip entries of the
// fixed reorder sequence), then the alphabet's num_syms lengths using that
// code, with symbols 16 and 17 signaling run-length repeats.
func readComplexPrefixCode(br *bitReader, numSyms int, hskip uint, pd *prefixDecoder) {
	var clens [18]uint
	space := 32
	numCodes := 0
	for i := hskip; i < 18 && space > 0; i++ {
		sym := complexLens[i]
		clen := br.ReadSymbol(&decCLens)
		clens[sym] = clen
		if clen != 0 {
			space -= 32 >> clen
			numCodes++
		}
	}

	var codes prefixCodes
	for sym, clen := range clens {
		if clen != 0 {
			codes = append(codes, prefixCode{sym: uint16(sym), len: uint8(clen)})
		}
	}
	if numCodes == 1 {
		// A tree with one non-zero length is degenerate; the single
		// symbol always decodes, no bits consumed.
		codes[0].len = 0
	}

	var clTree prefixDecoder
	sortPrefixCodesBySymbol(codes)
	clTree.Init(codes, true)

	lens := make([]uint, numSyms)
	var sym int
	var prevLen uint = 8
	var repeat, repeatLen uint
	for sym < numSyms {
		clen := br.ReadSymbol(&clTree)
		if clen < 16 {
			repeat = 0
			lens[sym] = clen
			sym++
			if clen != 0 {
				prevLen = clen
			}
			continue
		}

		extra := uint(2)
		newLen := prevLen
		if clen == 17 {
			extra = 3
			newLen = 0
		}
		if repeatLen != clen {
			repeat = 0
			repeatLen = clen
		}
		oldRepeat := repeat
		if repeat > 0 {
			repeat -= 2
			repeat <<= extra
		}
		repeat += br.ReadBits(extra) + 3
		runLen := repeat - oldRepeat
		if sym+int(runLen) > numSyms {
			panic(ErrCorrupt)
		}
		for j := uint(0); j < runLen; j++ {
			lens[sym] = newLen
			sym++
		}
	}

	codes = codes[:0]
	for s, l := range lens {
		if l != 0 {
			codes = append(codes, prefixCode{sym: uint16(s), len: uint8(l)})
		}
	}
	pd.Init(codes, true)
}

// sortPrefixCodesBySymbol sorts codes ascending by symbol, a precondition
// prefixDecoder.Init requires of its input.
func sortPrefixCodesBySymbol(codes prefixCodes) {
	for i := 1; i < len(codes); i++ {
		for j := i; j > 0 && codes[j-1].sym > codes[j].sym; j-- {
			codes[j-1], codes[j] = codes[j], codes[j-1]
		}
	}
}

// Per RFC section 5: the 704-symbol insert-and-copy alphabet packs an
// insert-length code and a copy-length code (each an index into
// insLenRanges/cpyLenRanges) into a single symbol. Row-major decomposition:
// each of the 11 rows of 64 codes adds a fixed (insert, copy) base offset to
// a 3-bit insert nibble and 3-bit copy nibble carried in the low 6 bits.
var cmdInsertRowBase = [11]uint{0, 0, 8, 8, 0, 16, 8, 16, 16, 0, 8}
var cmdCopyRowBase = [11]uint{0, 8, 0, 8, 16, 0, 16, 8, 16, 16, 0}

// decodeCmdSymbol splits a combined insert-and-copy symbol into its insert
// length code and copy length code.
func decodeCmdSymbol(cmd uint) (insCode, cpyCode uint) {
	row := cmd >> 6
	col := cmd & 0x3f
	insCode = cmdInsertRowBase[row] + (col >> 3)
	cpyCode = cmdCopyRowBase[row] + (col & 7)
	return insCode, cpyCode
}

// distAlphabetSize returns the number of symbols in the distance alphabet
// given the stream's NPOSTFIX and NDIRECT parameters, per RFC section 4 (the
// "16 + NDIRECT + (48 << NPOSTFIX)" form).
func distAlphabetSize(npostfix, ndirect uint) int {
	return 16 + int(ndirect) + (48 << npostfix)
}
