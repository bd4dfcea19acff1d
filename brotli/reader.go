// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import (
	"io"

	"github.com/streamzip/decomp/internal/dictdecoder"
	"github.com/streamzip/decomp/internal/ringbuffer"
)

// Per-call sub-states for readBlockData's resumable command loop.
const (
	dataStateCmd = iota
	dataStateInsert
	dataStateCopy
)

type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd     bitReader // Input source
	step   func()    // Single step of decompression work (can panic)
	blkLen int       // Uncompressed bytes left to read in meta-block
	wsize  int       // Sliding window size
	toRead []byte    // Uncompressed data ready to be emitted from Read
	last   bool      // Last block bit detected
	err    error     // Persistent error

	dict     dictdecoder.Dict // Sliding output window
	distRing *ringbuffer.Ring // Ring of the 4 most recently used distances

	// Meta-block header state. Block-switch commands (NBLTYPES >= 2 for any
	// of the literal/insert-copy/distance categories) are rejected with
	// ErrUnsupported; see error.go.
	npostfix    uint
	ndirect     uint
	litCtxMode  uint8
	litCtxMap   []byte // 64 entries: literal context ID -> tree index
	distCtxMap  []byte // 4 entries: distance context ID -> tree index
	litTrees    []prefixDecoder
	cmdTree     prefixDecoder
	distTrees   []prefixDecoder

	// Resumable per-command decode state.
	stepState    int
	insLeft      int
	cpyLeft      int
	dist         int
	implicitDist bool // Command's insert-and-copy symbol was < 128: reuse ring.Nth(0)
}

func NewReader(r io.Reader) *Reader {
	br := new(Reader)
	br.Reset(r)
	return br
}

func (br *Reader) Read(buf []byte) (int, error) {
	for {
		if len(br.toRead) > 0 {
			cnt := copy(buf, br.toRead)
			br.toRead = br.toRead[cnt:]
			br.OutputOffset += int64(cnt)
			return cnt, nil
		}
		if br.err != nil {
			return 0, br.err
		}

		// Perform next step in decompression process.
		func() {
			defer errRecover(&br.err)
			br.step()
		}()
		br.InputOffset = br.rd.offset
		if br.err != nil {
			br.toRead = br.dict.ReadFlush() // Flush what's left in case of error
		}
	}
}

func (br *Reader) Close() error {
	if br.err == io.EOF || br.err == io.ErrClosedPipe {
		return nil
	}
	err := br.err
	br.err = io.ErrClosedPipe
	return err
}

func (br *Reader) Reset(r io.Reader) error {
	*br = Reader{
		step: br.readStreamHeader,
		dict: br.dict,
	}
	br.rd.Init(r)
	return nil
}

// readStreamHeader reads the Brotli stream header according to RFC section 9.1.
func (br *Reader) readStreamHeader() {
	wbits := br.rd.ReadSymbol(&decWinBits)
	if wbits == 0 {
		panic(ErrCorrupt) // Invalid code "1000100"
	}

	// The sliding window is allocated at the full size the header declares.
	br.wsize = (1 << wbits) - 16
	br.dict.Init(br.wsize)
	br.distRing = ringbuffer.New([]int{4, 11, 15, 16})
	br.step = br.readBlockHeader
}

// readBlockHeader reads a meta-block header according to RFC section 9.2.
func (br *Reader) readBlockHeader() {
	if br.last {
		if br.rd.ReadPads() > 0 {
			panic(ErrCorrupt)
		}
		// The format is self-framing: once the final meta-block's padding
		// is consumed, the underlying reader must be exhausted too.
		if _, err := br.rd.rb.ReadByte(); err != io.EOF {
			if err == nil {
				panic(ErrExpectedEndOfStream)
			}
			panic(err)
		}
		br.err = io.EOF
		return
	}

	// Read ISLAST and ISLASTEMPTY.
	if br.last = br.rd.ReadBits(1) == 1; br.last {
		if empty := br.rd.ReadBits(1) == 1; empty {
			br.step = br.readBlockHeader // Next call will terminate stream
			return
		}
	}

	// Read MLEN and MNIBBLES and process meta data.
	var blkLen int // Valid values are [1..1<<24]
	if nibbles := br.rd.ReadBits(2) + 4; nibbles == 7 {
		if reserved := br.rd.ReadBits(1) == 1; reserved {
			panic(ErrCorrupt)
		}

		var skipLen int // Valid values are [0..1<<24]
		if skipBytes := br.rd.ReadBits(2); skipBytes > 0 {
			skipLen = int(br.rd.ReadBits(skipBytes * 8))
			if skipBytes > 1 && skipLen>>((skipBytes-1)*8) == 0 {
				panic(ErrCorrupt) // Shortest representation not used
			}
			skipLen++
		}

		if br.rd.ReadPads() > 0 {
			panic(ErrCorrupt)
		}
		if _, err := io.ReadFull(&br.rd, make([]byte, skipLen)); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			panic(err)
		}
		br.step = br.readBlockHeader
		return
	} else {
		blkLen = int(br.rd.ReadBits(nibbles * 4))
		if nibbles > 4 && blkLen>>((nibbles-1)*4) == 0 {
			panic(ErrCorrupt) // Shortest representation not used
		}
		blkLen++
	}
	br.blkLen = blkLen

	// Read ISUNCOMPRESSED and process uncompressed data.
	if !br.last {
		if uncompressed := br.rd.ReadBits(1) == 1; uncompressed {
			if br.rd.ReadPads() > 0 {
				panic(ErrCorrupt)
			}
			br.step = br.readRawData
			return
		}
	}

	br.readPrefixCodes()
}

// readPrefixCodes reads the prefix codes according to RFC section 9.2. Only
// a single block type per category (literal, insert-copy, distance) is
// supported; streams that switch block types mid meta-block are rejected.
func (br *Reader) readPrefixCodes() {
	for i := 0; i < 3; i++ {
		if n := br.rd.ReadSymbol(&decCounts); n >= 2 {
			panic(ErrUnsupported)
		}
	}

	br.npostfix = br.rd.ReadBits(2)
	br.ndirect = br.rd.ReadBits(4) << br.npostfix

	br.litCtxMode = uint8(br.rd.ReadBits(2))

	nTreesL := int(br.rd.ReadSymbol(&decCounts))
	if nTreesL >= 2 {
		br.litCtxMap = parseContextMap(&br.rd, nTreesL, 64)
	} else {
		nTreesL = 1
		br.litCtxMap = make([]byte, 64)
	}

	nTreesD := int(br.rd.ReadSymbol(&decCounts))
	if nTreesD >= 2 {
		br.distCtxMap = parseContextMap(&br.rd, nTreesD, 4)
	} else {
		nTreesD = 1
		br.distCtxMap = make([]byte, 4)
	}

	br.litTrees = make([]prefixDecoder, nTreesL)
	for i := range br.litTrees {
		br.litTrees[i] = readPrefixCode(&br.rd, numLitSyms)
	}

	br.cmdTree = readPrefixCode(&br.rd, numInsSyms)

	distAlphaSize := distAlphabetSize(br.npostfix, br.ndirect)
	br.distTrees = make([]prefixDecoder, nTreesD)
	for i := range br.distTrees {
		br.distTrees[i] = readPrefixCode(&br.rd, distAlphaSize)
	}

	br.stepState = dataStateCmd
	br.step = br.readBlockData
}

// readRawData reads raw (stored) meta-block data according to RFC section
// 9.2, writing it through the sliding window so later meta-blocks can copy
// from it like any other output.
func (br *Reader) readRawData() {
	if br.blkLen <= 0 {
		br.step = br.readBlockHeader
		return
	}

	buf := br.dict.WriteSlice()
	if len(buf) > br.blkLen {
		buf = buf[:br.blkLen]
	}

	cnt, err := br.rd.Read(buf)
	br.blkLen -= cnt
	br.dict.WriteMark(cnt)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		panic(err)
	}

	if br.blkLen > 0 {
		br.toRead = br.dict.ReadFlush()
		br.step = br.readRawData // We need to continue this work
		return
	}
	br.step = br.readBlockHeader
}

// readBlockData reads meta-block commands according to RFC section 9.2: a
// combined insert-and-copy symbol gives an insert length (literals copied
// from the input's implicit literal stream one at a time, each through a
// context-selected literal tree) and a copy length (bytes duplicated from
// the sliding window at a distance read from a context-selected distance
// tree, substituting short-code and direct/postfix-encoded distances per
// RFC section 4). A combined symbol below 128 (RFC section 5) carries an
// implicit distance of 0 instead: no distance code is present in the
// bitstream at all, and the copy reuses the ring's current most recent
// distance unmodified.
func (br *Reader) readBlockData() {
	switch br.stepState {
	case dataStateCmd:
		goto readCmd
	case dataStateInsert:
		goto doInsert
	case dataStateCopy:
		goto doCopy
	}

readCmd:
	if br.blkLen <= 0 {
		br.step = br.readBlockHeader
		br.stepState = dataStateCmd
		return
	}
	{
		cmdSym := br.rd.ReadSymbol(&br.cmdTree)
		insCode, cpyCode := decodeCmdSymbol(cmdSym)

		// Per RFC section 5: a combined symbol below 128 carries an implicit
		// distance of 0, meaning the command reuses the most recent distance
		// straight off the ring with no distance code in the bitstream.
		br.implicitDist = cmdSym < 128

		ir := insLenRanges[insCode]
		br.insLeft = int(ir.base) + int(br.rd.ReadBits(uint(ir.bits)))

		cr := cpyLenRanges[cpyCode]
		br.cpyLeft = int(cr.base) + int(br.rd.ReadBits(uint(cr.bits)))
	}

doInsert:
	for br.insLeft > 0 {
		if br.blkLen <= 0 {
			// Meta-block ends mid-insert; any pending copy is discarded.
			br.step = br.readBlockHeader
			br.stepState = dataStateCmd
			return
		}
		if br.dict.AvailSize() == 0 {
			br.toRead = br.dict.ReadFlush()
			br.step = br.readBlockData
			br.stepState = dataStateInsert
			return
		}

		p1, p2 := br.dict.Byte(1), br.dict.Byte(2)
		ctx := literalContext(p1, p2, br.litCtxMode)
		sym := br.rd.ReadSymbol(&br.litTrees[br.litCtxMap[ctx]])
		br.dict.WriteByte(byte(sym))

		br.insLeft--
		br.blkLen--
	}

	if br.blkLen <= 0 {
		br.step = br.readBlockHeader
		br.stepState = dataStateCmd
		return
	}
	if br.cpyLeft == 0 {
		goto readCmd
	}

	if br.implicitDist {
		// No distance code to read or push: the command reuses the ring's
		// current most-recent entry untouched.
		br.dist = br.distRing.Nth(0)
	} else {
		dctx := br.cpyLeft - 2
		if dctx < 0 {
			dctx = 0
		} else if dctx > 3 {
			dctx = 3
		}
		dsym := br.rd.ReadSymbol(&br.distTrees[br.distCtxMap[dctx]])
		br.dist = br.decodeDistance(dsym)
		br.distRing.Push(br.dist)
	}
	if br.dist <= 0 || br.dist > br.dict.HistSize() {
		panic(ErrCorrupt)
	}

doCopy:
	for br.cpyLeft > 0 {
		if br.blkLen <= 0 {
			break // Meta-block ends mid-copy; remainder is discarded.
		}
		if br.dict.AvailSize() == 0 {
			br.toRead = br.dict.ReadFlush()
			br.step = br.readBlockData
			br.stepState = dataStateCopy
			return
		}

		n := br.cpyLeft
		if n > br.blkLen {
			n = br.blkLen
		}
		if n > br.dict.AvailSize() {
			n = br.dict.AvailSize()
		}
		cnt := br.dict.WriteCopy(br.dist, n)
		br.cpyLeft -= cnt
		br.blkLen -= cnt
	}

	br.stepState = dataStateCmd
	goto readCmd
}

// distShortOffsets holds the +/-1,2,3 offset pattern shared by distance
// short codes 4..9 (relative to the most recent distance) and 10..15
// (relative to the second most recent), per RFC section 4.3.
var distShortOffsets = [6]int{-1, 1, -2, 2, -3, 3}

// decodeDistance converts a decoded distance symbol into an actual backward
// distance, per RFC section 4: codes 0..3 reuse one of the 4 most recent
// distances directly, codes 4..15 apply a small offset to the most or
// second-most recent distance, and codes 16.. use the direct/postfix
// encoding parameterized by NDIRECT/NPOSTFIX.
func (br *Reader) decodeDistance(dsym uint) int {
	switch {
	case dsym < 4:
		return br.distRing.Nth(int(dsym))
	case dsym < 10:
		return br.distRing.Nth(0) + distShortOffsets[dsym-4]
	case dsym < 16:
		return br.distRing.Nth(1) + distShortOffsets[dsym-10]
	}

	dcode := int(dsym) - 16
	if dcode < int(br.ndirect) {
		return dcode + 1
	}
	dcode -= int(br.ndirect)

	postfixMask := 1<<br.npostfix - 1
	bucket := dcode >> br.npostfix
	postfix := dcode & postfixMask
	nbits := uint(bucket>>1) + 1
	offset := (2+(bucket&1))<<nbits - 4
	extra := int(br.rd.ReadBits(nbits))
	return ((offset+extra)<<br.npostfix + postfix) + int(br.ndirect) + 1
}
