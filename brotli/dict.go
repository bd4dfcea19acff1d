// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// maxDictLen is the length of the longest static dictionary word (RFC
// Appendix A). The static dictionary's bytes are not present anywhere in
// the retrieval pack this module was built from, so word lookups always
// fail cleanly with ErrCorrupt rather than fabricate dictionary content —
// see the Non-goal recorded for this in DESIGN.md.
const maxDictLen = 24

// initDictLUTs exists so that brotli/common.go's LUT-initialization dance
// has a single, uniform call site, matching the shape the other LUT
// initializers (initContextLUTs, initPrefixLUTs) share even though this one
// currently has nothing to precompute.
func initDictLUTs() {}

// staticDictWord reports whether the static dictionary could serve a copy
// of the given length at the given dictionary-relative index. It always
// returns false: this decoder does not carry the dictionary, so any stream
// that actually relies on it is rejected instead of silently emitting wrong
// output.
func staticDictWord(length, dist int) (word []byte, ok bool) {
	return nil, false
}
