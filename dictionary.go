// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/xpress

package xpress

import (
	"encoding/binary"
	"math/bits"
)

// dictionary is the hash-chain match finder. table maps a 15-bit hash of a
// 3-byte prefix to the most recent position inserted with that hash; window
// maps position mod windowSize to the previous position with the same hash.
// Positions are absolute input offsets; stale entries are rejected by an age
// check during the chain walk rather than evicted.
type dictionary struct {
	table  [hashSize]int32
	window [windowSize]int32

	// end2 is one past the last position at which a 3-byte prefix exists.
	end2 int
}

// init prepares the dictionary for an input of n bytes. The window is left
// as-is: every slot the chain walk can reach is overwritten by fill first.
func (d *dictionary) init(n int) {
	d.end2 = n - 2
	clear(d.table[:])
}

// fill inserts every 3-byte prefix in src[start:end) into the hash chains.
// It is called once per chunk before any find, so chains built for one chunk
// keep reaching back into earlier chunks through the persistent table.
func (d *dictionary) fill(src []byte, start, end int) {
	limit := min(end, d.end2)
	if start >= limit {
		return
	}

	h := uint32(src[start])
	h = ((h << hashShift) ^ uint32(src[start+1])) & hashMask

	for pos := start; pos < limit; pos++ {
		h = ((h << hashShift) ^ uint32(src[pos+2])) & hashMask
		d.window[pos&windowMask] = d.table[h]
		d.table[h] = int32(pos) //nolint:gosec // G115: input positions fit int32 for supported input sizes
	}
}

// find returns the best match for the 3-byte prefix at pos and the offset
// that achieved it. Lengths below minMatchLen mean no match. The walk enters
// at pos's own window slot (its predecessor chain as of fill), visits at most
// maxChainLen candidates, keeps only strictly longer matches, and stops early
// once a match reaches niceMatchLen.
func (d *dictionary) find(src []byte, pos int) (length, offset int) {
	lower := pos - maxMatchOffset
	cand := int(d.window[pos&windowMask])

	for range maxChainLen {
		// Candidates at or past pos only arise from the zeroed table sentinel.
		if cand < lower || cand >= pos {
			break
		}

		if n := matchLength(src, cand, pos); n > length {
			length = n
			offset = pos - cand

			if n >= niceMatchLen {
				break
			}
		}

		cand = int(d.window[cand&windowMask])
	}

	return length, offset
}

// matchLength returns the length of the common prefix of src[cand:] and
// src[pos:], with cand < pos. Word compares cover the hot part; the input
// tail is finished byte by byte.
func matchLength(src []byte, cand, pos int) int {
	n := 0
	limit := len(src)

	for pos+n+8 <= limit {
		diff := binary.LittleEndian.Uint64(src[cand+n:]) ^ binary.LittleEndian.Uint64(src[pos+n:])
		if diff != 0 {
			return n + bits.TrailingZeros64(diff)>>3
		}
		n += 8
	}

	for pos+n < limit && src[cand+n] == src[pos+n] {
		n++
	}

	return n
}
