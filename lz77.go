// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/xpress

package xpress

import (
	"encoding/binary"
	"math/bits"
)

// The intermediate LZ77 form packs items in groups of up to 32, each group
// led by a little-endian 32-bit control mask. Bit k of the mask marks item k
// as a match (3 bytes: symbol, 16-bit offset with its top set bit cleared,
// plus length extension bytes when the length nibble saturates) or a literal
// (1 byte). The end-of-stream record is a match item with symbol byte 0.

// lzEncode runs the greedy parse over src[start:start+n], writing the
// intermediate form into c.scratch and the symbol histogram into c.counts.
// final appends the end-of-stream record. It returns the bytes used.
func (c *compressor) lzEncode(src []byte, start, n int, final bool) int {
	clear(c.counts[:])
	c.dict.fill(src, start, start+n)

	buf := c.scratch[:]
	bufLen := 0
	pos := start
	rem := n

	// items in the open group; 32 means the previous group closed full.
	items := 32
	maskIdx := 0

	for rem > 0 {
		maskIdx = bufLen
		bufLen += 4
		mask := uint32(0)
		items = 0

		for items < 32 && rem > 0 {
			matchBit := uint32(0)

			length, offset := 0, 0
			if rem >= minMatchLen {
				length, offset = c.dict.find(src, pos)
			}

			if length >= minMatchLen {
				length = min(length, rem)
				bufLen = c.emitMatch(buf, bufLen, length, offset)
				matchBit = 1
				pos += length
				rem -= length
			} else {
				buf[bufLen] = src[pos]
				bufLen++
				c.counts[src[pos]]++
				pos++
				rem--
			}

			mask = mask>>1 | matchBit<<31
			items++
		}

		if items < 32 {
			mask >>= uint(32 - items)
		}
		binary.LittleEndian.PutUint32(buf[maskIdx:], mask)
	}

	if final {
		bufLen = c.emitEndOfStream(buf, bufLen, maskIdx, items)
	}

	return bufLen
}

// lzEncodeLiterals is the no-matching fallback for uncompressible chunks:
// every byte becomes a literal under a zero control mask.
func (c *compressor) lzEncodeLiterals(src []byte, start, n int, final bool) int {
	clear(c.counts[:])

	buf := c.scratch[:]
	bufLen := 0
	pos := start
	rem := n

	items := 32
	maskIdx := 0

	for rem > 0 {
		maskIdx = bufLen
		binary.LittleEndian.PutUint32(buf[maskIdx:], 0)
		bufLen += 4

		items = min(rem, 32)
		for range items {
			buf[bufLen] = src[pos]
			bufLen++
			c.counts[src[pos]]++
			pos++
		}
		rem -= items
	}

	if final {
		bufLen = c.emitEndOfStream(buf, bufLen, maskIdx, items)
	}

	return bufLen
}

// emitMatch appends one match record and accounts its symbol.
func (c *compressor) emitMatch(buf []byte, bufLen, length, offset int) int {
	offBits := bits.Len32(uint32(offset)) - 1 //nolint:gosec // G115: offset in [1, maxMatchOffset]
	sym := byte(offBits<<4) | byte(min(length-minMatchLen, lenNibbleMax))
	offset &^= 1 << offBits
	c.counts[numLiterals|int(sym)]++

	buf[bufLen] = sym
	binary.LittleEndian.PutUint16(buf[bufLen+1:], uint16(offset)) //nolint:gosec // G115: top bit cleared above
	bufLen += 3

	ext := length - minMatchLen
	if ext < lenNibbleMax {
		return bufLen
	}

	switch {
	case ext-lenNibbleMax < 255:
		buf[bufLen] = byte(ext - lenNibbleMax)
		bufLen++
	case ext <= 65535:
		buf[bufLen] = 0xFF
		binary.LittleEndian.PutUint16(buf[bufLen+1:], uint16(ext))
		bufLen += 3
	default:
		buf[bufLen] = 0xFF
		binary.LittleEndian.PutUint16(buf[bufLen+1:], 0)
		binary.LittleEndian.PutUint32(buf[bufLen+3:], uint32(ext)) //nolint:gosec // G115: ext is non-negative
		bufLen += 7
	}

	return bufLen
}

// emitEndOfStream appends the final-chunk terminator record. When the last
// group closed full a fresh single-item mask is reserved; otherwise the
// terminator takes the next free bit of the group at maskIdx.
func (c *compressor) emitEndOfStream(buf []byte, bufLen, maskIdx, items int) int {
	if items == 32 {
		binary.LittleEndian.PutUint32(buf[bufLen:], 1)
		bufLen += 4
	} else {
		mask := binary.LittleEndian.Uint32(buf[maskIdx:])
		binary.LittleEndian.PutUint32(buf[maskIdx:], mask|1<<uint(items))
	}

	// Symbol byte 0 with a zero offset; no extension bytes follow.
	buf[bufLen] = 0
	buf[bufLen+1] = 0
	buf[bufLen+2] = 0
	bufLen += 3

	c.counts[symEndOfStream]++
	return bufLen
}
