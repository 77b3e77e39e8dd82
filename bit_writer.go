// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/xpress

package xpress

import "encoding/binary"

// bitWriter packs variable-width codes into 16-bit little-endian units while
// letting raw bytes pass through at the current cursor. Two 16-bit slots are
// always reserved ahead of the cursor; completed units land in the older slot
// so that a decoder prefetching two units stays in step with the raw bytes.
type bitWriter struct {
	out []byte // destination buffer

	acc  uint32 // bit accumulator, filled from the MSB side
	bits uint   // valid bits in acc, at most 16 between writes

	slot     int // pending 16-bit emission position
	nextSlot int // next-pending 16-bit emission position
	pos      int // cursor for raw bytes and future slots
}

// init points the writer at out starting from offset at and reserves the
// first two 16-bit slots.
func (w *bitWriter) init(out []byte, at int) error {
	if at+4 > len(out) {
		return ErrOutputOverrun
	}

	w.out = out
	w.acc = 0
	w.bits = 0
	w.slot = at
	w.nextSlot = at + 2
	w.pos = at + 4
	return nil
}

// writeBits appends the low n bits of v to the stream. n must be at most 16.
func (w *bitWriter) writeBits(v uint32, n uint) error {
	w.acc |= v << (32 - w.bits - n)
	w.bits += n

	if w.bits > 16 {
		if w.pos+2 > len(w.out) {
			return ErrOutputOverrun
		}

		binary.LittleEndian.PutUint16(w.out[w.slot:], uint16(w.acc>>16)) //nolint:gosec // G115: top 16 bits by construction
		w.acc <<= 16
		w.bits -= 16
		w.slot = w.nextSlot
		w.nextSlot = w.pos
		w.pos += 2
	}

	return nil
}

// writeRawByte emits one byte at the cursor, bypassing the bit accumulator.
func (w *bitWriter) writeRawByte(b byte) error {
	if w.pos >= len(w.out) {
		return ErrOutputOverrun
	}

	w.out[w.pos] = b
	w.pos++
	return nil
}

// writeRawUint16 emits a little-endian 16-bit value at the cursor.
func (w *bitWriter) writeRawUint16(v uint16) error {
	if w.pos+2 > len(w.out) {
		return ErrOutputOverrun
	}

	binary.LittleEndian.PutUint16(w.out[w.pos:], v)
	w.pos += 2
	return nil
}

// writeRawUint32 emits a little-endian 32-bit value at the cursor.
func (w *bitWriter) writeRawUint32(v uint32) error {
	if w.pos+4 > len(w.out) {
		return ErrOutputOverrun
	}

	binary.LittleEndian.PutUint32(w.out[w.pos:], v)
	w.pos += 4
	return nil
}

// finish flushes the remaining accumulator bits into the pending slot and
// writes the zero end-of-chunk unit into the next-pending slot. It returns
// the position one past the written stream.
func (w *bitWriter) finish() int {
	binary.LittleEndian.PutUint16(w.out[w.slot:], uint16(w.acc>>16)) //nolint:gosec // G115: top 16 bits by construction
	binary.LittleEndian.PutUint16(w.out[w.nextSlot:], 0)
	return w.pos
}
