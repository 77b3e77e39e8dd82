// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/xpress

package xpress

// Xpress-Huffman format constants: chunking, alphabet layout, match bounds,
// and dictionary hash parameters.

// Chunking and output layout.
const (
	// chunkSize is the amount of input covered by one Huffman chunk.
	chunkSize = 65536

	// headerSize is the per-chunk code-length header: 512 nibbles packed two per byte.
	headerSize = 256

	// minStreamSize is the output produced for empty input (header plus minimal bitstream).
	minStreamSize = headerSize + 4
)

// Huffman alphabet. Symbols 0..255 are literals; 256..511 carry a match
// descriptor: high nibble is the offset bit count, low nibble is min(length-3, 15).
const (
	numLiterals  = 256
	alphabetSize = 512

	// symEndOfStream doubles as the (offset=1, length=3) match descriptor.
	symEndOfStream = 256

	// maxCodeLen is the code-length cap for both Huffman builders.
	maxCodeLen = 15
)

// Match bounds.
const (
	minMatchLen = 3

	// maxMatchOffset is the reach of the 64 KiB history window.
	maxMatchOffset = 65535

	// niceMatchLen stops the chain search as soon as a match this long is seen.
	niceMatchLen = 48

	// maxChainLen bounds the candidates visited per find.
	maxChainLen = 11

	// lenNibbleMax is the largest length nibble; longer matches carry extension bytes.
	lenNibbleMax = 15
)

// Dictionary hash parameters.
const (
	hashBits = 15
	hashSize = 1 << hashBits
	hashMask = hashSize - 1

	// hashShift retires a byte's influence after three updates: 3*6 >= hashBits.
	hashShift = 6

	// windowSize is twice the chunk size so that no live chain slot can be
	// overwritten by a fill of the current chunk.
	windowSize = 2 * chunkSize
	windowMask = windowSize - 1
)

// lzBufferSize is the per-chunk intermediate buffer: one 32-bit mask plus up
// to 32 single-byte items per group, and the end-of-stream record.
const lzBufferSize = (chunkSize/32)*36 + 12
