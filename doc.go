// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/xpress

/*
Package xpress implements an encoder for the Xpress-Huffman compressed stream
format (the LZ77+Huffman variant produced by Microsoft system interfaces such
as WIM archives and hibernation files).

The input is split into 64 KiB chunks. Each chunk is emitted as a 256-byte
header holding 512 packed canonical code lengths, followed by a bitstream of
Huffman-coded literals and matches in 16-bit little-endian units. Matches
reach up to 65535 bytes back, across chunk boundaries. A chunk whose first
encoding attempt expands is re-encoded literals-only with an optimal
length-limited code, bounding the output at MaxCompressedSize.

# Compress

Compression is one-shot; the encoder is a pure function of its input bytes:

	out, err := xpress.Compress(data)

To compress into a caller-owned buffer and get the exact written length:

	dst := make([]byte, xpress.MaxCompressedSize(len(data)))
	n, err := xpress.CompressTo(dst, data)

Decompression is not provided; any conforming Xpress-Huffman decoder (which
requires the decompressed size, as the format carries no in-band length)
reproduces the input bit-exactly.
*/
package xpress
