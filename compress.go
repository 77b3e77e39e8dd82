// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/xpress

package xpress

import (
	"encoding/binary"
	"sync"
)

// compressor owns all mutable state for one compression run.
type compressor struct {
	dict    dictionary         // hash-chain match finder
	scratch [lzBufferSize]byte // per-chunk intermediate LZ77 form

	counts [alphabetSize]uint32 // per-chunk symbol histogram
	lens   [alphabetSize]uint8  // per-chunk canonical code lengths
	codes  [alphabetSize]uint16 // per-chunk canonical codes
}

// compressorPool stores reusable compressor state to reduce allocations.
var compressorPool = sync.Pool{
	New: func() any {
		return &compressor{}
	},
}

// compressBufferPool stores temporary worst-case output buffers for Compress.
var compressBufferPool sync.Pool

// compressBuffer wraps reusable temporary output storage.
type compressBuffer struct {
	data []byte // data is the temporary encoded stream buffer.
}

// Compress compresses src as an Xpress-Huffman stream and returns the
// compressed bytes. The output never exceeds MaxCompressedSize(len(src)).
func Compress(src []byte) ([]byte, error) {
	temp := acquireCompressBuffer(MaxCompressedSize(len(src)))
	defer releaseCompressBuffer(temp)

	outLen, err := CompressTo(temp.data, src)
	if err != nil {
		return nil, err
	}

	out := make([]byte, outLen)
	copy(out, temp.data[:outLen])
	return out, nil
}

// CompressTo compresses src into dst and returns the number of bytes
// written. It returns ErrOutputOverrun when dst is too small, in which case
// the contents of dst are undefined. Sizing dst with MaxCompressedSize
// guarantees success.
func CompressTo(dst, src []byte) (int, error) {
	c := compressorPool.Get().(*compressor)
	defer compressorPool.Put(c)

	c.dict.init(len(src))

	outPos := 0
	for start := 0; ; start += chunkSize {
		n := min(chunkSize, len(src)-start)
		final := start+n == len(src)

		bufLen := c.lzEncode(src, start, n, final)
		c.buildCodesFast()

		written, err := c.emitChunk(dst, outPos, bufLen)

		// An expanding chunk, or one whose first attempt does not fit dst, is
		// redone without matching, under the optimal length-limited code, to
		// hold the MaxCompressedSize bound.
		if err != nil || (final && written > n+36) || (!final && written > chunkSize+2) {
			bufLen = c.lzEncodeLiterals(src, start, n, final)
			c.buildCodesSlow()

			written, err = c.emitChunk(dst, outPos, bufLen)
			if err != nil {
				return 0, err
			}
		}

		outPos += written
		if final {
			break
		}
	}

	return outPos, nil
}

// MaxCompressedSize returns the worst-case compressed size for n input
// bytes: per-chunk headers plus the literals-only fallback overhead.
func MaxCompressedSize(n int) int {
	return n + 34 + 258 + 258*(n/chunkSize)
}

// emitChunk writes one chunk at dst[outPos:]: the 256-byte packed
// code-length header, then the Huffman bitstream produced by walking the
// intermediate form in c.scratch[:bufLen]. It returns the chunk size.
func (c *compressor) emitChunk(dst []byte, outPos, bufLen int) (int, error) {
	if outPos+headerSize > len(dst) {
		return 0, ErrOutputOverrun
	}
	for i := range headerSize {
		dst[outPos+i] = c.lens[2*i]&0x0F | c.lens[2*i+1]<<4
	}

	var bw bitWriter
	if err := bw.init(dst, outPos+headerSize); err != nil {
		return 0, err
	}

	buf := c.scratch[:]
	p := 0
	for p < bufLen {
		mask := binary.LittleEndian.Uint32(buf[p:])
		p += 4

		for i := 0; i < 32 && p < bufLen; i++ {
			if mask&1 == 0 {
				lit := buf[p]
				p++
				if err := bw.writeBits(uint32(c.codes[lit]), uint(c.lens[lit])); err != nil {
					return 0, err
				}
			} else {
				var err error
				p, err = c.emitMatchItem(&bw, buf, p)
				if err != nil {
					return 0, err
				}
			}
			mask >>= 1
		}
	}

	return bw.finish() - outPos, nil
}

// emitMatchItem encodes one match record from the intermediate form: the
// match symbol code, the raw length extension bytes, then the offset bits.
// The decoder relies on this exact interleaving.
func (c *compressor) emitMatchItem(bw *bitWriter, buf []byte, p int) (int, error) {
	sym := buf[p]
	offset := binary.LittleEndian.Uint16(buf[p+1:])
	p += 3

	s := numLiterals | int(sym)
	if err := bw.writeBits(uint32(c.codes[s]), uint(c.lens[s])); err != nil {
		return p, err
	}

	if sym&0x0F == lenNibbleMax {
		ext := buf[p]
		p++
		if err := bw.writeRawByte(ext); err != nil {
			return p, err
		}

		if ext == 0xFF {
			ext16 := binary.LittleEndian.Uint16(buf[p:])
			p += 2
			if err := bw.writeRawUint16(ext16); err != nil {
				return p, err
			}

			if ext16 == 0 {
				ext32 := binary.LittleEndian.Uint32(buf[p:])
				p += 4
				if err := bw.writeRawUint32(ext32); err != nil {
					return p, err
				}
			}
		}
	}

	return p, bw.writeBits(uint32(offset), uint(sym>>4))
}

// acquireCompressBuffer returns a temporary output buffer wrapper with at least size bytes.
func acquireCompressBuffer(size int) *compressBuffer {
	if buf, ok := compressBufferPool.Get().(*compressBuffer); ok {
		if cap(buf.data) >= size {
			buf.data = buf.data[:size]
			return buf
		}
	}

	return &compressBuffer{data: make([]byte, size)}
}

// releaseCompressBuffer returns a temporary output buffer wrapper to the pool.
func releaseCompressBuffer(buf *compressBuffer) {
	if buf == nil {
		return
	}

	buf.data = buf.data[:cap(buf.data)]
	compressBufferPool.Put(buf)
}
