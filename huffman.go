// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/xpress

package xpress

// Fast length-limited code builder. Every symbol participates with weight
// max(count, 1) << 8; the low byte of a node weight carries its running
// depth, so the heap prefers shallow nodes on near ties and the tree stays
// flat. Whenever a length still exceeds maxCodeLen the weights are rescaled
// and the build restarts. The result has correct lengths but is not always
// minimum redundancy; the package-merge builder is the guaranteed bound.

const (
	huffNumNodes   = 2*alphabetSize - 1
	huffDepthShift = 8
	huffDepthMask  = (1 << huffDepthShift) - 1
)

// buildCodesFast fills c.lens and c.codes from c.counts.
func (c *compressor) buildCodesFast() {
	var weight [huffNumNodes]uint32
	var parent [huffNumNodes]uint16

	for i := range alphabetSize {
		weight[i] = max(c.counts[i], 1) << huffDepthShift
	}

	for {
		var heap [alphabetSize]uint16
		for i := range heap {
			heap[i] = uint16(i) //nolint:gosec // G115: alphabet index
		}
		size := alphabetSize
		for i := size/2 - 1; i >= 0; i-- {
			siftDown(heap[:size], i, &weight)
		}

		next := alphabetSize
		root := 0
		for size > 1 {
			a := heap[0]
			heap[0] = heap[size-1]
			size--
			siftDown(heap[:size], 0, &weight)
			b := heap[0]

			m := uint16(next) //nolint:gosec // G115: node ids bounded by huffNumNodes
			next++
			weight[m] = (weight[a]+weight[b])&^uint32(huffDepthMask) |
				(1 + max(weight[a]&huffDepthMask, weight[b]&huffDepthMask))
			parent[a] = m
			parent[b] = m

			heap[0] = m
			siftDown(heap[:size], 0, &weight)
			root = int(m)
		}

		over := false
		for i := range alphabetSize {
			depth := 0
			for n := i; n != root; n = int(parent[n]) {
				depth++
			}
			c.lens[i] = uint8(depth) //nolint:gosec // G115: depth bounded well below 256
			if depth > maxCodeLen {
				over = true
			}
		}

		if !over {
			break
		}

		for i := range alphabetSize {
			weight[i] = (1 + weight[i]>>(huffDepthShift+1)) << huffDepthShift
		}
	}

	c.assignCanonicalCodes()
}

// siftDown restores the min-heap property for the node at i.
func siftDown(heap []uint16, i int, weight *[huffNumNodes]uint32) {
	for {
		child := 2*i + 1
		if child >= len(heap) {
			return
		}
		if child+1 < len(heap) && weight[heap[child+1]] < weight[heap[child]] {
			child++
		}
		if weight[heap[i]] <= weight[heap[child]] {
			return
		}
		heap[i], heap[child] = heap[child], heap[i]
		i = child
	}
}

// assignCanonicalCodes derives the canonical codes from c.lens: lengths are
// visited in ascending order and, within a length, symbols in ascending
// index; each assignment increments the code and the code doubles between
// lengths. Zero-length symbols keep code 0.
func (c *compressor) assignCanonicalCodes() {
	minLen, maxLen := 0, 0
	for _, l := range c.lens {
		if l == 0 {
			continue
		}
		if minLen == 0 || int(l) < minLen {
			minLen = int(l)
		}
		if int(l) > maxLen {
			maxLen = int(l)
		}
	}

	clear(c.codes[:])
	code := uint16(0)
	for n := minLen; n <= maxLen; n++ {
		for sym := range alphabetSize {
			if int(c.lens[sym]) == n {
				c.codes[sym] = code
				code++
			}
		}
		code <<= 1
	}
}
