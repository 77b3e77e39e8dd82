// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/xpress

package xpress

import "sort"

// Optimal length-limited code builder (package-merge). Used as the
// worst-case guard on the uncompressible-data path, where the fast builder's
// heuristic lengths could push a chunk past its size bound.
//
// Coins are built per bit level from maxCodeLen up: each level pairs the two
// cheapest collections of the level below into packages and merges them with
// the symbol coins. A collection is a per-symbol membership count vector plus
// its summed weight; a symbol's final code length is how many of the chosen
// top-level collections contain it.

// pmCollection is one package-merge collection.
type pmCollection struct {
	total  uint32
	counts [alphabetSize]uint8
}

// buildCodesSlow fills c.lens and c.codes from c.counts. Only symbols with a
// non-zero count participate; the rest keep length and code 0.
func (c *compressor) buildCodesSlow() {
	clear(c.lens[:])

	syms := make([]uint16, 0, alphabetSize)
	for i, cnt := range c.counts {
		if cnt > 0 {
			syms = append(syms, uint16(i)) //nolint:gosec // G115: alphabet index
		}
	}

	n := len(syms)
	switch n {
	case 0:
		clear(c.codes[:])
		return
	case 1:
		c.lens[syms[0]] = 1
		c.assignCanonicalCodes()
		return
	}

	// Ascending count, stable on symbol index.
	sort.SliceStable(syms, func(i, j int) bool {
		return c.counts[syms[i]] < c.counts[syms[j]]
	})

	// The stack variant of these lists is an optimisation artefact of the
	// reference design; both live on the heap here.
	maxColl := 2*n - 1
	cur := make([]pmCollection, n, maxColl)
	next := make([]pmCollection, 0, maxColl)

	for i, s := range syms {
		cur[i].total = c.counts[s]
		cur[i].counts[s] = 1
	}

	for level := maxCodeLen - 1; level >= 1; level-- {
		next = next[:0]
		numPkg := len(cur) / 2
		li, pi := 0, 0

		for li < n || pi < numPkg {
			usePkg := li == n
			if !usePkg && pi < numPkg {
				usePkg = cur[2*pi].total+cur[2*pi+1].total < c.counts[syms[li]]
			}

			next = next[:len(next)+1]
			dst := &next[len(next)-1]

			if usePkg {
				a, b := &cur[2*pi], &cur[2*pi+1]
				dst.total = a.total + b.total
				for s := range alphabetSize {
					dst.counts[s] = a.counts[s] + b.counts[s]
				}
				pi++
			} else {
				s := syms[li]
				dst.total = c.counts[s]
				clear(dst.counts[:])
				dst.counts[s] = 1
				li++
			}
		}

		cur, next = next, cur
	}

	for i := range 2*n - 2 {
		for s := range alphabetSize {
			c.lens[s] += cur[i].counts[s]
		}
	}

	c.assignCanonicalCodes()
}
