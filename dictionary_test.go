package xpress

import (
	"bytes"
	"testing"
)

func TestDictionary_FindsPreviousOccurrence(t *testing.T) {
	src := []byte("abcdef-abcdefgh")

	var d dictionary
	d.init(len(src))
	d.fill(src, 0, len(src))

	length, offset := d.find(src, 7)
	if length != 6 {
		t.Fatalf("match length = %d, want 6", length)
	}
	if offset != 7 {
		t.Fatalf("match offset = %d, want 7", offset)
	}
}

func TestDictionary_NoMatchBelowMinLength(t *testing.T) {
	src := []byte("abXabYcd")

	var d dictionary
	d.init(len(src))
	d.fill(src, 0, len(src))

	if length, _ := d.find(src, 3); length >= minMatchLen {
		t.Fatalf("two-byte repeat must not reach minMatchLen, got %d", length)
	}
}

func TestDictionary_RunFindsImmediatePredecessor(t *testing.T) {
	src := bytes.Repeat([]byte{0x41}, 4096)

	var d dictionary
	d.init(len(src))
	d.fill(src, 0, len(src))

	length, offset := d.find(src, 1)
	if offset != 1 {
		t.Fatalf("run match offset = %d, want 1", offset)
	}
	if length < niceMatchLen {
		t.Fatalf("run match length = %d, want at least the nice length %d", length, niceMatchLen)
	}
}

func TestDictionary_RejectsTooOldCandidates(t *testing.T) {
	// One trigram occurrence, then filler with no repeats of it, then the
	// trigram again beyond the 64 KiB reach.
	src := make([]byte, 70000)
	for i := range src {
		src[i] = byte(i % 64)
	}
	copy(src[0:], []byte("XYZ"))
	copy(src[69000:], []byte("XYZ"))

	var d dictionary
	d.init(len(src))
	d.fill(src, 0, chunkSize)
	d.fill(src, chunkSize, len(src))

	if length, offset := d.find(src, 69000); length >= minMatchLen && offset > maxMatchOffset {
		t.Fatalf("match offset %d exceeds the window reach", offset)
	}
}

func TestDictionary_CrossChunkReach(t *testing.T) {
	pattern := []byte("cross-chunk-pattern!")
	src := bytes.Repeat(pattern, (chunkSize+8192)/len(pattern)+1)

	var d dictionary
	d.init(len(src))
	d.fill(src, 0, chunkSize)
	d.fill(src, chunkSize, len(src))

	pos := chunkSize + 4 // a pattern start inside the second chunk
	length, offset := d.find(src, pos)
	if length < minMatchLen {
		t.Fatal("second chunk must find matches against first-chunk history")
	}
	if offset%len(pattern) != 0 {
		t.Fatalf("offset %d is not a repeat distance of the pattern", offset)
	}
	if pos-offset < 0 || pos-offset > chunkSize {
		t.Fatalf("candidate %d is not in reachable history", pos-offset)
	}
}

func TestMatchLength_WordAndTailCompare(t *testing.T) {
	src := append(bytes.Repeat([]byte{0xAA}, 20), 0xBB)
	src = append(src, bytes.Repeat([]byte{0xAA}, 20)...)
	src = append(src, 0xCC)

	// src[0:] vs src[21:]: both run 0xAA; the second run ends at 0xCC after
	// 20 bytes, the first at 0xBB after 20 bytes, so the common prefix is 20.
	if got := matchLength(src, 0, 21); got != 20 {
		t.Fatalf("matchLength = %d, want 20", got)
	}

	if got := matchLength([]byte{1, 2, 3, 4}, 0, 2); got != 0 {
		t.Fatalf("matchLength = %d, want 0", got)
	}
}
