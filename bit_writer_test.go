package xpress

import (
	"bytes"
	"testing"
)

func TestBitWriter_FlushOrderAndSlots(t *testing.T) {
	out := make([]byte, 32)

	var w bitWriter
	if err := w.init(out, 0); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	// 9+9 bits crosses the 16-bit boundary: the first unit must land in the
	// first reserved slot and a new slot must be claimed at the cursor.
	if err := w.writeBits(0x1FF, 9); err != nil {
		t.Fatalf("writeBits failed: %v", err)
	}
	if err := w.writeBits(0x000, 9); err != nil {
		t.Fatalf("writeBits failed: %v", err)
	}

	end := w.finish()
	if end != 6 {
		t.Fatalf("stream end = %d, want 6", end)
	}

	// 111111111 000000000 padded: first unit 0xFF80, the rest zero.
	want := []byte{0x80, 0xFF, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(out[:6], want) {
		t.Fatalf("stream mismatch:\ngot  % x\nwant % x", out[:6], want)
	}
}

func TestBitWriter_RawBytesBypassSlots(t *testing.T) {
	out := make([]byte, 32)

	var w bitWriter
	if err := w.init(out, 0); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if err := w.writeBits(0x1, 1); err != nil {
		t.Fatalf("writeBits failed: %v", err)
	}
	if err := w.writeRawByte(0xAB); err != nil {
		t.Fatalf("writeRawByte failed: %v", err)
	}
	if err := w.writeRawUint16(0xCDEF); err != nil {
		t.Fatalf("writeRawUint16 failed: %v", err)
	}

	end := w.finish()
	if end != 7 {
		t.Fatalf("stream end = %d, want 7", end)
	}

	// Raw bytes sit after the two reserved slots; the pending slot holds the
	// single bit, the next-pending slot holds the zero end marker.
	want := []byte{0x00, 0x80, 0x00, 0x00, 0xAB, 0xEF, 0xCD}
	if !bytes.Equal(out[:7], want) {
		t.Fatalf("stream mismatch:\ngot  % x\nwant % x", out[:7], want)
	}
}

func TestBitWriter_ReaderSymmetry(t *testing.T) {
	out := make([]byte, 256)

	var w bitWriter
	if err := w.init(out, 0); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	// Interleave bit fields and raw values the way the chunk encoder does.
	steps := []struct {
		v uint32
		n uint
	}{
		{0x15, 5}, {0x3, 2}, {0xFFFF, 16}, {0x0, 3}, {0x1234 & 0x7FF, 11}, {0x1, 1},
	}
	for i, s := range steps {
		if err := w.writeBits(s.v, s.n); err != nil {
			t.Fatalf("writeBits step %d failed: %v", i, err)
		}
		if i == 2 {
			if err := w.writeRawByte(0x42); err != nil {
				t.Fatalf("writeRawByte failed: %v", err)
			}
			if err := w.writeRawUint32(0xDEADBEEF); err != nil {
				t.Fatalf("writeRawUint32 failed: %v", err)
			}
		}
	}
	end := w.finish()

	var r testBitReader
	r.init(out[:end], 0)
	for i, s := range steps {
		got := r.readBits(s.n)
		if got != s.v {
			t.Fatalf("step %d: read %#x, want %#x", i, got, s.v)
		}
		if i == 2 {
			if b := r.readByte(); b != 0x42 {
				t.Fatalf("raw byte = %#x, want 0x42", b)
			}
			if v := r.readUint32(); v != 0xDEADBEEF {
				t.Fatalf("raw uint32 = %#x, want 0xDEADBEEF", v)
			}
		}
	}
	if r.overrun {
		t.Fatal("reader overran the written stream")
	}
}

func TestBitWriter_OverrunReported(t *testing.T) {
	var w bitWriter
	if err := w.init(make([]byte, 3), 0); err == nil {
		t.Fatal("init into 3 bytes must fail")
	}

	out := make([]byte, 4)
	if err := w.init(out, 0); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := w.writeRawByte(0); err == nil {
		t.Fatal("raw write past the reserved slots must fail")
	}
	if err := w.writeBits(0xFFFF, 16); err != nil {
		t.Fatalf("first 16 bits still fit the accumulator: %v", err)
	}
	if err := w.writeBits(0x1, 1); err == nil {
		t.Fatal("flushing past the buffer end must fail")
	}
}
