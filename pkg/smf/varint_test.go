package smf

import "testing"

func TestVarIntRoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 127, 128, 8192, 16383, 16384, 2097151, 2097152, maxVarInt}
	for _, n := range cases {
		sink := NewSink()
		if err := encodeVarInt(sink, n); err != nil {
			t.Fatalf("encodeVarInt(%d): %v", n, err)
		}
		cur := NewCursor(sink.Bytes())
		got, err := decodeVarInt(cur)
		if err != nil {
			t.Fatalf("decodeVarInt after encoding %d: %v", n, err)
		}
		if got != n {
			t.Errorf("round trip %d: got %d", n, got)
		}
	}
}

func TestVarIntEncodedLength(t *testing.T) {
	cases := []struct {
		n      uint32
		length int
	}{
		{0, 1},
		{0x7F, 1},
		{0x80, 2},
		{0x3FFF, 2},
		{0x4000, 3},
		{0x1FFFFF, 3},
		{0x200000, 4},
		{maxVarInt, 4},
	}
	for _, c := range cases {
		sink := NewSink()
		if err := encodeVarInt(sink, c.n); err != nil {
			t.Fatalf("encodeVarInt(%d): %v", c.n, err)
		}
		if sink.Len() != c.length {
			t.Errorf("encodeVarInt(%d) length = %d, want %d", c.n, sink.Len(), c.length)
		}
	}
}

func TestVarIntOverflow(t *testing.T) {
	sink := NewSink()
	if err := encodeVarInt(sink, maxVarInt+1); err == nil {
		t.Fatal("expected error encoding value exceeding 2^28-1")
	}
}

func TestDecodeVarIntTruncated(t *testing.T) {
	cur := NewCursor([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	_, err := decodeVarInt(cur)
	if _, ok := err.(*InvalidVarInt); !ok {
		t.Fatalf("expected *InvalidVarInt, got %T (%v)", err, err)
	}
}

func TestDecodeVarIntEOF(t *testing.T) {
	cur := NewCursor([]byte{0x80})
	_, err := decodeVarInt(cur)
	if _, ok := err.(*Overflow); !ok {
		t.Fatalf("expected *Overflow, got %T (%v)", err, err)
	}
}
