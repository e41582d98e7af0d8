package smf

import (
	"bytes"
	"testing"
)

func TestCursorReadBytesAdvances(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3, 4, 5})
	b, err := c.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Errorf("ReadBytes = %v", b)
	}
	if c.Tell() != 3 {
		t.Errorf("Tell() = %d, want 3", c.Tell())
	}
	if c.Remaining() != 2 {
		t.Errorf("Remaining() = %d, want 2", c.Remaining())
	}
}

func TestCursorOverflow(t *testing.T) {
	c := NewCursor([]byte{1, 2})
	_, err := c.ReadBytes(3)
	ov, ok := err.(*Overflow)
	if !ok {
		t.Fatalf("expected *Overflow, got %T", err)
	}
	if ov.Requested != 3 || ov.Position != 0 || ov.Size != 2 {
		t.Errorf("Overflow = %+v", ov)
	}
}

func TestCursorSlice(t *testing.T) {
	c := NewCursor([]byte{0xAA, 0xBB, 0xCC, 0xDD})
	sub, err := c.Slice(2)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if sub.Len() != 2 {
		t.Errorf("sub.Len() = %d, want 2", sub.Len())
	}
	if c.Tell() != 2 {
		t.Errorf("parent Tell() = %d, want 2", c.Tell())
	}
	b, _ := sub.ReadBytes(2)
	if !bytes.Equal(b, []byte{0xAA, 0xBB}) {
		t.Errorf("sub contents = %v", b)
	}
}

func TestCursorBigEndianIntegers(t *testing.T) {
	sink := NewSink()
	sink.WriteUint16BE(0x1234)
	sink.WriteUint32BE(0xDEADBEEF)
	c := NewCursor(sink.Bytes())
	u16, err := c.ReadUint16BE()
	if err != nil || u16 != 0x1234 {
		t.Fatalf("ReadUint16BE = %x, %v", u16, err)
	}
	u32, err := c.ReadUint32BE()
	if err != nil || u32 != 0xDEADBEEF {
		t.Fatalf("ReadUint32BE = %x, %v", u32, err)
	}
}

func TestCursorGrowableWrite(t *testing.T) {
	sink := NewSink()
	for i := 0; i < 200; i++ {
		sink.WriteUint8(uint8(i))
	}
	if sink.Len() != 200 {
		t.Fatalf("Len() = %d, want 200", sink.Len())
	}
	for i := 0; i < 200; i++ {
		if sink.Bytes()[i] != uint8(i) {
			t.Fatalf("byte %d = %d, want %d", i, sink.Bytes()[i], uint8(i))
		}
	}
}

func TestCursorEOF(t *testing.T) {
	c := NewCursor([]byte{1})
	if c.EOF() {
		t.Fatal("EOF() true before reading last byte")
	}
	c.ReadUint8()
	if !c.EOF() {
		t.Fatal("EOF() false after reading last byte")
	}
}
