package smf

import "math"

// Cursor is a positioned view over a contiguous byte buffer. A parser uses
// a fixed-size Cursor created with NewCursor; reads advance the position
// and fail with an *Overflow error when they would cross the end of the
// buffer. An encoder uses a growable Cursor created with NewSink; writes
// always succeed and extend the buffer as needed.
//
// Cursor is not safe for concurrent use.
type Cursor struct {
	buf      []byte
	pos      int
	growable bool
}

// NewCursor returns a fixed-size Cursor reading from data. Only reads are
// bounds-checked: a write past the end of data extends the buffer instead of
// failing.
func NewCursor(data []byte) *Cursor {
	return &Cursor{buf: data}
}

// NewSink returns an empty, growable Cursor suitable for encoding.
func NewSink() *Cursor {
	return &Cursor{buf: make([]byte, 0, 64), growable: true}
}

// Bytes returns the Cursor's backing buffer.
func (c *Cursor) Bytes() []byte { return c.buf }

// Len returns the size of the backing buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Tell returns the current position.
func (c *Cursor) Tell() int { return c.pos }

// Seek moves the cursor to an absolute position.
func (c *Cursor) Seek(pos int) { c.pos = pos }

// EOF reports whether the cursor is positioned at or past the end of the
// buffer.
func (c *Cursor) EOF() bool { return c.pos >= len(c.buf) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

func (c *Cursor) checkRead(n int) error {
	if c.pos+n > len(c.buf) {
		return &Overflow{Requested: n, Position: c.pos, Size: len(c.buf)}
	}
	return nil
}

// Slice returns a new, fixed-size Cursor over the next n bytes and advances
// the receiver past them. It fails with *Overflow if fewer than n bytes
// remain.
func (c *Cursor) Slice(n int) (*Cursor, error) {
	if err := c.checkRead(n); err != nil {
		return nil, err
	}
	sub := NewCursor(c.buf[c.pos : c.pos+n])
	c.pos += n
	return sub, nil
}

// ReadBytes reads n raw bytes and advances the position.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.checkRead(n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, c.buf[c.pos:c.pos+n])
	c.pos += n
	return b, nil
}

// PeekUint8 returns the next byte without advancing the position.
func (c *Cursor) PeekUint8() (uint8, error) {
	if err := c.checkRead(1); err != nil {
		return 0, err
	}
	return c.buf[c.pos], nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (c *Cursor) ReadUint8() (uint8, error) {
	if err := c.checkRead(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadInt8 reads a signed 8-bit integer.
func (c *Cursor) ReadInt8() (int8, error) {
	b, err := c.ReadUint8()
	return int8(b), err
}

// ReadUint16BE reads a big-endian unsigned 16-bit integer.
func (c *Cursor) ReadUint16BE() (uint16, error) {
	if err := c.checkRead(2); err != nil {
		return 0, err
	}
	v := uint16(c.buf[c.pos])<<8 | uint16(c.buf[c.pos+1])
	c.pos += 2
	return v, nil
}

// ReadUint16LE reads a little-endian unsigned 16-bit integer.
func (c *Cursor) ReadUint16LE() (uint16, error) {
	if err := c.checkRead(2); err != nil {
		return 0, err
	}
	v := uint16(c.buf[c.pos]) | uint16(c.buf[c.pos+1])<<8
	c.pos += 2
	return v, nil
}

// ReadInt16BE reads a big-endian signed 16-bit integer.
func (c *Cursor) ReadInt16BE() (int16, error) {
	v, err := c.ReadUint16BE()
	return int16(v), err
}

// ReadInt16LE reads a little-endian signed 16-bit integer.
func (c *Cursor) ReadInt16LE() (int16, error) {
	v, err := c.ReadUint16LE()
	return int16(v), err
}

// ReadUint32BE reads a big-endian unsigned 32-bit integer.
func (c *Cursor) ReadUint32BE() (uint32, error) {
	if err := c.checkRead(4); err != nil {
		return 0, err
	}
	v := uint32(c.buf[c.pos])<<24 | uint32(c.buf[c.pos+1])<<16 | uint32(c.buf[c.pos+2])<<8 | uint32(c.buf[c.pos+3])
	c.pos += 4
	return v, nil
}

// ReadUint32LE reads a little-endian unsigned 32-bit integer.
func (c *Cursor) ReadUint32LE() (uint32, error) {
	if err := c.checkRead(4); err != nil {
		return 0, err
	}
	v := uint32(c.buf[c.pos]) | uint32(c.buf[c.pos+1])<<8 | uint32(c.buf[c.pos+2])<<16 | uint32(c.buf[c.pos+3])<<24
	c.pos += 4
	return v, nil
}

// ReadInt32BE reads a big-endian signed 32-bit integer.
func (c *Cursor) ReadInt32BE() (int32, error) {
	v, err := c.ReadUint32BE()
	return int32(v), err
}

// ReadInt32LE reads a little-endian signed 32-bit integer.
func (c *Cursor) ReadInt32LE() (int32, error) {
	v, err := c.ReadUint32LE()
	return int32(v), err
}

// ReadFloat32BE reads a big-endian IEEE-754 single-precision float.
func (c *Cursor) ReadFloat32BE() (float32, error) {
	v, err := c.ReadUint32BE()
	return math.Float32frombits(v), err
}

// ReadFloat64BE reads a big-endian IEEE-754 double-precision float.
func (c *Cursor) ReadFloat64BE() (float64, error) {
	hi, err := c.ReadUint32BE()
	if err != nil {
		return 0, err
	}
	lo, err := c.ReadUint32BE()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(hi)<<32 | uint64(lo)), nil
}

func (c *Cursor) writeAt(b []byte) {
	n := c.pos + len(b)
	if n > len(c.buf) {
		if n > cap(c.buf) {
			grown := make([]byte, n, n*2+16)
			copy(grown, c.buf)
			c.buf = grown
		} else {
			c.buf = c.buf[:n]
		}
	}
	copy(c.buf[c.pos:n], b)
	c.pos = n
}

// WriteBytes appends raw bytes. Only valid on a growable Cursor created
// with NewSink.
func (c *Cursor) WriteBytes(b []byte) {
	c.writeAt(b)
}

// WriteUint8 appends an unsigned 8-bit integer.
func (c *Cursor) WriteUint8(v uint8) {
	c.writeAt([]byte{v})
}

// WriteUint16BE appends a big-endian unsigned 16-bit integer.
func (c *Cursor) WriteUint16BE(v uint16) {
	c.writeAt([]byte{byte(v >> 8), byte(v)})
}

// WriteUint32BE appends a big-endian unsigned 32-bit integer.
func (c *Cursor) WriteUint32BE(v uint32) {
	c.writeAt([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

// WriteInt16BE appends a big-endian signed 16-bit integer.
func (c *Cursor) WriteInt16BE(v int16) {
	c.WriteUint16BE(uint16(v))
}
