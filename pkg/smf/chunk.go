package smf

const (
	chunkTypeHeader = "MThd"
	chunkTypeTrack  = "MTrk"
)

// readChunkTagLength reads a 4-byte chunk type tag and a big-endian u32
// length, and returns the tag alongside a fixed Cursor positioned over
// exactly that many payload bytes. It performs no type validation — callers
// that expect a specific tag use readChunkHeader, and callers that tolerate
// (and skip) unknown chunk types call this directly.
func readChunkTagLength(c *Cursor) (string, *Cursor, error) {
	tagBytes, err := c.ReadBytes(4)
	if err != nil {
		return "", nil, err
	}
	tag := string(tagBytes)
	length, err := c.ReadUint32BE()
	if err != nil {
		return "", nil, err
	}
	body, err := c.Slice(int(length))
	if err != nil {
		return "", nil, err
	}
	return tag, body, nil
}

// readChunkHeader reads a chunk and requires its tag to equal wantType. The
// tag is checked before the length is read. It fails with *NotMIDI if
// wantType is chunkTypeHeader and the tag does not match, and with
// *ParserError for any other mismatch or a chunk truncated by the end of data.
func readChunkHeader(c *Cursor, wantType string) (*Cursor, error) {
	tagStart := c.Tell()
	tagBytes, err := c.ReadBytes(4)
	if tag := string(tagBytes); err != nil || tag != wantType {
		if wantType == chunkTypeHeader {
			return nil, &NotMIDI{Actual: tag}
		}
		return nil, &ParserError{Actual: tag, Expected: wantType, Byte: tagStart}
	}
	c.Seek(tagStart)
	_, body, err := readChunkTagLength(c)
	if err != nil {
		return nil, &ParserError{Actual: "<truncated chunk>", Expected: wantType, Byte: tagStart}
	}
	return body, nil
}

// writeChunk encodes a length-prefixed chunk onto c by first encoding the
// payload into its own sink, then writing the 4-byte tag, the measured u32
// big-endian length, and the payload bytes. Building the payload in a
// separate sink avoids needing to seek back and patch the length in place.
func writeChunk(c *Cursor, chunkType string, payload *Cursor) {
	c.WriteBytes([]byte(chunkType))
	c.WriteUint32BE(uint32(payload.Len()))
	c.WriteBytes(payload.Bytes())
}
