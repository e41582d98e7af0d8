// Package smf implements a bit-exact codec for Standard MIDI Files.
package smf

import "fmt"

// ParserError reports a structural mismatch encountered while decoding a
// byte stream: a wrong chunk type, a truncated chunk, or an unexpected byte.
type ParserError struct {
	Actual   string
	Expected string
	Byte     int
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("smf: parse error at byte %d: expected %s, got %s", e.Byte, e.Expected, e.Actual)
}

// EncoderError reports a value that is out of range during encoding, such
// as a VarInt that does not fit in 28 bits.
type EncoderError struct {
	Reason string
}

func (e *EncoderError) Error() string {
	return fmt.Sprintf("smf: encode error: %s", e.Reason)
}

// InvalidEvent reports well-formed bytes that describe a semantically
// impossible event: running status with no prior status, an unknown status
// byte, or a meta payload whose length does not match its recognized type.
type InvalidEvent struct {
	Reason string
	Byte   int
}

func (e *InvalidEvent) Error() string {
	return fmt.Sprintf("smf: invalid event at byte %d: %s", e.Byte, e.Reason)
}

// InvalidArgument reports API misuse: a file type outside {0,1,2}, a
// channel greater than 15, removing a track from an empty file, and so on.
type InvalidArgument struct {
	Reason string
}

func (e *InvalidArgument) Error() string {
	return fmt.Sprintf("smf: invalid argument: %s", e.Reason)
}

// NotMIDI reports that the first chunk of a stream is not MThd — the input
// is very likely not a Standard MIDI File at all.
type NotMIDI struct {
	Actual string
}

func (e *NotMIDI) Error() string {
	return fmt.Sprintf("smf: not a MIDI file: expected MThd, got %q", e.Actual)
}

// NotSupported reports a valid but unimplemented construct, such as a
// realtime or system-common status byte appearing inside a track.
type NotSupported struct {
	Reason string
}

func (e *NotSupported) Error() string {
	return fmt.Sprintf("smf: not supported: %s", e.Reason)
}

// InvalidVarInt reports a variable-length quantity that did not terminate
// within four bytes.
type InvalidVarInt struct {
	Byte int
}

func (e *InvalidVarInt) Error() string {
	return fmt.Sprintf("smf: invalid VarInt at byte %d: no terminating byte within 4 bytes", e.Byte)
}

// Overflow reports a Cursor read or slice that would cross the end of its
// backing buffer.
type Overflow struct {
	Requested int
	Position  int
	Size      int
}

func (e *Overflow) Error() string {
	return fmt.Sprintf("smf: overflow: requested %d bytes at position %d of %d", e.Requested, e.Position, e.Size)
}
