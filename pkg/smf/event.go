package smf

// Meta event type constants recognized by the codec. Unrecognized types
// are passed through as opaque data.
const (
	MetaSequenceNumber = 0x00
	MetaText           = 0x01
	MetaCopyright      = 0x02
	MetaSequenceName   = 0x03
	MetaInstrumentName = 0x04
	MetaLyric          = 0x05
	MetaMarker         = 0x06
	MetaCuePoint       = 0x07
	MetaMIDIChannel    = 0x20
	MetaEndOfTrack     = 0x2F
	MetaSetTempo       = 0x51
	MetaTimeSignature  = 0x58
	MetaKeySignature   = 0x59
)

// ChannelEventType identifies the high nibble of a channel voice message's
// status byte.
type ChannelEventType uint8

const (
	NoteOff            ChannelEventType = 0x8
	NoteOn             ChannelEventType = 0x9
	KeyAftertouch      ChannelEventType = 0xA
	Controller         ChannelEventType = 0xB
	ProgramChange      ChannelEventType = 0xC
	ChannelAftertouch  ChannelEventType = 0xD
	PitchBend          ChannelEventType = 0xE
)

// channelEventHasParam2 reports whether a channel event of the given type
// carries a second data byte on the wire.
func channelEventHasParam2(t ChannelEventType) bool {
	return t != ProgramChange && t != ChannelAftertouch
}

func isKnownChannelEventType(t ChannelEventType) bool {
	switch t {
	case NoteOff, NoteOn, KeyAftertouch, Controller, ProgramChange, ChannelAftertouch, PitchBend:
		return true
	}
	return false
}

// Event is the common interface implemented by MetaEvent, SysexEvent, and
// ChannelEvent. Every variant carries Delay: the number of ticks elapsed
// since the previous event in the same track.
type Event interface {
	EventDelay() uint32
	setDelay(uint32)
	isEvent()
}

// MetaEvent carries a meta type and a type-dependent payload. Typed
// accessors are provided below for the recognized types; Data is always
// the raw payload, preserved verbatim for unrecognized types.
type MetaEvent struct {
	Delay uint32
	Type  uint8
	Data  []byte
}

func (e *MetaEvent) EventDelay() uint32  { return e.Delay }
func (e *MetaEvent) setDelay(d uint32)   { e.Delay = d }
func (*MetaEvent) isEvent()              {}

// NewMetaEvent constructs a MetaEvent, validating the payload length
// against the recognized type's fixed shape when the type is known.
func NewMetaEvent(delay uint32, metaType uint8, data []byte) (*MetaEvent, error) {
	if err := validateMetaLength(metaType, len(data)); err != nil {
		return nil, err
	}
	return &MetaEvent{Delay: delay, Type: metaType, Data: append([]byte(nil), data...)}, nil
}

func validateMetaLength(metaType uint8, n int) error {
	want := -1
	switch metaType {
	case MetaSequenceNumber:
		want = 2
	case MetaMIDIChannel:
		want = 1
	case MetaSetTempo:
		want = 3
	case MetaTimeSignature:
		want = 4
	case MetaKeySignature:
		want = 2
	case MetaEndOfTrack:
		want = 0
	}
	if want >= 0 && n != want {
		return &InvalidEvent{Reason: metaLengthReason(metaType, want, n)}
	}
	return nil
}

func metaLengthReason(metaType uint8, want, got int) string {
	return "meta type 0x" + hexByte(metaType) + " requires " + itoa(want) + " data bytes, got " + itoa(got)
}

// NewEndOfTrack constructs the mandatory terminal End-of-Track meta event.
func NewEndOfTrack(delay uint32) *MetaEvent {
	return &MetaEvent{Delay: delay, Type: MetaEndOfTrack, Data: nil}
}

// IsEndOfTrack reports whether e is the End-of-Track meta event.
func (e *MetaEvent) IsEndOfTrack() bool {
	return e.Type == MetaEndOfTrack
}

// SequenceNumber returns the 2-byte sequence number payload. Only valid
// when Type == MetaSequenceNumber.
func (e *MetaEvent) SequenceNumber() uint16 {
	if len(e.Data) < 2 {
		return 0
	}
	return uint16(e.Data[0])<<8 | uint16(e.Data[1])
}

// Text returns the meta event's payload decoded as ASCII text. Valid for
// MetaText, MetaSequenceName, MetaInstrumentName, MetaLyric, MetaMarker,
// MetaCuePoint, and MetaCopyright.
func (e *MetaEvent) Text() string {
	return string(e.Data)
}

// MIDIChannel returns the single-byte MIDI channel prefix payload. Only
// valid when Type == MetaMIDIChannel.
func (e *MetaEvent) MIDIChannel() uint8 {
	if len(e.Data) < 1 {
		return 0
	}
	return e.Data[0]
}

// MicrosecondsPerBeat returns the 24-bit tempo payload. Only valid when
// Type == MetaSetTempo.
func (e *MetaEvent) MicrosecondsPerBeat() uint32 {
	if len(e.Data) < 3 {
		return 0
	}
	return uint32(e.Data[0])<<16 | uint32(e.Data[1])<<8 | uint32(e.Data[2])
}

// TimeSignature holds the decoded fields of a TIME_SIGNATURE meta event.
type TimeSignature struct {
	Numerator          uint8
	DenominatorPower   uint8 // denominator = 2^DenominatorPower
	ClocksPerClick     uint8
	ThirtySecondsPerBeat uint8
}

// TimeSignature returns the decoded time signature payload. Only valid
// when Type == MetaTimeSignature.
func (e *MetaEvent) TimeSignature() TimeSignature {
	if len(e.Data) < 4 {
		return TimeSignature{}
	}
	return TimeSignature{
		Numerator:            e.Data[0],
		DenominatorPower:     e.Data[1],
		ClocksPerClick:       e.Data[2],
		ThirtySecondsPerBeat: e.Data[3],
	}
}

// KeySignature holds the decoded fields of a KEY_SIGNATURE meta event.
type KeySignature struct {
	SharpsFlats int8 // negative = flats, positive = sharps
	Minor       bool
}

// KeySignature returns the decoded key signature payload. Only valid when
// Type == MetaKeySignature.
func (e *MetaEvent) KeySignature() KeySignature {
	if len(e.Data) < 2 {
		return KeySignature{}
	}
	return KeySignature{SharpsFlats: int8(e.Data[0]), Minor: e.Data[1] != 0}
}

// SysexEvent carries a System Exclusive payload, not including the leading
// 0xF0/0xF7 status byte nor a trailing 0xF7.
type SysexEvent struct {
	Delay uint32
	Data  []byte
}

func (e *SysexEvent) EventDelay() uint32 { return e.Delay }
func (e *SysexEvent) setDelay(d uint32)  { e.Delay = d }
func (*SysexEvent) isEvent()             {}

// NewSysexEvent constructs a SysexEvent.
func NewSysexEvent(delay uint32, data []byte) *SysexEvent {
	return &SysexEvent{Delay: delay, Data: append([]byte(nil), data...)}
}

// ChannelEvent carries a channel voice message: note on/off, controller
// change, program change, and so on.
type ChannelEvent struct {
	Delay   uint32
	Type    ChannelEventType
	Channel uint8
	Param1  uint8
	Param2  uint8
}

func (e *ChannelEvent) EventDelay() uint32 { return e.Delay }
func (e *ChannelEvent) setDelay(d uint32)  { e.Delay = d }
func (*ChannelEvent) isEvent()             {}

// NewChannelEvent constructs a ChannelEvent, validating the channel and
// data byte ranges.
func NewChannelEvent(delay uint32, t ChannelEventType, channel, param1, param2 uint8) (*ChannelEvent, error) {
	if !isKnownChannelEventType(t) {
		return nil, &InvalidArgument{Reason: "unrecognized channel event type"}
	}
	if channel > 15 {
		return nil, &InvalidArgument{Reason: "channel must be in 0..15"}
	}
	if param1 > 127 {
		return nil, &InvalidArgument{Reason: "param1 must be in 0..127"}
	}
	if channelEventHasParam2(t) && param2 > 127 {
		return nil, &InvalidArgument{Reason: "param2 must be in 0..127"}
	}
	if !channelEventHasParam2(t) {
		param2 = 0
	}
	return &ChannelEvent{Delay: delay, Type: t, Channel: channel, Param1: param1, Param2: param2}, nil
}

// PitchBendValue returns the 14-bit unsigned pitch bend value encoded by
// Param1 (LSB) and Param2 (MSB). Only meaningful when Type == PitchBend.
func (e *ChannelEvent) PitchBendValue() uint16 {
	return uint16(e.Param1) | uint16(e.Param2)<<7
}
