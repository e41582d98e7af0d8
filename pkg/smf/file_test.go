package smf

import (
	"bytes"
	"testing"
)

func TestParseMinimalFile(t *testing.T) {
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x01, 0x00, 0x01, 0x00, 0x60,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04, 0x00, 0xFF, 0x2F, 0x00,
	}
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.FileType() != MultiTrackSync {
		t.Errorf("FileType() = %v, want MultiTrackSync", f.FileType())
	}
	if len(f.Tracks()) != 1 {
		t.Fatalf("len(Tracks()) = %d, want 1", len(f.Tracks()))
	}
	if f.Division().SMPTE || f.Division().TicksPerQuarterNote != 0x60 {
		t.Errorf("Division() = %+v", f.Division())
	}
	track := f.Tracks()[0]
	if len(track.Events()) != 1 {
		t.Fatalf("len(track.Events()) = %d, want 1", len(track.Events()))
	}
	eot, ok := track.Events()[0].(*MetaEvent)
	if !ok || !eot.IsEndOfTrack() || eot.Delay != 0 {
		t.Errorf("track.Events()[0] = %+v", track.Events()[0])
	}

	encoded, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(encoded, data) {
		t.Errorf("Encode() = % X, want % X", encoded, data)
	}
}

func TestEmptyFileEncodesTo14Bytes(t *testing.T) {
	f := New(MultiTrackSync, NewMetricalDivision(0))
	encoded, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 14 {
		t.Errorf("len(encoded) = %d, want 14", len(encoded))
	}
}

func TestEndOfTrackOnlyTrackEncodesTo12Bytes(t *testing.T) {
	f := New(MultiTrackSync, NewMetricalDivision(96))
	if _, err := f.AddTrack(0, nil); err != nil {
		t.Fatalf("AddTrack: %v", err)
	}
	encoded, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	trackBytes := encoded[14:]
	if len(trackBytes) != 12 {
		t.Fatalf("len(trackBytes) = %d, want 12", len(trackBytes))
	}
	want := []byte{0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04, 0x00, 0xFF, 0x2F, 0x00}
	if !bytes.Equal(trackBytes, want) {
		t.Errorf("trackBytes = % X, want % X", trackBytes, want)
	}
}

func TestNoteOnOffRunningStatus(t *testing.T) {
	noteOn, err := NewChannelEvent(0, NoteOn, 0, 60, 64)
	if err != nil {
		t.Fatalf("NewChannelEvent: %v", err)
	}
	noteOff, err := NewChannelEvent(96, NoteOn, 0, 60, 0)
	if err != nil {
		t.Fatalf("NewChannelEvent: %v", err)
	}

	track := &Track{events: []Event{noteOn, noteOff, NewEndOfTrack(0)}}
	body, err := writeTrackBody(track)
	if err != nil {
		t.Fatalf("writeTrackBody: %v", err)
	}

	want := []byte{0x00, 0x90, 0x3C, 0x40, 0x60, 0x3C, 0x00}
	got := body.Bytes()[:7]
	if !bytes.Equal(got, want) {
		t.Errorf("encoded event bytes = % X, want % X", got, want)
	}

	decoded, err := readTrackBody(NewCursor(body.Bytes()))
	if err != nil {
		t.Fatalf("readTrackBody: %v", err)
	}
	if len(decoded.Events()) != 3 {
		t.Fatalf("len(decoded.Events()) = %d, want 3", len(decoded.Events()))
	}
	ev0 := decoded.Events()[0].(*ChannelEvent)
	ev1 := decoded.Events()[1].(*ChannelEvent)
	if ev0.Type != NoteOn || ev0.Param1 != 60 || ev0.Param2 != 64 {
		t.Errorf("decoded[0] = %+v", ev0)
	}
	if ev1.Type != NoteOn || ev1.Delay != 96 || ev1.Param1 != 60 || ev1.Param2 != 0 {
		t.Errorf("decoded[1] = %+v", ev1)
	}
}

func TestTempoMetaEncoding(t *testing.T) {
	ev, err := NewMetaEvent(0, MetaSetTempo, []byte{0x07, 0xA1, 0x20})
	if err != nil {
		t.Fatalf("NewMetaEvent: %v", err)
	}
	sink := NewSink()
	if _, err := writeEvent(sink, ev, 0); err != nil {
		t.Fatalf("writeEvent: %v", err)
	}
	want := []byte{0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20}
	if !bytes.Equal(sink.Bytes(), want) {
		t.Errorf("encoded = % X, want % X", sink.Bytes(), want)
	}

	decoded, _, err := readEvent(NewCursor(sink.Bytes()), 0)
	if err != nil {
		t.Fatalf("readEvent: %v", err)
	}
	meta := decoded.(*MetaEvent)
	if meta.Type != MetaSetTempo || meta.MicrosecondsPerBeat() != 500000 {
		t.Errorf("decoded = %+v", meta)
	}
}

func TestParseBadMagicFails(t *testing.T) {
	_, err := Parse([]byte("RIFFxxxxxxxxxxxxxxxxxxxx"))
	if _, ok := err.(*NotMIDI); !ok {
		t.Fatalf("expected *NotMIDI, got %T (%v)", err, err)
	}
}

func TestParseTruncatedVarIntFails(t *testing.T) {
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x01, 0x00, 0x01, 0x00, 0x60,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04, 0xFF, 0xFF, 0xFF, 0xFF,
	}
	_, err := Parse(data)
	if _, ok := err.(*InvalidVarInt); !ok {
		t.Fatalf("expected *InvalidVarInt, got %T (%v)", err, err)
	}
}

func TestAddTrackMutation(t *testing.T) {
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x01, 0x00, 0x01, 0x00, 0x60,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04, 0x00, 0xFF, 0x2F, 0x00,
	}
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	noteOn, _ := NewChannelEvent(0, NoteOn, 1, 69, 100)
	if _, err := f.AddTrack(1, []Event{noteOn, NewEndOfTrack(480)}); err != nil {
		t.Fatalf("AddTrack: %v", err)
	}
	encoded, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	trackCount := uint16(encoded[10])<<8 | uint16(encoded[11])
	if trackCount != 2 {
		t.Errorf("trackCount = %d, want 2", trackCount)
	}

	reparsed, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse(encoded): %v", err)
	}
	if len(reparsed.Tracks()) != 2 {
		t.Fatalf("len(reparsed.Tracks()) = %d, want 2", len(reparsed.Tracks()))
	}
	secondTrack := reparsed.Tracks()[1]
	if len(secondTrack.Events()) != 2 {
		t.Fatalf("len(secondTrack.Events()) = %d, want 2", len(secondTrack.Events()))
	}
}

func TestRemoveTrackFromEmptyFileFails(t *testing.T) {
	f := New(MultiTrackSync, NewMetricalDivision(96))
	if err := f.RemoveTrack(0); err == nil {
		t.Error("expected error removing track from empty file")
	}
}

func TestSingleTrackFileRejectsSecondTrack(t *testing.T) {
	f := New(SingleTrack, NewMetricalDivision(96))
	if _, err := f.AddTrack(0, nil); err != nil {
		t.Fatalf("AddTrack: %v", err)
	}
	if _, err := f.AddTrack(1, nil); err == nil {
		t.Error("expected error adding second track to single-track file")
	}
}

func TestRoundTripArbitraryFile(t *testing.T) {
	f := New(MultiTrackSync, NewMetricalDivision(480))
	noteOn, _ := NewChannelEvent(0, NoteOn, 2, 64, 90)
	ctrl, _ := NewChannelEvent(10, Controller, 2, 7, 127)
	tempo, _ := NewMetaEvent(0, MetaSetTempo, []byte{0x07, 0xA1, 0x20})
	if _, err := f.AddTrack(0, []Event{tempo, noteOn, ctrl}); err != nil {
		t.Fatalf("AddTrack: %v", err)
	}

	encoded, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	reparsed, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if reparsed.Division().TicksPerQuarterNote != 480 {
		t.Errorf("Division() = %+v", reparsed.Division())
	}
	events := reparsed.Tracks()[0].Events()
	if len(events) != 4 {
		t.Fatalf("len(events) = %d, want 4 (3 + synthesized EOT)", len(events))
	}
	last, ok := events[len(events)-1].(*MetaEvent)
	if !ok || !last.IsEndOfTrack() {
		t.Error("last event is not End-of-Track")
	}
}

func TestSMPTEDivisionRoundTrips(t *testing.T) {
	div := NewSMPTEDivision(25, 40)
	f := New(MultiTrackSync, div)
	if _, err := f.AddTrack(0, nil); err != nil {
		t.Fatalf("AddTrack: %v", err)
	}
	encoded, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	reparsed, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := reparsed.Division()
	if !got.SMPTE || got.FramesPerSecond != 25 || got.SubframesPerFrame != 40 {
		t.Errorf("Division() = %+v, want SMPTE 25/40", got)
	}
}

func TestTrackMissingEndOfTrackFailsParse(t *testing.T) {
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x01, 0x00, 0x01, 0x00, 0x60,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x03, 0x00, 0x90, 0x3C,
	}
	_, err := Parse(data)
	if _, ok := err.(*InvalidEvent); !ok {
		t.Fatalf("expected *InvalidEvent, got %T (%v)", err, err)
	}
}

func TestSingleTrackFileTypeRejectsMultipleTracksOnParse(t *testing.T) {
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x02, 0x00, 0x60,
	}
	_, err := Parse(data)
	if _, ok := err.(*InvalidArgument); !ok {
		t.Fatalf("expected *InvalidArgument, got %T (%v)", err, err)
	}
}

func TestParseSkipsUnknownChunk(t *testing.T) {
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x01, 0x00, 0x01, 0x00, 0x60,
		// unrecognized vendor chunk, must be silently skipped
		0x58, 0x54, 0x52, 0x41, 0x00, 0x00, 0x00, 0x02, 0xAA, 0xBB,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04, 0x00, 0xFF, 0x2F, 0x00,
	}
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Tracks()) != 1 {
		t.Fatalf("len(Tracks()) = %d, want 1", len(f.Tracks()))
	}
	eot, ok := f.Tracks()[0].Events()[0].(*MetaEvent)
	if !ok || !eot.IsEndOfTrack() {
		t.Errorf("track.Events()[0] = %+v, want End-of-Track", f.Tracks()[0].Events()[0])
	}
}

func TestParseMissingTrackChunkFailsWithParserError(t *testing.T) {
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x01, 0x00, 0x02, 0x00, 0x60,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04, 0x00, 0xFF, 0x2F, 0x00,
	}
	_, err := Parse(data)
	if _, ok := err.(*ParserError); !ok {
		t.Fatalf("expected *ParserError, got %T (%v)", err, err)
	}
}
