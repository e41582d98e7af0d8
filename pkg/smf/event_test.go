package smf

import "testing"

func TestNewChannelEventValidation(t *testing.T) {
	if _, err := NewChannelEvent(0, NoteOn, 16, 60, 64); err == nil {
		t.Error("expected error for channel > 15")
	}
	if _, err := NewChannelEvent(0, NoteOn, 0, 128, 64); err == nil {
		t.Error("expected error for param1 > 127")
	}
	if _, err := NewChannelEvent(0, NoteOn, 0, 60, 128); err == nil {
		t.Error("expected error for param2 > 127")
	}
	if _, err := NewChannelEvent(0, ChannelEventType(0xF), 0, 60, 64); err == nil {
		t.Error("expected error for unrecognized channel event type")
	}
	ev, err := NewChannelEvent(0, ProgramChange, 0, 5, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Param2 != 0 {
		t.Errorf("ProgramChange.Param2 = %d, want 0 (forced)", ev.Param2)
	}
}

func TestNewMetaEventLengthValidation(t *testing.T) {
	if _, err := NewMetaEvent(0, MetaSetTempo, []byte{1, 2}); err == nil {
		t.Error("expected error for SET_TEMPO with wrong length")
	}
	if _, err := NewMetaEvent(0, MetaTimeSignature, []byte{4, 2, 24}); err == nil {
		t.Error("expected error for TIME_SIGNATURE with wrong length")
	}
	ev, err := NewMetaEvent(0, MetaSetTempo, []byte{0x07, 0xA1, 0x20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.MicrosecondsPerBeat() != 500000 {
		t.Errorf("MicrosecondsPerBeat() = %d, want 500000", ev.MicrosecondsPerBeat())
	}
}

func TestMetaEventAccessors(t *testing.T) {
	ts, _ := NewMetaEvent(0, MetaTimeSignature, []byte{4, 2, 24, 8})
	sig := ts.TimeSignature()
	if sig.Numerator != 4 || sig.DenominatorPower != 2 {
		t.Errorf("TimeSignature() = %+v", sig)
	}

	ks, _ := NewMetaEvent(0, MetaKeySignature, []byte{0xFE, 1})
	keySig := ks.KeySignature()
	if keySig.SharpsFlats != -2 || !keySig.Minor {
		t.Errorf("KeySignature() = %+v", keySig)
	}

	name, _ := NewMetaEvent(0, MetaSequenceName, []byte("lead"))
	if name.Text() != "lead" {
		t.Errorf("Text() = %q", name.Text())
	}

	eot := NewEndOfTrack(10)
	if !eot.IsEndOfTrack() {
		t.Error("IsEndOfTrack() false for End-of-Track event")
	}
	if eot.Delay != 10 {
		t.Errorf("Delay = %d, want 10", eot.Delay)
	}
}

func TestPitchBendValue(t *testing.T) {
	ev, err := NewChannelEvent(0, PitchBend, 0, 0x00, 0x40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.PitchBendValue() != 0x2000 {
		t.Errorf("PitchBendValue() = %#x, want 0x2000", ev.PitchBendValue())
	}
}
