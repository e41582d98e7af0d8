// Package liveio bridges the smf event model to live MIDI device I/O. It is
// the external collaborator the codec assumes but never imports: callers
// who want to play a parsed file out to real hardware, or capture incoming
// performance data as ChannelEvents, go through here.
package liveio

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/jcarter/synthtribe2midi/pkg/smf"
)

// Dispatcher sends ChannelEvents to a live output port. Delay is ignored —
// the caller is responsible for any scheduling; Dispatcher just turns an
// event into wire bytes and writes them.
type Dispatcher struct {
	send func(msg midi.Message) error
}

// NewDispatcher opens out for sending and returns a Dispatcher bound to it.
func NewDispatcher(out drivers.Out) (*Dispatcher, error) {
	send, err := midi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("liveio: open output port: %w", err)
	}
	return &Dispatcher{send: send}, nil
}

// Send writes ev to the dispatcher's output port as a 2-3 byte MIDI message.
func (d *Dispatcher) Send(ev *smf.ChannelEvent) error {
	msg, err := encodeChannelEvent(ev)
	if err != nil {
		return err
	}
	return d.send(msg)
}

// Listener receives live MIDI messages from an input port and reconstructs
// them as ChannelEvents, handing each to a callback.
type Listener struct {
	stop func()
}

// Listen starts receiving from in, invoking onEvent for every channel voice
// message. Non-channel messages (clock, sysex, and so on) are ignored —
// the live-I/O surface only deals in the event model's ChannelEvent shape,
// per the codec's collaborator contract.
func Listen(in drivers.In, onEvent func(*smf.ChannelEvent)) (*Listener, error) {
	stop, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		ev, ok := decodeChannelEvent(msg)
		if ok {
			onEvent(ev)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("liveio: listen on input port: %w", err)
	}
	return &Listener{stop: stop}, nil
}

// Stop ends the listener's subscription.
func (l *Listener) Stop() {
	if l.stop != nil {
		l.stop()
	}
}

func encodeChannelEvent(ev *smf.ChannelEvent) (midi.Message, error) {
	switch ev.Type {
	case smf.NoteOn:
		return midi.NoteOn(ev.Channel, ev.Param1, ev.Param2), nil
	case smf.NoteOff:
		return midi.NoteOff(ev.Channel, ev.Param1), nil
	case smf.Controller:
		return midi.ControlChange(ev.Channel, ev.Param1, ev.Param2), nil
	case smf.ProgramChange:
		return midi.ProgramChange(ev.Channel, ev.Param1), nil
	case smf.KeyAftertouch:
		return midi.PolyAfterTouch(ev.Channel, ev.Param1, ev.Param2), nil
	case smf.ChannelAftertouch:
		return midi.AfterTouch(ev.Channel, ev.Param1), nil
	case smf.PitchBend:
		return midi.Pitchbend(ev.Channel, int16(ev.PitchBendValue())-0x2000), nil
	default:
		return nil, fmt.Errorf("liveio: unsupported channel event type %v", ev.Type)
	}
}

func decodeChannelEvent(msg midi.Message) (*smf.ChannelEvent, bool) {
	var ch, key, vel, cc, val, pressure uint8
	var relPitch int16

	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		ev, err := smf.NewChannelEvent(0, smf.NoteOn, ch, key, vel)
		return ev, err == nil
	case msg.GetNoteOff(&ch, &key, &vel):
		ev, err := smf.NewChannelEvent(0, smf.NoteOff, ch, key, vel)
		return ev, err == nil
	case msg.GetControlChange(&ch, &cc, &val):
		ev, err := smf.NewChannelEvent(0, smf.Controller, ch, cc, val)
		return ev, err == nil
	case msg.GetProgramChange(&ch, &val):
		ev, err := smf.NewChannelEvent(0, smf.ProgramChange, ch, val, 0)
		return ev, err == nil
	case msg.GetPolyAfterTouch(&ch, &key, &pressure):
		ev, err := smf.NewChannelEvent(0, smf.KeyAftertouch, ch, key, pressure)
		return ev, err == nil
	case msg.GetAfterTouch(&ch, &pressure):
		ev, err := smf.NewChannelEvent(0, smf.ChannelAftertouch, ch, pressure, 0)
		return ev, err == nil
	case msg.GetPitchBend(&ch, &relPitch, nil):
		abs := uint16(int32(relPitch) + 0x2000)
		ev, err := smf.NewChannelEvent(0, smf.PitchBend, ch, uint8(abs&0x7F), uint8(abs>>7))
		return ev, err == nil
	default:
		return nil, false
	}
}
