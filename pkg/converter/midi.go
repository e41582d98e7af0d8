package converter

import (
	"errors"
	"fmt"
	"os"

	"github.com/jcarter/synthtribe2midi/pkg/smf"
)

// MIDIConverter handles MIDI file parsing and generation
type MIDIConverter struct {
	ticksPerQuarter uint16
	tempo           float64
}

// NewMIDIConverter creates a new MIDI converter
func NewMIDIConverter() *MIDIConverter {
	return &MIDIConverter{
		ticksPerQuarter: 480,
		tempo:           120.0,
	}
}

// ParseMIDIFile reads a MIDI file and extracts pattern data
func (m *MIDIConverter) ParseMIDIFile(filename string) (*Pattern, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read MIDI file: %w", err)
	}
	return m.ParseMIDI(data)
}

// ParseMIDI parses MIDI data and extracts pattern data
func (m *MIDIConverter) ParseMIDI(data []byte) (*Pattern, error) {
	f, err := smf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	if div := f.Division(); !div.SMPTE && div.TicksPerQuarterNote > 0 {
		m.ticksPerQuarter = div.TicksPerQuarterNote
	}

	pattern := &Pattern{
		Name:   "MIDI Pattern",
		Steps:  make([]Step, 0, 16),
		Length: 16,
		Tempo:  m.tempo,
	}

	// Calculate ticks per step (assuming 16th notes in a 4/4 bar)
	ticksPerStep := int64(m.ticksPerQuarter) / 4
	if ticksPerStep == 0 {
		ticksPerStep = 1
	}

	type noteEvent struct {
		tick     int64
		note     uint8
		velocity uint8
		on       bool
	}

	var events []noteEvent

	for _, track := range f.Tracks() {
		var currentTick int64
		for _, ev := range track.Events() {
			currentTick += int64(ev.EventDelay())

			switch e := ev.(type) {
			case *smf.MetaEvent:
				if e.Type == smf.MetaSetTempo {
					microsecondsPerBeat := e.MicrosecondsPerBeat()
					if microsecondsPerBeat > 0 {
						m.tempo = 60000000.0 / float64(microsecondsPerBeat)
						pattern.Tempo = m.tempo
					}
				}
			case *smf.ChannelEvent:
				switch e.Type {
				case smf.NoteOn:
					if e.Param2 > 0 {
						events = append(events, noteEvent{tick: currentTick, note: e.Param1, velocity: e.Param2, on: true})
					} else {
						events = append(events, noteEvent{tick: currentTick, note: e.Param1, velocity: 0, on: false})
					}
				case smf.NoteOff:
					events = append(events, noteEvent{tick: currentTick, note: e.Param1, velocity: 0, on: false})
				}
			}
		}
	}

	// Quantize events to steps
	steps := make([]Step, 16)
	for i := range steps {
		steps[i] = Step{Note: 0, Gate: false}
	}

	for _, ev := range events {
		if !ev.on {
			continue
		}

		stepIndex := int(ev.tick / ticksPerStep)
		if stepIndex >= 16 {
			stepIndex = stepIndex % 16
		}

		steps[stepIndex].Note = ev.note
		steps[stepIndex].Gate = true
		steps[stepIndex].Velocity = ev.velocity
		steps[stepIndex].Accent = ev.velocity > 100
	}

	// Detect slides and ties by looking at consecutive notes
	for i := 0; i < 15; i++ {
		if steps[i].Gate && steps[i+1].Gate {
			noteDiff := int(steps[i+1].Note) - int(steps[i].Note)
			if noteDiff >= -2 && noteDiff <= 2 && noteDiff != 0 {
				steps[i].Slide = true
			}
			if steps[i].Note == steps[i+1].Note {
				steps[i].Tie = true
			}
		}
	}

	pattern.Steps = steps
	return pattern, nil
}

// GenerateMIDI creates MIDI data from a Pattern
func (m *MIDIConverter) GenerateMIDI(pattern *Pattern) ([]byte, error) {
	if pattern == nil {
		return nil, errors.New("nil pattern")
	}

	if pattern.Tempo <= 0 {
		pattern.Tempo = 120.0
	}

	f := smf.New(smf.MultiTrackSync, smf.NewMetricalDivision(m.ticksPerQuarter))

	var events []smf.Event

	microsecondsPerBeat := uint32(60000000.0 / pattern.Tempo)
	tempoEvent, err := smf.NewMetaEvent(0, smf.MetaSetTempo, []byte{
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build tempo event: %w", err)
	}
	events = append(events, tempoEvent)

	timeSigEvent, err := smf.NewMetaEvent(0, smf.MetaTimeSignature, []byte{4, 2, 24, 8})
	if err != nil {
		return nil, fmt.Errorf("failed to build time signature event: %w", err)
	}
	events = append(events, timeSigEvent)

	// Calculate ticks per step (16th notes)
	ticksPerStep := uint32(m.ticksPerQuarter) / 4
	if ticksPerStep == 0 {
		ticksPerStep = 1
	}

	numSteps := len(pattern.Steps)
	if numSteps == 0 {
		numSteps = 16
	}
	totalPatternTicks := uint32(numSteps) * ticksPerStep

	// Default note length (75% of step for staccato feel, like 303)
	defaultNoteLength := (ticksPerStep * 3) / 4
	if defaultNoteLength == 0 {
		defaultNoteLength = ticksPerStep - 1
	}

	const channel = uint8(0)
	var currentTick uint32

	for i := 0; i < len(pattern.Steps); i++ {
		step := pattern.Steps[i]

		if !step.Gate {
			continue
		}
		// Tied notes extend the previous note; handled via duration below.
		if step.Tie && i > 0 {
			continue
		}

		stepTick := uint32(i) * ticksPerStep
		delta := stepTick - currentTick

		velocity := step.Velocity
		if velocity == 0 {
			velocity = 100
		}
		if step.Accent {
			velocity = 127
		}

		noteOn, err := smf.NewChannelEvent(delta, smf.NoteOn, channel, step.Note, velocity)
		if err != nil {
			return nil, fmt.Errorf("failed to build note-on event: %w", err)
		}
		events = append(events, noteOn)
		currentTick = stepTick

		noteDuration := defaultNoteLength

		if step.Slide {
			noteDuration = ticksPerStep + (ticksPerStep / 4) // Overlap into next step
		}

		tieCount := 0
		for j := i + 1; j < len(pattern.Steps); j++ {
			if pattern.Steps[j].Tie && pattern.Steps[j].Gate {
				tieCount++
			} else {
				break
			}
		}

		if tieCount > 0 {
			noteDuration = ticksPerStep * uint32(tieCount+1)
			if !step.Slide {
				noteDuration -= ticksPerStep / 8 // Slight gap before next note
			}
		}

		noteOff, err := smf.NewChannelEvent(noteDuration, smf.NoteOff, channel, step.Note, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to build note-off event: %w", err)
		}
		events = append(events, noteOff)
		currentTick += noteDuration
	}

	if currentTick < totalPatternTicks {
		remainingTicks := totalPatternTicks - currentTick
		padding, err := smf.NewMetaEvent(remainingTicks, smf.MetaMarker, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build padding marker: %w", err)
		}
		events = append(events, padding)
	}

	if _, err := f.AddTrack(0, events); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	out, err := f.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return out, nil
}

// WriteMIDIFile writes MIDI data to a file
func (m *MIDIConverter) WriteMIDIFile(pattern *Pattern, filename string) error {
	data, err := m.GenerateMIDI(pattern)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
