package smf

// Track is an ordered sequence of events sharing one running-status scope.
// Every Track must end with a MetaEvent whose Type is MetaEndOfTrack; this
// is enforced on parse and on encode.
type Track struct {
	events []Event
}

// Events returns the track's events in order. The returned slice shares
// storage with the Track; callers must not mutate it directly — use
// AddEvent/RemoveEvent instead.
func (t *Track) Events() []Event {
	return t.events
}

// Event returns the event at index i.
func (t *Track) Event(i int) (Event, bool) {
	if i < 0 || i >= len(t.events) {
		return nil, false
	}
	return t.events[i], true
}

// Len returns the number of events in the track, including End-of-Track.
func (t *Track) Len() int {
	return len(t.events)
}

// AddEvent inserts e at index, shifting subsequent events later. Index
// len(Events()) appends. Inserting after the existing End-of-Track event is
// rejected, since End-of-Track must remain last.
func (t *Track) AddEvent(index int, e Event) error {
	if index < 0 || index > len(t.events) {
		return &InvalidArgument{Reason: "event index out of range"}
	}
	if me, ok := e.(*MetaEvent); ok && me.IsEndOfTrack() && index != len(t.events) {
		return &InvalidArgument{Reason: "end-of-track must remain the final event"}
	}
	if n := len(t.events); n > 0 && index == n {
		if last, ok := t.events[n-1].(*MetaEvent); ok && last.IsEndOfTrack() {
			return &InvalidArgument{Reason: "cannot insert after the end-of-track event"}
		}
	}
	t.events = append(t.events, nil)
	copy(t.events[index+1:], t.events[index:])
	t.events[index] = e
	return nil
}

// RemoveEvent deletes the event at index. Removing the terminal
// End-of-Track event is rejected.
func (t *Track) RemoveEvent(index int) error {
	if index < 0 || index >= len(t.events) {
		return &InvalidArgument{Reason: "event index out of range"}
	}
	if me, ok := t.events[index].(*MetaEvent); ok && me.IsEndOfTrack() {
		return &InvalidArgument{Reason: "cannot remove the terminal end-of-track event"}
	}
	t.events = append(t.events[:index], t.events[index+1:]...)
	return nil
}

func readTrackBody(body *Cursor) (*Track, error) {
	var events []Event
	var runningStatus uint8
	for !body.EOF() {
		ev, status, err := readEvent(body, runningStatus)
		if err != nil {
			if _, ok := err.(*Overflow); ok {
				return nil, &InvalidEvent{Reason: "track data exhausted before an end-of-track event", Byte: body.Tell()}
			}
			return nil, err
		}
		runningStatus = status
		events = append(events, ev)
		if me, ok := ev.(*MetaEvent); ok && me.IsEndOfTrack() {
			break
		}
	}
	if len(events) == 0 {
		return nil, &InvalidEvent{Reason: "track is empty: expected an end-of-track event", Byte: body.Tell()}
	}
	last, ok := events[len(events)-1].(*MetaEvent)
	if !ok || !last.IsEndOfTrack() {
		return nil, &InvalidEvent{Reason: "track data exhausted before an end-of-track event", Byte: body.Tell()}
	}
	return &Track{events: events}, nil
}

func writeTrackBody(t *Track) (*Cursor, error) {
	c := NewSink()
	var runningStatus uint8
	for _, ev := range t.events {
		status, err := writeEvent(c, ev, runningStatus)
		if err != nil {
			return nil, err
		}
		runningStatus = status
	}
	needEOT := true
	if n := len(t.events); n > 0 {
		if me, ok := t.events[n-1].(*MetaEvent); ok && me.IsEndOfTrack() {
			needEOT = false
		}
	}
	if needEOT {
		if _, err := writeEvent(c, NewEndOfTrack(0), runningStatus); err != nil {
			return nil, err
		}
	}
	return c, nil
}
