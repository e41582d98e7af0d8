package smf

// File is a decoded Standard MIDI File: a header describing the file type
// and time division, plus an ordered list of tracks.
type File struct {
	fileType FileType
	division Division
	tracks   []*Track
}

// New constructs an empty File of the given type and division, with no
// tracks. Use AddTrack to populate it.
func New(fileType FileType, division Division) *File {
	return &File{fileType: fileType, division: division}
}

// FileType returns the file's format.
func (f *File) FileType() FileType {
	return f.fileType
}

// Division returns the file's time division.
func (f *File) Division() Division {
	return f.division
}

// Tracks returns the file's tracks in order. The returned slice shares
// storage with the File; callers must not mutate it directly — use
// AddTrack/RemoveTrack instead.
func (f *File) Tracks() []*Track {
	return f.tracks
}

// Track returns the track at index i.
func (f *File) Track(i int) (*Track, bool) {
	if i < 0 || i >= len(f.tracks) {
		return nil, false
	}
	return f.tracks[i], true
}

// AddTrack inserts a new track built from events at index, shifting
// subsequent tracks later. Index len(Tracks()) appends. If events does not
// already end with an End-of-Track meta event, one is appended with delay 0.
// Adding a second track to a SingleTrack file is rejected.
func (f *File) AddTrack(index int, events []Event) (*Track, error) {
	if index < 0 || index > len(f.tracks) {
		return nil, &InvalidArgument{Reason: "track index out of range"}
	}
	if f.fileType == SingleTrack && len(f.tracks) >= 1 {
		return nil, &InvalidArgument{Reason: "single-track file cannot hold more than one track"}
	}
	evs := append([]Event(nil), events...)
	if n := len(evs); n == 0 {
		evs = append(evs, NewEndOfTrack(0))
	} else if me, ok := evs[n-1].(*MetaEvent); !ok || !me.IsEndOfTrack() {
		evs = append(evs, NewEndOfTrack(0))
	}
	track := &Track{events: evs}
	f.tracks = append(f.tracks, nil)
	copy(f.tracks[index+1:], f.tracks[index:])
	f.tracks[index] = track
	return track, nil
}

// RemoveTrack deletes the track at index.
func (f *File) RemoveTrack(index int) error {
	if index < 0 || index >= len(f.tracks) {
		return &InvalidArgument{Reason: "track index out of range"}
	}
	f.tracks = append(f.tracks[:index], f.tracks[index+1:]...)
	return nil
}

// Parse decodes a Standard MIDI File from data. It fails with *NotMIDI if
// the stream does not begin with an MThd chunk, with *InvalidArgument for an
// invalid file type or track count in the header, with *NotSupported for a
// system-common or realtime status inside a track, and with *ParserError,
// *InvalidEvent, or *InvalidVarInt for any other structural problem. Chunks
// of unrecognized type found while looking for the next declared track are
// skipped; running out of data before all declared tracks are found is a
// *ParserError.
func Parse(data []byte) (*File, error) {
	c := NewCursor(data)

	headerBody, err := readChunkHeader(c, chunkTypeHeader)
	if err != nil {
		return nil, err
	}
	h, err := readHeader(headerBody)
	if err != nil {
		return nil, err
	}

	f := &File{fileType: h.fileType, division: h.division}
	for i := 0; i < int(h.trackCount); i++ {
		// Extra chunks of unknown type between or after the declared tracks
		// are silently skipped; the SMF format allows this.
		var trackBody *Cursor
		for {
			tagStart := c.Tell()
			tag, body, err := readChunkTagLength(c)
			if err != nil {
				return nil, &ParserError{Actual: "<missing chunk>", Expected: chunkTypeTrack, Byte: tagStart}
			}
			if tag == chunkTypeTrack {
				trackBody = body
				break
			}
		}
		track, err := readTrackBody(trackBody)
		if err != nil {
			return nil, err
		}
		f.tracks = append(f.tracks, track)
	}
	return f, nil
}

// Encode serializes the File back into Standard MIDI File bytes.
func (f *File) Encode() ([]byte, error) {
	if !f.fileType.valid() {
		return nil, &InvalidArgument{Reason: "file type must be 0, 1, or 2"}
	}
	if f.fileType == SingleTrack && len(f.tracks) > 1 {
		return nil, &InvalidArgument{Reason: "single-track file cannot hold more than one track"}
	}

	out := NewSink()
	hdr := &header{fileType: f.fileType, trackCount: uint16(len(f.tracks)), division: f.division}
	writeChunk(out, chunkTypeHeader, writeHeader(hdr))

	for _, t := range f.tracks {
		body, err := writeTrackBody(t)
		if err != nil {
			return nil, err
		}
		writeChunk(out, chunkTypeTrack, body)
	}
	return out.Bytes(), nil
}
