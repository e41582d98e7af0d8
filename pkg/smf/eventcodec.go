package smf

const (
	statusSysexStart = 0xF0
	statusSysexEnd   = 0xF7
	statusMeta       = 0xFF
)

// readEvent decodes a single event from c, threading running status
// explicitly: runningStatus is the status byte in effect from the previous
// event in the same track (0 if none yet), and the returned status is the
// value to pass as runningStatus for the next call. This mirrors the wire
// format's own rule that a status byte persists across events until a new
// one is seen, without hiding that rule as parser-internal field state.
func readEvent(c *Cursor, runningStatus uint8) (Event, uint8, error) {
	delay, err := decodeVarInt(c)
	if err != nil {
		return nil, runningStatus, err
	}

	statusByte, err := c.PeekUint8()
	if err != nil {
		return nil, runningStatus, err
	}

	var status uint8
	if statusByte&0x80 != 0 {
		status = statusByte
		if _, err := c.ReadUint8(); err != nil {
			return nil, runningStatus, err
		}
	} else {
		if runningStatus == 0 {
			return nil, runningStatus, &InvalidEvent{Reason: "running status byte with no prior status", Byte: c.Tell()}
		}
		status = runningStatus
	}

	switch {
	case status == statusMeta:
		ev, err := readMetaEvent(c, delay)
		return ev, 0, err
	case status == statusSysexStart || status == statusSysexEnd:
		ev, err := readSysexEvent(c, delay)
		return ev, 0, err
	case status >= 0xF1 && status <= 0xFE:
		return nil, 0, &NotSupported{Reason: "system-common/realtime status 0x" + hexByte(status) + " inside track"}
	default:
		ev, err := readChannelEvent(c, delay, status)
		return ev, status, err
	}
}

func readMetaEvent(c *Cursor, delay uint32) (*MetaEvent, error) {
	metaType, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	length, err := decodeVarInt(c)
	if err != nil {
		return nil, err
	}
	data, err := c.ReadBytes(int(length))
	if err != nil {
		return nil, err
	}
	if err := validateMetaLength(metaType, len(data)); err != nil {
		return nil, err
	}
	return &MetaEvent{Delay: delay, Type: metaType, Data: data}, nil
}

func readSysexEvent(c *Cursor, delay uint32) (*SysexEvent, error) {
	length, err := decodeVarInt(c)
	if err != nil {
		return nil, err
	}
	data, err := c.ReadBytes(int(length))
	if err != nil {
		return nil, err
	}
	return &SysexEvent{Delay: delay, Data: data}, nil
}

func readChannelEvent(c *Cursor, delay uint32, status uint8) (*ChannelEvent, error) {
	t := ChannelEventType(status >> 4)
	channel := status & 0x0F
	if !isKnownChannelEventType(t) {
		return nil, &InvalidEvent{Reason: "unrecognized status byte", Byte: c.Tell()}
	}
	param1, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	if param1 > 0x7F {
		return nil, &InvalidEvent{Reason: "data byte has high bit set", Byte: c.Tell()}
	}
	var param2 uint8
	if channelEventHasParam2(t) {
		param2, err = c.ReadUint8()
		if err != nil {
			return nil, err
		}
		if param2 > 0x7F {
			return nil, &InvalidEvent{Reason: "data byte has high bit set", Byte: c.Tell()}
		}
	}
	return &ChannelEvent{Delay: delay, Type: t, Channel: channel, Param1: param1, Param2: param2}, nil
}

// writeEvent encodes e onto c, applying running-status compression: the
// status byte is omitted when it is identical to runningStatus. It returns
// the running status in effect after e, for use encoding the next event.
func writeEvent(c *Cursor, e Event, runningStatus uint8) (uint8, error) {
	if err := encodeVarInt(c, e.EventDelay()); err != nil {
		return runningStatus, err
	}

	switch ev := e.(type) {
	case *MetaEvent:
		c.WriteUint8(statusMeta)
		c.WriteUint8(ev.Type)
		if err := encodeVarInt(c, uint32(len(ev.Data))); err != nil {
			return 0, err
		}
		c.WriteBytes(ev.Data)
		return 0, nil

	case *SysexEvent:
		c.WriteUint8(statusSysexStart)
		if err := encodeVarInt(c, uint32(len(ev.Data))); err != nil {
			return 0, err
		}
		c.WriteBytes(ev.Data)
		return 0, nil

	case *ChannelEvent:
		status := uint8(ev.Type)<<4 | (ev.Channel & 0x0F)
		if status != runningStatus {
			c.WriteUint8(status)
		}
		c.WriteUint8(ev.Param1)
		if channelEventHasParam2(ev.Type) {
			c.WriteUint8(ev.Param2)
		}
		return status, nil

	default:
		return runningStatus, &EncoderError{Reason: "unrecognized event type"}
	}
}
