package registry

import (
	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"

	"github.com/777genius/switch-audio/internal/device"
	"github.com/777genius/switch-audio/internal/logging"
)

// invalidIndex is PA_INVALID_INDEX; lookups by name must send it as the index.
const invalidIndex = 0xffffffff

// pulseConn is the subset of *pulse.Client used by the Pulse backend.
type pulseConn interface {
	RawRequest(cmd proto.RequestArgs, rpl proto.Reply) error
	Close()
}

// Pulse talks to a PulseAudio (or PipeWire-Pulse) server over its native
// protocol. Sink index n is exposed as device ID n+1 so that index 0 does not
// collide with device.Unknown.
type Pulse struct {
	conn pulseConn
}

// OpenPulse connects to the default Pulse server.
func OpenPulse() (*Pulse, error) {
	c, err := pulse.NewClient(pulse.ClientApplicationName("switch-audio"))
	if err != nil {
		return nil, &device.RegistryError{Op: "connect to pulse server", Err: err}
	}
	return newPulse(c), nil
}

func newPulse(conn pulseConn) *Pulse {
	return &Pulse{conn: conn}
}

func sinkID(index uint32) device.ID {
	if index == invalidIndex {
		return device.Unknown
	}
	return device.ID(index + 1)
}

func sinkIndex(id device.ID) uint32 {
	return uint32(id) - 1
}

// Devices lists every sink in server order.
func (p *Pulse) Devices() ([]device.ID, error) {
	var sinks proto.GetSinkInfoListReply
	if err := p.conn.RawRequest(&proto.GetSinkInfoList{}, &sinks); err != nil {
		return nil, &device.RegistryError{Op: "list sinks", Err: err}
	}

	ids := make([]device.ID, 0, len(sinks))
	for _, s := range sinks {
		if id := sinkID(s.SinkIndex); id != device.Unknown {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (p *Pulse) sink(id device.ID) (*proto.GetSinkInfoReply, error) {
	if id == device.Unknown {
		return nil, &device.RegistryError{Op: "get sink info", Err: device.ErrNotFound}
	}
	var info proto.GetSinkInfoReply
	if err := p.conn.RawRequest(&proto.GetSinkInfo{SinkIndex: sinkIndex(id)}, &info); err != nil {
		return nil, &device.RegistryError{Op: "get sink info", Err: err}
	}
	return &info, nil
}

// DefaultOutput resolves the server's default sink name to a device ID.
func (p *Pulse) DefaultOutput() device.ID {
	var server proto.GetServerInfoReply
	if err := p.conn.RawRequest(&proto.GetServerInfo{}, &server); err != nil {
		logging.Debug("Pulse server info failed: %v", err)
		return device.Unknown
	}
	if server.DefaultSinkName == "" {
		return device.Unknown
	}

	var info proto.GetSinkInfoReply
	req := &proto.GetSinkInfo{SinkIndex: invalidIndex, SinkName: server.DefaultSinkName}
	if err := p.conn.RawRequest(req, &info); err != nil {
		logging.Debug("Pulse default sink %q lookup failed: %v", server.DefaultSinkName, err)
		return device.Unknown
	}
	return sinkID(info.SinkIndex)
}

// Name returns the sink description, which is what desktop mixers display.
func (p *Pulse) Name(id device.ID) (string, bool) {
	info, err := p.sink(id)
	if err != nil {
		return "", false
	}
	return info.Device, true
}

// SupportsOutput treats the sink's sample spec as its single output buffer.
func (p *Pulse) SupportsOutput(id device.ID) bool {
	info, err := p.sink(id)
	if err != nil {
		return false
	}
	return info.Channels > 0 && len(info.ChannelMap) > 0
}

// SetDefaultOutput makes the sink the server default. The protocol takes
// a sink name, so the index is resolved first.
func (p *Pulse) SetDefaultOutput(id device.ID) error {
	info, err := p.sink(id)
	if err != nil {
		return err
	}
	if err := p.conn.RawRequest(&proto.SetDefaultSink{SinkName: info.SinkName}, nil); err != nil {
		return &device.RegistryError{Op: "set default sink", Err: err}
	}
	logging.Debug("Default sink set to %s", info.SinkName)
	return nil
}

func (p *Pulse) Close() error {
	p.conn.Close()
	return nil
}
