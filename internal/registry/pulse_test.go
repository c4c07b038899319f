package registry

import (
	"errors"
	"testing"

	"github.com/jfreymuth/pulse/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/777genius/switch-audio/internal/device"
)

// fakePulse answers native-protocol requests from an in-memory sink table.
type fakePulse struct {
	sinks       []*proto.GetSinkInfoReply
	defaultSink string
	fail        map[string]error // keyed by request name
	setDefault  []string
	closed      bool
}

func stereoSink(index uint32, name, description string) *proto.GetSinkInfoReply {
	s := &proto.GetSinkInfoReply{
		SinkIndex:  index,
		SinkName:   name,
		Device:     description,
		ChannelMap: make(proto.ChannelMap, 2),
	}
	s.Channels = 2
	return s
}

func (f *fakePulse) RawRequest(cmd proto.RequestArgs, rpl proto.Reply) error {
	switch req := cmd.(type) {
	case *proto.GetSinkInfoList:
		if err := f.fail["list"]; err != nil {
			return err
		}
		*rpl.(*proto.GetSinkInfoListReply) = f.sinks
		return nil

	case *proto.GetServerInfo:
		if err := f.fail["server"]; err != nil {
			return err
		}
		*rpl.(*proto.GetServerInfoReply) = proto.GetServerInfoReply{DefaultSinkName: f.defaultSink}
		return nil

	case *proto.GetSinkInfo:
		if err := f.fail["sink"]; err != nil {
			return err
		}
		for _, s := range f.sinks {
			byName := req.SinkIndex == invalidIndex && s.SinkName == req.SinkName
			if byName || (req.SinkName == "" && s.SinkIndex == req.SinkIndex) {
				*rpl.(*proto.GetSinkInfoReply) = *s
				return nil
			}
		}
		return errors.New("no such entity")

	case *proto.SetDefaultSink:
		if err := f.fail["set"]; err != nil {
			return err
		}
		f.setDefault = append(f.setDefault, req.SinkName)
		f.defaultSink = req.SinkName
		return nil
	}
	return errors.New("unexpected request")
}

func (f *fakePulse) Close() {
	f.closed = true
}

func newFakePulse() *fakePulse {
	silent := stereoSink(2, "null.monitorless", "Silent")
	silent.Channels = 0
	silent.ChannelMap = nil

	return &fakePulse{
		sinks: []*proto.GetSinkInfoReply{
			stereoSink(0, "alsa_output.pci.analog-stereo", "Built-in Audio Analog Stereo"),
			stereoSink(1, "alsa_output.usb-dac", "USB-DAC"),
			silent,
		},
		defaultSink: "alsa_output.pci.analog-stereo",
	}
}

func TestPulseDevicesOffsetsIndex(t *testing.T) {
	p := newPulse(newFakePulse())

	ids, err := p.Devices()
	require.NoError(t, err)
	assert.Equal(t, []device.ID{1, 2, 3}, ids)
	assert.NotContains(t, ids, device.Unknown)
}

func TestPulseDevicesError(t *testing.T) {
	fake := newFakePulse()
	fake.fail = map[string]error{"list": errors.New("connection reset")}
	p := newPulse(fake)

	_, err := p.Devices()
	require.Error(t, err)
	assert.True(t, device.IsRegistryError(err))
}

func TestPulseDefaultOutput(t *testing.T) {
	fake := newFakePulse()
	p := newPulse(fake)
	assert.Equal(t, device.ID(1), p.DefaultOutput())

	fake.defaultSink = "alsa_output.usb-dac"
	assert.Equal(t, device.ID(2), p.DefaultOutput())

	fake.defaultSink = ""
	assert.Equal(t, device.Unknown, p.DefaultOutput())

	fake.defaultSink = "gone"
	assert.Equal(t, device.Unknown, p.DefaultOutput())

	fake.fail = map[string]error{"server": errors.New("timeout")}
	assert.Equal(t, device.Unknown, p.DefaultOutput())
}

func TestPulseName(t *testing.T) {
	p := newPulse(newFakePulse())

	name, ok := p.Name(2)
	assert.True(t, ok)
	assert.Equal(t, "USB-DAC", name)

	_, ok = p.Name(42)
	assert.False(t, ok)

	_, ok = p.Name(device.Unknown)
	assert.False(t, ok)
}

func TestPulseSupportsOutput(t *testing.T) {
	fake := newFakePulse()
	p := newPulse(fake)

	assert.True(t, p.SupportsOutput(1))
	assert.True(t, p.SupportsOutput(2))
	assert.False(t, p.SupportsOutput(3), "zero channels")
	assert.False(t, p.SupportsOutput(9), "missing sink")

	fake.fail = map[string]error{"sink": errors.New("protocol error")}
	assert.False(t, p.SupportsOutput(1), "query failure is fail-closed")
}

func TestPulseSetDefaultOutput(t *testing.T) {
	fake := newFakePulse()
	p := newPulse(fake)

	require.NoError(t, p.SetDefaultOutput(2))
	assert.Equal(t, []string{"alsa_output.usb-dac"}, fake.setDefault)
	assert.Equal(t, device.ID(2), p.DefaultOutput())
}

func TestPulseSetDefaultOutputErrors(t *testing.T) {
	fake := newFakePulse()
	p := newPulse(fake)

	err := p.SetDefaultOutput(device.Unknown)
	require.Error(t, err)
	assert.ErrorIs(t, err, device.ErrNotFound)

	err = p.SetDefaultOutput(77)
	require.Error(t, err)
	assert.True(t, device.IsRegistryError(err))

	fake.fail = map[string]error{"set": errors.New("access denied")}
	err = p.SetDefaultOutput(1)
	require.Error(t, err)
	assert.True(t, device.IsRegistryError(err))
	assert.Empty(t, fake.setDefault)
}

func TestPulseClose(t *testing.T) {
	fake := newFakePulse()
	p := newPulse(fake)

	assert.NoError(t, p.Close())
	assert.True(t, fake.closed)
}

func TestSinkIDRoundTrip(t *testing.T) {
	assert.Equal(t, device.ID(1), sinkID(0))
	assert.Equal(t, uint32(0), sinkIndex(sinkID(0)))
	assert.Equal(t, device.Unknown, sinkID(invalidIndex))
}
