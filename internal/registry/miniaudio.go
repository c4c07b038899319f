package registry

import (
	"fmt"

	"github.com/gen2brain/malgo"

	"github.com/777genius/switch-audio/internal/device"
	"github.com/777genius/switch-audio/internal/logging"
)

// Miniaudio enumerates playback devices through miniaudio. It can report
// devices and the current default but cannot change the system default,
// so SetDefaultOutput always fails with device.ErrUnsupported.
//
// miniaudio device IDs are opaque byte blobs; devices are exposed as their
// 1-based position in the most recent enumeration.
type Miniaudio struct {
	ctx     *malgo.AllocatedContext
	devices []malgo.DeviceInfo
	loaded  bool
}

// OpenMiniaudio initializes a miniaudio context with the platform's preferred backends.
func OpenMiniaudio() (*Miniaudio, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, &device.RegistryError{Op: "init audio context", Err: err}
	}
	return &Miniaudio{ctx: ctx}, nil
}

func (m *Miniaudio) refresh() error {
	devices, err := m.ctx.Devices(malgo.Playback)
	if err != nil {
		return &device.RegistryError{Op: "enumerate playback devices", Err: err}
	}
	m.devices = devices
	m.loaded = true
	return nil
}

func (m *Miniaudio) lookup(id device.ID) (malgo.DeviceInfo, bool) {
	if !m.loaded {
		if err := m.refresh(); err != nil {
			return malgo.DeviceInfo{}, false
		}
	}
	if id == device.Unknown || int(id) > len(m.devices) {
		return malgo.DeviceInfo{}, false
	}
	return m.devices[id-1], true
}

// Devices enumerates playback devices.
func (m *Miniaudio) Devices() ([]device.ID, error) {
	if err := m.refresh(); err != nil {
		return nil, err
	}

	ids := make([]device.ID, len(m.devices))
	for i := range m.devices {
		ids[i] = device.ID(i + 1)
	}
	return ids, nil
}

// DefaultOutput returns the device miniaudio flags as default.
func (m *Miniaudio) DefaultOutput() device.ID {
	if !m.loaded {
		if err := m.refresh(); err != nil {
			logging.Debug("Default device lookup failed: %v", err)
			return device.Unknown
		}
	}
	for i, dev := range m.devices {
		if dev.IsDefault != 0 {
			return device.ID(i + 1)
		}
	}
	return device.Unknown
}

func (m *Miniaudio) Name(id device.ID) (string, bool) {
	dev, ok := m.lookup(id)
	if !ok {
		return "", false
	}
	return dev.Name(), true
}

// SupportsOutput queries the device's native playback formats.
// miniaudio reports a channel count of 0 for "any", so a device qualifies
// as soon as it reports at least one native format.
func (m *Miniaudio) SupportsOutput(id device.ID) bool {
	dev, ok := m.lookup(id)
	if !ok {
		return false
	}

	info, err := m.ctx.DeviceInfo(malgo.Playback, dev.ID, malgo.Shared)
	if err != nil {
		logging.Debug("Device info for %s failed: %v", dev.Name(), err)
		return false
	}
	return info.FormatCount > 0
}

func (m *Miniaudio) SetDefaultOutput(id device.ID) error {
	return &device.RegistryError{
		Op:  fmt.Sprintf("set default output %d", id),
		Err: device.ErrUnsupported,
	}
}

func (m *Miniaudio) Close() error {
	if m.ctx != nil {
		_ = m.ctx.Uninit()
		m.ctx.Free()
		m.ctx = nil
	}
	return nil
}
