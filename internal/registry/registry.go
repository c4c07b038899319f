// ABOUTME: Platform audio registry backends and backend selection.
// ABOUTME: CoreAudio on macOS, PulseAudio elsewhere, miniaudio as a read-only fallback.

package registry

import (
	"fmt"
	"runtime"

	"github.com/777genius/switch-audio/internal/config"
	"github.com/777genius/switch-audio/internal/device"
	"github.com/777genius/switch-audio/internal/logging"
)

// Backend is a device registry bound to platform resources that must be
// released with Close once the command finishes.
type Backend interface {
	device.Registry
	Close() error
}

// Open connects to the named backend. "auto" picks CoreAudio on macOS and
// PulseAudio elsewhere, falling back to miniaudio when no Pulse server answers.
func Open(name string) (Backend, error) {
	switch name {
	case config.BackendCoreAudio:
		return OpenCoreAudio()
	case config.BackendPulse:
		return OpenPulse()
	case config.BackendMiniaudio:
		return OpenMiniaudio()
	case config.BackendAuto, "":
		return openAuto()
	default:
		return nil, fmt.Errorf("unknown audio backend: %s", name)
	}
}

func openAuto() (Backend, error) {
	if runtime.GOOS == "darwin" {
		return OpenCoreAudio()
	}

	b, err := OpenPulse()
	if err == nil {
		logging.Debug("Using PulseAudio backend")
		return b, nil
	}
	logging.Debug("PulseAudio unavailable, falling back to miniaudio: %v", err)

	mb, merr := OpenMiniaudio()
	if merr != nil {
		return nil, fmt.Errorf("no audio backend available: pulse: %v; miniaudio: %w", err, merr)
	}
	return mb, nil
}
