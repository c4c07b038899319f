//go:build !darwin || !cgo

package registry

import (
	"errors"

	"github.com/777genius/switch-audio/internal/device"
)

var errNoCoreAudio = errors.New("CoreAudio is only available on macOS builds with cgo")

// CoreAudio is unavailable on this platform; OpenCoreAudio always fails.
type CoreAudio struct{}

func OpenCoreAudio() (*CoreAudio, error) {
	return nil, &device.RegistryError{Op: "open coreaudio", Err: errNoCoreAudio}
}

func (*CoreAudio) Devices() ([]device.ID, error) { return nil, errNoCoreAudio }
func (*CoreAudio) DefaultOutput() device.ID       { return device.Unknown }
func (*CoreAudio) Name(device.ID) (string, bool)  { return "", false }
func (*CoreAudio) SupportsOutput(device.ID) bool  { return false }
func (*CoreAudio) SetDefaultOutput(device.ID) error {
	return &device.RegistryError{Op: "set default output device", Err: errNoCoreAudio}
}
func (*CoreAudio) Close() error { return nil }
