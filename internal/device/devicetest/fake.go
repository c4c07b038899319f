// ABOUTME: In-memory device registry for tests.
// ABOUTME: Records default-output writes so callers can assert on them.

package devicetest

import (
	"github.com/777genius/switch-audio/internal/device"
)

// Device describes one fake device.
type Device struct {
	ID     device.ID
	Name   string
	NoName bool // name lookup fails
	Output bool
}

// Registry is a scripted device.Registry.
type Registry struct {
	List       []Device
	Default    device.ID
	ListErr    error
	SetErr     error
	Writes     []device.ID
	Capability int // number of SupportsOutput calls
	Closed     bool
}

// New returns a registry holding devs with def as current default.
func New(def device.ID, devs ...Device) *Registry {
	return &Registry{List: devs, Default: def}
}

func (r *Registry) Devices() ([]device.ID, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	ids := make([]device.ID, 0, len(r.List))
	for _, d := range r.List {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (r *Registry) DefaultOutput() device.ID {
	return r.Default
}

func (r *Registry) Name(id device.ID) (string, bool) {
	d, ok := r.lookup(id)
	if !ok || d.NoName {
		return "", false
	}
	return d.Name, true
}

func (r *Registry) SupportsOutput(id device.ID) bool {
	r.Capability++
	d, ok := r.lookup(id)
	return ok && d.Output
}

func (r *Registry) SetDefaultOutput(id device.ID) error {
	if r.SetErr != nil {
		return r.SetErr
	}
	if _, ok := r.lookup(id); !ok {
		return &device.RegistryError{Op: "set default output", Status: -1}
	}
	r.Writes = append(r.Writes, id)
	r.Default = id
	return nil
}

func (r *Registry) Close() error {
	r.Closed = true
	return nil
}

func (r *Registry) lookup(id device.ID) (Device, bool) {
	for _, d := range r.List {
		if d.ID == id {
			return d, true
		}
	}
	return Device{}, false
}
