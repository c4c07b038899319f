// ABOUTME: Output device model shared by every registry backend.
// ABOUTME: Defines device IDs, the registry contract, filtering and selection.

package device

// ID identifies a device within one registry session.
// Values are assigned by the backend and are only meaningful to it.
type ID uint32

// Unknown means "no device" or "not found". It is never a valid target
// for SetDefaultOutput.
const Unknown ID = 0

// Registry is the single point of contact with the platform audio subsystem.
// Every method except SetDefaultOutput is read-only.
type Registry interface {
	// Devices returns every device the platform knows about, in platform order.
	Devices() ([]ID, error)

	// DefaultOutput returns the current default output device,
	// or Unknown if the platform cannot report one.
	DefaultOutput() ID

	// Name returns the human-readable device name.
	// ok is false when the lookup fails.
	Name(id ID) (name string, ok bool)

	// SupportsOutput reports whether the device exposes at least one output
	// buffer and every output buffer has a non-zero channel count.
	// Query failures yield false.
	SupportsOutput(id ID) bool

	// SetDefaultOutput makes id the system default output device.
	SetDefaultOutput(id ID) error
}

// FilterOutputs returns the ids that support output, keeping their order.
// Capability is queried on every call.
func FilterOutputs(reg Registry, ids []ID) []ID {
	outputs := make([]ID, 0, len(ids))
	for _, id := range ids {
		if id == Unknown {
			continue
		}
		if reg.SupportsOutput(id) {
			outputs = append(outputs, id)
		}
	}
	return outputs
}

// FindByName returns the first device in filtered whose name is exactly
// wanted, or Unknown. Devices whose name cannot be resolved are skipped.
// When several devices share a name the earliest one wins.
func FindByName(reg Registry, filtered []ID, wanted string) ID {
	for _, id := range filtered {
		name, ok := reg.Name(id)
		if !ok {
			continue
		}
		if len(name) == len(wanted) && name == wanted {
			return id
		}
	}
	return Unknown
}

// FindNext returns the cyclic successor of current in filtered.
// If current is not in filtered the first device is returned.
// Callers are expected to check that filtered holds at least two devices;
// an empty list yields Unknown.
func FindNext(filtered []ID, current ID) ID {
	if len(filtered) == 0 {
		return Unknown
	}

	pos := -1
	for i, id := range filtered {
		if id == current {
			pos = i
			break
		}
	}

	return filtered[(pos+1)%len(filtered)]
}
