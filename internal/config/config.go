package config

import (
	"fmt"
	"strings"
)

// Backend names accepted by --backend
const (
	BackendAuto      = "auto"
	BackendCoreAudio = "coreaudio"
	BackendPulse     = "pulse"
	BackendMiniaudio = "miniaudio"
)

// Notification methods accepted by --notify
const (
	NotifyBeeep = "beeep"
	NotifyOSC9  = "osc9"
)

// ChimeBuiltin selects the generated confirmation tone instead of a sound file
const ChimeBuiltin = "builtin"

// Config holds the runtime options of a single invocation.
// It is populated from command-line flags only; nothing is persisted.
type Config struct {
	Backend string  // Registry backend: "auto", "coreaudio", "pulse", "miniaudio" (default: "auto")
	Notify  string  // Desktop notification after a switch: "", "beeep", "osc9" (empty = off)
	Chime   string  // Sound after a switch: "", "builtin" or a file path (empty = off)
	Volume  float64 // Chime volume 0.0-1.0, default 1.0
	Verbose bool    // Debug logging on stderr
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendAuto,
		Volume:  1.0,
	}
}

// ApplyDefaults fills in missing fields with default values
func (c *Config) ApplyDefaults() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = BackendAuto
	}
	c.Notify = strings.ToLower(strings.TrimSpace(c.Notify))
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validBackends := map[string]bool{
		BackendAuto:      true,
		BackendCoreAudio: true,
		BackendPulse:     true,
		BackendMiniaudio: true,
	}
	if !validBackends[c.Backend] {
		return fmt.Errorf("invalid backend: %s (must be one of: auto, coreaudio, pulse, miniaudio)", c.Backend)
	}

	validMethods := map[string]bool{
		"":          true, // empty means disabled
		NotifyBeeep: true,
		NotifyOSC9:  true,
	}
	if !validMethods[c.Notify] {
		return fmt.Errorf("invalid notification method: %s (must be one of: beeep, osc9)", c.Notify)
	}

	if c.Volume < 0.0 || c.Volume > 1.0 {
		return fmt.Errorf("volume must be between 0.0 and 1.0 (got %.2f)", c.Volume)
	}

	return nil
}

// IsNotifyEnabled returns true if a notification should follow a switch
func (c *Config) IsNotifyEnabled() bool {
	return c.Notify != ""
}

// IsChimeEnabled returns true if a sound should follow a switch
func (c *Config) IsChimeEnabled() bool {
	return c.Chime != ""
}

// IsBuiltinChime returns true if the generated tone should be played
func (c *Config) IsBuiltinChime() bool {
	return c.Chime == ChimeBuiltin
}
