// ABOUTME: Command dispatcher for switch-audio.
// ABOUTME: Maps a parsed intent onto registry calls and prints the results.

package switcher

import (
	"errors"
	"fmt"
	"io"

	"github.com/777genius/switch-audio/internal/device"
	"github.com/777genius/switch-audio/internal/logging"
)

// Action is what the user asked for.
type Action int

const (
	ActionHelp Action = iota
	ActionList
	ActionNext
	ActionSetByName
)

func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionNext:
		return "next"
	case ActionSetByName:
		return "set"
	default:
		return "help"
	}
}

// Intent is a parsed command line.
type Intent struct {
	Action Action
	Name   string // device name for ActionSetByName
}

// SwitchHook runs after the default output has been changed.
// Failures are logged and do not affect the exit code.
type SwitchHook func(from, to string) error

// Dispatcher executes one intent against a registry.
type Dispatcher struct {
	reg    device.Registry
	stdout io.Writer
	stderr io.Writer
	prog   string
	hooks  []SwitchHook
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithProgramName sets the name used in usage text and hints.
func WithProgramName(prog string) Option {
	return func(d *Dispatcher) {
		d.prog = prog
	}
}

// WithSwitchHook registers a hook that runs after every successful switch.
func WithSwitchHook(h SwitchHook) Option {
	return func(d *Dispatcher) {
		d.hooks = append(d.hooks, h)
	}
}

// New creates a dispatcher. reg may be nil when only ActionHelp will run.
func New(reg device.Registry, stdout, stderr io.Writer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg:    reg,
		stdout: stdout,
		stderr: stderr,
		prog:   "switch-audio",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes the intent and returns the process exit code.
func (d *Dispatcher) Run(in Intent) int {
	logging.Debug("Running %s", in.Action)

	var err error
	switch in.Action {
	case ActionList:
		err = d.List()
	case ActionNext:
		err = d.Next()
	case ActionSetByName:
		err = d.SetByName(in.Name)
	default:
		PrintUsage(d.stdout, d.prog)
		return 0
	}

	if err != nil {
		return 1
	}
	return 0
}

// snapshot reads the device list, the current default and the output subset.
func (d *Dispatcher) snapshot() (filtered []device.ID, current device.ID, err error) {
	ids, err := d.reg.Devices()
	if err != nil {
		fmt.Fprintf(d.stderr, "Error getting device list: %v\n", err)
		return nil, device.Unknown, err
	}
	current = d.reg.DefaultOutput()
	filtered = device.FilterOutputs(d.reg, ids)
	logging.Debug("Registry reported %d devices, %d with output, default=%d", len(ids), len(filtered), current)
	return filtered, current, nil
}

// List prints every named output device and marks the current default.
func (d *Dispatcher) List() error {
	filtered, current, err := d.snapshot()
	if err != nil {
		return err
	}

	fmt.Fprintln(d.stdout, "Available Audio Output Devices:")
	fmt.Fprintln(d.stdout, "================================")

	count := 0
	for _, id := range filtered {
		name, ok := d.reg.Name(id)
		if !ok {
			logging.Debug("Skipping device %d: name lookup failed", id)
			continue
		}
		count++
		if id == current {
			fmt.Fprintf(d.stdout, "* %s (current default)\n", name)
		} else {
			fmt.Fprintf(d.stdout, "  %s\n", name)
		}
	}

	if count == 0 {
		fmt.Fprintln(d.stdout, "No output devices found.")
		return nil
	}

	fmt.Fprintf(d.stdout, "\nFound %d output device(s).\n", count)
	fmt.Fprintln(d.stdout, "* indicates current default device")
	return nil
}

// Next switches to the output device after the current default, wrapping
// around at the end. With fewer than two outputs it does nothing.
func (d *Dispatcher) Next() error {
	filtered, current, err := d.snapshot()
	if err != nil {
		return err
	}

	if len(filtered) < 2 {
		fmt.Fprintln(d.stdout, "Only one or no output devices available. Cannot switch.")
		return nil
	}

	next := device.FindNext(filtered, current)
	currentName := d.displayName(current)
	nextName := d.displayName(next)

	if err := d.commit(next); err != nil {
		return err
	}

	fmt.Fprintf(d.stdout, "Switched from \"%s\" to \"%s\"\n", currentName, nextName)
	d.runHooks(currentName, nextName)
	return nil
}

// SetByName switches to the output device with exactly the given name.
func (d *Dispatcher) SetByName(name string) error {
	filtered, current, err := d.snapshot()
	if err != nil {
		return err
	}

	target := device.FindByName(d.reg, filtered, name)
	if target == device.Unknown {
		fmt.Fprintf(d.stderr, "Device \"%s\" not found.\n", name)
		fmt.Fprintf(d.stderr, "Use '%s -l' to list available devices.\n", d.prog)
		return fmt.Errorf("%q: %w", name, device.ErrNotFound)
	}

	currentName := d.displayName(current)
	if err := d.commit(target); err != nil {
		return err
	}

	fmt.Fprintf(d.stdout, "Switched default output to \"%s\".\n", name)
	d.runHooks(currentName, name)
	return nil
}

func (d *Dispatcher) commit(id device.ID) error {
	if err := d.reg.SetDefaultOutput(id); err != nil {
		fmt.Fprintf(d.stderr, "Failed to set default output device: %v\n", err)
		if errors.Is(err, device.ErrUnsupported) {
			fmt.Fprintln(d.stderr, "The selected audio backend cannot change the default device; try --backend.")
		}
		return err
	}
	return nil
}

func (d *Dispatcher) displayName(id device.ID) string {
	if id == device.Unknown {
		return "Unknown"
	}
	if name, ok := d.reg.Name(id); ok {
		return name
	}
	return "Unknown"
}

func (d *Dispatcher) runHooks(from, to string) {
	for _, h := range d.hooks {
		if err := h(from, to); err != nil {
			logging.Warn("Post-switch hook failed: %v", err)
		}
	}
}
