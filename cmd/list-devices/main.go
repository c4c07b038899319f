// ABOUTME: Diagnostic tool listing every device the audio registry reports.
// ABOUTME: Shows IDs and output capability, including devices switch-audio hides.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/777genius/switch-audio/internal/config"
	"github.com/777genius/switch-audio/internal/device"
	"github.com/777genius/switch-audio/internal/registry"
)

func main() {
	backendFlag := flag.String("backend", config.BackendAuto, "Audio backend: auto, coreaudio, pulse, miniaudio")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: list-devices [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.DefaultConfig()
	cfg.Backend = *backendFlag
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	reg, err := registry.Open(cfg.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio backend: %v\n", err)
		os.Exit(1)
	}
	defer reg.Close()

	if err := printDevices(os.Stdout, reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error listing audio devices: %v\n", err)
		reg.Close()
		os.Exit(1)
	}
}

func printDevices(w io.Writer, reg device.Registry) error {
	ids, err := reg.Devices()
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		fmt.Fprintln(w, "No audio devices found.")
		return nil
	}

	current := reg.DefaultOutput()

	fmt.Fprintln(w, "ID\tOUT\tNAME")
	for _, id := range ids {
		out := "--"
		if reg.SupportsOutput(id) {
			out = "out"
		}

		name, ok := reg.Name(id)
		if !ok {
			name = "(name unavailable)"
		}

		defaultMarker := ""
		if id == current {
			defaultMarker = " (default)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s%s\n", id, out, name, defaultMarker)
	}
	return nil
}
