package switcher

import (
	"fmt"
	"io"
)

// PrintUsage writes the help text for prog to w.
func PrintUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s [OPTIONS] [DEVICE_NAME]\n\n", prog)
	fmt.Fprintln(w, "Switch the default audio output device")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -l, --list            List available audio output devices")
	fmt.Fprintln(w, "  -n, --next            Switch to next available device")
	fmt.Fprintln(w, "  -h, --help            Show this help message")
	fmt.Fprintln(w, "      --backend NAME    Audio backend: auto, coreaudio, pulse, miniaudio (default: auto)")
	fmt.Fprintln(w, "      --notify[=METHOD] Show a desktop notification after switching (beeep, osc9)")
	fmt.Fprintln(w, "      --chime[=FILE]    Play a sound on the new device (default: built-in tone)")
	fmt.Fprintln(w, "      --volume LEVEL    Chime volume 0.0-1.0 (default: 1.0)")
	fmt.Fprintln(w, "  -v, --verbose         Log diagnostics to stderr")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintf(w, "  %s -l                          # List available devices\n", prog)
	fmt.Fprintf(w, "  %s -n --chime                  # Cycle to the next device and play a tone\n", prog)
	fmt.Fprintf(w, "  %s \"External Headphones\"      # Switch to headphones\n", prog)
}
