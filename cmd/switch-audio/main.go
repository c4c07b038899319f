// ABOUTME: CLI tool to list audio output devices and switch the system default.
// ABOUTME: Supports switching by exact device name or cycling to the next device.

package main

import (
	"os"
	"path/filepath"

	"github.com/777genius/switch-audio/internal/cli"
)

func main() {
	app := &cli.App{
		Prog:   filepath.Base(os.Args[0]),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(app.Execute(os.Args[1:]))
}
