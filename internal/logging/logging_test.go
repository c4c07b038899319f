package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitQuiet(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, false)
	defer Init(os.Stderr, false)

	Debug("probing device %d", 42)
	Info("listing")
	assert.Empty(t, buf.String())

	Warn("chime failed: %s", "no backend")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "chime failed: no backend")
}

func TestInitVerbose(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, true)
	defer Init(os.Stderr, false)

	Debug("probing device %d", 42)
	Error("boom")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "probing device 42")
	assert.Contains(t, out, "level=ERROR")
}
