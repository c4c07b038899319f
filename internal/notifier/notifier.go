// ABOUTME: Desktop notification announcing an output device switch.
// ABOUTME: Sends via beeep or an OSC 9 escape sequence on the controlling terminal.

package notifier

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"
	"unicode/utf8"

	"github.com/gen2brain/beeep"

	"github.com/777genius/switch-audio/internal/config"
	"github.com/777genius/switch-audio/internal/logging"
)

const notificationTitle = "Audio output"

// Notifier sends desktop notifications
type Notifier struct {
	cfg     *config.Config
	openTTY func() (io.WriteCloser, error)
}

// New creates a new notifier
func New(cfg *config.Config) *Notifier {
	return &Notifier{
		cfg: cfg,
		openTTY: func() (io.WriteCloser, error) {
			return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		},
	}
}

// Switched announces that the default output moved from one device to another.
// It matches switcher.SwitchHook.
func (n *Notifier) Switched(from, to string) error {
	if !n.cfg.IsNotifyEnabled() {
		logging.Debug("Notifications disabled, skipping")
		return nil
	}

	message := switchMessage(from, to)

	switch n.cfg.Notify {
	case config.NotifyOSC9:
		return n.sendWithOSC9(notificationTitle, message)
	default:
		return n.sendWithBeeep(notificationTitle, message)
	}
}

func switchMessage(from, to string) string {
	if from == "" || from == "Unknown" || from == to {
		return to
	}
	return fmt.Sprintf("%s → %s", from, to)
}

// sendWithBeeep sends notification via beeep (cross-platform)
func (n *Notifier) sendWithBeeep(title, message string) error {
	// Windows keeps a registry entry per AppName, so it gets a fixed one.
	// Elsewhere a unique name stops consecutive switches from replacing each other.
	originalAppName := beeep.AppName
	if runtime.GOOS == "windows" {
		beeep.AppName = "switch-audio"
	} else {
		beeep.AppName = fmt.Sprintf("switch-audio-%d", time.Now().UnixNano())
	}
	defer func() {
		beeep.AppName = originalAppName
	}()

	if err := beeep.Notify(title, message, ""); err != nil {
		return fmt.Errorf("desktop notification failed: %w", err)
	}

	logging.Debug("Desktop notification sent via beeep: %s", message)
	return nil
}

// sendWithOSC9 writes an OSC 9 notification to the controlling terminal.
// Supported by iTerm2, kitty, WezTerm and others.
func (n *Notifier) sendWithOSC9(title, message string) error {
	tty, err := n.openTTY()
	if err != nil {
		return fmt.Errorf("failed to open /dev/tty: %w", err)
	}
	defer tty.Close()

	if _, err := io.WriteString(tty, formatOSC9(title, message)); err != nil {
		return fmt.Errorf("failed to write OSC9: %w", err)
	}

	logging.Debug("Desktop notification sent via OSC9: %s", message)
	return nil
}

// formatOSC9 builds ESC ] 9 ; text ESC \ with text capped at 200 bytes.
// Truncation backs off to a rune boundary so the text stays valid UTF-8.
func formatOSC9(title, message string) string {
	text := title
	if message != "" {
		text = fmt.Sprintf("%s: %s", title, message)
	}
	if len(text) > 200 {
		cut := 197
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return fmt.Sprintf("\033]9;%s\033\\", text)
}
