// ABOUTME: Command-line front end for switch-audio.
// ABOUTME: Parses argv with cobra into an intent and maps the outcome to an exit code.

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/777genius/switch-audio/internal/audio"
	"github.com/777genius/switch-audio/internal/config"
	"github.com/777genius/switch-audio/internal/logging"
	"github.com/777genius/switch-audio/internal/notifier"
	"github.com/777genius/switch-audio/internal/registry"
	"github.com/777genius/switch-audio/internal/switcher"
)

// Opener connects to a registry backend by name.
type Opener func(backend string) (registry.Backend, error)

// usageError marks a malformed invocation.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// App holds the wiring for one invocation.
type App struct {
	Prog   string
	Stdout io.Writer
	Stderr io.Writer
	Open   Opener

	// NewHooks builds the post-switch hooks for cfg. Defaults to notifier and chime.
	NewHooks func(cfg *config.Config) []switcher.SwitchHook
}

// Execute runs switch-audio with the given arguments (without the program name)
// and returns the process exit code.
func (a *App) Execute(args []string) int {
	cfg := config.DefaultConfig()
	var list, next bool
	code := 0

	root := &cobra.Command{
		Use:           a.Prog + " [OPTIONS] [DEVICE_NAME]",
		Short:         "Switch the default audio output device",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err != nil {
				return &usageError{msg: err.Error()}
			}
			logging.Init(a.Stderr, cfg.Verbose)

			intent, err := parseIntent(list, next, positional)
			if err != nil {
				return err
			}
			code = a.dispatch(cfg, intent)
			return nil
		},
	}

	flags := root.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&list, "list", "l", false, "List available audio output devices")
	flags.BoolVarP(&next, "next", "n", false, "Switch to next available device")
	flags.StringVar(&cfg.Backend, "backend", cfg.Backend, "Audio backend: auto, coreaudio, pulse, miniaudio")
	flags.StringVar(&cfg.Notify, "notify", "", "Show a desktop notification after switching (beeep, osc9)")
	flags.Lookup("notify").NoOptDefVal = config.NotifyBeeep
	flags.StringVar(&cfg.Chime, "chime", "", "Play a sound on the new device (default: built-in tone)")
	flags.Lookup("chime").NoOptDefVal = config.ChimeBuiltin
	flags.Float64Var(&cfg.Volume, "volume", cfg.Volume, "Chime volume 0.0-1.0")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log diagnostics to stderr")

	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		switcher.PrintUsage(cmd.OutOrStdout(), a.Prog)
	})
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		msg := err.Error()
		if strings.HasPrefix(msg, "unknown flag") || strings.HasPrefix(msg, "unknown shorthand flag") {
			msg += "\n(use '--' before a device name that starts with '-')"
		}
		return &usageError{msg: msg}
	})

	root.SetArgs(args)
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)

	if err := root.Execute(); err != nil {
		var ue *usageError
		if errors.As(err, &ue) {
			if ue.msg != "" {
				fmt.Fprintf(a.Stderr, "Error: %s\n\n", ue.msg)
			}
			switcher.PrintUsage(a.Stderr, a.Prog)
			return 1
		}
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		return 1
	}
	return code
}

// parseIntent applies the precedence list > next > device name.
// Positional arguments are ignored when a flag selects the action.
func parseIntent(list, next bool, positional []string) (switcher.Intent, error) {
	switch {
	case list:
		return switcher.Intent{Action: switcher.ActionList}, nil
	case next:
		return switcher.Intent{Action: switcher.ActionNext}, nil
	case len(positional) == 0:
		return switcher.Intent{}, &usageError{}
	case len(positional) > 1:
		return switcher.Intent{}, &usageError{msg: "Please provide exactly one device name."}
	default:
		return switcher.Intent{Action: switcher.ActionSetByName, Name: positional[0]}, nil
	}
}

func (a *App) dispatch(cfg *config.Config, intent switcher.Intent) int {
	open := a.Open
	if open == nil {
		open = registry.Open
	}

	reg, err := open(cfg.Backend)
	if err != nil {
		fmt.Fprintf(a.Stderr, "Error opening audio backend %q: %v\n", cfg.Backend, err)
		return 1
	}
	defer func() {
		if err := reg.Close(); err != nil {
			logging.Warn("Closing audio backend: %v", err)
		}
	}()

	newHooks := a.NewHooks
	if newHooks == nil {
		newHooks = DefaultHooks
	}

	opts := []switcher.Option{switcher.WithProgramName(a.Prog)}
	for _, h := range newHooks(cfg) {
		opts = append(opts, switcher.WithSwitchHook(h))
	}

	return switcher.New(reg, a.Stdout, a.Stderr, opts...).Run(intent)
}

// DefaultHooks returns the notification and chime hooks enabled in cfg.
func DefaultHooks(cfg *config.Config) []switcher.SwitchHook {
	var hooks []switcher.SwitchHook
	if cfg.IsNotifyEnabled() {
		hooks = append(hooks, notifier.New(cfg).Switched)
	}
	if cfg.IsChimeEnabled() {
		chime := audio.NewChime(cfg.Volume)
		source := cfg.Chime
		hooks = append(hooks, func(_, _ string) error {
			return chime.Play(source)
		})
	}
	return hooks
}
