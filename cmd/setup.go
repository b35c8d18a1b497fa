package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/uvizhe/psh-gui/config"
	"github.com/uvizhe/psh-gui/ui/overlay"
)

// setupAnswers holds the wizard's raw form values. Numbers stay strings until
// the form is submitted so huh inputs can bind to them directly.
type setupAnswers struct {
	LockTimeout    string
	ClipboardClear string
	Debounce       string
	Keyboard       bool
	Touch          bool
	VaultPath      string
	Telemetry      bool
}

func answersFromConfig(cfg *config.Config) setupAnswers {
	return setupAnswers{
		LockTimeout:    strconv.Itoa(cfg.LockTimeoutSeconds),
		ClipboardClear: strconv.Itoa(cfg.ClipboardClearSeconds),
		Debounce:       strconv.Itoa(cfg.DebounceMillis),
		Keyboard:       cfg.KeyboardEnabled,
		Touch:          cfg.Touch,
		VaultPath:      cfg.VaultPath,
		Telemetry:      cfg.IsTelemetryEnabled(),
	}
}

// applyTo validates the answers and copies them onto cfg.
func (a setupAnswers) applyTo(cfg *config.Config) error {
	lock, err := parseSetupInt("lock timeout", a.LockTimeout, 1)
	if err != nil {
		return err
	}
	clipClear, err := parseSetupInt("clipboard clear", a.ClipboardClear, 0)
	if err != nil {
		return err
	}
	debounce, err := parseSetupInt("debounce", a.Debounce, 1)
	if err != nil {
		return err
	}
	cfg.LockTimeoutSeconds = lock
	cfg.ClipboardClearSeconds = clipClear
	cfg.DebounceMillis = debounce
	cfg.KeyboardEnabled = a.Keyboard
	cfg.Touch = a.Touch
	cfg.VaultPath = strings.TrimSpace(a.VaultPath)
	telemetry := a.Telemetry
	cfg.TelemetryEnabled = &telemetry
	return nil
}

func parseSetupInt(name, s string, least int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, s)
	}
	if n < least {
		return 0, fmt.Errorf("%s: must be at least %d", name, least)
	}
	return n, nil
}

func validateSetupInt(name string, least int) func(string) error {
	return func(s string) error {
		_, err := parseSetupInt(name, s, least)
		return err
	}
}

func runSetupForm(a *setupAnswers) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("lock after the terminal is unfocused for (seconds)").
				Value(&a.LockTimeout).
				Validate(validateSetupInt("lock timeout", 1)),
			huh.NewInput().
				Title("clear copied passwords after (seconds, 0 keeps them)").
				Value(&a.ClipboardClear).
				Validate(validateSetupInt("clipboard clear", 0)),
			huh.NewInput().
				Title("on-screen keyboard multi-tap window (ms)").
				Value(&a.Debounce).
				Validate(validateSetupInt("debounce", 1)),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("show the on-screen keyboard at startup?").
				Value(&a.Keyboard),
			huh.NewConfirm().
				Title("is this a touch device?").
				Value(&a.Touch),
			huh.NewInput().
				Title("vault path (empty for the default)").
				Value(&a.VaultPath),
			huh.NewConfirm().
				Title("send crash reports?").
				Value(&a.Telemetry),
		),
	).WithTheme(overlay.ThemeRosePine())

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	return nil
}

// NewSetupCmd builds the `psh setup` command.
func NewSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "setup",
		Aliases: []string{"init"},
		Short:   "Interactively write ~/.config/psh/config.toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			answers := answersFromConfig(cfg)
			if err := runSetupForm(&answers); err != nil {
				return err
			}
			if err := answers.applyTo(cfg); err != nil {
				return err
			}
			if err := config.SaveTOMLConfig(config.TOMLFromConfig(cfg)); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			path, _ := config.TOMLConfigPath()
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	}
}
