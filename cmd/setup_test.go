package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uvizhe/psh-gui/config"
)

func TestSetupAnswers_RoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	a := answersFromConfig(cfg)
	assert.Equal(t, "60", a.LockTimeout)
	assert.Equal(t, "20", a.ClipboardClear)
	assert.Equal(t, "1000", a.Debounce)

	a.LockTimeout = " 120 "
	a.ClipboardClear = "0"
	a.Touch = true
	a.VaultPath = "  /tmp/v.db "
	a.Telemetry = true
	require.NoError(t, a.applyTo(cfg))

	assert.Equal(t, 120, cfg.LockTimeoutSeconds)
	assert.Equal(t, 0, cfg.ClipboardClearSeconds)
	assert.True(t, cfg.Touch)
	assert.True(t, cfg.KeyboardVisible())
	assert.Equal(t, "/tmp/v.db", cfg.VaultPath)
	assert.True(t, cfg.IsTelemetryEnabled())
}

func TestSetupAnswers_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*setupAnswers)
		wantErr string
	}{
		{"lock not a number", func(a *setupAnswers) { a.LockTimeout = "soon" }, "lock timeout"},
		{"lock zero", func(a *setupAnswers) { a.LockTimeout = "0" }, "at least 1"},
		{"negative clear", func(a *setupAnswers) { a.ClipboardClear = "-1" }, "clipboard clear"},
		{"zero debounce", func(a *setupAnswers) { a.Debounce = "0" }, "debounce"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			a := answersFromConfig(cfg)
			tt.mutate(&a)
			err := a.applyTo(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, 60, cfg.LockTimeoutSeconds, "config must be untouched on error")
		})
	}
}

func TestSetupAnswers_SavedAsTOML(t *testing.T) {
	cfg := config.DefaultConfig()
	a := answersFromConfig(cfg)
	a.Debounce = "700"
	require.NoError(t, a.applyTo(cfg))

	tc := config.TOMLFromConfig(cfg)
	require.NotNil(t, tc.Keyboard.DebounceMillis)
	assert.Equal(t, 700, *tc.Keyboard.DebounceMillis)
}
