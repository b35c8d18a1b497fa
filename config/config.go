package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/uvizhe/psh-gui/log"
)

const (
	ConfigFileName = "config.json"
	VaultFileName  = "vault.db"
)

// GetConfigDir returns the path to the application's configuration directory.
// Uses XDG-compliant ~/.config/psh/, or $XDG_CONFIG_HOME/psh when set.
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "psh"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "psh"), nil
}

// KDFConfig holds the argon2id cost parameters used when a new vault is created.
// Existing vaults keep the parameters they were created with.
type KDFConfig struct {
	Time      uint32 `json:"time"`
	MemoryKiB uint32 `json:"memory_kib"`
	Threads   uint8  `json:"threads"`
}

// Config represents the application configuration
type Config struct {
	// LockTimeoutSeconds is how long the terminal may stay unfocused before the
	// vault session is locked.
	LockTimeoutSeconds int `json:"lock_timeout_seconds"`
	// KeyboardEnabled shows the on-screen multi-tap keyboard at startup.
	KeyboardEnabled bool `json:"keyboard_enabled"`
	// Touch marks a touch/IME platform: the keyboard is forced on and focus
	// reclaim waits one tick for the platform's own focus pass.
	Touch bool `json:"touch"`
	// DebounceMillis is the multi-tap commit window.
	DebounceMillis int `json:"debounce_ms"`
	// ClipboardClearSeconds is how long a copied secret stays on the clipboard.
	// Zero disables clearing.
	ClipboardClearSeconds int `json:"clipboard_clear_seconds"`
	// UnlockYieldMillis is the pause before the unlock KDF starts so the
	// spinner gets painted first.
	UnlockYieldMillis int `json:"unlock_yield_ms"`
	// VaultPath is the SQLite vault location. Empty means <config dir>/vault.db.
	VaultPath string `json:"vault_path,omitempty"`
	// TelemetryEnabled controls whether crash reporting via Sentry is active.
	// Defaults to false when not set.
	TelemetryEnabled *bool `json:"telemetry_enabled,omitempty"`
	// KDF holds the argon2id parameters for new vaults.
	KDF KDFConfig `json:"kdf"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LockTimeoutSeconds:    60,
		KeyboardEnabled:       false,
		Touch:                 false,
		DebounceMillis:        1000,
		ClipboardClearSeconds: 20,
		UnlockYieldMillis:     50,
		KDF: KDFConfig{
			Time:      3,
			MemoryKiB: 64 * 1024,
			Threads:   4,
		},
	}
}

// IsTelemetryEnabled returns whether Sentry telemetry is enabled.
func (c *Config) IsTelemetryEnabled() bool {
	if c.TelemetryEnabled == nil {
		return false
	}
	return *c.TelemetryEnabled
}

// LockTimeout returns the background lock delay.
func (c *Config) LockTimeout() time.Duration {
	if c.LockTimeoutSeconds <= 0 {
		return time.Duration(DefaultConfig().LockTimeoutSeconds) * time.Second
	}
	return time.Duration(c.LockTimeoutSeconds) * time.Second
}

// Debounce returns the multi-tap commit window.
func (c *Config) Debounce() time.Duration {
	if c.DebounceMillis <= 0 {
		return time.Duration(DefaultConfig().DebounceMillis) * time.Millisecond
	}
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// ClipboardClear returns how long a copied secret is kept. Zero means forever.
func (c *Config) ClipboardClear() time.Duration {
	if c.ClipboardClearSeconds <= 0 {
		return 0
	}
	return time.Duration(c.ClipboardClearSeconds) * time.Second
}

// UnlockYield returns the pre-unlock render delay. It is never zero: the
// spinner must get a frame before the KDF runs.
func (c *Config) UnlockYield() time.Duration {
	if c.UnlockYieldMillis <= 0 {
		return time.Millisecond
	}
	return time.Duration(c.UnlockYieldMillis) * time.Millisecond
}

// KeyboardVisible reports whether the on-screen keyboard starts expanded.
func (c *Config) KeyboardVisible() bool {
	return c.KeyboardEnabled || c.Touch
}

// ResolveVaultPath returns the configured vault path or the default one.
func (c *Config) ResolveVaultPath() (string, error) {
	if c.VaultPath != "" {
		return c.VaultPath, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, VaultFileName), nil
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return overlayTOML(defaultCfg)
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}

	return overlayTOML(config)
}

// overlayTOML applies config.toml on top of cfg (TOML is authority for every key it sets).
func overlayTOML(cfg *Config) *Config {
	tomlResult, tomlErr := LoadTOMLConfig()
	if tomlErr != nil {
		log.WarningLog.Printf("failed to load TOML config: %v", tomlErr)
		return cfg
	}
	if tomlResult != nil {
		tomlResult.ApplyTo(cfg)
	}
	return cfg
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0600)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
