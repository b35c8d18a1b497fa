package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const TOMLConfigFileName = "config.toml"

// TOMLConfig is the on-disk shape of config.toml. Pointer fields distinguish
// "unset" from zero values so only keys present in the file override config.json.
type TOMLConfig struct {
	Session   TOMLSession   `toml:"session"`
	Keyboard  TOMLKeyboard  `toml:"keyboard"`
	Platform  TOMLPlatform  `toml:"platform"`
	Clipboard TOMLClipboard `toml:"clipboard"`
	Vault     TOMLVault     `toml:"vault"`
	Telemetry TOMLTelemetry `toml:"telemetry"`
}

type TOMLSession struct {
	LockTimeoutSeconds *int `toml:"lock_timeout_seconds,omitempty"`
	UnlockYieldMillis  *int `toml:"unlock_yield_ms,omitempty"`
}

type TOMLKeyboard struct {
	Enabled        *bool `toml:"enabled,omitempty"`
	DebounceMillis *int  `toml:"debounce_ms,omitempty"`
}

type TOMLPlatform struct {
	Touch *bool `toml:"touch,omitempty"`
}

type TOMLClipboard struct {
	ClearSeconds *int `toml:"clear_seconds,omitempty"`
}

type TOMLVault struct {
	Path         string  `toml:"path,omitempty"`
	KDFTime      *uint32 `toml:"kdf_time,omitempty"`
	KDFMemoryKiB *uint32 `toml:"kdf_memory_kib,omitempty"`
	KDFThreads   *uint8  `toml:"kdf_threads,omitempty"`
}

type TOMLTelemetry struct {
	Enabled *bool `toml:"enabled,omitempty"`
}

// TOMLConfigResult is a parsed config.toml ready to be laid over a Config.
type TOMLConfigResult struct {
	Raw TOMLConfig
}

// ApplyTo copies every key set in the TOML file onto cfg.
func (r *TOMLConfigResult) ApplyTo(cfg *Config) {
	t := r.Raw
	if t.Session.LockTimeoutSeconds != nil {
		cfg.LockTimeoutSeconds = *t.Session.LockTimeoutSeconds
	}
	if t.Session.UnlockYieldMillis != nil {
		cfg.UnlockYieldMillis = *t.Session.UnlockYieldMillis
	}
	if t.Keyboard.Enabled != nil {
		cfg.KeyboardEnabled = *t.Keyboard.Enabled
	}
	if t.Keyboard.DebounceMillis != nil {
		cfg.DebounceMillis = *t.Keyboard.DebounceMillis
	}
	if t.Platform.Touch != nil {
		cfg.Touch = *t.Platform.Touch
	}
	if t.Clipboard.ClearSeconds != nil {
		cfg.ClipboardClearSeconds = *t.Clipboard.ClearSeconds
	}
	if t.Vault.Path != "" {
		cfg.VaultPath = t.Vault.Path
	}
	if t.Vault.KDFTime != nil {
		cfg.KDF.Time = *t.Vault.KDFTime
	}
	if t.Vault.KDFMemoryKiB != nil {
		cfg.KDF.MemoryKiB = *t.Vault.KDFMemoryKiB
	}
	if t.Vault.KDFThreads != nil {
		cfg.KDF.Threads = *t.Vault.KDFThreads
	}
	if t.Telemetry.Enabled != nil {
		v := *t.Telemetry.Enabled
		cfg.TelemetryEnabled = &v
	}
}

// TOMLConfigPath returns the path of config.toml inside the config directory.
func TOMLConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, TOMLConfigFileName), nil
}

// LoadTOMLConfig loads config.toml from the config directory. A missing file
// is not an error: it returns (nil, nil).
func LoadTOMLConfig() (*TOMLConfigResult, error) {
	path, err := TOMLConfigPath()
	if err != nil {
		return nil, err
	}
	res, err := LoadTOMLConfigFrom(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return res, err
}

// LoadTOMLConfigFrom parses the TOML file at path.
func LoadTOMLConfigFrom(path string) (*TOMLConfigResult, error) {
	var raw TOMLConfig
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return &TOMLConfigResult{Raw: raw}, nil
}

// SaveTOMLConfig writes tc to config.toml in the config directory.
func SaveTOMLConfig(tc *TOMLConfig) error {
	path, err := TOMLConfigPath()
	if err != nil {
		return err
	}
	return SaveTOMLConfigTo(tc, path)
}

// SaveTOMLConfigTo writes tc to path, creating parent directories.
func SaveTOMLConfigTo(tc *TOMLConfig, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(tc); err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}
	return nil
}

// TOMLFromConfig builds a fully populated TOMLConfig from cfg, used by the setup
// wizard to persist its answers.
func TOMLFromConfig(cfg *Config) *TOMLConfig {
	lock := cfg.LockTimeoutSeconds
	yield := cfg.UnlockYieldMillis
	kb := cfg.KeyboardEnabled
	debounce := cfg.DebounceMillis
	touch := cfg.Touch
	clear := cfg.ClipboardClearSeconds
	kdfTime := cfg.KDF.Time
	kdfMem := cfg.KDF.MemoryKiB
	kdfThreads := cfg.KDF.Threads
	telemetry := cfg.IsTelemetryEnabled()
	return &TOMLConfig{
		Session:   TOMLSession{LockTimeoutSeconds: &lock, UnlockYieldMillis: &yield},
		Keyboard:  TOMLKeyboard{Enabled: &kb, DebounceMillis: &debounce},
		Platform:  TOMLPlatform{Touch: &touch},
		Clipboard: TOMLClipboard{ClearSeconds: &clear},
		Vault: TOMLVault{
			Path:         cfg.VaultPath,
			KDFTime:      &kdfTime,
			KDFMemoryKiB: &kdfMem,
			KDFThreads:   &kdfThreads,
		},
		Telemetry: TOMLTelemetry{Enabled: &telemetry},
	}
}
