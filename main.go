package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/uvizhe/psh-gui/app"
	cmd2 "github.com/uvizhe/psh-gui/cmd"
	"github.com/uvizhe/psh-gui/config"
	sentrypkg "github.com/uvizhe/psh-gui/internal/sentry"
	"github.com/uvizhe/psh-gui/log"
)

var (
	version   = "0.3.0"
	touchFlag bool
	vaultFlag string
	rootCmd   = &cobra.Command{
		Use:   "psh",
		Short: "psh - a deterministic password generator with an encrypted alias vault",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg := config.LoadConfig()
			if err := sentrypkg.Init(version, cfg.IsTelemetryEnabled()); err != nil {
				// Non-fatal: sentry failure should not prevent startup
				_ = err
			}
			defer sentrypkg.Flush()
			defer sentrypkg.RecoverPanic()

			log.Initialize(cfg.IsTelemetryEnabled())
			defer log.Close()

			// Flags override config
			if touchFlag {
				cfg.Touch = true
			}
			if vaultFlag != "" {
				cfg.VaultPath = vaultFlag
			}
			path, err := cfg.ResolveVaultPath()
			if err != nil {
				return fmt.Errorf("failed to resolve vault path: %w", err)
			}
			engine := cmd2.EngineFor(cfg, path)

			sentrypkg.SetContext(sentrypkg.AppContext{
				Touch:       cfg.Touch,
				Keyboard:    cfg.KeyboardVisible(),
				VaultExists: engine.VaultExists(),
			})

			return app.Run(ctx, cfg, engine)
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			vaultPath, err := cfg.ResolveVaultPath()
			if err != nil {
				return fmt.Errorf("failed to resolve vault path: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Printf("TOML: %s\n", filepath.Join(configDir, config.TOMLConfigFileName))
			fmt.Printf("Vault: %s\n", vaultPath)
			fmt.Printf("Log: %s\n", log.FileName())

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of psh",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("psh version %s\n", version)
			fmt.Printf("https://github.com/uvizhe/psh-gui/releases/tag/v%s\n", version)
		},
	}
)

// withLog wraps a subcommand so it logs to the same file as the TUI.
func withLog(c *cobra.Command) *cobra.Command {
	run := c.RunE
	c.RunE = func(cmd *cobra.Command, args []string) error {
		log.Initialize(false)
		defer log.Close()
		return run(cmd, args)
	}
	return c
}

func init() {
	rootCmd.Flags().BoolVar(&touchFlag, "touch", false,
		"Run in touch mode: the on-screen keyboard is shown and focus is reclaimed after taps")
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "",
		"Path to the vault database (overrides config)")

	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(withLog(cmd2.NewSetupCmd()))
	rootCmd.AddCommand(withLog(cmd2.NewResetCmd(&vaultFlag)))
	rootCmd.AddCommand(withLog(cmd2.NewAliasesCmd(&vaultFlag)))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
