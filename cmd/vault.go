package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/uvizhe/psh-gui/config"
	"github.com/uvizhe/psh-gui/log"
	"github.com/uvizhe/psh-gui/ui/overlay"
	"github.com/uvizhe/psh-gui/vault"
)

var errNoVault = errors.New("no vault found; run psh to create one")

// resolveVault picks the vault path: the flag wins over the config.
func resolveVault(cfg *config.Config, flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	return cfg.ResolveVaultPath()
}

// EngineFor builds the vault engine used by every command.
func EngineFor(cfg *config.Config, path string) *vault.SQLiteEngine {
	return vault.NewSQLiteEngine(path, vault.KDFParams{
		Time:      cfg.KDF.Time,
		MemoryKiB: cfg.KDF.MemoryKiB,
		Threads:   cfg.KDF.Threads,
	})
}

// executeReset deletes the vault at path and reports what happened.
func executeReset(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Sprintf("No vault at %s", path), nil
	}
	if err := vault.RemoveVault(path); err != nil {
		return "", fmt.Errorf("failed to remove vault: %w", err)
	}
	return fmt.Sprintf("Vault %s has been removed", path), nil
}

// executeAliasList unlocks an existing vault and renders its aliases, one per
// line, with their charset and secret flag.
func executeAliasList(engine vault.Engine, password string) (string, error) {
	if !engine.VaultExists() {
		return "", errNoVault
	}
	s, err := engine.CreateSession(password)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.WarningLog.Printf("close session: %v", err)
		}
	}()

	aliases := s.ListAliases()
	if len(aliases) == 0 {
		return "No aliases stored\n", nil
	}
	sort.Strings(aliases)
	var sb strings.Builder
	for _, a := range aliases {
		secret := ""
		if s.AliasUsesSecret(a) {
			secret = "  (secret)"
		}
		fmt.Fprintf(&sb, "%-32s %-12s%s\n", a, s.AliasCharset(a), secret)
	}
	return sb.String(), nil
}

// readPassword prompts on stderr and reads the master password with echo off.
func readPassword(prompt io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal available for the password prompt")
	}
	fmt.Fprint(prompt, "Master password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}

// NewResetCmd builds `psh reset`, which deletes the vault after confirmation.
func NewResetCmd(vaultFlag *string) *cobra.Command {
	var force bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the vault and every stored alias",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			path, err := resolveVault(cfg, *vaultFlag)
			if err != nil {
				return err
			}
			if !force {
				confirmed := false
				err := huh.NewForm(
					huh.NewGroup(
						huh.NewConfirm().
							Title(fmt.Sprintf("delete %s?", path)).
							Description("stored aliases cannot be recovered").
							Affirmative("delete").
							Negative("keep").
							Value(&confirmed),
					),
				).WithTheme(overlay.ThemeRosePine()).Run()
				if err != nil {
					return fmt.Errorf("reset: %w", err)
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Vault kept")
					return nil
				}
			}
			out, err := executeReset(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	resetCmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	return resetCmd
}

// NewAliasesCmd builds `psh aliases`, which lists the stored aliases.
func NewAliasesCmd(vaultFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "aliases",
		Short: "Unlock the vault and list the stored aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			path, err := resolveVault(cfg, *vaultFlag)
			if err != nil {
				return err
			}
			engine := EngineFor(cfg, path)
			if !engine.VaultExists() {
				return errNoVault
			}
			pw, err := readPassword(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out, err := executeAliasList(engine, pw)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
