// Package main provides the CLI entrypoint for pwgen.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/pwgen/internal/clipboard"
	"github.com/verte-zerg/pwgen/internal/config"
	"github.com/verte-zerg/pwgen/internal/generator"
	"github.com/verte-zerg/pwgen/internal/history"
	"github.com/verte-zerg/pwgen/internal/model"
	"github.com/verte-zerg/pwgen/internal/state"
	"github.com/verte-zerg/pwgen/internal/stats"
	"github.com/verte-zerg/pwgen/internal/store"
	"github.com/verte-zerg/pwgen/internal/strength"
	"github.com/verte-zerg/pwgen/internal/tui"
)

type genFlags struct {
	length  int
	lower   bool
	upper   bool
	digits  bool
	symbols bool
}

var (
	rootFlags genFlags

	generateFlags        genFlags
	generateCount        int
	generateShowStrength bool
	generateNoHistory    bool

	historyClear bool
)

var (
	passwordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pwgen",
		Short:         "TUI password generator",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}
	registerGenFlags(rootCmd, &rootFlags)

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func registerGenFlags(cmd *cobra.Command, f *genFlags) {
	defaults := model.DefaultGenerationConfig()
	cmd.Flags().IntVar(&f.length, "length", defaults.Length, fmt.Sprintf("password length (%d-%d)", model.MinLength, model.MaxLength))
	cmd.Flags().BoolVar(&f.lower, "lower", defaults.UseLower, "include lowercase letters")
	cmd.Flags().BoolVar(&f.upper, "upper", defaults.UseUpper, "include uppercase letters")
	cmd.Flags().BoolVar(&f.digits, "digits", defaults.UseDigits, "include digits")
	cmd.Flags().BoolVar(&f.symbols, "symbols", defaults.UseSymbols, "include symbols")
}

// resolveGenerationConfig layers the TOML config under explicitly set flags.
func resolveGenerationConfig(cmd *cobra.Command, f *genFlags) (model.GenerationConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.GenerationConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "length", &f.length, fileCfg.Generator.Length)
	applyBoolConfig(cmd, "lower", &f.lower, fileCfg.Generator.Lower)
	applyBoolConfig(cmd, "upper", &f.upper, fileCfg.Generator.Upper)
	applyBoolConfig(cmd, "digits", &f.digits, fileCfg.Generator.Digits)
	applyBoolConfig(cmd, "symbols", &f.symbols, fileCfg.Generator.Symbols)

	cfg := model.GenerationConfig{
		Length:     f.length,
		UseLower:   f.lower,
		UseUpper:   f.upper,
		UseDigits:  f.digits,
		UseSymbols: f.symbols,
	}
	if err := validateConfig(cfg); err != nil {
		return model.GenerationConfig{}, err
	}
	return cfg, nil
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveGenerationConfig(cmd, &rootFlags)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	log, err := history.Load(context.Background(), st)
	if err != nil {
		logErrf("failed to load history, starting empty: %v\n", err)
		log = history.Log{}
	}

	m := tui.NewModel(cfg, log, st, generator.New(), clipboard.System{})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print passwords without the TUI",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	registerGenFlags(cmd, &generateFlags)
	cmd.Flags().IntVarP(&generateCount, "count", "n", 1, "number of passwords")
	cmd.Flags().BoolVar(&generateShowStrength, "show-strength", false, "print the strength label next to each password")
	cmd.Flags().BoolVar(&generateNoHistory, "no-history", false, "do not record passwords in history")
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveGenerationConfig(cmd, &generateFlags)
	if err != nil {
		return err
	}
	if generateCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}

	var kv history.KV
	if !generateNoHistory {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		kv = st
	}

	styled := isTerminal(cmd.OutOrStdout())
	return generatePasswords(context.Background(), cmd.OutOrStdout(), cfg, generateCount, generateShowStrength, styled, generator.New(), kv, time.Now)
}

// generatePasswords prints count passwords and, when kv is set, records them.
func generatePasswords(ctx context.Context, out io.Writer, cfg model.GenerationConfig, count int, showStrength, styled bool, gen state.Generator, kv history.KV, now func() time.Time) error {
	var log history.Log
	if kv != nil {
		loaded, err := history.Load(ctx, kv)
		if err != nil {
			logErrf("failed to load history, starting empty: %v\n", err)
		}
		log = loaded
	}

	s := state.New(cfg, log)
	persist := false
	for i := 0; i < count; i++ {
		next, eff, err := state.Generate(s, gen, now())
		if err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		if next.Placeholder != "" {
			return errors.New(next.Placeholder)
		}
		s = next
		persist = persist || eff.PersistHistory
		if err := printPassword(out, s.Password, showStrength, styled); err != nil {
			return err
		}
	}

	if persist && kv != nil {
		if err := history.Save(ctx, kv, s.History); err != nil {
			return err
		}
	}
	return nil
}

func printPassword(out io.Writer, password string, showStrength, styled bool) error {
	line := password
	if styled {
		line = passwordStyle.Render(password)
	}
	if showStrength {
		label := strength.Label(strength.Score(password))
		if styled {
			label = mutedStyle.Render(label)
		}
		line += "\t" + label
	}
	if _, err := fmt.Fprintln(out, line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear generated passwords",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().BoolVar(&historyClear, "clear", false, "clear the history")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	return showHistory(context.Background(), cmd.OutOrStdout(), st, historyClear, time.Now)
}

func showHistory(ctx context.Context, out io.Writer, kv history.KV, wipe bool, now func() time.Time) error {
	log, err := history.Load(ctx, kv)
	if err != nil {
		return err
	}
	if wipe {
		s, _ := state.ClearHistory(state.New(model.DefaultGenerationConfig(), log))
		if err := history.Save(ctx, kv, s.History); err != nil {
			return err
		}
		logErrf("Cleared %d entries\n", len(log))
		return nil
	}
	if len(log) == 0 {
		logErrln("History is empty")
		return nil
	}
	for _, line := range stats.FormatHistory(log, now()) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if _, err := fmt.Fprintln(out, stats.FormatSummary(stats.Summarize(log))); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	d := model.DefaultGenerationConfig()
	return fmt.Sprintf(`# pwgen configuration
# Uncomment a value to enable it. CLI flags override config values.

[generator]
# length = %d             # Password length (%d-%d)
# lower = %t            # Include lowercase letters
# upper = %t            # Include uppercase letters
# digits = %t           # Include digits
# symbols = %t         # Include symbols
`,
		d.Length,
		model.MinLength,
		model.MaxLength,
		d.UseLower,
		d.UseUpper,
		d.UseDigits,
		d.UseSymbols,
	)
}

func validateConfig(cfg model.GenerationConfig) error {
	if cfg.Length < model.MinLength || cfg.Length > model.MaxLength {
		return fmt.Errorf("--length must be between %d and %d", model.MinLength, model.MaxLength)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
