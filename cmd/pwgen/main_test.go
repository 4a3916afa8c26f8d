package main

import (
	"bytes"
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/pwgen/internal/config"
	"github.com/verte-zerg/pwgen/internal/generator"
	"github.com/verte-zerg/pwgen/internal/history"
	"github.com/verte-zerg/pwgen/internal/model"
	"github.com/verte-zerg/pwgen/internal/state"
	"github.com/verte-zerg/pwgen/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "pwgen.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func fixedNow() time.Time {
	return time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
}

func TestGeneratePasswordsRecordsHistory(t *testing.T) {
	st := openTestStore(t)
	gen := generator.NewWithSource(rand.New(rand.NewPCG(3, 4)))
	cfg := model.GenerationConfig{Length: 12, UseLower: true, UseUpper: true, UseDigits: true}

	var out bytes.Buffer
	if err := generatePasswords(context.Background(), &out, cfg, 3, true, false, gen, st, fixedNow); err != nil {
		t.Fatalf("generate: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", out.String())
	}
	for _, line := range lines {
		parts := strings.Split(line, "\t")
		if len(parts) != 2 || len(parts[0]) != 12 || parts[1] == "" {
			t.Fatalf("unexpected line %q", line)
		}
	}

	log, err := history.Load(context.Background(), st)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(log) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(log))
	}
	if log[0].Value != strings.Split(lines[2], "\t")[0] {
		t.Fatalf("expected last printed password first in history")
	}
}

func TestGeneratePasswordsEmptyPool(t *testing.T) {
	st := openTestStore(t)
	var out bytes.Buffer
	err := generatePasswords(context.Background(), &out, model.GenerationConfig{Length: 8}, 1, false, false, generator.New(), st, fixedNow)
	if err == nil || err.Error() != state.EmptyPoolPlaceholder {
		t.Fatalf("expected placeholder error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
	if _, ok, _ := st.Get(context.Background(), history.Key); ok {
		t.Fatalf("expected no history write")
	}
}

func TestGeneratePasswordsWithoutHistory(t *testing.T) {
	var out bytes.Buffer
	if err := generatePasswords(context.Background(), &out, model.DefaultGenerationConfig(), 2, false, false, generator.New(), nil, fixedNow); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := strings.Count(out.String(), "\n"); got != 2 {
		t.Fatalf("expected 2 lines, got %d", got)
	}
}

func TestShowHistoryListAndClear(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	log := history.Prepend(history.Log{}, model.GeneratedPassword{Value: "abcDEF123", CreatedAt: fixedNow()})
	if err := history.Save(ctx, st, log); err != nil {
		t.Fatalf("save: %v", err)
	}

	var out bytes.Buffer
	if err := showHistory(ctx, &out, st, false, fixedNow); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out.String(), "abcDEF123") || !strings.Contains(out.String(), "1 entry") {
		t.Fatalf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := showHistory(ctx, &out, st, true, fixedNow); err != nil {
		t.Fatalf("clear: %v", err)
	}
	cleared, err := history.Load(ctx, st)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cleared) != 0 {
		t.Fatalf("expected empty history, got %d", len(cleared))
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(model.DefaultGenerationConfig()); err != nil {
		t.Fatalf("default config: %v", err)
	}
	for _, n := range []int{0, 3, 65} {
		cfg := model.DefaultGenerationConfig()
		cfg.Length = n
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("expected error for length %d", n)
		}
	}
}

func TestResolveGenerationConfigLayersFlags(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("[generator]\nlength = 20\nsymbols = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var f genFlags
	cmd := &cobra.Command{Use: "test"}
	registerGenFlags(cmd, &f)
	if err := cmd.Flags().Parse([]string{"--symbols=false"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := resolveGenerationConfig(cmd, &f)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Length != 20 {
		t.Fatalf("expected config length 20, got %d", cfg.Length)
	}
	if cfg.UseSymbols {
		t.Fatalf("explicit flag must win over config")
	}
	if !cfg.UseLower || !cfg.UseUpper || !cfg.UseDigits {
		t.Fatalf("expected defaults for unset keys, got %+v", cfg)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	uncommented := strings.ReplaceAll(defaultConfigTemplate(), "# length", "length")
	var cfg config.FileConfig
	if _, err := toml.Decode(uncommented, &cfg); err != nil {
		t.Fatalf("decode template: %v", err)
	}
	if cfg.Generator.Length == nil || *cfg.Generator.Length != model.DefaultLength {
		t.Fatalf("unexpected template length %v", cfg.Generator.Length)
	}
}
