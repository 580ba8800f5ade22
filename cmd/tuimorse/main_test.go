package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuimorse/internal/dictionary"
	"github.com/verte-zerg/tuimorse/internal/model"
	"github.com/verte-zerg/tuimorse/internal/trainer"
)

func TestValidateConfig(t *testing.T) {
	ok := model.Config{Mode: model.ModeCopy, Types: []string{"qcode"}}
	if err := validateConfig(ok); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	bad := []model.Config{
		{Mode: "send"},
		{Mode: model.ModeRead, Types: []string{"morse"}},
		{Mode: model.ModeRead, DictionarySize: -1},
		{Mode: model.ModeRead, Debounce: -time.Millisecond},
	}
	for _, cfg := range bad {
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}

func TestConfigFileFillsUnchangedFlags(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "tuimorse", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := "[practice]\nmode = \"copy\"\ntypes = [\"qcode\"]\ndebounce-ms = 0\nseed = 9\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := &cobra.Command{Use: "test"}
	addPracticeFlags(cmd)
	if err := cmd.Flags().Parse([]string{"--mode", "read"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Mode != model.ModeRead {
		t.Fatalf("expected flag to win, got %q", cfg.Mode)
	}
	if len(cfg.Types) != 1 || cfg.Types[0] != "qcode" {
		t.Fatalf("expected types from config, got %v", cfg.Types)
	}
	if cfg.Debounce != 0 || cfg.Seed != 9 {
		t.Fatalf("unexpected debounce/seed: %v %d", cfg.Debounce, cfg.Seed)
	}
}

func TestDictionaryOverride(t *testing.T) {
	dict := dictionary.New(dictionary.DefaultEntries())
	if _, ok := dictionaryOverride(model.Config{}, dict); ok {
		t.Fatalf("expected no override")
	}
	got, ok := dictionaryOverride(model.Config{DictionarySize: 50}, dict)
	if !ok || got.Size != 50 || len(got.Types) != 1 || got.Types[0] != "word" {
		t.Fatalf("unexpected override: %+v", got)
	}
}

func TestBuildDictionaryFromWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.txt")
	if err := os.WriteFile(path, []byte("Antenna\nbeam\nbeam\nnaïve\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	dict, err := buildDictionary(model.Config{WordListPath: path})
	if err != nil {
		t.Fatalf("build dictionary: %v", err)
	}
	if got := strings.Join(dict.Candidates(4), ","); got != "beam" {
		t.Fatalf("unexpected 4-letter candidates: %s", got)
	}
	if got := dict.Candidates(7); len(got) != 1 || got[0] != "antenna" {
		t.Fatalf("unexpected 7-letter candidates: %v", got)
	}
	if _, err := buildDictionary(model.Config{WordListPath: filepath.Join(t.TempDir(), "none.txt")}); err == nil {
		t.Fatalf("expected error for missing word list")
	}
}

func TestModeNamespace(t *testing.T) {
	if ns, err := modeNamespace(model.ModeCopy); err != nil || ns != trainer.CopyNamespace {
		t.Fatalf("unexpected namespace %q: %v", ns, err)
	}
	if _, err := modeNamespace("send"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
