// Package main provides the CLI entrypoint for tuimorse.
package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuimorse/internal/config"
	"github.com/verte-zerg/tuimorse/internal/dictionary"
	"github.com/verte-zerg/tuimorse/internal/model"
	"github.com/verte-zerg/tuimorse/internal/perf"
	"github.com/verte-zerg/tuimorse/internal/persist"
	"github.com/verte-zerg/tuimorse/internal/store"
	"github.com/verte-zerg/tuimorse/internal/trainer"
	"github.com/verte-zerg/tuimorse/internal/tui"
	"github.com/verte-zerg/tuimorse/internal/wordlist"
)

const (
	defaultMode           = string(model.ModeRead)
	defaultDictionarySize = 5000
	defaultCurveWindow    = 10
	defaultWeakTop        = 10
)

var (
	practiceMode           string
	practiceTypes          []string
	practiceDictionarySize int
	practiceWordList       string
	practiceDebounceMs     int
	practiceSeed           int64

	statsMode        string
	statsSince       string
	statsLast        int
	statsTop         int
	statsCurveWindow int

	wordsLength int

	clearYes bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuimorse",
		Short:         "TUI Morse code trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	addPracticeFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newClearCmd())

	return rootCmd
}

func addPracticeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "training mode: read or copy")
	cmd.Flags().StringSliceVar(&practiceTypes, "types", nil, "word types to practice (default: stored choice, else word)")
	cmd.Flags().IntVar(&practiceDictionarySize, "dictionary-size", 0, "number of entries in the active pool (default: stored choice, else 5000)")
	cmd.Flags().StringVar(&practiceWordList, "wordlist", "", "word list replacing the built-in common words")
	cmd.Flags().IntVar(&practiceDebounceMs, "debounce-ms", int(persist.DefaultDelay/time.Millisecond), "delay before settings are written")
	cmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed (0 uses the clock)")
}

func loadPracticeConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyStringSliceConfig(cmd, "types", &practiceTypes, fileCfg.Practice.Types)
	applyIntConfig(cmd, "dictionary-size", &practiceDictionarySize, fileCfg.Practice.DictionarySize)
	applyStringConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)
	applyIntConfig(cmd, "debounce-ms", &practiceDebounceMs, fileCfg.Practice.DebounceMs)
	applyInt64Config(cmd, "seed", &practiceSeed, fileCfg.Practice.Seed)

	cfg := model.Config{
		Mode:           model.Mode(strings.ToLower(strings.TrimSpace(practiceMode))),
		Types:          practiceTypes,
		DictionarySize: practiceDictionarySize,
		WordListPath:   config.ResolveWordListPath(practiceWordList),
		Debounce:       time.Duration(practiceDebounceMs) * time.Millisecond,
		Seed:           practiceSeed,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}
	dict, err := buildDictionary(cfg)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	var rnd *rand.Rand
	if cfg.Seed != 0 {
		rnd = rand.New(rand.NewSource(cfg.Seed))
	}
	session, err := trainer.NewSession(gateway{st}, trainer.SessionOptions{
		Mode:       cfg.Mode,
		Dictionary: dict,
		Debounce:   cfg.Debounce,
		Rand:       rnd,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	session.Start(ctx)
	if override, ok := dictionaryOverride(cfg, dict); ok {
		if err := session.ApplyDictionarySettings(override); err != nil {
			return err
		}
	}
	defer func() {
		if err := session.Close(ctx); err != nil {
			logErrf("failed to save progress: %v\n", err)
		}
	}()

	program := tea.NewProgram(tui.NewModel(session), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func buildDictionary(cfg model.Config) (*dictionary.Dictionary, error) {
	if cfg.WordListPath == "" {
		return dictionary.New(dictionary.DefaultEntries()), nil
	}
	lang := strings.TrimSuffix(filepath.Base(cfg.WordListPath), filepath.Ext(cfg.WordListPath))
	words, err := wordlist.LoadWords(cfg.WordListPath, wordlist.FilterForLang(lang))
	if err != nil {
		return nil, wordListLoadError(cfg.WordListPath, err)
	}
	return dictionary.New(dictionary.EntriesWithWords(words)), nil
}

// dictionaryOverride returns the settings given by flags or config, if any.
// Unset parts keep the dictionary's current value.
func dictionaryOverride(cfg model.Config, dict *dictionary.Dictionary) (dictionary.Settings, bool) {
	if len(cfg.Types) == 0 && cfg.DictionarySize == 0 {
		return dictionary.Settings{}, false
	}
	settings := dict.Settings()
	if len(cfg.Types) > 0 {
		settings.Types = cfg.Types
	}
	if cfg.DictionarySize > 0 {
		settings.Size = cfg.DictionarySize
	}
	return settings, true
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

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored settings, word records, and attempts",
		Args:  cobra.NoArgs,
		RunE:  runClearCmd,
	}
	cmd.Flags().BoolVar(&clearYes, "yes", false, "do not ask for confirmation")
	return cmd
}

func runClearCmd(cmd *cobra.Command, _ []string) error {
	if !clearYes {
		ok, err := confirm(cmd, "This deletes all progress and cannot be undone. Continue? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			logErrln("Aborted.")
			return nil
		}
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)
	if err := st.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	logErrln("Storage cleared.")
	return nil
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if _, err := fmt.Fprint(cmd.ErrOrStderr(), prompt); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// gateway exposes a Store as the trainer's persistence.
type gateway struct {
	*store.Store
}

func (g gateway) Words(namespace string) perf.Gateway {
	return g.Store.Words(namespace)
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuimorse configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q               # Training mode: read or copy
# types = ["word"]         # Word types: %s
# dictionary-size = %d   # Entries in the active pool
# wordlist = "en"          # Word list name or path replacing the common words
# debounce-ms = %d        # Delay before settings are written
# seed = 0                 # Random seed (0 uses the clock)
`,
		defaultMode,
		strings.Join(typeNames(), ", "),
		defaultDictionarySize,
		int(persist.DefaultDelay/time.Millisecond),
	)
}

func typeNames() []string {
	types := dictionary.AllTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

func validateConfig(cfg model.Config) error {
	if cfg.Mode != model.ModeRead && cfg.Mode != model.ModeCopy {
		return fmt.Errorf("--mode must be read or copy")
	}
	for _, name := range cfg.Types {
		if _, err := dictionary.ParseType(name); err != nil {
			return fmt.Errorf("--types: %w", err)
		}
	}
	if cfg.DictionarySize < 0 {
		return fmt.Errorf("--dictionary-size must be >= 0")
	}
	if cfg.Debounce < 0 {
		return fmt.Errorf("--debounce-ms must be >= 0")
	}
	return nil
}

func wordListLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		fmt.Sprintf("Word lists live in: %s", config.DefaultWordListDir()),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
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
