package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuimorse/internal/dictionary"
	"github.com/verte-zerg/tuimorse/internal/trainer"
)

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List active practice items per length",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	addPracticeFlags(cmd)
	cmd.Flags().IntVar(&wordsLength, "length", 0, "only list items of this length")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
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

	payload, ok, err := st.LoadSettings(cmd.Context(), trainer.DictionaryNamespace)
	if err != nil {
		return fmt.Errorf("failed to load dictionary settings: %w", err)
	}
	if ok {
		var settings dictionary.Settings
		if err := json.Unmarshal(payload, &settings); err != nil {
			return fmt.Errorf("failed to decode dictionary settings: %w", err)
		}
		if err := dict.ApplySettings(settings); err != nil {
			return err
		}
	}
	if override, ok := dictionaryOverride(cfg, dict); ok {
		if err := dict.ApplySettings(override); err != nil {
			return err
		}
	}

	lengths := dict.Lengths()
	if wordsLength > 0 {
		lengths = []int{wordsLength}
	}
	out := cmd.OutOrStdout()
	for _, length := range lengths {
		words := dict.Candidates(length)
		if len(words) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(out, "%d (%d): %s\n", length, len(words), strings.Join(words, " ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
