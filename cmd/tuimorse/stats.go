package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuimorse/internal/model"
	"github.com/verte-zerg/tuimorse/internal/stats"
	"github.com/verte-zerg/tuimorse/internal/trainer"
)

const (
	terminalWidthBackup = 80
	// rows used by the summary, length table, and trend around the word table
	statsChromeRows = 16
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", defaultMode, "training mode: read or copy")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&statsTop, "top", defaultWeakTop, "number of weakest words (0 fits the terminal)")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	namespace, err := modeNamespace(model.Mode(statsMode))
	if err != nil {
		return err
	}
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsTop < 0 {
		return fmt.Errorf("--top must be >= 0")
	}

	cfg := model.StatsConfig{
		Namespace: namespace,
		Since:     sinceTime,
		Last:      statsLast,
		Top:       statsTop,
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build stats: %w", err)
	}

	width, height := terminalSize()
	top := cfg.Top
	if top == 0 {
		top = height - statsChromeRows
		if top < 1 {
			top = 1
		}
	}

	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderTrend(out, report.Recent, statsCurveWindow); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderLengthTable(out, report.Lengths); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	// word column gets what the ratio and time columns leave
	if err := stats.RenderWordTable(out, stats.WeakestWords(report.Words, top), width-22); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func modeNamespace(mode model.Mode) (string, error) {
	switch mode {
	case model.ModeRead:
		return trainer.ReadNamespace, nil
	case model.ModeCopy:
		return trainer.CopyNamespace, nil
	default:
		return "", fmt.Errorf("--mode must be read or copy")
	}
}

func terminalSize() (width, height int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return terminalWidthBackup, 0
	}
	width, height, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return terminalWidthBackup, 0
	}
	return width, height
}
