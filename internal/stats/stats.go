// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/tuimorse/internal/model"
)

const sparkChars = " .:-=+*#%@"

// AttemptRatios returns the success ratio of every attempt, in order.
func AttemptRatios(attempts []model.AttemptRecord) []float64 {
	out := make([]float64, len(attempts))
	for i, a := range attempts {
		if a.Total > 0 {
			out[i] = float64(a.Success) / float64(a.Total)
		}
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders values on a fixed 0..1 scale.
func Sparkline(values []float64) string {
	var b strings.Builder
	last := len(sparkChars) - 1
	for _, v := range values {
		idx := int(math.Round(v * float64(last)))
		if idx < 0 {
			idx = 0
		}
		if idx > last {
			idx = last
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the bounds and totals of a report.
func RenderSummary(w io.Writer, r Report) error {
	if _, err := fmt.Fprintf(w, "Mode: %s\n", r.Namespace); err != nil {
		return err
	}
	if r.HasBounds {
		if _, err := fmt.Fprintf(w, "Length window: %d-%d\n", r.MinLength, r.MaxLength); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(w, "Length window: default"); err != nil {
		return err
	}
	attempts, success, total := 0, 0, 0
	for _, agg := range r.Lengths {
		attempts += agg.Attempts
		success += agg.Success
		total += agg.Total
	}
	if _, err := fmt.Fprintf(w, "Attempts: %d\n", attempts); err != nil {
		return err
	}
	if total > 0 {
		if _, err := fmt.Fprintf(w, "Success: %.1f%%\n", float64(success)/float64(total)*100); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Words tracked: %d\n\n", len(r.Words)); err != nil {
		return err
	}
	return nil
}

// RenderLengthTable prints per-length success ratios.
func RenderLengthTable(w io.Writer, aggs []model.LengthAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No attempts found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Length"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		ratio := 0.0
		if agg.Total > 0 {
			ratio = float64(agg.Success) / float64(agg.Total)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", agg.Length),
			fmt.Sprintf("%d", agg.Attempts),
			fmt.Sprintf("%.1f%%", ratio*100),
		})
	}
	return writeLines(w, table{
		headers:    []string{"Length", "Attempts", "Success"},
		rows:       rows,
		rightAlign: map[int]bool{0: true, 1: true, 2: true},
	}.lines())
}

// RenderWordTable prints word records, weakest first.
func RenderWordTable(w io.Writer, words []WordStat, textWidth int) error {
	if len(words) == 0 {
		_, err := fmt.Fprintln(w, "No word stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Weakest Words"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(words))
	for _, ws := range words {
		elapsed := "-"
		if ws.Record.ElapsedMs != nil {
			elapsed = fmt.Sprintf("%d", *ws.Record.ElapsedMs)
		}
		rows = append(rows, []string{
			ws.Word,
			fmt.Sprintf("%.1f%%", ws.Record.SuccessRatio*100),
			elapsed,
		})
	}
	return writeLines(w, table{
		headers:    []string{"Word", "Success", "Time (ms)"},
		rows:       rows,
		rightAlign: map[int]bool{1: true, 2: true},
		maxWidth:   map[int]int{0: textWidth},
	}.lines())
}

// RenderTrend prints a sparkline of recent attempt ratios.
func RenderTrend(w io.Writer, attempts []model.AttemptRecord, window int) error {
	if len(attempts) == 0 {
		return nil
	}
	line := Sparkline(MovingAverage(AttemptRatios(attempts), window))
	_, err := fmt.Fprintf(w, "Trend (last %d): [%s]\n\n", len(attempts), line)
	return err
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
