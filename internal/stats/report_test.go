package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuimorse/internal/model"
	"github.com/verte-zerg/tuimorse/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "tuimorse.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	if err := st.SaveSettings(ctx, "ReadTrainer", []byte(`{"minLength":3,"maxLength":5}`)); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	words := st.Words("ReadTrainer")
	if err := words.SetIfDifferent(ctx, "cat", model.WordRecord{SuccessRatio: 0.5, ElapsedMs: model.Millis(400)}); err != nil {
		t.Fatalf("set word: %v", err)
	}
	for i, text := range []string{"cat", "dog", "five"} {
		rec := model.AttemptRecord{
			SessionID: "s1",
			Namespace: "ReadTrainer",
			Text:      text,
			Length:    len(text),
			Success:   i % 2,
			Total:     1,
			At:        time.Unix(int64(i), 0),
		}
		if err := st.InsertAttempt(ctx, rec); err != nil {
			t.Fatalf("insert attempt: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Namespace: "ReadTrainer", Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if !report.HasBounds || report.MinLength != 3 || report.MaxLength != 5 {
		t.Fatalf("unexpected bounds: %+v", report)
	}
	if len(report.Recent) != 2 {
		t.Fatalf("expected 2 recent attempts, got %d", len(report.Recent))
	}
	if len(report.Lengths) != 2 {
		t.Fatalf("expected 2 length aggregates, got %+v", report.Lengths)
	}
	if _, ok := report.Words["cat"]; !ok {
		t.Fatalf("expected cat in word stats")
	}

	var buf bytes.Buffer
	if err := RenderSummary(&buf, report); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if err := RenderLengthTable(&buf, report.Lengths); err != nil {
		t.Fatalf("render lengths: %v", err)
	}
	if err := RenderWordTable(&buf, WeakestWords(report.Words, 5), 20); err != nil {
		t.Fatalf("render words: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Length window: 3-5", "Attempts: 3", "Per-Length", "Weakest Words", "50.0%", "400"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
