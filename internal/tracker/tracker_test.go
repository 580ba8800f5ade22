package tracker

import (
	"math"
	"testing"
)

func TestTrailingRatioEmptyIsNaN(t *testing.T) {
	tr := New(5)
	if !math.IsNaN(tr.TrailingRatio()) {
		t.Fatalf("expected NaN for empty tracker, got %v", tr.TrailingRatio())
	}
}

func TestRecordKeepsFIFOWindow(t *testing.T) {
	tr := New(3)
	calls := [][2]int{{1, 1}, {0, 1}, {1, 2}, {3, 4}, {1, 4}}
	for i, c := range calls {
		tr.Record(c[0], c[1])
		want := i + 1
		if want > 3 {
			want = 3
		}
		if tr.Len() != want {
			t.Fatalf("after %d records expected len %d, got %d", i+1, want, tr.Len())
		}
	}
	got := tr.Results()
	want := []float64{0.5, 0.75, 0.25}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected window: %v", got)
		}
	}
	if mean := tr.TrailingRatio(); math.Abs(mean-0.5) > 1e-9 {
		t.Fatalf("expected mean 0.5, got %v", mean)
	}
}

func TestRecordReportsFillOnce(t *testing.T) {
	tr := New(5)
	for i := 0; i < 4; i++ {
		if tr.Record(1, 1) {
			t.Fatalf("record %d reported fill early", i+1)
		}
	}
	if !tr.Record(1, 1) {
		t.Fatalf("expected fifth record to fill the window")
	}
	if tr.Record(1, 1) {
		t.Fatalf("expected no fill report once the window is already full")
	}
	if !tr.Full() {
		t.Fatalf("expected full window")
	}
}

func TestTrailingRatioPartialWindow(t *testing.T) {
	tr := New(5)
	tr.Record(0, 1)
	tr.Record(1, 1)
	if got := tr.TrailingRatio(); got != 0.5 {
		t.Fatalf("expected 0.5 on partial window, got %v", got)
	}
}

func TestRatioWithinUnitInterval(t *testing.T) {
	tr := New(10)
	for total := 1; total <= 4; total++ {
		for success := 0; success <= total; success++ {
			tr.Record(success, total)
			r := tr.Results()[tr.Len()-1]
			if r < 0 || r > 1 {
				t.Fatalf("ratio %d/%d out of range: %v", success, total, r)
			}
		}
	}
}
