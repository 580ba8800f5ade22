package trainer

import "testing"

var readPolicy = Policy{Floor: 2, ClampToFloor: true}

func TestSetMinFallsBackToFloor(t *testing.T) {
	b := NewBounds(readPolicy, 2, 3)
	b.SetMax("0")
	if b.Max() != 2 {
		t.Fatalf("expected max clamped to floor, got %d", b.Max())
	}
	b.SetMin("abc")
	if b.Min() != 2 || b.Max() != 2 {
		t.Fatalf("expected [2,2], got [%d,%d]", b.Min(), b.Max())
	}
}

func TestSetMinRaisesMax(t *testing.T) {
	b := NewBounds(readPolicy, 2, 3)
	b.SetMin("7")
	if b.Min() != 7 || b.Max() != 7 {
		t.Fatalf("expected [7,7], got [%d,%d]", b.Min(), b.Max())
	}
	b.SetMax("4")
	if b.Min() != 4 || b.Max() != 4 {
		t.Fatalf("expected [4,4], got [%d,%d]", b.Min(), b.Max())
	}
}

func TestSetterParsesLeadingInteger(t *testing.T) {
	b := NewBounds(readPolicy, 2, 3)
	b.SetMax(" 12px")
	if b.Max() != 12 {
		t.Fatalf("expected 12, got %d", b.Max())
	}
	b.SetMin("-3")
	if b.Min() != 2 {
		t.Fatalf("expected negative min lifted to floor, got %d", b.Min())
	}
}

func TestCopyPolicyOnlyFallsBack(t *testing.T) {
	b := NewBounds(Policy{Floor: 0}, 2, 3)
	b.SetMin("x")
	if b.Min() != 0 {
		t.Fatalf("expected fallback 0, got %d", b.Min())
	}
	b.SetMax("1")
	if b.Max() != 1 || b.Min() != 0 {
		t.Fatalf("expected [0,1], got [%d,%d]", b.Min(), b.Max())
	}
}

func TestOrderingHoldsUnderAdversarialInput(t *testing.T) {
	inputs := []string{"9", "", "1", "-5", "abc", "100", "3", "2.5", "NaN", "4"}
	b := NewBounds(readPolicy, 2, 3)
	for i, raw := range inputs {
		if i%2 == 0 {
			b.SetMin(raw)
		} else {
			b.SetMax(raw)
		}
		if b.Min() > b.Max() {
			t.Fatalf("after %q: min %d > max %d", raw, b.Min(), b.Max())
		}
		if b.Min() < 2 {
			t.Fatalf("after %q: min %d below floor", raw, b.Min())
		}
	}
}
