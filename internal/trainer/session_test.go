package trainer

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/verte-zerg/tuimorse/internal/dictionary"
	"github.com/verte-zerg/tuimorse/internal/model"
	"github.com/verte-zerg/tuimorse/internal/picker"
)

func testDictionary() *dictionary.Dictionary {
	return dictionary.New([]dictionary.Entry{
		{Word: "de", Type: dictionary.Word, Rank: 0},
		{Word: "of", Type: dictionary.Word, Rank: 1},
		{Word: "cat", Type: dictionary.Word, Rank: 2},
		{Word: "dog", Type: dictionary.Word, Rank: 3},
		{Word: "qth", Type: dictionary.QCode, Rank: 0},
		{Word: "five", Type: dictionary.Word, Rank: 4},
	})
}

func newTestSession(t *testing.T, gw *memGateway, mode model.Mode) *Session {
	t.Helper()
	s, err := NewSession(gw, SessionOptions{
		Mode:       mode,
		Dictionary: testDictionary(),
		Rand:       rand.New(rand.NewSource(7)),
		OnError:    func(error) {},
		Now:        func() time.Time { return time.Unix(100, 0) },
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func waitHydrated(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Hydrated():
	case <-time.After(2 * time.Second):
		t.Fatalf("hydration did not finish")
	}
}

func TestNextStaysWithinBoundsAndNeverRepeats(t *testing.T) {
	s := newTestSession(t, newMemGateway(), model.ModeRead)
	prev := ""
	for i := 0; i < 100; i++ {
		w, err := s.Next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if w == prev {
			t.Fatalf("repeated %q", w)
		}
		if l := len(w); l < 2 || l > 3 {
			t.Fatalf("word %q outside bounds", w)
		}
		prev = w
	}
}

func TestNextFailsWithoutCandidates(t *testing.T) {
	s := newTestSession(t, newMemGateway(), model.ModeRead)
	if err := s.SetMinLength("9"); err != nil {
		t.Fatalf("set min: %v", err)
	}
	if _, err := s.Next(); !errors.Is(err, picker.ErrEmptyCandidatePool) {
		t.Fatalf("expected ErrEmptyCandidatePool, got %v", err)
	}
}

func TestReportReconcilesAndLogs(t *testing.T) {
	gw := newMemGateway()
	s := newTestSession(t, gw, model.ModeRead)
	ctx := context.Background()
	attempt := model.Attempt{Text: "cat dog", Success: 1, Total: 1, ElapsedMs: model.Millis(120)}
	if err := s.Report(ctx, attempt); err != nil {
		t.Fatalf("report: %v", err)
	}
	if err := s.Report(ctx, attempt); err != nil {
		t.Fatalf("report: %v", err)
	}
	if gw.wordWrites[ReadNamespace+"/cat"] != 1 || gw.wordWrites[ReadNamespace+"/dog"] != 1 {
		t.Fatalf("expected one write per word, got %v", gw.wordWrites)
	}
	if len(gw.attempts) != 2 {
		t.Fatalf("expected 2 logged attempts, got %d", len(gw.attempts))
	}
	a := gw.attempts[0]
	if a.SessionID != s.ID() || a.Length != 7 || a.Namespace != ReadNamespace {
		t.Fatalf("unexpected attempt log: %+v", a)
	}
}

func TestReportSurfacesStorageError(t *testing.T) {
	gw := newMemGateway()
	var seen []error
	s, err := NewSession(gw, SessionOptions{Dictionary: testDictionary(), OnError: func(err error) { seen = append(seen, err) }})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	gw.failWrites = true
	err = s.Report(context.Background(), model.Attempt{Text: "cat", Success: 1, Total: 1})
	var serr *model.StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("expected error hook to fire once, got %d", len(seen))
	}
	if _, ok := s.Controller().Words().Get("cat"); !ok {
		t.Fatalf("expected in-memory record to be kept")
	}
}

func TestStartHydratesInBackground(t *testing.T) {
	gw := newMemGateway()
	gw.settings[ReadNamespace] = []byte(`{"minLength":3,"maxLength":4}`)
	gw.settings[DictionaryNamespace] = []byte(`{"types":["word","qcode"],"size":100}`)
	gw.words[ReadNamespace] = map[string]model.WordRecord{"qth": {SuccessRatio: 0.75}}

	s := newTestSession(t, gw, model.ModeRead)
	if minLength, maxLength := s.Bounds(); minLength != 2 || maxLength != 3 {
		t.Fatalf("expected defaults before hydration, got [%d,%d]", minLength, maxLength)
	}
	s.Start(context.Background())
	waitHydrated(t, s)

	if minLength, maxLength := s.Bounds(); minLength != 3 || maxLength != 4 {
		t.Fatalf("expected hydrated bounds [3,4], got [%d,%d]", minLength, maxLength)
	}
	var has bool
	s.Dictionary(func(d *dictionary.Dictionary) {
		_, has = d.WordFrequency()["qth"]
	})
	if !has {
		t.Fatalf("expected q-codes enabled after hydration")
	}
	if rec, ok := s.Controller().Words().Get("qth"); !ok || rec.SuccessRatio != 0.75 {
		t.Fatalf("expected hydrated word record, got %+v", rec)
	}
}

func TestDictionaryChangesArePersisted(t *testing.T) {
	gw := newMemGateway()
	s := newTestSession(t, gw, model.ModeCopy)
	if err := s.AddType(dictionary.QCode); err != nil {
		t.Fatalf("add type: %v", err)
	}
	if got := string(gw.settings[DictionaryNamespace]); got != `{"types":["word","qcode"],"size":5000}` {
		t.Fatalf("unexpected dictionary payload: %s", got)
	}
	if err := s.SetDictionarySize(2); err != nil {
		t.Fatalf("set size: %v", err)
	}
	if err := s.RemoveType(dictionary.QCode); err != nil {
		t.Fatalf("remove type: %v", err)
	}
	if got := string(gw.settings[DictionaryNamespace]); got != `{"types":["word"],"size":2}` {
		t.Fatalf("unexpected dictionary payload: %s", got)
	}
}

func TestClearResetsEverything(t *testing.T) {
	gw := newMemGateway()
	s := newTestSession(t, gw, model.ModeRead)
	ctx := context.Background()
	if err := s.SetMaxLength("4"); err != nil {
		t.Fatalf("set max: %v", err)
	}
	if err := s.AddType(dictionary.QCode); err != nil {
		t.Fatalf("add type: %v", err)
	}
	if err := s.Report(ctx, model.Attempt{Text: "cat", Success: 1, Total: 1}); err != nil {
		t.Fatalf("report: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if gw.clears != 1 {
		t.Fatalf("expected gateway clear")
	}
	if minLength, maxLength := s.Bounds(); minLength != 2 || maxLength != 3 {
		t.Fatalf("expected default bounds, got [%d,%d]", minLength, maxLength)
	}
	if s.Controller().Words().Len() != 0 {
		t.Fatalf("expected empty word store")
	}
	s.Dictionary(func(d *dictionary.Dictionary) {
		if len(d.EnabledTypes()) != 1 {
			t.Fatalf("expected default dictionary types, got %v", d.EnabledTypes())
		}
	})
	if _, ok := gw.word(ReadNamespace, "cat"); ok {
		t.Fatalf("expected stored words to be gone")
	}
}

func TestCloseFlushesDebouncedSettings(t *testing.T) {
	gw := newMemGateway()
	s, err := NewSession(gw, SessionOptions{Dictionary: testDictionary(), Debounce: time.Hour, OnError: func(error) {}})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := s.SetMaxLength("5"); err != nil {
		t.Fatalf("set max: %v", err)
	}
	if err := s.SetMaxLength("6"); err != nil {
		t.Fatalf("set max: %v", err)
	}
	if gw.saves[ReadNamespace] != 0 {
		t.Fatalf("expected write to be debounced")
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if gw.saves[ReadNamespace] != 1 || string(gw.settings[ReadNamespace]) != `{"minLength":2,"maxLength":6}` {
		t.Fatalf("expected one flushed write, got %d: %s", gw.saves[ReadNamespace], gw.settings[ReadNamespace])
	}
}

func TestUnknownModeRejected(t *testing.T) {
	if _, err := NewSession(newMemGateway(), SessionOptions{Mode: "send"}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestAppliedDictionarySettingsWinOverHydration(t *testing.T) {
	gw := newMemGateway()
	gw.settings[DictionaryNamespace] = []byte(`{"types":["word","qcode"],"size":100}`)
	gw.onLoad = func() { time.Sleep(20 * time.Millisecond) }
	s := newTestSession(t, gw, model.ModeRead)
	s.Start(context.Background())
	if err := s.ApplyDictionarySettings(dictionary.Settings{Types: []string{"qcode"}, Size: 10}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	waitHydrated(t, s)
	s.Dictionary(func(d *dictionary.Dictionary) {
		types := d.EnabledTypes()
		if len(types) != 1 || types[0] != dictionary.QCode {
			t.Fatalf("expected applied types to survive hydration, got %v", types)
		}
	})
	if err := s.ApplyDictionarySettings(dictionary.Settings{Types: []string{"morse"}}); err == nil {
		t.Fatalf("expected unknown type error")
	}
}
