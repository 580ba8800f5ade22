// Package perf tracks per-word performance and reconciles it with storage.
package perf

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/verte-zerg/tuimorse/internal/model"
)

// Gateway persists word records.
type Gateway interface {
	IterateWords(ctx context.Context, fn func(word string, rec model.WordRecord) error) error
	SetIfDifferent(ctx context.Context, word string, rec model.WordRecord) error
}

// State is the hydration lifecycle of a Store.
type State int

// Lifecycle states.
const (
	Default State = iota
	Hydrating
	Hydrated
)

func (s State) String() string {
	switch s {
	case Hydrating:
		return "hydrating"
	case Hydrated:
		return "hydrated"
	default:
		return "default"
	}
}

// Store maps words to their latest performance record.
type Store struct {
	gw Gateway

	mu        sync.Mutex
	state     State
	records   map[string]model.WordRecord
	persisted map[string]model.WordRecord
	dirty     map[string]struct{}
	// words mutated since hydration began; hydration leaves them alone
	touched map[string]struct{}
}

// New returns an empty store backed by gw.
func New(gw Gateway) *Store {
	s := &Store{gw: gw}
	s.Reset()
	return s
}

// Reset drops every in-memory record and returns to the Default state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Default
	s.records = map[string]model.WordRecord{}
	s.persisted = map[string]model.WordRecord{}
	s.dirty = map[string]struct{}{}
	s.touched = map[string]struct{}{}
}

// State returns the lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RecordOutcome overwrites the record of word with success/total.
// total must be positive.
func (s *Store) RecordOutcome(word string, success, total int, elapsedMs *int64) {
	rec := model.WordRecord{SuccessRatio: float64(success) / float64(total)}
	if elapsedMs != nil {
		rec.ElapsedMs = model.Millis(*elapsedMs)
	}
	s.Set(word, rec)
}

// Set overwrites the record of word and marks it for reconciliation.
func (s *Store) Set(word string, rec model.WordRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[word] = rec
	s.dirty[word] = struct{}{}
	if s.state != Default {
		s.touched[word] = struct{}{}
	}
}

// Get returns the record of word, if known.
func (s *Store) Get(word string) (model.WordRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[word]
	return rec, ok
}

// Len returns the number of known words.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Snapshot returns a copy of every record.
func (s *Store) Snapshot() map[string]model.WordRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]model.WordRecord, len(s.records))
	for w, r := range s.records {
		out[w] = r
	}
	return out
}

// Pending returns the words whose in-memory value may differ from storage.
func (s *Store) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	words := make([]string, 0, len(s.dirty))
	for w := range s.dirty {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Hydrate loads persisted records. Words set after hydration began keep
// their newer in-memory value.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	s.state = Hydrating
	s.mu.Unlock()

	err := s.gw.IterateWords(ctx, func(word string, rec model.WordRecord) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A Sync since hydration began knows a newer stored value.
		if _, ok := s.persisted[word]; !ok {
			s.persisted[word] = rec
		}
		if _, ok := s.touched[word]; ok {
			return nil
		}
		if _, ok := s.dirty[word]; ok {
			return nil
		}
		s.records[word] = rec
		return nil
	})

	s.mu.Lock()
	s.state = Hydrated
	s.touched = map[string]struct{}{}
	s.mu.Unlock()
	if err != nil {
		return &model.StorageError{Op: "load words", Err: err}
	}
	return nil
}

// Sync writes every dirty word whose value differs from the last persisted
// one. Failed words stay dirty for the next call.
func (s *Store) Sync(ctx context.Context) error {
	type change struct {
		word string
		rec  model.WordRecord
	}
	s.mu.Lock()
	changes := make([]change, 0, len(s.dirty))
	for w := range s.dirty {
		rec := s.records[w]
		if prev, ok := s.persisted[w]; ok && prev.Equal(rec) {
			delete(s.dirty, w)
			continue
		}
		changes = append(changes, change{word: w, rec: rec})
	}
	s.mu.Unlock()
	sort.Slice(changes, func(i, j int) bool { return changes[i].word < changes[j].word })

	var errs []error
	for _, c := range changes {
		if err := s.gw.SetIfDifferent(ctx, c.word, c.rec); err != nil {
			errs = append(errs, &model.StorageError{Op: "write word", Key: c.word, Err: err})
			continue
		}
		s.mu.Lock()
		s.persisted[c.word] = c.rec
		if cur, ok := s.records[c.word]; ok && cur.Equal(c.rec) {
			delete(s.dirty, c.word)
		}
		s.mu.Unlock()
	}
	return errors.Join(errs...)
}
