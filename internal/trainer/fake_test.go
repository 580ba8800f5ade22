package trainer

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/verte-zerg/tuimorse/internal/model"
	"github.com/verte-zerg/tuimorse/internal/perf"
)

type memGateway struct {
	mu         sync.Mutex
	settings   map[string][]byte
	words      map[string]map[string]model.WordRecord
	saves      map[string]int
	wordWrites map[string]int
	attempts   []model.AttemptRecord
	failWrites bool
	clears     int
	// onLoad runs before every settings load, outside the lock
	onLoad func()
}

func newMemGateway() *memGateway {
	return &memGateway{
		settings:   map[string][]byte{},
		words:      map[string]map[string]model.WordRecord{},
		saves:      map[string]int{},
		wordWrites: map[string]int{},
	}
}

func (m *memGateway) LoadSettings(_ context.Context, ns string) ([]byte, bool, error) {
	if m.onLoad != nil {
		m.onLoad()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.settings[ns]
	return p, ok, nil
}

func (m *memGateway) SaveSettings(_ context.Context, ns string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errors.New("read-only")
	}
	m.settings[ns] = append([]byte(nil), payload...)
	m.saves[ns]++
	return nil
}

func (m *memGateway) Words(ns string) perf.Gateway {
	return &memWords{gw: m, ns: ns}
}

func (m *memGateway) InsertAttempt(_ context.Context, rec model.AttemptRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, rec)
	return nil
}

func (m *memGateway) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = map[string][]byte{}
	m.words = map[string]map[string]model.WordRecord{}
	m.attempts = nil
	m.clears++
	return nil
}

func (m *memGateway) word(ns, w string) (model.WordRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.words[ns][w]
	return rec, ok
}

type memWords struct {
	gw *memGateway
	ns string
}

func (w *memWords) IterateWords(_ context.Context, fn func(string, model.WordRecord) error) error {
	w.gw.mu.Lock()
	stored := w.gw.words[w.ns]
	keys := make([]string, 0, len(stored))
	for k := range stored {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	copied := make([]model.WordRecord, len(keys))
	for i, k := range keys {
		copied[i] = stored[k]
	}
	w.gw.mu.Unlock()
	for i, k := range keys {
		if err := fn(k, copied[i]); err != nil {
			return err
		}
	}
	return nil
}

func (w *memWords) SetIfDifferent(_ context.Context, word string, rec model.WordRecord) error {
	w.gw.mu.Lock()
	defer w.gw.mu.Unlock()
	if w.gw.failWrites {
		return errors.New("read-only")
	}
	if w.gw.words[w.ns] == nil {
		w.gw.words[w.ns] = map[string]model.WordRecord{}
	}
	if prev, ok := w.gw.words[w.ns][word]; ok && prev.Equal(rec) {
		return nil
	}
	w.gw.words[w.ns][word] = rec
	w.gw.wordWrites[w.ns+"/"+word]++
	return nil
}
