// Package dictionary holds the practice corpus and its active pool.
package dictionary

import (
	"encoding/json"
	"fmt"
	"sort"
)

// DefaultSize bounds the active pool until the user picks a size.
const DefaultSize = 5000

// Option configures a Dictionary.
type Option func(*Dictionary)

// WithTypes sets the categories enabled by default.
func WithTypes(types ...EntryType) Option {
	return func(d *Dictionary) {
		d.defaultTypes = append([]EntryType(nil), types...)
	}
}

// WithSize sets the default active pool bound.
func WithSize(size int) Option {
	return func(d *Dictionary) {
		d.defaultSize = size
	}
}

// Dictionary filters a static corpus by category and frequency.
// It is not safe for concurrent use.
type Dictionary struct {
	entries      []Entry
	defaultTypes []EntryType
	defaultSize  int

	enabled map[EntryType]bool
	size    int

	// derived from enabled and size
	pool     []Entry
	byWord   map[string]int
	byLength map[int][]string
}

// New builds a dictionary over entries with the Word category enabled.
func New(entries []Entry, opts ...Option) *Dictionary {
	d := &Dictionary{
		entries:      append([]Entry(nil), entries...),
		defaultTypes: []EntryType{Word},
		defaultSize:  DefaultSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Reset()
	return d
}

// Reset restores the default categories and size.
func (d *Dictionary) Reset() {
	d.enabled = map[EntryType]bool{}
	for _, t := range d.defaultTypes {
		d.enabled[t] = true
	}
	d.size = d.defaultSize
	d.rebuild()
}

// AddType enables every entry of typ.
func (d *Dictionary) AddType(typ EntryType) {
	if d.enabled[typ] {
		return
	}
	d.enabled[typ] = true
	d.rebuild()
}

// RemoveType disables every entry of typ.
func (d *Dictionary) RemoveType(typ EntryType) {
	if !d.enabled[typ] {
		return
	}
	delete(d.enabled, typ)
	d.rebuild()
}

// EnabledTypes returns the enabled categories in display order.
func (d *Dictionary) EnabledTypes() []EntryType {
	types := make([]EntryType, 0, len(d.enabled))
	for _, t := range AllTypes() {
		if d.enabled[t] {
			types = append(types, t)
		}
	}
	return types
}

// SetActiveSize bounds the pool to the n most frequent words.
func (d *Dictionary) SetActiveSize(n int) {
	d.size = n
	d.rebuild()
}

// ActiveSize returns the effective pool bound after clamping.
func (d *Dictionary) ActiveSize() int {
	return len(d.pool)
}

// WordFrequency maps every active word to its rank.
func (d *Dictionary) WordFrequency() map[string]int {
	out := make(map[string]int, len(d.byWord))
	for w, r := range d.byWord {
		out[w] = r
	}
	return out
}

// Candidates returns the active words of the given length, sorted.
func (d *Dictionary) Candidates(length int) []string {
	return append([]string(nil), d.byLength[length]...)
}

// Lengths returns every word length present in the active pool, ascending.
func (d *Dictionary) Lengths() []int {
	lengths := make([]int, 0, len(d.byLength))
	for l := range d.byLength {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	return lengths
}

func (d *Dictionary) rebuild() {
	best := map[string]Entry{}
	for _, e := range d.entries {
		if !d.enabled[e.Type] {
			continue
		}
		prev, ok := best[e.Word]
		if !ok || less(e, prev) {
			best[e.Word] = e
		}
	}
	pool := make([]Entry, 0, len(best))
	for _, e := range best {
		pool = append(pool, e)
	}
	sort.Slice(pool, func(i, j int) bool { return less(pool[i], pool[j]) })

	limit := d.size
	if limit > len(pool) {
		limit = len(pool)
	}
	if limit < 1 && len(pool) > 0 {
		limit = 1
	}
	d.pool = pool[:limit]

	d.byWord = make(map[string]int, len(d.pool))
	d.byLength = map[int][]string{}
	for _, e := range d.pool {
		d.byWord[e.Word] = e.Rank
		l := len([]rune(e.Word))
		d.byLength[l] = append(d.byLength[l], e.Word)
	}
	for _, words := range d.byLength {
		sort.Strings(words)
	}
}

func less(a, b Entry) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	return a.Word < b.Word
}

// Settings is the persisted form of the user's dictionary choices.
type Settings struct {
	Types []string `json:"types"`
	Size  int      `json:"size"`
}

// Settings returns the current choices. Size is the requested bound.
func (d *Dictionary) Settings() Settings {
	types := d.EnabledTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return Settings{Types: names, Size: d.size}
}

// MarshalSettings encodes Settings as JSON.
func (d *Dictionary) MarshalSettings() ([]byte, error) {
	return json.Marshal(d.Settings())
}

// ApplySettings replaces the enabled categories and size. Unknown category
// names fail the whole update.
func (d *Dictionary) ApplySettings(s Settings) error {
	enabled := map[EntryType]bool{}
	for _, name := range s.Types {
		t, err := ParseType(name)
		if err != nil {
			return fmt.Errorf("failed to apply dictionary settings: %w", err)
		}
		enabled[t] = true
	}
	d.enabled = enabled
	if s.Size > 0 {
		d.size = s.Size
	}
	d.rebuild()
	return nil
}
