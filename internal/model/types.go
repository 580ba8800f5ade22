// Package model defines shared data structures.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Mode names a training mode.
type Mode string

// Training modes.
const (
	ModeRead Mode = "read"
	ModeCopy Mode = "copy"
)

// Config defines practice settings.
type Config struct {
	Mode           Mode
	Types          []string
	DictionarySize int
	WordListPath   string
	Debounce       time.Duration
	Seed           int64
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Namespace string
	Since     *time.Time
	Last      int
	Top       int
}

// WordRecord is the stored performance of a single practiced word.
type WordRecord struct {
	SuccessRatio float64
	ElapsedMs    *int64
}

// Millis returns a pointer to ms, for optional timing fields.
func Millis(ms int64) *int64 {
	return &ms
}

// Equal reports whether two records hold the same values.
func (r WordRecord) Equal(o WordRecord) bool {
	if r.SuccessRatio != o.SuccessRatio {
		return false
	}
	if r.ElapsedMs == nil || o.ElapsedMs == nil {
		return r.ElapsedMs == nil && o.ElapsedMs == nil
	}
	return *r.ElapsedMs == *o.ElapsedMs
}

type wordRecordJSON struct {
	S float64 `json:"s"`
	T *int64  `json:"t,omitempty"`
}

// MarshalJSON writes a bare score when no timing is known, {s, t} otherwise.
func (r WordRecord) MarshalJSON() ([]byte, error) {
	if r.ElapsedMs == nil {
		return json.Marshal(r.SuccessRatio)
	}
	return json.Marshal(wordRecordJSON{S: r.SuccessRatio, T: r.ElapsedMs})
}

// UnmarshalJSON accepts both the bare score and the {s, t} object.
func (r *WordRecord) UnmarshalJSON(data []byte) error {
	var score float64
	if err := json.Unmarshal(data, &score); err == nil {
		*r = WordRecord{SuccessRatio: score}
		return nil
	}
	var obj wordRecordJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid word record %s: %w", string(data), err)
	}
	*r = WordRecord{SuccessRatio: obj.S, ElapsedMs: obj.T}
	return nil
}

// Attempt is the outcome of presenting one practice item.
type Attempt struct {
	Text      string
	Success   int
	Total     int
	ElapsedMs *int64
}

// Ratio returns Success/Total, or 0 when Total is not positive.
func (a Attempt) Ratio() float64 {
	if a.Total <= 0 {
		return 0
	}
	return float64(a.Success) / float64(a.Total)
}

// AttemptRecord is a logged attempt as read back from storage.
type AttemptRecord struct {
	SessionID string
	Namespace string
	Text      string
	Length    int
	Success   int
	Total     int
	ElapsedMs *int64
	At        time.Time
}

// LengthAggregate summarizes attempts of one item length.
type LengthAggregate struct {
	Length   int
	Attempts int
	Success  int
	Total    int
}

// StorageError reports a failed persistence operation. In-memory state is kept.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
