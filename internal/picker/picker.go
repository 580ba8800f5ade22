// Package picker chooses practice items from the active pool.
package picker

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	// ErrEmptyCandidatePool is returned when no active word has the requested length.
	ErrEmptyCandidatePool = errors.New("no candidates for length")
	// ErrInsufficientCandidates is returned when the only candidate is the previous word.
	ErrInsufficientCandidates = errors.New("only candidate equals previous word")
)

// CandidateSource lists active words by length.
type CandidateSource interface {
	Candidates(length int) []string
}

// Picker draws words uniformly, never repeating the previous pick.
type Picker struct {
	source CandidateSource
	rnd    *rand.Rand
}

// New returns a Picker over source. A nil rnd is seeded with the current time.
func New(source CandidateSource, rnd *rand.Rand) *Picker {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Picker{source: source, rnd: rnd}
}

// SetSource swaps the candidate source.
func (p *Picker) SetSource(source CandidateSource) {
	p.source = source
}

// PickWord returns a random candidate of length that differs from previous.
func (p *Picker) PickWord(length int, previous string) (string, error) {
	words := p.source.Candidates(length)
	switch {
	case len(words) == 0:
		return "", fmt.Errorf("length %d: %w", length, ErrEmptyCandidatePool)
	case len(words) == 1 && words[0] == previous:
		return "", fmt.Errorf("length %d: %w", length, ErrInsufficientCandidates)
	}
	for {
		w := words[p.rnd.Intn(len(words))]
		if w != previous {
			return w, nil
		}
	}
}

// PickLength returns a random length in [minLength, maxLength] for which
// PickWord can succeed given previous.
func (p *Picker) PickLength(minLength, maxLength int, previous string) (int, error) {
	var eligible []int
	for l := minLength; l <= maxLength; l++ {
		words := p.source.Candidates(l)
		if len(words) == 0 {
			continue
		}
		if len(words) == 1 && words[0] == previous {
			continue
		}
		eligible = append(eligible, l)
	}
	if len(eligible) == 0 {
		return 0, fmt.Errorf("lengths %d-%d: %w", minLength, maxLength, ErrEmptyCandidatePool)
	}
	return eligible[p.rnd.Intn(len(eligible))], nil
}
