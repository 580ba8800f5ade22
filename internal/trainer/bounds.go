// Package trainer implements the adaptive difficulty controller and the
// practice session that drives it.
package trainer

import (
	"strings"
)

// Policy controls how raw bound values are sanitized.
type Policy struct {
	// Floor replaces values that do not parse as an integer.
	Floor int
	// ClampToFloor also lifts parsed values below Floor.
	ClampToFloor bool
}

// Bounds is the [Min, Max] practice item length window. Min <= Max always holds.
type Bounds struct {
	policy Policy
	min    int
	max    int
}

// NewBounds returns bounds starting at [minLength, maxLength].
func NewBounds(policy Policy, minLength, maxLength int) Bounds {
	b := Bounds{policy: policy, min: minLength, max: maxLength}
	b.setMax(maxLength)
	b.setMin(minLength)
	return b
}

// Min returns the lower bound.
func (b *Bounds) Min() int { return b.min }

// Max returns the upper bound.
func (b *Bounds) Max() int { return b.max }

// SetMin parses raw and sets the lower bound, raising Max when crossed.
func (b *Bounds) SetMin(raw string) {
	b.setMin(b.parse(raw))
}

// SetMax parses raw and sets the upper bound, lowering Min when crossed.
func (b *Bounds) SetMax(raw string) {
	b.setMax(b.parse(raw))
}

func (b *Bounds) setMin(n int) {
	n = b.sanitize(n)
	b.min = n
	if b.min > b.max {
		b.max = b.min
	}
}

func (b *Bounds) setMax(n int) {
	n = b.sanitize(n)
	b.max = n
	if b.max < b.min {
		b.min = b.max
	}
}

func (b *Bounds) sanitize(n int) int {
	if b.policy.ClampToFloor && n < b.policy.Floor {
		return b.policy.Floor
	}
	return n
}

func (b *Bounds) parse(raw string) int {
	n, ok := parseLeadingInt(raw)
	if !ok {
		return b.policy.Floor
	}
	return n
}

// parseLeadingInt reads an optionally signed base-10 integer prefix,
// ignoring leading whitespace and any trailing text.
func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\r\n")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if n > (1<<31)/10 {
			break
		}
		n = n*10 + int(s[digits]-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
