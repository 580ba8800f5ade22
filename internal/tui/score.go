package tui

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// scoreRead grades a decoded answer by character: total is the length of
// target and success drops by one per edit needed to reach it.
func scoreRead(target, typed string) (success, total int) {
	target = normalize(target)
	typed = normalize(typed)
	total = len([]rune(target))
	success = total - levenshtein.ComputeDistance(target, typed)
	if success < 0 {
		success = 0
	}
	return success, total
}

// scoreCopy grades an answer as a single right-or-wrong outcome.
func scoreCopy(target, typed string) (success, total int) {
	if normalize(target) == normalize(typed) {
		return 1, 1
	}
	return 0, 1
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
