package stats

import (
	"sort"

	"github.com/verte-zerg/tuimorse/internal/model"
)

// WordStat pairs a word with its record.
type WordStat struct {
	Word   string
	Record model.WordRecord
}

// WeakestWords returns the top lowest-ratio words. Slower words sort first
// among equal ratios.
func WeakestWords(records map[string]model.WordRecord, top int) []WordStat {
	out := make([]WordStat, 0, len(records))
	for w, r := range records {
		out = append(out, WordStat{Word: w, Record: r})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Record, out[j].Record
		if a.SuccessRatio != b.SuccessRatio {
			return a.SuccessRatio < b.SuccessRatio
		}
		ta, tb := elapsed(a), elapsed(b)
		if ta != tb {
			return ta > tb
		}
		return out[i].Word < out[j].Word
	})
	if top > 0 && top < len(out) {
		out = out[:top]
	}
	return out
}

func elapsed(r model.WordRecord) int64 {
	if r.ElapsedMs == nil {
		return -1
	}
	return *r.ElapsedMs
}
