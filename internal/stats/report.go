package stats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/verte-zerg/tuimorse/internal/model"
	"github.com/verte-zerg/tuimorse/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Namespace string
	HasBounds bool
	MinLength int
	MaxLength int
	Lengths   []model.LengthAggregate
	Recent    []model.AttemptRecord
	Words     map[string]model.WordRecord
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	report := Report{Namespace: cfg.Namespace, Words: map[string]model.WordRecord{}}

	payload, ok, err := st.LoadSettings(ctx, cfg.Namespace)
	if err != nil {
		return Report{}, err
	}
	if ok {
		var bounds struct {
			MinLength int `json:"minLength"`
			MaxLength int `json:"maxLength"`
		}
		if err := json.Unmarshal(payload, &bounds); err != nil {
			return Report{}, fmt.Errorf("failed to decode %s settings: %w", cfg.Namespace, err)
		}
		report.HasBounds = true
		report.MinLength = bounds.MinLength
		report.MaxLength = bounds.MaxLength
	}

	report.Lengths, err = st.LengthAggregates(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	report.Recent, err = st.ListAttempts(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	err = st.Words(cfg.Namespace).IterateWords(ctx, func(word string, rec model.WordRecord) error {
		report.Words[word] = rec
		return nil
	})
	if err != nil {
		return Report{}, err
	}
	return report, nil
}
