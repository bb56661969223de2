package engine

import (
	"fmt"

	"github.com/julianstephens/flourish/internal/constants"
	"github.com/julianstephens/flourish/internal/models"
)

// RecordCompletion increments the ledger entry for strengthID by exactly one,
// creating the entry at count 1 if absent. The stored level is re-derived
// from the new count. Entries are never decremented or removed.
//
// This is the single aggregation rule for the whole system: every completion,
// whether daily, manual, or an accepted custom activity, must pass through
// here exactly once, in sync with its history append.
func RecordCompletion(ledger []models.StrengthProgress, strengthID int) ([]models.StrengthProgress, error) {
	if !models.ValidStrengthID(strengthID) {
		return nil, fmt.Errorf("%w: unknown strength id: %d", ErrInvalidArgument, strengthID)
	}

	out := make([]models.StrengthProgress, len(ledger))
	copy(out, ledger)

	for i := range out {
		if out[i].StrengthID == strengthID {
			out[i].Count++
			info, err := ComputeProgress(out[i].Count, constants.LevelThresholds)
			if err != nil {
				return nil, err
			}
			out[i].Level = info.Level
			return out, nil
		}
	}

	info, err := ComputeProgress(1, constants.LevelThresholds)
	if err != nil {
		return nil, err
	}
	return append(out, models.StrengthProgress{
		StrengthID: strengthID,
		Count:      1,
		Level:      info.Level,
	}), nil
}

// ProgressFor returns the ledger entry for a strength, or a zero-count entry
// if the strength has no completions yet.
func ProgressFor(ledger []models.StrengthProgress, strengthID int) models.StrengthProgress {
	for _, p := range ledger {
		if p.StrengthID == strengthID {
			return p
		}
	}
	return models.StrengthProgress{StrengthID: strengthID}
}
