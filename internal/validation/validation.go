// Package validation checks stored aggregates for internal consistency. It is
// used by the doctor command and never mutates anything; every finding is
// reported as a conflict the user can act on.
package validation

import (
	"fmt"
	"time"

	"github.com/julianstephens/flourish/internal/constants"
	"github.com/julianstephens/flourish/internal/engine"
	"github.com/julianstephens/flourish/internal/models"
)

type ConflictType string

const (
	ConflictInvalidProfile        ConflictType = "invalid_profile"
	ConflictInvalidDate           ConflictType = "invalid_date"
	ConflictDuplicateActivityID   ConflictType = "duplicate_activity_id"
	ConflictUnknownStrength       ConflictType = "unknown_strength"
	ConflictInvalidOrigin         ConflictType = "invalid_origin"
	ConflictPendingInHistory      ConflictType = "pending_in_history"
	ConflictNegativeCount         ConflictType = "negative_count"
	ConflictDuplicateLedgerEntry  ConflictType = "duplicate_ledger_entry"
	ConflictLevelDrift            ConflictType = "level_drift"
	ConflictLedgerHistoryMismatch ConflictType = "ledger_history_mismatch"
)

type Conflict struct {
	Type    ConflictType
	Message string
	Items   []string
}

type Result struct {
	Conflicts []Conflict
}

func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

func (r *Result) add(t ConflictType, items []string, format string, args ...any) {
	r.Conflicts = append(r.Conflicts, Conflict{
		Type:    t,
		Message: fmt.Sprintf(format, args...),
		Items:   items,
	})
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateProfile reports structural problems with the stored profile.
func (v *Validator) ValidateProfile(profile models.Profile) *Result {
	result := &Result{}

	if err := profile.Validate(); err != nil {
		result.add(ConflictInvalidProfile, nil, "%v", err)
	}

	return result
}

// ValidateDailyState checks the day's activity list for referential problems.
func (v *Validator) ValidateDailyState(state models.DailyState) *Result {
	result := &Result{}

	if state.Date != "" {
		if _, err := time.Parse(constants.DateFormat, state.Date); err != nil {
			result.add(ConflictInvalidDate, []string{state.Date}, "daily state date %q is not YYYY-MM-DD", state.Date)
		}
	}

	seen := map[string]bool{}
	for _, a := range state.Activities {
		if seen[a.ID] {
			result.add(ConflictDuplicateActivityID, []string{a.ID}, "activity id %q appears more than once", a.ID)
		}
		seen[a.ID] = true

		result.checkActivity(a)
	}

	return result
}

// ValidateHistory checks that the completion log only holds finished entries.
func (v *Validator) ValidateHistory(history []models.Activity) *Result {
	result := &Result{}

	for _, a := range history {
		if !a.Completed() {
			result.add(ConflictPendingInHistory, []string{a.ID}, "history entry %q has no completion timestamp", a.ID)
		}
		result.checkActivity(a)
	}

	return result
}

func (r *Result) checkActivity(a models.Activity) {
	if !models.ValidStrengthID(a.StrengthID) {
		r.add(ConflictUnknownStrength, []string{a.ID}, "activity %q references unknown strength %d", a.ID, a.StrengthID)
	}
	switch a.Origin {
	case models.OriginSuggested, models.OriginCustom, models.OriginManual:
	default:
		r.add(ConflictInvalidOrigin, []string{a.ID}, "activity %q has invalid origin %q", a.ID, a.Origin)
	}
}

// ValidateLedger cross-checks the progress ledger against the history log.
// Counts are the source of truth for levels, and history is the source of
// truth for counts.
func (v *Validator) ValidateLedger(ledger []models.StrengthProgress, history []models.Activity) *Result {
	result := &Result{}

	historyCounts := map[int]int{}
	for _, a := range history {
		if a.Completed() {
			historyCounts[a.StrengthID]++
		}
	}

	seen := map[int]bool{}
	for _, p := range ledger {
		if !models.ValidStrengthID(p.StrengthID) {
			result.add(ConflictUnknownStrength, nil, "ledger entry references unknown strength %d", p.StrengthID)
			continue
		}
		if seen[p.StrengthID] {
			result.add(ConflictDuplicateLedgerEntry, nil, "strength %d has more than one ledger entry", p.StrengthID)
		}
		seen[p.StrengthID] = true

		if p.Count < 0 {
			result.add(ConflictNegativeCount, nil, "strength %d has negative count %d", p.StrengthID, p.Count)
			continue
		}

		info, err := engine.ComputeProgress(p.Count, constants.LevelThresholds)
		if err == nil && info.Level != p.Level {
			result.add(ConflictLevelDrift, nil,
				"strength %d stores level %d but count %d derives level %d", p.StrengthID, p.Level, p.Count, info.Level)
		}

		if got := historyCounts[p.StrengthID]; got != p.Count {
			result.add(ConflictLedgerHistoryMismatch, nil,
				"strength %d ledger count %d does not match %d history completions", p.StrengthID, p.Count, got)
		}
		delete(historyCounts, p.StrengthID)
	}

	// Completions recorded in history with no ledger entry at all.
	for id, count := range historyCounts {
		if count > 0 {
			result.add(ConflictLedgerHistoryMismatch, nil,
				"strength %d has %d history completions but no ledger entry", id, count)
		}
	}

	return result
}
