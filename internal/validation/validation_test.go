package validation

import (
	"testing"
	"time"

	"github.com/julianstephens/flourish/internal/models"
)

func hasConflict(result *Result, t ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == t {
			return true
		}
	}
	return false
}

func completedAt(t time.Time) *time.Time {
	return &t
}

func TestValidateProfile_InvalidStrengthSelection(t *testing.T) {
	validator := New()

	result := validator.ValidateProfile(models.Profile{TopStrengths: []int{10, 99}})
	if !hasConflict(result, ConflictInvalidProfile) {
		t.Error("Expected to detect invalid top strength selection")
	}

	result = validator.ValidateProfile(models.Profile{TopStrengths: []int{10, 6}})
	if result.HasConflicts() {
		t.Errorf("Valid profile reported conflicts: %+v", result.Conflicts)
	}
}

func TestValidateDailyState_BadDate(t *testing.T) {
	validator := New()

	result := validator.ValidateDailyState(models.DailyState{Date: "03/14/2026"})
	if !hasConflict(result, ConflictInvalidDate) {
		t.Error("Expected to detect malformed date")
	}
}

func TestValidateDailyState_DuplicateIDs(t *testing.T) {
	validator := New()

	state := models.DailyState{
		Date: "2026-03-14",
		Activities: []models.Activity{
			{ID: "a1", StrengthID: 1, Origin: models.OriginSuggested},
			{ID: "a1", StrengthID: 2, Origin: models.OriginSuggested}, // Duplicate
		},
	}

	result := validator.ValidateDailyState(state)
	if !hasConflict(result, ConflictDuplicateActivityID) {
		t.Error("Expected to detect duplicate activity ids")
	}
}

func TestValidateDailyState_UnknownStrengthAndOrigin(t *testing.T) {
	validator := New()

	state := models.DailyState{
		Date: "2026-03-14",
		Activities: []models.Activity{
			{ID: "a1", StrengthID: 42, Origin: models.OriginSuggested},
			{ID: "a2", StrengthID: 1, Origin: "imported"},
		},
	}

	result := validator.ValidateDailyState(state)
	if !hasConflict(result, ConflictUnknownStrength) {
		t.Error("Expected to detect unknown strength reference")
	}
	if !hasConflict(result, ConflictInvalidOrigin) {
		t.Error("Expected to detect invalid origin")
	}
}

func TestValidateHistory_PendingEntry(t *testing.T) {
	validator := New()

	history := []models.Activity{
		{ID: "h1", StrengthID: 1, Origin: models.OriginManual}, // No timestamp
	}

	result := validator.ValidateHistory(history)
	if !hasConflict(result, ConflictPendingInHistory) {
		t.Error("Expected to detect pending entry in history")
	}
}

func TestValidateLedger_LevelDrift(t *testing.T) {
	validator := New()

	done := completedAt(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	history := []models.Activity{
		{ID: "h1", StrengthID: 10, Origin: models.OriginSuggested, CompletedAt: done},
	}
	// Count 1 derives level 1; stored level 5 is drift.
	ledger := []models.StrengthProgress{{StrengthID: 10, Count: 1, Level: 5}}

	result := validator.ValidateLedger(ledger, history)
	if !hasConflict(result, ConflictLevelDrift) {
		t.Error("Expected to detect level drift")
	}
}

func TestValidateLedger_HistoryMismatch(t *testing.T) {
	validator := New()

	done := completedAt(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	history := []models.Activity{
		{ID: "h1", StrengthID: 10, Origin: models.OriginSuggested, CompletedAt: done},
		{ID: "h2", StrengthID: 10, Origin: models.OriginManual, CompletedAt: done},
		{ID: "h3", StrengthID: 4, Origin: models.OriginManual, CompletedAt: done},
	}
	ledger := []models.StrengthProgress{
		{StrengthID: 10, Count: 5, Level: 2}, // History only has 2
		// Strength 4 missing entirely
	}

	result := validator.ValidateLedger(ledger, history)

	mismatches := 0
	for _, c := range result.Conflicts {
		if c.Type == ConflictLedgerHistoryMismatch {
			mismatches++
		}
	}
	if mismatches != 2 {
		t.Errorf("Expected 2 mismatch conflicts, got %d", mismatches)
	}
}

func TestValidateLedger_CleanDataPasses(t *testing.T) {
	validator := New()

	done := completedAt(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	history := []models.Activity{
		{ID: "h1", StrengthID: 10, Origin: models.OriginSuggested, CompletedAt: done},
	}
	ledger := []models.StrengthProgress{{StrengthID: 10, Count: 1, Level: 1}}

	result := validator.ValidateLedger(ledger, history)
	if result.HasConflicts() {
		t.Errorf("Clean data reported conflicts: %+v", result.Conflicts)
	}
}

func TestValidateLedger_DuplicateAndNegative(t *testing.T) {
	validator := New()

	ledger := []models.StrengthProgress{
		{StrengthID: 10, Count: -1},
		{StrengthID: 10, Count: 0},
	}

	result := validator.ValidateLedger(ledger, nil)
	if !hasConflict(result, ConflictNegativeCount) {
		t.Error("Expected to detect negative count")
	}
	if !hasConflict(result, ConflictDuplicateLedgerEntry) {
		t.Error("Expected to detect duplicate ledger entry")
	}
}
