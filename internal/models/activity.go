package models

import "time"

// ActivityOrigin records how an activity entered the system.
type ActivityOrigin string

const (
	// OriginSuggested marks activities proposed by the suggestion provider
	// as part of the daily pair.
	OriginSuggested ActivityOrigin = "suggested"
	// OriginCustom marks activities the user accepted from the guide or the
	// garden into today's list.
	OriginCustom ActivityOrigin = "custom"
	// OriginManual marks retroactive self-reported completions that never
	// pass through the pending state.
	OriginManual ActivityOrigin = "manual"
)

// Activity is one unit of practice tied to a single strength. It is created
// pending and mutated exactly once, on completion, to attach the timestamp
// and journal note. Completed activities are retained in history forever.
type Activity struct {
	ID          string         `json:"id"`
	StrengthID  int            `json:"strength_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Origin      ActivityOrigin `json:"origin"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Journal     string         `json:"journal,omitempty"`
}

// Completed reports whether the activity has been completed.
func (a Activity) Completed() bool {
	return a.CompletedAt != nil
}

// DailyState is the set of activities offered for one calendar day plus the
// single-use reshuffle latch. A date change invalidates the whole state.
type DailyState struct {
	Date       string     `json:"date"` // YYYY-MM-DD format
	Activities []Activity `json:"activities"`
	Shuffled   bool       `json:"shuffled"`
}

// Activity returns the activity with the given id and its index, or -1.
func (d DailyState) Activity(id string) (Activity, int) {
	for i, a := range d.Activities {
		if a.ID == id {
			return a, i
		}
	}
	return Activity{}, -1
}

// StrengthProgress is one ledger entry: the cumulative completion count for a
// strength. The level is always derived from Count via the threshold table;
// it is persisted only as a convenience snapshot and re-derived on load.
type StrengthProgress struct {
	StrengthID int `json:"strength_id"`
	Count      int `json:"count"`
	Level      int `json:"level"`
}
