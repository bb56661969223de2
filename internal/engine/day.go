package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/flourish/internal/constants"
	"github.com/julianstephens/flourish/internal/models"
	"github.com/julianstephens/flourish/internal/suggest"
)

// Engine drives the daily activity lifecycle. All state transitions are pure
// read-modify-replace over value copies; the caller persists the results.
type Engine struct {
	provider suggest.Provider
	now      func() time.Time
	newID    func() string
}

// Option overrides an Engine dependency, mainly for tests.
type Option func(*Engine)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator replaces the activity id generator.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New builds an Engine backed by the given suggestion provider.
func New(provider suggest.Provider, opts ...Option) *Engine {
	e := &Engine{
		provider: provider,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today returns the current logical day key.
func (e *Engine) Today() string {
	return e.now().Format(constants.DateFormat)
}

// StartDay seeds a fresh DailyState for the current calendar day: it requests
// the daily proposal pair from the provider, avoiding recently completed
// titles, and falls back to deterministic local content when the provider
// yields nothing. The reshuffle latch starts cleared and the resulting state
// is never empty.
func (e *Engine) StartDay(ctx context.Context, profile models.Profile, history []models.Activity) models.DailyState {
	state := models.DailyState{Date: e.Today()}

	proposals, err := e.provider.GenerateDaily(ctx, profile, RecentTitles(history, constants.RecentTitleLimit))
	if err != nil || len(proposals) == 0 {
		state.Activities = e.fallbackActivities(profile)
		return state
	}

	state.Activities = e.proposalsToActivities(proposals)
	return state
}

// Reshuffle replaces the pending activity sequence with a fresh provider
// request and sets the single-use latch. Calling it when the latch is already
// set is a no-op, not an error. Completed activities survive the reshuffle.
func (e *Engine) Reshuffle(ctx context.Context, profile models.Profile, state models.DailyState) models.DailyState {
	if state.Shuffled {
		return state
	}

	var kept []models.Activity
	var pendingTitles []string
	for _, a := range state.Activities {
		if a.Completed() {
			kept = append(kept, a)
		} else {
			pendingTitles = append(pendingTitles, a.Title)
		}
	}

	proposals, err := e.provider.GenerateDaily(ctx, profile, pendingTitles)
	var fresh []models.Activity
	if err != nil || len(proposals) == 0 {
		fresh = e.fallbackActivities(profile)
	} else {
		fresh = e.proposalsToActivities(proposals)
	}

	state.Activities = append(kept, fresh...)
	state.Shuffled = true
	return state
}

// Complete transitions a pending activity to completed, attaching the
// completion timestamp and journal note. The returned Activity is the record
// to append to history; the caller must also record the completion in the
// ledger, exactly once.
func (e *Engine) Complete(state models.DailyState, activityID, journal string) (models.DailyState, models.Activity, error) {
	activity, idx := state.Activity(activityID)
	if idx < 0 {
		return state, models.Activity{}, fmt.Errorf("%w: activity %s not in today's list", ErrNotFound, activityID)
	}
	if activity.Completed() {
		// Double completion would double-count in the ledger.
		return state, models.Activity{}, fmt.Errorf("%w: activity %s is already completed", ErrInvalidArgument, activityID)
	}

	completedAt := e.now()
	activity.CompletedAt = &completedAt
	activity.Journal = journal

	activities := make([]models.Activity, len(state.Activities))
	copy(activities, state.Activities)
	activities[idx] = activity
	state.Activities = activities

	return state, activity, nil
}

// LogManual creates a synthetic already-completed activity for something the
// user did outside the daily list. It never touches DailyState; the record
// goes straight to history and the ledger.
func (e *Engine) LogManual(strengthID int, journal string) (models.Activity, error) {
	strength, ok := models.StrengthByID(strengthID)
	if !ok {
		return models.Activity{}, fmt.Errorf("%w: unknown strength id: %d", ErrInvalidArgument, strengthID)
	}

	completedAt := e.now()
	return models.Activity{
		ID:          e.newID(),
		StrengthID:  strengthID,
		Title:       fmt.Sprintf("Practiced %s", strength.Name),
		Description: "Self-reported activity",
		Origin:      models.OriginManual,
		CompletedAt: &completedAt,
		Journal:     journal,
	}, nil
}

// AddCustom prepends an externally sourced proposal (guide or garden tip) to
// today's pending sequence. It does not interact with the reshuffle latch.
func (e *Engine) AddCustom(state models.DailyState, proposal suggest.Proposal) (models.DailyState, error) {
	if !models.ValidStrengthID(proposal.StrengthID) {
		return state, fmt.Errorf("%w: unknown strength id: %d", ErrInvalidArgument, proposal.StrengthID)
	}

	activity := models.Activity{
		ID:          e.newID(),
		StrengthID:  proposal.StrengthID,
		Title:       proposal.Title,
		Description: proposal.Description,
		Origin:      models.OriginCustom,
	}

	activities := make([]models.Activity, 0, len(state.Activities)+1)
	activities = append(activities, activity)
	activities = append(activities, state.Activities...)
	state.Activities = activities
	return state, nil
}

// RecentTitles returns the titles of the most recent history entries, oldest
// first, capped at limit.
func RecentTitles(history []models.Activity, limit int) []string {
	start := 0
	if len(history) > limit {
		start = len(history) - limit
	}
	titles := make([]string, 0, len(history)-start)
	for _, a := range history[start:] {
		titles = append(titles, a.Title)
	}
	return titles
}

// fallbackStrengths picks up to two target strengths for locally generated
// activities: the first selected top strengths, or the default pair when the
// user skipped selection.
func fallbackStrengths(profile models.Profile) []int {
	ids := profile.TopStrengths
	if len(ids) == 0 {
		ids = constants.DefaultTopStrengths
	}
	if len(ids) > constants.DailyActivityCount {
		ids = ids[:constants.DailyActivityCount]
	}
	return ids
}

var fallbackDescriptions = []string{
	"Take a moment today to reflect on how you can express %s in your daily routine.",
	"Try to look at a current challenge from a new angle using your strength of %s.",
}

func (e *Engine) fallbackActivities(profile models.Profile) []models.Activity {
	var activities []models.Activity
	for i, id := range fallbackStrengths(profile) {
		strength, ok := models.StrengthByID(id)
		if !ok {
			continue
		}
		activities = append(activities, models.Activity{
			ID:          e.newID(),
			StrengthID:  id,
			Title:       fmt.Sprintf("Practice %s", strength.Name),
			Description: fmt.Sprintf(fallbackDescriptions[i%len(fallbackDescriptions)], strength.Name),
			Origin:      models.OriginSuggested,
		})
	}
	return activities
}

func (e *Engine) proposalsToActivities(proposals []suggest.Proposal) []models.Activity {
	activities := make([]models.Activity, 0, len(proposals))
	for _, p := range proposals {
		activities = append(activities, models.Activity{
			ID:          e.newID(),
			StrengthID:  p.StrengthID,
			Title:       p.Title,
			Description: p.Description,
			Origin:      models.OriginSuggested,
		})
	}
	return activities
}
