package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/flourish/internal/engine"
	"github.com/julianstephens/flourish/internal/models"
	"github.com/julianstephens/flourish/internal/storage"
	"github.com/julianstephens/flourish/internal/suggest"
)

type fixedProvider struct {
	proposals []suggest.Proposal
}

func (f *fixedProvider) GenerateDaily(context.Context, models.Profile, []string) ([]suggest.Proposal, error) {
	return f.proposals, nil
}

func (f *fixedProvider) GenerateForStrength(_ context.Context, id int, _ models.Profile) (suggest.Proposal, error) {
	return suggest.Proposal{StrengthID: id, Title: "t", Description: "d"}, nil
}

func (f *fixedProvider) SuggestForMood(context.Context, string, models.Profile) ([]suggest.Proposal, error) {
	return f.proposals, nil
}

func (f *fixedProvider) ClassifyAction(context.Context, string) (suggest.Classification, error) {
	return suggest.Classification{StrengthID: 10, Reasoning: "kindness"}, nil
}

func newTestContext(t *testing.T) *Context {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "flourish.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	provider := &fixedProvider{proposals: []suggest.Proposal{
		{StrengthID: 10, Title: "Bring someone coffee", Description: "d"},
		{StrengthID: 4, Title: "Take a new route", Description: "d"},
	}}

	return &Context{
		Store: store,
		Engine: engine.New(provider, engine.WithClock(func() time.Time {
			return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
		})),
		Suggester: provider,
	}
}

// Exercises the full daily loop against a real store: day rollover, complete,
// ledger and history updates, and the reshuffle latch.
func TestDailyWorkflow(t *testing.T) {
	ctx := newTestContext(t)

	// A fresh store has no daily state; ensureToday must seed one.
	state, _, err := ensureToday(ctx)
	if err != nil {
		t.Fatalf("ensureToday failed: %v", err)
	}
	if state.Date != "2026-03-14" {
		t.Errorf("Date = %q, want 2026-03-14", state.Date)
	}
	if len(state.Activities) != 2 {
		t.Fatalf("expected 2 seeded activities, got %d", len(state.Activities))
	}

	// The seeded state must be persisted.
	stored, err := ctx.Store.GetDailyState()
	if err != nil {
		t.Fatalf("GetDailyState failed: %v", err)
	}
	if stored.Date != state.Date || len(stored.Activities) != 2 {
		t.Errorf("seeded state not persisted: %+v", stored)
	}

	// A second call on the same day must not reseed.
	again, _, err := ensureToday(ctx)
	if err != nil {
		t.Fatalf("ensureToday failed: %v", err)
	}
	if again.Activities[0].ID != state.Activities[0].ID {
		t.Errorf("same-day ensureToday reseeded the state")
	}

	// Complete the first activity and record it.
	state, entry, err := ctx.Engine.Complete(state, state.Activities[0].ID, "felt good")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if err := ctx.Store.SaveDailyState(state); err != nil {
		t.Fatalf("SaveDailyState failed: %v", err)
	}
	if err := recordCompletion(ctx, entry); err != nil {
		t.Fatalf("recordCompletion failed: %v", err)
	}

	history, err := ctx.Store.GetHistory()
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 1 || history[0].Journal != "felt good" {
		t.Errorf("history = %+v, want the completed entry with its journal", history)
	}

	ledger, err := ctx.Store.GetProgress()
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if got := engine.ProgressFor(ledger, entry.StrengthID); got.Count != 1 {
		t.Errorf("ledger count = %d, want 1", got.Count)
	}
}

func TestManualLogWorkflow(t *testing.T) {
	ctx := newTestContext(t)

	strength, err := resolveStrength("Forgiveness")
	if err != nil {
		t.Fatalf("resolveStrength failed: %v", err)
	}

	entry, err := ctx.Engine.LogManual(strength.ID, "let it go")
	if err != nil {
		t.Fatalf("LogManual failed: %v", err)
	}
	if err := recordCompletion(ctx, entry); err != nil {
		t.Fatalf("recordCompletion failed: %v", err)
	}

	ledger, err := ctx.Store.GetProgress()
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if got := engine.ProgressFor(ledger, strength.ID); got.Count != 1 || got.Level != 1 {
		t.Errorf("progress = %+v, want count 1 level 1", got)
	}

	// Daily state must be untouched by a manual log.
	state, err := ctx.Store.GetDailyState()
	if err != nil {
		t.Fatalf("GetDailyState failed: %v", err)
	}
	if state.Date != "" {
		t.Errorf("manual log must not create a daily state, got %+v", state)
	}
}

type unavailableProvider struct{}

func (unavailableProvider) GenerateDaily(context.Context, models.Profile, []string) ([]suggest.Proposal, error) {
	return nil, fmt.Errorf("%w: connection refused", suggest.ErrUnavailable)
}

func (unavailableProvider) GenerateForStrength(context.Context, int, models.Profile) (suggest.Proposal, error) {
	return suggest.Proposal{}, fmt.Errorf("%w: connection refused", suggest.ErrUnavailable)
}

func (unavailableProvider) SuggestForMood(context.Context, string, models.Profile) ([]suggest.Proposal, error) {
	return nil, fmt.Errorf("%w: connection refused", suggest.ErrUnavailable)
}

func (unavailableProvider) ClassifyAction(context.Context, string) (suggest.Classification, error) {
	return suggest.Classification{}, fmt.Errorf("%w: connection refused", suggest.ErrUnavailable)
}

// An unreachable provider degrades to the no-suggestions message; it never
// fails the command.
func TestGuideSurvivesUnavailableProvider(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Suggester = unavailableProvider{}

	cmd := &GuideCmd{Mood: "stressed"}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("Run failed on an unavailable provider: %v", err)
	}
}

func TestClassifySurvivesUnavailableProvider(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Suggester = unavailableProvider{}

	cmd := &ClassifyCmd{Text: "helped a neighbor carry groceries", Log: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("Run failed on an unavailable provider: %v", err)
	}

	// Nothing was classified, so nothing may be logged.
	history, err := ctx.Store.GetHistory()
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history = %+v, want empty after a failed classification", history)
	}
}

func TestResolveStrength(t *testing.T) {
	tests := []struct {
		arg     string
		wantID  int
		wantErr bool
	}{
		{"10", 10, false},
		{"kindness", 10, false},
		{"Kindness", 10, false},
		{"99", 0, true},
		{"no-such-strength", 0, true},
	}

	for _, tt := range tests {
		got, err := resolveStrength(tt.arg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("resolveStrength(%q): expected error", tt.arg)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveStrength(%q) failed: %v", tt.arg, err)
			continue
		}
		if got.ID != tt.wantID {
			t.Errorf("resolveStrength(%q).ID = %d, want %d", tt.arg, got.ID, tt.wantID)
		}
	}
}
