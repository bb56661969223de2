package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/flourish/internal/engine"
	"github.com/julianstephens/flourish/internal/models"
	"github.com/julianstephens/flourish/internal/suggest"
)

var errCorrupt = errors.New("storage corrupt")

type brokenStore struct{}

func (brokenStore) Init() error           { return nil }
func (brokenStore) Load() error           { return nil }
func (brokenStore) Close() error          { return nil }
func (brokenStore) GetConfigPath() string { return "" }

func (brokenStore) GetProfile() (models.Profile, error) { return models.Profile{}, errCorrupt }
func (brokenStore) SaveProfile(models.Profile) error    { return errCorrupt }

func (brokenStore) GetDailyState() (models.DailyState, error) {
	return models.DailyState{}, errCorrupt
}
func (brokenStore) SaveDailyState(models.DailyState) error { return errCorrupt }

func (brokenStore) GetProgress() ([]models.StrengthProgress, error) { return nil, errCorrupt }
func (brokenStore) SaveProgress([]models.StrengthProgress) error    { return errCorrupt }

func (brokenStore) GetHistory() ([]models.Activity, error) { return nil, errCorrupt }
func (brokenStore) AppendHistory(models.Activity) error    { return errCorrupt }

type offlineProvider struct{}

func (offlineProvider) GenerateDaily(context.Context, models.Profile, []string) ([]suggest.Proposal, error) {
	return nil, suggest.ErrUnavailable
}

func (offlineProvider) GenerateForStrength(context.Context, int, models.Profile) (suggest.Proposal, error) {
	return suggest.Proposal{}, suggest.ErrUnavailable
}

func (offlineProvider) SuggestForMood(context.Context, string, models.Profile) ([]suggest.Proposal, error) {
	return nil, suggest.ErrUnavailable
}

func (offlineProvider) ClassifyAction(context.Context, string) (suggest.Classification, error) {
	return suggest.Classification{}, suggest.ErrUnavailable
}

// A store that fails on load must show up in the error line, not as empty
// tabs.
func TestNewModelSurfacesLoadErrors(t *testing.T) {
	m := NewModel(brokenStore{}, engine.New(offlineProvider{}), offlineProvider{})

	if m.errText == "" {
		t.Fatalf("load errors were discarded")
	}
	if !strings.Contains(m.errText, errCorrupt.Error()) {
		t.Errorf("errText = %q, want it to carry %q", m.errText, errCorrupt.Error())
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Errorf("View does not render the error line")
	}
}
