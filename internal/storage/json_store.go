package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/flourish/internal/constants"
	"github.com/julianstephens/flourish/internal/engine"
	"github.com/julianstephens/flourish/internal/migration"
	"github.com/julianstephens/flourish/internal/models"
)

type Store struct {
	Version  int                       `json:"version"`
	Profile  models.Profile            `json:"profile"`
	Daily    models.DailyState         `json:"daily"`
	Progress []models.StrengthProgress `json:"progress"`
	History  []models.Activity         `json:"history"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:  migration.CurrentVersion,
		Profile:  migration.ApplyProfileDefaults(models.Profile{}),
		Progress: []models.StrengthProgress{},
		History:  []models.Activity{},
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'flourish init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Version < migration.CurrentVersion {
		profile, err := migration.MigrateProfile(s.store.Profile, s.store.Version)
		if err != nil {
			return fmt.Errorf("failed to migrate storage: %w", err)
		}
		s.store.Profile = profile
		s.store.Version = migration.CurrentVersion
		if err := s.save(); err != nil {
			return err
		}
	}

	// Ensure slices are initialized
	if s.store.Progress == nil {
		s.store.Progress = []models.StrengthProgress{}
	}
	if s.store.History == nil {
		s.store.History = []models.Activity{}
	}

	// Persisted levels are only snapshots; the count is the source of truth.
	for i, p := range s.store.Progress {
		info, err := engine.ComputeProgress(p.Count, constants.LevelThresholds)
		if err != nil {
			return fmt.Errorf("failed to derive level for strength %d: %w", p.StrengthID, err)
		}
		s.store.Progress[i].Level = info.Level
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetProfile() (models.Profile, error) {
	if s.store == nil {
		return models.Profile{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Profile, nil
}

func (s *JSONStore) SaveProfile(profile models.Profile) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Profile = profile
	return s.save()
}

func (s *JSONStore) GetDailyState() (models.DailyState, error) {
	if s.store == nil {
		return models.DailyState{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Daily, nil
}

func (s *JSONStore) SaveDailyState(state models.DailyState) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Daily = state
	return s.save()
}

func (s *JSONStore) GetProgress() ([]models.StrengthProgress, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	progress := make([]models.StrengthProgress, len(s.store.Progress))
	copy(progress, s.store.Progress)
	return progress, nil
}

func (s *JSONStore) SaveProgress(progress []models.StrengthProgress) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Progress = make([]models.StrengthProgress, len(progress))
	copy(s.store.Progress, progress)
	return s.save()
}

func (s *JSONStore) GetHistory() ([]models.Activity, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	history := make([]models.Activity, len(s.store.History))
	copy(history, s.store.History)
	return history, nil
}

func (s *JSONStore) AppendHistory(entry models.Activity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if !entry.Completed() {
		return fmt.Errorf("history entry %s is not completed", entry.ID)
	}

	s.store.History = append(s.store.History, entry)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
