package storage

import "github.com/julianstephens/flourish/internal/models"

// Provider persists the four top-level aggregates. Each aggregate is read
// whole on start and written whole on every change; there are no partial
// updates. Implementations are not safe for concurrent use; the application
// has exactly one mutator path per aggregate.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profile
	GetProfile() (models.Profile, error)
	SaveProfile(models.Profile) error

	// Daily state
	GetDailyState() (models.DailyState, error)
	SaveDailyState(models.DailyState) error

	// Progress ledger
	GetProgress() ([]models.StrengthProgress, error)
	SaveProgress([]models.StrengthProgress) error

	// History log (append-only)
	GetHistory() ([]models.Activity, error)
	AppendHistory(models.Activity) error

	// Utils
	GetConfigPath() string
}
