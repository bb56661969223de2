// Package migration upgrades persisted snapshots across schema versions.
// Every field added to a newer version has an enumerated default here; the
// stores never rely on decode-time zero values to paper over old data.
package migration

import (
	"fmt"

	"github.com/julianstephens/flourish/internal/models"
)

// CurrentVersion is the snapshot schema version written by this build.
//
// Version history:
//
//	1: initial layout; profiles had no partner field and no onboarded flag.
//	2: partner added (default: none); onboarded added (default: derived
//	   from a non-empty name plus a non-empty top-strength selection).
const CurrentVersion = 2

// MigrateProfile upgrades a loaded profile from the given snapshot version to
// CurrentVersion, applying the enumerated defaults for each added field.
func MigrateProfile(p models.Profile, fromVersion int) (models.Profile, error) {
	if fromVersion < 1 || fromVersion > CurrentVersion {
		return models.Profile{}, fmt.Errorf("unsupported snapshot version: %d", fromVersion)
	}

	for v := fromVersion; v < CurrentVersion; v++ {
		switch v {
		case 1:
			p = migrateProfileV1toV2(p)
		}
	}

	return ApplyProfileDefaults(p), nil
}

func migrateProfileV1toV2(p models.Profile) models.Profile {
	// Partner did not exist in v1; absent stays absent (nil).
	// Onboarded did not exist in v1; a v1 profile was considered complete
	// once a name and at least one top strength were set.
	if !p.Onboarded {
		p.Onboarded = p.Name != "" && len(p.TopStrengths) > 0
	}
	return p
}

// ApplyProfileDefaults normalizes optional collections so callers never see
// nil slices regardless of what the snapshot contained.
func ApplyProfileDefaults(p models.Profile) models.Profile {
	if p.Pets == nil {
		p.Pets = []models.FamilyMember{}
	}
	if p.Children == nil {
		p.Children = []models.FamilyMember{}
	}
	if p.TopStrengths == nil {
		p.TopStrengths = []int{}
	}
	return p
}
