package models

import "fmt"

// MaxTopStrengths caps the signature-strength selection.
const MaxTopStrengths = 10

// FamilyMember is a named person or pet referenced in suggestion prompts.
type FamilyMember struct {
	Name     string `json:"name"`
	Pronouns string `json:"pronouns"`
}

// Profile holds the user's identity and configuration. It is one of the four
// top-level aggregates and is persisted whole on every change.
type Profile struct {
	Name         string         `json:"name"`
	Pronouns     string         `json:"pronouns"`
	Occupation   string         `json:"occupation"`
	Partner      *FamilyMember  `json:"partner,omitempty"`
	Pets         []FamilyMember `json:"pets"`
	Children     []FamilyMember `json:"children"`
	TopStrengths []int          `json:"top_strengths"`
	Onboarded    bool           `json:"onboarded"`
}

// Validate checks the top-strength selection bounds and id validity.
func (p Profile) Validate() error {
	if len(p.TopStrengths) > MaxTopStrengths {
		return fmt.Errorf("at most %d top strengths may be selected, got %d", MaxTopStrengths, len(p.TopStrengths))
	}
	seen := make(map[int]bool, len(p.TopStrengths))
	for _, id := range p.TopStrengths {
		if !ValidStrengthID(id) {
			return fmt.Errorf("unknown strength id in top strengths: %d", id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate strength id in top strengths: %d", id)
		}
		seen[id] = true
	}
	return nil
}
