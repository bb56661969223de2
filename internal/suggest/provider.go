// Package suggest talks to the remote generative-language API that proposes
// practice activities. The rest of the application treats it as an opaque
// collaborator: it returns zero or more proposals or fails, and callers are
// expected to fall back to deterministic local content.
package suggest

import (
	"context"
	"errors"

	"github.com/julianstephens/flourish/internal/models"
)

// ErrUnavailable indicates the remote provider could not be reached or did
// not return usable content. Callers recover locally and never surface this
// as a hard failure on the daily path.
var ErrUnavailable = errors.New("suggestion provider unavailable")

// Proposal is a candidate activity returned by the provider.
type Proposal struct {
	StrengthID  int    `json:"strengthId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Classification maps a free-text action to the strength it demonstrates.
type Classification struct {
	StrengthID int    `json:"strengthId"`
	Reasoning  string `json:"reasoning"`
}

// Provider supplies activity proposals. Implementations must be safe to call
// from a single goroutine at a time; calls may block on network I/O and honor
// the passed context.
type Provider interface {
	// GenerateDaily proposes activities for today, avoiding the given recent
	// titles. Expected length is constants.DailyActivityCount; an empty slice
	// with a nil error is a valid "nothing to offer" response.
	GenerateDaily(ctx context.Context, profile models.Profile, recentTitles []string) ([]Proposal, error)

	// GenerateForStrength proposes one activity targeting a specific strength.
	GenerateForStrength(ctx context.Context, strengthID int, profile models.Profile) (Proposal, error)

	// SuggestForMood proposes activities to help with the described mood.
	SuggestForMood(ctx context.Context, mood string, profile models.Profile) ([]Proposal, error)

	// ClassifyAction identifies which strength a described action demonstrates.
	ClassifyAction(ctx context.Context, text string) (Classification, error)
}
