package constants

// LevelThresholds maps cumulative completion counts to levels: a strength is
// at level i when its count has reached LevelThresholds[i]. Index 0 must be 0
// (every strength starts at level 0) and the table must be strictly ascending.
var LevelThresholds = []int{0, 1, 3, 6, 10, 15, 21, 28, 36, 45, 55}

const (
	// MaxLevelGapFactor extrapolates a virtual next threshold beyond the end
	// of the table: the last gap is scaled by this factor and rounded. This
	// keeps progress percentages defined at max level.
	MaxLevelGapFactor = 1.5

	// DailyActivityCount is how many proposals the suggestion provider is
	// asked for when seeding a day.
	DailyActivityCount = 2

	// RecentTitleLimit caps how many recent completion titles are passed to
	// the provider for de-duplication.
	RecentTitleLimit = 10

	// DateFormat is the logical day key format.
	DateFormat = "2006-01-02"
)

// DefaultTopStrengths is used when the user skips the assessment entirely:
// Kindness, Honesty, Gratitude, Curiosity, Love.
var DefaultTopStrengths = []int{10, 6, 18, 4, 1}

func init() {
	// Runtime validation: the level table is assumed well-formed everywhere.
	if len(LevelThresholds) == 0 || LevelThresholds[0] != 0 {
		panic("LevelThresholds must start at 0")
	}
	for i := 1; i < len(LevelThresholds); i++ {
		if LevelThresholds[i] <= LevelThresholds[i-1] {
			panic("LevelThresholds must be strictly ascending")
		}
	}
}
