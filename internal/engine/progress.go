package engine

import (
	"fmt"
	"math"

	"github.com/julianstephens/flourish/internal/constants"
)

// ProgressInfo describes where a cumulative completion count sits within the
// level table.
type ProgressInfo struct {
	// Level is zero-based: the greatest index i with thresholds[i] <= count.
	Level int
	// NeededForNext is how many more completions reach the next level.
	NeededForNext int
	// PercentWithinLevel is progress through the current level, in [0,100].
	PercentWithinLevel int
}

// ComputeProgress maps a completion count onto the threshold table.
//
// Beyond the last threshold there is no canonical next level; the gap to the
// virtual next threshold is the last table gap scaled by MaxLevelGapFactor
// and rounded, which keeps NeededForNext and the percentage defined and
// deterministic at max level.
func ComputeProgress(count int, thresholds []int) (ProgressInfo, error) {
	if count < 0 {
		return ProgressInfo{}, fmt.Errorf("%w: count must be non-negative, got %d", ErrInvalidArgument, count)
	}
	if err := validateThresholds(thresholds); err != nil {
		return ProgressInfo{}, err
	}

	level := 0
	for i, t := range thresholds {
		if count >= t {
			level = i
		} else {
			break
		}
	}

	prev := thresholds[level]
	var next int
	if level+1 < len(thresholds) {
		next = thresholds[level+1]
	} else {
		lastGap := 1
		if len(thresholds) > 1 {
			lastGap = thresholds[len(thresholds)-1] - thresholds[len(thresholds)-2]
		}
		next = prev + int(math.Round(float64(lastGap)*constants.MaxLevelGapFactor))
	}

	needed := next - count
	if needed < 0 {
		needed = 0
	}

	gap := next - prev
	percent := 100
	if gap > 0 {
		percent = int(math.Round(float64(count-prev) / float64(gap) * 100))
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return ProgressInfo{
		Level:              level,
		NeededForNext:      needed,
		PercentWithinLevel: percent,
	}, nil
}

func validateThresholds(thresholds []int) error {
	if len(thresholds) == 0 {
		return fmt.Errorf("%w: thresholds must not be empty", ErrInvalidArgument)
	}
	if thresholds[0] != 0 {
		return fmt.Errorf("%w: thresholds must start at 0, got %d", ErrInvalidArgument, thresholds[0])
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return fmt.Errorf("%w: thresholds must be strictly ascending at index %d", ErrInvalidArgument, i)
		}
	}
	return nil
}
