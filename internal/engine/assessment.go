package engine

import (
	"fmt"
	"sort"

	"github.com/julianstephens/flourish/internal/models"
)

// Question is one item of the self-assessment, answered on a 1-5 Likert
// scale and tagged to the strength it probes.
type Question struct {
	ID         int
	Text       string
	StrengthID int
}

// Questions is the fixed assessment bank. Some strengths carry two or three
// items and are therefore structurally favored in the summed scores; this
// mirrors the published questionnaire and is intentionally not corrected.
var Questions = []Question{
	{ID: 1, Text: "I deeply value my close relationships with others.", StrengthID: 1},
	{ID: 2, Text: "People often turn to me for advice.", StrengthID: 2},
	{ID: 3, Text: "I am a disciplined person.", StrengthID: 3},
	{ID: 4, Text: "I am always curious about the world.", StrengthID: 4},
	{ID: 5, Text: "I often stop to admire things that are beautiful.", StrengthID: 5},
	{ID: 6, Text: "I always speak the truth, even when it is hard.", StrengthID: 6},
	{ID: 7, Text: "I believe there is a higher purpose to life.", StrengthID: 7},
	{ID: 8, Text: "I know how to fit in to different social situations.", StrengthID: 8},
	{ID: 9, Text: "I think carefully before I make decisions.", StrengthID: 9},
	{ID: 10, Text: "I enjoy doing favors for others.", StrengthID: 10},
	{ID: 11, Text: "I am always learning something new.", StrengthID: 11},
	{ID: 12, Text: "I treat everyone equally and fairly.", StrengthID: 12},
	{ID: 13, Text: "I forgive others easily.", StrengthID: 13},
	{ID: 14, Text: "I am humble about my achievements.", StrengthID: 14},
	{ID: 15, Text: "I come up with new and creative ideas.", StrengthID: 15},
	{ID: 16, Text: "I work well in a team.", StrengthID: 16},
	{ID: 17, Text: "I love to make people laugh.", StrengthID: 17},
	{ID: 18, Text: "I am thankful for what I have.", StrengthID: 18},
	{ID: 19, Text: "I am optimistic about the future.", StrengthID: 19},
	{ID: 20, Text: "I have lots of energy and enthusiasm.", StrengthID: 20},
	{ID: 21, Text: "I finish what I start.", StrengthID: 21},
	{ID: 22, Text: "I weigh all the evidence before changing my mind.", StrengthID: 22},
	{ID: 23, Text: "I stand up for what is right, even if I stand alone.", StrengthID: 23},
	{ID: 24, Text: "I am good at organizing group activities.", StrengthID: 24},
	{ID: 25, Text: "I am most happy when I am helping others.", StrengthID: 10},
	{ID: 26, Text: "I love exploring new places and things.", StrengthID: 4},
	{ID: 27, Text: "I am an honest person.", StrengthID: 6},
	{ID: 28, Text: "I do not give up easily.", StrengthID: 21},
	{ID: 29, Text: "I expect good things to happen.", StrengthID: 19},
	{ID: 30, Text: "I am capable of loving and being loved.", StrengthID: 1},
}

// StrengthScore is one strength's summed assessment score.
type StrengthScore struct {
	StrengthID int
	Score      int
}

// RankStrengths sums each question's answer into its tagged strength and
// returns every answered strength ranked descending by score. Missing answers
// count as zero; answers outside 1-5 are rejected. Ties keep catalog order
// (stable sort on ascending id).
func RankStrengths(answers map[int]int) ([]StrengthScore, error) {
	for qid, score := range answers {
		if score < 1 || score > 5 {
			return nil, fmt.Errorf("%w: answer for question %d out of range: %d", ErrInvalidArgument, qid, score)
		}
	}

	scores := make(map[int]int)
	for _, q := range Questions {
		if score, ok := answers[q.ID]; ok {
			scores[q.StrengthID] += score
		}
	}

	ranked := make([]StrengthScore, 0, len(scores))
	for _, s := range models.AllStrengths() {
		if score, ok := scores[s.ID]; ok {
			ranked = append(ranked, StrengthScore{StrengthID: s.ID, Score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked, nil
}

// TopStrengths returns the first n ranked strength ids as the candidate
// signature-strength selection. The selection is handed to the user for
// confirmation, never committed automatically.
func TopStrengths(ranked []StrengthScore, n int) []int {
	if n > len(ranked) {
		n = len(ranked)
	}
	ids := make([]int, 0, n)
	for _, s := range ranked[:n] {
		ids = append(ids, s.StrengthID)
	}
	return ids
}
