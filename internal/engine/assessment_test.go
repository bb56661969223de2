package engine

import (
	"errors"
	"testing"
)

// answerAll builds a full answer set at the given score, with overrides per
// question id.
func answerAll(score int, overrides map[int]int) map[int]int {
	answers := make(map[int]int, len(Questions))
	for _, q := range Questions {
		answers[q.ID] = score
	}
	for qid, s := range overrides {
		answers[qid] = s
	}
	return answers
}

func TestRankStrengths_MultiQuestionStrengthsAreFavored(t *testing.T) {
	// All fives: strengths with more questions sum higher. Love (1),
	// Curiosity (4), Honesty (6), Hope (19), Perseverance (21) have two
	// questions each and Kindness (10) has two as well, so they outrank the
	// single-question strengths.
	ranked, err := RankStrengths(answerAll(5, nil))
	if err != nil {
		t.Fatalf("RankStrengths failed: %v", err)
	}

	if len(ranked) != 24 {
		t.Fatalf("expected 24 ranked strengths, got %d", len(ranked))
	}

	twoQuestion := map[int]bool{1: true, 4: true, 6: true, 10: true, 19: true, 21: true}
	for i := 0; i < 6; i++ {
		if !twoQuestion[ranked[i].StrengthID] {
			t.Errorf("rank %d = strength %d (score %d), expected a two-question strength",
				i, ranked[i].StrengthID, ranked[i].Score)
		}
		if ranked[i].Score != 10 {
			t.Errorf("rank %d score = %d, want 10", i, ranked[i].Score)
		}
	}
}

func TestRankStrengths_LowScoredStrengthRanksLast(t *testing.T) {
	// All fives except strength 7's single question answered 1: it must rank
	// last and fall outside the top 10.
	ranked, err := RankStrengths(answerAll(5, map[int]int{7: 1}))
	if err != nil {
		t.Fatalf("RankStrengths failed: %v", err)
	}

	last := ranked[len(ranked)-1]
	if last.StrengthID != 7 {
		t.Errorf("last ranked strength = %d, want 7", last.StrengthID)
	}

	for _, id := range TopStrengths(ranked, 10) {
		if id == 7 {
			t.Errorf("strength 7 appeared in top 10 despite lowest score")
		}
	}
}

func TestRankStrengths_TiesKeepCatalogOrder(t *testing.T) {
	// All threes: every single-question strength ties; order among equals
	// must follow catalog ids.
	ranked, err := RankStrengths(answerAll(3, nil))
	if err != nil {
		t.Fatalf("RankStrengths failed: %v", err)
	}

	prevScore := ranked[0].Score
	prevID := 0
	for _, s := range ranked {
		if s.Score == prevScore && s.StrengthID < prevID {
			t.Errorf("tie broken out of catalog order: strength %d after %d at score %d", s.StrengthID, prevID, s.Score)
		}
		if s.Score != prevScore {
			prevID = 0
		}
		prevScore = s.Score
		prevID = s.StrengthID
	}
}

func TestRankStrengths_PartialAnswersCountMissingAsZero(t *testing.T) {
	ranked, err := RankStrengths(map[int]int{10: 5})
	if err != nil {
		t.Fatalf("RankStrengths failed: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("expected 1 ranked strength, got %d", len(ranked))
	}
	if ranked[0].StrengthID != 10 || ranked[0].Score != 5 {
		t.Errorf("ranked[0] = %+v, want strength 10 at score 5", ranked[0])
	}
}

func TestRankStrengths_RejectsOutOfRangeAnswers(t *testing.T) {
	for _, score := range []int{0, 6, -1} {
		_, err := RankStrengths(map[int]int{1: score})
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("score %d: error = %v, want ErrInvalidArgument", score, err)
		}
	}
}

func TestTopStrengths_ShortList(t *testing.T) {
	ranked := []StrengthScore{{StrengthID: 3, Score: 5}, {StrengthID: 9, Score: 4}}
	ids := TopStrengths(ranked, 10)
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 9 {
		t.Errorf("TopStrengths = %v, want [3 9]", ids)
	}
}
