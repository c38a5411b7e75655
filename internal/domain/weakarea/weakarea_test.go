package weakarea_test

import (
	"testing"

	"github.com/civicspath/backend/internal/domain/progress"
	"github.com/civicspath/backend/internal/domain/weakarea"
)

func answers(pairs ...any) []progress.AnswerRecord {
	var out []progress.AnswerRecord
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, progress.AnswerRecord{QuestionID: pairs[i].(int), IsCorrect: pairs[i+1].(bool)})
	}
	return out
}

func TestRank(t *testing.T) {
	results := []progress.TestResult{
		{Answers: answers(7, false, 42, false, 1, true)},
		{Answers: answers(42, false, 3, false)},
		{Answers: answers(42, true, 7, true)},
	}

	ranked := weakarea.Rank(results)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 missed questions, got %v", ranked)
	}
	if ranked[0].QuestionID != 42 || ranked[0].Count != 2 {
		t.Errorf("expected 42 first with 2 misses, got %+v", ranked[0])
	}
	// 7 and 3 tie; 7 was missed first.
	if ranked[1].QuestionID != 7 || ranked[2].QuestionID != 3 {
		t.Errorf("expected tie order [7 3], got %v", ranked[1:])
	}
}

func TestRank_Empty(t *testing.T) {
	if got := weakarea.Rank(nil); len(got) != 0 {
		t.Errorf("expected no misses, got %v", got)
	}
}

func TestReplayIDs(t *testing.T) {
	ranked := []weakarea.Miss{{QuestionID: 42, Count: 2}, {QuestionID: 7, Count: 1}}
	learning := []progress.LearningItem{
		{QuestionID: 7, Status: progress.StillLearning},
		{QuestionID: 11, Status: progress.Known},
		{QuestionID: 90, Status: progress.StillLearning},
	}

	got := weakarea.ReplayIDs(ranked, learning, weakarea.ReplayCap)
	want := []int{42, 7, 90}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestReplayIDs_Cap(t *testing.T) {
	var ranked []weakarea.Miss
	for i := 1; i <= 30; i++ {
		ranked = append(ranked, weakarea.Miss{QuestionID: i, Count: 1})
	}

	got := weakarea.ReplayIDs(ranked, []progress.LearningItem{{QuestionID: 99, Status: progress.StillLearning}}, weakarea.ReplayCap)
	if len(got) != 20 {
		t.Fatalf("expected 20 ids, got %d", len(got))
	}
	if got[19] != 20 {
		t.Errorf("expected ranked ids to fill the cap, got %v", got)
	}
}
