package answer_test

import (
	"testing"

	"github.com/civicspath/backend/internal/domain/answer"
)

func TestValidate(t *testing.T) {
	correct := []string{"Memorial Day", "Labor Day", "Veterans Day"}

	tests := []struct {
		name         string
		selected     []string
		required     int
		wantCorrect  bool
		wantComplete bool
	}{
		{"empty selection", nil, 1, false, false},
		{"single correct", []string{"Labor Day"}, 1, true, true},
		{"single wrong", []string{"Halloween"}, 1, false, true},
		{"zero required still needs one", []string{"Labor Day"}, 0, true, true},
		{"two required, one given", []string{"Labor Day"}, 2, true, false},
		{"two required, two correct", []string{"Labor Day", "Memorial Day"}, 2, true, true},
		{"one wrong invalidates all", []string{"Labor Day", "Halloween"}, 2, false, true},
		{"extra picks beyond required", []string{"Labor Day", "Memorial Day", "Veterans Day"}, 2, true, true},
		{"multi-select on single answer question", []string{"Labor Day", "Halloween"}, 1, false, true},
		{"duplicates tolerated", []string{"Labor Day", "Labor Day"}, 1, true, true},
		{"case sensitive", []string{"labor day"}, 1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := answer.Validate(tt.selected, correct, tt.required)
			if v.IsCorrect != tt.wantCorrect {
				t.Errorf("expected IsCorrect=%v, got %v", tt.wantCorrect, v.IsCorrect)
			}
			if v.IsComplete != tt.wantComplete {
				t.Errorf("expected IsComplete=%v, got %v", tt.wantComplete, v.IsComplete)
			}
		})
	}
}

func TestValidate_MonotonicStrictness(t *testing.T) {
	correct := []string{"A", "B", "C"}
	subsets := [][]string{{"A"}, {"B", "C"}, {"A", "B", "C"}}

	for _, s := range subsets {
		if !answer.Validate(s, correct, 1).IsCorrect {
			t.Fatalf("expected %v to be correct", s)
		}
		withWrong := append(append([]string{}, s...), "Z")
		if answer.Validate(withWrong, correct, 1).IsCorrect {
			t.Errorf("adding a wrong answer to %v should flip IsCorrect", s)
		}
	}
}

func TestValidate_NoCorrectAnswers(t *testing.T) {
	v := answer.Validate([]string{"Select your state in Settings"}, []string{}, 1)
	if v.IsCorrect {
		t.Error("nothing can be correct against an empty answer set")
	}
}
