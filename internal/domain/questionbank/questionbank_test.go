package questionbank_test

import (
	"errors"
	"testing"

	"github.com/civicspath/backend/internal/domain/category"
	"github.com/civicspath/backend/internal/domain/questionbank"
)

func loadBank(t *testing.T) *questionbank.Bank {
	t.Helper()
	bank, err := questionbank.Load()
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	return bank
}

func TestLoad_EmbeddedBank(t *testing.T) {
	bank := loadBank(t)

	if bank.Len() != 128 {
		t.Fatalf("expected 128 questions, got %d", bank.Len())
	}

	all := bank.All()
	for i, q := range all {
		if q.ID != i+1 {
			t.Fatalf("expected question %d at index %d, got %d", i+1, i, q.ID)
		}
	}

	counts := map[category.Category]int{}
	for _, q := range all {
		counts[q.Category]++
	}
	if counts[category.Government] != 72 || counts[category.History] != 46 || counts[category.Civics] != 10 {
		t.Errorf("unexpected category split: %v", counts)
	}
}

func TestLoad_DynamicQuestions(t *testing.T) {
	bank := loadBank(t)

	want := map[int]bool{23: true, 29: true, 30: true, 38: true, 39: true, 57: true, 61: true, 62: true}
	for _, q := range bank.All() {
		if q.Dynamic != want[q.ID] {
			t.Errorf("question %d: expected dynamic=%v, got %v", q.ID, want[q.ID], q.Dynamic)
		}
		if q.Dynamic && len(q.Answers) != 0 {
			t.Errorf("dynamic question %d should not carry static answers", q.ID)
		}
	}
}

func TestPool_Senior(t *testing.T) {
	bank := loadBank(t)

	if got := len(bank.Pool(false)); got != 128 {
		t.Errorf("expected full pool of 128, got %d", got)
	}

	senior := bank.Pool(true)
	if len(senior) != 20 {
		t.Fatalf("expected 20 senior questions, got %d", len(senior))
	}
	for _, q := range senior {
		if !q.SeniorEligible {
			t.Errorf("question %d in senior pool is not senior-eligible", q.ID)
		}
		if !bank.InPool(q.ID, true) {
			t.Errorf("InPool(%d, true) = false", q.ID)
		}
	}
	if bank.InPool(3, true) {
		t.Error("question 3 should not be in the senior pool")
	}
	if bank.InPool(999, false) {
		t.Error("unknown id should not be in any pool")
	}
}

func TestGet(t *testing.T) {
	bank := loadBank(t)

	q, ok := bank.Get(21)
	if !ok {
		t.Fatal("expected question 21")
	}
	if q.Answers[0] != "One hundred (100)" {
		t.Errorf("unexpected primary answer %q", q.Answers[0])
	}

	if _, ok := bank.Get(0); ok {
		t.Error("expected no question with id 0")
	}
}

func TestChoices_AnswersFirstNoDuplicates(t *testing.T) {
	q := questionbank.Question{
		Answers:     []string{"A", "B"},
		Distractors: []string{"C", "A", "D"},
	}

	got := q.Choices()
	want := []string{"A", "B", "C", "D"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("choice %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSearch(t *testing.T) {
	bank := loadBank(t)

	byPrompt := bank.Search("statue of liberty")
	if len(byPrompt) != 1 || byPrompt[0].ID != 120 {
		t.Errorf("expected question 120, got %v", ids(byPrompt))
	}

	byAnswer := bank.Search("JUNETEENTH")
	if len(byAnswer) != 1 || byAnswer[0].ID != 126 {
		t.Errorf("expected question 126, got %v", ids(byAnswer))
	}

	if got := len(bank.Search("")); got != 128 {
		t.Errorf("empty query should match all, got %d", got)
	}
}

func TestFilter_Category(t *testing.T) {
	bank := loadBank(t)

	civics := questionbank.Filter(bank.All(), "", category.Civics)
	if len(civics) != 10 {
		t.Fatalf("expected 10 civics questions, got %d", len(civics))
	}
	for _, q := range civics {
		if q.Category != category.Civics {
			t.Errorf("question %d has category %s", q.ID, q.Category)
		}
	}

	holidays := questionbank.Filter(bank.All(), "holiday", category.History)
	if len(holidays) != 0 {
		t.Errorf("expected no history questions about holidays, got %v", ids(holidays))
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		questions []questionbank.Question
	}{
		{"non-positive id", []questionbank.Question{{ID: 0, Prompt: "p", Category: category.Civics, Answers: []string{"a"}}}},
		{"empty prompt", []questionbank.Question{{ID: 1, Prompt: " ", Category: category.Civics, Answers: []string{"a"}}}},
		{"unknown category", []questionbank.Question{{ID: 1, Prompt: "p", Category: "sports", Answers: []string{"a"}}}},
		{"static without answers", []questionbank.Question{{ID: 1, Prompt: "p", Category: category.Civics}}},
		{"too few answers", []questionbank.Question{{ID: 1, Prompt: "Name two things.", Category: category.Civics, Answers: []string{"a"}}}},
		{"answer as distractor", []questionbank.Question{{ID: 1, Prompt: "p", Category: category.Civics, Answers: []string{"Yes"}, Distractors: []string{"yes"}}}},
		{"duplicate id", []questionbank.Question{
			{ID: 1, Prompt: "p", Category: category.Civics, Answers: []string{"a"}},
			{ID: 1, Prompt: "q", Category: category.Civics, Answers: []string{"b"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := questionbank.New(tt.questions)
			if !errors.Is(err, questionbank.ErrInvalidBank) {
				t.Errorf("expected ErrInvalidBank, got %v", err)
			}
		})
	}
}

func TestNew_DynamicMayHaveNoAnswers(t *testing.T) {
	_, err := questionbank.New([]questionbank.Question{
		{ID: 62, Prompt: "What is the capital of your state?", Category: category.Government, Dynamic: true},
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := questionbank.Parse([]byte("- id: [")); err == nil {
		t.Error("expected decode error")
	}
}

func ids(qs []questionbank.Question) []int {
	out := make([]int, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}
