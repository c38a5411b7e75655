package questionbank

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/civicspath/backend/internal/domain/category"
)

//go:embed questions.yaml
var questionsYAML []byte

// ErrInvalidBank is returned when question data fails validation.
var ErrInvalidBank = errors.New("invalid question bank")

// Question is one immutable entry of the civics bank.
type Question struct {
	ID             int               `yaml:"id"`
	Prompt         string            `yaml:"prompt"`
	Category       category.Category `yaml:"category"`
	Answers        []string          `yaml:"answers"`     // canonical answers, first is the primary one
	Distractors    []string          `yaml:"distractors"` // wrong choices offered in choice-based rendering
	Explanation    string            `yaml:"explanation"`
	Dynamic        bool              `yaml:"dynamic"` // answers resolved at presentation time
	SeniorEligible bool              `yaml:"senior"`  // part of the 65/20 subset
}

// Choices returns the canonical answers followed by the distractors,
// without duplicates. Callers shuffle per presentation.
func (q Question) Choices() []string {
	seen := make(map[string]bool, len(q.Answers)+len(q.Distractors))
	out := make([]string, 0, len(q.Answers)+len(q.Distractors))
	for _, group := range [][]string{q.Answers, q.Distractors} {
		for _, c := range group {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// RequiredAnswers is the number of distinct answers the prompt asks for.
func (q Question) RequiredAnswers() int {
	return RequiredAnswerCount(q.Prompt)
}

// Bank is the static question catalog, ordered by id.
type Bank struct {
	questions []Question
	byID      map[int]int
}

// Load parses the embedded 128-question bank.
func Load() (*Bank, error) {
	return Parse(questionsYAML)
}

// Parse decodes a YAML list of questions and validates it.
func Parse(data []byte) (*Bank, error) {
	var questions []Question
	if err := yaml.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	return New(questions)
}

// New builds a bank from the given questions.
func New(questions []Question) (*Bank, error) {
	b := &Bank{
		questions: make([]Question, len(questions)),
		byID:      make(map[int]int, len(questions)),
	}
	copy(b.questions, questions)
	sort.SliceStable(b.questions, func(i, j int) bool {
		return b.questions[i].ID < b.questions[j].ID
	})

	for i, q := range b.questions {
		if err := validate(q); err != nil {
			return nil, err
		}
		if _, dup := b.byID[q.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate question id %d", ErrInvalidBank, q.ID)
		}
		b.byID[q.ID] = i
	}
	return b, nil
}

func validate(q Question) error {
	if q.ID <= 0 {
		return fmt.Errorf("%w: question id %d must be positive", ErrInvalidBank, q.ID)
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: question %d has an empty prompt", ErrInvalidBank, q.ID)
	}
	if !q.Category.Valid() {
		return fmt.Errorf("%w: question %d has unknown category %q", ErrInvalidBank, q.ID, q.Category)
	}
	if q.Dynamic {
		return nil
	}
	if len(q.Answers) == 0 {
		return fmt.Errorf("%w: static question %d has no answers", ErrInvalidBank, q.ID)
	}
	if need := q.RequiredAnswers(); len(q.Answers) < need {
		return fmt.Errorf("%w: question %d asks for %d answers but lists %d", ErrInvalidBank, q.ID, need, len(q.Answers))
	}
	for _, d := range q.Distractors {
		for _, a := range q.Answers {
			if strings.EqualFold(d, a) {
				return fmt.Errorf("%w: question %d lists %q as both answer and distractor", ErrInvalidBank, q.ID, d)
			}
		}
	}
	return nil
}

// Get returns the question with the given id.
func (b *Bank) Get(id int) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// All returns every question ordered by id.
func (b *Bank) All() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

func (b *Bank) Len() int {
	return len(b.questions)
}

// Pool returns the questions active for the user: the senior-eligible
// subset in senior mode, the full bank otherwise. Selection, study, and
// progress views all derive their question set from here.
func (b *Bank) Pool(senior bool) []Question {
	if !senior {
		return b.All()
	}
	out := make([]Question, 0, 20)
	for _, q := range b.questions {
		if q.SeniorEligible {
			out = append(out, q)
		}
	}
	return out
}

// InPool reports whether id belongs to the active pool.
func (b *Bank) InPool(id int, senior bool) bool {
	q, ok := b.Get(id)
	if !ok {
		return false
	}
	return !senior || q.SeniorEligible
}

// Search matches query against the prompt and canonical answers of every
// question in the bank, case-insensitively.
func (b *Bank) Search(query string) []Question {
	return Filter(b.questions, query, "")
}

// Filter narrows pool to questions matching query (prompt or any canonical
// answer, case-insensitive) and, when cat is non-empty, to that category.
// An empty query matches everything.
func Filter(pool []Question, query string, cat category.Category) []Question {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]Question, 0, len(pool))
	for _, q := range pool {
		if cat != "" && q.Category != cat {
			continue
		}
		if needle != "" && !matches(q, needle) {
			continue
		}
		out = append(out, q)
	}
	return out
}

func matches(q Question, needle string) bool {
	if strings.Contains(strings.ToLower(q.Prompt), needle) {
		return true
	}
	for _, a := range q.Answers {
		if strings.Contains(strings.ToLower(a), needle) {
			return true
		}
	}
	return false
}
