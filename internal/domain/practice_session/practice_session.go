package practicesession

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/civicspath/backend/internal/domain/answer"
	"github.com/civicspath/backend/internal/domain/progress"
	"github.com/civicspath/backend/internal/domain/questionbank"
	"github.com/civicspath/backend/internal/id"
)

var (
	ErrNotInProgress          = errors.New("session is not in progress")
	ErrAlreadyAnswered        = errors.New("question already answered")
	ErrNotAnswered            = errors.New("current question has not been answered")
	ErrIncompleteAnswer       = errors.New("not enough answers selected")
	ErrStateSelectionRequired = errors.New("select your state before answering")
	ErrRecording              = errors.New("failed to record progress")
)

// State of a session. Completed is terminal.
type State int

const (
	Initializing State = iota
	InProgress
	Completed
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// AnswerKey is the effective answer set of a question for this user.
type AnswerKey struct {
	Choices             []string
	Correct             []string
	NeedsStateSelection bool
	Hint                string
}

// AnswerKeyFunc resolves the answer key of a question when it is first shown.
type AnswerKeyFunc func(q questionbank.Question) AnswerKey

// StaticAnswerKey uses the bank's canonical answers and distractors.
func StaticAnswerKey(q questionbank.Question) AnswerKey {
	return AnswerKey{Choices: q.Choices(), Correct: q.Answers}
}

// Recorder persists what a session produces.
type Recorder interface {
	MarkSeen(ctx context.Context, questionID int) error
	RecordTestResult(ctx context.Context, r progress.TestResult) error
}

// Presented is the current question as shown to the user.
type Presented struct {
	Index               int
	Total               int
	Question            questionbank.Question
	Choices             []string // shuffled once per session
	RequiredAnswers     int
	NeedsStateSelection bool
	Hint                string
	Answer              *progress.AnswerRecord // nil until submitted
}

// PracticeSession runs one attempt over a frozen question list.
type PracticeSession struct {
	ID        string
	Mode      Mode
	Questions []questionbank.Question

	mu          sync.Mutex
	state       State
	index       int
	keys        []*AnswerKey
	answers     []*progress.AnswerRecord
	startedAt   time.Time
	completedAt time.Time
	result      *progress.TestResult

	now      func() time.Time
	keyFn    AnswerKeyFunc
	recorder Recorder
	rng      *rand.Rand
}

type Option func(*PracticeSession)

func WithClock(now func() time.Time) Option {
	return func(s *PracticeSession) { s.now = now }
}

func WithAnswerKey(fn AnswerKeyFunc) Option {
	return func(s *PracticeSession) { s.keyFn = fn }
}

func WithRecorder(r Recorder) Option {
	return func(s *PracticeSession) { s.recorder = r }
}

// WithRand sets the source used to shuffle answer choices.
func WithRand(rng *rand.Rand) Option {
	return func(s *PracticeSession) { s.rng = rng }
}

// New starts a session over questions. With at least one question it is
// InProgress at index 0 and the clock starts; an empty list stays
// Initializing.
func New(mode Mode, questions []questionbank.Question, opts ...Option) *PracticeSession {
	s := &PracticeSession{
		ID:        id.New(),
		Mode:      mode,
		Questions: append([]questionbank.Question{}, questions...),
		keys:      make([]*AnswerKey, len(questions)),
		answers:   make([]*progress.AnswerRecord, len(questions)),
		now:       time.Now,
		keyFn:     StaticAnswerKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if len(s.Questions) > 0 {
		s.state = InProgress
		s.startedAt = s.now()
	}
	return s
}

func (s *PracticeSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Index is the position of the current question.
func (s *PracticeSession) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Elapsed is advisory; sessions never expire.
func (s *PracticeSession) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed()
}

func (s *PracticeSession) elapsed() time.Duration {
	switch s.state {
	case InProgress:
		return s.now().Sub(s.startedAt)
	case Completed:
		return s.completedAt.Sub(s.startedAt)
	}
	return 0
}

// Answers returns the submitted answers in question order.
func (s *PracticeSession) Answers() []progress.AnswerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]progress.AnswerRecord, 0, len(s.answers))
	for _, a := range s.answers {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// Result is set once the session is completed.
func (s *PracticeSession) Result() (progress.TestResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return progress.TestResult{}, false
	}
	return *s.result, true
}

// Current returns the question at the current index.
func (s *PracticeSession) Current() (Presented, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != InProgress {
		return Presented{}, ErrNotInProgress
	}
	q := s.Questions[s.index]
	key := s.key(s.index)
	p := Presented{
		Index:               s.index,
		Total:               len(s.Questions),
		Question:            q,
		Choices:             append([]string{}, key.Choices...),
		RequiredAnswers:     q.RequiredAnswers(),
		NeedsStateSelection: key.NeedsStateSelection,
		Hint:                key.Hint,
	}
	if a := s.answers[s.index]; a != nil {
		rec := *a
		p.Answer = &rec
	}
	return p, nil
}

// key resolves and caches the answer key so choices and correctness stay
// fixed for the rest of the session. A key that still needs a state is not
// cached, so selecting a state makes the question answerable.
func (s *PracticeSession) key(i int) *AnswerKey {
	if k := s.keys[i]; k != nil {
		return k
	}
	k := s.keyFn(s.Questions[i])
	if k.NeedsStateSelection {
		return &k
	}
	k.Choices = append([]string{}, k.Choices...)
	s.rng.Shuffle(len(k.Choices), func(a, b int) {
		k.Choices[a], k.Choices[b] = k.Choices[b], k.Choices[a]
	})
	s.keys[i] = &k
	return &k
}

// Submit records the answer to the current question. Each question takes
// exactly one submission; incomplete selections are rejected without being
// recorded. A failure to mark the question seen is returned wrapped in
// ErrRecording but the answer stays recorded.
func (s *PracticeSession) Submit(ctx context.Context, selected []string) (answer.Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != InProgress {
		return answer.Verdict{}, ErrNotInProgress
	}
	if s.answers[s.index] != nil {
		return answer.Verdict{}, ErrAlreadyAnswered
	}

	q := s.Questions[s.index]
	key := s.key(s.index)
	if key.NeedsStateSelection {
		return answer.Verdict{}, ErrStateSelectionRequired
	}

	selected = distinct(selected)
	verdict := answer.Validate(selected, key.Correct, q.RequiredAnswers())
	if !verdict.IsComplete {
		return verdict, ErrIncompleteAnswer
	}

	rec := &progress.AnswerRecord{
		QuestionID:     q.ID,
		SelectedAnswer: strings.Join(selected, ", "),
		IsCorrect:      verdict.IsCorrect,
	}
	if len(selected) > 1 {
		rec.SelectedAnswers = append([]string{}, selected...)
	}
	s.answers[s.index] = rec

	if s.recorder != nil {
		if err := s.recorder.MarkSeen(ctx, q.ID); err != nil {
			return verdict, errors.Join(ErrRecording, err)
		}
	}
	return verdict, nil
}

// Advance moves past the answered current question. Past the last one the
// session completes and its result is returned. If the result cannot be
// recorded the session stays on the last question so the caller can retry.
func (s *PracticeSession) Advance(ctx context.Context) (*progress.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != InProgress {
		return nil, ErrNotInProgress
	}
	if s.answers[s.index] == nil {
		return nil, ErrNotAnswered
	}
	if s.index+1 < len(s.Questions) {
		s.index++
		return nil, nil
	}

	completedAt := s.now()
	result := s.buildResult(completedAt)
	if s.recorder != nil {
		if err := s.recorder.RecordTestResult(ctx, result); err != nil {
			return nil, errors.Join(ErrRecording, err)
		}
	}

	s.completedAt = completedAt
	s.state = Completed
	s.result = &result
	out := result
	return &out, nil
}

// distinct drops repeated selections, keeping first-seen order.
func distinct(selected []string) []string {
	seen := make(map[string]bool, len(selected))
	out := make([]string, 0, len(selected))
	for _, a := range selected {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}

func (s *PracticeSession) buildResult(completedAt time.Time) progress.TestResult {
	answers := make([]progress.AnswerRecord, 0, len(s.answers))
	score := 0
	for _, a := range s.answers {
		if a.IsCorrect {
			score++
		}
		answers = append(answers, *a)
	}
	total := len(s.Questions)

	return progress.TestResult{
		ID:             id.New(),
		Date:           completedAt.UTC(),
		Score:          score,
		TotalQuestions: total,
		Accuracy:       int(math.Round(float64(score) / float64(total) * 100)),
		TimeSpent:      int(completedAt.Sub(s.startedAt).Seconds()),
		Answers:        answers,
	}
}
