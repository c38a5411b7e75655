// internal/service/practice.go
package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/civicspath/backend/internal/domain/answer"
	"github.com/civicspath/backend/internal/domain/category"
	"github.com/civicspath/backend/internal/domain/dynamicanswer"
	"github.com/civicspath/backend/internal/domain/officials"
	practicesession "github.com/civicspath/backend/internal/domain/practice_session"
	"github.com/civicspath/backend/internal/domain/progress"
	"github.com/civicspath/backend/internal/domain/questionbank"
	"github.com/civicspath/backend/internal/domain/weakarea"
	"github.com/civicspath/backend/internal/infrastructure/metrics"
)

var ErrSessionNotFound = errors.New("session not found")

// maxSessions bounds the sessions kept in memory. The oldest is dropped
// when a new one would exceed it.
const maxSessions = 16

// WeakArea is a missed question with how often it was missed.
type WeakArea struct {
	Question questionbank.Question
	Misses   int
}

// PracticeService runs practice sessions against the question bank and the
// user's progress. It owns the live sessions; the progress store stays a
// pure persistence layer.
type PracticeService struct {
	bank     *questionbank.Bank
	progress *progress.Store
	selector *practicesession.Selector
	resolver atomic.Pointer[dynamicanswer.Resolver]
	metrics  *metrics.Metrics
	logger   *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	mu       sync.RWMutex
	sessions map[string]*practicesession.PracticeSession
	order    []string // session ids, oldest first
}

type PracticeOption func(*PracticeService)

// WithRand seeds question selection and choice shuffling.
func WithRand(rng *rand.Rand) PracticeOption {
	return func(ps *PracticeService) { ps.rng = rng }
}

func NewPracticeService(
	bank *questionbank.Bank,
	store *progress.Store,
	federal officials.Federal,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts ...PracticeOption,
) *PracticeService {
	ps := &PracticeService{
		bank:     bank,
		progress: store,
		metrics:  m,
		logger:   logger,
		sessions: make(map[string]*practicesession.PracticeSession),
	}
	for _, opt := range opts {
		opt(ps)
	}
	if ps.rng == nil {
		ps.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	ps.selector = practicesession.NewSelector(bank, rand.New(rand.NewSource(ps.rng.Int63())))
	ps.SetFederal(federal)
	return ps
}

// ── Officials ───────────────────────────────────────────────────────────────

// SetFederal swaps the officeholders used for questions resolved from now on.
// Sessions keep the answers they already showed.
func (ps *PracticeService) SetFederal(f officials.Federal) {
	ps.resolver.Store(dynamicanswer.NewResolver(f, nil))
}

func (ps *PracticeService) Federal() officials.Federal {
	return ps.resolver.Load().Federal()
}

// Resolve returns the dynamic answers of q for the current settings, or nil
// for static questions.
func (ps *PracticeService) Resolve(q questionbank.Question) *dynamicanswer.Result {
	settings := ps.progress.Settings()
	return ps.resolver.Load().Resolve(q, settings.State(), settings.CustomOfficials)
}

// AnswerKey is the effective answer set of q for the current settings.
func (ps *PracticeService) AnswerKey(q questionbank.Question) practicesession.AnswerKey {
	res := ps.Resolve(q)
	if res == nil {
		return practicesession.StaticAnswerKey(q)
	}
	return practicesession.AnswerKey{
		Choices:             res.Answers,
		Correct:             res.CorrectAnswers,
		NeedsStateSelection: res.NeedsStateSelection,
		Hint:                res.Hint,
	}
}

// ── Study views ─────────────────────────────────────────────────────────────

// Questions searches the active pool, optionally within one category.
func (ps *PracticeService) Questions(query string, cat category.Category) []questionbank.Question {
	return questionbank.Filter(ps.bank.Pool(ps.progress.Settings().SeniorMode), query, cat)
}

func (ps *PracticeService) Question(id int) (questionbank.Question, bool) {
	return ps.bank.Get(id)
}

func (ps *PracticeService) CategoryProgress() []questionbank.CategoryStats {
	learning := map[int]bool{}
	for _, item := range ps.progress.LearningList() {
		learning[item.QuestionID] = true
	}
	pool := ps.bank.Pool(ps.progress.Settings().SeniorMode)
	return questionbank.ComputeCategoryStats(pool, ps.progress.Seen(), learning)
}

// WeakAreas ranks the questions missed across stored results. Ids no longer
// in the bank are skipped.
func (ps *PracticeService) WeakAreas() []WeakArea {
	ranked := weakarea.Rank(ps.progress.TestResults())
	out := make([]WeakArea, 0, len(ranked))
	var missing []int
	for _, m := range ranked {
		q, ok := ps.bank.Get(m.QuestionID)
		if !ok {
			missing = append(missing, m.QuestionID)
			continue
		}
		out = append(out, WeakArea{Question: q, Misses: m.Count})
	}
	if len(missing) > 0 {
		ps.logger.Warn("weak areas reference unknown questions", zap.Ints("question_ids", missing))
	}
	return out
}

// ── Sessions ────────────────────────────────────────────────────────────────

// Start draws a new session. questionIDs is used by the wrong-answer replay
// only. A replay with nothing to replay returns a session that is still
// initializing.
func (ps *PracticeService) Start(mode practicesession.Mode, questionIDs []int) (*practicesession.PracticeSession, error) {
	if !mode.Valid() {
		return nil, practicesession.ErrUnknownMode
	}
	settings := ps.progress.Settings()
	cfg := practicesession.SessionConfig{
		Mode:         mode,
		QuestionIDs:  questionIDs,
		LearningList: ps.progress.LearningList(),
		History:      ps.progress.TestResults(),
		SeniorMode:   settings.SeniorMode,
	}

	sel, err := ps.selector.Select(cfg)
	if err != nil {
		return nil, err
	}
	if len(sel.Missing) > 0 {
		ps.logger.Warn("skipped unknown question ids",
			zap.String("mode", string(mode)),
			zap.Ints("question_ids", sel.Missing),
		)
	}

	ps.rngMu.Lock()
	seed := ps.rng.Int63()
	ps.rngMu.Unlock()

	session := practicesession.New(mode, sel.Questions,
		practicesession.WithAnswerKey(ps.AnswerKey),
		practicesession.WithRecorder(ps.progress),
		practicesession.WithRand(rand.New(rand.NewSource(seed))),
	)
	ps.track(session)

	if session.State() == practicesession.InProgress {
		ps.metrics.SessionStarted(string(mode))
	}
	ps.logger.Info("session started",
		zap.String("session_id", session.ID),
		zap.String("mode", string(mode)),
		zap.Int("questions", len(session.Questions)),
	)
	return session, nil
}

func (ps *PracticeService) track(s *practicesession.PracticeSession) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.sessions[s.ID] = s
	ps.order = append(ps.order, s.ID)
	for len(ps.order) > maxSessions {
		delete(ps.sessions, ps.order[0])
		ps.order = ps.order[1:]
	}
}

func (ps *PracticeService) Session(id string) (*practicesession.PracticeSession, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	s, ok := ps.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Submit answers the current question of a session. A recording failure is
// logged and returned; the answer itself is kept.
func (ps *PracticeService) Submit(ctx context.Context, sessionID string, selected []string) (answer.Verdict, error) {
	s, err := ps.Session(sessionID)
	if err != nil {
		return answer.Verdict{}, err
	}

	verdict, err := s.Submit(ctx, selected)
	if err != nil && !errors.Is(err, practicesession.ErrRecording) {
		return verdict, err
	}
	ps.metrics.AnswerSubmitted(verdict.IsCorrect)
	if err != nil {
		ps.logger.Error("failed to mark question seen", zap.String("session_id", sessionID), zap.Error(err))
	}
	return verdict, err
}

// Advance moves a session forward and returns the result when it completes.
func (ps *PracticeService) Advance(ctx context.Context, sessionID string) (*progress.TestResult, error) {
	s, err := ps.Session(sessionID)
	if err != nil {
		return nil, err
	}

	result, err := s.Advance(ctx)
	if err != nil {
		if errors.Is(err, practicesession.ErrRecording) {
			ps.logger.Error("failed to record test result", zap.String("session_id", sessionID), zap.Error(err))
		}
		return nil, err
	}
	if result != nil {
		ps.metrics.SessionCompleted()
		ps.logger.Info("session completed",
			zap.String("session_id", sessionID),
			zap.Int("score", result.Score),
			zap.Int("total", result.TotalQuestions),
			zap.Int("accuracy", result.Accuracy),
		)
	}
	return result, nil
}
