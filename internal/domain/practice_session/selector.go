package practicesession

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/civicspath/backend/internal/domain/progress"
	"github.com/civicspath/backend/internal/domain/questionbank"
	"github.com/civicspath/backend/internal/domain/weakarea"
)

var ErrUnknownMode = errors.New("unknown session mode")

// Selection is the frozen question list for one session. Missing lists
// requested ids that are not in the bank; they are skipped.
type Selection struct {
	Questions []questionbank.Question
	Missing   []int
}

// Selector draws session question lists from the bank.
type Selector struct {
	bank *questionbank.Bank

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector returns a selector over bank. A nil rng is seeded from the clock.
func NewSelector(bank *questionbank.Bank, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{bank: bank, rng: rng}
}

// Select builds the ordered question list for cfg. The result may be empty,
// for example a weak-area replay with no history.
func (s *Selector) Select(cfg SessionConfig) (Selection, error) {
	switch cfg.Mode {
	case ModeStandard:
		return Selection{Questions: s.draw(cfg.SeniorMode)}, nil

	case ModeWrongReplay:
		return s.resolve(dedupe(cfg.QuestionIDs), false), nil

	case ModeLearningReplay:
		var ids []int
		for _, item := range cfg.LearningList {
			if item.Status == progress.StillLearning {
				ids = append(ids, item.QuestionID)
			}
		}
		sel := s.resolve(dedupe(ids), cfg.SeniorMode)
		if len(sel.Questions) > ReplayCap {
			sel.Questions = sel.Questions[:ReplayCap]
		}
		if len(sel.Questions) == 0 {
			sel.Questions = s.draw(cfg.SeniorMode)
		}
		return sel, nil

	case ModeWeakReplay:
		ids := weakarea.ReplayIDs(weakarea.Rank(cfg.History), cfg.LearningList, ReplayCap)
		return s.resolve(ids, cfg.SeniorMode), nil
	}
	return Selection{}, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
}

// draw samples without replacement from the active pool.
func (s *Selector) draw(senior bool) []questionbank.Question {
	pool := s.bank.Pool(senior)
	size := StandardSize
	if senior {
		size = SeniorSize
	}
	if size > len(pool) {
		size = len(pool)
	}

	s.mu.Lock()
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	s.mu.Unlock()

	return pool[:size]
}

// resolve maps ids to questions in order. With seniorOnly set, questions
// outside the senior pool are dropped without being reported missing.
func (s *Selector) resolve(ids []int, seniorOnly bool) Selection {
	var sel Selection
	for _, id := range ids {
		q, ok := s.bank.Get(id)
		if !ok {
			sel.Missing = append(sel.Missing, id)
			continue
		}
		if seniorOnly && !q.SeniorEligible {
			continue
		}
		sel.Questions = append(sel.Questions, q)
	}
	return sel
}

func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
