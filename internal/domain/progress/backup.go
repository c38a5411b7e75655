package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/civicspath/backend/internal/store"
)

// Snapshot is a full copy of the persisted progress, keyed like storage.
type Snapshot struct {
	TestResults    []TestResult   `json:"testResults"`
	LearningList   []LearningItem `json:"learningList"`
	SeenQuestions  []int          `json:"seenQuestions"`
	Settings       Settings       `json:"settings"`
	TrialStartDate time.Time      `json:"trialStartDate"`
	IsPremium      bool           `json:"isPremium"`
	UsedPromoCode  string         `json:"usedPromoCode,omitempty"`
}

func (s *Store) Export() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		TestResults:    append([]TestResult{}, s.results...),
		LearningList:   append([]LearningItem{}, s.learning...),
		SeenQuestions:  append([]int{}, s.seen...),
		Settings:       s.settings.clone(),
		TrialStartDate: s.trialStart,
		IsPremium:      s.premium,
		UsedPromoCode:  s.promo,
	}
	return snap
}

// Import replaces all progress with snap. The history is re-capped,
// duplicate learning and seen ids are dropped, and a zero trial start keeps
// the current one. All keys are written in one batch, so nothing is changed
// when validation or storage fails.
func (s *Store) Import(ctx context.Context, snap Snapshot) error {
	if err := snap.Settings.Validate(); err != nil {
		return err
	}

	results := append([]TestResult{}, snap.TestResults...)
	if len(results) > MaxTestResults {
		results = results[:MaxTestResults]
	}

	learning := make([]LearningItem, 0, len(snap.LearningList))
	inList := map[int]bool{}
	for _, item := range snap.LearningList {
		if !item.Status.Valid() {
			return fmt.Errorf("%w: question %d: %q", ErrInvalidStatus, item.QuestionID, item.Status)
		}
		if inList[item.QuestionID] {
			continue
		}
		inList[item.QuestionID] = true
		learning = append(learning, item)
	}

	seen := make([]int, 0, len(snap.SeenQuestions))
	seenSet := map[int]bool{}
	for _, id := range snap.SeenQuestions {
		if !seenSet[id] {
			seenSet[id] = true
			seen = append(seen, id)
		}
	}

	promo := normalizeCode(snap.UsedPromoCode)

	s.mu.Lock()
	defer s.mu.Unlock()

	if promo != "" && !s.promoCodes[promo] {
		return fmt.Errorf("%w: %q", ErrPromoInvalid, promo)
	}
	trialStart := snap.TrialStartDate
	if trialStart.IsZero() {
		trialStart = s.trialStart
	}

	batch := store.Batch{Set: map[string]string{
		KeyTrialStartDate: trialStart.UTC().Format(time.RFC3339Nano),
		KeyIsPremium:      fmt.Sprintf("%t", snap.IsPremium),
	}}
	for key, v := range map[string]any{
		KeyTestResults:   results,
		KeyLearningList:  learning,
		KeySeenQuestions: seen,
		KeySettings:      snap.Settings,
	} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		batch.Set[key] = string(data)
	}
	if promo != "" {
		batch.Set[KeyUsedPromoCode] = promo
	} else {
		batch.Remove = []string{KeyUsedPromoCode}
	}
	if err := s.kv.Apply(ctx, batch); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	s.results = results
	s.learning = learning
	s.seen = seen
	s.settings = snap.Settings.clone()
	s.trialStart = trialStart.UTC()
	s.premium = snap.IsPremium
	s.promo = promo
	return nil
}
