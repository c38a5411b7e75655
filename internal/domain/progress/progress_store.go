package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/civicspath/backend/internal/store"
)

// Store owns the user's persisted progress. Every mutation is written to
// the key-value store first and applied in memory only once the write
// succeeded, so a failing backend leaves state unchanged.
type Store struct {
	mu         sync.Mutex
	kv         store.KV
	now        func() time.Time
	trialDays  int
	promoCodes map[string]bool

	results    []TestResult
	learning   []LearningItem
	seen       []int
	settings   Settings
	trialStart time.Time
	premium    bool
	promo      string
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithTrialDays(days int) Option {
	return func(s *Store) { s.trialDays = days }
}

// WithPromoCodes sets the accepted promo codes. Codes are normalized the
// same way as user input.
func WithPromoCodes(codes ...string) Option {
	return func(s *Store) {
		s.promoCodes = make(map[string]bool, len(codes))
		for _, c := range codes {
			if c = normalizeCode(c); c != "" {
				s.promoCodes[c] = true
			}
		}
	}
}

// Open loads every collection from kv and records the trial start on
// first launch.
func Open(ctx context.Context, kv store.KV, opts ...Option) (*Store, error) {
	s := &Store{
		kv:         kv,
		now:        time.Now,
		trialDays:  DefaultTrialDays,
		promoCodes: map[string]bool{"FREEUSCIS": true},
		settings:   DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	if err := s.loadJSON(ctx, KeyTestResults, &s.results); err != nil {
		return err
	}
	if len(s.results) > MaxTestResults {
		s.results = s.results[:MaxTestResults]
	}
	if err := s.loadJSON(ctx, KeyLearningList, &s.learning); err != nil {
		return err
	}
	if err := s.loadJSON(ctx, KeySeenQuestions, &s.seen); err != nil {
		return err
	}
	if err := s.loadJSON(ctx, KeySettings, &s.settings); err != nil {
		return err
	}

	raw, err := s.kv.Get(ctx, KeyIsPremium)
	switch {
	case err == nil:
		s.premium = raw == "true"
	case !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("load %s: %w", KeyIsPremium, err)
	}

	raw, err = s.kv.Get(ctx, KeyUsedPromoCode)
	switch {
	case err == nil:
		s.promo = raw
	case !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("load %s: %w", KeyUsedPromoCode, err)
	}

	raw, err = s.kv.Get(ctx, KeyTrialStartDate)
	switch {
	case err == nil:
		t, perr := time.Parse(time.RFC3339Nano, raw)
		if perr != nil {
			return fmt.Errorf("%w: %s: %v", ErrCorruptData, KeyTrialStartDate, perr)
		}
		s.trialStart = t
	case errors.Is(err, store.ErrNotFound):
		return s.startTrial(ctx)
	default:
		return fmt.Errorf("load %s: %w", KeyTrialStartDate, err)
	}
	return nil
}

// loadJSON decodes key into dst, leaving dst untouched when the key is absent.
func (s *Store) loadJSON(ctx context.Context, key string, dst any) error {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptData, key, err)
	}
	return nil
}

func (s *Store) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *Store) startTrial(ctx context.Context) error {
	now := s.now().UTC()
	if err := s.kv.Set(ctx, KeyTrialStartDate, now.Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("save %s: %w", KeyTrialStartDate, err)
	}
	s.trialStart = now
	return nil
}

// ── Test results ────────────────────────────────────────────────────────────

// RecordTestResult prepends r to the history and evicts beyond MaxTestResults.
func (s *Store) RecordTestResult(ctx context.Context, r TestResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]TestResult, 0, MaxTestResults)
	next = append(next, r)
	next = append(next, s.results...)
	if len(next) > MaxTestResults {
		next = next[:MaxTestResults]
	}
	if err := s.saveJSON(ctx, KeyTestResults, next); err != nil {
		return err
	}
	s.results = next
	return nil
}

// TestResults returns the history, most recent first.
func (s *Store) TestResults() []TestResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TestResult, len(s.results))
	copy(out, s.results)
	return out
}

func (s *Store) TestResult(id string) (TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.results {
		if r.ID == id {
			return r, nil
		}
	}
	return TestResult{}, store.ErrNotFound
}

func (s *Store) ClearTestResults(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveJSON(ctx, KeyTestResults, []TestResult{}); err != nil {
		return err
	}
	s.results = nil
	return nil
}

// ── Learning list ───────────────────────────────────────────────────────────

// AddToLearningList bookmarks questionID as still-learning. Adding an id
// already present is a no-op.
func (s *Store) AddToLearningList(ctx context.Context, questionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.learningIndex(questionID) >= 0 {
		return nil
	}
	next := append(append([]LearningItem{}, s.learning...), LearningItem{
		QuestionID: questionID,
		Status:     StillLearning,
		AddedAt:    s.now().UTC(),
	})
	if err := s.saveJSON(ctx, KeyLearningList, next); err != nil {
		return err
	}
	s.learning = next
	return nil
}

func (s *Store) RemoveFromLearningList(ctx context.Context, questionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.learningIndex(questionID)
	if i < 0 {
		return nil
	}
	next := make([]LearningItem, 0, len(s.learning)-1)
	next = append(next, s.learning[:i]...)
	next = append(next, s.learning[i+1:]...)
	if err := s.saveJSON(ctx, KeyLearningList, next); err != nil {
		return err
	}
	s.learning = next
	return nil
}

// UpdateLearningStatus sets the status and review time of a bookmarked
// question. It returns ErrNotInLearningList for ids never added.
func (s *Store) UpdateLearningStatus(ctx context.Context, questionID int, status LearningStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.learningIndex(questionID)
	if i < 0 {
		return ErrNotInLearningList
	}
	next := append([]LearningItem{}, s.learning...)
	reviewed := s.now().UTC()
	next[i].Status = status
	next[i].LastReviewed = &reviewed
	if err := s.saveJSON(ctx, KeyLearningList, next); err != nil {
		return err
	}
	s.learning = next
	return nil
}

func (s *Store) learningIndex(questionID int) int {
	for i, item := range s.learning {
		if item.QuestionID == questionID {
			return i
		}
	}
	return -1
}

// LearningList returns bookmarked items in the order they were added.
func (s *Store) LearningList() []LearningItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LearningItem, len(s.learning))
	copy(out, s.learning)
	return out
}

// LearningItems filters the list by status; an empty status returns all.
func (s *Store) LearningItems(status LearningStatus) []LearningItem {
	items := s.LearningList()
	if status == "" {
		return items
	}
	out := items[:0]
	for _, item := range items {
		if item.Status == status {
			out = append(out, item)
		}
	}
	return out
}

// LearningCounts returns how many items are still-learning and known.
func (s *Store) LearningCounts() (stillLearning, known int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.learning {
		switch item.Status {
		case StillLearning:
			stillLearning++
		case Known:
			known++
		}
	}
	return stillLearning, known
}

func (s *Store) InLearningList(questionID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.learningIndex(questionID) >= 0
}

// ── Seen questions ──────────────────────────────────────────────────────────

// MarkSeen records exposure to questionID. Repeat calls are no-ops.
func (s *Store) MarkSeen(ctx context.Context, questionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.seen {
		if id == questionID {
			return nil
		}
	}
	next := append(append([]int{}, s.seen...), questionID)
	if err := s.saveJSON(ctx, KeySeenQuestions, next); err != nil {
		return err
	}
	s.seen = next
	return nil
}

// Seen returns the seen ids as a set.
func (s *Store) Seen() map[int]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]bool, len(s.seen))
	for _, id := range s.seen {
		out[id] = true
	}
	return out
}

// ── Entitlement ─────────────────────────────────────────────────────────────

func (s *Store) Entitlement() Entitlement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Entitlement{
		TrialStart:   s.trialStart,
		TrialDays:    s.trialDays,
		StorePremium: s.premium,
		PromoCode:    s.promo,
	}
}

// Now is the store's clock, used to evaluate the trial.
func (s *Store) Now() time.Time {
	return s.now()
}

// GrantEntitlement records the store-granted premium flag.
func (s *Store) GrantEntitlement(ctx context.Context, premium bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(ctx, KeyIsPremium, fmt.Sprintf("%t", premium)); err != nil {
		return fmt.Errorf("save %s: %w", KeyIsPremium, err)
	}
	s.premium = premium
	return nil
}

// RedeemPromoCode activates code when it is on the allow-list. Input is
// trimmed and uppercased first. Only one code may be active at a time.
func (s *Store) RedeemPromoCode(ctx context.Context, code string) error {
	normalized := normalizeCode(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.promo != "" {
		return ErrPromoAlreadyActive
	}
	if normalized == "" {
		return ErrPromoEmpty
	}
	if !s.promoCodes[normalized] {
		return ErrPromoInvalid
	}
	if err := s.kv.Set(ctx, KeyUsedPromoCode, normalized); err != nil {
		return fmt.Errorf("save %s: %w", KeyUsedPromoCode, err)
	}
	s.promo = normalized
	return nil
}

func (s *Store) ClearPromoCode(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, KeyUsedPromoCode); err != nil {
		return fmt.Errorf("remove %s: %w", KeyUsedPromoCode, err)
	}
	s.promo = ""
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ── Reset ───────────────────────────────────────────────────────────────────

// ResetAll wipes every collection, restores default settings, and restarts
// the trial clock.
func (s *Store) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Clear(ctx); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	s.results = nil
	s.learning = nil
	s.seen = nil
	s.settings = DefaultSettings()
	s.premium = false
	s.promo = ""
	return s.startTrial(ctx)
}
