package progress_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/civicspath/backend/internal/domain/progress"
	"github.com/civicspath/backend/internal/store"
)

var errBackend = errors.New("disk full")

// flakyKV wraps the memory KV and fails writes on demand, either all of
// them or only those touching failKey.
type flakyKV struct {
	*store.MemoryKV
	failWrites bool
	failKey    string
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	if f.failWrites || (f.failKey != "" && key == f.failKey) {
		return errBackend
	}
	return f.MemoryKV.Set(ctx, key, value)
}

func (f *flakyKV) Apply(ctx context.Context, b store.Batch) error {
	if f.failWrites {
		return errBackend
	}
	if _, ok := b.Set[f.failKey]; ok && f.failKey != "" {
		return errBackend
	}
	return f.MemoryKV.Apply(ctx, b)
}

func (f *flakyKV) Remove(ctx context.Context, key string) error {
	if f.failWrites {
		return errBackend
	}
	return f.MemoryKV.Remove(ctx, key)
}

func (f *flakyKV) Clear(ctx context.Context) error {
	if f.failWrites {
		return errBackend
	}
	return f.MemoryKV.Clear(ctx)
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

var start = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func openStore(t *testing.T, kv store.KV, opts ...progress.Option) *progress.Store {
	t.Helper()
	s, err := progress.Open(context.Background(), kv, opts...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func result(id string, answers ...progress.AnswerRecord) progress.TestResult {
	score := 0
	for _, a := range answers {
		if a.IsCorrect {
			score++
		}
	}
	return progress.TestResult{ID: id, Date: start, Score: score, TotalQuestions: len(answers), Answers: answers}
}

func TestRecordTestResult_BoundedHistory(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, store.NewMemory())

	for i := 1; i <= 15; i++ {
		if err := s.RecordTestResult(ctx, result(fmt.Sprintf("r%d", i))); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	got := s.TestResults()
	if len(got) != 10 {
		t.Fatalf("expected 10 results, got %d", len(got))
	}
	for i, r := range got {
		want := fmt.Sprintf("r%d", 15-i)
		if r.ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, r.ID)
		}
	}

	if _, err := s.TestResult("r3"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("evicted result should be gone, got %v", err)
	}
	if r, err := s.TestResult("r12"); err != nil || r.ID != "r12" {
		t.Errorf("expected r12, got %v %v", r.ID, err)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	c := &clock{t: start}
	s := openStore(t, kv, progress.WithClock(c.now))

	if err := s.RecordTestResult(ctx, result("a", progress.AnswerRecord{QuestionID: 4, SelectedAnswer: "x"})); err != nil {
		t.Fatal(err)
	}
	if err := s.AddToLearningList(ctx, 7); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkSeen(ctx, 7); err != nil {
		t.Fatal(err)
	}
	if err := s.GrantEntitlement(ctx, true); err != nil {
		t.Fatal(err)
	}

	c.t = start.Add(48 * time.Hour)
	reopened := openStore(t, kv, progress.WithClock(c.now))

	if len(reopened.TestResults()) != 1 {
		t.Errorf("expected 1 result after reopen")
	}
	if !reopened.InLearningList(7) || !reopened.Seen()[7] {
		t.Error("learning list and seen set should survive reopen")
	}
	ent := reopened.Entitlement()
	if !ent.StorePremium {
		t.Error("premium flag should survive reopen")
	}
	if !ent.TrialStart.Equal(start) {
		t.Errorf("trial start should be written once, got %v", ent.TrialStart)
	}

	raw, _ := kv.Get(ctx, progress.KeyIsPremium)
	if raw != "true" {
		t.Errorf("expected isPremium \"true\", got %q", raw)
	}
}

func TestOpen_CorruptData(t *testing.T) {
	kv := store.NewMemory()
	kv.Set(context.Background(), progress.KeyLearningList, "{not json")

	_, err := progress.Open(context.Background(), kv)
	if !errors.Is(err, progress.ErrCorruptData) {
		t.Errorf("expected ErrCorruptData, got %v", err)
	}
}

func TestLearningList(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: start}
	s := openStore(t, store.NewMemory(), progress.WithClock(c.now))

	s.AddToLearningList(ctx, 12)
	s.AddToLearningList(ctx, 12)
	s.AddToLearningList(ctx, 40)

	items := s.LearningList()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after duplicate add, got %d", len(items))
	}
	if items[0].Status != progress.StillLearning || items[0].LastReviewed != nil {
		t.Errorf("new item should be still-learning and unreviewed: %+v", items[0])
	}

	c.t = start.Add(time.Hour)
	if err := s.UpdateLearningStatus(ctx, 12, progress.Known); err != nil {
		t.Fatalf("update status: %v", err)
	}
	item := s.LearningItems(progress.Known)
	if len(item) != 1 || item[0].QuestionID != 12 {
		t.Fatalf("expected question 12 known, got %+v", item)
	}
	if item[0].LastReviewed == nil || !item[0].LastReviewed.Equal(c.t) {
		t.Errorf("expected lastReviewed %v, got %v", c.t, item[0].LastReviewed)
	}

	still, known := s.LearningCounts()
	if still != 1 || known != 1 {
		t.Errorf("expected 1/1, got %d/%d", still, known)
	}

	if err := s.UpdateLearningStatus(ctx, 99, progress.Known); !errors.Is(err, progress.ErrNotInLearningList) {
		t.Errorf("expected ErrNotInLearningList, got %v", err)
	}
	if err := s.UpdateLearningStatus(ctx, 12, "mastered"); !errors.Is(err, progress.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}

	if err := s.RemoveFromLearningList(ctx, 12); err != nil {
		t.Fatal(err)
	}
	if s.InLearningList(12) {
		t.Error("question 12 should be removed")
	}
	if err := s.RemoveFromLearningList(ctx, 12); err != nil {
		t.Errorf("removing an absent id should be a no-op, got %v", err)
	}
}

func TestMarkSeen_Idempotent(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := openStore(t, kv)

	s.MarkSeen(ctx, 3)
	s.MarkSeen(ctx, 3)
	s.MarkSeen(ctx, 5)

	raw, err := kv.Get(ctx, progress.KeySeenQuestions)
	if err != nil {
		t.Fatal(err)
	}
	if raw != "[3,5]" {
		t.Errorf("expected [3,5], got %s", raw)
	}
}

func TestWriteFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{MemoryKV: store.NewMemory()}
	s := openStore(t, kv)
	s.AddToLearningList(ctx, 1)

	kv.failWrites = true

	if err := s.RecordTestResult(ctx, result("x")); !errors.Is(err, errBackend) {
		t.Errorf("expected backend error, got %v", err)
	}
	if err := s.AddToLearningList(ctx, 2); !errors.Is(err, errBackend) {
		t.Errorf("expected backend error, got %v", err)
	}
	if err := s.UpdateLearningStatus(ctx, 1, progress.Known); !errors.Is(err, errBackend) {
		t.Errorf("expected backend error, got %v", err)
	}
	if err := s.GrantEntitlement(ctx, true); !errors.Is(err, errBackend) {
		t.Errorf("expected backend error, got %v", err)
	}
	if err := s.ResetAll(ctx); !errors.Is(err, errBackend) {
		t.Errorf("expected backend error, got %v", err)
	}

	if len(s.TestResults()) != 0 {
		t.Error("result must not be committed")
	}
	items := s.LearningList()
	if len(items) != 1 || items[0].Status != progress.StillLearning {
		t.Errorf("learning list must be unchanged, got %+v", items)
	}
	if s.Entitlement().StorePremium {
		t.Error("premium must not be committed")
	}
}

func TestResetAll(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	c := &clock{t: start}
	s := openStore(t, kv, progress.WithClock(c.now))

	s.RecordTestResult(ctx, result("a"))
	s.AddToLearningList(ctx, 1)
	s.MarkSeen(ctx, 1)
	s.UpdateSettings(ctx, []byte(`{"theme":"dark","seniorMode":true}`))
	s.RedeemPromoCode(ctx, "FREEUSCIS")

	c.t = start.Add(30 * 24 * time.Hour)
	if err := s.ResetAll(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if len(s.TestResults()) != 0 || len(s.LearningList()) != 0 || len(s.Seen()) != 0 {
		t.Error("collections should be empty after reset")
	}
	if s.Settings() != progress.DefaultSettings() {
		t.Errorf("settings should be defaults, got %+v", s.Settings())
	}
	ent := s.Entitlement()
	if ent.Premium() {
		t.Error("premium should be cleared")
	}
	if !ent.TrialStart.Equal(c.t) {
		t.Errorf("trial should restart at %v, got %v", c.t, ent.TrialStart)
	}

	reopened := openStore(t, kv, progress.WithClock(c.now))
	if !reopened.Entitlement().TrialStart.Equal(c.t) {
		t.Error("restarted trial should be persisted")
	}
}

func TestTestResultHelpers(t *testing.T) {
	r := result("r",
		progress.AnswerRecord{QuestionID: 9, IsCorrect: false},
		progress.AnswerRecord{QuestionID: 2, IsCorrect: true},
		progress.AnswerRecord{QuestionID: 5, IsCorrect: false},
	)
	ids := r.IncorrectIDs()
	if len(ids) != 2 || ids[0] != 9 || ids[1] != 5 {
		t.Errorf("expected [9 5], got %v", ids)
	}

	r.Accuracy = 60
	if !r.Passed() {
		t.Error("60% should pass")
	}
	r.Accuracy = 59
	if r.Passed() {
		t.Error("59% should fail")
	}
}
