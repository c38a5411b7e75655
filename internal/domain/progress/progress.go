package progress

import (
	"errors"
	"time"

	"github.com/civicspath/backend/internal/domain/officials"
)

// Persistence keys. Encodings follow the mobile app so existing device data
// stays readable.
const (
	KeyTestResults    = "testResults"
	KeyLearningList   = "learningList"
	KeySeenQuestions  = "seenQuestions"
	KeySettings       = "settings"
	KeyTrialStartDate = "trialStartDate"
	KeyIsPremium      = "isPremium"
	KeyUsedPromoCode  = "usedPromoCode"
)

const (
	// MaxTestResults bounds the stored history; the oldest result is evicted.
	MaxTestResults = 10
	// PassAccuracy is the lowest accuracy percentage counted as a pass.
	PassAccuracy     = 60
	DefaultTrialDays = 7
)

var (
	ErrNotInLearningList = errors.New("question is not in the learning list")
	ErrInvalidStatus     = errors.New("invalid learning status")
	ErrInvalidSettings   = errors.New("invalid settings")
	ErrCorruptData       = errors.New("corrupt stored data")

	// Promo failures carry the reason shown to the user.
	ErrPromoEmpty         = errors.New("please enter a promo code")
	ErrPromoAlreadyActive = errors.New("a promo code is already active")
	ErrPromoInvalid       = errors.New("invalid promo code")
)

// AnswerRecord is one submitted answer within a test.
type AnswerRecord struct {
	QuestionID int `json:"questionId"`
	// SelectedAnswer joins multiple selections with ", ".
	SelectedAnswer  string   `json:"selectedAnswer"`
	SelectedAnswers []string `json:"selectedAnswers,omitempty"`
	IsCorrect       bool     `json:"isCorrect"`
}

// TestResult is the immutable outcome of a completed session.
type TestResult struct {
	ID             string         `json:"id"`
	Date           time.Time      `json:"date"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	Accuracy       int            `json:"accuracy"`  // percent, rounded
	TimeSpent      int            `json:"timeSpent"` // seconds
	Answers        []AnswerRecord `json:"answers"`
}

func (r TestResult) Passed() bool {
	return r.Accuracy >= PassAccuracy
}

// IncorrectIDs returns the ids answered wrongly, in answer order.
func (r TestResult) IncorrectIDs() []int {
	var ids []int
	for _, a := range r.Answers {
		if !a.IsCorrect {
			ids = append(ids, a.QuestionID)
		}
	}
	return ids
}

type LearningStatus string

const (
	StillLearning LearningStatus = "still-learning"
	Known         LearningStatus = "known"
)

func (s LearningStatus) Valid() bool {
	return s == StillLearning || s == Known
}

// LearningItem is a bookmarked question.
type LearningItem struct {
	QuestionID   int            `json:"questionId"`
	Status       LearningStatus `json:"status"`
	AddedAt      time.Time      `json:"addedAt"`
	LastReviewed *time.Time     `json:"lastReviewed,omitempty"`
}

// Settings are the user preferences. Fields absent from stored data keep
// their defaults.
type Settings struct {
	Theme               string            `json:"theme"`
	FontSize            string            `json:"fontSize"`
	AudioEnabled        bool              `json:"audioEnabled"`
	AudioAutoplay       bool              `json:"audioAutoplay"`
	ReminderTime        *string           `json:"reminderTime"`
	SelectedState       *string           `json:"selectedState,omitempty"`
	SeniorMode          bool              `json:"seniorMode,omitempty"`
	OnboardingCompleted bool              `json:"onboardingCompleted,omitempty"`
	CustomOfficials     *officials.Custom `json:"customOfficials,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:         "auto",
		FontSize:      "normal",
		AudioEnabled:  true,
		AudioAutoplay: false,
	}
}

// State returns the selected state, or "" when none is set.
func (s Settings) State() string {
	if s.SelectedState == nil {
		return ""
	}
	return *s.SelectedState
}

func (s Settings) clone() Settings {
	out := s
	if s.ReminderTime != nil {
		v := *s.ReminderTime
		out.ReminderTime = &v
	}
	if s.SelectedState != nil {
		v := *s.SelectedState
		out.SelectedState = &v
	}
	if s.CustomOfficials != nil {
		v := *s.CustomOfficials
		out.CustomOfficials = &v
	}
	return out
}

// Entitlement is the access state derived from trial, store purchase and
// promo code.
type Entitlement struct {
	TrialStart   time.Time
	TrialDays    int
	StorePremium bool
	PromoCode    string
}

// Premium reports whether full access is unlocked.
func (e Entitlement) Premium() bool {
	return e.StorePremium || e.PromoCode != ""
}

// TrialDaysRemaining counts whole days left in the trial at now.
func (e Entitlement) TrialDaysRemaining(now time.Time) int {
	elapsed := int(now.Sub(e.TrialStart) / (24 * time.Hour))
	if elapsed < 0 {
		elapsed = 0
	}
	left := e.TrialDays - elapsed
	if left < 0 {
		return 0
	}
	return left
}

// TrialExpired is false whenever premium is effective.
func (e Entitlement) TrialExpired(now time.Time) bool {
	return !e.Premium() && e.TrialDaysRemaining(now) == 0
}

// HasAccess reports whether gated features are available at now.
func (e Entitlement) HasAccess(now time.Time) bool {
	return !e.TrialExpired(now)
}
