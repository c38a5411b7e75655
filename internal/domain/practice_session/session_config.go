package practicesession

import "github.com/civicspath/backend/internal/domain/progress"

// Mode selects how a session's questions are drawn.
type Mode string

const (
	ModeStandard       Mode = "standard"
	ModeWrongReplay    Mode = "wrong-replay"
	ModeLearningReplay Mode = "learning-replay"
	ModeWeakReplay     Mode = "weak-replay"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeStandard, ModeWrongReplay, ModeLearningReplay, ModeWeakReplay:
		return true
	}
	return false
}

const (
	StandardSize = 20 // questions in a standard test
	SeniorSize   = 10 // questions in a senior-mode test
	ReplayCap    = 20 // most questions replayed from the learning list or weak areas
)

// SessionConfig holds the inputs for drawing a session. It is a snapshot:
// later changes to the learning list or settings do not affect a session
// already drawn from it.
type SessionConfig struct {
	Mode         Mode
	QuestionIDs  []int                   // wrong-replay, in presentation order
	LearningList []progress.LearningItem // learning-replay and weak-replay
	History      []progress.TestResult   // weak-replay
	SeniorMode   bool
}

// DefaultConfig returns a standard draw over the full bank.
func DefaultConfig() SessionConfig {
	return SessionConfig{Mode: ModeStandard}
}
