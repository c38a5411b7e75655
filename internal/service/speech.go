// internal/service/speech.go
package service

import (
	"context"

	"github.com/civicspath/backend/internal/domain/progress"
	"github.com/civicspath/backend/internal/speech"
)

// SpeechService reads prompts aloud when audio is enabled in settings.
type SpeechService struct {
	progress *progress.Store
	speaker  speech.Speaker
}

func NewSpeechService(store *progress.Store, speaker speech.Speaker) *SpeechService {
	return &SpeechService{progress: store, speaker: speaker}
}

// Speak reports whether text was handed to the speaker. With audio
// disabled it does nothing.
func (ss *SpeechService) Speak(ctx context.Context, text string) (bool, error) {
	if !ss.progress.Settings().AudioEnabled {
		return false, nil
	}
	if err := ss.speaker.Speak(ctx, text); err != nil {
		return false, err
	}
	return true, nil
}

func (ss *SpeechService) Stop() {
	ss.speaker.Stop()
}
