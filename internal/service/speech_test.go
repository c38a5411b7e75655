package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/civicspath/backend/internal/service"
	"github.com/civicspath/backend/internal/speech"
)

type recordingSpeaker struct {
	spoken  []string
	stopped int
}

func (r *recordingSpeaker) Speak(_ context.Context, text string) error {
	r.spoken = append(r.spoken, text)
	return nil
}

func (r *recordingSpeaker) Stop() { r.stopped++ }

func TestSpeech_RespectsAudioSetting(t *testing.T) {
	ctx := context.Background()
	ps := openStore(t)
	rec := &recordingSpeaker{}
	ss := service.NewSpeechService(ps, rec)

	spoken, err := ss.Speak(ctx, "What is the capital of the United States?")
	if err != nil || !spoken {
		t.Fatalf("expected speech with audio enabled, got %v %v", spoken, err)
	}

	ps.UpdateSettings(ctx, []byte(`{"audioEnabled":false}`))
	spoken, err = ss.Speak(ctx, "muted")
	if err != nil || spoken {
		t.Errorf("expected no speech with audio disabled, got %v %v", spoken, err)
	}
	if len(rec.spoken) != 1 {
		t.Errorf("expected one utterance, got %v", rec.spoken)
	}

	ss.Stop()
	if rec.stopped != 1 {
		t.Errorf("expected stop to reach the speaker")
	}
}

func TestSpeech_Unavailable(t *testing.T) {
	ss := service.NewSpeechService(openStore(t), speech.Unavailable{})
	if _, err := ss.Speak(context.Background(), "hello"); !errors.Is(err, speech.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
