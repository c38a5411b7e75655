package speech

import (
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/civicspath/backend/internal/worker"
)

var (
	ErrUnavailable = errors.New("speech is not available on this platform")
	ErrEmptyText   = errors.New("nothing to speak")
)

// Speaker reads text aloud. Speak interrupts whatever is playing.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Stop()
}

type Unavailable struct{}

var _ Speaker = Unavailable{}

func (Unavailable) Speak(context.Context, string) error { return ErrUnavailable }
func (Unavailable) Stop()                               {}

// CommandSpeaker plays utterances one at a time through an external
// text-to-speech program such as espeak or say. The text is passed as the
// last argument.
type CommandSpeaker struct {
	command string
	args    []string
	pool    *worker.Pool[error]
	logger  *zap.Logger

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	playing string // job id of the utterance running now
}

var _ Speaker = (*CommandSpeaker)(nil)

func NewCommandSpeaker(logger *zap.Logger, command string, args ...string) (*CommandSpeaker, error) {
	if _, err := exec.LookPath(command); err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	s := &CommandSpeaker{
		command: command,
		args:    args,
		pool:    worker.NewPool[error](1, 4),
		logger:  logger,
	}
	go s.drain()
	return s, nil
}

func (s *CommandSpeaker) drain() {
	for r := range s.pool.Results() {
		s.mu.Lock()
		if s.playing == r.JobID {
			s.playing = ""
		}
		s.mu.Unlock()
		if r.Output != nil {
			s.logger.Warn("speech command failed", zap.String("utterance", r.JobID), zap.Error(r.Output))
		}
	}
}

// Speak stops the current utterance and queues text. It returns once the
// utterance is queued, not when it finishes.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	jobID := strconv.FormatUint(s.seq, 10)
	uctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.mu.Unlock()

	args := append(append([]string{}, s.args...), text)
	return s.pool.Submit(uctx, jobID, func(ctx context.Context) error {
		defer cancel()
		if ctx.Err() != nil {
			return nil
		}
		s.mu.Lock()
		s.playing = jobID
		s.mu.Unlock()

		err := exec.CommandContext(ctx, s.command, args...).Run()
		if ctx.Err() != nil {
			return nil // stopped
		}
		return err
	})
}

func (s *CommandSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Speaking reports whether an utterance is playing.
func (s *CommandSpeaker) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing != ""
}

func (s *CommandSpeaker) Close() {
	s.Stop()
	s.pool.Close()
}
