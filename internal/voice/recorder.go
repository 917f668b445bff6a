package voice

import "context"

// Utterance is a piece of transcribed speech. Partial utterances carry
// in-progress transcription text; only final utterances are interpreted
// as commands.
type Utterance struct {
	Text  string
	Final bool
}

// Recorder captures speech and yields transcribed utterances. The
// speech-to-text engine behind it is opaque to the assistant.
type Recorder interface {
	// Listen blocks until the next utterance is available, the recorder
	// is closed, or ctx is cancelled.
	Listen(ctx context.Context) (Utterance, error)
	Close() error
}

// RecorderFactory builds a recorder for a listening session. The wake
// words and model come from the session configuration.
type RecorderFactory func(wakeWords, model string) (Recorder, error)

// SimRecorder is an in-process recorder fed by Inject. It stands in for
// a real microphone pipeline in tests and in installations without an
// audio stack.
type SimRecorder struct {
	utterances chan Utterance
	done       chan struct{}
}

// NewSimRecorder creates a simulated recorder with a small input buffer.
func NewSimRecorder() *SimRecorder {
	return &SimRecorder{
		utterances: make(chan Utterance, 16),
		done:       make(chan struct{}),
	}
}

// Inject queues an utterance as if it had been spoken. Returns false if
// the recorder is closed or its buffer is full.
func (s *SimRecorder) Inject(u Utterance) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.utterances <- u:
		return true
	default:
		return false
	}
}

// Listen implements Recorder.
func (s *SimRecorder) Listen(ctx context.Context) (Utterance, error) {
	select {
	case u := <-s.utterances:
		return u, nil
	case <-s.done:
		return Utterance{}, ErrRecorderClosed
	case <-ctx.Done():
		return Utterance{}, ctx.Err()
	}
}

// Close implements Recorder. Close is idempotent.
func (s *SimRecorder) Close() error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	return nil
}
