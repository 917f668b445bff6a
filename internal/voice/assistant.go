package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hearthd/hearth-core/internal/device"
)

// Session defaults and the catalogue of supported configuration values.
const (
	DefaultWakeWords = "jarvis"
	DefaultModel     = "base"
)

// AvailableModels returns the speech model names a session may use.
func AvailableModels() []string {
	return []string{"tiny", "base", "small", "medium", "large"}
}

// AvailableWakeWords returns the wake word vocabulary.
func AvailableWakeWords() []string {
	return []string{
		"alexa", "americano", "blueberry", "bumblebee", "computer",
		"grapefruits", "grasshopper", "hey google", "hey siri", "jarvis",
		"ok google", "picovoice", "porcupine", "terminator",
	}
}

// Config holds per-session assistant settings. Zero values fall back to
// the defaults above.
type Config struct {
	WakeWords string `json:"wake_words"`
	Model     string `json:"model"`
}

// Status is the externally visible assistant state.
type Status struct {
	IsActive          bool   `json:"is_active"`
	IsListening       bool   `json:"is_listening"`
	WakeWords         string `json:"wake_words"`
	Model             string `json:"model"`
	AvailableCommands []Kind `json:"available_commands"`
}

// Deps wires the assistant's collaborators. NewRecorder may be nil, in
// which case sessions use a SimRecorder.
type Deps struct {
	Registry    *device.Registry
	Events      *EventLog
	NewRecorder RecorderFactory
	Logger      device.Logger
}

// Assistant owns the voice pipeline: a recorder yields utterances, the
// interpreter parses final ones into commands, and the dispatcher
// executes them against the registry. One listening session runs at a
// time; utterances flow through a single consumer goroutine, so commands
// are processed strictly in arrival order.
type Assistant struct {
	interpreter *Interpreter
	dispatcher  *Dispatcher
	events      *EventLog
	newRecorder RecorderFactory
	logger      device.Logger

	mu      sync.Mutex
	session *session
}

// session is one active listening run.
type session struct {
	cfg      Config
	recorder Recorder
	cancel   context.CancelFunc
	done     chan struct{}

	listenMu  sync.Mutex
	listening bool
}

func (s *session) setListening(v bool) {
	s.listenMu.Lock()
	s.listening = v
	s.listenMu.Unlock()
}

func (s *session) isListening() bool {
	s.listenMu.Lock()
	defer s.listenMu.Unlock()
	return s.listening
}

// NewAssistant creates an assistant. The registry and event log are
// required; the recorder factory and logger are optional.
func NewAssistant(deps Deps) *Assistant {
	logger := deps.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	factory := deps.NewRecorder
	if factory == nil {
		factory = func(string, string) (Recorder, error) { return NewSimRecorder(), nil }
	}

	dispatcher := NewDispatcher(deps.Registry)
	dispatcher.SetLogger(logger)

	return &Assistant{
		interpreter: NewInterpreter(),
		dispatcher:  dispatcher,
		events:      deps.Events,
		newRecorder: factory,
		logger:      logger,
	}
}

// Interpreter exposes the pattern table for runtime extension.
func (a *Assistant) Interpreter() *Interpreter { return a.interpreter }

// Start begins a listening session. The session ends when Stop is
// called or ctx is cancelled. Returns ErrAlreadyRunning if a session is
// active and ErrInvalidModel for an unsupported model name.
func (a *Assistant) Start(ctx context.Context, cfg Config) error {
	if cfg.WakeWords == "" {
		cfg.WakeWords = DefaultWakeWords
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if !validModel(cfg.Model) {
		return fmt.Errorf("%w: %q", ErrInvalidModel, cfg.Model)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		return ErrAlreadyRunning
	}

	recorder, err := a.newRecorder(cfg.WakeWords, cfg.Model)
	if err != nil {
		return fmt.Errorf("creating recorder: %w", err)
	}

	sessCtx, cancel := context.WithCancel(ctx)
	sess := &session{
		cfg:      cfg,
		recorder: recorder,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	a.session = sess

	go a.listen(sessCtx, sess)

	a.logger.Info("voice assistant started", "wake_words", cfg.WakeWords, "model", cfg.Model)
	a.events.Append(EventStatus,
		fmt.Sprintf("Voice assistant started. Say '%s' to activate.", cfg.WakeWords),
		map[string]any{"status": "active"})
	return nil
}

// Stop ends the active session and waits for its consumer goroutine to
// drain. Returns ErrNotRunning if no session is active.
func (a *Assistant) Stop() error {
	a.mu.Lock()
	sess := a.session
	a.session = nil
	a.mu.Unlock()

	if sess == nil {
		return ErrNotRunning
	}

	sess.cancel()
	if err := sess.recorder.Close(); err != nil {
		a.logger.Warn("recorder close failed", "error", err)
	}
	<-sess.done

	a.logger.Info("voice assistant stopped")
	a.events.Append(EventStatus, "Voice assistant stopped", map[string]any{"status": "stopped"})
	return nil
}

// Running reports whether a session is active.
func (a *Assistant) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session != nil
}

// Status returns the current assistant state. When stopped, the config
// fields are empty and no commands are advertised.
func (a *Assistant) Status() Status {
	a.mu.Lock()
	sess := a.session
	a.mu.Unlock()

	if sess == nil {
		return Status{AvailableCommands: []Kind{}}
	}
	return Status{
		IsActive:          true,
		IsListening:       sess.isListening(),
		WakeWords:         sess.cfg.WakeWords,
		Model:             sess.cfg.Model,
		AvailableCommands: a.interpreter.Kinds(),
	}
}

// ProcessText runs text through the command pipeline as if it were a
// final transcription, bypassing the recorder. Returns ErrNotRunning
// when no session is active.
func (a *Assistant) ProcessText(text string) (Result, error) {
	if !a.Running() {
		return Result{}, ErrNotRunning
	}
	return a.process(text), nil
}

// Inject feeds an utterance into the active session's recorder if it is
// a SimRecorder. It reports whether the utterance was accepted.
func (a *Assistant) Inject(u Utterance) bool {
	a.mu.Lock()
	sess := a.session
	a.mu.Unlock()

	if sess == nil {
		return false
	}
	sim, ok := sess.recorder.(*SimRecorder)
	if !ok {
		return false
	}
	return sim.Inject(u)
}

// listen is the session consumer. It is the only goroutine that reads
// the recorder, so utterances are interpreted and dispatched one at a
// time in order.
func (a *Assistant) listen(ctx context.Context, sess *session) {
	defer close(sess.done)

	for {
		u, err := sess.recorder.Listen(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, ErrRecorderClosed) {
				return
			}
			a.logger.Error("recorder error", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		if !u.Final {
			sess.setListening(true)
			a.events.Append(EventTranscriptionPartial, u.Text, map[string]any{"is_final": false})
			continue
		}

		a.events.Append(EventTranscriptionFinal, u.Text, map[string]any{"is_final": true})
		a.process(u.Text)
		sess.setListening(false)
	}
}

// process interprets and dispatches one utterance, recording a command
// event with the outcome.
func (a *Assistant) process(text string) Result {
	start := time.Now()
	cmd := a.interpreter.Interpret(text)
	result := a.dispatcher.Dispatch(cmd)
	elapsed := time.Since(start)

	a.events.Append(EventCommand, fmt.Sprintf("Command: %s", cmd.Kind), map[string]any{
		"type":          cmd.Kind,
		"params":        cmd.Params,
		"original_text": cmd.SourceText,
		"result":        result,
		"duration_ms":   elapsed.Milliseconds(),
	})

	a.logger.Info("voice command processed",
		"kind", cmd.Kind, "success", result.Success, "duration", elapsed)
	return result
}

func validModel(model string) bool {
	for _, m := range AvailableModels() {
		if m == model {
			return true
		}
	}
	return false
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
