package voice

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

// kindOrder fixes the precedence in which command kinds are tried. An
// utterance matching several kinds resolves to the earliest one here.
var kindOrder = []Kind{
	KindTurnOn,
	KindTurnOff,
	KindSetBrightness,
	KindSetTemperature,
	KindGetStatus,
	KindListDevices,
}

func defaultPatterns() map[Kind][]*regexp.Regexp {
	compile := func(exprs ...string) []*regexp.Regexp {
		out := make([]*regexp.Regexp, len(exprs))
		for i, expr := range exprs {
			out[i] = regexp.MustCompile(expr)
		}
		return out
	}

	return map[Kind][]*regexp.Regexp{
		KindTurnOn: compile(
			`turn on (?:the )?(.+)`,
			`switch on (?:the )?(.+)`,
			`activate (?:the )?(.+)`,
			`start (?:the )?(.+)`,
		),
		KindTurnOff: compile(
			`turn off (?:the )?(.+)`,
			`switch off (?:the )?(.+)`,
			`deactivate (?:the )?(.+)`,
			`stop (?:the )?(.+)`,
			`shut down (?:the )?(.+)`,
		),
		KindSetBrightness: compile(
			`set (?:the )?(.+) brightness to (\d+)`,
			`dim (?:the )?(.+) to (\d+)`,
			`brighten (?:the )?(.+) to (\d+)`,
		),
		KindSetTemperature: compile(
			`set (?:the )?(.+) to (\d+) degrees?`,
			`change (?:the )?(.+) temperature to (\d+)`,
			`adjust (?:the )?(.+) to (\d+) degrees?`,
		),
		KindGetStatus: compile(
			`what is the status of (?:the )?(.+)`,
			`check (?:the )?(.+) status`,
			`how is (?:the )?(.+)`,
			`status of (?:the )?(.+)`,
		),
		KindListDevices: compile(
			`list (?:all )?devices`,
			`show (?:all )?devices`,
			`what devices (?:do (?:we|i) have|are available)`,
			`available devices`,
		),
	}
}

// Interpreter turns free-form utterances into structured commands by
// regular-expression matching. The pattern table can be extended at
// runtime; all methods are thread-safe.
type Interpreter struct {
	mu       sync.RWMutex
	patterns map[Kind][]*regexp.Regexp
	order    []Kind
}

// NewInterpreter creates an interpreter with the built-in pattern table.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		patterns: defaultPatterns(),
		order:    append([]Kind(nil), kindOrder...),
	}
}

// Interpret parses an utterance. The text is lowercased and trimmed,
// then matched against each kind's patterns in precedence order; the
// first match wins. Unmatched text yields a KindUnknown command whose
// single parameter is the normalised text.
func (it *Interpreter) Interpret(text string) Command {
	normalised := strings.ToLower(strings.TrimSpace(text))
	cmd := Command{
		Kind:       KindUnknown,
		Params:     []string{normalised},
		SourceText: normalised,
		Timestamp:  time.Now().UTC(),
	}
	if normalised == "" {
		return cmd
	}

	it.mu.RLock()
	defer it.mu.RUnlock()

	for _, kind := range it.order {
		for _, pattern := range it.patterns[kind] {
			if m := pattern.FindStringSubmatch(normalised); m != nil {
				cmd.Kind = kind
				cmd.Params = m[1:]
				return cmd
			}
		}
	}
	return cmd
}

// AddPattern appends a pattern to a kind, creating the kind if it is
// new. New kinds match after all built-in kinds. Returns an error if the
// expression does not compile.
func (it *Interpreter) AddPattern(kind Kind, expr string) error {
	re, err := regexp.Compile(expr)
	if err != nil {
		return fmt.Errorf("voice: invalid pattern %q: %w", expr, err)
	}

	it.mu.Lock()
	defer it.mu.Unlock()

	if _, exists := it.patterns[kind]; !exists {
		it.order = append(it.order, kind)
	}
	it.patterns[kind] = append(it.patterns[kind], re)
	return nil
}

// RemovePattern removes a pattern from a kind by its source expression.
// Returns ErrPatternNotFound if the kind or expression is not present.
func (it *Interpreter) RemovePattern(kind Kind, expr string) error {
	it.mu.Lock()
	defer it.mu.Unlock()

	patterns, exists := it.patterns[kind]
	if !exists {
		return ErrPatternNotFound
	}
	for i, re := range patterns {
		if re.String() == expr {
			it.patterns[kind] = append(patterns[:i], patterns[i+1:]...)
			return nil
		}
	}
	return ErrPatternNotFound
}

// Kinds returns the recognised command kinds in precedence order.
func (it *Interpreter) Kinds() []Kind {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return append([]Kind(nil), it.order...)
}
