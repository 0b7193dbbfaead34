// internal/session/session.go
// Package session tracks practice targets and validates keyed attempts.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/ColonelBlimp/cwtrainer/internal/morse"
)

// Feedback delay defaults.
const (
	// DefaultAdvanceDelay is how long the correct state is shown before advancing
	DefaultAdvanceDelay = 800 * time.Millisecond
	// DefaultRetryDelay is how long the incorrect state is shown before retrying
	DefaultRetryDelay = 1500 * time.Millisecond
)

var (
	// ErrInvalidAdvanceDelay indicates the advance delay must be positive
	ErrInvalidAdvanceDelay = errors.New("advance delay must be positive")
	// ErrInvalidRetryDelay indicates the retry delay must be positive
	ErrInvalidRetryDelay = errors.New("retry delay must be positive")
	// ErrNoTargets indicates the target list must not be empty
	ErrNoTargets = errors.New("target list must not be empty")
)

// State is the session lifecycle state.
type State int

const (
	// StatePresenting means a target is shown and input is accepted
	StatePresenting State = iota
	// StateCorrect is the brief celebratory state before auto-advance
	StateCorrect
	// StateIncorrect is the brief error state before the retry reset
	StateIncorrect
	// StateComplete means the target sequence is exhausted
	StateComplete
)

// String returns the human-readable name of the state.
func (s State) String() string {
	switch s {
	case StatePresenting:
		return "PRESENTING"
	case StateCorrect:
		return "CORRECT"
	case StateIncorrect:
		return "INCORRECT"
	case StateComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// Validation drives the UI feedback for the current attempt.
type Validation int

const (
	// ValidationIdle means no feedback is active
	ValidationIdle Validation = iota
	// ValidationCorrect marks a correct attempt
	ValidationCorrect
	// ValidationIncorrect marks an incorrect attempt
	ValidationIncorrect
	// ValidationHinted means the expected code has been revealed
	ValidationHinted
)

// Config holds configuration for the session.
type Config struct {
	// AdvanceDelay before moving to the next target after a correct attempt (from config: advance_delay_ms)
	AdvanceDelay time.Duration
	// RetryDelay before re-presenting the same target after an incorrect attempt (from config: retry_delay_ms)
	RetryDelay time.Duration
}

// Event is a snapshot of the session emitted on every transition.
type Event struct {
	// State is the session lifecycle state
	State State
	// Validation is the feedback state for the current attempt
	Validation Validation
	// Target is the letter or word currently presented
	Target string
	// Keyed holds the letters of the target already keyed correctly
	Keyed string
	// Expected is the code the last attempt was compared against
	Expected string
	// Attempt is the code of the last completed attempt
	Attempt string
	// Index and Total are the progress counters (Index is 1-based)
	Index int
	// Total is the number of targets in the sequence
	Total int
}

// EventCallback receives session transitions. Must be non-blocking and fast.
type EventCallback func(event Event)

// Session advances through a sequence of targets, comparing each completed
// character code from the keyer against the current letter of the target.
// Multi-letter targets are keyed letter by letter.
type Session struct {
	config Config

	mu         sync.Mutex
	targets    []string
	index      int
	letter     int // cursor into the current target
	state      State
	validation Validation

	timer *time.Timer
	gen   uint64 // guards stale timer callbacks

	callback EventCallback
}

// New creates a session over the given targets.
func New(cfg Config, targets []string) (*Session, error) {
	if cfg.AdvanceDelay <= 0 {
		return nil, ErrInvalidAdvanceDelay
	}
	if cfg.RetryDelay <= 0 {
		return nil, ErrInvalidRetryDelay
	}
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	return &Session{
		config:  cfg,
		targets: targets,
		state:   StatePresenting,
	}, nil
}

// SetCallback sets the transition callback.
func (s *Session) SetCallback(cb EventCallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callback = cb
}

// Target returns the current target, or "" once the sequence is complete.
func (s *Session) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index >= len(s.targets) {
		return ""
	}
	return s.targets[s.index]
}

// Progress returns the 1-based index of the current target and the total.
func (s *Session) Progress() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.index + 1
	if index > len(s.targets) {
		index = len(s.targets)
	}
	return index, len(s.targets)
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Validation returns the current feedback state.
func (s *Session) Validation() Validation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validation
}

// expectedLocked returns the code for the letter the learner must key next.
// Callers must hold the mutex.
func (s *Session) expectedLocked() string {
	target := []rune(s.targets[s.index])
	if s.letter >= len(target) {
		return ""
	}
	code, ok := morse.Encode(target[s.letter])
	if !ok {
		// Unmapped characters cannot be keyed; skip them the same way word
		// encoding drops them.
		return ""
	}
	return code
}

// Submit validates a completed character code against the current letter.
// Input outside the Presenting state is ignored.
func (s *Session) Submit(code string) {
	s.mu.Lock()
	if s.state != StatePresenting {
		s.mu.Unlock()
		return
	}

	// Skip over any unmapped letters in the target.
	expected := s.expectedLocked()
	for expected == "" && s.letter < len([]rune(s.targets[s.index])) {
		s.letter++
		expected = s.expectedLocked()
	}

	if code == expected || expected == "" {
		s.letter++
		if expected == "" || s.letter >= len([]rune(s.targets[s.index])) {
			s.state = StateCorrect
			s.validation = ValidationCorrect
			s.armTimerLocked(s.config.AdvanceDelay, s.advance)
		} else {
			// Letter correct, word not finished: stay presenting.
			s.validation = ValidationIdle
		}
	} else {
		s.state = StateIncorrect
		s.validation = ValidationIncorrect
		s.armTimerLocked(s.config.RetryDelay, s.retry)
	}

	event := s.eventLocked()
	event.Attempt = code
	event.Expected = expected
	cb := s.callback
	s.mu.Unlock()

	if cb != nil {
		cb(event)
	}
}

// RequestHint reveals the expected code for the current target. It does not
// change the target or the correctness tracking, and is disabled once the
// attempt is already correct or the sequence is complete.
// Returns the full code for the target, or "" when hinting is disabled.
func (s *Session) RequestHint() string {
	s.mu.Lock()
	if s.state == StateCorrect || s.state == StateComplete {
		s.mu.Unlock()
		return ""
	}
	s.validation = ValidationHinted
	hint := morse.EncodeWord(s.targets[s.index])
	event := s.eventLocked()
	cb := s.callback
	s.mu.Unlock()

	if cb != nil {
		cb(event)
	}
	return hint
}

// SetTargets replaces the target sequence and restarts the session.
// This is the only way out of the Complete state.
func (s *Session) SetTargets(targets []string) error {
	if len(targets) == 0 {
		return ErrNoTargets
	}
	s.mu.Lock()
	s.cancelTimerLocked()
	s.targets = targets
	s.index = 0
	s.letter = 0
	s.state = StatePresenting
	s.validation = ValidationIdle
	event := s.eventLocked()
	cb := s.callback
	s.mu.Unlock()

	if cb != nil {
		cb(event)
	}
	return nil
}

// Close cancels any pending feedback timer. The session must not be used
// afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelTimerLocked()
}

// advance moves to the next target after the correct-feedback delay.
func (s *Session) advance(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.index++
	s.letter = 0
	s.validation = ValidationIdle
	if s.index >= len(s.targets) {
		s.state = StateComplete
	} else {
		s.state = StatePresenting
	}
	event := s.eventLocked()
	cb := s.callback
	s.mu.Unlock()

	if cb != nil {
		cb(event)
	}
}

// retry re-presents the same target after the incorrect-feedback delay.
func (s *Session) retry(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.state = StatePresenting
	s.validation = ValidationIdle
	event := s.eventLocked()
	cb := s.callback
	s.mu.Unlock()

	if cb != nil {
		cb(event)
	}
}

// armTimerLocked schedules a one-shot transition, replacing any pending one.
// Callers must hold the mutex.
func (s *Session) armTimerLocked(delay time.Duration, fn func(gen uint64)) {
	s.cancelTimerLocked()
	gen := s.gen
	s.timer = time.AfterFunc(delay, func() {
		fn(gen)
	})
}

// cancelTimerLocked stops any pending timer and invalidates its generation.
func (s *Session) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// eventLocked builds a snapshot of the current session state.
// Callers must hold the mutex.
func (s *Session) eventLocked() Event {
	event := Event{
		State:      s.state,
		Validation: s.validation,
		Total:      len(s.targets),
	}
	if s.index < len(s.targets) {
		event.Target = s.targets[s.index]
		target := []rune(s.targets[s.index])
		keyed := s.letter
		if keyed > len(target) {
			keyed = len(target)
		}
		event.Keyed = string(target[:keyed])
		event.Index = s.index + 1
	} else {
		event.Index = len(s.targets)
	}
	return event
}
