// internal/keyer/keyer.go
// Package keyer converts timed press/release events into Morse symbols.
package keyer

import (
	"errors"
	"sync"
	"time"

	"github.com/ColonelBlimp/cwtrainer/internal/morse"
)

// Timing ratios relative to the dit unit.
const (
	// DefaultDitUnit is the base timing unit
	DefaultDitUnit = 150 * time.Millisecond
	// DefaultSymbolBoundary is the dit/dah decision threshold as a multiple of the dit unit
	// A press shorter than (dit_unit * boundary) is a dit, longer or equal is a dah
	DefaultSymbolBoundary = 1.5
	// DefaultGapRatio is the quiet period that ends a character, as a multiple of the dit unit
	DefaultGapRatio = 3.0
)

var (
	// ErrInvalidDitUnit indicates the dit unit must be positive
	ErrInvalidDitUnit = errors.New("dit unit must be positive")
	// ErrInvalidSymbolBoundary indicates the dit/dah boundary ratio must be positive
	ErrInvalidSymbolBoundary = errors.New("symbol boundary ratio must be positive")
	// ErrInvalidGapRatio indicates the completion gap ratio must be positive
	ErrInvalidGapRatio = errors.New("gap ratio must be positive")
)

// Config holds configuration for the keyer.
// All adjustable values come from the application config file.
type Config struct {
	// DitUnit is the base timing unit (from config: dit_unit_ms)
	DitUnit time.Duration
	// SymbolBoundary is the dit/dah threshold ratio (from config: symbol_boundary)
	SymbolBoundary float64
	// GapRatio is the quiet-period ratio that signals character completion (from config: gap_ratio)
	GapRatio float64
}

// SymbolCallback is called as each press is classified, for live feedback.
// Must be non-blocking and fast.
type SymbolCallback func(mark rune)

// CompleteCallback is called once the quiet period elapses after the last
// release, carrying the full accumulated code for the character.
// The buffer is not cleared: call Reset after handling the completion.
type CompleteCallback func(code string)

// Keyer is a single-character Morse input decoder. Presses are classified as
// dit or dah by duration; a cancellable quiet timer after each release detects
// the end of the character. At most one completion timer is alive at a time.
type Keyer struct {
	config Config

	mu         sync.Mutex
	pressStart time.Time
	buffer     []byte

	timer *time.Timer
	gen   uint64 // guards stale timer callbacks

	symbolCb   SymbolCallback
	completeCb CompleteCallback

	now func() time.Time
}

// New creates a keyer with the given configuration.
func New(cfg Config) (*Keyer, error) {
	if cfg.DitUnit <= 0 {
		return nil, ErrInvalidDitUnit
	}
	if cfg.SymbolBoundary <= 0 {
		return nil, ErrInvalidSymbolBoundary
	}
	if cfg.GapRatio <= 0 {
		return nil, ErrInvalidGapRatio
	}
	return &Keyer{
		config: cfg,
		now:    time.Now,
	}, nil
}

// SetSymbolCallback sets the live symbol callback.
func (k *Keyer) SetSymbolCallback(cb SymbolCallback) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.symbolCb = cb
}

// SetCompleteCallback sets the character completion callback.
func (k *Keyer) SetCompleteCallback(cb CompleteCallback) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.completeCb = cb
}

// Press records the start of a press. Any pending completion timer is
// cancelled: a press before the quiet period elapses continues the character.
func (k *Keyer) Press() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.cancelTimerLocked()
	k.pressStart = k.now()
}

// Release ends the current press, classifies it by duration and arms the
// completion timer. A release without a matching press is ignored.
func (k *Keyer) Release() {
	k.mu.Lock()

	if k.pressStart.IsZero() {
		// Stray release event
		k.mu.Unlock()
		return
	}

	duration := k.now().Sub(k.pressStart)
	k.pressStart = time.Time{}

	mark := k.classify(duration)
	k.buffer = append(k.buffer, byte(mark))
	cb := k.symbolCb

	k.armTimerLocked()
	k.mu.Unlock()

	if cb != nil {
		cb(mark)
	}
}

// classify maps a press duration to a dit or dah.
func (k *Keyer) classify(duration time.Duration) rune {
	threshold := time.Duration(float64(k.config.DitUnit) * k.config.SymbolBoundary)
	if duration < threshold {
		return morse.Dit
	}
	return morse.Dah
}

// armTimerLocked starts the completion timer, replacing any pending one.
// Callers must hold the mutex.
func (k *Keyer) armTimerLocked() {
	k.cancelTimerLocked()
	gen := k.gen
	gap := time.Duration(float64(k.config.DitUnit) * k.config.GapRatio)
	k.timer = time.AfterFunc(gap, func() {
		k.complete(gen)
	})
}

// cancelTimerLocked stops any pending completion timer and invalidates its
// generation so an already-fired callback becomes a no-op.
func (k *Keyer) cancelTimerLocked() {
	if k.timer != nil {
		k.timer.Stop()
		k.timer = nil
	}
	k.gen++
}

// complete fires when the quiet period elapses. The generation check discards
// callbacks that lost a race with Press or Reset.
func (k *Keyer) complete(gen uint64) {
	k.mu.Lock()
	if gen != k.gen || len(k.buffer) == 0 {
		k.mu.Unlock()
		return
	}
	k.timer = nil
	code := string(k.buffer)
	cb := k.completeCb
	k.mu.Unlock()

	if cb != nil {
		cb(code)
	}
}

// Buffer returns the accumulated code for the character in progress.
func (k *Keyer) Buffer() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return string(k.buffer)
}

// Pressed reports whether a press is currently active.
func (k *Keyer) Pressed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return !k.pressStart.IsZero()
}

// Reset cancels any pending timer, clears the buffer and drops any
// in-progress press. Safe to call at any time, including mid-press.
func (k *Keyer) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.cancelTimerLocked()
	k.buffer = k.buffer[:0]
	k.pressStart = time.Time{}
}

// Config returns the current configuration.
func (k *Keyer) Config() Config {
	return k.config
}
