// Package srs implements the SM-2 family scheduler that tracks per-word
// recall strength. Apply is pure; all persistence happens in the callers.
package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/lexiread/api/internal/model"
)

// Rating is the ternary review outcome.
type Rating string

const (
	RatingForgot Rating = "forgot"
	RatingHard   Rating = "hard"
	RatingEasy   Rating = "easy"
)

const (
	// EaseFloor is the minimum easiness factor; no run of hard reviews can
	// push ease below it.
	EaseFloor = 1.3

	// InitialEase is the easiness factor for a word's first review.
	InitialEase = 2.5

	easeStepDown = 0.15
	easeStepUp   = 0.1

	// MaxIntervalDays caps the growth of review intervals.
	MaxIntervalDays = 365

	// A learning word is promoted to known once its interval and repetition
	// count both clear these thresholds.
	knownIntervalDays = 21
	knownMinReps      = 4
)

// State is the scheduler's view of one word. Zero-ish defaults are normalized
// by Apply, so a lazily created row can start from NewState.
type State struct {
	Ease         float64
	IntervalDays int
	Repetitions  int
	Status       string
}

// NewState is the state of a word before its first review.
func NewState() State {
	return State{
		Ease:         InitialEase,
		IntervalDays: 1,
		Repetitions:  0,
		Status:       model.StatusUnseen,
	}
}

// ParseRating maps a request-supplied rating string, failing on anything
// outside the ternary set.
func ParseRating(s string) (Rating, error) {
	switch Rating(s) {
	case RatingForgot, RatingHard, RatingEasy:
		return Rating(s), nil
	}
	return "", fmt.Errorf("invalid rating: %q", s)
}

// Result is the outcome of applying one review.
type Result struct {
	State State
	DueAt time.Time
}

// Apply advances the state by one review. Deterministic and side-effect
// free. Replaying the same rating advances the state again; review
// submission is intentionally not idempotent.
func Apply(s State, rating Rating, now time.Time) Result {
	if s.Ease < EaseFloor {
		s.Ease = InitialEase
	}
	if s.IntervalDays < 1 {
		s.IntervalDays = 1
	}
	if s.Status == "" || s.Status == model.StatusUnseen {
		s.Status = model.StatusLearning
	}

	switch rating {
	case RatingForgot:
		// Ease is deliberately left untouched; only progress resets.
		s.IntervalDays = 1
		s.Repetitions = 0
		s.Status = model.StatusLearning

	case RatingHard:
		s.IntervalDays = nextInterval(s.IntervalDays, s.Ease)
		s.Ease = math.Max(EaseFloor, s.Ease-easeStepDown)
		s.Repetitions++

	case RatingEasy:
		s.IntervalDays = nextInterval(s.IntervalDays, s.Ease)
		s.Ease += easeStepUp
		s.Repetitions++
	}

	if s.Status == model.StatusLearning &&
		s.IntervalDays >= knownIntervalDays &&
		s.Repetitions >= knownMinReps {
		s.Status = model.StatusKnown
	}

	return Result{
		State: s,
		DueAt: now.AddDate(0, 0, s.IntervalDays),
	}
}

func nextInterval(days int, ease float64) int {
	next := int(math.Round(float64(days) * ease))
	if next < 1 {
		next = 1
	}
	if next > MaxIntervalDays {
		next = MaxIntervalDays
	}
	return next
}
