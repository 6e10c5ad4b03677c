package srs

import (
	"testing"
	"time"

	"github.com/lexiread/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestApplyForgotResetsProgress(t *testing.T) {
	states := []State{
		{Ease: 2.5, IntervalDays: 1, Repetitions: 0, Status: model.StatusLearning},
		{Ease: 1.3, IntervalDays: 120, Repetitions: 9, Status: model.StatusKnown},
		{Ease: 3.1, IntervalDays: 365, Repetitions: 20, Status: model.StatusKnown},
	}

	for _, s := range states {
		result := Apply(s, RatingForgot, reviewTime)

		assert.Equal(t, 1, result.State.IntervalDays)
		assert.Equal(t, 0, result.State.Repetitions)
		assert.Equal(t, model.StatusLearning, result.State.Status)
		// Forgetting does not punish ease; only progress resets.
		assert.Equal(t, s.Ease, result.State.Ease)
		assert.Equal(t, reviewTime.AddDate(0, 0, 1), result.DueAt)
	}
}

func TestApplyHardGrowsIntervalAndLowersEase(t *testing.T) {
	s := State{Ease: 2.5, IntervalDays: 4, Repetitions: 2, Status: model.StatusLearning}

	result := Apply(s, RatingHard, reviewTime)

	assert.Equal(t, 10, result.State.IntervalDays) // round(4 * 2.5)
	assert.InDelta(t, 2.35, result.State.Ease, 1e-9)
	assert.Equal(t, 3, result.State.Repetitions)
}

func TestApplyEasyGrowsIntervalAndEase(t *testing.T) {
	s := State{Ease: 2.0, IntervalDays: 3, Repetitions: 1, Status: model.StatusLearning}

	result := Apply(s, RatingEasy, reviewTime)

	assert.Equal(t, 6, result.State.IntervalDays)
	assert.InDelta(t, 2.1, result.State.Ease, 1e-9)
	assert.Equal(t, 2, result.State.Repetitions)
	assert.Equal(t, reviewTime.AddDate(0, 0, 6), result.DueAt)
}

func TestApplyEaseNeverBelowFloor(t *testing.T) {
	s := State{Ease: InitialEase, IntervalDays: 1, Repetitions: 0, Status: model.StatusLearning}

	for i := 0; i < 50; i++ {
		result := Apply(s, RatingHard, reviewTime)
		s = result.State
		require.GreaterOrEqual(t, s.Ease, EaseFloor)
	}
	assert.InDelta(t, EaseFloor, s.Ease, 1e-9)
}

func TestApplyPromotesToKnown(t *testing.T) {
	s := NewState()

	var result Result
	for i := 0; i < 4; i++ {
		result = Apply(s, RatingEasy, reviewTime)
		s = result.State
	}

	// Four easy reviews push the interval past the promotion threshold.
	assert.GreaterOrEqual(t, s.IntervalDays, 21)
	assert.GreaterOrEqual(t, s.Repetitions, 4)
	assert.Equal(t, model.StatusKnown, s.Status)
}

func TestApplyKnownFallsBackToLearningOnForgot(t *testing.T) {
	s := State{Ease: 2.6, IntervalDays: 60, Repetitions: 8, Status: model.StatusKnown}

	result := Apply(s, RatingForgot, reviewTime)

	assert.Equal(t, model.StatusLearning, result.State.Status)
}

func TestApplyIntervalCapped(t *testing.T) {
	s := State{Ease: 3.0, IntervalDays: 300, Repetitions: 10, Status: model.StatusKnown}

	result := Apply(s, RatingEasy, reviewTime)

	assert.Equal(t, MaxIntervalDays, result.State.IntervalDays)
}

func TestApplyReplayAdvancesTwice(t *testing.T) {
	s := NewState()

	first := Apply(s, RatingEasy, reviewTime)
	second := Apply(first.State, RatingEasy, reviewTime)

	// Review submission is intentionally not idempotent.
	assert.NotEqual(t, first.State, second.State)
	assert.Equal(t, 2, second.State.Repetitions)
}

func TestApplyNormalizesUnseenState(t *testing.T) {
	result := Apply(State{}, RatingEasy, reviewTime)

	assert.Equal(t, model.StatusLearning, result.State.Status)
	assert.GreaterOrEqual(t, result.State.Ease, EaseFloor)
	assert.GreaterOrEqual(t, result.State.IntervalDays, 1)
}

func TestParseRating(t *testing.T) {
	for _, valid := range []string{"forgot", "hard", "easy"} {
		rating, err := ParseRating(valid)
		require.NoError(t, err)
		assert.Equal(t, Rating(valid), rating)
	}

	_, err := ParseRating("medium")
	assert.Error(t, err)
}
