// Package review implements the card review scheduling algorithm.
//
// The rule is deliberately linear: the interval after a correct answer is
// the new streak in days, uncapped, with no ease factor. An incorrect
// answer resets the streak and schedules the card for tomorrow.
package review

import (
	"errors"
	"time"

	"github.com/phrazzld/repetify-api/internal/domain"
)

// Common errors
var (
	// ErrNilCard is returned when a nil card is passed to the scheduler.
	ErrNilCard = errors.New("card cannot be nil")
)

// Scheduler computes a card's next scheduling state from a review outcome.
type Scheduler interface {
	// UpdateReview returns a copy of the card with its streak, next review
	// date and previous correct review advanced (or reset) according to
	// whether the answer was correct. The input card is not modified.
	UpdateReview(card *domain.Card, isCorrect bool) (*domain.Card, error)
}

// defaultScheduler is the standard implementation of the Scheduler interface.
type defaultScheduler struct {
	clock domain.Clock
}

// NewScheduler creates a Scheduler using the given clock. The clock is read
// exactly once per UpdateReview call, so a single invocation is
// deterministic even if the system clock is not monotonic across calls.
func NewScheduler(clock domain.Clock) Scheduler {
	if clock == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("clock cannot be nil")
	}

	return &defaultScheduler{clock: clock}
}

// UpdateReview implements the Scheduler interface.
func (s *defaultScheduler) UpdateReview(card *domain.Card, isCorrect bool) (*domain.Card, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	now := s.clock.Now()

	if isCorrect {
		streak := card.CorrectReviewStreak + 1
		return card.WithReviewState(streak, nextReviewDate(streak, now), now, now)
	}

	// Incorrect answer: reset the streak and review again tomorrow.
	// The previous correct review is left untouched.
	return card.WithReviewState(0, now.AddDate(0, 0, 1), card.PreviousCorrectReview, now)
}

// nextReviewDate spaces reviews linearly with the streak: one day per
// consecutive correct answer, without an upper bound. Large streaks
// produce far-future dates.
func nextReviewDate(streak int, now time.Time) time.Time {
	return now.AddDate(0, 0, streak)
}
