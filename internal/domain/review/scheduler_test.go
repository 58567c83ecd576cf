package review

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/repetify-api/internal/domain"
)

// fixedClock always returns the same instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newTestCard(t *testing.T, streak int, previousCorrect time.Time) *domain.Card {
	t.Helper()

	created := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	card, err := domain.NewCard(uuid.New(), "hund", "dog", created)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	card, err = card.WithReviewState(streak, card.NextReviewDate, previousCorrect, created)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return card
}

func TestUpdateReviewCorrect(t *testing.T) {
	t.Parallel() // Enable parallel execution
	reviewedAt := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	scheduler := NewScheduler(fixedClock{now: reviewedAt})

	lastCorrect := reviewedAt.AddDate(0, 0, -3)
	card := newTestCard(t, 3, lastCorrect)

	updated, err := scheduler.UpdateReview(card, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if updated.CorrectReviewStreak != 4 {
		t.Errorf("Expected streak 4, got %d", updated.CorrectReviewStreak)
	}

	// The interval equals the new streak in days.
	wantNext := reviewedAt.AddDate(0, 0, 4)
	if !updated.NextReviewDate.Equal(wantNext) {
		t.Errorf("Expected next review %v, got %v", wantNext, updated.NextReviewDate)
	}

	if !updated.PreviousCorrectReview.Equal(reviewedAt) {
		t.Errorf("Expected previous correct review %v, got %v",
			reviewedAt, updated.PreviousCorrectReview)
	}

	// The input card is not modified.
	if card.CorrectReviewStreak != 3 {
		t.Errorf("Expected input card unchanged, got streak %d", card.CorrectReviewStreak)
	}
}

func TestUpdateReviewIncorrect(t *testing.T) {
	t.Parallel() // Enable parallel execution
	reviewedAt := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	scheduler := NewScheduler(fixedClock{now: reviewedAt})

	lastCorrect := reviewedAt.AddDate(0, 0, -5)
	card := newTestCard(t, 5, lastCorrect)

	updated, err := scheduler.UpdateReview(card, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if updated.CorrectReviewStreak != 0 {
		t.Errorf("Expected streak reset to 0, got %d", updated.CorrectReviewStreak)
	}

	wantNext := reviewedAt.AddDate(0, 0, 1)
	if !updated.NextReviewDate.Equal(wantNext) {
		t.Errorf("Expected next review %v, got %v", wantNext, updated.NextReviewDate)
	}

	// An incorrect answer leaves the last correct review untouched.
	if !updated.PreviousCorrectReview.Equal(lastCorrect) {
		t.Errorf("Expected previous correct review %v, got %v",
			lastCorrect, updated.PreviousCorrectReview)
	}
}

func TestUpdateReviewFirstCorrectAnswer(t *testing.T) {
	t.Parallel() // Enable parallel execution
	reviewedAt := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	scheduler := NewScheduler(fixedClock{now: reviewedAt})

	// A card never answered correctly carries the zero time.
	card := newTestCard(t, 0, time.Time{})

	updated, err := scheduler.UpdateReview(card, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if updated.CorrectReviewStreak != 1 {
		t.Errorf("Expected streak 1, got %d", updated.CorrectReviewStreak)
	}
	wantNext := reviewedAt.AddDate(0, 0, 1)
	if !updated.NextReviewDate.Equal(wantNext) {
		t.Errorf("Expected next review %v, got %v", wantNext, updated.NextReviewDate)
	}
	if !updated.PreviousCorrectReview.Equal(reviewedAt) {
		t.Errorf("Expected previous correct review %v, got %v",
			reviewedAt, updated.PreviousCorrectReview)
	}
}

func TestUpdateReviewIncorrectNeverCorrect(t *testing.T) {
	t.Parallel() // Enable parallel execution
	reviewedAt := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	scheduler := NewScheduler(fixedClock{now: reviewedAt})

	card := newTestCard(t, 0, time.Time{})

	updated, err := scheduler.UpdateReview(card, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !updated.PreviousCorrectReview.IsZero() {
		t.Errorf("Expected previous correct review to stay unset, got %v",
			updated.PreviousCorrectReview)
	}
}

func TestUpdateReviewNilCard(t *testing.T) {
	t.Parallel() // Enable parallel execution
	scheduler := NewScheduler(fixedClock{now: time.Now()})

	if _, err := scheduler.UpdateReview(nil, true); err != ErrNilCard {
		t.Errorf("Expected error %v, got %v", ErrNilCard, err)
	}
}

func TestNewSchedulerNilClock(t *testing.T) {
	t.Parallel() // Enable parallel execution
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil clock")
		}
	}()
	NewScheduler(nil)
}
