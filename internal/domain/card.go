package domain

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field length limits for cards.
const (
	MaxWordLength = 500
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = errors.New("card deck ID cannot be empty")

	// ErrCardWordEmpty is returned when a card's original or translated word is empty.
	ErrCardWordEmpty = errors.New("card words cannot be empty")

	// ErrCardWordTooLong is returned when a card's original or translated word
	// exceeds MaxWordLength characters.
	ErrCardWordTooLong = errors.New("card words cannot exceed 500 characters")
)

// Card represents a single original/translated word pair with its own
// review schedule. A card belongs to exactly one deck and references it
// by ID only; deck→card traversal goes through the store, never through
// an in-memory collection.
type Card struct {
	ID             uuid.UUID `json:"id"`
	DeckID         uuid.UUID `json:"deck_id"`
	OriginalWord   string    `json:"original_word"`
	TranslatedWord string    `json:"translated_word"`

	// CorrectReviewStreak counts consecutive correct reviews. Never negative.
	CorrectReviewStreak int `json:"correct_review_streak"`

	// NextReviewDate is the instant at which the card becomes due.
	NextReviewDate time.Time `json:"next_review_date"`

	// PreviousCorrectReview is the instant of the last correct review.
	// The zero time means the card has never been answered correctly.
	PreviousCorrectReview time.Time `json:"previous_correct_review"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCard creates a new Card in the given deck. The card starts with a zero
// streak, becomes due one day after creation, and has never been answered
// correctly. Returns an error if validation fails.
func NewCard(deckID uuid.UUID, originalWord, translatedWord string, now time.Time) (*Card, error) {
	card := &Card{
		ID:                    uuid.New(),
		DeckID:                deckID,
		OriginalWord:          originalWord,
		TranslatedWord:        translatedWord,
		CorrectReviewStreak:   0,
		NextReviewDate:        now.AddDate(0, 0, 1),
		PreviousCorrectReview: time.Time{},
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if c.OriginalWord == "" || c.TranslatedWord == "" {
		return ErrCardWordEmpty
	}

	// Limits count characters, not bytes, so multibyte words are measured
	// the same as ASCII ones.
	if utf8.RuneCountInString(c.OriginalWord) > MaxWordLength ||
		utf8.RuneCountInString(c.TranslatedWord) > MaxWordLength {
		return ErrCardWordTooLong
	}

	if c.CorrectReviewStreak < 0 {
		return ErrNegativeStreak
	}

	return nil
}

// UpdateWords replaces the card's word pair and bumps the UpdatedAt
// timestamp. Returns an error if the new words are invalid, leaving the
// card unchanged.
func (c *Card) UpdateWords(originalWord, translatedWord string, now time.Time) error {
	origOriginal, origTranslated := c.OriginalWord, c.TranslatedWord
	c.OriginalWord = originalWord
	c.TranslatedWord = translatedWord

	if err := c.Validate(); err != nil {
		c.OriginalWord, c.TranslatedWord = origOriginal, origTranslated
		return err
	}

	c.UpdatedAt = now
	return nil
}

// WithReviewState returns a copy of the card carrying a new scheduling
// state. The streak invariant is enforced here independently of the
// scheduler: a negative streak is rejected, never clamped.
func (c *Card) WithReviewState(
	streak int,
	nextReview time.Time,
	previousCorrectReview time.Time,
	now time.Time,
) (*Card, error) {
	if streak < 0 {
		return nil, ErrNegativeStreak
	}

	updated := *c
	updated.CorrectReviewStreak = streak
	updated.NextReviewDate = nextReview
	updated.PreviousCorrectReview = previousCorrectReview
	updated.UpdatedAt = now
	return &updated, nil
}
