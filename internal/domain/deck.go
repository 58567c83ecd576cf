package domain

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field length limits for decks.
const (
	MaxDeckNameLength    = 100
	MaxDescriptionLength = 500
	MaxLanguageLength    = 50
)

// Deck-specific validation errors
var (
	// ErrDeckIDEmpty is returned when a deck ID is empty or nil.
	ErrDeckIDEmpty = errors.New("deck ID cannot be empty")

	// ErrDeckUserIDEmpty is returned when a deck's user ID is empty or nil.
	ErrDeckUserIDEmpty = errors.New("deck user ID cannot be empty")

	// ErrDeckNameEmpty is returned when a deck's name is empty.
	ErrDeckNameEmpty = errors.New("deck name cannot be empty")

	// ErrDeckNameTooLong is returned when a deck's name exceeds MaxDeckNameLength.
	ErrDeckNameTooLong = errors.New("deck name cannot exceed 100 characters")

	// ErrDeckDescriptionTooLong is returned when a deck's description exceeds
	// MaxDescriptionLength.
	ErrDeckDescriptionTooLong = errors.New("deck description cannot exceed 500 characters")

	// ErrDeckLanguageEmpty is returned when either language tag is empty.
	ErrDeckLanguageEmpty = errors.New("deck languages cannot be empty")

	// ErrDeckLanguageTooLong is returned when either language tag exceeds
	// MaxLanguageLength.
	ErrDeckLanguageTooLong = errors.New("deck languages cannot exceed 50 characters")
)

// Deck represents a named, user-owned collection of cards sharing a
// language pair. A deck does not hold its cards; they are looked up by
// deck ID through the card store.
type Deck struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	UserID      uuid.UUID `json:"user_id"`

	// OriginalLanguage and TranslatedLanguage describe the deck's word pair
	// direction, e.g. "english" → "spanish".
	OriginalLanguage   string `json:"original_language"`
	TranslatedLanguage string `json:"translated_language"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDeck creates a new Deck owned by the given user.
// It generates a new UUID for the deck ID and sets the timestamps.
// Returns an error if validation fails.
func NewDeck(
	userID uuid.UUID,
	name string,
	description *string,
	originalLanguage, translatedLanguage string,
	now time.Time,
) (*Deck, error) {
	deck := &Deck{
		ID:                 uuid.New(),
		Name:               name,
		Description:        description,
		UserID:             userID,
		OriginalLanguage:   originalLanguage,
		TranslatedLanguage: translatedLanguage,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
// Returns an error if any field fails validation.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if d.UserID == uuid.Nil {
		return ErrDeckUserIDEmpty
	}

	if d.Name == "" {
		return ErrDeckNameEmpty
	}

	// Limits count characters, not bytes, so multibyte names are measured
	// the same as ASCII ones.
	if utf8.RuneCountInString(d.Name) > MaxDeckNameLength {
		return ErrDeckNameTooLong
	}

	if d.Description != nil && utf8.RuneCountInString(*d.Description) > MaxDescriptionLength {
		return ErrDeckDescriptionTooLong
	}

	if d.OriginalLanguage == "" || d.TranslatedLanguage == "" {
		return ErrDeckLanguageEmpty
	}

	if utf8.RuneCountInString(d.OriginalLanguage) > MaxLanguageLength ||
		utf8.RuneCountInString(d.TranslatedLanguage) > MaxLanguageLength {
		return ErrDeckLanguageTooLong
	}

	return nil
}

// UpdateDetails replaces the deck's mutable fields and bumps the UpdatedAt
// timestamp. Returns an error if the new values are invalid, leaving the
// deck unchanged.
func (d *Deck) UpdateDetails(
	name string,
	description *string,
	originalLanguage, translatedLanguage string,
	now time.Time,
) error {
	orig := *d
	d.Name = name
	d.Description = description
	d.OriginalLanguage = originalLanguage
	d.TranslatedLanguage = translatedLanguage

	if err := d.Validate(); err != nil {
		*d = orig
		return err
	}

	d.UpdatedAt = now
	return nil
}
