package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/repetify-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Token is the JWT token used for API authorization
	Token string `json:"token"`
}

// DeckRequest defines the payload for creating or updating a deck.
type DeckRequest struct {
	Name               string  `json:"name"                validate:"required,max=100"`
	Description        *string `json:"description"         validate:"omitempty,max=500"`
	OriginalLanguage   string  `json:"original_language"   validate:"required,max=50"`
	TranslatedLanguage string  `json:"translated_language" validate:"required,max=50"`
}

// DeckResponse is the API representation of a deck.
type DeckResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	Name               string    `json:"name"`
	Description        *string   `json:"description,omitempty"`
	OriginalLanguage   string    `json:"original_language"`
	TranslatedLanguage string    `json:"translated_language"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewDeckResponse converts a domain deck to its API representation.
func NewDeckResponse(deck *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:                 deck.ID,
		UserID:             deck.UserID,
		Name:               deck.Name,
		Description:        deck.Description,
		OriginalLanguage:   deck.OriginalLanguage,
		TranslatedLanguage: deck.TranslatedLanguage,
		CreatedAt:          deck.CreatedAt,
		UpdatedAt:          deck.UpdatedAt,
	}
}

// NewDeckListResponse converts a list of domain decks.
func NewDeckListResponse(decks []*domain.Deck) []DeckResponse {
	out := make([]DeckResponse, 0, len(decks))
	for _, deck := range decks {
		out = append(out, NewDeckResponse(deck))
	}
	return out
}

// CardRequest defines the payload for creating or updating a card.
type CardRequest struct {
	OriginalWord   string `json:"original_word"   validate:"required,max=500"`
	TranslatedWord string `json:"translated_word" validate:"required,max=500"`
}

// CardResponse is the API representation of a card.
// PreviousCorrectReview is null for cards never answered correctly.
type CardResponse struct {
	ID                    uuid.UUID  `json:"id"`
	DeckID                uuid.UUID  `json:"deck_id"`
	OriginalWord          string     `json:"original_word"`
	TranslatedWord        string     `json:"translated_word"`
	CorrectReviewStreak   int        `json:"correct_review_streak"`
	NextReviewDate        time.Time  `json:"next_review_date"`
	PreviousCorrectReview *time.Time `json:"previous_correct_review"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// NewCardResponse converts a domain card to its API representation.
func NewCardResponse(card *domain.Card) CardResponse {
	resp := CardResponse{
		ID:                  card.ID,
		DeckID:              card.DeckID,
		OriginalWord:        card.OriginalWord,
		TranslatedWord:      card.TranslatedWord,
		CorrectReviewStreak: card.CorrectReviewStreak,
		NextReviewDate:      card.NextReviewDate,
		CreatedAt:           card.CreatedAt,
		UpdatedAt:           card.UpdatedAt,
	}
	if !card.PreviousCorrectReview.IsZero() {
		prev := card.PreviousCorrectReview
		resp.PreviousCorrectReview = &prev
	}
	return resp
}

// NewCardListResponse converts a list of domain cards.
func NewCardListResponse(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, NewCardResponse(card))
	}
	return out
}

// CardPageResponse wraps a page of cards with its paging inputs.
type CardPageResponse struct {
	Cards    []CardResponse `json:"cards"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// CardCountResponse carries the number of cards in a deck.
type CardCountResponse struct {
	Count int64 `json:"count"`
}

// ReviewRequest defines the payload for submitting a review outcome.
type ReviewRequest struct {
	IsCorrect *bool `json:"is_correct" validate:"required"`
}

// DueCardsResponse is a cursor page of due cards. NextCursor is absent
// when the page was not full, meaning there is nothing further to fetch.
type DueCardsResponse struct {
	Cards      []CardResponse `json:"cards"`
	NextCursor *time.Time     `json:"next_cursor,omitempty"`
}
