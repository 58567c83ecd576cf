// Package deck implements the deck and card orchestration service.
//
// Every public operation follows the same shape: resolve the deck and
// check ownership, validate, stage mutations through the stores, commit
// once, and return a tagged result. Failures short-circuit the chain and
// the first failing step's status and message reach the caller unchanged.
package deck

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/repetify-api/internal/domain"
	"github.com/phrazzld/repetify-api/internal/result"
)

// Messages returned with failure outcomes. The deck message is shared by
// "deck absent" and "deck owned by someone else" so the two cases cannot
// be told apart by callers.
const (
	deckNotFoundMessage = "deck not found"
	cardNotFoundMessage = "card not found"
)

// DeckInput carries the caller-supplied fields for creating or updating a
// deck. Validation happens in the domain entity.
type DeckInput struct {
	Name               string
	Description        *string
	OriginalLanguage   string
	TranslatedLanguage string
}

// CardInput carries the caller-supplied fields for creating or updating a
// card.
type CardInput struct {
	OriginalWord   string
	TranslatedWord string
}

// Service provides deck and card operations for a single acting user.
// The userID parameter on every method identifies the authenticated
// caller; operations on decks the caller does not own fail with the same
// not-found outcome as operations on decks that do not exist.
type Service interface {
	// AddDeck creates a new deck owned by the acting user.
	// Fails with a conflict outcome if the user already has a deck with
	// the same name.
	AddDeck(ctx context.Context, userID uuid.UUID, input DeckInput) result.Result[*domain.Deck]

	// UpdateDeck replaces the deck's details.
	UpdateDeck(
		ctx context.Context,
		userID, deckID uuid.UUID,
		input DeckInput,
	) result.Result[result.Empty]

	// DeleteDeck removes the deck and, through the store's cascade, its cards.
	DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) result.Result[result.Empty]

	// GetDeckByID retrieves a single deck.
	GetDeckByID(ctx context.Context, userID, deckID uuid.UUID) result.Result[*domain.Deck]

	// GetUserDecks retrieves all decks owned by the acting user.
	GetUserDecks(ctx context.Context, userID uuid.UUID) result.Result[[]*domain.Deck]

	// AddCard creates a new card in the deck. The card starts unreviewed
	// and becomes due one day after creation.
	AddCard(
		ctx context.Context,
		userID, deckID uuid.UUID,
		input CardInput,
	) result.Result[*domain.Card]

	// UpdateCard replaces the card's word pair, leaving its review
	// schedule untouched.
	UpdateCard(
		ctx context.Context,
		userID, deckID, cardID uuid.UUID,
		input CardInput,
	) result.Result[result.Empty]

	// DeleteCard removes a card from the deck.
	DeleteCard(ctx context.Context, userID, deckID, cardID uuid.UUID) result.Result[result.Empty]

	// GetCardByID retrieves a single card from the deck.
	GetCardByID(ctx context.Context, userID, deckID, cardID uuid.UUID) result.Result[*domain.Card]

	// GetCards retrieves a page of the deck's cards. Pages are 1-based;
	// page and pageSize must both be at least 1.
	GetCards(
		ctx context.Context,
		userID, deckID uuid.UUID,
		page, pageSize int,
	) result.Result[[]*domain.Card]

	// GetCardCount returns the number of cards in the deck.
	GetCardCount(ctx context.Context, userID, deckID uuid.UUID) result.Result[int64]

	// GetCardsToReview retrieves up to pageSize cards due by the given
	// instant, ordered ascending by next review date. A non-nil cursor
	// resumes after the given next-review instant of a previous page.
	// pageSize must be at least 1; the check happens before any store
	// round-trip.
	GetCardsToReview(
		ctx context.Context,
		userID, deckID uuid.UUID,
		until time.Time,
		pageSize int,
		cursor *time.Time,
	) result.Result[[]*domain.Card]

	// ReviewCard records a review answer for a card and advances or
	// resets its schedule, returning the card's new state.
	ReviewCard(
		ctx context.Context,
		userID, deckID, cardID uuid.UUID,
		isCorrect bool,
	) result.Result[*domain.Card]
}
