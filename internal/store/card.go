package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/repetify-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card to the store.
	// Returns validation errors if the card data is invalid, and
	// ErrInvalidEntity if the referenced deck does not exist.
	Create(ctx context.Context, card *domain.Card) error

	// Update modifies an existing card, including its scheduling state.
	// Returns ErrCardNotFound if the card does not exist in the given deck.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card from the store by its (deck, card) ID pair.
	// Returns ErrCardNotFound if the card does not exist in the given deck.
	Delete(ctx context.Context, deckID, cardID uuid.UUID) error

	// GetByID retrieves a card by its (deck, card) ID pair.
	// Returns ErrCardNotFound if the card does not exist in the given deck.
	GetByID(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Card, error)

	// ListByDeck retrieves a page of the deck's cards ordered by creation
	// time. Pages are 1-based.
	ListByDeck(ctx context.Context, deckID uuid.UUID, page, pageSize int) ([]*domain.Card, error)

	// CountByDeck returns the number of cards in the deck.
	CountByDeck(ctx context.Context, deckID uuid.UUID) (int64, error)

	// ListDueForReview retrieves up to pageSize cards of the deck whose
	// next review date has reached until, ordered ascending by next review
	// date. A non-nil cursor restricts the result to cards strictly after
	// the cursor instant, resuming a previous page.
	//
	// The cursor key is the next review date alone. Cards sharing an
	// identical instant have no defined order relative to each other, so a
	// page boundary that splits such a tie can skip or repeat cards.
	// TODO: add the card ID as a secondary key to the ordering and cursor;
	// needs a composite cursor in the HTTP API.
	ListDueForReview(
		ctx context.Context,
		deckID uuid.UUID,
		until time.Time,
		pageSize int,
		cursor *time.Time,
	) ([]*domain.Card, error)

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through RunInTransaction.
	WithTx(tx *sql.Tx) CardStore
}
