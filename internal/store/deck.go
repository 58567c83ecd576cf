package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/repetify-api/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
type DeckStore interface {
	// Create saves a new deck to the store.
	// Returns ErrDeckNameExists if the owner already has a deck with the
	// same name, and validation errors if the deck data is invalid.
	Create(ctx context.Context, deck *domain.Deck) error

	// Update modifies an existing deck.
	// Returns ErrDeckNotFound if the deck does not exist.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes a deck from the store by its ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	//
	// Cards belonging to the deck are removed by the database through
	// ON DELETE CASCADE; this method does not delete them in application
	// code.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// ListByUser retrieves all decks owned by the given user, ordered by name.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)

	// NameExistsForUser reports whether the user owns a deck with the given
	// name, ignoring the deck identified by excludeDeckID. Pass uuid.Nil as
	// excludeDeckID when creating a new deck.
	NameExistsForUser(
		ctx context.Context,
		userID uuid.UUID,
		name string,
		excludeDeckID uuid.UUID,
	) (bool, error)

	// WithTx returns a new DeckStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through RunInTransaction.
	WithTx(tx *sql.Tx) DeckStore

	// DB returns the underlying database connection, used by services to
	// open transactions spanning multiple stores.
	DB() *sql.DB
}
