package deck

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/repetify-api/internal/domain"
	"github.com/phrazzld/repetify-api/internal/store"
)

// MockDeckStore mocks the store.DeckStore interface
type MockDeckStore struct {
	mock.Mock
	db *sql.DB
}

func (m *MockDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) NameExistsForUser(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	excludeDeckID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, userID, name, excludeDeckID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return m
}

func (m *MockDeckStore) DB() *sql.DB {
	return m.db
}

// MockCardStore mocks the store.CardStore interface
type MockCardStore struct {
	mock.Mock
}

func (m *MockCardStore) Create(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardStore) Update(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardStore) Delete(ctx context.Context, deckID, cardID uuid.UUID) error {
	args := m.Called(ctx, deckID, cardID)
	return args.Error(0)
}

func (m *MockCardStore) GetByID(
	ctx context.Context,
	deckID, cardID uuid.UUID,
) (*domain.Card, error) {
	args := m.Called(ctx, deckID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardStore) ListByDeck(
	ctx context.Context,
	deckID uuid.UUID,
	page, pageSize int,
) ([]*domain.Card, error) {
	args := m.Called(ctx, deckID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardStore) CountByDeck(ctx context.Context, deckID uuid.UUID) (int64, error) {
	args := m.Called(ctx, deckID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCardStore) ListDueForReview(
	ctx context.Context,
	deckID uuid.UUID,
	until time.Time,
	pageSize int,
	cursor *time.Time,
) ([]*domain.Card, error) {
	args := m.Called(ctx, deckID, until, pageSize, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return m
}

// MockScheduler mocks the review.Scheduler interface
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) UpdateReview(card *domain.Card, isCorrect bool) (*domain.Card, error) {
	args := m.Called(card, isCorrect)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

// fixedClock always returns the same instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
