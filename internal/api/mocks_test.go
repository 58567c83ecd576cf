package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/repetify-api/internal/api/shared"
	"github.com/phrazzld/repetify-api/internal/domain"
	"github.com/phrazzld/repetify-api/internal/result"
	"github.com/phrazzld/repetify-api/internal/service/deck"
)

// MockDeckService mocks the deck.Service interface
type MockDeckService struct {
	mock.Mock
}

var _ deck.Service = (*MockDeckService)(nil)

func (m *MockDeckService) AddDeck(
	ctx context.Context,
	userID uuid.UUID,
	input deck.DeckInput,
) result.Result[*domain.Deck] {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(result.Result[*domain.Deck])
}

func (m *MockDeckService) UpdateDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
	input deck.DeckInput,
) result.Result[result.Empty] {
	args := m.Called(ctx, userID, deckID, input)
	return args.Get(0).(result.Result[result.Empty])
}

func (m *MockDeckService) DeleteDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
) result.Result[result.Empty] {
	args := m.Called(ctx, userID, deckID)
	return args.Get(0).(result.Result[result.Empty])
}

func (m *MockDeckService) GetDeckByID(
	ctx context.Context,
	userID, deckID uuid.UUID,
) result.Result[*domain.Deck] {
	args := m.Called(ctx, userID, deckID)
	return args.Get(0).(result.Result[*domain.Deck])
}

func (m *MockDeckService) GetUserDecks(
	ctx context.Context,
	userID uuid.UUID,
) result.Result[[]*domain.Deck] {
	args := m.Called(ctx, userID)
	return args.Get(0).(result.Result[[]*domain.Deck])
}

func (m *MockDeckService) AddCard(
	ctx context.Context,
	userID, deckID uuid.UUID,
	input deck.CardInput,
) result.Result[*domain.Card] {
	args := m.Called(ctx, userID, deckID, input)
	return args.Get(0).(result.Result[*domain.Card])
}

func (m *MockDeckService) UpdateCard(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
	input deck.CardInput,
) result.Result[result.Empty] {
	args := m.Called(ctx, userID, deckID, cardID, input)
	return args.Get(0).(result.Result[result.Empty])
}

func (m *MockDeckService) DeleteCard(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
) result.Result[result.Empty] {
	args := m.Called(ctx, userID, deckID, cardID)
	return args.Get(0).(result.Result[result.Empty])
}

func (m *MockDeckService) GetCardByID(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
) result.Result[*domain.Card] {
	args := m.Called(ctx, userID, deckID, cardID)
	return args.Get(0).(result.Result[*domain.Card])
}

func (m *MockDeckService) GetCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
	page, pageSize int,
) result.Result[[]*domain.Card] {
	args := m.Called(ctx, userID, deckID, page, pageSize)
	return args.Get(0).(result.Result[[]*domain.Card])
}

func (m *MockDeckService) GetCardCount(
	ctx context.Context,
	userID, deckID uuid.UUID,
) result.Result[int64] {
	args := m.Called(ctx, userID, deckID)
	return args.Get(0).(result.Result[int64])
}

func (m *MockDeckService) GetCardsToReview(
	ctx context.Context,
	userID, deckID uuid.UUID,
	until time.Time,
	pageSize int,
	cursor *time.Time,
) result.Result[[]*domain.Card] {
	args := m.Called(ctx, userID, deckID, until, pageSize, cursor)
	return args.Get(0).(result.Result[[]*domain.Card])
}

func (m *MockDeckService) ReviewCard(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
	isCorrect bool,
) result.Result[*domain.Card] {
	args := m.Called(ctx, userID, deckID, cardID, isCorrect)
	return args.Get(0).(result.Result[*domain.Card])
}

// withUserID injects an authenticated user ID the way the auth
// middleware does.
func withUserID(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// fixedClock always returns the same instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
