package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/repetify-api/internal/domain"
	"github.com/phrazzld/repetify-api/internal/result"
	"github.com/phrazzld/repetify-api/internal/service/deck"
)

var handlerNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func newCardRouter(svc deck.Service, userID uuid.UUID) http.Handler {
	handler := NewCardHandler(svc, fixedClock{now: handlerNow}, nil)

	r := chi.NewRouter()
	r.Use(withUserID(userID))
	r.Route("/decks/{deckID}/cards", func(r chi.Router) {
		r.Post("/", handler.CreateCard)
		r.Get("/", handler.ListCards)
		r.Get("/count", handler.CountCards)
		r.Get("/due", handler.ListDueCards)
		r.Get("/{cardID}", handler.GetCard)
		r.Put("/{cardID}", handler.UpdateCard)
		r.Delete("/{cardID}", handler.DeleteCard)
		r.Post("/{cardID}/review", handler.ReviewCard)
	})
	return r
}

func testCard(t *testing.T, deckID uuid.UUID) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(deckID, "hund", "dog", handlerNow.AddDate(0, 0, -2))
	require.NoError(t, err)
	return card
}

func TestReviewCardHandler(t *testing.T) {
	userID := uuid.New()
	deckID := uuid.New()

	t.Run("correct answer", func(t *testing.T) {
		svc := &MockDeckService{}
		card := testCard(t, deckID)
		reviewed, err := card.WithReviewState(1, handlerNow.AddDate(0, 0, 1), handlerNow, handlerNow)
		require.NoError(t, err)

		svc.On("ReviewCard", mock.Anything, userID, deckID, card.ID, true).
			Return(result.Success(reviewed))

		url := fmt.Sprintf("/decks/%s/cards/%s/review", deckID, card.ID)
		req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{"is_correct":true}`))
		rec := httptest.NewRecorder()

		newCardRouter(svc, userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp CardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.CorrectReviewStreak)
		require.NotNil(t, resp.PreviousCorrectReview)
		svc.AssertExpectations(t)
	})

	t.Run("missing is_correct rejected", func(t *testing.T) {
		svc := &MockDeckService{}

		url := fmt.Sprintf("/decks/%s/cards/%s/review", deckID, uuid.New())
		req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		newCardRouter(svc, userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "ReviewCard",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("card not found", func(t *testing.T) {
		svc := &MockDeckService{}
		cardID := uuid.New()
		svc.On("ReviewCard", mock.Anything, userID, deckID, cardID, false).
			Return(result.NotFound[*domain.Card]("card not found"))

		url := fmt.Sprintf("/decks/%s/cards/%s/review", deckID, cardID)
		req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{"is_correct":false}`))
		rec := httptest.NewRecorder()

		newCardRouter(svc, userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListDueCardsHandler(t *testing.T) {
	userID := uuid.New()
	deckID := uuid.New()

	t.Run("defaults until to now and omits cursor", func(t *testing.T) {
		svc := &MockDeckService{}
		svc.On("GetCardsToReview", mock.Anything, userID, deckID, handlerNow, defaultPageSize,
			(*time.Time)(nil)).
			Return(result.Success([]*domain.Card{}))

		url := fmt.Sprintf("/decks/%s/cards/due", deckID)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()

		newCardRouter(svc, userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp DueCardsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Cards)
		assert.Nil(t, resp.NextCursor)
		svc.AssertExpectations(t)
	})

	t.Run("full page yields next cursor", func(t *testing.T) {
		svc := &MockDeckService{}
		first := testCard(t, deckID)
		second := testCard(t, deckID)

		svc.On("GetCardsToReview", mock.Anything, userID, deckID, handlerNow, 2,
			(*time.Time)(nil)).
			Return(result.Success([]*domain.Card{first, second}))

		url := fmt.Sprintf("/decks/%s/cards/due?page_size=2", deckID)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()

		newCardRouter(svc, userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp DueCardsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Cards, 2)
		require.NotNil(t, resp.NextCursor)
		assert.True(t, resp.NextCursor.Equal(second.NextReviewDate))
	})

	t.Run("cursor parameter forwarded", func(t *testing.T) {
		svc := &MockDeckService{}
		cursor := handlerNow.AddDate(0, 0, -1)

		svc.On("GetCardsToReview", mock.Anything, userID, deckID, handlerNow, defaultPageSize,
			mock.MatchedBy(func(c *time.Time) bool { return c != nil && c.Equal(cursor) })).
			Return(result.Success([]*domain.Card{}))

		url := fmt.Sprintf("/decks/%s/cards/due?cursor=%s", deckID,
			cursor.Format(time.RFC3339Nano))
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()

		newCardRouter(svc, userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("bad until parameter", func(t *testing.T) {
		svc := &MockDeckService{}

		url := fmt.Sprintf("/decks/%s/cards/due?until=yesterday", deckID)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()

		newCardRouter(svc, userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetCardsToReview", mock.Anything, mock.Anything,
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListCardsHandler(t *testing.T) {
	userID := uuid.New()
	deckID := uuid.New()

	svc := &MockDeckService{}
	card := testCard(t, deckID)
	svc.On("GetCards", mock.Anything, userID, deckID, 2, 10).
		Return(result.Success([]*domain.Card{card}))

	url := fmt.Sprintf("/decks/%s/cards?page=2&page_size=10", deckID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()

	newCardRouter(svc, userID).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp CardPageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	require.Len(t, resp.Cards, 1)
	assert.Equal(t, card.ID, resp.Cards[0].ID)
}

func TestCountCardsHandler(t *testing.T) {
	userID := uuid.New()
	deckID := uuid.New()

	svc := &MockDeckService{}
	svc.On("GetCardCount", mock.Anything, userID, deckID).
		Return(result.Success(int64(12)))

	url := fmt.Sprintf("/decks/%s/cards/count", deckID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()

	newCardRouter(svc, userID).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp CardCountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.Count)
}
