package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/phrazzld/repetify-api/internal/api/shared"
	"github.com/phrazzld/repetify-api/internal/domain"
	"github.com/phrazzld/repetify-api/internal/platform/logger"
	"github.com/phrazzld/repetify-api/internal/service/deck"
)

// Paging defaults for card listings.
const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// CardHandler handles card-related HTTP requests, including reviews.
type CardHandler struct {
	deckService deck.Service
	validator   *validator.Validate
	clock       domain.Clock
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(deckService deck.Service, clock domain.Clock, log *slog.Logger) *CardHandler {
	if deckService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deck service cannot be nil for CardHandler")
	}
	if clock == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("clock cannot be nil for CardHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CardHandler{
		deckService: deckService,
		validator:   validator.New(),
		clock:       clock,
		logger:      log.With(slog.String("component", "card_handler")),
	}
}

// deckScope pulls the authenticated user and the deck ID out of the
// request, writing the error response itself when either is missing.
func (h *CardHandler) deckScope(
	w http.ResponseWriter,
	r *http.Request,
) (userID, deckID uuid.UUID, ok bool) {
	userID, found := getUserIDFromContext(r)
	if !found {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, uuid.Nil, false
	}

	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck ID")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, deckID, true
}

// CreateCard handles POST /api/decks/{deckID}/cards.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := h.deckScope(w, r)
	if !ok {
		return
	}

	var req CardRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	res := h.deckService.AddCard(r.Context(), userID, deckID, deck.CardInput{
		OriginalWord:   req.OriginalWord,
		TranslatedWord: req.TranslatedWord,
	})
	if !res.IsSuccess() {
		RespondWithResultError(w, r, res)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewCardResponse(res.Value))
}

// ListCards handles GET /api/decks/{deckID}/cards.
// Accepts optional page and page_size query parameters.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := h.deckScope(w, r)
	if !ok {
		return
	}

	page, err := queryInt(r, "page", defaultPage)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid page parameter")
		return
	}
	pageSize, err := queryInt(r, "page_size", defaultPageSize)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid page_size parameter")
		return
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	res := h.deckService.GetCards(r.Context(), userID, deckID, page, pageSize)
	if !res.IsSuccess() {
		RespondWithResultError(w, r, res)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CardPageResponse{
		Cards:    NewCardListResponse(res.Value),
		Page:     page,
		PageSize: pageSize,
	})
}

// CountCards handles GET /api/decks/{deckID}/cards/count.
func (h *CardHandler) CountCards(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := h.deckScope(w, r)
	if !ok {
		return
	}

	res := h.deckService.GetCardCount(r.Context(), userID, deckID)
	if !res.IsSuccess() {
		RespondWithResultError(w, r, res)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CardCountResponse{Count: res.Value})
}

// GetCard handles GET /api/decks/{deckID}/cards/{cardID}.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := h.deckScope(w, r)
	if !ok {
		return
	}

	cardID, err := getPathUUID(r, "cardID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	res := h.deckService.GetCardByID(r.Context(), userID, deckID, cardID)
	if !res.IsSuccess() {
		RespondWithResultError(w, r, res)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardResponse(res.Value))
}

// UpdateCard handles PUT /api/decks/{deckID}/cards/{cardID}.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := h.deckScope(w, r)
	if !ok {
		return
	}

	cardID, err := getPathUUID(r, "cardID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	var req CardRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	res := h.deckService.UpdateCard(r.Context(), userID, deckID, cardID, deck.CardInput{
		OriginalWord:   req.OriginalWord,
		TranslatedWord: req.TranslatedWord,
	})
	if !res.IsSuccess() {
		RespondWithResultError(w, r, res)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// DeleteCard handles DELETE /api/decks/{deckID}/cards/{cardID}.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := h.deckScope(w, r)
	if !ok {
		return
	}

	cardID, err := getPathUUID(r, "cardID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	res := h.deckService.DeleteCard(r.Context(), userID, deckID, cardID)
	if !res.IsSuccess() {
		RespondWithResultError(w, r, res)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// ListDueCards handles GET /api/decks/{deckID}/cards/due.
// Accepts optional until (RFC 3339, defaults to now), page_size and
// cursor (RFC 3339) query parameters. The response carries a next_cursor
// when the page came back full.
func (h *CardHandler) ListDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := h.deckScope(w, r)
	if !ok {
		return
	}

	until := h.clock.Now()
	if raw := r.URL.Query().Get("until"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid until parameter")
			return
		}
		until = parsed
	}

	pageSize, err := queryInt(r, "page_size", defaultPageSize)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid page_size parameter")
		return
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var cursor *time.Time
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid cursor parameter")
			return
		}
		cursor = &parsed
	}

	res := h.deckService.GetCardsToReview(r.Context(), userID, deckID, until, pageSize, cursor)
	if !res.IsSuccess() {
		RespondWithResultError(w, r, res)
		return
	}

	response := DueCardsResponse{Cards: NewCardListResponse(res.Value)}
	if len(res.Value) == pageSize {
		next := res.Value[len(res.Value)-1].NextReviewDate
		response.NextCursor = &next
	}

	log.Debug("listed due cards",
		slog.String("deck_id", deckID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("count", len(res.Value)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// ReviewCard handles POST /api/decks/{deckID}/cards/{cardID}/review.
func (h *CardHandler) ReviewCard(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := h.deckScope(w, r)
	if !ok {
		return
	}

	cardID, err := getPathUUID(r, "cardID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	var req ReviewRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	res := h.deckService.ReviewCard(r.Context(), userID, deckID, cardID, *req.IsCorrect)
	if !res.IsSuccess() {
		RespondWithResultError(w, r, res)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardResponse(res.Value))
}

// queryInt parses an optional positive integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
