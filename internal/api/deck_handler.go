package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/repetify-api/internal/api/shared"
	"github.com/phrazzld/repetify-api/internal/platform/logger"
	"github.com/phrazzld/repetify-api/internal/service/deck"
)

// DeckHandler handles deck-related HTTP requests.
type DeckHandler struct {
	deckService deck.Service
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(deckService deck.Service, log *slog.Logger) *DeckHandler {
	if deckService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deck service cannot be nil for DeckHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &DeckHandler{
		deckService: deckService,
		validator:   validator.New(),
		logger:      log.With(slog.String("component", "deck_handler")),
	}
}

// CreateDeck handles POST /api/decks.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req DeckRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	res := h.deckService.AddDeck(r.Context(), userID, deck.DeckInput{
		Name:               req.Name,
		Description:        req.Description,
		OriginalLanguage:   req.OriginalLanguage,
		TranslatedLanguage: req.TranslatedLanguage,
	})
	if !res.IsSuccess() {
		RespondWithResultError(w, r, res)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewDeckResponse(res.Value))
}

// ListDecks handles GET /api/decks.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	res := h.deckService.GetUserDecks(r.Context(), userID)
	if !res.IsSuccess() {
		RespondWithResultError(w, r, res)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewDeckListResponse(res.Value))
}

// GetDeck handles GET /api/decks/{deckID}.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		log.Debug("invalid deck ID in path", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck ID")
		return
	}

	res := h.deckService.GetDeckByID(r.Context(), userID, deckID)
	if !res.IsSuccess() {
		RespondWithResultError(w, r, res)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewDeckResponse(res.Value))
}

// UpdateDeck handles PUT /api/decks/{deckID}.
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck ID")
		return
	}

	var req DeckRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	res := h.deckService.UpdateDeck(r.Context(), userID, deckID, deck.DeckInput{
		Name:               req.Name,
		Description:        req.Description,
		OriginalLanguage:   req.OriginalLanguage,
		TranslatedLanguage: req.TranslatedLanguage,
	})
	if !res.IsSuccess() {
		RespondWithResultError(w, r, res)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// DeleteDeck handles DELETE /api/decks/{deckID}.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck ID")
		return
	}

	res := h.deckService.DeleteDeck(r.Context(), userID, deckID)
	if !res.IsSuccess() {
		RespondWithResultError(w, r, res)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
