package deck

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/repetify-api/internal/domain"
	"github.com/phrazzld/repetify-api/internal/domain/review"
	"github.com/phrazzld/repetify-api/internal/platform/logger"
	"github.com/phrazzld/repetify-api/internal/result"
	"github.com/phrazzld/repetify-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	decks     store.DeckStore
	cards     store.CardStore
	scheduler review.Scheduler
	clock     domain.Clock
	logger    *slog.Logger
}

// NewService creates a new deck Service implementation.
func NewService(
	decks store.DeckStore,
	cards store.CardStore,
	scheduler review.Scheduler,
	clock domain.Clock,
	log *slog.Logger,
) Service {
	if decks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("decks store cannot be nil")
	}
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cards store cannot be nil")
	}
	if scheduler == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scheduler cannot be nil")
	}
	if clock == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("clock cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		decks:     decks,
		cards:     cards,
		scheduler: scheduler,
		clock:     clock,
		logger:    log.With(slog.String("component", "deck_service")),
	}
}

// AddDeck implements Service.AddDeck.
func (s *serviceImpl) AddDeck(
	ctx context.Context,
	userID uuid.UUID,
	input DeckInput,
) result.Result[*domain.Deck] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := domain.NewDeck(
		userID,
		input.Name,
		input.Description,
		input.OriginalLanguage,
		input.TranslatedLanguage,
		s.clock.Now(),
	)
	if err != nil {
		log.Debug("invalid deck input", slog.String("error", err.Error()))
		return result.InvalidArguments[*domain.Deck](err.Error())
	}

	if r := s.ensureDeckNameFree(ctx, userID, deck.Name, uuid.Nil); !r.IsSuccess() {
		return result.Failure[*domain.Deck](r)
	}

	err = store.RunInTransaction(ctx, s.decks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.decks.WithTx(tx).Create(ctx, deck)
	})
	if err != nil {
		return result.Failure[*domain.Deck](s.failure(ctx, "add deck", err, deckNotFoundMessage))
	}

	log.Info("deck added",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", userID.String()))
	return result.Success(deck)
}

// UpdateDeck implements Service.UpdateDeck.
func (s *serviceImpl) UpdateDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
	input DeckInput,
) result.Result[result.Empty] {
	guard := s.ensureUserOwnsDeck(ctx, userID, deckID)
	if !guard.IsSuccess() {
		return result.Failure[result.Empty](guard)
	}
	deck := guard.Value

	if err := deck.UpdateDetails(
		input.Name,
		input.Description,
		input.OriginalLanguage,
		input.TranslatedLanguage,
		s.clock.Now(),
	); err != nil {
		return result.InvalidArguments[result.Empty](err.Error())
	}

	if r := s.ensureDeckNameFree(ctx, userID, deck.Name, deck.ID); !r.IsSuccess() {
		return result.Failure[result.Empty](r)
	}

	err := store.RunInTransaction(ctx, s.decks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.decks.WithTx(tx).Update(ctx, deck)
	})
	if err != nil {
		return s.failure(ctx, "update deck", err, deckNotFoundMessage)
	}

	return result.Done()
}

// DeleteDeck implements Service.DeleteDeck.
// The deck's cards go with it; the cascade lives in the storage schema.
func (s *serviceImpl) DeleteDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
) result.Result[result.Empty] {
	guard := s.ensureUserOwnsDeck(ctx, userID, deckID)
	if !guard.IsSuccess() {
		return result.Failure[result.Empty](guard)
	}

	err := store.RunInTransaction(ctx, s.decks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.decks.WithTx(tx).Delete(ctx, deckID)
	})
	if err != nil {
		return s.failure(ctx, "delete deck", err, deckNotFoundMessage)
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("deck deleted",
		slog.String("deck_id", deckID.String()),
		slog.String("user_id", userID.String()))
	return result.Done()
}

// GetDeckByID implements Service.GetDeckByID.
func (s *serviceImpl) GetDeckByID(
	ctx context.Context,
	userID, deckID uuid.UUID,
) result.Result[*domain.Deck] {
	return s.ensureUserOwnsDeck(ctx, userID, deckID)
}

// GetUserDecks implements Service.GetUserDecks.
func (s *serviceImpl) GetUserDecks(
	ctx context.Context,
	userID uuid.UUID,
) result.Result[[]*domain.Deck] {
	decks, err := s.decks.ListByUser(ctx, userID)
	if err != nil {
		return result.Failure[[]*domain.Deck](s.failure(ctx, "list decks", err, deckNotFoundMessage))
	}

	return result.Success(decks)
}

// AddCard implements Service.AddCard.
func (s *serviceImpl) AddCard(
	ctx context.Context,
	userID, deckID uuid.UUID,
	input CardInput,
) result.Result[*domain.Card] {
	guard := s.ensureUserOwnsDeck(ctx, userID, deckID)
	if !guard.IsSuccess() {
		return result.Failure[*domain.Card](guard)
	}

	card, err := domain.NewCard(deckID, input.OriginalWord, input.TranslatedWord, s.clock.Now())
	if err != nil {
		return result.InvalidArguments[*domain.Card](err.Error())
	}

	err = store.RunInTransaction(ctx, s.decks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.cards.WithTx(tx).Create(ctx, card)
	})
	if err != nil {
		return result.Failure[*domain.Card](s.failure(ctx, "add card", err, cardNotFoundMessage))
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("card added",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", deckID.String()))
	return result.Success(card)
}

// UpdateCard implements Service.UpdateCard.
func (s *serviceImpl) UpdateCard(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
	input CardInput,
) result.Result[result.Empty] {
	guard := s.ensureUserOwnsDeck(ctx, userID, deckID)
	if !guard.IsSuccess() {
		return result.Failure[result.Empty](guard)
	}

	err := store.RunInTransaction(ctx, s.decks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cards.WithTx(tx)

		card, err := cards.GetByID(ctx, deckID, cardID)
		if err != nil {
			return err
		}

		if err := card.UpdateWords(input.OriginalWord, input.TranslatedWord, s.clock.Now()); err != nil {
			return err
		}

		return cards.Update(ctx, card)
	})
	if err != nil {
		return s.failure(ctx, "update card", err, cardNotFoundMessage)
	}

	return result.Done()
}

// DeleteCard implements Service.DeleteCard.
func (s *serviceImpl) DeleteCard(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
) result.Result[result.Empty] {
	guard := s.ensureUserOwnsDeck(ctx, userID, deckID)
	if !guard.IsSuccess() {
		return result.Failure[result.Empty](guard)
	}

	err := store.RunInTransaction(ctx, s.decks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.cards.WithTx(tx).Delete(ctx, deckID, cardID)
	})
	if err != nil {
		return s.failure(ctx, "delete card", err, cardNotFoundMessage)
	}

	return result.Done()
}

// GetCardByID implements Service.GetCardByID.
func (s *serviceImpl) GetCardByID(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
) result.Result[*domain.Card] {
	guard := s.ensureUserOwnsDeck(ctx, userID, deckID)
	if !guard.IsSuccess() {
		return result.Failure[*domain.Card](guard)
	}

	card, err := s.cards.GetByID(ctx, deckID, cardID)
	if err != nil {
		return result.Failure[*domain.Card](s.failure(ctx, "get card", err, cardNotFoundMessage))
	}

	return result.Success(card)
}

// GetCards implements Service.GetCards.
func (s *serviceImpl) GetCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
	page, pageSize int,
) result.Result[[]*domain.Card] {
	guard := s.ensureUserOwnsDeck(ctx, userID, deckID)
	if !guard.IsSuccess() {
		return result.Failure[[]*domain.Card](guard)
	}

	if page < 1 {
		return result.InvalidArguments[[]*domain.Card]("page must be greater than 0")
	}
	if pageSize < 1 {
		return result.InvalidArguments[[]*domain.Card]("page size must be greater than 0")
	}

	cards, err := s.cards.ListByDeck(ctx, deckID, page, pageSize)
	if err != nil {
		return result.Failure[[]*domain.Card](s.failure(ctx, "list cards", err, cardNotFoundMessage))
	}

	return result.Success(cards)
}

// GetCardCount implements Service.GetCardCount.
func (s *serviceImpl) GetCardCount(
	ctx context.Context,
	userID, deckID uuid.UUID,
) result.Result[int64] {
	guard := s.ensureUserOwnsDeck(ctx, userID, deckID)
	if !guard.IsSuccess() {
		return result.Failure[int64](guard)
	}

	count, err := s.cards.CountByDeck(ctx, deckID)
	if err != nil {
		return result.Failure[int64](s.failure(ctx, "count cards", err, cardNotFoundMessage))
	}

	return result.Success(count)
}

// GetCardsToReview implements Service.GetCardsToReview.
func (s *serviceImpl) GetCardsToReview(
	ctx context.Context,
	userID, deckID uuid.UUID,
	until time.Time,
	pageSize int,
	cursor *time.Time,
) result.Result[[]*domain.Card] {
	guard := s.ensureUserOwnsDeck(ctx, userID, deckID)
	if !guard.IsSuccess() {
		return result.Failure[[]*domain.Card](guard)
	}

	// Rejected before the store sees the request.
	if pageSize < 1 {
		return result.InvalidArguments[[]*domain.Card]("page size must be greater than 0")
	}

	cards, err := s.cards.ListDueForReview(ctx, deckID, until, pageSize, cursor)
	if err != nil {
		return result.Failure[[]*domain.Card](s.failure(ctx, "list due cards", err, cardNotFoundMessage))
	}

	return result.Success(cards)
}

// ReviewCard implements Service.ReviewCard.
// The read, the scheduling step and the write share one transaction; the
// commit is the point at which the new schedule becomes visible.
func (s *serviceImpl) ReviewCard(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
	isCorrect bool,
) result.Result[*domain.Card] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	guard := s.ensureUserOwnsDeck(ctx, userID, deckID)
	if !guard.IsSuccess() {
		return result.Failure[*domain.Card](guard)
	}

	var reviewed *domain.Card
	err := store.RunInTransaction(ctx, s.decks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cards.WithTx(tx)

		card, err := cards.GetByID(ctx, deckID, cardID)
		if err != nil {
			return err
		}

		updated, err := s.scheduler.UpdateReview(card, isCorrect)
		if err != nil {
			return err
		}

		if err := cards.Update(ctx, updated); err != nil {
			return err
		}

		reviewed = updated
		return nil
	})
	if err != nil {
		return result.Failure[*domain.Card](s.failure(ctx, "review card", err, cardNotFoundMessage))
	}

	log.Debug("card reviewed",
		slog.String("card_id", cardID.String()),
		slog.Bool("correct", isCorrect),
		slog.Int("streak", reviewed.CorrectReviewStreak),
		slog.Time("next_review", reviewed.NextReviewDate))
	return result.Success(reviewed)
}

// ensureUserOwnsDeck resolves the deck and checks that the acting user
// owns it. A missing deck and a deck owned by another user produce the
// identical not-found outcome, so callers cannot probe for other users'
// deck IDs.
func (s *serviceImpl) ensureUserOwnsDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
) result.Result[*domain.Deck] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return result.NotFound[*domain.Deck](deckNotFoundMessage)
		}
		log.Error("failed to resolve deck for ownership check",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return result.UnexpectedError[*domain.Deck]("failed to resolve deck")
	}

	if deck.UserID != userID {
		log.Warn("deck access denied",
			slog.String("deck_id", deckID.String()),
			slog.String("user_id", userID.String()))
		return result.NotFound[*domain.Deck](deckNotFoundMessage)
	}

	return result.Success(deck)
}

// ensureDeckNameFree enforces deck name uniqueness per owner. The deck
// identified by excludeDeckID is ignored so updates do not conflict with
// themselves.
func (s *serviceImpl) ensureDeckNameFree(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	excludeDeckID uuid.UUID,
) result.Result[result.Empty] {
	exists, err := s.decks.NameExistsForUser(ctx, userID, name, excludeDeckID)
	if err != nil {
		log := logger.FromContextOrDefault(ctx, s.logger)
		log.Error("failed to check deck name uniqueness",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return result.UnexpectedError[result.Empty]("failed to check deck name uniqueness")
	}

	if exists {
		return result.Conflict[result.Empty](fmt.Sprintf("a deck named %q already exists", name))
	}

	return result.Done()
}

// failure converts a store or domain error surfaced during an operation
// into the matching outcome. Domain validation errors become
// invalid-arguments, store sentinels keep their meaning, and everything
// else is reported as unexpected with a generic message (the underlying
// error stays in the logs only).
func (s *serviceImpl) failure(
	ctx context.Context,
	operation string,
	err error,
	notFoundMessage string,
) result.Result[result.Empty] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	switch {
	case store.IsNotFoundError(err):
		return result.NotFound[result.Empty](notFoundMessage)
	case store.IsDuplicateError(err):
		return result.Conflict[result.Empty](err.Error())
	case domain.IsValidationError(err):
		return result.InvalidArguments[result.Empty](err.Error())
	default:
		log.Error("operation failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return result.UnexpectedError[result.Empty]("failed to " + operation)
	}
}
