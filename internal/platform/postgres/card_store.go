package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/repetify-api/internal/domain"
	"github.com/phrazzld/repetify-api/internal/platform/logger"
	"github.com/phrazzld/repetify-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// a default logger will be used.
func NewPostgresCardStore(db store.DBTX, log *slog.Logger) *PostgresCardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: log.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CardStore.Create
// It saves a new card to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the deck ID doesn't exist (foreign key
// violation).
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		INSERT INTO cards (id, deck_id, original_word, translated_word, correct_review_streak,
			next_review_date, previous_correct_review, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.DeckID,
		card.OriginalWord,
		card.TranslatedWord,
		card.CorrectReviewStreak,
		card.NextReviewDate,
		nullableTime(card.PreviousCorrectReview),
		card.CreatedAt,
		card.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during card creation",
				slog.String("card_id", card.ID.String()),
				slog.String("deck_id", card.DeckID.String()))
			return MapError(err)
		}

		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()),
			slog.String("deck_id", card.DeckID.String()))
		return MapError(err)
	}

	log.Info("card created successfully",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", card.DeckID.String()))
	return nil
}

// Update implements store.CardStore.Update
// It persists the card's words and scheduling state.
// Returns store.ErrCardNotFound if the card does not exist in its deck.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		UPDATE cards
		SET original_word = $1, translated_word = $2, correct_review_streak = $3,
			next_review_date = $4, previous_correct_review = $5, updated_at = $6
		WHERE id = $7 AND deck_id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		card.OriginalWord,
		card.TranslatedWord,
		card.CorrectReviewStreak,
		card.NextReviewDate,
		nullableTime(card.PreviousCorrectReview),
		card.UpdatedAt,
		card.ID,
		card.DeckID,
	)

	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		log.Debug("card not found for update",
			slog.String("card_id", card.ID.String()),
			slog.String("deck_id", card.DeckID.String()))
		return err
	}

	log.Debug("card updated successfully",
		slog.String("card_id", card.ID.String()))
	return nil
}

// Delete implements store.CardStore.Delete
// Returns store.ErrCardNotFound if the card does not exist in the given deck.
func (s *PostgresCardStore) Delete(ctx context.Context, deckID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM cards WHERE id = $1 AND deck_id = $2`,
		cardID,
		deckID,
	)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		log.Debug("card not found for delete",
			slog.String("card_id", cardID.String()),
			slog.String("deck_id", deckID.String()))
		return err
	}

	log.Info("card deleted successfully",
		slog.String("card_id", cardID.String()),
		slog.String("deck_id", deckID.String()))
	return nil
}

// GetByID implements store.CardStore.GetByID
// Returns store.ErrCardNotFound if the card does not exist in the given deck.
func (s *PostgresCardStore) GetByID(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_id, original_word, translated_word, correct_review_streak,
			next_review_date, previous_correct_review, created_at, updated_at
		FROM cards
		WHERE id = $1 AND deck_id = $2
	`

	card, err := scanCard(s.db.QueryRowContext(ctx, query, cardID, deckID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found",
				slog.String("card_id", cardID.String()),
				slog.String("deck_id", deckID.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, MapError(err)
	}

	return card, nil
}

// ListByDeck implements store.CardStore.ListByDeck
// Pages are 1-based; results are ordered by creation time so pages are
// stable while cards are appended.
func (s *PostgresCardStore) ListByDeck(
	ctx context.Context,
	deckID uuid.UUID,
	page, pageSize int,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_id, original_word, translated_word, correct_review_streak,
			next_review_date, previous_correct_review, created_at, updated_at
		FROM cards
		WHERE deck_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`

	offset := (page - 1) * pageSize
	rows, err := s.db.QueryContext(ctx, query, deckID, pageSize, offset)
	if err != nil {
		log.Error("failed to list cards by deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectCards(rows)
}

// CountByDeck implements store.CardStore.CountByDeck
func (s *PostgresCardStore) CountByDeck(ctx context.Context, deckID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM cards WHERE deck_id = $1`,
		deckID,
	).Scan(&count)
	if err != nil {
		log.Error("failed to count cards by deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return 0, MapError(err)
	}

	return count, nil
}

// ListDueForReview implements store.CardStore.ListDueForReview
// It selects cards due by the given instant using keyset pagination on
// next_review_date, so pages stay correct while the due set changes
// between fetches. The cursor key has no tiebreak; see the interface
// documentation for the consequences on identical instants.
func (s *PostgresCardStore) ListDueForReview(
	ctx context.Context,
	deckID uuid.UUID,
	until time.Time,
	pageSize int,
	cursor *time.Time,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	const baseQuery = `
		SELECT id, deck_id, original_word, translated_word, correct_review_streak,
			next_review_date, previous_correct_review, created_at, updated_at
		FROM cards
		WHERE deck_id = $1 AND next_review_date <= $2`

	var query string
	var args []any
	if cursor != nil {
		query = baseQuery + ` AND next_review_date > $3 ORDER BY next_review_date LIMIT $4`
		args = []any{deckID, until, *cursor, pageSize}
	} else {
		query = baseQuery + ` ORDER BY next_review_date LIMIT $3`
		args = []any{deckID, until, pageSize}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list due cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	cards, err := collectCards(rows)
	if err != nil {
		return nil, err
	}

	log.Debug("listed due cards",
		slog.String("deck_id", deckID.String()),
		slog.Int("count", len(cards)))
	return cards, nil
}

func collectCards(rows *sql.Rows) ([]*domain.Card, error) {
	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cards, nil
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	var previousCorrect sql.NullTime

	err := row.Scan(
		&card.ID,
		&card.DeckID,
		&card.OriginalWord,
		&card.TranslatedWord,
		&card.CorrectReviewStreak,
		&card.NextReviewDate,
		&previousCorrect,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if previousCorrect.Valid {
		card.PreviousCorrectReview = previousCorrect.Time
	}

	return &card, nil
}

// nullableTime converts the zero time (the "never reviewed correctly"
// sentinel) into a SQL NULL.
func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
