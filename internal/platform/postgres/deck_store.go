package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/repetify-api/internal/domain"
	"github.com/phrazzld/repetify-api/internal/platform/logger"
	"github.com/phrazzld/repetify-api/internal/store"
)

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	sqlDB  *sql.DB
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the
// DeckStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, a default
// logger will be used.
func NewPostgresDeckStore(db *sql.DB, log *slog.Logger) *PostgresDeckStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		sqlDB:  db,
		logger: log.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// WithTx implements store.DeckStore.WithTx
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		sqlDB:  s.sqlDB,
		logger: s.logger,
	}
}

// DB implements store.DeckStore.DB
func (s *PostgresDeckStore) DB() *sql.DB {
	return s.sqlDB
}

// Create implements store.DeckStore.Create
// It saves a new deck to the database, handling domain validation.
// Returns store.ErrDeckNameExists when the owner already has a deck with
// the same name (unique index violation).
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during create",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	query := `
		INSERT INTO decks (id, user_id, name, description, original_language, translated_language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		deck.ID,
		deck.UserID,
		deck.Name,
		deck.Description,
		deck.OriginalLanguage,
		deck.TranslatedLanguage,
		deck.CreatedAt,
		deck.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate deck name for user",
				slog.String("deck_id", deck.ID.String()),
				slog.String("user_id", deck.UserID.String()))
			return store.ErrDeckNameExists
		}

		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()),
			slog.String("user_id", deck.UserID.String()))
		return MapError(err)
	}

	log.Info("deck created successfully",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", deck.UserID.String()))
	return nil
}

// Update implements store.DeckStore.Update
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during update",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	query := `
		UPDATE decks
		SET name = $1, description = $2, original_language = $3, translated_language = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		deck.Name,
		deck.Description,
		deck.OriginalLanguage,
		deck.TranslatedLanguage,
		deck.UpdatedAt,
		deck.ID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrDeckNameExists
		}

		log.Error("failed to update deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrDeckNotFound); err != nil {
		log.Debug("deck not found for update",
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	log.Info("deck updated successfully",
		slog.String("deck_id", deck.ID.String()))
	return nil
}

// Delete implements store.DeckStore.Delete
// Returns store.ErrDeckNotFound if the deck does not exist. The deck's
// cards are removed by the schema's ON DELETE CASCADE constraint.
func (s *PostgresDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrDeckNotFound); err != nil {
		log.Debug("deck not found for delete",
			slog.String("deck_id", id.String()))
		return err
	}

	log.Info("deck deleted successfully",
		slog.String("deck_id", id.String()))
	return nil
}

// GetByID implements store.DeckStore.GetByID
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, description, original_language, translated_language, created_at, updated_at
		FROM decks
		WHERE id = $1
	`

	deck, err := scanDeck(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck by ID",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, MapError(err)
	}

	return deck, nil
}

// ListByUser implements store.DeckStore.ListByUser
func (s *PostgresDeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, description, original_language, translated_language, created_at, updated_at
		FROM decks
		WHERE user_id = $1
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list decks by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var decks []*domain.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			log.Error("failed to scan deck row",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, MapError(err)
		}
		decks = append(decks, deck)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("listed decks for user",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(decks)))
	return decks, nil
}

// NameExistsForUser implements store.DeckStore.NameExistsForUser
func (s *PostgresDeckStore) NameExistsForUser(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	excludeDeckID uuid.UUID,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM decks
			WHERE user_id = $1 AND name = $2 AND id <> $3
		)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, userID, name, excludeDeckID).Scan(&exists)
	if err != nil {
		log.Error("failed to check deck name existence",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return false, MapError(err)
	}

	return exists, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeck(row rowScanner) (*domain.Deck, error) {
	var deck domain.Deck
	var description sql.NullString

	err := row.Scan(
		&deck.ID,
		&deck.UserID,
		&deck.Name,
		&description,
		&deck.OriginalLanguage,
		&deck.TranslatedLanguage,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		deck.Description = &description.String
	}

	return &deck, nil
}
