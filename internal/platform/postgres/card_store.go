package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// Create implements store.CardStore.Create
// Returns store.ErrInvalidEntity if the owning deck does not exist.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		INSERT INTO cards (id, deck_id, front, back, status, remind_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.DeckID,
		card.Front,
		card.Back,
		card.Status,
		card.RemindTime,
		card.CreatedAt,
		card.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during card creation",
				slog.String("card_id", card.ID.String()),
				slog.String("deck_id", card.DeckID.String()))
			return fmt.Errorf("%w: deck with ID %s not found",
				store.ErrInvalidEntity, card.DeckID)
		}

		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	log.Info("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", card.DeckID.String()))
	return nil
}

// GetByID implements store.CardStore.GetByID
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_id, front, back, status, remind_time, created_at, updated_at
		FROM cards
		WHERE id = $1
	`

	var card domain.Card
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.DeckID,
		&card.Front,
		&card.Back,
		&card.Status,
		&card.RemindTime,
		&card.CreatedAt,
		&card.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", id.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, err
	}

	return &card, nil
}

// ListByDeck implements store.CardStore.ListByDeck
// Cards are ordered by remind time ascending so the first element is the next
// card to study.
func (s *PostgresCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	query := `
		SELECT id, deck_id, front, back, status, remind_time, created_at, updated_at
		FROM cards
		WHERE deck_id = $1
		ORDER BY remind_time ASC
	`
	return s.queryCards(ctx, query, deckID)
}

// ListDueByDeck implements store.CardStore.ListDueByDeck
func (s *PostgresCardStore) ListDueByDeck(
	ctx context.Context,
	deckID uuid.UUID,
	today time.Time,
) ([]*domain.Card, error) {
	query := `
		SELECT id, deck_id, front, back, status, remind_time, created_at, updated_at
		FROM cards
		WHERE deck_id = $1 AND remind_time <= $2
		ORDER BY remind_time ASC
	`
	return s.queryCards(ctx, query, deckID, today)
}

// queryCards runs a card select and scans the rows.
func (s *PostgresCardStore) queryCards(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query cards", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	cards := []*domain.Card{}
	for rows.Next() {
		var card domain.Card
		err := rows.Scan(
			&card.ID,
			&card.DeckID,
			&card.Front,
			&card.Back,
			&card.Status,
			&card.RemindTime,
			&card.CreatedAt,
			&card.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan card row", slog.String("error", err.Error()))
			return nil, err
		}
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning card rows", slog.String("error", err.Error()))
		return nil, err
	}

	return cards, nil
}

// UpdateSchedule implements store.CardStore.UpdateSchedule
// The single-statement update lets the database serialize concurrent answers
// for the same card.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) UpdateSchedule(
	ctx context.Context,
	id uuid.UUID,
	status int,
	remindTime time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE cards
		SET status = $1, remind_time = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, status, remindTime, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update card schedule",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("card not found for schedule update", slog.String("card_id", id.String()))
		return store.ErrCardNotFound
	}

	log.Info("card schedule updated",
		slog.String("card_id", id.String()),
		slog.Int("status", status),
		slog.Time("remind_time", remindTime))
	return nil
}

// CountByBucket implements store.CardStore.CountByBucket
// A single scan produces all three maturity-tier counters.
func (s *PostgresCardStore) CountByBucket(
	ctx context.Context,
	deckID uuid.UUID,
) (domain.DeckCounters, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 0),
			COUNT(*) FILTER (WHERE status BETWEEN $2 AND $3),
			COUNT(*) FILTER (WHERE status > $3)
		FROM cards
		WHERE deck_id = $1
	`

	var counters domain.DeckCounters
	err := s.db.QueryRowContext(
		ctx,
		query,
		deckID,
		domain.LearningStatusMin,
		domain.LearningStatusMax,
	).Scan(
		&counters.NewCount,
		&counters.LearningCount,
		&counters.DueCount,
	)
	if err != nil {
		log.Error("failed to count cards by bucket",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return domain.DeckCounters{}, err
	}

	return counters, nil
}

// CountDue implements store.CardStore.CountDue
func (s *PostgresCardStore) CountDue(
	ctx context.Context,
	deckID uuid.UUID,
	today time.Time,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM cards
		WHERE deck_id = $1 AND remind_time <= $2
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, deckID, today).Scan(&count); err != nil {
		log.Error("failed to count due cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return 0, err
	}

	return count, nil
}

// Delete implements store.CardStore.Delete
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		log.Debug("card not found for delete", slog.String("card_id", id.String()))
		return store.ErrCardNotFound
	}

	log.Info("card deleted", slog.String("card_id", id.String()))
	return nil
}

// DeleteByDeck implements store.CardStore.DeleteByDeck
func (s *PostgresCardStore) DeleteByDeck(ctx context.Context, deckID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE deck_id = $1`, deckID)
	if err != nil {
		log.Error("failed to delete deck cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return MapError(err)
	}

	if rowsAffected, err := result.RowsAffected(); err == nil {
		log.Info("deck cards deleted",
			slog.String("deck_id", deckID.String()),
			slog.Int64("count", rowsAffected))
	}
	return nil
}
