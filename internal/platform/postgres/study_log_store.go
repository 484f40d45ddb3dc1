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

// PostgresStudyLogStore implements the store.StudyLogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStudyLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudyLogStore creates a new PostgreSQL implementation of the
// StudyLogStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresStudyLogStore(db store.DBTX, logger *slog.Logger) *PostgresStudyLogStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudyLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_log_store")),
	}
}

// Ensure PostgresStudyLogStore implements store.StudyLogStore interface
var _ store.StudyLogStore = (*PostgresStudyLogStore)(nil)

// FindForDate implements store.StudyLogStore.FindForDate
// Returns store.ErrStudyLogNotFound if no entry exists for the triple.
func (s *PostgresStudyLogStore) FindForDate(
	ctx context.Context,
	deckID, userID uuid.UUID,
	date time.Time,
) (*domain.StudyLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_id, user_id, log_date, review_count, created_at, updated_at
		FROM study_logs
		WHERE deck_id = $1 AND user_id = $2 AND log_date = $3
	`

	var entry domain.StudyLog
	err := s.db.QueryRowContext(ctx, query, deckID, userID, date).Scan(
		&entry.ID,
		&entry.DeckID,
		&entry.UserID,
		&entry.LogDate,
		&entry.ReviewCount,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("study log not found",
				slog.String("deck_id", deckID.String()),
				slog.String("user_id", userID.String()),
				slog.Time("log_date", date))
			return nil, store.ErrStudyLogNotFound
		}
		log.Error("failed to find study log",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return &entry, nil
}

// Create implements store.StudyLogStore.Create
// Returns store.ErrDuplicate if an entry for the triple already exists; the
// unique index on (deck_id, user_id, log_date) enforces the at-most-one-entry
// invariant.
func (s *PostgresStudyLogStore) Create(ctx context.Context, entry *domain.StudyLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("study log validation failed during create",
			slog.String("error", err.Error()),
			slog.String("study_log_id", entry.ID.String()))
		return err
	}

	query := `
		INSERT INTO study_logs (id, deck_id, user_id, log_date, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.DeckID,
		entry.UserID,
		entry.LogDate,
		entry.ReviewCount,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate study log for day",
				slog.String("deck_id", entry.DeckID.String()),
				slog.String("user_id", entry.UserID.String()),
				slog.Time("log_date", entry.LogDate))
			return fmt.Errorf("%w: study log for day", store.ErrDuplicate)
		}

		log.Error("failed to create study log",
			slog.String("error", err.Error()),
			slog.String("study_log_id", entry.ID.String()))
		return MapError(err)
	}

	log.Info("study log created",
		slog.String("study_log_id", entry.ID.String()),
		slog.String("deck_id", entry.DeckID.String()),
		slog.Time("log_date", entry.LogDate))
	return nil
}

// Update implements store.StudyLogStore.Update
// Returns store.ErrStudyLogNotFound if the entry does not exist.
func (s *PostgresStudyLogStore) Update(ctx context.Context, entry *domain.StudyLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("study log validation failed during update",
			slog.String("error", err.Error()),
			slog.String("study_log_id", entry.ID.String()))
		return err
	}

	query := `
		UPDATE study_logs
		SET review_count = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, entry.ReviewCount, entry.UpdatedAt, entry.ID)
	if err != nil {
		log.Error("failed to update study log",
			slog.String("error", err.Error()),
			slog.String("study_log_id", entry.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		log.Debug("study log not found for update",
			slog.String("study_log_id", entry.ID.String()))
		return store.ErrStudyLogNotFound
	}

	return nil
}
