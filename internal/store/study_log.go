package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// StudyLogStore defines the interface for study log persistence.
type StudyLogStore interface {
	// FindForDate retrieves the single study log entry for the (deck, user,
	// date) triple. Returns ErrStudyLogNotFound if no entry exists.
	FindForDate(ctx context.Context, deckID, userID uuid.UUID, date time.Time) (*domain.StudyLog, error)

	// Create saves a new study log entry.
	// Returns ErrDuplicate if an entry for the triple already exists.
	Create(ctx context.Context, log *domain.StudyLog) error

	// Update persists an entry's incremented review count.
	// Returns ErrStudyLogNotFound if the entry does not exist.
	Update(ctx context.Context, log *domain.StudyLog) error
}
