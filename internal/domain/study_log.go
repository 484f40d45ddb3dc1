package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StudyLog validation errors
var (
	// ErrStudyLogIDEmpty is returned when a study log ID is empty or nil.
	ErrStudyLogIDEmpty = errors.New("study log ID cannot be empty")

	// ErrStudyLogDeckIDEmpty is returned when a study log's deck ID is empty or nil.
	ErrStudyLogDeckIDEmpty = errors.New("study log deck ID cannot be empty")

	// ErrStudyLogUserIDEmpty is returned when a study log's user ID is empty or nil.
	ErrStudyLogUserIDEmpty = errors.New("study log user ID cannot be empty")

	// ErrStudyLogDateZero is returned when a study log has no date set.
	ErrStudyLogDateZero = errors.New("study log date must be set")

	// ErrStudyLogCountInvalid is returned when a study log's review count is not positive.
	ErrStudyLogCountInvalid = errors.New("study log review count must be positive")
)

// StudyLog records how many cards a user has reviewed for a deck on one
// calendar day. There is at most one entry per (deck, user, date); it is
// created lazily on the first review of the day and incremented thereafter.
type StudyLog struct {
	ID          uuid.UUID `json:"id"`
	DeckID      uuid.UUID `json:"deck_id"`
	UserID      uuid.UUID `json:"user_id"`
	LogDate     time.Time `json:"log_date"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewStudyLog creates the first study log entry of the day for a (deck, user)
// pair, with a review count of one.
// Returns an error if validation fails.
func NewStudyLog(deckID, userID uuid.UUID, logDate time.Time) (*StudyLog, error) {
	now := time.Now().UTC()
	log := &StudyLog{
		ID:          uuid.New(),
		DeckID:      deckID,
		UserID:      userID,
		LogDate:     logDate,
		ReviewCount: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the StudyLog has valid data.
// Returns an error if any field fails validation.
func (l *StudyLog) Validate() error {
	if l.ID == uuid.Nil {
		return ErrStudyLogIDEmpty
	}

	if l.DeckID == uuid.Nil {
		return ErrStudyLogDeckIDEmpty
	}

	if l.UserID == uuid.Nil {
		return ErrStudyLogUserIDEmpty
	}

	if l.LogDate.IsZero() {
		return ErrStudyLogDateZero
	}

	if l.ReviewCount < 1 {
		return ErrStudyLogCountInvalid
	}

	return nil
}

// IncrementReviewCount adds one reviewed card to the entry and bumps the
// update timestamp.
func (l *StudyLog) IncrementReviewCount() {
	l.ReviewCount++
	l.UpdatedAt = time.Now().UTC()
}
