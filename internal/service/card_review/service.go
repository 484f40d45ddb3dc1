// Package card_review wires the pure review scheduler to card persistence:
// it loads a card, computes its next state from a graded answer, and persists
// exactly one card update per call.
package card_review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/domain/srs"
)

// CardReviewService processes graded answers for flashcards.
type CardReviewService interface {
	// RecordAnswer applies the answer grade to the card's schedule and
	// persists the updated status and remind time.
	//
	// Returns:
	//   - (*domain.Card, nil): the card with its new schedule
	//   - (nil, ErrCardNotFound): the card does not exist
	//   - (nil, ErrInvalidGrade): the grade is outside the Again..Easy range
	//
	// Both failures are terminal for the call; no retries happen here.
	// Recording the answer in the daily study log is a separate call on the
	// study service, not an implicit side effect of RecordAnswer, so callers
	// must invoke both.
	RecordAnswer(ctx context.Context, cardID uuid.UUID, grade srs.Grade) (*domain.Card, error)
}

// Common error types for CardReviewService
var (
	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidGrade indicates an out-of-range answer grade.
	ErrInvalidGrade = srs.ErrInvalidGrade
)

// ServiceError wraps errors from the card review service with additional
// context, so consumers can differentiate failures with errors.As instead of
// string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "record_answer")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewRecordAnswerError returns a new ServiceError for the record_answer operation.
func NewRecordAnswerError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "record_answer",
		Message:   message,
		Err:       err,
	}
}
