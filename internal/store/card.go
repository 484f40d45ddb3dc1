package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card to the store.
	// Returns ErrInvalidEntity if the owning deck does not exist.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByDeck returns the deck's cards ordered by remind time ascending,
	// so the first element is the next card to study.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)

	// ListDueByDeck returns the deck's cards with a remind time on or before
	// the given date, ordered by remind time ascending.
	ListDueByDeck(ctx context.Context, deckID uuid.UUID, today time.Time) ([]*domain.Card, error)

	// UpdateSchedule persists a card's new status and remind time after an
	// answer. The row update is a single statement, so concurrent answers for
	// the same card are serialized by the database.
	// Returns ErrCardNotFound if the card does not exist.
	UpdateSchedule(ctx context.Context, id uuid.UUID, status int, remindTime time.Time) error

	// CountByBucket recomputes the deck's maturity-tier counters
	// (status == 0, 1..20, >= 21) with a single scan of the live card set.
	CountByBucket(ctx context.Context, deckID uuid.UUID) (domain.DeckCounters, error)

	// CountDue counts the deck's cards whose remind time is on or before the
	// given date. This is the due-for-review predicate, deliberately distinct
	// from the mature tier counted by CountByBucket.
	CountDue(ctx context.Context, deckID uuid.UUID, today time.Time) (int, error)

	// Delete removes a card from the store by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByDeck removes all cards belonging to a deck.
	DeleteByDeck(ctx context.Context, deckID uuid.UUID) error
}
