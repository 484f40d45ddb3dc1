package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
type DeckStore interface {
	// Create saves a new deck to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// ListByUser returns all decks owned by the user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)

	// Update persists the deck's name and cached counters.
	// Returns ErrDeckNotFound if the deck does not exist.
	Update(ctx context.Context, deck *domain.Deck) error

	// UpdateAll persists cached counters for several decks. Missing rows are
	// skipped; refreshing statistics for a deck deleted mid-listing is not an
	// error.
	UpdateAll(ctx context.Context, decks []*domain.Deck) error

	// Delete removes a deck from the store by its ID. The deck's cards must
	// be removed first; the service layer sequences that.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
