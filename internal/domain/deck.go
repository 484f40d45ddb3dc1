package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Deck-specific validation errors
var (
	// ErrDeckIDEmpty is returned when a deck ID is empty or nil.
	ErrDeckIDEmpty = errors.New("deck ID cannot be empty")

	// ErrDeckUserIDEmpty is returned when a deck's user ID is empty or nil.
	ErrDeckUserIDEmpty = errors.New("deck user ID cannot be empty")

	// ErrDeckNameEmpty is returned when a deck's name is empty.
	ErrDeckNameEmpty = errors.New("deck name cannot be empty")
)

// Deck represents a named collection of cards owned by one user.
//
// The three counters are derived values: they are always recomputable from
// the deck's live card set and are refreshed on every read that exposes them.
// The stored copies only exist so that display paths that skip recomputation
// still show the last-known numbers; they are never an independent source of
// truth.
type Deck struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	NewCount      int       `json:"new_count"`
	LearningCount int       `json:"learning_count"`
	DueCount      int       `json:"due_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DeckCounters holds the recomputed per-deck statistics.
type DeckCounters struct {
	NewCount      int `json:"new_count"`
	LearningCount int `json:"learning_count"`
	DueCount      int `json:"due_count"`
}

// NewDeck creates a new Deck owned by the given user.
// Returns an error if validation fails.
func NewDeck(userID uuid.UUID, name string) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
// Returns an error if any field fails validation.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if d.UserID == uuid.Nil {
		return ErrDeckUserIDEmpty
	}

	if d.Name == "" {
		return ErrDeckNameEmpty
	}

	return nil
}

// ApplyCounters writes recomputed statistics onto the deck and bumps the
// update timestamp.
func (d *Deck) ApplyCounters(c DeckCounters) {
	d.NewCount = c.NewCount
	d.LearningCount = c.LearningCount
	d.DueCount = c.DueCount
	d.UpdatedAt = time.Now().UTC()
}
