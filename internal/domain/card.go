package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Maturity bucket thresholds. A card's status is a non-negative integer that
// grows as the card is answered; these two fixed cut-offs partition the status
// space into the new / learning / mature tiers used by deck statistics.
const (
	// LearningStatusMin is the lowest status counted as "learning".
	LearningStatusMin = 1

	// LearningStatusMax is the highest status counted as "learning".
	// Anything above it is mature.
	LearningStatusMax = 20
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = errors.New("card deck ID cannot be empty")

	// ErrCardFrontEmpty is returned when a card's front text is empty.
	ErrCardFrontEmpty = errors.New("card front cannot be empty")

	// ErrCardStatusNegative is returned when a card's status is below zero.
	ErrCardStatusNegative = errors.New("card status cannot be negative")

	// ErrCardRemindTimeZero is returned when a card has no remind time set.
	ErrCardRemindTimeZero = errors.New("card remind time must be set")
)

// Card represents a single flashcard belonging to a deck. Status is the
// card's maturity bucket and RemindTime the calendar date on or after which
// the card is next eligible for review.
type Card struct {
	ID         uuid.UUID `json:"id"`
	DeckID     uuid.UUID `json:"deck_id"`
	Front      string    `json:"front"`
	Back       string    `json:"back"`
	Status     int       `json:"status"`
	RemindTime time.Time `json:"remind_time"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewCard creates a new Card in the given deck. A fresh card starts in the
// "new" bucket (status 0) and is eligible for review immediately: its remind
// time is the supplied current date.
// Returns an error if validation fails.
func NewCard(deckID uuid.UUID, front, back string, today time.Time) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:         uuid.New(),
		DeckID:     deckID,
		Front:      front,
		Back:       back,
		Status:     0,
		RemindTime: today,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if c.Front == "" {
		return ErrCardFrontEmpty
	}

	if c.Status < 0 {
		return ErrCardStatusNegative
	}

	if c.RemindTime.IsZero() {
		return ErrCardRemindTimeZero
	}

	return nil
}

// IsNew reports whether the card is in the "new" maturity bucket.
func (c *Card) IsNew() bool {
	return c.Status == 0
}

// IsLearning reports whether the card is in the "learning" maturity bucket.
func (c *Card) IsLearning() bool {
	return c.Status >= LearningStatusMin && c.Status <= LearningStatusMax
}

// IsMature reports whether the card has graduated past the learning tier.
func (c *Card) IsMature() bool {
	return c.Status > LearningStatusMax
}

// IsDueOn reports whether the card is eligible for review on the given date.
// Note that this is a remind-time predicate, deliberately distinct from the
// IsMature tier: a mature card can be not yet due and a new card can be
// overdue.
func (c *Card) IsDueOn(today time.Time) bool {
	return !c.RemindTime.After(today)
}
