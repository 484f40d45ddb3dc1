package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// CreateDeckRequest defines the payload for creating a deck.
type CreateDeckRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// DeckResponse is the API representation of a deck with its statistics.
type DeckResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	NewCount      int       `json:"new_count"`
	LearningCount int       `json:"learning_count"`
	DueCount      int       `json:"due_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewDeckResponse maps a domain deck to its API representation.
func NewDeckResponse(deck *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:            deck.ID,
		Name:          deck.Name,
		NewCount:      deck.NewCount,
		LearningCount: deck.LearningCount,
		DueCount:      deck.DueCount,
		CreatedAt:     deck.CreatedAt,
	}
}

// CreateCardRequest defines the payload for creating a card.
type CreateCardRequest struct {
	Front string `json:"front" validate:"required,min=1"`
	Back  string `json:"back"  validate:"omitempty"`
}

// CardResponse is the API representation of a card.
type CardResponse struct {
	ID         uuid.UUID `json:"id"`
	DeckID     uuid.UUID `json:"deck_id"`
	Front      string    `json:"front"`
	Back       string    `json:"back"`
	Status     int       `json:"status"`
	RemindTime time.Time `json:"remind_time"`
}

// NewCardResponse maps a domain card to its API representation.
func NewCardResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:         card.ID,
		DeckID:     card.DeckID,
		Front:      card.Front,
		Back:       card.Back,
		Status:     card.Status,
		RemindTime: card.RemindTime,
	}
}

// AnswerCardRequest defines the payload for grading a card review.
// Grade uses the 1..4 scale: 1 again, 2 hard, 3 good, 4 easy.
type AnswerCardRequest struct {
	Grade int `json:"grade" validate:"required,min=1,max=4"`
}

// StudyCountResponse reports how many reviews the user has logged today
// for a deck.
type StudyCountResponse struct {
	DeckID      uuid.UUID `json:"deck_id"`
	ReviewCount int       `json:"review_count"`
}
