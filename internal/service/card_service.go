package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/clock"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// CardService manages card creation and retrieval for study sessions.
type CardService struct {
	cardStore store.CardStore
	clock     clock.Clock
	logger    *slog.Logger
}

// NewCardService creates a new CardService.
func NewCardService(
	cardStore store.CardStore,
	clk clock.Clock,
	logger *slog.Logger,
) *CardService {
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if clk == nil {
		panic("clock cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CardService{
		cardStore: cardStore,
		clock:     clk,
		logger:    logger.With(slog.String("component", "card_service")),
	}
}

// CreateCard creates a new card in the deck. A fresh card starts with
// status 0 and is eligible for review today.
func (s *CardService) CreateCard(
	ctx context.Context,
	deckID uuid.UUID,
	front, back string,
) (*domain.Card, error) {
	card, err := domain.NewCard(deckID, front, back, s.clock.Today())
	if err != nil {
		return nil, err
	}

	if err := s.cardStore.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return card, nil
}

// GetCard loads a single card.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *CardService) GetCard(ctx context.Context, cardID uuid.UUID) (*domain.Card, error) {
	return s.cardStore.GetByID(ctx, cardID)
}

// ListCards returns the deck's cards ordered by remind time ascending.
func (s *CardService) ListCards(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	return s.cardStore.ListByDeck(ctx, deckID)
}

// NextCard returns the deck's next card to study (the one with the earliest
// remind time), or nil when the deck has no cards.
func (s *CardService) NextCard(ctx context.Context, deckID uuid.UUID) (*domain.Card, error) {
	cards, err := s.cardStore.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	if len(cards) == 0 {
		return nil, nil
	}

	return cards[0], nil
}

// DueCards returns the deck's cards that are due for review today or
// overdue, using the remind-time predicate (not the maturity tier).
func (s *CardService) DueCards(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	return s.cardStore.ListDueByDeck(ctx, deckID, s.clock.Today())
}

// DeleteCard removes a card.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *CardService) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	return s.cardStore.Delete(ctx, cardID)
}
