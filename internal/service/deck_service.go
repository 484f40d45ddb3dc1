// Package service contains the application services coordinating domain
// logic with persistence: deck statistics aggregation, card management, and
// study session tracking.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// DeckService manages decks and their derived statistics.
type DeckService struct {
	deckStore store.DeckStore
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewDeckService creates a new DeckService.
func NewDeckService(
	deckStore store.DeckStore,
	cardStore store.CardStore,
	logger *slog.Logger,
) *DeckService {
	if deckStore == nil {
		panic("deckStore cannot be nil")
	}
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &DeckService{
		deckStore: deckStore,
		cardStore: cardStore,
		logger:    logger.With(slog.String("component", "deck_service")),
	}
}

// CreateDeck creates a new empty deck for the user.
func (s *DeckService) CreateDeck(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (*domain.Deck, error) {
	deck, err := domain.NewDeck(userID, name)
	if err != nil {
		return nil, err
	}

	if err := s.deckStore.Create(ctx, deck); err != nil {
		return nil, fmt.Errorf("failed to create deck: %w", err)
	}

	return deck, nil
}

// GetDeck loads a deck with freshly recomputed statistics.
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *DeckService) GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}

	if err := s.refreshDeck(ctx, deck); err != nil {
		return nil, err
	}

	if err := s.deckStore.Update(ctx, deck); err != nil {
		return nil, fmt.Errorf("failed to persist deck counters: %w", err)
	}

	return deck, nil
}

// RefreshStats recomputes the deck's counters from its live card set and
// writes them back onto the deck row. The derived numbers are never served
// from a cache; every call rescans, so they cannot drift from the cards.
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *DeckService) RefreshStats(
	ctx context.Context,
	deckID uuid.UUID,
) (domain.DeckCounters, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		return domain.DeckCounters{}, err
	}

	if err := s.refreshDeck(ctx, deck); err != nil {
		return domain.DeckCounters{}, err
	}

	// Write-back is an optimization for display paths that skip
	// recomputation, not a correctness requirement.
	if err := s.deckStore.Update(ctx, deck); err != nil {
		return domain.DeckCounters{}, fmt.Errorf("failed to persist deck counters: %w", err)
	}

	log.Debug("deck statistics refreshed",
		slog.String("deck_id", deckID.String()),
		slog.Int("new_count", deck.NewCount),
		slog.Int("learning_count", deck.LearningCount),
		slog.Int("due_count", deck.DueCount))

	return domain.DeckCounters{
		NewCount:      deck.NewCount,
		LearningCount: deck.LearningCount,
		DueCount:      deck.DueCount,
	}, nil
}

// RefreshStatsForUser lists the user's decks with freshly recomputed
// statistics for each, persisting the counters in one pass.
func (s *DeckService) RefreshStatsForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Deck, error) {
	decks, err := s.deckStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}

	for _, deck := range decks {
		if err := s.refreshDeck(ctx, deck); err != nil {
			return nil, err
		}
	}

	if err := s.deckStore.UpdateAll(ctx, decks); err != nil {
		return nil, fmt.Errorf("failed to persist deck counters: %w", err)
	}

	return decks, nil
}

// DeleteDeck removes a deck and all of its cards.
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *DeckService) DeleteDeck(ctx context.Context, deckID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Cards first, then the deck itself.
	if err := s.cardStore.DeleteByDeck(ctx, deckID); err != nil {
		return fmt.Errorf("failed to delete deck cards: %w", err)
	}

	if err := s.deckStore.Delete(ctx, deckID); err != nil {
		return err
	}

	log.Info("deck deleted with cards", slog.String("deck_id", deckID.String()))
	return nil
}

// refreshDeck recomputes the counters for a single deck in memory.
func (s *DeckService) refreshDeck(ctx context.Context, deck *domain.Deck) error {
	counters, err := s.cardStore.CountByBucket(ctx, deck.ID)
	if err != nil {
		return fmt.Errorf("failed to count cards for deck %s: %w", deck.ID, err)
	}

	deck.ApplyCounters(counters)
	return nil
}
