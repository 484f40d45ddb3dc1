package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	deckID := uuid.New()
	today := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	card, err := NewCard(deckID, "What is Go?", "A programming language", today)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if card.DeckID != deckID {
		t.Errorf("Expected deck ID %s, got %s", deckID, card.DeckID)
	}
	if card.Status != 0 {
		t.Errorf("Expected new card status 0, got %d", card.Status)
	}
	if !card.RemindTime.Equal(today) {
		t.Errorf("Expected remind time %s, got %s", today, card.RemindTime)
	}
	if card.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Invalid deck ID
	if _, err := NewCard(uuid.Nil, "front", "back", today); err != ErrCardDeckIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardDeckIDEmpty, err)
	}

	// Empty front
	if _, err := NewCard(deckID, "", "back", today); err != ErrCardFrontEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardFrontEmpty, err)
	}
}

func TestCardMaturityBuckets(t *testing.T) {
	t.Parallel()

	card := Card{Status: 0}
	if !card.IsNew() || card.IsLearning() || card.IsMature() {
		t.Errorf("status 0 should be new only")
	}

	for _, status := range []int{LearningStatusMin, 10, LearningStatusMax} {
		card.Status = status
		if !card.IsLearning() || card.IsNew() || card.IsMature() {
			t.Errorf("status %d should be learning only", status)
		}
	}

	for _, status := range []int{LearningStatusMax + 1, 30, 100} {
		card.Status = status
		if !card.IsMature() || card.IsNew() || card.IsLearning() {
			t.Errorf("status %d should be mature only", status)
		}
	}
}

func TestCardIsDueOn(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	card := Card{RemindTime: today}

	if !card.IsDueOn(today) {
		t.Error("card due exactly today should be due")
	}

	card.RemindTime = today.AddDate(0, 0, -3)
	if !card.IsDueOn(today) {
		t.Error("overdue card should be due")
	}

	card.RemindTime = today.AddDate(0, 0, 1)
	if card.IsDueOn(today) {
		t.Error("future card should not be due")
	}
}
