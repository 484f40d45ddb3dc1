package api

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// In-memory store implementations for handler tests. They mirror the
// contract of the postgres stores, including sentinel errors and ordering.

type fakeDeckStore struct {
	mu    sync.Mutex
	decks map[uuid.UUID]*domain.Deck
}

var _ store.DeckStore = (*fakeDeckStore)(nil)

func newFakeDeckStore() *fakeDeckStore {
	return &fakeDeckStore{decks: make(map[uuid.UUID]*domain.Deck)}
}

func (s *fakeDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[deck.ID] = deck
	return nil
}

func (s *fakeDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deck, ok := s.decks[id]
	if !ok {
		return nil, store.ErrDeckNotFound
	}
	copied := *deck
	return &copied, nil
}

func (s *fakeDeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	decks := []*domain.Deck{}
	for _, deck := range s.decks {
		if deck.UserID == userID {
			copied := *deck
			decks = append(decks, &copied)
		}
	}
	sort.Slice(decks, func(i, j int) bool {
		return decks[i].CreatedAt.After(decks[j].CreatedAt)
	})
	return decks, nil
}

func (s *fakeDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.decks[deck.ID]; !ok {
		return store.ErrDeckNotFound
	}
	copied := *deck
	s.decks[deck.ID] = &copied
	return nil
}

func (s *fakeDeckStore) UpdateAll(ctx context.Context, decks []*domain.Deck) error {
	for _, deck := range decks {
		if err := s.Update(ctx, deck); err != nil && !errors.Is(err, store.ErrDeckNotFound) {
			return err
		}
	}
	return nil
}

func (s *fakeDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.decks[id]; !ok {
		return store.ErrDeckNotFound
	}
	delete(s.decks, id)
	return nil
}

type fakeCardStore struct {
	mu    sync.Mutex
	cards map[uuid.UUID]*domain.Card
}

var _ store.CardStore = (*fakeCardStore)(nil)

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{cards: make(map[uuid.UUID]*domain.Card)}
}

func (s *fakeCardStore) Create(ctx context.Context, card *domain.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *card
	s.cards[card.ID] = &copied
	return nil
}

func (s *fakeCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	copied := *card
	return &copied, nil
}

func (s *fakeCardStore) deckCardsLocked(deckID uuid.UUID) []*domain.Card {
	cards := []*domain.Card{}
	for _, card := range s.cards {
		if card.DeckID == deckID {
			copied := *card
			cards = append(cards, &copied)
		}
	}
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].RemindTime.Before(cards[j].RemindTime)
	})
	return cards
}

func (s *fakeCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deckCardsLocked(deckID), nil
}

func (s *fakeCardStore) ListDueByDeck(
	ctx context.Context,
	deckID uuid.UUID,
	today time.Time,
) ([]*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	due := []*domain.Card{}
	for _, card := range s.deckCardsLocked(deckID) {
		if !card.RemindTime.After(today) {
			due = append(due, card)
		}
	}
	return due, nil
}

func (s *fakeCardStore) UpdateSchedule(
	ctx context.Context,
	id uuid.UUID,
	status int,
	remindTime time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return store.ErrCardNotFound
	}
	card.Status = status
	card.RemindTime = remindTime
	card.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *fakeCardStore) CountByBucket(
	ctx context.Context,
	deckID uuid.UUID,
) (domain.DeckCounters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var counters domain.DeckCounters
	for _, card := range s.cards {
		if card.DeckID != deckID {
			continue
		}
		switch {
		case card.Status == 0:
			counters.NewCount++
		case card.Status >= domain.LearningStatusMin && card.Status <= domain.LearningStatusMax:
			counters.LearningCount++
		default:
			counters.DueCount++
		}
	}
	return counters, nil
}

func (s *fakeCardStore) CountDue(
	ctx context.Context,
	deckID uuid.UUID,
	today time.Time,
) (int, error) {
	due, err := s.ListDueByDeck(ctx, deckID, today)
	if err != nil {
		return 0, err
	}
	return len(due), nil
}

func (s *fakeCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[id]; !ok {
		return store.ErrCardNotFound
	}
	delete(s.cards, id)
	return nil
}

func (s *fakeCardStore) DeleteByDeck(ctx context.Context, deckID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, card := range s.cards {
		if card.DeckID == deckID {
			delete(s.cards, id)
		}
	}
	return nil
}

type fakeStudyLogStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*domain.StudyLog
}

var _ store.StudyLogStore = (*fakeStudyLogStore)(nil)

func newFakeStudyLogStore() *fakeStudyLogStore {
	return &fakeStudyLogStore{entries: make(map[uuid.UUID]*domain.StudyLog)}
}

func (s *fakeStudyLogStore) FindForDate(
	ctx context.Context,
	deckID, userID uuid.UUID,
	date time.Time,
) (*domain.StudyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.DeckID == deckID && entry.UserID == userID && entry.LogDate.Equal(date) {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, store.ErrStudyLogNotFound
}

func (s *fakeStudyLogStore) Create(ctx context.Context, entry *domain.StudyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.entries {
		if existing.DeckID == entry.DeckID &&
			existing.UserID == entry.UserID &&
			existing.LogDate.Equal(entry.LogDate) {
			return store.ErrDuplicate
		}
	}
	copied := *entry
	s.entries[entry.ID] = &copied
	return nil
}

func (s *fakeStudyLogStore) Update(ctx context.Context, entry *domain.StudyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.ID]; !ok {
		return store.ErrStudyLogNotFound
	}
	copied := *entry
	s.entries[entry.ID] = &copied
	return nil
}
