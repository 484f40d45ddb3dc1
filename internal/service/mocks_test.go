package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// MockCardStore is a mock implementation of store.CardStore.
type MockCardStore struct {
	mock.Mock
}

func (m *MockCardStore) Create(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardStore) ListDueByDeck(
	ctx context.Context,
	deckID uuid.UUID,
	today time.Time,
) ([]*domain.Card, error) {
	args := m.Called(ctx, deckID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardStore) UpdateSchedule(
	ctx context.Context,
	id uuid.UUID,
	status int,
	remindTime time.Time,
) error {
	args := m.Called(ctx, id, status, remindTime)
	return args.Error(0)
}

func (m *MockCardStore) CountByBucket(
	ctx context.Context,
	deckID uuid.UUID,
) (domain.DeckCounters, error) {
	args := m.Called(ctx, deckID)
	return args.Get(0).(domain.DeckCounters), args.Error(1)
}

func (m *MockCardStore) CountDue(
	ctx context.Context,
	deckID uuid.UUID,
	today time.Time,
) (int, error) {
	args := m.Called(ctx, deckID, today)
	return args.Int(0), args.Error(1)
}

func (m *MockCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardStore) DeleteByDeck(ctx context.Context, deckID uuid.UUID) error {
	args := m.Called(ctx, deckID)
	return args.Error(0)
}

// MockDeckStore is a mock implementation of store.DeckStore.
type MockDeckStore struct {
	mock.Mock
}

func (m *MockDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckStore) UpdateAll(ctx context.Context, decks []*domain.Deck) error {
	args := m.Called(ctx, decks)
	return args.Error(0)
}

func (m *MockDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStudyLogStore is a mock implementation of store.StudyLogStore.
type MockStudyLogStore struct {
	mock.Mock
}

func (m *MockStudyLogStore) FindForDate(
	ctx context.Context,
	deckID, userID uuid.UUID,
	date time.Time,
) (*domain.StudyLog, error) {
	args := m.Called(ctx, deckID, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyLog), args.Error(1)
}

func (m *MockStudyLogStore) Create(ctx context.Context, log *domain.StudyLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockStudyLogStore) Update(ctx context.Context, log *domain.StudyLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
