package card_review_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/domain/srs"
	"github.com/flashdeck/flashdeck-api/internal/platform/clock"
	"github.com/flashdeck/flashdeck-api/internal/service/card_review"
	"github.com/flashdeck/flashdeck-api/internal/store"
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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCard(t *testing.T, status int, remindTime time.Time) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(uuid.New(), "front", "back", remindTime)
	require.NoError(t, err)
	card.Status = status
	return card
}

func TestRecordAnswerGoodAdvancesSchedule(t *testing.T) {
	t.Parallel()

	clk := clock.NewFixed(time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC))
	cardStore := new(MockCardStore)
	svc := card_review.NewCardReviewService(cardStore, clk, testLogger())

	card := newTestCard(t, 0, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	wantRemind := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	cardStore.On("GetByID", mock.Anything, card.ID).Return(card, nil)
	cardStore.On("UpdateSchedule", mock.Anything, card.ID, 3, wantRemind).Return(nil)

	got, err := svc.RecordAnswer(context.Background(), card.ID, srs.GradeGood)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Status)
	assert.True(t, got.RemindTime.Equal(wantRemind))
	cardStore.AssertExpectations(t)
}

func TestRecordAnswerAgainResetsFutureCard(t *testing.T) {
	t.Parallel()

	clk := clock.NewFixed(time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC))
	cardStore := new(MockCardStore)
	svc := card_review.NewCardReviewService(cardStore, clk, testLogger())

	card := newTestCard(t, 8, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))

	cardStore.On("GetByID", mock.Anything, card.ID).Return(card, nil)
	cardStore.On("UpdateSchedule", mock.Anything, card.ID, 0, clk.Today()).Return(nil)

	got, err := svc.RecordAnswer(context.Background(), card.ID, srs.GradeAgain)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Status)
	assert.True(t, got.RemindTime.Equal(clk.Today()),
		"forgotten future card should become due today")
}

func TestRecordAnswerInvalidGrade(t *testing.T) {
	t.Parallel()

	clk := clock.NewFixed(time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC))
	cardStore := new(MockCardStore)
	svc := card_review.NewCardReviewService(cardStore, clk, testLogger())

	_, err := svc.RecordAnswer(context.Background(), uuid.New(), srs.Grade(9))
	assert.ErrorIs(t, err, card_review.ErrInvalidGrade)
	cardStore.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRecordAnswerCardNotFound(t *testing.T) {
	t.Parallel()

	clk := clock.NewFixed(time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC))
	cardStore := new(MockCardStore)
	svc := card_review.NewCardReviewService(cardStore, clk, testLogger())

	cardID := uuid.New()
	cardStore.On("GetByID", mock.Anything, cardID).Return(nil, store.ErrCardNotFound)

	_, err := svc.RecordAnswer(context.Background(), cardID, srs.GradeGood)
	assert.ErrorIs(t, err, card_review.ErrCardNotFound)
}

func TestRecordAnswerPersistFailureWrapsError(t *testing.T) {
	t.Parallel()

	clk := clock.NewFixed(time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC))
	cardStore := new(MockCardStore)
	svc := card_review.NewCardReviewService(cardStore, clk, testLogger())

	card := newTestCard(t, 2, clk.Today())
	dbErr := errors.New("connection reset")

	cardStore.On("GetByID", mock.Anything, card.ID).Return(card, nil)
	cardStore.On("UpdateSchedule", mock.Anything, card.ID, mock.Anything, mock.Anything).
		Return(dbErr)

	_, err := svc.RecordAnswer(context.Background(), card.ID, srs.GradeHard)
	require.Error(t, err)

	var svcErr *card_review.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.ErrorIs(t, err, dbErr)
}
