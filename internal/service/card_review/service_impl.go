package card_review

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/domain/srs"
	"github.com/flashdeck/flashdeck-api/internal/platform/clock"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// Verify interface compliance at compile time
var _ CardReviewService = (*cardReviewServiceImpl)(nil)

// cardReviewServiceImpl implements the CardReviewService interface.
type cardReviewServiceImpl struct {
	cardStore store.CardStore
	clock     clock.Clock
	logger    *slog.Logger
}

// NewCardReviewService creates a new CardReviewService implementation.
func NewCardReviewService(
	cardStore store.CardStore,
	clk clock.Clock,
	logger *slog.Logger,
) CardReviewService {
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if clk == nil {
		panic("clock cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &cardReviewServiceImpl{
		cardStore: cardStore,
		clock:     clk,
		logger:    logger.With(slog.String("component", "card_review_service")),
	}
}

// RecordAnswer implements CardReviewService.RecordAnswer.
func (s *cardReviewServiceImpl) RecordAnswer(
	ctx context.Context,
	cardID uuid.UUID,
	grade srs.Grade,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review answer",
		slog.String("card_id", cardID.String()),
		slog.String("grade", grade.String()))

	if !grade.Valid() {
		log.Warn("invalid answer grade",
			slog.String("card_id", cardID.String()),
			slog.Int("grade", int(grade)))
		return nil, ErrInvalidGrade
	}

	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			log.Warn("card not found for review", slog.String("card_id", cardID.String()))
			return nil, ErrCardNotFound
		}
		return nil, NewRecordAnswerError("failed to load card", err)
	}

	review, err := srs.Schedule(card.Status, card.RemindTime, grade, s.clock.Today())
	if err != nil {
		// Grade already validated above; anything here is a programming error.
		return nil, NewRecordAnswerError("failed to compute schedule", err)
	}

	if err := s.cardStore.UpdateSchedule(ctx, card.ID, review.Status, review.RemindTime); err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, NewRecordAnswerError("failed to persist schedule", err)
	}

	card.Status = review.Status
	card.RemindTime = review.RemindTime

	log.Debug("review answer processed",
		slog.String("card_id", cardID.String()),
		slog.String("grade", grade.String()),
		slog.Int("status", card.Status),
		slog.Time("remind_time", card.RemindTime))

	return card, nil
}
