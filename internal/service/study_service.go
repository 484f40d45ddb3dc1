package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/clock"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// StudyService tracks how many cards a user has reviewed for a deck on a
// given calendar day. The (deck, user, date) entry is created lazily on the
// first review of the day and incremented thereafter.
type StudyService struct {
	logStore store.StudyLogStore
	clock    clock.Clock
	logger   *slog.Logger
}

// NewStudyService creates a new StudyService.
func NewStudyService(
	logStore store.StudyLogStore,
	clk clock.Clock,
	logger *slog.Logger,
) *StudyService {
	if logStore == nil {
		panic("logStore cannot be nil")
	}
	if clk == nil {
		panic("clock cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &StudyService{
		logStore: logStore,
		clock:    clk,
		logger:   logger.With(slog.String("component", "study_service")),
	}
}

// RecordReview adds one reviewed card to today's study log for the
// (deck, user) pair, creating the entry if this is the first review of the
// day. Review submission is one-at-a-time per user session, so the
// find-then-write pair needs no guard beyond what the store provides.
func (s *StudyService) RecordReview(ctx context.Context, deckID, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	today := s.clock.Today()

	entry, err := s.logStore.FindForDate(ctx, deckID, userID, today)
	if err != nil {
		if !errors.Is(err, store.ErrStudyLogNotFound) {
			return fmt.Errorf("failed to find study log: %w", err)
		}

		entry, err = domain.NewStudyLog(deckID, userID, today)
		if err != nil {
			return err
		}

		if err := s.logStore.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to create study log: %w", err)
		}

		log.Debug("study log started for day",
			slog.String("deck_id", deckID.String()),
			slog.String("user_id", userID.String()),
			slog.Time("log_date", today))
		return nil
	}

	entry.IncrementReviewCount()
	if err := s.logStore.Update(ctx, entry); err != nil {
		return fmt.Errorf("failed to update study log: %w", err)
	}

	log.Debug("study log incremented",
		slog.String("deck_id", deckID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("review_count", entry.ReviewCount))
	return nil
}

// GetTodayCount returns the number of cards the user has reviewed for the
// deck today. A missing entry means zero reviews; it is never an error.
func (s *StudyService) GetTodayCount(ctx context.Context, deckID, userID uuid.UUID) (int, error) {
	entry, err := s.logStore.FindForDate(ctx, deckID, userID, s.clock.Today())
	if err != nil {
		if errors.Is(err, store.ErrStudyLogNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to find study log: %w", err)
	}

	return entry.ReviewCount, nil
}
