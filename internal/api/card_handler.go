package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/domain/srs"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/redact"
	"github.com/flashdeck/flashdeck-api/internal/service"
	"github.com/flashdeck/flashdeck-api/internal/service/card_review"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	cardService       *service.CardService
	cardReviewService card_review.CardReviewService
	studyService      *service.StudyService
	deckService       *service.DeckService
	logger            *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(
	cardService *service.CardService,
	cardReviewService card_review.CardReviewService,
	studyService *service.StudyService,
	deckService *service.DeckService,
	logger *slog.Logger,
) *CardHandler {
	if cardService == nil {
		panic("cardService cannot be nil")
	}
	if cardReviewService == nil {
		panic("cardReviewService cannot be nil")
	}
	if studyService == nil {
		panic("studyService cannot be nil")
	}
	if deckService == nil {
		panic("deckService cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cardService:       cardService,
		cardReviewService: cardReviewService,
		studyService:      studyService,
		deckService:       deckService,
		logger:            logger.With(slog.String("component", "card_handler")),
	}
}

// CreateCard handles POST /decks/{id}/cards requests.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if _, err := loadOwnedDeck(w, r, h.deckService, userID, deckID); err != nil {
		return
	}

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), deckID, req.Front, req.Back)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create card"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", deckID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewCardResponse(card))
}

// ListCards handles GET /decks/{id}/cards requests. Cards come back ordered
// by remind time ascending.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if _, err := loadOwnedDeck(w, r, h.deckService, userID, deckID); err != nil {
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list cards", err)
		return
	}

	response := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		response = append(response, NewCardResponse(card))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetNextCard handles GET /decks/{id}/cards/next requests. It returns the
// deck's card with the earliest remind time, or 204 when the deck is empty.
func (h *CardHandler) GetNextCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if _, err := loadOwnedDeck(w, r, h.deckService, userID, deckID); err != nil {
		return
	}

	card, err := h.cardService.NextCard(r.Context(), deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to get next card", err)
		return
	}
	if card == nil {
		log.Debug("deck has no cards to study", slog.String("deck_id", deckID.String()))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardResponse(card))
}

// GetDueCards handles GET /decks/{id}/cards/due requests. A card is due
// when its remind time is on or before today.
func (h *CardHandler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if _, err := loadOwnedDeck(w, r, h.deckService, userID, deckID); err != nil {
		return
	}

	cards, err := h.cardService.DueCards(r.Context(), deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list due cards", err)
		return
	}

	response := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		response = append(response, NewCardResponse(card))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetStudyCount handles GET /decks/{id}/study-count requests. It reports
// how many reviews the user has logged for the deck today.
func (h *CardHandler) GetStudyCount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if _, err := loadOwnedDeck(w, r, h.deckService, userID, deckID); err != nil {
		return
	}

	count, err := h.studyService.GetTodayCount(r.Context(), deckID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to get study count", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StudyCountResponse{
		DeckID:      deckID,
		ReviewCount: count,
	})
}

// SubmitAnswer handles POST /cards/{id}/answer requests. It applies the
// graded answer to the card's schedule and then logs the review in the
// deck's daily study log.
func (h *CardHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req AnswerCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("card_id", cardID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	deck, ok := h.loadOwnedDeckForCard(w, r, userID, cardID)
	if !ok {
		return
	}

	card, err := h.cardReviewService.RecordAnswer(r.Context(), cardID, srs.Grade(req.Grade))
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit answer"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	// The review counts toward today's study log even if the card came
	// back unchanged. A logging failure does not undo the schedule update.
	if err := h.studyService.RecordReview(r.Context(), deck.ID, userID); err != nil {
		log.Error("failed to record study log entry",
			slog.String("error", redact.Error(err)),
			slog.String("deck_id", deck.ID.String()),
			slog.String("user_id", userID.String()))
	}

	log.Debug("answer submitted",
		slog.String("card_id", cardID.String()),
		slog.Int("grade", req.Grade),
		slog.Int("new_status", card.Status))
	shared.RespondWithJSON(w, r, http.StatusOK, NewCardResponse(card))
}

// DeleteCard handles DELETE /cards/{id} requests.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if _, ok := h.loadOwnedDeckForCard(w, r, userID, cardID); !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), cardID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to delete card"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("card deleted", slog.String("card_id", cardID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// loadOwnedDeckForCard resolves the card's deck and enforces that the
// authenticated user owns it, writing the error response itself on failure.
func (h *CardHandler) loadOwnedDeckForCard(
	w http.ResponseWriter,
	r *http.Request,
	userID, cardID uuid.UUID,
) (*domain.Deck, bool) {
	card, err := h.cardService.GetCard(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Card not found")
			return nil, false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load card", err)
		return nil, false
	}

	deck, err := loadOwnedDeck(w, r, h.deckService, userID, card.DeckID)
	if err != nil {
		return nil, false
	}
	return deck, true
}
