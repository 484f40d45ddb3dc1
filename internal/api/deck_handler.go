// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/service"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// DeckHandler handles deck-related HTTP requests.
type DeckHandler struct {
	deckService *service.DeckService
	logger      *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(deckService *service.DeckService, logger *slog.Logger) *DeckHandler {
	if deckService == nil {
		panic("deckService cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		deckService: deckService,
		logger:      logger.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /decks requests. Every deck is returned with
// freshly recomputed statistics.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	decks, err := h.deckService.RefreshStatsForUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list decks", err)
		return
	}

	response := make([]DeckResponse, 0, len(decks))
	for _, deck := range decks {
		response = append(response, NewDeckResponse(deck))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateDeck handles POST /decks requests.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	deck, err := h.deckService.CreateDeck(r.Context(), userID, req.Name)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create deck"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewDeckResponse(deck))
}

// GetDeck handles GET /decks/{id} requests. The deck's statistics are
// recomputed on every read.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	deck, err := loadOwnedDeck(w, r, h.deckService, userID, deckID)
	if err != nil {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewDeckResponse(deck))
}

// DeleteDeck handles DELETE /decks/{id} requests. The deck's cards go
// with it.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if _, err := loadOwnedDeck(w, r, h.deckService, userID, deckID); err != nil {
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), deckID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to delete deck"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("deck deleted",
		slog.String("deck_id", deckID.String()),
		slog.String("user_id", userID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// loadOwnedDeck fetches the deck and enforces ownership, writing the error
// response itself on failure. The returned error only signals that a
// response was already written.
func loadOwnedDeck(
	w http.ResponseWriter,
	r *http.Request,
	deckService *service.DeckService,
	userID, deckID uuid.UUID,
) (*domain.Deck, error) {
	deck, err := deckService.GetDeck(r.Context(), deckID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Deck not found")
			return nil, err
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load deck", err)
		return nil, err
	}

	if deck.UserID != userID {
		shared.RespondWithErrorAndLog(w, r, http.StatusForbidden,
			"You do not own this deck", ErrNotDeckOwner)
		return nil, ErrNotDeckOwner
	}

	return deck, nil
}
