package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gokulraj121/learn-it-faster/internal/middleware"
	"github.com/gokulraj121/learn-it-faster/internal/models"
	"github.com/gokulraj121/learn-it-faster/internal/services"
)

type FlashcardHandler struct {
	flashcards *services.FlashcardService
	billing    *services.BillingService
	export     *services.ExportService
}

func NewFlashcardHandler(flashcards *services.FlashcardService, billing *services.BillingService, export *services.ExportService) *FlashcardHandler {
	return &FlashcardHandler{flashcards: flashcards, billing: billing, export: export}
}

func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	plan := middleware.GetUserPlan(r.Context())

	// Validate before the quota gate so a bad request does not burn a
	// free-plan generation.
	var req models.GenerateFlashcardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"content": "Content is required"}, r))
		return
	}

	if err := h.billing.AllowGeneration(r.Context(), userID, plan); err != nil {
		handleServiceError(w, r, err)
		return
	}

	result, err := h.flashcards.Generate(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *FlashcardHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	decks, err := h.flashcards.ListDecks(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if decks == nil {
		decks = []*models.FlashcardDeck{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"decks": decks})
}

func (h *FlashcardHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	deckID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	deck, cards, err := h.flashcards.GetDeck(r.Context(), userID, deckID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if cards == nil {
		cards = []models.FlashcardCard{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deck":  deck,
		"cards": cards,
	})
}

func (h *FlashcardHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	deckID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	if err := h.flashcards.DeleteDeck(r.Context(), userID, deckID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Deck deleted"})
}

// ExportDeck streams the deck in the requested format. Supported formats:
// txt (default), csv, xlsx.
func (h *FlashcardHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	deckID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	deck, cards, err := h.flashcards.GetDeck(r.Context(), userID, deckID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	var out *services.ExportFormat
	switch r.URL.Query().Get("format") {
	case "", "txt":
		out = h.export.DeckTXT(deck, cards)
	case "csv":
		out = h.export.DeckCSV(deck, cards)
	case "xlsx":
		out, err = h.export.DeckXLSX(deck, cards)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
	default:
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Unsupported export format", r))
		return
	}

	writeDownload(w, out)
}

func writeDownload(w http.ResponseWriter, out *services.ExportFormat) {
	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+out.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(out.Data)
}
