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

type InfographicHandler struct {
	infographics *services.InfographicService
	billing      *services.BillingService
	export       *services.ExportService
}

func NewInfographicHandler(infographics *services.InfographicService, billing *services.BillingService, export *services.ExportService) *InfographicHandler {
	return &InfographicHandler{infographics: infographics, billing: billing, export: export}
}

func (h *InfographicHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	plan := middleware.GetUserPlan(r.Context())

	// Validate before the quota gate so a bad request does not burn a
	// free-plan generation.
	var req models.GenerateInfographicRequest
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

	result, err := h.infographics.Generate(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *InfographicHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	items, err := h.infographics.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []*models.Infographic{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"infographics": items})
}

func (h *InfographicHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid infographic ID", r))
		return
	}

	item, err := h.infographics.Get(r.Context(), userID, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *InfographicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid infographic ID", r))
		return
	}

	if err := h.infographics.Delete(r.Context(), userID, id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Infographic deleted"})
}

// Export streams the infographic in the requested format. Supported formats:
// txt (default), html.
func (h *InfographicHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid infographic ID", r))
		return
	}

	item, err := h.infographics.Get(r.Context(), userID, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	var rec models.InfographicRecord
	if err := json.Unmarshal(item.ContentJSON, &rec); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Stored infographic is unreadable", r))
		return
	}

	var out *services.ExportFormat
	switch r.URL.Query().Get("format") {
	case "", "txt":
		out = h.export.InfographicTXT(item.Title, &rec)
	case "html":
		out, err = h.export.InfographicHTML(item.Title, &rec)
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
