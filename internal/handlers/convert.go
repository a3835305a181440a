package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gokulraj121/learn-it-faster/internal/middleware"
	"github.com/gokulraj121/learn-it-faster/internal/models"
	"github.com/gokulraj121/learn-it-faster/internal/repository"
	"github.com/gokulraj121/learn-it-faster/internal/services"
)

type ConvertHandler struct {
	convert *services.ConvertService
	repo    *repository.ConversionRepo
}

func NewConvertHandler(convert *services.ConvertService, repo *repository.ConversionRepo) *ConvertHandler {
	return &ConvertHandler{convert: convert, repo: repo}
}

// Convert runs a file conversion. The endpoint is public; when the request
// carries a valid session the conversion is recorded against the user.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req models.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.FileContent) == "" {
		fieldErrors["fileContent"] = "File content is required"
	}
	if strings.TrimSpace(req.FileName) == "" {
		fieldErrors["fileName"] = "File name is required"
	}
	if strings.TrimSpace(req.ConversionType) == "" {
		fieldErrors["conversionType"] = "Conversion type is required"
	}
	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fieldErrors, r))
		return
	}

	result, err := h.convert.Convert(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	go h.record(middleware.GetUserID(r.Context()), &req, result)

	writeJSON(w, http.StatusOK, result)
}

func (h *ConvertHandler) record(userID uuid.UUID, req *models.ConvertRequest, result *models.ConversionResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := &models.Conversion{
		ConversionType: req.ConversionType,
		InputFilename:  req.FileName,
		OutputFilename: result.FileName,
		ContentType:    result.ContentType,
		Success:        result.Success,
		Message:        result.Message,
	}
	if userID != uuid.Nil {
		c.UserID = &userID
	}

	if err := h.repo.Create(ctx, c); err != nil {
		log.Printf("Failed to record conversion of %s: %v", req.FileName, err)
	}
}
