package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gokulraj121/learn-it-faster/internal/models"
	"github.com/gokulraj121/learn-it-faster/internal/services"
)

// ─── Error mapping ───

func TestHandleServiceError_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"content": "required"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", &services.ConflictError{Message: "taken"}, http.StatusConflict, "CONFLICT"},
		{"not found", &services.NotFoundError{Message: "missing"}, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", &services.UnauthorizedError{Message: "nope"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", &services.ForbiddenError{Message: "denied"}, http.StatusForbidden, "FORBIDDEN"},
		{"rate limited", &services.RateLimitError{Message: "slow down"}, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"model down", &services.ModelInvocationError{StatusCode: 503, Message: "loading"}, http.StatusBadGateway, "MODEL_ERROR"},
		{"unknown", bytes.ErrTooLarge, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Request-ID", "req-123")
			rr := httptest.NewRecorder()

			handleServiceError(rr, req, tc.err)

			if rr.Code != tc.want {
				t.Errorf("Expected status %d, got %d", tc.want, rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error.Code != tc.code {
				t.Errorf("Expected code %q, got %q", tc.code, resp.Error.Code)
			}
			if resp.Error.RequestID != "req-123" {
				t.Errorf("Expected request ID echoed, got %q", resp.Error.RequestID)
			}
		})
	}
}

func TestHandleServiceError_ValidationFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()

	handleServiceError(rr, req, &services.ValidationError{
		Fields: map[string]string{"email": "Invalid email format"},
	})

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error.Fields["email"] != "Invalid email format" {
		t.Errorf("Expected field error preserved, got %v", resp.Error.Fields)
	}
}

// ─── Convert Handler ───

func TestConvertHandler_InvalidBody(t *testing.T) {
	h := NewConvertHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()

	h.Convert(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}

func TestConvertHandler_MissingFields(t *testing.T) {
	h := NewConvertHandler(nil, nil)

	tests := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{"missing content", map[string]string{"fileName": "a.pdf", "conversionType": "pdf-to-text"}, "fileContent"},
		{"missing name", map[string]string{"fileContent": "aGk=", "conversionType": "pdf-to-text"}, "fileName"},
		{"missing type", map[string]string{"fileContent": "aGk=", "fileName": "a.pdf"}, "conversionType"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			jsonBody, _ := json.Marshal(tc.body)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/convert", bytes.NewReader(jsonBody))
			rr := httptest.NewRecorder()

			h.Convert(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if _, ok := resp.Error.Fields[tc.field]; !ok {
				t.Errorf("Expected field error for %q, got %v", tc.field, resp.Error.Fields)
			}
		})
	}
}

// ─── Generation quota gating ───

// A bad request must be rejected before the quota gate runs: the billing
// service below has no Redis client and would panic if AllowGeneration were
// reached.
func TestFlashcardGenerate_BadRequestDoesNotTouchQuota(t *testing.T) {
	h := NewFlashcardHandler(nil, services.NewBillingService(nil, 1), nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", "{not json"},
		{"empty content", `{"content":"  ","sourceType":"text"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/flashcards/generate", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			h.Generate(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestInfographicGenerate_BadRequestDoesNotTouchQuota(t *testing.T) {
	h := NewInfographicHandler(nil, services.NewBillingService(nil, 1), nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", "{not json"},
		{"empty content", `{"content":"","sourceType":"text"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/infographics/generate", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			h.Generate(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rr.Code)
			}
		})
	}
}

// ─── Auth Handler ───

func TestAuthHandler_InvalidBody(t *testing.T) {
	h := NewAuthHandler(nil)

	endpoints := []struct {
		name string
		fn   http.HandlerFunc
	}{
		{"register", h.Register},
		{"login", h.Login},
		{"refresh", h.Refresh},
		{"logout", h.Logout},
	}

	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not json"))
			rr := httptest.NewRecorder()

			ep.fn(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400 for malformed body, got %d", rr.Code)
			}
		})
	}
}

func TestWriteDownload_SetsHeaders(t *testing.T) {
	rr := httptest.NewRecorder()

	writeDownload(rr, &services.ExportFormat{
		FileName:    "deck.csv",
		ContentType: "text/csv",
		Data:        []byte("question,answer\n"),
	})

	if got := rr.Header().Get("Content-Disposition"); got != `attachment; filename="deck.csv"` {
		t.Errorf("Unexpected disposition header %q", got)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("Expected text/csv, got %q", got)
	}
	if rr.Body.String() != "question,answer\n" {
		t.Errorf("Expected body written")
	}
}
