package handlers

import (
	"net/http"

	"github.com/gokulraj121/learn-it-faster/internal/middleware"
	"github.com/gokulraj121/learn-it-faster/internal/services"
)

type UserHandler struct {
	auth    *services.AuthService
	billing *services.BillingService
}

func NewUserHandler(auth *services.AuthService, billing *services.BillingService) *UserHandler {
	return &UserHandler{auth: auth, billing: billing}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Subscription(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	plan := middleware.GetUserPlan(r.Context())

	status, err := h.billing.Status(r.Context(), userID, plan)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}
