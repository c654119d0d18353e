package handler

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"finderid-api/internal/domain"
	"finderid-api/internal/jobs"

	"github.com/gorilla/mux"
)

// SweepRunner runs the subscription expiry sweep on demand.
type SweepRunner interface {
	Run(ctx context.Context) (jobs.SweepResult, error)
}

// AdminHandler exposes admin-only endpoints protected by X-Admin-Secret.
// These endpoints are intended for internal use (payment webhooks, support
// tooling) and should not be exposed publicly without additional safeguards.
type AdminHandler struct {
	secret        string
	subscriptions domain.SubscriptionService
	sweep         SweepRunner
	logger        domain.Logger
}

func NewAdminHandler(secret string, subscriptions domain.SubscriptionService, sweep SweepRunner, logger domain.Logger) *AdminHandler {
	return &AdminHandler{
		secret:        secret,
		subscriptions: subscriptions,
		sweep:         sweep,
		logger:        logger,
	}
}

// RequireSecret rejects requests whose X-Admin-Secret does not match ADMIN_API_SECRET.
// An unset secret disables the admin surface entirely.
func (h *AdminHandler) RequireSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret := r.Header.Get("X-Admin-Secret")
		if h.secret == "" || secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) != 1 {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type renewSubscriptionRequest struct {
	Plan      string     `json:"plan"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// RenewSubscription sets the plan and expiry for a card after payment.
func (h *AdminHandler) RenewSubscription(w http.ResponseWriter, r *http.Request) {
	cardID, err := parseID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req renewSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	card, err := h.subscriptions.Renew(r.Context(), cardID, req.Plan, req.ExpiresAt)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

// RunExpirySweep triggers an immediate sweep outside the cron schedule.
func (h *AdminHandler) RunExpirySweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.sweep.Run(r.Context())
	if err != nil {
		if errors.Is(err, jobs.ErrSweepInProgress) {
			writeError(w, http.StatusConflict, "Expiry sweep already running")
			return
		}
		h.logger.Error("Manual expiry sweep failed", err)
		writeError(w, http.StatusServiceUnavailable, "Expiry sweep failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
