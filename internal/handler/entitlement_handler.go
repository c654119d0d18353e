package handler

import (
	"net/http"
	"time"

	"finderid-api/internal/domain"

	"github.com/gorilla/mux"
)

// EntitlementHandler exposes a card's plan limits and expiry state.
type EntitlementHandler struct {
	entitlements domain.EntitlementService
	defaultLoc   *time.Location
	logger       domain.Logger
}

func NewEntitlementHandler(entitlements domain.EntitlementService, defaultLoc *time.Location, logger domain.Logger) *EntitlementHandler {
	return &EntitlementHandler{
		entitlements: entitlements,
		defaultLoc:   defaultLoc,
		logger:       logger,
	}
}

// GetEntitlements handles GET /cards/{id}/entitlements.
func (h *EntitlementHandler) GetEntitlements(w http.ResponseWriter, r *http.Request) {
	user, token, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	cardID, err := parseID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	loc, err := requestLocation(r, h.defaultLoc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.entitlements.GetSummary(r.Context(), user.ID, cardID, loc, token)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
