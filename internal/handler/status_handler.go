package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"finderid-api/internal/domain"

	"github.com/gorilla/mux"
)

type createStatusRequest struct {
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url"`
}

// StatusHandler serves a card's status posts.
type StatusHandler struct {
	statuses   domain.StatusService
	defaultLoc *time.Location
	logger     domain.Logger
}

func NewStatusHandler(statuses domain.StatusService, defaultLoc *time.Location, logger domain.Logger) *StatusHandler {
	return &StatusHandler{
		statuses:   statuses,
		defaultLoc: defaultLoc,
		logger:     logger,
	}
}

func (h *StatusHandler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	user, token, ok := requestIdentity(w, r)
	if !ok {
		return
	}
	cardID, err := parseID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	statuses, err := h.statuses.ListActiveStatuses(r.Context(), user.ID, cardID, token)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"statuses": statuses})
}

// CreateStatus posts a status. A plan whose daily allowance is used up gets 403.
func (h *StatusHandler) CreateStatus(w http.ResponseWriter, r *http.Request) {
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

	var req createStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := &domain.Status{CardID: cardID, Content: req.Content, ImageURL: req.ImageURL}
	created, err := h.statuses.CreateStatus(r.Context(), user.ID, status, loc, token)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *StatusHandler) DeleteStatus(w http.ResponseWriter, r *http.Request) {
	user, token, ok := requestIdentity(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	cardID, err := parseID(vars, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	statusID, err := parseID(vars, "statusId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.statuses.DeleteStatus(r.Context(), user.ID, cardID, statusID, token); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
