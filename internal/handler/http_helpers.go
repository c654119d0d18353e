package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	_ "time/tzdata"

	"finderid-api/internal/domain"
	apperrors "finderid-api/pkg/errors"

	"github.com/google/uuid"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// timezoneHeader lets clients evaluate the daily status window in their own day.
const timezoneHeader = "X-Timezone"

// GetUserFromContext extracts the authenticated user from request context
func GetUserFromContext(r *http.Request) (*domain.SupabaseUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.SupabaseUser)
	return user, ok
}

// GetTokenFromContext extracts the authentication token from request context
func GetTokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	return token, ok
}

// requestIdentity returns the caller and their token, writing a 401 when absent.
func requestIdentity(w http.ResponseWriter, r *http.Request) (*domain.SupabaseUser, string, bool) {
	user, ok := GetUserFromContext(r)
	if !ok || user == nil {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return nil, "", false
	}
	token, ok := GetTokenFromContext(r)
	if !ok || token == "" {
		writeError(w, http.StatusUnauthorized, "Token not found in context")
		return nil, "", false
	}
	return user, token, true
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeDomainError maps a service error onto the HTTP status and message the client sees.
func writeDomainError(w http.ResponseWriter, logger domain.Logger, err error) {
	appErr := apperrors.FromDomain(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", err, "type", appErr.Type)
	}
	writeError(w, appErr.StatusCode, appErr.Message)
}

// parseID validates a path identifier. Card, status and product ids are UUIDs.
func parseID(vars map[string]string, key string) (string, error) {
	raw := strings.TrimSpace(vars[key])
	if raw == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid %s", key)
	}
	return id.String(), nil
}

// requestLocation returns the caller's timezone from X-Timezone, or fallback.
func requestLocation(r *http.Request, fallback *time.Location) (*time.Location, error) {
	name := strings.TrimSpace(r.Header.Get(timezoneHeader))
	if name == "" {
		if fallback == nil {
			return time.UTC, nil
		}
		return fallback, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q", name)
	}
	return loc, nil
}
