package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewRouter_Health(t *testing.T) {
	router := newTestRouter(newTestServices(), "secret")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestNewRouter_Metrics(t *testing.T) {
	router := newTestRouter(newTestServices(), "secret")

	// Generate at least one observation first.
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "finderid_http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}

func TestNewRouter_Plans(t *testing.T) {
	router := newTestRouter(newTestServices(), "secret")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var payload struct {
		Plans []planResponse `json:"plans"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Plans) != 4 {
		t.Fatalf("expected 4 plans, got %d", len(payload.Plans))
	}
	if payload.Plans[0].Plan != "free" || payload.Plans[0].MaxActiveProducts != 0 {
		t.Fatalf("unexpected first plan: %+v", payload.Plans[0])
	}
	if payload.Plans[1].Plan != "essential" || payload.Plans[1].MaxStatusesPerDay != 15 {
		t.Fatalf("unexpected essential plan: %+v", payload.Plans[1])
	}
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(newTestServices(), "secret")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cards/"+testCardID+"/statuses", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization,x-timezone")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
	if !strings.Contains(strings.ToLower(rr.Header().Get("Access-Control-Allow-Headers")), "x-timezone") {
		t.Fatalf("expected X-Timezone to be an allowed header, got %q", rr.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestNewRouter_ProtectedRoutesUseAuthMiddleware(t *testing.T) {
	s := newTestServices()
	logger := NewMockHandlerLogger()
	auth := NewAuthMiddleware(&mockAuthService{}, logger).Middleware
	router := NewRouter(Handlers{
		Auth:         NewAuthHandler(),
		Plans:        NewPlanHandler(),
		Entitlements: NewEntitlementHandler(s.entitlements, nil, logger),
		Statuses:     NewStatusHandler(s.statuses, nil, logger),
		Products:     NewProductHandler(s.products, logger),
		Admin:        NewAdminHandler("secret", s.subscriptions, s.sweep, logger),
	}, auth, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/cards/"+testCardID+"/entitlements", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}
