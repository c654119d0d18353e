package handler

import (
	"net/http"

	"finderid-api/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth         *AuthHandler
	Plans        *PlanHandler
	Entitlements *EntitlementHandler
	Statuses     *StatusHandler
	Products     *ProductHandler
	Admin        *AdminHandler
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(h Handlers, authMiddleware func(http.Handler) http.Handler, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.Use(metrics.Middleware)

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "finderid-api"})
	}).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/plans", h.Plans.ListPlans).Methods(http.MethodGet)

	// Admin routes (X-Admin-Secret)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(h.Admin.RequireSecret)
	admin.HandleFunc("/cards/{id}/subscription", h.Admin.RenewSubscription).Methods(http.MethodPut)
	admin.HandleFunc("/sweeps/expiry", h.Admin.RunExpirySweep).Methods(http.MethodPost)

	// Protected routes (require authentication)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/auth/validate", h.Auth.ValidateToken).Methods(http.MethodGet)

	protected.HandleFunc("/cards/{id}/entitlements", h.Entitlements.GetEntitlements).Methods(http.MethodGet)

	protected.HandleFunc("/cards/{id}/statuses", h.Statuses.ListStatuses).Methods(http.MethodGet)
	protected.HandleFunc("/cards/{id}/statuses", h.Statuses.CreateStatus).Methods(http.MethodPost)
	protected.HandleFunc("/cards/{id}/statuses/{statusId}", h.Statuses.DeleteStatus).Methods(http.MethodDelete)

	protected.HandleFunc("/cards/{id}/products", h.Products.ListProducts).Methods(http.MethodGet)
	protected.HandleFunc("/cards/{id}/products", h.Products.CreateProduct).Methods(http.MethodPost)
	protected.HandleFunc("/cards/{id}/products/{productId}", h.Products.DeactivateProduct).Methods(http.MethodDelete)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
			timezoneHeader,
		},
		ExposedHeaders: []string{
			"Link",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
