package config

import (
	"time"

	"finderid-api/internal/domain"
	"finderid-api/internal/jobs"
	"finderid-api/internal/repository"
	"finderid-api/internal/service"
	"finderid-api/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	Clock          domain.Clock
	Location       *time.Location
	SupabaseClient domain.SupabaseClient

	CardRepository    domain.CardRepository
	StatusRepository  domain.StatusRepository
	ProductRepository domain.ProductRepository

	AuthService         domain.AuthService
	EntitlementService  domain.EntitlementService
	StatusService       domain.StatusService
	ProductService      domain.ProductService
	SubscriptionService domain.SubscriptionService

	ExpirySweep *jobs.ExpirySweep
	Scheduler   *jobs.Scheduler
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel(), config.GetLogFormat())
	clock := domain.SystemClock{}
	location := ResolveLocation(config.GetTimezone(), appLogger)

	// Initialize Supabase client
	supabaseClient := repository.NewSupabaseClient(config, appLogger)

	// Initialize repositories
	cardRepo := repository.NewCardRepository(supabaseClient, clock, appLogger)
	statusRepo := repository.NewStatusRepository(supabaseClient, appLogger)
	productRepo := repository.NewProductRepository(supabaseClient, appLogger)

	// Initialize services
	authService := service.NewAuthService(supabaseClient, clock, appLogger)
	if secret := config.GetSupabaseJWTSecret(); secret != "" {
		authService.WithLocalVerification(service.NewTokenVerifier(secret, clock))
	}
	entitlementService := service.NewEntitlementService(cardRepo, statusRepo, productRepo, clock, appLogger)
	statusService := service.NewStatusService(cardRepo, statusRepo, entitlementService, clock, appLogger)
	productService := service.NewProductService(cardRepo, productRepo, entitlementService, appLogger)
	subscriptionService := service.NewSubscriptionService(cardRepo, clock, appLogger)

	// Background jobs
	sweep := jobs.NewExpirySweep(cardRepo, clock, appLogger)
	scheduler := jobs.NewScheduler(sweep, config, appLogger)

	return &Container{
		Config:              config,
		Logger:              appLogger,
		Clock:               clock,
		Location:            location,
		SupabaseClient:      supabaseClient,
		CardRepository:      cardRepo,
		StatusRepository:    statusRepo,
		ProductRepository:   productRepo,
		AuthService:         authService,
		EntitlementService:  entitlementService,
		StatusService:       statusService,
		ProductService:      productService,
		SubscriptionService: subscriptionService,
		ExpirySweep:         sweep,
		Scheduler:           scheduler,
	}
}

// ResolveLocation loads the configured business timezone, falling back to UTC.
func ResolveLocation(name string, logger domain.Logger) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("Unknown APP_TIMEZONE, using UTC", "timezone", name, "error", err.Error())
		return time.UTC
	}
	return loc
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetSupabaseClient returns the Supabase client instance
func (c *Container) GetSupabaseClient() domain.SupabaseClient {
	return c.SupabaseClient
}
