// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"log"

	"onramp/internal/config"
	"onramp/internal/handlers"
	"onramp/internal/middleware"
	"onramp/internal/models"
	"onramp/internal/repositories"
	"onramp/internal/services/auth"
	"onramp/internal/services/kycprovider"
	"onramp/internal/services/onboarding"
	"onramp/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	kycRepo := repositories.NewKYCRepository(repositories.DB)
	walletRepo := repositories.NewWalletRepository(repositories.DB)

	// Initialize services
	authService := auth.NewService(userRepo)

	walletService := wallet.NewService(
		walletRepo,
		newWalletBackend(),
		repositories.CacheService,
		wallet.Config{
			MaxAttempts:      config.GetIntEnv("WALLET_MAX_ATTEMPTS", wallet.DefaultMaxAttempts),
			BackoffBase:      config.GetDurationEnv("WALLET_BACKOFF_BASE", wallet.DefaultBackoffBase),
			ProvisionTimeout: config.GetDurationEnv("WALLET_PROVISION_TIMEOUT", wallet.DefaultProvisionTimeout),
		},
		&wallet.NoopMetricsCollector{},
	)

	onboardingService := onboarding.NewService(
		userRepo,
		kycRepo,
		walletService,
		newKYCProvider(),
		onboarding.Config{DefaultChains: defaultChains()},
	)

	// The onboarding service closes the record when the wallet fan-out
	// settles; wired after construction to avoid a dependency cycle.
	if notifier, ok := onboardingService.(wallet.SettlementNotifier); ok {
		walletService.SetNotifier(notifier)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService)
	walletHandler := handlers.NewWalletHandler(walletService)
	adminHandler := handlers.NewAdminHandler(walletService, userRepo)

	// Public endpoints (no auth required)
	app.Get("/health", handlers.HealthCheck)
	app.Post("/auth/register", authHandler.Register)
	app.Post("/auth/login", authHandler.Login)
	app.Post("/onboarding/start", onboardingHandler.Start)

	// Provider callback: authenticated by provider reference, not bearer token
	app.Post("/kyc/callback/:providerRef", onboardingHandler.Callback)

	// Create middleware instance
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Protected routes with auth middleware
	protected := app.Use(authMiddleware.Handler)

	protected.Post("/auth/logout", authHandler.Logout)

	onboardingGroup := protected.Group("/onboarding")
	onboardingGroup.Get("/status", middleware.HasPermission(models.PermissionOnboardingRead), onboardingHandler.Status)
	onboardingGroup.Post("/kyc/submit", middleware.HasPermission(models.PermissionOnboardingWrite), onboardingHandler.SubmitKYC)

	walletGroup := protected.Group("/wallet")
	walletGroup.Get("/status", middleware.HasPermission(models.PermissionWalletRead), walletHandler.Status)
	walletGroup.Get("/addresses", middleware.HasPermission(models.PermissionWalletRead), walletHandler.Addresses)

	protected.Post("/funding/deposit-address", middleware.HasPermission(models.PermissionFundingWrite), walletHandler.DepositAddress)

	admin := protected.Group("/admin", middleware.AdminAuthMiddleware)
	admin.Post("/wallet/create", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.CreateWallets)
	admin.Get("/users/:id", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetUser)
}

// newWalletBackend picks the provisioning backend from the environment.
// Without WALLET_BACKEND_URL the deterministic local backend is used.
func newWalletBackend() wallet.Backend {
	baseURL := config.GetEnv("WALLET_BACKEND_URL", "")
	if baseURL == "" {
		log.Println("WALLET_BACKEND_URL not set, using local wallet backend")
		return wallet.LocalBackend{}
	}
	return wallet.NewHTTPBackend(baseURL, config.GetEnv("WALLET_BACKEND_API_KEY", ""))
}

// newKYCProvider picks the verification provider from the environment.
func newKYCProvider() kycprovider.Provider {
	baseURL := config.GetEnv("KYC_PROVIDER_URL", "")
	if baseURL == "" {
		log.Println("KYC_PROVIDER_URL not set, using noop KYC provider")
		return kycprovider.NoopProvider{}
	}
	return kycprovider.NewHTTPProvider(baseURL, config.GetEnv("KYC_PROVIDER_API_KEY", ""))
}

// defaultChains reads the post-approval fan-out set, falling back to the
// built-in default on empty or invalid configuration.
func defaultChains() []models.Chain {
	raw := config.GetListEnv("WALLET_CHAINS")
	if len(raw) == 0 {
		return nil
	}
	chains, err := models.ParseChains(raw)
	if err != nil {
		log.Printf("Invalid WALLET_CHAINS, falling back to defaults: %v", err)
		return nil
	}
	return chains
}
