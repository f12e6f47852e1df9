package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront_client/config"
	"storefront_client/internal/clients"
	"storefront_client/internal/delivery"
	"storefront_client/internal/middleware"
	"storefront_client/internal/session"
	"storefront_client/internal/usecase"
)

func main() {
	cfg := config.LoadConfig()
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.Info("Starting Storefront Client...")
	logger.Infof("Log level set to: %s", logLevel.String())

	sess := session.New()
	store, err := session.OpenStore(cfg.SessionDBPath, logger)
	if err != nil {
		logger.Fatalf("FATAL: failed to open session store at %s: %v", cfg.SessionDBPath, err)
	}
	defer store.Close()
	logger.Info("Session store opened.")

	if cfg.APIBaseURL == "" {
		logger.Fatal("FATAL: Storefront API base URL is not configured. Set API_BASE_URL.")
	}
	apiClient := clients.NewStorefrontClient(cfg.APIBaseURL, cfg.RequestTimeout, sess, logger)
	logger.Infof("Storefront API client initialized for target: %s", cfg.APIBaseURL)

	// --- Dependency Injection ---
	authUseCase := usecase.NewAuthUseCase(apiClient, sess, store, logger)
	catalogUseCase := usecase.NewCatalogUseCase(apiClient, logger)
	cartSync := usecase.NewCartSynchronizer(apiClient, logger)
	checkoutUseCase := usecase.NewCheckoutOrchestrator(apiClient, cartSync, logger)
	logger.Info("Use cases initialized.")

	if err := authUseCase.Restore(); err != nil {
		logger.Warnf("Could not restore persisted session: %v", err)
	}

	authHandler := delivery.NewAuthHandler(authUseCase, logger)
	productHandler := delivery.NewProductHandler(catalogUseCase, sess, logger)
	cartHandler := delivery.NewCartHandler(cartSync, sess, logger)
	checkoutHandler := delivery.NewCheckoutHandler(checkoutUseCase, sess, logger)
	logger.Info("Handlers initialized.")

	router := gin.Default()
	router.RedirectTrailingSlash = false
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	authHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)

	authed := router.Group("")
	authed.Use(middleware.SessionRequired(sess, logger))
	customer := authed.Group("")
	customer.Use(middleware.CustomerRequired(sess, logger))
	cartHandler.RegisterRoutes(customer)
	checkoutHandler.RegisterRoutes(customer)
	logger.Info("Routes registered.")

	// --- Start Server ---
	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Errorf("Failed to start server on port %s: %v", cfg.Port, err)
		os.Exit(1)
	}
}
