package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conferly/api/routes"
	"conferly/internal/bookings"
	"conferly/internal/invoices"
	"conferly/internal/leads"
	"conferly/internal/notifications"
	"conferly/internal/payments"
	"conferly/internal/shared/config"
	"conferly/internal/shared/database"
	"conferly/pkg/logger"
	"conferly/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Initialize DB
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect:", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			PublicRequests:  cfg.RateLimit.PublicRequests,
			PaymentRequests: cfg.RateLimit.PaymentRequests,
			LeadRequests:    cfg.RateLimit.LeadRequests,
			AdminRequests:   cfg.RateLimit.AdminRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		}

		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Email service. Invoice delivery and lead acknowledgments both go
	// through it.
	var mailer leads.Mailer
	var invoiceMailer invoices.Mailer
	emailService, err := notifications.NewSMTPEmailService(cfg.Email)
	if err != nil {
		appLogger.Error("Email service not configured, mails will be skipped", slog.Any("error", err))
	} else {
		mailer = emailService
		invoiceMailer = emailService
	}

	// Invoice pipeline
	bookingRepo := bookings.NewRepository(db.GetPostgreSQL())
	invoiceService := invoices.NewService(bookingRepo, invoiceMailer, cfg.Invoice, cfg.Email.AdminEmail, appLogger)

	var dispatcher payments.InvoiceDispatcher
	var invoiceProducer notifications.InvoiceProducer
	var invoiceConsumer notifications.InvoiceConsumer

	if cfg.Kafka.Enabled {
		invoiceProducer, err = notifications.NewKafkaInvoiceProducer(cfg.Kafka)
		if err != nil {
			appLogger.Error("Failed to create Kafka producer, invoices will run inline", slog.Any("error", err))
			dispatcher = notifications.NewInlineInvoiceDispatcher(invoiceService, appLogger)
		} else {
			dispatcher = notifications.NewKafkaInvoiceDispatcher(invoiceProducer, invoiceService, appLogger)

			invoiceConsumer, err = notifications.NewKafkaInvoiceConsumer(cfg.Kafka, invoiceService, invoiceProducer)
			if err != nil {
				appLogger.Error("Failed to create Kafka consumer", slog.Any("error", err))
			} else {
				consumerCtx, consumerCancel := context.WithCancel(context.Background())
				defer consumerCancel()

				if err := invoiceConsumer.StartConsumers(consumerCtx, cfg.Kafka.ConsumerWorkers); err != nil {
					appLogger.Error("Failed to start invoice consumers", slog.Any("error", err))
				} else {
					appLogger.Info("Invoice consumers started", slog.Int("workers", cfg.Kafka.ConsumerWorkers))
					defer func() {
						if err := invoiceConsumer.Stop(); err != nil {
							appLogger.Error("Error stopping invoice consumer", slog.Any("error", err))
						}
					}()
				}
			}

			defer func() {
				if err := invoiceProducer.Close(); err != nil {
					appLogger.Error("Error closing invoice producer", slog.Any("error", err))
				}
			}()
		}
	} else {
		appLogger.Info("Kafka disabled, invoices dispatched inline")
		dispatcher = notifications.NewInlineInvoiceDispatcher(invoiceService, appLogger)
	}

	// Setup router
	router := setupRouter(cfg, db, rateLimiter, dispatcher, mailer, appLogger)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_status", fmt.Sprintf("http://localhost:%s%s/status", cfg.Port, cfg.GetAPIBasePath())),
			slog.String("version", cfg.APIVersion),
			slog.Bool("redis_cache", (db.Redis != nil)),
			slog.Bool("kafka_dispatch", cfg.Kafka.Enabled),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, rateLimiter *ratelimit.RateLimiter,
	dispatcher payments.InvoiceDispatcher, mailer leads.Mailer, appLogger *logger.Logger) *gin.Engine {
	engine := gin.New()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	// Initialize and setup routes
	appRouter := routes.NewRouter(cfg, db, dispatcher, mailer, appLogger)
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}
