// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"conferly/internal/auth"
	"conferly/internal/bookings"
	"conferly/internal/leads"
	"conferly/internal/payments"
	"conferly/internal/shared/config"
	"conferly/internal/shared/database"
	"conferly/pkg/cache"
	"conferly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config     *config.Config
	db         *database.DB
	dispatcher payments.InvoiceDispatcher
	mailer     leads.Mailer
	log        *logger.Logger

	// shared across feature wirings
	cacheService cache.Service
	bookingRepo  bookings.Repository
	pricing      *bookings.PricingEngine
}

// NewRouter creates a new router instance. The dispatcher and mailer
// are constructed in main because their lifecycle (Kafka producer,
// SMTP) outlives individual requests.
func NewRouter(cfg *config.Config, db *database.DB, dispatcher payments.InvoiceDispatcher, mailer leads.Mailer, log *logger.Logger) *Router {
	return &Router{
		config:     cfg,
		db:         db,
		dispatcher: dispatcher,
		mailer:     mailer,
		log:        log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.cacheService = cache.NewService(r.db.GetRedisClient())
	r.bookingRepo = bookings.NewRepository(r.db.GetPostgreSQL())
	r.pricing = bookings.NewPricingEngine(r.config.Pricing)

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupBookingRoutes(api)
		r.setupPaymentRoutes(api)
		r.setupLeadRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "conferly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "conferly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures admin authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authService := auth.NewService(r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

// setupBookingRoutes configures booking routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingService := bookings.NewService(r.bookingRepo, r.pricing, r.cacheService)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController, r.config)
}

// setupPaymentRoutes configures gateway payment routes
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())
	razorpayClient := payments.NewRazorpayClient(r.config.Razorpay)
	paypalClient := payments.NewPayPalClient(r.config.PayPal)

	paymentService := payments.NewService(
		paymentRepo,
		r.bookingRepo,
		r.pricing,
		razorpayClient,
		paypalClient,
		r.dispatcher,
		r.cacheService,
		r.log,
	)
	paymentController := payments.NewController(paymentService)

	payments.SetupPaymentRoutes(rg, paymentController)
}

// setupLeadRoutes configures the lead-intake routes and admin listings
func (r *Router) setupLeadRoutes(rg *gin.RouterGroup) {
	leadRepo := leads.NewRepository(r.db.GetPostgreSQL())
	leadService := leads.NewService(leadRepo, r.mailer, r.config.Email, r.log)
	leadController := leads.NewController(leadService)

	leads.SetupLeadRoutes(rg, leadController, r.config)
}
