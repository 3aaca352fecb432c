package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"rental/internal/domain"
	"rental/internal/handler"
	"rental/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	PublicHandler      *handler.PublicHandler
	BookingHandler     *handler.BookingHandler
	CautionHandler     *handler.CautionHandler
	VehicleHandler     *handler.VehicleHandler
	DamageHandler      *handler.DamageHandler
	MaintenanceHandler *handler.MaintenanceHandler
	ExtraHandler       *handler.ExtraHandler
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
	JWTSecret          string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public marketplace routes. The payment callback and vehicle search are
	// unauthenticated; booking creation requires a customer token.
	public := router.Group("/public")
	{
		public.GET("/vehicles", deps.PublicHandler.SearchVehicles)
		public.GET("/bookings/pricing", deps.PublicHandler.Pricing)
		public.GET("/bookings/payment/callback", deps.PublicHandler.PaymentCallback)

		authed := public.Group("")
		authed.Use(middleware.AuthMiddleware(deps.JWTSecret))
		authed.POST("/bookings", deps.PublicHandler.CreateBooking)
	}

	// Tenant back-office routes.
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(deps.JWTSecret))
	v1.Use(middleware.RequireRole(domain.RoleStaff))
	{
		// Booking lifecycle routes.
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", deps.BookingHandler.CreateBooking)
			bookings.GET("", deps.BookingHandler.ListBookings)
			bookings.GET("/:id", deps.BookingHandler.GetBooking)
			bookings.POST("/:id/cancel", deps.BookingHandler.CancelBooking)
			bookings.POST("/:id/checkout", deps.BookingHandler.CheckOut)
			bookings.POST("/:id/checkin", deps.BookingHandler.CheckIn)
			bookings.POST("/:id/no-show", deps.BookingHandler.MarkNoShow)
			bookings.GET("/:id/caution", deps.CautionHandler.GetByBooking)
			bookings.POST("/:id/caution/hold", deps.CautionHandler.HoldCaution)
		}

		// Caution routes.
		cautions := v1.Group("/cautions")
		{
			cautions.GET("/:id", deps.CautionHandler.GetCaution)
		}

		// Fleet routes.
		vehicles := v1.Group("/vehicles")
		{
			vehicles.POST("", deps.VehicleHandler.RegisterVehicle)
			vehicles.GET("", deps.VehicleHandler.ListVehicles)
			vehicles.GET("/:id", deps.VehicleHandler.GetVehicle)
		}

		// Damage routes.
		damages := v1.Group("/damages")
		{
			damages.POST("", deps.DamageHandler.ReportDamage)
			damages.GET("", deps.DamageHandler.ListDamages)
			damages.POST("/:id/assess", deps.DamageHandler.AssessDamage)
			damages.POST("/:id/dispute", deps.DamageHandler.DisputeDamage)
			damages.POST("/:id/resolve", deps.DamageHandler.ResolveDispute)
		}

		// Maintenance routes.
		maintenance := v1.Group("/maintenance")
		{
			maintenance.POST("", deps.MaintenanceHandler.ScheduleMaintenance)
			maintenance.GET("", deps.MaintenanceHandler.ListMaintenance)
			maintenance.POST("/:id/start", deps.MaintenanceHandler.StartMaintenance)
			maintenance.POST("/:id/complete", deps.MaintenanceHandler.CompleteMaintenance)
			maintenance.POST("/:id/cancel", deps.MaintenanceHandler.CancelMaintenance)
		}

		// Extras price list routes.
		extras := v1.Group("/extras")
		{
			extras.GET("", deps.ExtraHandler.ListExtraPrices)
			extras.PUT("", deps.ExtraHandler.SetExtraPrice)
		}
	}

	return router
}
