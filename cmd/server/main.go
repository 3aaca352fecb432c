package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"rental/internal/app"
	"rental/internal/config"
	"rental/internal/handler"
	"rental/internal/jobs"
	internalRedis "rental/internal/redis"
	"rental/internal/repository/postgres"
	"rental/internal/service"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load .env if present; real deployments use actual environment variables.
	if err := godotenv.Load(); err == nil {
		log.Info("loaded .env file")
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database driver can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.WithError(err).Warn("failed to initialize New Relic")
		} else {
			log.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	log.Info("connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info("connected to Redis")

	server, sweeper := wireServer(db, redisClient, nrApp, cfg, log)

	if err := sweeper.Start(); err != nil {
		log.WithError(err).Fatal("failed to start sweeper jobs")
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	sweeper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server and the
// background sweeper.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, log *logrus.Logger) (*http.Server, *jobs.Sweeper) {
	// Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Repositories.
	bookingRepo := postgres.NewBookingRepository(db)
	cautionRepo := postgres.NewCautionRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	damageRepo := postgres.NewDamageRepository(db)
	maintenanceRepo := postgres.NewMaintenanceRepository(db)
	extraRepo := postgres.NewExtraPriceRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)

	// Services.
	var mail service.MailSender
	if cfg.SMTP.Enabled {
		mail = service.NewSMTPMailSender(
			cfg.SMTP.Host, cfg.SMTP.Port,
			cfg.SMTP.Username, cfg.SMTP.Password,
			cfg.SMTP.From, cfg.SMTP.From,
		)
	}
	notificationService := service.NewNotificationService(mail, log)
	gateway := service.NewPaymentGateway(
		cfg.Gateway.ProjectID, cfg.Gateway.SignPassword,
		cfg.Gateway.PayURL, cfg.Gateway.SuccessStatus,
	)
	pricingService := service.NewPricingService(vehicleRepo, bookingRepo, extraRepo, cacheStore, cfg.Rental.PlatformFeePercent)
	cautionService := service.NewCautionService(cautionRepo, damageRepo, notificationService)
	bookingService := service.NewBookingService(
		db, bookingRepo, cautionRepo, vehicleRepo, customerRepo,
		pricingService, cautionService, gateway,
		lockStore, notificationService, cfg.Rental.PickupGrace,
	)
	callbackService := service.NewCallbackService(gateway, bookingService, cautionService)
	vehicleService := service.NewVehicleService(vehicleRepo, bookingRepo, cacheStore)
	damageService := service.NewDamageService(damageRepo, bookingRepo)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, vehicleRepo)

	// Handlers.
	publicHandler := handler.NewPublicHandler(pricingService, bookingService, vehicleService, callbackService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	cautionHandler := handler.NewCautionHandler(cautionService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	damageHandler := handler.NewDamageHandler(damageService)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)
	extraHandler := handler.NewExtraHandler(pricingService)

	router := app.NewRouter(app.RouterDeps{
		PublicHandler:      publicHandler,
		BookingHandler:     bookingHandler,
		CautionHandler:     cautionHandler,
		VehicleHandler:     vehicleHandler,
		DamageHandler:      damageHandler,
		MaintenanceHandler: maintenanceHandler,
		ExtraHandler:       extraHandler,
		RedisClient:        redisClient,
		NewRelicApp:        nrApp,
		JWTSecret:          cfg.Auth.JWTSecret,
	})

	sweeper := jobs.NewSweeper(bookingService, cfg.Rental.PendingTimeout, log)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return server, sweeper
}
