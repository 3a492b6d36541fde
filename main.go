// File: stayloop/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayloop/config"
	"stayloop/cron"
	"stayloop/database"
	bookingRepo "stayloop/database/repository/booking"
	calendarRepo "stayloop/database/repository/calendar"
	propertyRepo "stayloop/database/repository/property"
	"stayloop/handlers"
	"stayloop/middleware"
	"stayloop/routes"
	"stayloop/services/availability"
	"stayloop/services/booking"
	"stayloop/services/calendar"
	"stayloop/services/notification"
	"stayloop/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bkRepo := bookingRepo.NewMongoBookingRepo()
	calRepo := calendarRepo.NewMongoCalendarRepo()
	propRepo := propertyRepo.NewMongoPropertyRepo()

	if repo, ok := bkRepo.(*bookingRepo.MongoBookingRepo); ok {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
		}
	}
	if repo, ok := calRepo.(*calendarRepo.MongoCalendarRepo); ok {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure calendar indexes: %v", err)
		}
	}

	// services.
	cacheClient := utils.GetCacheClient()
	availabilityEngine := &availability.DefaultEngine{
		Bookings:    bkRepo,
		Calendar:    calRepo,
		Cache:       availability.NewViewCache(cacheClient, time.Duration(config.AppConfig.AvailabilityCacheTTL)*time.Second),
		HorizonDays: config.AppConfig.AvailabilityScanHorizonDays,
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	publisher := notification.NewAsynqPublisher(asynqClient)

	lifecycleService := &booking.DefaultLifecycleService{
		Bookings:     bkRepo,
		Properties:   propRepo,
		Availability: availabilityEngine,
		Locks:        booking.NewRedisPropertyLocker(cacheClient),
		Publisher:    publisher,
	}
	calendarService := &calendar.DefaultService{
		Calendar:     calRepo,
		Properties:   propRepo,
		Availability: availabilityEngine,
	}

	bookingHandler := handlers.NewBookingHandler(lifecycleService, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityEngine, logger)
	calendarHandler := handlers.NewCalendarHandler(calendarService, logger)

	routes.RegisterRoutes(router, bookingHandler, availabilityHandler, calendarHandler)

	// Background worker: notification fan-out and the completion sweep.
	cron.InitWorker(lifecycleService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
